// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package smtp

import (
	"strings"

	"github.com/lukasdietrich/minimail/internal/textproto"
)

type command struct {
	name string
	args []string
}

// readFrom reads the next non-empty line.
func (c *command) readFrom(r textproto.Reader) error {
	for {
		line, err := r.ReadLine()
		if err != nil {
			return err
		}

		if len(line) > 0 {
			c.parse(string(line))
			return nil
		}
	}
}

func (c *command) parse(line string) {
	fields := strings.Split(line, " ")

	c.name = strings.ToLower(fields[0])
	c.args = fields[1:]
}

// path extracts the address of a single argument of the form "<prefix>:<address>". The prefix
// is case-sensitive.
func (c *command) path(prefix string) (string, error) {
	if len(c.args) != 1 {
		return "", errInvalidSyntax
	}

	arg := c.args[0]
	prefix += ":<"

	if !strings.HasPrefix(arg, prefix) || !strings.HasSuffix(arg, ">") || len(arg) < len(prefix)+1 {
		return "", errInvalidSyntax
	}

	return arg[len(prefix) : len(arg)-1], nil
}
