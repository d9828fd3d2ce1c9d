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

package pop3

import (
	"strconv"
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

func (c *command) parseIndexArg(arg int) (int, error) {
	if len(c.args) <= arg {
		return 0, errInvalidSyntax
	}

	n, err := strconv.Atoi(c.args[arg])
	if err != nil {
		return 0, errInvalidSyntax
	}

	return n, nil
}
