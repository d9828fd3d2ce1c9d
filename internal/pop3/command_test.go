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
	"context"
	"io"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukasdietrich/minimail/internal/textproto"
)

func TestCommandParse(t *testing.T) {
	for line, expected := range map[string]command{
		"QUIT":                {name: "quit", args: []string{}},
		"list 1":              {name: "list", args: []string{"1"}},
		"PASS correct  horse": {name: "pass", args: []string{"correct", "", "horse"}},
		"User alice ":         {name: "user", args: []string{"alice", ""}},
	} {
		var actual command
		actual.parse(line)
		assert.Equal(t, expected, actual, line)
	}
}

func TestCommandReadSkipsBlankLines(t *testing.T) {
	rw := struct {
		io.Reader
		io.Writer
	}{strings.NewReader("\r\n\r\nNOOP\r\n"), ioutil.Discard}

	conn := textproto.NewConn(context.Background(), rw)

	var cmd command
	require.NoError(t, cmd.readFrom(conn))
	assert.Equal(t, "noop", cmd.name)
}

func TestCommandParseIndexArg(t *testing.T) {
	cmd := command{name: "retr", args: []string{"12", "x"}}

	n, err := cmd.parseIndexArg(0)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = cmd.parseIndexArg(1)
	assert.Equal(t, errInvalidSyntax, err)

	_, err = cmd.parseIndexArg(2)
	assert.Equal(t, errInvalidSyntax, err)
}
