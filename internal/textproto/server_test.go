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

package textproto

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoProto answers every line with its length until "bye".
type echoProto struct{}

func (echoProto) Handle(c Conn) {
	for {
		line, err := c.ReadLine()
		if err != nil || string(line) == "bye" {
			return
		}

		fmt.Fprintf(c, "%d", len(line))
		c.Endline() // nolint:errcheck
		c.Flush()   // nolint:errcheck
	}
}

func TestServerServe(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)

	go func() {
		served <- NewServer(echoProto{}).Serve(ctx, l)
	}()

	for i := 0; i < 2; i++ {
		conn, err := net.Dial("tcp", l.Addr().String())
		require.NoError(t, err)

		r := bufio.NewReader(conn)

		fmt.Fprintf(conn, "hello\r\n")
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		assert.Equal(t, "5\r\n", line)

		fmt.Fprintf(conn, "bye\r\n")
		_, err = r.ReadString('\n')
		assert.Error(t, err, "server closes the connection after Handle returns")

		conn.Close()
	}

	cancel()
	assert.NoError(t, <-served)
}

func TestNextBackoff(t *testing.T) {
	b := nextBackoff(0)
	assert.Greater(t, int64(b), int64(0))

	for i := 0; i < 20; i++ {
		b = nextBackoff(b)
	}

	assert.LessOrEqual(t, int64(b), int64(1e9))
}
