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
	"context"
	"io"
	"net"
	"time"
)

// Conn is a wrapper around a network connection to enable line based reading
// and buffered writing.
type Conn interface {
	Reader
	Writer

	// Context returns the context of the connection, carrying its log fields.
	Context() context.Context

	// SetReadTimeout sets the deadline for read calls to a time now + x. A
	// duration <= 0 removes the deadline.
	SetReadTimeout(time.Duration) error

	// SetWriteTimeout sets the deadline for write calls to a time now + x. A
	// duration <= 0 removes the deadline.
	SetWriteTimeout(time.Duration) error
}

type deadlineSetter interface {
	SetReadDeadline(time.Time) error
	SetWriteDeadline(time.Time) error
}

type conn struct {
	Reader
	Writer

	ctx       context.Context
	deadlines deadlineSetter
}

// WrapConn wraps a network connection.
func WrapConn(ctx context.Context, netConn net.Conn) Conn {
	return NewConn(ctx, netConn)
}

// NewConn wraps any byte stream. Timeouts are only applied, if rw supports
// deadlines like a net.Conn does.
func NewConn(ctx context.Context, rw io.ReadWriter) Conn {
	c := conn{
		Reader: newReader(rw),
		Writer: newWriter(rw),
		ctx:    ctx,
	}

	if d, ok := rw.(deadlineSetter); ok {
		c.deadlines = d
	}

	return &c
}

func (c *conn) Context() context.Context {
	return c.ctx
}

func (c *conn) SetReadTimeout(d time.Duration) error {
	if c.deadlines == nil {
		return nil
	}

	return c.deadlines.SetReadDeadline(deadline(d))
}

func (c *conn) SetWriteTimeout(d time.Duration) error {
	if c.deadlines == nil {
		return nil
	}

	return c.deadlines.SetWriteDeadline(deadline(d))
}

func deadline(d time.Duration) time.Time {
	if d <= 0 {
		return time.Time{}
	}

	return time.Now().Add(d)
}
