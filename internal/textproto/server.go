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
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/lukasdietrich/minimail/internal/log"
)

// Protocol is an interface for text based protocol implementations.
type Protocol interface {
	// Handle is supposed to consume a connection and manage all traffic
	// over it. Once Handle returns, the underlying network connection is
	// automatically closed by the server.
	Handle(Conn)
}

// Server is a general purpose tcp server for text based protocols like SMTP
// or POP3. Every accepted connection is handled in its own goroutine.
type Server struct {
	proto       Protocol
	connections int32
}

// NewServer returns a Server using a specified protocol implementation.
// The Server has to be started explicitly afterwards.
func NewServer(proto Protocol) *Server {
	return &Server{
		proto: proto,
	}
}

// Listen opens a new tcp listener and blocks until ctx is done or accepting a
// new connection fails permanently.
func (s *Server) Listen(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	log.InfoContext(ctx).
		Stringer("address", l.Addr()).
		Msg("waiting for connections")

	return s.Serve(ctx, l)
}

// Serve accepts connections on l until ctx is done. The listener is closed
// when Serve returns.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}

		l.Close() // nolint:errcheck
	}()

	var backoff time.Duration

	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Temporary() {
				backoff = nextBackoff(backoff)

				log.WarnContext(ctx).
					Err(err).
					Dur("backoff", backoff).
					Msg("could not accept connection")

				time.Sleep(backoff)
				continue
			}

			log.ErrorContext(ctx).
				Err(err).
				Msg("listener failed")

			return err
		}

		backoff = 0
		go s.handle(ctx, conn)
	}
}

func nextBackoff(last time.Duration) time.Duration {
	const (
		initial = 5 * time.Millisecond
		max     = time.Second
	)

	if last == 0 {
		return initial
	}

	if last *= 2; last > max {
		return max
	}

	return last
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close() // nolint:errcheck

	ctx = log.WithConnection(ctx, atomic.AddInt32(&s.connections, 1))
	ctx = log.WithRemote(ctx, conn.RemoteAddr().String())

	log.InfoContext(ctx).Msg("accepted connection")
	defer log.InfoContext(ctx).Msg("connection closed")

	s.proto.Handle(WrapConn(ctx, conn))
}
