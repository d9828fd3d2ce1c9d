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

package log

import (
	"context"

	"github.com/rs/zerolog"
)

type fieldConnection struct{}
type fieldRemote struct{}
type fieldOrigin struct{}
type fieldCommand struct{}
type fieldUser struct{}

// WithConnection attaches the sequence number of an accepted connection.
func WithConnection(ctx context.Context, connection int32) context.Context {
	return context.WithValue(ctx, fieldConnection{}, connection)
}

// WithRemote attaches the address of the peer.
func WithRemote(ctx context.Context, remote string) context.Context {
	return context.WithValue(ctx, fieldRemote{}, remote)
}

// WithOrigin attaches the protocol a log event originates from.
func WithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, fieldOrigin{}, origin)
}

// WithCommand attaches the (lowercase) name of the command being processed.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, fieldCommand{}, command)
}

// WithUser attaches the name of the user a session acts on behalf of.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, fieldUser{}, user)
}

// appendContextFields adds defined fields in the context to the log event.
func appendContextFields(ctx context.Context, event *zerolog.Event) *zerolog.Event {
	if connection, ok := ctx.Value(fieldConnection{}).(int32); ok {
		event.Int32("connection", connection)
	}

	if remote, ok := ctx.Value(fieldRemote{}).(string); ok {
		event.Str("remote", remote)
	}

	if origin, ok := ctx.Value(fieldOrigin{}).(string); ok {
		event.Str("origin", origin)
	}

	if command, ok := ctx.Value(fieldCommand{}).(string); ok {
		event.Str("command", command)
	}

	if user, ok := ctx.Value(fieldUser{}).(string); ok {
		event.Str("user", user)
	}

	return event
}
