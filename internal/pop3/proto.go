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

// Package pop3 implements the retrieval protocol. A client names a user, supplies the password and
// may then list, retrieve and delete the messages of the users mailbox.
package pop3

import (
	"context"
	"errors"

	"github.com/lukasdietrich/minimail/internal/log"
	"github.com/lukasdietrich/minimail/internal/mailbox"
	"github.com/lukasdietrich/minimail/internal/metrics"
	"github.com/lukasdietrich/minimail/internal/textproto"
)

const protocolName = "pop3"

var (
	rError          = reply{false, "action aborted: local error in processing"}
	rNotImplemented = reply{false, "command not implemented"}
	rBadSequence    = reply{false, "bad sequence of commands"}
	rInvalidSyntax  = reply{false, "invalid syntax"}
	rNoSuchMessage  = reply{false, "no such message"}
)

// Proto is the textproto.Protocol of the retrieval server.
type Proto struct {
	opts       textproto.SessionOptions
	handlerMap map[string]handler
}

// New creates a new retrieval protocol operating on the mailboxes of store.
func New(store mailbox.Store, opts textproto.SessionOptions) *Proto {
	return &Proto{
		opts: opts,
		handlerMap: map[string]handler{
			"user": user(store),
			"pass": pass(store),

			"stat": stat(),
			"list": list(),
			"retr": retr(),
			"dele": dele(),
			"rset": rset(),

			"noop": noop(),
			"quit": quit(),
		},
	}
}

// Handle runs a session until the client quits or the connection fails.
func (p *Proto) Handle(c textproto.Conn) {
	defer metrics.Connection(protocolName)()

	ctx := log.WithOrigin(c.Context(), protocolName)
	s := &session{
		Conn:    c,
		timeout: p.opts.Timeout,
		state:   sAuthorization,
	}

	defer s.closeMailbox(ctx)

	if err := s.send(&reply{true, "POP3 server ready <" + p.opts.Hostname + ">"}); err != nil {
		log.DebugContext(ctx).
			Err(err).
			Msg("could not send greeting")

		return
	}

	log.InfoContext(ctx).Msg("starting session")

	err := p.loop(ctx, s)

	switch {
	case errors.Is(err, errCloseSession):
		log.InfoContext(ctx).Msg("session closed")

	case textproto.IsConnectionError(err):
		log.InfoContext(ctx).
			Err(err).
			Msg("connection lost")

	default:
		log.ErrorContext(ctx).
			Err(err).
			Msg("session closed with an error")

		s.send(&rError) // nolint:errcheck
	}
}

func (p *Proto) loop(ctx context.Context, s *session) error {
	var cmd command

	for {
		if err := s.read(&cmd); err != nil {
			return err
		}

		ctx := log.WithCommand(ctx, cmd.name)
		if s.mailbox != nil {
			ctx = log.WithUser(ctx, s.user)
		}

		err := p.dispatch(ctx, s, &cmd)
		metrics.Command(protocolName, p.metricsName(&cmd), commandStatus(s.lastOk, err))

		if err != nil {
			return err
		}
	}
}

func (p *Proto) metricsName(cmd *command) string {
	if _, ok := p.handlerMap[cmd.name]; ok {
		return cmd.name
	}

	return "unknown"
}

func commandStatus(ok bool, err error) string {
	switch {
	case err != nil && !errors.Is(err, errCloseSession):
		return "fatal"
	case ok:
		return "ok"
	default:
		return "err"
	}
}

func (p *Proto) dispatch(ctx context.Context, s *session, cmd *command) error {
	h, ok := p.handlerMap[cmd.name]
	if !ok {
		log.DebugContext(ctx).Msg("command not implemented")
		return s.send(&rNotImplemented)
	}

	err := h(ctx, s, cmd)
	if err == nil || errors.Is(err, errCloseSession) {
		return err
	}

	log.DebugContext(ctx).
		Err(err).
		Stringer("state", s.state).
		Msg("error during command")

	switch {
	case errors.Is(err, errBadSequence):
		return s.send(&rBadSequence)

	case errors.Is(err, errInvalidSyntax):
		return s.send(&rInvalidSyntax)

	case errors.Is(err, errNoSuchMessage):
		return s.send(&rNoSuchMessage)

	default:
		return err
	}
}
