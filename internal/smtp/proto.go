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

// Package smtp implements the submission protocol. A client names a sender and one or more
// local recipients and then transfers the message body, which is delivered to every recipient.
package smtp

import (
	"context"
	"errors"
	"strconv"

	"github.com/lukasdietrich/minimail/internal/log"
	"github.com/lukasdietrich/minimail/internal/mailbox"
	"github.com/lukasdietrich/minimail/internal/metrics"
	"github.com/lukasdietrich/minimail/internal/textproto"
)

const protocolName = "smtp"

var (
	rError          = reply{451, "Requested action aborted: local error in processing"}
	rInvalidCommand = reply{500, "Invalid command"}
	rInvalidSyntax  = reply{501, "Syntax error in parameters or arguments"}
	rBadSequence    = reply{503, "Bad sequence of commands"}
)

// Proto is the textproto.Protocol of the submission server.
type Proto struct {
	opts       textproto.SessionOptions
	handlerMap map[string]handler
}

// New creates a new submission protocol delivering into store.
func New(store mailbox.Store, opts textproto.SessionOptions, limits Limits) *Proto {
	return &Proto{
		opts: opts,
		handlerMap: map[string]handler{
			"helo": helo(opts.Hostname),
			"ehlo": helo(opts.Hostname),

			"mail": mail(),
			"rcpt": rcpt(store, limits),
			"data": data(store, limits),

			"rset": rset(),
			"vrfy": vrfy(store),
			"noop": noop(),
			"quit": quit(opts.Hostname),
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
		state:   sInit,
	}

	if err := s.send(&reply{220, p.opts.Hostname + " Service ready"}); err != nil {
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

		err := p.dispatch(ctx, s, &cmd)
		metrics.Command(protocolName, p.metricsName(&cmd), commandStatus(s.lastCode, err))

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

func commandStatus(code int, err error) string {
	if err != nil && !errors.Is(err, errCloseSession) {
		return "fatal"
	}

	return strconv.Itoa(code)
}

func (p *Proto) dispatch(ctx context.Context, s *session, cmd *command) error {
	h, ok := p.handlerMap[cmd.name]
	if !ok {
		log.DebugContext(ctx).Msg("invalid command")
		return s.send(&rInvalidCommand)
	}

	err := h(ctx, s, cmd)
	if err == nil || errors.Is(err, errCloseSession) {
		return err
	}

	log.DebugContext(ctx).
		Err(err).
		Stringer("state", s.state).
		Msg("error during command")

	var serr smtpError

	switch {
	case errors.Is(err, errBadSequence):
		return s.send(&rBadSequence)

	case errors.Is(err, errInvalidSyntax):
		return s.send(&rInvalidSyntax)

	case errors.As(err, &serr):
		return s.send(&reply{serr.code, serr.text})

	default:
		return err
	}
}
