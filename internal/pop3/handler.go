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
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lukasdietrich/minimail/internal/log"
	"github.com/lukasdietrich/minimail/internal/mailbox"
	"github.com/lukasdietrich/minimail/internal/metrics"
)

var (
	errCloseSession  = errors.New("pop3: session closed")
	errBadSequence   = errors.New("pop3: bad sequence of commands")
	errInvalidSyntax = errors.New("pop3: invalid syntax")
	errNoSuchMessage = errors.New("pop3: no such message")
)

type handler func(context.Context, *session, *command) error

func user(directory mailbox.Directory) handler {
	var (
		rOk          = reply{true, "user accepted"}
		rUnknownUser = reply{false, "unknown user"}
	)

	return func(ctx context.Context, s *session, c *command) error {
		if !s.state.in(sAuthorization) {
			return errBadSequence
		}

		if len(c.args) != 1 {
			return errInvalidSyntax
		}

		valid, err := directory.IsValidUser(ctx, c.args[0])
		if err != nil {
			return err
		}

		if !valid {
			log.DebugContext(ctx).
				Str("name", c.args[0]).
				Msg("unknown user")

			return s.send(&rUnknownUser)
		}

		s.user = c.args[0]
		return s.send(&rOk)
	}
}

func pass(store mailbox.Store) handler {
	var (
		rNoUser     = reply{false, "no user given"}
		rAuthFailed = reply{false, "authentication failed"}
		rLocked     = reply{false, "mailbox in use"}
	)

	return func(ctx context.Context, s *session, c *command) error {
		if !s.state.in(sAuthorization) {
			return errBadSequence
		}

		if len(c.args) < 1 {
			return errInvalidSyntax
		}

		if s.user == "" {
			return s.send(&rNoUser)
		}

		mb, err := store.Open(ctx, s.user)
		if err != nil {
			if errors.Is(err, mailbox.ErrUnknownUser) {
				metrics.Authentication(protocolName, false)
				return s.send(&rAuthFailed)
			}

			return err
		}

		if err := mb.Load(ctx, []byte(strings.Join(c.args, " "))); err != nil {
			if err := mb.Close(ctx); err != nil {
				log.WarnContext(ctx).
					Err(err).
					Msg("could not close mailbox")
			}

			switch {
			case errors.Is(err, mailbox.ErrAuthentication):
				metrics.Authentication(protocolName, false)
				return s.send(&rAuthFailed)

			case errors.Is(err, mailbox.ErrLocked):
				return s.send(&rLocked)

			default:
				return err
			}
		}

		metrics.Authentication(protocolName, true)

		s.mailbox = mb
		s.messages = mb.Messages()
		s.index = newIndex(len(s.messages))
		s.state = sTransaction

		log.InfoContext(ctx).
			Str("user", s.user).
			Int("messages", s.index.total()).
			Msg("mailbox opened")

		return s.send(&reply{
			true,
			fmt.Sprintf("mailbox has %d messages (%d octets)", mb.Count(false), mb.Size()),
		})
	}
}

func stat() handler {
	return func(_ context.Context, s *session, _ *command) error {
		if !s.state.in(sTransaction) {
			return errBadSequence
		}

		return s.send(&reply{
			true,
			fmt.Sprintf("%d %d", s.mailbox.Count(false), s.mailbox.Size()),
		})
	}
}

func list() handler {
	return func(_ context.Context, s *session, c *command) error {
		if !s.state.in(sTransaction) {
			return errBadSequence
		}

		switch len(c.args) {
		case 0:
			live := s.index.live()

			if err := s.send(&reply{true, fmt.Sprintf("%d messages", len(live))}); err != nil {
				return err
			}

			for _, n := range live {
				fmt.Fprintf(s, "%d %d", n, s.message(n).Size()) // nolint:errcheck
				s.Endline()                                     // nolint:errcheck
			}

			s.WriteString(".") // nolint:errcheck
			s.Endline()        // nolint:errcheck

			return s.Flush()

		case 1:
			n, err := c.parseIndexArg(0)
			if err != nil {
				return err
			}

			// the range includes messages tagged for deletion, unlike RETR.
			if n < 1 || n > s.mailbox.Count(true) || s.index.tag(n) != tagLive {
				return errNoSuchMessage
			}

			return s.send(&reply{true, fmt.Sprintf("%d %d", n, s.message(n).Size())})

		default:
			return errInvalidSyntax
		}
	}
}

func retr() handler {
	return func(ctx context.Context, s *session, c *command) error {
		if !s.state.in(sTransaction) {
			return errBadSequence
		}

		if len(c.args) != 1 {
			return errInvalidSyntax
		}

		n, err := c.parseIndexArg(0)
		if err != nil {
			return err
		}

		// the range excludes messages tagged for deletion, unlike LIST.
		if n < 1 || n > s.mailbox.Count(false) || s.index.tag(n) != tagLive {
			return errNoSuchMessage
		}

		message := s.message(n)

		body, err := message.Body()
		if err != nil {
			return err
		}

		defer body.Close()

		if err := s.send(&reply{true, fmt.Sprintf("%d %d", n, message.Size())}); err != nil {
			return err
		}

		if err := s.SetWriteTimeout(s.timeout); err != nil {
			return err
		}

		w := s.DotWriter()

		if _, err := io.Copy(w, body); err != nil {
			return err
		}

		if err := w.Close(); err != nil {
			return err
		}

		if err := s.Flush(); err != nil {
			return err
		}

		metrics.MessagesRetrieved.Inc()

		log.DebugContext(ctx).
			Int("message", n).
			Msg("message retrieved")

		return nil
	}
}

func dele() handler {
	var (
		rOk             = reply{true, "message deleted"}
		rAlreadyDeleted = reply{false, "message already deleted"}
	)

	return func(_ context.Context, s *session, c *command) error {
		if !s.state.in(sTransaction) {
			return errBadSequence
		}

		if len(c.args) != 1 {
			return errInvalidSyntax
		}

		n, err := c.parseIndexArg(0)
		if err != nil {
			return err
		}

		switch s.index.tag(n) {
		case tagLive:
			s.index.delete(n)
			s.message(n).TagForDeletion()

			return s.send(&rOk)

		case tagDeleted:
			return s.send(&rAlreadyDeleted)

		default:
			return errNoSuchMessage
		}
	}
}

func rset() handler {
	return func(_ context.Context, s *session, _ *command) error {
		if !s.state.in(sTransaction) {
			return errBadSequence
		}

		for _, n := range s.index.deleted() {
			s.message(n).Undelete()
		}

		s.index.reset()

		return s.send(&reply{
			true,
			fmt.Sprintf("mailbox has %d messages (%d octets)", s.mailbox.Count(false), s.mailbox.Size()),
		})
	}
}

func noop() handler {
	rOk := reply{true, ""}

	return func(_ context.Context, s *session, _ *command) error {
		return s.send(&rOk)
	}
}

func quit() handler {
	rBye := reply{true, "closing transmission channel"}

	return func(ctx context.Context, s *session, _ *command) error {
		if s.mailbox != nil {
			deleted := len(s.index.deleted())

			if err := s.mailbox.Commit(ctx); err != nil {
				return err
			}

			metrics.MessagesDeleted.Add(float64(deleted))
		}

		if err := s.send(&rBye); err != nil {
			return err
		}

		return errCloseSession
	}
}
