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
	"context"
	"errors"
	"fmt"

	"github.com/lukasdietrich/minimail/internal/log"
	"github.com/lukasdietrich/minimail/internal/mailbox"
	"github.com/lukasdietrich/minimail/internal/metrics"
)

var (
	rOk           = reply{250, "OK"}
	rUserNotFound = reply{550, "User not found"}
)

type handler func(context.Context, *session, *command) error

func helo(hostname string) handler {
	rHelo := reply{250, hostname}

	return func(ctx context.Context, s *session, _ *command) error {
		s.state = sGreeted
		s.resetTransaction()

		return s.send(&rHelo)
	}
}

func rset() handler {
	return func(ctx context.Context, s *session, _ *command) error {
		s.state = sGreeted
		s.resetTransaction()

		return s.send(&rOk)
	}
}

func vrfy(directory mailbox.Directory) handler {
	return func(ctx context.Context, s *session, c *command) error {
		if len(c.args) != 1 {
			return errInvalidSyntax
		}

		valid, err := directory.IsValidUser(ctx, c.args[0])
		if err != nil {
			return err
		}

		if !valid {
			return s.send(&rUserNotFound)
		}

		return s.send(&rOk)
	}
}

func noop() handler {
	return func(ctx context.Context, s *session, _ *command) error {
		return s.send(&rOk)
	}
}

func quit(hostname string) handler {
	rQuit := reply{221, hostname + " Service closing transmission channel"}

	return func(ctx context.Context, s *session, _ *command) error {
		if err := s.send(&rQuit); err != nil {
			return err
		}

		return errCloseSession
	}
}

func mail() handler {
	return func(ctx context.Context, s *session, c *command) error {
		if !s.state.in(sGreeted, sSender) {
			return errBadSequence
		}

		sender, err := c.path("FROM")
		if err != nil {
			return err
		}

		s.sender = sender
		s.state = sSender

		log.DebugContext(ctx).
			Str("sender", sender).
			Msg("sender accepted")

		return s.send(&rOk)
	}
}

func rcpt(store mailbox.Store, limits Limits) handler {
	rTooManyRecipients := smtpError{452, "Too many recipients", nil}

	return func(ctx context.Context, s *session, c *command) error {
		if !s.state.in(sSender, sRecipients) {
			return errBadSequence
		}

		address, err := c.path("TO")
		if err != nil {
			return err
		}

		recipient, err := store.Resolve(ctx, address)
		if err != nil {
			if errors.Is(err, mailbox.ErrUnknownUser) {
				log.DebugContext(ctx).
					Err(err).
					Str("address", address).
					Msg("recipient rejected")

				return s.send(&rUserNotFound)
			}

			return err
		}

		if !s.hasRecipient(*recipient) {
			if limits.MaxRecipients > 0 && len(s.recipients) >= limits.MaxRecipients {
				return rTooManyRecipients
			}

			s.recipients = append(s.recipients, *recipient)
		}

		s.state = sRecipients
		return s.send(&rOk)
	}
}

func data(store mailbox.Store, limits Limits) handler {
	var (
		rStart    = reply{354, "Start mail input; end with <CRLF>.<CRLF>"}
		rTooLarge = reply{552, "Requested mail action aborted: exceeded storage allocation"}
		rFailed   = reply{451, "Requested action aborted: local error in processing"}
	)

	return func(ctx context.Context, s *session, _ *command) error {
		if !s.state.in(sRecipients) {
			return errBadSequence
		}

		w, err := store.NewWriter(ctx, s.sender, s.recipients)
		if err != nil {
			return err
		}

		defer s.resetTransaction()

		if err := s.send(&rStart); err != nil {
			abort(ctx, w)
			return err
		}

		size, err := readBody(s, w, limits.MaxSize)
		if err != nil {
			abort(ctx, w)

			if errors.Is(err, errSizeLimitExceeded) {
				log.InfoContext(ctx).
					Err(err).
					Int64("size", size).
					Msg("message rejected")

				return s.send(&rTooLarge)
			}

			if errors.Is(err, errBodyWrite) {
				log.ErrorContext(ctx).
					Err(err).
					Msg("could not write message")

				return s.send(&rFailed)
			}

			return err
		}

		if err := w.Close(ctx); err != nil {
			log.ErrorContext(ctx).
				Err(err).
				Msg("could not deliver message")

			return s.send(&rFailed)
		}

		metrics.MessagesReceived.Inc()
		metrics.MessagesReceivedBytes.Add(float64(size))

		log.InfoContext(ctx).
			Str("sender", s.sender).
			Int("recipients", len(s.recipients)).
			Int64("size", size).
			Msg("message received")

		return s.send(&rOk)
	}
}

// readBody forwards every line up to the terminating "." to w. A failing writer or an exceeded
// size limit does not stop the reading, so that the whole body is consumed before the session
// replies. Read errors are returned immediately.
func readBody(s *session, w mailbox.Writer, maxSize int64) (int64, error) {
	var (
		limit   = sizeLimit{max: maxSize}
		failure error
	)

	for {
		line, err := s.readLine()
		if err != nil {
			return limit.n, err
		}

		if string(line) == "." {
			return limit.n, failure
		}

		if failure != nil {
			continue
		}

		if failure = limit.add(len(line) + 1); failure != nil {
			continue
		}

		if err := w.WriteLine(string(line)); err != nil {
			failure = fmt.Errorf("%w: %v", errBodyWrite, err)
		}
	}
}

func abort(ctx context.Context, w mailbox.Writer) {
	if err := w.Abort(ctx); err != nil {
		log.WarnContext(ctx).
			Err(err).
			Msg("could not abort message")
	}
}
