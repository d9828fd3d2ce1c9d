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
	"time"

	"github.com/lukasdietrich/minimail/internal/log"
	"github.com/lukasdietrich/minimail/internal/mailbox"
	"github.com/lukasdietrich/minimail/internal/textproto"
)

type sessionState uint

const (
	sAuthorization sessionState = iota
	sTransaction
)

func (s sessionState) String() string {
	return [...]string{
		"authorization",
		"transaction",
	}[s]
}

func (s sessionState) in(any ...sessionState) bool {
	for _, other := range any {
		if other == s {
			return true
		}
	}

	return false
}

type session struct {
	textproto.Conn

	timeout time.Duration
	state   sessionState
	lastOk  bool

	// user is the tentative identity given by USER.
	user string

	mailbox  mailbox.Mailbox
	messages []mailbox.Message
	index    *index
}

func (s *session) send(r *reply) error {
	if err := s.SetWriteTimeout(s.timeout); err != nil {
		return err
	}

	s.lastOk = r.ok
	return r.writeTo(s)
}

func (s *session) read(c *command) error {
	if err := s.SetReadTimeout(s.timeout); err != nil {
		return err
	}

	return c.readFrom(s)
}

// message returns the message behind a stable number.
func (s *session) message(n int) mailbox.Message {
	return s.messages[n-1]
}

func (s *session) closeMailbox(ctx context.Context) {
	if s.mailbox == nil {
		return
	}

	if err := s.mailbox.Close(ctx); err != nil {
		log.WarnContext(ctx).
			Err(err).
			Msg("could not close mailbox")
	}

	s.mailbox = nil
}
