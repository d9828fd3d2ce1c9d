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
	"time"

	"github.com/lukasdietrich/minimail/internal/mailbox"
	"github.com/lukasdietrich/minimail/internal/textproto"
)

type sessionState uint

const (
	sInit sessionState = iota
	sGreeted
	sSender
	sRecipients
)

func (s sessionState) String() string {
	return [...]string{
		"init",
		"greeted",
		"sender",
		"recipients",
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

	timeout  time.Duration
	state    sessionState
	lastCode int

	sender     string
	recipients []mailbox.Recipient
}

// resetTransaction clears sender and recipients. The session is greeted afterwards, unless it
// has not been greeted yet.
func (s *session) resetTransaction() {
	s.sender = ""
	s.recipients = nil

	if s.state != sInit {
		s.state = sGreeted
	}
}

func (s *session) hasRecipient(rcpt mailbox.Recipient) bool {
	for _, other := range s.recipients {
		if other == rcpt {
			return true
		}
	}

	return false
}

func (s *session) send(r *reply) error {
	if err := s.SetWriteTimeout(s.timeout); err != nil {
		return err
	}

	s.lastCode = r.code
	return r.writeTo(s)
}

func (s *session) read(c *command) error {
	if err := s.SetReadTimeout(s.timeout); err != nil {
		return err
	}

	return c.readFrom(s)
}

func (s *session) readLine() ([]byte, error) {
	if err := s.SetReadTimeout(s.timeout); err != nil {
		return nil, err
	}

	return s.ReadLine()
}
