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
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/minimail/internal/mailbox"
	"github.com/lukasdietrich/minimail/internal/models"
	"github.com/lukasdietrich/minimail/internal/textproto"
)

const greeting = "220 mail.example.com Service ready"

type baseSessionTestSuite struct {
	suite.Suite

	store  *mailbox.MockStore
	writer *mailbox.MockWriter
	limits Limits
}

func (s *baseSessionTestSuite) SetupTest() {
	s.store = new(mailbox.MockStore)
	s.writer = new(mailbox.MockWriter)
	s.limits = Limits{
		MaxSize:       1024,
		MaxRecipients: 10,
	}
}

func (s *baseSessionTestSuite) TearDownTest() {
	s.store.AssertExpectations(s.T())
	s.writer.AssertExpectations(s.T())
}

func (s *baseSessionTestSuite) expectRecipient(address string, name models.Username) {
	s.store.
		On("Resolve", mock.Anything, address).
		Return(&mailbox.Recipient{User: name}, nil)
}

func (s *baseSessionTestSuite) expectUnknownRecipient(address string) {
	s.store.
		On("Resolve", mock.Anything, address).
		Return(nil, mailbox.ErrUnknownUser)
}

func (s *baseSessionTestSuite) expectWriter(sender string, names ...models.Username) {
	recipients := make([]mailbox.Recipient, len(names))
	for i, name := range names {
		recipients[i] = mailbox.Recipient{User: name}
	}

	s.store.
		On("NewWriter", mock.Anything, sender, recipients).
		Return(s.writer, nil).
		Once()
}

func (s *baseSessionTestSuite) expectLines(lines ...string) {
	for _, line := range lines {
		s.writer.On("WriteLine", line).Return(nil).Once()
	}
}

// run feeds the lines to a new session and returns all lines sent by the server, without the
// greeting.
func (s *baseSessionTestSuite) run(lines ...string) []string {
	var (
		input  = strings.NewReader(strings.Join(lines, "\r\n") + "\r\n")
		output bytes.Buffer
	)

	rw := struct {
		io.Reader
		io.Writer
	}{input, &output}

	proto := New(s.store, textproto.SessionOptions{
		Hostname: "mail.example.com",
		Timeout:  time.Minute,
	}, s.limits)

	proto.Handle(textproto.NewConn(context.Background(), rw))

	replies := strings.Split(strings.TrimSuffix(output.String(), "\r\n"), "\r\n")
	s.Require().NotEmpty(replies)
	s.Require().Equal(greeting, replies[0])

	return replies[1:]
}
