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
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"strings"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/minimail/internal/mailbox"
	"github.com/lukasdietrich/minimail/internal/textproto"
)

type fakeMessage struct {
	body    string
	deleted bool
}

func (m *fakeMessage) IsDeleted() bool {
	return m.deleted
}

func (m *fakeMessage) TagForDeletion() {
	m.deleted = true
}

func (m *fakeMessage) Undelete() {
	m.deleted = false
}

func (m *fakeMessage) Size() int64 {
	return int64(len(m.body))
}

func (m *fakeMessage) Body() (io.ReadCloser, error) {
	return ioutil.NopCloser(strings.NewReader(m.body)), nil
}

type fakeMailbox struct {
	password  string
	loadErr   error
	commitErr error
	messages  []*fakeMessage

	loaded    bool
	committed bool
	closed    bool
}

func newFakeMailbox(password string, bodies ...string) *fakeMailbox {
	mb := fakeMailbox{password: password}
	for _, body := range bodies {
		mb.messages = append(mb.messages, &fakeMessage{body: body})
	}

	return &mb
}

func (mb *fakeMailbox) Load(_ context.Context, credential []byte) error {
	if mb.loadErr != nil {
		return mb.loadErr
	}

	if string(credential) != mb.password {
		return mailbox.ErrAuthentication
	}

	mb.loaded = true
	return nil
}

func (mb *fakeMailbox) Messages() []mailbox.Message {
	messages := make([]mailbox.Message, len(mb.messages))
	for i, m := range mb.messages {
		messages[i] = m
	}

	return messages
}

func (mb *fakeMailbox) Count(includeDeleted bool) int {
	var count int
	for _, m := range mb.messages {
		if includeDeleted || !m.deleted {
			count++
		}
	}

	return count
}

func (mb *fakeMailbox) Size() int64 {
	var size int64
	for _, m := range mb.messages {
		if !m.deleted {
			size += m.Size()
		}
	}

	return size
}

func (mb *fakeMailbox) Commit(context.Context) error {
	if mb.commitErr != nil {
		return mb.commitErr
	}

	var kept []*fakeMessage
	for _, m := range mb.messages {
		if !m.deleted {
			kept = append(kept, m)
		}
	}

	mb.messages = kept
	mb.committed = true
	return nil
}

func (mb *fakeMailbox) Close(context.Context) error {
	mb.closed = true
	return nil
}

func (mb *fakeMailbox) bodies() []string {
	var bodies []string
	for _, m := range mb.messages {
		bodies = append(bodies, m.body)
	}

	return bodies
}

type baseSessionTestSuite struct {
	suite.Suite

	store *mailbox.MockStore
	proto *Proto
}

func (s *baseSessionTestSuite) SetupTest() {
	s.store = new(mailbox.MockStore)
	s.proto = New(s.store, textproto.SessionOptions{
		Hostname: "mail.example.com",
		Timeout:  time.Minute,
	})
}

func (s *baseSessionTestSuite) TearDownTest() {
	s.store.AssertExpectations(s.T())
}

func (s *baseSessionTestSuite) expectUser(name string, mb *fakeMailbox) {
	s.store.On("IsValidUser", mock.Anything, name).Return(true, nil)
	s.store.On("Open", mock.Anything, name).Return(mb, nil).Maybe()
}

func (s *baseSessionTestSuite) expectUnknownUser(name string) {
	s.store.On("IsValidUser", mock.Anything, name).Return(false, nil)
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

	s.proto.Handle(textproto.NewConn(context.Background(), rw))

	replies := strings.Split(strings.TrimSuffix(output.String(), "\r\n"), "\r\n")
	s.Require().NotEmpty(replies)
	s.Require().Equal("+OK POP3 server ready <mail.example.com>", replies[0])

	return replies[1:]
}
