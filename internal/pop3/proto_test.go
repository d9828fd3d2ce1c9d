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
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/minimail/internal/mailbox"
)

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

type SessionTestSuite struct {
	baseSessionTestSuite

	alice *fakeMailbox
}

func (s *SessionTestSuite) SetupTest() {
	s.baseSessionTestSuite.SetupTest()

	s.alice = newFakeMailbox("secret", "aaa\r\n", "bbbbbb\r\n", "cc\r\n")
}

func (s *SessionTestSuite) login(lines ...string) []string {
	s.expectUser("alice", s.alice)

	replies := s.run(append([]string{"USER alice", "PASS secret"}, lines...)...)
	s.Require().True(len(replies) >= 2)
	s.Equal([]string{"+OK user accepted", "+OK mailbox has 3 messages (17 octets)"}, replies[:2])

	return replies[2:]
}

func (s *SessionTestSuite) TestScenario() {
	replies := s.login("LIST", "DELE 2", "LIST", "QUIT")

	s.Equal([]string{
		"+OK 3 messages",
		"1 5",
		"2 8",
		"3 4",
		".",
		"+OK message deleted",
		"+OK 2 messages",
		"1 5",
		"3 4",
		".",
		"+OK closing transmission channel",
	}, replies)

	s.True(s.alice.committed)
	s.True(s.alice.closed)
	s.Equal([]string{"aaa\r\n", "cc\r\n"}, s.alice.bodies())
}

func (s *SessionTestSuite) TestStat() {
	s.Equal([]string{"+OK 3 17"}, s.login("STAT"))
}

func (s *SessionTestSuite) TestRetr() {
	replies := s.login("RETR 1", "RETR 3")

	s.Equal([]string{
		"+OK 1 5",
		"aaa",
		".",
		"+OK 3 4",
		"cc",
		".",
	}, replies)
}

func (s *SessionTestSuite) TestRetrDotStuffing() {
	s.alice = newFakeMailbox("secret", "Hi\r\n.dot\r\n")

	s.expectUser("alice", s.alice)
	replies := s.run("USER alice", "PASS secret", "RETR 1")

	s.Equal([]string{
		"+OK user accepted",
		"+OK mailbox has 1 messages (10 octets)",
		"+OK 1 10",
		"Hi",
		"..dot",
		".",
	}, replies)
}

func (s *SessionTestSuite) TestStableNumbers() {
	replies := s.login("DELE 1", "RETR 2", "STAT", "LIST 3", "LIST 1", "RETR 1")

	s.Equal([]string{
		"+OK message deleted",
		"+OK 2 8",
		"bbbbbb",
		".",
		"+OK 2 12",
		"+OK 3 4",
		"-ERR no such message",
		"-ERR no such message",
	}, replies)
}

// LIST checks the range against every message including deleted ones, while RETR only counts
// messages that are not deleted. With message 1 deleted, message 3 can be listed but not
// retrieved.
func (s *SessionTestSuite) TestListAndRetrRangeAsymmetry() {
	replies := s.login("DELE 1", "LIST 3", "RETR 3", "RETR 2")

	s.Equal([]string{
		"+OK message deleted",
		"+OK 3 4",
		"-ERR no such message",
		"+OK 2 8",
		"bbbbbb",
		".",
	}, replies)
}

func (s *SessionTestSuite) TestResetIsInverse() {
	replies := s.login("DELE 1", "DELE 3", "STAT", "LIST", "RSET", "STAT", "LIST")

	s.Equal([]string{
		"+OK message deleted",
		"+OK message deleted",
		"+OK 1 8",
		"+OK 1 messages",
		"2 8",
		".",
		"+OK mailbox has 3 messages (17 octets)",
		"+OK 3 17",
		"+OK 3 messages",
		"1 5",
		"2 8",
		"3 4",
		".",
	}, replies)

	for _, m := range s.alice.messages {
		s.False(m.deleted)
	}
}

func (s *SessionTestSuite) TestDoubleDelete() {
	replies := s.login("DELE 2", "DELE 2", "STAT", "RSET", "STAT")

	s.Equal([]string{
		"+OK message deleted",
		"-ERR message already deleted",
		"+OK 2 9",
		"+OK mailbox has 3 messages (17 octets)",
		"+OK 3 17",
	}, replies)
}

func (s *SessionTestSuite) TestDeleteOutOfRange() {
	replies := s.login("DELE 0", "DELE 4", "DELE -1", "DELE x", "DELE", "DELE 1 2")

	s.Equal([]string{
		"-ERR no such message",
		"-ERR no such message",
		"-ERR no such message",
		"-ERR invalid syntax",
		"-ERR invalid syntax",
		"-ERR invalid syntax",
	}, replies)
}

func (s *SessionTestSuite) TestListAndRetrSyntax() {
	replies := s.login("LIST 1 2", "LIST x", "RETR", "RETR x", "RETR 1 2", "LIST 0")

	s.Equal([]string{
		"-ERR invalid syntax",
		"-ERR invalid syntax",
		"-ERR invalid syntax",
		"-ERR invalid syntax",
		"-ERR invalid syntax",
		"-ERR no such message",
	}, replies)
}

func (s *SessionTestSuite) TestEmptyMailbox() {
	s.alice = newFakeMailbox("secret")

	s.expectUser("alice", s.alice)
	replies := s.run("USER alice", "PASS secret", "LIST", "STAT", "LIST 1", "RETR 1")

	s.Equal([]string{
		"+OK user accepted",
		"+OK mailbox has 0 messages (0 octets)",
		"+OK 0 messages",
		".",
		"+OK 0 0",
		"-ERR no such message",
		"-ERR no such message",
	}, replies)
}

func (s *SessionTestSuite) TestUnknownUserKeepsIdentity() {
	s.expectUser("alice", s.alice)
	s.expectUnknownUser("bob")

	replies := s.run("USER alice", "USER bob", "PASS secret")

	s.Equal([]string{
		"+OK user accepted",
		"-ERR unknown user",
		"+OK mailbox has 3 messages (17 octets)",
	}, replies)
}

func (s *SessionTestSuite) TestPassWithoutUser() {
	s.Equal([]string{"-ERR no user given"}, s.run("PASS secret"))
}

func (s *SessionTestSuite) TestPassWithoutArgument() {
	s.expectUser("alice", s.alice)

	s.Equal([]string{"+OK user accepted", "-ERR invalid syntax"}, s.run("USER alice", "PASS"))
}

func (s *SessionTestSuite) TestPassJoinsArguments() {
	s.alice.password = "correct horse battery"
	s.expectUser("alice", s.alice)

	replies := s.run("USER alice", "PASS correct horse battery")

	s.Equal([]string{
		"+OK user accepted",
		"+OK mailbox has 3 messages (17 octets)",
	}, replies)
}

func (s *SessionTestSuite) TestWrongPassword() {
	s.expectUser("alice", s.alice)

	replies := s.run("USER alice", "PASS wrong", "STAT", "PASS secret", "STAT")

	s.Equal([]string{
		"+OK user accepted",
		"-ERR authentication failed",
		"-ERR bad sequence of commands",
		"+OK mailbox has 3 messages (17 octets)",
		"+OK 3 17",
	}, replies)
}

func (s *SessionTestSuite) TestUserVanished() {
	s.store.On("IsValidUser", mock.Anything, "alice").Return(true, nil)
	s.store.On("Open", mock.Anything, "alice").Return(nil, mailbox.ErrUnknownUser)

	replies := s.run("USER alice", "PASS secret")

	s.Equal([]string{"+OK user accepted", "-ERR authentication failed"}, replies)
}

func (s *SessionTestSuite) TestLocked() {
	s.alice.loadErr = mailbox.ErrLocked
	s.expectUser("alice", s.alice)

	replies := s.run("USER alice", "PASS secret", "STAT")

	s.Equal([]string{
		"+OK user accepted",
		"-ERR mailbox in use",
		"-ERR bad sequence of commands",
	}, replies)
	s.True(s.alice.closed)
}

func (s *SessionTestSuite) TestBadSequenceBeforeLogin() {
	replies := s.run("STAT", "LIST", "RETR 1", "DELE 1", "RSET")

	s.Equal([]string{
		"-ERR bad sequence of commands",
		"-ERR bad sequence of commands",
		"-ERR bad sequence of commands",
		"-ERR bad sequence of commands",
		"-ERR bad sequence of commands",
	}, replies)
}

func (s *SessionTestSuite) TestBadSequenceAfterLogin() {
	replies := s.login("USER alice", "PASS secret", "NOOP")

	s.Equal([]string{
		"-ERR bad sequence of commands",
		"-ERR bad sequence of commands",
		"+OK",
	}, replies)
}

func (s *SessionTestSuite) TestUserSyntax() {
	s.Equal([]string{"-ERR invalid syntax", "-ERR invalid syntax"}, s.run("USER", "USER alice bob"))
}

func (s *SessionTestSuite) TestBlankLinesAndUnknownCommands() {
	replies := s.run("", "CAPA", "", "", "noop", "NoOp")

	s.Equal([]string{
		"-ERR command not implemented",
		"+OK",
		"+OK",
	}, replies)
}

func (s *SessionTestSuite) TestCaseInsensitive() {
	s.expectUser("alice", s.alice)

	replies := s.run("user alice", "pAsS secret", "stat")

	s.Equal([]string{
		"+OK user accepted",
		"+OK mailbox has 3 messages (17 octets)",
		"+OK 3 17",
	}, replies)
}

func (s *SessionTestSuite) TestQuitBeforeLogin() {
	s.Equal([]string{"+OK closing transmission channel"}, s.run("QUIT", "NOOP"))
}

func (s *SessionTestSuite) TestDisconnectDoesNotCommit() {
	replies := s.login("DELE 1")

	s.Equal([]string{"+OK message deleted"}, replies)
	s.False(s.alice.committed)
	s.True(s.alice.closed)
	s.Len(s.alice.messages, 3)
}

func (s *SessionTestSuite) TestQuitWithoutDeletions() {
	replies := s.login("RETR 2", "QUIT")

	s.Equal([]string{"+OK 2 8", "bbbbbb", ".", "+OK closing transmission channel"}, replies)
	s.True(s.alice.committed)
	s.Len(s.alice.messages, 3)
}

func (s *SessionTestSuite) TestCommitFailure() {
	s.alice.commitErr = errors.New("disk on fire")

	replies := s.login("DELE 1", "QUIT", "NOOP")

	s.Equal([]string{
		"+OK message deleted",
		"-ERR action aborted: local error in processing",
	}, replies)
	s.True(s.alice.closed)
}

func (s *SessionTestSuite) TestDirectoryFailure() {
	s.store.On("IsValidUser", mock.Anything, "alice").Return(false, errors.New("database gone"))

	replies := s.run("USER alice", "NOOP")

	s.Equal([]string{"-ERR action aborted: local error in processing"}, replies)
}
