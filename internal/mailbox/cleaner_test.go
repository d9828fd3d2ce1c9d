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

package mailbox

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/minimail/internal/database"
)

func TestCleanerTestSuite(t *testing.T) {
	suite.Run(t, new(CleanerTestSuite))
}

type CleanerTestSuite struct {
	baseStoreTestSuite

	cleaner *Cleaner
}

func (s *CleanerTestSuite) SetupTest() {
	s.baseStoreTestSuite.SetupTest()

	s.cleaner = NewCleaner(s.conn, database.NewMessageDao(), s.blobs)
	s.cleaner.minAge = time.Hour

	s.requireUser("alice", "secret")
	s.requireDeliver("bob@example.org", []string{"Hi"}, "alice")
	s.Require().NoError(afero.WriteFile(s.fs, "/mails/orphan", []byte("lost"), 0600))
}

func (s *CleanerTestSuite) TestCleanOrphans() {
	s.cleaner.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	removed, err := s.cleaner.Clean(context.Background())
	s.Require().NoError(err)
	s.Equal(1, removed)
	s.Equal(1, s.countBlobs())

	exists, err := afero.Exists(s.fs, "/mails/orphan")
	s.Require().NoError(err)
	s.False(exists)

	mailbox := s.requireOpen("alice", "secret")
	s.Require().Len(mailbox.Messages(), 1)
	s.Equal("Hi\n", s.readBody(mailbox.Messages()[0]))
}

func (s *CleanerTestSuite) TestKeepYoungBlobs() {
	removed, err := s.cleaner.Clean(context.Background())
	s.Require().NoError(err)
	s.Zero(removed)
	s.Equal(2, s.countBlobs())
}
