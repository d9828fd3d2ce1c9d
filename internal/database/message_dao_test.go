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

package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/minimail/internal/models"
)

func TestMessageDaoTestSuite(t *testing.T) {
	suite.Run(t, new(MessageDaoTestSuite))
}

type MessageDaoTestSuite struct {
	suite.Suite

	conn       Conn
	userDao    UserDao
	messageDao MessageDao
}

func (s *MessageDaoTestSuite) SetupTest() {
	conn, err := openInMemory()
	s.Require().NoError(err)

	s.conn = conn
	s.userDao = NewUserDao()
	s.messageDao = NewMessageDao()

	ctx := context.Background()
	s.Require().NoError(s.userDao.Insert(ctx, conn, &models.UserEntity{Name: "alice", Hash: "x"}))
	s.Require().NoError(s.userDao.Insert(ctx, conn, &models.UserEntity{Name: "bob", Hash: "y"}))
}

func (s *MessageDaoTestSuite) TearDownTest() {
	s.Require().NoError(s.conn.Close())
}

func (s *MessageDaoTestSuite) insert(id string, owner models.Username, receivedAt int64) {
	s.Require().NoError(s.messageDao.Insert(context.Background(), s.conn, &models.MessageEntity{
		ID:         id,
		Owner:      owner,
		ReceivedAt: receivedAt,
		ReturnPath: "carol@example.com",
		Size:       receivedAt * 10,
	}))
}

func (s *MessageDaoTestSuite) TestFindByOwnerOrder() {
	s.insert("m3", "alice", 30)
	s.insert("m1", "alice", 10)
	s.insert("m2a", "alice", 20)
	s.insert("m2b", "alice", 20)
	s.insert("b1", "bob", 5)

	messages, err := s.messageDao.FindByOwner(context.Background(), s.conn, "alice")
	s.Require().NoError(err)
	s.Require().Len(messages, 4)

	var ids []string
	for _, message := range messages {
		ids = append(ids, message.ID)
	}

	s.Equal([]string{"m1", "m2a", "m2b", "m3"}, ids)
	s.Equal(int64(100), messages[0].Size)
	s.Equal("carol@example.com", messages[0].ReturnPath)
}

func (s *MessageDaoTestSuite) TestFindByOwnerEmpty() {
	messages, err := s.messageDao.FindByOwner(context.Background(), s.conn, "bob")
	s.Require().NoError(err)
	s.Empty(messages)
}

func (s *MessageDaoTestSuite) TestInsertUnknownOwner() {
	err := s.messageDao.Insert(context.Background(), s.conn, &models.MessageEntity{
		ID:    "m1",
		Owner: "nobody",
	})
	s.Error(err)
}

func (s *MessageDaoTestSuite) TestDelete() {
	ctx := context.Background()
	s.insert("m1", "alice", 10)
	s.insert("m2", "alice", 20)

	s.Require().NoError(s.messageDao.Delete(ctx, s.conn, &models.MessageEntity{ID: "m1"}))
	s.True(IsErrNoRows(s.messageDao.Delete(ctx, s.conn, &models.MessageEntity{ID: "m1"})))

	messages, err := s.messageDao.FindByOwner(ctx, s.conn, "alice")
	s.Require().NoError(err)
	s.Require().Len(messages, 1)
	s.Equal("m2", messages[0].ID)
}

func (s *MessageDaoTestSuite) TestDeleteOwnerCascades() {
	ctx := context.Background()
	s.insert("m1", "alice", 10)

	s.Require().NoError(s.userDao.Delete(ctx, s.conn, &models.UserEntity{Name: "alice"}))

	messages, err := s.messageDao.FindByOwner(ctx, s.conn, "alice")
	s.Require().NoError(err)
	s.Empty(messages)
}

func (s *MessageDaoTestSuite) TestExists() {
	s.insert("m1", "alice", 10)

	exists, err := s.messageDao.Exists(context.Background(), s.conn, "m1")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.messageDao.Exists(context.Background(), s.conn, "m2")
	s.Require().NoError(err)
	s.False(exists)
}
