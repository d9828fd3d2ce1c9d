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
	"io/ioutil"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"

	"github.com/lukasdietrich/minimail/internal/crypto"
	"github.com/lukasdietrich/minimail/internal/database"
	"github.com/lukasdietrich/minimail/internal/models"
	"github.com/lukasdietrich/minimail/internal/storage"
)

type baseStoreTestSuite struct {
	suite.Suite

	fs       afero.Fs
	conn     database.Conn
	blobs    storage.Blobs
	store    *store
	accounts *Accounts
}

func (s *baseStoreTestSuite) SetupTest() {
	viper.Set("storage.database.filename", ":memory:")
	viper.Set("storage.database.journalmode", "memory")
	viper.Set("crypto.argon2.time", 1)
	viper.Set("crypto.argon2.memory", 64)
	viper.Set("crypto.argon2.threads", 1)

	conn, err := database.OpenConnection()
	s.Require().NoError(err)

	var (
		fs         = afero.NewMemMapFs()
		idGen      = crypto.NewIDGenerator()
		userDao    = database.NewUserDao()
		messageDao = database.NewMessageDao()
	)

	blobs, err := storage.NewBlobs(fs, idGen, storage.BlobsOptions{Foldername: "/mails"})
	s.Require().NoError(err)

	cache, err := storage.NewCache(fs, idGen, storage.CacheOptions{Foldername: "/cache", MemoryLimit: 8})
	s.Require().NoError(err)

	domains, err := models.NewDomains([]string{"example.com"})
	s.Require().NoError(err)

	s.fs = fs
	s.conn = conn
	s.blobs = blobs
	s.store = NewStore(conn, userDao, messageDao, blobs, cache, StoreOptions{Domains: domains}).(*store)
	s.store.now = func() time.Time { return time.Unix(1600000000, 0) }
	s.accounts = NewAccounts(conn, userDao, messageDao, blobs)
}

func (s *baseStoreTestSuite) TearDownTest() {
	s.Require().NoError(s.conn.Close())
}

func (s *baseStoreTestSuite) requireUser(name, pass string) {
	_, err := s.accounts.Add(context.Background(), name, pass)
	s.Require().NoError(err)
}

func (s *baseStoreTestSuite) requireDeliver(sender string, body []string, to ...models.Username) {
	ctx := context.Background()

	var recipients []Recipient
	for _, user := range to {
		recipients = append(recipients, Recipient{User: user})
	}

	w, err := s.store.NewWriter(ctx, sender, recipients)
	s.Require().NoError(err)

	for _, line := range body {
		s.Require().NoError(w.WriteLine(line))
	}

	s.Require().NoError(w.Close(ctx))
}

func (s *baseStoreTestSuite) requireOpen(name, pass string) Mailbox {
	ctx := context.Background()

	mailbox, err := s.store.Open(ctx, name)
	s.Require().NoError(err)
	s.Require().NoError(mailbox.Load(ctx, []byte(pass)))

	return mailbox
}

func (s *baseStoreTestSuite) readBody(message Message) string {
	r, err := message.Body()
	s.Require().NoError(err)

	defer r.Close()

	body, err := ioutil.ReadAll(r)
	s.Require().NoError(err)

	return string(body)
}

func (s *baseStoreTestSuite) countBlobs() int {
	infos, err := afero.ReadDir(s.fs, "/mails")
	s.Require().NoError(err)

	return len(infos)
}
