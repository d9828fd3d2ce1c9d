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
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/lukasdietrich/minimail/internal/database"
	"github.com/lukasdietrich/minimail/internal/log"
	"github.com/lukasdietrich/minimail/internal/models"
	"github.com/lukasdietrich/minimail/internal/storage"
)

func init() {
	viper.SetDefault("mail.domains", []string{})
	viper.SetDefault("security.auth.minduration", "1s")
}

// StoreOptions are the options for the bundled Store.
type StoreOptions struct {
	// Domains are the local domains. Addresses of other domains are never resolved.
	Domains models.Domains
	// MinAuthDuration is the minimum time a credential check takes.
	MinAuthDuration time.Duration
}

// StoreOptionsFromViper reads StoreOptions from viper.
func StoreOptionsFromViper() (StoreOptions, error) {
	domains, err := models.NewDomains(viper.GetStringSlice("mail.domains"))
	if err != nil {
		return StoreOptions{}, fmt.Errorf("invalid local domain: %w", err)
	}

	return StoreOptions{
		Domains:         domains,
		MinAuthDuration: viper.GetDuration("security.auth.minduration"),
	}, nil
}

type store struct {
	conn       database.Conn
	userDao    database.UserDao
	messageDao database.MessageDao
	blobs      storage.Blobs
	cache      storage.Cache
	locks      *locks
	opts       StoreOptions
	now        func() time.Time
}

// NewStore creates the bundled Store. Users and message metadata are kept in the database, the
// content of messages is kept as blobs.
func NewStore(
	conn database.Conn,
	userDao database.UserDao,
	messageDao database.MessageDao,
	blobs storage.Blobs,
	cache storage.Cache,
	opts StoreOptions,
) Store {
	return &store{
		conn:       conn,
		userDao:    userDao,
		messageDao: messageDao,
		blobs:      blobs,
		cache:      cache,
		locks:      newLocks(),
		opts:       opts,
		now:        time.Now,
	}
}

func (s *store) IsValidUser(ctx context.Context, name string) (bool, error) {
	_, err := s.findUser(ctx, name)
	if err != nil {
		if isErrUnknownUser(err) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (s *store) Open(ctx context.Context, name string) (Mailbox, error) {
	user, err := s.findUser(ctx, name)
	if err != nil {
		return nil, err
	}

	return &inbox{store: s, user: user}, nil
}

func (s *store) Resolve(ctx context.Context, name string) (*Recipient, error) {
	user, err := s.findUser(ctx, name)
	if err != nil {
		return nil, err
	}

	return &Recipient{User: user.Name}, nil
}

func (s *store) findUser(ctx context.Context, name string) (*models.UserEntity, error) {
	username, err := models.ParseUsername(name, s.opts.Domains)
	if err != nil {
		log.DebugContext(ctx).
			Str("name", name).
			Err(err).
			Msg("not a local username")

		return nil, fmt.Errorf("%w: %v", ErrUnknownUser, err)
	}

	user, err := s.userDao.FindByName(ctx, s.conn, username)
	if err != nil {
		if database.IsErrNoRows(err) {
			return nil, ErrUnknownUser
		}

		return nil, err
	}

	return user, nil
}

func (s *store) ensureMinAuthDuration(start time.Time) {
	remaining := s.opts.MinAuthDuration - time.Since(start)

	if remaining > 0 {
		time.Sleep(remaining)
	}
}

func (s *store) removeBlobs(ctx context.Context, ids []string) {
	for _, id := range ids {
		if err := s.blobs.Delete(ctx, id); err != nil {
			log.WarnContext(ctx).
				Str("blob", id).
				Err(err).
				Msg("could not remove blob")
		}
	}
}

func isErrUnknownUser(err error) bool {
	return errors.Is(err, ErrUnknownUser)
}
