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
	"time"

	"github.com/lukasdietrich/minimail/internal/crypto"
	"github.com/lukasdietrich/minimail/internal/database"
	"github.com/lukasdietrich/minimail/internal/log"
	"github.com/lukasdietrich/minimail/internal/models"
	"github.com/lukasdietrich/minimail/internal/storage"
)

// ErrUserExists is returned when adding a user that already exists.
var ErrUserExists = errors.New("mailbox: user already exists")

// Accounts manages the users of the bundled Store.
type Accounts struct {
	conn       database.Conn
	userDao    database.UserDao
	messageDao database.MessageDao
	blobs      storage.Blobs
	now        func() time.Time
}

// NewAccounts creates a new Accounts service.
func NewAccounts(
	conn database.Conn,
	userDao database.UserDao,
	messageDao database.MessageDao,
	blobs storage.Blobs,
) *Accounts {
	return &Accounts{
		conn:       conn,
		userDao:    userDao,
		messageDao: messageDao,
		blobs:      blobs,
		now:        time.Now,
	}
}

// Add creates a new user with a password.
func (a *Accounts) Add(ctx context.Context, name, pass string) (models.Username, error) {
	username, err := models.ParseUsername(name, nil)
	if err != nil {
		return "", err
	}

	now := a.now().Unix()
	user := models.UserEntity{
		Name:      username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := crypto.Hash(&user, []byte(pass)); err != nil {
		return "", err
	}

	if err := a.userDao.Insert(ctx, a.conn, &user); err != nil {
		if database.IsErrUnique(err) {
			return "", ErrUserExists
		}

		return "", err
	}

	log.InfoContext(ctx).
		Str("user", username.String()).
		Msg("user added")

	return username, nil
}

// List returns all users ordered by name.
func (a *Accounts) List(ctx context.Context) ([]models.UserEntity, error) {
	return a.userDao.FindAll(ctx, a.conn)
}

// SetPassword replaces the password of an existing user.
func (a *Accounts) SetPassword(ctx context.Context, name, pass string) error {
	user, err := a.find(ctx, name)
	if err != nil {
		return err
	}

	if err := crypto.Hash(user, []byte(pass)); err != nil {
		return err
	}

	user.UpdatedAt = a.now().Unix()

	if err := a.userDao.Update(ctx, a.conn, user); err != nil {
		return err
	}

	log.InfoContext(ctx).
		Str("user", user.Name.String()).
		Msg("password changed")

	return nil
}

// Remove deletes a user together with all of its messages.
func (a *Accounts) Remove(ctx context.Context, name string) error {
	user, err := a.find(ctx, name)
	if err != nil {
		return err
	}

	tx, err := a.conn.Begin(ctx)
	if err != nil {
		return err
	}

	defer tx.Rollback() // nolint:errcheck

	messages, err := a.messageDao.FindByOwner(ctx, tx, user.Name)
	if err != nil {
		return err
	}

	if err := a.userDao.Delete(ctx, tx, user); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	for _, message := range messages {
		if err := a.blobs.Delete(ctx, message.ID); err != nil {
			log.WarnContext(ctx).
				Str("blob", message.ID).
				Err(err).
				Msg("could not remove blob")
		}
	}

	log.InfoContext(ctx).
		Str("user", user.Name.String()).
		Int("messages", len(messages)).
		Msg("user removed")

	return nil
}

func (a *Accounts) find(ctx context.Context, name string) (*models.UserEntity, error) {
	username, err := models.ParseUsername(name, nil)
	if err != nil {
		return nil, ErrUnknownUser
	}

	user, err := a.userDao.FindByName(ctx, a.conn, username)
	if err != nil {
		if database.IsErrNoRows(err) {
			return nil, ErrUnknownUser
		}

		return nil, err
	}

	return user, nil
}
