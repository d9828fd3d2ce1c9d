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
	"io"
	"time"

	"github.com/lukasdietrich/minimail/internal/crypto"
	"github.com/lukasdietrich/minimail/internal/log"
	"github.com/lukasdietrich/minimail/internal/models"
)

// inbox is the Mailbox of the bundled Store.
type inbox struct {
	store    *store
	user     *models.UserEntity
	locked   bool
	messages []*message
}

func (i *inbox) Load(ctx context.Context, credential []byte) error {
	if err := i.verify(ctx, credential); err != nil {
		return err
	}

	if !i.locked {
		if !i.store.locks.lock(i.user.Name) {
			log.InfoContext(ctx).
				Str("user", i.user.Name.String()).
				Msg("mailbox already in use")

			return ErrLocked
		}

		i.locked = true
	}

	entities, err := i.store.messageDao.FindByOwner(ctx, i.store.conn, i.user.Name)
	if err != nil {
		return err
	}

	i.messages = make([]*message, len(entities))
	for j, entity := range entities {
		i.messages[j] = &message{store: i.store, entity: entity}
	}

	log.DebugContext(ctx).
		Str("user", i.user.Name.String()).
		Int("messages", len(i.messages)).
		Msg("mailbox loaded")

	return nil
}

func (i *inbox) verify(ctx context.Context, credential []byte) error {
	defer i.store.ensureMinAuthDuration(time.Now())

	if err := crypto.Verify(i.user, credential); err != nil {
		if errors.Is(err, crypto.ErrPasswordMismatch) {
			log.WarnContext(ctx).
				Str("user", i.user.Name.String()).
				Msg("failed auth attempt: wrong password")

			return ErrAuthentication
		}

		return err
	}

	return nil
}

func (i *inbox) Messages() []Message {
	messages := make([]Message, len(i.messages))
	for j, m := range i.messages {
		messages[j] = m
	}

	return messages
}

func (i *inbox) Count(includeDeleted bool) int {
	if includeDeleted {
		return len(i.messages)
	}

	var count int
	for _, m := range i.messages {
		if !m.deleted {
			count++
		}
	}

	return count
}

func (i *inbox) Size() int64 {
	var size int64
	for _, m := range i.messages {
		if !m.deleted {
			size += m.entity.Size
		}
	}

	return size
}

func (i *inbox) Commit(ctx context.Context) error {
	var deleted []*message
	for _, m := range i.messages {
		if m.deleted {
			deleted = append(deleted, m)
		}
	}

	if len(deleted) == 0 {
		return nil
	}

	tx, err := i.store.conn.Begin(ctx)
	if err != nil {
		return err
	}

	defer tx.Rollback() // nolint:errcheck

	ids := make([]string, len(deleted))
	for j, m := range deleted {
		if err := i.store.messageDao.Delete(ctx, tx, &m.entity); err != nil {
			return err
		}

		ids[j] = m.entity.ID
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.InfoContext(ctx).
		Str("user", i.user.Name.String()).
		Int("messages", len(ids)).
		Msg("messages deleted")

	i.store.removeBlobs(ctx, ids)
	return nil
}

func (i *inbox) Close(ctx context.Context) error {
	if i.locked {
		i.store.locks.unlock(i.user.Name)
		i.locked = false
	}

	return nil
}

type message struct {
	store   *store
	entity  models.MessageEntity
	deleted bool
}

func (m *message) IsDeleted() bool {
	return m.deleted
}

func (m *message) TagForDeletion() {
	m.deleted = true
}

func (m *message) Undelete() {
	m.deleted = false
}

func (m *message) Size() int64 {
	return m.entity.Size
}

func (m *message) Body() (io.ReadCloser, error) {
	return m.store.blobs.Reader(m.entity.ID)
}
