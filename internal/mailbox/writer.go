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

	"github.com/lukasdietrich/minimail/internal/database"
	"github.com/lukasdietrich/minimail/internal/log"
	"github.com/lukasdietrich/minimail/internal/models"
	"github.com/lukasdietrich/minimail/internal/storage"
)

var errAborted = errors.New("mailbox: writer aborted")

type cacheResult struct {
	entry storage.CacheEntry
	err   error
}

// writer streams lines into the cache of the bundled Store and copies the cached message to every
// recipient on Close.
type writer struct {
	store    *store
	sender   string
	to       []Recipient
	pipe     *io.PipeWriter
	done     <-chan cacheResult
	finished bool
}

func (s *store) NewWriter(ctx context.Context, sender string, to []Recipient) (Writer, error) {
	if len(to) == 0 {
		return nil, ErrNoRecipients
	}

	r, w := io.Pipe()
	done := make(chan cacheResult, 1)

	go func() {
		entry, err := s.cache.Write(ctx, r)
		r.CloseWithError(err) // nolint:errcheck
		done <- cacheResult{entry: entry, err: err}
	}()

	return &writer{
		store:  s,
		sender: sender,
		to:     to,
		pipe:   w,
		done:   done,
	}, nil
}

func (w *writer) WriteLine(line string) error {
	if w.finished {
		return ErrWriterClosed
	}

	_, err := io.WriteString(w.pipe, line+"\n")
	return err
}

func (w *writer) Close(ctx context.Context) error {
	entry, err := w.finish(nil)
	if err != nil {
		return err
	}

	defer w.release(ctx, entry)

	return w.store.deliver(ctx, w.sender, w.to, entry)
}

func (w *writer) Abort(ctx context.Context) error {
	entry, err := w.finish(errAborted)
	if err != nil {
		if errors.Is(err, errAborted) {
			return nil
		}

		return err
	}

	w.release(ctx, entry)
	return nil
}

func (w *writer) finish(cause error) (storage.CacheEntry, error) {
	if w.finished {
		return nil, ErrWriterClosed
	}

	w.finished = true
	w.pipe.CloseWithError(cause) // nolint:errcheck

	result := <-w.done
	return result.entry, result.err
}

func (w *writer) release(ctx context.Context, entry storage.CacheEntry) {
	if err := entry.Release(ctx); err != nil {
		log.WarnContext(ctx).
			Err(err).
			Msg("could not release cache entry")
	}
}

func (s *store) deliver(
	ctx context.Context,
	sender string,
	to []Recipient,
	entry storage.CacheEntry,
) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}

	var ids []string
	defer tx.RollbackWith(func() { // nolint:errcheck
		log.WarnContext(ctx).Msg("an error occurred during delivery, rolling back")
		s.removeBlobs(ctx, ids)
	})

	receivedAt := s.now().Unix()

	for _, rcpt := range to {
		id, err := s.deliverTo(ctx, tx, rcpt.User, sender, receivedAt, entry)
		if id != "" {
			ids = append(ids, id)
		}

		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.InfoContext(ctx).
		Str("sender", sender).
		Int("recipients", len(to)).
		Int64("size", entry.Size()).
		Msg("message delivered")

	return nil
}

func (s *store) deliverTo(
	ctx context.Context,
	q database.Queryer,
	owner models.Username,
	sender string,
	receivedAt int64,
	entry storage.CacheEntry,
) (string, error) {
	r, err := entry.Reader()
	if err != nil {
		return "", err
	}

	id, size, err := s.blobs.Write(ctx, r)
	if err != nil {
		return "", err
	}

	message := models.MessageEntity{
		ID:         id,
		Owner:      owner,
		ReceivedAt: receivedAt,
		ReturnPath: sender,
		Size:       size,
	}

	return id, s.messageDao.Insert(ctx, q, &message)
}
