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
	"time"

	"github.com/spf13/viper"

	"github.com/lukasdietrich/minimail/internal/database"
	"github.com/lukasdietrich/minimail/internal/log"
	"github.com/lukasdietrich/minimail/internal/storage"
)

func init() {
	viper.SetDefault("storage.cleaner.minage", "1h")
}

// Cleaner removes blobs that no message refers to anymore. Those are left behind when removing a
// blob failed after its message was already deleted.
type Cleaner struct {
	conn       database.Conn
	messageDao database.MessageDao
	blobs      storage.Blobs
	minAge     time.Duration
	now        func() time.Time
}

// NewCleaner creates a new Cleaner. Blobs younger than `storage.cleaner.minage` are kept, because
// they may belong to a delivery in progress.
func NewCleaner(conn database.Conn, messageDao database.MessageDao, blobs storage.Blobs) *Cleaner {
	return &Cleaner{
		conn:       conn,
		messageDao: messageDao,
		blobs:      blobs,
		minAge:     viper.GetDuration("storage.cleaner.minage"),
		now:        time.Now,
	}
}

// Clean removes all orphaned blobs and returns how many were removed.
func (c *Cleaner) Clean(ctx context.Context) (int, error) {
	blobs, err := c.blobs.List(ctx)
	if err != nil {
		return 0, err
	}

	var (
		removed int
		cutoff  = c.now().Add(-c.minAge)
	)

	for _, blob := range blobs {
		if blob.ModTime.After(cutoff) {
			continue
		}

		exists, err := c.messageDao.Exists(ctx, c.conn, blob.ID)
		if err != nil {
			return removed, err
		}

		if exists {
			continue
		}

		if err := c.blobs.Delete(ctx, blob.ID); err != nil {
			return removed, err
		}

		removed++
	}

	if removed > 0 {
		log.InfoContext(ctx).
			Int("blobs", removed).
			Msg("orphaned blobs removed")
	}

	return removed, nil
}
