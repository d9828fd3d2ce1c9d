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
	"sync"

	"github.com/lukasdietrich/minimail/internal/models"
)

type locks struct {
	entries map[models.Username]bool
	mu      sync.Mutex
}

func newLocks() *locks {
	return &locks{
		entries: make(map[models.Username]bool),
	}
}

func (l *locks) lock(key models.Username) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.entries[key] {
		return false
	}

	l.entries[key] = true
	return true
}

func (l *locks) unlock(key models.Username) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.entries, key)
}
