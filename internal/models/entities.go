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

package models

// UserEntity is the entity for the "users" table.
type UserEntity struct {
	Name      Username `db:"name"`
	Hash      string   `db:"hash"`
	CreatedAt int64    `db:"created_at"`
	UpdatedAt int64    `db:"updated_at"`
}

// MessageEntity is the entity for the "messages" table. The content of a
// message is kept as a blob named by its id.
type MessageEntity struct {
	ID         string   `db:"id"`
	Owner      Username `db:"owner"`
	ReceivedAt int64    `db:"received_at"`
	ReturnPath string   `db:"return_path"`
	Size       int64    `db:"size"`
}
