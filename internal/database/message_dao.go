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

	"github.com/lukasdietrich/minimail/internal/models"
)

// MessageDao is a data access object for all message related queries.
type MessageDao interface {
	// Insert inserts a new message.
	Insert(context.Context, Queryer, *models.MessageEntity) error
	// Delete deletes a message.
	Delete(context.Context, Queryer, *models.MessageEntity) error
	// Exists checks if a message with the id exists.
	Exists(context.Context, Queryer, string) (bool, error)
	// FindByOwner returns all messages of a user in the order they were received.
	FindByOwner(context.Context, Queryer, models.Username) ([]models.MessageEntity, error)
}

// messageDao is the sqlite implementation of MessageDao.
type messageDao struct{}

// NewMessageDao creates a new MessageDao.
func NewMessageDao() MessageDao {
	return messageDao{}
}

func (messageDao) Insert(ctx context.Context, q Queryer, message *models.MessageEntity) error {
	const query = `
		insert into "messages" (
			"id" ,
			"owner" ,
			"received_at" ,
			"return_path" ,
			"size"
		) values (
			:id ,
			:owner ,
			:received_at ,
			:return_path ,
			:size
		) ;
	`

	result, err := execNamed(ctx, q, query, message)
	if err != nil {
		return err
	}

	return ensureRowsAffected(result)
}

func (messageDao) Delete(ctx context.Context, q Queryer, message *models.MessageEntity) error {
	const query = `
		delete from "messages"
		where "id" = $1 ;
	`

	result, err := execPositional(ctx, q, query, message.ID)
	if err != nil {
		return err
	}

	return ensureRowsAffected(result)
}

func (messageDao) Exists(ctx context.Context, q Queryer, id string) (bool, error) {
	const query = `
		select exists (
			select 1
			from "messages"
			where "id" = $1
		) ;
	`

	var exists bool
	err := selectOne(ctx, q, &exists, query, id)

	return exists, err
}

func (messageDao) FindByOwner(
	ctx context.Context,
	q Queryer,
	owner models.Username,
) ([]models.MessageEntity, error) {
	const query = `
		select *
		from "messages"
		where "owner" = $1
		order by "received_at" asc , "rowid" asc ;
	`

	var messageSlice []models.MessageEntity

	if err := selectSlice(ctx, q, &messageSlice, query, owner); err != nil {
		return nil, err
	}

	return messageSlice, nil
}
