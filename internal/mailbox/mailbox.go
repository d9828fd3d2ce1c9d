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

// Package mailbox contains the collaborators both protocol sessions operate on and the bundled
// implementation backed by sqlite and the filesystem.
package mailbox

import (
	"context"
	"errors"
	"io"

	"github.com/lukasdietrich/minimail/internal/models"
)

var (
	// ErrAuthentication is returned when a credential does not match the user.
	ErrAuthentication = errors.New("mailbox: wrong username or password")
	// ErrUnknownUser is returned when a name does not belong to a local user.
	ErrUnknownUser = errors.New("mailbox: unknown user")
	// ErrLocked is returned when a mailbox is already in use by another session.
	ErrLocked = errors.New("mailbox: already in use")
	// ErrNoRecipients is returned when a writer is requested without recipients.
	ErrNoRecipients = errors.New("mailbox: no recipients")
	// ErrWriterClosed is returned when a writer is used after Close or Abort.
	ErrWriterClosed = errors.New("mailbox: writer already closed")
)

// Directory answers whether a name belongs to a local user.
type Directory interface {
	IsValidUser(ctx context.Context, name string) (bool, error)
}

// Mailbox is the content of a single users mailbox. The list of messages is fixed once it has
// been loaded.
type Mailbox interface {
	// Load checks the credential and loads the messages. A wrong credential results in
	// ErrAuthentication and ErrLocked is returned if the mailbox is already in use.
	Load(ctx context.Context, credential []byte) error
	// Messages returns all messages in the order they were loaded, including those tagged for
	// deletion.
	Messages() []Message
	// Count returns the number of messages, optionally including those tagged for deletion.
	Count(includeDeleted bool) int
	// Size returns the total size of messages not tagged for deletion.
	Size() int64
	// Commit removes every message tagged for deletion.
	Commit(ctx context.Context) error
	// Close releases the mailbox. It is safe to call Close more than once.
	Close(ctx context.Context) error
}

// Message is a single message of a Mailbox.
type Message interface {
	IsDeleted() bool
	TagForDeletion()
	Undelete()
	Size() int64
	Body() (io.ReadCloser, error)
}

// Recipient is a resolved local recipient of a submission.
type Recipient struct {
	User models.Username
}

// Writer persists a single incoming message to all of its recipients.
type Writer interface {
	// WriteLine appends a line followed by a single "\n" to the message.
	WriteLine(line string) error
	// Close stores the message for every recipient.
	Close(ctx context.Context) error
	// Abort discards everything written so far.
	Abort(ctx context.Context) error
}

// Store gives access to mailboxes and accepts new messages.
type Store interface {
	Directory

	// Open returns the mailbox of a user. It returns ErrUnknownUser if the user does not exist.
	Open(ctx context.Context, name string) (Mailbox, error)
	// Resolve turns a name or address into a Recipient or returns ErrUnknownUser.
	Resolve(ctx context.Context, name string) (*Recipient, error)
	// NewWriter creates a writer bound to a sender and a non-empty set of recipients.
	NewWriter(ctx context.Context, sender string, to []Recipient) (Writer, error)
}
