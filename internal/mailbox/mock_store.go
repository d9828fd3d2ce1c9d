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

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock type for the Store type
type MockStore struct {
	mock.Mock
}

// IsValidUser provides a mock function with given fields: ctx, name
func (_m *MockStore) IsValidUser(ctx context.Context, name string) (bool, error) {
	ret := _m.Called(ctx, name)

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, string) bool); ok {
		r0 = rf(ctx, name)
	} else {
		r0 = ret.Get(0).(bool)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, name)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewWriter provides a mock function with given fields: ctx, sender, to
func (_m *MockStore) NewWriter(ctx context.Context, sender string, to []Recipient) (Writer, error) {
	ret := _m.Called(ctx, sender, to)

	var r0 Writer
	if rf, ok := ret.Get(0).(func(context.Context, string, []Recipient) Writer); ok {
		r0 = rf(ctx, sender, to)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(Writer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, []Recipient) error); ok {
		r1 = rf(ctx, sender, to)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Open provides a mock function with given fields: ctx, name
func (_m *MockStore) Open(ctx context.Context, name string) (Mailbox, error) {
	ret := _m.Called(ctx, name)

	var r0 Mailbox
	if rf, ok := ret.Get(0).(func(context.Context, string) Mailbox); ok {
		r0 = rf(ctx, name)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(Mailbox)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, name)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Resolve provides a mock function with given fields: ctx, name
func (_m *MockStore) Resolve(ctx context.Context, name string) (*Recipient, error) {
	ret := _m.Called(ctx, name)

	var r0 *Recipient
	if rf, ok := ret.Get(0).(func(context.Context, string) *Recipient); ok {
		r0 = rf(ctx, name)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Recipient)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, name)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
