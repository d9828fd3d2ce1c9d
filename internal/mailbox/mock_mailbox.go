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

// MockMailbox is a mock type for the Mailbox type
type MockMailbox struct {
	mock.Mock
}

// Close provides a mock function with given fields: ctx
func (_m *MockMailbox) Close(ctx context.Context) error {
	ret := _m.Called(ctx)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Commit provides a mock function with given fields: ctx
func (_m *MockMailbox) Commit(ctx context.Context) error {
	ret := _m.Called(ctx)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Count provides a mock function with given fields: includeDeleted
func (_m *MockMailbox) Count(includeDeleted bool) int {
	ret := _m.Called(includeDeleted)

	var r0 int
	if rf, ok := ret.Get(0).(func(bool) int); ok {
		r0 = rf(includeDeleted)
	} else {
		r0 = ret.Get(0).(int)
	}

	return r0
}

// Load provides a mock function with given fields: ctx, credential
func (_m *MockMailbox) Load(ctx context.Context, credential []byte) error {
	ret := _m.Called(ctx, credential)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, []byte) error); ok {
		r0 = rf(ctx, credential)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Messages provides a mock function with given fields:
func (_m *MockMailbox) Messages() []Message {
	ret := _m.Called()

	var r0 []Message
	if rf, ok := ret.Get(0).(func() []Message); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]Message)
		}
	}

	return r0
}

// Size provides a mock function with given fields:
func (_m *MockMailbox) Size() int64 {
	ret := _m.Called()

	var r0 int64
	if rf, ok := ret.Get(0).(func() int64); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(int64)
	}

	return r0
}
