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

package smtp

import (
	"errors"
)

var errSizeLimitExceeded = errors.New("smtp: message size limit exceeded")

// sizeLimit counts the bytes of a message body. A max <= 0 disables the limit.
type sizeLimit struct {
	max int64
	n   int64
}

// add counts n more bytes and reports whether the body is still within the limit.
func (l *sizeLimit) add(n int) error {
	l.n += int64(n)

	if l.max > 0 && l.n > l.max {
		return errSizeLimitExceeded
	}

	return nil
}
