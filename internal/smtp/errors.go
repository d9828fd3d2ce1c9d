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
	"fmt"
)

var (
	errCloseSession  = errors.New("smtp: session closed")
	errBadSequence   = errors.New("smtp: bad sequence of commands")
	errInvalidSyntax = errors.New("smtp: invalid syntax")
	errBodyWrite     = errors.New("smtp: could not write body")
)

// smtpError is a rejection with a specific reply, which does not end the session.
type smtpError struct {
	code  int
	text  string
	cause error
}

func (e smtpError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("smtp: %d %s: %v", e.code, e.text, e.cause)
	}

	return fmt.Sprintf("smtp: %d %s", e.code, e.text)
}

func (e smtpError) Unwrap() error {
	return e.cause
}
