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

package pop3

import (
	"github.com/lukasdietrich/minimail/internal/textproto"
)

type reply struct {
	ok   bool
	text string
}

func (r *reply) writeTo(w textproto.Writer) error {
	if r.ok {
		w.WriteString("+OK") // nolint:errcheck
	} else {
		w.WriteString("-ERR") // nolint:errcheck
	}

	if len(r.text) > 0 {
		w.WriteString(" ")    // nolint:errcheck
		w.WriteString(r.text) // nolint:errcheck
	}

	w.Endline() // nolint:errcheck

	return w.Flush()
}
