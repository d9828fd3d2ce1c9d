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

package textproto

import (
	"bufio"
)

// dotWriter writes lines, which start with a period, with an additional
// leading period and normalizes line endings to <CR> <LF>.
type dotWriter struct {
	w *bufio.Writer

	lineStart bool
	pendingCr bool
}

func (d *dotWriter) Write(b []byte) (int, error) {
	for i, c := range b {
		if err := d.writeByte(c); err != nil {
			return i, err
		}
	}

	return len(b), nil
}

func (d *dotWriter) writeByte(c byte) error {
	if d.pendingCr {
		d.pendingCr = false

		if c == '\n' {
			return d.endline()
		}

		// a lone <CR> is kept as part of the line
		if err := d.writeText('\r'); err != nil {
			return err
		}
	}

	switch c {
	case '\r':
		d.pendingCr = true
		return nil

	case '\n':
		return d.endline()
	}

	return d.writeText(c)
}

func (d *dotWriter) writeText(c byte) error {
	if d.lineStart && c == '.' {
		if err := d.w.WriteByte('.'); err != nil {
			return err
		}
	}

	d.lineStart = false
	return d.w.WriteByte(c)
}

func (d *dotWriter) endline() error {
	d.lineStart = true

	_, err := d.w.WriteString("\r\n")
	return err
}

// Close terminates an unfinished line and writes the final dot line.
func (d *dotWriter) Close() error {
	if d.pendingCr || !d.lineStart {
		d.pendingCr = false

		if err := d.endline(); err != nil {
			return err
		}
	}

	_, err := d.w.WriteString(".\r\n")
	return err
}
