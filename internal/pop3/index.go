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

type tag uint8

const (
	tagNone tag = iota
	tagLive
	tagDeleted
)

func (t tag) String() string {
	return [...]string{
		"none",
		"live",
		"deleted",
	}[t]
}

// index maps the stable message numbers 1..N, assigned once a mailbox is loaded, to their tag.
// Numbers are never reassigned, a deleted number keeps its value until it is reset.
type index struct {
	tags []tag
}

func newIndex(n int) *index {
	tags := make([]tag, n)
	for i := range tags {
		tags[i] = tagLive
	}

	return &index{tags: tags}
}

// tag returns the tag of a message number. Numbers outside 1..N are tagNone.
func (x *index) tag(n int) tag {
	if n < 1 || n > len(x.tags) {
		return tagNone
	}

	return x.tags[n-1]
}

// delete tags a live number as deleted and reports whether it was live.
func (x *index) delete(n int) bool {
	if x.tag(n) != tagLive {
		return false
	}

	x.tags[n-1] = tagDeleted
	return true
}

// reset flips every deleted number back to live.
func (x *index) reset() {
	for i, t := range x.tags {
		if t == tagDeleted {
			x.tags[i] = tagLive
		}
	}
}

// total returns N, including deleted numbers.
func (x *index) total() int {
	return len(x.tags)
}

// live returns the live numbers in ascending order.
func (x *index) live() []int {
	numbers := make([]int, 0, len(x.tags))
	for i, t := range x.tags {
		if t == tagLive {
			numbers = append(numbers, i+1)
		}
	}

	return numbers
}

// deleted returns the deleted numbers in ascending order.
func (x *index) deleted() []int {
	var numbers []int
	for i, t := range x.tags {
		if t == tagDeleted {
			numbers = append(numbers, i+1)
		}
	}

	return numbers
}
