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

import (
	"database/sql/driver"
	"errors"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrInvalidUsername is used for names of zero length, names containing
	// whitespace or path separators and addresses with an empty local-part.
	ErrInvalidUsername = errors.New("username: invalid format")

	// ErrForeignDomain is used for addresses, whose domain is not local.
	ErrForeignDomain = errors.New("username: foreign domain")
)

// Username is the normalized name of a local user. It is used as the
// primary key of users and as the folder name of their messages.
type Username string

// Domains is a set of local domains in their unicode form. An empty set
// accepts every domain.
type Domains map[string]bool

// NewDomains normalizes every domain and returns them as a set.
func NewDomains(domains []string) (Domains, error) {
	set := make(Domains, len(domains))

	for _, domain := range domains {
		normalized, err := DomainToUnicode(domain)
		if err != nil {
			return nil, err
		}

		set[normalized] = true
	}

	return set, nil
}

// Contains checks, if a domain is local.
func (d Domains) Contains(domain string) bool {
	if len(d) == 0 {
		return true
	}

	normalized, err := DomainToUnicode(domain)
	if err != nil {
		return false
	}

	return d[normalized]
}

// ParseUsername turns either a plain name ("alice") or an address
// ("alice@example.com") into a Username. The domain of an address must be
// contained in domains.
func ParseUsername(raw string, domains Domains) (Username, error) {
	localPart := raw

	if at := strings.LastIndex(raw, "@"); at >= 0 {
		if !domains.Contains(raw[at+1:]) {
			return "", ErrForeignDomain
		}

		localPart = raw[:at]
	}

	// see RFC#5321 4.5.3.1.1
	if len(localPart) > 64 {
		return "", ErrInvalidUsername
	}

	name := NormalizeLocalPart(localPart)

	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, " \t/\\") {
		return "", ErrInvalidUsername
	}

	return Username(name), nil
}

// String returns the normalized name.
func (u Username) String() string {
	return string(u)
}

// Scan implements the sql.Scanner interface.
func (u *Username) Scan(src interface{}) error {
	s, err := driver.String.ConvertValue(src)
	if err != nil {
		return err
	}

	*u = Username(s.(string))
	return nil
}

// Value implements the sql/driver.Valuer interface.
func (u Username) Value() (driver.Value, error) {
	return string(u), nil
}

// DomainToUnicode normalizes a punycode domain to unicode and applies the
// NFC normal form.
func DomainToUnicode(domain string) (string, error) {
	mapped, err := idna.Lookup.ToUnicode(domain)
	if err != nil {
		return domain, err
	}

	return norm.NFC.String(mapped), nil
}

// fold is a cases.Caser to fold unicode text. Folding is more or less "compatible" lowercase.
var fold = cases.Fold()

// NormalizeLocalPart applies several rules to make names comparable.
//
// 1) The name is case-folded so that "alice" and "ALICE" are considered equal.
// 2) The name is normalized using NFKC so that equal looking runes are considered equal.
// 3) The name has the suffix trimmed. A suffix is everything after the first '+' rune.
func NormalizeLocalPart(localPart string) string {
	folded := fold.String(localPart)
	normalized := norm.NFKC.String(folded)

	suffixIndex := strings.IndexRune(normalized, '+')
	if suffixIndex < 0 {
		return normalized
	}

	return normalized[:suffixIndex]
}
