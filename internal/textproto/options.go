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
	"os"
	"time"

	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault("general.hostname", defaultHostname())
	viper.SetDefault("session.timeout", "5m")
}

func defaultHostname() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "localhost"
	}

	return hostname
}

// SessionOptions are shared by the sessions of both protocols.
type SessionOptions struct {
	// Hostname is the name the server presents itself with.
	Hostname string
	// Timeout is applied to every read and write. A timeout <= 0 disables it.
	Timeout time.Duration
}

// SessionOptionsFromViper reads SessionOptions from viper.
func SessionOptionsFromViper() SessionOptions {
	return SessionOptions{
		Hostname: viper.GetString("general.hostname"),
		Timeout:  viper.GetDuration("session.timeout"),
	}
}
