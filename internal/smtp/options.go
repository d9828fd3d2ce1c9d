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
	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault("mail.sizelimit", "10mb")
	viper.SetDefault("mail.maxrecipients", 100)
}

// Limits restricts the size of a single submission.
type Limits struct {
	// MaxSize is the maximum number of bytes of a message body. A value <= 0 disables the limit.
	MaxSize int64
	// MaxRecipients is the maximum number of recipients per transaction. A value <= 0 disables
	// the limit.
	MaxRecipients int
}

// LimitsFromViper reads the submission limits from the configuration.
func LimitsFromViper() Limits {
	return Limits{
		MaxSize:       int64(viper.GetSizeInBytes("mail.sizelimit")),
		MaxRecipients: viper.GetInt("mail.maxrecipients"),
	}
}
