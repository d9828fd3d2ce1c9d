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

//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/lukasdietrich/minimail/internal/crypto"
	"github.com/lukasdietrich/minimail/internal/database"
	"github.com/lukasdietrich/minimail/internal/mailbox"
	"github.com/lukasdietrich/minimail/internal/pop3"
	"github.com/lukasdietrich/minimail/internal/shell"
	"github.com/lukasdietrich/minimail/internal/smtp"
	"github.com/lukasdietrich/minimail/internal/storage"
	"github.com/lukasdietrich/minimail/internal/textproto"
)

var wireSet = wire.NewSet(
	wire.Struct(new(pop3Command), "*"),
	wire.Struct(new(smtpCommand), "*"),
	wire.Struct(new(shellCommand), "*"),

	provideConnection,
	database.NewUserDao,
	database.NewMessageDao,

	crypto.NewIDGenerator,

	storage.NewFilesystem,
	storage.BlobsOptionsFromViper,
	storage.NewBlobs,
	storage.CacheOptionsFromViper,
	storage.NewCache,

	mailbox.StoreOptionsFromViper,
	mailbox.NewStore,
	mailbox.NewAccounts,
	mailbox.NewCleaner,

	textproto.SessionOptionsFromViper,
	pop3.New,
	smtp.LimitsFromViper,
	smtp.New,

	shell.NewShell,
)

func newPop3Command() (*pop3Command, func(), error) {
	panic(wire.Build(wireSet))
}

func newSmtpCommand() (*smtpCommand, func(), error) {
	panic(wire.Build(wireSet))
}

func newShellCommand() (*shellCommand, func(), error) {
	panic(wire.Build(wireSet))
}
