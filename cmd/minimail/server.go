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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/lukasdietrich/minimail/internal/log"
	"github.com/lukasdietrich/minimail/internal/mailbox"
	"github.com/lukasdietrich/minimail/internal/metrics"
	"github.com/lukasdietrich/minimail/internal/pop3"
	"github.com/lukasdietrich/minimail/internal/smtp"
	"github.com/lukasdietrich/minimail/internal/textproto"
)

var errInvalidPort = errors.New("the port must be a number between 1 and 65535")

func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("%w: %q", errInvalidPort, raw)
	}

	return port, nil
}

type pop3Command struct {
	Proto   *pop3.Proto
	Cleaner *mailbox.Cleaner
}

type smtpCommand struct {
	Proto   *smtp.Proto
	Cleaner *mailbox.Cleaner
}

func runServerCommand(commandName string, port int) {
	var (
		proto   textproto.Protocol
		cleaner *mailbox.Cleaner
		cleanup func()
		err     error
	)

	switch commandName {
	case "pop3":
		var cmd *pop3Command
		cmd, cleanup, err = newPop3Command()
		if err == nil {
			proto, cleaner = cmd.Proto, cmd.Cleaner
		}

	case "smtp":
		var cmd *smtpCommand
		cmd, cleanup, err = newSmtpCommand()
		if err == nil {
			proto, cleaner = cmd.Proto, cmd.Cleaner
		}
	}

	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize the application")
	}

	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := metrics.ListenFromViper(ctx); err != nil {
			log.Error().Err(err).Msg("metrics endpoint failed")
		}
	}()

	ctx = log.WithOrigin(ctx, commandName)

	if _, err := cleaner.Clean(ctx); err != nil {
		log.WarnContext(ctx).
			Err(err).
			Msg("could not remove orphaned blobs")
	}

	addr := fmt.Sprintf(":%d", port)

	if err := textproto.NewServer(proto).Listen(ctx, addr); err != nil {
		log.ErrorContext(ctx).
			Err(err).
			Str("address", addr).
			Msg("server stopped")

		return
	}

	log.InfoContext(ctx).Msg("server stopped")
}
