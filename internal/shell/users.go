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

package shell

import (
	"errors"
	"time"
)

func (s *Shell) usersList(ctx *shellContext) error {
	if !ctx.checkArgs(0) {
		return errors.New("Usage: users list")
	}

	users, err := s.accounts.List(ctx)
	if err != nil {
		return err
	}

	ctx.printf("\n(%d) Users:\n", len(users))
	for _, user := range users {
		ctx.printf("\t%s (since %s)\n",
			user.Name,
			time.Unix(user.CreatedAt, 0).UTC().Format(time.RFC3339))
	}
	ctx.printf("\n")

	return nil
}

func (s *Shell) usersAdd(ctx *shellContext) error {
	if !ctx.checkArgs(1) {
		return errors.New("Usage: users add [NAME]")
	}

	pass, err := ctx.password("Password")
	if err != nil {
		return err
	}

	name, err := s.accounts.Add(ctx, ctx.arg(0), pass)
	if err != nil {
		return err
	}

	ctx.printf("\n\tUser %q added.\n\n", name)
	return nil
}

func (s *Shell) usersPasswd(ctx *shellContext) error {
	if !ctx.checkArgs(1) {
		return errors.New("Usage: users passwd [NAME]")
	}

	pass, err := ctx.password("New password")
	if err != nil {
		return err
	}

	if err := s.accounts.SetPassword(ctx, ctx.arg(0), pass); err != nil {
		return err
	}

	ctx.printf("\n\tPassword of %q changed.\n\n", ctx.arg(0))
	return nil
}

func (s *Shell) usersRemove(ctx *shellContext) error {
	if !ctx.checkArgs(1) {
		return errors.New("Usage: users remove [NAME]")
	}

	if err := s.accounts.Remove(ctx, ctx.arg(0)); err != nil {
		return err
	}

	ctx.printf("\n\tUser %q removed.\n\n", ctx.arg(0))
	return nil
}
