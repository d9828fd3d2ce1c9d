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

// Package shell implements an interactive administration shell for the users of the bundled
// mailbox store.
package shell

import (
	"context"
	"errors"

	"github.com/abiosoft/ishell"

	"github.com/lukasdietrich/minimail/internal/mailbox"
	"github.com/lukasdietrich/minimail/internal/models"
)

var errEmptyPassword = errors.New("the password must not be empty")

type accountManager interface {
	Add(ctx context.Context, name, pass string) (models.Username, error)
	List(ctx context.Context) ([]models.UserEntity, error)
	SetPassword(ctx context.Context, name, pass string) error
	Remove(ctx context.Context, name string) error
}

// console is the part of *ishell.Context used by commands.
type console interface {
	Printf(format string, v ...interface{})
	ReadPasswordErr() (string, error)
}

// Shell is an interactive shell to manage users.
type Shell struct {
	accounts accountManager
}

// NewShell creates a new shell operating on accounts.
func NewShell(accounts *mailbox.Accounts) *Shell {
	return &Shell{
		accounts: accounts,
	}
}

// Run starts the shell read loop and blocks until the user exits.
func (s *Shell) Run() error {
	shell := ishell.New()
	s.setup(shell)
	shell.Run()

	return nil
}

func (s *Shell) setup(shell *ishell.Shell) {
	shell.AddCmd(composeShellCmd(
		ishell.Cmd{
			Name: "users",
			Help: "manage users",
		},
		[]*ishell.Cmd{
			{
				Name: "list",
				Help: "list all users",
				Func: s.wrapShellFunc(s.usersList),
			},
			{
				Name: "add",
				Help: "add a new user",
				Func: s.wrapShellFunc(s.usersAdd),
			},
			{
				Name: "passwd",
				Help: "change the password of a user",
				Func: s.wrapShellFunc(s.usersPasswd),
			},
			{
				Name: "remove",
				Help: "remove a user and all of its messages",
				Func: s.wrapShellFunc(s.usersRemove),
			},
		},
	))
}

type shellContext struct {
	context.Context
	console console
	args    []string
}

func (c *shellContext) checkArgs(n int) bool {
	return len(c.args) == n
}

func (c *shellContext) arg(i int) string {
	return c.args[i]
}

func (c *shellContext) printf(format string, v ...interface{}) {
	c.console.Printf(format, v...)
}

func (c *shellContext) password(prompt string) (string, error) {
	c.printf("%s: ", prompt)

	pass, err := c.console.ReadPasswordErr()
	if err != nil {
		return "", err
	}

	if pass == "" {
		return "", errEmptyPassword
	}

	return pass, nil
}

func composeShellCmd(cmd ishell.Cmd, children []*ishell.Cmd) *ishell.Cmd {
	for _, child := range children {
		cmd.AddCmd(child)
	}

	return &cmd
}

func (s *Shell) wrapShellFunc(fn func(*shellContext) error) func(*ishell.Context) {
	return func(shell *ishell.Context) {
		ctx := shellContext{
			Context: context.Background(),
			console: shell,
			args:    shell.Args,
		}

		if err := fn(&ctx); err != nil {
			shell.Err(err)
		}
	}
}
