package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/quicknotes/internal/client/api"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Google(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context, term string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

const (
	helpLoggedOut = "Available commands: signup, login, google, help, exit"
	helpLoggedIn  = "Available commands: list [term], next, prev, add, edit <id>, delete <id>, whoami, logout, help, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// It exits on EOF or on "exit"/"quit". Command errors are printed and the
// loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		prompt := "qn"
		if s := statusFn(); s != "" {
			prompt += " " + s
		}
		fmt.Fprint(w, prompt+"> ")

		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}
		case "signup", "register":
			err = a.Signup(ctx)
		case "login":
			err = a.Login(ctx)
		case "google":
			err = a.Google(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.Whoami(ctx)
		case "l", "list":
			err = a.List(ctx, strings.Join(args, " "))
		case "n", "next":
			err = a.Next(ctx)
		case "p", "prev":
			err = a.Prev(ctx)
		case "add":
			err = a.Add(ctx)
		case "edit":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: edit <id>")
				continue
			}
			err = a.Edit(ctx, args[0])
		case "delete", "rm":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: delete <id>")
				continue
			}
			err = a.Delete(ctx, args[0])
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(w, "Error:", describe(err))
		}
	}
}

// describe turns an error into the line shown to the user. Server messages
// are shown verbatim.
func describe(err error) string {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, api.ErrUnavailable):
		return "server unavailable, try again later"
	default:
		return err.Error()
	}
}
