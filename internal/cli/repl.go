package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	History(ctx context.Context) error
	Record(ctx context.Context) error
	Rename(ctx context.Context) error
	Notify(ctx context.Context, mode string) error
	Admins(ctx context.Context) error
	Grant(ctx context.Context) error
	Revoke(ctx context.Context) error
	Theme(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Testoria console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'e'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// The prompt shows the current session (from statusFn). Commands that are
// only meaningful while signed in report their own errors; the REPL prints
// whatever a handler returns and keeps going.
func runREPL(ctx context.Context, e execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("testoria> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		var err error
		switch cmd {
		case "help":
			if e.isLoggedIn() {
				printlnFn("Available commands: profile, history, record, rename, notify on|off, admins, grant, revoke, theme, logout, exit")
			} else {
				printlnFn("Available commands: register, login, theme, exit")
			}

		case "register":
			err = e.Register(ctx)

		case "login":
			err = e.Login(ctx)

		case "logout":
			err = e.Logout(ctx)

		case "p", "profile":
			err = e.Profile(ctx)

		case "h", "history":
			err = e.History(ctx)

		case "record":
			err = e.Record(ctx)

		case "rename":
			err = e.Rename(ctx)

		case "notify":
			err = e.Notify(ctx, arg)

		case "admins":
			err = e.Admins(ctx)

		case "grant":
			err = e.Grant(ctx)

		case "revoke":
			err = e.Revoke(ctx)

		case "theme":
			err = e.Theme(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
