package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
	Refresh(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Open(ctx context.Context, path string) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	HostProfile(ctx context.Context) error
	EditHostProfile(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          sign in
//	  - forgot         request a password reset link
//	  - reset          set a new password with a reset token
//	  - open <path>    open a view, e.g. "open /search"
//	  - status         show session status
//	  - exit | quit    leave the program
//
//	Logged in additionally:
//	  - whoami         show the signed-in profile
//	  - profile        reload the profile from the server and show it
//	  - edit-profile   change name, phone, birth date, language, photo
//	  - passwd         change the password (signs out)
//	  - host           show the host profile (hosts only)
//	  - edit-host      edit the host profile (hosts only)
//	  - refresh        renew the token if it is close to expiry
//	  - logout         sign out
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("vivigo %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: whoami, profile, edit-profile, passwd, host, edit-host, status, refresh, open <path>, logout, forgot, reset, exit")
			} else {
				printlnFn("Available commands: register, login, forgot, reset, status, open <path>, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "status":
			cmdErr = a.Status(ctx)

		case "refresh":
			cmdErr = a.Refresh(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "edit-profile":
			cmdErr = a.EditProfile(ctx)

		case "passwd":
			cmdErr = a.ChangePassword(ctx)

		case "host":
			cmdErr = a.HostProfile(ctx)

		case "edit-host":
			cmdErr = a.EditHostProfile(ctx)

		case "forgot":
			cmdErr = a.ForgotPassword(ctx)

		case "reset":
			cmdErr = a.ResetPassword(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <path>")
				continue
			}
			cmdErr = a.Open(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
