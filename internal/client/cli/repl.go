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
	flushAlerts()

	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Account(ctx context.Context) error
	Profile(ctx context.Context) error
	Password(ctx context.Context) error

	List(ctx context.Context) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Page(ctx context.Context, args []string) error
	Rows(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Reload(ctx context.Context) error
	Export(ctx context.Context, args []string) error

	Alerts(ctx context.Context) error
	Dismiss(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: signup, login, alerts, dismiss <n>, exit"
	helpLoggedIn  = "Available commands: (l)ist, next, prev, page <n>, rows <5|10|25>, add, edit <id>, delete <id>, reload, export [save], account, profile, password, alerts, dismiss <n>, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
//
// Commands that need a session are refused while logged out. Errors returned
// by handlers are not printed here: handlers report validation problems
// themselves and backend failures surface as alerts, which are flushed after
// every command. The loop exits on EOF or on "exit" / "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tmd%s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsSession(cmd) && !a.isLoggedIn() {
			printlnFn("Please log in first (type 'login' or 'signup')")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "signup":
			_ = a.Signup(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "account":
			_ = a.Account(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "password":
			_ = a.Password(ctx)

		case "l", "list":
			_ = a.List(ctx)
		case "next":
			_ = a.NextPage(ctx)
		case "prev":
			_ = a.PrevPage(ctx)
		case "page":
			_ = a.Page(ctx, args)
		case "rows":
			_ = a.Rows(ctx, args)
		case "add":
			_ = a.Add(ctx)
		case "edit":
			_ = a.Edit(ctx, args)
		case "delete":
			_ = a.Delete(ctx, args)
		case "reload":
			_ = a.Reload(ctx)
		case "export":
			_ = a.Export(ctx, args)

		case "alerts":
			_ = a.Alerts(ctx)
		case "dismiss":
			_ = a.Dismiss(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.flushAlerts()
	}
}

func needsSession(cmd string) bool {
	switch cmd {
	case "logout", "account", "profile", "password",
		"l", "list", "next", "prev", "page", "rows",
		"add", "edit", "delete", "reload", "export":
		return true
	}
	return false
}
