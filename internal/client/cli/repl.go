package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Account(ctx context.Context) error
	Orders(ctx context.Context, query string) error
	Refresh(ctx context.Context) error
	Track(ctx context.Context, args []string) error
	Suggest(ctx context.Context, query string) error
	Session(ctx context.Context, sub string) error
}

// runREPL starts a simple read–eval–print loop for the storefront CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help                      show available commands
//	  - track [number] [email]    look up an order as a guest
//	  - suggest <text>            product name suggestions
//	  - session [start|end]       show, open or close the backend session
//	  - exit | quit               leave the program
//
//	Not logged in:
//	  - login                     authenticate
//
//	Logged in:
//	  - account                   account dashboard
//	  - orders [text]             list orders, optionally filtered by id/status
//	  - refresh                   reload orders from the server
//	  - logout                    log out
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("storefront %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
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
				printlnFn("Available commands: account, (o)rders [text], refresh, track, suggest, session, logout, exit")
			} else {
				printlnFn("Available commands: login, track, suggest, session, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "account":
			_ = a.Account(ctx)

		case "o", "orders":
			_ = a.Orders(ctx, strings.Join(args, " "))

		case "refresh":
			_ = a.Refresh(ctx)

		case "track":
			_ = a.Track(ctx, args)

		case "suggest":
			_ = a.Suggest(ctx, strings.Join(args, " "))

		case "session":
			sub := ""
			if len(args) > 0 {
				sub = args[0]
			}
			_ = a.Session(ctx, sub)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
