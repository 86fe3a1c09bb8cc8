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
	Login(ctx context.Context) error
	LoginAdmin(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	NewBill(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Billed CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - login          log in as an employee
//	  - admin          log in as an administrator
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - help           show available commands
//	  - list | l       list bills, most recent first
//	  - show <n>       show the receipt URL of bill n of the last listing
//	  - newbill        create a bill
//	  - logout         log out
//	  - exit | quit    leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("billed %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, show <n>, newbill, logout, exit")
			} else {
				printlnFn("Available commands: login, admin, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "admin":
			_ = a.LoginAdmin(ctx)

		case "l", "list":
			if !requireLogin(a) {
				continue
			}
			_ = a.List(ctx)

		case "show":
			if !requireLogin(a) {
				continue
			}
			if len(args) == 0 {
				printlnFn("Usage: show <n>")
				continue
			}
			_ = a.Show(ctx, args)

		case "newbill":
			if !requireLogin(a) {
				continue
			}
			_ = a.NewBill(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requireLogin(a execIface) bool {
	if !a.isLoggedIn() {
		printlnFn("Please log in first")
		return false
	}
	return true
}
