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
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	ListEtfs(ctx context.Context) error
	ShowEtf(ctx context.Context) error
	AddEtf(ctx context.Context) error
	EditEtf(ctx context.Context) error
	DeleteEtf(ctx context.Context) error
	ListPortfolios(ctx context.Context) error
	ShowPortfolio(ctx context.Context) error
	AddPortfolio(ctx context.Context) error
	EditPortfolio(ctx context.Context) error
	DeletePortfolio(ctx context.Context) error
	PortfolioEtfs(ctx context.Context) error
	AttachEtf(ctx context.Context) error
	DetachEtf(ctx context.Context) error
	ListUsers(ctx context.Context) error
	AddUser(ctx context.Context) error
	EditUser(ctx context.Context) error
	DeleteUser(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers log
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("etf> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printHelp(a)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "passwd":
			_ = a.ChangePassword(ctx)

		case "etfs":
			_ = a.ListEtfs(ctx)

		case "etf":
			_ = a.ShowEtf(ctx)

		case "addetf":
			_ = a.AddEtf(ctx)

		case "editetf":
			_ = a.EditEtf(ctx)

		case "deletf":
			_ = a.DeleteEtf(ctx)

		case "pfs":
			_ = a.ListPortfolios(ctx)

		case "pf":
			_ = a.ShowPortfolio(ctx)

		case "addpf":
			_ = a.AddPortfolio(ctx)

		case "editpf":
			_ = a.EditPortfolio(ctx)

		case "delpf":
			_ = a.DeletePortfolio(ctx)

		case "pfetfs":
			_ = a.PortfolioEtfs(ctx)

		case "pfadd":
			_ = a.AttachEtf(ctx)

		case "pfdel":
			_ = a.DetachEtf(ctx)

		case "users":
			_ = a.ListUsers(ctx)

		case "adduser":
			_ = a.AddUser(ctx)

		case "edituser":
			_ = a.EditUser(ctx)

		case "deluser":
			_ = a.DeleteUser(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: register, login, exit")
		return
	}
	printlnFn("Instruments: etfs, etf, addetf, editetf, deletf")
	printlnFn("Portfolios:  pfs, pf, addpf, editpf, delpf, pfetfs, pfadd, pfdel")
	if a.isAdmin() {
		printlnFn("Admin:       users, adduser, edituser, deluser")
	}
	printlnFn("Account:     whoami, passwd, logout, exit")
}
