package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/possoft/posadmin/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	canView(kind models.EntityKind) bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context, kind models.EntityKind) error
	Find(ctx context.Context, kind models.EntityKind, query string) error
	Add(ctx context.Context, kind models.EntityKind) error
	Edit(ctx context.Context, kind models.EntityKind, id string) error
	Toggle(ctx context.Context, kind models.EntityKind, id string) error
}

// parseKind recognizes singular and plural spellings of the entity kinds.
func parseKind(arg string) (models.EntityKind, bool) {
	switch strings.ToLower(arg) {
	case "customer", "customers":
		return models.KindCustomer, true
	case "supplier", "suppliers":
		return models.KindSupplier, true
	}
	return "", false
}

// runREPL starts the read–eval–print loop of the posadmin client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// The prompt shows the current session (from statusFn) and accepts:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in (roster commands only for kinds the role may see):
//	  - whoami                  — show user, role, and permissions
//	  - list   <kind>           — print the roster
//	  - find   <kind> <text>    — filter the roster by name
//	  - add    <kind>           — open the add form
//	  - edit   <kind> <id>      — open the edit form
//	  - toggle <kind> <id>      — flip active/inactive
//	  - logout
//	  - exit | quit
//
// Any errors returned by command handlers are ignored here; handlers
// notify the user themselves. This keeps the loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pos> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, list <kind>, find <kind> <text>, add <kind>, edit <kind> <id>, toggle <kind> <id>, logout, exit")
				printlnFn("Kinds: customers, suppliers")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "whoami":
			if !a.isLoggedIn() {
				printlnFn("Not logged in")
				continue
			}
			_ = a.WhoAmI(ctx)

		case "list", "find", "add", "edit", "toggle":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <kind> ...", cmd))
				continue
			}
			kind, ok := parseKind(args[0])
			if !ok {
				printlnFn("Unknown kind:", args[0])
				continue
			}
			if !a.canView(kind) {
				printlnFn("Your role has no access to", string(kind)+"s")
				continue
			}

			switch cmd {
			case "list":
				_ = a.List(ctx, kind)
			case "find":
				if len(args) < 2 {
					printlnFn("Usage: find <kind> <text>")
					continue
				}
				_ = a.Find(ctx, kind, strings.Join(args[1:], " "))
			case "add":
				_ = a.Add(ctx, kind)
			case "edit":
				if len(args) < 2 {
					printlnFn("Usage: edit <kind> <id>")
					continue
				}
				_ = a.Edit(ctx, kind, args[1])
			case "toggle":
				if len(args) < 2 {
					printlnFn("Usage: toggle <kind> <id>")
					continue
				}
				_ = a.Toggle(ctx, kind, args[1])
			}

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
