package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/possoft/posadmin/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and tries to authenticate. Auth failures
// are reported inline on the prompt, and deliberately do not say whether
// the username or the password was wrong.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		switch {
		case errors.Is(err, session.ErrMissingFields):
			fmt.Fprintln(a.out, "Username and password are required")
		case errors.Is(err, session.ErrInvalidCredentials):
			fmt.Fprintln(a.out, "Invalid username or password")
		default:
			a.log.Error(ctx, "login failed", "err", err)
			fmt.Fprintln(a.out, "Login failed, please try again")
		}
		return err
	}

	user := a.session.Current()
	fmt.Fprintf(a.out, "Welcome, %s (%s)\n", user.Name, user.Role)
	return nil
}

// Logout drops the session, in memory and on disk. Idempotent.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "err", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the session user, role, and permission set.
func (a *App) WhoAmI(ctx context.Context) error {
	user := a.session.Current()
	fmt.Fprintf(a.out, "%s (%s), role %s\n", user.Name, user.Username, user.Role)
	fmt.Fprintf(a.out, "Permissions: %s\n", strings.Join(user.Permissions, ", "))
	return nil
}
