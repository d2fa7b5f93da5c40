package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/etfdesk/internal/client/session"
	"github.com/dmitrijs2005/etfdesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for credentials and creates an account. A successful
// registration also logs the user in. Validation messages from the server
// are shown verbatim.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.auth.Register(ctx, userName, string(password)); err != nil {
		var validation *session.ValidationError
		if errors.As(err, &validation) {
			log.Printf("Registration rejected: %s", validation.Message)
		} else {
			log.Printf("Registration failed: %s", err.Error())
		}
		return err
	}

	return a.afterLogin(ctx)
}

// Login prompts for credentials and authenticates. Bad credentials and an
// unreachable server are reported differently so the user knows whether to
// retry the password or check connectivity.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.auth.Login(ctx, userName, string(password)); err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCredentials):
			log.Printf("Invalid username or password")
		case errors.Is(err, common.ErrNetwork):
			log.Printf("Server unreachable: %s", err.Error())
		default:
			log.Printf("Login failed: %s", err.Error())
		}
		return err
	}

	return a.afterLogin(ctx)
}

// afterLogin fetches the account behind the fresh token and updates the
// prompt state.
func (a *App) afterLogin(ctx context.Context) error {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		log.Printf("error fetching account: %s", err.Error())
		return err
	}
	a.user = user
	log.Printf("Logged in as %s", user.Username)
	return nil
}

// Logout terminates the session locally and best-effort on the server.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}
	a.user = nil
	fmt.Println("Logged out")
	return nil
}

// Whoami shows the current account.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}
	fmt.Printf("%s (id=%d, role=%s)\n", user.Username, user.ID, user.Role)
	return nil
}

// ChangePassword prompts for the current and new passwords.
func (a *App) ChangePassword(ctx context.Context) error {
	fmt.Println("Current password:")
	current, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	fmt.Println("New password:")
	newPassword, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	if err := a.api.ChangePassword(ctx, string(current), string(newPassword)); err != nil {
		var validation *session.ValidationError
		if errors.As(err, &validation) {
			log.Printf("Rejected: %s", validation.Message)
		} else {
			log.Printf("error: %s", err.Error())
		}
		return err
	}

	fmt.Println("Password changed")
	return nil
}
