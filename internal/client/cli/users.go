package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/dmitrijs2005/etfdesk/internal/client/models"
	"github.com/dmitrijs2005/etfdesk/internal/common"
)

func printUserTable(users []*models.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.Username, u.Role)
	}
	w.Flush()
}

// ListUsers shows all accounts. Admin only; the server enforces the role.
func (a *App) ListUsers(ctx context.Context) error {
	search, err := getSimpleText(a.reader, "Search (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	users, err := a.api.ListUsers(ctx, search)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	printUserTable(users)
	return nil
}

func (a *App) AddUser(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Role (USER/ADMIN)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.CreateUser(ctx, username, string(password), role)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	fmt.Printf("Created user %d (%s)\n", user.ID, user.Username)
	return nil
}

func (a *App) EditUser(ctx context.Context) error {
	id, err := GetInt64(a.reader, "User id", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "Role (USER/ADMIN)", os.Stdout)
	if err != nil {
		return err
	}
	newPassword, err := getSimpleText(a.reader, "New password (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.api.UpdateUser(ctx, id, username, role, newPassword)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	fmt.Printf("Updated user %d (%s)\n", user.ID, user.Username)
	return nil
}

func (a *App) DeleteUser(ctx context.Context) error {
	id, err := GetInt64(a.reader, "User id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.DeleteUser(ctx, id); err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	fmt.Println("Deleted")
	return nil
}
