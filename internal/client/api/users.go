package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/etfdesk/internal/client/models"
)

// ListUsers returns all accounts, or a username substring match. Admin only.
func (c *Client) ListUsers(ctx context.Context, search string) ([]*models.User, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}

	var users []*models.User
	err := c.do(ctx, http.MethodGet, "/api/auth/users", query, nil, &users)
	return users, err
}

func (c *Client) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/auth/users/%d", id), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, username, password, role string) (*models.User, error) {
	body := map[string]string{"username": username, "password": password, "role": role}

	var user models.User
	if err := c.do(ctx, http.MethodPost, "/api/auth/users", nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, username, role, newPassword string) (*models.User, error) {
	body := map[string]string{"username": username, "role": role, "newPassword": newPassword}

	var user models.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/auth/users/%d", id), nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/auth/users/%d", id), nil, nil, nil)
}

// ChangePassword updates the caller's own password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	return c.do(ctx, http.MethodPut, "/api/auth/change-password", nil, body, nil)
}
