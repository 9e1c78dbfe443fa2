// ABOUTME: User profile endpoints for the Epay API
// ABOUTME: Covers /users/me and per-id fetch, update, and delete

package client

import (
	"context"
	"fmt"
	"net/http"
)

// Account is the full user record as returned by the users endpoints.
type Account struct {
	ID        int64    `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Username  string   `json:"username"`
	Roles     []string `json:"roles,omitempty"`
}

// AccountUpdate carries the editable profile fields.
type AccountUpdate struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
}

// Me calls GET /users/me.
func (c *Client) Me(ctx context.Context) (*Account, error) {
	var acct Account
	if err := c.getJSON(ctx, "/users/me", nil, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// User calls GET /users/{id}.
func (c *Client) User(ctx context.Context, id int64) (*Account, error) {
	var acct Account
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d", id), nil, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// UpdateUser calls PUT /users/{id}.
func (c *Client) UpdateUser(ctx context.Context, id int64, update AccountUpdate) (*Account, error) {
	var acct Account
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), update, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// DeleteUser calls DELETE /users/{id}.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}
