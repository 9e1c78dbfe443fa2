// ABOUTME: Authentication endpoints for the Epay API
// ABOUTME: Covers registration, login, and the token response shape

package client

import (
	"context"
	"net/http"
	"strings"
)

// AuthResponse is the token payload returned by login and refresh.
type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	TokenType    string   `json:"tokenType"`
	UserID       int64    `json:"userId"`
	Username     string   `json:"username"`
	Roles        []string `json:"roles"`
}

// LoginRequest carries login credentials. Email and Username are
// interchangeable; the backend accepts either.
type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// Login calls POST /auth/login. The returned tokens are not installed on the
// client; that is the session manager's job.
func (c *Client) Login(ctx context.Context, creds LoginRequest) (*AuthResponse, error) {
	var auth AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", creds, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Register calls POST /auth/register and returns the backend's confirmation
// message. Registration does not log the user in.
func (c *Client) Register(ctx context.Context, form RegisterRequest) (string, error) {
	data, _, err := c.do(ctx, http.MethodPost, "/auth/register", form, nil)
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(string(data)), `"`), nil
}
