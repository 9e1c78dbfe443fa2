// ABOUTME: Derives the display-hint user from the access token payload
// ABOUTME: Decode only, no signature verification; authorization stays server-side

package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// userFromToken decodes the token payload without verifying the signature and
// builds the derived user. The result is a best-effort display hint; the
// backend verifies the token on every request.
func userFromToken(token string) (*User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token payload: %w", err)
	}

	user := &User{}

	if id, ok := claims["userId"].(float64); ok {
		user.ID = int64(id)
	} else if id, ok := claims["id"].(float64); ok {
		user.ID = int64(id)
	}

	if username, ok := claims["username"].(string); ok {
		user.Username = username
	} else if sub, ok := claims["sub"].(string); ok {
		user.Username = sub
	}

	if roles, ok := claims["roles"].([]any); ok {
		for _, r := range roles {
			if role, ok := r.(string); ok {
				user.Roles = append(user.Roles, role)
			}
		}
	}

	if user.Username == "" {
		return nil, fmt.Errorf("token payload carries no identity")
	}
	return user, nil
}
