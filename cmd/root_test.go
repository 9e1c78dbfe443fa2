// ABOUTME: Tests for root command wiring and exit code mapping
// ABOUTME: Verifies flag precedence and error classification

package cmd

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sixthson6/epay-cli/internal/cart"
	"github.com/sixthson6/epay-cli/internal/client"
	"github.com/sixthson6/epay-cli/internal/session"
)

// setupCmdTest points the command globals at a test backend and an
// isolated config dir. Returns the config dir for session seeding.
func setupCmdTest(t *testing.T, serverURL string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("EPAY_CONFIG_DIR", dir)
	t.Setenv("EPAY_API_URL", "")
	apiURL = serverURL
	jsonOutput = false
	t.Cleanup(func() {
		apiURL = ""
		jsonOutput = false
	})
	return dir
}

// seedSession writes a persisted session so newApp restores an
// authenticated user.
func seedSession(t *testing.T, dir string, user session.User) {
	t.Helper()
	store := session.NewStore(dir)
	err := store.Save(&session.Snapshot{
		AccessToken:  makeToken(t, user),
		RefreshToken: "refresh-token",
		User:         &user,
	})
	if err != nil {
		t.Fatalf("seeding session: %v", err)
	}
}

// makeToken builds an unsigned JWT carrying the user's identity claims
func makeToken(t *testing.T, user session.User) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	claims, err := json.Marshal(map[string]interface{}{
		"userId":   user.ID,
		"username": user.Username,
		"roles":    user.Roles,
	})
	if err != nil {
		t.Fatalf("marshaling claims: %v", err)
	}
	payload := base64.RawURLEncoding.EncodeToString(claims)
	return header + "." + payload + "."
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, 0},
		{"not authenticated", cart.ErrNotAuthenticated, 1},
		{"backend rejection", &client.APIError{Message: "no", StatusCode: 400}, 1},
		{"network failure", &client.APIError{Message: "down", StatusCode: 0}, 2},
		{"generic error", errors.New("boom"), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestNewApp_FlagOverridesEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EPAY_CONFIG_DIR", dir)
	t.Setenv("EPAY_API_URL", "http://from-env:8080")
	apiURL = "http://from-flag:9090"
	defer func() { apiURL = "" }()

	a, err := newApp()
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	if a.cfg.APIURL != "http://from-flag:9090" {
		t.Errorf("expected flag URL to win, got %s", a.cfg.APIURL)
	}
}

func TestNewApp_RestoresSession(t *testing.T) {
	dir := setupCmdTest(t, "http://localhost:8080")
	seedSession(t, dir, session.User{ID: 7, Username: "maya", Roles: []string{"USER"}})

	a, err := newApp()
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	if !a.session.IsAuthenticated() {
		t.Fatal("expected restored session to be authenticated")
	}
	if user := a.session.User(); user == nil || user.Username != "maya" {
		t.Errorf("expected restored user maya, got %+v", user)
	}
}
