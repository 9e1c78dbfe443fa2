// ABOUTME: Tests for the authentication endpoint wrappers
// ABOUTME: Covers login response decode and registration confirmation

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("expected path /api/v1/auth/login, got %s", r.URL.Path)
		}
		var creds LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("invalid credentials body: %v", err)
		}
		if creds.Email != "alice@example.com" || creds.Password != "s3cret" {
			t.Errorf("unexpected credentials: %+v", creds)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenType:    "Bearer",
			UserID:       12,
			Username:     "alice",
			Roles:        []string{"ROLE_USER"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	auth, err := c.Login(context.Background(), LoginRequest{Email: "alice@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.Username != "alice" || auth.UserID != 12 {
		t.Errorf("unexpected auth response: %+v", auth)
	}
	if c.Token() != "" {
		t.Error("login must not install the token on the client; that is the session manager's job")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), LoginRequest{Email: "alice@example.com", Password: "wrong"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRegister_ReturnsConfirmation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/register" {
			t.Errorf("expected path /api/v1/auth/register, got %s", r.URL.Path)
		}
		var form RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			t.Fatalf("invalid registration body: %v", err)
		}
		if form.Username != "alice" || form.FirstName != "Alice" {
			t.Errorf("unexpected form: %+v", form)
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("User registered successfully!"))
	}))
	defer server.Close()

	c := New(server.URL)
	msg, err := c.Register(context.Background(), RegisterRequest{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     "alice@example.com",
		Username:  "alice",
		Password:  "s3cret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "User registered successfully!" {
		t.Errorf("unexpected confirmation: %q", msg)
	}
}
