// ABOUTME: Tests for the Epay API client core
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

// fakeStore records token writes for assertions.
type fakeStore struct {
	access  string
	refresh string
}

func (s *fakeStore) SetAccessToken(token string) error  { s.access = token; return nil }
func (s *fakeStore) SetRefreshToken(token string) error { s.refresh = token; return nil }

func TestRequest_JSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/categories" {
			t.Errorf("expected path /api/v1/categories, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "name": "Electronics"}})
	}))
	defer server.Close()

	c := New(server.URL)
	out, err := c.Request(context.Background(), http.MethodGet, "/categories", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := out.([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("expected one decoded element, got %#v", out)
	}
}

func TestRequest_TextResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("User registered successfully!"))
	}))
	defer server.Close()

	c := New(server.URL)
	out, err := c.Request(context.Background(), http.MethodPost, "/auth/register", map[string]string{"username": "alice"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "User registered successfully!" {
		t.Errorf("expected raw text body, got %#v", out)
	}
}

func TestRequest_NoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := New(server.URL)
	out, err := c.Request(context.Background(), http.MethodDelete, "/products/7", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Errorf("expected nil for 204, got %#v", out)
	}
}

func TestRequest_BearerHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("abc123")
	if _, err := c.Request(context.Background(), http.MethodGet, "/cart", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}

func TestRequest_NoBearerHeaderWhenAnonymous(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Request(context.Background(), http.MethodGet, "/products", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no auth header, got %q", gotAuth)
	}
}

func TestRequest_QueryParams(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL)
	q := url.Values{}
	q.Set("pageNo", "2")
	q.Set("name", "phone")
	if _, err := c.Request(context.Background(), http.MethodGet, "/products", nil, q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery.Get("pageNo") != "2" || gotQuery.Get("name") != "phone" {
		t.Errorf("expected query params forwarded, got %v", gotQuery)
	}
}

func TestRequest_ErrorWithMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Request(context.Background(), http.MethodPost, "/auth/login", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "Bad credentials" {
		t.Errorf("expected backend message surfaced, got %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
	if apiErr.IsNetwork() {
		t.Error("HTTP-level failure must not be classified as network failure")
	}
}

func TestRequest_ErrorWithFieldMap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"email":    "must be a valid address",
			"password": "too short",
		})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Request(context.Background(), http.MethodPost, "/auth/register", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	want := "email: must be a valid address; password: too short"
	if apiErr.Message != want {
		t.Errorf("expected flattened field errors %q, got %q", want, apiErr.Message)
	}
}

func TestRequest_ErrorWithTextBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("Username is already taken"))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Request(context.Background(), http.MethodPost, "/auth/register", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "Username is already taken" {
		t.Errorf("expected raw body surfaced, got %q", apiErr.Message)
	}
}

func TestRequest_NetworkError(t *testing.T) {
	c := New("http://localhost:1")
	_, err := c.Request(context.Background(), http.MethodGet, "/products", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if !apiErr.IsNetwork() {
		t.Errorf("expected status 0 for transport failure, got %d", apiErr.StatusCode)
	}
}

func TestRequest_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Request(ctx, http.MethodGet, "/cart", nil, nil)
	if err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}

func TestSetToken_MirrorsToStore(t *testing.T) {
	store := &fakeStore{}
	c := New("http://localhost:8080")
	c.SetStore(store)

	c.SetToken("tok")
	if store.access != "tok" {
		t.Errorf("expected token mirrored to store, got %q", store.access)
	}

	c.SetToken("")
	if store.access != "" {
		t.Errorf("expected cleared token mirrored to store, got %q", store.access)
	}
}

func TestRefreshToken_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/refresh-token" {
			t.Errorf("expected refresh path, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "text/plain" {
			t.Errorf("expected text/plain body, got %s", ct)
		}
		body := make([]byte, 64)
		n, _ := r.Body.Read(body)
		if string(body[:n]) != "old-refresh" {
			t.Errorf("expected raw refresh token body, got %q", body[:n])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(AuthResponse{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
			TokenType:    "Bearer",
			Username:     "alice",
		})
	}))
	defer server.Close()

	store := &fakeStore{access: "old-access", refresh: "old-refresh"}
	c := New(server.URL)
	c.SetStore(store)
	c.SetToken("old-access")

	auth, err := c.RefreshToken(context.Background(), "old-refresh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.AccessToken != "new-access" {
		t.Errorf("expected new access token, got %s", auth.AccessToken)
	}
	if c.Token() != "new-access" {
		t.Errorf("expected client token replaced, got %s", c.Token())
	}
	if store.access != "new-access" || store.refresh != "new-refresh" {
		t.Errorf("expected both tokens persisted, got access=%q refresh=%q", store.access, store.refresh)
	}
}

func TestRefreshToken_FailureClearsBothTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Refresh token expired"})
	}))
	defer server.Close()

	store := &fakeStore{access: "old-access", refresh: "old-refresh"}
	c := New(server.URL)
	c.SetStore(store)
	c.SetToken("old-access")

	_, err := c.RefreshToken(context.Background(), "old-refresh")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if c.Token() != "" {
		t.Errorf("expected in-memory token cleared, got %q", c.Token())
	}
	if store.access != "" || store.refresh != "" {
		t.Errorf("expected both stored tokens cleared, got access=%q refresh=%q", store.access, store.refresh)
	}
}

func TestRequest_ExpiredTokenRefreshesAndReplays(t *testing.T) {
	var cartBodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/cart/add":
			body := make([]byte, 256)
			n, _ := r.Body.Read(body)
			cartBodies = append(cartBodies, string(body[:n]))
			if r.Header.Get("Authorization") != "Bearer new-access" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "Token expired"})
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"items":[],"total":0}`))
		case "/api/v1/auth/refresh-token":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(AuthResponse{
				AccessToken:  "new-access",
				RefreshToken: "new-refresh",
				TokenType:    "Bearer",
			})
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer server.Close()

	store := &fakeStore{}
	c := New(server.URL)
	c.SetStore(store)
	c.SetToken("stale-access")
	c.SetRefreshToken("refresh-1")

	out, err := c.Request(context.Background(), http.MethodPost, "/cart/add", map[string]any{"productId": 7, "quantity": 1}, nil)
	if err != nil {
		t.Fatalf("expected replay to succeed, got %v", err)
	}
	if out == nil {
		t.Fatal("expected decoded body from the replayed request")
	}
	if c.Token() != "new-access" {
		t.Errorf("expected rotated token installed, got %q", c.Token())
	}
	if store.access != "new-access" || store.refresh != "new-refresh" {
		t.Errorf("expected rotated tokens persisted, got access=%q refresh=%q", store.access, store.refresh)
	}
	if len(cartBodies) != 2 {
		t.Fatalf("expected exactly one replay, got %d attempts", len(cartBodies))
	}
	if cartBodies[1] != cartBodies[0] {
		t.Errorf("expected identical body on replay: first=%q second=%q", cartBodies[0], cartBodies[1])
	}
}

func TestRequest_FailedExchangeSurfacesOriginal401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if r.URL.Path == "/api/v1/auth/refresh-token" {
			json.NewEncoder(w).Encode(map[string]string{"message": "Refresh token expired"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Token expired"})
	}))
	defer server.Close()

	store := &fakeStore{access: "stale-access", refresh: "refresh-1"}
	c := New(server.URL)
	c.SetStore(store)
	c.SetToken("stale-access")
	c.SetRefreshToken("refresh-1")

	_, err := c.Request(context.Background(), http.MethodGet, "/cart", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "Token expired" {
		t.Errorf("expected the original 401 surfaced, got %q", apiErr.Message)
	}
	if c.Token() != "" || store.access != "" || store.refresh != "" {
		t.Error("expected full teardown after the failed exchange")
	}
}

func TestRequest_AnonymousRequestNeverExchanges(t *testing.T) {
	var refreshCalls, requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/refresh-token" {
			refreshCalls++
			return
		}
		requests++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Authentication required"})
	}))
	defer server.Close()

	c := New(server.URL)
	if _, err := c.Request(context.Background(), http.MethodGet, "/cart", nil, nil); err == nil {
		t.Fatal("expected error, got nil")
	}
	if refreshCalls != 0 {
		t.Errorf("expected no exchange without a bearer token, got %d", refreshCalls)
	}
	if requests != 1 {
		t.Errorf("expected a single attempt, got %d", requests)
	}
}

func TestRequest_AuthEndpointsNeverExchange(t *testing.T) {
	var refreshCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/refresh-token" {
			refreshCalls++
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("some-access")
	c.SetRefreshToken("refresh-1")

	_, err := c.Request(context.Background(), http.MethodPost, "/auth/login", LoginRequest{Username: "alice", Password: "wrong"}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if refreshCalls != 0 {
		t.Errorf("expected rejected login to never trigger an exchange, got %d", refreshCalls)
	}
}

func TestRefreshToken_NetworkFailureClearsBothTokens(t *testing.T) {
	store := &fakeStore{access: "old-access", refresh: "old-refresh"}
	c := New("http://localhost:1")
	c.SetStore(store)
	c.SetToken("old-access")

	_, err := c.RefreshToken(context.Background(), "old-refresh")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if c.Token() != "" || store.access != "" || store.refresh != "" {
		t.Error("expected full teardown on refresh failure, found surviving tokens")
	}
}
