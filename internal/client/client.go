// ABOUTME: HTTP client for the Epay storefront API
// ABOUTME: Attaches bearer tokens, normalizes errors, and performs refresh-token exchange

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// basePath is the API prefix shared by every endpoint.
const basePath = "/api/v1"

// TokenStore persists credentials across process restarts.
// An empty value deletes the stored credential.
type TokenStore interface {
	SetAccessToken(token string) error
	SetRefreshToken(token string) error
}

// Client is the API client for the Epay backend.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu      sync.Mutex
	token   string
	refresh string
	store   TokenStore

	// refreshMu single-flights the 401 refresh exchange so concurrent
	// requests trigger at most one token rotation.
	refreshMu sync.Mutex
}

// New creates a new API client with the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetTimeout overrides the default HTTP timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// SetStore installs the persistent token store. Token changes made through
// SetToken and RefreshToken are mirrored to it.
func (c *Client) SetStore(store TokenStore) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = store
}

// SetToken updates the in-memory bearer token and mirrors it to the store:
// write on set, delete on clear. This is the single source of truth for the
// currently attached token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	if c.store != nil {
		_ = c.store.SetAccessToken(token)
	}
}

// Token returns the currently attached bearer token, empty when anonymous.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// SetRefreshToken updates the held refresh token and mirrors it to the store:
// write on set, delete on clear.
func (c *Client) SetRefreshToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresh = token
	if c.store != nil {
		_ = c.store.SetRefreshToken(token)
	}
}

func (c *Client) refreshTokenValue() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refresh
}

// APIError is the normalized error shape for every failed API call.
// StatusCode 0 means the failure happened below the HTTP layer.
type APIError struct {
	Message    string
	StatusCode int
	Details    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// IsNetwork reports whether the error represents a transport-level failure.
func (e *APIError) IsNetwork() bool {
	return e.StatusCode == 0
}

// Request issues an API call and returns the decoded body: parsed JSON for
// application/json responses, a string for anything else, nil for 204.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any, query url.Values) (any, error) {
	data, contentType, err := c.do(ctx, method, endpoint, body, query)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	if strings.Contains(contentType, "application/json") {
		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			return nil, fmt.Errorf("invalid response from backend: %w", err)
		}
		return decoded, nil
	}
	return string(data), nil
}

// RefreshToken exchanges the refresh token for a new token pair. The refresh
// endpoint takes the raw token string as a plain-text body, not JSON.
// On success both tokens are replaced atomically; on failure both are cleared
// so a failed refresh always leaves a fully logged-out state.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+basePath+"/auth/refresh-token", strings.NewReader(refreshToken))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.clearTokens()
		return nil, c.requestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := c.errorResponse(resp)
		c.clearTokens()
		return nil, apiErr
	}

	var auth AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		c.clearTokens()
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	c.SetToken(auth.AccessToken)
	c.SetRefreshToken(auth.RefreshToken)

	return &auth, nil
}

// Refresh exchanges the currently held refresh token for a new pair.
func (c *Client) Refresh(ctx context.Context) (*AuthResponse, error) {
	refresh := c.refreshTokenValue()
	if refresh == "" {
		return nil, &APIError{Message: "no refresh token held", StatusCode: http.StatusUnauthorized}
	}
	return c.RefreshToken(ctx, refresh)
}

// clearTokens wipes both credentials in memory and in the store.
func (c *Client) clearTokens() {
	c.SetToken("")
	c.SetRefreshToken("")
}

// do performs the HTTP round trip and error normalization shared by all
// endpoint wrappers. It returns the raw body and its content type; a 204
// yields a nil body. A 401 on an authenticated request triggers one refresh
// exchange and one replay; when the exchange fails the original 401 is
// surfaced untouched.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, query url.Values) ([]byte, string, error) {
	u := c.baseURL + basePath + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	attached := c.Token()
	resp, err := c.send(ctx, method, u, payload, attached)
	if err != nil {
		return nil, "", err
	}

	// Auth endpoints are excluded so a rejected login never triggers an
	// exchange.
	if resp.StatusCode == http.StatusUnauthorized && attached != "" && !strings.HasPrefix(endpoint, "/auth/") {
		apiErr := c.errorResponse(resp)
		resp.Body.Close()
		if err := c.exchangeOnce(ctx, attached); err != nil {
			return nil, "", apiErr
		}
		resp, err = c.send(ctx, method, u, payload, c.Token())
		if err != nil {
			return nil, "", err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, "", nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", c.errorResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// send performs one HTTP round trip with the given bearer token attached.
func (c *Client) send(ctx context.Context, method, u string, payload []byte, token string) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.requestError(ctx, err)
	}
	return resp, nil
}

// exchangeOnce runs a single-flighted refresh exchange. A caller whose 401
// raced a finished exchange sees the rotated token and skips.
func (c *Client) exchangeOnce(ctx context.Context, staleToken string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	if c.Token() != staleToken {
		return nil
	}
	_, err := c.Refresh(ctx)
	return err
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	data, _, err := c.do(ctx, http.MethodGet, endpoint, nil, query)
	if err != nil {
		return err
	}
	if out == nil || data == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// doJSON issues a request with a JSON body and decodes the JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	data, _, err := c.do(ctx, method, endpoint, body, nil)
	if err != nil {
		return err
	}
	if out == nil || data == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// requestError converts transport failures into APIError with status 0.
func (c *Client) requestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return &APIError{Message: "request canceled"}
	}
	if ctx.Err() == context.DeadlineExceeded {
		return &APIError{Message: "request timed out"}
	}
	return &APIError{Message: fmt.Sprintf("network error, check your connection: %v", err)}
}

// errorResponse normalizes a non-2xx response into APIError. The backend sends
// either {message} or a field-name to error-message mapping; the mapping is
// flattened into a semicolon-joined string.
func (c *Client) errorResponse(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Details:    string(data),
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err == nil {
		if msg, ok := parsed["message"].(string); ok && msg != "" {
			apiErr.Message = msg
			return apiErr
		}
		if len(parsed) > 0 {
			keys := make([]string, 0, len(parsed))
			for k := range parsed {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			parts := make([]string, 0, len(keys))
			for _, k := range keys {
				if v, ok := parsed[k].(string); ok {
					parts = append(parts, fmt.Sprintf("%s: %s", k, v))
				}
			}
			if len(parts) > 0 {
				apiErr.Message = strings.Join(parts, "; ")
				return apiErr
			}
		}
	}

	if len(data) > 0 {
		apiErr.Message = strings.TrimSpace(string(data))
	} else {
		apiErr.Message = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}
	return apiErr
}
