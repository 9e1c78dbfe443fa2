// ABOUTME: Session manager state machine for the Epay client
// ABOUTME: Owns tokens and the derived user; every transition is mirrored to storage first

package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sixthson6/epay-cli/internal/client"
)

// State is the session manager's authentication state.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

// String returns the state name for logs and status output.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Manager owns the token lifecycle and the derived identity. The error
// overlay (LastError) records the most recent failure without changing the
// authentication state.
type Manager struct {
	client *client.Client
	store  *Store
	logger *zap.Logger

	mu        sync.Mutex
	state     State
	user      *User
	lastError string
}

// NewManager wires the session manager to the API client and the persistent
// store. The store is also installed on the client so token changes are
// mirrored automatically.
func NewManager(c *client.Client, store *Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.SetStore(store)
	return &Manager{
		client: c,
		store:  store,
		logger: logger,
		state:  StateUninitialized,
	}
}

// Initialize reconstructs the session from storage at process start. A decode
// failure is treated as anonymous and logged; Initialize never fails outward.
func (m *Manager) Initialize() {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, err := m.store.Load()
	if err != nil {
		m.logger.Warn("failed to read persisted session", zap.Error(err))
		m.state = StateAnonymous
		return
	}
	if snap.AccessToken == "" {
		m.state = StateAnonymous
		return
	}

	user, err := userFromToken(snap.AccessToken)
	if err != nil {
		// The token may be opaque to us; the persisted user is the fallback
		// display hint.
		user = snap.User
	}
	if user == nil {
		m.logger.Warn("persisted token carries no identity, discarding session", zap.Error(err))
		m.teardownLocked()
		return
	}

	m.client.SetToken(snap.AccessToken)
	m.client.SetRefreshToken(snap.RefreshToken)
	m.user = user
	m.state = StateAuthenticated
	m.logger.Debug("session restored", zap.String("username", user.Username))
}

// Login authenticates and installs the new session. The store is updated
// before the transition to authenticated completes, so a reload mid-session
// reconstructs the same state. A failed login tears down any previous
// session: the anonymous state and the cleared credentials arrive together.
func (m *Manager) Login(ctx context.Context, creds client.LoginRequest) (*User, error) {
	m.setState(StateLoading)

	auth, err := m.client.Login(ctx, creds)
	if err != nil {
		m.mu.Lock()
		m.teardownLocked()
		m.lastError = err.Error()
		m.mu.Unlock()
		return nil, err
	}

	user := &User{ID: auth.UserID, Username: auth.Username, Roles: auth.Roles}

	m.client.SetToken(auth.AccessToken)
	m.client.SetRefreshToken(auth.RefreshToken)
	if err := m.store.SetUser(user); err != nil {
		m.logger.Warn("failed to persist user", zap.Error(err))
	}

	m.mu.Lock()
	m.user = user
	m.state = StateAuthenticated
	m.lastError = ""
	m.mu.Unlock()

	m.logger.Info("logged in", zap.String("username", user.Username))
	return user, nil
}

// Register creates an account. It never changes the authentication state;
// registration is not auto-login.
func (m *Manager) Register(ctx context.Context, form client.RegisterRequest) (string, error) {
	msg, err := m.client.Register(ctx, form)
	if err != nil {
		m.mu.Lock()
		m.lastError = err.Error()
		m.mu.Unlock()
		return "", err
	}
	return msg, nil
}

// Logout clears tokens and the user unconditionally. It cannot fail.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardownLocked()
	m.logger.Info("logged out")
}

// Refresh exchanges the refresh token for a new pair. The user is preserved
// on success; any failure forces a full logged-out state, never a partial one.
// The client also runs this exchange on its own when a request hits a 401.
func (m *Manager) Refresh(ctx context.Context) error {
	if _, err := m.client.Refresh(ctx); err != nil {
		m.mu.Lock()
		m.teardownLocked()
		m.lastError = err.Error()
		m.mu.Unlock()
		return err
	}
	return nil
}

// teardownLocked clears all three session fields atomically. Callers hold mu.
func (m *Manager) teardownLocked() {
	m.client.SetToken("")
	m.client.SetRefreshToken("")
	_ = m.store.SetUser(nil)
	m.user = nil
	m.state = StateAnonymous
	m.lastError = ""
}

// HasRole reports whether the current user holds the role. Anonymous sessions
// answer false, never an error.
func (m *Manager) HasRole(role string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user.HasRole(role)
}

// State returns the current authentication state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the derived user, nil when anonymous.
func (m *Manager) User() *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// LastError returns the error overlay message, empty when clear.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// ClearError clears the error overlay without touching the auth state.
func (m *Manager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastError = ""
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}
