// ABOUTME: Client-side cart state machine backed by the server cart
// ABOUTME: Every mutation is a round trip whose response replaces local state wholesale

package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/sixthson6/epay-cli/internal/client"
)

// ErrNotAuthenticated is returned when a cart mutation requires a session.
var ErrNotAuthenticated = errors.New("please login to add items to cart")

// Authenticator answers whether a session is active. The session manager
// satisfies this.
type Authenticator interface {
	IsAuthenticated() bool
}

// Machine owns the local cart replica. The server is authoritative: totals,
// subtotals, and stock clamping all come from its responses. On any failed
// mutation the previous snapshot is preserved unchanged.
type Machine struct {
	client *client.Client
	auth   Authenticator
	logger *zap.Logger

	// opMu serializes mutations so two overlapping operations cannot
	// interleave their state replacement.
	opMu sync.Mutex

	mu      sync.Mutex
	cart    *client.Cart
	pending bool
	lastErr string
}

// NewMachine creates a cart machine bound to the API client and session.
func NewMachine(c *client.Client, auth Authenticator, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{client: c, auth: auth, logger: logger}
}

// Load fetches the server cart and replaces local state. No-op when
// unauthenticated; partial results are never merged.
func (m *Machine) Load(ctx context.Context) error {
	if !m.auth.IsAuthenticated() {
		return nil
	}
	return m.run(func() (*client.Cart, error) {
		return m.client.GetCart(ctx)
	})
}

// Add posts a quantity delta for the product. Unauthenticated calls fail with
// ErrNotAuthenticated before any network traffic.
func (m *Machine) Add(ctx context.Context, productID int64, quantity int) (*client.Cart, error) {
	if !m.auth.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	if quantity < 1 {
		quantity = 1
	}
	if err := m.checkStock(productID, quantity, true); err != nil {
		m.recordError(err)
		return nil, err
	}
	err := m.run(func() (*client.Cart, error) {
		return m.client.AddToCart(ctx, productID, quantity)
	})
	if err != nil {
		return nil, err
	}
	return m.Cart(), nil
}

// Update sets the absolute quantity for the product. Quantity 0 is forwarded
// unchanged; removal is Remove's job. No-op when unauthenticated.
func (m *Machine) Update(ctx context.Context, productID int64, quantity int) (*client.Cart, error) {
	if !m.auth.IsAuthenticated() {
		return nil, nil
	}
	if err := m.checkStock(productID, quantity, false); err != nil {
		m.recordError(err)
		return nil, err
	}
	err := m.run(func() (*client.Cart, error) {
		return m.client.UpdateCartItem(ctx, productID, quantity)
	})
	if err != nil {
		return nil, err
	}
	return m.Cart(), nil
}

// Remove deletes the line item server-side. No-op when unauthenticated.
func (m *Machine) Remove(ctx context.Context, productID int64) (*client.Cart, error) {
	if !m.auth.IsAuthenticated() {
		return nil, nil
	}
	err := m.run(func() (*client.Cart, error) {
		return m.client.RemoveFromCart(ctx, productID)
	})
	if err != nil {
		return nil, err
	}
	return m.Cart(), nil
}

// Clear empties the cart server-side. No-op when unauthenticated.
func (m *Machine) Clear(ctx context.Context) (*client.Cart, error) {
	if !m.auth.IsAuthenticated() {
		return nil, nil
	}
	err := m.run(func() (*client.Cart, error) {
		return m.client.ClearCart(ctx)
	})
	if err != nil {
		return nil, err
	}
	return m.Cart(), nil
}

// Reset drops local state without a server call. Called on logout so no cart
// leaks between user sessions.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = nil
	m.pending = false
	m.lastErr = ""
}

// Cart returns the current snapshot, nil when unloaded.
func (m *Machine) Cart() *client.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart
}

// Pending reports whether an operation is in flight.
func (m *Machine) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// LastError returns the most recent operation error, empty when clear.
func (m *Machine) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// ClearError clears the recorded error without touching the cart.
func (m *Machine) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = ""
}

// ItemCount folds quantities over the current cart. A nil cart counts 0.
func (m *Machine) ItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cart == nil {
		return 0
	}
	count := 0
	for _, item := range m.cart.Items {
		count += item.Quantity
	}
	return count
}

// Total folds subtotals over the current cart. A nil cart totals 0.
func (m *Machine) Total() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cart == nil {
		return 0
	}
	total := 0.0
	for _, item := range m.cart.Items {
		total += item.Subtotal
	}
	return total
}

// run executes one serialized operation: pending, round trip, then wholesale
// replace on success or snapshot preservation on failure.
func (m *Machine) run(op func() (*client.Cart, error)) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.Lock()
	m.pending = true
	m.lastErr = ""
	m.mu.Unlock()

	cart, err := op()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = false
	if err != nil {
		m.lastErr = err.Error()
		m.logger.Warn("cart operation failed", zap.Error(err))
		return err
	}
	m.cart = cart
	return nil
}

// checkStock is the best-effort pre-flight guard against exceeding the known
// stock level. The backend stays authoritative; an unknown product passes.
func (m *Machine) checkStock(productID int64, quantity int, additive bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cart == nil {
		return nil
	}
	for _, item := range m.cart.Items {
		if item.Product.ID != productID {
			continue
		}
		want := quantity
		if additive {
			want += item.Quantity
		}
		if item.Product.StockQuantity > 0 && want > item.Product.StockQuantity {
			return fmt.Errorf("only %d of %s in stock", item.Product.StockQuantity, item.Product.Name)
		}
		return nil
	}
	return nil
}

func (m *Machine) recordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = err.Error()
}
