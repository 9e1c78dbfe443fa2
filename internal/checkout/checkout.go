// ABOUTME: Simulated checkout flow over the live cart
// ABOUTME: Validates shipping and payment fields, prices the order, then clears the cart

package checkout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sixthson6/epay-cli/internal/cart"
)

// Pricing constants. Tax and shipping are client-side simulation only; there
// is no payment gateway behind this.
const (
	TaxRate          = 0.08
	FreeShippingOver = 50.0
	FlatShippingFee  = 9.99
)

// ErrEmptyCart is returned when checkout starts with nothing to buy.
var ErrEmptyCart = errors.New("your cart is empty, add some items before checkout")

var (
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
)

// ShippingInfo holds the delivery address form.
type ShippingInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
	Country   string
}

// Validate checks the required shipping fields.
func (s *ShippingInfo) Validate() error {
	required := map[string]string{
		"first name": s.FirstName,
		"last name":  s.LastName,
		"email":      s.Email,
		"phone":      s.Phone,
		"address":    s.Address,
		"city":       s.City,
		"state":      s.State,
		"zip code":   s.ZipCode,
	}
	var missing []string
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("please fill in all shipping information fields")
	}
	if !emailPattern.MatchString(s.Email) {
		return fmt.Errorf("email address looks invalid")
	}
	return nil
}

// PaymentInfo holds the card form. Nothing here ever leaves the process.
type PaymentInfo struct {
	CardNumber         string
	ExpiryDate         string
	CVV                string
	CardholderName     string
	BillingAddressSame bool
}

// Validate checks the required payment fields and basic card shape.
func (p *PaymentInfo) Validate() error {
	if strings.TrimSpace(p.CardNumber) == "" ||
		strings.TrimSpace(p.ExpiryDate) == "" ||
		strings.TrimSpace(p.CVV) == "" ||
		strings.TrimSpace(p.CardholderName) == "" {
		return fmt.Errorf("please fill in all payment information fields")
	}
	card := strings.ReplaceAll(p.CardNumber, " ", "")
	if !digitsPattern.MatchString(card) || len(card) < 13 || len(card) > 19 {
		return fmt.Errorf("card number looks invalid")
	}
	if !expiryPattern.MatchString(p.ExpiryDate) {
		return fmt.Errorf("expiry date must be MM/YY")
	}
	if !digitsPattern.MatchString(p.CVV) || len(p.CVV) < 3 || len(p.CVV) > 4 {
		return fmt.Errorf("CVV looks invalid")
	}
	return nil
}

// BillingInfo holds the billing address when it differs from shipping.
type BillingInfo struct {
	Address string
	City    string
	State   string
	ZipCode string
	Country string
}

// Summary prices a cart subtotal with tax and shipping.
type Summary struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
}

// Order is the confirmation of a placed (simulated) order.
type Order struct {
	Reference string
	Items     int
	Summary   Summary
	PlacedAt  time.Time
}

// Processor drives the checkout flow against the cart machine.
type Processor struct {
	cart   *cart.Machine
	logger *zap.Logger
}

// NewProcessor creates a checkout processor over the given cart.
func NewProcessor(cartMachine *cart.Machine, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{cart: cartMachine, logger: logger}
}

// Price computes the order summary from the current cart. Orders above the
// free-shipping threshold ship free.
func (p *Processor) Price() Summary {
	subtotal := p.cart.Total()
	return priceSubtotal(subtotal)
}

func priceSubtotal(subtotal float64) Summary {
	s := Summary{Subtotal: subtotal}
	if subtotal <= 0 {
		return s
	}
	s.Tax = subtotal * TaxRate
	if subtotal <= FreeShippingOver {
		s.Shipping = FlatShippingFee
	}
	s.Total = s.Subtotal + s.Tax + s.Shipping
	return s
}

// PlaceOrder validates the forms, prices the cart, empties it server-side,
// and returns the confirmation. The cart clear is the only backend effect.
func (p *Processor) PlaceOrder(ctx context.Context, shipping ShippingInfo, payment PaymentInfo, billing *BillingInfo) (*Order, error) {
	snapshot := p.cart.Cart()
	if snapshot == nil || len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := shipping.Validate(); err != nil {
		return nil, err
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}
	if !payment.BillingAddressSame && billing == nil {
		return nil, fmt.Errorf("billing address is required when it differs from shipping")
	}

	items := p.cart.ItemCount()
	summary := p.Price()

	if _, err := p.cart.Clear(ctx); err != nil {
		return nil, fmt.Errorf("failed to process order: %w", err)
	}

	order := &Order{
		Reference: newReference(),
		Items:     items,
		Summary:   summary,
		PlacedAt:  time.Now(),
	}
	p.logger.Info("order placed",
		zap.String("reference", order.Reference),
		zap.Int("items", order.Items),
		zap.Float64("total", order.Summary.Total),
	)
	return order, nil
}

// newReference mints a human-readable order reference: the order date plus a
// random fragment.
func newReference() string {
	id := uuid.New().String()
	return "ORD-" + time.Now().Format("20060102") + "-" + strings.ToUpper(id[:8])
}
