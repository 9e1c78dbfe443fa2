// ABOUTME: Tests for the checkout wizard
// ABOUTME: Verifies step transitions, billing branch, and completion messages

package wizard

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sixthson6/epay-cli/internal/checkout"
)

func sampleSummary() checkout.Summary {
	return checkout.Summary{
		Subtotal: 100.00,
		Tax:      8.00,
		Shipping: 0,
		Total:    108.00,
	}
}

func fillShipping(w *Wizard) {
	w.shipping = checkout.ShippingInfo{
		FirstName: "Maya",
		LastName:  "Lin",
		Email:     "maya@example.com",
		Phone:     "555-0100",
		Address:   "1 Main St",
		City:      "Springfield",
		State:     "IL",
		ZipCode:   "62701",
		Country:   "US",
	}
}

func fillPayment(w *Wizard) {
	w.payment = checkout.PaymentInfo{
		CardNumber:     "4242424242424242",
		ExpiryDate:     "12/28",
		CVV:            "123",
		CardholderName: "Maya Lin",
	}
}

func TestWizardStartsOnShipping(t *testing.T) {
	w := New(sampleSummary())

	if w.Step() != 1 {
		t.Errorf("expected step 1, got %d", w.Step())
	}
	if !w.payment.BillingAddressSame {
		t.Error("expected billing-same default")
	}
}

func TestWizardAdvancesThroughSteps(t *testing.T) {
	w := New(sampleSummary())
	fillShipping(w)

	w.advanceStep()
	if w.Step() != 2 {
		t.Errorf("expected step 2 after shipping, got %d", w.Step())
	}

	fillPayment(w)
	w.advanceStep()
	if w.Step() != 3 {
		t.Errorf("expected step 3 after payment, got %d", w.Step())
	}
}

func TestWizardBillingBranch(t *testing.T) {
	w := New(sampleSummary())
	fillShipping(w)
	w.advanceStep()

	fillPayment(w)
	w.billingSame = false
	w.advanceStep()
	if w.Step() != 2 {
		t.Errorf("expected to stay on step 2 for billing address, got %d", w.Step())
	}

	w.billing = checkout.BillingInfo{
		Address: "2 Oak Ave",
		City:    "Springfield",
		State:   "IL",
		ZipCode: "62702",
		Country: "US",
	}
	w.advanceStep()
	if w.Step() != 3 {
		t.Errorf("expected step 3 after billing address, got %d", w.Step())
	}
}

func TestWizardComplete(t *testing.T) {
	w := New(sampleSummary())
	fillShipping(w)
	w.advanceStep()
	fillPayment(w)
	w.advanceStep()

	w.confirmed = true
	_, cmd := w.advanceStep()
	if cmd == nil {
		t.Fatal("expected a command from confirmed review")
	}
	msg, ok := cmd().(WizardCompleteMsg)
	if !ok {
		t.Fatalf("expected WizardCompleteMsg, got %T", cmd())
	}
	if msg.Shipping.City != "Springfield" {
		t.Errorf("expected shipping city, got %s", msg.Shipping.City)
	}
	if msg.Billing != nil {
		t.Error("expected nil billing when address is same as shipping")
	}
}

func TestWizardCompleteWithBilling(t *testing.T) {
	w := New(sampleSummary())
	fillShipping(w)
	w.advanceStep()
	fillPayment(w)
	w.billingSame = false
	w.advanceStep()
	w.billing = checkout.BillingInfo{Address: "2 Oak Ave", City: "Springfield", State: "IL", ZipCode: "62702", Country: "US"}
	w.advanceStep()

	w.confirmed = true
	_, cmd := w.advanceStep()
	msg := cmd().(WizardCompleteMsg)
	if msg.Billing == nil {
		t.Fatal("expected billing info in completion")
	}
	if msg.Billing.Address != "2 Oak Ave" {
		t.Errorf("expected billing address, got %s", msg.Billing.Address)
	}
	if msg.Payment.BillingAddressSame {
		t.Error("expected billing-same flag cleared")
	}
}

func TestWizardDeclinedReviewCancels(t *testing.T) {
	w := New(sampleSummary())
	fillShipping(w)
	w.advanceStep()
	fillPayment(w)
	w.advanceStep()

	w.confirmed = false
	_, cmd := w.advanceStep()
	if cmd == nil {
		t.Fatal("expected a command from declined review")
	}
	if _, ok := cmd().(WizardCancelledMsg); !ok {
		t.Fatalf("expected WizardCancelledMsg, got %T", cmd())
	}
}

func TestWizardEscapeCancels(t *testing.T) {
	w := New(sampleSummary())

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command from esc")
	}
	if _, ok := cmd().(WizardCancelledMsg); !ok {
		t.Fatalf("expected WizardCancelledMsg, got %T", cmd())
	}
}

func TestWizardProgressRendering(t *testing.T) {
	w := New(sampleSummary())
	w.SetWidth(80)

	progress := w.renderProgress()
	if !strings.Contains(progress, "Checkout") {
		t.Error("expected panel title in progress")
	}
	for _, name := range stepNames {
		if !strings.Contains(progress, name) {
			t.Errorf("expected step name %s in progress", name)
		}
	}
}

func TestRequiredValidator(t *testing.T) {
	validate := required("city")

	if err := validate("  "); err == nil {
		t.Error("expected error for blank value")
	}
	if err := validate("Springfield"); err != nil {
		t.Errorf("expected no error for value, got %v", err)
	}
}
