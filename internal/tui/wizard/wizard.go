// ABOUTME: Checkout wizard as a bubbletea model
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sixthson6/epay-cli/internal/checkout"
	"github.com/sixthson6/epay-cli/internal/tui/icons"
	"github.com/sixthson6/epay-cli/internal/tui/styles"
)

// WizardCompleteMsg is sent when the wizard finishes successfully
type WizardCompleteMsg struct {
	Shipping checkout.ShippingInfo
	Payment  checkout.PaymentInfo
	Billing  *checkout.BillingInfo
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// Wizard manages the checkout flow as a bubbletea model
type Wizard struct {
	summary  checkout.Summary
	shipping checkout.ShippingInfo
	payment  checkout.PaymentInfo
	billing  checkout.BillingInfo
	form     *huh.Form
	step     int
	width    int

	billingSame bool
	confirmed   bool
}

// Step names for progress indicator
var stepNames = []string{"Shipping", "Payment", "Review"}

// New creates a checkout wizard for the priced cart summary
func New(summary checkout.Summary) *Wizard {
	w := &Wizard{
		summary:     summary,
		step:        1,
		billingSame: true,
	}
	w.payment.BillingAddressSame = true
	w.form = w.createShippingForm()
	return w
}

func (w *Wizard) createShippingForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				CharLimit(64).
				Value(&w.shipping.FirstName).
				Validate(required("first name")),
			huh.NewInput().
				Title("Last name").
				CharLimit(64).
				Value(&w.shipping.LastName).
				Validate(required("last name")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				CharLimit(128).
				Value(&w.shipping.Email).
				Validate(required("email")),
			huh.NewInput().
				Title("Phone").
				CharLimit(32).
				Value(&w.shipping.Phone).
				Validate(required("phone")),
			huh.NewInput().
				Title("Street address").
				CharLimit(128).
				Value(&w.shipping.Address).
				Validate(required("address")),
			huh.NewInput().
				Title("City").
				CharLimit(64).
				Value(&w.shipping.City).
				Validate(required("city")),
			huh.NewInput().
				Title("State / region").
				CharLimit(64).
				Value(&w.shipping.State).
				Validate(required("state")),
			huh.NewInput().
				Title("Postal code").
				CharLimit(16).
				Value(&w.shipping.ZipCode).
				Validate(required("postal code")),
			huh.NewInput().
				Title("Country").
				CharLimit(64).
				Value(&w.shipping.Country).
				Validate(required("country")),
		).Title("Step 1: Shipping").
			Description("Where should the order go?"),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createPaymentForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Card number").
				Placeholder("4242 4242 4242 4242").
				CharLimit(23).
				Value(&w.payment.CardNumber).
				Validate(required("card number")),
			huh.NewInput().
				Title("Expiry (MM/YY)").
				Placeholder("12/28").
				CharLimit(5).
				Value(&w.payment.ExpiryDate).
				Validate(required("expiry date")),
			huh.NewInput().
				Title("CVV").
				EchoMode(huh.EchoModePassword).
				CharLimit(4).
				Value(&w.payment.CVV).
				Validate(required("CVV")),
			huh.NewInput().
				Title("Name on card").
				CharLimit(64).
				Value(&w.payment.CardholderName).
				Validate(required("cardholder name")),
			huh.NewConfirm().
				Title("Billing address same as shipping?").
				Affirmative("Yes").
				Negative("No").
				Value(&w.billingSame),
		).Title("Step 2: Payment").
			Description("Card details are validated locally and never sent anywhere"),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createBillingForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Billing street address").
				CharLimit(128).
				Value(&w.billing.Address).
				Validate(required("billing address")),
			huh.NewInput().
				Title("Billing city").
				CharLimit(64).
				Value(&w.billing.City).
				Validate(required("billing city")),
			huh.NewInput().
				Title("Billing state / region").
				CharLimit(64).
				Value(&w.billing.State).
				Validate(required("billing state")),
			huh.NewInput().
				Title("Billing postal code").
				CharLimit(16).
				Value(&w.billing.ZipCode).
				Validate(required("billing postal code")),
			huh.NewInput().
				Title("Billing country").
				CharLimit(64).
				Value(&w.billing.Country).
				Validate(required("billing country")),
		).Title("Step 2: Payment").
			Description("Billing address for the card"),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createReviewForm() *huh.Form {
	shippingCost := fmt.Sprintf("$%.2f", w.summary.Shipping)
	if w.summary.Shipping == 0 {
		shippingCost = "free"
	}
	description := fmt.Sprintf(
		"Subtotal $%.2f · Tax $%.2f · Shipping %s\nTotal $%.2f · ship to %s %s, %s",
		w.summary.Subtotal, w.summary.Tax, shippingCost, w.summary.Total,
		w.shipping.FirstName, w.shipping.LastName, w.shipping.City)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Place this order?").
				Description(description).
				Affirmative("Place order").
				Negative("Cancel").
				Value(&w.confirmed),
		).Title("Step 3: Review"),
	).WithTheme(styles.FormTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.step = 2
		w.form = w.createPaymentForm()
		return w, w.form.Init()

	case 2:
		w.payment.BillingAddressSame = w.billingSame
		if !w.billingSame && w.billing.Address == "" {
			// Stay on step 2 until the separate billing address is filled in
			w.form = w.createBillingForm()
			return w, w.form.Init()
		}
		w.step = 3
		w.form = w.createReviewForm()
		return w, w.form.Init()

	case 3:
		if !w.confirmed {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
		var billing *checkout.BillingInfo
		if !w.payment.BillingAddressSame {
			b := w.billing
			billing = &b
		}
		shipping, payment := w.shipping, w.payment
		return w, func() tea.Msg {
			return WizardCompleteMsg{Shipping: shipping, Payment: payment, Billing: billing}
		}
	}

	return w, nil
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// Step returns the current wizard step (1-based)
func (w *Wizard) Step() int {
	return w.step
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	sb.WriteString(w.form.View())

	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := w.width - 1
	if width < 60 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	// Build step indicators
	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		if stepNum < w.step {
			// Completed step
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		} else if stepNum == w.step {
			// Current step
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		} else {
			// Future step
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// Progress bar line format: "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	totalSteps := len(stepNames)
	filledWidth := (w.step * barWidth) / totalSteps
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))
	progressBar := filledBar + emptyBar

	// Build panel with consistent width
	styledTitle := titleStyle.Render("Checkout")
	titleWidth := lipgloss.Width("Checkout")

	topFillWidth := maxInt(0, width-5-titleWidth)
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	stepsLineWidth := lipgloss.Width(stepsLine)
	stepsPadding := maxInt(0, width-4-stepsLineWidth)
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"

	progressLinePadded := "│  " + progressBar + " │"

	bottomFillWidth := width - 2
	bottomBorder := "└" + strings.Repeat("─", bottomFillWidth) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
