// ABOUTME: Checkout command for the epay CLI
// ABOUTME: Prices the cart and places a simulated order from flag input

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sixthson6/epay-cli/internal/checkout"
)

var (
	checkoutShipping checkout.ShippingInfo
	checkoutPayment  checkout.PaymentInfo
	checkoutBilling  checkout.BillingInfo
	checkoutPrice    bool
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the current cart",
	Long: `Price the cart and place a simulated order. Payment details are
validated locally and never sent anywhere. Use --price-only to see the
order summary without placing the order.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCheckout(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	f := checkoutCmd.Flags()
	f.StringVar(&checkoutShipping.FirstName, "first-name", "", "Shipping first name")
	f.StringVar(&checkoutShipping.LastName, "last-name", "", "Shipping last name")
	f.StringVar(&checkoutShipping.Email, "email", "", "Contact email")
	f.StringVar(&checkoutShipping.Phone, "phone", "", "Contact phone")
	f.StringVar(&checkoutShipping.Address, "address", "", "Shipping street address")
	f.StringVar(&checkoutShipping.City, "city", "", "Shipping city")
	f.StringVar(&checkoutShipping.State, "state", "", "Shipping state or region")
	f.StringVar(&checkoutShipping.ZipCode, "zip", "", "Shipping postal code")
	f.StringVar(&checkoutShipping.Country, "country", "", "Shipping country")
	f.StringVar(&checkoutPayment.CardNumber, "card-number", "", "Card number")
	f.StringVar(&checkoutPayment.ExpiryDate, "expiry", "", "Card expiry as MM/YY")
	f.StringVar(&checkoutPayment.CVV, "cvv", "", "Card CVV")
	f.StringVar(&checkoutPayment.CardholderName, "cardholder", "", "Name on the card")
	f.BoolVar(&checkoutPayment.BillingAddressSame, "billing-same", true, "Billing address matches shipping")
	f.StringVar(&checkoutBilling.Address, "billing-address", "", "Billing street address")
	f.StringVar(&checkoutBilling.City, "billing-city", "", "Billing city")
	f.StringVar(&checkoutBilling.State, "billing-state", "", "Billing state or region")
	f.StringVar(&checkoutBilling.ZipCode, "billing-zip", "", "Billing postal code")
	f.StringVar(&checkoutBilling.Country, "billing-country", "", "Billing country")
	f.BoolVar(&checkoutPrice, "price-only", false, "Show the order summary without placing the order")
	rootCmd.AddCommand(checkoutCmd)
}

// runCheckout prices or places the order and returns exit code
func runCheckout(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !a.session.IsAuthenticated() {
		fmt.Fprintln(w, "Error: sign in to check out")
		return 1
	}

	if err := a.cart.Load(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	processor := checkout.NewProcessor(a.cart, a.logger)

	if checkoutPrice {
		summary := processor.Price()
		if jsonOutput {
			data, _ := json.MarshalIndent(summary, "", "  ")
			fmt.Fprintln(w, string(data))
		} else {
			fmt.Fprintln(w, formatSummaryHuman(summary))
		}
		return 0
	}

	var billing *checkout.BillingInfo
	if !checkoutPayment.BillingAddressSame {
		billing = &checkoutBilling
	}

	order, err := processor.PlaceOrder(ctx, checkoutShipping, checkoutPayment, billing)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(order, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatOrderHuman(order))
	}
	return 0
}

// formatSummaryHuman formats the order summary for human readability
func formatSummaryHuman(s checkout.Summary) string {
	shipping := fmt.Sprintf("$%.2f", s.Shipping)
	if s.Shipping == 0 {
		shipping = "free"
	}
	return fmt.Sprintf(`Subtotal: $%.2f
Tax:      $%.2f
Shipping: %s
Total:    $%.2f`, s.Subtotal, s.Tax, shipping, s.Total)
}

// formatOrderHuman formats the order confirmation for human readability
func formatOrderHuman(o *checkout.Order) string {
	return fmt.Sprintf(`Order placed.
Reference: %s
Items:     %d
%s`, o.Reference, o.Items, formatSummaryHuman(o.Summary))
}
