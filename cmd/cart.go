// ABOUTME: Cart commands for the epay CLI
// ABOUTME: Shows and mutates the server-side cart for the signed-in user

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sixthson6/epay-cli/internal/client"
)

var (
	cartAddQuantity    int
	cartUpdateQuantity int
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show your cart",
	Long:  `Show and manage your cart. All cart commands require a signed-in session.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCartShow(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCartAdd(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <product-id>",
	Short: "Set a line item's quantity",
	Long:  `Set the quantity of a product already in the cart. A quantity of zero removes the line.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCartUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCartRemove(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCartClear(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	cartAddCmd.Flags().IntVar(&cartAddQuantity, "quantity", 1, "Quantity to add")
	cartUpdateCmd.Flags().IntVar(&cartUpdateQuantity, "quantity", 0, "New quantity for the line")
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartUpdateCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}

// runCartShow fetches and prints the cart, returning exit code
func runCartShow(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !a.session.IsAuthenticated() {
		fmt.Fprintln(w, "Error: sign in to view your cart")
		return 1
	}

	if err := a.cart.Load(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}
	printCart(w, a.cart.Cart())
	return 0
}

// runCartAdd adds a product and returns exit code
func runCartAdd(ctx context.Context, w io.Writer, rawID string) int {
	return runCartMutation(ctx, w, rawID, func(ctx context.Context, a *app, id int64) (*client.Cart, error) {
		return a.cart.Add(ctx, id, cartAddQuantity)
	})
}

// runCartUpdate sets a line quantity and returns exit code
func runCartUpdate(ctx context.Context, w io.Writer, rawID string) int {
	return runCartMutation(ctx, w, rawID, func(ctx context.Context, a *app, id int64) (*client.Cart, error) {
		return a.cart.Update(ctx, id, cartUpdateQuantity)
	})
}

// runCartRemove removes a line and returns exit code
func runCartRemove(ctx context.Context, w io.Writer, rawID string) int {
	return runCartMutation(ctx, w, rawID, func(ctx context.Context, a *app, id int64) (*client.Cart, error) {
		return a.cart.Remove(ctx, id)
	})
}

// runCartClear empties the cart and returns exit code
func runCartClear(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	cart, err := a.cart.Clear(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}
	printCart(w, cart)
	return 0
}

// runCartMutation parses the product id, loads the current cart so
// stock checks see it, applies op, and prints the result.
func runCartMutation(ctx context.Context, w io.Writer, rawID string, op func(context.Context, *app, int64) (*client.Cart, error)) int {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid product id %q\n", rawID)
		return 2
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := a.cart.Load(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	cart, err := op(ctx, a, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}
	printCart(w, cart)
	return 0
}

// printCart renders the cart in the selected output mode
func printCart(w io.Writer, cart *client.Cart) {
	if jsonOutput {
		if cart == nil {
			cart = &client.Cart{Items: []client.CartItem{}}
		}
		data, _ := json.MarshalIndent(cart, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintln(w, formatCartHuman(cart))
}

// formatCartHuman formats the cart for human readability
func formatCartHuman(cart *client.Cart) string {
	if cart == nil || len(cart.Items) == 0 {
		return "Your cart is empty."
	}
	var b strings.Builder
	for _, item := range cart.Items {
		fmt.Fprintf(&b, "%5d  %-30s  x%-3d  $%8.2f\n", item.Product.ID, item.Product.Name, item.Quantity, item.Subtotal)
	}
	fmt.Fprintf(&b, "Total: $%.2f", cart.Total)
	return b.String()
}
