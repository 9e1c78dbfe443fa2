// ABOUTME: Product commands for the epay CLI
// ABOUTME: Lists, inspects, and (for administrators) manages catalog products

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
	productsPage    int
	productsSize    int
	productsSortBy  string
	productsSortDir string
	productsSearch  string

	productName        string
	productDescription string
	productPrice       float64
	productStock       int
	productImageURL    string
	productCategory    string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the product catalog",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProducts(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var productsShowCmd = &cobra.Command{
	Use:   "show <product-id>",
	Short: "Show a single product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var productsCategoryCmd = &cobra.Command{
	Use:   "category <name>",
	Short: "List products in a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductsByCategory(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product (admin only)",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <product-id>",
	Short: "Update a product (admin only)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <product-id>",
	Short: "Delete a product (admin only)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProductDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	productsCmd.Flags().IntVar(&productsPage, "page", 0, "Page number (zero-based)")
	productsCmd.Flags().IntVar(&productsSize, "size", 0, "Page size")
	productsCmd.Flags().StringVar(&productsSortBy, "sort-by", "", "Sort field (e.g. name, price)")
	productsCmd.Flags().StringVar(&productsSortDir, "sort-dir", "", "Sort direction (asc or desc)")
	productsCmd.Flags().StringVar(&productsSearch, "search", "", "Filter by product name")
	for _, c := range []*cobra.Command{productsCreateCmd, productsUpdateCmd} {
		c.Flags().StringVar(&productName, "name", "", "Product name")
		c.Flags().StringVar(&productDescription, "description", "", "Product description")
		c.Flags().Float64Var(&productPrice, "price", 0, "Unit price")
		c.Flags().IntVar(&productStock, "stock", 0, "Stock quantity")
		c.Flags().StringVar(&productImageURL, "image-url", "", "Product image URL")
		c.Flags().StringVar(&productCategory, "category", "", "Category name")
	}
	productsCmd.AddCommand(productsShowCmd)
	productsCmd.AddCommand(productsCategoryCmd)
	productsCmd.AddCommand(productsCreateCmd)
	productsCmd.AddCommand(productsUpdateCmd)
	productsCmd.AddCommand(productsDeleteCmd)
	rootCmd.AddCommand(productsCmd)
}

// runProducts lists a catalog page and returns exit code
func runProducts(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	page, err := a.client.Products(ctx, client.ProductQuery{
		PageNo:   productsPage,
		PageSize: productsSize,
		SortBy:   productsSortBy,
		SortDir:  productsSortDir,
		Name:     productsSearch,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(page, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatProductPageHuman(page))
	}
	return 0
}

// runProductShow fetches one product and returns exit code
func runProductShow(ctx context.Context, w io.Writer, rawID string) int {
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

	product, err := a.client.Product(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(product, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatProductHuman(product))
	}
	return 0
}

// runProductsByCategory lists one category and returns exit code
func runProductsByCategory(ctx context.Context, w io.Writer, category string) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	products, err := a.client.ProductsByCategory(ctx, category)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(products, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatProductListHuman(category, products))
	}
	return 0
}

// runProductCreate creates a catalog product and returns exit code
func runProductCreate(ctx context.Context, w io.Writer) int {
	if productName == "" {
		fmt.Fprintln(w, "Error: --name is required")
		return 2
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !a.session.HasRole("ROLE_ADMIN") {
		fmt.Fprintln(w, "Error: administrator role required")
		return 1
	}

	product, err := a.client.CreateProduct(ctx, client.Product{
		Name:          productName,
		Description:   productDescription,
		Price:         productPrice,
		StockQuantity: productStock,
		ImageURL:      productImageURL,
		CategoryName:  productCategory,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(product, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatProductHuman(product))
	}
	return 0
}

// runProductUpdate replaces a catalog product and returns exit code
func runProductUpdate(ctx context.Context, w io.Writer, rawID string) int {
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
	if !a.session.HasRole("ROLE_ADMIN") {
		fmt.Fprintln(w, "Error: administrator role required")
		return 1
	}

	product, err := a.client.UpdateProduct(ctx, id, client.Product{
		Name:          productName,
		Description:   productDescription,
		Price:         productPrice,
		StockQuantity: productStock,
		ImageURL:      productImageURL,
		CategoryName:  productCategory,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(product, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatProductHuman(product))
	}
	return 0
}

// runProductDelete removes a catalog product and returns exit code
func runProductDelete(ctx context.Context, w io.Writer, rawID string) int {
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
	if !a.session.HasRole("ROLE_ADMIN") {
		fmt.Fprintln(w, "Error: administrator role required")
		return 1
	}

	if err := a.client.DeleteProduct(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		fmt.Fprintf(w, "{\"status\": \"deleted\", \"id\": %d}\n", id)
	} else {
		fmt.Fprintf(w, "Product %d deleted.\n", id)
	}
	return 0
}

// formatProductPageHuman formats a catalog page for human readability
func formatProductPageHuman(page *client.ProductPage) string {
	if len(page.Content) == 0 {
		return "No products found."
	}
	var b strings.Builder
	for _, p := range page.Content {
		fmt.Fprintf(&b, "%s\n", formatProductLine(p))
	}
	fmt.Fprintf(&b, "Page %d of %d (%d products total)", page.PageNo+1, page.TotalPages, page.TotalElements)
	return b.String()
}

// formatProductListHuman formats a category listing for human readability
func formatProductListHuman(category string, products []client.Product) string {
	if len(products) == 0 {
		return fmt.Sprintf("No products in category %q.", category)
	}
	var b strings.Builder
	for i, p := range products {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(formatProductLine(p))
	}
	return b.String()
}

// formatProductLine renders one product as a list row
func formatProductLine(p client.Product) string {
	stock := fmt.Sprintf("%d in stock", p.StockQuantity)
	if p.StockQuantity == 0 {
		stock = "out of stock"
	}
	return fmt.Sprintf("%5d  %-30s  $%8.2f  %s", p.ID, p.Name, p.Price, stock)
}

// formatProductHuman formats a single product for human readability
func formatProductHuman(p *client.Product) string {
	return fmt.Sprintf(`Name:        %s
ID:          %d
Price:       $%.2f
Stock:       %d
Category:    %s
Description: %s`, p.Name, p.ID, p.Price, p.StockQuantity, p.CategoryName, p.Description)
}
