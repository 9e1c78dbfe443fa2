// ABOUTME: Categories command for the epay CLI
// ABOUTME: Lists the catalog categories

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sixthson6/epay-cli/internal/client"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List product categories",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCategories(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

// runCategories lists categories and returns exit code
func runCategories(ctx context.Context, w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	categories, err := a.client.Categories(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(categories, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatCategoriesHuman(categories))
	}
	return 0
}

// formatCategoriesHuman formats the category list for human readability
func formatCategoriesHuman(categories []client.Category) string {
	if len(categories) == 0 {
		return "No categories."
	}
	var b strings.Builder
	for i, c := range categories {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%5d  %s", c.ID, c.Name)
	}
	return b.String()
}
