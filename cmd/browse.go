// ABOUTME: Browse command for the epay CLI
// ABOUTME: Launches the interactive storefront TUI

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sixthson6/epay-cli/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive storefront",
	Long:  `Open the full-screen storefront. Browse the catalog, manage your cart, and check out without leaving the terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		if err := tui.Run(a.client, a.session, a.cart); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
