// ABOUTME: Logout command for the epay CLI
// ABOUTME: Discards the persisted session and in-memory tokens

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		_, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	a.session.Logout()
	a.cart.Reset()

	if jsonOutput {
		fmt.Fprintln(w, `{"status": "signed out"}`)
	} else {
		fmt.Fprintln(w, "Signed out.")
	}
	return 0
}
