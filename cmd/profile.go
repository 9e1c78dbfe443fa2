// ABOUTME: Profile commands for the epay CLI
// ABOUTME: Fetches, updates, and deletes the signed-in account

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
	profileFirstName string
	profileLastName  string
	profileEmail     string
	profilePassword  string
	profileConfirm   bool
)

var profileCmd = &cobra.Command{
	Use:   "profile [user-id]",
	Short: "Show your account profile",
	Long:  `Show the signed-in account. Administrators may pass a user id to inspect another account.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		rawID := ""
		if len(args) == 1 {
			rawID = args[0]
		}
		exitCode := runProfileShow(ctx, os.Stdout, rawID)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your account profile",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfileUpdate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete your account",
	Long:  `Delete your account on the backend and discard the local session. Requires --confirm.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfileDelete(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileFirstName, "first-name", "", "New first name")
	profileUpdateCmd.Flags().StringVar(&profileLastName, "last-name", "", "New last name")
	profileUpdateCmd.Flags().StringVar(&profileEmail, "email", "", "New email")
	profileUpdateCmd.Flags().StringVar(&profilePassword, "password", "", "New password")
	profileDeleteCmd.Flags().BoolVar(&profileConfirm, "confirm", false, "Confirm account deletion")
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}

// runProfileShow fetches an account and returns exit code
func runProfileShow(ctx context.Context, w io.Writer, rawID string) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if !a.session.IsAuthenticated() {
		fmt.Fprintln(w, "Error: sign in to view your profile")
		return 1
	}

	var account *client.Account
	if rawID != "" {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			fmt.Fprintf(w, "Error: invalid user id %q\n", rawID)
			return 2
		}
		if !a.session.HasRole("ROLE_ADMIN") {
			fmt.Fprintln(w, "Error: administrator role required to view other accounts")
			return 1
		}
		account, err = a.client.User(ctx, id)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitCode(err)
		}
	} else {
		account, err = a.client.Me(ctx)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitCode(err)
		}
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(account, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatAccountHuman(account))
	}
	return 0
}

// runProfileUpdate patches the account and returns exit code
func runProfileUpdate(ctx context.Context, w io.Writer) int {
	if profileFirstName == "" && profileLastName == "" && profileEmail == "" && profilePassword == "" {
		fmt.Fprintln(w, "Error: nothing to update")
		return 2
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(w, "Error: sign in to update your profile")
		return 1
	}

	account, err := a.client.UpdateUser(ctx, user.ID, client.AccountUpdate{
		FirstName: profileFirstName,
		LastName:  profileLastName,
		Email:     profileEmail,
		Password:  profilePassword,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(account, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatAccountHuman(account))
	}
	return 0
}

// runProfileDelete removes the account and returns exit code
func runProfileDelete(ctx context.Context, w io.Writer) int {
	if !profileConfirm {
		fmt.Fprintln(w, "Error: pass --confirm to delete your account")
		return 2
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(w, "Error: sign in to delete your account")
		return 1
	}

	if err := a.client.DeleteUser(ctx, user.ID); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}
	a.session.Logout()
	a.cart.Reset()

	if jsonOutput {
		fmt.Fprintln(w, `{"status": "account deleted"}`)
	} else {
		fmt.Fprintln(w, "Account deleted. You have been signed out.")
	}
	return 0
}

// formatAccountHuman formats the account for human readability
func formatAccountHuman(account *client.Account) string {
	name := strings.TrimSpace(account.FirstName + " " + account.LastName)
	roles := "none"
	if len(account.Roles) > 0 {
		roles = strings.Join(account.Roles, ", ")
	}
	return fmt.Sprintf(`Username: %s
Name:     %s
Email:    %s
User ID:  %d
Roles:    %s`, account.Username, name, account.Email, account.ID, roles)
}
