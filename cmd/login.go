// ABOUTME: Login command for the epay CLI
// ABOUTME: Authenticates against the backend and persists the session

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

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/sixthson6/epay-cli/internal/client"
	"github.com/sixthson6/epay-cli/internal/session"
)

var (
	loginEmail    string
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the Epay backend",
	Long:  `Sign in with your email or username. The session is persisted so later commands stay authenticated.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginUsername, "username", "", "Account username")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

// runLogin authenticates and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	if loginEmail == "" && loginUsername == "" {
		fmt.Fprintln(w, "Error: --email or --username is required")
		return 2
	}

	password := loginPassword
	if password == "" {
		prompt := huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password)
		if err := prompt.Run(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user, err := a.session.Login(ctx, client.LoginRequest{
		Email:    loginEmail,
		Username: loginUsername,
		Password: password,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		fmt.Fprintln(w, formatLoginJSON(user))
	} else {
		fmt.Fprintln(w, formatLoginHuman(user))
	}

	return 0
}

// formatLoginHuman formats the signed-in user for human readability
func formatLoginHuman(user *session.User) string {
	roles := "none"
	if len(user.Roles) > 0 {
		roles = strings.Join(user.Roles, ", ")
	}
	return fmt.Sprintf(`Signed in as: %s
User ID:      %d
Roles:        %s`, user.Username, user.ID, roles)
}

// formatLoginJSON formats the signed-in user as JSON
func formatLoginJSON(user *session.User) string {
	output := map[string]interface{}{
		"username": user.Username,
		"user_id":  user.ID,
		"roles":    user.Roles,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
