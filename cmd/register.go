// ABOUTME: Register command for the epay CLI
// ABOUTME: Creates a backend account without signing in

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/sixthson6/epay-cli/internal/client"
)

var (
	registerFirstName string
	registerLastName  string
	registerEmail     string
	registerUsername  string
	registerPassword  string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long:  `Create a new account on the Epay backend. Registration does not sign you in; run 'epay login' afterwards.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerLastName, "last-name", "", "Last name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "Account username")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(registerCmd)
}

// runRegister creates the account and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	if registerEmail == "" || registerUsername == "" {
		fmt.Fprintln(w, "Error: --email and --username are required")
		return 2
	}

	password := registerPassword
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

	msg, err := a.session.Register(ctx, client.RegisterRequest{
		FirstName: registerFirstName,
		LastName:  registerLastName,
		Email:     registerEmail,
		Username:  registerUsername,
		Password:  password,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitCode(err)
	}

	if jsonOutput {
		output := map[string]string{"status": "registered", "message": msg}
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		if msg == "" {
			msg = "Account created."
		}
		fmt.Fprintln(w, msg)
	}
	return 0
}
