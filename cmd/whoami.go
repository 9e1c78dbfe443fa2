// ABOUTME: Whoami command for the epay CLI
// ABOUTME: Prints the local session state without touching the network

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

	"github.com/sixthson6/epay-cli/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long:  `Show who is signed in according to the stored session. This reads local state only.`,
	Run: func(cmd *cobra.Command, args []string) {
		_, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami prints session state and returns exit code
func runWhoami(w io.Writer) int {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user := a.session.User()
	if jsonOutput {
		fmt.Fprintln(w, formatWhoamiJSON(a.session.State(), user))
	} else {
		fmt.Fprintln(w, formatWhoamiHuman(a.session.State(), user))
	}

	if user == nil {
		return 1
	}
	return 0
}

// formatWhoamiHuman formats session state for human readability
func formatWhoamiHuman(state session.State, user *session.User) string {
	if user == nil {
		return "Not signed in."
	}
	roles := "none"
	if len(user.Roles) > 0 {
		roles = strings.Join(user.Roles, ", ")
	}
	return fmt.Sprintf(`State:    %s
Username: %s
User ID:  %d
Roles:    %s`, state, user.Username, user.ID, roles)
}

// formatWhoamiJSON formats session state as JSON
func formatWhoamiJSON(state session.State, user *session.User) string {
	output := map[string]interface{}{
		"state": state.String(),
	}
	if user != nil {
		output["username"] = user.Username
		output["user_id"] = user.ID
		output["roles"] = user.Roles
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
