// ABOUTME: Root command for the epay CLI with global API URL and output flags.
// ABOUTME: Wires configuration, logging, the API client, and session state for subcommands.
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sixthson6/epay-cli/internal/cart"
	"github.com/sixthson6/epay-cli/internal/client"
	"github.com/sixthson6/epay-cli/internal/config"
	"github.com/sixthson6/epay-cli/internal/logging"
	"github.com/sixthson6/epay-cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "epay",
	Short: "Terminal storefront for the Epay backend",
	Long: `epay is a terminal client for the Epay commerce API.

Browse the catalog, manage your cart, and place orders from the command
line, or run 'epay browse' for the interactive storefront.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Base URL of the Epay API (overrides EPAY_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles the wired pieces every subcommand needs.
type app struct {
	cfg     *config.Config
	client  *client.Client
	session *session.Manager
	cart    *cart.Machine
	logger  *zap.Logger
}

// newApp loads configuration, restores any persisted session, and
// returns a ready-to-use client stack. The --api-url flag wins over
// the environment.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	cfg.Sanitize()

	logger := logging.New(cfg.ConfigDir, cfg.Debug)

	c := client.New(cfg.APIURL)
	c.SetTimeout(cfg.RequestTimeout)

	store := session.NewStore(cfg.ConfigDir)
	sess := session.NewManager(c, store, logger)
	sess.Initialize()

	machine := cart.NewMachine(c, sess, logger)

	return &app{
		cfg:     cfg,
		client:  c,
		session: sess,
		cart:    machine,
		logger:  logger,
	}, nil
}

// exitCode maps an error to the process exit code: 0 for nil, 1 for a
// request the backend rejected or an unauthenticated operation, 2 for
// transport and configuration failures.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if err == cart.ErrNotAuthenticated {
		return 1
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsNetwork() {
			return 2
		}
		return 1
	}
	return 2
}
