package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "arcadectl",
		Short: "CLI tool for the arcade competition API",
		Long: `arcadectl is a CLI tool for interacting with the arcade competition JSON API.

It supports badge batch management (create, import, export, sync), score
leaderboard queries, and health checks. Badge operations require the admin
key (flag, env, or key file).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load admin key from file if not provided via flag/env
			if err := cfg.LoadAdminKey(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.AdminKey)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: ARCADE_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminKey, "admin-key", cfg.AdminKey, "Admin key (env: ARCADE_ADMIN_KEY)")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminKeyFile, "admin-key-file", cfg.AdminKeyFile, "Admin key file path (env: ARCADE_ADMIN_KEY_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newBadgesCmd())
	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
