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
		Use:   "expotrack",
		Short: "CLI tool for the visit tracking API",
		Long: `expotrack is a CLI tool for interacting with the visit tracking JSON API.

It supports all API operations: visitor registration, station timers,
the per-session leaderboard, stored visit times, and logout.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load token from file if not provided via flag/env
			if err := cfg.LoadToken(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: EXPOTRACK_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: EXPOTRACK_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: EXPOTRACK_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newStationsCmd())
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newStopCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newTimesCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
