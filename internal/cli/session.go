package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the session leaderboard, longest visit first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LeaderboardResult

			if err := client.Get("/api/v1/leaderboard", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the current session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionResult

			if err := client.Get("/api/v1/session", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Close the session and send the visit summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LogoutResult

			if err := client.Post("/api/v1/logout", nil, &result); err != nil {
				return err
			}

			// The token is dead either way
			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
