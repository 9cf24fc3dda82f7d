package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var id, name, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register as a walk-in visitor and open a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"visitor_id": id,
				"name":       name,
				"email":      email,
			}
			var result RegisterResult

			if err := client.Post("/api/v1/visitors/register", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Visitor ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Visitor name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Visitor email (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newTimesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "times <visitor-id>",
		Short: "Show a visitor's stored station times",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TimesResult

			if err := client.Get("/api/v1/visitors/"+args[0]+"/times", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
