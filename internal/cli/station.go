package cli

import (
	"github.com/spf13/cobra"
)

func newStationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stations",
		Short: "List the station catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StationsResult

			if err := client.Get("/api/v1/stations", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <station-id>",
		Short: "Start (or restart) a station timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StartResult

			if err := client.Post("/api/v1/stations/"+args[0]+"/start", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <station-id>",
		Short: "Stop a station timer and record the time spent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StopResult

			if err := client.Post("/api/v1/stations/"+args[0]+"/stop", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
