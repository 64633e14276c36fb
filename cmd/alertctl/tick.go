package main

import (
	"net/http"

	"github.com/spf13/cobra"
)

func newTickCmd() *cobra.Command {
	var now string
	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Trigger a scheduler pass on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{}
			if now != "" {
				body["now"] = now
			}
			return call(apiClient().R().SetBody(body), http.MethodPost, "/api/scheduler/tick", http.StatusOK)
		},
	}
	cmd.Flags().StringVar(&now, "now", "", "RFC3339 instant to schedule for (defaults to server wall clock)")
	return cmd
}
