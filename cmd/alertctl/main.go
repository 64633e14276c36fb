package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

func main() {
	root := &cobra.Command{
		Use:           "alertctl",
		Short:         "Manage HighlightAgent reminder alerts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&serverURL, "server", envOr("ALERTS_SERVER_URL", "http://localhost:8080"), "alert service base URL")

	root.AddCommand(newCreateCmd(), newListCmd(), newGetCmd(), newDeleteCmd(), newTickCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
