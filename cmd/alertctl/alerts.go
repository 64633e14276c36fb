package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	var (
		email       string
		title       string
		content     string
		sourceURL   string
		format      string
		dueDate     string
		timezone    string
		generateNow bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Capture a snippet and schedule its reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"email":   email,
				"title":   title,
				"content": content,
				"dueDate": dueDate,
			}
			if sourceURL != "" {
				body["sourceUrl"] = sourceURL
			}
			if format != "" {
				body["format"] = format
			}
			if timezone != "" {
				body["timezone"] = timezone
			}
			if generateNow {
				body["generateNow"] = true
			}
			return call(apiClient().R().SetBody(body), http.MethodPost, "/api/alerts", http.StatusCreated)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "recipient e-mail address (required)")
	cmd.Flags().StringVar(&title, "title", "", "alert title (required)")
	cmd.Flags().StringVar(&content, "content", "", "captured text (required)")
	cmd.Flags().StringVar(&sourceURL, "source-url", "", "where the snippet was captured")
	cmd.Flags().StringVar(&format, "format", "", "delivery format: full, summary or quiz")
	cmd.Flags().StringVar(&dueDate, "due-date", "", "local delivery date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone, defaults to UTC")
	cmd.Flags().BoolVar(&generateNow, "generate-now", false, "run the AI transformation at capture time")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	_ = cmd.MarkFlagRequired("due-date")
	return cmd
}

func newListCmd() *cobra.Command {
	var (
		email string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a recipient's alerts with counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := apiClient().R().SetQueryParam("email", email)
			if limit > 0 {
				req.SetQueryParam("limit", fmt.Sprintf("%d", limit))
			}
			return call(req, http.MethodGet, "/api/alerts", http.StatusOK)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "recipient e-mail address (required)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of alerts to return")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <alert-id>",
		Short: "Show one alert including its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(apiClient().R(), http.MethodGet, "/api/alerts/"+args[0], http.StatusOK)
		},
	}
}

func newDeleteCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "delete <alert-id>",
		Short: "Delete an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := apiClient().R().SetQueryParam("email", email)
			return call(req, http.MethodDelete, "/api/alerts/"+args[0], http.StatusNoContent)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "recipient e-mail address (required)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
