package model

import "time"

// Alert formats. Format selects how content is rendered in the outgoing
// message: full delivers the captured text verbatim, summary and quiz are
// AI transformations.
const (
	FormatFull    = "full"
	FormatSummary = "summary"
	FormatQuiz    = "quiz"
)

// Alert statuses. The lifecycle is scheduled -> sent; sent is terminal.
const (
	StatusScheduled = "scheduled"
	StatusSent      = "sent"
)

// Alert is a captured snippet scheduled for delivery as a reminder e-mail.
type Alert struct {
	AlertID      string     `json:"alertId"`
	Recipient    string     `json:"recipient"`
	Title        string     `json:"title"`
	SourceURL    *string    `json:"sourceUrl,omitempty"`
	Content      string     `json:"content,omitempty"`
	Format       string     `json:"format"`
	Pregenerated bool       `json:"pregenerated"` // content already holds the transformed output
	DueDate      string     `json:"dueDate"`      // local calendar date, YYYY-MM-DD in Timezone
	Timezone     string     `json:"timezone"`
	Status       string     `json:"status"`
	SentAt       *time.Time `json:"sentAt,omitempty"`
	CreationTime time.Time  `json:"creationTime"`
}

// AlertStats summarizes a recipient's alerts for the list endpoint.
type AlertStats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Sent    int `json:"sent"`
}

// ListAlertsRequest captures filters used when listing alerts.
type ListAlertsRequest struct {
	Recipient string
	Limit     int
}

// ValidFormat reports whether f is one of the supported alert formats.
func ValidFormat(f string) bool {
	switch f {
	case FormatFull, FormatSummary, FormatQuiz:
		return true
	}
	return false
}
