package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/highlightagent/highlight-agent/internal/model"
	"github.com/highlightagent/highlight-agent/internal/store"
)

// Generator transforms captured content at creation time when the caller
// asks for eager generation.
type Generator interface {
	Generate(ctx context.Context, format, title, content string) (string, error)
}

// AlertService owns validation and business rules for alert capture and
// management. Handlers stay thin and delegate here.
type AlertService struct {
	alerts store.Alerts
	gen    Generator
	log    zerolog.Logger
}

// NewAlertService constructs an AlertService. gen may be nil when eager
// generation is not offered.
func NewAlertService(st store.Store, gen Generator, log zerolog.Logger) *AlertService {
	return &AlertService{alerts: st.Alerts(), gen: gen, log: log}
}

// CreateAlertRequest captures one snippet for future delivery.
type CreateAlertRequest struct {
	Email     string  `json:"email"`
	Title     string  `json:"title"`
	SourceURL *string `json:"sourceUrl,omitempty"`
	Content   string  `json:"content"`
	Format    string  `json:"format,omitempty"`   // defaults to full
	DueDate   string  `json:"dueDate"`            // YYYY-MM-DD in Timezone
	Timezone  string  `json:"timezone,omitempty"` // defaults to UTC
	// GenerateNow runs the content transformation at capture time instead
	// of at delivery time. Failures fall back to delivery-time generation.
	GenerateNow bool `json:"generateNow,omitempty"`
}

func (r *CreateAlertRequest) validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("%w: email is required", model.ErrValidation)
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: invalid email address", model.ErrValidation)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("%w: content is required", model.ErrValidation)
	}
	if r.DueDate == "" {
		return fmt.Errorf("%w: dueDate is required", model.ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", r.DueDate); err != nil {
		return fmt.Errorf("%w: dueDate must be YYYY-MM-DD", model.ErrValidation)
	}
	if r.Format != "" && !model.ValidFormat(r.Format) {
		return fmt.Errorf("%w: unsupported format %q", model.ErrValidation, r.Format)
	}
	if r.Timezone != "" {
		if _, err := time.LoadLocation(r.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", model.ErrValidation, r.Timezone)
		}
	}
	return nil
}

// CreateAlert validates and persists a new alert in status scheduled.
func (s *AlertService) CreateAlert(ctx context.Context, req CreateAlertRequest) (*model.Alert, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = model.FormatFull
	}
	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}

	a := &model.Alert{
		Recipient: req.Email,
		Title:     req.Title,
		SourceURL: req.SourceURL,
		Content:   req.Content,
		Format:    format,
		DueDate:   req.DueDate,
		Timezone:  tz,
		Status:    model.StatusScheduled,
	}

	if req.GenerateNow && format != model.FormatFull && s.gen != nil {
		out, err := s.gen.Generate(ctx, format, req.Title, req.Content)
		if err != nil {
			// delivery-time generation remains the fallback path
			s.log.Warn().Err(err).Str("format", format).Msg("eager generation failed, storing raw capture")
		} else {
			a.Content = out
			a.Pregenerated = true
		}
	}

	created, err := s.alerts.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	s.log.Info().
		Str("alert_id", created.AlertID).
		Str("recipient", created.Recipient).
		Str("due_date", created.DueDate).
		Str("timezone", created.Timezone).
		Str("format", created.Format).
		Msg("alert created")
	return created, nil
}

// ListAlertsResponse bundles a recipient's alerts with aggregate counts.
// Items omit content to keep the listing payload small.
type ListAlertsResponse struct {
	Stats  model.AlertStats `json:"stats"`
	Alerts []*model.Alert   `json:"alerts"`
}

// ListAlerts returns a recipient's alerts, newest first.
func (s *AlertService) ListAlerts(ctx context.Context, req model.ListAlertsRequest) (*ListAlertsResponse, error) {
	if strings.TrimSpace(req.Recipient) == "" {
		return nil, fmt.Errorf("%w: email is required", model.ErrValidation)
	}
	items, err := s.alerts.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	resp := &ListAlertsResponse{Alerts: make([]*model.Alert, 0, len(items))}
	for _, a := range items {
		resp.Stats.Total++
		switch a.Status {
		case model.StatusSent:
			resp.Stats.Sent++
		default:
			resp.Stats.Pending++
		}
		stripped := *a
		stripped.Content = ""
		resp.Alerts = append(resp.Alerts, &stripped)
	}
	return resp, nil
}

// GetAlert returns one alert including its content.
func (s *AlertService) GetAlert(ctx context.Context, alertID string) (*model.Alert, error) {
	if alertID == "" {
		return nil, fmt.Errorf("%w: alertId is required", model.ErrValidation)
	}
	return s.alerts.Get(ctx, alertID)
}

// DeleteAlert removes an alert. The recipient scoping prevents deleting
// another user's alerts by guessing identifiers.
func (s *AlertService) DeleteAlert(ctx context.Context, recipient, alertID string) error {
	if strings.TrimSpace(recipient) == "" {
		return fmt.Errorf("%w: email is required", model.ErrValidation)
	}
	if alertID == "" {
		return fmt.Errorf("%w: alertId is required", model.ErrValidation)
	}
	if err := s.alerts.Delete(ctx, recipient, alertID); err != nil {
		return err
	}
	s.log.Info().Str("alert_id", alertID).Str("recipient", recipient).Msg("alert deleted")
	return nil
}
