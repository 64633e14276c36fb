package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/highlightagent/highlight-agent/internal/email"
	"github.com/highlightagent/highlight-agent/internal/model"
	"github.com/highlightagent/highlight-agent/internal/store"
)

// Generator produces transformed reminder content for a format.
type Generator interface {
	Generate(ctx context.Context, format, title, content string) (string, error)
}

// Notifier delivers one rendered reminder e-mail.
type Notifier interface {
	Deliver(ctx context.Context, recipient, subject, htmlBody, textBody string) error
}

// Summary reports the outcome of one tick for observability.
type Summary struct {
	Attempted int      `json:"attempted"`
	Sent      []string `json:"sent"`
	Failed    []string `json:"failed"`
}

// Config controls the due-set selection. DeliveryHour is the local hour
// (0-23) at which reminders go out; the config layer supplies the default.
type Config struct {
	DeliveryHour int
	Timezones    []string // static allow-list of IANA zone identifiers
}

// Scheduler runs delivery ticks: it selects the timezones currently at the
// delivery hour and pushes every due alert through the delivery pipeline.
type Scheduler struct {
	alerts   store.Alerts
	gen      Generator
	notifier Notifier
	renderer *email.Renderer
	log      zerolog.Logger
	cfg      Config
}

// New constructs a Scheduler from its collaborators.
func New(st store.Store, gen Generator, n Notifier, r *email.Renderer, cfg Config, log zerolog.Logger) *Scheduler {
	return &Scheduler{alerts: st.Alerts(), gen: gen, notifier: n, renderer: r, log: log, cfg: cfg}
}

// Tick performs one scheduling pass for the given instant. A zero now
// means wall-clock now (the on-demand trigger passes an explicit instant
// for deterministic runs).
//
// An empty due-set is a normal outcome. Failures are isolated per
// timezone and per candidate; Tick never aborts the batch.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) Summary {
	if now.IsZero() {
		now = time.Now()
	}
	sum := Summary{Sent: []string{}, Failed: []string{}}

	pairs, invalid := DueZones(now, s.cfg.Timezones, s.cfg.DeliveryHour)
	for _, tz := range invalid {
		s.log.Warn().Str("timezone", tz).Msg("unrecognized timezone in allow-list, skipping")
	}
	if len(pairs) == 0 {
		s.log.Debug().Time("now", now).Msg("no timezone at delivery hour")
		return sum
	}

	for _, p := range pairs {
		s.processPair(ctx, p, &sum)
	}

	s.log.Info().
		Int("pairs", len(pairs)).
		Int("attempted", sum.Attempted).
		Int("sent", len(sum.Sent)).
		Int("failed", len(sum.Failed)).
		Msg("scheduler tick completed")
	return sum
}

func (s *Scheduler) processPair(ctx context.Context, p ZoneDate, sum *Summary) {
	candidates, err := s.alerts.QueryDue(ctx, p.Timezone, p.LocalDate)
	if err != nil {
		s.log.Error().Err(err).Str("timezone", p.Timezone).Str("date", p.LocalDate).Msg("due query failed")
		return
	}
	if len(candidates) == 0 {
		return
	}
	s.log.Debug().Str("timezone", p.Timezone).Str("date", p.LocalDate).Int("count", len(candidates)).Msg("found due alerts")

	for _, a := range candidates {
		s.processAlert(ctx, a, sum)
	}
}

// processAlert runs the per-candidate pipeline: eligibility recheck,
// content resolution, render, deliver, conditional commit. Any failure is
// confined to this candidate.
func (s *Scheduler) processAlert(ctx context.Context, a *model.Alert, sum *Summary) {
	// Re-read status from the primary record; the due lookup may be stale
	// relative to a concurrent delivery.
	status, err := s.alerts.GetStatus(ctx, a.AlertID)
	if err != nil {
		s.log.Error().Err(err).Str("alert_id", a.AlertID).Msg("status recheck failed")
		sum.Attempted++
		sum.Failed = append(sum.Failed, a.AlertID)
		return
	}
	if status != model.StatusScheduled {
		s.log.Debug().Str("alert_id", a.AlertID).Str("status", status).Msg("skipping, no longer scheduled")
		return
	}
	sum.Attempted++

	content, degraded := s.resolveContent(ctx, a)

	msg, err := s.renderer.Render(a, content, degraded)
	if err != nil {
		s.log.Error().Err(err).Str("alert_id", a.AlertID).Msg("render failed")
		sum.Failed = append(sum.Failed, a.AlertID)
		return
	}

	// At most one delivery attempt per tick; a failure leaves the alert
	// scheduled and the next tick's due query retries it.
	if err := s.notifier.Deliver(ctx, a.Recipient, msg.Subject, msg.HTML, msg.Text); err != nil {
		s.log.Error().Err(err).Str("alert_id", a.AlertID).Str("recipient", a.Recipient).Msg("delivery failed")
		sum.Failed = append(sum.Failed, a.AlertID)
		return
	}

	switch err := s.alerts.CommitSent(ctx, a.AlertID, time.Now().UTC()); {
	case err == nil:
		s.log.Info().Str("alert_id", a.AlertID).Str("timezone", a.Timezone).Msg("alert sent")
		sum.Sent = append(sum.Sent, a.AlertID)
	case errors.Is(err, model.ErrConflict):
		// Another process completed this alert between our recheck and
		// commit; the e-mail went out twice but the record is consistent.
		s.log.Debug().Str("alert_id", a.AlertID).Msg("commit conflict, alert already sent elsewhere")
	default:
		// Assume not committed: the alert stays scheduled and will be
		// re-delivered on a later tick.
		s.log.Error().Err(err).Str("alert_id", a.AlertID).Msg("commit failed after delivery")
		sum.Failed = append(sum.Failed, a.AlertID)
	}
}

// resolveContent returns the text to deliver. Stored content that already
// embeds the transformation is used directly; otherwise the generator runs
// synchronously. Generation failures degrade the message instead of
// blocking delivery.
func (s *Scheduler) resolveContent(ctx context.Context, a *model.Alert) (string, bool) {
	if a.Format == model.FormatFull || a.Pregenerated {
		return a.Content, false
	}
	out, err := s.gen.Generate(ctx, a.Format, a.Title, a.Content)
	if err != nil {
		s.log.Warn().Err(err).Str("alert_id", a.AlertID).Str("format", a.Format).Msg("content generation failed, delivering fallback")
		return a.Content, true
	}
	return out, false
}
