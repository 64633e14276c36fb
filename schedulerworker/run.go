package schedulerworker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/highlightagent/highlight-agent/internal/config"
	"github.com/highlightagent/highlight-agent/internal/email"
	"github.com/highlightagent/highlight-agent/internal/genai"
	"github.com/highlightagent/highlight-agent/internal/platform/factory"
	"github.com/highlightagent/highlight-agent/internal/platform/logger"
	"github.com/highlightagent/highlight-agent/internal/scheduler"
)

// Run starts the scheduler worker and blocks until shutdown or error.
//
// The worker ticks on TICK_CRON_SPEC (hourly at minute zero by default,
// matching the hour-granularity of the due-zone selection) and runs one
// delivery pass per tick.
func Run() error {
	log := logger.New("scheduler-worker")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Store unavailable")
		return err
	}

	gen := genai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	notifier := email.NewBrevo(email.BrevoConfig{
		APIKey:      cfg.BrevoAPIKey,
		SenderName:  cfg.SenderName,
		SenderEmail: cfg.SenderEmail,
	}, log)

	sched := scheduler.New(st, gen, notifier, email.NewRenderer(cfg.DashboardURL),
		scheduler.Config{DeliveryHour: cfg.DeliveryHour, Timezones: cfg.Timezones()}, log)

	c := cron.New()
	_, err = c.AddFunc(cfg.TickCronSpec, func() {
		tickCtx, cancel := context.WithTimeout(ctx, cfg.TickTimeout)
		defer cancel()
		sched.Tick(tickCtx, time.Time{})
	})
	if err != nil {
		return fmt.Errorf("invalid TICK_CRON_SPEC %q: %w", cfg.TickCronSpec, err)
	}

	log.Info().
		Str("cron_spec", cfg.TickCronSpec).
		Int("delivery_hour", cfg.DeliveryHour).
		Int("timezones", len(cfg.Timezones())).
		Msg("Scheduler worker starting")

	c.Start()
	<-ctx.Done()

	log.Info().Msg("Shutting down scheduler worker")
	<-c.Stop().Done() // wait for an in-flight tick to finish
	log.Info().Msg("Scheduler worker exited")
	return nil
}
