package alertservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/highlightagent/highlight-agent/internal/api"
	"github.com/highlightagent/highlight-agent/internal/config"
	"github.com/highlightagent/highlight-agent/internal/email"
	"github.com/highlightagent/highlight-agent/internal/genai"
	"github.com/highlightagent/highlight-agent/internal/platform/factory"
	"github.com/highlightagent/highlight-agent/internal/platform/logger"
	"github.com/highlightagent/highlight-agent/internal/scheduler"
	"github.com/highlightagent/highlight-agent/internal/services"
)

// Run starts the alert service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("alert-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("Alert service starting")

	ctx, stop := newServerContext()
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

	alertSvc := services.NewAlertService(st, gen, log)
	sched := scheduler.New(st, gen, notifier, email.NewRenderer(cfg.DashboardURL),
		scheduler.Config{DeliveryHour: cfg.DeliveryHour, Timezones: cfg.Timezones()}, log)

	router := api.NewRouter(st, alertSvc, sched)

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := serveHTTP(server, cfg, log)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newServerContext returns a root context cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func serveHTTP(server *http.Server, cfg *config.Config, log zerolog.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()
	return errCh
}
