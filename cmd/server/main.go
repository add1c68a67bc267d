// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/openfield/courtbook/internal/api/courts"
	"github.com/openfield/courtbook/internal/api/reservations"
	"github.com/openfield/courtbook/internal/api/users"
	"github.com/openfield/courtbook/internal/booking"
	"github.com/openfield/courtbook/internal/config"
	"github.com/openfield/courtbook/internal/db"
	"github.com/openfield/courtbook/internal/notify"
	"github.com/openfield/courtbook/internal/ratelimit"
	"github.com/openfield/courtbook/internal/scheduler"
)

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	notifier := newNotifier(cfg)
	service := booking.NewService(booking.ServiceConfig{
		Store:    database.Store,
		Notifier: notifier,
	})

	courts.InitHandlers(service)
	reservations.InitHandlers(service)
	users.InitHandlers(database.Store)

	if err := scheduler.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	if cfg.Scheduler.RemindersEnabled {
		if err := scheduler.RegisterReminderJob(database.Store, notifier, cfg.Scheduler.ReminderHoursBefore); err != nil {
			log.Fatal().Err(err).Msg("Failed to register reminder job")
		}
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
	}()

	limiter := ratelimit.New(nil)
	defer limiter.Close()

	server := newServer(cfg, limiter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

func newNotifier(cfg *config.Config) booking.Notifier {
	if cfg.Notifications.Provider != "ses" {
		return notify.LogNotifier{}
	}

	client, err := notify.NewSESClient(
		cfg.Notifications.AccessKeyID,
		cfg.Notifications.SecretAccessKey,
		cfg.Notifications.Region,
		cfg.Notifications.Sender,
	)
	if err != nil {
		log.Warn().Err(err).Msg("SES notifier unavailable, falling back to log delivery")
		return notify.LogNotifier{}
	}
	return client
}
