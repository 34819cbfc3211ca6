package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"smartsite/internal/api"
	"smartsite/internal/api/handler/v1handler"
	"smartsite/internal/config"
	"smartsite/internal/diagnostic"
	"smartsite/internal/leads"
	"smartsite/pkg/events"
	"smartsite/pkg/events/kafka"
	"smartsite/pkg/logger"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const sentryFlushTimeout = 2 * time.Second

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(ctx, deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

// setupSentry initializes the global sentry client when a DSN is configured
// and returns a function flushing buffered events.
func setupSentry(ctx context.Context, cfg *config.Config) func() {
	if cfg.Sentry.DSN == "" {
		return func() {}
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.Environment,
		EnableTracing:    cfg.Sentry.TracesSampleRate > 0,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
	}); err != nil {
		logger.Error(ctx, "could not initialize sentry", zap.Error(err))

		return func() {}
	}

	return func() { sentry.Flush(sentryFlushTimeout) }
}

// setupPublisher returns the kafka publisher when brokers are configured, or nil.
func setupPublisher(ctx context.Context, cfg *config.Config) (events.Publisher, func()) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, func() {}
	}

	pub, err := kafka.New(ctx, kafka.Options{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create kafka publisher", zap.Error(err))
	}

	return pub, func() {
		logger.Info(ctx, "closing kafka publisher...")
		if err := pub.Close(); err != nil {
			logger.Warn(ctx, "could not close kafka publisher", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			flushSentry := setupSentry(ctx, cfg)
			defer flushSentry()

			store, prober, closeStrg := getStorage(ctx, cfg)
			defer closeStrg()

			publisher, closePublisher := setupPublisher(ctx, cfg)
			defer closePublisher()

			svc, err := leads.New(store, leads.Options{
				Publisher:  publisher,
				Registerer: prometheus.DefaultRegisterer,
			})
			if err != nil {
				logger.Fatal(ctx, "could not create leads service", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, cfg, api.Deps{Deps: v1handler.Deps{
				Leads: svc,
				Reporter: diagnostic.New(prober, diagnostic.Options{
					Driver:        cfg.Storage.Driver,
					URLConfigured: urlConfigured(cfg),
					ProbeTimeout:  cfg.Diagnostics.ProbeTimeout,
				}),
			}})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}

func urlConfigured(cfg *config.Config) bool {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return cfg.Database.Host != ""
	case config.DriverMongo:
		return cfg.Mongo.URI != ""
	default:
		return false
	}
}
