// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the Smart Site backend.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"smartsite/internal/api/handler/v1handler"
	"smartsite/internal/config"
	"smartsite/pkg/controller"
	"smartsite/pkg/logger"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

const (
	specPath = "/specs/v1.yaml"
	docsPath = "/docs/"
)

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":8000".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	// Zero disables it.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MaxBodyBytes caps request bodies of the API routes.
	MaxBodyBytes int64
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// PprofEnabled mounts the profiling endpoints.
	PprofEnabled bool
	// CORSOrigins lists allowed origins; empty allows any.
	CORSOrigins []string

	// Registerer receives the OpenTelemetry exporter. Nil means prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	// Gatherer is served on MetricsPath. Nil means prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		PprofEnabled:      cfg.HTTP.PprofEnabled,
		CORSOrigins:       cfg.HTTP.CORSOrigins,
	}
}

type Deps struct {
	v1handler.Deps
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - OpenTelemetry request metrics exported through Prometheus
// - Embedded OpenAPI v1 spec and Swagger UI
// - v1 API routes
// - pprof endpoints for profiling when enabled, outside the request timeout
// It also wraps the mux with CORS, sentry and logging middlewares and applies a request timeout.
func NewServer(ctx context.Context, deps Deps, opts Options) (*http.Server, error) {
	reg, gatherer := opts.Registerer, opts.Gatherer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()

	// prometheus metrics server
	if opts.MetricsPath != "" {
		mux.Handle("GET "+opts.MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// otel
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))

	// v1 specs file
	mux.HandleFunc("GET "+specPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	mux.Handle(docsPath, v5emb.New(
		"Smart Site API",
		specPath,
		docsPath,
	))

	// v1 api
	v1handler.New(deps.Deps, v1handler.Options{MaxBodyBytes: opts.MaxBodyBytes}).Register(mux)

	// metrics must wrap the mux directly to see the matched route pattern
	withMetrics, err := controller.WithMetrics(mp)
	if err != nil {
		return nil, fmt.Errorf("could not create metrics middleware: %w", err)
	}
	handler := withMetrics(mux)

	// cors
	handler = controller.WithCORS(opts.CORSOrigins)(handler)

	// sentry
	handler = controller.WithSentry(handler)

	// logger
	handler = controller.WithLogger(handler)

	if opts.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, opts.RequestTimeout,
			`{"code":"TIMEOUT","message":"request timed out","errors":[]}`)
	}

	// pprof stays outside the request timeout; profiles run for 30s by default
	root := http.NewServeMux()
	root.Handle("/", handler)
	if opts.PprofEnabled {
		root.Handle(controller.PprofPath, controller.WithLogger(controller.PprofMux()))
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           root,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
		ErrorLog:          logger.StdLogger(ctx, slog.LevelError),
	}, nil
}
