// Package diagnostic reports whether the backend can reach its database. The
// report is informational: probe failures are described in it, never returned.
package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"smartsite/pkg/logger"
	"smartsite/pkg/serrors"
	"smartsite/pkg/storage"
	"time"

	"go.uber.org/zap"
)

const (
	// MaxCollections caps the collection names included in a report.
	MaxCollections = 10
	// MaxMessageLength caps probe error messages included in a report.
	MaxMessageLength = 50

	defaultProbeTimeout = 2 * time.Second
)

// Report values.
const (
	StatusRunning       = "running"
	StatusConnected     = "connected"
	StatusNotConnected  = "not connected"
	StatusNotConfigured = "not configured"
	StatusSet           = "set"
	StatusNotSet        = "not set"
)

// Report describes backend and database reachability.
type Report struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	Driver           string   `json:"driver"`
	DatabaseName     string   `json:"databaseName"`
	DatabaseURL      string   `json:"databaseUrl"`
	ConnectionStatus string   `json:"connectionStatus"`
	Collections      []string `json:"collections"`
}

// Options describe the configured backend; they are reported as is.
type Options struct {
	Driver string
	// URLConfigured tells whether a connection string was provided.
	URLConfigured bool
	// ProbeTimeout bounds each probe; zero means two seconds.
	ProbeTimeout time.Duration
}

// Reporter builds reports by probing a storage backend.
type Reporter struct {
	prober  storage.Prober
	options Options
}

var errNotConfigured = serrors.With(serrors.ErrNotConfigured, "database is not configured")

// New creates a Reporter. A nil prober reports the database as not configured.
func New(prober storage.Prober, options Options) *Reporter {
	if options.ProbeTimeout <= 0 {
		options.ProbeTimeout = defaultProbeTimeout
	}

	return &Reporter{prober: prober, options: options}
}

// Report probes the database and describes the outcome.
func (r *Reporter) Report(ctx context.Context) Report {
	rep := Report{
		Backend:          StatusRunning,
		Database:         StatusNotConfigured,
		Driver:           r.options.Driver,
		DatabaseURL:      StatusNotSet,
		ConnectionStatus: StatusNotConnected,
		Collections:      []string{},
	}
	if r.options.URLConfigured {
		rep.DatabaseURL = StatusSet
	}

	if err := r.ping(ctx); err != nil {
		if !errors.Is(err, serrors.ErrNotConfigured) {
			rep.Database = "error: " + serrors.Sanitize(err.Error(), MaxMessageLength)
		}
		logger.Debug(ctx, "database probe failed", zap.Error(err))

		return rep
	}
	rep.DatabaseName = r.prober.Name()
	rep.ConnectionStatus = StatusConnected

	collections, err := r.collections(ctx)
	if err != nil {
		rep.Database = "connected but error: " + serrors.Sanitize(err.Error(), MaxMessageLength)
		logger.Debug(ctx, "could not list collections", zap.Error(err))

		return rep
	}
	rep.Database = StatusConnected
	if len(collections) > MaxCollections {
		collections = collections[:MaxCollections]
	}
	rep.Collections = append(rep.Collections, collections...)

	return rep
}

func (r *Reporter) ping(ctx context.Context) error {
	if r.prober == nil {
		return errNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, r.options.ProbeTimeout)
	defer cancel()

	if err := r.prober.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	return nil
}

func (r *Reporter) collections(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.options.ProbeTimeout)
	defer cancel()

	return r.prober.Collections(ctx)
}
