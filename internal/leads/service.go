// Package leads stores contact-form leads and demo requests.
package leads

import (
	"context"
	"fmt"
	"smartsite/pkg/domain"
	"smartsite/pkg/events"
	"smartsite/pkg/logger"
	"smartsite/pkg/metrics"
	"smartsite/pkg/serrors"
	"smartsite/pkg/storage"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

// Options configure optional collaborators of the service.
type Options struct {
	// Publisher receives an event after every stored record. Nil disables events.
	Publisher events.Publisher
	// Registerer receives the insert counter. Nil leaves it unregistered.
	Registerer prometheus.Registerer
}

// service is the concrete implementation of the Service interface.
type service struct {
	storage   storage.DocumentStorage
	publisher events.Publisher
	inserted  *prometheus.CounterVec
	now       func() time.Time
}

// CaptureLead stores the lead and returns the identifier assigned by the store.
func (s service) CaptureLead(ctx context.Context, lead domain.Lead) (string, error) {
	id, err := s.insert(ctx, domain.LeadCollection, lead)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrPersistence, err, "could not store lead")
	}

	s.publish(ctx, events.LeadCaptured, domain.LeadCollection, id)

	return id, nil
}

// RequestDemo stores the demo request and returns the scripted conversation
// seeded with its sample intent. Nothing is generated when the insert fails.
func (s service) RequestDemo(ctx context.Context, req domain.DemoRequest) (*domain.Demo, error) {
	id, err := s.insert(ctx, domain.DemoRequestCollection, req)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrPersistence, err, "could not store demo request")
	}

	s.publish(ctx, events.DemoRequested, domain.DemoRequestCollection, id)

	return &domain.Demo{
		ID:         id,
		Transcript: domain.DemoTranscript(req.SampleIntent),
	}, nil
}

func (s service) insert(ctx context.Context, collection string, document any) (string, error) {
	id, err := s.storage.InsertDocument(ctx, collection, document)
	if err != nil {
		s.inserted.WithLabelValues(collection, resultError).Inc()

		return "", fmt.Errorf("could not insert into %s: %w", collection, err)
	}
	s.inserted.WithLabelValues(collection, resultOK).Inc()

	return id, nil
}

// publish is best effort: the record is already stored, so a failing
// transport is only logged.
func (s service) publish(ctx context.Context, typ, collection, id string) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, events.Event{
		Type:       typ,
		Collection: collection,
		ID:         id,
		OccurredAt: s.now().UTC(),
	}); err != nil {
		logger.Warn(ctx, "could not publish event",
			zap.String("type", typ),
			zap.String("id", id),
			zap.Error(err))
	}
}

// New creates a Service writing through the provided storage.
func New(storage storage.DocumentStorage, options Options) (Service, error) {
	inserted, err := metrics.Register(options.Registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metrics.Namespace,
		Name:      "documents_inserted_total",
		Help:      "Number of document inserts by collection and result.",
	}, []string{"collection", "result"}))
	if err != nil {
		return nil, fmt.Errorf("could not register insert counter: %w", err)
	}

	return &service{
		storage:   storage,
		publisher: options.Publisher,
		inserted:  inserted,
		now:       time.Now,
	}, nil
}
