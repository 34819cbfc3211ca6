// Package events describes notifications emitted after records are stored.
//
//go:generate mockgen -package mockevents -source=interface.go -destination=mock/mockevents.go *
package events

import (
	"context"
	"time"
)

// Event types.
const (
	LeadCaptured  = "lead.captured"
	DemoRequested = "demo.requested"
)

// Event announces that a record was stored.
type Event struct {
	Type       string    `json:"type"`
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers events to downstream consumers.
type Publisher interface {
	// Publish hands the event to the transport. Delivery may happen after
	// Publish returns.
	Publish(ctx context.Context, event Event) error
	// Close flushes pending events and releases the transport.
	Close() error
}
