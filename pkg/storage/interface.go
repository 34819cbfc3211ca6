// Package storage defines the persistence gateway the application writes
// records through. Backends (PostgreSQL, MongoDB, in-memory) live in
// sub-packages and own identifier generation and connection pooling.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// DocumentStorage stores validated records as schemaless documents.
type DocumentStorage interface {
	// InsertDocument stores document in the named collection and returns the
	// identifier the backend generated for it. Implementations add created_at
	// and updated_at timestamps. A failed call stores nothing.
	InsertDocument(ctx context.Context, collection string, document any) (string, error)
}

// Prober reports reachability of a backend for diagnostics.
type Prober interface {
	// Name returns the configured database name.
	Name() string
	// Ping checks that the backend answers.
	Ping(ctx context.Context) error
	// Collections lists the collections that currently hold documents.
	Collections(ctx context.Context) ([]string, error)
}

// Storage is a complete gateway handle.
type Storage interface {
	DocumentStorage
	Prober

	// Close releases any resources held by the storage implementation (e.g. the
	// underlying connection pool). After Close, the instance should not be used.
	Close() error
}
