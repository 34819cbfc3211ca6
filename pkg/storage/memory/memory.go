// Package memory keeps documents in process memory. It backs local
// development and tests; nothing survives a restart.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"smartsite/pkg/storage"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Name is reported as the database name of the in-memory store.
const Name = "memory"

// Document is a stored record as the store keeps it.
type Document struct {
	ID        string
	Data      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store implements storage.Storage on a map guarded by a mutex.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]Document
}

var _ storage.Storage = (*Store)(nil)

func New() *Store {
	return &Store{collections: make(map[string][]Document)}
}

// InsertDocument snapshots document as JSON so later mutations of the caller's
// value do not leak into the store.
func (s *Store) InsertDocument(_ context.Context, collection string, document any) (string, error) {
	if err := storage.ValidateCollection(collection); err != nil {
		return "", err
	}

	data, err := json.Marshal(document)
	if err != nil {
		return "", fmt.Errorf("could not marshal document: %w", err)
	}

	now := time.Now().UTC()
	doc := Document{
		ID:        uuid.NewString(),
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], doc)

	return doc.ID, nil
}

// Documents returns a copy of the documents stored in collection in insertion order.
func (s *Store) Documents(collection string) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.collections[collection])
}

func (s *Store) Name() string { return Name }

func (s *Store) Ping(context.Context) error { return nil }

// Collections returns the non-empty collections in lexical order.
func (s *Store) Collections(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]string, 0, len(s.collections))
	for name := range s.collections {
		res = append(res, name)
	}
	slices.Sort(res)

	return res, nil
}

func (s *Store) Close() error { return nil }
