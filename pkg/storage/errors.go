package storage

import (
	"context"
	"errors"
)

// Common errors returned by storage implementations.
var (
	// ErrInvalidCollection is returned when a document is inserted without a
	// collection name.
	ErrInvalidCollection = errors.New("invalid collection name")
)

// ValidateCollection returns ErrInvalidCollection for an empty name.
func ValidateCollection(name string) error {
	if name == "" {
		return ErrInvalidCollection
	}

	return nil
}

// ErrNotConfigured is returned by Unconfigured for every insert.
var ErrNotConfigured = errors.New("database is not configured")

type unconfigured struct{}

// Unconfigured returns a DocumentStorage that rejects every insert with
// ErrNotConfigured. It stands in when no backend connection was configured.
func Unconfigured() DocumentStorage { return unconfigured{} }

func (unconfigured) InsertDocument(context.Context, string, any) (string, error) {
	return "", ErrNotConfigured
}
