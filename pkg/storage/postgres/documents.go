package postgres

import (
	"context"
	"fmt"
	"smartsite/pkg/storage"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	documentsTable = "documents"
)

// InsertDocument stores document as JSONB under collection and returns the
// generated row id.
func (p *PgSQL) InsertDocument(ctx context.Context, collection string, document any) (string, error) {
	if err := storage.ValidateCollection(collection); err != nil {
		return "", err
	}

	row, err := newPgDocument(collection, document, time.Now().UTC())
	if err != nil {
		return "", err
	}

	var id uuid.UUID
	found, err := p.Builder.Insert(documentsTable).
		Rows(row).
		Returning(goqu.C("id")).
		Executor().ScanValContext(ctx, &id)
	if err != nil {
		return "", fmt.Errorf("could not insert document into pg: %w", err)
	}
	if !found {
		return "", fmt.Errorf("could not insert document into pg: no id returned")
	}

	return id.String(), nil
}

// Collections returns the distinct collection names present in the documents table.
func (p *PgSQL) Collections(ctx context.Context) ([]string, error) {
	var names []string
	if err := p.Builder.From(documentsTable).
		Select(goqu.C("collection")).
		Distinct().
		Order(goqu.C("collection").Asc()).
		Executor().ScanValsContext(ctx, &names); err != nil {
		return nil, fmt.Errorf("could not list collections from pg: %w", err)
	}

	return names, nil
}
