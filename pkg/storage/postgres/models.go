package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PgDocument is a row of the documents table.
type PgDocument struct {
	ID         uuid.UUID       `db:"id"         goqu:"skipinsert"`
	Collection string          `db:"collection"`
	Data       json.RawMessage `db:"data"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func newPgDocument(collection string, document any, now time.Time) (PgDocument, error) {
	data, err := json.Marshal(document)
	if err != nil {
		return PgDocument{}, fmt.Errorf("could not marshal document: %w", err)
	}

	return PgDocument{
		Collection: collection,
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
