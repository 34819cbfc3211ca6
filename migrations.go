// Package smartsite holds assets embedded into the smartsite binary.
package smartsite

import "embed"

// Migrations contains the goose SQL migrations for the postgres gateway.
//
//go:embed migrations/*.sql
var Migrations embed.FS
