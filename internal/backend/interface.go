// Package backend selects and constructs the persistence gateway the
// record store runs on: the JSON document file (default), SQLite, or an
// in-memory holder for ephemeral runs.
package backend

import (
	"context"

	"budgetbuddy/internal/config"
	"budgetbuddy/internal/ledger"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result contains the constructed repository and an optional cleanup
// function to run at shutdown.
type Result struct {
	Repository ledger.Repository
	Cleanup    CleanupFunc
}

// Factory creates repositories based on configuration.
type Factory interface {
	CreateRepository(ctx context.Context, cfg *config.Config) (*Result, error)
}

// Type represents the kind of persistence backend.
type Type string

const (
	JSONBackend   Type = "json"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case JSONBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
