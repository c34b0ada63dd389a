package storage

import (
	"context"
	"sync"

	"budgetbuddy/internal/core"
)

// MemoryRepository keeps the ledger document in process memory. Used by
// tests and for ephemeral runs where nothing should touch the disk.
type MemoryRepository struct {
	mu  sync.Mutex
	doc core.LedgerDocument
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Load returns a copy of the held document.
func (r *MemoryRepository) Load(_ context.Context) (core.LedgerDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doc.Clone(), nil
}

// Save replaces the held document.
func (r *MemoryRepository) Save(_ context.Context, doc core.LedgerDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = doc.Clone()
	return nil
}
