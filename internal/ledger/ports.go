// Package ledger owns the in-session ledger document: the ordered
// transactions and savings goals, and every mutation applied to them.
package ledger

import (
	"context"

	"budgetbuddy/internal/core"
)

// Repository is the outbound port for document persistence. Load is called
// once when the store is constructed; Save is called after every
// successful mutation with the full document.
type Repository interface {
	Load(ctx context.Context) (core.LedgerDocument, error)
	Save(ctx context.Context, doc core.LedgerDocument) error
}
