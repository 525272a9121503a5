package ports

import (
	"context"

	"forwarding/internal/core/domain/model/kernel"
)

// Ledger entry statuses.
const (
	LedgerStatusPending   = "pending"
	LedgerStatusCompleted = "completed"
)

// LedgerEntry is a pending charge recorded when a billable operation is
// requested. Payment capture happens elsewhere.
type LedgerEntry struct {
	UserID       kernel.UUID
	Kind         string
	Amount       float64
	Currency     string
	Status       string
	Description  string
	RelatedID    kernel.UUID
	RelatedModel string
}

// TransactionLedger records pending charges. Failures are logged and
// swallowed by the side-effect dispatcher; they never fail the triggering
// operation.
type TransactionLedger interface {
	Add(ctx context.Context, entry LedgerEntry) error
}
