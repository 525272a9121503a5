package ports

import (
	"context"

	"forwarding/internal/core/domain/model/consolidation"
	"forwarding/internal/core/domain/model/kernel"
)

// ConsolidationRepository defines the persistence contract for consolidation
// aggregates.
type ConsolidationRepository interface {
	// Add persists a new consolidation aggregate to storage.
	Add(ctx context.Context, aggregate *consolidation.Consolidation) error

	// Update persists changes to an existing consolidation aggregate.
	Update(ctx context.Context, aggregate *consolidation.Consolidation) error

	// Get retrieves a consolidation aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*consolidation.Consolidation, error)

	// GetActiveByPackage retrieves the pending or processing consolidation
	// that contains the given package, or nil when none exists.
	GetActiveByPackage(ctx context.Context, packageID kernel.UUID) (*consolidation.Consolidation, error)

	// GetFirstPendingByOwner retrieves the owner's oldest pending
	// consolidation with a row-level lock, or nil when none exists.
	// Used by reconciliation to append a package atomically.
	GetFirstPendingByOwner(ctx context.Context, ownerID kernel.UUID) (*consolidation.Consolidation, error)
}
