package ports

import (
	"context"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pack"
)

// PackageRepository defines the persistence contract for package aggregates.
type PackageRepository interface {
	// Add persists a new package aggregate to storage.
	Add(ctx context.Context, aggregate *pack.Package) error

	// Update persists changes to an existing package aggregate.
	Update(ctx context.Context, aggregate *pack.Package) error

	// Get retrieves a package aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*pack.Package, error)

	// GetMany retrieves the packages with the given identifiers.
	// Returns an error if any of them is missing.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*pack.Package, error)

	// GetByTrackingNumber retrieves a package by its inbound tracking number,
	// or nil when none matches. Used for intake deduplication.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*pack.Package, error)

	// GetStoredLongerThan retrieves packages in storage beyond the given
	// number of days that have not yet shipped. Used by the storage alert job.
	GetStoredLongerThan(ctx context.Context, days int) ([]*pack.Package, error)

	// GetUnlinkedConsolidated retrieves packages in consolidated status with
	// no consolidation link. Used by the reconciliation sweep.
	GetUnlinkedConsolidated(ctx context.Context) ([]*pack.Package, error)
}
