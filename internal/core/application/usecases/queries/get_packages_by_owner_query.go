package queries

import (
	"errors"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var (
	ErrGetPackagesByOwnerQueryIsNotConstructed = errors.New(
		"GetPackagesByOwnerQuery must be created via NewGetPackagesByOwnerQuery constructor",
	)
)

// GetPackagesByOwnerQuery retrieves every package held at the warehouse for a
// single customer, newest arrivals first.
//
// Example:
//
//	query, err := NewGetPackagesByOwnerQuery(ownerID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetPackagesByOwnerQueryHandler(db)
//
//	packages, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list packages: %w", err)
//	}
//
//	for _, p := range packages {
//	    fmt.Printf("%s %s (%d days in storage)\n", p.TrackingNumber, p.Status, p.StorageDays)
//	}
type GetPackagesByOwnerQuery struct {
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPackagesByOwnerQuery creates a query scoped to one owner.
func NewGetPackagesByOwnerQuery(ownerID kernel.UUID) (GetPackagesByOwnerQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetPackagesByOwnerQuery{}, err
	}
	return GetPackagesByOwnerQuery{
		ownerID: ownerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OwnerID returns the owner whose packages are listed.
func (q GetPackagesByOwnerQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPackagesByOwnerQueryIsNotConstructed if validation fails.
func (q GetPackagesByOwnerQuery) Validate() error {
	return q.guard.Validate(ErrGetPackagesByOwnerQueryIsNotConstructed)
}

// GetPackagesByOwnerQueryResponse is one package row of the owner listing.
// StorageDays counts whole days the package has sat at the warehouse and is
// computed on read; it stops accruing once the package leaves the shelf.
type GetPackagesByOwnerQueryResponse struct {
	ID              kernel.UUID
	TrackingNumber  string
	Retailer        string
	Description     string
	Status          string
	WeightKg        float64
	DeclaredValue   float64
	Currency        string
	ConsolidationID *kernel.UUID
	StorageDays     int
	ReceivedAt      time.Time
}
