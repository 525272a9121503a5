package queries

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pack"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPackagesByOwnerQueryHandler reads the owner's package list straight from
// the database, bypassing the aggregates.
type GetPackagesByOwnerQueryHandler struct {
	db *gorm.DB
}

// NewGetPackagesByOwnerQueryHandler creates a handler for owner package listings.
// Requires a GORM database connection for query execution.
func NewGetPackagesByOwnerQueryHandler(db *gorm.DB) GetPackagesByOwnerQueryHandler {
	return GetPackagesByOwnerQueryHandler{db: db}
}

// Handle executes the query and returns the owner's packages, newest first.
// Storage days are computed against the current clock and only accrue while
// the package is still on the shelf (received or consolidated).
func (h GetPackagesByOwnerQueryHandler) Handle(
	ctx context.Context,
	query GetPackagesByOwnerQuery,
) ([]GetPackagesByOwnerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	packages := make([]GetPackagesByOwnerQueryResponse, 0)
	now := time.Now()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			retailer,
			description,
			status,
			weight_value,
			weight_unit,
			value_amount,
			value_currency,
			consolidation_id,
			received_at
		FROM packages
		WHERE owner_id = ?
		ORDER BY received_at DESC
	`, query.OwnerID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPackagesByOwnerQueryResponse
		var id uuid.UUID
		var consolidationID uuid.NullUUID
		var weightValue float64
		var weightUnit string

		err = rows.Scan(
			&id,
			&resp.TrackingNumber,
			&resp.Retailer,
			&resp.Description,
			&resp.Status,
			&weightValue,
			&weightUnit,
			&resp.DeclaredValue,
			&resp.Currency,
			&consolidationID,
			&resp.ReceivedAt,
		)
		if err != nil {
			return nil, err
		}

		packageID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = packageID

		if consolidationID.Valid {
			consID, consErr := kernel.UUIDFromBytes(consolidationID.UUID[:])
			if consErr != nil {
				return nil, consErr
			}
			resp.ConsolidationID = &consID
		}

		weight, weightErr := kernel.NewWeight(weightValue, kernel.WeightUnit(weightUnit))
		if weightErr != nil {
			return nil, weightErr
		}
		resp.WeightKg = weight.Kilograms()

		if resp.Status == pack.Received.String() || resp.Status == pack.Consolidated.String() {
			resp.StorageDays = int(now.Sub(resp.ReceivedAt).Hours() / 24)
		}

		packages = append(packages, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return packages, nil
}
