package consolidationrepo

import (
	"context"
	"errors"
	"fmt"

	"forwarding/internal/core/domain/model/consolidation"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormConsolidationRepository implements ConsolidationRepository using GORM.
type GormConsolidationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormConsolidationRepository creates a new GORM consolidation repository.
func NewGormConsolidationRepository(db *gorm.DB, tracker aggregateTracker) *GormConsolidationRepository {
	return &GormConsolidationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new consolidation to the database.
func (r *GormConsolidationRepository) Add(ctx context.Context, aggregate *consolidation.Consolidation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing consolidation to the database. All columns are
// written so cleared optional fields persist as NULL.
func (r *GormConsolidationRepository) Update(ctx context.Context, aggregate *consolidation.Consolidation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ConsolidationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a consolidation by ID.
func (r *GormConsolidationRepository) Get(ctx context.Context, id kernel.UUID) (*consolidation.Consolidation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ConsolidationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("consolidation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByPackage retrieves the pending or processing consolidation whose
// member list contains the given package. Returns nil without error when no
// active consolidation references the package.
func (r *GormConsolidationRepository) GetActiveByPackage(
	ctx context.Context,
	packageID kernel.UUID,
) (*consolidation.Consolidation, error) {
	if err := packageID.Validate(); err != nil {
		return nil, err
	}

	member := fmt.Sprintf(`[%q]`, packageID.String())

	var dto ConsolidationDTO
	err := r.db.WithContext(ctx).
		Where("status IN ? AND package_ids::jsonb @> ?",
			[]string{consolidation.Pending.String(), consolidation.Processing.String()},
			member).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetFirstPendingByOwner retrieves the owner's oldest pending consolidation
// under a row-level lock. Returns nil without error when the owner has no
// pending consolidation.
func (r *GormConsolidationRepository) GetFirstPendingByOwner(
	ctx context.Context,
	ownerID kernel.UUID,
) (*consolidation.Consolidation, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var dto ConsolidationDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("owner_id = ? AND status = ?", ownerID.Bytes(), consolidation.Pending.String()).
		Order("created_at").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}
