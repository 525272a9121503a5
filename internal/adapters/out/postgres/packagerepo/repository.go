package packagerepo

import (
	"context"
	"errors"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pack"
	"forwarding/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPackageRepository implements PackageRepository using GORM.
type GormPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPackageRepository creates a new GORM package repository.
func NewGormPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageRepository {
	return &GormPackageRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new package to the database.
func (r *GormPackageRepository) Add(ctx context.Context, aggregate *pack.Package) error {
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

// Update saves an existing package to the database. All columns are written
// so that a cleared consolidation link is persisted as NULL.
func (r *GormPackageRepository) Update(ctx context.Context, aggregate *pack.Package) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
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

// Get retrieves a package by ID.
func (r *GormPackageRepository) Get(ctx context.Context, id kernel.UUID) (*pack.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the packages with the given identifiers and fails if any
// of them is missing.
func (r *GormPackageRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*pack.Package, error) {
	if len(ids) == 0 {
		return make([]*pack.Package, 0), nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []PackageDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	found := make(map[kernel.UUID]PackageDTO, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		found[id] = dto
	}

	packages := make([]*pack.Package, 0, len(ids))
	for _, id := range ids {
		dto, ok := found[id]
		if !ok {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		packages = append(packages, aggregate)
	}

	return packages, nil
}

// GetByTrackingNumber retrieves a package by its inbound tracking number.
// Returns nil without error when no package matches.
func (r *GormPackageRepository) GetByTrackingNumber(
	ctx context.Context,
	trackingNumber string,
) (*pack.Package, error) {
	if trackingNumber == "" {
		return nil, errs.NewValueIsRequiredError("trackingNumber")
	}

	var dto PackageDTO
	err := r.db.WithContext(ctx).First(&dto, "tracking_number = ?", trackingNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetStoredLongerThan retrieves packages still on the shelf that arrived more
// than the given number of days ago.
func (r *GormPackageRepository) GetStoredLongerThan(ctx context.Context, days int) ([]*pack.Package, error) {
	if days < 0 {
		return nil, errs.NewValueIsOutOfRangeError("days", days, 0, nil)
	}

	cutoff := time.Now().AddDate(0, 0, -days)

	var dtos []PackageDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status IN ? AND received_at < ?",
			[]string{pack.Received.String(), pack.Consolidated.String()}, cutoff).Error
	if err != nil {
		return nil, err
	}

	return manyToDomain(dtos)
}

// GetUnlinkedConsolidated retrieves packages in consolidated status that lost
// their consolidation link, the input of the reconciliation sweep.
func (r *GormPackageRepository) GetUnlinkedConsolidated(ctx context.Context) ([]*pack.Package, error) {
	var dtos []PackageDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND consolidation_id IS NULL", pack.Consolidated.String()).Error
	if err != nil {
		return nil, err
	}

	return manyToDomain(dtos)
}

func manyToDomain(dtos []PackageDTO) ([]*pack.Package, error) {
	packages := make([]*pack.Package, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		packages = append(packages, aggregate)
	}
	return packages, nil
}
