// Package consolidationrepo provides data transfer objects and mapping
// functions for consolidation persistence. Member package identifiers, the
// repack result, and photos are stored as JSON columns.
package consolidationrepo

import (
	"time"

	"forwarding/internal/core/domain/model/consolidation"
	"forwarding/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ConsolidationDTO represents the database structure for persisting
// consolidation aggregates.
type ConsolidationDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OwnerID             uuid.UUID      `gorm:"type:uuid;index"`
	PackageIDs          []uuid.UUID    `gorm:"serializer:json"`
	Status              string         `gorm:"index"`
	Preferences         PreferencesDTO `gorm:"embedded;embeddedPrefix:pref_"`
	Cost                CostDTO        `gorm:"embedded;embeddedPrefix:cost_"`
	BeforeWeightKg      float64
	BeforeVolumeCm3     float64
	After               *ResultDTO `gorm:"serializer:json"`
	ResultingPackageID  *uuid.UUID `gorm:"type:uuid"`
	Photos              []PhotoDTO `gorm:"serializer:json"`
	Instructions        string
	Notes               string
	EstimatedCompletion time.Time
	ActualCompletion    *time.Time
	CreatedAt           time.Time
}

// TableName specifies the database table name for consolidation entities.
func (ConsolidationDTO) TableName() string {
	return "consolidations"
}

// PreferencesDTO is the embedded repacking options of a consolidation.
type PreferencesDTO struct {
	RemovePackaging       bool
	AddProtection         bool
	RequestUnpackedPhotos bool
}

// CostDTO is the embedded billed breakdown of a consolidation.
type CostDTO struct {
	Base       float64
	Protection float64
	Photos     float64
	Total      float64
	Currency   string
}

// ResultDTO is the JSON shape of the repacked box measurements.
type ResultDTO struct {
	WeightValue   float64 `json:"weightValue"`
	WeightUnit    string  `json:"weightUnit"`
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	DimensionUnit string  `json:"dimensionUnit"`
}

// PhotoDTO is the JSON shape of one stored warehouse photo reference.
type PhotoDTO struct {
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// fromDomain converts a consolidation domain aggregate to its database
// representation.
func fromDomain(aggregate *consolidation.Consolidation) ConsolidationDTO {
	packageIDs := make([]uuid.UUID, 0, len(aggregate.PackageIDs()))
	for _, id := range aggregate.PackageIDs() {
		packageIDs = append(packageIDs, id.Bytes())
	}

	var after *ResultDTO
	if result := aggregate.After(); result != nil {
		after = &ResultDTO{
			WeightValue:   result.Weight.Value(),
			WeightUnit:    string(result.Weight.Unit()),
			Length:        result.Dimensions.Length(),
			Width:         result.Dimensions.Width(),
			Height:        result.Dimensions.Height(),
			DimensionUnit: string(result.Dimensions.Unit()),
		}
	}

	var resultingPackageID *uuid.UUID
	if id := aggregate.ResultingPackageID(); id != nil {
		raw := id.Bytes()
		resultingPackageID = &raw
	}

	photos := make([]PhotoDTO, 0, len(aggregate.Photos()))
	for _, photo := range aggregate.Photos() {
		photos = append(photos, PhotoDTO{
			URL:        photo.URL(),
			Type:       string(photo.Type()),
			UploadedAt: photo.UploadedAt(),
		})
	}

	return ConsolidationDTO{
		ID:         aggregate.ID().Bytes(),
		OwnerID:    aggregate.Owner().ID().Bytes(),
		PackageIDs: packageIDs,
		Status:     aggregate.Status().String(),
		Preferences: PreferencesDTO{
			RemovePackaging:       aggregate.Preferences().RemovePackaging,
			AddProtection:         aggregate.Preferences().AddProtection,
			RequestUnpackedPhotos: aggregate.Preferences().RequestUnpackedPhotos,
		},
		Cost: CostDTO{
			Base:       aggregate.Cost().Base,
			Protection: aggregate.Cost().Protection,
			Photos:     aggregate.Cost().Photos,
			Total:      aggregate.Cost().Total,
			Currency:   aggregate.Cost().Currency,
		},
		BeforeWeightKg:      aggregate.Before().WeightKg,
		BeforeVolumeCm3:     aggregate.Before().VolumeCm3,
		After:               after,
		ResultingPackageID:  resultingPackageID,
		Photos:              photos,
		Instructions:        aggregate.Instructions(),
		Notes:               aggregate.Notes(),
		EstimatedCompletion: aggregate.EstimatedCompletion(),
		ActualCompletion:    aggregate.ActualCompletion(),
	}
}

// toDomain converts a database DTO back to a consolidation domain aggregate
// using RestoreConsolidation.
func toDomain(dto ConsolidationDTO) (*consolidation.Consolidation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	owner, err := kernel.OwnerRefFromID(ownerID)
	if err != nil {
		return nil, err
	}

	packageIDs := make([]kernel.UUID, 0, len(dto.PackageIDs))
	for _, raw := range dto.PackageIDs {
		packageID, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		packageIDs = append(packageIDs, packageID)
	}

	status, err := consolidation.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var after *consolidation.Result
	if dto.After != nil {
		weight, weightErr := kernel.NewWeight(dto.After.WeightValue,
			kernel.WeightUnit(dto.After.WeightUnit))
		if weightErr != nil {
			return nil, weightErr
		}
		dimensions, dimErr := kernel.NewDimensions(dto.After.Length, dto.After.Width,
			dto.After.Height, kernel.DimensionUnit(dto.After.DimensionUnit))
		if dimErr != nil {
			return nil, dimErr
		}
		after = &consolidation.Result{Weight: weight, Dimensions: dimensions}
	}

	var resultingPackageID *kernel.UUID
	if dto.ResultingPackageID != nil {
		resultID, idErr := kernel.UUIDFromBytes((*dto.ResultingPackageID)[:])
		if idErr != nil {
			return nil, idErr
		}
		resultingPackageID = &resultID
	}

	photos := make([]kernel.PhotoRef, 0, len(dto.Photos))
	for _, photoDTO := range dto.Photos {
		photo, photoErr := kernel.NewPhotoRef(photoDTO.URL,
			kernel.PhotoType(photoDTO.Type), photoDTO.UploadedAt)
		if photoErr != nil {
			return nil, photoErr
		}
		photos = append(photos, photo)
	}

	return consolidation.RestoreConsolidation(
		id,
		owner,
		packageIDs,
		status,
		consolidation.Preferences{
			RemovePackaging:       dto.Preferences.RemovePackaging,
			AddProtection:         dto.Preferences.AddProtection,
			RequestUnpackedPhotos: dto.Preferences.RequestUnpackedPhotos,
		},
		consolidation.Cost{
			Base:       dto.Cost.Base,
			Protection: dto.Cost.Protection,
			Photos:     dto.Cost.Photos,
			Total:      dto.Cost.Total,
			Currency:   dto.Cost.Currency,
		},
		consolidation.Totals{
			WeightKg:  dto.BeforeWeightKg,
			VolumeCm3: dto.BeforeVolumeCm3,
		},
		after,
		resultingPackageID,
		photos,
		dto.Instructions,
		dto.Notes,
		dto.EstimatedCompletion,
		dto.ActualCompletion,
	)
}
