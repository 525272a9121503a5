// Package packagerepo provides data transfer objects and mapping functions
// for package persistence. It implements the repository pattern for the
// package aggregate, handling conversion between the domain model and its
// relational representation.
package packagerepo

import (
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pack"

	"github.com/google/uuid"
)

// PackageDTO represents the database structure for persisting package
// aggregates. Identifier sets and photo lists are stored as JSON columns;
// the inbound tracking number carries a unique index for intake deduplication.
type PackageDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID              uuid.UUID `gorm:"type:uuid;index"`
	TrackingNumber       string    `gorm:"uniqueIndex"`
	Retailer             string
	Description          string
	Status               string `gorm:"index"`
	WeightValue          float64
	WeightUnit           string
	Length               float64
	Width                float64
	Height               float64
	DimensionUnit        string
	ValueAmount          float64
	ValueCurrency        string
	ConsolidationID      *uuid.UUID `gorm:"type:uuid;index"`
	IsConsolidatedResult bool
	OriginalPackageIDs   []uuid.UUID `gorm:"serializer:json"`
	Photos               []PhotoDTO  `gorm:"serializer:json"`
	Notes                string
	ReceivedAt           time.Time
}

// TableName specifies the database table name for package entities.
func (PackageDTO) TableName() string {
	return "packages"
}

// PhotoDTO is the JSON shape of one stored warehouse photo reference.
type PhotoDTO struct {
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// fromDomain converts a package domain aggregate to its database representation.
func fromDomain(aggregate *pack.Package) PackageDTO {
	var consolidationID *uuid.UUID
	if id := aggregate.ConsolidationID(); id != nil {
		raw := id.Bytes()
		consolidationID = &raw
	}

	originalIDs := make([]uuid.UUID, 0, len(aggregate.OriginalPackageIDs()))
	for _, id := range aggregate.OriginalPackageIDs() {
		originalIDs = append(originalIDs, id.Bytes())
	}

	photos := make([]PhotoDTO, 0, len(aggregate.Photos()))
	for _, photo := range aggregate.Photos() {
		photos = append(photos, PhotoDTO{
			URL:        photo.URL(),
			Type:       string(photo.Type()),
			UploadedAt: photo.UploadedAt(),
		})
	}

	return PackageDTO{
		ID:                   aggregate.ID().Bytes(),
		OwnerID:              aggregate.Owner().ID().Bytes(),
		TrackingNumber:       aggregate.TrackingNumber(),
		Retailer:             aggregate.Retailer(),
		Description:          aggregate.Description(),
		Status:               aggregate.Status().String(),
		WeightValue:          aggregate.Weight().Value(),
		WeightUnit:           string(aggregate.Weight().Unit()),
		Length:               aggregate.Dimensions().Length(),
		Width:                aggregate.Dimensions().Width(),
		Height:               aggregate.Dimensions().Height(),
		DimensionUnit:        string(aggregate.Dimensions().Unit()),
		ValueAmount:          aggregate.EstimatedValue().Amount(),
		ValueCurrency:        aggregate.EstimatedValue().Currency(),
		ConsolidationID:      consolidationID,
		IsConsolidatedResult: aggregate.IsConsolidatedResult(),
		OriginalPackageIDs:   originalIDs,
		Photos:               photos,
		Notes:                aggregate.Notes(),
		ReceivedAt:           aggregate.ReceivedAt(),
	}
}

// toDomain converts a database DTO back to a package domain aggregate
// using RestorePackage.
func toDomain(dto PackageDTO) (*pack.Package, error) {
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

	status, err := pack.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	weight, err := kernel.NewWeight(dto.WeightValue, kernel.WeightUnit(dto.WeightUnit))
	if err != nil {
		return nil, err
	}

	dimensions, err := kernel.NewDimensions(dto.Length, dto.Width, dto.Height,
		kernel.DimensionUnit(dto.DimensionUnit))
	if err != nil {
		return nil, err
	}

	value, err := kernel.NewMoney(dto.ValueAmount, dto.ValueCurrency)
	if err != nil {
		return nil, err
	}

	var consolidationID *kernel.UUID
	if dto.ConsolidationID != nil {
		cID, consErr := kernel.UUIDFromBytes((*dto.ConsolidationID)[:])
		if consErr != nil {
			return nil, consErr
		}
		consolidationID = &cID
	}

	originalIDs := make([]kernel.UUID, 0, len(dto.OriginalPackageIDs))
	for _, raw := range dto.OriginalPackageIDs {
		originalID, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		originalIDs = append(originalIDs, originalID)
	}

	photos, err := photosToDomain(dto.Photos)
	if err != nil {
		return nil, err
	}

	return pack.RestorePackage(id, owner, dto.TrackingNumber, dto.Retailer,
		dto.Description, status, weight, dimensions, value, dto.ReceivedAt,
		consolidationID, dto.IsConsolidatedResult, originalIDs, photos, dto.Notes)
}

func photosToDomain(dtos []PhotoDTO) ([]kernel.PhotoRef, error) {
	photos := make([]kernel.PhotoRef, 0, len(dtos))
	for _, dto := range dtos {
		photo, err := kernel.NewPhotoRef(dto.URL, kernel.PhotoType(dto.Type), dto.UploadedAt)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, nil
}
