// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. The tracking history lives in a child table and
// is append-only; member package identifiers are stored as a JSON column.
package shipmentrepo

import (
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates.
type ShipmentDTO struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OwnerID           uuid.UUID   `gorm:"type:uuid;index"`
	PackageIDs        []uuid.UUID `gorm:"serializer:json"`
	Carrier           string
	ServiceLevel      string
	Destination       DestinationDTO `gorm:"embedded;embeddedPrefix:dest_"`
	Customs           CustomsDTO     `gorm:"embedded;embeddedPrefix:customs_"`
	Status            string         `gorm:"index"`
	Cost              CostDTO        `gorm:"embedded;embeddedPrefix:cost_"`
	WeightValue       float64
	WeightUnit        string
	Length            float64
	Width             float64
	Height            float64
	DimensionUnit     string
	TrackingNumber    string `gorm:"uniqueIndex"`
	CarrierTracking   string
	LabelURL          string
	TrackingURL       string
	Events            []TrackingEventDTO `gorm:"foreignKey:ShipmentID"`
	EstimatedDelivery time.Time
	ActualDelivery    *time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// DestinationDTO is the embedded delivery address of a shipment.
type DestinationDTO struct {
	Name       string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// CustomsDTO is the embedded customs declaration of a shipment.
type CustomsDTO struct {
	ContentsType     string
	Description      string
	DeclaredAmount   float64
	DeclaredCurrency string
}

// CostDTO is the embedded billed breakdown of a shipment.
type CostDTO struct {
	Shipping  float64
	Insurance float64
	Total     float64
	Currency  string
}

// TrackingEventDTO is one row of the append-only tracking history.
type TrackingEventDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;index"`
	Status      string
	Location    string
	Description string
	Timestamp   time.Time
}

// TableName specifies the database table name for tracking events.
func (TrackingEventDTO) TableName() string {
	return "shipment_events"
}

// fromDomain converts a shipment domain aggregate to its database
// representation, tracking events included.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	packageIDs := make([]uuid.UUID, 0, len(aggregate.PackageIDs()))
	for _, id := range aggregate.PackageIDs() {
		packageIDs = append(packageIDs, id.Bytes())
	}

	return ShipmentDTO{
		ID:           aggregate.ID().Bytes(),
		OwnerID:      aggregate.Owner().ID().Bytes(),
		PackageIDs:   packageIDs,
		Carrier:      aggregate.Carrier(),
		ServiceLevel: aggregate.ServiceLevel(),
		Destination: DestinationDTO{
			Name:       aggregate.Destination().Name(),
			Street:     aggregate.Destination().Street(),
			City:       aggregate.Destination().City(),
			State:      aggregate.Destination().State(),
			PostalCode: aggregate.Destination().PostalCode(),
			Country:    aggregate.Destination().Country(),
		},
		Customs: CustomsDTO{
			ContentsType:     aggregate.Customs().ContentsType,
			Description:      aggregate.Customs().Description,
			DeclaredAmount:   aggregate.Customs().DeclaredValue.Amount(),
			DeclaredCurrency: aggregate.Customs().DeclaredValue.Currency(),
		},
		Status: aggregate.Status().String(),
		Cost: CostDTO{
			Shipping:  aggregate.Cost().Shipping,
			Insurance: aggregate.Cost().Insurance,
			Total:     aggregate.Cost().Total,
			Currency:  aggregate.Cost().Currency,
		},
		WeightValue:       aggregate.Weight().Value(),
		WeightUnit:        string(aggregate.Weight().Unit()),
		Length:            aggregate.Dimensions().Length(),
		Width:             aggregate.Dimensions().Width(),
		Height:            aggregate.Dimensions().Height(),
		DimensionUnit:     string(aggregate.Dimensions().Unit()),
		TrackingNumber:    aggregate.TrackingNumber(),
		CarrierTracking:   aggregate.CarrierTracking(),
		LabelURL:          aggregate.LabelURL(),
		TrackingURL:       aggregate.TrackingURL(),
		Events:            eventsFromDomain(aggregate.ID().Bytes(), aggregate.Events()),
		EstimatedDelivery: aggregate.EstimatedDelivery(),
		ActualDelivery:    aggregate.ActualDelivery(),
	}
}

func eventsFromDomain(shipmentID uuid.UUID, events []shipment.TrackingEvent) []TrackingEventDTO {
	dtos := make([]TrackingEventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, TrackingEventDTO{
			ShipmentID:  shipmentID,
			Status:      event.Status().String(),
			Location:    event.Location(),
			Description: event.Description(),
			Timestamp:   event.Timestamp(),
		})
	}
	return dtos
}

// toDomain converts a database DTO back to a shipment domain aggregate using
// RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
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

	destination, err := shipment.NewDestination(
		dto.Destination.Name,
		dto.Destination.Street,
		dto.Destination.City,
		dto.Destination.State,
		dto.Destination.PostalCode,
		dto.Destination.Country,
	)
	if err != nil {
		return nil, err
	}

	declaredValue, err := kernel.NewMoney(dto.Customs.DeclaredAmount, dto.Customs.DeclaredCurrency)
	if err != nil {
		return nil, err
	}

	status, err := shipment.StatusFromString(dto.Status)
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

	events, err := eventsToDomain(dto.Events)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id,
		owner,
		packageIDs,
		dto.Carrier,
		dto.ServiceLevel,
		destination,
		shipment.CustomsInfo{
			ContentsType:  dto.Customs.ContentsType,
			Description:   dto.Customs.Description,
			DeclaredValue: declaredValue,
		},
		status,
		shipment.Cost{
			Shipping:  dto.Cost.Shipping,
			Insurance: dto.Cost.Insurance,
			Total:     dto.Cost.Total,
			Currency:  dto.Cost.Currency,
		},
		weight,
		dimensions,
		dto.TrackingNumber,
		dto.CarrierTracking,
		dto.LabelURL,
		dto.TrackingURL,
		events,
		dto.EstimatedDelivery,
		dto.ActualDelivery,
	)
}

func eventsToDomain(dtos []TrackingEventDTO) ([]shipment.TrackingEvent, error) {
	events := make([]shipment.TrackingEvent, 0, len(dtos))
	for _, dto := range dtos {
		status, err := shipment.StatusFromString(dto.Status)
		if err != nil {
			return nil, err
		}
		event, err := shipment.NewTrackingEvent(status, dto.Location, dto.Description, dto.Timestamp)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
