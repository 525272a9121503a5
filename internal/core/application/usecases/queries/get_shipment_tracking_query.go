package queries

import (
	"errors"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var (
	ErrGetShipmentTrackingQueryIsNotConstructed = errors.New(
		"GetShipmentTrackingQuery must be created via NewGetShipmentTrackingQuery constructor",
	)
)

// GetShipmentTrackingQuery retrieves one shipment with its full tracking
// history. The query is scoped to the requesting owner; a shipment that
// exists but belongs to someone else reads as not found.
type GetShipmentTrackingQuery struct {
	shipmentID kernel.UUID
	ownerID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentTrackingQuery creates a tracking query for one shipment.
func NewGetShipmentTrackingQuery(shipmentID, ownerID kernel.UUID) (GetShipmentTrackingQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentTrackingQuery{}, err
	}
	if err := ownerID.Validate(); err != nil {
		return GetShipmentTrackingQuery{}, err
	}
	return GetShipmentTrackingQuery{
		shipmentID: shipmentID,
		ownerID:    ownerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// ShipmentID returns the shipment being tracked.
func (q GetShipmentTrackingQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// OwnerID returns the requesting owner.
func (q GetShipmentTrackingQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetShipmentTrackingQueryIsNotConstructed if validation fails.
func (q GetShipmentTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentTrackingQueryIsNotConstructed)
}

// ShipmentTrackingEvent is one entry of the tracking history, oldest first.
type ShipmentTrackingEvent struct {
	Status      string
	Location    string
	Description string
	Timestamp   time.Time
}

// GetShipmentTrackingQueryResponse is the shipment header plus its history.
type GetShipmentTrackingQueryResponse struct {
	ID                kernel.UUID
	Status            string
	Carrier           string
	ServiceLevel      string
	TrackingNumber    string
	CarrierTracking   string
	TrackingURL       string
	EstimatedDelivery time.Time
	ActualDelivery    *time.Time
	Events            []ShipmentTrackingEvent
}
