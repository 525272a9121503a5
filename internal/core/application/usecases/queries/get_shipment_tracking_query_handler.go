package queries

import (
	"context"
	"database/sql"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentTrackingQueryHandler reads a shipment and its tracking events
// straight from the database, bypassing the aggregate.
type GetShipmentTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentTrackingQueryHandler creates a handler for shipment tracking queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentTrackingQueryHandler(db *gorm.DB) GetShipmentTrackingQueryHandler {
	return GetShipmentTrackingQueryHandler{db: db}
}

// Handle executes the query and returns the shipment header with its tracking
// history ordered oldest first. A shipment owned by someone else reads as not
// found.
func (h GetShipmentTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentTrackingQuery,
) (GetShipmentTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentTrackingQueryResponse{}, err
	}

	resp, err := h.readHeader(ctx, query)
	if err != nil {
		return GetShipmentTrackingQueryResponse{}, err
	}

	events, err := h.readEvents(ctx, query.ShipmentID())
	if err != nil {
		return GetShipmentTrackingQueryResponse{}, err
	}
	resp.Events = events

	return resp, nil
}

func (h GetShipmentTrackingQueryHandler) readHeader(
	ctx context.Context,
	query GetShipmentTrackingQuery,
) (GetShipmentTrackingQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			carrier,
			service_level,
			tracking_number,
			carrier_tracking,
			tracking_url,
			estimated_delivery,
			actual_delivery
		FROM shipments
		WHERE id = ? AND owner_id = ?
	`, query.ShipmentID().String(), query.OwnerID().String()).Rows()
	if err != nil {
		return GetShipmentTrackingQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetShipmentTrackingQueryResponse{}, err
		}
		return GetShipmentTrackingQueryResponse{},
			errs.NewObjectNotFoundError("shipmentID", query.ShipmentID())
	}

	var resp GetShipmentTrackingQueryResponse
	var id uuid.UUID
	var actualDelivery sql.NullTime

	err = rows.Scan(
		&id,
		&resp.Status,
		&resp.Carrier,
		&resp.ServiceLevel,
		&resp.TrackingNumber,
		&resp.CarrierTracking,
		&resp.TrackingURL,
		&resp.EstimatedDelivery,
		&actualDelivery,
	)
	if err != nil {
		return GetShipmentTrackingQueryResponse{}, err
	}

	shipmentID, idErr := kernel.UUIDFromBytes(id[:])
	if idErr != nil {
		return GetShipmentTrackingQueryResponse{}, idErr
	}
	resp.ID = shipmentID

	if actualDelivery.Valid {
		delivered := actualDelivery.Time
		resp.ActualDelivery = &delivered
	}

	if err = rows.Err(); err != nil {
		return GetShipmentTrackingQueryResponse{}, err
	}

	return resp, nil
}

func (h GetShipmentTrackingQueryHandler) readEvents(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]ShipmentTrackingEvent, error) {
	events := make([]ShipmentTrackingEvent, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			location,
			description,
			timestamp
		FROM shipment_events
		WHERE shipment_id = ?
		ORDER BY timestamp, id
	`, shipmentID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event ShipmentTrackingEvent
		var timestamp time.Time

		err = rows.Scan(
			&event.Status,
			&event.Location,
			&event.Description,
			&timestamp,
		)
		if err != nil {
			return nil, err
		}

		event.Timestamp = timestamp
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
