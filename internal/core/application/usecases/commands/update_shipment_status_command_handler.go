package commands

import (
	"context"
	"time"

	"forwarding/internal/core/application/sideeffects"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

// UpdateShipmentStatusCommandHandler applies carrier scans and admin updates
// to shipments. Status changes cascade to the shipped packages: in transit
// and delivered move every member package along with the shipment.
// Re-applying the current status is a no-op.
type UpdateShipmentStatusCommandHandler struct {
	uowFactory ShipmentUoWFactory
	dispatcher *sideeffects.Dispatcher
}

// NewUpdateShipmentStatusCommandHandler creates a handler for shipment status updates.
func NewUpdateShipmentStatusCommandHandler(
	uowFactory ShipmentUoWFactory,
	dispatcher *sideeffects.Dispatcher,
) UpdateShipmentStatusCommandHandler {
	return UpdateShipmentStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the status update.
func (h *UpdateShipmentStatusCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.IsAdmin() {
		return errs.NewForbiddenError("shipment", cmd.ShipmentID().String(), cmd.ActorID().String())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	previous := aggregate.Status()
	now := time.Now()
	if err = aggregate.UpdateStatus(cmd.NewStatus(), now); err != nil {
		return err
	}
	changed := aggregate.Status() != previous

	if cmd.Location() != "" || cmd.Description() != "" {
		event, eventErr := shipment.NewTrackingEvent(aggregate.Status(), cmd.Location(), cmd.Description(), now)
		if eventErr != nil {
			return eventErr
		}
		aggregate.AppendEvent(event)
	}

	if changed {
		if err = h.cascadeToPackages(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if changed {
		h.notifyStatus(ctx, aggregate)
	}

	return nil
}

func (h *UpdateShipmentStatusCommandHandler) cascadeToPackages(
	ctx context.Context,
	uow ShipmentUoW,
	aggregate *shipment.Shipment,
) error {
	if aggregate.Status() != shipment.InTransit && aggregate.Status() != shipment.Delivered {
		return nil
	}

	packageRepo := uow.PackageRepository()
	packages, err := packageRepo.GetMany(ctx, aggregate.PackageIDs())
	if err != nil {
		return err
	}
	for _, p := range packages {
		if aggregate.Status() == shipment.Delivered {
			err = p.MarkDelivered()
		} else {
			err = p.MarkInTransit()
		}
		if err != nil {
			return err
		}
		if err = packageRepo.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (h *UpdateShipmentStatusCommandHandler) notifyStatus(ctx context.Context, aggregate *shipment.Shipment) {
	notification := ports.Notification{
		UserID:       aggregate.Owner().ID(),
		RelatedID:    aggregate.ID(),
		RelatedModel: "shipment",
		Priority:     ports.NotificationPriorityNormal,
	}

	switch aggregate.Status() {
	case shipment.InTransit:
		notification.Type = "shipment_in_transit"
		notification.Title = "Shipment in transit"
		notification.Message = "Your shipment " + aggregate.TrackingNumber() + " is on its way."
	case shipment.Delivered:
		notification.Type = "shipment_delivered"
		notification.Title = "Shipment delivered"
		notification.Message = "Your shipment " + aggregate.TrackingNumber() + " was delivered."
		notification.Priority = ports.NotificationPriorityHigh
	case shipment.Cancelled:
		notification.Type = "shipment_cancelled"
		notification.Title = "Shipment cancelled"
		notification.Message = "Your shipment " + aggregate.TrackingNumber() + " was cancelled."
	default:
		return
	}

	h.dispatcher.Notify(ctx, notification)
}
