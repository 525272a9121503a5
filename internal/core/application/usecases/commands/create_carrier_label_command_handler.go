package commands

import (
	"context"
	"time"

	"forwarding/internal/core/application/sideeffects"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

// CreateCarrierLabelCommandHandler purchases carrier labels.
//
// The carrier configuration check and every local validation run before the
// carrier is called, so a misconfigured or failing carrier leaves the
// shipment untouched. Once the carrier has issued a label, a failure to
// record it locally is reported as a partial failure naming the completed
// external step.
type CreateCarrierLabelCommandHandler struct {
	uowFactory ShipmentUoWFactory
	carrier    ports.CarrierLabelService
	ownership  services.OwnershipGuard
	dispatcher *sideeffects.Dispatcher
}

// NewCreateCarrierLabelCommandHandler creates a handler for label purchases.
func NewCreateCarrierLabelCommandHandler(
	uowFactory ShipmentUoWFactory,
	carrier ports.CarrierLabelService,
	ownership services.OwnershipGuard,
	dispatcher *sideeffects.Dispatcher,
) CreateCarrierLabelCommandHandler {
	return CreateCarrierLabelCommandHandler{
		uowFactory: uowFactory,
		carrier:    carrier,
		ownership:  ownership,
		dispatcher: dispatcher,
	}
}

// Handle processes the label purchase.
func (h *CreateCarrierLabelCommandHandler) Handle(ctx context.Context, cmd CreateCarrierLabelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !h.carrier.IsConfigured() {
		return errs.NewExternalServiceError("carrier")
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

	if err = h.ownership.AssertOwner("shipment", aggregate.ID(), aggregate.Owner(),
		cmd.ActorID(), cmd.IsAdmin()); err != nil {
		return err
	}
	if aggregate.HasLabel() {
		return errs.NewConflictError("shipment", aggregate.ID().String(), "carrier label already exists")
	}

	label, err := h.carrier.CreateLabel(ctx, aggregate)
	if err != nil {
		return err
	}

	// The carrier has charged for the label at this point. Local failures
	// from here on are partial: the label exists externally but is not
	// recorded.
	if err = aggregate.AttachLabel(label.TrackingNumber, label.LabelURL, label.TrackingURL, time.Now()); err != nil {
		return errs.NewPartialFailureError("create carrier label",
			[]string{"carrier label purchased"}, err)
	}
	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return errs.NewPartialFailureError("create carrier label",
			[]string{"carrier label purchased"}, err)
	}
	if err = uow.Commit(ctx); err != nil {
		return errs.NewPartialFailureError("create carrier label",
			[]string{"carrier label purchased"}, err)
	}

	h.dispatcher.Notify(ctx, ports.Notification{
		UserID:       aggregate.Owner().ID(),
		Type:         "label_created",
		Title:        "Shipping label created",
		Message:      "Your shipment now has a carrier label and is awaiting pickup. Tracking: " + label.TrackingNumber,
		RelatedID:    aggregate.ID(),
		RelatedModel: "shipment",
		Priority:     ports.NotificationPriorityNormal,
	})

	return nil
}
