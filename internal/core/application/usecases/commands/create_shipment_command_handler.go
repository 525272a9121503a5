package commands

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"forwarding/internal/core/application/sideeffects"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

// CreateShipmentCommandHandler creates outbound shipments.
//
// Every requested package must belong to the customer and be in received or
// consolidated status; any failure leaves all packages untouched. The
// shipment is priced on the greater of actual and volumetric weight, gets an
// internal tracking number, and its members move to shipped status.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	pricing    services.PricingCalculator
	ownership  services.OwnershipGuard
	dispatcher *sideeffects.Dispatcher
}

// NewCreateShipmentCommandHandler creates a handler for shipment requests.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	pricing services.PricingCalculator,
	ownership services.OwnershipGuard,
	dispatcher *sideeffects.Dispatcher,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		ownership:  ownership,
		dispatcher: dispatcher,
	}
}

// Handle processes the shipment request.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	packages, err := packageRepo.GetMany(ctx, cmd.PackageIDs())
	if err != nil {
		return err
	}

	var totalKg, maxLength, maxWidth, sumHeight float64
	for _, p := range packages {
		if err = h.ownership.AssertOwner("package", p.ID(), p.Owner(), cmd.ActorID(), false); err != nil {
			return err
		}
		if !p.Status().CanShip() {
			return errs.NewConflictError("package", p.ID().String(),
				fmt.Sprintf("status %s cannot ship", p.Status()))
		}
		totalKg += p.Weight().Kilograms()
		maxLength = max(maxLength, p.Dimensions().LengthCm())
		maxWidth = max(maxWidth, p.Dimensions().WidthCm())
		sumHeight += p.Dimensions().HeightCm()
	}

	weight, err := kernel.NewWeight(totalKg, kernel.Kilograms)
	if err != nil {
		return err
	}
	dimensions, err := kernel.NewDimensions(maxLength, maxWidth, sumHeight, kernel.Centimeters)
	if err != nil {
		return err
	}

	cost, err := h.pricing.ShippingCost(cmd.Carrier(), weight, dimensions, cmd.Customs().DeclaredValue)
	if err != nil {
		return err
	}

	now := time.Now()
	eta := now.AddDate(0, 0, h.pricing.Policy().ShippingETADays)
	aggregate, err := shipment.NewShipment(cmd.ShipmentID(), packages[0].Owner(),
		cmd.PackageIDs(), cmd.Carrier(), cmd.ServiceLevel(), cmd.Destination(),
		cmd.Customs(), cost, weight, dimensions, generateTrackingNumber(), eta)
	if err != nil {
		return err
	}

	created, err := shipment.NewTrackingEvent(shipment.Pending,
		h.pricing.Policy().WarehouseLocation, "shipment created", now)
	if err != nil {
		return err
	}
	aggregate.AppendEvent(created)

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	for _, p := range packages {
		if err = p.MarkShipped(); err != nil {
			return err
		}
		if err = packageRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	owner := packages[0].Owner()
	h.dispatcher.RecordPendingCharge(ctx, ports.LedgerEntry{
		UserID:       owner.ID(),
		Kind:         "shipment",
		Amount:       cost.Total,
		Currency:     cost.Currency,
		Description:  fmt.Sprintf("Shipment of %d packages via %s", len(packages), cmd.Carrier()),
		RelatedID:    cmd.ShipmentID(),
		RelatedModel: "shipment",
	})
	h.dispatcher.Notify(ctx, ports.Notification{
		UserID:       owner.ID(),
		Type:         "shipment_created",
		Title:        "Shipment created",
		Message:      fmt.Sprintf("Your shipment %s was created. Estimated cost: %.2f %s.", aggregate.TrackingNumber(), cost.Total, cost.Currency),
		RelatedID:    cmd.ShipmentID(),
		RelatedModel: "shipment",
		Priority:     ports.NotificationPriorityNormal,
	})

	return nil
}

// generateTrackingNumber builds an internal tracking number unique enough
// for human-facing lookup; the shipment id remains the real identity.
func generateTrackingNumber() string {
	return fmt.Sprintf("FWD%d%04d", time.Now().UnixNano(), rand.Intn(10000)) //nolint:gosec //not security sensitive
}
