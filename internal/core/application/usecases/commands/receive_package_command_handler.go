package commands

import (
	"context"
	"fmt"
	"time"

	"forwarding/internal/core/application/sideeffects"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pack"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

// ReceivePackageCommandHandler registers inbound packages at the warehouse.
// Duplicate tracking numbers are rejected, so scanning the same parcel twice
// cannot create two packages.
type ReceivePackageCommandHandler struct {
	uowFactory PackageUoWFactory
	dispatcher *sideeffects.Dispatcher
}

// NewReceivePackageCommandHandler creates a handler for package intake.
func NewReceivePackageCommandHandler(
	uowFactory PackageUoWFactory,
	dispatcher *sideeffects.Dispatcher,
) ReceivePackageCommandHandler {
	return ReceivePackageCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle registers the package in received status and notifies the owner.
func (h *ReceivePackageCommandHandler) Handle(ctx context.Context, cmd ReceivePackageCommand) error {
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
	existing, err := packageRepo.GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return err
	}
	if existing != nil {
		return errs.NewConflictError("package", existing.ID().String(),
			fmt.Sprintf("tracking number %s is already registered", cmd.TrackingNumber()))
	}

	owner, err := kernel.OwnerRefFromID(cmd.OwnerID())
	if err != nil {
		return err
	}

	aggregate, err := pack.NewPackage(cmd.PackageID(), owner, cmd.TrackingNumber(),
		cmd.Retailer(), cmd.Description(), cmd.Weight(), cmd.Dimensions(),
		cmd.EstimatedValue(), time.Now())
	if err != nil {
		return err
	}

	if err = packageRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Notify(ctx, ports.Notification{
		UserID:       cmd.OwnerID(),
		Type:         "package_received",
		Title:        "Package received at warehouse",
		Message:      fmt.Sprintf("Your package from %s (%s) has arrived at the warehouse.", cmd.Retailer(), cmd.TrackingNumber()),
		RelatedID:    cmd.PackageID(),
		RelatedModel: "package",
		Priority:     ports.NotificationPriorityNormal,
	})

	return nil
}
