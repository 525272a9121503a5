package commands

import (
	"context"
	"fmt"
	"time"

	"forwarding/internal/core/application/sideeffects"
	"forwarding/internal/core/domain/model/consolidation"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

// CreateConsolidationCommandHandler creates consolidation requests.
//
// All requested packages are checked before anything is written: every one
// must exist, belong to the requesting customer, and be in received status.
// Any failure leaves every package untouched. On success the members move to
// consolidated status, the request is priced, and a pending charge is
// recorded.
type CreateConsolidationCommandHandler struct {
	uowFactory ConsolidationUoWFactory
	pricing    services.PricingCalculator
	ownership  services.OwnershipGuard
	dispatcher *sideeffects.Dispatcher
}

// NewCreateConsolidationCommandHandler creates a handler for consolidation requests.
func NewCreateConsolidationCommandHandler(
	uowFactory ConsolidationUoWFactory,
	pricing services.PricingCalculator,
	ownership services.OwnershipGuard,
	dispatcher *sideeffects.Dispatcher,
) CreateConsolidationCommandHandler {
	return CreateConsolidationCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		ownership:  ownership,
		dispatcher: dispatcher,
	}
}

// Handle processes the consolidation request.
func (h *CreateConsolidationCommandHandler) Handle(ctx context.Context, cmd CreateConsolidationCommand) error {
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

	var before consolidation.Totals
	for _, p := range packages {
		if err = h.ownership.AssertOwner("package", p.ID(), p.Owner(), cmd.ActorID(), false); err != nil {
			return err
		}
		if !p.Status().CanJoinConsolidation() {
			return errs.NewConflictError("package", p.ID().String(),
				fmt.Sprintf("status %s cannot join a consolidation", p.Status()))
		}
		before.WeightKg += p.Weight().Kilograms()
		before.VolumeCm3 += p.Dimensions().VolumeCm3()
	}

	cost := h.pricing.ConsolidationCost(len(packages), cmd.Preferences())
	eta := time.Now().AddDate(0, 0, h.pricing.Policy().ConsolidationETADays)

	owner := packages[0].Owner()
	aggregate, err := consolidation.NewConsolidation(cmd.ConsolidationID(), owner,
		cmd.PackageIDs(), cmd.Preferences(), cmd.Instructions(), cost, before, eta)
	if err != nil {
		return err
	}

	if err = uow.ConsolidationRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	for _, p := range packages {
		if err = p.JoinConsolidation(cmd.ConsolidationID()); err != nil {
			return err
		}
		if err = packageRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.RecordPendingCharge(ctx, ports.LedgerEntry{
		UserID:       owner.ID(),
		Kind:         "consolidation",
		Amount:       cost.Total,
		Currency:     cost.Currency,
		Description:  fmt.Sprintf("Consolidation of %d packages", len(packages)),
		RelatedID:    cmd.ConsolidationID(),
		RelatedModel: "consolidation",
	})
	h.dispatcher.Notify(ctx, ports.Notification{
		UserID:       owner.ID(),
		Type:         "consolidation_requested",
		Title:        "Consolidation request received",
		Message:      fmt.Sprintf("We will consolidate %d of your packages. Estimated cost: %.2f %s.", len(packages), cost.Total, cost.Currency),
		RelatedID:    cmd.ConsolidationID(),
		RelatedModel: "consolidation",
		Priority:     ports.NotificationPriorityNormal,
	})

	return nil
}
