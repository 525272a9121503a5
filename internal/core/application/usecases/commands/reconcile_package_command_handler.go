package commands

import (
	"context"
	"time"

	"forwarding/internal/core/application/sideeffects"
	"forwarding/internal/core/domain/model/consolidation"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pack"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
)

// Reconciliation outcomes.
const (
	reconcileOutcomeLinked      = "linked"
	reconcileOutcomeRelinked    = "relinked"
	reconcileOutcomeAppended    = "appended"
	reconcileOutcomeSynthesized = "synthesized"
)

// ReconcilePackageCommandHandler repairs packages in consolidated status
// that lost their consolidation link. In order of preference the package is
// relinked to an active consolidation that already lists it, appended to the
// owner's oldest pending consolidation, or wrapped in a new single-package
// consolidation created directly in processing.
type ReconcilePackageCommandHandler struct {
	uowFactory ConsolidationUoWFactory
	pricing    services.PricingCalculator
	dispatcher *sideeffects.Dispatcher
}

// NewReconcilePackageCommandHandler creates a handler for package reconciliation.
func NewReconcilePackageCommandHandler(
	uowFactory ConsolidationUoWFactory,
	pricing services.PricingCalculator,
	dispatcher *sideeffects.Dispatcher,
) ReconcilePackageCommandHandler {
	return ReconcilePackageCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		dispatcher: dispatcher,
	}
}

// Handle reconciles a single package in its own transaction. Packages that
// do not need reconciliation are left untouched.
func (h *ReconcilePackageCommandHandler) Handle(ctx context.Context, cmd ReconcilePackageCommand) error {
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

	aggregate, err := uow.PackageRepository().Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}

	outcome, err := h.reconcileWithinTx(ctx, uow, aggregate)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyOutcome(ctx, aggregate, outcome)
	return nil
}

// reconcileWithinTx runs the reconciliation decision tree inside the
// caller's transaction and returns the outcome taken. Already-linked
// packages exit silently with the linked outcome.
func (h *ReconcilePackageCommandHandler) reconcileWithinTx(
	ctx context.Context,
	uow ConsolidationUoW,
	aggregate *pack.Package,
) (string, error) {
	if !aggregate.NeedsReconciliation() {
		return reconcileOutcomeLinked, nil
	}

	packageRepo := uow.PackageRepository()
	consolidationRepo := uow.ConsolidationRepository()

	active, err := consolidationRepo.GetActiveByPackage(ctx, aggregate.ID())
	if err != nil {
		return "", err
	}
	if active != nil {
		if err = aggregate.LinkConsolidation(active.ID()); err != nil {
			return "", err
		}
		if err = packageRepo.Update(ctx, aggregate); err != nil {
			return "", err
		}
		return reconcileOutcomeRelinked, nil
	}

	pending, err := consolidationRepo.GetFirstPendingByOwner(ctx, aggregate.Owner().ID())
	if err != nil {
		return "", err
	}
	if pending != nil {
		if err = pending.AddPackage(aggregate.ID()); err != nil {
			return "", err
		}
		if err = consolidationRepo.Update(ctx, pending); err != nil {
			return "", err
		}
		if err = aggregate.LinkConsolidation(pending.ID()); err != nil {
			return "", err
		}
		if err = packageRepo.Update(ctx, aggregate); err != nil {
			return "", err
		}
		return reconcileOutcomeAppended, nil
	}

	cost := h.pricing.ConsolidationCost(1, consolidation.Preferences{})
	before := consolidation.Totals{
		WeightKg:  aggregate.Weight().Kilograms(),
		VolumeCm3: aggregate.Dimensions().VolumeCm3(),
	}
	eta := time.Now().AddDate(0, 0, h.pricing.Policy().ConsolidationETADays)

	synthesized, err := consolidation.NewReconciledConsolidation(kernel.NewUUID(),
		aggregate.Owner(), aggregate.ID(), cost, before, eta)
	if err != nil {
		return "", err
	}
	if err = consolidationRepo.Add(ctx, synthesized); err != nil {
		return "", err
	}
	if err = aggregate.LinkConsolidation(synthesized.ID()); err != nil {
		return "", err
	}
	if err = packageRepo.Update(ctx, aggregate); err != nil {
		return "", err
	}
	return reconcileOutcomeSynthesized, nil
}

// notifyOutcome tells the owner what reconciliation did. The silent linked
// outcome produces no notification.
func (h *ReconcilePackageCommandHandler) notifyOutcome(ctx context.Context, aggregate *pack.Package, outcome string) {
	if outcome == reconcileOutcomeLinked {
		return
	}

	messages := map[string]string{
		reconcileOutcomeRelinked:    "Your package was relinked to its consolidation.",
		reconcileOutcomeAppended:    "Your package was added to your pending consolidation.",
		reconcileOutcomeSynthesized: "A consolidation was opened for your package.",
	}

	h.dispatcher.Notify(ctx, ports.Notification{
		UserID:       aggregate.Owner().ID(),
		Type:         "package_reconciled",
		Title:        "Package consolidation updated",
		Message:      messages[outcome],
		RelatedID:    aggregate.ID(),
		RelatedModel: "package",
		Priority:     ports.NotificationPriorityNormal,
	})
}
