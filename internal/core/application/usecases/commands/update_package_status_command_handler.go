package commands

import (
	"context"

	"forwarding/internal/pkg/errs"
)

// UpdatePackageStatusCommandHandler applies admin status overrides.
// Forcing a package into consolidated status without a consolidation link
// triggers reconciliation in the same transaction, so the edit and its
// repair land atomically.
type UpdatePackageStatusCommandHandler struct {
	uowFactory ConsolidationUoWFactory
	reconciler ReconcilePackageCommandHandler
}

// NewUpdatePackageStatusCommandHandler creates a handler for admin status edits.
func NewUpdatePackageStatusCommandHandler(
	uowFactory ConsolidationUoWFactory,
	reconciler ReconcilePackageCommandHandler,
) UpdatePackageStatusCommandHandler {
	return UpdatePackageStatusCommandHandler{
		uowFactory: uowFactory,
		reconciler: reconciler,
	}
}

// Handle processes the status override.
func (h *UpdatePackageStatusCommandHandler) Handle(ctx context.Context, cmd UpdatePackageStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.IsAdmin() {
		return errs.NewForbiddenError("package", cmd.PackageID().String(), cmd.ActorID().String())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	aggregate, err := packageRepo.Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}

	if err = aggregate.ForceStatus(cmd.NewStatus()); err != nil {
		return err
	}
	if cmd.Notes() != "" {
		aggregate.AppendNotes(cmd.Notes())
	}
	if err = packageRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	outcome := reconcileOutcomeLinked
	if aggregate.NeedsReconciliation() {
		if outcome, err = h.reconciler.reconcileWithinTx(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.reconciler.notifyOutcome(ctx, aggregate, outcome)
	return nil
}
