package commands

import (
	"context"
	"fmt"

	"forwarding/internal/core/application/sideeffects"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
)

// CancelConsolidationCommandHandler withdraws consolidations. Members are
// released back to received status so they can join another consolidation
// or ship individually. Customers may cancel only their own pending
// requests; admins may also cancel processing ones.
type CancelConsolidationCommandHandler struct {
	uowFactory ConsolidationUoWFactory
	ownership  services.OwnershipGuard
	dispatcher *sideeffects.Dispatcher
}

// NewCancelConsolidationCommandHandler creates a handler for consolidation cancellation.
func NewCancelConsolidationCommandHandler(
	uowFactory ConsolidationUoWFactory,
	ownership services.OwnershipGuard,
	dispatcher *sideeffects.Dispatcher,
) CancelConsolidationCommandHandler {
	return CancelConsolidationCommandHandler{
		uowFactory: uowFactory,
		ownership:  ownership,
		dispatcher: dispatcher,
	}
}

// Handle processes the cancellation command.
func (h *CancelConsolidationCommandHandler) Handle(ctx context.Context, cmd CancelConsolidationCommand) error {
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

	aggregate, err := uow.ConsolidationRepository().Get(ctx, cmd.ConsolidationID())
	if err != nil {
		return err
	}

	if err = h.ownership.AssertOwner("consolidation", aggregate.ID(), aggregate.Owner(),
		cmd.ActorID(), cmd.IsAdmin()); err != nil {
		return err
	}

	if err = aggregate.Cancel(cmd.IsAdmin()); err != nil {
		return err
	}

	packageRepo := uow.PackageRepository()
	members, err := packageRepo.GetMany(ctx, aggregate.PackageIDs())
	if err != nil {
		return err
	}
	for _, member := range members {
		if err = member.ReleaseFromConsolidation(); err != nil {
			return err
		}
		if err = packageRepo.Update(ctx, member); err != nil {
			return err
		}
	}

	if err = uow.ConsolidationRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.dispatcher.Notify(ctx, ports.Notification{
		UserID:       aggregate.Owner().ID(),
		Type:         "consolidation_cancelled",
		Title:        "Consolidation cancelled",
		Message:      fmt.Sprintf("Your consolidation was cancelled and its %d packages were released.", len(members)),
		RelatedID:    aggregate.ID(),
		RelatedModel: "consolidation",
		Priority:     ports.NotificationPriorityNormal,
	})

	return nil
}
