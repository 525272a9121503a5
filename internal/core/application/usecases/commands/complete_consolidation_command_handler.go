package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"forwarding/internal/core/application/sideeffects"
	"forwarding/internal/core/domain/model/consolidation"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pack"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

// CompleteConsolidationCommandHandler finishes consolidations at the
// warehouse: a new package is synthesized from the repacked box and the
// member packages stay linked to the completed consolidation as its history.
// Completion is a warehouse operation and requires admin privileges.
type CompleteConsolidationCommandHandler struct {
	uowFactory ConsolidationUoWFactory
	dispatcher *sideeffects.Dispatcher
}

// NewCompleteConsolidationCommandHandler creates a handler for consolidation completion.
func NewCompleteConsolidationCommandHandler(
	uowFactory ConsolidationUoWFactory,
	dispatcher *sideeffects.Dispatcher,
) CompleteConsolidationCommandHandler {
	return CompleteConsolidationCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the completion command. Completing an already completed
// or cancelled consolidation fails with a conflict and changes nothing.
func (h *CompleteConsolidationCommandHandler) Handle(ctx context.Context, cmd CompleteConsolidationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.IsAdmin() {
		return errs.NewForbiddenError("consolidation", cmd.ConsolidationID().String(), cmd.ActorID().String())
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

	now := time.Now()
	after := consolidation.Result{Weight: cmd.ResultWeight(), Dimensions: cmd.ResultDimensions()}
	if err = aggregate.Complete(after, cmd.ResultingPackageID(), cmd.Notes(), now); err != nil {
		return err
	}

	packageRepo := uow.PackageRepository()
	members, err := packageRepo.GetMany(ctx, aggregate.PackageIDs())
	if err != nil {
		return err
	}

	result, err := h.synthesizeResult(cmd, aggregate, members, now)
	if err != nil {
		return err
	}

	if err = packageRepo.Add(ctx, result); err != nil {
		return err
	}
	for _, member := range members {
		if err = member.LinkConsolidation(aggregate.ID()); err != nil {
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
		Type:         "consolidation_completed",
		Title:        "Consolidation completed",
		Message:      fmt.Sprintf("Your %d packages were consolidated into one (%s). It is ready to ship.", len(members), result.TrackingNumber()),
		RelatedID:    aggregate.ID(),
		RelatedModel: "consolidation",
		Priority:     ports.NotificationPriorityHigh,
	})

	return nil
}

// synthesizeResult builds the resulting package from the members: summed
// declared value, concatenated contents, and the measured repacked box.
func (h *CompleteConsolidationCommandHandler) synthesizeResult(
	cmd CompleteConsolidationCommand,
	aggregate *consolidation.Consolidation,
	members []*pack.Package,
	now time.Time,
) (*pack.Package, error) {
	totalValue, err := kernel.NewMoney(0, kernel.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	descriptions := make([]string, 0, len(members))
	memberIDs := make([]kernel.UUID, 0, len(members))
	for _, member := range members {
		if !member.EstimatedValue().IsZero() {
			if totalValue, err = totalValue.Add(member.EstimatedValue()); err != nil {
				return nil, err
			}
		}
		if member.Description() != "" {
			descriptions = append(descriptions, member.Description())
		}
		memberIDs = append(memberIDs, member.ID())
	}

	trackingNumber := fmt.Sprintf("CONS-%s", strings.ToUpper(cmd.ResultingPackageID().String()[:8]))
	description := fmt.Sprintf("consolidated: %s", strings.Join(descriptions, "; "))

	return pack.NewConsolidatedResult(cmd.ResultingPackageID(), aggregate.Owner(),
		trackingNumber, description, memberIDs, cmd.ResultWeight(),
		cmd.ResultDimensions(), totalValue, now)
}
