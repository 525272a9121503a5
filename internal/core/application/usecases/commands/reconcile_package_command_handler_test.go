package commands_test

import (
	"log/slog"
	"testing"

	"forwarding/internal/core/application/sideeffects"
	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/consolidation"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func reconcileHandler(factory *MockConsolidationUoWFactory) commands.ReconcilePackageCommandHandler {
	return commands.NewReconcilePackageCommandHandler(factory, testPricing(), permissiveDispatcher())
}

func TestReconcilePackageCommandHandler_Handle_AlreadyLinked(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	aggregate := receivedPackage(t, ownerID, 1.5)
	require.NoError(t, aggregate.JoinConsolidation(kernel.NewUUID()))
	cmd, err := commands.NewReconcilePackageCommand(aggregate.ID())
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	consolidationRepo := new(MockConsolidationRepository)
	uow := new(MockConsolidationUoW)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	packageRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow).Once()

	sink := new(MockNotificationSink)
	ledger := new(MockTransactionLedger)
	h := commands.NewReconcilePackageCommandHandler(factory, testPricing(),
		sideeffects.NewDispatcher(sink, ledger, slog.Default()))
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	consolidationRepo.AssertNotCalled(t, "GetActiveByPackage", mock.Anything, mock.Anything)
	packageRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	sink.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestReconcilePackageCommandHandler_Handle_RelinksToActiveConsolidation(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	aggregate := unlinkedConsolidatedPackage(t, ownerID)
	other := receivedPackage(t, ownerID, 1.5)
	active := pendingConsolidationFor(t, ownerID, []*pack.Package{aggregate, other})
	cmd, err := commands.NewReconcilePackageCommand(aggregate.ID())
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	consolidationRepo := new(MockConsolidationRepository)
	uow := new(MockConsolidationUoW)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("ConsolidationRepository").Return(consolidationRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	packageRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	consolidationRepo.On("GetActiveByPackage", mock.Anything, aggregate.ID()).Return(active, nil).Once()
	packageRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := reconcileHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, aggregate.ConsolidationID())
	assert.True(t, active.ID().IsEqual(*aggregate.ConsolidationID()))
	consolidationRepo.AssertNotCalled(t, "GetFirstPendingByOwner", mock.Anything, mock.Anything)
}

func TestReconcilePackageCommandHandler_Handle_AppendsToPendingConsolidation(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	aggregate := unlinkedConsolidatedPackage(t, ownerID)
	pending := pendingConsolidationFor(t, ownerID, []*pack.Package{
		receivedPackage(t, ownerID, 1.5),
		receivedPackage(t, ownerID, 1.5),
	})
	cmd, err := commands.NewReconcilePackageCommand(aggregate.ID())
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	consolidationRepo := new(MockConsolidationRepository)
	uow := new(MockConsolidationUoW)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("ConsolidationRepository").Return(consolidationRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	packageRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	consolidationRepo.On("GetActiveByPackage", mock.Anything, aggregate.ID()).Return(nil, nil).Once()
	consolidationRepo.On("GetFirstPendingByOwner", mock.Anything, ownerID).Return(pending, nil).Once()
	consolidationRepo.On("Update", mock.Anything, pending).Return(nil).Once()
	packageRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := reconcileHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, pending.ContainsPackage(aggregate.ID()))
	assert.Len(t, pending.PackageIDs(), 3)
	require.NotNil(t, aggregate.ConsolidationID())
	assert.True(t, pending.ID().IsEqual(*aggregate.ConsolidationID()))
}

func TestReconcilePackageCommandHandler_Handle_SynthesizesConsolidation(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	aggregate := unlinkedConsolidatedPackage(t, ownerID)
	cmd, err := commands.NewReconcilePackageCommand(aggregate.ID())
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	consolidationRepo := new(MockConsolidationRepository)
	uow := new(MockConsolidationUoW)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("ConsolidationRepository").Return(consolidationRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	packageRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	consolidationRepo.On("GetActiveByPackage", mock.Anything, aggregate.ID()).Return(nil, nil).Once()
	consolidationRepo.On("GetFirstPendingByOwner", mock.Anything, ownerID).Return(nil, nil).Once()
	consolidationRepo.On("Add", mock.Anything, mock.MatchedBy(func(c *consolidation.Consolidation) bool {
		return c.Status() == consolidation.Processing &&
			len(c.PackageIDs()) == 1 &&
			c.ContainsPackage(aggregate.ID())
	})).Return(nil).Once()
	packageRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := reconcileHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, aggregate.ConsolidationID())
	assert.False(t, aggregate.NeedsReconciliation())
}
