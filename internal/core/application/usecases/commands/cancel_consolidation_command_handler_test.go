package commands_test

import (
	"testing"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/consolidation"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pack"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelConsolidationCommandHandler_Handle_ReleasesMembers(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	members := []*pack.Package{
		receivedPackage(t, ownerID, 1.5),
		receivedPackage(t, ownerID, 1.5),
	}
	aggregate := pendingConsolidationFor(t, ownerID, members)
	for _, m := range members {
		require.NoError(t, m.JoinConsolidation(aggregate.ID()))
	}
	cmd, err := commands.NewCancelConsolidationCommand(aggregate.ID(), ownerID, false)
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	consolidationRepo := new(MockConsolidationRepository)
	uow := new(MockConsolidationUoW)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("ConsolidationRepository").Return(consolidationRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	consolidationRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	packageRepo.On("GetMany", mock.Anything, aggregate.PackageIDs()).Return(members, nil).Once()
	packageRepo.On("Update", mock.Anything, mock.AnythingOfType("*pack.Package")).Return(nil).Times(2)
	consolidationRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelConsolidationCommandHandler(factory,
		services.NewOwnershipGuard(), permissiveDispatcher())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, consolidation.Cancelled, aggregate.Status())
	for _, m := range members {
		assert.Equal(t, pack.Received, m.Status())
		assert.Nil(t, m.ConsolidationID())
	}
}

func TestCancelConsolidationCommandHandler_Handle_StrangerForbidden(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	members := []*pack.Package{
		receivedPackage(t, ownerID, 1.5),
		receivedPackage(t, ownerID, 1.5),
	}
	aggregate := pendingConsolidationFor(t, ownerID, members)
	cmd, err := commands.NewCancelConsolidationCommand(aggregate.ID(), kernel.NewUUID(), false)
	require.NoError(t, err)

	consolidationRepo := new(MockConsolidationRepository)
	uow := new(MockConsolidationUoW)
	uow.On("ConsolidationRepository").Return(consolidationRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	consolidationRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelConsolidationCommandHandler(factory,
		services.NewOwnershipGuard(), permissiveDispatcher())
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, consolidation.Pending, aggregate.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCancelConsolidationCommandHandler_Handle_CustomerCannotCancelProcessing(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	members := []*pack.Package{
		receivedPackage(t, ownerID, 1.5),
		receivedPackage(t, ownerID, 1.5),
	}
	aggregate := pendingConsolidationFor(t, ownerID, members)
	require.NoError(t, aggregate.StartProcessing())
	cmd, err := commands.NewCancelConsolidationCommand(aggregate.ID(), ownerID, false)
	require.NoError(t, err)

	consolidationRepo := new(MockConsolidationRepository)
	uow := new(MockConsolidationUoW)
	uow.On("ConsolidationRepository").Return(consolidationRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	consolidationRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelConsolidationCommandHandler(factory,
		services.NewOwnershipGuard(), permissiveDispatcher())
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, consolidation.Processing, aggregate.Status())
}

func TestCancelConsolidationCommandHandler_Handle_AdminCancelsProcessing(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	members := []*pack.Package{
		receivedPackage(t, ownerID, 1.5),
		receivedPackage(t, ownerID, 1.5),
	}
	aggregate := pendingConsolidationFor(t, ownerID, members)
	require.NoError(t, aggregate.StartProcessing())
	for _, m := range members {
		require.NoError(t, m.JoinConsolidation(aggregate.ID()))
	}
	cmd, err := commands.NewCancelConsolidationCommand(aggregate.ID(), kernel.NewUUID(), true)
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	consolidationRepo := new(MockConsolidationRepository)
	uow := new(MockConsolidationUoW)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("ConsolidationRepository").Return(consolidationRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	consolidationRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	packageRepo.On("GetMany", mock.Anything, aggregate.PackageIDs()).Return(members, nil).Once()
	packageRepo.On("Update", mock.Anything, mock.AnythingOfType("*pack.Package")).Return(nil).Times(2)
	consolidationRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	factory := new(MockConsolidationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelConsolidationCommandHandler(factory,
		services.NewOwnershipGuard(), permissiveDispatcher())
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, consolidation.Cancelled, aggregate.Status())
}
