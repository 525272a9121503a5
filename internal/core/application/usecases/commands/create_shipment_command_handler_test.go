package commands_test

import (
	"strings"
	"testing"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pack"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validShipmentCommand(t *testing.T, actorID kernel.UUID, packageIDs []kernel.UUID) commands.CreateShipmentCommand {
	t.Helper()

	destination, err := shipment.NewDestination("Maria Silva", "Rua das Flores 123",
		"Sao Paulo", "SP", "01310-100", "BR")
	require.NoError(t, err)
	declared, err := kernel.NewMoney(250, "USD")
	require.NoError(t, err)

	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), actorID, packageIDs,
		"dhl", "express", destination,
		shipment.CustomsInfo{ContentsType: "merchandise", Description: "electronics", DeclaredValue: declared})
	require.NoError(t, err)
	return cmd
}

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	packages := []*pack.Package{
		receivedPackage(t, ownerID, 1.0),
		receivedPackage(t, ownerID, 1.5),
	}
	ids := []kernel.UUID{packages[0].ID(), packages[1].ID()}
	cmd := validShipmentCommand(t, ownerID, ids)

	packageRepo := new(MockPackageRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	packageRepo.On("GetMany", mock.Anything, ids).Return(packages, nil).Once()
	shipmentRepo.On("Add", mock.Anything, mock.MatchedBy(func(s *shipment.Shipment) bool {
		// 2.5 kg actual vs 30*20*20/5000 = 2.4 volumetric
		return s.Status() == shipment.Pending &&
			assert.InDelta(t, 2.5, s.Weight().Kilograms(), 0.001) &&
			assert.InDelta(t, 40.0, s.Cost().Shipping, 0.001) && // 20 + 2.5*8
			assert.InDelta(t, 3.0, s.Cost().Insurance, 0.001) && // 250 declared, 2 steps
			strings.HasPrefix(s.TrackingNumber(), "FWD") &&
			len(s.Events()) == 1 &&
			s.Events()[0].Location() == "Warehouse - USA"
	})).Return(nil).Once()
	packageRepo.On("Update", mock.Anything, mock.AnythingOfType("*pack.Package")).Return(nil).Times(2)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, testPricing(),
		services.NewOwnershipGuard(), permissiveDispatcher())
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	for _, p := range packages {
		assert.Equal(t, pack.Shipped, p.Status())
	}
	shipmentRepo.AssertExpectations(t)
	packageRepo.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_StrangerForbidden(t *testing.T) {
	ctx := t.Context()
	theirs := receivedPackage(t, kernel.NewUUID(), 1.5)
	ids := []kernel.UUID{theirs.ID()}
	cmd := validShipmentCommand(t, kernel.NewUUID(), ids)

	packageRepo := new(MockPackageRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	packageRepo.On("GetMany", mock.Anything, ids).Return([]*pack.Package{theirs}, nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, testPricing(),
		services.NewOwnershipGuard(), permissiveDispatcher())
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, pack.Received, theirs.Status())
	shipmentRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateShipmentCommandHandler_Handle_DeliveredPackageConflict(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	delivered := receivedPackage(t, ownerID, 1.5)
	require.NoError(t, delivered.MarkShipped())
	require.NoError(t, delivered.MarkDelivered())
	ids := []kernel.UUID{delivered.ID()}
	cmd := validShipmentCommand(t, ownerID, ids)

	packageRepo := new(MockPackageRepository)
	uow := new(MockShipmentUoW)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	packageRepo.On("GetMany", mock.Anything, ids).Return([]*pack.Package{delivered}, nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, testPricing(),
		services.NewOwnershipGuard(), permissiveDispatcher())
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateShipmentCommandHandler_Handle_UnknownCarrier(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	p := receivedPackage(t, ownerID, 1.5)
	ids := []kernel.UUID{p.ID()}
	destination, err := shipment.NewDestination("", "1 High St", "", "", "", "GB")
	require.NoError(t, err)
	declared, err := kernel.NewMoney(50, "USD")
	require.NoError(t, err)
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), ownerID, ids,
		"pigeon", "standard", destination, shipment.CustomsInfo{DeclaredValue: declared})
	require.NoError(t, err)

	packageRepo := new(MockPackageRepository)
	uow := new(MockShipmentUoW)
	uow.On("PackageRepository").Return(packageRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	packageRepo.On("GetMany", mock.Anything, ids).Return([]*pack.Package{p}, nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, testPricing(),
		services.NewOwnershipGuard(), permissiveDispatcher())
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, pack.Received, p.Status())
}
