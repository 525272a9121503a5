package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"forwarding/internal/core/application/sideeffects"
	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/model/consolidation"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pack"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPackageRepository struct{ mock.Mock }

func (m *MockPackageRepository) Add(ctx context.Context, aggregate *pack.Package) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockPackageRepository) Update(ctx context.Context, aggregate *pack.Package) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockPackageRepository) Get(ctx context.Context, id kernel.UUID) (*pack.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pack.Package), args.Error(1)
}
func (m *MockPackageRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*pack.Package, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pack.Package), args.Error(1)
}
func (m *MockPackageRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*pack.Package, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pack.Package), args.Error(1)
}
func (m *MockPackageRepository) GetStoredLongerThan(ctx context.Context, days int) ([]*pack.Package, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pack.Package), args.Error(1)
}
func (m *MockPackageRepository) GetUnlinkedConsolidated(ctx context.Context) ([]*pack.Package, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pack.Package), args.Error(1)
}

type MockConsolidationRepository struct{ mock.Mock }

func (m *MockConsolidationRepository) Add(ctx context.Context, aggregate *consolidation.Consolidation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockConsolidationRepository) Update(ctx context.Context, aggregate *consolidation.Consolidation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockConsolidationRepository) Get(ctx context.Context, id kernel.UUID) (*consolidation.Consolidation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consolidation.Consolidation), args.Error(1)
}
func (m *MockConsolidationRepository) GetActiveByPackage(ctx context.Context, packageID kernel.UUID) (*consolidation.Consolidation, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consolidation.Consolidation), args.Error(1)
}
func (m *MockConsolidationRepository) GetFirstPendingByOwner(ctx context.Context, ownerID kernel.UUID) (*consolidation.Consolidation, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consolidation.Consolidation), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

type MockPackageUoW struct{ mock.Mock }

func (m *MockPackageUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPackageUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPackageUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPackageUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}

type MockPackageUoWFactory struct{ mock.Mock }

func (m *MockPackageUoWFactory) Create() commands.PackageUoW {
	args := m.Called()
	return args.Get(0).(commands.PackageUoW)
}

type MockConsolidationUoW struct{ mock.Mock }

func (m *MockConsolidationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockConsolidationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockConsolidationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockConsolidationUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}
func (m *MockConsolidationUoW) ConsolidationRepository() ports.ConsolidationRepository {
	args := m.Called()
	return args.Get(0).(ports.ConsolidationRepository)
}

type MockConsolidationUoWFactory struct{ mock.Mock }

func (m *MockConsolidationUoWFactory) Create() commands.ConsolidationUoW {
	args := m.Called()
	return args.Get(0).(commands.ConsolidationUoW)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockShipmentUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}
func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockCarrierLabelService struct{ mock.Mock }

func (m *MockCarrierLabelService) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}
func (m *MockCarrierLabelService) CreateLabel(ctx context.Context, aggregate *shipment.Shipment) (ports.Label, error) {
	args := m.Called(ctx, aggregate)
	return args.Get(0).(ports.Label), args.Error(1)
}
func (m *MockCarrierLabelService) GetRates(ctx context.Context, req ports.RateRequest) ([]ports.Rate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Rate), args.Error(1)
}

type MockNotificationSink struct{ mock.Mock }

func (m *MockNotificationSink) Add(ctx context.Context, notification ports.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

type MockTransactionLedger struct{ mock.Mock }

func (m *MockTransactionLedger) Add(ctx context.Context, entry ports.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// permissiveDispatcher returns a dispatcher whose sinks accept everything.
func permissiveDispatcher() *sideeffects.Dispatcher {
	sink := new(MockNotificationSink)
	sink.On("Add", mock.Anything, mock.Anything).Return(nil).Maybe()
	ledger := new(MockTransactionLedger)
	ledger.On("Add", mock.Anything, mock.Anything).Return(nil).Maybe()
	return sideeffects.NewDispatcher(sink, ledger, slog.Default())
}

func testPricing() services.PricingCalculator {
	return services.NewPricingCalculator(services.PricingPolicy{
		Currency:                   "USD",
		ConsolidationBaseFee:       5,
		ConsolidationPerPackageFee: 2,
		ProtectionFee:              3,
		UnpackedPhotosFee:          2,
		InsuranceFreeTier:          100,
		InsuranceStepSize:          100,
		InsuranceStepFee:           1.5,
		ConsolidationETADays:       2,
		ShippingETADays:            7,
		StorageFreeDays:            30,
		DimFactor:                  5000,
		CarrierRates: map[string]services.CarrierRate{
			"dhl": {BaseFee: 20, PerKg: 8},
		},
		WarehouseLocation: "Warehouse - USA",
	})
}

// receivedPackage builds a package in received status owned by ownerID.
func receivedPackage(t *testing.T, ownerID kernel.UUID, kg float64) *pack.Package {
	t.Helper()

	owner, err := kernel.OwnerRefFromID(ownerID)
	require.NoError(t, err)
	weight, err := kernel.NewWeight(kg, kernel.Kilograms)
	require.NoError(t, err)
	dims, err := kernel.NewDimensions(30, 20, 10, kernel.Centimeters)
	require.NoError(t, err)
	value, err := kernel.NewMoney(80, "USD")
	require.NoError(t, err)

	p, err := pack.NewPackage(kernel.NewUUID(), owner, "TN-"+kernel.NewUUID().String(),
		"Amazon", "gadgets", weight, dims, value, time.Now())
	require.NoError(t, err)
	return p
}

// unlinkedConsolidatedPackage builds a package forced into consolidated
// status with no consolidation link.
func unlinkedConsolidatedPackage(t *testing.T, ownerID kernel.UUID) *pack.Package {
	t.Helper()

	p := receivedPackage(t, ownerID, 1.5)
	require.NoError(t, p.ForceStatus(pack.Consolidated))
	require.True(t, p.NeedsReconciliation())
	return p
}

// pendingConsolidationFor builds a pending consolidation owned by ownerID
// over the given packages.
func pendingConsolidationFor(t *testing.T, ownerID kernel.UUID, packages []*pack.Package) *consolidation.Consolidation {
	t.Helper()

	owner, err := kernel.OwnerRefFromID(ownerID)
	require.NoError(t, err)
	ids := make([]kernel.UUID, 0, len(packages))
	var before consolidation.Totals
	for _, p := range packages {
		ids = append(ids, p.ID())
		before.WeightKg += p.Weight().Kilograms()
		before.VolumeCm3 += p.Dimensions().VolumeCm3()
	}

	c, err := consolidation.NewConsolidation(kernel.NewUUID(), owner, ids,
		consolidation.Preferences{}, "", consolidation.Cost{Base: 9, Total: 9, Currency: "USD"},
		before, time.Now().Add(48*time.Hour))
	require.NoError(t, err)
	return c
}

// pendingShipmentFor builds a pending shipment owned by ownerID over the
// given package ids.
func pendingShipmentFor(t *testing.T, ownerID kernel.UUID, packageIDs []kernel.UUID) *shipment.Shipment {
	t.Helper()

	owner, err := kernel.OwnerRefFromID(ownerID)
	require.NoError(t, err)
	weight, err := kernel.NewWeight(2.5, kernel.Kilograms)
	require.NoError(t, err)
	dims, err := kernel.NewDimensions(40, 30, 20, kernel.Centimeters)
	require.NoError(t, err)
	destination, err := shipment.NewDestination("Maria Silva", "Rua das Flores 123",
		"Sao Paulo", "SP", "01310-100", "BR")
	require.NoError(t, err)
	declared, err := kernel.NewMoney(250, "USD")
	require.NoError(t, err)

	s, err := shipment.NewShipment(kernel.NewUUID(), owner, packageIDs, "dhl", "express",
		destination, shipment.CustomsInfo{ContentsType: "merchandise", DeclaredValue: declared},
		shipment.Cost{Shipping: 45, Insurance: 3, Total: 48, Currency: "USD"},
		weight, dims, "FWD1724999999123456789", time.Now().Add(7*24*time.Hour))
	require.NoError(t, err)
	return s
}
