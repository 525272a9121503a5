package cmd

import (
	"log/slog"

	httpserver "forwarding/internal/adapters/in/http"
	"forwarding/internal/adapters/out/dhl"
	"forwarding/internal/adapters/out/objectstore"
	"forwarding/internal/adapters/out/postgres"
	"forwarding/internal/adapters/out/postgres/ledgerrepo"
	"forwarding/internal/adapters/out/postgres/notificationrepo"
	"forwarding/internal/adapters/out/ratecache"
	"forwarding/internal/core/application/sideeffects"
	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
	"forwarding/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	dispatcher *sideeffects.Dispatcher
	pricing    services.PricingCalculator
	ownership  services.OwnershipGuard
	carrier    ports.CarrierLabelService
	photoStore *objectstore.MinioPhotoStore
	rateCache  ports.RateCache
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	photoStore, err := objectstore.NewMinioPhotoStore(config.MinioEndpoint,
		config.MinioAccessKey, config.MinioSecretKey, config.MinioBucket, config.MinioUseSSL)
	if err != nil {
		return CompositionRoot{}, err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: sideeffects.NewDispatcher(
			notificationrepo.NewGormNotificationSink(gormDB),
			ledgerrepo.NewGormTransactionLedger(gormDB),
			logger,
		),
		pricing:    services.NewPricingCalculator(defaultPricingPolicy()),
		ownership:  services.NewOwnershipGuard(),
		carrier:    dhl.NewClient(config.DhlBaseURL, config.DhlAPIKey),
		photoStore: photoStore,
		rateCache:  ratecache.NewRedisRateCache(redisClient),
		logger:     logger,
	}, nil
}

// defaultPricingPolicy is the fee schedule applied at startup. Amounts are
// in USD; DimFactor 5000 is the usual divisor for international air freight.
func defaultPricingPolicy() services.PricingPolicy {
	return services.PricingPolicy{
		Currency: "USD",

		ConsolidationBaseFee:       5.00,
		ConsolidationPerPackageFee: 1.00,
		ProtectionFee:              3.00,
		UnpackedPhotosFee:          2.00,

		InsuranceFreeTier: 100.00,
		InsuranceStepSize: 100.00,
		InsuranceStepFee:  1.50,

		ConsolidationETADays: 3,
		ShippingETADays:      5,
		StorageFreeDays:      30,

		DimFactor: 5000,

		CarrierRates: map[string]services.CarrierRate{
			"dhl":   {BaseFee: 25.00, PerKg: 8.00},
			"fedex": {BaseFee: 28.00, PerKg: 8.50},
			"ups":   {BaseFee: 26.00, PerKg: 8.25},
		},

		WarehouseLocation: "Warehouse - USA",
	}
}

func (c *CompositionRoot) CreateReceivePackageCommandHandler() commands.ReceivePackageCommandHandler {
	var f commands.PackageUoWFactory = FuncPackageUoWFactory(func() commands.PackageUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReceivePackageCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateAttachPackagePhotoCommandHandler() commands.AttachPackagePhotoCommandHandler {
	var f commands.PackageUoWFactory = FuncPackageUoWFactory(func() commands.PackageUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAttachPackagePhotoCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdatePackageStatusCommandHandler() commands.UpdatePackageStatusCommandHandler {
	var f commands.ConsolidationUoWFactory = FuncConsolidationUoWFactory(func() commands.ConsolidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdatePackageStatusCommandHandler(f, c.CreateReconcilePackageCommandHandler())
}

func (c *CompositionRoot) CreateReconcilePackageCommandHandler() commands.ReconcilePackageCommandHandler {
	var f commands.ConsolidationUoWFactory = FuncConsolidationUoWFactory(func() commands.ConsolidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcilePackageCommandHandler(f, c.pricing, c.dispatcher)
}

func (c *CompositionRoot) CreateCreateConsolidationCommandHandler() commands.CreateConsolidationCommandHandler {
	var f commands.ConsolidationUoWFactory = FuncConsolidationUoWFactory(func() commands.ConsolidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateConsolidationCommandHandler(f, c.pricing, c.ownership, c.dispatcher)
}

func (c *CompositionRoot) CreateCompleteConsolidationCommandHandler() commands.CompleteConsolidationCommandHandler {
	var f commands.ConsolidationUoWFactory = FuncConsolidationUoWFactory(func() commands.ConsolidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteConsolidationCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateCancelConsolidationCommandHandler() commands.CancelConsolidationCommandHandler {
	var f commands.ConsolidationUoWFactory = FuncConsolidationUoWFactory(func() commands.ConsolidationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelConsolidationCommandHandler(f, c.ownership, c.dispatcher)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.pricing, c.ownership, c.dispatcher)
}

func (c *CompositionRoot) CreateCreateCarrierLabelCommandHandler() commands.CreateCarrierLabelCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCarrierLabelCommandHandler(f, c.carrier, c.ownership, c.dispatcher)
}

func (c *CompositionRoot) CreateUpdateShipmentStatusCommandHandler() commands.UpdateShipmentStatusCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateShipmentStatusCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateGetPackagesByOwnerQueryHandler() queries.GetPackagesByOwnerQueryHandler {
	return queries.NewGetPackagesByOwnerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentTrackingQueryHandler() queries.GetShipmentTrackingQueryHandler {
	return queries.NewGetShipmentTrackingQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the echo server with every handler wired in.
func (c *CompositionRoot) CreateHTTPServer() *httpserver.Server {
	return httpserver.NewServer(
		httpserver.Handlers{
			ReceivePackage:        c.CreateReceivePackageCommandHandler(),
			AttachPackagePhoto:    c.CreateAttachPackagePhotoCommandHandler(),
			UpdatePackageStatus:   c.CreateUpdatePackageStatusCommandHandler(),
			ReconcilePackage:      c.CreateReconcilePackageCommandHandler(),
			CreateConsolidation:   c.CreateCreateConsolidationCommandHandler(),
			CompleteConsolidation: c.CreateCompleteConsolidationCommandHandler(),
			CancelConsolidation:   c.CreateCancelConsolidationCommandHandler(),
			CreateShipment:        c.CreateCreateShipmentCommandHandler(),
			CreateCarrierLabel:    c.CreateCreateCarrierLabelCommandHandler(),
			UpdateShipmentStatus:  c.CreateUpdateShipmentStatusCommandHandler(),
			PackagesByOwner:       c.CreateGetPackagesByOwnerQueryHandler(),
			ShipmentTracking:      c.CreateGetShipmentTrackingQueryHandler(),
		},
		c.photoStore,
		c.carrier,
		c.rateCache,
	)
}

// CreateJobManager builds the background job manager. Job reads go through a
// unit of work created outside any transaction, which queries the base
// connection directly.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	packages := c.uowFactory.Create().PackageRepository()
	return jobs.NewJobManager(
		c.CreateReconcilePackageCommandHandler(),
		packages,
		c.dispatcher,
		c.pricing,
		c.logger,
	)
}

// PhotoStore exposes the object store for startup bucket provisioning.
func (c *CompositionRoot) PhotoStore() *objectstore.MinioPhotoStore {
	return c.photoStore
}

type FuncPackageUoWFactory func() commands.PackageUoW

func (f FuncPackageUoWFactory) Create() commands.PackageUoW {
	return f()
}

type FuncConsolidationUoWFactory func() commands.ConsolidationUoW

func (f FuncConsolidationUoWFactory) Create() commands.ConsolidationUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}
