// Package postgres provides the GORM-based Unit of Work implementation that
// coordinates package, consolidation, and shipment persistence within a single
// database transaction.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.PackageRepository().Add(ctx, pkg); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each business operation gets its own UnitOfWork instance; instances are not
// safe for concurrent use. Repositories returned before Begin operate on the
// bare connection, repositories returned after Begin operate inside the
// transaction.
package postgres

import (
	"context"

	"forwarding/internal/adapters/out/postgres/consolidationrepo"
	"forwarding/internal/adapters/out/postgres/packagerepo"
	"forwarding/internal/adapters/out/postgres/shipmentrepo"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// Kept for outbox-style post-commit processing.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. Each Create call returns a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to the given database
// connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction across the package,
// consolidation, and shipment repositories and tracks the aggregates
// modified within it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction. Calling Begin again on an
// instance with an open transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or if the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or if the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// PackageRepository returns a package repository bound to the current
// transaction if one is active, otherwise to the bare connection.
func (uow *GormUnitOfWork) PackageRepository() ports.PackageRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return packagerepo.NewGormPackageRepository(db, uow)
}

// ConsolidationRepository returns a consolidation repository bound to the
// current transaction if one is active, otherwise to the bare connection.
func (uow *GormUnitOfWork) ConsolidationRepository() ports.ConsolidationRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return consolidationrepo.NewGormConsolidationRepository(db, uow)
}

// ShipmentRepository returns a shipment repository bound to the current
// transaction if one is active, otherwise to the bare connection.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return shipmentrepo.NewGormShipmentRepository(db, uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by the repositories on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
