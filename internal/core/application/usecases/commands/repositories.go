// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"forwarding/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PackageRepoFactory provides access to the package repository within a transaction.
	PackageRepoFactory interface {
		PackageRepository() ports.PackageRepository
	}

	// ConsolidationRepoFactory provides access to the consolidation repository within a transaction.
	ConsolidationRepoFactory interface {
		ConsolidationRepository() ports.ConsolidationRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// PackageUoW manages transactions for package-only operations.
	PackageUoW interface {
		TxManager
		PackageRepoFactory
	}

	// PackageUoWFactory creates new package unit of work instances.
	PackageUoWFactory interface {
		Create() PackageUoW
	}

	// ConsolidationUoW manages transactions for operations spanning
	// consolidations and their member packages.
	ConsolidationUoW interface {
		TxManager
		ConsolidationRepoFactory
		PackageRepoFactory
	}

	// ConsolidationUoWFactory creates new consolidation unit of work instances.
	ConsolidationUoWFactory interface {
		Create() ConsolidationUoW
	}

	// ShipmentUoW manages transactions for operations spanning shipments
	// and their member packages.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		PackageRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}
)
