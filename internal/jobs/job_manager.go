package jobs

import (
	"fmt"
	"log/slog"

	"forwarding/internal/core/application/sideeffects"
	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reconciliationSweepJob *ReconciliationSweepJob
	storageAlertJob        *StorageAlertJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	reconcileHandler commands.ReconcilePackageCommandHandler,
	packages ports.PackageRepository,
	dispatcher *sideeffects.Dispatcher,
	pricing services.PricingCalculator,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reconciliationSweepJob: NewReconciliationSweepJob(reconcileHandler, packages, logger),
		storageAlertJob:        NewStorageAlertJob(packages, dispatcher, pricing, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start reconciliation sweep job: %w", err)
	}

	if err := jm.storageAlertJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.reconciliationSweepJob.Stop()
		return fmt.Errorf("failed to start storage alert job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reconciliationSweepJob.Stop()
	jm.storageAlertJob.Stop()
}
