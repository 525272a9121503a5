// Package jobs provides scheduled background tasks for the forwarding system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the forwarding service.
//
// # Available Jobs
//
// 1. ReconciliationSweepJob - Runs every minute to relink consolidated packages that lost their consolidation reference
// 2. StorageAlertJob - Runs daily to notify owners whose packages exceeded the free storage window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(reconcileHandler, packageRepo, dispatcher, pricing, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The reconciliation sweep repairs each package in its own transaction and logs per-package failures
// - The storage alert job logs scan failures and dispatches notifications best effort
// - Failed job starts will stop any already running jobs
package jobs
