package jobs

import (
	"context"
	"log/slog"

	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ReconciliationSweepJob periodically repairs packages in consolidated
// status that lost their consolidation link. Each package is reconciled in
// its own transaction, so one failure never blocks the rest of the sweep.
type ReconciliationSweepJob struct {
	handler  commands.ReconcilePackageCommandHandler
	packages ports.PackageRepository
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReconciliationSweepJob creates the job. It scans with the package
// repository and delegates each repair to ReconcilePackageCommandHandler.
func NewReconciliationSweepJob(
	handler commands.ReconcilePackageCommandHandler,
	packages ports.PackageRepository,
	logger *slog.Logger,
) *ReconciliationSweepJob {
	return &ReconciliationSweepJob{
		handler:  handler,
		packages: packages,
		cron:     cron.New(),
		logger:   logger.With("component", "reconciliation_sweep_job"),
	}
}

// Start begins the sweep, running every minute.
func (j *ReconciliationSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		j.Run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation sweep started (running every minute)")
	return nil
}

// Run executes a single sweep pass.
func (j *ReconciliationSweepJob) Run(ctx context.Context) {
	unlinked, err := j.packages.GetUnlinkedConsolidated(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Reconciliation sweep scan failed", "error", err)
		return
	}

	for _, aggregate := range unlinked {
		cmd, err := commands.NewReconcilePackageCommand(aggregate.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Reconciliation command rejected",
				"packageId", aggregate.ID().String(), "error", err)
			continue
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Package reconciliation failed",
				"packageId", aggregate.ID().String(), "error", err)
		}
	}
}

// Stop stops the sweep.
func (j *ReconciliationSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reconciliation sweep stopped")
}
