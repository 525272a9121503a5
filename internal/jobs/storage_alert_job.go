package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"forwarding/internal/core/application/sideeffects"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// StorageAlertJob notifies owners whose packages have sat in the warehouse
// past the free storage window. Runs once a day; storage fees beyond the
// window are billed at shipment time, so the alert is informational.
type StorageAlertJob struct {
	packages   ports.PackageRepository
	dispatcher *sideeffects.Dispatcher
	pricing    services.PricingCalculator
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewStorageAlertJob creates the daily storage alert job.
func NewStorageAlertJob(
	packages ports.PackageRepository,
	dispatcher *sideeffects.Dispatcher,
	pricing services.PricingCalculator,
	logger *slog.Logger,
) *StorageAlertJob {
	return &StorageAlertJob{
		packages:   packages,
		dispatcher: dispatcher,
		pricing:    pricing,
		cron:       cron.New(),
		logger:     logger.With("component", "storage_alert_job"),
	}
}

// Start begins the job, running daily at 06:00.
func (j *StorageAlertJob) Start() error {
	_, err := j.cron.AddFunc("0 6 * * *", func() {
		j.Run(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Storage alert job started (running daily)")
	return nil
}

// Run executes a single alert pass.
func (j *StorageAlertJob) Run(ctx context.Context) {
	freeDays := j.pricing.Policy().StorageFreeDays

	overdue, err := j.packages.GetStoredLongerThan(ctx, freeDays)
	if err != nil {
		j.logger.ErrorContext(ctx, "Storage alert scan failed", "error", err)
		return
	}

	for _, aggregate := range overdue {
		j.dispatcher.Notify(ctx, ports.Notification{
			UserID: aggregate.Owner().ID(),
			Type:   "storage_fee_accruing",
			Title:  "Package storage fees accruing",
			Message: fmt.Sprintf(
				"Your package %s has been in storage beyond the %d free days. Daily storage fees now apply.",
				aggregate.TrackingNumber(), freeDays),
			RelatedID:    aggregate.ID(),
			RelatedModel: "package",
			Priority:     ports.NotificationPriorityHigh,
		})
	}

	if len(overdue) > 0 {
		j.logger.InfoContext(ctx, "Storage alerts dispatched", "count", len(overdue))
	}
}

// Stop stops the job.
func (j *StorageAlertJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Storage alert job stopped")
}
