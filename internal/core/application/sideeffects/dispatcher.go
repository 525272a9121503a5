// Package sideeffects delivers the notifications and pending charges that
// lifecycle operations produce. Side effects are best-effort: a failed
// notification or ledger write is logged and swallowed, never failing the
// operation that triggered it.
package sideeffects

import (
	"context"
	"log/slog"

	"forwarding/internal/core/ports"
)

// Dispatcher records notifications and pending charges outside the
// triggering operation's happy path.
type Dispatcher struct {
	notifications ports.NotificationSink
	ledger        ports.TransactionLedger
	logger        *slog.Logger
}

// NewDispatcher creates a side-effect dispatcher.
func NewDispatcher(notifications ports.NotificationSink, ledger ports.TransactionLedger, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		ledger:        ledger,
		logger:        logger,
	}
}

// Notify records a user notification. Failures are logged and swallowed.
func (d *Dispatcher) Notify(ctx context.Context, notification ports.Notification) {
	if err := d.notifications.Add(ctx, notification); err != nil {
		d.logger.Error("notification dispatch failed",
			"type", notification.Type,
			"userId", notification.UserID.String(),
			"error", err)
	}
}

// RecordPendingCharge records a pending ledger entry. Failures are logged
// and swallowed.
func (d *Dispatcher) RecordPendingCharge(ctx context.Context, entry ports.LedgerEntry) {
	entry.Status = ports.LedgerStatusPending
	if err := d.ledger.Add(ctx, entry); err != nil {
		d.logger.Error("ledger entry dispatch failed",
			"kind", entry.Kind,
			"userId", entry.UserID.String(),
			"error", err)
	}
}
