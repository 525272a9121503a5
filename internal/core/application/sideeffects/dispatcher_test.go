package sideeffects_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"forwarding/internal/core/application/sideeffects"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockNotificationSink struct {
	mock.Mock
}

func (m *MockNotificationSink) Add(ctx context.Context, notification ports.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

type MockTransactionLedger struct {
	mock.Mock
}

func (m *MockTransactionLedger) Add(ctx context.Context, entry ports.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func TestDispatcherNotify(t *testing.T) {
	t.Run("swallows sink failures", func(t *testing.T) {
		sink := &MockNotificationSink{}
		ledger := &MockTransactionLedger{}
		sink.On("Add", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

		d := sideeffects.NewDispatcher(sink, ledger, slog.Default())
		d.Notify(t.Context(), ports.Notification{
			UserID:   kernel.NewUUID(),
			Type:     "package_received",
			Priority: ports.NotificationPriorityNormal,
		})

		sink.AssertExpectations(t)
	})
}

func TestDispatcherRecordPendingCharge(t *testing.T) {
	t.Run("forces pending status", func(t *testing.T) {
		sink := &MockNotificationSink{}
		ledger := &MockTransactionLedger{}
		ledger.On("Add", mock.Anything, mock.MatchedBy(func(e ports.LedgerEntry) bool {
			return e.Status == ports.LedgerStatusPending
		})).Return(nil)

		d := sideeffects.NewDispatcher(sink, ledger, slog.Default())
		d.RecordPendingCharge(t.Context(), ports.LedgerEntry{
			UserID:   kernel.NewUUID(),
			Kind:     "consolidation",
			Amount:   12,
			Currency: "USD",
			Status:   "completed",
		})

		ledger.AssertExpectations(t)
	})

	t.Run("swallows ledger failures", func(t *testing.T) {
		sink := &MockNotificationSink{}
		ledger := &MockTransactionLedger{}
		ledger.On("Add", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

		d := sideeffects.NewDispatcher(sink, ledger, slog.Default())
		d.RecordPendingCharge(t.Context(), ports.LedgerEntry{UserID: kernel.NewUUID()})

		ledger.AssertExpectations(t)
	})
}
