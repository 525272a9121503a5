package ports

import (
	"context"

	"forwarding/internal/core/domain/model/kernel"
)

// Notification priorities.
const (
	NotificationPriorityNormal = "normal"
	NotificationPriorityHigh   = "high"
)

// Notification is a user-facing message produced as a side effect of a
// lifecycle operation.
type Notification struct {
	UserID       kernel.UUID
	Type         string
	Title        string
	Message      string
	RelatedID    kernel.UUID
	RelatedModel string
	Priority     string
	ActionURL    string
}

// NotificationSink records user notifications. Failures are logged and
// swallowed by the side-effect dispatcher; they never fail the triggering
// operation.
type NotificationSink interface {
	Add(ctx context.Context, notification Notification) error
}
