// Package notificationrepo persists user notifications produced by the
// side-effect dispatcher.
package notificationrepo

import (
	"context"
	"time"

	"forwarding/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationDTO represents the database structure for persisting user
// notifications.
type NotificationDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;index"`
	Type         string
	Title        string
	Message      string
	RelatedID    uuid.UUID `gorm:"type:uuid"`
	RelatedModel string
	Priority     string
	ActionURL    string
	Read         bool `gorm:"default:false"`
	CreatedAt    time.Time
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormNotificationSink implements NotificationSink using GORM.
type GormNotificationSink struct {
	db *gorm.DB
}

// NewGormNotificationSink creates a new GORM notification sink.
func NewGormNotificationSink(db *gorm.DB) *GormNotificationSink {
	return &GormNotificationSink{db: db}
}

// Add inserts one notification row.
func (s *GormNotificationSink) Add(ctx context.Context, notification ports.Notification) error {
	dto := NotificationDTO{
		ID:           uuid.New(),
		UserID:       notification.UserID.Bytes(),
		Type:         notification.Type,
		Title:        notification.Title,
		Message:      notification.Message,
		RelatedID:    notification.RelatedID.Bytes(),
		RelatedModel: notification.RelatedModel,
		Priority:     notification.Priority,
		ActionURL:    notification.ActionURL,
	}

	return s.db.WithContext(ctx).Create(&dto).Error
}
