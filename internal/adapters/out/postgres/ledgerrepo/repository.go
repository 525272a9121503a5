// Package ledgerrepo persists pending charges recorded by the side-effect
// dispatcher. Payment capture happens outside this system.
package ledgerrepo

import (
	"context"
	"time"

	"forwarding/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerEntryDTO represents the database structure for persisting ledger
// entries.
type LedgerEntryDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;index"`
	Kind         string
	Amount       float64
	Currency     string
	Status       string `gorm:"index"`
	Description  string
	RelatedID    uuid.UUID `gorm:"type:uuid"`
	RelatedModel string
	CreatedAt    time.Time
}

// TableName specifies the database table name for ledger entries.
func (LedgerEntryDTO) TableName() string {
	return "ledger_entries"
}

// GormTransactionLedger implements TransactionLedger using GORM.
type GormTransactionLedger struct {
	db *gorm.DB
}

// NewGormTransactionLedger creates a new GORM transaction ledger.
func NewGormTransactionLedger(db *gorm.DB) *GormTransactionLedger {
	return &GormTransactionLedger{db: db}
}

// Add inserts one ledger entry row.
func (l *GormTransactionLedger) Add(ctx context.Context, entry ports.LedgerEntry) error {
	dto := LedgerEntryDTO{
		ID:           uuid.New(),
		UserID:       entry.UserID.Bytes(),
		Kind:         entry.Kind,
		Amount:       entry.Amount,
		Currency:     entry.Currency,
		Status:       entry.Status,
		Description:  entry.Description,
		RelatedID:    entry.RelatedID.Bytes(),
		RelatedModel: entry.RelatedModel,
	}

	return l.db.WithContext(ctx).Create(&dto).Error
}
