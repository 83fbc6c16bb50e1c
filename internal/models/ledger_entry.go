package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger row. The set is open; charge and payment are
// the ones written today.
type EntryType string

const (
	EntryTypeCharge  EntryType = "charge"
	EntryTypePayment EntryType = "payment"
)

const PaymentCategory = "Payment"

// LedgerEntry is one signed movement on a tenant's account. Positive amounts
// are money received, negative amounts are money owed. Rows are append-only.
type LedgerEntry struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	TenantID  uint            `gorm:"not null;index:ix_ledger_tenant_date,priority:1" json:"tenant_id"`
	EntryDate time.Time       `gorm:"type:date;not null;index:ix_ledger_tenant_date,priority:2" json:"entry_date"`
	EntryType EntryType       `gorm:"type:varchar(32);not null" json:"entry_type"`
	Category  string          `gorm:"not null" json:"category"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Notes     string          `gorm:"type:text" json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
