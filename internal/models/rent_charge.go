package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentCharge is the rent owed by a tenant for one billing period. There is at
// most one row per (tenant_id, charge_month).
type RentCharge struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	TenantID    uint            `gorm:"not null;uniqueIndex:uniq_rent_charge_tenant_month,priority:1" json:"tenant_id"`
	ChargeMonth time.Time       `gorm:"type:date;not null;uniqueIndex:uniq_rent_charge_tenant_month,priority:2" json:"charge_month"`
	DueDate     time.Time       `gorm:"type:date;not null;index" json:"due_date"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (RentCharge) TableName() string {
	return "rent_charges"
}
