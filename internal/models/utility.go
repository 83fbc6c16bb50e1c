package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UtilityType string

const (
	UtilityElectricity UtilityType = "Electricity"
	UtilityWater       UtilityType = "Water"
	UtilityInternet    UtilityType = "Internet"
	UtilityGas         UtilityType = "Gas"
	UtilityTrash       UtilityType = "Trash"
)

// UtilityTypes is the fixed set of utilities a tenant can subscribe to and be
// charged for.
var UtilityTypes = []UtilityType{
	UtilityElectricity,
	UtilityWater,
	UtilityInternet,
	UtilityGas,
	UtilityTrash,
}

func (u UtilityType) Valid() bool {
	for _, v := range UtilityTypes {
		if u == v {
			return true
		}
	}
	return false
}

// UtilityCharge is a one-off utility bill. Every row is mirrored by a
// negative LedgerEntry.
type UtilityCharge struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	TenantID    uint            `gorm:"not null;index" json:"tenant_id"`
	UtilityType UtilityType     `gorm:"type:varchar(32);not null" json:"utility_type"`
	ChargeDate  time.Time       `gorm:"type:date;not null;index" json:"charge_date"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Notes       string          `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (UtilityCharge) TableName() string {
	return "utility_charges"
}
