package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type TenantStatus string

const (
	TenantStatusActive            TenantStatus = "Active"
	TenantStatusMovedOut          TenantStatus = "Moved Out"
	TenantStatusLeftWithoutNotice TenantStatus = "Left Without Notice"
)

// TenantStatuses lists every status a tenant can be in.
var TenantStatuses = []TenantStatus{
	TenantStatusActive,
	TenantStatusMovedOut,
	TenantStatusLeftWithoutNotice,
}

func (s TenantStatus) Valid() bool {
	for _, v := range TenantStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Tenant represents a person renting from the owning user, with the terms
// rent charges are generated from.
type Tenant struct {
	ID                    uint                        `gorm:"primaryKey" json:"id"`
	UserID                uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	TenantName            string                      `gorm:"not null" json:"tenant_name"`
	MonthlyRent           decimal.Decimal             `gorm:"type:decimal(12,2);not null" json:"monthly_rent"`
	RentDueDay            int                         `gorm:"not null" json:"rent_due_day"`
	Status                TenantStatus                `gorm:"type:varchar(32);not null;default:'Active';index" json:"status"`
	MovedOutDate          *time.Time                  `gorm:"type:date" json:"moved_out_date,omitempty"`
	LeftWithoutNoticeDate *time.Time                  `gorm:"type:date" json:"left_without_notice_date,omitempty"`
	Utilities             datatypes.JSONSlice[string] `json:"utilities"`
	CreatedAt             time.Time                   `json:"created_at"`
	UpdatedAt             time.Time                   `json:"updated_at"`
}

func (Tenant) TableName() string {
	return "tenants"
}
