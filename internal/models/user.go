package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account of the identity provider. Every other row is owned by
// exactly one user.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserProfile holds display preferences captured at sign-up.
type UserProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Email          string    `gorm:"not null" json:"email"`
	FullName       string    `json:"full_name"`
	Country        string    `gorm:"not null" json:"country"`
	CurrencyCode   string    `gorm:"type:varchar(3);not null" json:"currency_code"`
	CurrencySymbol string    `gorm:"type:varchar(8);not null" json:"currency_symbol"`
	CreatedAt      time.Time `json:"created_at"`
}

func (UserProfile) TableName() string {
	return "users_profile"
}

type LegalAcceptance struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TermsAccepted   bool      `gorm:"not null" json:"terms_accepted"`
	PrivacyAccepted bool      `gorm:"not null" json:"privacy_accepted"`
	AcceptedAt      time.Time `gorm:"not null" json:"accepted_at"`
}

func (LegalAcceptance) TableName() string {
	return "legal_acceptance"
}
