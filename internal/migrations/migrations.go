// Package migrations holds the schema history of rentledger.
package migrations

import (
	"gorm.io/gorm"

	"rentledger/internal/migration"
	"rentledger/internal/models"
)

// All returns every schema migration of the application.
func All() []*migration.Migration {
	return []*migration.Migration{
		{
			Version: "20250106090000",
			Name:    "create_users",
			Up: func(db *gorm.DB) error {
				return db.AutoMigrate(&models.User{}, &models.UserProfile{}, &models.LegalAcceptance{})
			},
			Down: func(db *gorm.DB) error {
				return db.Migrator().DropTable(&models.LegalAcceptance{}, &models.UserProfile{}, &models.User{})
			},
		},
		{
			Version: "20250106090100",
			Name:    "create_tenants",
			Up: func(db *gorm.DB) error {
				return db.AutoMigrate(&models.Tenant{})
			},
			Down: func(db *gorm.DB) error {
				return db.Migrator().DropTable(&models.Tenant{})
			},
		},
		{
			Version: "20250106090200",
			Name:    "create_rent_charges",
			Up: func(db *gorm.DB) error {
				return db.AutoMigrate(&models.RentCharge{})
			},
			Down: func(db *gorm.DB) error {
				return db.Migrator().DropTable(&models.RentCharge{})
			},
		},
		{
			Version: "20250106090300",
			Name:    "create_utility_charges_and_ledger_entries",
			Up: func(db *gorm.DB) error {
				return db.AutoMigrate(&models.UtilityCharge{}, &models.LedgerEntry{})
			},
			Down: func(db *gorm.DB) error {
				return db.Migrator().DropTable(&models.LedgerEntry{}, &models.UtilityCharge{})
			},
		},
	}
}

// NewMigrator returns a migrator loaded with All.
func NewMigrator(db *gorm.DB) *migration.Migrator {
	return migration.NewMigrator(db, All()...)
}
