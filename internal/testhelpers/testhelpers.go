// Package testhelpers builds migrated sqlite databases and fixtures for tests.
package testhelpers

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentledger/internal/migrations"
	"rentledger/internal/models"
)

var dsnName = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// NewDB returns an in-memory sqlite database private to t with the full
// schema applied. It uses a single connection so the memory database
// survives between queries.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+dsnName.Replace(t.Name())+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	_, err = migrations.NewMigrator(db).Up()
	require.NoError(t, err)
	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTenant inserts an active tenant owned by user.
func CreateTenant(t *testing.T, db *gorm.DB, user *models.User, name string, rent string, dueDay int) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{
		UserID:      user.ID,
		TenantName:  name,
		MonthlyRent: decimal.RequireFromString(rent),
		RentDueDay:  dueDay,
		Status:      models.TenantStatusActive,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

// StaticIdentity always reports the same user. A nil User means signed out.
type StaticIdentity struct {
	User *models.User
}

func (s StaticIdentity) CurrentUser(context.Context) (*models.User, error) {
	return s.User, nil
}
