// Package store implements billing.Store on gorm.
package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentledger/internal/billing"
	"rentledger/internal/models"
)

var tenantColumns = []string{
	"tenant_name", "monthly_rent", "rent_due_day", "status",
	"moved_out_date", "left_without_notice_date", "utilities", "updated_at",
}

// Store runs every query scoped to the owning user.
type Store struct {
	db *gorm.DB
}

var (
	_ billing.Store      = (*Store)(nil)
	_ billing.Transactor = (*Store)(nil)
)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a store bound to one database transaction.
func (s *Store) Transaction(ctx context.Context, fn func(billing.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) ListTenants(ctx context.Context, userID uuid.UUID, filter billing.TenantFilter) ([]models.Tenant, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.OrderBy == billing.OrderByName {
		q = q.Order("tenant_name ASC")
	}

	var tenants []models.Tenant
	if err := q.Order("id ASC").Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

func (s *Store) GetTenant(ctx context.Context, userID uuid.UUID, id uint) (*models.Tenant, error) {
	var tenants []models.Tenant
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Limit(1).
		Find(&tenants).Error
	if err != nil {
		return nil, err
	}
	if len(tenants) == 0 {
		return nil, nil
	}
	return &tenants[0], nil
}

func (s *Store) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	return s.db.WithContext(ctx).Create(tenant).Error
}

func (s *Store) UpdateTenant(ctx context.Context, tenant *models.Tenant) error {
	return s.db.WithContext(ctx).
		Model(tenant).
		Where("user_id = ?", tenant.UserID).
		Select(tenantColumns).
		Updates(tenant).Error
}

func (s *Store) DeleteTenant(ctx context.Context, userID uuid.UUID, id uint) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Tenant{}).Error
}

func (s *Store) DeleteTenantHistory(ctx context.Context, userID uuid.UUID, tenantID uint) error {
	for _, model := range []interface{}{&models.LedgerEntry{}, &models.UtilityCharge{}, &models.RentCharge{}} {
		err := s.db.WithContext(ctx).
			Where("tenant_id = ? AND user_id = ?", tenantID, userID).
			Delete(model).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) UpsertRentCharges(ctx context.Context, charges []models.RentCharge) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "charge_month"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "due_date", "updated_at"}),
		}).
		Create(&charges).Error
}

func (s *Store) ListRentCharges(ctx context.Context, userID uuid.UUID) ([]billing.RentChargeRow, error) {
	var rows []billing.RentChargeRow
	err := s.withTenantName(ctx, "rent_charges").
		Where("rent_charges.user_id = ?", userID).
		Order("rent_charges.due_date ASC").
		Order("rent_charges.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (s *Store) InsertUtilityCharge(ctx context.Context, charge *models.UtilityCharge) error {
	return s.db.WithContext(ctx).Create(charge).Error
}

func (s *Store) ListUtilityCharges(ctx context.Context, userID uuid.UUID) ([]billing.UtilityChargeRow, error) {
	var rows []billing.UtilityChargeRow
	err := s.withTenantName(ctx, "utility_charges").
		Where("utility_charges.user_id = ?", userID).
		Order("utility_charges.charge_date DESC").
		Order("utility_charges.id DESC").
		Scan(&rows).Error
	return rows, err
}

func (s *Store) InsertLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *Store) ListLedgerEntries(ctx context.Context, userID uuid.UUID, tenantID uint) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND tenant_id = ?", userID, tenantID).
		Order("entry_date ASC").
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

func (s *Store) ListAllLedgerEntries(ctx context.Context, userID uuid.UUID) ([]billing.LedgerRow, error) {
	var rows []billing.LedgerRow
	err := s.withTenantName(ctx, "ledger_entries").
		Where("ledger_entries.user_id = ?", userID).
		Order("ledger_entries.entry_date ASC").
		Order("ledger_entries.id ASC").
		Scan(&rows).Error
	return rows, err
}

// withTenantName selects every column of table plus the owning tenant's
// name, or "N/A" once the tenant is gone.
func (s *Store) withTenantName(ctx context.Context, table string) *gorm.DB {
	return s.db.WithContext(ctx).
		Table(table).
		Select(table+".*, COALESCE(tenants.tenant_name, ?) AS tenant_name", billing.MissingTenantName).
		Joins("LEFT JOIN tenants ON tenants.id = " + table + ".tenant_id AND tenants.user_id = " + table + ".user_id")
}
