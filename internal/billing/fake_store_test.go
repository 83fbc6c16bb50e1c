package billing_test

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"rentledger/internal/billing"
	"rentledger/internal/models"
)

// memStore is an in-memory billing.Store without transactions.
type memStore struct {
	tenants   []models.Tenant
	rent      []models.RentCharge
	utilities []models.UtilityCharge
	ledger    []models.LedgerEntry
	nextID    uint

	writes    int
	ledgerErr error
	listErr   error
}

var _ billing.Store = (*memStore)(nil)

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) ListTenants(_ context.Context, userID uuid.UUID, f billing.TenantFilter) ([]models.Tenant, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Tenant
	for _, t := range m.tenants {
		if t.UserID == userID && (f.Status == "" || t.Status == f.Status) {
			out = append(out, t)
		}
	}
	if f.OrderBy == billing.OrderByName {
		slices.SortStableFunc(out, func(a, b models.Tenant) int { return strings.Compare(a.TenantName, b.TenantName) })
	}
	return out, nil
}

func (m *memStore) GetTenant(_ context.Context, userID uuid.UUID, id uint) (*models.Tenant, error) {
	for _, t := range m.tenants {
		if t.ID == id && t.UserID == userID {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateTenant(_ context.Context, t *models.Tenant) error {
	m.writes++
	t.ID = m.id()
	m.tenants = append(m.tenants, *t)
	return nil
}

func (m *memStore) UpdateTenant(_ context.Context, t *models.Tenant) error {
	m.writes++
	for i := range m.tenants {
		if m.tenants[i].ID == t.ID {
			m.tenants[i] = *t
		}
	}
	return nil
}

func (m *memStore) DeleteTenant(_ context.Context, userID uuid.UUID, id uint) error {
	m.writes++
	m.tenants = slices.DeleteFunc(m.tenants, func(t models.Tenant) bool { return t.ID == id && t.UserID == userID })
	return nil
}

func (m *memStore) DeleteTenantHistory(_ context.Context, userID uuid.UUID, id uint) error {
	m.writes++
	m.ledger = slices.DeleteFunc(m.ledger, func(e models.LedgerEntry) bool { return e.TenantID == id && e.UserID == userID })
	m.rent = slices.DeleteFunc(m.rent, func(c models.RentCharge) bool { return c.TenantID == id && c.UserID == userID })
	m.utilities = slices.DeleteFunc(m.utilities, func(c models.UtilityCharge) bool { return c.TenantID == id && c.UserID == userID })
	return nil
}

func (m *memStore) UpsertRentCharges(_ context.Context, charges []models.RentCharge) error {
	m.writes++
	for _, c := range charges {
		replaced := false
		for i := range m.rent {
			if m.rent[i].TenantID == c.TenantID && m.rent[i].ChargeMonth.Equal(c.ChargeMonth) {
				m.rent[i].Amount = c.Amount
				m.rent[i].DueDate = c.DueDate
				replaced = true
			}
		}
		if !replaced {
			c.ID = m.id()
			m.rent = append(m.rent, c)
		}
	}
	return nil
}

func (m *memStore) ListRentCharges(_ context.Context, userID uuid.UUID) ([]billing.RentChargeRow, error) {
	var out []billing.RentChargeRow
	for _, c := range m.rent {
		if c.UserID == userID {
			out = append(out, billing.RentChargeRow{RentCharge: c, TenantName: m.name(c.TenantID)})
		}
	}
	return out, nil
}

func (m *memStore) InsertUtilityCharge(_ context.Context, c *models.UtilityCharge) error {
	m.writes++
	c.ID = m.id()
	m.utilities = append(m.utilities, *c)
	return nil
}

func (m *memStore) ListUtilityCharges(_ context.Context, userID uuid.UUID) ([]billing.UtilityChargeRow, error) {
	var out []billing.UtilityChargeRow
	for _, c := range m.utilities {
		if c.UserID == userID {
			out = append(out, billing.UtilityChargeRow{UtilityCharge: c, TenantName: m.name(c.TenantID)})
		}
	}
	return out, nil
}

func (m *memStore) InsertLedgerEntry(_ context.Context, e *models.LedgerEntry) error {
	if m.ledgerErr != nil {
		return m.ledgerErr
	}
	m.writes++
	e.ID = m.id()
	m.ledger = append(m.ledger, *e)
	return nil
}

func (m *memStore) ListLedgerEntries(_ context.Context, userID uuid.UUID, tenantID uint) ([]models.LedgerEntry, error) {
	var out []models.LedgerEntry
	for _, e := range m.ledger {
		if e.UserID == userID && e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) ListAllLedgerEntries(_ context.Context, userID uuid.UUID) ([]billing.LedgerRow, error) {
	var out []billing.LedgerRow
	for _, e := range m.ledger {
		if e.UserID == userID {
			out = append(out, billing.LedgerRow{LedgerEntry: e, TenantName: m.name(e.TenantID)})
		}
	}
	return out, nil
}

// name returns "" for deleted tenants, like a LEFT JOIN without COALESCE.
func (m *memStore) name(id uint) string {
	for _, t := range m.tenants {
		if t.ID == id {
			return t.TenantName
		}
	}
	return billing.MissingTenantName
}
