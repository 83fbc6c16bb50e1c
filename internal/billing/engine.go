// Package billing is the billing and ledger reconciliation engine: the tenant
// directory, monthly rent generation, utility and payment recording, and
// running-balance statements.
package billing

import (
	"context"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"rentledger/internal/models"
)

// Identity resolves the signed-in user. A nil user with a nil error means
// nobody is signed in.
type Identity interface {
	CurrentUser(ctx context.Context) (*models.User, error)
}

// MissingTenantName is shown for rows whose tenant has been deleted.
const MissingTenantName = "N/A"

// Store is the collection API of the data store. Every method is scoped to
// the owning user. Errors are returned as the driver produced them.
//
// The row listings (ListRentCharges, ListUtilityCharges, ListAllLedgerEntries)
// fill TenantName themselves and use MissingTenantName when the tenant no
// longer exists. The engine passes the names through unchanged.
type Store interface {
	ListTenants(ctx context.Context, userID uuid.UUID, filter TenantFilter) ([]models.Tenant, error)
	// GetTenant returns nil, nil when the tenant does not exist for userID.
	GetTenant(ctx context.Context, userID uuid.UUID, id uint) (*models.Tenant, error)
	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	UpdateTenant(ctx context.Context, tenant *models.Tenant) error
	DeleteTenant(ctx context.Context, userID uuid.UUID, id uint) error
	// DeleteTenantHistory removes the rent charges, utility charges and
	// ledger entries of a tenant.
	DeleteTenantHistory(ctx context.Context, userID uuid.UUID, tenantID uint) error

	// UpsertRentCharges writes all charges in one request, updating amount
	// and due date of rows that already exist for (tenant_id, charge_month).
	UpsertRentCharges(ctx context.Context, charges []models.RentCharge) error
	ListRentCharges(ctx context.Context, userID uuid.UUID) ([]RentChargeRow, error)

	InsertUtilityCharge(ctx context.Context, charge *models.UtilityCharge) error
	ListUtilityCharges(ctx context.Context, userID uuid.UUID) ([]UtilityChargeRow, error)

	InsertLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error
	// ListLedgerEntries returns a tenant's entries by entry date, then id.
	ListLedgerEntries(ctx context.Context, userID uuid.UUID, tenantID uint) ([]models.LedgerEntry, error)
	ListAllLedgerEntries(ctx context.Context, userID uuid.UUID) ([]LedgerRow, error)
}

// Transactor is implemented by stores that can run several writes atomically.
type Transactor interface {
	Transaction(ctx context.Context, fn func(Store) error) error
}

// RentChargeRow is a rent charge with the display name of its tenant.
type RentChargeRow struct {
	models.RentCharge
	TenantName string `json:"tenant_name"`
}

type UtilityChargeRow struct {
	models.UtilityCharge
	TenantName string `json:"tenant_name"`
}

type LedgerRow struct {
	models.LedgerEntry
	TenantName string `json:"tenant_name"`
}

// Engine runs billing operations for the current user.
type Engine struct {
	store    Store
	identity Identity
	log      logrus.FieldLogger
	now      func() time.Time
	validate *validator.Validate
}

type Option func(*Engine)

func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock overrides the time source used for the current period and
// record timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(store Store, identity Identity, opts ...Option) *Engine {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	e := &Engine{
		store:    store,
		identity: identity,
		log:      quiet,
		now:      time.Now,
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CurrentPeriod is the month containing the engine clock's current time.
func (e *Engine) CurrentPeriod() Period {
	return PeriodOf(e.now().UTC())
}

func (e *Engine) requireUser(ctx context.Context) (*models.User, error) {
	user, err := e.identity.CurrentUser(ctx)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	if user == nil {
		return nil, &AuthError{}
	}
	return user, nil
}

// ownedTenant loads a tenant of user, mapping absence to NotFoundError.
func (e *Engine) ownedTenant(ctx context.Context, user *models.User, id uint) (*models.Tenant, error) {
	tenant, err := e.store.GetTenant(ctx, user.ID, id)
	if err != nil {
		return nil, storeErr("get tenant", err)
	}
	if tenant == nil {
		return nil, &NotFoundError{Resource: "tenant", ID: id}
	}
	return tenant, nil
}

// pairedWrite runs first then second. On a Transactor both run in one
// transaction and any failure is a StoreError. Otherwise a failure of second
// is a PartialFailureError naming what first completed.
func (e *Engine) pairedWrite(ctx context.Context, op string, first, second func(Store) error, completed func() string) error {
	if tx, ok := e.store.(Transactor); ok {
		err := tx.Transaction(ctx, func(s Store) error {
			if err := first(s); err != nil {
				return err
			}
			return second(s)
		})
		return storeErr(op, err)
	}

	if err := first(e.store); err != nil {
		return storeErr(op, err)
	}
	if err := second(e.store); err != nil {
		return &PartialFailureError{Op: op, Completed: completed(), Err: err}
	}
	return nil
}
