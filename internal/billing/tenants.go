package billing

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"rentledger/internal/models"
)

type TenantOrder string

const (
	OrderByCreated TenantOrder = "created"
	OrderByName    TenantOrder = "name"
)

// TenantFilter narrows ListTenants. The zero value lists every tenant in
// creation order.
type TenantFilter struct {
	Status  models.TenantStatus
	OrderBy TenantOrder
}

// TenantInput carries the editable fields of a tenant.
type TenantInput struct {
	TenantName            string               `json:"tenant_name" validate:"required"`
	MonthlyRent           decimal.Decimal      `json:"monthly_rent" validate:"gt=0"`
	RentDueDay            int                  `json:"rent_due_day" validate:"min=1,max=31"`
	Status                models.TenantStatus  `json:"status" validate:"omitempty,tenant_status"`
	MovedOutDate          *time.Time           `json:"moved_out_date"`
	LeftWithoutNoticeDate *time.Time           `json:"left_without_notice_date"`
	Utilities             []models.UtilityType `json:"utilities" validate:"dive,utility_type"`
}

type DeleteOptions struct {
	// Cascade also removes the tenant's charges and ledger entries.
	Cascade bool
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("tenant_status", func(fl validator.FieldLevel) bool {
		return models.TenantStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("utility_type", func(fl validator.FieldLevel) bool {
		return models.UtilityType(fl.Field().String()).Valid()
	})
	return v
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than 0"
	case "min", "max":
		return "must be between 1 and 31"
	case "tenant_status":
		return "must be one of Active, Moved Out, Left Without Notice"
	case "utility_type":
		return "must be one of Electricity, Water, Internet, Gas, Trash"
	default:
		return "is invalid"
	}
}

// checkCents rejects amounts finer than the two decimal places the money
// columns hold.
func checkCents(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(2)) {
		return &ValidationError{Field: field, Message: "must have at most 2 decimal places"}
	}
	return nil
}

// check runs struct validation and reports the first failing field.
func (e *Engine) check(input interface{}) error {
	err := e.validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Field()
		if i := strings.Index(field, "["); i > 0 {
			field = field[:i]
		}
		return &ValidationError{Field: field, Message: fieldMessage(fe)}
	}
	return &ValidationError{Field: "input", Message: err.Error()}
}

// normalizeTenant validates in and writes it onto t, keeping only the status date
// that matches the status.
func (e *Engine) normalizeTenant(in TenantInput, t *models.Tenant) error {
	if err := e.check(in); err != nil {
		return err
	}
	if strings.TrimSpace(in.TenantName) == "" {
		return &ValidationError{Field: "tenant_name", Message: "is required"}
	}
	if err := checkCents("monthly_rent", in.MonthlyRent); err != nil {
		return err
	}

	status := in.Status
	if status == "" {
		status = models.TenantStatusActive
	}

	var movedOut, leftWithoutNotice *time.Time
	switch status {
	case models.TenantStatusMovedOut:
		if in.MovedOutDate == nil || in.MovedOutDate.IsZero() {
			return &ValidationError{Field: "moved_out_date", Message: "is required when status is Moved Out"}
		}
		d := dateOnly(*in.MovedOutDate)
		movedOut = &d
	case models.TenantStatusLeftWithoutNotice:
		if in.LeftWithoutNoticeDate == nil || in.LeftWithoutNoticeDate.IsZero() {
			return &ValidationError{Field: "left_without_notice_date", Message: "is required when status is Left Without Notice"}
		}
		d := dateOnly(*in.LeftWithoutNoticeDate)
		leftWithoutNotice = &d
	}

	utilities := make([]string, 0, len(in.Utilities))
	seen := make(map[models.UtilityType]bool)
	for _, u := range in.Utilities {
		if !seen[u] {
			seen[u] = true
			utilities = append(utilities, string(u))
		}
	}

	t.TenantName = strings.TrimSpace(in.TenantName)
	t.MonthlyRent = in.MonthlyRent
	t.RentDueDay = in.RentDueDay
	t.Status = status
	t.MovedOutDate = movedOut
	t.LeftWithoutNoticeDate = leftWithoutNotice
	t.Utilities = utilities
	return nil
}

func (e *Engine) ListTenants(ctx context.Context, filter TenantFilter) ([]models.Tenant, error) {
	user, err := e.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, &ValidationError{Field: "status", Message: "must be one of Active, Moved Out, Left Without Notice"}
	}
	switch filter.OrderBy {
	case "", OrderByCreated, OrderByName:
	default:
		return nil, &ValidationError{Field: "order", Message: "must be created or name"}
	}

	tenants, err := e.store.ListTenants(ctx, user.ID, filter)
	if err != nil {
		return nil, storeErr("list tenants", err)
	}
	return tenants, nil
}

func (e *Engine) GetTenant(ctx context.Context, id uint) (*models.Tenant, error) {
	user, err := e.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return e.ownedTenant(ctx, user, id)
}

// CreateTenant validates in and stores a new tenant, returning it with its id.
func (e *Engine) CreateTenant(ctx context.Context, in TenantInput) (*models.Tenant, error) {
	user, err := e.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	tenant := &models.Tenant{UserID: user.ID}
	if err := e.normalizeTenant(in, tenant); err != nil {
		return nil, err
	}
	now := e.now()
	tenant.CreatedAt, tenant.UpdatedAt = now, now

	if err := e.store.CreateTenant(ctx, tenant); err != nil {
		return nil, storeErr("create tenant", err)
	}

	e.log.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"tenant_id": tenant.ID,
	}).Info("tenant created")
	return tenant, nil
}

func (e *Engine) UpdateTenant(ctx context.Context, id uint, in TenantInput) (*models.Tenant, error) {
	user, err := e.requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var edited models.Tenant
	if err := e.normalizeTenant(in, &edited); err != nil {
		return nil, err
	}

	tenant, err := e.ownedTenant(ctx, user, id)
	if err != nil {
		return nil, err
	}
	tenant.TenantName = edited.TenantName
	tenant.MonthlyRent = edited.MonthlyRent
	tenant.RentDueDay = edited.RentDueDay
	tenant.Status = edited.Status
	tenant.MovedOutDate = edited.MovedOutDate
	tenant.LeftWithoutNoticeDate = edited.LeftWithoutNoticeDate
	tenant.Utilities = edited.Utilities
	tenant.UpdatedAt = e.now()

	if err := e.store.UpdateTenant(ctx, tenant); err != nil {
		return nil, storeErr("update tenant", err)
	}

	e.log.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"tenant_id": tenant.ID,
		"status":    tenant.Status,
	}).Info("tenant updated")
	return tenant, nil
}

// DeleteTenant removes a tenant. Its history is kept unless opts.Cascade is
// set, in which case charges and ledger entries go with it.
func (e *Engine) DeleteTenant(ctx context.Context, id uint, opts DeleteOptions) error {
	user, err := e.requireUser(ctx)
	if err != nil {
		return err
	}
	if _, err := e.ownedTenant(ctx, user, id); err != nil {
		return err
	}

	log := e.log.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"tenant_id": id,
		"cascade":   opts.Cascade,
	})

	if !opts.Cascade {
		if err := e.store.DeleteTenant(ctx, user.ID, id); err != nil {
			return storeErr("delete tenant", err)
		}
		log.Info("tenant deleted")
		return nil
	}

	err = e.pairedWrite(ctx, "delete tenant",
		func(s Store) error { return s.DeleteTenantHistory(ctx, user.ID, id) },
		func(s Store) error { return s.DeleteTenant(ctx, user.ID, id) },
		func() string { return "history removal" },
	)
	if err != nil {
		log.WithError(err).Warn("tenant delete failed")
		return err
	}
	log.Info("tenant deleted")
	return nil
}
