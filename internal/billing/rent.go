package billing

import (
	"context"

	"github.com/sirupsen/logrus"

	"rentledger/internal/models"
)

// GenerateRentForPeriod writes one rent charge per active tenant for period
// and returns how many were written. Re-running a period overwrites amount
// and due date with the tenants' current terms instead of adding rows.
// Without active tenants it returns a NotFoundError for "tenants".
func (e *Engine) GenerateRentForPeriod(ctx context.Context, period Period) (int, error) {
	user, err := e.requireUser(ctx)
	if err != nil {
		return 0, err
	}
	if period.Month < 1 || period.Month > 12 {
		return 0, &ValidationError{Field: "period", Message: "month must be between 1 and 12"}
	}

	tenants, err := e.store.ListTenants(ctx, user.ID, TenantFilter{Status: models.TenantStatusActive})
	if err != nil {
		return 0, storeErr("list tenants", err)
	}
	if len(tenants) == 0 {
		return 0, &NotFoundError{Resource: "tenants"}
	}

	now := e.now()
	charges := make([]models.RentCharge, 0, len(tenants))
	for _, t := range tenants {
		charges = append(charges, models.RentCharge{
			UserID:      user.ID,
			TenantID:    t.ID,
			ChargeMonth: period.Start(),
			DueDate:     period.DueDate(t.RentDueDay),
			Amount:      t.MonthlyRent,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	log := e.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"period":  period.String(),
		"count":   len(charges),
	})
	if err := e.store.UpsertRentCharges(ctx, charges); err != nil {
		log.WithError(err).Error("rent generation failed")
		return 0, storeErr("generate rent", err)
	}

	log.Info("rent charges generated")
	return len(charges), nil
}

// ListRentCharges returns the user's rent charges by due date.
func (e *Engine) ListRentCharges(ctx context.Context) ([]RentChargeRow, error) {
	user, err := e.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := e.store.ListRentCharges(ctx, user.ID)
	if err != nil {
		return nil, storeErr("list rent charges", err)
	}
	return rows, nil
}
