package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"rentledger/internal/models"
)

type PaymentInput struct {
	TenantID    uint            `json:"tenant_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	PaymentDate time.Time       `json:"payment_date" validate:"required"`
	Notes       string          `json:"notes"`
}

// RecordPayment appends a positive ledger entry for money received.
func (e *Engine) RecordPayment(ctx context.Context, in PaymentInput) (*models.LedgerEntry, error) {
	user, err := e.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := e.check(in); err != nil {
		return nil, err
	}
	if err := checkCents("amount", in.Amount); err != nil {
		return nil, err
	}
	if _, err := e.ownedTenant(ctx, user, in.TenantID); err != nil {
		return nil, err
	}

	notes := in.Notes
	if notes == "" {
		notes = defaultChargeNotes
	}
	entry := &models.LedgerEntry{
		UserID:    user.ID,
		TenantID:  in.TenantID,
		EntryDate: dateOnly(in.PaymentDate),
		EntryType: models.EntryTypePayment,
		Category:  models.PaymentCategory,
		Amount:    in.Amount,
		Notes:     notes,
		CreatedAt: e.now(),
	}
	if err := e.store.InsertLedgerEntry(ctx, entry); err != nil {
		return nil, storeErr("record payment", err)
	}

	e.log.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"tenant_id": in.TenantID,
		"amount":    in.Amount.String(),
	}).Info("payment recorded")
	return entry, nil
}
