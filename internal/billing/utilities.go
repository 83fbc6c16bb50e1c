package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"rentledger/internal/models"
)

const (
	defaultChargeNotes  = "N/A"
	defaultUtilityEntry = "Utility charge"
)

type UtilityChargeInput struct {
	TenantID    uint               `json:"tenant_id" validate:"required"`
	UtilityType models.UtilityType `json:"utility_type" validate:"required,utility_type"`
	ChargeDate  time.Time          `json:"charge_date" validate:"required"`
	Amount      decimal.Decimal    `json:"amount" validate:"gt=0"`
	Notes       string             `json:"notes"`
}

// RecordUtilityCharge stores a utility charge and its mirroring ledger entry
// of the negated amount on the same date.
func (e *Engine) RecordUtilityCharge(ctx context.Context, in UtilityChargeInput) (*models.UtilityCharge, error) {
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
	entryNotes := in.Notes
	if entryNotes == "" {
		entryNotes = defaultUtilityEntry
	}

	now := e.now()
	date := dateOnly(in.ChargeDate)
	charge := &models.UtilityCharge{
		UserID:      user.ID,
		TenantID:    in.TenantID,
		UtilityType: in.UtilityType,
		ChargeDate:  date,
		Amount:      in.Amount,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	entry := &models.LedgerEntry{
		UserID:    user.ID,
		TenantID:  in.TenantID,
		EntryDate: date,
		EntryType: models.EntryTypeCharge,
		Category:  string(in.UtilityType),
		Amount:    in.Amount.Neg(),
		Notes:     entryNotes,
		CreatedAt: now,
	}

	log := e.log.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"tenant_id": in.TenantID,
		"utility":   in.UtilityType,
	})
	err = e.pairedWrite(ctx, "record utility charge",
		func(s Store) error { return s.InsertUtilityCharge(ctx, charge) },
		func(s Store) error { return s.InsertLedgerEntry(ctx, entry) },
		func() string { return fmt.Sprintf("utility charge %d", charge.ID) },
	)
	if err != nil {
		log.WithError(err).Error("utility charge not recorded")
		return nil, err
	}

	log.Info("utility charge recorded")
	return charge, nil
}

// ListUtilityCharges returns the user's utility charges, newest first.
func (e *Engine) ListUtilityCharges(ctx context.Context) ([]UtilityChargeRow, error) {
	user, err := e.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := e.store.ListUtilityCharges(ctx, user.ID)
	if err != nil {
		return nil, storeErr("list utility charges", err)
	}
	return rows, nil
}
