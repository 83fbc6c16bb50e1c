package billing

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"rentledger/internal/models"
)

// StatementLine is a ledger entry with the balance after applying it.
type StatementLine struct {
	EntryID        uint             `json:"entry_id"`
	Date           time.Time        `json:"date"`
	EntryType      models.EntryType `json:"entry_type"`
	Category       string           `json:"category"`
	Amount         decimal.Decimal  `json:"amount"`
	Notes          string           `json:"notes"`
	RunningBalance decimal.Decimal  `json:"running_balance"`
}

type Statement struct {
	TenantID   uint            `json:"tenant_id"`
	TenantName string          `json:"tenant_name"`
	Lines      []StatementLine `json:"lines"`
	// Balance is the running balance after the last line, zero when empty.
	Balance decimal.Decimal `json:"balance"`
}

func compareEntries(a, b models.LedgerEntry) int {
	if c := a.EntryDate.Compare(b.EntryDate); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

// BuildStatementLines replays entries in the order given, accumulating the
// running balance from zero.
func BuildStatementLines(entries []models.LedgerEntry) []StatementLine {
	lines := make([]StatementLine, 0, len(entries))
	balance := decimal.Zero
	for _, en := range entries {
		balance = balance.Add(en.Amount)
		lines = append(lines, StatementLine{
			EntryID:        en.ID,
			Date:           en.EntryDate,
			EntryType:      en.EntryType,
			Category:       en.Category,
			Amount:         en.Amount,
			Notes:          en.Notes,
			RunningBalance: balance,
		})
	}
	return lines
}

// ComputeStatement returns a tenant's ledger by entry date, ties broken by
// insertion order, with running balances.
func (e *Engine) ComputeStatement(ctx context.Context, tenantID uint) (*Statement, error) {
	user, err := e.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	tenant, err := e.ownedTenant(ctx, user, tenantID)
	if err != nil {
		return nil, err
	}

	entries, err := e.store.ListLedgerEntries(ctx, user.ID, tenantID)
	if err != nil {
		return nil, storeErr("list ledger entries", err)
	}
	slices.SortStableFunc(entries, compareEntries)

	st := &Statement{
		TenantID:   tenant.ID,
		TenantName: tenant.TenantName,
		Lines:      BuildStatementLines(entries),
		Balance:    decimal.Zero,
	}
	if n := len(st.Lines); n > 0 {
		st.Balance = st.Lines[n-1].RunningBalance
	}
	return st, nil
}

// ListAllEntries returns every ledger entry of the user with tenant names,
// in statement order.
func (e *Engine) ListAllEntries(ctx context.Context) ([]LedgerRow, error) {
	user, err := e.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := e.store.ListAllLedgerEntries(ctx, user.ID)
	if err != nil {
		return nil, storeErr("list ledger", err)
	}
	slices.SortStableFunc(rows, func(a, b LedgerRow) int {
		return compareEntries(a.LedgerEntry, b.LedgerEntry)
	})
	return rows, nil
}
