package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"rentledger/internal/billing"
)

func money(symbol string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + symbol + d.Abs().StringFixed(2)
	}
	return symbol + d.StringFixed(2)
}

func day(t time.Time) string {
	return t.Format(billing.DateLayout)
}

func optionalDay(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return day(*t)
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &billing.ValidationError{Field: field, Message: "must be a number"}
	}
	return d, nil
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, &billing.ValidationError{Field: "id", Message: fmt.Sprintf("invalid tenant id %q", s)}
	}
	return uint(id), nil
}
