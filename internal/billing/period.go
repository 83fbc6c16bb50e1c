package billing

import (
	"time"
)

const periodLayout = "2006-01"

// Period is a calendar month, the unit rent is charged for.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses a YYYY-MM string.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return Period{}, &ValidationError{Field: "period", Message: "must be in YYYY-MM format"}
	}
	return PeriodOf(t), nil
}

func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Start returns the first day of the month at UTC midnight.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the month.
func (p Period) DaysIn() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DueDate places day inside the month, clamping to the last day when the
// month is shorter.
func (p Period) DueDate(day int) time.Time {
	if last := p.DaysIn(); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(p.Year, p.Month, day, 0, 0, 0, 0, time.UTC)
}

func (p Period) String() string {
	return p.Start().Format(periodLayout)
}

// dateOnly drops the clock part of t, keeping its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateLayout is the calendar date format accepted from users.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD value of field. An empty value is reported
// as missing.
func ParseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, &ValidationError{Field: field, Message: "is required"}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: field, Message: "must be a date in YYYY-MM-DD format"}
	}
	return t, nil
}
