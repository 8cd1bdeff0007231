package domain

import (
	"fmt"
	"strings"
	"time"
)

// Range selects which slice of a dated ledger a query returns. All bounds
// are evaluated against the caller's clock in that clock's location.
type Range string

const (
	RangeAll   Range = "all"
	RangeDay   Range = "day"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
)

// ParseRange maps a query-string value onto a Range. The empty string
// means no filtering.
func ParseRange(raw string) (Range, error) {
	switch Range(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RangeAll:
		return RangeAll, nil
	case RangeDay:
		return RangeDay, nil
	case RangeWeek:
		return RangeWeek, nil
	case RangeMonth:
		return RangeMonth, nil
	}
	return "", fmt.Errorf("unknown range %q", raw)
}

// Matches reports whether ts falls inside the range anchored at now.
//
//	day   - same calendar date as now
//	week  - from midnight of the most recent Sunday through now
//	month - same calendar month and year as now
func (r Range) Matches(now time.Time, ts time.Time) bool {
	ts = ts.In(now.Location())
	switch r {
	case RangeDay:
		return sameDate(now, ts)
	case RangeWeek:
		weekStart := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
		return !ts.Before(weekStart) && !ts.After(now)
	case RangeMonth:
		return ts.Year() == now.Year() && ts.Month() == now.Month()
	}
	return true
}

func sameDate(a time.Time, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
