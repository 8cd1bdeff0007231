package domain

import (
	"testing"
	"time"
)

// Wednesday. The week window opens at midnight on Sunday the 9th.
var anchor = time.Date(2025, time.March, 12, 10, 30, 0, 0, time.UTC)

func TestParseRange(t *testing.T) {
	cases := []struct {
		raw     string
		want    Range
		wantErr bool
	}{
		{"", RangeAll, false},
		{"all", RangeAll, false},
		{"day", RangeDay, false},
		{" Week ", RangeWeek, false},
		{"MONTH", RangeMonth, false},
		{"fortnight", "", true},
	}

	for _, tc := range cases {
		got, err := ParseRange(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseRange(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRange(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRange(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestRangeMatches(t *testing.T) {
	cases := []struct {
		name string
		r    Range
		ts   time.Time
		want bool
	}{
		{"day same date earlier hour", RangeDay, anchor.Add(-9 * time.Hour), true},
		{"day previous date", RangeDay, anchor.AddDate(0, 0, -1), false},
		{"week monday", RangeWeek, time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC), true},
		{"week sunday midnight boundary", RangeWeek, time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC), true},
		{"week saturday before", RangeWeek, time.Date(2025, time.March, 8, 23, 59, 59, 0, time.UTC), false},
		{"week future excluded", RangeWeek, anchor.Add(time.Hour), false},
		{"month same month", RangeMonth, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), true},
		{"month previous month", RangeMonth, time.Date(2025, time.February, 28, 12, 0, 0, 0, time.UTC), false},
		{"month same month last year", RangeMonth, anchor.AddDate(-1, 0, 0), false},
		{"all matches anything", RangeAll, anchor.AddDate(-10, 0, 0), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Matches(anchor, tc.ts); got != tc.want {
				t.Fatalf("%s.Matches(%v, %v) = %v, want %v", tc.r, anchor, tc.ts, got, tc.want)
			}
		})
	}
}
