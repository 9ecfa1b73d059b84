package ledger

import (
	"fmt"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/apperrors"
)

// TimeRange selects the calendar granularity used to bucket transactions.
type TimeRange string

const (
	Day     TimeRange = "day"
	Week    TimeRange = "week"
	Month   TimeRange = "month"
	Quarter TimeRange = "quarter"
	Year    TimeRange = "year"
)

// dateKeyFormat is the canonical key format for a period's start date.
const dateKeyFormat = "2006-01-02"

// IsValid reports whether r is a known time range.
func (r TimeRange) IsValid() bool {
	switch r {
	case Day, Week, Month, Quarter, Year:
		return true
	}
	return false
}

// ParseTimeRange validates a raw time range string.
func ParseTimeRange(s string) (TimeRange, error) {
	r := TimeRange(s)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown time range %q: %w", s, apperrors.ErrValidation)
	}
	return r, nil
}

// PeriodStart truncates t to the start of its containing period:
// day to midnight, week to Monday, month to the 1st, quarter to the quarter's
// first month, year to January 1st. The location of t is preserved.
func PeriodStart(t time.Time, r TimeRange) time.Time {
	year, month, day := t.Date()
	loc := t.Location()
	switch r {
	case Week:
		midnight := time.Date(year, month, day, 0, 0, 0, 0, loc)
		// time.Weekday counts from Sunday; weeks here start on Monday.
		offset := (int(midnight.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -offset)
	case Month:
		return time.Date(year, month, 1, 0, 0, 0, 0, loc)
	case Quarter:
		quarterMonth := time.Month((int(month)-1)/3*3 + 1)
		return time.Date(year, quarterMonth, 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	default: // Day
		return time.Date(year, month, day, 0, 0, 0, 0, loc)
	}
}

// AddPeriods shifts an aligned period start by n periods (n may be negative).
func AddPeriods(start time.Time, r TimeRange, n int) time.Time {
	switch r {
	case Week:
		return start.AddDate(0, 0, 7*n)
	case Month:
		return start.AddDate(0, n, 0)
	case Quarter:
		return start.AddDate(0, 3*n, 0)
	case Year:
		return start.AddDate(n, 0, 0)
	default: // Day
		return start.AddDate(0, 0, n)
	}
}

// BuildPeriodStarts produces exactly count period-start timestamps, oldest
// first, ending at the period containing end. There are no partial periods.
func BuildPeriodStarts(r TimeRange, count int, end time.Time) []time.Time {
	if count < 1 {
		return nil
	}
	last := PeriodStart(end, r)
	starts := make([]time.Time, count)
	for i := range starts {
		starts[i] = AddPeriods(last, r, i-(count-1))
	}
	return starts
}

// DateKey maps a timestamp to its containing period's canonical start-date
// string. Two timestamps in the same calendar period share a key.
func DateKey(t time.Time, r TimeRange) string {
	return PeriodStart(t, r).Format(dateKeyFormat)
}

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// CurrentWindow returns the window spanning the count periods ending at (and
// including) the period that contains end.
func CurrentWindow(r TimeRange, count int, end time.Time) Window {
	last := PeriodStart(end, r)
	return Window{
		Start: AddPeriods(last, r, -(count - 1)),
		End:   AddPeriods(last, r, 1),
	}
}

// Previous returns the equal-length window immediately preceding w. This is
// not a calendar-aligned "last month": it is count periods directly before
// w.Start.
func (w Window) Previous(r TimeRange, count int) Window {
	return Window{
		Start: AddPeriods(w.Start, r, -count),
		End:   w.Start,
	}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
