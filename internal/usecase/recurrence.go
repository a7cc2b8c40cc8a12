package usecase

import (
	"time"

	"clinic-scheduler/internal/domain/entity"
)

// occurrence is one candidate time range of a recurrence series.
type occurrence struct {
	Start time.Time
	End   time.Time
}

// expandOccurrences generates the candidate ranges of a recurrence series
// anchored at the parent's [start, end). The parent's own slot is never
// included. Candidates are anchored to the parent (start.AddDate with a
// growing step) rather than chained, so monthly series from e.g. Jan 31
// stay deterministic: Go's AddDate normalizes short months (Jan 31 + 1
// month = Mar 2/3) and every occurrence is derived from the parent alone.
//
// An unrecognized rule yields an empty set without error; callers treat
// that as a no-op.
func expandOccurrences(start, end time.Time, rule entity.RecurrenceRule, until time.Time) []occurrence {
	var occurrences []occurrence
	for i := 1; ; i++ {
		var s, e time.Time
		switch rule {
		case entity.RecurrenceDaily:
			s, e = start.AddDate(0, 0, i), end.AddDate(0, 0, i)
		case entity.RecurrenceWeekly:
			s, e = start.AddDate(0, 0, 7*i), end.AddDate(0, 0, 7*i)
		case entity.RecurrenceMonthly:
			s, e = start.AddDate(0, i, 0), end.AddDate(0, i, 0)
		default:
			return nil
		}

		if s.After(until) {
			return occurrences
		}
		occurrences = append(occurrences, occurrence{Start: s, End: e})
	}
}
