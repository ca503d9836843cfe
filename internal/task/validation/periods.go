// Package validation implements the business-rule engine for submitted
// registrations. It is pure: no I/O, no clock reads, everything the rules need
// comes in as arguments.
//
// The two origins intentionally validate differently. Foreign registrations
// accumulate every broken rule so the caseworker fixes all of them in one
// round trip; domestic paper registrations are hard preconditions that fail
// fast with a single typed rule error.
package validation

import (
	"sort"
	"time"

	"dokdig/internal/task/models"
)

// day truncates a timestamp to date granularity in its own location.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sortedByStart returns a copy of the periods ordered by start date.
func sortedByStart(periods []models.Period) []models.Period {
	sorted := append([]models.Period(nil), periods...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].From.Before(sorted[j].From)
	})
	return sorted
}

// overlaps reports inclusive range intersection: periods sharing a boundary
// day overlap.
func overlaps(a, b models.Period) bool {
	return !day(a.From).After(day(b.To)) && !day(b.From).After(day(a.To))
}

// identical reports whether two periods cover exactly the same days.
func identical(a, b models.Period) bool {
	return day(a.From).Equal(day(b.From)) && day(a.To).Equal(day(b.To))
}

// hasOverlap reports whether any two periods intersect.
func hasOverlap(periods []models.Period) bool {
	for i := range periods {
		for j := i + 1; j < len(periods); j++ {
			if overlaps(periods[i], periods[j]) {
				return true
			}
		}
	}
	return false
}

// hasIdentical reports whether any two periods are exact duplicates.
func hasIdentical(periods []models.Period) bool {
	for i := range periods {
		for j := i + 1; j < len(periods); j++ {
			if identical(periods[i], periods[j]) {
				return true
			}
		}
	}
	return false
}

// hasWorkingDayGap reports whether, with periods sorted by start, at least one
// Mon-Fri day falls strictly between the end of one period and the start of
// the next. Weekend-only gaps are allowed.
func hasWorkingDayGap(periods []models.Period) bool {
	sorted := sortedByStart(periods)
	for i := 0; i < len(sorted)-1; i++ {
		end := day(sorted[i].To)
		next := day(sorted[i+1].From)
		for d := end.AddDate(0, 0, 1); d.Before(next); d = d.AddDate(0, 0, 1) {
			if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
				return true
			}
		}
	}
	return false
}
