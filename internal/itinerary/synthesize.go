// Package itinerary builds and maintains the ordered, gap-free sequence of
// day records for a resolved trip span.
package itinerary

import (
	"slices"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/dkaplan/tripweaver/backend/internal/domain"
	"github.com/dkaplan/tripweaver/backend/internal/span"
)

// Synthesize returns exactly sp.Days day records ordered by day index with
// no gaps and no duplicates. Existing records are carried over when they
// match by day index or, as a fallback for legacy numbering, by calendar
// date; each record is carried at most once, and a date-matched record has
// its day and date renumbered to the slot so the output indices stay 1..N.
// Missing days become placeholders carrying the places hint of the
// destination segment covering that date (defaultPlaces when none does).
// The function is deterministic: the same inputs always yield the same
// output, and re-running it over its own output is a no-op.
func Synthesize(sp span.Span, existing []domain.DayRecord, segments []domain.DestinationSegment, defaultPlaces []string) []domain.DayRecord {
	out := make([]domain.DayRecord, 0, sp.Days)
	consumed := make([]bool, len(existing))

	// Day-index matches claim their slots up front. Otherwise a record
	// whose day and date point at different slots would be carried into
	// both, duplicating one index and dropping another.
	bySlot := make(map[int]int, len(existing))
	for idx, rec := range existing {
		if rec.Day < 1 || rec.Day > sp.Days {
			continue
		}
		if _, taken := bySlot[rec.Day]; !taken {
			bySlot[rec.Day] = idx
			consumed[idx] = true
		}
	}

	for i := 0; i < sp.Days; i++ {
		day := i + 1
		date := sp.Date(day)

		if idx, ok := bySlot[day]; ok {
			out = append(out, existing[idx])
			continue
		}

		if idx, ok := findByDate(existing, consumed, date); ok {
			consumed[idx] = true
			rec := existing[idx]
			rec.Day = day
			rec.Date = formatDay(date, day)
			out = append(out, rec)
			continue
		}

		out = append(out, domain.DayRecord{
			Day:            day,
			Date:           formatDay(date, day),
			Activities:     []domain.Activity{},
			Meals:          []domain.Meal{},
			Transportation: []domain.TransportSegment{},
			PlacesToVisit:  placesFor(date, segments, defaultPlaces),
		})
	}

	return out
}

// UpsertDay merges a generated day fragment into the sequence: replace the
// record with the same day index, or append and re-sort when absent.
// Repeating the same merge any number of times yields the same array.
func UpsertDay(days []domain.DayRecord, rec domain.DayRecord) []domain.DayRecord {
	out := slices.Clone(days)

	_, idx, found := lo.FindIndexOf(out, func(d domain.DayRecord) bool {
		return d.Day == rec.Day
	})
	if found {
		out[idx] = rec
		return out
	}

	out = append(out, rec)
	slices.SortFunc(out, func(a, b domain.DayRecord) int { return a.Day - b.Day })
	return out
}

// findByDate locates an unconsumed record dated on the given calendar day.
// This is the fallback path for records written before day numbering was
// made canonical.
func findByDate(existing []domain.DayRecord, consumed []bool, date time.Time) (int, bool) {
	for idx, rec := range existing {
		if consumed[idx] || rec.Date == "" {
			continue
		}
		recDate, err := span.ParseDate(rec.Date)
		if err != nil {
			continue
		}
		if sameDate(recDate, date) {
			return idx, true
		}
	}
	return -1, false
}

// placesFor returns the placesToVisit hint for a calendar day: the first
// segment whose range contains the day wins, otherwise the primary
// destination's places apply.
func placesFor(date time.Time, segments []domain.DestinationSegment, defaultPlaces []string) []string {
	for _, seg := range segments {
		if seg.StartDate == "" || seg.EndDate == "" {
			continue
		}
		segStart, err := span.ParseDate(seg.StartDate)
		if err != nil {
			continue
		}
		segEnd, err := span.ParseDate(seg.EndDate)
		if err != nil {
			continue
		}
		if !date.Before(segStart) && !date.After(segEnd) {
			if len(seg.PlacesToVisit) > 0 {
				return seg.PlacesToVisit
			}
			break
		}
	}
	return defaultPlaces
}

// formatDay renders the canonical date label, falling back to a synthetic
// "Day N" when the computed date is unusable (e.g. zero time from a
// degenerate span) so synthesis never fails outright.
func formatDay(date time.Time, day int) string {
	if date.IsZero() {
		return "Day " + strconv.Itoa(day)
	}
	return date.Format(domain.DateOnly)
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
