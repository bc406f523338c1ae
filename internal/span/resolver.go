// Package span resolves a trip's overall inclusive date range from the
// primary destination dates plus any additional destination segments.
// Segments may only widen the range, never shrink it.
package span

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/dkaplan/tripweaver/backend/internal/domain"
)

// Span is the resolved inclusive date range of a trip.
type Span struct {
	Start time.Time
	End   time.Time
	// Days is the inclusive length: equal endpoints yield 1.
	Days int
}

// Date returns the calendar date of the 1-based day index within the span.
func (s Span) Date(day int) time.Time {
	return s.Start.AddDate(0, 0, day-1)
}

var dateOnlyRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// fallback layouts tried when the input is neither a bare date nor a
// T-separated timestamp. Order matters: most specific first.
var layouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	time.RFC1123,
	"01/02/2006",
}

// ParseDate parses one of the recognized date representations and
// normalizes the result to local midday. Anchoring at hour 12 keeps later
// day arithmetic from rolling over midnight when timezones shift the
// instant by a few hours in either direction.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", domain.ErrDateParse)
	}

	if m := dateOnlyRe.FindStringSubmatch(s); m != nil {
		t, err := time.ParseInLocation(domain.DateOnly, s, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", domain.ErrDateParse, s)
		}
		return atMidday(t), nil
	}

	// Timestamps: only the date part matters, the time component is noise
	// from whatever serializer produced the value.
	if i := strings.IndexByte(s, 'T'); i > 0 {
		if t, err := time.ParseInLocation(domain.DateOnly, s[:i], time.Local); err == nil {
			return atMidday(t), nil
		}
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return atMidday(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrDateParse, s)
}

func atMidday(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local)
}

// Resolve computes the trip's overall span. The primary start/end dates
// seed the range; every segment carrying two parseable dates widens it
// when its bounds fall outside. Partially specified or unparseable
// segments are logged and skipped — the overall computation never aborts
// for a bad segment. Unparseable primary dates return ErrDateParse and the
// caller is expected to substitute a length-1 fallback span.
func Resolve(start, end string, segments []domain.DestinationSegment) (Span, error) {
	earliest, err := ParseDate(start)
	if err != nil {
		return Span{}, fmt.Errorf("span.Resolve: start: %w", err)
	}
	latest, err := ParseDate(end)
	if err != nil {
		return Span{}, fmt.Errorf("span.Resolve: end: %w", err)
	}

	for _, seg := range segments {
		if seg.StartDate == "" || seg.EndDate == "" {
			continue
		}
		segStart, err := ParseDate(seg.StartDate)
		if err != nil {
			slog.Warn("skipping segment with unparseable start date",
				"location", seg.Location, "startDate", seg.StartDate)
			continue
		}
		segEnd, err := ParseDate(seg.EndDate)
		if err != nil {
			slog.Warn("skipping segment with unparseable end date",
				"location", seg.Location, "endDate", seg.EndDate)
			continue
		}
		if segStart.Before(earliest) {
			earliest = segStart
		}
		if segEnd.After(latest) {
			latest = segEnd
		}
	}

	return Span{Start: earliest, End: latest, Days: lengthInDays(earliest, latest)}, nil
}

// Fallback returns the length-1 span used when the primary dates cannot be
// resolved, anchored at local midday today so the day view still renders.
func Fallback() Span {
	today := atMidday(time.Now())
	return Span{Start: today, End: today, Days: 1}
}

// lengthInDays computes the inclusive day count between two midday-anchored
// instants. The ceil guards against DST making the gap a few hours short of
// a whole multiple of 24h.
func lengthInDays(start, end time.Time) int {
	if !end.After(start) {
		return 1
	}
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}
