package itinerary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaplan/tripweaver/backend/internal/domain"
	"github.com/dkaplan/tripweaver/backend/internal/itinerary"
	"github.com/dkaplan/tripweaver/backend/internal/span"
)

func mustSpan(t *testing.T, start, end string, segs ...domain.DestinationSegment) span.Span {
	t.Helper()
	sp, err := span.Resolve(start, end, segs)
	require.NoError(t, err)
	return sp
}

func generatedDay(day int, date string) domain.DayRecord {
	return domain.DayRecord{
		Day:  day,
		Date: date,
		Activities: []domain.Activity{
			{Name: "Museum visit", Location: "Old town"},
		},
		Meals:          []domain.Meal{{Type: "lunch", Venue: "Chez Marcel"}},
		Transportation: []domain.TransportSegment{},
	}
}

// ---- Synthesize ------------------------------------------------------------

func TestSynthesize_EmptyInputProducesPlaceholders(t *testing.T) {
	sp := mustSpan(t, "2025-06-01", "2025-06-05")

	got := itinerary.Synthesize(sp, nil, nil, nil)

	require.Len(t, got, 5)
	for i, rec := range got {
		assert.Equal(t, i+1, rec.Day)
		assert.Empty(t, rec.Activities)
		assert.NotNil(t, rec.Activities, "slices must round-trip as [], not null")
	}
	assert.Equal(t, "2025-06-01", got[0].Date)
	assert.Equal(t, "2025-06-05", got[4].Date)
}

func TestSynthesize_DayIndicesStrictlyIncreasingNoDuplicates(t *testing.T) {
	sp := mustSpan(t, "2025-06-01", "2025-06-10")

	got := itinerary.Synthesize(sp, []domain.DayRecord{
		generatedDay(3, "2025-06-03"),
		generatedDay(7, "2025-06-07"),
	}, nil, nil)

	require.Len(t, got, 10)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i].Day, got[i-1].Day)
	}
}

func TestSynthesize_CarriesExistingContentUnchanged(t *testing.T) {
	sp := mustSpan(t, "2025-06-01", "2025-06-03")
	existing := []domain.DayRecord{generatedDay(2, "2025-06-02")}

	got := itinerary.Synthesize(sp, existing, nil, nil)

	require.Len(t, got, 3)
	assert.Equal(t, existing[0], got[1])
	assert.Empty(t, got[0].Activities)
	assert.Empty(t, got[2].Activities)
}

func TestSynthesize_MatchesByCalendarDateWhenDayIndexDisagrees(t *testing.T) {
	sp := mustSpan(t, "2025-06-01", "2025-06-03")
	// Legacy record numbered 99 but dated inside the span.
	legacy := generatedDay(99, "2025-06-02")

	got := itinerary.Synthesize(sp, []domain.DayRecord{legacy}, nil, nil)

	require.Len(t, got, 3)
	assert.Equal(t, 2, got[1].Day, "legacy numbering is normalized to the slot")
	assert.Equal(t, "2025-06-02", got[1].Date)
	assert.Equal(t, legacy.Activities, got[1].Activities, "generated content is preserved")
	assert.Equal(t, legacy.Meals, got[1].Meals)
}

func TestSynthesize_RecordMatchingTwoSlotsIsCarriedOnce(t *testing.T) {
	sp := mustSpan(t, "2025-06-01", "2025-06-03")
	// Day index and calendar date disagree: day 3, but dated on day 2.
	// The day-index match wins; day 2 becomes a placeholder.
	conflicted := generatedDay(3, "2025-06-02")

	got := itinerary.Synthesize(sp, []domain.DayRecord{conflicted}, nil, nil)

	require.Len(t, got, 3)
	for i, rec := range got {
		assert.Equalf(t, i+1, rec.Day, "slot %d", i)
	}
	assert.Empty(t, got[1].Activities, "day 2 must not also carry the record")
	assert.Equal(t, conflicted.Activities, got[2].Activities)
}

func TestSynthesize_Idempotent(t *testing.T) {
	sp := mustSpan(t, "2025-06-01", "2025-06-05")
	segs := []domain.DestinationSegment{
		{Location: "Lyon", StartDate: "2025-06-03", EndDate: "2025-06-04", PlacesToVisit: []string{"Vieux Lyon"}},
	}

	once := itinerary.Synthesize(sp, []domain.DayRecord{generatedDay(2, "2025-06-02")}, segs, []string{"Louvre"})
	twice := itinerary.Synthesize(sp, once, segs, []string{"Louvre"})

	assert.Equal(t, once, twice)
}

func TestSynthesize_PlacesHintFromCoveringSegment(t *testing.T) {
	sp := mustSpan(t, "2025-06-01", "2025-06-05",
		domain.DestinationSegment{Location: "Lyon", StartDate: "2025-06-04", EndDate: "2025-06-05", PlacesToVisit: []string{"Vieux Lyon", "Fourvière"}},
	)

	got := itinerary.Synthesize(sp, nil, []domain.DestinationSegment{
		{Location: "Lyon", StartDate: "2025-06-04", EndDate: "2025-06-05", PlacesToVisit: []string{"Vieux Lyon", "Fourvière"}},
	}, []string{"Louvre"})

	require.Len(t, got, 5)
	assert.Equal(t, []string{"Louvre"}, got[0].PlacesToVisit, "primary places are the default")
	assert.Equal(t, []string{"Vieux Lyon", "Fourvière"}, got[3].PlacesToVisit)
	assert.Equal(t, []string{"Vieux Lyon", "Fourvière"}, got[4].PlacesToVisit)
}

func TestSynthesize_FirstMatchingSegmentWins(t *testing.T) {
	segs := []domain.DestinationSegment{
		{Location: "Lyon", StartDate: "2025-06-02", EndDate: "2025-06-03", PlacesToVisit: []string{"Vieux Lyon"}},
		{Location: "Arles", StartDate: "2025-06-03", EndDate: "2025-06-04", PlacesToVisit: []string{"Amphitheatre"}},
	}
	sp := mustSpan(t, "2025-06-01", "2025-06-05", segs...)

	got := itinerary.Synthesize(sp, nil, segs, nil)

	assert.Equal(t, []string{"Vieux Lyon"}, got[2].PlacesToVisit, "overlap resolves to the first segment")
}

func TestSynthesize_SingleDaySpan(t *testing.T) {
	sp := mustSpan(t, "2025-06-01", "2025-06-01")

	got := itinerary.Synthesize(sp, nil, nil, nil)

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Day)
	assert.Equal(t, "2025-06-01", got[0].Date)
}

// ---- UpsertDay -------------------------------------------------------------

func TestUpsertDay_ReplacesExisting(t *testing.T) {
	days := []domain.DayRecord{generatedDay(1, "2025-06-01"), generatedDay(2, "2025-06-02")}
	replacement := generatedDay(2, "2025-06-02")
	replacement.Activities[0].Name = "Boat tour"

	got := itinerary.UpsertDay(days, replacement)

	require.Len(t, got, 2)
	assert.Equal(t, "Boat tour", got[1].Activities[0].Name)
	// Untouched records keep their identity.
	assert.Equal(t, days[0], got[0])
}

func TestUpsertDay_AppendsAndSorts(t *testing.T) {
	days := []domain.DayRecord{generatedDay(1, "2025-06-01"), generatedDay(3, "2025-06-03")}

	got := itinerary.UpsertDay(days, generatedDay(2, "2025-06-02"))

	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{got[0].Day, got[1].Day, got[2].Day})
}

func TestUpsertDay_Idempotent(t *testing.T) {
	days := []domain.DayRecord{generatedDay(1, "2025-06-01")}
	rec := generatedDay(2, "2025-06-02")

	once := itinerary.UpsertDay(days, rec)
	twice := itinerary.UpsertDay(once, rec)

	assert.Equal(t, once, twice)
}

func TestUpsertDay_DoesNotMutateInput(t *testing.T) {
	days := []domain.DayRecord{generatedDay(1, "2025-06-01")}

	_ = itinerary.UpsertDay(days, generatedDay(2, "2025-06-02"))

	require.Len(t, days, 1)
}
