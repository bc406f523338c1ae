package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaplan/tripweaver/backend/internal/domain"
	"github.com/dkaplan/tripweaver/backend/internal/repo"
	"github.com/dkaplan/tripweaver/backend/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field — set only the ones your test needs.
type mockTripRepo struct {
	create          func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list            func(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)
	update          func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	updateItinerary func(ctx context.Context, id uuid.UUID, itin domain.Itinerary) (domain.Trip, error)
	delete          func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, params)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) UpdateItinerary(ctx context.Context, id uuid.UUID, itin domain.Itinerary) (domain.Trip, error) {
	return m.updateItinerary(ctx, id, itin)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validTrip() domain.Trip {
	return domain.Trip{
		Destination: "Paris",
		StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Travelers:   2,
	}
}

func echoRepo() *mockTripRepo {
	// A repo that echoes whatever it receives back — useful for Create/Update
	// tests that only care about validation logic, not what the DB returns.
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	got, err := svc.Create(context.Background(), validTrip())

	require.NoError(t, err)
	assert.Equal(t, "Paris", got.Destination)
	assert.Equal(t, domain.StatusPlanning, got.Status)
}

func TestTripService_Create_ScaffoldsEmptyItinerary(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.Itinerary.DailyItinerary = []domain.DayRecord{{Day: 1}} // must be discarded

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.NotNil(t, got.Itinerary.DailyItinerary)
	assert.Empty(t, got.Itinerary.DailyItinerary)
	assert.NotNil(t, got.Itinerary.Flights)
}

func TestTripService_Create_DefaultName(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.Name = "  "
	trip.Destinations = []domain.DestinationSegment{{Location: "Lyon"}}

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "Trip to Paris and Lyon", got.Name)
}

func TestTripService_Create_DefaultNameManySegments(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.Name = ""
	trip.Destinations = []domain.DestinationSegment{
		{Location: "Lyon"},
		{Location: "Nice"},
		{Location: "Marseille"},
	}

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "Trip to Paris, Lyon, and 2 other destinations", got.Name)
}

func TestTripService_Create_MissingDestination(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.Destination = "   "

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_EndBeforeStart(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.EndDate = trip.StartDate.AddDate(0, 0, -1)

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_SameDayTripAllowed(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.EndDate = trip.StartDate

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_UnknownStatus(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.Status = "daydreaming"

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_SegmentEndsBeforeStart(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.Destinations = []domain.DestinationSegment{
		{Location: "Lyon", StartDate: "2025-06-05", EndDate: "2025-06-02"},
	}

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_PartialSegmentTolerated(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.Destinations = []domain.DestinationSegment{
		{Location: "Lyon", StartDate: "2025-06-02"},
	}

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

// ---- Update tests ----------------------------------------------------------

func TestTripService_Update_PreservesStoredItinerary(t *testing.T) {
	stored := validTrip()
	stored.ID = uuid.New()
	stored.Itinerary = domain.EmptyItinerary()
	stored.Itinerary.DailyItinerary = []domain.DayRecord{{Day: 1, Date: "2025-06-01"}}

	r := echoRepo()
	r.getByID = func(context.Context, uuid.UUID) (domain.Trip, error) { return stored, nil }
	svc := service.NewTripService(r)

	update := validTrip()
	update.ID = stored.ID
	update.Destination = "Rome"
	update.Itinerary = domain.Itinerary{} // client-supplied itinerary is ignored

	got, err := svc.Update(context.Background(), update)

	require.NoError(t, err)
	assert.Equal(t, "Rome", got.Destination)
	require.Len(t, got.Itinerary.DailyItinerary, 1)
	assert.Equal(t, 1, got.Itinerary.DailyItinerary[0].Day)
}

func TestTripService_Update_NotFound(t *testing.T) {
	r := echoRepo()
	r.getByID = func(context.Context, uuid.UUID) (domain.Trip, error) {
		return domain.Trip{}, domain.ErrNotFound
	}
	svc := service.NewTripService(r)

	_, err := svc.Update(context.Background(), validTrip())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- List tests ------------------------------------------------------------

func TestTripService_List_NilBecomesEmptySlice(t *testing.T) {
	r := &mockTripRepo{list: func(context.Context, domain.PaginationParams) ([]domain.Trip, int64, error) {
		return nil, 0, nil
	}}
	svc := service.NewTripService(r)

	got, total, err := svc.List(context.Background(), domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Zero(t, total)
}

// ---- Days tests ------------------------------------------------------------

func TestTripService_Days_SynthesizesFullSpan(t *testing.T) {
	stored := validTrip()
	stored.ID = uuid.New()
	stored.Destinations = []domain.DestinationSegment{
		{Location: "Lyon", StartDate: "2025-06-04", EndDate: "2025-06-05"},
	}
	stored.Itinerary = domain.EmptyItinerary()
	stored.Itinerary.DailyItinerary = []domain.DayRecord{
		{Day: 2, Date: "2025-06-02", Activities: []domain.Activity{{Name: "Seine cruise"}}, Meals: []domain.Meal{}, Transportation: []domain.TransportSegment{}},
	}

	r := &mockTripRepo{getByID: func(context.Context, uuid.UUID) (domain.Trip, error) { return stored, nil }}
	svc := service.NewTripService(r)

	got, err := svc.Days(context.Background(), stored.ID)

	require.NoError(t, err)
	// Primary 3 days widened to 5 by the appended segment.
	require.Len(t, got, 5)
	assert.Equal(t, "Seine cruise", got[1].Activities[0].Name, "generated content carried over")
	assert.Empty(t, got[4].Activities)
}

func TestTripService_Days_NotFound(t *testing.T) {
	r := &mockTripRepo{getByID: func(context.Context, uuid.UUID) (domain.Trip, error) {
		return domain.Trip{}, domain.ErrNotFound
	}}
	svc := service.NewTripService(r)

	_, err := svc.Days(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
