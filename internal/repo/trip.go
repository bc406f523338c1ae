// Package repo contains all database access logic for the TripWeaver API.
// No business logic lives here — only SQL and type mapping. Nested
// itinerary documents are stored as jsonb and round-tripped through pgx's
// JSON codec.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dkaplan/tripweaver/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service and generation layers depend on this interface, not the
// concrete Postgres implementation, which allows unit testing with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns one page of trips ordered by start_date descending,
	// plus the total row count for pagination.
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of an existing trip and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// UpdateItinerary replaces only the itinerary document of a trip,
	// leaving every other column untouched. This is the single write path
	// used by generation merge-back.
	UpdateItinerary(ctx context.Context, id uuid.UUID, itin domain.Itinerary) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, name, destination, start_date, end_date, budget, travelers,
		destinations, preferences, itinerary, status, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (name, destination, start_date, end_date, budget, travelers,
		                   destinations, preferences, itinerary, status)
		VALUES (@name, @destination, @start_date, @end_date, @budget, @travelers,
		        @destinations, @preferences, @itinerary, @status)
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, tripArgs(trip))
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of trips ordered by start_date descending (most
// recent first) plus the total count.
func (r *pgTripRepo) List(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT ` + tripColumns + `, count(*) OVER () AS total
		FROM trips
		ORDER BY start_date DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": params.Limit, "offset": params.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var (
		trips []domain.Trip
		total int64
	)
	for rows.Next() {
		t, n, err := scanTripWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
		total = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, total, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name         = @name,
		    destination  = @destination,
		    start_date   = @start_date,
		    end_date     = @end_date,
		    budget       = @budget,
		    travelers    = @travelers,
		    destinations = @destinations,
		    preferences  = @preferences,
		    itinerary    = @itinerary,
		    status       = @status,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := tripArgs(trip)
	args["id"] = trip.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// UpdateItinerary replaces only the itinerary column.
func (r *pgTripRepo) UpdateItinerary(ctx context.Context, id uuid.UUID, itin domain.Itinerary) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET itinerary  = @itinerary,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "itinerary": itin})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.UpdateItinerary: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// tripArgs maps the mutable trip fields to named SQL arguments. The jsonb
// columns take the Go structs directly; pgx encodes them via encoding/json.
func tripArgs(trip domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":         trip.Name,
		"destination":  trip.Destination,
		"start_date":   trip.StartDate,
		"end_date":     trip.EndDate,
		"budget":       trip.Budget, // nil becomes NULL
		"travelers":    trip.Travelers,
		"destinations": trip.Destinations,
		"preferences":  trip.Preferences,
		"itinerary":    trip.Itinerary,
		"status":       trip.Status,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var t domain.Trip
	err := s.Scan(
		&t.ID, &t.Name, &t.Destination, &t.StartDate, &t.EndDate, &t.Budget, &t.Travelers,
		&t.Destinations, &t.Preferences, &t.Itinerary, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Trip{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Trip{}, err
	}
	return t, nil
}

// scanTripWithTotal is scanTrip plus the window-function total column.
func scanTripWithTotal(s scanner) (domain.Trip, int64, error) {
	var (
		t     domain.Trip
		total int64
	)
	err := s.Scan(
		&t.ID, &t.Name, &t.Destination, &t.StartDate, &t.EndDate, &t.Budget, &t.Travelers,
		&t.Destinations, &t.Preferences, &t.Itinerary, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		&total,
	)
	if err != nil {
		return domain.Trip{}, 0, err
	}
	return t, total, nil
}
