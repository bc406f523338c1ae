// Package generation drives full-plan and per-day itinerary generation:
// staged progress reporting, single-flight concurrency control, timeout
// budgets, and idempotent merge-back of validated worker output.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/dkaplan/tripweaver/backend/internal/domain"
	"github.com/dkaplan/tripweaver/backend/internal/itinerary"
	"github.com/dkaplan/tripweaver/backend/internal/repo"
	"github.com/dkaplan/tripweaver/backend/internal/worker"
)

// Options tune the orchestrator's budgets. Zero values fall back to the
// production defaults.
type Options struct {
	// FullTimeout bounds a full regeneration call. Default 180s.
	FullTimeout time.Duration
	// DayTimeout bounds a single-day generation call. Default 90s.
	DayTimeout time.Duration
	// ProgressInterval is the cosmetic stage-advance cadence. Default 10s.
	ProgressInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.FullTimeout <= 0 {
		o.FullTimeout = 180 * time.Second
	}
	if o.DayTimeout <= 0 {
		o.DayTimeout = 90 * time.Second
	}
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = 10 * time.Second
	}
	return o
}

// progressTTL bounds how long a trip's last stage stays readable after the
// request finished. Long enough for a polling client to observe the
// terminal stage, short enough that stale entries don't accumulate.
const progressTTL = 10 * time.Minute

// Orchestrator is the only component that writes itinerary content. It
// holds the per-trip single-flight locks for day generation and the TTL'd
// progress store polled by the status endpoint.
type Orchestrator struct {
	trips    repo.TripRepo
	worker   worker.Invoker
	opts     Options
	progress *gocache.Cache

	mu          sync.Mutex
	dayInFlight map[uuid.UUID]struct{}
}

// New constructs an Orchestrator over the given trip store and worker.
func New(trips repo.TripRepo, w worker.Invoker, opts Options) *Orchestrator {
	return &Orchestrator{
		trips:       trips,
		worker:      w,
		opts:        opts.withDefaults(),
		progress:    gocache.New(progressTTL, 2*progressTTL),
		dayInFlight: make(map[uuid.UUID]struct{}),
	}
}

// Status returns the last recorded stage for the trip, if any.
func (o *Orchestrator) Status(tripID uuid.UUID) (Stage, bool) {
	v, ok := o.progress.Get(tripID.String())
	if !ok {
		return "", false
	}
	return v.(Stage), true
}

func (o *Orchestrator) setStage(tripID uuid.UUID, s Stage) {
	o.progress.Set(tripID.String(), s, gocache.DefaultExpiration)
	slog.Debug("generation stage", "trip_id", tripID, "stage", s)
}

// Regenerate runs a FULL plan regeneration. On validated success the
// entire itinerary document is replaced; on any failure the stored
// itinerary is left untouched and a typed error is returned. Progress
// stages are recorded throughout and advance on a ticker while the worker
// call is in flight — they are cosmetic, never a completion signal.
func (o *Orchestrator) Regenerate(ctx context.Context, tripID uuid.UUID, overrides domain.ContextOverrides) (domain.Trip, error) {
	o.setStage(tripID, StageFetching)

	trip, err := o.trips.GetByID(ctx, tripID)
	if err != nil {
		o.setStage(tripID, StageFailed)
		return domain.Trip{}, fmt.Errorf("generation.Orchestrator.Regenerate: %w", err)
	}

	o.setStage(tripID, StageContacting)
	stopTicker := o.startProgressTicker(tripID)
	defer stopTicker()

	callCtx, cancel := context.WithTimeout(ctx, o.opts.FullTimeout)
	defer cancel()

	raw, err := o.worker.Invoke(callCtx, worker.CommandGenerateTripPlan, trip.Context(overrides))
	stopTicker()
	if err != nil {
		o.setStage(tripID, StageFailed)
		return domain.Trip{}, fmt.Errorf("generation.Orchestrator.Regenerate: %w", err)
	}

	var itin domain.Itinerary
	if err := json.Unmarshal(raw, &itin); err != nil {
		o.setStage(tripID, StageFailed)
		return domain.Trip{}, fmt.Errorf("generation.Orchestrator.Regenerate: decode plan: %w: %v", domain.ErrInvalidPlan, err)
	}

	updated, err := o.trips.UpdateItinerary(ctx, tripID, itin)
	if err != nil {
		o.setStage(tripID, StageFailed)
		return domain.Trip{}, fmt.Errorf("generation.Orchestrator.Regenerate: persist: %w", err)
	}

	o.setStage(tripID, StageComplete)
	return updated, nil
}

// dayRequest is the payload shape the worker expects for the
// generate_day_itinerary command.
type dayRequest struct {
	TripData  domain.TripContext `json:"tripData"`
	DayNumber int                `json:"dayNumber"`
}

type dayResponse struct {
	DayItinerary domain.DayRecord `json:"dayItinerary"`
}

// GenerateDay runs a SINGLE_DAY generation for the given 1-based day
// index. At most one day generation may be in flight per trip: a
// concurrent request is rejected immediately with ErrGenerationInFlight
// rather than queued. On validated success the returned fragment is merged
// into a freshly read record by day-index upsert plus re-sort, leaving
// every other day and the rest of the itinerary untouched.
func (o *Orchestrator) GenerateDay(ctx context.Context, tripID uuid.UUID, day int, overrides domain.ContextOverrides, existingDays []domain.DayRecord) (domain.Trip, error) {
	if day < 1 {
		return domain.Trip{}, fmt.Errorf("generation.Orchestrator.GenerateDay: %w: day must be >= 1", domain.ErrValidation)
	}

	if !o.acquireDayLock(tripID) {
		return domain.Trip{}, fmt.Errorf("generation.Orchestrator.GenerateDay: trip %s: %w", tripID, domain.ErrGenerationInFlight)
	}
	defer o.releaseDayLock(tripID)

	trip, err := o.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("generation.Orchestrator.GenerateDay: %w", err)
	}

	tripCtx := trip.Context(overrides)
	tripCtx.ExistingDays = existingDays
	if tripCtx.Itinerary == nil {
		itin := trip.Itinerary
		tripCtx.Itinerary = &itin
	}

	callCtx, cancel := context.WithTimeout(ctx, o.opts.DayTimeout)
	defer cancel()

	raw, err := o.worker.Invoke(callCtx, worker.CommandGenerateDayItinerary, dayRequest{TripData: tripCtx, DayNumber: day})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("generation.Orchestrator.GenerateDay: day %d: %w", day, err)
	}

	var resp dayResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.Trip{}, fmt.Errorf("generation.Orchestrator.GenerateDay: decode day: %w: %v", domain.ErrInvalidPlan, err)
	}
	if resp.DayItinerary.Day != day {
		return domain.Trip{}, fmt.Errorf("generation.Orchestrator.GenerateDay: %w: worker returned day %d for requested day %d",
			domain.ErrInvalidPlan, resp.DayItinerary.Day, day)
	}

	// Re-read before merging so a full regeneration that landed while the
	// worker was running is not clobbered wholesale — only the one day is.
	fresh, err := o.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("generation.Orchestrator.GenerateDay: reread: %w", err)
	}

	fresh.Itinerary.DailyItinerary = itinerary.UpsertDay(fresh.Itinerary.DailyItinerary, resp.DayItinerary)

	updated, err := o.trips.UpdateItinerary(ctx, tripID, fresh.Itinerary)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("generation.Orchestrator.GenerateDay: persist: %w", err)
	}

	slog.Info("day itinerary merged", "trip_id", tripID, "day", resp.DayItinerary.Day)
	return updated, nil
}

func (o *Orchestrator) acquireDayLock(tripID uuid.UUID) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, held := o.dayInFlight[tripID]; held {
		return false
	}
	o.dayInFlight[tripID] = struct{}{}
	return true
}

func (o *Orchestrator) releaseDayLock(tripID uuid.UUID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.dayInFlight, tripID)
}

// startProgressTicker advances the trip's stage through the cosmetic
// middle stages on a fixed cadence until stopped. The returned stop
// function is idempotent and does not return until the ticker goroutine
// has exited, so no cosmetic stage can be written after a terminal one.
func (o *Orchestrator) startProgressTicker(tripID uuid.UUID) func() {
	done := make(chan struct{})
	exited := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() { close(done) })
		<-exited
	}

	go func() {
		defer close(exited)
		ticker := time.NewTicker(o.opts.ProgressInterval)
		defer ticker.Stop()
		for _, stage := range tickedStages {
			select {
			case <-done:
				return
			case <-ticker.C:
				o.setStage(tripID, stage)
			}
		}
	}()

	return stop
}
