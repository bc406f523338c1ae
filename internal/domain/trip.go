// Package domain contains the core data types for the TripWeaver API.
// This package has no dependencies beyond uuid and is imported by every
// other internal package (repo, service, generation, handler).
package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	StatusPlanning  TripStatus = "planning"
	StatusBooked    TripStatus = "booked"
	StatusCompleted TripStatus = "completed"
	StatusCancelled TripStatus = "cancelled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s TripStatus) Valid() bool {
	switch s {
	case StatusPlanning, StatusBooked, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Trip is the top-level aggregate: a primary destination with its own date
// range, plus any number of additional destination segments. The itinerary
// document hangs off the trip as a single jsonb column; only its
// dailyItinerary portion is actively maintained by this system.
type Trip struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name,omitempty"`
	Destination  string               `json:"destination"`
	StartDate    time.Time            `json:"startDate"`
	EndDate      time.Time            `json:"endDate"`
	Budget       *float64             `json:"budget,omitempty"`
	Travelers    int                  `json:"travelers"`
	Destinations []DestinationSegment `json:"destinations,omitempty"`
	Preferences  Preferences          `json:"preferences"`
	Itinerary    Itinerary            `json:"itinerary"`
	Status       TripStatus           `json:"status"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// DestinationSegment is an additional destination with its own date range.
// Dates are kept as strings because clients send them in several formats
// ("2025-06-01", full timestamps, ...); internal/span owns the parsing.
// Segments carrying only one of the two dates are skipped during span
// resolution rather than rejected here.
type DestinationSegment struct {
	Location      string   `json:"location"`
	StartDate     string   `json:"startDate"`
	EndDate       string   `json:"endDate"`
	PlacesToVisit []string `json:"placesToVisit,omitempty"`
}

// Preferences captures the traveller's choices used as generation input.
type Preferences struct {
	AccommodationType   string   `json:"accommodationType,omitempty"`
	TransportationType  string   `json:"transportationType,omitempty"`
	Activities          []string `json:"activities,omitempty"`
	DietaryRestrictions []string `json:"dietaryRestrictions,omitempty"`
	PlacesToVisit       []string `json:"placesToVisit,omitempty"`
}

// DefaultName derives a display name from the primary destination and the
// additional segments, used when the trip was created unnamed.
func (t Trip) DefaultName() string {
	name := "Trip to " + t.Destination
	switch len(t.Destinations) {
	case 0:
		return name
	case 1:
		return name + " and " + t.Destinations[0].Location
	case 2:
		return name + ", " + t.Destinations[0].Location + ", and " + t.Destinations[1].Location
	default:
		return name + ", " + t.Destinations[0].Location + ", and " + strconv.Itoa(len(t.Destinations)-1) + " other destinations"
	}
}
