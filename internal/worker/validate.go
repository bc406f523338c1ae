package worker

import (
	"encoding/json"
	"fmt"

	"github.com/dkaplan/tripweaver/backend/internal/domain"
)

// planShape is the minimal structure a full-plan response must satisfy.
// json.RawMessage fields let us distinguish "absent" from "present but
// wrong type" without committing to the full document shape here.
type planShape struct {
	DailyItinerary []json.RawMessage `json:"dailyItinerary"`
	TotalCost      *struct {
		Total json.RawMessage `json:"total"`
	} `json:"totalCost"`
}

type dayShape struct {
	DayItinerary *struct {
		Day int `json:"day"`
	} `json:"dayItinerary"`
}

// ValidateResponse checks the parsed worker output against the shape
// required for the given command before any of it is accepted into a trip.
// A validation failure is terminal for the call; the caller is not
// expected to repair the document.
func ValidateResponse(command string, raw json.RawMessage) error {
	switch command {
	case CommandGenerateTripPlan:
		return validatePlan(raw)
	case CommandGenerateDayItinerary:
		return validateDay(raw)
	default:
		return fmt.Errorf("%w: unknown command %q", domain.ErrInvalidPlan, command)
	}
}

func validatePlan(raw json.RawMessage) error {
	var p planShape
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPlan, err)
	}
	if len(p.DailyItinerary) == 0 {
		return fmt.Errorf("%w: dailyItinerary is absent or empty", domain.ErrInvalidPlan)
	}
	if p.TotalCost == nil || len(p.TotalCost.Total) == 0 {
		return fmt.Errorf("%w: totalCost.total is missing", domain.ErrInvalidPlan)
	}
	var total float64
	if err := json.Unmarshal(p.TotalCost.Total, &total); err != nil {
		return fmt.Errorf("%w: totalCost.total is not numeric", domain.ErrInvalidPlan)
	}
	return nil
}

func validateDay(raw json.RawMessage) error {
	var d dayShape
	if err := json.Unmarshal(raw, &d); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPlan, err)
	}
	if d.DayItinerary == nil {
		return fmt.Errorf("%w: dayItinerary is missing", domain.ErrInvalidPlan)
	}
	if d.DayItinerary.Day < 1 {
		return fmt.Errorf("%w: dayItinerary.day must be positive", domain.ErrInvalidPlan)
	}
	return nil
}
