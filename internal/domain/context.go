package domain

// TripContext is the snapshot handed to the generation worker. Dates
// travel as strings because clients may override the stored values with
// whatever format their form layer produced; the worker and the span
// resolver both parse defensively.
type TripContext struct {
	Destination  string               `json:"destination"`
	StartDate    string               `json:"startDate"`
	EndDate      string               `json:"endDate"`
	Budget       *float64             `json:"budget,omitempty"`
	Travelers    int                  `json:"numberOfTravelers,omitempty"`
	Preferences  Preferences          `json:"preferences"`
	Destinations []DestinationSegment `json:"destinations,omitempty"`
	Itinerary    *Itinerary           `json:"itinerary,omitempty"`
	ExistingDays []DayRecord          `json:"existingDays,omitempty"`
}

// ContextOverrides carries the optional client-supplied fields of a
// generation request. Non-zero fields win over the stored trip record,
// mirroring how the trip form lets users tweak inputs before regenerating
// without saving first.
type ContextOverrides struct {
	Destination  string               `json:"destination,omitempty"`
	StartDate    string               `json:"startDate,omitempty"`
	EndDate      string               `json:"endDate,omitempty"`
	Budget       *float64             `json:"budget,omitempty"`
	Travelers    int                  `json:"numberOfTravelers,omitempty"`
	Preferences  *Preferences         `json:"preferences,omitempty"`
	Destinations []DestinationSegment `json:"destinations,omitempty"`
	Itinerary    *Itinerary           `json:"itinerary,omitempty"`
}

// DateOnly is the canonical wire format for calendar dates.
const DateOnly = "2006-01-02"

// Context builds the worker snapshot for the trip, applying any overrides.
func (t Trip) Context(o ContextOverrides) TripContext {
	ctx := TripContext{
		Destination:  t.Destination,
		StartDate:    t.StartDate.Format(DateOnly),
		EndDate:      t.EndDate.Format(DateOnly),
		Budget:       t.Budget,
		Travelers:    t.Travelers,
		Preferences:  t.Preferences,
		Destinations: t.Destinations,
	}
	if ctx.Travelers == 0 {
		ctx.Travelers = 1
	}
	if o.Destination != "" {
		ctx.Destination = o.Destination
	}
	if o.StartDate != "" {
		ctx.StartDate = o.StartDate
	}
	if o.EndDate != "" {
		ctx.EndDate = o.EndDate
	}
	if o.Budget != nil {
		ctx.Budget = o.Budget
	}
	if o.Travelers > 0 {
		ctx.Travelers = o.Travelers
	}
	if o.Preferences != nil {
		ctx.Preferences = *o.Preferences
	}
	if o.Destinations != nil {
		ctx.Destinations = o.Destinations
	}
	if o.Itinerary != nil {
		ctx.Itinerary = o.Itinerary
	}
	return ctx
}
