package domain

// Itinerary is the generated plan attached to a trip. Everything except
// DailyItinerary passes through this system unchanged: flights,
// accommodations, cost totals and additional info are written wholesale by
// a FULL regeneration and otherwise left alone.
type Itinerary struct {
	Flights        []Flight        `json:"flights"`
	Accommodations []Accommodation `json:"accommodations"`
	DailyItinerary []DayRecord     `json:"dailyItinerary"`
	TotalCost      CostBreakdown   `json:"totalCost"`
	AdditionalInfo AdditionalInfo  `json:"additionalInfo"`
}

// EmptyItinerary returns the scaffold attached to every freshly created
// trip. Slices are non-nil so the document round-trips as [] rather than
// null through jsonb and the API.
func EmptyItinerary() Itinerary {
	return Itinerary{
		Flights:        []Flight{},
		Accommodations: []Accommodation{},
		DailyItinerary: []DayRecord{},
		AdditionalInfo: AdditionalInfo{
			EmergencyContacts: []string{},
			LocalCustoms:      []string{},
			PackingList:       []string{},
			WeatherForecast:   []string{},
		},
	}
}

// DayRecord is one calendar day of the plan. Day is the 1-based index into
// the resolved span; Date is derived from the span start and is not
// independently authoritative. PlacesToVisit is a generation hint attached
// at synthesis time from the destination segment covering that day.
type DayRecord struct {
	Day            int                `json:"day"`
	Date           string             `json:"date"`
	Accommodation  *Accommodation     `json:"accommodation,omitempty"`
	Activities     []Activity         `json:"activities"`
	Meals          []Meal             `json:"meals"`
	Transportation []TransportSegment `json:"transportation"`
	PlacesToVisit  []string           `json:"placesToVisit,omitempty"`
}

// Activity is a single planned activity within a day.
type Activity struct {
	Time        string  `json:"time,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Location    string  `json:"location,omitempty"`
	Cost        float64 `json:"cost,omitempty"`
}

// Meal is a planned meal within a day.
type Meal struct {
	Type       string  `json:"type"` // breakfast, lunch, dinner
	Venue      string  `json:"venue,omitempty"`
	Cuisine    string  `json:"cuisine,omitempty"`
	Cost       float64 `json:"cost,omitempty"`
	Suggestion string  `json:"suggestion,omitempty"`
}

// TransportSegment is a within-day transfer.
type TransportSegment struct {
	Mode     string  `json:"mode"`
	From     string  `json:"from,omitempty"`
	To       string  `json:"to,omitempty"`
	Duration string  `json:"duration,omitempty"`
	Cost     float64 `json:"cost,omitempty"`
}

// Flight is a pass-through record produced by FULL regeneration.
type Flight struct {
	Airline       string  `json:"airline,omitempty"`
	FlightNumber  string  `json:"flightNumber,omitempty"`
	Departure     string  `json:"departure,omitempty"`
	Arrival       string  `json:"arrival,omitempty"`
	DepartureTime string  `json:"departureTime,omitempty"`
	ArrivalTime   string  `json:"arrivalTime,omitempty"`
	Cost          float64 `json:"cost,omitempty"`
}

// Accommodation is a pass-through lodging record.
type Accommodation struct {
	Name         string  `json:"name"`
	Address      string  `json:"address,omitempty"`
	CheckIn      string  `json:"checkIn,omitempty"`
	CheckOut     string  `json:"checkOut,omitempty"`
	CostPerNight float64 `json:"costPerNight,omitempty"`
	TotalCost    float64 `json:"totalCost,omitempty"`
}

// CostBreakdown is the per-category cost summary of the whole plan.
type CostBreakdown struct {
	Flights        float64 `json:"flights"`
	Accommodation  float64 `json:"accommodation"`
	Activities     float64 `json:"activities"`
	Transportation float64 `json:"transportation"`
	Meals          float64 `json:"meals"`
	Total          float64 `json:"total"`
}

// AdditionalInfo carries generated advisory content.
type AdditionalInfo struct {
	EmergencyContacts []string `json:"emergencyContacts"`
	LocalCustoms      []string `json:"localCustoms"`
	PackingList       []string `json:"packingList"`
	WeatherForecast   []string `json:"weatherForecast"`
}
