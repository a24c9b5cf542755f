package journey

import "encoding/json"

// TripPlan is the flattened journey response handed back to callers.
type TripPlan struct {
	Journeys       []Journey         `json:"journeys"`
	SystemMessages []json.RawMessage `json:"system_messages"`
}

// Journey summarizes one itinerary alternative.
type Journey struct {
	DurationMinutes int   `json:"duration_minutes"`
	Interchanges    int   `json:"interchanges"`
	Legs            []Leg `json:"legs"`
}

// Leg summarizes one uninterrupted segment of a journey, a ride or a walk.
type Leg struct {
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	DepartureTime   string `json:"departure_time"`
	ArrivalTime     string `json:"arrival_time"`
	TransportType   string `json:"transport_type"`
	Line            string `json:"line"`
	Direction       string `json:"direction"`
	DurationMinutes int    `json:"duration_minutes"`
}

// simplifyTrips flattens the journey planner's trips response into TripPlan,
// preserving journey and leg order. System messages pass through untouched.
func simplifyTrips(data tripsResponse) *TripPlan {
	plan := &TripPlan{
		Journeys:       make([]Journey, 0, len(data.Journeys)),
		SystemMessages: data.SystemMessages,
	}
	if plan.SystemMessages == nil {
		plan.SystemMessages = []json.RawMessage{}
	}

	for _, j := range data.Journeys {
		journey := Journey{
			DurationMinutes: j.TripDuration / 60,
			Interchanges:    j.Interchanges,
			Legs:            make([]Leg, 0, len(j.Legs)),
		}

		for _, leg := range j.Legs {
			transportType, line, direction := leg.transportDetails()

			journey.Legs = append(journey.Legs, Leg{
				Origin:          nameOrUnknown(leg.Origin.Name),
				Destination:     nameOrUnknown(leg.Destination.Name),
				DepartureTime:   bestTime(leg.Origin.DepartureTimeEstimated, leg.Origin.DepartureTimePlanned),
				ArrivalTime:     bestTime(leg.Destination.ArrivalTimeEstimated, leg.Destination.ArrivalTimePlanned),
				TransportType:   transportType,
				Line:            line,
				Direction:       direction,
				DurationMinutes: leg.Duration / 60,
			})
		}

		plan.Journeys = append(plan.Journeys, journey)
	}

	return plan
}

func nameOrUnknown(name string) string {
	if name == "" {
		return "Unknown"
	}
	return name
}

// Upstream response structures. Legs describe their transport under one of two
// shapes: the "transportation" object or the older "product" object.
type tripsResponse struct {
	Journeys       []tripJourney     `json:"journeys"`
	SystemMessages []json.RawMessage `json:"systemMessages"`
}

type tripJourney struct {
	TripDuration int       `json:"tripDuration"`
	Interchanges int       `json:"interchanges"`
	Legs         []tripLeg `json:"legs"`
}

type tripLeg struct {
	Duration       int                `json:"duration"`
	Origin         legPoint           `json:"origin"`
	Destination    legPoint           `json:"destination"`
	Transportation *legTransportation `json:"transportation"`
	Product        *legProduct        `json:"product"`
}

type legPoint struct {
	Name                   string `json:"name"`
	DepartureTimePlanned   string `json:"departureTimePlanned"`
	DepartureTimeEstimated string `json:"departureTimeEstimated"`
	ArrivalTimePlanned     string `json:"arrivalTimePlanned"`
	ArrivalTimeEstimated   string `json:"arrivalTimeEstimated"`
}

type legTransportation struct {
	Number    string `json:"number"`
	Direction string `json:"direction"`
	Product   struct {
		Name string `json:"name"`
	} `json:"product"`
}

type legProduct struct {
	Name      string `json:"name"`
	Line      string `json:"line"`
	Direction string `json:"direction"`
}

// transportDetails resolves the two upstream transport shapes. A present,
// non-empty "transportation" object always wins; "product" is the fallback.
// With neither shape the leg is treated as a walk.
func (l tripLeg) transportDetails() (transportType, line, direction string) {
	if t := l.Transportation; t != nil && *t != (legTransportation{}) {
		transportType = t.Product.Name
		if transportType == "" {
			transportType = "Walk"
		}
		return transportType, t.Number, t.Direction
	}

	transportType = "Walk"
	if p := l.Product; p != nil {
		if p.Name != "" {
			transportType = p.Name
		}
		line = p.Line
		direction = p.Direction
	}
	return transportType, line, direction
}
