package tools

import (
	"context"

	"github.com/argia-andreas/stockholm-public-transport-mcp/internal/journey"
	"github.com/argia-andreas/stockholm-public-transport-mcp/internal/transit"
)

// JourneyProvider abstracts the journey planner for testability.
type JourneyProvider interface {
	StopLookup(ctx context.Context, name string) ([]journey.Stop, error)
	PlanJourney(ctx context.Context, originID, destinationID string, opts journey.PlanOptions) (*journey.TripPlan, error)
}

// DepartureProvider abstracts the realtime departure board.
type DepartureProvider interface {
	GetDepartures(ctx context.Context, siteID int, transportMode string, forecastMinutes int) ([]transit.Departure, error)
}

// SiteResolver abstracts site name resolution.
type SiteResolver interface {
	Resolve(ctx context.Context, name string) (*transit.Site, error)
}

// DeviationProvider abstracts the service deviations feed.
type DeviationProvider interface {
	HasAPIKey() bool
	GetDeviations(ctx context.Context, lines []string) ([]transit.Deviation, error)
}
