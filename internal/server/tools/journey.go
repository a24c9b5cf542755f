package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/argia-andreas/stockholm-public-transport-mcp/internal/journey"
)

// StopLookupInput is the argument schema for the stop_lookup tool.
type StopLookupInput struct {
	Name string `json:"name" jsonschema:"name or partial name of the stop, station or address to search for"`
}

// PlanJourneyInput is the argument schema for the plan_journey tool.
type PlanJourneyInput struct {
	OriginID              string   `json:"origin_id" jsonschema:"ID of the origin stop, as returned by stop_lookup"`
	DestinationID         string   `json:"destination_id" jsonschema:"ID of the destination stop, as returned by stop_lookup"`
	Trips                 int      `json:"trips,omitempty" jsonschema:"number of journey alternatives to return, default 3"`
	ExcludeWalking        *bool    `json:"exclude_walking,omitempty" jsonschema:"exclude walking-only connections between stops, default true"`
	ExcludeTransportTypes []string `json:"exclude_transport_types,omitempty" jsonschema:"transport types to exclude: bus, metro, train, tram, ship"`
	DepartureTime         string   `json:"departure_time,omitempty" jsonschema:"desired departure time today as HH:MM, defaults to now"`
	MaxWalkingDistance    int      `json:"max_walking_distance,omitempty" jsonschema:"maximum walking distance in meters at either end, default 500"`
}

// JourneyTools bundles the stop lookup and journey planning handlers.
type JourneyTools struct {
	planner JourneyProvider
}

// NewJourneyTools creates the journey tool handlers.
func NewJourneyTools(planner JourneyProvider) *JourneyTools {
	return &JourneyTools{planner: planner}
}

// StopLookup handles the stop_lookup tool call.
func (h *JourneyTools) StopLookup(ctx context.Context, req *mcp.CallToolRequest, in StopLookupInput) (*mcp.CallToolResult, any, error) {
	stops, err := h.planner.StopLookup(ctx, in.Name)
	if err != nil {
		return errorListResult(fmt.Sprintf("Failed to lookup stops: %v", err))
	}
	return jsonResult(stops)
}

// PlanJourney handles the plan_journey tool call.
func (h *JourneyTools) PlanJourney(ctx context.Context, req *mcp.CallToolRequest, in PlanJourneyInput) (*mcp.CallToolResult, any, error) {
	plan, err := h.planner.PlanJourney(ctx, in.OriginID, in.DestinationID, journey.PlanOptions{
		Trips:                 in.Trips,
		ExcludeWalking:        in.ExcludeWalking,
		ExcludeTransportTypes: in.ExcludeTransportTypes,
		DepartureTime:         in.DepartureTime,
		MaxWalkingDistance:    in.MaxWalkingDistance,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to plan journey: %v", err))
	}
	return jsonResult(plan)
}
