package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StopDeparturesInput is the argument schema for the stop_departures tool.
// Either site_id or name must be given.
type StopDeparturesInput struct {
	SiteID        int    `json:"site_id,omitempty" jsonschema:"numeric SL site ID of the stop"`
	Name          string `json:"name,omitempty" jsonschema:"stop name to resolve when the site ID is not known"`
	TransportMode string `json:"transport_mode,omitempty" jsonschema:"limit the board to one mode: bus, metro, train, tram, ship or ferry"`
	Forecast      int    `json:"forecast,omitempty" jsonschema:"lookahead window in minutes, default 60"`
}

// ServiceDeviationsInput is the argument schema for the service_deviations
// tool.
type ServiceDeviationsInput struct {
	Lines []string `json:"lines,omitempty" jsonschema:"only show deviations affecting these lines"`
}

// TransitTools bundles the realtime departure and deviation handlers.
type TransitTools struct {
	departures DepartureProvider
	sites      SiteResolver
	deviations DeviationProvider
}

// NewTransitTools creates the transit tool handlers.
func NewTransitTools(departures DepartureProvider, sites SiteResolver, deviations DeviationProvider) *TransitTools {
	return &TransitTools{
		departures: departures,
		sites:      sites,
		deviations: deviations,
	}
}

// StopDepartures handles the stop_departures tool call.
func (h *TransitTools) StopDepartures(ctx context.Context, req *mcp.CallToolRequest, in StopDeparturesInput) (*mcp.CallToolResult, any, error) {
	siteID := in.SiteID
	if siteID == 0 {
		if in.Name == "" {
			return errorListResult("Failed to fetch departures: site_id or name is required")
		}
		site, err := h.sites.Resolve(ctx, in.Name)
		if err != nil {
			return errorListResult(fmt.Sprintf("Failed to fetch departures: %v", err))
		}
		siteID = site.ID
	}

	departures, err := h.departures.GetDepartures(ctx, siteID, in.TransportMode, in.Forecast)
	if err != nil {
		return errorListResult(fmt.Sprintf("Failed to fetch departures: %v", err))
	}
	return jsonResult(departures)
}

// ServiceDeviations handles the service_deviations tool call.
func (h *TransitTools) ServiceDeviations(ctx context.Context, req *mcp.CallToolRequest, in ServiceDeviationsInput) (*mcp.CallToolResult, any, error) {
	if !h.deviations.HasAPIKey() {
		return errorListResult("Failed to fetch deviations: TRAFIKLAB_API_KEY not configured")
	}

	deviations, err := h.deviations.GetDeviations(ctx, in.Lines)
	if err != nil {
		return errorListResult(fmt.Sprintf("Failed to fetch deviations: %v", err))
	}
	return jsonResult(deviations)
}
