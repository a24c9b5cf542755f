// Package server assembles the MCP server and its middleware.
package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/argia-andreas/stockholm-public-transport-mcp/internal/server/tools"
)

// Version is reported to MCP clients and on the health endpoint.
const Version = "1.0.0"

const serverName = "stockholm-public-transport"

const instructions = `Tools for Stockholm public transport (SL). Use stop_lookup to find the
ID of a stop, station or address, then plan_journey with the origin and
destination IDs. stop_departures shows the realtime board for a site and
service_deviations lists current disruptions. All times are Stockholm local
time in HH:MM.`

// New assembles the MCP server with every tool registered.
func New(planner tools.JourneyProvider, departures tools.DepartureProvider, sites tools.SiteResolver, deviations tools.DeviationProvider) *mcp.Server {
	srv := mcp.NewServer(
		&mcp.Implementation{Name: serverName, Version: Version},
		&mcp.ServerOptions{Instructions: instructions},
	)

	srv.AddReceivingMiddleware(Recovery, Logging)

	readOnly := &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true}

	journeyTools := tools.NewJourneyTools(planner)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "stop_lookup",
		Description: "Search Stockholm public transport stops, stations and addresses by name. Returns matching stops with their IDs, best matches first.",
		Annotations: readOnly,
	}, journeyTools.StopLookup)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "plan_journey",
		Description: "Plan a public transport journey between two stops in Stockholm. Returns journey alternatives with departure and arrival times, transport types, lines and directions.",
		Annotations: readOnly,
	}, journeyTools.PlanJourney)

	transitTools := tools.NewTransitTools(departures, sites, deviations)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "stop_departures",
		Description: "Show the realtime departure board for a stop, by site ID or by name. Returns upcoming departures with lines, destinations and expected times.",
		Annotations: readOnly,
	}, transitTools.StopDepartures)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "service_deviations",
		Description: "List current service deviations and disruptions in the SL network, optionally filtered by line.",
		Annotations: readOnly,
	}, transitTools.ServiceDeviations)

	return srv
}
