package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argia-andreas/stockholm-public-transport-mcp/internal/journey"
)

type stubPlanner struct {
	stops []journey.Stop
	plan  *journey.TripPlan
	err   error

	gotName   string
	gotOrigin string
	gotDest   string
	gotOpts   journey.PlanOptions
}

func (s *stubPlanner) StopLookup(ctx context.Context, name string) ([]journey.Stop, error) {
	s.gotName = name
	return s.stops, s.err
}

func (s *stubPlanner) PlanJourney(ctx context.Context, originID, destinationID string, opts journey.PlanOptions) (*journey.TripPlan, error) {
	s.gotOrigin = originID
	s.gotDest = destinationID
	s.gotOpts = opts
	return s.plan, s.err
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "content should be text")
	return text.Text
}

func TestStopLookupReturnsStopsAsJSON(t *testing.T) {
	id := "9001"
	name := "T-Centralen"
	planner := &stubPlanner{stops: []journey.Stop{{
		ID:           &id,
		Name:         &name,
		Coordinates:  []float64{59.33, 18.06},
		MatchQuality: 1000,
		IsBestMatch:  true,
	}}}
	h := NewJourneyTools(planner)

	res, structured, err := h.StopLookup(context.Background(), &mcp.CallToolRequest{}, StopLookupInput{Name: "Centralen"})
	require.NoError(t, err)
	assert.Nil(t, structured)
	assert.False(t, res.IsError)
	assert.Equal(t, "Centralen", planner.gotName)
	assert.JSONEq(t,
		`[{"id": "9001", "name": "T-Centralen", "coordinates": [59.33, 18.06], "match_quality": 1000, "is_best_match": true}]`,
		resultText(t, res))
}

func TestStopLookupUpstreamFailureIsData(t *testing.T) {
	planner := &stubPlanner{err: errors.New("journey planner returned status 500")}
	h := NewJourneyTools(planner)

	res, _, err := h.StopLookup(context.Background(), &mcp.CallToolRequest{}, StopLookupInput{Name: "Centralen"})
	require.NoError(t, err, "upstream failures are data, not protocol errors")
	assert.False(t, res.IsError)
	assert.JSONEq(t,
		`[{"error": "Failed to lookup stops: journey planner returned status 500"}]`,
		resultText(t, res))
}

func TestPlanJourneyPassesOptions(t *testing.T) {
	planner := &stubPlanner{plan: &journey.TripPlan{
		Journeys:       []journey.Journey{},
		SystemMessages: []json.RawMessage{},
	}}
	h := NewJourneyTools(planner)

	noWalk := false
	res, _, err := h.PlanJourney(context.Background(), &mcp.CallToolRequest{}, PlanJourneyInput{
		OriginID:              "9001",
		DestinationID:         "9192",
		Trips:                 5,
		ExcludeWalking:        &noWalk,
		ExcludeTransportTypes: []string{"bus"},
		DepartureTime:         "14:30",
		MaxWalkingDistance:    1000,
	})
	require.NoError(t, err)

	assert.Equal(t, "9001", planner.gotOrigin)
	assert.Equal(t, "9192", planner.gotDest)
	assert.Equal(t, 5, planner.gotOpts.Trips)
	require.NotNil(t, planner.gotOpts.ExcludeWalking)
	assert.False(t, *planner.gotOpts.ExcludeWalking)
	assert.Equal(t, []string{"bus"}, planner.gotOpts.ExcludeTransportTypes)
	assert.Equal(t, "14:30", planner.gotOpts.DepartureTime)
	assert.Equal(t, 1000, planner.gotOpts.MaxWalkingDistance)

	assert.JSONEq(t, `{"journeys": [], "system_messages": []}`, resultText(t, res))
}

func TestPlanJourneyUpstreamFailureIsData(t *testing.T) {
	planner := &stubPlanner{err: errors.New("journey planner returned status 502")}
	h := NewJourneyTools(planner)

	res, _, err := h.PlanJourney(context.Background(), &mcp.CallToolRequest{}, PlanJourneyInput{
		OriginID:      "9001",
		DestinationID: "9192",
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t,
		`{"error": "Failed to plan journey: journey planner returned status 502"}`,
		resultText(t, res))
}
