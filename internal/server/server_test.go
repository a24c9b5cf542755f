package server

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argia-andreas/stockholm-public-transport-mcp/internal/journey"
	"github.com/argia-andreas/stockholm-public-transport-mcp/internal/transit"
)

type fakePlanner struct{}

func (fakePlanner) StopLookup(ctx context.Context, name string) ([]journey.Stop, error) {
	id := "9001"
	stopName := "T-Centralen"
	return []journey.Stop{{
		ID:           &id,
		Name:         &stopName,
		Coordinates:  []float64{59.33, 18.06},
		MatchQuality: 1000,
		IsBestMatch:  true,
	}}, nil
}

func (fakePlanner) PlanJourney(ctx context.Context, originID, destinationID string, opts journey.PlanOptions) (*journey.TripPlan, error) {
	return &journey.TripPlan{
		Journeys:       []journey.Journey{},
		SystemMessages: []json.RawMessage{},
	}, nil
}

type fakeDepartures struct{}

func (fakeDepartures) GetDepartures(ctx context.Context, siteID int, transportMode string, forecastMinutes int) ([]transit.Departure, error) {
	return []transit.Departure{}, nil
}

type fakeSites struct{}

func (fakeSites) Resolve(ctx context.Context, name string) (*transit.Site, error) {
	return &transit.Site{ID: 9192, Name: "Slussen"}, nil
}

type fakeDeviations struct{}

func (fakeDeviations) HasAPIKey() bool { return true }

func (fakeDeviations) GetDeviations(ctx context.Context, lines []string) ([]transit.Deviation, error) {
	return []transit.Deviation{}, nil
}

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	srv := New(fakePlanner{}, fakeDepartures{}, fakeSites{}, fakeDeviations{})
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := srv.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	return session
}

func TestServerListsTools(t *testing.T) {
	session := connect(t)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t,
		[]string{"stop_lookup", "plan_journey", "stop_departures", "service_deviations"},
		names)
}

func TestServerCallsStopLookup(t *testing.T) {
	session := connect(t)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "stop_lookup",
		Arguments: map[string]any{"name": "Centralen"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t,
		`[{"id": "9001", "name": "T-Centralen", "coordinates": [59.33, 18.06], "match_quality": 1000, "is_best_match": true}]`,
		text.Text)
}

func TestServerCallsPlanJourney(t *testing.T) {
	session := connect(t)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "plan_journey",
		Arguments: map[string]any{"origin_id": "9001", "destination_id": "9192"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"journeys": [], "system_messages": []}`, text.Text)
}

func TestServerRejectsUnknownTool(t *testing.T) {
	session := connect(t)

	_, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "teleport",
		Arguments: map[string]any{},
	})
	require.Error(t, err)
}
