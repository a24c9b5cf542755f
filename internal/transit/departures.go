package transit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/argia-andreas/stockholm-public-transport-mcp/internal/cache"
)

// DefaultForecastMinutes is the departure board lookahead when the caller
// does not say.
const DefaultForecastMinutes = 60

// Departure is one upcoming departure from a site's realtime board.
type Departure struct {
	Line          string `json:"line"`
	TransportMode string `json:"transport_mode"`
	Destination   string `json:"destination"`
	Display       string `json:"display"`
	DepartureTime string `json:"departure_time"`
	State         string `json:"state"`
	Platform      string `json:"platform,omitempty"`
}

// DepartureService fetches realtime departures from the SL Transport API.
type DepartureService struct {
	baseURL string
	client  *http.Client
	cache   *cache.Cache[[]Departure]
}

// NewDepartureService creates a departure service against baseURL.
func NewDepartureService(baseURL string, timeout, cacheTTL time.Duration) *DepartureService {
	return &DepartureService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		cache:   cache.New[[]Departure](cacheTTL),
	}
}

// GetDepartures fetches upcoming departures from a site. transportMode
// narrows the board to one mode (bus, metro, train, tram, ship, ferry) and
// forecastMinutes bounds the lookahead window.
func (s *DepartureService) GetDepartures(ctx context.Context, siteID int, transportMode string, forecastMinutes int) ([]Departure, error) {
	if forecastMinutes <= 0 {
		forecastMinutes = DefaultForecastMinutes
	}

	cacheKey := fmt.Sprintf("%d/%s/%d", siteID, transportMode, forecastMinutes)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("forecast", fmt.Sprintf("%d", forecastMinutes))
	if transportMode != "" {
		params.Set("transport", strings.ToUpper(transportMode))
	}

	apiURL := fmt.Sprintf("%s/sites/%d/departures?%s", s.baseURL, siteID, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building departures request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching departures: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transport API returned status %d", resp.StatusCode)
	}

	var result departuresResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing departures response: %w", err)
	}

	departures := parseDepartures(result)
	s.cache.Set(cacheKey, departures)
	return departures, nil
}

func parseDepartures(resp departuresResponse) []Departure {
	departures := make([]Departure, 0, len(resp.Departures))
	for _, d := range resp.Departures {
		when := d.Expected
		if when == "" {
			when = d.Scheduled
		}

		departures = append(departures, Departure{
			Line:          d.Line.Designation,
			TransportMode: d.Line.TransportMode,
			Destination:   d.Destination,
			Display:       d.Display,
			DepartureTime: localClock(when),
			State:         d.State,
			Platform:      d.StopPoint.Designation,
		})
	}
	return departures
}

// localClock trims an SL Transport timestamp, already in Stockholm local
// time, down to HH:MM. Empty or unrecognized values pass through unchanged.
func localClock(ts string) string {
	if ts == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02T15:04:05", ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04")
}

// API response structures
type departuresResponse struct {
	Departures []struct {
		Destination string `json:"destination"`
		Display     string `json:"display"`
		State       string `json:"state"`
		Scheduled   string `json:"scheduled"`
		Expected    string `json:"expected"`
		Line        struct {
			Designation   string `json:"designation"`
			TransportMode string `json:"transport_mode"`
		} `json:"line"`
		StopPoint struct {
			Designation string `json:"designation"`
		} `json:"stop_point"`
	} `json:"departures"`
}
