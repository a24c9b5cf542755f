// Package journey wraps the SL Journey Planner v2 API: stop lookup through
// the stop-finder endpoint and trip planning through the trips endpoint, with
// responses flattened into compact summaries.
package journey

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultTrips is how many journey alternatives are requested when the
	// caller does not say.
	DefaultTrips = 3

	// DefaultMaxWalkingDistance is the walking distance in meters allowed at
	// either end of a journey when the caller does not say.
	DefaultMaxWalkingDistance = 500
)

// Transport type exclusion codes understood by the trips endpoint. The codes
// for the requested exclusions are summed into the excludedMeans parameter.
var transportTypeBits = map[string]int{
	"bus":   1,
	"metro": 2,
	"train": 4,
	"tram":  8,
	"ship":  16,
}

const walkingBit = 32

// Service talks to the SL Journey Planner API.
type Service struct {
	baseURL string
	client  *http.Client
}

// NewService creates a journey planner client against baseURL.
func NewService(baseURL string, timeout time.Duration) *Service {
	return &Service{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Stop is one stop-finder match. ID and Name stay nil when the upstream
// record omits them.
type Stop struct {
	ID           *string   `json:"id"`
	Name         *string   `json:"name"`
	Coordinates  []float64 `json:"coordinates"`
	MatchQuality int       `json:"match_quality"`
	IsBestMatch  bool      `json:"is_best_match"`
}

type stopFinderResponse struct {
	Locations []stopFinderLocation `json:"locations"`
}

type stopFinderLocation struct {
	ID           *string   `json:"id"`
	Name         *string   `json:"name"`
	Coord        []float64 `json:"coord"`
	MatchQuality int       `json:"matchQuality"`
	IsBest       bool      `json:"isBest"`
}

// StopLookup searches stops, stations and addresses by name. Matches come
// back in upstream order, best matches first.
func (s *Service) StopLookup(ctx context.Context, name string) ([]Stop, error) {
	params := url.Values{}
	params.Set("name_sf", name)
	params.Set("any_obj_filter_sf", "2")
	params.Set("type_sf", "any")

	reqURL := fmt.Sprintf("%s/stop-finder?%s", s.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building stop-finder request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching stops: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("journey planner returned status %d", resp.StatusCode)
	}

	var data stopFinderResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding stop-finder response: %w", err)
	}

	stops := make([]Stop, 0, len(data.Locations))
	for _, loc := range data.Locations {
		coords := loc.Coord
		if coords == nil {
			coords = []float64{}
		}
		stops = append(stops, Stop{
			ID:           loc.ID,
			Name:         loc.Name,
			Coordinates:  coords,
			MatchQuality: loc.MatchQuality,
			IsBestMatch:  loc.IsBest,
		})
	}
	return stops, nil
}

// PlanOptions tunes a PlanJourney call. Zero values fall back to defaults:
// DefaultTrips alternatives, DefaultMaxWalkingDistance meters, walking
// excluded as an in-between mode.
type PlanOptions struct {
	Trips                 int
	ExcludeWalking        *bool
	ExcludeTransportTypes []string
	DepartureTime         string
	MaxWalkingDistance    int
}

// PlanJourney plans trips between two stop IDs and flattens the result.
func (s *Service) PlanJourney(ctx context.Context, originID, destinationID string, opts PlanOptions) (*TripPlan, error) {
	trips := opts.Trips
	if trips <= 0 {
		trips = DefaultTrips
	}
	maxWalk := opts.MaxWalkingDistance
	if maxWalk <= 0 {
		maxWalk = DefaultMaxWalkingDistance
	}
	excludeWalking := true
	if opts.ExcludeWalking != nil {
		excludeWalking = *opts.ExcludeWalking
	}

	params := url.Values{}
	params.Set("type_origin", "any")
	params.Set("type_destination", "any")
	params.Set("name_origin", originID)
	params.Set("name_destination", destinationID)
	params.Set("calc_number_of_trips", strconv.Itoa(trips))
	params.Set("maxWalkingDistanceOrigin", strconv.Itoa(maxWalk))
	params.Set("maxWalkingDistanceDestination", strconv.Itoa(maxWalk))

	if mask := exclusionMask(opts.ExcludeTransportTypes, excludeWalking); mask != 0 {
		params.Set("excludedMeans", strconv.Itoa(mask))
	}

	if date, clock, ok := departureParams(opts.DepartureTime); ok {
		params.Set("date", date)
		params.Set("time", clock)
	}

	reqURL := fmt.Sprintf("%s/trips?%s", s.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building trips request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching trips: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("journey planner returned status %d", resp.StatusCode)
	}

	var data tripsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding trips response: %w", err)
	}

	return simplifyTrips(data), nil
}

// exclusionMask sums the exclusion codes for the named transport types plus
// the walking code when walking transfers are excluded. Type names are
// matched case-insensitively; unknown names are ignored.
func exclusionMask(types []string, excludeWalking bool) int {
	mask := 0
	for _, t := range types {
		if bit, ok := transportTypeBits[strings.ToLower(t)]; ok {
			mask |= bit
		}
	}
	if excludeWalking {
		mask |= walkingBit
	}
	return mask
}

// departureParams turns an "HH:MM" departure time into the date and time
// parameters the trips endpoint expects, dated today. Anything not matching
// hours:minutes reports ok=false and the departure time is dropped.
func departureParams(departureTime string) (date, clock string, ok bool) {
	parts := strings.Split(departureTime, ":")
	if len(parts) != 2 {
		return "", "", false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", "", false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", false
	}
	return time.Now().Format("2006-01-02"), fmt.Sprintf("%02d:%02d", hour, minute), true
}
