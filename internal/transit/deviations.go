package transit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/argia-andreas/stockholm-public-transport-mcp/internal/cache"
)

// Deviation represents an active service deviation from the Trafiklab
// GTFS-RT service alerts feed.
type Deviation struct {
	ID          string   `json:"id"`
	Lines       []string `json:"lines"`
	Header      string   `json:"header"`
	Description string   `json:"description"`
}

// DeviationService fetches and caches SL service deviations.
type DeviationService struct {
	feedURL string
	apiKey  string
	client  *http.Client
	cache   *cache.Cache[[]Deviation]
}

// NewDeviationService creates a deviation service reading the GTFS-RT feed
// at feedURL, authenticated with a Trafiklab API key.
func NewDeviationService(feedURL, apiKey string, timeout, cacheTTL time.Duration) *DeviationService {
	return &DeviationService{
		feedURL: feedURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		cache:   cache.New[[]Deviation](cacheTTL),
	}
}

// HasAPIKey returns true if the service has an API key configured
func (s *DeviationService) HasAPIKey() bool {
	return s.apiKey != ""
}

// GetDeviations returns active deviations, optionally filtered by line.
func (s *DeviationService) GetDeviations(ctx context.Context, lines []string) ([]Deviation, error) {
	all, err := s.fetchDeviations(ctx)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return all, nil
	}

	lineSet := make(map[string]bool, len(lines))
	for _, l := range lines {
		lineSet[l] = true
	}

	filtered := make([]Deviation, 0, len(all))
	for _, dev := range all {
		for _, l := range dev.Lines {
			if lineSet[l] {
				filtered = append(filtered, dev)
				break
			}
		}
	}
	return filtered, nil
}

func (s *DeviationService) fetchDeviations(ctx context.Context) ([]Deviation, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("TRAFIKLAB_API_KEY not configured")
	}

	if cached, ok := s.cache.Get("all"); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building deviations request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching deviations feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deviations feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading deviations response: %w", err)
	}

	feed := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		return nil, fmt.Errorf("parsing deviations protobuf: %w", err)
	}

	deviations := parseDeviations(feed)
	s.cache.Set("all", deviations)
	return deviations, nil
}

func parseDeviations(feed *gtfs.FeedMessage) []Deviation {
	deviations := make([]Deviation, 0, len(feed.GetEntity()))
	now := time.Now().Unix()

	for _, entity := range feed.GetEntity() {
		alert := entity.GetAlert()
		if alert == nil {
			continue
		}

		active := len(alert.GetActivePeriod()) == 0
		for _, period := range alert.GetActivePeriod() {
			start := int64(period.GetStart())
			end := int64(period.GetEnd())
			if now >= start && (end == 0 || now < end) {
				active = true
				break
			}
		}
		if !active {
			continue
		}

		affected := []string{}
		seen := make(map[string]bool)
		for _, ie := range alert.GetInformedEntity() {
			if routeID := ie.GetRouteId(); routeID != "" && !seen[routeID] {
				seen[routeID] = true
				affected = append(affected, routeID)
			}
		}

		header := translatedText(alert.GetHeaderText())
		if header == "" {
			continue
		}

		deviations = append(deviations, Deviation{
			ID:          entity.GetId(),
			Lines:       affected,
			Header:      header,
			Description: translatedText(alert.GetDescriptionText()),
		})
	}

	return deviations
}

// translatedText picks the Swedish translation when present, then English,
// then whatever comes first.
func translatedText(ts *gtfs.TranslatedString) string {
	if ts == nil {
		return ""
	}
	for _, lang := range []string{"sv", "en", ""} {
		for _, t := range ts.GetTranslation() {
			if t.GetLanguage() == lang {
				return t.GetText()
			}
		}
	}
	if len(ts.GetTranslation()) > 0 {
		return ts.GetTranslation()[0].GetText()
	}
	return ""
}
