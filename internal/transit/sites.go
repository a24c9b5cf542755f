package transit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/argia-andreas/stockholm-public-transport-mcp/internal/cache"
)

// Site is one entry from the SL Transport site register.
type Site struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SiteService fetches and caches the SL Transport site register and resolves
// site names to IDs.
type SiteService struct {
	baseURL string
	client  *http.Client
	cache   *cache.Cache[[]Site]
}

// NewSiteService creates a site service against baseURL.
func NewSiteService(baseURL string, timeout, cacheTTL time.Duration) *SiteService {
	return &SiteService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		cache:   cache.New[[]Site](cacheTTL),
	}
}

// Resolve finds the site best matching name. Exact matches beat prefix
// matches beat substring matches, all case-insensitive; within a rank the
// shortest site name wins.
func (s *SiteService) Resolve(ctx context.Context, name string) (*Site, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return nil, fmt.Errorf("empty site name")
	}

	sites, err := s.allSites(ctx)
	if err != nil {
		return nil, err
	}

	var best *Site
	bestRank := 0
	for i := range sites {
		candidate := strings.ToLower(sites[i].Name)

		var rank int
		switch {
		case candidate == query:
			rank = 3
		case strings.HasPrefix(candidate, query):
			rank = 2
		case strings.Contains(candidate, query):
			rank = 1
		default:
			continue
		}

		if best == nil || rank > bestRank || (rank == bestRank && len(sites[i].Name) < len(best.Name)) {
			site := sites[i]
			best = &site
			bestRank = rank
		}
	}

	if best == nil {
		return nil, fmt.Errorf("no site matching %q", name)
	}
	return best, nil
}

func (s *SiteService) allSites(ctx context.Context) ([]Site, error) {
	if cached, ok := s.cache.Get("all"); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/sites", nil)
	if err != nil {
		return nil, fmt.Errorf("building sites request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sites: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transport API returned status %d", resp.StatusCode)
	}

	var sites []Site
	if err := json.NewDecoder(resp.Body).Decode(&sites); err != nil {
		return nil, fmt.Errorf("parsing sites response: %w", err)
	}

	s.cache.Set("all", sites)
	return sites, nil
}
