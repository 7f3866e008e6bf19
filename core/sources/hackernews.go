// ABOUTME: Hacker News story search adapter over the Algolia search API
// ABOUTME: Supports a points floor, recency windows and date-ordered search

package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"devpulse-search-api/core/domain"
	"devpulse-search-api/core/interfaces"
	"devpulse-search-api/pkg/utils/text"
)

const (
	hackerNewsAPIURL        = "https://hn.algolia.com/api/v1"
	hackerNewsMaxResults    = 100
	hackerNewsDefaultPoints = 10
)

// HackerNewsSource searches stories through the public Algolia index.
type HackerNewsSource struct {
	client  interfaces.HTTPClient
	logger  interfaces.Logger
	limiter *rate.Limiter
	baseURL string
}

// NewHackerNewsSource creates the Hacker News adapter.
func NewHackerNewsSource(deps interfaces.Dependencies) *HackerNewsSource {
	return &HackerNewsSource{
		client:  deps.HTTPClient,
		logger:  deps.Logger,
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		baseURL: hackerNewsAPIURL,
	}
}

func (s *HackerNewsSource) Name() string { return "hackernews" }

func (s *HackerNewsSource) DisplayName() string { return "Hacker News" }

func (s *HackerNewsSource) Type() domain.SourceType { return domain.SourceTypeDiscussion }

func (s *HackerNewsSource) Capabilities() domain.SourceCapabilities {
	return domain.SourceCapabilities{
		SupportedFilters: []string{
			domain.FilterMinScore,
			domain.FilterSort,
			domain.FilterTimeWindow,
		},
		SupportsSort:   true,
		MaxResultLimit: hackerNewsMaxResults,
	}
}

type hackerNewsResponse struct {
	Hits []hackerNewsHit `json:"hits"`
}

type hackerNewsHit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	Points      int    `json:"points"`
	StoryText   string `json:"story_text"`
	NumComments int    `json:"num_comments"`
	CreatedAt   string `json:"created_at"`
}

// Search queries the Algolia story index. "newest" sort switches to the
// date-ordered endpoint; everything else uses relevance order.
func (s *HackerNewsSource) Search(ctx context.Context, query string, limit int, filters domain.SearchFilters) ([]domain.SearchResult, error) {
	if err := waitForSlot(ctx, s.limiter); err != nil {
		return nil, err
	}

	limit = clampLimit(limit, hackerNewsMaxResults)

	points := hackerNewsDefaultPoints
	if filters.MinScore != nil {
		points = *filters.MinScore
	}

	numeric := fmt.Sprintf("points>=%d", points)
	if start, ok := windowStart(time.Now(), filters.TimeWindow); ok {
		numeric += fmt.Sprintf(",created_at_i>=%d", start.Unix())
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("tags", "story")
	params.Set("hitsPerPage", strconv.Itoa(limit))
	params.Set("numericFilters", numeric)

	endpoint := "/search"
	if filters.SortBy == "newest" {
		endpoint = "/search_by_date"
	}

	var payload hackerNewsResponse
	reqURL := s.baseURL + endpoint + "?" + params.Encode()
	if err := getJSON(ctx, s.client, s.Name(), reqURL, nil, &payload); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(payload.Hits))
	for _, hit := range payload.Hits {
		storyURL := hit.URL
		if storyURL == "" {
			storyURL = "https://news.ycombinator.com/item?id=" + hit.ObjectID
		}
		published, _ := time.Parse(time.RFC3339, hit.CreatedAt)

		results = append(results, domain.SearchResult{
			Title:       hit.Title,
			URL:         storyURL,
			Source:      s.Name(),
			Type:        domain.SourceTypeDiscussion,
			Description: text.Truncate(text.StripHTML(hit.StoryText), descriptionLimit),
			Author:      hit.Author,
			Score:       hit.Points,
			PublishedAt: published,
			Metadata: map[string]interface{}{
				"comments": hit.NumComments,
				"story_id": hit.ObjectID,
			},
		})
	}

	if s.logger != nil {
		s.logger.Debug("hackernews search finished", map[string]interface{}{
			"query":   query,
			"results": len(results),
		})
	}
	return results, nil
}
