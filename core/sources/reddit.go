// ABOUTME: Reddit post search adapter over the public JSON search endpoint
// ABOUTME: Maps listing children to results keeping upvotes as the native score

package sources

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"devpulse-search-api/core/domain"
	"devpulse-search-api/core/interfaces"
	"devpulse-search-api/pkg/utils/text"
)

const (
	redditAPIURL     = "https://www.reddit.com"
	redditMaxResults = 100

	// Reddit rejects generic user agents with 429s.
	redditUserAgent = "web:devpulse-search:v1.0 (search aggregator)"
)

// RedditSource searches posts through Reddit's public JSON API. The native
// score is upvotes; it is never comparable to stars or points across
// sources, only relevanceScore is.
type RedditSource struct {
	client  interfaces.HTTPClient
	logger  interfaces.Logger
	limiter *rate.Limiter
	baseURL string
}

// NewRedditSource creates the Reddit adapter.
func NewRedditSource(deps interfaces.Dependencies) *RedditSource {
	return &RedditSource{
		client:  deps.HTTPClient,
		logger:  deps.Logger,
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 3),
		baseURL: redditAPIURL,
	}
}

func (s *RedditSource) Name() string { return "reddit" }

func (s *RedditSource) DisplayName() string { return "Reddit" }

func (s *RedditSource) Type() domain.SourceType { return domain.SourceTypeDiscussion }

func (s *RedditSource) Capabilities() domain.SourceCapabilities {
	return domain.SourceCapabilities{
		SupportedFilters: []string{
			domain.FilterSort,
			domain.FilterTimeWindow,
		},
		SupportsSort:   true,
		MaxResultLimit: redditMaxResults,
	}
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	Permalink   string  `json:"permalink"`
	SelfText    string  `json:"selftext"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	Subreddit   string  `json:"subreddit"`
	CreatedUTC  float64 `json:"created_utc"`
}

// Search queries the sitewide search listing.
func (s *RedditSource) Search(ctx context.Context, query string, limit int, filters domain.SearchFilters) ([]domain.SearchResult, error) {
	if err := waitForSlot(ctx, s.limiter); err != nil {
		return nil, err
	}

	limit = clampLimit(limit, redditMaxResults)

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("sort", redditSort(filters.SortBy))
	params.Set("raw_json", "1")
	if filters.TimeWindow != "" {
		params.Set("t", filters.TimeWindow)
	}

	headers := map[string]string{"User-Agent": redditUserAgent}

	var payload redditListing
	reqURL := s.baseURL + "/search.json?" + params.Encode()
	if err := getJSON(ctx, s.client, s.Name(), reqURL, headers, &payload); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(payload.Data.Children))
	for _, child := range payload.Data.Children {
		post := child.Data
		author := post.Author
		if author == "" {
			author = "[deleted]"
		}

		results = append(results, domain.SearchResult{
			Title:       post.Title,
			URL:         redditAPIURL + post.Permalink,
			Source:      s.Name(),
			Type:        domain.SourceTypeDiscussion,
			Description: text.Truncate(text.StripHTML(post.SelfText), descriptionLimit),
			Author:      author,
			Score:       post.Score,
			PublishedAt: time.Unix(int64(post.CreatedUTC), 0).UTC(),
			Metadata: map[string]interface{}{
				"comments":  post.NumComments,
				"subreddit": post.Subreddit,
			},
		})
	}

	if s.logger != nil {
		s.logger.Debug("reddit search finished", map[string]interface{}{
			"query":   query,
			"results": len(results),
		})
	}
	return results, nil
}

func redditSort(sortBy string) string {
	switch sortBy {
	case "newest":
		return "new"
	case "top":
		return "top"
	default:
		return "relevance"
	}
}
