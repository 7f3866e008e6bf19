// ABOUTME: dev.to article search adapter over the public articles API
// ABOUTME: Over-fetches and filters client-side since dev.to has no query search

package sources

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"devpulse-search-api/core/domain"
	"devpulse-search-api/core/interfaces"
	"devpulse-search-api/pkg/utils/text"
)

const (
	devtoAPIURL           = "https://dev.to/api"
	devtoMaxResults       = 100
	devtoDefaultReactions = 5
)

// DevToSource searches articles through the dev.to REST API. The API has
// no free-text search, so the adapter over-fetches recent articles and
// filters them against the query terms client-side.
type DevToSource struct {
	client  interfaces.HTTPClient
	logger  interfaces.Logger
	limiter *rate.Limiter
	baseURL string
}

// NewDevToSource creates the dev.to adapter.
func NewDevToSource(deps interfaces.Dependencies) *DevToSource {
	return &DevToSource{
		client:  deps.HTTPClient,
		logger:  deps.Logger,
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		baseURL: devtoAPIURL,
	}
}

func (s *DevToSource) Name() string { return "devto" }

func (s *DevToSource) DisplayName() string { return "Dev.to" }

func (s *DevToSource) Type() domain.SourceType { return domain.SourceTypeArticle }

func (s *DevToSource) Capabilities() domain.SourceCapabilities {
	return domain.SourceCapabilities{
		SupportedFilters: []string{
			domain.FilterLanguage,
			domain.FilterMinScore,
			domain.FilterTimeWindow,
		},
		MaxResultLimit: devtoMaxResults,
	}
}

type devtoArticle struct {
	Title              string   `json:"title"`
	URL                string   `json:"url"`
	Description        string   `json:"description"`
	TagList            []string `json:"tag_list"`
	PublishedAt        string   `json:"published_at"`
	PositiveReactions  int      `json:"public_reactions_count"`
	CommentsCount      int      `json:"comments_count"`
	ReadingTimeMinutes int      `json:"reading_time_minutes"`
	User               struct {
		Name string `json:"name"`
	} `json:"user"`
}

// Search fetches recent articles, optionally narrowed to the language tag,
// then keeps the ones matching the query with enough reactions.
func (s *DevToSource) Search(ctx context.Context, query string, limit int, filters domain.SearchFilters) ([]domain.SearchResult, error) {
	if err := waitForSlot(ctx, s.limiter); err != nil {
		return nil, err
	}

	limit = clampLimit(limit, devtoMaxResults)

	params := url.Values{}
	// Over-fetch 3x; client-side filtering discards most of it.
	params.Set("per_page", strconv.Itoa(clampLimit(limit*3, devtoMaxResults)))
	if filters.Language != "" {
		params.Set("tag", strings.ToLower(filters.Language))
	}

	var articles []devtoArticle
	reqURL := s.baseURL + "/articles?" + params.Encode()
	if err := getJSON(ctx, s.client, s.Name(), reqURL, nil, &articles); err != nil {
		return nil, err
	}

	minReactions := devtoDefaultReactions
	if filters.MinScore != nil {
		minReactions = *filters.MinScore
	}

	terms := queryTerms(query)
	earliest, hasWindow := windowStart(time.Now(), filters.TimeWindow)

	results := make([]domain.SearchResult, 0, limit)
	for _, article := range articles {
		if article.PositiveReactions < minReactions {
			continue
		}

		published, _ := time.Parse(time.RFC3339, article.PublishedAt)
		if hasWindow && published.Before(earliest) {
			continue
		}

		if !matchesAnyTerm(terms, article.Title, article.Description, strings.Join(article.TagList, " ")) {
			continue
		}

		results = append(results, domain.SearchResult{
			Title:       article.Title,
			URL:         article.URL,
			Source:      s.Name(),
			Type:        domain.SourceTypeArticle,
			Description: text.Truncate(article.Description, descriptionLimit),
			Author:      article.User.Name,
			Score:       article.PositiveReactions,
			Tags:        article.TagList,
			PublishedAt: published,
			Metadata: map[string]interface{}{
				"comments":     article.CommentsCount,
				"reading_time": article.ReadingTimeMinutes,
			},
		})
		if len(results) >= limit {
			break
		}
	}

	if s.logger != nil {
		s.logger.Debug("devto search finished", map[string]interface{}{
			"query":    query,
			"fetched":  len(articles),
			"results":  len(results),
		})
	}
	return results, nil
}
