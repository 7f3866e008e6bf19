// ABOUTME: GitHub repository search adapter over the REST search API
// ABOUTME: Builds qualified search queries with a stars floor and language filter

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
)

const (
	githubAPIURL       = "https://api.github.com"
	githubMaxResults   = 100
	githubDefaultStars = 5
)

// GitHubSource searches repositories through the GitHub REST search API.
// GitHub's search syntax ANDs every term, so the adapter is marked
// precision-sensitive and receives trimmed queries.
type GitHubSource struct {
	client  interfaces.HTTPClient
	logger  interfaces.Logger
	token   string
	limiter *rate.Limiter
	baseURL string
}

// NewGitHubSource creates the GitHub adapter. The token is optional;
// without it GitHub applies its anonymous quota.
func NewGitHubSource(deps interfaces.Dependencies, token string) *GitHubSource {
	return &GitHubSource{
		client: deps.HTTPClient,
		logger: deps.Logger,
		token:  token,
		// GitHub search allows 30 requests/minute authenticated.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 5),
		baseURL: githubAPIURL,
	}
}

func (s *GitHubSource) Name() string { return "github" }

func (s *GitHubSource) DisplayName() string { return "GitHub" }

func (s *GitHubSource) Type() domain.SourceType { return domain.SourceTypeRepository }

func (s *GitHubSource) Capabilities() domain.SourceCapabilities {
	return domain.SourceCapabilities{
		SupportedFilters: []string{
			domain.FilterLanguage,
			domain.FilterMinScore,
			domain.FilterSort,
			domain.FilterTimeWindow,
		},
		SupportsSort:       true,
		MaxResultLimit:     githubMaxResults,
		PrecisionSensitive: true,
	}
}

type githubSearchResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []githubRepo `json:"items"`
}

type githubRepo struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	HTMLURL     string   `json:"html_url"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Stargazers  int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	Topics      []string `json:"topics"`
	CreatedAt   string   `json:"created_at"`
	PushedAt    string   `json:"pushed_at"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

// Search queries the repository search endpoint. An empty result set is
// returned as an empty slice, never an error.
func (s *GitHubSource) Search(ctx context.Context, query string, limit int, filters domain.SearchFilters) ([]domain.SearchResult, error) {
	if err := waitForSlot(ctx, s.limiter); err != nil {
		return nil, err
	}

	limit = clampLimit(limit, githubMaxResults)

	params := url.Values{}
	params.Set("q", s.buildQualifiedQuery(query, filters))
	params.Set("sort", githubSort(filters.SortBy))
	params.Set("order", "desc")
	// Over-fetch so post-ranking has something to choose from.
	params.Set("per_page", strconv.Itoa(clampLimit(limit*2, githubMaxResults)))

	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if s.token != "" {
		headers["Authorization"] = "token " + s.token
	}

	var payload githubSearchResponse
	reqURL := s.baseURL + "/search/repositories?" + params.Encode()
	if err := getJSON(ctx, s.client, s.Name(), reqURL, headers, &payload); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(payload.Items))
	for _, repo := range payload.Items {
		published, _ := time.Parse(time.RFC3339, repo.CreatedAt)
		results = append(results, domain.SearchResult{
			Title:       repo.Name,
			URL:         repo.HTMLURL,
			Source:      s.Name(),
			Type:        domain.SourceTypeRepository,
			Description: repo.Description,
			Author:      repo.Owner.Login,
			Score:       repo.Stargazers,
			Tags:        repo.Topics,
			PublishedAt: published,
			Metadata: map[string]interface{}{
				"language": repo.Language,
				"forks":    repo.Forks,
			},
		})
		if len(results) >= limit {
			break
		}
	}

	if s.logger != nil {
		s.logger.Debug("github search finished", map[string]interface{}{
			"query":   query,
			"total":   payload.TotalCount,
			"results": len(results),
		})
	}
	return results, nil
}

// buildQualifiedQuery appends GitHub search qualifiers: a stars floor,
// an optional language restriction and an optional recency window.
func (s *GitHubSource) buildQualifiedQuery(query string, filters domain.SearchFilters) string {
	floor := githubDefaultStars
	if filters.MinScore != nil {
		floor = *filters.MinScore
	}

	qualified := fmt.Sprintf("%s stars:>=%d", query, floor)
	if filters.Language != "" {
		qualified += " language:" + filters.Language
	}
	if start, ok := windowStart(time.Now(), filters.TimeWindow); ok {
		qualified += " pushed:>" + start.Format("2006-01-02")
	}
	return qualified
}

func githubSort(sortBy string) string {
	switch sortBy {
	case "newest":
		return "updated"
	default:
		return "stars"
	}
}
