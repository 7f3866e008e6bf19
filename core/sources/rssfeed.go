// ABOUTME: RSS feed adapter backing the gaming news sources (IGN, PC Gamer)
// ABOUTME: Fetches and parses feeds with gofeed, filtering items by query terms

package sources

import (
	"context"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"devpulse-search-api/core/domain"
	apperrors "devpulse-search-api/core/errors"
	"devpulse-search-api/core/interfaces"
	"devpulse-search-api/pkg/utils/text"
)

const rssMaxResults = 30

// RSSSource adapts a single RSS or Atom feed into a content source. Feeds
// have no server-side search, so items are filtered against the query
// terms after parsing. An empty query returns the newest items.
type RSSSource struct {
	name        string
	displayName string
	feedURL     string

	client  interfaces.HTTPClient
	logger  interfaces.Logger
	limiter *rate.Limiter
	parser  *gofeed.Parser
}

// NewIGNSource creates the IGN gaming news adapter.
func NewIGNSource(deps interfaces.Dependencies) *RSSSource {
	return newRSSSource(deps, "ign", "IGN", "https://feeds.feedburner.com/ign/all")
}

// NewPCGamerSource creates the PC Gamer news adapter.
func NewPCGamerSource(deps interfaces.Dependencies) *RSSSource {
	return newRSSSource(deps, "pcgamer", "PC Gamer", "https://www.pcgamer.com/rss/")
}

func newRSSSource(deps interfaces.Dependencies, name, displayName, feedURL string) *RSSSource {
	return &RSSSource{
		name:        name,
		displayName: displayName,
		feedURL:     feedURL,
		client:      deps.HTTPClient,
		logger:      deps.Logger,
		limiter:     rate.NewLimiter(rate.Every(30*time.Second), 2),
		parser:      gofeed.NewParser(),
	}
}

func (s *RSSSource) Name() string { return s.name }

func (s *RSSSource) DisplayName() string { return s.displayName }

func (s *RSSSource) Type() domain.SourceType { return domain.SourceTypeArticle }

func (s *RSSSource) Capabilities() domain.SourceCapabilities {
	return domain.SourceCapabilities{
		SupportedFilters: []string{domain.FilterTimeWindow},
		MaxResultLimit:   rssMaxResults,
	}
}

// Search fetches the feed and returns items matching the query, newest
// first as the feed orders them.
func (s *RSSSource) Search(ctx context.Context, query string, limit int, filters domain.SearchFilters) ([]domain.SearchResult, error) {
	if err := waitForSlot(ctx, s.limiter); err != nil {
		return nil, err
	}

	limit = clampLimit(limit, rssMaxResults)

	resp, err := s.client.Get(ctx, s.feedURL)
	if err != nil {
		return nil, err
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() != 200 {
		return nil, apperrors.SourceErrorFromStatus(s.name, resp.StatusCode(), "fetching feed")
	}

	feed, err := s.parser.Parse(body)
	if err != nil {
		return nil, apperrors.NewSourceError(s.name, apperrors.SourceUnavailable, "parsing feed: "+err.Error())
	}

	terms := queryTerms(query)
	earliest, hasWindow := windowStart(time.Now(), filters.TimeWindow)

	results := make([]domain.SearchResult, 0, limit)
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}

		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}
		if hasWindow && published.Before(earliest) {
			continue
		}

		description := text.StripHTML(item.Description)
		if !matchesAnyTerm(terms, item.Title, description, strings.Join(item.Categories, " ")) {
			continue
		}

		results = append(results, domain.SearchResult{
			Title:       item.Title,
			URL:         item.Link,
			Source:      s.name,
			Type:        domain.SourceTypeArticle,
			Description: text.Truncate(description, descriptionLimit),
			Author:      s.itemAuthor(item),
			Tags:        item.Categories,
			PublishedAt: published,
			Metadata: map[string]interface{}{
				"feed": s.displayName,
			},
		})
		if len(results) >= limit {
			break
		}
	}

	if s.logger != nil {
		s.logger.Debug("feed search finished", map[string]interface{}{
			"source":  s.name,
			"query":   query,
			"items":   len(feed.Items),
			"results": len(results),
		})
	}
	return results, nil
}

func (s *RSSSource) itemAuthor(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	return s.displayName
}
