package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devpulse-search-api/core/domain"
	apperrors "devpulse-search-api/core/errors"
)

const githubFixture = `{
	"total_count": 2,
	"items": [
		{
			"name": "scrapy",
			"full_name": "scrapy/scrapy",
			"html_url": "https://github.com/scrapy/scrapy",
			"description": "A fast web crawling framework",
			"language": "Python",
			"stargazers_count": 52000,
			"forks_count": 10500,
			"topics": ["crawler", "scraping"],
			"created_at": "2010-02-22T02:01:14Z",
			"owner": {"login": "scrapy"}
		},
		{
			"name": "requests-html",
			"full_name": "psf/requests-html",
			"html_url": "https://github.com/psf/requests-html",
			"description": "Pythonic HTML parsing",
			"language": "Python",
			"stargazers_count": 13000,
			"forks_count": 980,
			"topics": [],
			"created_at": "2018-02-25T21:23:01Z",
			"owner": {"login": "psf"}
		}
	]
}`

func TestGitHubSearchMapsFields(t *testing.T) {
	client := &mockHTTPClient{payload: githubFixture}
	src := NewGitHubSource(deps(client), "")

	results, err := src.Search(context.Background(), "web scraping", 10, domain.SearchFilters{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, "scrapy", first.Title)
	assert.Equal(t, "https://github.com/scrapy/scrapy", first.URL)
	assert.Equal(t, "github", first.Source)
	assert.Equal(t, domain.SourceTypeRepository, first.Type)
	assert.Equal(t, "scrapy", first.Author)
	assert.Equal(t, 52000, first.Score)
	assert.Equal(t, []string{"crawler", "scraping"}, first.Tags)
	assert.Equal(t, 2010, first.PublishedAt.Year())
	assert.Equal(t, "Python", first.Metadata["language"])
}

func TestGitHubQueryCarriesStarsFloorAndLanguage(t *testing.T) {
	client := &mockHTTPClient{payload: `{"total_count":0,"items":[]}`}
	src := NewGitHubSource(deps(client), "")

	_, err := src.Search(context.Background(), "web scraping", 10, domain.SearchFilters{Language: "python"})
	require.NoError(t, err)

	url := client.lastURL()
	assert.Contains(t, url, "stars%3A%3E%3D5")
	assert.Contains(t, url, "language%3Apython")
}

func TestGitHubRelaxedFloorZero(t *testing.T) {
	client := &mockHTTPClient{payload: `{"total_count":0,"items":[]}`}
	src := NewGitHubSource(deps(client), "")

	zero := 0
	_, err := src.Search(context.Background(), "web scraping", 10, domain.SearchFilters{MinScore: &zero})
	require.NoError(t, err)

	assert.Contains(t, client.lastURL(), "stars%3A%3E%3D0")
}

func TestGitHubTokenSentAsHeader(t *testing.T) {
	client := &mockHTTPClient{payload: `{"total_count":0,"items":[]}`}
	src := NewGitHubSource(deps(client), "tok123")

	_, err := src.Search(context.Background(), "anything", 5, domain.SearchFilters{})
	require.NoError(t, err)

	require.Len(t, client.headers, 1)
	assert.Equal(t, "token tok123", client.headers[0]["Authorization"])
}

func TestGitHubEmptyResultsNotAnError(t *testing.T) {
	client := &mockHTTPClient{payload: `{"total_count":0,"items":[]}`}
	src := NewGitHubSource(deps(client), "")

	results, err := src.Search(context.Background(), "nothing matches this", 10, domain.SearchFilters{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGitHubRateLimitedStatusMapped(t *testing.T) {
	client := &mockHTTPClient{statusCode: 429, payload: `{}`}
	src := NewGitHubSource(deps(client), "")

	_, err := src.Search(context.Background(), "anything", 10, domain.SearchFilters{})
	require.Error(t, err)
	assert.True(t, apperrors.IsRateLimited(err))
}

func TestGitHubServerErrorMapped(t *testing.T) {
	client := &mockHTTPClient{statusCode: 503, payload: `{}`}
	src := NewGitHubSource(deps(client), "")

	_, err := src.Search(context.Background(), "anything", 10, domain.SearchFilters{})
	require.Error(t, err)

	srcErr, ok := apperrors.IsSourceError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.SourceUnavailable, srcErr.Kind)
	assert.Equal(t, 503, srcErr.StatusCode)
}
