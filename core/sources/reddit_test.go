package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devpulse-search-api/core/domain"
)

const redditFixture = `{
	"data": {
		"children": [
			{
				"data": {
					"title": "What Rust web framework do you use?",
					"permalink": "/r/rust/comments/abc/what_rust_web_framework",
					"selftext": "Actix vs Axum vs Rocket, opinions welcome.",
					"author": "ferris",
					"score": 431,
					"num_comments": 208,
					"subreddit": "rust",
					"created_utc": 1756000000.0
				}
			},
			{
				"data": {
					"title": "Deleted post",
					"permalink": "/r/rust/comments/def/deleted",
					"selftext": "",
					"author": "",
					"score": 2,
					"num_comments": 0,
					"subreddit": "rust",
					"created_utc": 1755000000.0
				}
			}
		]
	}
}`

func TestRedditSearchMapsFields(t *testing.T) {
	client := &mockHTTPClient{payload: redditFixture}
	src := NewRedditSource(deps(client))

	results, err := src.Search(context.Background(), "rust web framework", 10, domain.SearchFilters{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	first := results[0]
	assert.Equal(t, "What Rust web framework do you use?", first.Title)
	assert.Equal(t, "https://www.reddit.com/r/rust/comments/abc/what_rust_web_framework", first.URL)
	assert.Equal(t, 431, first.Score)
	assert.Equal(t, "ferris", first.Author)
	assert.Equal(t, "rust", first.Metadata["subreddit"])
	assert.False(t, first.PublishedAt.IsZero())

	assert.Equal(t, "[deleted]", results[1].Author)
}

func TestRedditSendsIdentifyingUserAgent(t *testing.T) {
	client := &mockHTTPClient{payload: `{"data":{"children":[]}}`}
	src := NewRedditSource(deps(client))

	_, err := src.Search(context.Background(), "anything", 10, domain.SearchFilters{})
	require.NoError(t, err)

	require.Len(t, client.headers, 1)
	assert.Contains(t, client.headers[0]["User-Agent"], "devpulse-search")
}

func TestRedditSortAndWindowParams(t *testing.T) {
	client := &mockHTTPClient{payload: `{"data":{"children":[]}}`}
	src := NewRedditSource(deps(client))

	_, err := src.Search(context.Background(), "anything", 10, domain.SearchFilters{SortBy: "top", TimeWindow: "month"})
	require.NoError(t, err)

	url := client.lastURL()
	assert.Contains(t, url, "sort=top")
	assert.Contains(t, url, "t=month")
}
