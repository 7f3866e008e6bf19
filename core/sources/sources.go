// ABOUTME: Shared plumbing for the content source adapters
// ABOUTME: JSON fetching with rate limiting, status mapping and time-window helpers

package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	apperrors "devpulse-search-api/core/errors"
	"devpulse-search-api/core/interfaces"
)

// descriptionLimit bounds how much body text an adapter keeps per result.
const descriptionLimit = 200

// getJSON fetches url, checks the status and decodes the body into out.
// Failures come back as SourceErrors so the orchestrator sees a uniform
// taxonomy; 429 maps to rate limiting, other non-2xx to unavailability.
func getJSON(ctx context.Context, client interfaces.HTTPClient, source, url string, headers map[string]string, out interface{}) error {
	resp, err := client.GetWithHeaders(ctx, url, headers)
	if err != nil {
		return err
	}

	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return apperrors.SourceErrorFromStatus(source, resp.StatusCode(), "unexpected response")
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return apperrors.NewSourceError(source, apperrors.SourceUnavailable, "decoding response: "+err.Error())
	}
	return nil
}

// waitForSlot blocks on the adapter's client-side rate limiter. A canceled
// context surfaces as the context's error so timeouts map correctly.
func waitForSlot(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}

// windowStart converts a time-window name into the earliest acceptable
// publish time. Unknown windows report ok=false, meaning no restriction.
func windowStart(now time.Time, window string) (time.Time, bool) {
	switch window {
	case "day":
		return now.AddDate(0, 0, -1), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, -1, 0), true
	case "year":
		return now.AddDate(-1, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// queryTerms splits a query into lowercase terms worth matching on,
// dropping everything of two characters or fewer.
func queryTerms(query string) []string {
	var terms []string
	for _, t := range strings.Fields(strings.ToLower(query)) {
		if len(t) > 2 {
			terms = append(terms, t)
		}
	}
	return terms
}

// matchesAnyTerm reports whether any term occurs in any of the haystacks.
// With no terms everything matches.
func matchesAnyTerm(terms []string, haystacks ...string) bool {
	if len(terms) == 0 {
		return true
	}
	for _, h := range haystacks {
		lower := strings.ToLower(h)
		for _, t := range terms {
			if strings.Contains(lower, t) {
				return true
			}
		}
	}
	return false
}

func clampLimit(limit, max int) int {
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}
