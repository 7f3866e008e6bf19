// ABOUTME: Per-request query planning for the search orchestrator
// ABOUTME: Parses embedded directives and builds per-source query strings and filters

package orchestrator

import (
	"regexp"
	"strconv"
	"strings"

	"devpulse-search-api/core/domain"
)

// genericWords are descriptive filler keywords that carry little search
// precision. Precision-sensitive sources AND every term, so these words
// starve them of results and are dropped when more specific terms exist.
var genericWords = map[string]struct{}{
	"game": {}, "games": {}, "gaming": {},
	"app": {}, "apps": {}, "application": {}, "applications": {},
	"tool": {}, "tools": {},
	"project": {}, "projects": {},
	"library": {}, "libraries": {},
	"code": {}, "content": {},
	"repo": {}, "repos": {}, "repository": {}, "repositories": {},
	"thing": {}, "things": {}, "stuff": {},
	"website": {}, "websites": {}, "site": {}, "sites": {},
	"resource": {}, "resources": {},
	"example": {}, "examples": {},
	"idea": {}, "ideas": {},
}

// maxPrimaryKeywords bounds the query sent to precision-sensitive sources.
const maxPrimaryKeywords = 2

// queryPlan holds the directives parsed straight out of the raw query text.
type queryPlan struct {
	// limit is the requested result count, 0 when no directive was found
	limit int

	// timeWindow is "day", "week", "month" or "year", empty when absent
	timeWindow string

	// sortBy is "stars", "newest" or "top", empty when absent
	sortBy string
}

var (
	topNPattern   = regexp.MustCompile(`(?i)\btop\s+(\d{1,3})\b`)
	countPattern  = regexp.MustCompile(`(?i)\b(\d{1,3})\s+(?:repos?|repositories|results?|posts?|articles?|items?|projects?|threads?)\b`)
	windowPattern = regexp.MustCompile(`(?i)\b(?:last|past|this)\s+(?:\d+\s+)?(day|week|month|year)s?\b`)
	todayPattern  = regexp.MustCompile(`(?i)\btoday\b`)

	sortStarsPattern  = regexp.MustCompile(`(?i)\bmost\s+(?:starred|stars|popular)\b`)
	sortNewestPattern = regexp.MustCompile(`(?i)\b(?:newest|latest|most\s+recent)\b`)
	sortTopPattern    = regexp.MustCompile(`(?i)\b(?:most\s+upvoted|top\s+rated|highest\s+rated)\b`)
)

// parseDirectives extracts limit, time-window and sort directives embedded
// in the query text. Directives arrive inside the text itself, never as
// separate structured fields.
func parseDirectives(query string) queryPlan {
	var plan queryPlan

	if m := topNPattern.FindStringSubmatch(query); m != nil {
		plan.limit, _ = strconv.Atoi(m[1])
	} else if m := countPattern.FindStringSubmatch(query); m != nil {
		plan.limit, _ = strconv.Atoi(m[1])
	}
	if plan.limit > maxResultLimit {
		plan.limit = maxResultLimit
	}

	if m := windowPattern.FindStringSubmatch(query); m != nil {
		plan.timeWindow = strings.ToLower(m[1])
	} else if todayPattern.MatchString(query) {
		plan.timeWindow = "day"
	}

	switch {
	case sortStarsPattern.MatchString(query):
		plan.sortBy = "stars"
	case sortNewestPattern.MatchString(query):
		plan.sortBy = "newest"
	case sortTopPattern.MatchString(query):
		plan.sortBy = "top"
	}

	return plan
}

// buildSourceQuery produces the query string sent to one source. Sources
// that AND every term get at most the two most specific keywords; community
// sources that pre-filter get all keywords joined. With no usable keywords
// the raw query text is passed through.
func buildSourceQuery(in domain.Intent, caps domain.SourceCapabilities) string {
	if len(in.Keywords) == 0 {
		return strings.TrimSpace(in.Query)
	}

	if !caps.PrecisionSensitive {
		return strings.Join(in.Keywords, " ")
	}

	var primary []string
	for _, kw := range in.Keywords {
		if _, generic := genericWords[kw]; !generic {
			primary = append(primary, kw)
		}
	}

	if len(primary) == 0 {
		// All keywords are generic; keep the single most specific one.
		return mostSpecific(in.Keywords)
	}
	if len(primary) > maxPrimaryKeywords {
		primary = primary[:maxPrimaryKeywords]
	}
	return strings.Join(primary, " ")
}

// mostSpecific picks the longest keyword as a crude specificity proxy.
func mostSpecific(keywords []string) string {
	best := keywords[0]
	for _, kw := range keywords[1:] {
		if len(kw) > len(best) {
			best = kw
		}
	}
	return best
}

// buildFilters derives per-source filters from the intent and the parsed
// directives, passing only what the source's capabilities advertise.
func buildFilters(in domain.Intent, plan queryPlan, caps domain.SourceCapabilities) domain.SearchFilters {
	var f domain.SearchFilters

	if caps.Supports(domain.FilterLanguage) {
		f.Language = in.Language()
	}

	if caps.Supports(domain.FilterTimeWindow) {
		switch {
		case plan.timeWindow != "":
			f.TimeWindow = plan.timeWindow
		case in.TimeSensitive:
			f.TimeWindow = "week"
		}
	}

	if caps.SupportsSort && plan.sortBy != "" {
		f.SortBy = plan.sortBy
	}

	return f
}
