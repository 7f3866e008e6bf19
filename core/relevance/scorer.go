// ABOUTME: Cross-source relevance scoring for search results (0-100 scale)
// ABOUTME: Keyword/phrase matching with word boundaries plus an optional semantic blend

package relevance

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"devpulse-search-api/core/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// neutralScore is returned when the query carries no scorable terms
	neutralScore = 50.0

	// maxScore caps the final relevance score
	maxScore = 100.0

	// DefaultSemanticWeight is the share of the blended score taken from
	// embedding similarity when an embedder is configured.
	DefaultSemanticWeight = 0.3

	// termPatternCacheSize bounds the compiled per-term regexp cache
	termPatternCacheSize = 2048
)

// scorerStopWords are query words that carry no relevance signal.
var scorerStopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
		"has", "he", "in", "is", "it", "its", "of", "on", "that", "the",
		"to", "was", "will", "with", "i", "me", "my", "we", "you", "your",
		"can", "could", "should", "would", "this", "these", "those", "what",
		"which", "who", "how", "when", "where", "why", "am", "been", "being",
		"have", "had", "do", "does", "did", "about", "after", "before",
		"show", "find", "get", "search",
	} {
		scorerStopWords[w] = struct{}{}
	}
}

// Embedder produces a vector embedding for a piece of text. Implementations
// live in infrastructure; a nil embedder means keyword-only scoring.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Metadata carries the popularity/recency signals a result can contribute
// to its own score.
type Metadata struct {
	// NativeScore is the source-native popularity value (stars, points)
	NativeScore int

	// PublishedYear is the content's publication year, 0 if unknown
	PublishedYear int

	// HasDescription indicates the result has a non-empty body
	HasDescription bool
}

// Candidate is one item to score against a query.
type Candidate struct {
	Title    string
	Body     string
	Tags     []string
	Metadata *Metadata
}

// Scorer computes 0-100 relevance scores comparable across sources.
// Keyword scoring is pure; the optional semantic blend is the only part
// that touches the network, and only through the injected Embedder.
type Scorer struct {
	embedder       Embedder
	semanticWeight float64
	phrasePattern  *regexp.Regexp
	termPatterns   *lru.Cache[string, *regexp.Regexp]
	now            func() time.Time
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithEmbedder enables the semantic blend using the given embedder.
func WithEmbedder(e Embedder) Option {
	return func(s *Scorer) {
		s.embedder = e
	}
}

// WithSemanticWeight overrides the semantic share of the blended score.
func WithSemanticWeight(w float64) Option {
	return func(s *Scorer) {
		if w >= 0 && w <= 1 {
			s.semanticWeight = w
		}
	}
}

// NewScorer creates a relevance scorer.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		semanticWeight: DefaultSemanticWeight,
		phrasePattern:  regexp.MustCompile(`"([^"]+)"`),
		now:            time.Now,
	}
	s.termPatterns, _ = lru.New[string, *regexp.Regexp](termPatternCacheSize)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the relevance of one candidate against a query.
func (s *Scorer) Score(ctx context.Context, query string, c Candidate) float64 {
	if strings.TrimSpace(query) == "" {
		return neutralScore
	}

	phrases, terms := s.parseQuery(query)
	if len(phrases) == 0 && len(terms) == 0 {
		return neutralScore
	}

	title := strings.ToLower(c.Title)
	body := strings.ToLower(c.Body)
	tags := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		tags = append(tags, strings.ToLower(t))
	}

	keywordScore := s.scorePhrases(phrases, title, body, tags)
	keywordScore += s.scoreTerms(terms, title, body, tags)

	// More specific queries weigh heavier
	if len(terms)+len(phrases) > 1 {
		keywordScore *= 1.1
	}

	if c.Metadata != nil {
		keywordScore += s.scoreMetadata(c.Metadata)
	}

	score := keywordScore

	if s.embedder != nil && keywordScore > 0 {
		if semantic, ok := s.semanticSimilarity(ctx, query, c.Title, c.Body); ok {
			score = keywordScore*(1-s.semanticWeight) + semantic*s.semanticWeight
		}
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// RankResults scores every result against the query, fills in
// RelevanceScore and returns the slice sorted by descending relevance.
func (s *Scorer) RankResults(ctx context.Context, query string, results []domain.SearchResult) []domain.SearchResult {
	for i := range results {
		meta := &Metadata{
			NativeScore:    results[i].Score,
			HasDescription: results[i].Description != "",
		}
		if !results[i].PublishedAt.IsZero() {
			meta.PublishedYear = results[i].PublishedAt.Year()
		}

		results[i].RelevanceScore = s.Score(ctx, query, Candidate{
			Title:    results[i].Title,
			Body:     results[i].Description,
			Tags:     results[i].Tags,
			Metadata: meta,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	return results
}

// parseQuery splits a query into quoted phrases and stop-word-filtered terms.
func (s *Scorer) parseQuery(query string) (phrases []string, terms []string) {
	for _, match := range s.phrasePattern.FindAllStringSubmatch(query, -1) {
		phrases = append(phrases, strings.ToLower(match[1]))
	}

	withoutQuotes := s.phrasePattern.ReplaceAllString(query, "")
	for _, word := range strings.Fields(strings.ToLower(withoutQuotes)) {
		if _, stop := scorerStopWords[word]; stop || len(word) <= 1 {
			continue
		}
		terms = append(terms, word)
	}

	return phrases, terms
}

// scorePhrases scores exact phrase matches. Phrases are the most specific
// part of a query and carry the highest weights; position in the title
// matters.
func (s *Scorer) scorePhrases(phrases []string, title, body string, tags []string) float64 {
	score := 0.0

	for _, phrase := range phrases {
		switch {
		case strings.Contains(title, phrase):
			if strings.HasPrefix(title, phrase) {
				score += 60
			} else if strings.HasSuffix(title, phrase) {
				score += 50
			} else {
				score += 45
			}
		case strings.Contains(body, phrase):
			score += 30
		default:
			for _, tag := range tags {
				if strings.Contains(tag, phrase) {
					score += 25
					break
				}
			}
		}
	}

	return score
}

// scoreTerms scores individual terms with word-boundary matching, so "ai"
// never matches inside "wait".
func (s *Scorer) scoreTerms(terms []string, title, body string, tags []string) float64 {
	score := 0.0
	matchedTerms := 0

	for _, term := range terms {
		pattern := s.termPattern(term)
		termMatched := false

		titleMatches := len(pattern.FindAllString(title, -1))
		if titleMatches > 0 {
			base := 35.0
			if titleMatches > 1 {
				base += float64(titleMatches-1) * 5
			}
			loc := pattern.FindStringIndex(title)
			if loc != nil && loc[0] == 0 {
				base += 10
			}
			score += base
			termMatched = true
		} else if body != "" {
			bodyMatches := len(pattern.FindAllString(body, -1))
			if bodyMatches > 0 {
				extra := float64(bodyMatches - 1)
				if extra > 5 {
					extra = 5
				}
				score += 15 + extra
				termMatched = true
			}
		}

		for _, tag := range tags {
			if pattern.MatchString(tag) {
				score += 20
				termMatched = true
				break
			}
		}

		if termMatched {
			matchedTerms++
		}
	}

	// Comprehension bonus for covering more of the query
	if matchedTerms > 1 {
		score += float64(matchedTerms) * 10
	}

	return score
}

// scoreMetadata adds up to +13 from popularity and recency signals.
func (s *Scorer) scoreMetadata(meta *Metadata) float64 {
	score := 0.0

	switch {
	case meta.NativeScore > 1000:
		score += 5
	case meta.NativeScore > 100:
		score += 3
	case meta.NativeScore > 10:
		score += 1
	}

	currentYear := s.now().Year()
	if meta.PublishedYear >= currentYear {
		score += 5
	} else if meta.PublishedYear == currentYear-1 {
		score += 3
	}

	if meta.HasDescription {
		score += 3
	}

	return score
}

// termPattern returns a compiled word-boundary pattern for the term,
// cached across calls.
func (s *Scorer) termPattern(term string) *regexp.Regexp {
	if cached, ok := s.termPatterns.Get(term); ok {
		return cached
	}
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	s.termPatterns.Add(term, pattern)
	return pattern
}
