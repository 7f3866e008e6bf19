// ABOUTME: Pattern-based intent classifier turning free text into a structured Intent
// ABOUTME: Pure rule-table matching, no I/O; results are memoized in an LRU cache

package intent

import (
	"regexp"
	"strings"

	"devpulse-search-api/core/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// maxConfidence caps classification certainty; the gap to 1.0 is
	// reserved for a higher-cost disambiguation step outside this engine.
	maxConfidence = 0.98

	// lowConfidenceThreshold triggers the all-sources fallback
	lowConfidenceThreshold = 0.3

	// defaultMemoSize bounds the classification memo cache
	defaultMemoSize = 4096
)

// Classifier classifies queries with precompiled pattern tables.
// Classification is deterministic and never fails; the memo cache is an
// optimization only.
type Classifier struct {
	sources     []compiledSourceRule
	intents     []compiledIntentRule
	timeRules   []*regexp.Regexp
	entityToken *regexp.Regexp
	wordToken   *regexp.Regexp
	memo        *lru.Cache[string, domain.Intent]
}

// NewClassifier compiles all rule tables once and returns a ready classifier.
func NewClassifier() *Classifier {
	c := &Classifier{
		sources:     make([]compiledSourceRule, 0, len(sourceRules)),
		intents:     make([]compiledIntentRule, 0, len(intentRules)),
		timeRules:   compilePatterns(timePatterns),
		entityToken: regexp.MustCompile(`\w+(\.\w+)?`),
		wordToken:   regexp.MustCompile(`\w+`),
	}

	for _, rule := range sourceRules {
		c.sources = append(c.sources, compiledSourceRule{
			source:   rule.source,
			patterns: compilePatterns(rule.patterns),
		})
	}

	for _, rule := range intentRules {
		c.intents = append(c.intents, compiledIntentRule{
			intentType: rule.intentType,
			patterns:   compilePatterns(rule.patterns),
		})
	}

	c.memo, _ = lru.New[string, domain.Intent](defaultMemoSize)

	return c
}

// Classify turns a raw query into a structured Intent.
func (c *Classifier) Classify(query string) domain.Intent {
	normalized := strings.ToLower(strings.TrimSpace(query))

	if cached, ok := c.memo.Get(normalized); ok {
		result := cached
		result.Query = query
		return result
	}

	explicitSources := c.detectSources(normalized)
	intentType := c.detectIntent(normalized)
	entities := c.extractEntities(normalized)
	keywords := c.extractKeywords(normalized)
	timeSensitive := c.isTimeSensitive(normalized)

	confidence := calculateConfidence(explicitSources, intentType, entities, keywords, normalized)
	sources := determineSources(explicitSources, intentType, entities, confidence)

	result := domain.Intent{
		Type:          intentType,
		Confidence:    confidence,
		Sources:       sources,
		Entities:      entities,
		Keywords:      keywords,
		TimeSensitive: timeSensitive,
		Query:         query,
	}

	c.memo.Add(normalized, result)

	return result
}

// detectSources finds sources the query names explicitly. Matching is
// case-insensitive so ticker-style queries work however they are typed.
func (c *Classifier) detectSources(query string) []string {
	var detected []string

	for _, rule := range c.sources {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(query) {
				detected = append(detected, rule.source)
				break
			}
		}
	}

	return detected
}

// detectIntent picks the intent type with the most pattern hits, breaking
// ties by the fixed specificity order.
func (c *Classifier) detectIntent(query string) domain.IntentType {
	scores := make(map[domain.IntentType]int)

	for _, rule := range c.intents {
		matches := 0
		for _, pattern := range rule.patterns {
			if pattern.MatchString(query) {
				matches++
			}
		}
		if matches > 0 {
			scores[rule.intentType] = matches
		}
	}

	if len(scores) == 0 {
		return domain.IntentGeneral
	}

	maxScore := 0
	for _, score := range scores {
		if score > maxScore {
			maxScore = score
		}
	}

	for _, intentType := range intentPriority {
		if scores[intentType] == maxScore {
			return intentType
		}
	}

	return domain.IntentGeneral
}

// extractEntities looks up unigrams, bigrams and trigrams in the category
// dictionaries, collecting first-seen matches per category.
func (c *Classifier) extractEntities(query string) map[string][]string {
	tokens := c.entityToken.FindAllString(query, -1)

	ngrams := make([]string, 0, len(tokens)*3)
	ngrams = append(ngrams, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		ngrams = append(ngrams, tokens[i]+" "+tokens[i+1])
	}
	for i := 0; i+2 < len(tokens); i++ {
		ngrams = append(ngrams, tokens[i]+" "+tokens[i+1]+" "+tokens[i+2])
	}

	entities := make(map[string][]string)

	for _, ngram := range ngrams {
		for _, category := range entityCategories {
			if !entityDictionaries[category].contains(ngram) {
				continue
			}
			if !containsString(entities[category], ngram) {
				entities[category] = append(entities[category], ngram)
			}
			break
		}
	}

	return entities
}

// extractKeywords tokenizes the query, drops stop words and short tokens,
// and deduplicates preserving order.
func (c *Classifier) extractKeywords(query string) []string {
	tokens := c.wordToken.FindAllString(query, -1)

	seen := make(map[string]struct{}, len(tokens))
	keywords := make([]string, 0, len(tokens))

	for _, token := range tokens {
		if stopWords.contains(token) || len(token) <= 2 {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
	}

	return keywords
}

// isTimeSensitive reports whether the query asks for fresh data.
func (c *Classifier) isTimeSensitive(query string) bool {
	for _, pattern := range c.timeRules {
		if pattern.MatchString(query) {
			return true
		}
	}
	return false
}

// calculateConfidence scores the classification additively, capped at 0.98.
func calculateConfidence(
	explicitSources []string,
	intentType domain.IntentType,
	entities map[string][]string,
	keywords []string,
	query string,
) float64 {
	confidence := 0.0

	if len(explicitSources) > 0 {
		confidence += 0.30
	}

	if intentType != domain.IntentGeneral {
		if intentType == domain.IntentPriceCheck || intentType == domain.IntentTutorial {
			confidence += 0.25
		} else {
			confidence += 0.20
		}
	}

	entityCount := 0
	for _, terms := range entities {
		entityCount += len(terms)
	}
	if entityCount > 0 {
		boost := float64(entityCount) * 0.10
		if boost > 0.30 {
			boost = 0.30
		}
		confidence += boost
	}

	if len(keywords) >= 1 {
		confidence += 0.10
		if len(keywords) >= 3 {
			confidence += 0.05
		}
	}

	wordCount := len(strings.Fields(query))
	if wordCount >= 3 && wordCount <= 15 {
		confidence += 0.10
	} else if wordCount >= 2 {
		confidence += 0.05
	}

	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return confidence
}

// determineSources produces the final ordered source list. Explicitly
// requested sources are exclusive: naming a source means "search there",
// not "search there too". Market sources implied by recognized entities
// are still forced in at the front.
func determineSources(
	explicitSources []string,
	intentType domain.IntentType,
	entities map[string][]string,
	confidence float64,
) []string {
	var sources []string

	switch {
	case len(explicitSources) > 0:
		sources = append(sources, explicitSources...)
	default:
		if routed, ok := intentSourceRouting[intentType]; ok {
			sources = append(sources, routed...)
		} else if confidence < lowConfidenceThreshold {
			sources = append(sources, allSources...)
		} else {
			sources = append(sources, defaultSources...)
		}
	}

	if len(entities[domain.EntityCryptocurrencies]) > 0 && !containsString(sources, SourceCrypto) {
		sources = append([]string{SourceCrypto}, sources...)
	}
	if len(entities[domain.EntityStocks]) > 0 && !containsString(sources, SourceStocks) {
		sources = append([]string{SourceStocks}, sources...)
	}

	return dedupeStrings(sources)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func dedupeStrings(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	unique := make([]string, 0, len(list))
	for _, s := range list {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		unique = append(unique, s)
	}
	return unique
}
