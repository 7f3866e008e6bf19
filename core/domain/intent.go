// ABOUTME: Intent domain models produced by query classification
// ABOUTME: Defines the structured interpretation of a free-text search query

package domain

// IntentType enumerates the kinds of search intent a query can express.
type IntentType string

const (
	IntentCodeSearch    IntentType = "code_search"
	IntentTutorial      IntentType = "tutorial"
	IntentDiscussion    IntentType = "discussion"
	IntentNews          IntentType = "news"
	IntentPriceCheck    IntentType = "price_check"
	IntentDocumentation IntentType = "documentation"
	IntentGaming        IntentType = "gaming"
	IntentGeneral       IntentType = "general"
)

// Entity category names used as keys in Intent.Entities.
const (
	EntityLanguages        = "languages"
	EntityFrameworks       = "frameworks"
	EntityTopics           = "topics"
	EntityGames            = "games"
	EntityCryptocurrencies = "cryptocurrencies"
	EntityStocks           = "stocks"
)

// Intent is the structured interpretation of one natural-language query.
// It is created once per request by the classifier and never mutated after.
type Intent struct {
	// Type is the detected intent category
	Type IntentType

	// Confidence is the classifier's certainty, always within [0, 0.98]
	Confidence float64

	// Sources lists source names to query, highest priority first
	Sources []string

	// Entities maps category name to matched terms in first-seen order
	Entities map[string][]string

	// Keywords are stop-word-filtered query terms, deduplicated in order
	Keywords []string

	// TimeSensitive indicates the query asks for fresh content
	TimeSensitive bool

	// Query is the raw query text as received
	Query string
}

// Language returns the first recognized programming language entity,
// or an empty string if none was detected.
func (i Intent) Language() string {
	langs := i.Entities[EntityLanguages]
	if len(langs) == 0 {
		return ""
	}
	return langs[0]
}

// HasEntity reports whether any entity was matched for the given category.
func (i Intent) HasEntity(category string) bool {
	return len(i.Entities[category]) > 0
}
