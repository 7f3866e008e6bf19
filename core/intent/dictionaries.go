// ABOUTME: Entity dictionaries and stop words used by the intent classifier
// ABOUTME: Lookup tables for languages, frameworks, topics, games, coins and tickers

package intent

import "devpulse-search-api/core/domain"

// entityCategories fixes the order categories are matched in. An n-gram is
// assigned to the first category that contains it.
var entityCategories = []string{
	domain.EntityLanguages,
	domain.EntityFrameworks,
	domain.EntityTopics,
	domain.EntityGames,
	domain.EntityCryptocurrencies,
	domain.EntityStocks,
}

var languages = newTermSet(
	"python", "javascript", "typescript", "java", "c++", "c#", "csharp", "c",
	"go", "golang", "rust", "ruby", "php", "swift", "kotlin", "scala",
	"r", "matlab", "perl", "haskell", "elixir", "clojure", "dart",
	"objective-c", "shell", "bash", "powershell", "lua", "groovy", "julia",
)

var frameworks = newTermSet(
	"react", "reactjs", "vue", "vuejs", "angular", "svelte", "nextjs", "next.js",
	"django", "flask", "fastapi", "express", "expressjs", "nodejs", "node.js",
	"spring", "spring boot", "rails", "ruby on rails", "laravel", "symfony",
	"tensorflow", "pytorch", "keras", "scikit-learn", "pandas", "numpy",
	"docker", "kubernetes", "k8s", "aws", "azure", "gcp", "firebase",
	"unity", "unreal", "godot", "pygame", "three.js", "threejs",
)

var topics = newTermSet(
	"ai", "machine learning", "ml", "deep learning", "nlp", "computer vision",
	"web development", "mobile", "ios", "android", "game development", "gamedev",
	"devops", "cloud", "database", "blockchain", "crypto", "security", "cybersecurity",
	"frontend", "backend", "fullstack", "data science", "analytics",
)

var games = newTermSet(
	"minecraft", "gta", "gta6", "gta 6", "grand theft auto", "fortnite", "valorant",
	"league of legends", "lol", "dota", "cs:go", "counter-strike", "apex legends",
	"cyberpunk", "elden ring", "zelda", "pokemon", "call of duty", "cod",
)

var cryptocurrencies = newTermSet(
	"bitcoin", "btc", "ethereum", "eth", "dogecoin", "doge", "litecoin", "ltc",
	"ripple", "xrp", "cardano", "ada", "solana", "sol", "polkadot", "dot",
	"binance coin", "bnb", "chainlink", "link", "polygon", "matic",
)

var stockTickers = newTermSet(
	"aapl", "msft", "googl", "amzn", "meta", "tsla", "nvda", "nflx",
	"dis", "ba", "nike", "v", "ma", "jpm", "bac", "wmt",
)

// stopWords are dropped during keyword extraction: articles, pronouns,
// command verbs ("find", "show") and filler words.
var stopWords = newTermSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "up", "about", "into", "through", "during",
	"could", "should", "would", "might", "must", "can", "will", "shall",
	"find", "show", "get", "search", "look", "give", "tell", "want",
	"me", "my", "i", "you", "your", "we", "our", "please", "thanks",
	"stuff", "thing", "things", "related", "all", "some", "any",
)

// entityDictionaries maps category name to its term set.
var entityDictionaries = map[string]termSet{
	domain.EntityLanguages:        languages,
	domain.EntityFrameworks:       frameworks,
	domain.EntityTopics:           topics,
	domain.EntityGames:            games,
	domain.EntityCryptocurrencies: cryptocurrencies,
	domain.EntityStocks:           stockTickers,
}

// termSet is a lookup set of lowercase terms.
type termSet map[string]struct{}

func newTermSet(terms ...string) termSet {
	s := make(termSet, len(terms))
	for _, t := range terms {
		s[t] = struct{}{}
	}
	return s
}

func (s termSet) contains(term string) bool {
	_, ok := s[term]
	return ok
}
