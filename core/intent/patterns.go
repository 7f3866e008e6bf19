// ABOUTME: Regex rule tables for source, intent-type and recency detection
// ABOUTME: All patterns are compiled once at classifier construction, never per call

package intent

import (
	"regexp"

	"devpulse-search-api/core/domain"
)

// Source names the classifier can route to. These must match the names the
// adapters register under.
const (
	SourceGitHub     = "github"
	SourceReddit     = "reddit"
	SourceHackerNews = "hackernews"
	SourceDevTo      = "devto"
	SourceStocks     = "stocks"
	SourceCrypto     = "crypto"
	SourceIGN        = "ign"
	SourcePCGamer    = "pcgamer"
)

// sourceRule binds one source name to the phrasings that explicitly ask for it.
type sourceRule struct {
	source   string
	patterns []string
}

// sourceRules is ordered; detection walks it top to bottom so detected
// sources come out in a stable order.
var sourceRules = []sourceRule{
	{SourceGitHub, []string{
		`(?i)\b(on|from|in|at)\s+github\b`,
		`(?i)\bgithub\s+(repo|repository|repositories|code|project|projects)\b`,
		`(?i)\b(find|show|search)\s+.*\s+(repo|repository|code)\b`,
	}},
	{SourceReddit, []string{
		`(?i)\b(on|from|in|at)\s+reddit\b`,
		`(?i)\breddit\s+(thread|post|discussion)\b`,
		`(?i)\bsubreddit\b`,
	}},
	{SourceHackerNews, []string{
		`(?i)\b(on|from|in|at)\s+(hackernews|hacker\s*news|hn)\b`,
		`(?i)\b(hackernews|hn)\s+(post|story|discussion)\b`,
	}},
	{SourceDevTo, []string{
		`(?i)\b(on|from|in|at)\s+dev\.to\b`,
		`(?i)\bdev\.to\s+(article|post|tutorial)\b`,
	}},
	{SourceStocks, []string{
		`(?i)\b(stock|stocks|share|shares)\s+(price|ticker|quote)\b`,
		`(?i)\b(nasdaq|nyse|dow)\s+(price|quote|ticker)?\b`,
		`(?i)\byahoo\s+(finance\s+)?(price|quote|stock)\b`,
		`(?i)\b[a-z]{2,5}\s+(stock|price|quote)\b`,
	}},
	{SourceCrypto, []string{
		`(?i)\b(bitcoin|ethereum|crypto|cryptocurrency)\s+(price|value|market|news|updates?)\b`,
		`(?i)\b(btc|eth|crypto)\s+(price|chart|value|news)\b`,
		`(?i)\bcryptocurrency\b`,
		`(?i)\bcrypto\s+market\b`,
	}},
	{SourceIGN, []string{
		`(?i)\b(on|from|in|at)\s+ign\b`,
		`(?i)\bign\s+(news|article|review)\b`,
		`(?i)\bgaming\s+(news|article|review)\b`,
		`(?i)\b(video\s+)?game\s+(news|review|reviews|article)\b`,
		`(?i)\b(newest|latest|recent)\s+game\s+(news|review|reviews)\b`,
		`(?i)\bgame\s+(release|releases|announcement)\b`,
	}},
	{SourcePCGamer, []string{
		`(?i)\b(on|from|in|at)\s+pc\s*gamer\b`,
		`(?i)\bpc\s*gamer\s+(news|article|review)\b`,
		`(?i)\bpc\s+game\s+(news|review|reviews)\b`,
		`(?i)\bpc\s+gaming\s+(news|review|reviews)\b`,
	}},
}

// intentRule binds one intent type to its trigger phrasings.
type intentRule struct {
	intentType domain.IntentType
	patterns   []string
}

var intentRules = []intentRule{
	{domain.IntentTutorial, []string{
		`(?i)\b(tutorial|tutorials|guide|guides|how\s+to|learn|learning)\b`,
		`(?i)\bteach\s+me\b`,
		`(?i)\bstep\s+by\s+step\b`,
	}},
	{domain.IntentDiscussion, []string{
		`(?i)\b(discussion|discussions|debate|opinion|opinions|thread|threads)\b`,
		`(?i)\bwhat\s+(do\s+people|does\s+everyone|are\s+people)\s+think\b`,
		`(?i)\b(talk|talking)\s+about\b`,
	}},
	{domain.IntentNews, []string{
		`(?i)\b(trending|popular|hot|latest|recent|new|news)\b`,
		`(?i)\b(today|this\s+week|this\s+month)\b`,
		`(?i)\bwhat'?s\s+(hot|new|trending)\b`,
	}},
	{domain.IntentPriceCheck, []string{
		`(?i)\b(price|value|cost|quote|ticker)\b`,
		`(?i)\bhow\s+much\b`,
		`(?i)\b(bitcoin|btc|ethereum|eth|stock)\s+(price|value)\b`,
	}},
	{domain.IntentDocumentation, []string{
		`(?i)\b(docs|documentation|api\s+reference|official\s+docs)\b`,
		`(?i)\bapi\s+documentation\b`,
	}},
	{domain.IntentCodeSearch, []string{
		`(?i)\b(repo|repos|repository|repositories|code|project|projects)\b`,
		`(?i)\b(library|libraries|package|packages|framework|frameworks)\b`,
		`(?i)\bopen\s+source\b`,
		`(?i)\bgithub\s+(repo|repos|code|project)\b`,
	}},
	{domain.IntentGaming, []string{
		`(?i)\b(game|games|gaming)\s+(news|review|reviews|article|articles|release|releases)\b`,
		`(?i)\b(video\s+game|pc\s+game|console\s+game)s?\b`,
		`(?i)\b(newest|latest|recent)\s+game\b`,
		`(?i)\b(game|gaming)\s+(content|updates?|announcement|trailer)\b`,
		`(?i)\bign\b`,
		`(?i)\bpc\s*gamer\b`,
	}},
}

// timePatterns mark a query as needing fresh data.
var timePatterns = []string{
	`(?i)\b(today|tonight|now|current|latest|recent|this\s+week|this\s+month)\b`,
	`\b\d{4}\b`,
	`(?i)\breal[-\s]?time\b`,
}

// intentPriority breaks ties when several intent types match with the same
// pattern-hit count. Most specific wins.
var intentPriority = []domain.IntentType{
	domain.IntentPriceCheck,
	domain.IntentGaming,
	domain.IntentTutorial,
	domain.IntentCodeSearch,
	domain.IntentDiscussion,
	domain.IntentNews,
	domain.IntentDocumentation,
	domain.IntentGeneral,
}

// intentSourceRouting maps each intent type to the sources it should query,
// in priority order.
var intentSourceRouting = map[domain.IntentType][]string{
	domain.IntentTutorial:      {SourceGitHub, SourceDevTo},
	domain.IntentCodeSearch:    {SourceGitHub, SourceDevTo},
	domain.IntentDiscussion:    {SourceReddit, SourceHackerNews},
	domain.IntentNews:          {SourceHackerNews, SourceReddit, SourceDevTo},
	domain.IntentPriceCheck:    {SourceCrypto, SourceStocks},
	domain.IntentDocumentation: {SourceGitHub, SourceDevTo},
	domain.IntentGaming:        {SourceIGN, SourcePCGamer},
}

// allSources is the low-confidence fallback: query everything.
var allSources = []string{
	SourceGitHub, SourceReddit, SourceHackerNews, SourceDevTo,
	SourceStocks, SourceCrypto, SourceIGN, SourcePCGamer,
}

// defaultSources is the conservative code-leaning subset used when the
// intent is general but confidence is reasonable.
var defaultSources = []string{SourceGitHub, SourceDevTo, SourceHackerNews}

// compiledSourceRule holds one source's compiled pattern list.
type compiledSourceRule struct {
	source   string
	patterns []*regexp.Regexp
}

// compiledIntentRule holds one intent type's compiled pattern list.
type compiledIntentRule struct {
	intentType domain.IntentType
	patterns   []*regexp.Regexp
}

func compilePatterns(exprs []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		compiled = append(compiled, regexp.MustCompile(expr))
	}
	return compiled
}
