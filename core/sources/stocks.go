// ABOUTME: Stock market quote adapter over a Yahoo Finance style quote API
// ABOUTME: Resolves company names and raw tickers to symbols and fetches quotes

package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"devpulse-search-api/core/domain"
	"devpulse-search-api/core/interfaces"
)

const (
	yahooAPIURL     = "https://query1.finance.yahoo.com"
	stocksMaxResults = 25
)

// tickerSymbols maps common company names to their tickers.
var tickerSymbols = map[string]string{
	"apple":     "AAPL",
	"microsoft": "MSFT",
	"google":    "GOOGL",
	"alphabet":  "GOOGL",
	"amazon":    "AMZN",
	"meta":      "META",
	"facebook":  "META",
	"netflix":   "NFLX",
	"tesla":     "TSLA",
	"nvidia":    "NVDA",
	"amd":       "AMD",
	"intel":     "INTC",
	"oracle":    "ORCL",
	"adobe":     "ADBE",
	"ibm":       "IBM",
	"uber":      "UBER",
	"airbnb":    "ABNB",
	"spotify":   "SPOT",
	"reddit":    "RDDT",
	"visa":      "V",
	"mastercard": "MA",
	"paypal":     "PYPL",
	"coinbase":   "COIN",
	"walmart":    "WMT",
	"costco":     "COST",
	"nike":       "NKE",
	"starbucks":  "SBUX",
	"disney":     "DIS",
	"ford":       "F",
	"toyota":     "TM",
}

// trendingTickers is the fallback set when the query names no company.
var trendingTickers = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA"}

// StocksSource returns live quotes from a Yahoo Finance compatible API.
type StocksSource struct {
	client  interfaces.HTTPClient
	logger  interfaces.Logger
	limiter *rate.Limiter
	baseURL string
}

// NewStocksSource creates the stock quote adapter.
func NewStocksSource(deps interfaces.Dependencies) *StocksSource {
	return &StocksSource{
		client:  deps.HTTPClient,
		logger:  deps.Logger,
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 3),
		baseURL: yahooAPIURL,
	}
}

func (s *StocksSource) Name() string { return "stocks" }

func (s *StocksSource) DisplayName() string { return "Stocks" }

func (s *StocksSource) Type() domain.SourceType { return domain.SourceTypeMarket }

func (s *StocksSource) Capabilities() domain.SourceCapabilities {
	return domain.SourceCapabilities{
		MaxResultLimit: stocksMaxResults,
	}
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []stockQuote `json:"result"`
	} `json:"quoteResponse"`
}

type stockQuote struct {
	Symbol        string  `json:"symbol"`
	LongName      string  `json:"longName"`
	ShortName     string  `json:"shortName"`
	Price         float64 `json:"regularMarketPrice"`
	PreviousClose float64 `json:"regularMarketPreviousClose"`
	Volume        int64   `json:"regularMarketVolume"`
}

// Search resolves tickers from the query and fetches their quotes in one
// request. With no recognizable ticker the major tech names are quoted.
func (s *StocksSource) Search(ctx context.Context, query string, limit int, filters domain.SearchFilters) ([]domain.SearchResult, error) {
	if err := waitForSlot(ctx, s.limiter); err != nil {
		return nil, err
	}

	limit = clampLimit(limit, stocksMaxResults)

	tickers := extractTickers(query)
	if len(tickers) == 0 {
		tickers = trendingTickers
	}
	if len(tickers) > limit {
		tickers = tickers[:limit]
	}

	reqURL := s.baseURL + "/v6/finance/quote?symbols=" + strings.Join(tickers, ",")
	headers := map[string]string{
		"Accept":  "application/json",
		"Referer": "https://finance.yahoo.com",
	}

	var payload quoteResponse
	if err := getJSON(ctx, s.client, s.Name(), reqURL, headers, &payload); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(payload.QuoteResponse.Result))
	for _, quote := range payload.QuoteResponse.Result {
		name := quote.LongName
		if name == "" {
			name = quote.ShortName
		}
		if name == "" {
			name = quote.Symbol
		}

		change := 0.0
		changePct := 0.0
		if quote.PreviousClose > 0 {
			change = quote.Price - quote.PreviousClose
			changePct = change / quote.PreviousClose * 100
		}

		results = append(results, domain.SearchResult{
			Title:       fmt.Sprintf("%s - %s", quote.Symbol, name),
			URL:         "https://finance.yahoo.com/quote/" + quote.Symbol,
			Source:      s.Name(),
			Type:        domain.SourceTypeMarket,
			Description: fmt.Sprintf("$%.2f (%+.2f, %+.2f%%), volume %d", quote.Price, change, changePct, quote.Volume),
			Author:      "Yahoo Finance",
			Score:       int(quote.Volume),
			PublishedAt: time.Now().UTC(),
			Metadata: map[string]interface{}{
				"symbol":         quote.Symbol,
				"price":          quote.Price,
				"change_percent": changePct,
			},
		})
	}

	if s.logger != nil {
		s.logger.Debug("stocks search finished", map[string]interface{}{
			"query":   query,
			"tickers": tickers,
			"results": len(results),
		})
	}
	return results, nil
}

// extractTickers pulls symbols from the query: raw uppercase tickers first,
// then known company names, deduplicated in mention order.
func extractTickers(query string) []string {
	seen := make(map[string]struct{})
	var tickers []string

	add := func(symbol string) {
		if _, dup := seen[symbol]; dup {
			return
		}
		seen[symbol] = struct{}{}
		tickers = append(tickers, symbol)
	}

	for _, word := range strings.Fields(query) {
		trimmed := strings.Trim(word, ".,!?")
		if isUpperTicker(trimmed) {
			add(trimmed)
			continue
		}
		if symbol, ok := tickerSymbols[strings.ToLower(trimmed)]; ok {
			add(symbol)
		}
	}

	return tickers
}

func isUpperTicker(word string) bool {
	if len(word) < 2 || len(word) > 5 {
		return false
	}
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
