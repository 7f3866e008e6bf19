// ABOUTME: Cryptocurrency market data adapter over the CoinGecko API
// ABOUTME: Maps coin names in the query to ids, falling back to trending coins

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
	coingeckoAPIURL  = "https://api.coingecko.com/api/v3"
	cryptoMaxResults = 25
)

// coinIDs maps the names and symbols users type to CoinGecko coin ids.
var coinIDs = map[string]string{
	"bitcoin":  "bitcoin",
	"btc":      "bitcoin",
	"ethereum": "ethereum",
	"eth":      "ethereum",
	"tether":   "tether",
	"usdt":     "tether",
	"bnb":      "binancecoin",
	"solana":   "solana",
	"sol":      "solana",
	"xrp":      "ripple",
	"ripple":   "ripple",
	"cardano":  "cardano",
	"ada":      "cardano",
	"dogecoin": "dogecoin",
	"doge":     "dogecoin",
	"polkadot": "polkadot",
	"dot":      "polkadot",
	"litecoin": "litecoin",
	"ltc":      "litecoin",
	"monero":   "monero",
	"xmr":      "monero",
	"polygon":  "matic-network",
	"matic":    "matic-network",
	"stellar":  "stellar",
	"xlm":      "stellar",
	"cosmos":   "cosmos",
	"atom":     "cosmos",
	"chainlink": "chainlink",
	"link":      "chainlink",
	"avalanche": "avalanche-2",
	"avax":      "avalanche-2",
	"shiba":     "shiba-inu",
	"shib":      "shiba-inu",
}

// CryptoSource returns live market data from CoinGecko. Unlike the text
// sources there is no relevance problem here: either the query names coins
// or the trending list is returned.
type CryptoSource struct {
	client  interfaces.HTTPClient
	logger  interfaces.Logger
	limiter *rate.Limiter
	baseURL string
}

// NewCryptoSource creates the CoinGecko adapter.
func NewCryptoSource(deps interfaces.Dependencies) *CryptoSource {
	return &CryptoSource{
		client: deps.HTTPClient,
		logger: deps.Logger,
		// CoinGecko's free tier allows roughly 10 requests/minute.
		limiter: rate.NewLimiter(rate.Every(6*time.Second), 2),
		baseURL: coingeckoAPIURL,
	}
}

func (s *CryptoSource) Name() string { return "crypto" }

func (s *CryptoSource) DisplayName() string { return "Crypto" }

func (s *CryptoSource) Type() domain.SourceType { return domain.SourceTypeMarket }

func (s *CryptoSource) Capabilities() domain.SourceCapabilities {
	return domain.SourceCapabilities{
		MaxResultLimit: cryptoMaxResults,
	}
}

type coinMarket struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	CurrentPrice  float64 `json:"current_price"`
	MarketCapRank int     `json:"market_cap_rank"`
	Change24h     float64 `json:"price_change_percentage_24h"`
	LastUpdated   string  `json:"last_updated"`
}

type trendingResponse struct {
	Coins []struct {
		Item struct {
			ID            string `json:"id"`
			Symbol        string `json:"symbol"`
			Name          string `json:"name"`
			MarketCapRank int    `json:"market_cap_rank"`
			Data          struct {
				Price     float64 `json:"price"`
				Change24h struct {
					USD float64 `json:"usd"`
				} `json:"price_change_percentage_24h"`
			} `json:"data"`
		} `json:"item"`
	} `json:"coins"`
}

// Search resolves coin mentions in the query and fetches their market
// data. Without a recognized coin it falls back to whatever is trending.
func (s *CryptoSource) Search(ctx context.Context, query string, limit int, filters domain.SearchFilters) ([]domain.SearchResult, error) {
	if err := waitForSlot(ctx, s.limiter); err != nil {
		return nil, err
	}

	limit = clampLimit(limit, cryptoMaxResults)

	ids := extractCoinIDs(query)
	if len(ids) == 0 {
		return s.trending(ctx, limit)
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	reqURL := s.baseURL + "/coins/markets?vs_currency=usd&order=market_cap_desc&sparkline=false" +
		"&price_change_percentage=24h&ids=" + strings.Join(ids, ",")

	var coins []coinMarket
	if err := getJSON(ctx, s.client, s.Name(), reqURL, nil, &coins); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(coins))
	for _, coin := range coins {
		updated, _ := time.Parse(time.RFC3339, coin.LastUpdated)
		results = append(results, s.marketResult(
			coin.Symbol, coin.Name, coin.ID,
			coin.CurrentPrice, coin.Change24h, coin.MarketCapRank, updated,
		))
	}

	if s.logger != nil {
		s.logger.Debug("crypto search finished", map[string]interface{}{
			"query":   query,
			"coins":   len(ids),
			"results": len(results),
		})
	}
	return results, nil
}

func (s *CryptoSource) trending(ctx context.Context, limit int) ([]domain.SearchResult, error) {
	var payload trendingResponse
	if err := getJSON(ctx, s.client, s.Name(), s.baseURL+"/search/trending", nil, &payload); err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, limit)
	for _, entry := range payload.Coins {
		if len(results) >= limit {
			break
		}
		item := entry.Item
		results = append(results, s.marketResult(
			item.Symbol, item.Name, item.ID,
			item.Data.Price, item.Data.Change24h.USD, item.MarketCapRank, time.Now().UTC(),
		))
	}
	return results, nil
}

func (s *CryptoSource) marketResult(symbol, name, id string, price, change float64, rank int, updated time.Time) domain.SearchResult {
	return domain.SearchResult{
		Title:       fmt.Sprintf("%s - %s", strings.ToUpper(symbol), name),
		URL:         "https://www.coingecko.com/en/coins/" + id,
		Source:      s.Name(),
		Type:        domain.SourceTypeMarket,
		Description: fmt.Sprintf("$%.6f (%+.2f%% 24h), market cap rank #%d", price, change, rank),
		Author:      "CoinGecko",
		Score:       rank,
		PublishedAt: updated,
		Metadata: map[string]interface{}{
			"symbol":     strings.ToUpper(symbol),
			"coin_id":    id,
			"price":      price,
			"change_24h": change,
		},
	}
}

// extractCoinIDs finds coin mentions in the query, preserving mention order.
func extractCoinIDs(query string) []string {
	lower := strings.ToLower(query)
	seen := make(map[string]struct{})
	var ids []string
	for _, word := range strings.Fields(lower) {
		id, ok := coinIDs[strings.Trim(word, ".,!?")]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
