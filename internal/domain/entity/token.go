package entity

import "time"

// DataSource identifies which backend produced a resolved token.
type DataSource string

const (
	SourceCoinGecko   DataSource = "coingecko"
	SourceDEXScreener DataSource = "dexscreener"
	SourceSynthetic   DataSource = "synthetic"
)

// IsSynthetic reports whether the data was generated locally instead of
// fetched from a real provider.
func (s DataSource) IsSynthetic() bool {
	return s == SourceSynthetic
}

// PricePoint is a single entry of a token's hourly price history.
type PricePoint struct {
	Time   time.Time `json:"time"`
	Price  float64   `json:"price"`
	Volume float64   `json:"volume"`
}

// TokenAnalytics holds the 0-100 analytics scores shown next to a token.
type TokenAnalytics struct {
	Volatility      float64 `json:"volatility"`
	SocialSentiment float64 `json:"socialSentiment"`
	TradingActivity float64 `json:"tradingActivity"`
	LiquidityScore  float64 `json:"liquidityScore"`
}

// TokenData holds the market data for a single token. It is produced either by
// formatting a provider response or by the synthetic generator, and is
// immutable once returned.
type TokenData struct {
	Symbol          string         `json:"symbol"`
	Name            string         `json:"name"`
	Price           float64        `json:"price"`
	PriceChange24h  float64        `json:"priceChange24h"`
	Volume24h       float64        `json:"volume24h"`
	MarketCap       float64        `json:"marketCap"`
	TotalSupply     float64        `json:"totalSupply"`
	ContractAddress string         `json:"contractAddress,omitempty"`
	Website         string         `json:"website,omitempty"`
	Twitter         string         `json:"twitter,omitempty"`
	Telegram        string         `json:"telegram,omitempty"`
	Description     string         `json:"description,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	PriceHistory    []PricePoint   `json:"priceHistory"`
	Analytics       TokenAnalytics `json:"analytics"`
	LaunchScore     int            `json:"launchScore"`
	SniperAlerts    int            `json:"sniperAlerts"`
	IsNewToken      bool           `json:"isNewToken"`
}

// ResolvedToken is the tagged result of a resolve call: the token data plus
// the source that produced it, so callers can tell real data from the
// synthetic fallback.
type ResolvedToken struct {
	Token  TokenData  `json:"token"`
	Source DataSource `json:"source"`
}

// TokenListEntry is a compact quote used by the popular-token list.
type TokenListEntry struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h"`
}

// MarketOverview aggregates market-wide numbers for the dashboard landing view.
type MarketOverview struct {
	TotalMarketCap float64          `json:"totalMarketCap"`
	TotalVolume    float64          `json:"totalVolume"`
	ActiveTokens   int              `json:"activeTokens"`
	NewTokens24h   int              `json:"newTokens24h"`
	TopGainers     []TokenListEntry `json:"topGainers"`
	TopLosers      []TokenListEntry `json:"topLosers"`
}

// WatchlistToken is one entry of the popular-symbol watchlist file.
type WatchlistToken struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
