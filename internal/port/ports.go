package port

import (
	"context"

	"tokenscope/internal/domain/entity"
	provider "tokenscope/internal/entity"
)

// CoinGeckoClient defines the interface for interacting with the CoinGecko API.
type CoinGeckoClient interface {
	// GetCoinByContract fetches coin details by contract address on the given
	// asset platform (e.g., "ethereum").
	GetCoinByContract(ctx context.Context, platform, contractAddress string) (*provider.CoinGeckoCoin, error)

	// SearchCoins runs a free-text search and returns candidate coins.
	SearchCoins(ctx context.Context, query string) (*provider.CoinGeckoSearchResult, error)

	// GetCoinByID fetches coin details by CoinGecko coin identifier (slug).
	GetCoinByID(ctx context.Context, coinID string) (*provider.CoinGeckoCoin, error)
}

// DEXScreenerClient defines the interface for interacting with the DEX Screener API.
type DEXScreenerClient interface {
	GetTokenPairs(ctx context.Context, chainID, tokenAddress string) ([]provider.PairData, error)
}

// TokenResolver resolves a free-form query (symbol or contract address) into
// token market data, consulting the cache first and degrading to synthetic
// data when no real source can serve the query.
type TokenResolver interface {
	Resolve(ctx context.Context, query string) (entity.ResolvedToken, error)
}

// RiskCalculator computes liquidation prices and TP/SL payouts for
// isolated-margin perpetual positions. Both operations are pure and never
// return an error; invalid input yields the zero result.
type RiskCalculator interface {
	ComputeLiquidation(entryPrice, leverage, collateral float64) entity.LiquidationResult
	ComputeTpSl(req entity.TpSlRequest) entity.TpSlResult
}

// MarketOverviewService serves the popular-token list and the aggregated
// market overview for the dashboard landing view.
type MarketOverviewService interface {
	GetTokenList(ctx context.Context) ([]entity.TokenListEntry, error)
	GetMarketOverview(ctx context.Context) (entity.MarketOverview, error)
}

// SearchHistory records resolve queries and returns the most recent ones,
// newest first.
type SearchHistory interface {
	Record(query string)
	Recent() []string
}

// WatchlistProvider loads the popular-symbol watchlist.
type WatchlistProvider interface {
	GetWatchlist() ([]entity.WatchlistToken, error)
}
