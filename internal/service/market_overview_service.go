package service

import (
	"context"
	"fmt"
	"sort"

	"tokenscope/internal/config"
	"tokenscope/internal/domain/entity"
	"tokenscope/internal/port"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	tokenListCacheKey  = "token_list"
	marketDataCacheKey = "market_data"
)

// marketOverviewServiceImpl implements port.MarketOverviewService. The
// numbers are synthetic; what matters to the dashboard is a stable, cached
// shape, not real aggregates.
type marketOverviewServiceImpl struct {
	logger    *zap.Logger
	cfg       *config.Config
	watchlist port.WatchlistProvider
	synthetic *SyntheticGenerator
	dataCache *cache.Cache
}

// NewMarketOverviewService creates a new instance of marketOverviewServiceImpl.
func NewMarketOverviewService(
	logger *zap.Logger,
	cfg *config.Config,
	watchlist port.WatchlistProvider,
	synthetic *SyntheticGenerator,
	dataCache *cache.Cache,
) port.MarketOverviewService {
	return &marketOverviewServiceImpl{
		logger:    logger.Named("MarketOverviewService"),
		cfg:       cfg,
		watchlist: watchlist,
		synthetic: synthetic,
		dataCache: dataCache,
	}
}

// GetTokenList implements the port.MarketOverviewService interface. Quotes
// are generated per watchlist symbol and cached for the configured TTL.
func (s *marketOverviewServiceImpl) GetTokenList(ctx context.Context) ([]entity.TokenListEntry, error) {
	if cached, found := s.dataCache.Get(tokenListCacheKey); found {
		return cached.([]entity.TokenListEntry), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens, err := s.watchlist.GetWatchlist()
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}

	list := make([]entity.TokenListEntry, 0, len(tokens))
	for _, token := range tokens {
		quote := s.synthetic.Generate(token.Symbol)
		name := token.Name
		if name == "" {
			name = quote.Name
		}
		list = append(list, entity.TokenListEntry{
			Symbol:    quote.Symbol,
			Name:      name,
			Price:     quote.Price,
			Change24h: quote.PriceChange24h,
		})
	}

	s.dataCache.Set(tokenListCacheKey, list, cache.DefaultExpiration)
	s.logger.Debug("Refreshed token list", zap.Int("count", len(list)))
	return list, nil
}

// GetMarketOverview implements the port.MarketOverviewService interface.
func (s *marketOverviewServiceImpl) GetMarketOverview(ctx context.Context) (entity.MarketOverview, error) {
	if cached, found := s.dataCache.Get(marketDataCacheKey); found {
		return cached.(entity.MarketOverview), nil
	}

	list, err := s.GetTokenList(ctx)
	if err != nil {
		return entity.MarketOverview{}, err
	}

	overview := entity.MarketOverview{
		ActiveTokens: len(list),
	}
	for _, quote := range list {
		overview.TotalVolume += quote.Price * 1_000_000 // notional volume proxy
		overview.TotalMarketCap += quote.Price * 100_000_000
		if quote.Change24h > 0 {
			overview.NewTokens24h++
		}
	}

	sorted := make([]entity.TokenListEntry, len(list))
	copy(sorted, list)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Change24h > sorted[j].Change24h
	})

	n := s.cfg.Market.MoversCount
	if n > len(sorted) {
		n = len(sorted)
	}
	overview.TopGainers = append([]entity.TokenListEntry(nil), sorted[:n]...)

	losers := make([]entity.TokenListEntry, 0, n)
	for i := len(sorted) - 1; i >= len(sorted)-n; i-- {
		losers = append(losers, sorted[i])
	}
	overview.TopLosers = losers

	s.dataCache.Set(marketDataCacheKey, overview, cache.DefaultExpiration)
	return overview, nil
}
