package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"tokenscope/internal/client"
	"tokenscope/internal/config"
	"tokenscope/internal/domain/entity"
	provider "tokenscope/internal/entity"
	"tokenscope/internal/pkg/metrics"
	"tokenscope/internal/pkg/utils"
	"tokenscope/internal/port"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var contractAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// looksLikeContractAddress reports whether the query has the shape of an EVM
// contract address.
func looksLikeContractAddress(query string) bool {
	return contractAddressPattern.MatchString(query)
}

var stablecoinSymbols = map[string]struct{}{
	"USDC": {},
	"USDT": {},
	"DAI":  {},
}

// tokenResolverServiceImpl implements port.TokenResolver. It serves repeated
// queries from an injected TTL cache, walks a fixed fallback chain of real
// data sources on a miss, and degrades to synthetic data when every real
// source fails. Concurrent lookups for the same key are collapsed into a
// single chain run via singleflight.
type tokenResolverServiceImpl struct {
	logger      *zap.Logger
	cfg         *config.Config
	coinGecko   port.CoinGeckoClient
	dexScreener port.DEXScreenerClient
	synthetic   *SyntheticGenerator
	tokenCache  *cache.Cache
	group       singleflight.Group
	now         func() time.Time
}

// NewTokenResolverService creates a new instance of tokenResolverServiceImpl.
// The cache is injected so tests and multiple resolvers can run isolated.
func NewTokenResolverService(
	logger *zap.Logger,
	cfg *config.Config,
	coinGecko port.CoinGeckoClient,
	dexScreener port.DEXScreenerClient,
	synthetic *SyntheticGenerator,
	tokenCache *cache.Cache,
) port.TokenResolver {
	return &tokenResolverServiceImpl{
		logger:      logger.Named("TokenResolver"),
		cfg:         cfg,
		coinGecko:   coinGecko,
		dexScreener: dexScreener,
		synthetic:   synthetic,
		tokenCache:  tokenCache,
		now:         time.Now,
	}
}

// cacheKey normalizes a query into a case-insensitive cache key.
func cacheKey(query string) string {
	return "token_" + strings.ToLower(strings.TrimSpace(query))
}

// Resolve implements the port.TokenResolver interface. The only error it
// returns is context cancellation; every provider failure is recovered by
// advancing the fallback chain.
func (s *tokenResolverServiceImpl) Resolve(ctx context.Context, query string) (entity.ResolvedToken, error) {
	start := s.now()
	defer func() {
		metrics.ResolveDurationSeconds.Observe(s.now().Sub(start).Seconds())
	}()

	query = strings.TrimSpace(query)
	if query == "" {
		return entity.ResolvedToken{}, fmt.Errorf("query cannot be empty")
	}

	key := cacheKey(query)
	if cached, found := s.tokenCache.Get(key); found {
		metrics.CacheHitsTotal.Inc()
		s.logger.Debug("Cache hit", zap.String("key", key))
		return cached.(entity.ResolvedToken), nil
	}
	metrics.CacheMissesTotal.Inc()

	v, err, shared := s.group.Do(key, func() (any, error) {
		// A concurrent caller may have populated the cache while this call
		// waited for the flight slot.
		if cached, found := s.tokenCache.Get(key); found {
			return cached.(entity.ResolvedToken), nil
		}

		resolved, err := s.resolveUncached(ctx, query)
		if err != nil {
			return entity.ResolvedToken{}, err
		}

		s.tokenCache.Set(key, resolved, cache.DefaultExpiration)
		return resolved, nil
	})
	if err != nil {
		return entity.ResolvedToken{}, err
	}
	if shared {
		s.logger.Debug("Resolution shared with concurrent caller", zap.String("key", key))
	}
	return v.(entity.ResolvedToken), nil
}

// resolveUncached classifies the query and walks the matching fallback chain.
func (s *tokenResolverServiceImpl) resolveUncached(ctx context.Context, query string) (entity.ResolvedToken, error) {
	var resolved entity.ResolvedToken
	var ok bool

	if looksLikeContractAddress(query) {
		resolved, ok = s.resolveByContract(ctx, query)
	} else {
		resolved, ok = s.resolveBySymbol(ctx, query)
	}
	if ok {
		return resolved, nil
	}

	if err := ctx.Err(); err != nil {
		return entity.ResolvedToken{}, fmt.Errorf("resolution aborted: %w", err)
	}

	s.logger.Warn("All real data sources failed, generating synthetic data", zap.String("query", query))
	metrics.SyntheticFallbacksTotal.Inc()
	return entity.ResolvedToken{
		Token:  s.synthetic.Generate(query),
		Source: entity.SourceSynthetic,
	}, nil
}

// resolveByContract tries the contract endpoint, then free-text search, then
// a DEX Screener pair lookup.
func (s *tokenResolverServiceImpl) resolveByContract(ctx context.Context, address string) (entity.ResolvedToken, bool) {
	coin, err := s.coinGecko.GetCoinByContract(ctx, s.cfg.CoinGecko.ContractPlatform, address)
	if err == nil {
		metrics.ProviderRequestsTotal.WithLabelValues("coingecko", metrics.OutcomeSuccess).Inc()
		return entity.ResolvedToken{Token: s.formatCoinGeckoCoin(coin, address), Source: entity.SourceCoinGecko}, true
	}
	s.recordCoinGeckoFailure("contract lookup", address, err)

	if coin := s.searchAndFetch(ctx, address); coin != nil {
		return entity.ResolvedToken{Token: s.formatCoinGeckoCoin(coin, address), Source: entity.SourceCoinGecko}, true
	}

	pairs, err := s.dexScreener.GetTokenPairs(ctx, s.cfg.DEXScreener.ChainID, address)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("dexscreener", metrics.OutcomeError).Inc()
		s.logger.Warn("DEX Screener lookup failed", zap.String("address", address), zap.Error(err))
		return entity.ResolvedToken{}, false
	}
	pair := s.selectBestPair(pairs, address)
	if pair == nil {
		metrics.ProviderRequestsTotal.WithLabelValues("dexscreener", metrics.OutcomeNotFound).Inc()
		return entity.ResolvedToken{}, false
	}
	metrics.ProviderRequestsTotal.WithLabelValues("dexscreener", metrics.OutcomeSuccess).Inc()
	return entity.ResolvedToken{Token: s.formatPairData(*pair), Source: entity.SourceDEXScreener}, true
}

// resolveBySymbol tries free-text search first, then a direct by-slug lookup.
func (s *tokenResolverServiceImpl) resolveBySymbol(ctx context.Context, symbol string) (entity.ResolvedToken, bool) {
	if coin := s.searchAndFetch(ctx, symbol); coin != nil {
		return entity.ResolvedToken{Token: s.formatCoinGeckoCoin(coin, ""), Source: entity.SourceCoinGecko}, true
	}

	coin, err := s.coinGecko.GetCoinByID(ctx, strings.ToLower(symbol))
	if err != nil {
		s.recordCoinGeckoFailure("direct slug lookup", symbol, err)
		return entity.ResolvedToken{}, false
	}
	metrics.ProviderRequestsTotal.WithLabelValues("coingecko", metrics.OutcomeSuccess).Inc()
	return entity.ResolvedToken{Token: s.formatCoinGeckoCoin(coin, ""), Source: entity.SourceCoinGecko}, true
}

// searchAndFetch runs the free-text search and fetches full details for the
// first candidate. Returns nil when the search fails or yields nothing.
func (s *tokenResolverServiceImpl) searchAndFetch(ctx context.Context, query string) *provider.CoinGeckoCoin {
	searchResult, err := s.coinGecko.SearchCoins(ctx, query)
	if err != nil {
		s.recordCoinGeckoFailure("search", query, err)
		return nil
	}
	if len(searchResult.Coins) == 0 {
		metrics.ProviderRequestsTotal.WithLabelValues("coingecko", metrics.OutcomeNotFound).Inc()
		s.logger.Debug("Search yielded no candidates", zap.String("query", query))
		return nil
	}

	coinID := searchResult.Coins[0].ID
	coin, err := s.coinGecko.GetCoinByID(ctx, coinID)
	if err != nil {
		s.recordCoinGeckoFailure("detail fetch", coinID, err)
		return nil
	}
	metrics.ProviderRequestsTotal.WithLabelValues("coingecko", metrics.OutcomeSuccess).Inc()
	return coin
}

func (s *tokenResolverServiceImpl) recordCoinGeckoFailure(step, subject string, err error) {
	outcome := metrics.OutcomeError
	if errors.Is(err, client.ErrNotFound) {
		outcome = metrics.OutcomeNotFound
	}
	metrics.ProviderRequestsTotal.WithLabelValues("coingecko", outcome).Inc()
	s.logger.Warn("CoinGecko step failed, advancing fallback chain",
		zap.String("step", step),
		zap.String("subject", subject),
		zap.Error(err))
}

// formatCoinGeckoCoin maps a coin detail response into TokenData. Missing
// nested fields default to zero values rather than failing; contractOverride
// wins over the platforms map when the caller queried by address.
func (s *tokenResolverServiceImpl) formatCoinGeckoCoin(coin *provider.CoinGeckoCoin, contractOverride string) entity.TokenData {
	vs := s.cfg.CoinGecko.VsCurrency
	now := s.now()

	var price, change, volume, marketCap, totalSupply float64
	if md := coin.MarketData; md != nil {
		price = md.CurrentPrice[vs]
		change = md.PriceChangePercentage24h
		volume = md.TotalVolume[vs]
		marketCap = md.MarketCap[vs]
		if md.TotalSupply != nil {
			totalSupply = *md.TotalSupply
		}
	}

	contract := contractOverride
	if contract == "" && coin.Platforms != nil {
		contract = coin.Platforms[s.cfg.CoinGecko.ContractPlatform]
	}

	var website, twitter, telegram string
	if links := coin.Links; links != nil {
		if len(links.Homepage) > 0 {
			website = links.Homepage[0]
		}
		if links.TwitterScreenName != "" {
			twitter = "https://twitter.com/" + links.TwitterScreenName
		}
		if links.TelegramChannelIdentifier != "" {
			telegram = "https://t.me/" + links.TelegramChannelIdentifier
		}
	}

	description := coin.Description["en"]
	if description == "" {
		description = fmt.Sprintf("Token analysis for %s", strings.ToUpper(coin.Symbol))
	}

	createdAt := now
	isNew := false
	if coin.GenesisDate != "" {
		if genesis, err := time.Parse("2006-01-02", coin.GenesisDate); err == nil {
			createdAt = genesis
			isNew = now.Sub(genesis) < 30*24*time.Hour
		}
	}

	return entity.TokenData{
		Symbol:          strings.ToUpper(coin.Symbol),
		Name:            coin.Name,
		Price:           price,
		PriceChange24h:  change,
		Volume24h:       volume,
		MarketCap:       marketCap,
		TotalSupply:     totalSupply,
		ContractAddress: strings.ToLower(contract),
		Website:         website,
		Twitter:         twitter,
		Telegram:        telegram,
		Description:     description,
		CreatedAt:       createdAt,
		PriceHistory:    s.synthetic.PriceHistory(price, now),
		Analytics: entity.TokenAnalytics{
			Volatility:      math.Abs(change),
			SocialSentiment: s.synthetic.RandomScore(),
			TradingActivity: tradingActivityScore(volume, marketCap),
			LiquidityScore:  liquidityScore(volume),
		},
		LaunchScore:  launchScore(marketCap, volume, change),
		SniperAlerts: sniperAlertCount(change, volume, marketCap),
		IsNewToken:   isNew,
	}
}

// formatPairData maps a DEX Screener pair into TokenData.
func (s *tokenResolverServiceImpl) formatPairData(pair provider.PairData) entity.TokenData {
	now := s.now()

	price := utils.ParseFloatOrZero(pair.PriceUsd)
	change := pair.PriceChange.H24
	volume := pair.Volume.H24
	marketCap := pair.MarketCap
	if marketCap == 0 {
		marketCap = pair.Fdv
	}

	createdAt := now
	isNew := false
	if pair.PairCreatedAt > 0 {
		createdAt = time.UnixMilli(pair.PairCreatedAt)
		isNew = now.Sub(createdAt) < 30*24*time.Hour
	}

	var liquidityUSD float64
	if pair.Liquidity != nil {
		liquidityUSD = pair.Liquidity.Usd
	}

	return entity.TokenData{
		Symbol:          strings.ToUpper(pair.BaseToken.Symbol),
		Name:            pair.BaseToken.Name,
		Price:           price,
		PriceChange24h:  change,
		Volume24h:       volume,
		MarketCap:       marketCap,
		ContractAddress: strings.ToLower(pair.BaseToken.Address),
		Description:     fmt.Sprintf("Token analysis for %s (via %s pair)", strings.ToUpper(pair.BaseToken.Symbol), pair.DexID),
		CreatedAt:       createdAt,
		PriceHistory:    s.synthetic.PriceHistory(price, now),
		Analytics: entity.TokenAnalytics{
			Volatility:      math.Abs(change),
			SocialSentiment: s.synthetic.RandomScore(),
			TradingActivity: tradingActivityScore(volume, marketCap),
			LiquidityScore:  math.Min(100, liquidityUSD/1_000_000),
		},
		LaunchScore:  launchScore(marketCap, volume, change),
		SniperAlerts: sniperAlertCount(change, volume, marketCap),
		IsNewToken:   isNew,
	}
}

// selectBestPair picks the pair to price a token from. Pairs quoted in a
// stablecoin win; liquidity breaks ties. Mirrors how the dashboard picks a
// canonical market for a token with many venues.
func (s *tokenResolverServiceImpl) selectBestPair(pairs []provider.PairData, baseTokenAddress string) *provider.PairData {
	var bestOverall, bestStablecoin *provider.PairData

	for i := range pairs {
		pair := &pairs[i]
		if !strings.EqualFold(pair.BaseToken.Address, baseTokenAddress) {
			continue
		}
		if pair.PriceUsd == "" || pair.PriceUsd == "0" {
			continue
		}

		_, isStablecoin := stablecoinSymbols[strings.ToUpper(pair.QuoteToken.Symbol)]
		if isStablecoin && (bestStablecoin == nil || moreLiquid(pair, bestStablecoin)) {
			bestStablecoin = pair
		}
		if bestOverall == nil || moreLiquid(pair, bestOverall) {
			bestOverall = pair
		}
	}

	if bestStablecoin != nil {
		return bestStablecoin
	}
	return bestOverall
}

func moreLiquid(a, b *provider.PairData) bool {
	if a.Liquidity == nil || b.Liquidity == nil {
		return false
	}
	return a.Liquidity.Usd > b.Liquidity.Usd
}

// launchScore rates a token's launch quality from market-cap, volume and
// price-stability tiers. Base 50, clamped to [0,100].
func launchScore(marketCap, volume, priceChange float64) int {
	score := 50

	switch {
	case marketCap > 1_000_000_000:
		score += 20
	case marketCap > 100_000_000:
		score += 15
	case marketCap > 10_000_000:
		score += 10
	}

	switch {
	case volume > 100_000_000:
		score += 15
	case volume > 10_000_000:
		score += 10
	}

	absChange := math.Abs(priceChange)
	switch {
	case absChange < 10:
		score += 10
	case absChange < 50:
		score += 5
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// sniperAlertCount counts volatility and volume-spike warnings.
func sniperAlertCount(priceChange, volume, marketCap float64) int {
	alerts := 0

	absChange := math.Abs(priceChange)
	switch {
	case absChange > 100:
		alerts += 3
	case absChange > 50:
		alerts += 2
	case absChange > 20:
		alerts += 1
	}

	if marketCap <= 0 {
		marketCap = 1
	}
	ratio := volume / marketCap
	switch {
	case ratio > 0.5:
		alerts += 2
	case ratio > 0.2:
		alerts += 1
	}

	return alerts
}

func tradingActivityScore(volume, marketCap float64) float64 {
	if marketCap <= 0 {
		marketCap = 1
	}
	return math.Min(100, volume/marketCap*1000)
}

func liquidityScore(volume float64) float64 {
	return math.Min(100, volume/1_000_000)
}
