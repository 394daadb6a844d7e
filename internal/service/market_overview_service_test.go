package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"tokenscope/internal/config"
	"tokenscope/internal/domain/entity"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

type fakeWatchlist struct {
	tokens []entity.WatchlistToken
	err    error
	calls  int
}

func (f *fakeWatchlist) GetWatchlist() ([]entity.WatchlistToken, error) {
	f.calls++
	return f.tokens, f.err
}

func newTestMarketService(watchlist *fakeWatchlist) (*marketOverviewServiceImpl, *cache.Cache) {
	cfg := &config.Config{}
	cfg.Market.MoversCount = 3

	dataCache := cache.New(5*time.Minute, 10*time.Minute)
	synthetic := NewSeededSyntheticGenerator(rand.New(rand.NewSource(7)), fixedClock)

	svc := NewMarketOverviewService(zap.NewNop(), cfg, watchlist, synthetic, dataCache)
	return svc.(*marketOverviewServiceImpl), dataCache
}

func TestGetTokenList(t *testing.T) {
	watchlist := &fakeWatchlist{tokens: []entity.WatchlistToken{
		{Symbol: "BTC", Name: "Bitcoin"},
		{Symbol: "eth"},
	}}
	svc, _ := newTestMarketService(watchlist)

	list, err := svc.GetTokenList(context.Background())
	if err != nil {
		t.Fatalf("GetTokenList: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	if list[0].Symbol != "BTC" || list[0].Name != "Bitcoin" {
		t.Errorf("entry 0 = %+v", list[0])
	}
	// Name falls back to the generated quote when the watchlist omits it.
	if list[1].Symbol != "ETH" || list[1].Name == "" {
		t.Errorf("entry 1 = %+v", list[1])
	}
	for _, quote := range list {
		if quote.Price <= 0 {
			t.Errorf("%s: non-positive price %v", quote.Symbol, quote.Price)
		}
	}
}

func TestGetTokenList_CachesAcrossCalls(t *testing.T) {
	watchlist := &fakeWatchlist{tokens: []entity.WatchlistToken{{Symbol: "BTC"}}}
	svc, _ := newTestMarketService(watchlist)

	first, err := svc.GetTokenList(context.Background())
	if err != nil {
		t.Fatalf("first GetTokenList: %v", err)
	}
	second, err := svc.GetTokenList(context.Background())
	if err != nil {
		t.Fatalf("second GetTokenList: %v", err)
	}

	if watchlist.calls != 1 {
		t.Errorf("watchlist loaded %d times, want 1", watchlist.calls)
	}
	if first[0].Price != second[0].Price {
		t.Errorf("cached quote changed: %v vs %v", first[0].Price, second[0].Price)
	}
}

func TestGetTokenList_WatchlistError(t *testing.T) {
	watchlist := &fakeWatchlist{err: fmt.Errorf("no such file")}
	svc, _ := newTestMarketService(watchlist)

	if _, err := svc.GetTokenList(context.Background()); err == nil {
		t.Fatal("expected error when watchlist cannot be loaded")
	}
}

func TestGetMarketOverview(t *testing.T) {
	tokens := make([]entity.WatchlistToken, 0, 8)
	for i := 0; i < 8; i++ {
		tokens = append(tokens, entity.WatchlistToken{Symbol: fmt.Sprintf("TK%d", i)})
	}
	svc, _ := newTestMarketService(&fakeWatchlist{tokens: tokens})

	overview, err := svc.GetMarketOverview(context.Background())
	if err != nil {
		t.Fatalf("GetMarketOverview: %v", err)
	}

	if overview.ActiveTokens != 8 {
		t.Errorf("ActiveTokens = %d, want 8", overview.ActiveTokens)
	}
	if overview.TotalMarketCap <= 0 || overview.TotalVolume <= 0 {
		t.Errorf("non-positive totals: %+v", overview)
	}
	if len(overview.TopGainers) != 3 || len(overview.TopLosers) != 3 {
		t.Fatalf("movers = %d gainers / %d losers, want 3 / 3", len(overview.TopGainers), len(overview.TopLosers))
	}

	for i := 1; i < len(overview.TopGainers); i++ {
		if overview.TopGainers[i-1].Change24h < overview.TopGainers[i].Change24h {
			t.Errorf("TopGainers not sorted descending at %d", i)
		}
	}
	for i := 1; i < len(overview.TopLosers); i++ {
		if overview.TopLosers[i-1].Change24h > overview.TopLosers[i].Change24h {
			t.Errorf("TopLosers not sorted ascending at %d", i)
		}
	}
	if overview.TopGainers[0].Change24h < overview.TopLosers[0].Change24h {
		t.Error("best gainer moved less than worst loser")
	}
}

func TestGetMarketOverview_Cached(t *testing.T) {
	watchlist := &fakeWatchlist{tokens: []entity.WatchlistToken{{Symbol: "BTC"}}}
	svc, _ := newTestMarketService(watchlist)

	first, err := svc.GetMarketOverview(context.Background())
	if err != nil {
		t.Fatalf("first GetMarketOverview: %v", err)
	}
	second, err := svc.GetMarketOverview(context.Background())
	if err != nil {
		t.Fatalf("second GetMarketOverview: %v", err)
	}
	if watchlist.calls != 1 {
		t.Errorf("watchlist loaded %d times, want 1", watchlist.calls)
	}
	if first.TotalMarketCap != second.TotalMarketCap {
		t.Errorf("cached overview changed: %v vs %v", first.TotalMarketCap, second.TotalMarketCap)
	}
}
