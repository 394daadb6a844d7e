package service

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"tokenscope/internal/domain/entity"
)

const priceHistoryPoints = 24

// SyntheticGenerator produces plausible-looking token data for queries no
// real source can serve. It never fails, which is what lets the resolver
// guarantee it always returns something. The generated description marks the
// data as simulated, and the resolver tags it with SourceSynthetic.
type SyntheticGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSyntheticGenerator creates a generator seeded from the current time.
func NewSyntheticGenerator() *SyntheticGenerator {
	return NewSeededSyntheticGenerator(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// NewSeededSyntheticGenerator creates a generator with an explicit random
// source and clock, for deterministic tests.
func NewSeededSyntheticGenerator(rng *rand.Rand, now func() time.Time) *SyntheticGenerator {
	return &SyntheticGenerator{rng: rng, now: now}
}

// Generate builds a fully populated TokenData for the raw query.
func (g *SyntheticGenerator) Generate(query string) entity.TokenData {
	g.mu.Lock()
	defer g.mu.Unlock()

	trimmed := strings.TrimSpace(query)
	symbol := strings.ToUpper(trimmed)
	now := g.now()

	basePrice := g.rng.Float64() * 10
	change := (g.rng.Float64() - 0.5) * 0.2 // ±10% daily move
	price := basePrice * (1 + change)

	contract := trimmed
	if !looksLikeContractAddress(trimmed) {
		contract = g.randomContractAddress()
	}

	token := entity.TokenData{
		Symbol:          symbol,
		Name:            fmt.Sprintf("%s Token", symbol),
		Price:           price,
		PriceChange24h:  change * 100,
		Volume24h:       g.rng.Float64() * 1_000_000,
		MarketCap:       g.rng.Float64() * 100_000_000,
		TotalSupply:     float64(g.rng.Intn(1_000_000_000)),
		ContractAddress: strings.ToLower(contract),
		Website:         fmt.Sprintf("https://%s.example.com", strings.ToLower(symbol)),
		Description:     fmt.Sprintf("Simulated market data for %s; no live source could serve this query.", symbol),
		CreatedAt:       now.Add(-time.Duration(g.rng.Int63n(int64(7 * 24 * time.Hour)))),
		PriceHistory:    g.priceHistory(price, now),
		Analytics: entity.TokenAnalytics{
			Volatility:      g.rng.Float64() * 100,
			SocialSentiment: g.rng.Float64() * 100,
			TradingActivity: g.rng.Float64() * 100,
			LiquidityScore:  g.rng.Float64() * 100,
		},
		LaunchScore:  g.rng.Intn(101),
		SniperAlerts: g.rng.Intn(5),
		IsNewToken:   g.rng.Float64() > 0.7,
	}
	return token
}

// PriceHistory exposes history generation for callers that format real
// provider data but still have to synthesize the hourly curve, since the
// detail endpoints only return the current price.
func (g *SyntheticGenerator) PriceHistory(currentPrice float64, now time.Time) []entity.PricePoint {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.priceHistory(currentPrice, now)
}

// RandomScore returns a score in [0,100) for analytics with no real signal.
func (g *SyntheticGenerator) RandomScore() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64() * 100
}

func (g *SyntheticGenerator) priceHistory(currentPrice float64, now time.Time) []entity.PricePoint {
	history := make([]entity.PricePoint, 0, priceHistoryPoints)
	for i := priceHistoryPoints - 1; i >= 0; i-- {
		variation := (g.rng.Float64() - 0.5) * 0.1 // ±5% per point
		history = append(history, entity.PricePoint{
			Time:   now.Add(-time.Duration(i) * time.Hour),
			Price:  currentPrice * (1 + variation),
			Volume: g.rng.Float64() * 1_000_000,
		})
	}
	return history
}

func (g *SyntheticGenerator) randomContractAddress() string {
	const hexDigits = "0123456789abcdef"
	var b strings.Builder
	b.WriteString("0x")
	for i := 0; i < 40; i++ {
		b.WriteByte(hexDigits[g.rng.Intn(len(hexDigits))])
	}
	return b.String()
}
