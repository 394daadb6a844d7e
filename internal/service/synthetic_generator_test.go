package service

import (
	"math/rand"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
}

func TestSyntheticGenerator_Generate(t *testing.T) {
	gen := NewSeededSyntheticGenerator(rand.New(rand.NewSource(1)), fixedClock)

	token := gen.Generate("pepe")

	if token.Symbol != "PEPE" {
		t.Errorf("Symbol = %q, want %q", token.Symbol, "PEPE")
	}
	if token.Name != "PEPE Token" {
		t.Errorf("Name = %q, want %q", token.Name, "PEPE Token")
	}
	if token.Price <= 0 {
		t.Errorf("Price = %v, want > 0", token.Price)
	}
	if !strings.Contains(token.Description, "Simulated") {
		t.Errorf("Description %q does not mark the data as simulated", token.Description)
	}
	if !looksLikeContractAddress(token.ContractAddress) {
		t.Errorf("ContractAddress %q is not a valid contract shape", token.ContractAddress)
	}
	if token.LaunchScore < 0 || token.LaunchScore > 100 {
		t.Errorf("LaunchScore = %d, want within [0,100]", token.LaunchScore)
	}
	if len(token.PriceHistory) != priceHistoryPoints {
		t.Fatalf("PriceHistory length = %d, want %d", len(token.PriceHistory), priceHistoryPoints)
	}
}

func TestSyntheticGenerator_KeepsSuppliedContractAddress(t *testing.T) {
	gen := NewSeededSyntheticGenerator(rand.New(rand.NewSource(1)), fixedClock)
	addr := "0x1234567890AbCdEf1234567890aBcDeF12345678"

	token := gen.Generate(addr)

	if token.ContractAddress != strings.ToLower(addr) {
		t.Errorf("ContractAddress = %q, want the queried address %q", token.ContractAddress, strings.ToLower(addr))
	}
}

func TestSyntheticGenerator_PriceHistoryShape(t *testing.T) {
	gen := NewSeededSyntheticGenerator(rand.New(rand.NewSource(42)), fixedClock)

	const current = 2.5
	history := gen.PriceHistory(current, fixedClock())

	if len(history) != priceHistoryPoints {
		t.Fatalf("history length = %d, want %d", len(history), priceHistoryPoints)
	}
	for i, point := range history {
		// Every point stays inside the ±5% band around the current price.
		if point.Price < current*0.95 || point.Price > current*1.05 {
			t.Errorf("point %d price %v outside ±5%% of %v", i, point.Price, current)
		}
		if i > 0 && !point.Time.After(history[i-1].Time) {
			t.Errorf("point %d time %v not after previous %v", i, point.Time, history[i-1].Time)
		}
	}
	last := history[len(history)-1]
	if !last.Time.Equal(fixedClock()) {
		t.Errorf("last point time = %v, want now (%v)", last.Time, fixedClock())
	}
}

func TestSyntheticGenerator_NoNaNLeaks(t *testing.T) {
	gen := NewSeededSyntheticGenerator(rand.New(rand.NewSource(7)), fixedClock)

	for i := 0; i < 50; i++ {
		token := gen.Generate("fuzz")
		for name, v := range map[string]float64{
			"Price":          token.Price,
			"PriceChange24h": token.PriceChange24h,
			"Volume24h":      token.Volume24h,
			"MarketCap":      token.MarketCap,
			"Volatility":     token.Analytics.Volatility,
		} {
			if v != v { // NaN check
				t.Fatalf("iteration %d: %s is NaN", i, name)
			}
		}
	}
}
