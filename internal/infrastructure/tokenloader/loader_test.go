package tokenloader

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeWatchlist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watchlist.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write watchlist: %v", err)
	}
	return path
}

func TestGetWatchlist(t *testing.T) {
	path := writeWatchlist(t, `[
		{"symbol": "BTC", "name": "Bitcoin"},
		{"symbol": "ETH", "name": "Ethereum"}
	]`)

	loader := NewWatchlistLoader(path, zap.NewNop())
	tokens, err := loader.GetWatchlist()
	if err != nil {
		t.Fatalf("GetWatchlist: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("len(tokens) = %d, want 2", len(tokens))
	}
	if tokens[0].Symbol != "BTC" || tokens[0].Name != "Bitcoin" {
		t.Errorf("tokens[0] = %+v", tokens[0])
	}
}

func TestGetWatchlist_SkipsBlankSymbols(t *testing.T) {
	path := writeWatchlist(t, `[
		{"symbol": "BTC", "name": "Bitcoin"},
		{"symbol": "  ", "name": "Mystery"},
		{"name": "Nameless"}
	]`)

	loader := NewWatchlistLoader(path, zap.NewNop())
	tokens, err := loader.GetWatchlist()
	if err != nil {
		t.Fatalf("GetWatchlist: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Symbol != "BTC" {
		t.Errorf("tokens = %+v, want only BTC", tokens)
	}
}

func TestGetWatchlist_MissingFile(t *testing.T) {
	loader := NewWatchlistLoader(filepath.Join(t.TempDir(), "absent.json"), zap.NewNop())
	if _, err := loader.GetWatchlist(); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGetWatchlist_MalformedJSON(t *testing.T) {
	path := writeWatchlist(t, `{"not": "a list"}`)

	loader := NewWatchlistLoader(path, zap.NewNop())
	if _, err := loader.GetWatchlist(); err == nil {
		t.Fatal("expected error for malformed watchlist")
	}
}
