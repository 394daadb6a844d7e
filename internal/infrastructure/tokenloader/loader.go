package tokenloader

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"tokenscope/internal/domain/entity"
	"tokenscope/internal/port"

	"go.uber.org/zap"
)

// WatchlistFileLoader implements the port.WatchlistProvider interface by
// reading a JSON file of popular symbols.
type WatchlistFileLoader struct {
	path   string
	logger *zap.Logger
}

// NewWatchlistLoader creates a new WatchlistFileLoader.
func NewWatchlistLoader(path string, logger *zap.Logger) *WatchlistFileLoader {
	return &WatchlistFileLoader{
		path:   path,
		logger: logger.Named("WatchlistLoader"),
	}
}

var _ port.WatchlistProvider = (*WatchlistFileLoader)(nil)

// GetWatchlist reads and parses the watchlist file, skipping entries without
// a symbol.
func (l *WatchlistFileLoader) GetWatchlist() ([]entity.WatchlistToken, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist file %s: %w", l.path, err)
	}

	var tokens []entity.WatchlistToken
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal watchlist from %s: %w", l.path, err)
	}

	valid := tokens[:0]
	for _, token := range tokens {
		if strings.TrimSpace(token.Symbol) == "" {
			l.logger.Warn("Skipping watchlist entry without symbol", zap.String("name", token.Name))
			continue
		}
		valid = append(valid, token)
	}

	l.logger.Debug("Loaded watchlist", zap.String("path", l.path), zap.Int("count", len(valid)))
	return valid, nil
}
