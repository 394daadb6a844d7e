package service

import (
	"strings"
	"sync"

	"tokenscope/internal/port"
)

// searchHistoryImpl keeps the most recent resolve queries in memory, newest
// first, deduplicated case-insensitively. Shared by concurrent handlers, so
// access is mutex-guarded.
type searchHistoryImpl struct {
	mu      sync.Mutex
	entries []string
	size    int
}

// NewSearchHistory creates a history bounded to size entries.
func NewSearchHistory(size int) port.SearchHistory {
	if size <= 0 {
		size = 5
	}
	return &searchHistoryImpl{size: size}
}

// Record implements the port.SearchHistory interface. Recording a query that
// is already present moves it to the front instead of duplicating it.
func (h *searchHistoryImpl) Record(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	filtered := make([]string, 0, h.size)
	filtered = append(filtered, query)
	for _, existing := range h.entries {
		if strings.EqualFold(existing, query) {
			continue
		}
		filtered = append(filtered, existing)
		if len(filtered) == h.size {
			break
		}
	}
	h.entries = filtered
}

// Recent implements the port.SearchHistory interface.
func (h *searchHistoryImpl) Recent() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
