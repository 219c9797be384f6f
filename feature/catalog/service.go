package catalog

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Service exposes card resolution over the catalog cache.
type Service struct {
	cache  *Cache
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(cache *Cache, logger *zap.Logger) *Service {
	return &Service{cache: cache, logger: logger}
}

// Cache returns the underlying catalog cache.
func (s *Service) Cache() *Cache {
	return s.cache
}

// Resolution is the outcome of resolving a free-text query.
// Exactly one of Match and Suggestions is populated, unless nothing
// matched at all, in which case both are empty.
type Resolution struct {
	// Match is set when the query resolved to a single card.
	Match *Card `json:"match,omitempty"`
	// Suggestions is set when the caller must disambiguate.
	Suggestions []string `json:"suggestions,omitempty"`
}

// Resolve maps a free-text query to a card, or to a suggestion list when
// the query is ambiguous. An exact case-insensitive match among the
// suggestions always wins; a single surviving suggestion is auto-picked.
func (s *Service) Resolve(ctx context.Context, query string, max int) Resolution {
	s.freshen(ctx)
	if max <= 0 {
		max = DefaultSuggestions
	}

	suggestions := Suggest(query, s.cache.Names(), max)
	if len(suggestions) == 0 {
		return Resolution{}
	}

	for _, name := range suggestions {
		if strings.EqualFold(name, query) {
			if card, ok := s.cache.Lookup(name); ok {
				return Resolution{Match: &card}
			}
		}
	}

	if len(suggestions) == 1 {
		if card, ok := s.cache.Lookup(suggestions[0]); ok {
			return Resolution{Match: &card}
		}
	}

	return Resolution{Suggestions: suggestions}
}

// BestMatch returns the single most plausible catalog name for a query, or
// "" when nothing matches. Queries starting with "number" bypass scoring
// and take the lexicographically first prefix match, because the "Number"
// monster series would otherwise drown each other out.
func (s *Service) BestMatch(ctx context.Context, query string) string {
	s.freshen(ctx)

	lowered := strings.ToLower(query)
	if strings.HasPrefix(lowered, "number") {
		var matches []string
		for _, name := range s.cache.Names() {
			if strings.HasPrefix(strings.ToLower(name), lowered) {
				matches = append(matches, name)
			}
		}
		if len(matches) > 0 {
			sort.Strings(matches)
			return matches[0]
		}
	}

	suggestions := Suggest(query, s.cache.Names(), 1)
	if len(suggestions) == 0 {
		return ""
	}
	return suggestions[0]
}

// Get returns the card for a name, matched case-insensitively.
func (s *Service) Get(ctx context.Context, name string) (Card, bool) {
	s.freshen(ctx)
	return s.cache.Lookup(name)
}

// Suggestions returns up to max scored matches for a query.
func (s *Service) Suggestions(ctx context.Context, query string, max int) []string {
	s.freshen(ctx)
	if max <= 0 {
		max = DefaultSuggestions
	}
	return Suggest(query, s.cache.Names(), max)
}

// Refresh forces a staleness check and refresh of the catalog.
func (s *Service) Refresh(ctx context.Context) error {
	return s.cache.EnsureFresh(ctx)
}

// freshen keeps the cache warm on the read path. A refresh failure is not
// fatal here; lookups continue against whatever snapshot is loaded.
func (s *Service) freshen(ctx context.Context) {
	if err := s.cache.EnsureFresh(ctx); err != nil {
		s.logger.Warn("catalog not available", zap.Error(err))
	}
}
