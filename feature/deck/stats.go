package deck

import (
	"context"
	"database/sql"
	"time"
)

// CardUsage describes how one card is played across the stored decks.
type CardUsage struct {
	CardName       string  `json:"card_name"`
	DeckCount      int64   `json:"deck_count"`
	TotalCopies    int64   `json:"total_copies"`
	AverageCopies  float64 `json:"average_copies"`
	MainDeckCount  int64   `json:"main_deck_count"`
	ExtraDeckCount int64   `json:"extra_deck_count"`
}

const cardUsageColumns = `COUNT(DISTINCT deck_id) AS deck_count,
COALESCE(SUM(quantity), 0) AS total_copies,
COALESCE(AVG(quantity), 0) AS average_copies,
COALESCE(SUM(CASE WHEN is_extra_deck THEN 0 ELSE 1 END), 0) AS main_deck_count,
COALESCE(SUM(CASE WHEN is_extra_deck THEN 1 ELSE 0 END), 0) AS extra_deck_count`

// CardUsage aggregates usage of one card. A card no deck plays comes back
// with zero counts, not an error.
func (s *Service) CardUsage(ctx context.Context, cardName string) (CardUsage, error) {
	usage := CardUsage{CardName: cardName}
	err := s.db.WithContext(ctx).
		Table("deck_cards").
		Select(cardUsageColumns).
		Where("card_name = ?", cardName).
		Scan(&usage).Error
	return usage, err
}

// MostUsedCards returns the cards appearing in the most decks, best first.
// Ties are broken by card name so the ordering is stable.
func (s *Service) MostUsedCards(ctx context.Context, limit int) ([]CardUsage, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []CardUsage
	err := s.db.WithContext(ctx).
		Table("deck_cards").
		Select("card_name, " + cardUsageColumns).
		Group("card_name").
		Order("deck_count DESC, card_name ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// DeckStats is an aggregate view over the whole deck store.
type DeckStats struct {
	DeckCount       int64      `json:"deck_count"`
	DistinctCards   int64      `json:"distinct_cards"`
	TotalCards      int64      `json:"total_cards"`
	AverageDeckSize float64    `json:"average_deck_size"`
	LatestUpdate    *time.Time `json:"latest_update,omitempty"`
}

// DeckStats aggregates over all stored decks. An empty store yields zeroes.
func (s *Service) DeckStats(ctx context.Context) (DeckStats, error) {
	var stats DeckStats

	if err := s.db.WithContext(ctx).
		Table("decks").
		Count(&stats.DeckCount).Error; err != nil {
		return stats, err
	}

	var totals struct {
		DistinctCards int64
		TotalCards    int64
	}
	if err := s.db.WithContext(ctx).
		Table("deck_cards").
		Select("COUNT(DISTINCT card_name) AS distinct_cards, COALESCE(SUM(quantity), 0) AS total_cards").
		Scan(&totals).Error; err != nil {
		return stats, err
	}
	stats.DistinctCards = totals.DistinctCards
	stats.TotalCards = totals.TotalCards
	if stats.DeckCount > 0 {
		stats.AverageDeckSize = float64(stats.TotalCards) / float64(stats.DeckCount)
	}

	var latest sql.NullTime
	if err := s.db.WithContext(ctx).
		Table("decks").
		Select("MAX(last_updated)").
		Scan(&latest).Error; err != nil {
		return stats, err
	}
	if latest.Valid {
		t := latest.Time
		stats.LatestUpdate = &t
	}

	return stats, nil
}
