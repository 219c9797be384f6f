package integrity

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"duelbot/feature/artwork"
	"duelbot/feature/catalog"
	"duelbot/feature/deck"
)

// Report is a read-only reconciliation of the deck store against the card
// catalog and the artwork mirror.
type Report struct {
	GeneratedAt   time.Time      `json:"generated_at"`
	CatalogSize   int            `json:"catalog_size"`
	DeckCount     int64          `json:"deck_count"`
	ReferencedRaw int            `json:"referenced_cards"`
	Dangling      []deck.CardRef `json:"dangling_references"`
	MirroredCount int            `json:"mirrored_artwork,omitempty"`
}

// Service builds integrity reports. Deck card references are weak by
// design; this is where dangling ones become visible.
type Service struct {
	catalog *catalog.Service
	decks   *deck.Service
	artwork *artwork.Service
	logger  *zap.Logger
}

// NewService creates a new integrity service. The artwork service may be
// nil when no object storage is configured.
func NewService(cat *catalog.Service, decks *deck.Service, art *artwork.Service, logger *zap.Logger) *Service {
	return &Service{catalog: cat, decks: decks, artwork: art, logger: logger}
}

// Report reconciles every card name referenced by a deck against the
// catalog. Names the catalog does not know are reported with the number of
// decks referencing them.
func (s *Service) Report(ctx context.Context) (Report, error) {
	report := Report{
		GeneratedAt: time.Now().UTC(),
		Dangling:    []deck.CardRef{},
	}

	stats, err := s.decks.DeckStats(ctx)
	if err != nil {
		return report, fmt.Errorf("deck stats: %w", err)
	}
	report.DeckCount = stats.DeckCount

	refs, err := s.decks.CardRefs(ctx)
	if err != nil {
		return report, fmt.Errorf("deck card references: %w", err)
	}
	report.ReferencedRaw = len(refs)

	for _, ref := range refs {
		if _, known := s.catalog.Get(ctx, ref.CardName); !known {
			report.Dangling = append(report.Dangling, ref)
		}
	}
	// Read the size after the lookups; the first one loads the index.
	report.CatalogSize = s.catalog.Cache().Len()
	if len(report.Dangling) > 0 {
		s.logger.Info("Found dangling card references",
			zap.Int("count", len(report.Dangling)))
	}

	if s.artwork != nil {
		report.MirroredCount = s.artwork.MirroredCount(ctx)
	}
	return report, nil
}
