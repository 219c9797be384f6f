package deck

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"duelbot/feature/deck/models"
)

// DefaultCleanupDays is how long a deck may go without an update before the
// cleanup pass removes it.
const DefaultCleanupDays = 30

// Service persists deck records and answers deck queries.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new deck service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Upsert stores a deck under its source URL. An existing row with the same
// URL is updated in place and its card associations are replaced wholesale;
// otherwise a new row is created. The whole operation runs in one
// transaction, so a failure leaves the prior state intact. Returns false on
// any storage error or on a record with no URL or no cards; the cause is
// logged, not surfaced.
func (s *Service) Upsert(ctx context.Context, deck *models.DeckList) bool {
	if deck == nil || deck.URL == "" || deck.CardCount() == 0 {
		s.logger.Warn("Refusing to store incomplete deck record")
		return false
	}

	now := time.Now().UTC()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Deck
		err := tx.Where("url = ?", deck.URL).Take(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = models.Deck{
				Name:        deck.Name,
				URL:         deck.URL,
				CreatedAt:   now,
				LastUpdated: now,
			}
			if deck.Author != "" {
				row.Author = &deck.Author
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			row.Name = deck.Name
			if deck.Author != "" {
				row.Author = &deck.Author
			}
			row.LastUpdated = now
			if err := tx.Save(&row).Error; err != nil {
				return err
			}
			if err := tx.Where("deck_id = ?", row.ID).Delete(&models.DeckCard{}).Error; err != nil {
				return err
			}
		}
		cards := deckCards(row.ID, deck)
		return tx.Create(&cards).Error
	})
	if err != nil {
		s.logger.Error("Deck upsert failed", zap.String("url", deck.URL), zap.Error(err))
		return false
	}
	return true
}

func deckCards(deckID uint, deck *models.DeckList) []models.DeckCard {
	cards := make([]models.DeckCard, 0, deck.CardCount())
	for _, entry := range deck.Main {
		cards = append(cards, models.DeckCard{
			DeckID:   deckID,
			CardName: entry.Name,
			Quantity: entry.Quantity,
		})
	}
	for _, entry := range deck.Extra {
		cards = append(cards, models.DeckCard{
			DeckID:      deckID,
			CardName:    entry.Name,
			IsExtraDeck: true,
			Quantity:    entry.Quantity,
		})
	}
	return cards
}

// Get returns one deck with its cards preloaded.
func (s *Service) Get(ctx context.Context, id uint) (models.Deck, error) {
	var deck models.Deck
	err := s.db.WithContext(ctx).Preload("Cards").Take(&deck, id).Error
	return deck, err
}

// List returns the most recently updated decks.
func (s *Service) List(ctx context.Context, limit int) ([]models.Deck, error) {
	if limit <= 0 {
		limit = 20
	}
	var decks []models.Deck
	err := s.db.WithContext(ctx).
		Order("last_updated DESC").
		Limit(limit).
		Find(&decks).Error
	return decks, err
}

// DeckSummary is one deck row as seen from a card-usage query.
type DeckSummary struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Author      *string   `json:"author,omitempty"`
	URL         string    `json:"url"`
	LastUpdated time.Time `json:"last_updated"`
	Quantity    int       `json:"quantity"`
}

// DecksWithCard returns the decks that play a card, newest first, with the
// number of copies each runs. Card names are matched exactly; resolution of
// fuzzy queries happens in the catalog before this is called.
func (s *Service) DecksWithCard(ctx context.Context, cardName string) ([]DeckSummary, error) {
	var out []DeckSummary
	err := s.db.WithContext(ctx).
		Table("decks").
		Select("decks.id, decks.name, decks.author, decks.url, decks.last_updated, deck_cards.quantity").
		Joins("JOIN deck_cards ON deck_cards.deck_id = decks.id").
		Where("deck_cards.card_name = ?", cardName).
		Order("decks.last_updated DESC").
		Scan(&out).Error
	return out, err
}

// CardRef is one distinct card name referenced by decks.
type CardRef struct {
	CardName  string `json:"card_name"`
	DeckCount int64  `json:"deck_count"`
}

// CardRefs returns every distinct card name any deck references, with the
// number of decks referencing it, ordered by name.
func (s *Service) CardRefs(ctx context.Context) ([]CardRef, error) {
	var refs []CardRef
	err := s.db.WithContext(ctx).
		Table("deck_cards").
		Select("card_name, COUNT(DISTINCT deck_id) AS deck_count").
		Group("card_name").
		Order("card_name ASC").
		Scan(&refs).Error
	return refs, err
}

// CleanupOldDecks deletes decks whose last update is older than the given
// number of days and returns how many were removed. Card associations go
// with them via the foreign key cascade.
func (s *Service) CleanupOldDecks(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		days = DefaultCleanupDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	res := s.db.WithContext(ctx).
		Where("last_updated < ?", cutoff).
		Delete(&models.Deck{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		s.logger.Info("Removed stale decks",
			zap.Int64("count", res.RowsAffected),
			zap.Int("days", days))
	}
	return res.RowsAffected, nil
}
