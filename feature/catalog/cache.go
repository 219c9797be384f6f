package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"duelbot/core/mdm"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// CacheDuration is how long a persisted catalog snapshot stays fresh.
const CacheDuration = 7 * 24 * time.Hour

const metaRefreshedAt = "catalog_refreshed_at"

// Cache owns the in-memory name index over the persisted card snapshot.
// It is injected into consumers; there is no ambient global state.
type Cache struct {
	db      *gorm.DB
	client  mdm.Client
	logger  *zap.Logger
	feedURL string
	ttl     time.Duration

	mu    sync.RWMutex
	cards map[string]Card // keyed by lowercased name
	names []string        // canonical names, sorted

	sf singleflight.Group
}

// NewCache creates a catalog cache over the given store and feed source.
func NewCache(db *gorm.DB, client mdm.Client, logger *zap.Logger, feedURL string) *Cache {
	return &Cache{
		db:      db,
		client:  client,
		logger:  logger,
		feedURL: feedURL,
		ttl:     CacheDuration,
		cards:   make(map[string]Card),
	}
}

// EnsureFresh makes the in-memory index reflect a usable snapshot.
//
// If the persisted snapshot is older than the TTL (or absent), the full
// remote feed is fetched and the snapshot replaced transactionally. A failed
// fetch falls back to whatever snapshot already exists, without re-checking
// its age; staleness is accepted over unavailability. Only when no snapshot
// exists at all is the failure surfaced. Concurrent refresh triggers are
// collapsed through singleflight.
func (c *Cache) EnsureFresh(ctx context.Context) error {
	if c.Len() > 0 && !c.stale() {
		return nil
	}

	_, err, _ := c.sf.Do("refresh", func() (any, error) {
		// Re-check after winning the flight; a concurrent caller may have
		// refreshed already.
		if c.Len() > 0 && !c.stale() {
			return nil, nil
		}

		if c.stale() {
			if err := c.refresh(ctx); err != nil {
				c.logger.Warn("catalog refresh failed, falling back to stored snapshot", zap.Error(err))
			}
		}

		if err := c.load(); err != nil {
			return nil, err
		}
		if c.Len() == 0 {
			return nil, fmt.Errorf("catalog unavailable: no stored snapshot and feed fetch failed")
		}
		return nil, nil
	})
	return err
}

// Lookup returns the card for a name, matched case-insensitively.
func (c *Cache) Lookup(name string) (Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	card, ok := c.cards[strings.ToLower(name)]
	return card, ok
}

// Names returns all canonical card names in lexicographic order.
// The slice is rebuilt wholesale on refresh and must not be mutated.
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.names
}

// Len returns the number of cards currently indexed.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cards)
}

// stale reports whether the persisted snapshot is missing or past its TTL.
func (c *Cache) stale() bool {
	var card Card
	if err := c.db.Select("last_updated").Take(&card).Error; err != nil {
		return true
	}
	return time.Since(card.LastUpdated) > c.ttl
}

// refresh downloads the full feed and replaces the persisted snapshot in
// one transaction, so readers never observe a partially loaded catalog.
func (c *Cache) refresh(ctx context.Context) error {
	var raw []json.RawMessage
	if err := c.client.GetJSON(ctx, c.feedURL, &raw); err != nil {
		return fmt.Errorf("failed to download card feed: %w", err)
	}

	cards := cardsFromFeed(raw, time.Now())
	if len(cards) == 0 {
		return fmt.Errorf("card feed contained no usable entries")
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM cards").Error; err != nil {
			return err
		}
		return tx.CreateInBatches(&cards, 500).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace card snapshot: %w", err)
	}

	if err := SetMetadata(c.db, metaRefreshedAt, time.Now().UTC().Format(time.RFC3339)); err != nil {
		c.logger.Warn("failed to record catalog refresh time", zap.Error(err))
	}

	c.logger.Info("card catalog refreshed", zap.Int("cards", len(cards)))
	return nil
}

// load rebuilds the in-memory index from the persisted snapshot.
func (c *Cache) load() error {
	var rows []Card
	if err := c.db.Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load card snapshot: %w", err)
	}

	byName := make(map[string]Card, len(rows))
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		byName[strings.ToLower(row.Name)] = row
		names = append(names, row.Name)
	}
	sort.Strings(names)

	c.mu.Lock()
	c.cards = byName
	c.names = names
	c.mu.Unlock()
	return nil
}
