package catalog

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// feedName is the minimal slice of a feed entry needed to key the catalog.
// Everything else stays opaque in the stored payload.
type feedName struct {
	Text struct {
		En struct {
			Name string `json:"name"`
		} `json:"en"`
	} `json:"text"`
}

// cardsFromFeed converts raw feed entries into Card rows.
// Entries without a localized English name are skipped.
func cardsFromFeed(raw []json.RawMessage, now time.Time) []Card {
	cards := make([]Card, 0, len(raw))
	for _, entry := range raw {
		var fn feedName
		if err := json.Unmarshal(entry, &fn); err != nil {
			continue
		}
		if fn.Text.En.Name == "" {
			continue
		}
		cards = append(cards, Card{
			Name:        fn.Text.En.Name,
			CardData:    datatypes.JSON(entry),
			LastUpdated: now,
		})
	}
	return cards
}
