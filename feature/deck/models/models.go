package models

import (
	"strings"
	"time"

	"duelbot/core/utils"
)

// Deck is one cached deck. The source URL is the natural key: re-importing
// the same URL updates this row instead of duplicating it.
type Deck struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Author      *string   `gorm:"column:author" json:"author,omitempty"`
	URL         string    `gorm:"column:url;uniqueIndex;not null" json:"url"`
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"created_at"`
	LastUpdated time.Time `gorm:"column:last_updated;not null" json:"last_updated"`

	Cards []DeckCard `gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name.
func (Deck) TableName() string {
	return "decks"
}

// DeckCard binds a deck to one card name with section and quantity.
// The card name is a weak reference into the catalog: deck pages are
// scraped and may carry typos, so no referential integrity is enforced.
type DeckCard struct {
	DeckID      uint   `gorm:"column:deck_id;primaryKey" json:"deck_id"`
	CardName    string `gorm:"column:card_name;primaryKey" json:"card_name"`
	IsExtraDeck bool   `gorm:"column:is_extra_deck;not null;default:false" json:"is_extra_deck"`
	Quantity    int    `gorm:"column:quantity;not null;default:1" json:"quantity"`
}

// TableName overrides the table name.
func (DeckCard) TableName() string {
	return "deck_cards"
}

// CardEntry is one (name, quantity) pair within a deck section.
type CardEntry struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DeckList is the normalized deck record. The parser and the importer both
// produce it, regardless of whether the source was markup, a table, plain
// text or an API payload; the reconciler persists it.
type DeckList struct {
	Name   string      `json:"name"`
	Author string      `json:"author,omitempty"`
	URL    string      `json:"url"`
	Main   []CardEntry `json:"main_deck"`
	Extra  []CardEntry `json:"extra_deck"`
}

// Append adds an entry to the main or extra section.
func (d *DeckList) Append(entry CardEntry, extra bool) {
	if extra {
		d.Extra = append(d.Extra, entry)
	} else {
		d.Main = append(d.Main, entry)
	}
}

// CardCount returns the number of entries across both sections.
func (d *DeckList) CardCount() int {
	return len(d.Main) + len(d.Extra)
}

// Dedupe removes duplicate card names within each section independently,
// keeping the first occurrence and discarding later ones even when their
// quantities differ. This is a documented simplification, not a merge.
func (d *DeckList) Dedupe() {
	d.Main = dedupeSection(d.Main)
	d.Extra = dedupeSection(d.Extra)
}

func dedupeSection(entries []CardEntry) []CardEntry {
	if len(entries) == 0 {
		return entries
	}
	seen := make(map[string]struct{}, len(entries))
	cleaned := entries[:0]
	for _, entry := range entries {
		if _, dup := seen[entry.Name]; dup {
			continue
		}
		seen[entry.Name] = struct{}{}
		cleaned = append(cleaned, entry)
	}
	return cleaned
}

// NormalizeCardEntry maps the known alternate key spellings of a raw card
// object onto one canonical entry. Sources disagree on field names:
// name/cardName (or a nested card object), quantity/qty/count, and
// isExtra/is_extra/extra all occur in the wild. Returns ok=false when no
// usable name is present; such entries are skipped by callers.
func NormalizeCardEntry(raw map[string]any) (entry CardEntry, extra bool, ok bool) {
	name := stringField(raw, "name", "cardName")
	if name == "" {
		if nested, isMap := raw["card"].(map[string]any); isMap {
			name = stringField(nested, "name")
		}
	}
	if name == "" {
		return CardEntry{}, false, false
	}

	quantity := intField(raw, "quantity", "qty", "count")
	if quantity <= 0 {
		quantity = 1
	}

	extra = boolField(raw, "isExtra", "is_extra", "extra")
	return CardEntry{Name: name, Quantity: quantity}, extra, true
}

// NormalizeDeck builds a DeckList from a raw deck API payload. Cards may
// arrive as one flat list with per-card section flags or as separate
// main/extra arrays; both shapes collapse onto the same record.
func NormalizeDeck(payload map[string]any, url string) *DeckList {
	deck := &DeckList{URL: url}
	deck.Name = stringField(payload, "name", "title", "deckName")
	deck.Author = stringField(payload, "author", "creator", "username")

	for _, raw := range listField(payload, "cards") {
		if entry, extra, ok := NormalizeCardEntry(raw); ok {
			deck.Append(entry, extra)
		}
	}
	for _, raw := range listField(payload, "main", "mainDeck", "main_deck") {
		if entry, _, ok := NormalizeCardEntry(raw); ok {
			deck.Append(entry, false)
		}
	}
	for _, raw := range listField(payload, "extra", "extraDeck", "extra_deck") {
		if entry, _, ok := NormalizeCardEntry(raw); ok {
			deck.Append(entry, true)
		}
	}

	deck.Dedupe()
	return deck
}

func firstPresent(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringField(m map[string]any, keys ...string) string {
	v, ok := firstPresent(m, keys...)
	if !ok {
		return ""
	}
	return strings.TrimSpace(utils.ToString(v))
}

func intField(m map[string]any, keys ...string) int {
	v, ok := firstPresent(m, keys...)
	if !ok {
		return 0
	}
	return utils.ToInt(v)
}

func boolField(m map[string]any, keys ...string) bool {
	v, ok := firstPresent(m, keys...)
	if !ok {
		return false
	}
	return utils.ToBool(v)
}

func listField(m map[string]any, keys ...string) []map[string]any {
	v, ok := firstPresent(m, keys...)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if raw, isMap := item.(map[string]any); isMap {
			out = append(out, raw)
		}
	}
	return out
}
