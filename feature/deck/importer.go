package deck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"duelbot/core/mdm"
	"duelbot/core/utils"
	"duelbot/feature/deck/models"
	"duelbot/feature/deck/parse"
)

// DefaultImportLimit caps a bulk import run when the caller gives no limit.
const DefaultImportLimit = 20

// Importer pulls deck lists into the store, either from the remote deck API
// or from a local deck-type dump.
type Importer struct {
	service *Service
	client  mdm.Client
	logger  *zap.Logger
}

// NewImporter creates a new deck importer.
func NewImporter(service *Service, client mdm.Client, logger *zap.Logger) *Importer {
	return &Importer{service: service, client: client, logger: logger}
}

// ImportDeckTypes fetches the remote deck-type listing and imports up to
// limit decks from it. Individual deck failures are logged and skipped; the
// return value is the number of decks actually stored.
func (i *Importer) ImportDeckTypes(ctx context.Context, limit int) int {
	if limit <= 0 {
		limit = DefaultImportLimit
	}

	var entries []map[string]any
	url := fmt.Sprintf("%s/api/v1/deck-types?limit=%d", i.client.BaseURL(), limit)
	if err := i.client.GetJSON(ctx, url, &entries); err != nil {
		i.logger.Error("Deck type listing unavailable", zap.Error(err))
		return 0
	}
	return i.importEntries(ctx, entries, limit)
}

// ImportFromFile imports decks from a local JSON dump of deck-type records.
func (i *Importer) ImportFromFile(ctx context.Context, path string, limit int) (int, error) {
	entries, err := readEntries(path)
	if err != nil {
		return 0, err
	}
	if limit <= 0 {
		limit = DefaultImportLimit
	}
	return i.importEntries(ctx, entries, limit), nil
}

// Preview normalizes up to limit records from a local dump without touching
// the store or the network. Entries that only carry a URL come back with
// empty sections; the preview shows what a real import would resolve.
func (i *Importer) Preview(path string, limit int) ([]*models.DeckList, error) {
	entries, err := readEntries(path)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultImportLimit
	}

	decks := make([]*models.DeckList, 0, limit)
	for _, entry := range entries {
		if len(decks) >= limit {
			break
		}
		deck := models.NormalizeDeck(entry, entryURL(entry))
		if deck.Name == "" && deck.URL == "" {
			continue
		}
		decks = append(decks, deck)
	}
	return decks, nil
}

func (i *Importer) importEntries(ctx context.Context, entries []map[string]any, limit int) int {
	imported := 0
	for _, entry := range entries {
		if imported >= limit {
			break
		}
		deck, err := i.resolveEntry(ctx, entry)
		if err != nil {
			i.logger.Warn("Skipping deck entry", zap.Error(err))
			continue
		}
		if i.service.Upsert(ctx, deck) {
			imported++
		}
	}
	i.logger.Info("Deck import finished",
		zap.Int("imported", imported),
		zap.Int("entries", len(entries)))
	return imported
}

// resolveEntry turns one listing entry into a full deck record. Entries
// embedding their cards are used directly; the rest carry a URL, from which
// the deck id is extracted (or dug out of the page markup) and the deck API
// queried. Page scraping is the last resort.
func (i *Importer) resolveEntry(ctx context.Context, entry map[string]any) (*models.DeckList, error) {
	pageURL := entryURL(entry)
	if pageURL == "" {
		deck := models.NormalizeDeck(entry, "")
		if deck.CardCount() > 0 && deck.Name != "" {
			// Embedded records have no page of their own; synthesize a
			// stable key so re-imports update instead of duplicating.
			deck.URL = "embedded:" + deck.Name
			return deck, nil
		}
		return nil, errors.New("entry carries no url and no cards")
	}
	pageURL = i.absoluteURL(pageURL)

	if id, ok := parse.ExtractDeckID(pageURL); ok {
		return i.importByID(ctx, id, pageURL)
	}

	doc, err := i.client.GetDocument(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch deck page %s: %w", pageURL, err)
	}
	if markup, htmlErr := doc.Html(); htmlErr == nil {
		if id, ok := parse.FindDeckIDInPage(markup); ok {
			return i.importByID(ctx, id, pageURL)
		}
	}

	deck := parse.Parse(doc, pageURL)
	if deck.Name == "" {
		deck.Name = entryName(entry)
	}
	if deck.CardCount() == 0 {
		return nil, fmt.Errorf("no cards found at %s", pageURL)
	}
	return deck, nil
}

func (i *Importer) importByID(ctx context.Context, id, pageURL string) (*models.DeckList, error) {
	var payload map[string]any
	apiURL := fmt.Sprintf("%s/api/v1/decks/%s", i.client.BaseURL(), id)
	if err := i.client.GetJSON(ctx, apiURL, &payload); err != nil {
		return nil, fmt.Errorf("fetch deck %s: %w", id, err)
	}

	deck := models.NormalizeDeck(payload, pageURL)
	if deck.CardCount() == 0 {
		return nil, fmt.Errorf("deck %s has no cards", id)
	}
	return deck, nil
}

func (i *Importer) absoluteURL(url string) string {
	if strings.HasPrefix(url, "/") {
		return i.client.BaseURL() + url
	}
	return url
}

func entryURL(entry map[string]any) string {
	for _, key := range []string{"url", "link", "deckUrl", "deck_url"} {
		if v, ok := entry[key]; ok && v != nil {
			if s := strings.TrimSpace(utils.ToString(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

func entryName(entry map[string]any) string {
	for _, key := range []string{"name", "title"} {
		if v, ok := entry[key]; ok && v != nil {
			if s := strings.TrimSpace(utils.ToString(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

func readEntries(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck dump: %w", err)
	}

	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err == nil {
		return entries, nil
	}

	// Some dumps wrap the list in an envelope object.
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode deck dump: %w", err)
	}
	for _, key := range []string{"deckTypes", "deck_types", "decks"} {
		raw, ok := wrapped[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("decode deck dump %q: %w", key, err)
		}
		return entries, nil
	}
	return nil, errors.New("deck dump carries no deck entries")
}
