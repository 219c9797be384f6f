package deck_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"duelbot/core/mdm/mocks"
	"duelbot/feature/deck"
	"duelbot/feature/deck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const baseURL = "https://duel.example.com"

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportFromFileEmbeddedCards(t *testing.T) {
	db := newDeckDB(t)
	svc := deck.NewService(db, zap.NewNop())
	client := new(mocks.Client)
	importer := deck.NewImporter(svc, client, zap.NewNop())

	path := writeDump(t, `[
	  {"name": "Mathmech", "cards": [
	    {"name": "Mathmech Circular", "qty": 3},
	    {"name": "Mathmech Superfactorial", "count": 2},
	    {"name": "Accesscode Talker", "isExtra": true}
	  ]}
	]`)

	imported, err := importer.ImportFromFile(context.Background(), path, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	var stored models.Deck
	require.NoError(t, db.Preload("Cards").Take(&stored).Error)
	assert.Equal(t, "Mathmech", stored.Name)
	assert.Equal(t, "embedded:Mathmech", stored.URL)
	assert.Len(t, stored.Cards, 3)
}

func TestImportDeckTypesViaAPI(t *testing.T) {
	db := newDeckDB(t)
	svc := deck.NewService(db, zap.NewNop())
	client := new(mocks.Client)
	importer := deck.NewImporter(svc, client, zap.NewNop())

	client.On("BaseURL").Return(baseURL)
	client.On("GetJSON", mock.Anything, baseURL+"/api/v1/deck-types?limit=5", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*[]map[string]any)
			*dest = []map[string]any{
				{"name": "Sky Striker", "url": "/top-decks/sky-striker/123"},
			}
		}).
		Return(nil).Once()
	client.On("GetJSON", mock.Anything, baseURL+"/api/v1/decks/123", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*map[string]any)
			*dest = map[string]any{
				"name": "Sky Striker",
				"cards": []any{
					map[string]any{"name": "Engage", "qty": float64(3)},
					map[string]any{"name": "Accesscode Talker", "isExtra": true},
				},
			}
		}).
		Return(nil).Once()

	imported := importer.ImportDeckTypes(context.Background(), 5)
	assert.Equal(t, 1, imported)

	var stored models.Deck
	require.NoError(t, db.Preload("Cards").Take(&stored).Error)
	assert.Equal(t, "Sky Striker", stored.Name)
	assert.Equal(t, baseURL+"/top-decks/sky-striker/123", stored.URL)
	assert.Len(t, stored.Cards, 2)

	client.AssertExpectations(t)
}

func TestImportSkipsFailingEntries(t *testing.T) {
	db := newDeckDB(t)
	svc := deck.NewService(db, zap.NewNop())
	client := new(mocks.Client)
	importer := deck.NewImporter(svc, client, zap.NewNop())

	client.On("BaseURL").Return(baseURL)
	client.On("GetJSON", mock.Anything, baseURL+"/api/v1/deck-types?limit=10", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*[]map[string]any)
			*dest = []map[string]any{
				{"name": "Broken", "url": "/deck/404"},
				{"name": "Working", "url": "/deck/200"},
				{"note": "no url, no cards"},
			}
		}).
		Return(nil).Once()
	client.On("GetJSON", mock.Anything, baseURL+"/api/v1/decks/404", mock.Anything).
		Return(errors.New("boom")).Once()
	client.On("GetJSON", mock.Anything, baseURL+"/api/v1/decks/200", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*map[string]any)
			*dest = map[string]any{
				"name":  "Working",
				"cards": []any{map[string]any{"name": "Pot of Prosperity"}},
			}
		}).
		Return(nil).Once()

	imported := importer.ImportDeckTypes(context.Background(), 10)
	assert.Equal(t, 1, imported, "failures are skipped, the rest still land")

	client.AssertExpectations(t)
}

func TestImportHonorsLimit(t *testing.T) {
	db := newDeckDB(t)
	svc := deck.NewService(db, zap.NewNop())
	client := new(mocks.Client)
	importer := deck.NewImporter(svc, client, zap.NewNop())

	path := writeDump(t, `{"deckTypes": [
	  {"name": "One", "cards": [{"name": "A"}]},
	  {"name": "Two", "cards": [{"name": "B"}]},
	  {"name": "Three", "cards": [{"name": "C"}]}
	]}`)

	imported, err := importer.ImportFromFile(context.Background(), path, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	var count int64
	require.NoError(t, db.Model(&models.Deck{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	db := newDeckDB(t)
	svc := deck.NewService(db, zap.NewNop())
	client := new(mocks.Client)
	importer := deck.NewImporter(svc, client, zap.NewNop())

	path := writeDump(t, `[
	  {"name": "Mathmech", "cards": [{"name": "Mathmech Circular", "qty": 3}]}
	]`)

	decks, err := importer.Preview(path, 10)
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, "Mathmech", decks[0].Name)
	assert.Equal(t, []models.CardEntry{{Name: "Mathmech Circular", Quantity: 3}}, decks[0].Main)

	var count int64
	require.NoError(t, db.Model(&models.Deck{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestImportFromMissingFile(t *testing.T) {
	svc := deck.NewService(newDeckDB(t), zap.NewNop())
	importer := deck.NewImporter(svc, new(mocks.Client), zap.NewNop())

	_, err := importer.ImportFromFile(context.Background(), "/does/not/exist.json", 5)
	assert.Error(t, err)
}
