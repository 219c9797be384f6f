package deck_test

import (
	"context"
	"testing"
	"time"

	"duelbot/core/database"
	"duelbot/feature/deck"
	"duelbot/feature/deck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newDeckDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Deck{}, &models.DeckCard{}))
	return db
}

func skyStriker() *models.DeckList {
	return &models.DeckList{
		Name:   "Sky Striker",
		Author: "duelist42",
		URL:    "https://example.com/deck/1",
		Main: []models.CardEntry{
			{Name: "Sky Striker Ace - Raye", Quantity: 3},
			{Name: "Engage", Quantity: 3},
		},
		Extra: []models.CardEntry{
			{Name: "Accesscode Talker", Quantity: 1},
		},
	}
}

func TestUpsertCreatesDeck(t *testing.T) {
	db := newDeckDB(t)
	svc := deck.NewService(db, zap.NewNop())
	ctx := context.Background()

	assert.True(t, svc.Upsert(ctx, skyStriker()))

	var count int64
	require.NoError(t, db.Model(&models.Deck{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored models.Deck
	require.NoError(t, db.Preload("Cards").Where("url = ?", "https://example.com/deck/1").Take(&stored).Error)
	assert.Equal(t, "Sky Striker", stored.Name)
	require.NotNil(t, stored.Author)
	assert.Equal(t, "duelist42", *stored.Author)
	assert.Len(t, stored.Cards, 3)
}

func TestUpsertIsIdempotentByURL(t *testing.T) {
	db := newDeckDB(t)
	svc := deck.NewService(db, zap.NewNop())
	ctx := context.Background()

	assert.True(t, svc.Upsert(ctx, skyStriker()))
	assert.True(t, svc.Upsert(ctx, skyStriker()))

	var deckCount, cardCount int64
	require.NoError(t, db.Model(&models.Deck{}).Count(&deckCount).Error)
	require.NoError(t, db.Model(&models.DeckCard{}).Count(&cardCount).Error)
	assert.EqualValues(t, 1, deckCount)
	assert.EqualValues(t, 3, cardCount)
}

func TestUpsertReplacesCardAssociations(t *testing.T) {
	db := newDeckDB(t)
	svc := deck.NewService(db, zap.NewNop())
	ctx := context.Background()

	require.True(t, svc.Upsert(ctx, skyStriker()))

	// The source page changed: one card dropped, one added.
	updated := skyStriker()
	updated.Main = []models.CardEntry{
		{Name: "Sky Striker Ace - Raye", Quantity: 3},
		{Name: "Sky Striker Mobilize - Engage!", Quantity: 3},
	}
	require.True(t, svc.Upsert(ctx, updated))

	var stored models.Deck
	require.NoError(t, db.Preload("Cards").Where("url = ?", updated.URL).Take(&stored).Error)

	names := make([]string, 0, len(stored.Cards))
	for _, card := range stored.Cards {
		names = append(names, card.CardName)
	}
	assert.ElementsMatch(t, []string{
		"Sky Striker Ace - Raye",
		"Sky Striker Mobilize - Engage!",
		"Accesscode Talker",
	}, names)
	assert.NotContains(t, names, "Engage")
}

func TestUpsertRejectsIncompleteRecords(t *testing.T) {
	svc := deck.NewService(newDeckDB(t), zap.NewNop())
	ctx := context.Background()

	assert.False(t, svc.Upsert(ctx, nil))
	assert.False(t, svc.Upsert(ctx, &models.DeckList{Name: "No URL", Main: []models.CardEntry{{Name: "A", Quantity: 1}}}))
	assert.False(t, svc.Upsert(ctx, &models.DeckList{Name: "No Cards", URL: "https://example.com/deck/9"}))
}

func TestDecksWithCard(t *testing.T) {
	db := newDeckDB(t)
	svc := deck.NewService(db, zap.NewNop())
	ctx := context.Background()

	require.True(t, svc.Upsert(ctx, skyStriker()))

	other := &models.DeckList{
		Name: "Salamangreat",
		URL:  "https://example.com/deck/2",
		Main: []models.CardEntry{{Name: "Salamangreat Gazelle", Quantity: 3}},
		Extra: []models.CardEntry{
			{Name: "Accesscode Talker", Quantity: 1},
		},
	}
	require.True(t, svc.Upsert(ctx, other))

	decks, err := svc.DecksWithCard(ctx, "Accesscode Talker")
	require.NoError(t, err)
	assert.Len(t, decks, 2)

	decks, err = svc.DecksWithCard(ctx, "Engage")
	require.NoError(t, err)
	assert.Len(t, decks, 1)
	assert.Equal(t, "Sky Striker", decks[0].Name)
	assert.Equal(t, 3, decks[0].Quantity)

	decks, err = svc.DecksWithCard(ctx, "Unknown Card")
	require.NoError(t, err)
	assert.Empty(t, decks)
}

func TestCardUsageAndMostUsed(t *testing.T) {
	db := newDeckDB(t)
	svc := deck.NewService(db, zap.NewNop())
	ctx := context.Background()

	require.True(t, svc.Upsert(ctx, skyStriker()))
	require.True(t, svc.Upsert(ctx, &models.DeckList{
		Name:  "Salamangreat",
		URL:   "https://example.com/deck/2",
		Main:  []models.CardEntry{{Name: "Salamangreat Gazelle", Quantity: 3}},
		Extra: []models.CardEntry{{Name: "Accesscode Talker", Quantity: 2}},
	}))

	usage, err := svc.CardUsage(ctx, "Accesscode Talker")
	require.NoError(t, err)
	assert.EqualValues(t, 2, usage.DeckCount)
	assert.EqualValues(t, 3, usage.TotalCopies)
	assert.InDelta(t, 1.5, usage.AverageCopies, 0.001)
	assert.EqualValues(t, 0, usage.MainDeckCount)
	assert.EqualValues(t, 2, usage.ExtraDeckCount)

	usage, err = svc.CardUsage(ctx, "Unknown Card")
	require.NoError(t, err)
	assert.EqualValues(t, 0, usage.DeckCount)

	top, err := svc.MostUsedCards(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Accesscode Talker", top[0].CardName)
}

func TestDeckStats(t *testing.T) {
	db := newDeckDB(t)
	svc := deck.NewService(db, zap.NewNop())
	ctx := context.Background()

	stats, err := svc.DeckStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.DeckCount)
	assert.Nil(t, stats.LatestUpdate)

	require.True(t, svc.Upsert(ctx, skyStriker()))

	stats, err = svc.DeckStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.DeckCount)
	assert.EqualValues(t, 3, stats.DistinctCards)
	assert.EqualValues(t, 7, stats.TotalCards)
	assert.InDelta(t, 7.0, stats.AverageDeckSize, 0.001)
	assert.NotNil(t, stats.LatestUpdate)
}

func TestCleanupOldDecksCascades(t *testing.T) {
	db := newDeckDB(t)
	svc := deck.NewService(db, zap.NewNop())
	ctx := context.Background()

	require.True(t, svc.Upsert(ctx, skyStriker()))

	// Backdate the deck past the threshold.
	old := time.Now().UTC().AddDate(0, 0, -45)
	require.NoError(t, db.Model(&models.Deck{}).
		Where("url = ?", "https://example.com/deck/1").
		Update("last_updated", old).Error)

	removed, err := svc.CleanupOldDecks(ctx, 30)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	var deckCount, cardCount int64
	require.NoError(t, db.Model(&models.Deck{}).Count(&deckCount).Error)
	require.NoError(t, db.Model(&models.DeckCard{}).Count(&cardCount).Error)
	assert.EqualValues(t, 0, deckCount)
	assert.EqualValues(t, 0, cardCount, "card associations follow the deck via cascade")
}

func TestCardRefs(t *testing.T) {
	db := newDeckDB(t)
	svc := deck.NewService(db, zap.NewNop())
	ctx := context.Background()

	require.True(t, svc.Upsert(ctx, skyStriker()))

	refs, err := svc.CardRefs(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 3)
	// Ordered by name.
	assert.Equal(t, "Accesscode Talker", refs[0].CardName)
	assert.EqualValues(t, 1, refs[0].DeckCount)
}
