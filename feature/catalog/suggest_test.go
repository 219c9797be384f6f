package catalog_test

import (
	"testing"

	"duelbot/feature/catalog"

	"github.com/stretchr/testify/assert"
)

func TestSuggestRanksExactTokenMatchesFirst(t *testing.T) {
	names := []string{
		"Magician's Rod",
		"Dark Magical Circle",
		"Dark Magician Girl",
		"Dark Magician",
	}

	got := catalog.Suggest("dark magician", names, 5)

	// "Dark Magical Circle" and "Magician's Rod" fail the coarse filter:
	// neither contains both query tokens.
	assert.Equal(t, []string{"Dark Magician", "Dark Magician Girl"}, got)
}

func TestSuggestIsCaseInsensitive(t *testing.T) {
	names := []string{"Blue-Eyes White Dragon"}

	got := catalog.Suggest("BLUE-EYES white DRAGON", names, 5)

	assert.Equal(t, []string{"Blue-Eyes White Dragon"}, got)
}

func TestSuggestBreaksTiesLexicographically(t *testing.T) {
	// Same length, same word structure, so the scores are identical
	// regardless of input order.
	names := []string{"Gem Saber", "Axe Saber"}

	got := catalog.Suggest("saber", names, 5)

	assert.Equal(t, []string{"Axe Saber", "Gem Saber"}, got)
}

func TestSuggestTruncatesToMax(t *testing.T) {
	names := []string{"Token A", "Token B", "Token C", "Token D"}

	got := catalog.Suggest("token", names, 2)

	assert.Len(t, got, 2)
}

func TestSuggestEmptyInputs(t *testing.T) {
	assert.Empty(t, catalog.Suggest("", []string{"Dark Magician"}, 5))
	assert.Empty(t, catalog.Suggest("   ", []string{"Dark Magician"}, 5))
	assert.Empty(t, catalog.Suggest("dark", nil, 5))
	assert.Empty(t, catalog.Suggest("dark", []string{"Dark Magician"}, 0))
	assert.Empty(t, catalog.Suggest("zzzz", []string{"Dark Magician"}, 5))
}
