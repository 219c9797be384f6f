package meta

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestParseBanlist(t *testing.T) {
	page := `<html><body>
<img alt="site logo" src="/logo.png">
<h2>Forbidden</h2>
<img alt="Maxx &quot;C&quot;">
<img alt="Mystic Mine">
<h2>Limited</h2>
<img alt="Called by the Grave">
<h2>Semi-Limited</h2>
<img alt="Pot of Desires">
</body></html>`

	entries := parseBanlist(doc(t, page))

	assert.Equal(t, []BanlistEntry{
		{CardName: `Maxx "C"`, Status: "Forbidden"},
		{CardName: "Mystic Mine", Status: "Forbidden"},
		{CardName: "Called by the Grave", Status: "Limited"},
		{CardName: "Pot of Desires", Status: "Semi-Limited"},
	}, entries)
}

func TestParseBanlistIgnoresUnrelatedHeadings(t *testing.T) {
	page := `<html><body>
<h2>About this list</h2>
<img alt="decorative">
</body></html>`

	entries := parseBanlist(doc(t, page))
	assert.Empty(t, entries)
}

func TestParsePacksNewestFirst(t *testing.T) {
	page := `<html><body>
<div class="pack">
  <h2>Older Pack</h2>
  <time datetime="2024-01-15">Jan 15, 2024</time>
  <img src="/img/older.webp">
  <a href="/packs/older">view</a>
</div>
<div class="pack">
  <h2>Newer Pack</h2>
  <time datetime="2025-06-01">Jun 1, 2025</time>
  <img src="/img/newer.webp">
  <a href="/packs/newer">view</a>
</div>
<div class="pack">
  <h2>Undated Pack</h2>
</div>
</body></html>`

	packs := parsePacks(doc(t, page), "https://duel.example.com")

	require.Len(t, packs, 3)
	assert.Equal(t, "Newer Pack", packs[0].Name)
	assert.Equal(t, "Older Pack", packs[1].Name)
	assert.Equal(t, "Undated Pack", packs[2].Name, "undated packs sort last")

	assert.Equal(t, "https://duel.example.com/img/newer.webp", packs[0].ImageURL)
	assert.Equal(t, "https://duel.example.com/packs/newer", packs[0].URL)
	require.NotNil(t, packs[0].ReleaseDate)
	assert.Equal(t, 2025, packs[0].ReleaseDate.Year())
}

func TestParsePackDateTextFallback(t *testing.T) {
	page := `<html><body>
<div class="pack">
  <h2>Text Dated Pack</h2>
  <span class="date">Jan 2, 2024</span>
</div>
</body></html>`

	packs := parsePacks(doc(t, page), "")

	require.Len(t, packs, 1)
	require.NotNil(t, packs[0].ReleaseDate)
	assert.Equal(t, 2024, packs[0].ReleaseDate.Year())
}

func TestParseTierList(t *testing.T) {
	page := `<html><body>
<div class="tier">
  <h2>Tier 1</h2>
  <a href="/top-decks/snake-eye">Snake-Eye</a>
  <a href="/top-decks/voiceless">Voiceless Voice</a>
</div>
<div class="tier">
  <h2>Tier 2</h2>
  <a href="/top-decks/branded">Branded</a>
</div>
<div class="tier">
  <h2>Honorable Mentions</h2>
  <a href="/top-decks/other">Other</a>
</div>
</body></html>`

	entries := parseTierList(doc(t, page), "https://duel.example.com")

	assert.Equal(t, []TierEntry{
		{Tier: "Tier 1", DeckName: "Snake-Eye", URL: "https://duel.example.com/top-decks/snake-eye"},
		{Tier: "Tier 1", DeckName: "Voiceless Voice", URL: "https://duel.example.com/top-decks/voiceless"},
		{Tier: "Tier 2", DeckName: "Branded", URL: "https://duel.example.com/top-decks/branded"},
	}, entries)
}
