package parse_test

import (
	"strings"
	"testing"

	"duelbot/feature/deck/models"
	"duelbot/feature/deck/parse"

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

func TestParseSectionedMarkup(t *testing.T) {
	page := `<html><head><title>Deck Builder</title></head><body>
<h1 class="deck-title">Sky Striker</h1>
<span class="username">duelist42</span>
<div class="deck-part-main">
  <h3>Main Deck</h3>
  <div class="card-item"><span class="name">Sky Striker Ace - Raye</span><span class="quantity">3</span></div>
  <div class="card-item"><span class="card-name">Engage</span></div>
</div>
<div class="deck-part-extra">
  <h3>Extra Deck</h3>
  <div class="card-item"><span class="name">Accesscode Talker</span><span class="count">1</span></div>
</div>
</body></html>`

	deck := parse.Parse(doc(t, page), "https://example.com/deck/1")

	assert.Equal(t, "Sky Striker", deck.Name)
	assert.Equal(t, "duelist42", deck.Author)
	assert.Equal(t, "https://example.com/deck/1", deck.URL)
	assert.Equal(t, []models.CardEntry{
		{Name: "Sky Striker Ace - Raye", Quantity: 3},
		{Name: "Engage", Quantity: 1},
	}, deck.Main)
	assert.Equal(t, []models.CardEntry{
		{Name: "Accesscode Talker", Quantity: 1},
	}, deck.Extra)
}

func TestParseTableMarkup(t *testing.T) {
	page := `<html><body>
<h1>Dragon Link</h1>
<table class="deck-table">
  <tr><td class="card-name">Bystial Magnamhut</td><td class="count">3</td></tr>
  <tr><td class="card-name">Bystial Druiswurm</td><td class="count">2</td></tr>
  <tr><td class="card-name">Bystial Magnamhut</td><td class="count">1</td></tr>
</table>
<table class="deck-table">
  <tr><th>Extra Deck</th></tr>
  <tr><td class="card-name">Striker Dragon</td></tr>
</table>
</body></html>`

	deck := parse.Parse(doc(t, page), "")

	assert.Equal(t, "Dragon Link", deck.Name)
	// Duplicate row keeps the first occurrence, quantities are not merged.
	assert.Equal(t, []models.CardEntry{
		{Name: "Bystial Magnamhut", Quantity: 3},
		{Name: "Bystial Druiswurm", Quantity: 2},
	}, deck.Main)
	assert.Equal(t, []models.CardEntry{
		{Name: "Striker Dragon", Quantity: 1},
	}, deck.Extra)
}

func TestParsePlainTextBlock(t *testing.T) {
	page := `<html><body>
<div class="deck-list">3x Ash Blossom &amp; Joyous Spring<br>2x Ghost Ogre<br>Extra Deck:<br>1x Accesscode Talker</div>
</body></html>`

	deck := parse.Parse(doc(t, page), "")

	assert.Equal(t, []models.CardEntry{
		{Name: "Ash Blossom & Joyous Spring", Quantity: 3},
		{Name: "Ghost Ogre", Quantity: 2},
	}, deck.Main)
	assert.Equal(t, []models.CardEntry{
		{Name: "Accesscode Talker", Quantity: 1},
	}, deck.Extra)
}

func TestParsePlainTextWithoutMultiplier(t *testing.T) {
	page := `<pre class="card-list">3 Maxx "C"
1 Called by the Grave
not a card line</pre>`

	deck := parse.Parse(doc(t, page), "")

	assert.Equal(t, []models.CardEntry{
		{Name: `Maxx "C"`, Quantity: 3},
		{Name: "Called by the Grave", Quantity: 1},
	}, deck.Main)
	assert.Empty(t, deck.Extra)
}

func TestParseStrategyOrderStopsAtFirstHit(t *testing.T) {
	// Sectioned markup and a text block on the same page: the section
	// strategy runs first and wins, the text block is never consulted.
	page := `<html><body>
<div class="deck-part"><h3>Main</h3>
  <div class="card"><span class="name">Engage</span></div>
</div>
<div class="deck-list">40x Wrong Card</div>
</body></html>`

	deck := parse.Parse(doc(t, page), "")

	assert.Equal(t, []models.CardEntry{{Name: "Engage", Quantity: 1}}, deck.Main)
}

func TestParsePlaceholderTitlesSkipped(t *testing.T) {
	page := `<html><head><title>Master Duel</title></head><body>
<h1>Deck Builder</h1>
<div class="deck-name">Mathmech</div>
<div class="author">Unknown</div>
<span class="username">anonymous</span>
</body></html>`

	deck := parse.Parse(doc(t, page), "")

	assert.Equal(t, "Mathmech", deck.Name)
	assert.Equal(t, "", deck.Author)
}

func TestParseUnrecognizedMarkupYieldsEmptyDeck(t *testing.T) {
	deck := parse.Parse(doc(t, "<html><body><p>nothing here</p></body></html>"), "https://example.com/x")

	assert.Equal(t, 0, deck.CardCount())
	assert.Equal(t, "https://example.com/x", deck.URL)
}
