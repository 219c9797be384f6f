package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"duelbot/feature/deck/models"
)

// Deck pages come from several site generations with different markup, so
// extraction runs a fixed strategy chain and stops at the first strategy
// that yields at least one card.
var strategies = []func(*goquery.Document, *models.DeckList){
	parseSections,
	parseTables,
	parsePlainText,
}

var (
	sectionClassRe  = regexp.MustCompile(`(?i)deck.*part|deck-section`)
	cardClassRe     = regexp.MustCompile(`(?i)card`)
	tableClassRe    = regexp.MustCompile(`(?i)deck.*table|card.*table`)
	nameCellRe      = regexp.MustCompile(`(?i)name|card`)
	countCellRe     = regexp.MustCompile(`(?i)count|quantity`)
	textListClassRe = regexp.MustCompile(`(?i)deck.*list|card.*list`)
	quantityToken   = regexp.MustCompile(`^\d+x?$`)
	firstIntRe      = regexp.MustCompile(`\d+`)
	textLineRe      = regexp.MustCompile(`^\s*(\d+)x?\s+(.+)$`)
	extraMarkerRe   = regexp.MustCompile(`(?i)extra deck|extra:`)
)

// Parse extracts a deck record from a page. It never fails: a page none of
// the strategies understand yields a record with empty sections, which the
// caller treats as "no deck found". Duplicate names within a section are
// dropped, keeping the first occurrence.
func Parse(doc *goquery.Document, sourceURL string) *models.DeckList {
	deck := &models.DeckList{URL: sourceURL}
	deck.Name = extractName(doc)
	deck.Author = extractAuthor(doc)

	for _, strategy := range strategies {
		strategy(doc, deck)
		if deck.CardCount() > 0 {
			break
		}
	}

	deck.Dedupe()
	return deck
}

// Boilerplate strings some sites leave in the title slot when the author
// never named the deck.
var namePlaceholders = map[string]struct{}{
	"master duel":  {},
	"deck builder": {},
	"deck list":    {},
}

var authorPlaceholders = map[string]struct{}{
	"unknown":   {},
	"anonymous": {},
}

func extractName(doc *goquery.Document) string {
	selectors := []string{"h1.deck-title", "h1.title", "div.deck-name", "h1", "title"}
	for _, selector := range selectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text == "" {
			continue
		}
		if _, placeholder := namePlaceholders[strings.ToLower(text)]; placeholder {
			continue
		}
		return text
	}
	return ""
}

func extractAuthor(doc *goquery.Document) string {
	selectors := []string{"span.username", "div.author", "div.player-name", "a.author-link"}
	for _, selector := range selectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if text == "" {
			continue
		}
		if _, placeholder := authorPlaceholders[strings.ToLower(text)]; placeholder {
			continue
		}
		return text
	}
	return ""
}

// parseSections handles structured pages: containers whose class marks them
// as a deck part, with a header naming the section and card elements inside.
func parseSections(doc *goquery.Document, deck *models.DeckList) {
	parts := doc.Find("div, section").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return sectionClassRe.MatchString(class)
	})

	parts.Each(func(_ int, part *goquery.Selection) {
		header := part.Find("div.header, h3, h4").First()
		sectionName := strings.ToLower(strings.TrimSpace(header.Text()))
		isExtra := strings.Contains(sectionName, "extra")

		cards := part.Find("div, span").FilterFunction(func(_ int, s *goquery.Selection) bool {
			class, exists := s.Attr("class")
			return exists && cardClassRe.MatchString(class)
		})

		cards.Each(func(_ int, card *goquery.Selection) {
			name := cardName(card)
			if name == "" {
				return
			}
			deck.Append(models.CardEntry{Name: name, Quantity: cardQuantity(card)}, isExtra)
		})
	})
}

func cardName(card *goquery.Selection) string {
	for _, selector := range []string{"span.name, div.name", "span.card-name, div.card-name", "a"} {
		if text := strings.TrimSpace(card.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func cardQuantity(card *goquery.Selection) int {
	countEl := card.Find("span.quantity, div.quantity, span.count, div.count").First()
	if countEl.Length() > 0 {
		if n, ok := leadingInt(countEl.Text()); ok {
			return n
		}
	}
	// No dedicated element; a bare "2x" token somewhere in the card's text
	// is the next best signal.
	for _, field := range strings.Fields(card.Text()) {
		if quantityToken.MatchString(field) {
			if n, ok := leadingInt(field); ok {
				return n
			}
		}
	}
	return 1
}

func leadingInt(text string) (int, bool) {
	match := firstIntRe.FindString(text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseTables handles tabular pages: one table per section, a cell naming
// the card and an optional cell carrying the count. Whether a table is the
// extra deck is decided from the table's whole text.
func parseTables(doc *goquery.Document, deck *models.DeckList) {
	tables := doc.Find("table").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return tableClassRe.MatchString(class)
	})

	tables.Each(func(_ int, table *goquery.Selection) {
		isExtra := extraMarkerRe.MatchString(table.Text())

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td, th")
			nameCell := cells.FilterFunction(func(_ int, s *goquery.Selection) bool {
				class, _ := s.Attr("class")
				return nameCellRe.MatchString(class)
			}).First()
			if nameCell.Length() == 0 {
				return
			}
			name := strings.TrimSpace(nameCell.Text())
			if name == "" {
				return
			}

			quantity := 1
			countCell := cells.FilterFunction(func(_ int, s *goquery.Selection) bool {
				class, _ := s.Attr("class")
				return countCellRe.MatchString(class)
			}).First()
			if countCell.Length() > 0 {
				if n, ok := leadingInt(countCell.Text()); ok {
					quantity = n
				}
			}

			deck.Append(models.CardEntry{Name: name, Quantity: quantity}, isExtra)
		})
	})
}

// parsePlainText is the fallback for pages that render the list as text:
// one card per line in the form "3x Card Name" or "3 Card Name". An
// "Extra Deck" or "Extra:" marker flips every subsequent line of the same
// block into the extra section; the flag resets at each block boundary.
func parsePlainText(doc *goquery.Document, deck *models.DeckList) {
	blocks := doc.Find("div, pre, code").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		return textListClassRe.MatchString(class)
	})

	blocks.Each(func(_ int, block *goquery.Selection) {
		isExtra := false
		for _, line := range strings.Split(blockText(block), "\n") {
			if extraMarkerRe.MatchString(line) {
				isExtra = true
				continue
			}
			groups := textLineRe.FindStringSubmatch(line)
			if groups == nil {
				continue
			}
			quantity, err := strconv.Atoi(groups[1])
			if err != nil || quantity <= 0 {
				quantity = 1
			}
			name := strings.TrimSpace(groups[2])
			if name == "" {
				continue
			}
			deck.Append(models.CardEntry{Name: name, Quantity: quantity}, isExtra)
		}
	})
}

var blockTags = map[string]struct{}{
	"br": {}, "p": {}, "div": {}, "li": {}, "tr": {},
}

// blockText renders a selection as text with newlines at block element
// boundaries, so line-oriented parsing works on markup that uses <br> or
// nested <div>s instead of literal newlines.
func blockText(s *goquery.Selection) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			if _, block := blockTags[n.Data]; block {
				b.WriteString("\n")
			}
		}
	}
	for _, node := range s.Nodes {
		walk(node)
	}
	return b.String()
}
