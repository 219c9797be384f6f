package meta

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// BanlistEntry is one card on the forbidden/limited list.
type BanlistEntry struct {
	CardName string `json:"card_name"`
	Status   string `json:"status"`
}

// Pack is one card pack tile from the pack listing.
type Pack struct {
	Name        string     `json:"name"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	URL         string     `json:"url,omitempty"`
}

// TierEntry is one deck on the tier list.
type TierEntry struct {
	Tier     string `json:"tier"`
	DeckName string `json:"deck_name"`
	URL      string `json:"url,omitempty"`
}

var statusRe = regexp.MustCompile(`(?i)^(forbidden|limited|semi-limited)\b`)

// parseBanlist walks the page in document order. Cards are rendered as
// images whose alt text is the card name; the status of a card is whichever
// section heading most recently preceded it. Images before the first status
// heading are page chrome and skipped.
func parseBanlist(doc *goquery.Document) []BanlistEntry {
	var entries []BanlistEntry
	status := ""

	doc.Find("h2, h3, img").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) != "img" {
			heading := strings.TrimSpace(s.Text())
			if groups := statusRe.FindStringSubmatch(heading); groups != nil {
				status = normalizeStatus(groups[1])
			}
			return
		}
		if status == "" {
			return
		}
		name := strings.TrimSpace(s.AttrOr("alt", ""))
		if name == "" {
			return
		}
		entries = append(entries, BanlistEntry{CardName: name, Status: status})
	})

	return entries
}

func normalizeStatus(raw string) string {
	switch strings.ToLower(raw) {
	case "forbidden":
		return "Forbidden"
	case "limited":
		return "Limited"
	case "semi-limited":
		return "Semi-Limited"
	}
	return raw
}

// Release dates appear in a few formats depending on page age.
var packDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// parsePacks extracts pack tiles and returns them newest first. A tile
// without a parseable release date sorts last.
func parsePacks(doc *goquery.Document, baseURL string) []Pack {
	var packs []Pack

	doc.Find("div.pack, div.pack-item, article.pack").Each(func(_ int, tile *goquery.Selection) {
		name := strings.TrimSpace(tile.Find("h2, h3, div.name").First().Text())
		if name == "" {
			return
		}

		pack := Pack{Name: name}
		pack.ReleaseDate = parsePackDate(tile)
		pack.ImageURL = absoluteURL(baseURL, tile.Find("img").First().AttrOr("src", ""))
		pack.URL = absoluteURL(baseURL, tile.Find("a").First().AttrOr("href", ""))
		packs = append(packs, pack)
	})

	sort.SliceStable(packs, func(a, b int) bool {
		pa, pb := packs[a].ReleaseDate, packs[b].ReleaseDate
		switch {
		case pa == nil:
			return false
		case pb == nil:
			return true
		default:
			return pa.After(*pb)
		}
	})
	return packs
}

func parsePackDate(tile *goquery.Selection) *time.Time {
	timeEl := tile.Find("time").First()
	candidates := []string{
		timeEl.AttrOr("datetime", ""),
		strings.TrimSpace(timeEl.Text()),
		strings.TrimSpace(tile.Find("span.date, div.date, div.release").First().Text()),
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		for _, layout := range packDateLayouts {
			if t, err := time.Parse(layout, candidate); err == nil {
				return &t
			}
		}
	}
	return nil
}

var tierRe = regexp.MustCompile(`(?i)^tier\s*\S+$`)

// parseTierList extracts tier sections. Each section carries a heading
// naming the tier and anchors naming the decks in it.
func parseTierList(doc *goquery.Document, baseURL string) []TierEntry {
	var entries []TierEntry

	doc.Find("div.tier, section.tier, div.tier-section").Each(func(_ int, section *goquery.Selection) {
		tier := strings.TrimSpace(section.Find("h2, h3, div.tier-name").First().Text())
		if tier == "" || !tierRe.MatchString(tier) {
			return
		}
		section.Find("a").Each(func(_ int, link *goquery.Selection) {
			name := strings.TrimSpace(link.Text())
			if name == "" {
				return
			}
			entries = append(entries, TierEntry{
				Tier:     tier,
				DeckName: name,
				URL:      absoluteURL(baseURL, link.AttrOr("href", "")),
			})
		})
	})

	return entries
}

func absoluteURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.Contains(href, "://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return baseURL + href
	}
	return baseURL + "/" + href
}
