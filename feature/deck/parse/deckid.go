package parse

import (
	"regexp"
	"strings"
)

var (
	urlNoiseRe     = regexp.MustCompile(`[?#].*$`)
	deckPathRe     = regexp.MustCompile(`/decks?/(\d+)(?:/|$)`)
	trailingIDRe   = regexp.MustCompile(`/(\d+)$`)
	apiDeckLinkRe  = regexp.MustCompile(`/api/v1/decks/(\d+)`)
	dataDeckIDRe   = regexp.MustCompile(`data-deck-id=["']?(\d+)`)
	jsonDeckIDRe   = regexp.MustCompile(`"deckId"\s*[:=]\s*"?(\d+)`)
	snakeDeckIDRe  = regexp.MustCompile(`"deck_id"\s*[:=]\s*"?(\d+)`)
	scriptDeckIDRe = regexp.MustCompile(`\bdeckId\b\s*[:=]\s*"?(\d+)`)
)

// ExtractDeckID pulls the numeric deck id out of a deck page href. Query
// strings and fragments are ignored. Works for /deck/<id>, /decks/<id> and
// any URL whose last path segment is the id.
func ExtractDeckID(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	href = urlNoiseRe.ReplaceAllString(href, "")
	href = strings.TrimRight(href, "/")

	if groups := deckPathRe.FindStringSubmatch(href + "/"); groups != nil {
		return groups[1], true
	}
	if groups := trailingIDRe.FindStringSubmatch(href); groups != nil {
		return groups[1], true
	}
	return "", false
}

// Page markup hides the deck id in several places depending on the site
// generation; checked most-specific first.
var pageIDPatterns = []*regexp.Regexp{
	apiDeckLinkRe,
	dataDeckIDRe,
	jsonDeckIDRe,
	snakeDeckIDRe,
	deckPathRe,
	scriptDeckIDRe,
}

// FindDeckIDInPage scans raw page markup for a deck id.
func FindDeckIDInPage(page string) (string, bool) {
	for _, pattern := range pageIDPatterns {
		if groups := pattern.FindStringSubmatch(page); groups != nil {
			return groups[1], true
		}
	}
	return "", false
}
