package parse_test

import (
	"testing"

	"duelbot/feature/deck/parse"

	"github.com/stretchr/testify/assert"
)

func TestExtractDeckID(t *testing.T) {
	cases := []struct {
		href string
		want string
		ok   bool
	}{
		{"/deck/12345", "12345", true},
		{"/decks/12345", "12345", true},
		{"https://example.com/decks/777?utm_source=share", "777", true},
		{"https://example.com/deck/777#main", "777", true},
		{"/top-decks/sky-striker/991", "991", true},
		{"/top-decks/sky-striker/991/", "991", true},
		{"/deck/sky-striker", "", false},
		{"", "", false},
		{"   ", "", false},
	}

	for _, tc := range cases {
		got, ok := parse.ExtractDeckID(tc.href)
		assert.Equal(t, tc.ok, ok, tc.href)
		assert.Equal(t, tc.want, got, tc.href)
	}
}

func TestFindDeckIDInPage(t *testing.T) {
	cases := []struct {
		name string
		page string
		want string
		ok   bool
	}{
		{"api link", `<a href="/api/v1/decks/4242">json</a>`, "4242", true},
		{"data attribute", `<div data-deck-id="55">x</div>`, "55", true},
		{"camel json key", `{"deckId": 66, "name": "x"}`, "66", true},
		{"snake json key", `{"deck_id": "67"}`, "67", true},
		{"path", `see /decks/88/ for details`, "88", true},
		{"script variable", `var deckId = 99;`, "99", true},
		{"nothing", `<p>no ids here</p>`, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parse.FindDeckIDInPage(tc.page)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
