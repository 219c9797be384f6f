// Package integrity reconciles the deck store against the card catalog and
// the artwork mirror. Deck card references are weak, so this report is the
// only place dangling names surface.
package integrity
