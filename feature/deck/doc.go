// Package deck stores scraped deck lists and answers usage queries over
// them.
//
// Deck pages arrive in several markup generations, so extraction lives in
// the parse subpackage as an ordered strategy chain, and API payloads with
// inconsistent field names are normalized once in the models subpackage.
// The service reconciles a parsed record against the store keyed by source
// URL: an existing deck is updated and its card associations replaced
// wholesale inside one transaction, so re-importing the same URL is
// idempotent and never duplicates.
//
// Card references held by decks are weak. A deck may name a card the
// catalog does not carry (typo, renamed card); nothing here enforces
// referential integrity, the integrity feature reports on it instead.
package deck
