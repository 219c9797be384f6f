// Package database provides the relational store connection for the card
// catalog and the deck cache.
//
// It wraps GORM with driver selection (SQLite by default, MySQL optionally),
// connection pooling and an initial ping with timeout. The SQLite connection
// enables foreign key enforcement so deck_cards rows cascade with their deck.
//
// Schema migration is performed by the callers (cmd/start, tests) via
// GORM AutoMigrate using the feature model structs.
package database
