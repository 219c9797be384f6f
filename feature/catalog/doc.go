// Package catalog owns the card catalog: the persisted snapshot of the
// bulk card feed, the in-memory name index over it, and fuzzy name
// resolution.
//
// # Cache lifecycle
//
// The Cache moves through Empty -> Loading -> Ready, dropping back to
// Loading when the persisted snapshot ages past its 7-day TTL. A refresh
// replaces the snapshot in a single transaction (clear and bulk insert) and
// then reloads the index. When the feed is unreachable the cache falls back
// to the stored snapshot regardless of age; only a missing snapshot plus a
// failed fetch leaves it empty. Concurrent refresh triggers collapse into
// one flight.
//
// # Name resolution
//
// Suggest implements token-based scoring over the catalog names. The
// Service layers resolution policy on top: exact case-insensitive matches
// win, single survivors are auto-picked, everything else comes back as a
// disambiguation list.
package catalog
