// Package meta scrapes game-meta pages from the remote source: the
// forbidden/limited list, pack listings and the competitive tier list.
// Results are parsed on every request and never persisted; the pages change
// on the source's schedule, not ours.
package meta
