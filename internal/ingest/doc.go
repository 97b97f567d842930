// Package ingest derives the authors and albums tables from the raw tracks
// table.
//
// Only complete, valid track rows contribute. Artists are keyed by artist id
// and albums by album id; both accumulate references in order of first
// appearance. An album's units sold is the sum of its tracks' interest and
// its price the sum of their prices. Genre and release date come from the
// album's first track.
package ingest
