// Package search keeps a bleve full-text index of the catalog.
//
// Every artist, album and track becomes one Document. Rebuild replaces the
// whole index content with the documents derived from a catalog, so the
// index always mirrors one consistent state of the tables. Query matches the
// text against title, artist, album, genre and nationality fields and can be
// restricted to one document type.
package search
