// Package catalog is the authoritative store for the artists, albums and
// tracks tables.
//
// A Store owns the locations of the three CSV files and the collaborators a
// mutation talks to: a Snapshotter that backs up the files before they
// change and an Indexer that is rebuilt after they change. Every load reads
// the file as it is at call time; the Store keeps no table cache, so a
// history revert is visible to the next call without a reload step.
//
// Mutations follow the same sequence: load, validate, snapshot, write,
// reindex. A failed validation writes nothing. A failed snapshot aborts the
// mutation before any file is touched.
//
// Artists, albums and tracks are related by artist name, compared with
// Unicode case folding. All name matching goes through SameName,
// AlbumsForArtist and TracksForArtist.
//
// There is no file locking. Two processes mutating the same data directory
// can silently overwrite each other's changes.
package catalog
