// Package history keeps whole-dataset snapshots of the catalog tables and
// restores them on request.
//
// Each snapshot is a directory under the history root:
//
//	data/history/20240518_142501_Added_artist_Madonna/
//	    authors_table.csv
//	    albums_table.csv
//	    raw_tracks.csv
//	    meta.json            {"action": "...", "timestamp": "..."}
//
// Directory names start with the local time at second resolution, so they
// sort by creation time. Two snapshots in the same second get distinct names
// from their action text and, if that also matches, a numeric suffix.
// Snapshots are never modified or deleted by this package.
package history
