// Package codec converts between the CSV rows of the catalog tables and the
// typed records of package model.
//
// # Reference lists
//
// An artist's album list and an album's track list are stored inside a single
// CSV cell. The wire format is a JSON array of [id, "title"] pairs:
//
//	[[1,"Erotica"],[2,"Bedtime Stories"]]
//
// EncodeRefs and DecodeRefs round-trip every pair exactly and keep order.
// DecodeRefs also reads the list-of-tuples literal written by earlier
// versions of the tables:
//
//	[(1, 'Erotica'), (2, 'Bedtime Stories')]
//
// # Rows
//
// ArtistRow and AlbumRow carry the raw text of one row. ParseArtistRow and
// ParseAlbumRow return a *errors.ParseError when the id or a numeric column
// cannot be read; a malformed reference cell degrades to an empty list
// instead. Serialize functions produce rows that parse back to the same
// record.
//
// # Tables
//
// ReadRows and WriteRows move whole tables through gocsv with a fixed header
// order taken from the row struct tags.
package codec
