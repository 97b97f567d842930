// Package ioutils provides file system utilities for the catalog.
//
// This package contains functions for:
//   - Atomic file replacement
//   - Staged multi-file writes
//   - File copying
//   - Filename sanitization
//   - Directory creation
//
// # Atomic Writes
//
// Table files are never truncated in place. WriteFileAtomic writes to a
// temporary file in the same directory and renames it over the target:
//
//	err := ioutils.WriteFileAtomic(ctx, "data/authors_table.csv", data)
//
// When several files must change together, stage them all first and rename
// only once every write has succeeded:
//
//	staged, err := ioutils.StageFile("data/albums_table.csv", albums)
//	...
//	err = ioutils.CommitStaged([]ioutils.StagedFile{staged, ...})
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Add artist: AC/DC") // Returns "Add artist_ AC_DC"
package ioutils
