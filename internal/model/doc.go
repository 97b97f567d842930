// Package model defines the core data structures used throughout
// the tocadiscos record-label catalog.
//
// # Artist
//
// Artist is a row of the authors table. Its album list is a denormalized
// cache of (id, title) pairs and is never authoritative:
//
//	artist := model.Artist{ID: 1, Name: "Madonna", Nationality: "American", RoyaltyPercentage: 50}
//
// # Album
//
// Album is a row of the albums table. The owning artist is referenced by name,
// not by id:
//
//	album := model.Album{ID: 7, Title: "Erotica", Artist: "Madonna", UnitsSold: 120, Price: 9.99}
//	fmt.Println(album.Revenue()) // 1198.8
//
// # Track
//
// Track is a row of the raw tracks table. All columns are kept as text so a
// load followed by a save never rewrites values the catalog does not own.
//
// # Catalog
//
// Catalog groups the three tables as they were read at one point in time.
package model
