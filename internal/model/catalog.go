package model

import "sort"

// Catalog is the combined artist, album and track dataset as read at one
// point in time.
type Catalog struct {
	Artists map[int]Artist
	Albums  map[int]Album
	Tracks  []Track
}

// ArtistIDs returns the artist ids in ascending order.
func (c Catalog) ArtistIDs() []int {
	return sortedKeys(c.Artists)
}

// AlbumIDs returns the album ids in ascending order.
func (c Catalog) AlbumIDs() []int {
	return sortedKeys(c.Albums)
}

func sortedKeys[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
