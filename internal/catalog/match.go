package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/handiism/tocadiscos/internal/model"
)

// foldName normalizes an artist name for comparison.
func foldName(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// NameKey returns the key under which artist names compare equal.
func NameKey(name string) string {
	return foldName(name)
}

// SameName reports whether two artist names refer to the same artist.
func SameName(a, b string) bool {
	return foldName(a) == foldName(b)
}

// FindArtist returns the artist whose name matches name.
func FindArtist(artists map[int]model.Artist, name string) (model.Artist, bool) {
	key := foldName(name)
	for _, id := range sortedIDs(artists) {
		if foldName(artists[id].Name) == key {
			return artists[id], true
		}
	}
	return model.Artist{}, false
}

// AlbumsForArtist returns the albums credited to artistName, ordered by id.
func AlbumsForArtist(albums map[int]model.Album, artistName string) []model.Album {
	key := foldName(artistName)
	var out []model.Album
	for _, id := range sortedIDs(albums) {
		if foldName(albums[id].Artist) == key {
			out = append(out, albums[id])
		}
	}
	return out
}

// TracksForArtist returns the tracks credited to artistName in table order.
func TracksForArtist(tracks []model.Track, artistName string) []model.Track {
	key := foldName(artistName)
	var out []model.Track
	for _, t := range tracks {
		if foldName(t.ArtistName) == key {
			out = append(out, t)
		}
	}
	return out
}

func sortedIDs[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
