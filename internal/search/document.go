package search

import (
	"fmt"
	"strconv"

	"github.com/handiism/tocadiscos/internal/model"
)

// DocType distinguishes indexed entities.
type DocType string

const (
	TypeArtist DocType = "artist"
	TypeAlbum  DocType = "album"
	TypeTrack  DocType = "track"
)

// ParseDocType validates a user supplied type filter. The empty string means
// no filter.
func ParseDocType(s string) (DocType, error) {
	switch t := DocType(s); t {
	case "", TypeArtist, TypeAlbum, TypeTrack:
		return t, nil
	default:
		return "", fmt.Errorf("unknown document type %q", s)
	}
}

// Document is the indexed form of a catalog entity.
type Document struct {
	Type        DocType `json:"doc_type"`
	EntityID    int     `json:"entity_id"`
	Title       string  `json:"title"`
	ArtistName  string  `json:"artist_name"`
	AlbumTitle  string  `json:"album_title"`
	Genres      string  `json:"genres"`
	Nationality string  `json:"nationality"`
}

// ID returns the index key, e.g. "album_12".
func (d Document) ID() string {
	return string(d.Type) + "_" + strconv.Itoa(d.EntityID)
}

// Documents derives the documents of a catalog. Tracks without a numeric id
// are left out.
func Documents(c model.Catalog) []Document {
	docs := make([]Document, 0, len(c.Artists)+len(c.Albums)+len(c.Tracks))

	for _, id := range c.ArtistIDs() {
		a := c.Artists[id]
		docs = append(docs, Document{
			Type:        TypeArtist,
			EntityID:    a.ID,
			Title:       a.Name,
			ArtistName:  a.Name,
			Nationality: a.Nationality,
		})
	}

	for _, id := range c.AlbumIDs() {
		a := c.Albums[id]
		docs = append(docs, Document{
			Type:       TypeAlbum,
			EntityID:   a.ID,
			Title:      a.Title,
			ArtistName: a.Artist,
			AlbumTitle: a.Title,
			Genres:     a.Genre,
		})
	}

	for _, t := range c.Tracks {
		id := t.ID()
		if id <= 0 {
			continue
		}
		docs = append(docs, Document{
			Type:        TypeTrack,
			EntityID:    id,
			Title:       t.Title,
			ArtistName:  t.ArtistName,
			AlbumTitle:  t.AlbumTitle,
			Genres:      t.Genres,
			Nationality: t.ArtistNationality,
		})
	}
	return docs
}
