package model

import (
	"strconv"
	"strings"
)

// Track is a row of the raw tracks table.
//
// Columns are mapped one to one and kept as text; a missing value loads as
// the empty string. Typed accessors parse on demand.
type Track struct {
	TrackID           string `csv:"track_id"`
	AlbumID           string `csv:"album_id"`
	AlbumTitle        string `csv:"album_title"`
	ArtistID          string `csv:"artist_id"`
	ArtistName        string `csv:"artist_name"`
	DateRecorded      string `csv:"track_date_recorded"`
	Genres            string `csv:"track_genres"`
	Interest          string `csv:"track_interest"`
	Number            string `csv:"track_number"`
	Title             string `csv:"track_title"`
	ArtistNationality string `csv:"artist_nacionality"`
	Price             string `csv:"track_price"`
}

// ID returns the numeric track id, or 0 when the cell is not an integer.
func (t Track) ID() int {
	return atoi(t.TrackID)
}

// AlbumRef returns the album this track belongs to.
func (t Track) AlbumRef() Ref {
	return Ref{ID: atoi(t.AlbumID), Title: t.AlbumTitle}
}

// ArtistRef returns the artist this track belongs to.
func (t Track) ArtistRef() Ref {
	return Ref{ID: atoi(t.ArtistID), Title: t.ArtistName}
}

// InterestCount returns the popularity count used as a proxy for sales.
func (t Track) InterestCount() int {
	return atoi(t.Interest)
}

// TrackNumber returns the position of the track in its album.
func (t Track) TrackNumber() int {
	return atoi(t.Number)
}

// PriceAmount returns the track price, or 0 when the cell is not a number.
func (t Track) PriceAmount() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(t.Price), 64)
	if err != nil {
		return 0
	}
	return f
}

// IsComplete reports whether every column holds a value.
func (t Track) IsComplete() bool {
	for _, v := range []string{
		t.TrackID, t.AlbumID, t.AlbumTitle, t.ArtistID, t.ArtistName, t.DateRecorded,
		t.Genres, t.Interest, t.Number, t.Title, t.ArtistNationality, t.Price,
	} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// Integers exported by spreadsheet tools come as "12.0".
		f, ferr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return n
}
