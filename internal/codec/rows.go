package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/handiism/tocadiscos/internal/errors"
	"github.com/handiism/tocadiscos/internal/model"
)

// MissingMarker is the display placeholder for unknown values.
const MissingMarker = "N/A"

// ArtistRow is one row of authors_table.csv.
type ArtistRow struct {
	ID                string `csv:"author_id"`
	Name              string `csv:"artist_name"`
	Nationality       string `csv:"artist_nacionality"`
	Albums            string `csv:"album_title"`
	RoyaltyPercentage string `csv:"rights_percentage"`
	TotalEarned       string `csv:"total_earned"`
}

// AlbumRow is one row of albums_table.csv.
type AlbumRow struct {
	ID          string `csv:"album_id"`
	Title       string `csv:"album_title"`
	Artist      string `csv:"artist_name"`
	Genre       string `csv:"album_genere"`
	ReleaseDate string `csv:"album_date"`
	UnitsSold   string `csv:"unites_sold"`
	Price       string `csv:"album_price"`
	Tracks      string `csv:"tracks"`
}

// Table headers in on-disk column order.
var (
	ArtistHeader = []string{"author_id", "artist_name", "artist_nacionality", "album_title", "rights_percentage", "total_earned"}
	AlbumHeader  = []string{"album_id", "album_title", "artist_name", "album_genere", "album_date", "unites_sold", "album_price", "tracks"}
	TrackHeader  = []string{
		"track_id", "album_id", "album_title", "artist_id", "artist_name", "track_date_recorded",
		"track_genres", "track_interest", "track_number", "track_title", "artist_nacionality", "track_price",
	}
)

// ParseArtistRow converts a row into an Artist.
func ParseArtistRow(row ArtistRow) (model.Artist, error) {
	id, err := parseID(row.ID)
	if err != nil {
		return model.Artist{}, &errors.ParseError{Table: "authors", Field: "author_id", Err: err}
	}
	royalty, err := parseFloat(row.RoyaltyPercentage)
	if err != nil {
		return model.Artist{}, &errors.ParseError{Table: "authors", Field: "rights_percentage", Err: err}
	}
	earned, err := parseFloat(row.TotalEarned)
	if err != nil {
		return model.Artist{}, &errors.ParseError{Table: "authors", Field: "total_earned", Err: err}
	}

	albums, _ := DecodeRefs(row.Albums)

	return model.Artist{
		ID:                id,
		Name:              row.Name,
		Nationality:       row.Nationality,
		Albums:            albums,
		RoyaltyPercentage: royalty,
		TotalEarned:       earned,
	}, nil
}

// SerializeArtistRow converts an Artist into a row.
func SerializeArtistRow(a model.Artist) ArtistRow {
	return ArtistRow{
		ID:                strconv.Itoa(a.ID),
		Name:              a.Name,
		Nationality:       a.Nationality,
		Albums:            EncodeRefs(a.Albums),
		RoyaltyPercentage: formatFloat(a.RoyaltyPercentage),
		TotalEarned:       formatFloat(a.TotalEarned),
	}
}

// ParseAlbumRow converts a row into an Album.
func ParseAlbumRow(row AlbumRow) (model.Album, error) {
	id, err := parseID(row.ID)
	if err != nil {
		return model.Album{}, &errors.ParseError{Table: "albums", Field: "album_id", Err: err}
	}
	units, err := parseInt(row.UnitsSold)
	if err != nil {
		return model.Album{}, &errors.ParseError{Table: "albums", Field: "unites_sold", Err: err}
	}
	price, err := parseFloat(row.Price)
	if err != nil {
		return model.Album{}, &errors.ParseError{Table: "albums", Field: "album_price", Err: err}
	}

	tracks, _ := DecodeRefs(row.Tracks)

	return model.Album{
		ID:          id,
		Title:       row.Title,
		Artist:      row.Artist,
		Genre:       row.Genre,
		ReleaseDate: row.ReleaseDate,
		UnitsSold:   units,
		Price:       price,
		Tracks:      tracks,
	}, nil
}

// SerializeAlbumRow converts an Album into a row.
func SerializeAlbumRow(a model.Album) AlbumRow {
	return AlbumRow{
		ID:          strconv.Itoa(a.ID),
		Title:       a.Title,
		Artist:      a.Artist,
		Genre:       a.Genre,
		ReleaseDate: a.ReleaseDate,
		UnitsSold:   strconv.Itoa(a.UnitsSold),
		Price:       formatFloat(a.Price),
		Tracks:      EncodeRefs(a.Tracks),
	}
}

func isMissing(cell string) bool {
	return cell == "" || strings.EqualFold(cell, MissingMarker)
}

func parseID(cell string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("id %d is not positive", id)
	}
	return id, nil
}

// parseInt reads a count; missing cells default to 0.
func parseInt(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if isMissing(cell) {
		return 0, nil
	}
	n, err := strconv.Atoi(cell)
	if err == nil {
		return n, nil
	}
	f, ferr := strconv.ParseFloat(cell, 64)
	if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, err
	}
	return int(f), nil
}

// parseFloat reads a finite number; missing cells default to 0.
func parseFloat(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if isMissing(cell) {
		return 0, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", cell)
	}
	return f, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
