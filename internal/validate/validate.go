// Package validate holds the field rules records must satisfy before they are
// committed to the catalog.
//
// Each rule returns nil or a *errors.ValidationError. Record validators run
// every rule and join the failures, so errors.Is(err, errors.ErrInvalidInput)
// holds for any failure.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/handiism/tocadiscos/internal/errors"
	"github.com/handiism/tocadiscos/internal/model"
)

// Royalty percentage bounds, inclusive.
const (
	MinRoyaltyPercentage = 0.0
	MaxRoyaltyPercentage = 100.0
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NonEmpty requires a string with at least one non-space character.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewValidationError(field, value, "must not be empty")
	}
	return nil
}

// PositiveInt requires value > 0.
func PositiveInt(field string, value int) error {
	if value <= 0 {
		return errors.NewValidationError(field, value, "must be a positive integer")
	}
	return nil
}

// NonNegativeInt requires value >= 0.
func NonNegativeInt(field string, value int) error {
	if value < 0 {
		return errors.NewValidationError(field, value, "must not be negative")
	}
	return nil
}

// PositiveFloat requires value > 0.
func PositiveFloat(field string, value float64) error {
	if !(value > 0) {
		return errors.NewValidationError(field, value, "must be a positive number")
	}
	return nil
}

// NonNegativeFloat requires value >= 0.
func NonNegativeFloat(field string, value float64) error {
	if !(value >= 0) {
		return errors.NewValidationError(field, value, "must not be negative")
	}
	return nil
}

// Range requires lo <= value <= hi.
func Range(field string, value, lo, hi float64) error {
	if !(value >= lo && value <= hi) {
		return errors.NewValidationError(field, value, fmt.Sprintf("must be within [%g, %g]", lo, hi))
	}
	return nil
}

// Date requires the YYYY-MM-DD shape.
func Date(field, value string) error {
	if !datePattern.MatchString(value) {
		return errors.NewValidationError(field, value, "must be a date in YYYY-MM-DD format")
	}
	return nil
}

// RoyaltyPercentage checks the royalty percentage domain.
func RoyaltyPercentage(value float64) error {
	return Range("rights_percentage", value, MinRoyaltyPercentage, MaxRoyaltyPercentage)
}

// Refs requires every reference to carry a positive id and a title.
func Refs(field string, refs []model.Ref) error {
	var errs []error
	for i, ref := range refs {
		name := fmt.Sprintf("%s[%d]", field, i)
		if ref.ID <= 0 {
			errs = append(errs, errors.NewValidationError(name, ref.ID, "reference id must be positive"))
		}
		if strings.TrimSpace(ref.Title) == "" {
			errs = append(errs, errors.NewValidationError(name, ref.Title, "reference title must not be empty"))
		}
	}
	return errors.Join(errs...)
}

// Artist validates an artist record.
func Artist(a model.Artist) error {
	return errors.Join(
		PositiveInt("author_id", a.ID),
		NonEmpty("artist_name", a.Name),
		RoyaltyPercentage(a.RoyaltyPercentage),
		NonNegativeFloat("total_earned", a.TotalEarned),
		Refs("album_title", a.Albums),
	)
}

// Album validates an album record.
func Album(a model.Album) error {
	return errors.Join(
		PositiveInt("album_id", a.ID),
		NonEmpty("album_title", a.Title),
		NonEmpty("artist_name", a.Artist),
		Date("album_date", a.ReleaseDate),
		NonNegativeInt("unites_sold", a.UnitsSold),
		NonNegativeFloat("album_price", a.Price),
		Refs("tracks", a.Tracks),
	)
}

// Track validates a raw track row.
func Track(t model.Track) error {
	return errors.Join(
		positiveIntCell("track_id", t.TrackID),
		positiveIntCell("album_id", t.AlbumID),
		NonEmpty("album_title", t.AlbumTitle),
		positiveIntCell("artist_id", t.ArtistID),
		NonEmpty("artist_name", t.ArtistName),
		dateCell("track_date_recorded", t.DateRecorded),
		NonEmpty("track_genres", t.Genres),
		nonNegativeIntCell("track_interest", t.Interest),
		positiveIntCell("track_number", t.Number),
		NonEmpty("track_title", t.Title),
		NonEmpty("artist_nacionality", t.ArtistNationality),
		positiveFloatCell("track_price", t.Price),
	)
}

func positiveIntCell(field, cell string) error {
	n, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return errors.NewValidationError(field, cell, "must be a positive integer")
	}
	return PositiveInt(field, n)
}

func nonNegativeIntCell(field, cell string) error {
	n, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return errors.NewValidationError(field, cell, "must be a non-negative integer")
	}
	return NonNegativeInt(field, n)
}

func positiveFloatCell(field, cell string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return errors.NewValidationError(field, cell, "must be a positive number")
	}
	return PositiveFloat(field, f)
}

// dateCell accepts a bare date or a date followed by a time of day.
func dateCell(field, cell string) error {
	cell = strings.TrimSpace(cell)
	if len(cell) > 10 {
		cell = cell[:10]
	}
	return Date(field, cell)
}
