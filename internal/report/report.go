package report

import (
	"context"
	"sort"
	"strings"

	"github.com/handiism/tocadiscos/internal/catalog"
	"github.com/handiism/tocadiscos/internal/errors"
	"github.com/handiism/tocadiscos/internal/model"
)

// RestrictedMarker replaces royalty values for unauthorized callers.
const RestrictedMarker = "restricted"

// TotalLabel names the trailing total row.
const TotalLabel = "TOTAL"

// SortKey orders the rows of a full report.
type SortKey string

const (
	// SortByName orders rows by artist name as stored, ascending.
	SortByName SortKey = "name"
	// SortByRevenue orders rows by revenue, highest first.
	SortByRevenue SortKey = "revenue"
)

// ParseSortKey validates a user supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(s))); key {
	case SortByName, SortByRevenue:
		return key, nil
	case "":
		return SortByName, nil
	default:
		return "", errors.NewValidationError("sort_by", s, `must be "name" or "revenue"`)
	}
}

// Authorizer reports whether the current operator may see royalty figures.
type Authorizer interface {
	IsAuthorized() bool
}

// Source provides the tables a report reads.
type Source interface {
	LoadArtists(ctx context.Context) (map[int]model.Artist, error)
	LoadAlbums(ctx context.Context) (map[int]model.Album, error)
}

// Financials are the sales figures of one artist.
type Financials struct {
	ArtistID          int
	Artist            string
	AlbumCount        int
	UnitsSold         int
	Revenue           float64
	RoyaltyPercentage float64
	RoyaltyAmount     float64
}

// Report is a full per-artist report with its total row.
type Report struct {
	Rows       []Financials
	Total      Financials
	Authorized bool
}

// ArtistFinancials aggregates the albums credited to artist.
func ArtistFinancials(artist model.Artist, albums map[int]model.Album) Financials {
	f := Financials{
		ArtistID:          artist.ID,
		Artist:            artist.Name,
		RoyaltyPercentage: artist.RoyaltyPercentage,
	}
	for _, album := range catalog.AlbumsForArtist(albums, artist.Name) {
		f.AlbumCount++
		f.UnitsSold += album.UnitsSold
		f.Revenue += album.Revenue()
	}
	f.RoyaltyAmount = f.Revenue * artist.RoyaltyPercentage / 100
	return f
}

// Aggregator computes reports from a catalog source.
type Aggregator struct {
	src  Source
	auth Authorizer
}

// NewAggregator creates an Aggregator. A nil Authorizer denies access to
// royalty columns.
func NewAggregator(src Source, auth Authorizer) *Aggregator {
	return &Aggregator{src: src, auth: auth}
}

// Authorized reports whether royalty columns may be shown.
func (a *Aggregator) Authorized() bool {
	return a.auth != nil && a.auth.IsAuthorized()
}

// ComputeArtistFinancials returns the figures for the artist matching name.
// An artist without albums reports zeros.
func (a *Aggregator) ComputeArtistFinancials(ctx context.Context, name string) (Financials, error) {
	artists, err := a.src.LoadArtists(ctx)
	if err != nil {
		return Financials{}, err
	}
	artist, ok := catalog.FindArtist(artists, name)
	if !ok {
		return Financials{}, errors.NewNotFoundError("artist", name)
	}
	albums, err := a.src.LoadAlbums(ctx)
	if err != nil {
		return Financials{}, err
	}
	return ArtistFinancials(artist, albums), nil
}

// ComputeFullReport aggregates every artist and appends the totals.
func (a *Aggregator) ComputeFullReport(ctx context.Context, sortBy SortKey) (Report, error) {
	key, err := ParseSortKey(string(sortBy))
	if err != nil {
		return Report{}, err
	}
	artists, err := a.src.LoadArtists(ctx)
	if err != nil {
		return Report{}, err
	}
	albums, err := a.src.LoadAlbums(ctx)
	if err != nil {
		return Report{}, err
	}
	return BuildReport(artists, albums, key, a.Authorized()), nil
}

// BuildReport is ComputeFullReport over already loaded tables.
func BuildReport(artists map[int]model.Artist, albums map[int]model.Album, sortBy SortKey, authorized bool) Report {
	r := Report{
		Rows:       make([]Financials, 0, len(artists)),
		Total:      Financials{Artist: TotalLabel},
		Authorized: authorized,
	}

	ids := make([]int, 0, len(artists))
	for id := range artists {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		f := ArtistFinancials(artists[id], albums)
		r.Rows = append(r.Rows, f)

		r.Total.AlbumCount += f.AlbumCount
		r.Total.UnitsSold += f.UnitsSold
		r.Total.Revenue += f.Revenue
		r.Total.RoyaltyAmount += f.RoyaltyAmount
	}

	switch sortBy {
	case SortByRevenue:
		sort.SliceStable(r.Rows, func(i, j int) bool {
			return r.Rows[i].Revenue > r.Rows[j].Revenue
		})
	default:
		sort.SliceStable(r.Rows, func(i, j int) bool {
			return r.Rows[i].Artist < r.Rows[j].Artist
		})
	}
	return r
}
