package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/handiism/tocadiscos/internal/codec"
	"github.com/handiism/tocadiscos/internal/history"
	"github.com/handiism/tocadiscos/internal/model"
	"github.com/handiism/tocadiscos/internal/search"
)

// Table is a header plus rows of display strings.
type Table struct {
	Header []string
	Rows   [][]string
	// RightAligned marks numeric columns.
	RightAligned []bool
}

// Render writes t as a bordered text table.
func (t Table) Render(w io.Writer) error {
	align := make([]tw.Align, len(t.Header))
	for i := range align {
		align[i] = tw.AlignLeft
		if i < len(t.RightAligned) && t.RightAligned[i] {
			align[i] = tw.AlignRight
		}
	}

	config := tablewriter.Config{}
	config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	table.Header(header...)

	for _, row := range t.Rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

// Money formats a currency amount with two decimals.
func Money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Percent formats a percentage with two decimals and a percent sign.
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

// Table lays the report out with its total row last.
func (r Report) Table() Table {
	t := Table{
		Header:       []string{"Artist", "Albums", "Units Sold", "Revenue", "Royalty %", "Royalty"},
		RightAligned: []bool{false, true, true, true, true, true},
	}
	for _, f := range r.Rows {
		t.Rows = append(t.Rows, r.row(f, Percent(f.RoyaltyPercentage)))
	}
	t.Rows = append(t.Rows, r.row(r.Total, ""))
	return t
}

func (r Report) row(f Financials, pct string) []string {
	royalty := Money(f.RoyaltyAmount)
	if !r.Authorized {
		pct, royalty = RestrictedMarker, RestrictedMarker
	}
	return []string{
		f.Artist,
		strconv.Itoa(f.AlbumCount),
		strconv.Itoa(f.UnitsSold),
		Money(f.Revenue),
		pct,
		royalty,
	}
}

// ArtistListing lists every artist by id. Royalty percentage and earnings
// are restricted unless authorized.
func ArtistListing(c model.Catalog, authorized bool) Table {
	t := Table{
		Header:       []string{"ID", "Name", "Nationality", "Albums", "Royalty %", "Total Earned"},
		RightAligned: []bool{true, false, false, true, true, true},
	}
	for _, id := range c.ArtistIDs() {
		a := c.Artists[id]
		pct, earned := Percent(a.RoyaltyPercentage), Money(a.TotalEarned)
		if !authorized {
			pct, earned = RestrictedMarker, RestrictedMarker
		}
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(a.ID),
			display(a.Name),
			display(a.Nationality),
			strconv.Itoa(len(a.Albums)),
			pct,
			earned,
		})
	}
	return t
}

// AlbumListing lists every album by id.
func AlbumListing(c model.Catalog) Table {
	t := Table{
		Header:       []string{"ID", "Title", "Artist", "Genre", "Released", "Units Sold", "Price", "Tracks"},
		RightAligned: []bool{true, false, false, false, false, true, true, true},
	}
	for _, id := range c.AlbumIDs() {
		a := c.Albums[id]
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(a.ID),
			display(a.Title),
			display(a.Artist),
			display(a.Genre),
			display(a.ReleaseDate),
			strconv.Itoa(a.UnitsSold),
			Money(a.Price),
			strconv.Itoa(len(a.Tracks)),
		})
	}
	return t
}

func display(s string) string {
	if s == "" {
		return codec.MissingMarker
	}
	return s
}

// HitListing lists search results in rank order.
func HitListing(hits []search.Hit) Table {
	t := Table{
		Header:       []string{"Type", "ID", "Title", "Artist", "Album"},
		RightAligned: []bool{false, true, false, false, false},
	}
	for _, h := range hits {
		t.Rows = append(t.Rows, []string{
			string(h.Type),
			strconv.Itoa(h.EntityID),
			display(h.Title),
			display(h.ArtistName),
			display(h.AlbumTitle),
		})
	}
	return t
}

// HistoryListing lists snapshots oldest first.
func HistoryListing(entries []history.Entry) Table {
	t := Table{
		Header:       []string{"#", "Snapshot", "Action", "Time"},
		RightAligned: []bool{true, false, false, false},
	}
	for i, e := range entries {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1),
			e.Name,
			e.Metadata.Action,
			e.Metadata.Timestamp.Local().Format("2006-01-02 15:04:05"),
		})
	}
	return t
}

// FinancialsListing shows one artist's figures. Royalty columns are
// restricted unless authorized.
func FinancialsListing(f Financials, authorized bool) Table {
	pct, royalty := Percent(f.RoyaltyPercentage), Money(f.RoyaltyAmount)
	if !authorized {
		pct, royalty = RestrictedMarker, RestrictedMarker
	}
	return Table{
		Header:       []string{"Artist", "Albums", "Units Sold", "Revenue", "Royalty %", "Royalty"},
		RightAligned: []bool{false, true, true, true, true, true},
		Rows: [][]string{{
			f.Artist,
			strconv.Itoa(f.AlbumCount),
			strconv.Itoa(f.UnitsSold),
			Money(f.Revenue),
			pct,
			royalty,
		}},
	}
}

// String renders t, returning the error text if rendering fails.
func (t Table) String() string {
	var sb strings.Builder
	if err := t.Render(&sb); err != nil {
		return err.Error()
	}
	return sb.String()
}
