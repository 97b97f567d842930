package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/handiism/tocadiscos/internal/errors"
	"github.com/handiism/tocadiscos/internal/model"
)

func TestParseArtistRow(t *testing.T) {
	row := ArtistRow{
		ID:                "3",
		Name:              " Madonna ",
		Nationality:       "American ",
		Albums:            "[(10, 'Erotica')]",
		RoyaltyPercentage: "50.0",
		TotalEarned:       "",
	}

	got, err := ParseArtistRow(row)
	require.NoError(t, err)
	assert.Equal(t, model.Artist{
		ID:                3,
		Name:              " Madonna ",
		Nationality:       "American ",
		Albums:            []model.Ref{{ID: 10, Title: "Erotica"}},
		RoyaltyPercentage: 50,
	}, got)
}

func TestArtistRow_KeepsSurroundingSpaces(t *testing.T) {
	want := model.Artist{ID: 1, Name: "Madonna", Nationality: " American", Albums: []model.Ref{}}

	data, err := WriteRows([]ArtistRow{SerializeArtistRow(want)})
	require.NoError(t, err)
	rows, err := ReadRows[ArtistRow](data)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	got, err := ParseArtistRow(rows[0])
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, SerializeArtistRow(want), SerializeArtistRow(got))
}

func TestParseArtistRow_MalformedAlbumsDegrade(t *testing.T) {
	got, err := ParseArtistRow(ArtistRow{ID: "1", Name: "X", Albums: "[(1,'X'"})
	require.NoError(t, err)
	assert.Empty(t, got.Albums)
}

func TestParseArtistRow_Errors(t *testing.T) {
	tests := []struct {
		name  string
		row   ArtistRow
		field string
	}{
		{"missing id", ArtistRow{ID: ""}, "author_id"},
		{"text id", ArtistRow{ID: "abc"}, "author_id"},
		{"zero id", ArtistRow{ID: "0"}, "author_id"},
		{"bad royalty", ArtistRow{ID: "1", RoyaltyPercentage: "fifty"}, "rights_percentage"},
		{"nan royalty", ArtistRow{ID: "1", RoyaltyPercentage: "NaN"}, "rights_percentage"},
		{"bad earnings", ArtistRow{ID: "1", TotalEarned: "lots"}, "total_earned"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArtistRow(tt.row)
			require.ErrorIs(t, err, errors.ErrParse)

			var pe *errors.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.field, pe.Field)
		})
	}
}

func TestParseAlbumRow(t *testing.T) {
	row := AlbumRow{
		ID:          "10",
		Title:       "Erotica",
		Artist:      "Madonna",
		Genre:       "Pop",
		ReleaseDate: "1992-10-20",
		UnitsSold:   "1000.0",
		Price:       "9.99",
		Tracks:      `[[100,"Erotica"],[101,"Fever"]]`,
	}

	got, err := ParseAlbumRow(row)
	require.NoError(t, err)
	assert.Equal(t, 10, got.ID)
	assert.Equal(t, 1000, got.UnitsSold)
	assert.Equal(t, 9.99, got.Price)
	assert.Equal(t, []model.Ref{{ID: 100, Title: "Erotica"}, {ID: 101, Title: "Fever"}}, got.Tracks)
}

func TestParseAlbumRow_MissingNumbersDefaultToZero(t *testing.T) {
	got, err := ParseAlbumRow(AlbumRow{ID: "2", UnitsSold: "N/A", Price: ""})
	require.NoError(t, err)
	assert.Zero(t, got.UnitsSold)
	assert.Zero(t, got.Price)
	assert.Empty(t, got.Tracks)
}

func TestParseAlbumRow_Errors(t *testing.T) {
	tests := []struct {
		name  string
		row   AlbumRow
		field string
	}{
		{"bad id", AlbumRow{ID: "ten"}, "album_id"},
		{"fractional units", AlbumRow{ID: "1", UnitsSold: "1.5"}, "unites_sold"},
		{"bad price", AlbumRow{ID: "1", Price: "free"}, "album_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAlbumRow(tt.row)
			var pe *errors.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.field, pe.Field)
		})
	}
}

// Text values that survive the CSV layer, surrounding spaces included.
var (
	nameGen  = rapid.StringMatching(`[A-Za-z0-9 ,'"()\[\]é]{0,22}`)
	titleGen = rapid.StringMatching(`[A-Za-z0-9 ,'"()\[\]é\\]{0,24}`)
)

func refsGen() *rapid.Generator[[]model.Ref] {
	return rapid.SliceOfN(rapid.Custom(func(t *rapid.T) model.Ref {
		return model.Ref{
			ID:    rapid.IntRange(1, 99999).Draw(t, "id"),
			Title: titleGen.Draw(t, "title"),
		}
	}), 0, 5)
}

func artistGen() *rapid.Generator[model.Artist] {
	return rapid.Custom(func(t *rapid.T) model.Artist {
		return model.Artist{
			ID:                rapid.IntRange(1, 1_000_000).Draw(t, "id"),
			Name:              nameGen.Draw(t, "name"),
			Nationality:       nameGen.Draw(t, "nationality"),
			Albums:            refsGen().Draw(t, "albums"),
			RoyaltyPercentage: rapid.Float64Range(0, 100).Draw(t, "royalty"),
			TotalEarned:       rapid.Float64Range(0, 1e9).Draw(t, "earned"),
		}
	})
}

func albumGen() *rapid.Generator[model.Album] {
	return rapid.Custom(func(t *rapid.T) model.Album {
		return model.Album{
			ID:          rapid.IntRange(1, 1_000_000).Draw(t, "id"),
			Title:       nameGen.Draw(t, "title"),
			Artist:      nameGen.Draw(t, "artist"),
			Genre:       nameGen.Draw(t, "genre"),
			ReleaseDate: rapid.StringMatching(`\d{4}-\d{2}-\d{2}`).Draw(t, "date"),
			UnitsSold:   rapid.IntRange(0, 1e7).Draw(t, "units"),
			Price:       rapid.Float64Range(0, 1000).Draw(t, "price"),
			Tracks:      refsGen().Draw(t, "tracks"),
		}
	})
}

// normalizeRefs maps an empty list to nil so equality ignores the
// distinction between the two.
func normalizeRefs(refs []model.Ref) []model.Ref {
	if len(refs) == 0 {
		return nil
	}
	return refs
}

func TestArtistRowRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		want := artistGen().Draw(t, "artist")

		data, err := WriteRows([]ArtistRow{SerializeArtistRow(want)})
		require.NoError(t, err)
		rows, err := ReadRows[ArtistRow](data)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		got, err := ParseArtistRow(rows[0])
		require.NoError(t, err)
		got.Albums = normalizeRefs(got.Albums)
		want.Albums = normalizeRefs(want.Albums)
		assert.Equal(t, want, got)
	})
}

func TestAlbumRowRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		want := albumGen().Draw(t, "album")

		data, err := WriteRows([]AlbumRow{SerializeAlbumRow(want)})
		require.NoError(t, err)
		rows, err := ReadRows[AlbumRow](data)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		got, err := ParseAlbumRow(rows[0])
		require.NoError(t, err)
		got.Tracks = normalizeRefs(got.Tracks)
		want.Tracks = normalizeRefs(want.Tracks)
		assert.Equal(t, want, got)
	})
}
