package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/handiism/tocadiscos/internal/model"
)

func TestSameName(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Madonna", "madonna", true},
		{" Madonna ", "MADONNA", true},
		{"Björk", "BJÖRK", true},
		{"Strauss", "STRASSE", false},
		{"Weiß", "WEISS", true},
		{"Madonna", "Madona", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SameName(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestAlbumsForArtist(t *testing.T) {
	albums := map[int]model.Album{
		3: {ID: 3, Artist: "madonna"},
		1: {ID: 1, Artist: "Madonna"},
		2: {ID: 2, Artist: "Prince"},
	}

	got := AlbumsForArtist(albums, "MADONNA")
	if assert.Len(t, got, 2) {
		assert.Equal(t, 1, got[0].ID)
		assert.Equal(t, 3, got[1].ID)
	}
	assert.Empty(t, AlbumsForArtist(albums, "Cher"))
}

func TestFindArtist(t *testing.T) {
	artists := map[int]model.Artist{
		1: {ID: 1, Name: "Madonna"},
		2: {ID: 2, Name: "Prince"},
	}

	a, ok := FindArtist(artists, "prince")
	assert.True(t, ok)
	assert.Equal(t, 2, a.ID)

	_, ok = FindArtist(artists, "")
	assert.False(t, ok)
}
