package audio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/tocadiscos/internal/errors"
	"github.com/handiism/tocadiscos/internal/model"
)

func TestTagger_SaveTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "000", "002.mp3")
	writeAudioFile(t, path)

	track := model.Track{
		TrackID:      "2",
		AlbumTitle:   "AWOL - A Way Of Life",
		ArtistName:   "AWOL",
		DateRecorded: "2008-11-26 00:00:00",
		Genres:       "[{'genre_id': '21', 'genre_title': 'Hip-Hop', 'genre_url': 'http://x/'}]",
		Number:       "3",
		Title:        "Food",
	}

	tagger := NewTagger(nil)
	require.NoError(t, tagger.SaveTags(path, track, nil))

	meta, err := ReadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, "Food", meta.Title)
	assert.Equal(t, "AWOL", meta.Artist)
	assert.Equal(t, "AWOL - A Way Of Life", meta.Album)
	assert.Equal(t, "Hip-Hop", meta.Genre)
	assert.Equal(t, 3, meta.Track)
}

func TestTagger_SaveTagsDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mp3")
	writeAudioFile(t, path)

	tagger := NewTagger(&TagConfig{ModifyTags: false})
	require.NoError(t, tagger.SaveTags(path, model.Track{Title: "x"}, nil))

	_, err := ReadMetadata(path)
	assert.Error(t, err, "untouched empty file carries no tags")
}

func TestTagger_SaveTagsMissingFile(t *testing.T) {
	err := NewTagger(nil).SaveTags(filepath.Join(t.TempDir(), "missing.mp3"), model.Track{}, nil)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestGenreText(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"plain", "Rock", "Rock"},
		{"records", "[{'genre_id': '1', 'genre_title': 'Rock'}, {'genre_id': '2', 'genre_title': 'Pop'}]", "Rock/Pop"},
		{"quoted list", `["Folk", "Jazz"]`, "Folk/Jazz"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, genreText(tt.cell))
		})
	}
}
