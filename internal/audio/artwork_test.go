package audio

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/tocadiscos/internal/model"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPrepareCover(t *testing.T) {
	tests := []struct {
		name          string
		w, h, maxSize int
		wantW, wantH  int
	}{
		{"landscape", 40, 20, 10, 10, 5},
		{"portrait", 20, 40, 10, 5, 10},
		{"small enough", 8, 6, 10, 8, 6},
		{"no limit", 40, 20, 0, 40, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := PrepareCover(testPNG(t, tt.w, tt.h), tt.maxSize)
			require.NoError(t, err)

			img, err := jpeg.Decode(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, img.Bounds().Dx())
			assert.Equal(t, tt.wantH, img.Bounds().Dy())
		})
	}
}

func TestPrepareCover_NotAnImage(t *testing.T) {
	_, err := PrepareCover([]byte("not an image"), 10)
	assert.Error(t, err)
}

func TestLocator_CoverPath(t *testing.T) {
	songs := t.TempDir()
	loc := NewLocator(songs)
	assert.Empty(t, loc.CoverPath(7))

	want := filepath.Join(songs, "covers", "7.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(want), 0755))
	require.NoError(t, os.WriteFile(want, testPNG(t, 2, 2), 0644))
	assert.Equal(t, want, loc.CoverPath(7))
}

func TestTagger_EmbedsCover(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mp3")
	writeAudioFile(t, path)

	cover, err := PrepareCover(testPNG(t, 16, 16), 8)
	require.NoError(t, err)
	require.NoError(t, NewTagger(nil).SaveTags(path, model.Track{Title: "Food"}, cover))

	meta, err := ReadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, "Food", meta.Title)
	assert.Equal(t, "image/jpeg", meta.CoverMIME)
}
