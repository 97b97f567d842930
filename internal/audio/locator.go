package audio

import (
	"path/filepath"
	"strings"

	"github.com/handiism/tocadiscos/internal/errors"
	ioutils "github.com/handiism/tocadiscos/internal/io"
	"github.com/handiism/tocadiscos/internal/model"
)

// idWidth is the zero-padded width of a track id in the songs tree.
const idWidth = 6

// Locator maps track ids to audio files under a songs directory.
//
// Track 2 lives at <songs>/000/002.mp3 and track 123456 at
// <songs>/123/456.mp3: the id is left-padded with zeros to six digits, the
// first three digits name the directory and the rest the file.
type Locator struct {
	root string
}

// NewLocator creates a Locator for the songs directory root.
func NewLocator(root string) *Locator {
	return &Locator{root: root}
}

// Path returns where the audio file of trackID is expected.
func (l *Locator) Path(trackID string) string {
	id := strings.TrimSpace(trackID)
	if len(id) < idWidth {
		id = strings.Repeat("0", idWidth-len(id)) + id
	}
	return filepath.Join(l.root, id[:3], id[3:]+".mp3")
}

// Find returns the first track whose title matches and whose audio file
// exists. An empty album title matches any album.
func (l *Locator) Find(tracks []model.Track, title, album string) (model.Track, string, error) {
	title = strings.TrimSpace(title)
	album = strings.TrimSpace(album)

	for _, t := range tracks {
		if !strings.EqualFold(strings.TrimSpace(t.Title), title) {
			continue
		}
		if album != "" && !strings.EqualFold(strings.TrimSpace(t.AlbumTitle), album) {
			continue
		}
		path := l.Path(t.TrackID)
		if ioutils.Exists(path) {
			return t, path, nil
		}
	}
	return model.Track{}, "", errors.NewNotFoundError("track audio", title)
}
