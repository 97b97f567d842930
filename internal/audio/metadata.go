package audio

import (
	"os"

	"github.com/dhowden/tag"
)

// Metadata is the tag information embedded in an audio file.
type Metadata struct {
	Format      string
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Genre       string
	Year        int
	Track       int
	TrackTotal  int

	// CoverMIME is the MIME type of the embedded picture, "" without one.
	CoverMIME string
}

// ReadMetadata reads the embedded tags of the audio file at path.
func ReadMetadata(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Metadata{}, err
	}

	track, total := m.Track()
	var coverMIME string
	if pic := m.Picture(); pic != nil {
		coverMIME = pic.MIMEType
	}
	return Metadata{
		Format:      string(m.Format()),
		Title:       m.Title(),
		Artist:      m.Artist(),
		Album:       m.Album(),
		AlbumArtist: m.AlbumArtist(),
		Genre:       m.Genre(),
		Year:        m.Year(),
		Track:       track,
		TrackTotal:  total,
		CoverMIME:   coverMIME,
	}, nil
}
