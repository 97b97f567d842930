package audio

import (
	"os"
	"regexp"
	"strings"

	"github.com/bogem/id3v2"

	"github.com/handiism/tocadiscos/internal/errors"
	"github.com/handiism/tocadiscos/internal/model"
)

// TagEditAction defines how to handle individual ID3 tags.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the catalog.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags: true,
//	    Artist:     TagModify,      // Update artist from the tracks table
//	    Genre:      TagModify,      // Use the track genres
//	    Comments:   TagEmpty,       // Clear any existing comments
//	    Date:       TagDoNotModify, // Keep existing recording time
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no tags are modified.
	ModifyTags bool

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// AlbumArtist controls the TPE2 (Album artist) frame.
	AlbumArtist TagEditAction

	// Album controls the TALB (Album title) frame.
	Album TagEditAction

	// Year controls the TYER (Year) frame.
	Year TagEditAction

	// Date controls the TDRC (Recording time) frame.
	Date TagEditAction

	// TrackNumber controls the TRCK (Track number) frame.
	TrackNumber TagEditAction

	// TrackTitle controls the TIT2 (Title) frame.
	TrackTitle TagEditAction

	// Genre controls the TCON (Content type) frame.
	Genre TagEditAction

	// Comments controls the COMM (Comments) frame.
	Comments TagEditAction
}

// DefaultTagConfig returns a configuration that writes every catalog field
// and clears comments.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags:  true,
		Artist:      TagModify,
		AlbumArtist: TagModify,
		Album:       TagModify,
		Year:        TagModify,
		Date:        TagModify,
		TrackNumber: TagModify,
		TrackTitle:  TagModify,
		Genre:       TagModify,
		Comments:    TagEmpty,
	}
}

// Tagger writes catalog metadata into the ID3 tags of MP3 files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	if err := tagger.SaveTags(locator.Path(track.TrackID), track, nil); err != nil {
//	    log.Warn().Err(err).Msg("Tagging failed")
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes the fields of track into the MP3 file at path. The file
// must exist; tags it already carries are parsed and updated in place.
// A non-nil cover replaces the embedded front cover.
func (t *Tagger) SaveTags(path string, track model.Track, cover []byte) error {
	if _, err := os.Stat(path); err != nil {
		return errors.NewNotFoundError("audio file", path)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	if !t.config.ModifyTags && cover == nil {
		return nil
	}
	if t.config.ModifyTags {
		t.updateTags(tag, track)
	}
	if cover != nil {
		t.updateArtwork(tag, cover)
	}
	return tag.Save()
}

func (t *Tagger) updateTags(tag *id3v2.Tag, track model.Track) {
	artist := strings.TrimSpace(track.ArtistName)

	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		tag.SetArtist(artist)
	}

	switch t.config.AlbumArtist {
	case TagEmpty:
		tag.DeleteFrames("TPE2")
	case TagModify:
		tag.AddTextFrame("TPE2", id3v2.EncodingUTF8, artist)
	}

	switch t.config.Album {
	case TagEmpty:
		tag.SetAlbum("")
	case TagModify:
		tag.SetAlbum(strings.TrimSpace(track.AlbumTitle))
	}

	recorded := strings.TrimSpace(track.DateRecorded)

	switch t.config.Year {
	case TagEmpty:
		tag.DeleteFrames("TYER")
	case TagModify:
		if len(recorded) >= 4 {
			tag.AddTextFrame("TYER", id3v2.EncodingUTF8, recorded[:4])
		}
	}

	switch t.config.Date {
	case TagEmpty:
		tag.DeleteFrames("TDRC")
	case TagModify:
		if len(recorded) >= 10 {
			tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, recorded[:10])
		}
	}

	switch t.config.TrackNumber {
	case TagEmpty:
		tag.DeleteFrames("TRCK")
	case TagModify:
		if n := track.TrackNumber(); n > 0 {
			tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, track.Number)
		}
	}

	switch t.config.TrackTitle {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(strings.TrimSpace(track.Title))
	}

	switch t.config.Genre {
	case TagEmpty:
		tag.SetGenre("")
	case TagModify:
		tag.SetGenre(genreText(track.Genres))
	}

	if t.config.Comments == TagEmpty {
		tag.DeleteFrames(tag.CommonID("Comments"))
	}
}

// updateArtwork embeds cover as the front cover picture.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, cover []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     cover,
	})
}

var (
	genreTitlePattern = regexp.MustCompile(`['"]genre_title['"]\s*:\s*['"]([^'"]*)['"]`)
	quotedPattern     = regexp.MustCompile(`['"]([^'"]*)['"]`)
)

// genreText flattens a genres cell into a single tag value. The cell holds
// plain text, a list of quoted names, or a list of genre records.
func genreText(cell string) string {
	cell = strings.TrimSpace(cell)
	if !strings.HasPrefix(cell, "[") {
		return cell
	}

	pattern := quotedPattern
	if genreTitlePattern.MatchString(cell) {
		pattern = genreTitlePattern
	}
	var names []string
	for _, m := range pattern.FindAllStringSubmatch(cell, -1) {
		if name := strings.TrimSpace(m[1]); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, "/")
}
