package audio

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	ioutils "github.com/handiism/tocadiscos/internal/io"
	"github.com/handiism/tocadiscos/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for duration/title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	// INI-style format with file, title, and length info.
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	// XML-based SMIL format.
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	// XML-based SMIL format with extended metadata.
	FormatZPL
)

// Extension returns the file extension for the format, including the dot.
func (f PlaylistFormat) Extension() string {
	switch f {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	case FormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// Playlist is an ordered list of audio files.
type Playlist struct {
	Title   string
	Artist  string
	Entries []PlaylistEntry
}

// PlaylistEntry is one file of a playlist. Seconds is -1 when the length
// is unknown.
type PlaylistEntry struct {
	Path    string
	Title   string
	Artist  string
	Seconds int
}

// AlbumPlaylist builds a playlist of the tracks of album ordered by track
// number. Tracks whose audio file is missing are skipped unless
// includeMissing is set.
func AlbumPlaylist(album model.Album, tracks []model.Track, loc *Locator, includeMissing bool) Playlist {
	var selected []model.Track
	for _, t := range tracks {
		if t.AlbumRef().ID == album.ID {
			selected = append(selected, t)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].TrackNumber() < selected[j].TrackNumber()
	})

	pl := Playlist{Title: album.Title, Artist: album.Artist}
	for _, t := range selected {
		path := loc.Path(t.TrackID)
		if !includeMissing && !ioutils.Exists(path) {
			continue
		}
		pl.Entries = append(pl.Entries, PlaylistEntry{
			Path:    path,
			Title:   strings.TrimSpace(t.Title),
			Artist:  strings.TrimSpace(t.ArtistName),
			Seconds: -1,
		})
	}
	return pl
}

// Relative rewrites entry paths relative to dir, the directory the
// playlist file will be written to. Paths that cannot be made relative are
// kept.
func (pl Playlist) Relative(dir string) Playlist {
	out := pl
	out.Entries = make([]PlaylistEntry, len(pl.Entries))
	for i, e := range pl.Entries {
		if rel, err := filepath.Rel(dir, e.Path); err == nil {
			e.Path = filepath.ToSlash(rel)
		}
		out.Entries[i] = e
	}
	return out
}

// PlaylistCreator generates playlist files in various formats.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(AlbumPlaylist(album, tracks, loc, false))
//	os.WriteFile("album.m3u", []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Artist - Song Title
//	// 000/002.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with duration/title
}

// NewPlaylistCreator creates a new PlaylistCreator. extended only affects
// M3U output.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist renders pl in the creator's format.
func (p *PlaylistCreator) CreatePlaylist(pl Playlist) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(pl)
	case FormatWPL:
		return p.createWPL(pl)
	case FormatZPL:
		return p.createZPL(pl)
	default:
		return p.createM3U(pl)
	}
}

// createM3U generates an M3U playlist.
//
// Standard M3U format:
//
//	filename1.mp3
//	filename2.mp3
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:-1,Artist - Title
//	filename1.mp3
func (p *PlaylistCreator) createM3U(pl Playlist) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range pl.Entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s - %s\n", track.Seconds, track.Artist, track.Title))
		}
		sb.WriteString(track.Path + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
// PLS format is an INI-style text file:
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Song Title
//	Length1=180
//	NumberOfEntries=2
//	Version=2
func (p *PlaylistCreator) createPLS(pl Playlist) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, track := range pl.Entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, track.Path))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, track.Title))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, track.Seconds))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(pl.Entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
//
// WPL is an XML-based SMIL format used by Windows Media Player.
func (p *PlaylistCreator) createWPL(pl Playlist) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(pl.Title)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range pl.Entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(track.Path)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist.
//
// ZPL is similar to WPL but includes additional metadata attributes
// like album title, artist, and track duration.
func (p *PlaylistCreator) createZPL(pl Playlist) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(pl.Title)))
	sb.WriteString("    <meta name=\"Generator\" content=\"tocadiscos\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(pl.Entries)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range pl.Entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" albumTitle=\"%s\" albumArtist=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\" duration=\"%d\"/>\n",
			escapeXML(track.Path),
			escapeXML(pl.Title),
			escapeXML(pl.Artist),
			escapeXML(track.Title),
			escapeXML(track.Artist),
			durationMillis(track.Seconds)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

func durationMillis(seconds int) int {
	if seconds < 0 {
		return 0
	}
	return seconds * 1000
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
