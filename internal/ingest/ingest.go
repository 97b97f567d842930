package ingest

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/handiism/tocadiscos/internal/catalog"
	"github.com/handiism/tocadiscos/internal/errors"
	"github.com/handiism/tocadiscos/internal/logging"
	"github.com/handiism/tocadiscos/internal/model"
	"github.com/handiism/tocadiscos/internal/validate"
)

// Result holds the derived tables.
type Result struct {
	Artists map[int]model.Artist
	Albums  map[int]model.Album

	// Used counts the track rows that contributed.
	Used int

	// Skipped counts incomplete or invalid rows and rows whose artist name
	// collides with a different artist id.
	Skipped int
}

// Option configures Build.
type Option func(*builder)

// WithLogger sets the logger for skipped-row diagnostics.
func WithLogger(log *zerolog.Logger) Option {
	return func(b *builder) {
		b.log = log
	}
}

type builder struct {
	log      *zerolog.Logger
	royalty  float64
	artists  map[int]*model.Artist
	albums   map[int]*model.Album
	names    map[string]int
	seenRefs map[int]map[int]bool
	result   Result
}

// Build derives artists and albums from tracks. Every new artist gets
// defaultRoyalty, which must be within [0, 100].
func Build(tracks []model.Track, defaultRoyalty float64, opts ...Option) (Result, error) {
	if err := validate.RoyaltyPercentage(defaultRoyalty); err != nil {
		return Result{}, err
	}

	b := &builder{
		log:      logging.Default(),
		royalty:  defaultRoyalty,
		artists:  make(map[int]*model.Artist),
		albums:   make(map[int]*model.Album),
		names:    make(map[string]int),
		seenRefs: make(map[int]map[int]bool),
	}
	for _, opt := range opts {
		opt(b)
	}

	for i, t := range tracks {
		if err := b.add(t); err != nil {
			b.result.Skipped++
			b.log.Debug().Err(err).Int("line", i+2).Str("track_id", t.TrackID).Msg("Skipping track row")
			continue
		}
		b.result.Used++
	}

	b.finish()
	if b.result.Skipped > 0 {
		b.log.Warn().Int("skipped", b.result.Skipped).Int("used", b.result.Used).
			Msg("Some track rows were not usable")
	}
	return b.result, nil
}

func (b *builder) add(t model.Track) error {
	if !t.IsComplete() {
		return errors.NewValidationError("track", t.TrackID, "row has empty fields")
	}
	if err := validate.Track(t); err != nil {
		return err
	}

	artistRef := t.ArtistRef()
	albumRef := t.AlbumRef()
	artistName := strings.TrimSpace(t.ArtistName)
	albumTitle := strings.TrimSpace(t.AlbumTitle)

	key := catalog.NameKey(artistName)
	if id, ok := b.names[key]; ok && id != artistRef.ID {
		return &errors.DuplicateNameError{Name: artistName}
	}
	if album, ok := b.albums[albumRef.ID]; ok && !catalog.SameName(album.Artist, artistName) {
		return errors.NewValidationError("album_id", t.AlbumID, "album belongs to another artist")
	}

	artist, ok := b.artists[artistRef.ID]
	if !ok {
		artist = &model.Artist{
			ID:                artistRef.ID,
			Name:              artistName,
			Nationality:       strings.TrimSpace(t.ArtistNationality),
			Albums:            []model.Ref{},
			RoyaltyPercentage: b.royalty,
		}
		b.artists[artistRef.ID] = artist
		b.names[key] = artistRef.ID
		b.seenRefs[artistRef.ID] = make(map[int]bool)
	}
	if !b.seenRefs[artistRef.ID][albumRef.ID] {
		b.seenRefs[artistRef.ID][albumRef.ID] = true
		artist.Albums = append(artist.Albums, model.Ref{ID: albumRef.ID, Title: albumTitle})
	}

	album, ok := b.albums[albumRef.ID]
	if !ok {
		album = &model.Album{
			ID:          albumRef.ID,
			Title:       albumTitle,
			Artist:      artistName,
			Genre:       strings.TrimSpace(t.Genres),
			ReleaseDate: strings.TrimSpace(t.DateRecorded)[:10],
			Tracks:      []model.Ref{},
		}
		b.albums[albumRef.ID] = album
	}
	album.Tracks = append(album.Tracks, model.Ref{ID: t.ID(), Title: strings.TrimSpace(t.Title)})
	album.UnitsSold += t.InterestCount()
	album.Price += t.PriceAmount()
	return nil
}

func (b *builder) finish() {
	b.result.Artists = make(map[int]model.Artist, len(b.artists))
	b.result.Albums = make(map[int]model.Album, len(b.albums))

	for id, album := range b.albums {
		b.result.Albums[id] = *album
		owner := b.artists[b.names[catalog.NameKey(album.Artist)]]
		owner.TotalEarned += album.Revenue()
	}
	for id, artist := range b.artists {
		b.result.Artists[id] = *artist
	}
}
