package catalog

import (
	"context"
	stderrors "errors"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/tocadiscos/internal/codec"
	"github.com/handiism/tocadiscos/internal/errors"
	ioutils "github.com/handiism/tocadiscos/internal/io"
	"github.com/handiism/tocadiscos/internal/model"
)

// firstDataLine is the file line of the first row after the header.
const firstDataLine = 2

// readTable returns the file content, or nil when the file does not exist.
func readTable(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.NewPersistenceError("read", path, err)
	}
	return data, nil
}

// LoadArtists reads the artists table. Rows that cannot be parsed are
// skipped with a warning. A missing file yields an empty map.
func (s *Store) LoadArtists(ctx context.Context) (map[int]model.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	artists := make(map[int]model.Artist)
	data, err := readTable(s.paths.Artists)
	if err != nil || data == nil {
		return artists, err
	}

	rows, err := codec.ReadRows[codec.ArtistRow](data)
	if err != nil {
		return nil, errors.NewPersistenceError("decode", s.paths.Artists, err)
	}

	for i, row := range rows {
		line := firstDataLine + i
		artist, err := codec.ParseArtistRow(row)
		if err != nil {
			s.skipRow(err, line)
			continue
		}
		if _, err := codec.DecodeRefs(row.Albums); err != nil {
			s.log.Warn().Err(err).Str("table", "authors").Int("line", line).
				Msg("Album list unreadable, loaded as empty")
		}
		if _, dup := artists[artist.ID]; dup {
			s.log.Warn().Str("table", "authors").Int("line", line).Int("id", artist.ID).
				Msg("Duplicate id, later row wins")
		}
		artists[artist.ID] = artist
	}
	return artists, nil
}

// LoadAlbums reads the albums table. Rows that cannot be parsed are skipped
// with a warning. A missing file yields an empty map.
func (s *Store) LoadAlbums(ctx context.Context) (map[int]model.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	albums := make(map[int]model.Album)
	data, err := readTable(s.paths.Albums)
	if err != nil || data == nil {
		return albums, err
	}

	rows, err := codec.ReadRows[codec.AlbumRow](data)
	if err != nil {
		return nil, errors.NewPersistenceError("decode", s.paths.Albums, err)
	}

	for i, row := range rows {
		line := firstDataLine + i
		album, err := codec.ParseAlbumRow(row)
		if err != nil {
			s.skipRow(err, line)
			continue
		}
		if _, err := codec.DecodeRefs(row.Tracks); err != nil {
			s.log.Warn().Err(err).Str("table", "albums").Int("line", line).
				Msg("Track list unreadable, loaded as empty")
		}
		if _, dup := albums[album.ID]; dup {
			s.log.Warn().Str("table", "albums").Int("line", line).Int("id", album.ID).
				Msg("Duplicate id, later row wins")
		}
		albums[album.ID] = album
	}
	return albums, nil
}

// LoadTracks reads the raw tracks table. Missing cells load as empty
// strings. A missing file yields an empty slice.
func (s *Store) LoadTracks(ctx context.Context) ([]model.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := readTable(s.paths.Tracks)
	if err != nil || data == nil {
		return []model.Track{}, err
	}

	tracks, err := codec.ReadRows[model.Track](data)
	if err != nil {
		return nil, errors.NewPersistenceError("decode", s.paths.Tracks, err)
	}
	if tracks == nil {
		tracks = []model.Track{}
	}
	return tracks, nil
}

// LoadCatalog reads the three tables concurrently.
func (s *Store) LoadCatalog(ctx context.Context) (model.Catalog, error) {
	var c model.Catalog
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		artists, err := s.LoadArtists(ctx)
		c.Artists = artists
		return err
	})
	g.Go(func() error {
		albums, err := s.LoadAlbums(ctx)
		c.Albums = albums
		return err
	})
	g.Go(func() error {
		tracks, err := s.LoadTracks(ctx)
		c.Tracks = tracks
		return err
	})

	if err := g.Wait(); err != nil {
		return model.Catalog{}, err
	}
	return c, nil
}

func (s *Store) skipRow(err error, line int) {
	var pe *errors.ParseError
	if errors.As(err, &pe) {
		pe.Line = line
	}
	s.log.Warn().Err(err).Int("line", line).Msg("Skipping unparseable row")
}

// SaveArtists rewrites the artists table. An empty map is refused with a
// warning so a populated file is never truncated by mistake.
func (s *Store) SaveArtists(ctx context.Context, artists map[int]model.Artist) error {
	if len(artists) == 0 {
		s.log.Warn().Str("path", s.paths.Artists).Msg("No artists to save, leaving file untouched")
		return nil
	}
	data, err := encodeArtists(artists)
	if err != nil {
		return errors.NewPersistenceError("encode", s.paths.Artists, err)
	}
	return s.write(ctx, s.paths.Artists, data)
}

// SaveAlbums rewrites the albums table. An empty map is refused with a
// warning.
func (s *Store) SaveAlbums(ctx context.Context, albums map[int]model.Album) error {
	if len(albums) == 0 {
		s.log.Warn().Str("path", s.paths.Albums).Msg("No albums to save, leaving file untouched")
		return nil
	}
	data, err := encodeAlbums(albums)
	if err != nil {
		return errors.NewPersistenceError("encode", s.paths.Albums, err)
	}
	return s.write(ctx, s.paths.Albums, data)
}

// SaveTracks rewrites the tracks table. An empty slice is refused with a
// warning.
func (s *Store) SaveTracks(ctx context.Context, tracks []model.Track) error {
	if len(tracks) == 0 {
		s.log.Warn().Str("path", s.paths.Tracks).Msg("No tracks to save, leaving file untouched")
		return nil
	}
	data, err := codec.WriteRows(tracks)
	if err != nil {
		return errors.NewPersistenceError("encode", s.paths.Tracks, err)
	}
	return s.write(ctx, s.paths.Tracks, data)
}

func (s *Store) write(ctx context.Context, path string, data []byte) error {
	if err := ioutils.WriteFileAtomic(ctx, path, data); err != nil {
		return errors.NewPersistenceError("write", path, err)
	}
	s.log.Debug().Str("path", path).Int("bytes", len(data)).Msg("Table written")
	return nil
}

// pendingWrite is one table queued for a multi-table commit.
type pendingWrite struct {
	path string
	data []byte
}

// writeAll stages every table before renaming any of them, so an encoding
// or disk-full failure leaves all live files untouched.
func (s *Store) writeAll(ctx context.Context, writes []pendingWrite) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	staged := make([]ioutils.StagedFile, 0, len(writes))
	for _, w := range writes {
		f, err := ioutils.StageFile(w.path, w.data)
		if err != nil {
			ioutils.DiscardStaged(staged)
			return errors.NewPersistenceError("write", w.path, err)
		}
		staged = append(staged, f)
	}

	if err := ioutils.CommitStaged(staged); err != nil {
		path := writes[0].path
		var ce *ioutils.CommitError
		if errors.As(err, &ce) {
			path = ce.Target
		}
		return errors.NewPersistenceError("commit", path, err)
	}
	for _, w := range writes {
		s.log.Debug().Str("path", w.path).Int("bytes", len(w.data)).Msg("Table written")
	}
	return nil
}

func encodeArtists(artists map[int]model.Artist) ([]byte, error) {
	rows := make([]codec.ArtistRow, 0, len(artists))
	for _, id := range sortedIDs(artists) {
		rows = append(rows, codec.SerializeArtistRow(artists[id]))
	}
	return codec.WriteRows(rows)
}

func encodeAlbums(albums map[int]model.Album) ([]byte, error) {
	rows := make([]codec.AlbumRow, 0, len(albums))
	for _, id := range sortedIDs(albums) {
		rows = append(rows, codec.SerializeAlbumRow(albums[id]))
	}
	return codec.WriteRows(rows)
}
