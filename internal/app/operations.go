package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/handiism/tocadiscos/internal/audio"
	"github.com/handiism/tocadiscos/internal/errors"
	"github.com/handiism/tocadiscos/internal/ingest"
	ioutils "github.com/handiism/tocadiscos/internal/io"
	"github.com/handiism/tocadiscos/internal/model"
	"github.com/handiism/tocadiscos/internal/search"
)

// Ingest rebuilds the authors and albums tables from the raw tracks table.
func (a *App) Ingest(ctx context.Context) (ingest.Result, error) {
	tracks, err := a.Store.LoadTracks(ctx)
	if err != nil {
		return ingest.Result{}, err
	}
	res, err := ingest.Build(tracks, a.Settings.DefaultRoyaltyPercentage, ingest.WithLogger(a.Log))
	if err != nil {
		return ingest.Result{}, err
	}
	if err := a.Store.ReplaceTables(ctx, res.Artists, res.Albums); err != nil {
		return res, err
	}
	a.Log.Info().Int("artists", len(res.Artists)).Int("albums", len(res.Albums)).
		Int("skipped", res.Skipped).Msg("Catalog rebuilt from raw tracks")
	return res, nil
}

// Search queries the index, building it first when it is empty.
func (a *App) Search(ctx context.Context, text string, typ search.DocType, limit int) ([]search.Hit, error) {
	n, err := a.Index.Count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if err := a.Store.Reindex(ctx); err != nil {
			return nil, err
		}
	}
	return a.Index.Query(ctx, text, typ, limit)
}

// PlayTrack finds the audio file of the track titled title, optionally
// within album, and starts playing it.
func (a *App) PlayTrack(ctx context.Context, title, album string) (model.Track, error) {
	tracks, err := a.Store.LoadTracks(ctx)
	if err != nil {
		return model.Track{}, err
	}
	track, path, err := a.Locator.Find(tracks, title, album)
	if err != nil {
		return model.Track{}, err
	}
	if err := a.Player.Load(path); err != nil {
		return model.Track{}, err
	}
	if err := a.Player.Play(); err != nil {
		return model.Track{}, err
	}
	return track, nil
}

// TagAlbum writes catalog metadata into the audio files of an album's
// tracks. Tracks without a file are skipped.
func (a *App) TagAlbum(ctx context.Context, albumID int) (int, error) {
	c, err := a.Store.LoadCatalog(ctx)
	if err != nil {
		return 0, err
	}
	if _, ok := c.Albums[albumID]; !ok {
		return 0, errors.NewNotFoundError("album", strconv.Itoa(albumID))
	}

	var cover []byte
	if path := a.Locator.CoverPath(albumID); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			cover, err = audio.PrepareCover(data, a.Settings.CoverMaxSize)
		}
		if err != nil {
			a.Log.Warn().Err(err).Str("path", path).Msg("Cover image unusable, tagging without it")
			cover = nil
		}
	}

	tagged := 0
	for _, t := range c.Tracks {
		if t.AlbumRef().ID != albumID {
			continue
		}
		if err := ctx.Err(); err != nil {
			return tagged, err
		}
		path := a.Locator.Path(t.TrackID)
		if !ioutils.Exists(path) {
			a.Log.Debug().Str("path", path).Msg("No audio file for track")
			continue
		}
		if err := a.Tagger.SaveTags(path, t, cover); err != nil {
			return tagged, fmt.Errorf("tag %s: %w", path, err)
		}
		tagged++
	}
	return tagged, nil
}

// WritePlaylist writes a playlist of an album's local audio files into the
// songs directory and returns its path.
func (a *App) WritePlaylist(ctx context.Context, albumID int) (string, error) {
	c, err := a.Store.LoadCatalog(ctx)
	if err != nil {
		return "", err
	}
	album, ok := c.Albums[albumID]
	if !ok {
		return "", errors.NewNotFoundError("album", strconv.Itoa(albumID))
	}

	pl := audio.AlbumPlaylist(album, c.Tracks, a.Locator, false)
	if len(pl.Entries) == 0 {
		return "", errors.NewNotFoundError("album audio", album.Title)
	}

	dir := a.Paths.Songs
	name := ioutils.SanitizeFileName(album.Title)
	if name == "" {
		name = strconv.Itoa(album.ID)
	}
	path := filepath.Join(dir, name+a.Settings.ToPlaylistFormat().Extension())
	content := a.Playlist.CreatePlaylist(pl.Relative(dir))
	if err := ioutils.WriteFileAtomic(ctx, path, []byte(content)); err != nil {
		return "", errors.NewPersistenceError("write", path, err)
	}
	return path, nil
}
