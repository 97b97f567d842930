package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/handiism/tocadiscos/internal/codec"
	"github.com/handiism/tocadiscos/internal/errors"
	"github.com/handiism/tocadiscos/internal/model"
	"github.com/handiism/tocadiscos/internal/validate"
)

// Snapshot action descriptions.
const (
	ActionRebuild = "Rebuilt catalog from raw tracks"
)

// AddArtistAction is the snapshot description for an added artist.
func AddArtistAction(name string) string {
	return fmt.Sprintf("Added artist '%s'", name)
}

// RemoveArtistAction is the snapshot description for a removed artist.
func RemoveArtistAction(name string) string {
	return fmt.Sprintf("Removed artist '%s' (+ cascaded albums/tracks)", name)
}

// UpdateRoyaltyAction is the snapshot description for a royalty change.
func UpdateRoyaltyAction(name string, pct float64) string {
	return fmt.Sprintf("Updated royalty for '%s' to %s%%", name, strconv.FormatFloat(pct, 'f', -1, 64))
}

// RemoveResult describes the outcome of RemoveArtist.
type RemoveResult struct {
	// Removed is false when the operator declined the confirmation.
	Removed       bool
	Artist        model.Artist
	AlbumsRemoved int
	TracksRemoved int
}

// AddArtist creates an artist with the next free id, an empty album list and
// zero earnings.
func (s *Store) AddArtist(ctx context.Context, name, nationality string, royaltyPercentage float64) (model.Artist, error) {
	name = strings.TrimSpace(name)
	nationality = strings.TrimSpace(nationality)

	if err := validate.NonEmpty("artist_name", name); err != nil {
		return model.Artist{}, err
	}
	if err := validate.RoyaltyPercentage(royaltyPercentage); err != nil {
		return model.Artist{}, err
	}

	artists, err := s.LoadArtists(ctx)
	if err != nil {
		return model.Artist{}, err
	}
	if existing, ok := FindArtist(artists, name); ok {
		return model.Artist{}, &errors.DuplicateNameError{Name: existing.Name}
	}

	artist := model.Artist{
		ID:                nextID(artists),
		Name:              name,
		Nationality:       nationality,
		Albums:            []model.Ref{},
		RoyaltyPercentage: royaltyPercentage,
		TotalEarned:       0,
	}
	if err := validate.Artist(artist); err != nil {
		return model.Artist{}, err
	}

	if err := s.snapshot(ctx, AddArtistAction(name)); err != nil {
		return model.Artist{}, err
	}

	artists[artist.ID] = artist
	data, err := encodeArtists(artists)
	if err != nil {
		return model.Artist{}, errors.NewPersistenceError("encode", s.paths.Artists, err)
	}
	if err := s.write(ctx, s.paths.Artists, data); err != nil {
		return model.Artist{}, err
	}

	s.log.Info().Int("artist_id", artist.ID).Str("artist", name).Msg("Artist added")
	s.reindex(ctx)
	return artist, nil
}

// RemoveArtist deletes the artist matching name together with every album
// and track credited to that name. Nothing changes unless confirm approves.
func (s *Store) RemoveArtist(ctx context.Context, name string, confirm Confirmer) (RemoveResult, error) {
	artists, err := s.LoadArtists(ctx)
	if err != nil {
		return RemoveResult{}, err
	}
	artist, ok := FindArtist(artists, name)
	if !ok {
		return RemoveResult{}, errors.NewNotFoundError("artist", name)
	}

	prompt := fmt.Sprintf("Remove artist '%s' and all of their albums and tracks?", artist.Name)
	if confirm == nil || !confirm.Confirm(ctx, prompt) {
		s.log.Info().Str("artist", artist.Name).Msg("Removal not confirmed")
		return RemoveResult{Artist: artist}, nil
	}

	albums, err := s.LoadAlbums(ctx)
	if err != nil {
		return RemoveResult{}, err
	}
	tracks, err := s.LoadTracks(ctx)
	if err != nil {
		return RemoveResult{}, err
	}

	if err := s.snapshot(ctx, RemoveArtistAction(artist.Name)); err != nil {
		return RemoveResult{}, err
	}

	result := RemoveResult{Removed: true, Artist: artist}
	delete(artists, artist.ID)

	for _, album := range AlbumsForArtist(albums, artist.Name) {
		delete(albums, album.ID)
		result.AlbumsRemoved++
	}

	kept := make([]model.Track, 0, len(tracks))
	for _, t := range tracks {
		if SameName(t.ArtistName, artist.Name) {
			result.TracksRemoved++
			continue
		}
		kept = append(kept, t)
	}

	artistData, err := encodeArtists(artists)
	if err != nil {
		return RemoveResult{}, errors.NewPersistenceError("encode", s.paths.Artists, err)
	}
	writes := []pendingWrite{{path: s.paths.Artists, data: artistData}}

	if result.AlbumsRemoved > 0 {
		data, err := encodeAlbums(albums)
		if err != nil {
			return RemoveResult{}, errors.NewPersistenceError("encode", s.paths.Albums, err)
		}
		writes = append(writes, pendingWrite{path: s.paths.Albums, data: data})
	}
	if result.TracksRemoved > 0 {
		data, err := codec.WriteRows(kept)
		if err != nil {
			return RemoveResult{}, errors.NewPersistenceError("encode", s.paths.Tracks, err)
		}
		writes = append(writes, pendingWrite{path: s.paths.Tracks, data: data})
	}

	if err := s.writeAll(ctx, writes); err != nil {
		return RemoveResult{}, err
	}

	s.log.Info().
		Int("artist_id", artist.ID).
		Str("artist", artist.Name).
		Int("albums_removed", result.AlbumsRemoved).
		Int("tracks_removed", result.TracksRemoved).
		Msg("Artist removed")
	s.reindex(ctx)
	return result, nil
}

// UpdateArtistRoyalty sets the royalty percentage of the artist matching
// name.
func (s *Store) UpdateArtistRoyalty(ctx context.Context, name string, pct float64) (model.Artist, error) {
	if err := validate.RoyaltyPercentage(pct); err != nil {
		return model.Artist{}, err
	}

	artists, err := s.LoadArtists(ctx)
	if err != nil {
		return model.Artist{}, err
	}
	artist, ok := FindArtist(artists, name)
	if !ok {
		return model.Artist{}, errors.NewNotFoundError("artist", name)
	}

	if err := s.snapshot(ctx, UpdateRoyaltyAction(artist.Name, pct)); err != nil {
		return model.Artist{}, err
	}

	previous := artist.RoyaltyPercentage
	artist.RoyaltyPercentage = pct
	artists[artist.ID] = artist

	data, err := encodeArtists(artists)
	if err != nil {
		return model.Artist{}, errors.NewPersistenceError("encode", s.paths.Artists, err)
	}
	if err := s.write(ctx, s.paths.Artists, data); err != nil {
		return model.Artist{}, err
	}

	s.log.Info().
		Str("artist", artist.Name).
		Float64("previous", previous).
		Float64("royalty_percentage", pct).
		Msg("Royalty updated")
	s.reindex(ctx)
	return artist, nil
}

// ReplaceTables overwrites the artists and albums tables with derived
// content, typically produced by the ingestion pipeline.
func (s *Store) ReplaceTables(ctx context.Context, artists map[int]model.Artist, albums map[int]model.Album) error {
	if len(artists) == 0 || len(albums) == 0 {
		s.log.Warn().Int("artists", len(artists)).Int("albums", len(albums)).
			Msg("Derived tables are empty, leaving files untouched")
		return nil
	}
	for _, id := range sortedIDs(artists) {
		if err := validate.Artist(artists[id]); err != nil {
			return fmt.Errorf("artist %d: %w", id, err)
		}
	}
	for _, id := range sortedIDs(albums) {
		if err := validate.Album(albums[id]); err != nil {
			return fmt.Errorf("album %d: %w", id, err)
		}
	}

	if err := s.snapshot(ctx, ActionRebuild); err != nil {
		return err
	}

	artistData, err := encodeArtists(artists)
	if err != nil {
		return errors.NewPersistenceError("encode", s.paths.Artists, err)
	}
	albumData, err := encodeAlbums(albums)
	if err != nil {
		return errors.NewPersistenceError("encode", s.paths.Albums, err)
	}
	if err := s.writeAll(ctx, []pendingWrite{
		{path: s.paths.Artists, data: artistData},
		{path: s.paths.Albums, data: albumData},
	}); err != nil {
		return err
	}

	s.log.Info().Int("artists", len(artists)).Int("albums", len(albums)).Msg("Catalog tables replaced")
	s.reindex(ctx)
	return nil
}

// Reindex rebuilds the index from the tables on disk.
func (s *Store) Reindex(ctx context.Context) error {
	if s.indexer == nil {
		return nil
	}
	c, err := s.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	return s.indexer.Rebuild(ctx, c)
}

// reindex runs after a committed write. The write already succeeded, so a
// failure is reported but not returned.
func (s *Store) reindex(ctx context.Context) {
	if err := s.Reindex(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Index rebuild failed")
	}
}

func (s *Store) snapshot(ctx context.Context, action string) error {
	if s.snapshots == nil {
		return nil
	}
	path, err := s.snapshots.SaveSnapshot(ctx, action)
	if err != nil {
		if !errors.Is(err, errors.ErrSnapshot) {
			err = &errors.SnapshotError{Path: path, Err: err}
		}
		s.log.Error().Err(err).Str("action", action).Msg("Snapshot failed, mutation aborted")
		return err
	}
	return nil
}

func nextID[V any](m map[int]V) int {
	highest := 0
	for id := range m {
		if id > highest {
			highest = id
		}
	}
	return highest + 1
}
