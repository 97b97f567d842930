package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/tocadiscos/internal/auth"
	"github.com/handiism/tocadiscos/internal/catalog"
	"github.com/handiism/tocadiscos/internal/config"
	"github.com/handiism/tocadiscos/internal/errors"
	"github.com/handiism/tocadiscos/internal/history"
	"github.com/handiism/tocadiscos/internal/logging"
	"github.com/handiism/tocadiscos/internal/report"
	"github.com/handiism/tocadiscos/internal/search"
)

type fakePlayer struct {
	loaded  string
	playing bool
}

func (p *fakePlayer) Load(path string) error { p.loaded = path; return nil }
func (p *fakePlayer) Play() error            { p.playing = true; return nil }
func (p *fakePlayer) Pause() error           { p.playing = false; return nil }
func (p *fakePlayer) Resume() error          { p.playing = true; return nil }
func (p *fakePlayer) Stop() error            { p.playing = false; return nil }
func (p *fakePlayer) IsPlaying() bool        { return p.playing }

func testSettings(dir string) *config.Settings {
	s := config.DefaultSettings()
	s.DataDir = dir
	s.HistoryDir = filepath.Join(dir, "history")
	s.SongsDir = filepath.Join(dir, "songs")
	s.IndexPath = ""
	return s
}

func newTestApp(t *testing.T, opts ...Option) (*App, *fakePlayer) {
	t.Helper()
	player := &fakePlayer{}
	opts = append([]Option{WithLogger(logging.Nop()), WithInMemoryIndex(), WithPlayer(player)}, opts...)
	a, err := New(testSettings(t.TempDir()), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, player
}

const rawTracks = `track_id,album_id,album_title,artist_id,artist_name,track_date_recorded,track_genres,track_interest,track_number,track_title,artist_nacionality,track_price
2,1,AWOL - A Way Of Life,1,AWOL,2008-11-26 01:44:00,Hip-Hop,4656,3,Food,US,0.99
3,1,AWOL - A Way Of Life,1,AWOL,2008-11-26 01:44:00,Hip-Hop,1470,4,Electric Ave,US,0.99
10,6,Constant Hitmaker,6,Kurt Vile,2008-11-26 01:45:00,Rock,178,1,Freeway,US,1.49
11,6,Constant Hitmaker,6,Kurt Vile,,Rock,10,2,Broken,US,1.49
`

func TestAddRemoveArtistWithHistory(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	madonna, err := a.Store.AddArtist(ctx, "Madonna", "US", 12.5)
	require.NoError(t, err)
	assert.Equal(t, 1, madonna.ID)

	_, err = a.Store.AddArtist(ctx, "madonna", "US", 10)
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))

	hits, err := a.Search(ctx, "madonna", search.TypeArtist, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].Document.EntityID)

	res, err := a.Store.RemoveArtist(ctx, "Madonna", catalog.AlwaysConfirm)
	require.NoError(t, err)
	assert.True(t, res.Removed)

	artists, err := a.Store.LoadArtists(ctx)
	require.NoError(t, err)
	assert.Empty(t, artists)
	data, err := os.ReadFile(a.Paths.Artists)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"), "header only")

	hits, err = a.Index.Query(ctx, "madonna", search.TypeArtist, 10)
	require.NoError(t, err)
	assert.Empty(t, hits, "index rebuilt after removal")

	entries, err := a.History.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, catalog.AddArtistAction("Madonna"), entries[0].Metadata.Action)
	assert.Equal(t, catalog.RemoveArtistAction("Madonna"), entries[1].Metadata.Action)
}

func TestUndoRestoresAndReindexes(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	_, _, err := a.History.Undo(ctx, catalog.AlwaysConfirm)
	assert.ErrorIs(t, err, history.ErrNoHistory)

	_, err = a.Store.AddArtist(ctx, "Madonna", "US", 12.5)
	require.NoError(t, err)
	_, err = a.Store.RemoveArtist(ctx, "Madonna", catalog.AlwaysConfirm)
	require.NoError(t, err)

	entry, reverted, err := a.History.Undo(ctx, catalog.AlwaysConfirm)
	require.NoError(t, err)
	require.True(t, reverted)
	assert.Equal(t, catalog.RemoveArtistAction("Madonna"), entry.Metadata.Action)

	artists, err := a.Store.LoadArtists(ctx)
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, "Madonna", artists[1].Name)

	hits, err := a.Index.Query(ctx, "madonna", search.TypeArtist, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestIngestAndReport(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(a.Paths.Tracks), 0755))
	require.NoError(t, os.WriteFile(a.Paths.Tracks, []byte(rawTracks), 0644))

	res, err := a.Ingest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Used)
	assert.Equal(t, 1, res.Skipped)

	c, err := a.Store.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, c.Artists, 2)
	assert.Len(t, c.Albums, 2)
	assert.Equal(t, 4656+1470, c.Albums[1].UnitsSold)

	entries, err := a.History.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, catalog.ActionRebuild, entries[0].Metadata.Action)

	rep, err := a.Reports.ComputeFullReport(ctx, report.SortByRevenue)
	require.NoError(t, err)
	assert.False(t, rep.Authorized)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "AWOL", rep.Rows[0].Artist)

	require.NoError(t, auth.AddUser(ctx, a.Paths.Users, "admin", "admin123", true))
	require.NoError(t, a.Session.Login("admin", "admin123"))
	rep, err = a.Reports.ComputeFullReport(ctx, report.SortByName)
	require.NoError(t, err)
	assert.True(t, rep.Authorized)
}

func TestAudioOperations(t *testing.T) {
	ctx := context.Background()
	a, player := newTestApp(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(a.Paths.Tracks), 0755))
	require.NoError(t, os.WriteFile(a.Paths.Tracks, []byte(rawTracks), 0644))
	_, err := a.Ingest(ctx)
	require.NoError(t, err)

	food := a.Locator.Path("2")
	require.NoError(t, os.MkdirAll(filepath.Dir(food), 0755))
	require.NoError(t, os.WriteFile(food, nil, 0644))

	track, err := a.PlayTrack(ctx, "FOOD", "")
	require.NoError(t, err)
	assert.Equal(t, "2", track.TrackID)
	assert.Equal(t, food, player.loaded)
	assert.True(t, player.IsPlaying())

	_, err = a.PlayTrack(ctx, "Electric Ave", "")
	assert.True(t, errors.Is(err, errors.ErrNotFound), "no audio file")

	// An unreadable cover is skipped while tagging.
	cover := filepath.Join(a.Paths.Songs, "covers", "1.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(cover), 0755))
	require.NoError(t, os.WriteFile(cover, []byte("not a jpeg"), 0644))

	tagged, err := a.TagAlbum(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, tagged)

	path, err := a.WritePlaylist(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, ".m3u", filepath.Ext(path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "000/002.mp3")

	_, err = a.WritePlaylist(ctx, 6)
	assert.True(t, errors.Is(err, errors.ErrNotFound), "album without audio files")

	_, err = a.TagAlbum(ctx, 99)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
