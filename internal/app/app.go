package app

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/handiism/tocadiscos/internal/audio"
	"github.com/handiism/tocadiscos/internal/auth"
	"github.com/handiism/tocadiscos/internal/catalog"
	"github.com/handiism/tocadiscos/internal/config"
	"github.com/handiism/tocadiscos/internal/history"
	"github.com/handiism/tocadiscos/internal/logging"
	"github.com/handiism/tocadiscos/internal/report"
	"github.com/handiism/tocadiscos/internal/search"
)

// App holds the wired collaborators.
type App struct {
	Settings *config.Settings
	Paths    config.Paths
	Log      *zerolog.Logger

	Store   *catalog.Store
	History *history.Manager
	Index   *search.Index
	Session *auth.Session
	Reports *report.Aggregator

	Locator  *audio.Locator
	Player   audio.Player
	Tagger   *audio.Tagger
	Playlist *audio.PlaylistCreator
}

type options struct {
	log      *zerolog.Logger
	memIndex bool
	player   audio.Player
	history  []history.Option
}

// Option configures New.
type Option func(*options)

// WithLogger replaces the logger built from the settings.
func WithLogger(log *zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithInMemoryIndex keeps the search index in memory instead of on disk.
func WithInMemoryIndex() Option {
	return func(o *options) {
		o.memIndex = true
	}
}

// WithPlayer replaces the external process player.
func WithPlayer(p audio.Player) Option {
	return func(o *options) {
		o.player = p
	}
}

// WithHistoryOptions passes extra options to the history manager.
func WithHistoryOptions(opts ...history.Option) Option {
	return func(o *options) {
		o.history = append(o.history, opts...)
	}
}

// New wires every collaborator from settings. Close releases the index and
// stops playback.
func New(settings *config.Settings, opts ...Option) (*App, error) {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	log := o.log
	if log == nil {
		l := logging.NewFromConfig(logging.Config{
			Level:   settings.LogLevel,
			Format:  settings.LogFormat,
			NoColor: os.Getenv("NO_COLOR") != "",
		})
		logging.SetDefault(l)
		log = logging.Default()
	}

	paths := settings.ToPaths()

	indexPath := paths.Index
	if o.memIndex {
		indexPath = ""
	}
	idx, err := search.Open(indexPath, log)
	if err != nil {
		return nil, err
	}

	tables := catalog.Paths{Artists: paths.Artists, Albums: paths.Albums, Tracks: paths.Tracks}

	// The history manager reindexes through the store, and the store
	// snapshots through the manager.
	var store *catalog.Store
	histOpts := append([]history.Option{
		history.WithLogger(log),
		history.WithReindexer(history.ReindexFunc(func(ctx context.Context) error {
			return store.Reindex(ctx)
		})),
	}, o.history...)
	mgr := history.New(paths.History, tables.Files(), histOpts...)
	store = catalog.New(tables,
		catalog.WithLogger(log),
		catalog.WithSnapshotter(mgr),
		catalog.WithIndexer(idx),
	)

	session := auth.NewSession(paths.Users)

	player := o.player
	if player == nil {
		player = audio.NewProcessPlayer(settings.PlayerCommand, settings.PlayerArgs, log)
	}
	tagCfg := audio.DefaultTagConfig()
	tagCfg.ModifyTags = settings.ModifyTags

	return &App{
		Settings: settings,
		Paths:    paths,
		Log:      log,
		Store:    store,
		History:  mgr,
		Index:    idx,
		Session:  session,
		Reports:  report.NewAggregator(store, session),
		Locator:  audio.NewLocator(paths.Songs),
		Player:   player,
		Tagger:   audio.NewTagger(tagCfg),
		Playlist: audio.NewPlaylistCreator(settings.ToPlaylistFormat(), settings.M3UExtended),
	}, nil
}

// Close stops playback and closes the search index.
func (a *App) Close() error {
	if a.Player != nil {
		a.Player.Stop()
	}
	return a.Index.Close()
}
