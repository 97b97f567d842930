package catalog

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/handiism/tocadiscos/internal/logging"
	"github.com/handiism/tocadiscos/internal/model"
)

// Paths locates the three managed tables.
type Paths struct {
	Artists string
	Albums  string
	Tracks  string
}

// Files returns the paths in a fixed order: artists, albums, tracks.
func (p Paths) Files() []string {
	return []string{p.Artists, p.Albums, p.Tracks}
}

// Snapshotter records a backup of the managed files.
type Snapshotter interface {
	SaveSnapshot(ctx context.Context, action string) (string, error)
}

// Indexer rebuilds a derived view of the catalog, such as a search index.
type Indexer interface {
	Rebuild(ctx context.Context, c model.Catalog) error
}

// Confirmer asks the operator to approve a destructive operation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })

// Store loads, saves and mutates the catalog tables.
type Store struct {
	paths     Paths
	log       *zerolog.Logger
	snapshots Snapshotter
	indexer   Indexer
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zerolog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSnapshotter sets the backup taken before every mutation.
func WithSnapshotter(sn Snapshotter) Option {
	return func(s *Store) {
		s.snapshots = sn
	}
}

// WithIndexer sets the index rebuilt after every mutation.
func WithIndexer(ix Indexer) Option {
	return func(s *Store) {
		s.indexer = ix
	}
}

// New creates a Store over the given table files.
func New(paths Paths, opts ...Option) *Store {
	s := &Store{
		paths: paths,
		log:   logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Paths returns the managed table locations.
func (s *Store) Paths() Paths {
	return s.paths
}
