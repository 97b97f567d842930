package history

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/handiism/tocadiscos/internal/catalog"
	"github.com/handiism/tocadiscos/internal/errors"
	ioutils "github.com/handiism/tocadiscos/internal/io"
	"github.com/handiism/tocadiscos/internal/logging"
)

const (
	// MetaFile holds the snapshot metadata inside each snapshot directory.
	MetaFile = "meta.json"

	// UnknownAction stands in for unreadable metadata.
	UnknownAction = "unknown"

	// TimestampLayout prefixes every snapshot directory name.
	TimestampLayout = "20060102_150405"

	maxActionLen = 64
)

// ErrNoHistory is returned by Undo when no snapshot exists.
var ErrNoHistory = fmt.Errorf("history is empty: %w", errors.ErrNotFound)

var unsafeNameChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// Metadata is the content of meta.json.
type Metadata struct {
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Entry is one snapshot as listed by List.
type Entry struct {
	Name     string
	Path     string
	Metadata Metadata
}

// Reindexer refreshes derived state after live files are restored.
type Reindexer interface {
	Reindex(ctx context.Context) error
}

// ReindexFunc adapts a function to Reindexer.
type ReindexFunc func(ctx context.Context) error

// Reindex calls f.
func (f ReindexFunc) Reindex(ctx context.Context) error {
	return f(ctx)
}

// Manager creates, lists and restores snapshots of a fixed set of files.
type Manager struct {
	root      string
	files     []string
	log       *zerolog.Logger
	now       func() time.Time
	reindexer Reindexer
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zerolog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithReindexer sets the hook run after a successful revert.
func WithReindexer(r Reindexer) Option {
	return func(m *Manager) {
		m.reindexer = r
	}
}

// New creates a Manager that snapshots files into root.
func New(root string, files []string, opts ...Option) *Manager {
	m := &Manager{
		root:  root,
		files: files,
		log:   logging.Default(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Root returns the history directory.
func (m *Manager) Root() string {
	return m.root
}

// SaveSnapshot copies every managed file that exists into a new snapshot
// directory and returns its path.
func (m *Manager) SaveSnapshot(ctx context.Context, action string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ioutils.EnsureDir(m.root); err != nil {
		return "", &errors.SnapshotError{Path: m.root, Err: err}
	}

	ts := m.now()
	dir, err := m.createDir(ts, action)
	if err != nil {
		return "", &errors.SnapshotError{Path: m.root, Err: err}
	}

	for _, src := range m.files {
		if !ioutils.Exists(src) {
			m.log.Debug().Str("path", src).Msg("Managed file absent, not included in snapshot")
			continue
		}
		if err := ioutils.CopyFile(ctx, src, filepath.Join(dir, filepath.Base(src))); err != nil {
			os.RemoveAll(dir)
			return "", &errors.SnapshotError{Path: dir, Err: err}
		}
	}

	meta, err := json.MarshalIndent(Metadata{Action: action, Timestamp: ts}, "", "  ")
	if err != nil {
		os.RemoveAll(dir)
		return "", &errors.SnapshotError{Path: dir, Err: err}
	}
	if err := ioutils.WriteFileAtomic(ctx, filepath.Join(dir, MetaFile), meta); err != nil {
		os.RemoveAll(dir)
		return "", &errors.SnapshotError{Path: dir, Err: err}
	}

	m.log.Info().Str("snapshot", filepath.Base(dir)).Str("action", action).Msg("Snapshot saved")
	return dir, nil
}

// createDir makes a directory name that does not exist yet. Mkdir fails on
// an existing directory, which makes the name check and creation one step.
func (m *Manager) createDir(ts time.Time, action string) (string, error) {
	base := ts.Format(TimestampLayout)
	if slug := sanitizeAction(action); slug != "" {
		base += "_" + slug
	}

	name := base
	for n := 2; ; n++ {
		dir := filepath.Join(m.root, name)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return dir, nil
		}
		if !stderrors.Is(err, os.ErrExist) {
			return "", err
		}
		name = fmt.Sprintf("%s_%d", base, n)
	}
}

// sanitizeAction turns action text into a directory-name fragment.
func sanitizeAction(action string) string {
	slug := ioutils.SanitizeFileName(action)
	slug = unsafeNameChars.ReplaceAllString(slug, "_")
	slug = strings.Trim(slug, "_.")

	if runes := []rune(slug); len(runes) > maxActionLen {
		slug = strings.TrimRight(string(runes[:maxActionLen]), "_.")
	}
	return slug
}

// List returns every snapshot in creation order. A snapshot whose metadata
// is missing or corrupt is listed with UnknownAction and the time encoded in
// its name.
func (m *Manager) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(m.root)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, errors.NewPersistenceError("list", m.root, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		entries = append(entries, m.entry(de.Name()))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := entries[i].Metadata.Timestamp, entries[j].Metadata.Timestamp
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func (m *Manager) entry(name string) Entry {
	e := Entry{Name: name, Path: filepath.Join(m.root, name)}

	data, err := os.ReadFile(filepath.Join(e.Path, MetaFile))
	if err == nil {
		err = json.Unmarshal(data, &e.Metadata)
	}
	if err != nil || e.Metadata.Action == "" {
		m.log.Warn().Err(err).Str("snapshot", name).Msg("Snapshot metadata unreadable")
		e.Metadata = Metadata{Action: UnknownAction, Timestamp: timeFromName(name)}
	}
	return e
}

// timeFromName recovers the creation time from the name prefix, or returns
// the zero time.
func timeFromName(name string) time.Time {
	if len(name) < len(TimestampLayout) {
		return time.Time{}
	}
	ts, err := time.ParseInLocation(TimestampLayout, name[:len(TimestampLayout)], time.Local)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// Latest returns the most recent snapshot by meta.json timestamp. Within one
// second this can differ from the lexicographically greatest name.
func (m *Manager) Latest(ctx context.Context) (Entry, bool, error) {
	entries, err := m.List(ctx)
	if err != nil || len(entries) == 0 {
		return Entry{}, false, err
	}
	return entries[len(entries)-1], true, nil
}

// Revert copies every file present in the named snapshot over the live
// file. Live files missing from the snapshot are left alone. All restored
// files are staged before any is replaced.
func (m *Manager) Revert(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return errors.NewNotFoundError("snapshot", name)
	}

	dir := filepath.Join(m.root, name)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return errors.NewNotFoundError("snapshot", name)
	}

	var staged []ioutils.StagedFile
	for _, live := range m.files {
		src := filepath.Join(dir, filepath.Base(live))
		data, err := os.ReadFile(src)
		if err != nil {
			if stderrors.Is(err, os.ErrNotExist) {
				continue
			}
			ioutils.DiscardStaged(staged)
			return errors.NewPersistenceError("read", src, err)
		}
		f, err := ioutils.StageFile(live, data)
		if err != nil {
			ioutils.DiscardStaged(staged)
			return errors.NewPersistenceError("write", live, err)
		}
		staged = append(staged, f)
	}

	if err := ioutils.CommitStaged(staged); err != nil {
		return errors.NewPersistenceError("restore", dir, err)
	}
	m.log.Info().Str("snapshot", name).Int("files", len(staged)).Msg("Snapshot restored")

	if m.reindexer != nil {
		if err := m.reindexer.Reindex(ctx); err != nil {
			m.log.Warn().Err(err).Msg("Index rebuild after revert failed")
		}
	}
	return nil
}

// Undo reverts to the snapshot returned by Latest once confirm approves it.
// The most recent snapshot is chosen by its recorded timestamp, not by the
// directory name, so two snapshots taken in the same second undo in creation
// order. The returned bool is false when the operator declined.
func (m *Manager) Undo(ctx context.Context, confirm catalog.Confirmer) (Entry, bool, error) {
	latest, ok, err := m.Latest(ctx)
	if err != nil {
		return Entry{}, false, err
	}
	if !ok {
		return Entry{}, false, ErrNoHistory
	}

	prompt := fmt.Sprintf("Revert to %s (%s)?", latest.Name, latest.Metadata.Action)
	if confirm == nil || !confirm.Confirm(ctx, prompt) {
		return latest, false, nil
	}
	if err := m.Revert(ctx, latest.Name); err != nil {
		return latest, false, err
	}
	return latest, true, nil
}
