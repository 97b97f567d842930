package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/tocadiscos/internal/errors"
)

// run executes one command line against dir and returns its output.
func run(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand(strings.NewReader(stdin))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{
		"--config", filepath.Join(dir, "missing.json"),
		"--data-dir", dir,
		"--log-level", "error",
	}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestArtistLifecycle(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "", "artist", "add", "Madonna", "--nationality", "US", "--royalty", "12.5")
	require.NoError(t, err)
	assert.Contains(t, out, `Added artist "Madonna" with id 1`)

	_, err = run(t, dir, "", "artist", "add", "MADONNA")
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))

	out, err = run(t, dir, "", "artist", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Madonna")
	assert.Contains(t, out, "restricted")

	out, err = run(t, dir, "n\n", "artist", "remove", "madonna")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing removed")

	out, err = run(t, dir, "y\n", "artist", "remove", "madonna")
	require.NoError(t, err)
	assert.Contains(t, out, `Removed "Madonna"`)

	out, err = run(t, dir, "", "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Added artist 'Madonna'")
	assert.Contains(t, out, "Removed artist 'Madonna'")

	out, err = run(t, dir, "", "--yes", "history", "undo")
	require.NoError(t, err)
	assert.Contains(t, out, "Undid")

	out, err = run(t, dir, "", "search", "madonna", "--type", "artist")
	require.NoError(t, err)
	assert.Contains(t, out, "Madonna")
}

func TestReportRequiresAdminForRoyalties(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "", "user", "add", "admin", "admin123", "--admin")
	require.NoError(t, err)
	_, err = run(t, dir, "", "artist", "add", "Madonna", "--royalty", "50")
	require.NoError(t, err)

	out, err := run(t, dir, "", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "restricted")
	assert.Contains(t, out, "TOTAL")

	out, err = run(t, dir, "", "--user", "admin", "--password", "admin123", "report", "--sort", "revenue")
	require.NoError(t, err)
	assert.NotContains(t, out, "restricted")
	assert.Contains(t, out, "50.00%")

	_, err = run(t, dir, "", "--user", "admin", "--password", "nope", "report")
	assert.Error(t, err)

	_, err = run(t, dir, "", "report", "--sort", "date")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}
