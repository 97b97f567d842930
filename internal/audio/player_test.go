//go:build unix

package audio

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/tocadiscos/internal/errors"
	"github.com/handiism/tocadiscos/internal/logging"
)

// sleeper stands in for an audio player: it ignores the file argument and
// runs until killed.
func newSleeper(t *testing.T) *ProcessPlayer {
	t.Helper()
	return NewProcessPlayer("sh", []string{"-c", "exec sleep 30", "player"}, logging.Nop())
}

func TestProcessPlayer_Lifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "000", "001.mp3")
	writeAudioFile(t, path)

	p := newSleeper(t)
	assert.ErrorIs(t, p.Play(), ErrNothingLoaded)
	assert.ErrorIs(t, p.Pause(), ErrNotPlaying)

	require.NoError(t, p.Load(path))
	require.NoError(t, p.Play())
	assert.True(t, p.IsPlaying())

	require.NoError(t, p.Pause())
	assert.False(t, p.IsPlaying())
	require.NoError(t, p.Pause(), "pausing twice is a no-op")

	require.NoError(t, p.Resume())
	assert.True(t, p.IsPlaying())

	require.NoError(t, p.Stop())
	assert.False(t, p.IsPlaying())
	require.NoError(t, p.Stop(), "stopping an idle player is a no-op")
}

func TestProcessPlayer_StopWhilePaused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mp3")
	writeAudioFile(t, path)

	p := newSleeper(t)
	require.NoError(t, p.Load(path))
	require.NoError(t, p.Play())
	require.NoError(t, p.Pause())

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return for a paused process")
	}
	assert.False(t, p.IsPlaying())
}

func TestProcessPlayer_ProcessExits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mp3")
	writeAudioFile(t, path)

	p := NewProcessPlayer("true", nil, logging.Nop())
	require.NoError(t, p.Load(path))
	require.NoError(t, p.Play())

	assert.Eventually(t, func() bool { return !p.IsPlaying() }, 5*time.Second, 10*time.Millisecond)
}

func TestProcessPlayer_LoadMissing(t *testing.T) {
	p := newSleeper(t)
	err := p.Load(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
