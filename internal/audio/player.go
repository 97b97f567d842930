package audio

import (
	stderrors "errors"
	"os"
	"os/exec"
	"sync"

	"github.com/rs/zerolog"

	"github.com/handiism/tocadiscos/internal/errors"
	"github.com/handiism/tocadiscos/internal/logging"
)

// Player controls playback of one audio file at a time.
type Player interface {
	Load(path string) error
	Play() error
	Pause() error
	Resume() error
	Stop() error
	IsPlaying() bool
}

var (
	// ErrNothingLoaded is returned by Play before Load.
	ErrNothingLoaded = stderrors.New("no audio file loaded")

	// ErrNotPlaying is returned by Pause and Resume when idle.
	ErrNotPlaying = stderrors.New("nothing is playing")

	// ErrPauseUnsupported is returned by Pause and Resume on platforms
	// without job-control signals.
	ErrPauseUnsupported = stderrors.New("pause is not supported on this platform")
)

// ProcessPlayer plays audio by running an external player program with the
// file path as its last argument. Pause and resume suspend and continue the
// process.
type ProcessPlayer struct {
	command string
	args    []string
	log     *zerolog.Logger

	mu     sync.Mutex
	path   string
	cmd    *exec.Cmd
	done   chan struct{}
	paused bool
}

// NewProcessPlayer creates a player that runs command args... <path>.
func NewProcessPlayer(command string, args []string, log *zerolog.Logger) *ProcessPlayer {
	if log == nil {
		log = logging.Default()
	}
	return &ProcessPlayer{command: command, args: args, log: log}
}

// Load selects the file to play, stopping any current playback.
func (p *ProcessPlayer) Load(path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.NewNotFoundError("audio file", path)
	}
	if err := p.Stop(); err != nil {
		return err
	}

	p.mu.Lock()
	p.path = path
	p.mu.Unlock()
	return nil
}

// Play starts the loaded file from the beginning.
func (p *ProcessPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.path == "" {
		return ErrNothingLoaded
	}
	if p.running() {
		p.stopLocked()
	}

	args := append(append([]string{}, p.args...), p.path)
	cmd := exec.Command(p.command, args...)
	if err := cmd.Start(); err != nil {
		return err
	}

	done := make(chan struct{})
	p.cmd, p.done, p.paused = cmd, done, false
	path := p.path
	go func() {
		err := cmd.Wait()
		p.log.Debug().Err(err).Str("path", path).Msg("Player process exited")
		close(done)
	}()

	p.log.Info().Str("path", p.path).Msg("Playback started")
	return nil
}

// Pause suspends playback.
func (p *ProcessPlayer) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running() {
		return ErrNotPlaying
	}
	if p.paused {
		return nil
	}
	if err := suspend(p.cmd.Process); err != nil {
		return err
	}
	p.paused = true
	return nil
}

// Resume continues paused playback.
func (p *ProcessPlayer) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running() {
		return ErrNotPlaying
	}
	if !p.paused {
		return nil
	}
	if err := resume(p.cmd.Process); err != nil {
		return err
	}
	p.paused = false
	return nil
}

// Stop ends playback. Stopping an idle player is not an error.
func (p *ProcessPlayer) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	return nil
}

// IsPlaying reports whether audio is playing and not paused.
func (p *ProcessPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.running() && !p.paused
}

func (p *ProcessPlayer) running() bool {
	if p.cmd == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

func (p *ProcessPlayer) stopLocked() {
	if !p.running() {
		p.cmd, p.paused = nil, false
		return
	}
	if p.paused {
		resume(p.cmd.Process)
	}
	p.cmd.Process.Kill()
	<-p.done
	p.cmd, p.paused = nil, false
	p.log.Info().Str("path", p.path).Msg("Playback stopped")
}
