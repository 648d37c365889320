// Package audio plays the game's sound cues through the system speaker.
// Every cue is synthesized, so there are no asset files to ship.
package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/space-battle/internal/config"
)

// ErrDisabled is returned by Start when audio is turned off in the config.
var ErrDisabled = errors.New("audio: disabled by configuration")

// Player mixes sound cues into a single speaker stream.
// It is safe for concurrent use.
type Player struct {
	mu      sync.Mutex
	cfg     config.AudioConfig
	rate    beep.SampleRate
	mixer   *beep.Mixer
	ctrl    *beep.Ctrl
	started bool
	muted   bool
}

// NewPlayer creates a player. No device is opened until Start.
func NewPlayer(cfg config.AudioConfig) *Player {
	mixer := &beep.Mixer{}
	return &Player{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: mixer,
		ctrl:  &beep.Ctrl{Streamer: mixer},
	}
}

// Start opens the speaker. Without a working device the game runs silently.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled {
		return ErrDisabled
	}
	if p.started {
		return nil
	}

	if err := speaker.Init(p.rate, p.rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.ctrl)
	p.started = true
	return nil
}

// Play queues a cue. It reports whether anything was queued.
func (p *Player) Play(cue string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started || p.muted {
		return false
	}
	s := Sound(cue, p.rate, p.cfg.Volume)
	if s == nil {
		return false
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return true
}

// ToggleMute flips the mute switch and returns the new state.
// Muting also silences cues that are already playing.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.started {
		speaker.Lock()
		p.ctrl.Paused = p.muted
		if p.muted {
			p.mixer.Clear()
		}
		speaker.Unlock()
	}
	return p.muted
}

// SetMuted sets the mute switch.
func (p *Player) SetMuted(muted bool) {
	if p.Muted() != muted {
		p.ToggleMute()
	}
}

// Muted reports whether the player is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
}
