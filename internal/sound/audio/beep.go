// Package audio drives the system speaker through gopxl/beep. Only the
// command binaries import it; game code depends on sound.Player.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/rolling-stone/internal/sound"
)

// Beep plays synthesized effects through a mixer on the system speaker.
type Beep struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	logger      *log.Logger
	initialized bool
}

// NewBeep creates the player. Nothing is heard until Start succeeds.
func NewBeep(sampleRate int, volume float64, logger *log.Logger) *Beep {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &Beep{
		rate:   beep.SampleRate(sampleRate),
		volume: volume,
		mixer:  &beep.Mixer{},
		logger: logger.With("component", "sound"),
	}
}

// Start opens the speaker with a 100ms buffer and attaches the mixer.
func (b *Beep) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(b.rate, b.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("sound: init speaker: %w", err)
	}
	speaker.Play(b.mixer)
	b.initialized = true
	b.logger.Debug("speaker started", "rate", int(b.rate))
	return nil
}

// Play queues an effect on the mixer.
func (b *Beep) Play(e sound.Effect) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	s := Synth(e, b.rate, b.volume)
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer and releases the speaker.
func (b *Beep) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	b.initialized = false
}

// New returns a started Beep player, or sound.Silent when sound is disabled or
// the speaker cannot be opened.
func New(enabled bool, sampleRate int, volume float64, logger *log.Logger) (sound.Player, func()) {
	if !enabled {
		return sound.Silent{}, func() {}
	}
	b := NewBeep(sampleRate, volume, logger)
	if err := b.Start(); err != nil {
		b.logger.Warn("sound disabled", "err", err)
		return sound.Silent{}, func() {}
	}
	return b, b.Close
}
