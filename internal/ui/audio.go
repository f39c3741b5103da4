package ui

import (
	"math"
	"sync"
	"time"

	"github.com/Garsondee/Kickabout/internal/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

const sampleRate = beep.SampleRate(44100)

// tone is a short sine blip.
type tone struct {
	freq float64
	dur  time.Duration
	vol  float64 // linear, 0..1
}

// cue returns the blip for an event kind, if it has one.
func cue(k game.EventKind) (tone, bool) {
	switch k {
	case game.EventKick:
		return tone{freq: 330, dur: 70 * time.Millisecond, vol: 0.5}, true
	case game.EventTackle:
		return tone{freq: 140, dur: 90 * time.Millisecond, vol: 0.4}, true
	case game.EventPostHit:
		return tone{freq: 880, dur: 120 * time.Millisecond, vol: 0.5}, true
	case game.EventCatch, game.EventParry:
		return tone{freq: 220, dur: 80 * time.Millisecond, vol: 0.4}, true
	case game.EventWallBounce:
		return tone{freq: 180, dur: 30 * time.Millisecond, vol: 0.15}, true
	case game.EventGoal:
		return tone{freq: 660, dur: 400 * time.Millisecond, vol: 0.6}, true
	case game.EventPhase:
		return tone{freq: 520, dur: 200 * time.Millisecond, vol: 0.35}, true
	default:
		return tone{}, false
	}
}

// stream renders a tone at rate.
func (t tone) stream(rate beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, t.freq)
	if err != nil {
		return nil, err
	}
	s := beep.Take(rate.N(t.dur), sine)
	if t.vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(t.vol)}, nil
}

// Audio plays event blips through a shared mixer.
type Audio struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	log         zerolog.Logger
}

// NewAudio returns an uninitialised player.
func NewAudio(log zerolog.Logger) *Audio {
	return &Audio{
		mixer: &beep.Mixer{},
		log:   log,
	}
}

// Init opens the speaker. Without a device the game runs silent.
func (a *Audio) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(a.mixer)
	a.initialized = true
	return nil
}

// ToggleMute flips muting and returns the new state.
func (a *Audio) ToggleMute() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.muted = !a.muted
	return a.muted
}

// Play queues the blip for e.
func (a *Audio) Play(e game.Event) {
	t, ok := cue(e.Kind)
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized || a.muted {
		return
	}
	s, err := t.stream(sampleRate)
	if err != nil {
		a.log.Debug().Err(err).Str("event", e.Kind.String()).Msg("tone")
		return
	}
	speaker.Lock()
	a.mixer.Add(s)
	speaker.Unlock()
}

// Close stops playback.
func (a *Audio) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	a.initialized = false
}
