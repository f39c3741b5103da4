package ui

import (
	"testing"
	"time"

	"github.com/Garsondee/Kickabout/internal/game"
	"github.com/gopxl/beep"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCue_OnlyAudibleEvents(t *testing.T) {
	for _, k := range []game.EventKind{game.EventKick, game.EventGoal, game.EventPostHit, game.EventWallBounce} {
		_, ok := cue(k)
		assert.True(t, ok, "%s should have a cue", k)
	}
	for _, k := range []game.EventKind{game.EventPossession, game.EventKeeperState, game.EventControlSwitch} {
		_, ok := cue(k)
		assert.False(t, ok, "%s should be silent", k)
	}
}

func TestToneStream_LengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	tn := tone{freq: 440, dur: 50 * time.Millisecond, vol: 0.5}
	s, err := tn.stream(rate)
	require.NoError(t, err)

	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			assert.LessOrEqual(t, buf[i][0], 0.5+1e-9)
			assert.GreaterOrEqual(t, buf[i][0], -0.5-1e-9)
		}
		total += n
		if !ok || n == 0 {
			break
		}
	}
	assert.Equal(t, rate.N(tn.dur), total)
}

func TestToneStream_RejectsNyquist(t *testing.T) {
	_, err := tone{freq: 30000, dur: time.Millisecond, vol: 1}.stream(beep.SampleRate(44100))
	assert.Error(t, err)
}

func TestAudio_PlayBeforeInitIsNoop(t *testing.T) {
	a := NewAudio(zerolog.Nop())
	a.Play(game.Event{Kind: game.EventGoal})
	assert.Equal(t, 0, a.mixer.Len())
	assert.True(t, a.ToggleMute())
	a.Close()
}
