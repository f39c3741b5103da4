package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":  zerolog.TraceLevel,
		"DEBUG":  zerolog.DebugLevel,
		" Warn ": zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
		"":       zerolog.InfoLevel,
		"loud":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestSetup_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Setup("warn", &buf)

	log.Info().Msg("quiet")
	assert.Empty(t, buf.String())

	log.Warn().Str("phase", "goal").Msg("loud")
	assert.Contains(t, buf.String(), "loud")
	assert.Contains(t, buf.String(), "phase=")
}

func TestSetup_TeeWritesPlainCopy(t *testing.T) {
	var console, file bytes.Buffer
	log := Setup("debug", &console, &file, nil)

	log.Debug().Int("tick", 42).Msg("possession")
	assert.Contains(t, console.String(), "possession")
	assert.Contains(t, file.String(), "possession")
	assert.NotContains(t, file.String(), "\x1b[", "file copy must not carry colour codes")
}
