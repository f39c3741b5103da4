package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/Kickabout/internal/game"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644))
	return dir
}

func TestLoad_EmptyFileGivesReference(t *testing.T) {
	t.Cleanup(viper.Reset)

	s, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	ref := game.DefaultSettings()
	assert.InDelta(t, ref.FieldWidth, s.FieldWidth, 1e-9)
	assert.InDelta(t, ref.FieldHeight, s.FieldHeight, 1e-9)
	assert.InDelta(t, ref.Ball.Radius, s.Ball.Radius, 1e-9)
	assert.InDelta(t, ref.Player.MaxSpeed, s.Player.MaxSpeed, 1e-9)
	assert.InDelta(t, ref.Kick.SpeedMin, s.Kick.SpeedMin, 1e-9)
	assert.InDelta(t, ref.Keepers.ClearSpeed, s.Keepers.ClearSpeed, 1e-9)
	assert.InDelta(t, ref.Tackle.InterceptSlack, s.Tackle.InterceptSlack, 1e-9)
	assert.Equal(t, ref.Match, s.Match)
	assert.Equal(t, "info", LogLevel())
}

func TestLoad_ConvertsMetres(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"world": { "pixels_per_meter": 20, "pitch_m": [40, 20] },
		"player": { "vmax": 7, "r_m": 0.5 },
		"kick": { "speed_min": 10, "speed_max": 20 },
		"match": { "halves": 1, "half_seconds": 90 },
		"wind": { "enabled": true, "seed": 9 }
	}`)
	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 20.0, s.PixelsPerMeter)
	assert.Equal(t, 800.0, s.FieldWidth)
	assert.Equal(t, 400.0, s.FieldHeight)
	assert.Equal(t, 140.0, s.Player.MaxSpeed)
	assert.Equal(t, 10.0, s.Player.Radius)
	assert.Equal(t, 10.0, s.Keeper.Radius, "keeper shares the player body")
	assert.Equal(t, 200.0, s.Kick.SpeedMin)
	assert.Equal(t, 400.0, s.Kick.SpeedMax)
	assert.Equal(t, 1, s.Match.Halves)
	assert.Equal(t, 90.0, s.Match.HalfSeconds)
	assert.True(t, s.Wind.Enabled)
	assert.Equal(t, int64(9), s.Wind.Seed)
	assert.Equal(t, "debug", LogLevel())
}

func TestLoad_ScaleKeepsMetricTuning(t *testing.T) {
	t.Cleanup(viper.Reset)

	s, err := Load(writeConfig(t, `{ "world": { "pixels_per_meter": 80 } }`))
	require.NoError(t, err)

	ref := game.DefaultSettings()
	ratio := func(px float64) float64 { return px / s.PixelsPerMeter }
	refRatio := func(px float64) float64 { return px / ref.PixelsPerMeter }

	cases := []struct {
		name     string
		got, ref float64
	}{
		{"field width", s.FieldWidth, ref.FieldWidth},
		{"post radius", s.PostRadius, ref.PostRadius},
		{"player max speed", s.Player.MaxSpeed, ref.Player.MaxSpeed},
		{"kick reach margin", s.Kick.ReachMargin, ref.Kick.ReachMargin},
		{"field capture margin", s.Possession.FieldMargin, ref.Possession.FieldMargin},
		{"field capture ceiling", s.Possession.FieldMaxSpeed, ref.Possession.FieldMaxSpeed},
		{"keeper capture ceiling", s.Possession.KeeperMaxSpeed, ref.Possession.KeeperMaxSpeed},
		{"dribble max speed", s.Dribble.MaxSpeed, ref.Dribble.MaxSpeed},
		{"dribble lead", s.Dribble.ExtraLead, ref.Dribble.ExtraLead},
		{"dribble lose distance", s.Dribble.LoseDistance, ref.Dribble.LoseDistance},
		{"keeper reach", s.Keepers.ReachMargin, ref.Keepers.ReachMargin},
		{"keeper shadow", s.Keepers.ShadowMargin, ref.Keepers.ShadowMargin},
		{"keeper parry floor", s.Keepers.ParryMinSpeed, ref.Keepers.ParryMinSpeed},
		{"keeper edge margin", s.Keepers.EdgeMarginY, ref.Keepers.EdgeMarginY},
		{"wind base max", s.Wind.BaseMax, ref.Wind.BaseMax},
		{"wind gust", s.Wind.GustPower, ref.Wind.GustPower},
	}
	for _, c := range cases {
		assert.InDelta(t, refRatio(c.ref), ratio(c.got), 1e-9, c.name)
	}

	assert.Equal(t, 80.0, s.PixelsPerMeter)
	assert.Equal(t, ref.Ball.Mass, s.Ball.Mass)
	assert.Equal(t, ref.Dribble.SmoothTimeMove, s.Dribble.SmoothTimeMove)
	assert.Equal(t, ref.Keepers.MaxHold, s.Keepers.MaxHold)
	assert.Equal(t, ref.Possession.ConeCos, s.Possession.ConeCos)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"ball": { "m": 0, "e_wall": 1.5 },
		"kick": { "speed_min": 10, "speed_max": 5 }
	}`)
	_, err := Load(dir)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "ball mass")
	assert.Contains(t, msg, "ball wall elasticity")
	assert.Contains(t, msg, "kick max speed")
}

func TestLoad_BadPitch(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := Load(writeConfig(t, `{ "world": { "pitch_m": [32] } }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pitch_m")
}

func TestLoad_BadScale(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := Load(writeConfig(t, `{ "world": { "pixels_per_meter": 0 } }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pixels_per_meter")
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
