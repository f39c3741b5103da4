// Package config loads the static match configuration from
// kickabout.cfg.json. Lengths are given in metres and speeds in m/s; Load
// converts them to the pixel units of the simulation.
package config

import (
	"fmt"

	"github.com/Garsondee/Kickabout/internal/game"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// FileName is the config file searched for in the config directory.
const FileName = "kickabout.cfg.json"

// Default returns the reference tuning, used when no config file exists.
func Default() game.Settings {
	return game.DefaultSettings()
}

// setDefaults registers every key with its reference value in config units.
func setDefaults() {
	ref := game.DefaultSettings()
	ppm := ref.PixelsPerMeter
	m := func(px float64) float64 { return px / ppm }

	viper.SetDefault("logLevel", "info")

	viper.SetDefault("world.pixels_per_meter", ppm)
	viper.SetDefault("world.pitch_m", []interface{}{m(ref.FieldWidth), m(ref.FieldHeight)})
	viper.SetDefault("world.goal_half_m", m(ref.GoalHalfHeight))
	viper.SetDefault("world.post_r_m", m(ref.PostRadius))

	viper.SetDefault("ball.r_m", m(ref.Ball.Radius))
	viper.SetDefault("ball.m", ref.Ball.Mass)
	viper.SetDefault("ball.drag", ref.Ball.Drag)
	viper.SetDefault("ball.e_wall", ref.Ball.WallElasticity)

	viper.SetDefault("player.r_m", m(ref.Player.Radius))
	viper.SetDefault("player.m", ref.Player.Mass)
	viper.SetDefault("player.vmax", m(ref.Player.MaxSpeed))
	viper.SetDefault("player.accel", m(ref.Player.Accel))
	viper.SetDefault("player.drag", ref.Player.Drag)
	viper.SetDefault("player.e_wall", ref.Player.WallElasticity)
	viper.SetDefault("player.turn_rate", ref.Player.TurnRate)

	viper.SetDefault("gk.m", ref.Keeper.Mass)
	viper.SetDefault("gk.vmax", m(ref.Keeper.MaxSpeed))
	viper.SetDefault("gk.accel", m(ref.Keeper.Accel))
	viper.SetDefault("gk.front_offset_m", m(ref.KeeperFrontOffset))

	viper.SetDefault("kick.speed_min", m(ref.Kick.SpeedMin))
	viper.SetDefault("kick.speed_max", m(ref.Kick.SpeedMax))
	viper.SetDefault("kick.run_bonus", ref.Kick.RunBonus)
	viper.SetDefault("kick.cooldown", ref.Kick.Cooldown)
	viper.SetDefault("kick.just_kicked", ref.Kick.JustKicked)
	viper.SetDefault("kick.pickup_cooldown", ref.Kick.PickupCooldown)

	viper.SetDefault("tackle.dash_speed", m(ref.Tackle.DashSpeed))
	viper.SetDefault("tackle.duration", ref.Tackle.Duration)
	viper.SetDefault("tackle.cooldown", ref.Tackle.Cooldown)
	viper.SetDefault("tackle.intercept_slack_m", m(ref.Tackle.InterceptSlack))
	viper.SetDefault("tackle.dislodge_speed", m(ref.Tackle.DislodgeSpeed))

	viper.SetDefault("match.halves", ref.Match.Halves)
	viper.SetDefault("match.half_seconds", ref.Match.HalfSeconds)
	viper.SetDefault("match.goal_freeze", ref.Match.GoalFreeze)
	viper.SetDefault("match.kickoff_lock", ref.Match.KickoffLock)
	viper.SetDefault("match.half_break", ref.Match.HalfBreak)

	viper.SetDefault("keeper.box_depth_ratio", ref.Keepers.BoxDepthRatio)
	viper.SetDefault("keeper.max_hold", ref.Keepers.MaxHold)
	viper.SetDefault("keeper.catch_speed", m(ref.Keepers.CatchSpeed))
	viper.SetDefault("keeper.parry_speed", m(ref.Keepers.ParrySpeed))
	viper.SetDefault("keeper.parry_speed_outside", m(ref.Keepers.ParrySpeedOutside))
	viper.SetDefault("keeper.clear_speed", m(ref.Keepers.ClearSpeed))

	viper.SetDefault("wind.enabled", ref.Wind.Enabled)
	viper.SetDefault("wind.seed", ref.Wind.Seed)
}

// Load reads FileName from configDir over the reference defaults and
// returns validated settings in pixels.
func Load(configDir string) (game.Settings, error) {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return game.Settings{}, fmt.Errorf("error reading config file: %w", err)
	}

	s, err := settingsFromViper()
	if err != nil {
		return game.Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return game.Settings{}, fmt.Errorf("invalid config %s: %w", viper.ConfigFileUsed(), err)
	}
	return s, nil
}

// LogLevel returns the configured log level name.
func LogLevel() string {
	return viper.GetString("logLevel")
}

// settingsFromViper converts the loaded keys into pixel units on top of the
// reference tuning. Tunables without a key keep their reference value in
// metres, rescaled to the loaded pixels_per_meter.
func settingsFromViper() (game.Settings, error) {
	s := game.DefaultSettings()
	ppm := viper.GetFloat64("world.pixels_per_meter")
	if !(ppm > 0) {
		return s, fmt.Errorf("world.pixels_per_meter must be > 0, got %v", ppm)
	}
	s = s.AtScale(ppm)
	px := func(key string) float64 { return viper.GetFloat64(key) * ppm }

	pitch, err := pitchSize()
	if err != nil {
		return s, err
	}
	s.FieldWidth = pitch[0] * ppm
	s.FieldHeight = pitch[1] * ppm
	s.GoalHalfHeight = px("world.goal_half_m")
	s.PostRadius = px("world.post_r_m")

	s.Ball.Radius = px("ball.r_m")
	s.Ball.Mass = viper.GetFloat64("ball.m")
	s.Ball.Drag = viper.GetFloat64("ball.drag")
	s.Ball.WallElasticity = viper.GetFloat64("ball.e_wall")

	s.Player.Radius = px("player.r_m")
	s.Player.Mass = viper.GetFloat64("player.m")
	s.Player.MaxSpeed = px("player.vmax")
	s.Player.Accel = px("player.accel")
	s.Player.Drag = viper.GetFloat64("player.drag")
	s.Player.WallElasticity = viper.GetFloat64("player.e_wall")
	s.Player.TurnRate = viper.GetFloat64("player.turn_rate")

	// Keepers share the field player's body except where gk.* says otherwise.
	s.Keeper.BodySpec = s.Player.BodySpec
	s.Keeper.TurnRate = s.Player.TurnRate
	s.Keeper.Mass = viper.GetFloat64("gk.m")
	s.Keeper.MaxSpeed = px("gk.vmax")
	s.Keeper.Accel = px("gk.accel")
	s.KeeperFrontOffset = px("gk.front_offset_m")

	s.Kick.SpeedMin = px("kick.speed_min")
	s.Kick.SpeedMax = px("kick.speed_max")
	s.Kick.RunBonus = viper.GetFloat64("kick.run_bonus")
	s.Kick.Cooldown = viper.GetFloat64("kick.cooldown")
	s.Kick.JustKicked = viper.GetFloat64("kick.just_kicked")
	s.Kick.PickupCooldown = viper.GetFloat64("kick.pickup_cooldown")

	s.Tackle.DashSpeed = px("tackle.dash_speed")
	s.Tackle.Duration = viper.GetFloat64("tackle.duration")
	s.Tackle.Cooldown = viper.GetFloat64("tackle.cooldown")
	s.Tackle.InterceptSlack = px("tackle.intercept_slack_m")
	s.Tackle.DislodgeSpeed = px("tackle.dislodge_speed")

	s.Match.Halves = viper.GetInt("match.halves")
	s.Match.HalfSeconds = viper.GetFloat64("match.half_seconds")
	s.Match.GoalFreeze = viper.GetFloat64("match.goal_freeze")
	s.Match.KickoffLock = viper.GetFloat64("match.kickoff_lock")
	s.Match.HalfBreak = viper.GetFloat64("match.half_break")

	s.Keepers.BoxDepthRatio = viper.GetFloat64("keeper.box_depth_ratio")
	s.Keepers.MaxHold = viper.GetFloat64("keeper.max_hold")
	s.Keepers.CatchSpeed = px("keeper.catch_speed")
	s.Keepers.ParrySpeed = px("keeper.parry_speed")
	s.Keepers.ParrySpeedOutside = px("keeper.parry_speed_outside")
	s.Keepers.ClearSpeed = px("keeper.clear_speed")

	s.Wind.Enabled = viper.GetBool("wind.enabled")
	s.Wind.Seed = viper.GetInt64("wind.seed")
	return s, nil
}

// pitchSize reads world.pitch_m as a [width, height] pair.
func pitchSize() ([2]float64, error) {
	var out [2]float64
	raw := viper.Get("world.pitch_m")
	vals, err := cast.ToSliceE(raw)
	if err != nil || len(vals) != 2 {
		return out, fmt.Errorf("world.pitch_m must be [width, height], got %v", raw)
	}
	for i, v := range vals {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return out, fmt.Errorf("world.pitch_m[%d]: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}
