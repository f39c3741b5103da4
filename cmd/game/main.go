package main

import (
	"flag"
	"os"

	"github.com/Garsondee/Kickabout/internal/config"
	"github.com/Garsondee/Kickabout/internal/game"
	"github.com/Garsondee/Kickabout/internal/logging"
	"github.com/Garsondee/Kickabout/internal/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var configDir string
	var logLevel string
	var cpu bool
	var cpuBoth bool
	var wind bool
	var mute bool
	var seed int64

	flag.StringVar(&configDir, "config", ".", "directory holding "+config.FileName)
	flag.StringVar(&logLevel, "log", "", "log level override (TRACE, DEBUG, INFO, WARN, ERROR)")
	flag.BoolVar(&cpu, "cpu", false, "right side is played by the computer")
	flag.BoolVar(&cpuBoth, "cpu-both", false, "both sides are played by the computer")
	flag.BoolVar(&wind, "wind", false, "start with wind enabled")
	flag.BoolVar(&mute, "mute", false, "disable audio")
	flag.Int64Var(&seed, "seed", 1, "autopilot seed")
	flag.Parse()

	// Bootstrap logger until the config has been read.
	log := logging.Setup("INFO", os.Stderr)

	s, err := config.Load(configDir)
	if err != nil {
		log.Warn().Err(err).Str("dir", configDir).Msg("using default settings")
		s = config.Default()
	}
	level := config.LogLevel()
	if logLevel != "" {
		level = logLevel
	}
	log = logging.Setup(level, os.Stderr)
	if !wind {
		wind = s.Wind.Enabled
	}

	g := ui.New(s, log, ui.Options{
		CPU:   [2]bool{game.SideLeft: cpuBoth, game.SideRight: cpu || cpuBoth},
		Seed:  seed,
		Wind:  wind,
		Audio: !mute,
	})
	defer g.Close()

	w, h := g.Size()
	ebiten.SetWindowTitle("Kickabout")
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Error().Err(err).Msg("game loop")
		os.Exit(1)
	}
}
