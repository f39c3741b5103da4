// Package ui is the windowed front-end: it maps the keyboard to intents,
// steps the match at a fixed rate and draws the result.
package ui

import (
	"image/color"

	"github.com/Garsondee/Kickabout/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
)

// borderWidth is the pixel gap between the window edge and the pitch.
const borderWidth = 24

// Options configure the front-end.
type Options struct {
	CPU   [2]bool // sides driven by the autopilot
	Seed  int64   // autopilot seed
	Wind  bool
	Audio bool
}

// Game implements ebiten.Game around one match.
type Game struct {
	settings game.Settings
	opts     Options
	log      zerolog.Logger

	match    *game.Match
	reporter *game.Reporter
	cpu      [2]*game.Autopilot
	bindings [2]Bindings
	edges    *keyEdges
	pending  [2]game.Intent

	width  int
	height int
	fieldW int
	fieldH int
	offX   int
	offY   int

	feed      *Feed
	inspector Inspector
	audio     *Audio

	showHUD      bool
	showOverlays bool

	simSpeed  float64 // multiplier: 0=paused
	tickAccum float64 // fractional tick accumulator for sub-1x speeds

	worldBuf *ebiten.Image
	hudBuf   *ebiten.Image
}

// New builds the front-end for settings s.
func New(s game.Settings, log zerolog.Logger, opts Options) *Game {
	g := &Game{
		settings:  s,
		opts:      opts,
		log:       log,
		bindings:  DefaultBindings(),
		edges:     newKeyEdges(),
		fieldW:    int(s.FieldWidth),
		fieldH:    int(s.FieldHeight),
		offX:      borderWidth,
		offY:      borderWidth,
		feed:      NewFeed(),
		inspector: newInspector(),
		showHUD:   true,
		simSpeed:  1,
	}
	g.width = borderWidth + g.fieldW + borderWidth + feedPanelWidth
	g.height = borderWidth + g.fieldH + borderWidth

	if opts.Audio {
		g.audio = NewAudio(log)
		if err := g.audio.Init(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable, running silent")
			g.audio = nil
		}
	}
	g.restart()
	return g
}

// restart begins a fresh match with the same settings.
func (g *Game) restart() {
	g.match = game.NewMatch(g.settings,
		game.WithLogger(g.log),
		game.WithWind(g.opts.Wind),
	)
	g.reporter = game.NewReporter()
	for side, on := range g.opts.CPU {
		g.cpu[side] = nil
		if on {
			g.cpu[side] = game.NewAutopilot(game.Side(side), g.opts.Seed+int64(side))
		}
	}
	g.pending = [2]game.Intent{}
	g.tickAccum = 0
	g.log.Info().Bool("wind", g.opts.Wind).Bool("cpu_left", g.opts.CPU[0]).Bool("cpu_right", g.opts.CPU[1]).Msg("match start")
}

// Match exposes the running match.
func (g *Game) Match() *game.Match { return g.match }

// Update handles input and advances the match at the chosen sim speed.
func (g *Game) Update() error {
	g.handleInput()

	if g.simSpeed <= 0 {
		return nil
	}
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.simTick()
	}
	return nil
}

// simTick runs one fixed step and dispatches its events.
func (g *Game) simTick() {
	dt := 1 / float64(ebiten.TPS())
	for side := range g.pending {
		in := g.pending[side]
		if ap := g.cpu[side]; ap != nil {
			in = ap.Intent(g.match)
		}
		g.match.SetIntent(game.Side(side), in)
		g.pending[side] = game.Intent{Move: g.pending[side].Move}
	}
	g.match.Step(dt)
	g.reporter.Observe(g.match, dt)

	for _, e := range g.match.Events() {
		g.feed.AddEvent(e)
		if g.audio != nil {
			g.audio.Play(e)
		}
	}
}

func (g *Game) handleInput() {
	down := ebiten.IsKeyPressed
	for side := range g.bindings {
		in := g.bindings[side].intent(down, g.edges)
		g.pending[side] = merge(g.pending[side], in)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.showOverlays = !g.showOverlays
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.opts.Wind = !g.match.Wind().Enabled
		g.match.SetWind(g.opts.Wind)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copyReport()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.audio != nil {
		muted := g.audio.ToggleMute()
		g.log.Debug().Bool("muted", muted).Msg("audio")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		g.simSpeed = slower(g.simSpeed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.simSpeed = faster(g.simSpeed)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		g.handleInspectorClick(mx, my)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.inspector.rawView = !g.inspector.rawView
	}
}

// Draw renders the pitch into worldBuf, blits it inside the border and
// layers the panels on top.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	if g.worldBuf == nil {
		g.worldBuf = ebiten.NewImage(g.fieldW, g.fieldH)
	}
	g.worldBuf.Clear()
	g.drawPitch(g.worldBuf)
	if g.showOverlays {
		g.drawOverlays(g.worldBuf)
	}
	g.drawBodies(g.worldBuf)

	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.worldBuf, &blit)

	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.fieldW), float32(g.fieldH)
	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)
	vector.StrokeRect(screen, ox-3, oy-3, gw+6, gh+6, 1.0, color.RGBA{R: 40, G: 65, B: 40, A: 100}, false)

	g.feed.Draw(screen, g.offX+g.fieldW+g.offX, g.height)
	g.drawScoreboard(screen)
	if g.showHUD {
		g.drawLegend(screen)
	}
	g.drawInspector(screen)
}

// Layout keeps a fixed logical screen.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Size returns the logical screen size for the window.
func (g *Game) Size() (int, int) {
	return g.width, g.height
}

// Close releases the audio device.
func (g *Game) Close() {
	if g.audio != nil {
		g.audio.Close()
	}
}
