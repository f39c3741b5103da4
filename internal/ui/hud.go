package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Garsondee/Kickabout/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// hudScale is the integer upscale factor applied to the HUD buffer.
const hudScale = 2

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// formatClock renders seconds as m:ss, rounding up so 0:00 only shows at
// the whistle.
func formatClock(sec float64) string {
	s := int(math.Ceil(math.Max(0, sec)))
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// phaseBanner is the large caption shown outside open play.
func phaseBanner(m *game.Match) string {
	switch m.Phase() {
	case game.PhaseKickoff:
		return "KICK OFF"
	case game.PhaseGoalFreeze:
		return "GOAL!"
	case game.PhaseHalfTimeBreak:
		return "HALF TIME"
	case game.PhaseFullTime:
		sc := m.Score()
		switch {
		case sc[game.SideLeft] > sc[game.SideRight]:
			return "FULL TIME - LEFT WINS"
		case sc[game.SideRight] > sc[game.SideLeft]:
			return "FULL TIME - RIGHT WINS"
		default:
			return "FULL TIME - DRAW"
		}
	default:
		return ""
	}
}

func speedLabel(speed float64) string {
	switch speed {
	case 0:
		return "PAUSED"
	case 1, 2, 4:
		return fmt.Sprintf("%.0fx", speed)
	default:
		return fmt.Sprintf("%.2gx", speed)
	}
}

// drawCentered draws s centred on x at baseline row y of dst.
func drawCentered(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	w, _ := text.Measure(s, hudFace, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x-w/2, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, hudFace, op)
}

// drawScoreboard renders score, clock and phase banner into the HUD buffer.
func (g *Game) drawScoreboard(screen *ebiten.Image) {
	if g.hudBuf == nil {
		g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	}
	g.hudBuf.Clear()
	cx := float64(g.offX+g.fieldW/2) / hudScale

	sc := g.match.Score()
	board := fmt.Sprintf("LEFT %d - %d RIGHT", sc[game.SideLeft], sc[game.SideRight])
	clock := fmt.Sprintf("H%d  %s", g.match.Half(), formatClock(g.match.TimeRemaining()))
	if g.match.Wind().Enabled {
		clock += "  WIND"
	}

	const boxW, boxH = 150, 32
	bx := float32(cx - boxW/2)
	vector.FillRect(g.hudBuf, bx, 2, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, 2, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	vector.FillRect(g.hudBuf, bx+3, 6, 4, 10, sideColor(game.SideLeft), false)
	vector.FillRect(g.hudBuf, bx+boxW-7, 6, 4, 10, sideColor(game.SideRight), false)
	drawCentered(g.hudBuf, board, cx, 4, color.White)
	drawCentered(g.hudBuf, clock, cx, 18, color.RGBA{R: 190, G: 210, B: 190, A: 255})

	if banner := phaseBanner(g.match); banner != "" {
		cy := float64(g.offY+g.fieldH/2)/hudScale - 40
		w, _ := text.Measure(banner, hudFace, 0)
		vector.FillRect(g.hudBuf, float32(cx-w/2-8), float32(cy-4), float32(w+16), 22, color.RGBA{A: 170}, false)
		drawCentered(g.hudBuf, banner, cx, cy, color.RGBA{R: 255, G: 230, B: 120, A: 255})
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)
}

// drawLegend renders the key legend bottom-left of the pitch.
func (g *Game) drawLegend(screen *ebiten.Image) {
	right := "RIGHT: arrows move  Enter shoot  RShift slide  / keeper"
	if g.cpu[game.SideRight] != nil {
		right = "RIGHT: cpu"
	}
	lines := []string{
		fmt.Sprintf("SIM: %s  P=pause  ,/. speed  R=restart", speedLabel(g.simSpeed)),
		"LEFT: WASD move  Space shoot  LShift slide  Q keeper",
		right,
		"F1 wind  F2 copy report  M mute  H hide  click=inspect",
	}

	const lineH = 12
	const charW = 6
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charW + 10)
	boxH := float32(len(lines)*lineH + 8)
	bx := float32(g.offX + 6)
	by := float32(g.offY+g.fieldH) - boxH - 6

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 200}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(bx)+5, int(by)+4+i*lineH)
	}
}
