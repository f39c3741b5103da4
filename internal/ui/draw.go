package ui

import (
	"image/color"
	"math"

	"github.com/Garsondee/Kickabout/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	grassDark  = color.RGBA{R: 38, G: 96, B: 44, A: 255}
	grassLight = color.RGBA{R: 44, G: 108, B: 50, A: 255}
	lineCol    = color.RGBA{R: 225, G: 235, B: 225, A: 200}
	postCol    = color.RGBA{R: 245, G: 245, B: 245, A: 255}
)

const stripeCount = 12

// drawPitch renders grass, markings, boxes and goal mouths.
func (g *Game) drawPitch(dst *ebiten.Image) {
	s := g.match.Settings()
	w := float32(s.FieldWidth)
	h := float32(s.FieldHeight)

	stripe := w / stripeCount
	for i := 0; i < stripeCount; i++ {
		c := grassDark
		if i%2 == 1 {
			c = grassLight
		}
		vector.FillRect(dst, float32(i)*stripe, 0, stripe+1, h, c, false)
	}

	vector.StrokeRect(dst, 1, 1, w-2, h-2, 2, lineCol, false)
	vector.StrokeLine(dst, w/2, 0, w/2, h, 2, lineCol, false)
	vector.StrokeCircle(dst, w/2, h/2, h/8, 2, lineCol, true)
	vector.FillCircle(dst, w/2, h/2, 3, lineCol, true)

	// Penalty boxes span the full height; only the depth marks them.
	box := float32(g.match.BoxDepth())
	vector.StrokeLine(dst, box, 0, box, h, 1.5, lineCol, false)
	vector.StrokeLine(dst, w-box, 0, w-box, h, 1.5, lineCol, false)

	goals := g.match.Goals()
	mouth := float32(goals.Y2 - goals.Y1)
	vector.FillRect(dst, 0, float32(goals.Y1), 4, mouth, color.RGBA{R: 235, G: 235, B: 235, A: 90}, false)
	vector.FillRect(dst, w-4, float32(goals.Y1), 4, mouth, color.RGBA{R: 235, G: 235, B: 235, A: 90}, false)
	for side := range goals.Posts {
		for _, p := range goals.Posts[side] {
			vector.FillCircle(dst, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Radius), postCol, true)
		}
	}
}

// drawBodies renders players and the ball.
func (g *Game) drawBodies(dst *ebiten.Image) {
	for _, p := range g.match.Players() {
		col := sideColor(p.Side)
		if p.IsGoalkeeper {
			col = color.RGBA{R: col.R/2 + 100, G: col.G/2 + 100, B: col.B/2 + 40, A: 255}
		}
		x, y := float32(p.Pos.X), float32(p.Pos.Y)
		r := float32(p.Radius)
		if p.Tackling {
			vector.FillCircle(dst, x, y, r+4, color.RGBA{R: 255, G: 200, B: 60, A: 110}, true)
		}
		vector.FillCircle(dst, x, y, r, col, true)
		if p.IsControlled {
			vector.StrokeCircle(dst, x, y, r+3, 2, color.White, true)
		}
		if p.ID == g.inspector.selected {
			vector.StrokeCircle(dst, x, y, r+7, 1, color.RGBA{R: 255, G: 255, B: 0, A: 220}, true)
		}
		fx := x + float32(p.Facing.X)*r
		fy := y + float32(p.Facing.Y)*r
		vector.StrokeLine(dst, x, y, fx, fy, 2, color.RGBA{R: 20, G: 20, B: 20, A: 230}, true)
		ebitenutil.DebugPrintAt(dst, game.BodyLabel(p.ID), int(x)-6, int(y+r)+2)
	}

	b := g.match.Ball()
	vector.FillCircle(dst, float32(b.Pos.X)+2, float32(b.Pos.Y)+2, float32(b.Radius), color.RGBA{A: 80}, true)
	vector.FillCircle(dst, float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius), color.White, true)
	vector.StrokeCircle(dst, float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius), 1, color.RGBA{R: 30, G: 30, B: 30, A: 255}, true)
	if g.inspector.selected == game.BallID {
		vector.StrokeCircle(dst, float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius)+6, 1, color.RGBA{R: 255, G: 255, B: 0, A: 220}, true)
	}
}

// drawOverlays draws velocity vectors, each keeper's cutoff target and the
// wind arrow.
func (g *Game) drawOverlays(dst *ebiten.Image) {
	s := g.match.Settings()
	ball := g.match.Ball()

	for _, p := range g.match.Players() {
		drawVector(dst, p.Pos, p.Vel.Scale(0.25), color.RGBA{R: 255, G: 255, B: 255, A: 120})
		if !p.IsGoalkeeper {
			continue
		}
		goal := g.match.Goals().Center(p.Side)
		goal.X += p.Side.Attack().X * s.Keepers.GoalInset
		cut := goal.Add(ball.Pos.Sub(goal).Scale(s.Keepers.CutFraction))
		drawDashed(dst, goal, ball.Pos, color.RGBA{R: 255, G: 255, B: 160, A: 60})
		vector.StrokeCircle(dst, float32(cut.X), float32(cut.Y), 4, 1, color.RGBA{R: 255, G: 255, B: 160, A: 160}, true)
	}
	drawVector(dst, ball.Pos, ball.Vel.Scale(0.25), color.RGBA{R: 255, G: 220, B: 60, A: 160})

	if w := g.match.Wind(); w.Enabled {
		c := game.V(s.FieldWidth/2, 40)
		drawVector(dst, c, w.Accel.Scale(0.5), color.RGBA{R: 160, G: 220, B: 255, A: 200})
	}
}

func drawVector(dst *ebiten.Image, from, v game.Vec2, clr color.Color) {
	if v.Len() < 1 {
		return
	}
	to := from.Add(v)
	vector.StrokeLine(dst, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), 1.5, clr, true)
	vector.FillCircle(dst, float32(to.X), float32(to.Y), 2, clr, true)
}

// drawDashed draws a dashed segment from a to b.
func drawDashed(dst *ebiten.Image, a, b game.Vec2, clr color.Color) {
	const dashLen, gapLen = 8.0, 6.0
	d := b.Sub(a)
	total := d.Len()
	if total < 1 {
		return
	}
	n := d.Scale(1 / total)
	for drawn := 0.0; drawn < total; drawn += dashLen + gapLen {
		end := math.Min(drawn+dashLen, total)
		p1 := a.Add(n.Scale(drawn))
		p2 := a.Add(n.Scale(end))
		vector.StrokeLine(dst, float32(p1.X), float32(p1.Y), float32(p2.X), float32(p2.Y), 1, clr, true)
	}
}
