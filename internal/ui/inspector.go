package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Garsondee/Kickabout/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 200
	inspBufH  = 200
	inspPad   = 4
	inspLineH = 13

	pickRadius = 12.0 // extra px around a body that still selects it
)

// Inspector holds the selected body and view toggle state.
type Inspector struct {
	selected int // body id, game.NoOwner when nothing is selected
	rawView  bool
	buf      *ebiten.Image
}

func newInspector() Inspector {
	return Inspector{selected: game.NoOwner}
}

// pickBody returns the id of the body nearest to the pitch point p within
// its radius plus pickRadius, or game.NoOwner.
func pickBody(m *game.Match, p game.Vec2) int {
	best := math.MaxFloat64
	hit := game.NoOwner
	consider := func(id int, b *game.Body) {
		d := b.Pos.Dist(p)
		if d < b.Radius+pickRadius && d < best {
			best = d
			hit = id
		}
	}
	consider(game.BallID, &m.Ball().Body)
	for _, pl := range m.Players() {
		consider(pl.ID, &pl.Body)
	}
	return hit
}

// inspectLines describes a body for the panel.
func inspectLines(m *game.Match, id int, raw bool) []string {
	if id == game.BallID {
		b := m.Ball()
		if raw {
			return []string{
				fmt.Sprintf("pos=(%.1f,%.1f)", b.Pos.X, b.Pos.Y),
				fmt.Sprintf("vel=(%.1f,%.1f)", b.Vel.X, b.Vel.Y),
				fmt.Sprintf("r=%.1f m=%.2f", b.Radius, b.Mass),
				fmt.Sprintf("drag=%.3f e=%.2f", b.Drag, b.WallElasticity),
				fmt.Sprintf("owner=%d last=%d", b.Owner, b.LastKickerID),
				fmt.Sprintf("justKicked=%.3f", b.JustKicked),
			}
		}
		owner := "free"
		if !b.Free() {
			owner = game.BodyLabel(b.Owner)
		}
		last := "-"
		if b.LastKickerID != game.NoOwner {
			last = game.BodyLabel(b.LastKickerID)
		}
		return []string{
			fmt.Sprintf("speed: %.0f px/s", b.Vel.Len()),
			fmt.Sprintf("owner: %s", owner),
			fmt.Sprintf("last touch: %s", last),
			fmt.Sprintf("lockout: %.2fs", b.JustKicked),
			fmt.Sprintf("pickup cd: %.2fs", m.PickupCooldown()),
		}
	}

	p := m.Player(id)
	if p == nil {
		return nil
	}
	if raw {
		return []string{
			fmt.Sprintf("pos=(%.1f,%.1f)", p.Pos.X, p.Pos.Y),
			fmt.Sprintf("vel=(%.1f,%.1f)", p.Vel.X, p.Vel.Y),
			fmt.Sprintf("facing=(%.2f,%.2f)", p.Facing.X, p.Facing.Y),
			fmt.Sprintf("r=%.1f m=%.2f drag=%.3f", p.Radius, p.Mass, p.Drag),
			fmt.Sprintf("accel=%.0f vmax=%.0f", p.Accel, p.MaxSpeed),
			fmt.Sprintf("turn=%.2f", p.TurnRate),
			fmt.Sprintf("shootCD=%.3f slideCD=%.3f", p.ShootCooldown, p.SlideCooldown),
			fmt.Sprintf("tackling=%v t=%.3f", p.Tackling, p.TackleTimer),
			fmt.Sprintf("controlled=%v gk=%v", p.IsControlled, p.IsGoalkeeper),
			fmt.Sprintf("keeper=%s hold=%.2f", p.KeeperState(), p.HoldTime()),
		}
	}

	lines := []string{
		fmt.Sprintf("%s  %s", p.Kind, p.Side),
		fmt.Sprintf("speed: %3.0f / %.0f", p.Speed(), p.MaxSpeed),
		fmt.Sprintf("facing: %4.0f deg", math.Atan2(p.Facing.Y, p.Facing.X)*180/math.Pi),
	}
	if p.IsControlled {
		lines = append(lines, "controlled")
	}
	if m.Ball().Owner == p.ID {
		lines = append(lines, "on the ball")
	}
	if p.Tackling {
		lines = append(lines, fmt.Sprintf("sliding %.2fs", p.TackleTimer))
	}
	lines = append(lines, fmt.Sprintf("cooldown: shot %.2f slide %.2f", p.ShootCooldown, p.SlideCooldown))
	if p.IsGoalkeeper {
		lines = append(lines, fmt.Sprintf("keeper: %s", p.KeeperState()))
		if p.KeeperState() == game.KeeperHolding {
			lines = append(lines, fmt.Sprintf("held %.1fs", p.HoldTime()))
		}
	}
	return lines
}

// handleInspectorClick selects whatever body is under the cursor, or
// deselects on empty pitch.
func (g *Game) handleInspectorClick(mx, my int) {
	p := game.V(float64(mx-g.offX), float64(my-g.offY))
	g.inspector.selected = pickBody(g.match, p)
}

// drawInspector renders the panel for the selected body.
func (g *Game) drawInspector(screen *ebiten.Image) {
	id := g.inspector.selected
	if id == game.NoOwner {
		return
	}
	if g.inspector.buf == nil {
		g.inspector.buf = ebiten.NewImage(inspBufW, inspBufH)
	}
	buf := g.inspector.buf
	buf.Clear()

	bw := float32(inspBufW)
	bh := float32(inspBufH)
	panelBorder := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 8, G: 12, B: 8, A: 225}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)

	lx := inspPad
	ly := inspPad
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("[ %s ]", game.BodyLabel(id)), lx, ly)
	ly += inspLineH + 2

	viewName := "CURATED"
	if g.inspector.rawView {
		viewName = "RAW"
	}
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("view: %s  [I] toggle", viewName), lx, ly)
	ly += inspLineH + 4
	vector.StrokeLine(buf, float32(lx), float32(ly), bw-float32(inspPad), float32(ly), 1.0, panelBorder, false)
	ly += 4

	for _, line := range inspectLines(g.match, id, g.inspector.rawView) {
		ebitenutil.DebugPrintAt(buf, line, lx, ly)
		ly += inspLineH
	}

	px := g.offX + g.fieldW - inspBufW*inspScale - 8
	py := g.offY + 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(inspScale), float64(inspScale))
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
