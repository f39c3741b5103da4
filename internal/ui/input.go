package ui

import (
	"github.com/Garsondee/Kickabout/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// Bindings are the keys one side plays with.
type Bindings struct {
	Up, Down, Left, Right ebiten.Key
	Shoot, Slide, Switch  ebiten.Key
}

// DefaultBindings returns the keyboard layout for each side: WASD for the
// left side and the arrow keys for the right.
func DefaultBindings() [2]Bindings {
	return [2]Bindings{
		game.SideLeft: {
			Up: ebiten.KeyW, Down: ebiten.KeyS, Left: ebiten.KeyA, Right: ebiten.KeyD,
			Shoot: ebiten.KeySpace, Slide: ebiten.KeyShiftLeft, Switch: ebiten.KeyQ,
		},
		game.SideRight: {
			Up: ebiten.KeyArrowUp, Down: ebiten.KeyArrowDown, Left: ebiten.KeyArrowLeft, Right: ebiten.KeyArrowRight,
			Shoot: ebiten.KeyEnter, Slide: ebiten.KeyShiftRight, Switch: ebiten.KeySlash,
		},
	}
}

// keyEdges turns held keys into press edges.
type keyEdges struct {
	prev map[ebiten.Key]bool
}

func newKeyEdges() *keyEdges {
	return &keyEdges{prev: make(map[ebiten.Key]bool)}
}

// pressed records the key's state and reports whether it went down this frame.
func (e *keyEdges) pressed(k ebiten.Key, down bool) bool {
	was := e.prev[k]
	e.prev[k] = down
	return down && !was
}

// intent reads one side's input. Movement is level-triggered; the action
// keys fire once per press.
func (b Bindings) intent(down func(ebiten.Key) bool, edges *keyEdges) game.Intent {
	var in game.Intent
	if down(b.Up) {
		in.Move.Y--
	}
	if down(b.Down) {
		in.Move.Y++
	}
	if down(b.Left) {
		in.Move.X--
	}
	if down(b.Right) {
		in.Move.X++
	}
	in.Shoot = edges.pressed(b.Shoot, down(b.Shoot))
	in.Slide = edges.pressed(b.Slide, down(b.Slide))
	in.SwitchKeeper = edges.pressed(b.Switch, down(b.Switch))
	return in
}

// merge folds a new frame of input into a pending intent. Pulses stay set
// until a tick consumes them, so presses on frames without a tick survive
// slow sim speeds.
func merge(pending, in game.Intent) game.Intent {
	pending.Move = in.Move
	pending.Shoot = pending.Shoot || in.Shoot
	pending.Slide = pending.Slide || in.Slide
	pending.SwitchKeeper = pending.SwitchKeeper || in.SwitchKeeper
	return pending
}

var simSpeeds = []float64{0, 0.25, 0.5, 1, 2, 4}

// slower returns the next lower sim speed.
func slower(cur float64) float64 {
	for i := len(simSpeeds) - 1; i > 0; i-- {
		if simSpeeds[i] <= cur {
			if simSpeeds[i] < cur {
				return simSpeeds[i]
			}
			return simSpeeds[i-1]
		}
	}
	return simSpeeds[0]
}

// faster returns the next higher sim speed.
func faster(cur float64) float64 {
	for _, s := range simSpeeds {
		if s > cur {
			return s
		}
	}
	return simSpeeds[len(simSpeeds)-1]
}
