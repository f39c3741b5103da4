package game

import (
	"math"
	"math/rand"
)

// Wind is the optional external force. Its timeline is fully determined by
// the seed, so a replayed match sees the same gusts.
type Wind struct {
	Params  WindParams
	Enabled bool

	Accel    Vec2 // current base acceleration, px/s^2
	dirTimer float64
	gustTime float64
	rng      *rand.Rand
}

// NewWind returns a disabled wind seeded from p.Seed.
func NewWind(p WindParams) *Wind {
	w := &Wind{
		Params: p,
		rng:    rand.New(rand.NewSource(p.Seed)), // #nosec G404 -- game only
	}
	w.reroll()
	w.gustTime = w.uniform(p.GustIntervalMin, p.GustIntervalMax)
	return w
}

func (w *Wind) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + w.rng.Float64()*(hi-lo)
}

// reroll picks a new base direction and strength.
func (w *Wind) reroll() {
	p := w.Params
	ang := w.rng.Float64() * 2 * math.Pi
	w.Accel = Vec2{1, 0}.Rotate(ang).Scale(w.uniform(p.BaseMin, p.BaseMax))
	w.dirTimer = w.uniform(p.DirChangeMin, p.DirChangeMax)
}

// DragScale returns the drag multiplier for a body kind while wind blows.
func (w *Wind) DragScale(k Kind) float64 {
	if !w.Enabled {
		return 1
	}
	if k == KindBall {
		return w.Params.DragScaleBall
	}
	return w.Params.DragScalePlayer
}

// Step pushes the ball and players. A gust is an impulse on a free ball;
// the returned bool reports that one fired this tick.
func (w *Wind) Step(dt float64, ball *Ball, players []*Player) bool {
	if !w.Enabled {
		return false
	}
	p := w.Params

	w.dirTimer -= dt
	if w.dirTimer <= 0 {
		w.reroll()
	}

	scale := 1.0
	if !ball.Free() {
		scale = p.OwnerScale
	}
	ball.Vel = ball.Vel.Add(w.Accel.Scale(scale * dt))
	for _, pl := range players {
		pl.Vel = pl.Vel.Add(w.Accel.Scale(p.OwnerScale * dt))
	}

	w.gustTime -= dt
	if w.gustTime > 0 {
		return false
	}
	w.gustTime = w.uniform(p.GustIntervalMin, p.GustIntervalMax)
	if !ball.Free() {
		return false
	}
	dir := w.Accel.Normalized().Rotate(w.uniform(-0.35, 0.35))
	ball.Vel = ball.Vel.Add(dir.Scale(p.GustPower * w.uniform(0.75, 1.25)))
	return true
}
