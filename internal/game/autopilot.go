package game

import (
	"math"
	"math/rand"
)

// Autopilot is a scripted intent source for one side. It drives the side's
// field player only: chase a free ball, carry it at the opponent goal, shoot
// inside range, and slide at an opposing carrier.
type Autopilot struct {
	Side       Side
	ShootRange float64 // px from the goal line
	SlideRange float64 // px beyond touching the carrier
	AimCos     float64 // facing must be this close to the aim before shooting

	aimY    float64
	hadBall bool
	rng     *rand.Rand
}

// NewAutopilot returns an autopilot for side. seed varies where it aims.
func NewAutopilot(side Side, seed int64) *Autopilot {
	return &Autopilot{
		Side:       side,
		ShootRange: 360,
		SlideRange: 14,
		AimCos:     0.92,
		rng:        rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
	}
}

// Intent computes this tick's input for the side's controlled body.
func (a *Autopilot) Intent(m *Match) Intent {
	if m.Controlled(a.Side).IsGoalkeeper {
		if m.Ball().Owner == m.Controlled(a.Side).ID {
			return Intent{Shoot: true}
		}
		return Intent{SwitchKeeper: true}
	}

	p := m.FieldPlayer(a.Side)
	ball := m.Ball()
	goals := m.Goals()
	s := m.Settings()

	switch owner := m.Owner(); {
	case owner == p:
		if !a.hadBall {
			half := (goals.Y2 - goals.Y1) / 2
			a.aimY = (goals.Y1+goals.Y2)/2 + (a.rng.Float64()*2-1)*half*0.6
		}
		a.hadBall = true
		aim := Vec2{goals.Center(a.Side.Opponent()).X, a.aimY}
		to := aim.Sub(p.Pos)
		in := Intent{Move: to}
		if math.Abs(to.X) < a.ShootRange && p.Facing.Dot(to.Normalized()) > a.AimCos {
			in.Shoot = true
		}
		return in

	case owner != nil && owner.Side != a.Side && !owner.IsGoalkeeper:
		a.hadBall = false
		to := ball.Pos.Sub(p.Pos)
		in := Intent{Move: to}
		reach := p.Radius + ball.Radius + s.Tackle.InterceptSlack + a.SlideRange
		if to.Len() < reach && p.SlideCooldown == 0 && p.Facing.Dot(to.Normalized()) > 0.8 {
			in.Slide = true
		}
		return in

	case owner != nil:
		// The opponent keeper or our own keeper has it: drop back.
		a.hadBall = false
		home := SlotWorld(a.Side, Slot{Forward: s.FieldWidth * 0.3}, s.FieldWidth, s.FieldHeight)
		to := home.Sub(p.Pos)
		if to.Len() < p.Radius {
			return Intent{}
		}
		return Intent{Move: to}

	default:
		a.hadBall = false
		// Come at a free ball from the goal side so it is picked up facing forward.
		behind := ball.Pos.Sub(a.Side.Attack().Scale(p.Radius))
		return Intent{Move: behind.Sub(p.Pos)}
	}
}
