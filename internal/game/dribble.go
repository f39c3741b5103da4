package game

import "math"

// dribbleState is the smoothing filter of one carrier. It is reset on every
// pickup so a previous carry never bleeds into a new one.
type dribbleState struct {
	filtVel Vec2
}

// Dribble keeps an owned ball near its carrier's feet.
type Dribble struct {
	Params DribbleParams
}

// NewDribble returns a controller with the given tuning.
func NewDribble(p DribbleParams) *Dribble {
	return &Dribble{Params: p}
}

// smoothDamp moves current toward target with a critically damped spring.
// vel is the filter's internal velocity and is updated in place.
func smoothDamp(current, target Vec2, vel *Vec2, smoothTime, dt float64) Vec2 {
	smoothTime = math.Max(1e-4, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	k := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current.Sub(target)
	temp := vel.Add(change.Scale(omega)).Scale(dt)
	*vel = vel.Sub(temp.Scale(omega)).Scale(k)
	return target.Add(change.Add(temp).Scale(k))
}

// Lead returns the ball's target distance ahead of the carrier's centre.
func (d *Dribble) Lead(ball *Ball, p *Player) float64 {
	return p.Radius + ball.Radius + d.Params.ExtraLead + d.Params.LeadSpeedK*p.Speed()
}

// Update advances the owned ball one tick. Returns false when the ball
// drifted past the tether and was released.
func (d *Dribble) Update(ball *Ball, p *Player, dt float64) bool {
	if ball.Owner != p.ID || p.IsGoalkeeper || dt <= 0 {
		return true
	}
	pr := d.Params
	dir := unitOr(p.Facing, p.Side.Attack())
	speed := p.Speed()
	moving := speed > pr.MovingSpeed

	lead := d.Lead(ball, p)
	strong := 1.0
	if dir.X < 0 {
		strong = -1
	}
	target := p.Pos.Add(dir.Scale(lead)).Add(dir.Perp().Scale(strong * pr.LateralBias))

	if ball.Pos.Dist(p.Pos) > lead+pr.LoseDistance {
		ball.Owner = NoOwner
		return false
	}

	st := pr.SmoothTimeStop
	if moving {
		st = pr.SmoothTimeMove
	}
	// Feed the carrier's velocity forward so the filter lag does not pull
	// the ball back under its feet.
	target = target.Add(p.Vel.Scale(st))
	prev := ball.Pos
	next := smoothDamp(prev, target, &p.dribble.filtVel, st, dt)
	if !moving && next.Dist(target) < pr.TargetDeadRad {
		next = target
	}
	// The ball never travels faster than the dribble ceiling.
	step := next.Sub(prev).ClampLen(pr.MaxSpeed * dt)
	ball.Pos = prev.Add(step)

	v := step.Scale(1 / dt)
	if vlen := v.Len(); vlen > 1 {
		vdir := v.Scale(1 / vlen)
		align := 0.35 + 0.50*math.Min(1, speed/(p.MaxSpeed+1))
		blend := unitOr(vdir.Scale(1-align).Add(dir.Scale(align)), dir)
		v = RotateToward(vdir, blend, pr.TurnRate*dt).Scale(vlen)
	}

	want := clamp(pr.MinSpeed+speed*pr.CarryFactor, pr.MinSpeed, pr.MaxSpeed)
	if vlen := v.Len(); vlen > 1 {
		v = v.Scale(clamp(vlen, pr.MinSpeed, want) / vlen)
	}
	if !moving {
		v = v.Scale(decay(pr.IdleDamping, dt))
	}
	ball.Vel = v
	return true
}
