package game

import "math"

// KeeperState is the goalkeeper behaviour state.
type KeeperState int

const (
	KeeperPositioning KeeperState = iota
	KeeperCharging
	KeeperHolding
)

func (s KeeperState) String() string {
	switch s {
	case KeeperPositioning:
		return "positioning"
	case KeeperCharging:
		return "charging"
	case KeeperHolding:
		return "holding"
	default:
		return "unknown"
	}
}

// keeperContext is the behaviour state of one keeper.
type keeperContext struct {
	state     KeeperState
	stTime    float64 // seconds in the current state
	hold      float64 // seconds holding the ball
	wantClear bool    // AI decided to clear on this tick
}

func (c *keeperContext) enter(s KeeperState) {
	if c.state == s {
		return
	}
	c.state = s
	c.stTime = 0
	if s == KeeperHolding {
		c.hold = 0
	}
	c.wantClear = false
}

// KeeperAction is what a keeper pass did to the ball.
type KeeperAction int

const (
	KeeperNoAction KeeperAction = iota
	KeeperCaught
	KeeperParried
)

// pressuredClearAngle is how square to the clear target a hurried keeper must be.
const pressuredClearAngle = 10 * math.Pi / 180

// Keepers runs the goalkeeper state machine.
type Keepers struct {
	Params   KeeperParams
	FieldW   float64
	FieldH   float64
	BoxDepth float64
}

// NewKeepers builds the keeper brain from match settings.
func NewKeepers(s Settings) *Keepers {
	return &Keepers{
		Params:   s.Keepers,
		FieldW:   s.FieldWidth,
		FieldH:   s.FieldHeight,
		BoxDepth: s.BoxDepth(),
	}
}

// boxX returns the x extent of side's penalty box.
func (k *Keepers) boxX(side Side) (minX, maxX float64) {
	if side == SideLeft {
		return 0, k.BoxDepth
	}
	return k.FieldW - k.BoxDepth, k.FieldW
}

func (k *Keepers) inBox(side Side, x float64) bool {
	minX, maxX := k.boxX(side)
	return x >= minX && x <= maxX
}

// goalCentre is the point just in front of side's goal line.
func (k *Keepers) goalCentre(side Side) Vec2 {
	cy := k.FieldH / 2
	if side == SideLeft {
		return Vec2{k.Params.GoalInset, cy}
	}
	return Vec2{k.FieldW - k.Params.GoalInset, cy}
}

// clearTarget is where an AI keeper aims its clearance.
func (k *Keepers) clearTarget(side Side) Vec2 {
	cy := k.FieldH / 2
	if side == SideLeft {
		return Vec2{k.FieldW * 0.75, cy}
	}
	return Vec2{k.FieldW * 0.25, cy}
}

// canCharge reports whether an attacker with the ball has beaten the
// defender close to gk's box.
func (k *Keepers) canCharge(ball *Ball, gk, mate, opp *Player) bool {
	pr := k.Params
	minX, maxX := k.boxX(gk.Side)
	if gk.Side == SideLeft {
		return ball.Pos.X <= k.FieldW*pr.ActiveRatio &&
			ball.Pos.X < maxX+pr.NearBoxFactor*k.BoxDepth &&
			ball.Owner == opp.ID &&
			opp.Pos.X < mate.Pos.X-pr.PastMateMargin
	}
	return ball.Pos.X >= k.FieldW*(1-pr.ActiveRatio) &&
		ball.Pos.X > minX-pr.NearBoxFactor*k.BoxDepth &&
		ball.Owner == opp.ID &&
		opp.Pos.X > mate.Pos.X+pr.PastMateMargin
}

func (k *Keepers) ballAway(side Side, ball *Ball) bool {
	minX, maxX := k.boxX(side)
	if side == SideLeft {
		return ball.Pos.X > maxX+k.Params.AwayBoxFactor*k.BoxDepth
	}
	return ball.Pos.X < minX-k.Params.AwayBoxFactor*k.BoxDepth
}

// occluded reports whether the attacker's body lies across the gk-ball segment.
func occluded(attacker *Player, gkPos, ballPos Vec2, margin float64) bool {
	d2, t := pointSegDist2(gkPos, ballPos, attacker.Pos)
	r := attacker.Radius + margin
	return t > 0.05 && t < 0.95 && d2 <= r*r
}

// Update runs one keeper pass. Ball interactions are skipped for a keeper
// under human control; the state machine still advances so control can be
// handed back without a jump.
func (k *Keepers) Update(ball *Ball, gk, mate, opp *Player, dt float64) KeeperAction {
	c := &gk.keeper
	c.stTime += dt
	c.wantClear = false

	if c.state == KeeperHolding && ball.Owner != gk.ID {
		c.enter(KeeperPositioning)
	}

	charge := k.canCharge(ball, gk, mate, opp)
	switch c.state {
	case KeeperPositioning:
		if charge {
			c.enter(KeeperCharging)
		}
	case KeeperCharging:
		if c.stTime >= k.Params.MinCharge && (!charge || k.ballAway(gk.Side, ball)) {
			c.enter(KeeperPositioning)
		}
	case KeeperHolding:
		k.hold(gk, opp, dt)
		return KeeperNoAction
	}

	k.move(ball, gk, dt)
	if gk.IsControlled {
		return KeeperNoAction
	}
	return k.interact(ball, gk, mate, opp)
}

// hold turns the keeper toward its clear target and decides when to clear.
func (k *Keepers) hold(gk, opp *Player, dt float64) {
	pr := k.Params
	gk.Vel = Vec2{}
	desire := unitOr(k.clearTarget(gk.Side).Sub(gk.Pos), gk.Side.Attack())
	gk.Facing = RotateToward(gk.Facing, desire, pr.TurnRate*dt)

	ang := math.Acos(clamp(gk.Facing.Normalized().Dot(desire), -1, 1))
	pressured := opp.Pos.Dist(gk.Pos) < pr.PressureRadius
	gk.keeper.wantClear = (pressured && ang < pressuredClearAngle) ||
		(gk.keeper.hold >= pr.AutoClearDelay && ang < pr.AutoClearAngle)
}

// move steers the keeper toward its state's target and clamps it to its region.
func (k *Keepers) move(ball *Ball, gk *Player, dt float64) {
	pr := k.Params
	c := &gk.keeper

	var target Vec2
	var speed float64
	if c.state == KeeperCharging {
		target = ball.Pos.Add(ball.Vel.Scale(pr.InterceptLead))
		speed = gk.MaxSpeed * pr.RushFactor
	} else {
		goal := k.goalCentre(gk.Side)
		target = goal.Add(ball.Pos.Sub(goal).Scale(pr.CutFraction))
		speed = gk.MaxSpeed * pr.WalkFactor
	}
	gk.Facing = RotateToward(gk.Facing, ball.Pos.Sub(gk.Pos), pr.TurnRate*dt)

	var desired Vec2
	if toT := target.Sub(gk.Pos); toT.Len() > 1e-3 {
		desired = toT.Normalized().Scale(speed)
	}
	alpha := 1 - math.Exp(-pr.VelBlendRate*dt)
	gk.Vel = gk.Vel.Lerp(desired, alpha)

	ext := 0.0
	if c.state == KeeperCharging {
		ext = pr.ChargeExtendRatio * k.FieldW
	}
	minX, maxX := k.boxX(gk.Side)
	gk.Pos.X = clamp(gk.Pos.X, minX-ext+pr.EdgeMarginX, maxX+ext-pr.EdgeMarginX)
	gk.Pos.Y = clamp(gk.Pos.Y, pr.EdgeMarginY, k.FieldH-pr.EdgeMarginY)
}

// interact catches or parries a ball within reach.
func (k *Keepers) interact(ball *Ball, gk, mate, opp *Player) KeeperAction {
	pr := k.Params
	if ball.Owner == gk.ID || ball.Owner == mate.ID {
		return KeeperNoAction
	}
	if ball.JustKicked > 0 && ball.LastKickerID == gk.ID {
		return KeeperNoAction
	}
	reach := gk.Radius + ball.Radius + pr.ReachMargin
	if ball.Pos.Dist2(gk.Pos) > reach*reach {
		return KeeperNoAction
	}

	inside := k.inBox(gk.Side, gk.Pos.X)
	nearFeet := ball.Owner == opp.ID ||
		ball.Pos.Dist(opp.Pos) <= opp.Radius+ball.Radius+pr.ReachMargin
	blocked := nearFeet && occluded(opp, gk.Pos, ball.Pos, pr.ShadowMargin)

	v := ball.Vel.Len()
	if inside && k.inBox(gk.Side, ball.Pos.X) && ball.Free() && v <= pr.CatchSpeed && !blocked {
		ball.Owner = gk.ID
		gk.keeper.enter(KeeperHolding)
		return KeeperCaught
	}

	nGK := unitOr(ball.Pos.Sub(gk.Pos), gk.Side.Attack())
	if ball.Free() && ball.Vel.Dot(nGK) > 0 {
		return KeeperNoAction
	}
	attDir := unitOr(ball.Pos.Sub(opp.Pos), opp.Side.Attack())
	out := unitOr(nGK.Scale(0.5).Add(attDir.Perp().Scale(0.8)), nGK)
	ceiling := pr.ParrySpeed
	if !inside {
		ceiling = pr.ParrySpeedOutside
	}
	ball.release(gk.ID, out.Scale(math.Min(ceiling, math.Max(v, pr.ParryMinSpeed))), pr.PickupCooldown)
	return KeeperParried
}
