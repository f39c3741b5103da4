package game

// Possession arbitrates who controls a free ball and runs the keeper hold.
type Possession struct {
	Params     PossessionParams
	Keepers    KeeperParams
	JustKicked float64
	FieldWidth float64
	BoxDepth   float64
}

// NewPossession builds the arbiter from match settings.
func NewPossession(s Settings) *Possession {
	return &Possession{
		Params:     s.Possession,
		Keepers:    s.Keepers,
		JustKicked: s.Kick.JustKicked,
		FieldWidth: s.FieldWidth,
		BoxDepth:   s.BoxDepth(),
	}
}

// InBox reports whether x lies inside the penalty box defended by side.
func (ps *Possession) InBox(side Side, x float64) bool {
	if side == SideLeft {
		return x >= 0 && x <= ps.BoxDepth
	}
	return x >= ps.FieldWidth-ps.BoxDepth && x <= ps.FieldWidth
}

// TryTakeAll counts the shared pickup cooldown and the ball's justKicked
// window down by dt, then offers a free ball to each candidate in order. The
// first eligible candidate wins; the order is the tie-break.
func (ps *Possession) TryTakeAll(ball *Ball, candidates []*Player, pickupCooldown *float64, dt float64) *Player {
	*pickupCooldown = countdown(*pickupCooldown, dt)
	ball.JustKicked = countdown(ball.JustKicked, dt)

	for _, p := range candidates {
		if ps.eligible(ball, p, *pickupCooldown) {
			ball.Owner = p.ID
			p.dribble = dribbleState{}
			return p
		}
	}
	return nil
}

func (ps *Possession) eligible(ball *Ball, p *Player, pickupCooldown float64) bool {
	if !ball.Free() || pickupCooldown > 0 {
		return false
	}
	if ball.JustKicked > 0 && p.ID == ball.LastKickerID {
		return false
	}

	toBall := ball.Pos.Sub(p.Pos)
	d := toBall.Len()
	if d < 1e-4 {
		return false
	}

	margin, maxSpeed := ps.Params.FieldMargin, ps.Params.FieldMaxSpeed
	if p.IsGoalkeeper {
		// Keepers only claim inside their own box, standing in it themselves.
		if !ps.InBox(p.Side, ball.Pos.X) || !ps.InBox(p.Side, p.Pos.X) {
			return false
		}
		margin, maxSpeed = ps.Params.KeeperMargin, ps.Params.KeeperMaxSpeed
	}
	if d >= p.Radius+ball.Radius+margin || ball.Vel.Len() >= maxSpeed {
		return false
	}
	fwd := unitOr(p.Facing, p.Side.Attack())
	return toBall.Scale(1/d).Dot(fwd) > ps.Params.ConeCos
}

// KeeperHold pins a held ball in front of the keeper and counts the hold
// time. The ball is released along the keeper's facing when clear is set or
// the hold reaches MaxHold. Returns true on release.
func (ps *Possession) KeeperHold(ball *Ball, gk *Player, clear bool, dt float64, pickupCooldown *float64) bool {
	if !gk.IsGoalkeeper || ball.Owner != gk.ID {
		return false
	}
	fwd := unitOr(gk.Facing, gk.Side.Attack())
	ball.Pos = gk.Pos.Add(fwd.Scale(gk.Radius + ball.Radius + ps.Keepers.HoldGap))
	ball.Vel = Vec2{}

	gk.keeper.hold += dt
	if !clear && gk.keeper.hold < ps.Keepers.MaxHold {
		return false
	}
	ball.release(gk.ID, fwd.Scale(ps.Keepers.ClearSpeed), ps.JustKicked)
	gk.keeper.hold = 0
	if *pickupCooldown < ps.Keepers.PickupCooldown {
		*pickupCooldown = ps.Keepers.PickupCooldown
	}
	return true
}
