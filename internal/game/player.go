package game

// newPlayer builds a player at pos facing its attacking direction.
func newPlayer(id int, kind Kind, side Side, spec PlayerSpec) *Player {
	return &Player{
		Body: Body{
			ID:             id,
			Kind:           kind,
			Radius:         spec.Radius,
			Mass:           spec.Mass,
			Drag:           spec.Drag,
			WallElasticity: spec.WallElasticity,
		},
		Side:         side,
		Accel:        spec.Accel,
		MaxSpeed:     spec.MaxSpeed,
		TurnRate:     spec.TurnRate,
		Facing:       side.Attack(),
		IsGoalkeeper: kind == KindKeeper,
		IsControlled: kind == KindFieldPlayer,
	}
}

// applyInput turns the movement intent into velocity. Drag for players is
// applied here, not in the physics step.
func (p *Player) applyInput(dt float64) {
	p.tickCooldowns(dt)
	k := decay(p.Drag, dt)

	if p.Tackling {
		p.TackleTimer = countdown(p.TackleTimer, dt)
		if p.TackleTimer == 0 {
			p.Tackling = false
		}
		p.Vel = p.Vel.Scale(k)
		return
	}

	if move := p.In.Move.Normalized(); !move.IsZero() {
		p.Facing = RotateToward(p.Facing, move, p.TurnRate*dt)
		p.Vel = p.Vel.Add(move.Scale(p.Accel * dt))
	}
	p.Vel = p.Vel.Scale(k).ClampLen(p.MaxSpeed)
}

// tryShoot kicks the ball along the facing direction. The shooter must own
// the ball or be touching a free ball. Returns true when the kick happened.
func (p *Player) tryShoot(ball *Ball, kp KickParams) bool {
	if p.ShootCooldown > 0 {
		return false
	}
	owns := ball.Owner == p.ID
	if !owns {
		reach := p.Radius + ball.Radius + kp.ReachMargin
		if !ball.Free() || ball.Pos.Dist2(p.Pos) > reach*reach {
			return false
		}
	}
	dir := unitOr(p.Facing, p.Side.Attack())
	speed := clamp(kp.SpeedMin+kp.RunBonus*p.Speed(), kp.SpeedMin, kp.SpeedMax)
	ball.release(p.ID, dir.Scale(speed), kp.JustKicked)
	p.ShootCooldown = kp.Cooldown
	return true
}

// trySlide starts a slide tackle. knocked is true when the slide reached the
// ball and knocked it loose; a keeper's held ball cannot be tackled.
func (p *Player) trySlide(ball *Ball, tp TackleParams, keeperHolds bool) (started, knocked bool) {
	if p.SlideCooldown > 0 || p.Tackling {
		return false, false
	}
	p.Tackling = true
	p.TackleTimer = tp.Duration
	p.SlideCooldown = tp.Cooldown

	dir := unitOr(p.Facing, p.Side.Attack())
	p.Vel = dir.Scale(tp.DashSpeed)

	if keeperHolds {
		return true, false
	}
	reach := p.Radius + ball.Radius + tp.InterceptSlack
	if ball.Pos.Dist2(p.Pos) <= reach*reach {
		ball.Owner = NoOwner
		ball.Vel = dir.Scale(tp.DislodgeSpeed)
		return true, true
	}
	return true, false
}
