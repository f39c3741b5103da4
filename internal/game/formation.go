package game

// Slot is a kickoff position in a side's own frame. Forward is the distance
// in pixels from the side's goal line toward the opponent goal; Right is the
// lateral offset from the pitch's horizontal centre line.
type Slot struct {
	Forward float64
	Right   float64
}

// Formation holds the kickoff slot of each player of one side.
type Formation struct {
	Player Slot
	Keeper Slot
}

// kickoffFormation is the reference layout: field player on the centre line
// a quarter of the pitch from its goal, keeper just off its goal line.
func kickoffFormation(s Settings) Formation {
	return Formation{
		Player: Slot{Forward: s.FieldWidth * 0.25},
		Keeper: Slot{Forward: s.KeeperFrontOffset + s.Keeper.Radius},
	}
}

// SlotWorld converts a side-local slot into a pitch position. Forward runs
// along the side's attack direction; Right is 90 degrees clockwise of it.
func SlotWorld(side Side, slot Slot, fieldW, fieldH float64) Vec2 {
	fwd := side.Attack()
	origin := Vec2{0, fieldH / 2}
	if side == SideRight {
		origin.X = fieldW
	}
	right := Vec2{-fwd.Y, fwd.X}
	return origin.Add(fwd.Scale(slot.Forward)).Add(right.Scale(slot.Right))
}

// place puts p on its slot at rest facing the opponent goal.
func place(p *Player, slot Slot, fieldW, fieldH float64) {
	p.Pos = SlotWorld(p.Side, slot, fieldW, fieldH)
	p.Vel = Vec2{}
	p.Facing = p.Side.Attack()
	p.Tackling = false
	p.TackleTimer = 0
	p.ShootCooldown = 0
	p.SlideCooldown = 0
	p.In = Intent{}
	p.dribble = dribbleState{}
	p.keeper = keeperContext{}
}
