package game

import (
	"math"
	"testing"
)

func TestSlotWorld_LeftAttacksEast(t *testing.T) {
	got := SlotWorld(SideLeft, Slot{Forward: 100, Right: 20}, 1280, 720)
	// Right of an east-facing side is south (+y).
	if math.Abs(got.X-100) > 1e-9 || math.Abs(got.Y-380) > 1e-9 {
		t.Errorf("got (%.1f,%.1f), want (100,380)", got.X, got.Y)
	}
}

func TestSlotWorld_RightMirrors(t *testing.T) {
	got := SlotWorld(SideRight, Slot{Forward: 100, Right: 20}, 1280, 720)
	if math.Abs(got.X-1180) > 1e-9 || math.Abs(got.Y-340) > 1e-9 {
		t.Errorf("got (%.1f,%.1f), want (1180,340)", got.X, got.Y)
	}
}

func TestKickoffFormation_Symmetric(t *testing.T) {
	s := DefaultSettings()
	f := kickoffFormation(s)
	for _, slot := range []Slot{f.Player, f.Keeper} {
		l := SlotWorld(SideLeft, slot, s.FieldWidth, s.FieldHeight)
		r := SlotWorld(SideRight, slot, s.FieldWidth, s.FieldHeight)
		if math.Abs(l.X+r.X-s.FieldWidth) > 1e-9 || l.Y != r.Y {
			t.Errorf("slot %+v: left %v right %v not mirrored", slot, l, r)
		}
	}
	if gk := SlotWorld(SideLeft, f.Keeper, s.FieldWidth, s.FieldHeight); !(gk.X < s.BoxDepth()) {
		t.Errorf("keeper kicks off outside its box at x=%.1f", gk.X)
	}
	if lp := SlotWorld(SideLeft, f.Player, s.FieldWidth, s.FieldHeight); lp.X != s.FieldWidth/4 {
		t.Errorf("field player at x=%.1f, want a quarter pitch", lp.X)
	}
}

func TestPlaceResetsPlayer(t *testing.T) {
	p := testPlayer(RightPlayerID, V(10, 10), V(0, 1))
	p.Vel = V(50, 50)
	p.Tackling = true
	p.ShootCooldown = 0.2
	p.SlideCooldown = 0.9
	p.In = Intent{Shoot: true}
	p.keeper.enter(KeeperCharging)

	place(p, Slot{Forward: 320}, 1280, 720)
	if p.Pos != V(960, 360) || !p.Vel.IsZero() {
		t.Errorf("placed at %v moving %v", p.Pos, p.Vel)
	}
	if p.Facing != V(-1, 0) || p.Tackling || p.In.Shoot || p.KeeperState() != KeeperPositioning {
		t.Errorf("state not reset: %+v", p)
	}
	if p.ShootCooldown != 0 || p.SlideCooldown != 0 {
		t.Errorf("cooldowns carried over: shoot %.2f slide %.2f", p.ShootCooldown, p.SlideCooldown)
	}
}
