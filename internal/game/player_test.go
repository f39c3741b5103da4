package game

import (
	"math"
	"testing"
)

func TestApplyInputCapsSpeed(t *testing.T) {
	lp := testPlayer(LeftPlayerID, V(400, 360), V(1, 0))
	for i := 0; i < 300; i++ {
		lp.In = Intent{Move: V(3, 0)}
		lp.applyInput(testDT)
		if lp.Speed() > lp.MaxSpeed+1e-9 {
			t.Fatalf("tick %d: speed %.2f above max %.2f", i, lp.Speed(), lp.MaxSpeed)
		}
	}
	if lp.Vel.X <= 0 || math.Abs(lp.Vel.Y) > 1e-9 {
		t.Errorf("velocity %v not along the move axis", lp.Vel)
	}
}

func TestFacingTurnsAtBoundedRate(t *testing.T) {
	lp := testPlayer(LeftPlayerID, V(400, 360), V(1, 0))
	limit := lp.TurnRate*testDT + 1e-9
	for i := 0; i < 120; i++ {
		prev := lp.Facing
		lp.In = Intent{Move: V(0, 1)}
		lp.applyInput(testDT)
		if turn := math.Acos(clamp(prev.Dot(lp.Facing), -1, 1)); turn > limit {
			t.Fatalf("tick %d: turned %.4f rad, limit %.4f", i, turn, limit)
		}
		if math.Abs(lp.Facing.Len()-1) > 1e-9 {
			t.Fatalf("tick %d: facing not unit: %v", i, lp.Facing)
		}
	}
	if lp.Facing.Dot(V(0, 1)) < 0.999 {
		t.Errorf("facing %v never reached the move axis", lp.Facing)
	}
}

func TestTacklingIgnoresInput(t *testing.T) {
	s := DefaultSettings()
	lp := testPlayer(LeftPlayerID, V(400, 360), V(1, 0))
	ball := testBall(V(900, 100), Vec2{})
	if started, _ := lp.trySlide(ball, s.Tackle, false); !started {
		t.Fatal("slide did not start")
	}
	lp.In = Intent{Move: V(0, 1)}
	lp.applyInput(testDT)
	if lp.Vel.Y != 0 || lp.Vel.X <= 0 || lp.Vel.X >= s.Tackle.DashSpeed {
		t.Errorf("sliding velocity %v; want decaying dash along facing", lp.Vel)
	}
	if started, _ := lp.trySlide(ball, s.Tackle, false); started {
		t.Error("second slide started mid-tackle")
	}
}

func TestShootReachAndCooldown(t *testing.T) {
	s := DefaultSettings()
	lp := testPlayer(LeftPlayerID, V(400, 360), V(1, 0))

	far := testBall(V(460, 360), Vec2{})
	if lp.tryShoot(far, s.Kick) {
		t.Fatal("shot a ball out of reach")
	}

	near := testBall(V(400+lp.Radius+s.Ball.Radius+s.Kick.ReachMargin-1, 360), Vec2{})
	if !lp.tryShoot(near, s.Kick) {
		t.Fatal("no shot on a ball within reach")
	}
	if v := near.Vel.Len(); v < s.Kick.SpeedMin-1e-9 || v > s.Kick.SpeedMax+1e-9 {
		t.Errorf("shot speed %.1f outside [%.0f, %.0f]", v, s.Kick.SpeedMin, s.Kick.SpeedMax)
	}
	if near.LastKickerID != lp.ID || near.JustKicked != s.Kick.JustKicked {
		t.Errorf("kick not stamped: last=%d just=%v", near.LastKickerID, near.JustKicked)
	}
	near.Pos = V(430, 360)
	near.Vel = Vec2{}
	if lp.tryShoot(near, s.Kick) {
		t.Error("shot again during cooldown")
	}
}

func TestSlideKnocksLooseButNotKeeperHeld(t *testing.T) {
	s := DefaultSettings()
	lp := testPlayer(LeftPlayerID, V(400, 360), V(1, 0))
	ball := testBall(V(430, 360), Vec2{})
	ball.Owner = RightPlayerID

	if _, knocked := lp.trySlide(ball, s.Tackle, false); !knocked {
		t.Fatal("slide in reach did not knock the ball loose")
	}
	if !ball.Free() || math.Abs(ball.Vel.Len()-s.Tackle.DislodgeSpeed) > 1e-9 {
		t.Errorf("owner %d vel %v after knock", ball.Owner, ball.Vel)
	}

	rp := testPlayer(RightPlayerID, V(160, 360), V(-1, 0))
	held := testBall(V(130, 360), Vec2{})
	held.Owner = LeftKeeperID
	if _, knocked := rp.trySlide(held, s.Tackle, true); knocked || held.Owner != LeftKeeperID {
		t.Error("slide took a ball held by the keeper")
	}
}
