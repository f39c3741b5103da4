package game

import (
	"math"
	"testing"
)

func TestSmoothDampConverges(t *testing.T) {
	var vel Vec2
	pos := V(0, 0)
	target := V(100, 0)
	for i := 0; i < 120; i++ {
		pos = smoothDamp(pos, target, &vel, 0.12, testDT)
		if pos.X > target.X+1e-6 {
			t.Fatalf("tick %d overshot to %v", i, pos.X)
		}
	}
	if pos.Dist(target) > 0.5 {
		t.Errorf("did not converge: %v", pos)
	}
}

func TestDribbleTetherLoss(t *testing.T) {
	d := NewDribble(DefaultSettings().Dribble)
	lp := testPlayer(LeftPlayerID, V(400, 360), V(1, 0))
	ball := testBall(V(400+d.Lead(testBall(Vec2{}, Vec2{}), lp)+d.Params.LoseDistance+5, 360), Vec2{})
	ball.Owner = lp.ID

	if d.Update(ball, lp, testDT) {
		t.Fatal("ball beyond the tether still controlled")
	}
	if !ball.Free() {
		t.Errorf("owner %d, want free", ball.Owner)
	}
}

func TestDribbleIdleSettles(t *testing.T) {
	d := NewDribble(DefaultSettings().Dribble)
	lp := testPlayer(LeftPlayerID, V(400, 360), V(1, 0))
	ball := testBall(V(445, 352), V(60, 30))
	ball.Owner = lp.ID

	for i := 0; i < 180; i++ {
		if !d.Update(ball, lp, testDT) {
			t.Fatalf("tick %d: lost the ball while standing", i)
		}
	}
	lead := d.Lead(ball, lp)
	target := lp.Pos.Add(V(lead, d.Params.LateralBias))
	if ball.Pos.Dist(target) > 1e-6 {
		t.Errorf("ball at %v, want settled at %v", ball.Pos, target)
	}
	if ball.Vel.Len() > 1 {
		t.Errorf("ball still moving at %v", ball.Vel.Len())
	}
}

func TestDribbleLeadsRunningCarrier(t *testing.T) {
	s := DefaultSettings()
	d := NewDribble(s.Dribble)
	lp := testPlayer(LeftPlayerID, V(200, 360), V(1, 0))
	lp.Vel = V(s.Player.MaxSpeed, 0)
	ball := testBall(V(235, 360), Vec2{})
	ball.Owner = lp.ID

	maxStep := s.Dribble.MaxSpeed*testDT + 1e-9
	for i := 0; i < 120; i++ {
		lp.Pos = lp.Pos.Add(lp.Vel.Scale(testDT))
		prev := ball.Pos
		if !d.Update(ball, lp, testDT) {
			t.Fatalf("tick %d: lost the ball while running straight", i)
		}
		if step := ball.Pos.Dist(prev); step > maxStep {
			t.Fatalf("tick %d: ball moved %.2fpx, limit %.2f", i, step, maxStep)
		}
		if ball.Vel.Len() > s.Dribble.MaxSpeed+1e-9 {
			t.Fatalf("tick %d: ball speed %.1f above dribble ceiling", i, ball.Vel.Len())
		}
	}
	if ball.Pos.X <= lp.Pos.X+lp.Radius {
		t.Errorf("ball at x=%.1f not ahead of carrier at %.1f", ball.Pos.X, lp.Pos.X)
	}
	if ball.Vel.X <= 0 {
		t.Errorf("ball not carried forward: %v", ball.Vel)
	}
}

func TestDribbleLeadGrowsWithSpeed(t *testing.T) {
	d := NewDribble(DefaultSettings().Dribble)
	ball := testBall(Vec2{}, Vec2{})
	lp := testPlayer(LeftPlayerID, V(400, 360), V(1, 0))
	still := d.Lead(ball, lp)
	lp.Vel = V(200, 0)
	if running := d.Lead(ball, lp); running <= still {
		t.Errorf("lead %.1f running, %.1f standing", running, still)
	}
}

func TestDribbleIgnoresOtherOwner(t *testing.T) {
	d := NewDribble(DefaultSettings().Dribble)
	lp := testPlayer(LeftPlayerID, V(400, 360), V(1, 0))
	ball := testBall(V(900, 100), V(10, 0))
	ball.Owner = RightPlayerID
	if !d.Update(ball, lp, testDT) || ball.Pos != V(900, 100) || ball.Owner != RightPlayerID {
		t.Errorf("non-owner changed the ball: %+v", ball)
	}
	if math.IsNaN(ball.Vel.X) {
		t.Error("NaN velocity")
	}
}

func TestDribbleCarryHoldsAtAnyScale(t *testing.T) {
	for _, ppm := range []float64{20, 40, 80} {
		s := DefaultSettings().AtScale(ppm)
		start := V(s.FieldWidth*0.15, s.FieldHeight*0.25)
		ts := NewTestSim(
			WithSettings(s),
			WithPhase(PhasePlaying, 0),
			WithBody(LeftPlayerID, start, Vec2{}, V(1, 0)),
			WithBall(start.Add(V(s.Player.Radius+s.Ball.Radius+s.Dribble.ExtraLead, 0)), Vec2{}),
			WithOwner(LeftPlayerID),
		)
		ts.Hold[SideLeft] = Intent{Move: V(1, 0)}

		lost := ts.RunUntil(func(ts *TestSim) bool { return ts.Match.Ball().Owner != LeftPlayerID }, 120)
		if lost >= 0 {
			t.Errorf("ppm=%v: lost the ball at tick %d running straight", ppm, lost)
			continue
		}
		lp := ts.Match.FieldPlayer(SideLeft)
		if run := (lp.Pos.X - start.X) / ppm; run < 5 {
			t.Errorf("ppm=%v: carried only %.1fm", ppm, run)
		}
	}
}
