package game

import (
	"strings"
	"testing"
)

func TestReporterCountsShotAndGoal(t *testing.T) {
	ts := NewTestSim(
		WithPhase(PhasePlaying, 0),
		WithBody(RightKeeperID, V(1240, 100), Vec2{}, Vec2{}),
		WithBody(LeftPlayerID, V(1150, 360), Vec2{}, V(1, 0)),
		WithBall(V(1180, 360), Vec2{}),
		WithOwner(LeftPlayerID),
	)
	rep := NewReporter()
	ts.Press(SideLeft, Intent{Shoot: true})
	for i := 0; i < 60 && ts.Match.Phase() == PhasePlaying; i++ {
		ts.RunTicks(1)
		rep.Observe(ts.Match, ts.DT)
	}

	r := rep.Report()
	left := r.Sides[SideLeft]
	if left.Shots != 1 || left.Goals != 1 || left.OnTarget != 1 {
		dumpLog(t, ts, -1)
		t.Fatalf("left shots=%d goals=%d on_target=%d, want 1/1/1", left.Shots, left.Goals, left.OnTarget)
	}
	if r.FirstGoal <= 0 {
		t.Errorf("first goal tick %d", r.FirstGoal)
	}
	if r.Phase != PhaseGoalFreeze {
		t.Errorf("phase %s", r.Phase)
	}
	out := r.Format()
	if !strings.Contains(out, "Score: left 1 - 0 right") {
		t.Errorf("report missing score line:\n%s", out)
	}
}

func TestReporterCountsTackle(t *testing.T) {
	rep := NewReporter()
	ts := NewTestSim(
		WithPhase(PhasePlaying, 0),
		WithBody(LeftPlayerID, V(640, 360), Vec2{}, V(1, 0)),
		WithBody(RightPlayerID, V(700, 360), Vec2{}, V(-1, 0)),
		WithBall(V(670, 360), Vec2{}),
		WithOwner(RightPlayerID),
	)
	ts.Press(SideLeft, Intent{Slide: true})
	ts.RunTicks(1)
	rep.Observe(ts.Match, ts.DT)

	r := rep.Report()
	if r.Sides[SideLeft].Tackles != 1 || r.Sides[SideLeft].TacklesWon != 1 {
		t.Errorf("left tackles=%d won=%d", r.Sides[SideLeft].Tackles, r.Sides[SideLeft].TacklesWon)
	}
	if r.Sides[SideRight].Dispossessed != 1 {
		t.Errorf("right dispossessed=%d", r.Sides[SideRight].Dispossessed)
	}
	if r.Elapsed <= 0 {
		t.Error("playing time not counted")
	}
}

func TestSideStatsAdd(t *testing.T) {
	a := SideStats{Shots: 2, Catches: 1, Possession: 3}
	b := SideStats{Shots: 1, Parries: 2, Possession: 1.5}
	sum := a.Add(b)
	if sum.Shots != 3 || sum.Saves() != 3 || sum.Possession != 4.5 {
		t.Errorf("sum %+v", sum)
	}
}
