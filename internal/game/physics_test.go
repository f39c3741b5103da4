package game

import (
	"math"
	"testing"
)

const testDT = 1.0 / 60.0

// testBall returns a free reference ball at pos moving at vel.
func testBall(pos, vel Vec2) *Ball {
	s := DefaultSettings()
	return &Ball{
		Body: Body{
			ID: BallID, Kind: KindBall, Pos: pos, Vel: vel,
			Radius: s.Ball.Radius, Mass: s.Ball.Mass, Drag: s.Ball.Drag, WallElasticity: s.Ball.WallElasticity,
		},
		Owner:        NoOwner,
		LastKickerID: NoOwner,
	}
}

func testPlayer(id int, pos, facing Vec2) *Player {
	s := DefaultSettings()
	kind, side, spec := KindFieldPlayer, SideLeft, s.Player
	if id == RightPlayerID || id == RightKeeperID {
		side = SideRight
	}
	if id == LeftKeeperID || id == RightKeeperID {
		kind, spec = KindKeeper, s.Keeper
	}
	p := newPlayer(id, kind, side, spec)
	p.Pos = pos
	if !facing.IsZero() {
		p.Facing = facing.Normalized()
	}
	return p
}

func stepPhysics(bodies ...*Body) {
	s := DefaultSettings()
	ph := NewPhysics(s.Physics)
	goals := NewGoals(s.FieldWidth, s.FieldHeight, s.GoalHalfHeight, s.PostRadius)
	ph.Step(testDT, bodies, goals, s.FieldWidth, s.FieldHeight)
}

func TestDragDecay(t *testing.T) {
	for _, dt := range []float64{1.0 / 240, 1.0 / 60, 1.0 / 20, 0.5} {
		b := testBall(V(640, 360), V(300, 0))
		s := DefaultSettings()
		NewPhysics(s.Physics).Step(dt, []*Body{&b.Body},
			NewGoals(s.FieldWidth, s.FieldHeight, s.GoalHalfHeight, s.PostRadius), s.FieldWidth, s.FieldHeight)
		want := 300 * math.Exp(-s.Ball.Drag*dt)
		if got := b.Vel.Len(); math.Abs(got-want) > 1e-9 {
			t.Errorf("dt=%v: speed %v, want %v", dt, got, want)
		}
	}
}

func TestWallBounceTop(t *testing.T) {
	b := testBall(V(640, 10), V(0, -200))
	stepPhysics(&b.Body)

	if b.Pos.Y != b.Radius {
		t.Errorf("y = %v, want radius %v", b.Pos.Y, b.Radius)
	}
	vIn := 200 * math.Exp(-b.Drag*testDT)
	want := vIn * b.WallElasticity
	if math.Abs(b.Vel.Y-want) > 1e-9 {
		t.Errorf("rebound vy = %v, want %v", b.Vel.Y, want)
	}
}

func TestWallBounceLosesSpeed(t *testing.T) {
	b := testBall(V(640, 100), V(0, -900))
	b.Drag = 0
	s := DefaultSettings()
	ph := NewPhysics(s.Physics)
	goals := NewGoals(s.FieldWidth, s.FieldHeight, s.GoalHalfHeight, s.PostRadius)

	var bounces []float64
	ph.OnContact = func(kind EventKind, _ *Body, speed float64) {
		if kind == EventWallBounce {
			bounces = append(bounces, speed)
		}
	}
	for i := 0; i < 600; i++ {
		ph.Step(testDT, []*Body{&b.Body}, goals, s.FieldWidth, s.FieldHeight)
	}
	if len(bounces) < 2 {
		t.Fatalf("expected repeated bounces, got %d", len(bounces))
	}
	for i := 1; i < len(bounces); i++ {
		if bounces[i] >= bounces[i-1] {
			t.Errorf("bounce %d at %.1f not slower than %.1f", i, bounces[i], bounces[i-1])
		}
	}
}

func TestGoalMouthPassthrough(t *testing.T) {
	// Inside the mouth the end line is open.
	in := testBall(V(5, 360), V(-300, 0))
	stepPhysics(&in.Body)
	if in.Vel.X >= 0 {
		t.Errorf("ball in mouth bounced: vel %v", in.Vel)
	}

	// Outside the mouth the end line is a wall.
	out := testBall(V(10, 100), V(-300, 0))
	stepPhysics(&out.Body)
	if out.Vel.X <= 0 {
		t.Errorf("ball outside mouth passed the line: vel %v", out.Vel)
	}
	if out.Pos.X != out.Radius {
		t.Errorf("x = %v, want radius", out.Pos.X)
	}
}

func TestPostBounce(t *testing.T) {
	s := DefaultSettings()
	postY := s.FieldHeight/2 - s.GoalHalfHeight
	b := testBall(V(s.FieldWidth-20, postY+4), V(600, 0))
	var hits int
	ph := NewPhysics(s.Physics)
	ph.OnContact = func(kind EventKind, _ *Body, _ float64) {
		if kind == EventPostHit {
			hits++
		}
	}
	goals := NewGoals(s.FieldWidth, s.FieldHeight, s.GoalHalfHeight, s.PostRadius)
	for i := 0; i < 5; i++ {
		ph.Step(testDT, []*Body{&b.Body}, goals, s.FieldWidth, s.FieldHeight)
	}
	if hits == 0 {
		t.Fatal("no post contact reported")
	}
	if b.Vel.X >= 0 {
		t.Errorf("ball kept moving into the post: vel %v", b.Vel)
	}
}

// Scenario C: head-on collision de-penetrates and obeys restitution.
func TestHeadOnCollision(t *testing.T) {
	s := DefaultSettings()
	a := testPlayer(LeftPlayerID, V(600, 360), V(1, 0))
	b := testPlayer(RightPlayerID, V(630, 360), V(-1, 0))
	a.Vel = V(100, 0)
	b.Vel = V(-100, 0)

	stepPhysics(&a.Body, &b.Body)

	rsum := a.Radius + b.Radius
	if d := a.Pos.Dist(b.Pos); d < rsum-1e-9 {
		t.Errorf("still overlapping: dist %v < %v", d, rsum)
	}
	n := b.Pos.Sub(a.Pos).Normalized()
	relAfter := b.Vel.Sub(a.Vel).Dot(n)
	want := s.Physics.PlayerRestitution * 200
	if math.Abs(relAfter-want) > 1e-9 {
		t.Errorf("separating speed %v, want %v", relAfter, want)
	}
	// Equal masses: momentum stays zero.
	if p := a.Vel.Add(b.Vel); p.Len() > 1e-9 {
		t.Errorf("momentum not conserved: %v", p)
	}
}

func TestBallPlayerUsesBallRestitution(t *testing.T) {
	s := DefaultSettings()
	p := testPlayer(LeftPlayerID, V(600, 360), V(1, 0))
	b := testBall(V(620, 360), V(-200, 0))
	b.Drag = 0

	stepPhysics(&p.Body, &b.Body)

	n := b.Pos.Sub(p.Pos).Normalized()
	rel := b.Vel.Sub(p.Vel).Dot(n)
	want := s.Physics.BallRestitution * 200
	if math.Abs(rel-want) > 1e-6 {
		t.Errorf("separating speed %v, want %v", rel, want)
	}
	// The light ball takes almost all the correction.
	if p.Pos.X < 599.9 {
		t.Errorf("player pushed to %v", p.Pos.X)
	}
}

func TestExactOverlapSkipped(t *testing.T) {
	a := testPlayer(LeftPlayerID, V(600, 360), V(1, 0))
	b := testPlayer(RightPlayerID, V(600, 360), V(-1, 0))
	stepPhysics(&a.Body, &b.Body)
	if math.IsNaN(a.Pos.X) || math.IsNaN(b.Pos.X) {
		t.Fatal("NaN after exact overlap")
	}
	if a.Pos != b.Pos {
		t.Errorf("exact overlap resolved unexpectedly: %v %v", a.Pos, b.Pos)
	}
}

func TestPlayerClampedNotBounced(t *testing.T) {
	p := testPlayer(LeftPlayerID, V(640, 17), V(0, -1))
	p.Vel = V(50, -300)
	stepPhysics(&p.Body)
	if p.Pos.Y != p.Radius {
		t.Errorf("y = %v, want %v", p.Pos.Y, p.Radius)
	}
	if p.Vel.Y != 0 {
		t.Errorf("inward velocity not zeroed: %v", p.Vel)
	}
	if p.Vel.X != 50 {
		t.Errorf("tangential velocity changed: %v", p.Vel)
	}
}
