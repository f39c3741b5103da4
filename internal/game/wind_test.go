package game

import "testing"

func TestWindDisabledDoesNothing(t *testing.T) {
	w := NewWind(DefaultSettings().Wind)
	ball := testBall(V(640, 360), V(10, 0))
	lp := testPlayer(LeftPlayerID, V(300, 360), V(1, 0))
	for i := 0; i < 600; i++ {
		if w.Step(testDT, ball, []*Player{lp}) {
			t.Fatal("gust while disabled")
		}
	}
	if ball.Vel != V(10, 0) || !lp.Vel.IsZero() {
		t.Errorf("disabled wind pushed: ball %v player %v", ball.Vel, lp.Vel)
	}
	if w.DragScale(KindBall) != 1 || w.DragScale(KindKeeper) != 1 {
		t.Error("drag scaled while disabled")
	}
}

func TestWindSeedReplays(t *testing.T) {
	run := func(seed int64) ([]int, Vec2) {
		p := DefaultSettings().Wind
		p.Seed = seed
		w := NewWind(p)
		w.Enabled = true
		ball := testBall(V(640, 360), Vec2{})
		var gusts []int
		for i := 0; i < 1200; i++ {
			if w.Step(testDT, ball, nil) {
				gusts = append(gusts, i)
			}
		}
		return gusts, ball.Vel
	}

	g1, v1 := run(3)
	g2, v2 := run(3)
	if len(g1) == 0 {
		t.Fatal("no gusts in 20s")
	}
	if len(g1) != len(g2) || v1 != v2 {
		t.Fatalf("same seed diverged: %v/%v vs %v/%v", g1, v1, g2, v2)
	}
	for i := range g1 {
		if g1[i] != g2[i] {
			t.Fatalf("gust %d at tick %d vs %d", i, g1[i], g2[i])
		}
	}
	if g3, v3 := run(4); v3 == v1 && len(g3) == len(g1) {
		t.Error("different seeds gave the same wind")
	}
}

func TestWindGustSkipsOwnedBall(t *testing.T) {
	p := DefaultSettings().Wind
	w := NewWind(p)
	w.Enabled = true
	ball := testBall(V(640, 360), Vec2{})
	ball.Owner = LeftPlayerID
	for i := 0; i < 1200; i++ {
		if w.Step(testDT, ball, nil) {
			t.Fatalf("tick %d: gust on an owned ball", i)
		}
	}
}

func TestWindScalesOwnedPush(t *testing.T) {
	p := DefaultSettings().Wind
	free, owned := NewWind(p), NewWind(p)
	free.Enabled, owned.Enabled = true, true
	fb := testBall(V(640, 360), Vec2{})
	ob := testBall(V(640, 360), Vec2{})
	ob.Owner = LeftPlayerID

	free.Step(testDT, fb, nil)
	owned.Step(testDT, ob, nil)
	want := fb.Vel.Len() * p.OwnerScale
	if d := ob.Vel.Len() - want; d > 1e-9 || d < -1e-9 {
		t.Errorf("owned push %.4f, want %.4f", ob.Vel.Len(), want)
	}
}

func TestMatchWindScalesDrag(t *testing.T) {
	s := DefaultSettings()
	m := NewMatch(s, WithWind(true))
	if got, want := m.Ball().Drag, s.Ball.Drag*s.Wind.DragScaleBall; got != want {
		t.Errorf("ball drag %v, want %v", got, want)
	}
	m.SetWind(false)
	if m.Ball().Drag != s.Ball.Drag {
		t.Errorf("ball drag %v not restored", m.Ball().Drag)
	}
	for _, p := range m.Players() {
		if p.Drag != s.Player.Drag {
			t.Errorf("%s drag %v not restored", BodyLabel(p.ID), p.Drag)
		}
	}
}
