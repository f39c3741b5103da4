package game

import "math"

// ContactFunc receives wall and post contacts of the ball. Speed is the
// impact speed along the contact normal.
type ContactFunc func(kind EventKind, b *Body, speed float64)

// Physics integrates free bodies and resolves their collisions in place.
type Physics struct {
	Params    PhysicsParams
	OnContact ContactFunc // optional
}

// NewPhysics returns an engine with the given restitutions.
func NewPhysics(p PhysicsParams) *Physics {
	return &Physics{Params: p}
}

// Step advances bodies by dt. An owned ball must not be in bodies.
func (ph *Physics) Step(dt float64, bodies []*Body, goals *Goals, fieldW, fieldH float64) {
	// 1. Integrate. Players apply their own drag with their input.
	for _, b := range bodies {
		if b.IsBall() {
			b.Vel = b.Vel.Scale(decay(b.Drag, dt))
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}

	// 2. Pairwise circle-circle.
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			ph.collide(bodies[i], bodies[j])
		}
	}

	// 3. Boundaries and posts.
	posts := goals.allPosts()
	for _, b := range bodies {
		if b.IsBall() {
			ph.bounceBall(b, goals, fieldW, fieldH)
			for _, p := range posts {
				ph.bounceOffPost(b, p)
			}
			continue
		}
		clampPlayer(b, fieldW, fieldH)
		for _, p := range posts {
			stopAtPost(b, p)
		}
	}
}

// restitution picks the coefficient for a pair by category.
func (ph *Physics) restitution(a, b *Body) float64 {
	if a.IsBall() || b.IsBall() {
		return ph.Params.BallRestitution
	}
	return ph.Params.PlayerRestitution
}

func (ph *Physics) collide(a, b *Body) {
	d := b.Pos.Sub(a.Pos)
	dist2 := d.Len2()
	rsum := a.Radius + b.Radius
	// Exact-centre overlap has no normal; skipped.
	if dist2 >= rsum*rsum || dist2 == 0 {
		return
	}
	dist := math.Sqrt(dist2)
	n := d.Scale(1 / dist)
	invA, invB := a.InvMass(), b.InvMass()
	invSum := invA + invB
	if invSum == 0 {
		return
	}

	// Relative velocity of b with respect to a; negative along n = approaching.
	relN := b.Vel.Sub(a.Vel).Dot(n)
	if relN < 0 {
		j := -(1 + ph.restitution(a, b)) * relN / invSum
		a.Vel = a.Vel.Sub(n.Scale(j * invA))
		b.Vel = b.Vel.Add(n.Scale(j * invB))
	}

	// De-penetrate by inverse-mass share; the lighter body moves more.
	overlap := rsum - dist
	a.Pos = a.Pos.Sub(n.Scale(overlap * invA / invSum))
	b.Pos = b.Pos.Add(n.Scale(overlap * invB / invSum))
}

func (ph *Physics) bounceBall(b *Body, goals *Goals, fieldW, fieldH float64) {
	e := b.WallElasticity
	if b.Pos.Y-b.Radius < 0 {
		ph.contact(EventWallBounce, b, math.Abs(b.Vel.Y))
		b.Pos.Y = b.Radius
		b.Vel.Y = -b.Vel.Y * e
	}
	if b.Pos.Y+b.Radius > fieldH {
		ph.contact(EventWallBounce, b, math.Abs(b.Vel.Y))
		b.Pos.Y = fieldH - b.Radius
		b.Vel.Y = -b.Vel.Y * e
	}
	// Inside the goal mouth the ball passes the end line uncontested.
	if goals.InMouth(b.Pos.Y) {
		return
	}
	if b.Pos.X-b.Radius < 0 {
		ph.contact(EventWallBounce, b, math.Abs(b.Vel.X))
		b.Pos.X = b.Radius
		b.Vel.X = -b.Vel.X * e
	}
	if b.Pos.X+b.Radius > fieldW {
		ph.contact(EventWallBounce, b, math.Abs(b.Vel.X))
		b.Pos.X = fieldW - b.Radius
		b.Vel.X = -b.Vel.X * e
	}
}

func (ph *Physics) bounceOffPost(b *Body, p Post) {
	d := b.Pos.Sub(p.Pos)
	dist2 := d.Len2()
	rsum := b.Radius + p.Radius
	if dist2 >= rsum*rsum || dist2 == 0 {
		return
	}
	dist := math.Sqrt(dist2)
	n := d.Scale(1 / dist)
	b.Pos = b.Pos.Add(n.Scale(rsum - dist))
	vn := b.Vel.Dot(n)
	if vn < 0 {
		ph.contact(EventPostHit, b, -vn)
		b.Vel = b.Vel.Sub(n.Scale((1 + b.WallElasticity) * vn))
	}
}

func (ph *Physics) contact(kind EventKind, b *Body, speed float64) {
	if ph.OnContact != nil {
		ph.OnContact(kind, b, speed)
	}
}

// clampPlayer snaps a player inside the field and zeroes the velocity
// component driving into the edge. Goal mouths are closed to players.
func clampPlayer(b *Body, fieldW, fieldH float64) {
	if b.Pos.Y-b.Radius < 0 {
		b.Pos.Y = b.Radius
		b.Vel.Y = math.Max(b.Vel.Y, 0)
	}
	if b.Pos.Y+b.Radius > fieldH {
		b.Pos.Y = fieldH - b.Radius
		b.Vel.Y = math.Min(b.Vel.Y, 0)
	}
	if b.Pos.X-b.Radius < 0 {
		b.Pos.X = b.Radius
		b.Vel.X = math.Max(b.Vel.X, 0)
	}
	if b.Pos.X+b.Radius > fieldW {
		b.Pos.X = fieldW - b.Radius
		b.Vel.X = math.Min(b.Vel.X, 0)
	}
}

// stopAtPost pushes a player out of a post without bouncing, so a player
// leaning on a post does not jitter.
func stopAtPost(b *Body, p Post) {
	d := b.Pos.Sub(p.Pos)
	dist2 := d.Len2()
	rsum := b.Radius + p.Radius
	if dist2 >= rsum*rsum || dist2 == 0 {
		return
	}
	dist := math.Sqrt(dist2)
	n := d.Scale(1 / dist)
	b.Pos = b.Pos.Add(n.Scale(rsum - dist))
	if vn := b.Vel.Dot(n); vn < 0 {
		b.Vel = b.Vel.Sub(n.Scale(vn))
	}
}
