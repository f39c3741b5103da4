package game

import "math"

// Vec2 is a 2D vector in pixel space. Operations return new values.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Len2() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }
func (v Vec2) Dist2(o Vec2) float64 { return v.Sub(o).Len2() }
func (v Vec2) Lerp(o Vec2, t float64) Vec2 { return v.Add(o.Sub(v).Scale(t)) }

// Normalized returns the unit vector, or the zero vector for zero-length input.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// ClampLen caps the vector magnitude at max.
func (v Vec2) ClampLen(max float64) Vec2 {
	l2 := v.Len2()
	if l2 <= max*max || l2 == 0 {
		return v
	}
	return v.Scale(max / math.Sqrt(l2))
}

// Rotate turns the vector by angle radians (positive = toward +y).
func (v Vec2) Rotate(angle float64) Vec2 {
	cs, sn := math.Cos(angle), math.Sin(angle)
	return Vec2{v.X*cs - v.Y*sn, v.X*sn + v.Y*cs}
}

// unitOr normalizes v, falling back to def when v is (nearly) zero.
func unitOr(v, def Vec2) Vec2 {
	n := v.Normalized()
	if n.Len2() < 1e-12 {
		return def
	}
	return n
}

// RotateToward turns direction from toward to by at most maxRad radians and
// returns a unit vector. Zero inputs are treated as +x.
func RotateToward(from, to Vec2, maxRad float64) Vec2 {
	f := unitOr(from, Vec2{1, 0})
	t := unitOr(to, Vec2{1, 0})
	ang := math.Acos(clamp(f.Dot(t), -1, 1))
	if ang <= maxRad || ang < 1e-4 {
		return t
	}
	if f.Cross(t) >= 0 {
		return f.Rotate(maxRad)
	}
	return f.Rotate(-maxRad)
}

// pointSegDist2 returns the squared distance from p to segment ab and the
// projection parameter t in [0,1].
func pointSegDist2(a, b, p Vec2) (float64, float64) {
	ab := b.Sub(a)
	l2 := ab.Len2()
	if l2 < 1e-6 {
		return p.Dist2(a), 0
	}
	t := clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return p.Dist2(a.Add(ab.Scale(t))), t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// decay returns the exponential velocity retention factor for drag over dt.
func decay(drag, dt float64) float64 {
	return math.Exp(-drag * dt)
}
