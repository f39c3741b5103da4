package game

// Post is a goal post; the ball bounces off it, players are stopped by it.
type Post struct {
	Pos    Vec2
	Radius float64
}

// Goals holds both goal mouths and the running score.
type Goals struct {
	Posts [2][2]Post // [side][top, bottom]
	Score [2]int     // goals scored by each side
	Y1    float64    // top of the goal mouth
	Y2    float64    // bottom of the goal mouth
	width float64
}

// NewGoals places posts at both goal lines around the vertical centre.
func NewGoals(fieldW, fieldH, halfHeight, postRadius float64) *Goals {
	cy := fieldH / 2
	g := &Goals{Y1: cy - halfHeight, Y2: cy + halfHeight, width: fieldW}
	for side, x := range [2]float64{0, fieldW} {
		g.Posts[side][0] = Post{Pos: Vec2{x, g.Y1}, Radius: postRadius}
		g.Posts[side][1] = Post{Pos: Vec2{x, g.Y2}, Radius: postRadius}
	}
	return g
}

// InMouth reports whether y lies strictly inside the goal-mouth span.
func (g *Goals) InMouth(y float64) bool {
	return y > g.Y1 && y < g.Y2
}

// Center returns the centre of the goal defended by side.
func (g *Goals) Center(side Side) Vec2 {
	return Vec2{g.Posts[side][0].Pos.X, (g.Y1 + g.Y2) / 2}
}

// allPosts returns the four posts in a fixed order.
func (g *Goals) allPosts() [4]Post {
	return [4]Post{g.Posts[0][0], g.Posts[0][1], g.Posts[1][0], g.Posts[1][1]}
}

// Check returns the scoring side when the ball has crossed a goal line inside
// the mouth. It does not look at ownership; the caller gates on a free ball.
func (g *Goals) Check(b *Ball) (Side, bool) {
	if !g.InMouth(b.Pos.Y) {
		return 0, false
	}
	if b.Pos.X-b.Radius < 0 {
		return SideRight, true
	}
	if b.Pos.X+b.Radius > g.width {
		return SideLeft, true
	}
	return 0, false
}
