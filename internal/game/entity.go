package game

// Kind tags what a body is. Dispatch on it instead of on mass or type tests.
type Kind int

const (
	KindBall Kind = iota
	KindFieldPlayer
	KindKeeper
)

func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindFieldPlayer:
		return "player"
	case KindKeeper:
		return "keeper"
	default:
		return "unknown"
	}
}

// Side is one of the two teams. Left defends x=0, Right defends x=FieldWidth.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Opponent returns the other side.
func (s Side) Opponent() Side { return 1 - s }

// Attack returns the unit x direction this side attacks toward.
func (s Side) Attack() Vec2 {
	if s == SideLeft {
		return Vec2{1, 0}
	}
	return Vec2{-1, 0}
}

// Fixed body table ids. The match always has one ball and four players.
const (
	BallID        = 0
	LeftPlayerID  = 1
	RightPlayerID = 2
	LeftKeeperID  = 3
	RightKeeperID = 4

	// NoOwner marks a free ball.
	NoOwner = -1
)

// Body is the shared moving-body state.
type Body struct {
	ID             int
	Kind           Kind
	Pos            Vec2
	Vel            Vec2
	Radius         float64 // collision extent, px
	Mass           float64 // > 0
	Drag           float64 // exponential velocity decay, 1/s
	WallElasticity float64 // 0 = dead stop, 1 = perfect bounce
}

// InvMass returns 1/mass, or 0 for a non-positive mass.
func (b *Body) InvMass() float64 {
	if b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// IsBall reports whether the body is the ball.
func (b *Body) IsBall() bool { return b.Kind == KindBall }

// Ball is the match ball. Owner is a body id, never a pointer.
type Ball struct {
	Body
	Owner        int
	LastKickerID int
	JustKicked   float64 // seconds during which LastKickerID may not re-acquire
}

// Free reports whether nobody controls the ball.
func (b *Ball) Free() bool { return b.Owner == NoOwner }

// release clears ownership and stamps the kicker.
func (b *Ball) release(kickerID int, vel Vec2, justKicked float64) {
	b.Owner = NoOwner
	b.Vel = vel
	b.LastKickerID = kickerID
	b.JustKicked = justKicked
}

// Intent is one tick of input for a body. Shoot, Slide and SwitchKeeper are
// pulses: the match clears them after the tick that consumed them.
type Intent struct {
	Move         Vec2
	Shoot        bool
	Slide        bool
	SwitchKeeper bool
}

// Player is a controllable body: a field player or a keeper.
type Player struct {
	Body
	Side Side

	Accel    float64 // px/s^2
	MaxSpeed float64 // px/s
	TurnRate float64 // rad/s
	Facing   Vec2    // unit

	ShootCooldown float64
	SlideCooldown float64
	Tackling      bool
	TackleTimer   float64

	In           Intent
	IsGoalkeeper bool
	IsControlled bool

	dribble dribbleState
	keeper  keeperContext
}

// Speed returns the current speed magnitude.
func (p *Player) Speed() float64 { return p.Vel.Len() }

// KeeperState returns the keeper behaviour state (Positioning for field players).
func (p *Player) KeeperState() KeeperState { return p.keeper.state }

// HoldTime returns how long the keeper has held the ball.
func (p *Player) HoldTime() float64 { return p.keeper.hold }

func (p *Player) tickCooldowns(dt float64) {
	p.ShootCooldown = countdown(p.ShootCooldown, dt)
	p.SlideCooldown = countdown(p.SlideCooldown, dt)
}

// countdown decrements a timer toward zero, never below.
func countdown(t, dt float64) float64 {
	t -= dt
	if t < 0 {
		return 0
	}
	return t
}

var bodyLabels = [...]string{"BALL", "LP", "RP", "LK", "RK"}

// BodyLabel returns the short label of a body id, "--" when there is none.
func BodyLabel(id int) string {
	if id < 0 || id >= len(bodyLabels) {
		return "--"
	}
	return bodyLabels[id]
}
