package game

import (
	"errors"
	"fmt"
	"math"
)

// referencePPM is the pixels-per-metre scale the reference tuning is written in.
const referencePPM = 40.0

// BodySpec is the static physical description of a body.
type BodySpec struct {
	Radius         float64
	Mass           float64
	Drag           float64
	WallElasticity float64
}

// PlayerSpec adds movement tuning to a BodySpec.
type PlayerSpec struct {
	BodySpec
	Accel    float64
	MaxSpeed float64
	TurnRate float64 // rad/s
}

// KickParams tunes the shoot action.
type KickParams struct {
	SpeedMin       float64 // px/s
	SpeedMax       float64 // px/s
	RunBonus       float64 // fraction of carrier speed added to the shot
	ReachMargin    float64 // px beyond touching for a first-time shot
	Cooldown       float64
	JustKicked     float64 // re-pickup lockout for the kicker
	PickupCooldown float64 // shared lockout after any shot
}

// TackleParams tunes the slide tackle.
type TackleParams struct {
	DashSpeed      float64
	Duration       float64
	Cooldown       float64
	InterceptSlack float64 // px beyond touching that still knocks the ball
	DislodgeSpeed  float64
}

// PhysicsParams are the collision restitutions.
type PhysicsParams struct {
	BallRestitution   float64 // any pair involving the ball
	PlayerRestitution float64 // player vs player
}

// PossessionParams tune free-ball pickup.
type PossessionParams struct {
	ConeCos        float64 // ball must lie within this cosine of facing
	FieldMargin    float64 // capture range beyond touching, field players
	KeeperMargin   float64 // capture range beyond touching, keepers
	FieldMaxSpeed  float64 // ball must be slower than this for field players
	KeeperMaxSpeed float64 // and slower than this for keepers
}

// DribbleParams tune close control of an owned ball.
type DribbleParams struct {
	SmoothTimeMove float64 // smoothing time while the carrier runs
	SmoothTimeStop float64 // smoothing time while the carrier stands
	TurnRate       float64 // rad/s, ball heading turn limit
	ExtraLead      float64 // px ahead of the carrier's feet
	LeadSpeedK     float64 // extra lead per px/s of carrier speed
	LateralBias    float64 // px to the carrier's strong side
	TargetDeadRad  float64 // snap radius when nearly stationary
	MovingSpeed    float64 // carrier speed above which it counts as running
	MaxSpeed       float64 // ball never moves faster than this
	MinSpeed       float64
	CarryFactor    float64 // share of carrier speed given to the ball
	LoseDistance   float64 // tether slack beyond the lead distance
	IdleDamping    float64 // velocity decay while the carrier stands
}

// KeeperParams tune the keeper behaviour state machine.
type KeeperParams struct {
	BoxDepthRatio     float64 // penalty box depth as a share of field width
	TurnRate          float64 // rad/s
	WalkFactor        float64 // share of max speed while positioning
	RushFactor        float64 // share of max speed while charging
	ChargeExtendRatio float64 // extra range outside the box while charging
	CutFraction       float64 // cutoff point: goal centre toward ball
	InterceptLead     float64 // seconds of ball velocity to lead a charge
	MinCharge         float64 // minimum charge duration
	ActiveRatio       float64 // keeper reacts when the ball is within this share of width
	NearBoxFactor     float64 // charge only while ball is within box + this*depth
	AwayBoxFactor     float64 // abort charge once ball is beyond box + this*depth
	PastMateMargin    float64 // attacker must be this far past the defender
	ReachMargin       float64 // contact range beyond touching
	ShadowMargin      float64 // attacker body widening for the catch shadow
	CatchSpeed        float64
	ParrySpeed        float64 // ceiling inside the box
	ParrySpeedOutside float64 // ceiling outside the box
	ParryMinSpeed     float64
	ClearSpeed        float64
	MaxHold           float64
	AutoClearDelay    float64 // AI keeper holds at least this long
	AutoClearAngle    float64 // rad, AI clears once facing the target this closely
	PressureRadius    float64 // attacker this close hurries an AI clear
	PickupCooldown    float64 // shared lockout after a clear
	HoldGap           float64 // px between keeper and held ball
	VelBlendRate      float64 // 1/s, how quickly velocity follows the desired one
	EdgeMarginX       float64
	EdgeMarginY       float64
	GoalInset         float64
}

// MatchParams are the orchestrator durations.
type MatchParams struct {
	Halves      int
	HalfSeconds float64
	KickoffLock float64
	GoalFreeze  float64
	HalfBreak   float64
}

// WindParams tune the optional external force.
type WindParams struct {
	Enabled         bool
	Seed            int64
	BaseMin         float64 // px/s^2
	BaseMax         float64
	DirChangeMin    float64 // s
	DirChangeMax    float64
	GustIntervalMin float64
	GustIntervalMax float64
	GustPower       float64 // px/s added to a free ball
	OwnerScale      float64 // wind share for owned ball and players
	DragScaleBall   float64
	DragScalePlayer float64
}

// Settings is the full static configuration of a match, in pixels and seconds.
type Settings struct {
	FieldWidth     float64
	FieldHeight    float64
	PixelsPerMeter float64
	GoalHalfHeight float64
	PostRadius     float64

	Ball   BodySpec
	Player PlayerSpec
	Keeper PlayerSpec
	// KeeperFrontOffset is the kickoff distance of a keeper from its goal line.
	KeeperFrontOffset float64

	Kick       KickParams
	Tackle     TackleParams
	Physics    PhysicsParams
	Possession PossessionParams
	Dribble    DribbleParams
	Keepers    KeeperParams
	Match      MatchParams
	Wind       WindParams
}

// DefaultSettings returns the reference tuning on a 32x18 m pitch at 40 px/m.
func DefaultSettings() Settings {
	const ppm = referencePPM
	return Settings{
		FieldWidth:     32 * ppm,
		FieldHeight:    18 * ppm,
		PixelsPerMeter: ppm,
		GoalHalfHeight: 3 * ppm,
		PostRadius:     8,

		Ball: BodySpec{Radius: 0.22 * ppm, Mass: 0.43, Drag: 0.9, WallElasticity: 0.55},
		Player: PlayerSpec{
			BodySpec: BodySpec{Radius: 0.4 * ppm, Mass: 75, Drag: 2.2, WallElasticity: 0.05},
			Accel:    20 * ppm,
			MaxSpeed: 6.5 * ppm,
			TurnRate: 10,
		},
		Keeper: PlayerSpec{
			BodySpec: BodySpec{Radius: 0.4 * ppm, Mass: 80, Drag: 2.2, WallElasticity: 0.05},
			Accel:    18 * ppm,
			MaxSpeed: 6 * ppm,
			TurnRate: 10,
		},
		KeeperFrontOffset: 0.6 * ppm,

		Kick: KickParams{
			SpeedMin:       13 * ppm,
			SpeedMax:       18 * ppm,
			RunBonus:       0.30,
			ReachMargin:    6,
			Cooldown:       0.25,
			JustKicked:     0.35,
			PickupCooldown: 0.22,
		},
		Tackle: TackleParams{
			DashSpeed:      8 * ppm,
			Duration:       0.25,
			Cooldown:       1.0,
			InterceptSlack: 10,
			DislodgeSpeed:  7 * ppm,
		},
		Physics: PhysicsParams{BallRestitution: 0.3, PlayerRestitution: 0.2},
		Possession: PossessionParams{
			ConeCos:        math.Cos(60 * math.Pi / 180),
			FieldMargin:    16,
			KeeperMargin:   10,
			FieldMaxSpeed:  6 * ppm,
			KeeperMaxSpeed: 3.5 * ppm,
		},
		Dribble: DribbleParams{
			SmoothTimeMove: 0.12,
			SmoothTimeStop: 0.18,
			TurnRate:       1.8,
			ExtraLead:      9,
			LeadSpeedK:     0.020,
			LateralBias:    3.5,
			TargetDeadRad:  4,
			MovingSpeed:    0.6 * ppm,
			MaxSpeed:       8 * ppm,
			MinSpeed:       1 * ppm,
			CarryFactor:    0.9,
			LoseDistance:   44,
			IdleDamping:    11,
		},
		Keepers: KeeperParams{
			BoxDepthRatio:     0.18,
			TurnRate:          6,
			WalkFactor:        0.55,
			RushFactor:        0.95,
			ChargeExtendRatio: 0.10,
			CutFraction:       0.18,
			InterceptLead:     0.25,
			MinCharge:         0.45,
			ActiveRatio:       0.55,
			NearBoxFactor:     0.35,
			AwayBoxFactor:     0.5,
			PastMateMargin:    8,
			ReachMargin:       12,
			ShadowMargin:      6,
			CatchSpeed:        7 * ppm,
			ParrySpeed:        9.5 * ppm,
			ParrySpeedOutside: 5.75 * ppm,
			ParryMinSpeed:     6 * ppm,
			ClearSpeed:        10.3 * ppm,
			MaxHold:           6,
			AutoClearDelay:    1.0,
			AutoClearAngle:    6 * math.Pi / 180,
			PressureRadius:    60,
			PickupCooldown:    0.25,
			HoldGap:           4,
			VelBlendRate:      13.4,
			EdgeMarginX:       6,
			EdgeMarginY:       20,
			GoalInset:         12,
		},
		Match: MatchParams{
			Halves:      2,
			HalfSeconds: 120,
			KickoffLock: 1.0,
			GoalFreeze:  2.0,
			HalfBreak:   2.0,
		},
		Wind: WindParams{
			Seed:            1,
			BaseMin:         120,
			BaseMax:         260,
			DirChangeMin:    3,
			DirChangeMax:    7,
			GustIntervalMin: 1.5,
			GustIntervalMax: 3.5,
			GustPower:       140,
			OwnerScale:      0.55,
			DragScaleBall:   0.60,
			DragScalePlayer: 0.70,
		},
	}
}

// BoxDepth returns the penalty box depth in pixels.
func (s Settings) BoxDepth() float64 {
	return s.FieldWidth * s.Keepers.BoxDepthRatio
}

// AtScale returns s with every length and speed converted from its current
// PixelsPerMeter to ppm. Masses, times, rates and ratios are unchanged.
func (s Settings) AtScale(ppm float64) Settings {
	if !(ppm > 0) || !(s.PixelsPerMeter > 0) {
		return s
	}
	k := ppm / s.PixelsPerMeter
	for _, f := range []*float64{
		&s.FieldWidth, &s.FieldHeight, &s.GoalHalfHeight, &s.PostRadius,
		&s.Ball.Radius,
		&s.Player.Radius, &s.Player.Accel, &s.Player.MaxSpeed,
		&s.Keeper.Radius, &s.Keeper.Accel, &s.Keeper.MaxSpeed,
		&s.KeeperFrontOffset,

		&s.Kick.SpeedMin, &s.Kick.SpeedMax, &s.Kick.ReachMargin,
		&s.Tackle.DashSpeed, &s.Tackle.InterceptSlack, &s.Tackle.DislodgeSpeed,
		&s.Possession.FieldMargin, &s.Possession.KeeperMargin,
		&s.Possession.FieldMaxSpeed, &s.Possession.KeeperMaxSpeed,

		&s.Dribble.ExtraLead, &s.Dribble.LateralBias, &s.Dribble.TargetDeadRad,
		&s.Dribble.MovingSpeed, &s.Dribble.MaxSpeed, &s.Dribble.MinSpeed,
		&s.Dribble.LoseDistance,

		&s.Keepers.PastMateMargin, &s.Keepers.ReachMargin, &s.Keepers.ShadowMargin,
		&s.Keepers.CatchSpeed, &s.Keepers.ParrySpeed, &s.Keepers.ParrySpeedOutside,
		&s.Keepers.ParryMinSpeed, &s.Keepers.ClearSpeed, &s.Keepers.PressureRadius,
		&s.Keepers.HoldGap, &s.Keepers.EdgeMarginX, &s.Keepers.EdgeMarginY,
		&s.Keepers.GoalInset,

		&s.Wind.BaseMin, &s.Wind.BaseMax, &s.Wind.GustPower,
	} {
		*f *= k
	}
	s.PixelsPerMeter = ppm
	return s
}

// Validate reports every value the core cannot run with. The core itself
// never checks; loaders call this before constructing a match.
func (s Settings) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, v))
		}
	}
	unit := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0,1], got %v", name, v))
		}
	}

	positive("field width", s.FieldWidth)
	positive("field height", s.FieldHeight)
	positive("goal half height", s.GoalHalfHeight)
	if 2*s.GoalHalfHeight >= s.FieldHeight {
		errs = append(errs, fmt.Errorf("goal mouth %v does not fit field height %v", 2*s.GoalHalfHeight, s.FieldHeight))
	}
	for _, spec := range []struct {
		name string
		b    BodySpec
	}{
		{"ball", s.Ball},
		{"player", s.Player.BodySpec},
		{"keeper", s.Keeper.BodySpec},
	} {
		name, b := spec.name, spec.b
		positive(name+" radius", b.Radius)
		positive(name+" mass", b.Mass)
		if b.Drag < 0 {
			errs = append(errs, fmt.Errorf("%s drag must be >= 0, got %v", name, b.Drag))
		}
		unit(name+" wall elasticity", b.WallElasticity)
	}
	positive("player max speed", s.Player.MaxSpeed)
	positive("keeper max speed", s.Keeper.MaxSpeed)
	positive("kick min speed", s.Kick.SpeedMin)
	if s.Kick.SpeedMax < s.Kick.SpeedMin {
		errs = append(errs, fmt.Errorf("kick max speed %v below min %v", s.Kick.SpeedMax, s.Kick.SpeedMin))
	}
	unit("ball restitution", s.Physics.BallRestitution)
	unit("player restitution", s.Physics.PlayerRestitution)
	unit("keeper box depth ratio", s.Keepers.BoxDepthRatio)
	positive("keeper max hold", s.Keepers.MaxHold)
	if s.Match.Halves < 1 {
		errs = append(errs, fmt.Errorf("halves must be >= 1, got %d", s.Match.Halves))
	}
	positive("half seconds", s.Match.HalfSeconds)
	return errors.Join(errs...)
}
