package game

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// simDT is the fixed tick of the harness.
const simDT = 1.0 / 60.0

// TestSim is a headless match harness used by tests and batch reports. It
// steps a Match at a fixed rate with no ebiten dependency and records every
// event into a structured SimLog.
type TestSim struct {
	Match  *Match
	SimLog *SimLog
	DT     float64

	// Hold is re-applied to each side every tick; Press is sent once.
	Hold  [2]Intent
	press [2]*Intent

	settings Settings
	matchOps []MatchOption
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // settings, seed, verbose: before the match exists
	simOptPlace                      // bodies and ball: after kickoff placement
	simOptState                      // owner, phase: after every body is placed
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSettings replaces the reference tuning.
func WithSettings(s Settings) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.settings = s
	}}
}

// WithTuning edits the reference tuning in place.
func WithTuning(edit func(*Settings)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		edit(&ts.settings)
	}}
}

// WithSeed sets the wind RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.settings.Wind.Seed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithMatchLogger routes the match's own zerolog output to l.
func WithMatchLogger(l zerolog.Logger) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.matchOps = append(ts.matchOps, WithLogger(l))
	}}
}

// WithBall places the ball at pos moving at vel.
func WithBall(pos, vel Vec2) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		ts.Match.ball.Pos = pos
		ts.Match.ball.Vel = vel
	}}
}

// WithBody places player id at pos moving at vel and facing facing. A zero
// facing keeps the kickoff facing.
func WithBody(id int, pos, vel, facing Vec2) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		p := ts.Match.Player(id)
		if p == nil {
			return
		}
		p.Pos = pos
		p.Vel = vel
		if !facing.IsZero() {
			p.Facing = facing.Normalized()
		}
	}}
}

// WithControl hands side's input to its keeper.
func WithControl(side Side, keeper bool) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		ts.Match.FieldPlayer(side).IsControlled = !keeper
		ts.Match.Keeper(side).IsControlled = keeper
	}}
}

// WithOwner gives the ball to player id. A keeper owner starts Holding.
func WithOwner(id int) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		m := ts.Match
		m.ball.Owner = id
		if p := m.Player(id); p != nil && p.IsGoalkeeper {
			p.keeper.enter(KeeperHolding)
		}
	}}
}

// WithPhase forces the match phase with the given state timer.
func WithPhase(p Phase, timer float64) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.Match.phase = p
		ts.Match.stateTimer = timer
	}}
}

// WithTimeRemaining sets the half clock.
func WithTimeRemaining(sec float64) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.Match.timeRemaining = sec
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (settings, seed, verbose)
//  2. Build the match
//  3. Body placement
//  4. Ownership and phase
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		SimLog:   NewSimLog(false),
		DT:       simDT,
		settings: DefaultSettings(),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Match = NewMatch(ts.settings, ts.matchOps...)
	for _, kind := range []simOptionKind{simOptPlace, simOptState} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(ts)
			}
		}
	}
	return ts
}

// Press queues a one-tick intent for side.
func (ts *TestSim) Press(side Side, in Intent) {
	ts.press[side] = &in
}

// RunTicks advances the simulation n ticks, logging events to SimLog.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.Match.Tick()
		}
	}
	return -1
}

func (ts *TestSim) runOneTick() {
	m := ts.Match
	for _, side := range [2]Side{SideLeft, SideRight} {
		in := ts.Hold[side]
		if p := ts.press[side]; p != nil {
			in = *p
			ts.press[side] = nil
		}
		m.SetIntent(side, in)
	}
	m.Step(ts.DT)
	ts.record()
}

// record copies the tick's events into the SimLog.
func (ts *TestSim) record() {
	m := ts.Match
	tick := m.Tick()
	for _, e := range m.Events() {
		side := e.Side.String()
		if e.Kind == EventPhase {
			side = "--"
		}
		ts.SimLog.Add(tick, BodyLabel(e.BodyID), side, eventCategory(e.Kind), e.Kind.String(), e.Detail, e.Speed)
	}

	ts.SimLog.AddVerbose(tick, "BALL", "--", "move", "position",
		fmt.Sprintf("(%.1f,%.1f) owner=%s", m.ball.Pos.X, m.ball.Pos.Y, BodyLabel(m.ball.Owner)), m.ball.Vel.Len())
	for _, p := range m.players {
		ts.SimLog.AddVerbose(tick, BodyLabel(p.ID), p.Side.String(), "move", "position",
			fmt.Sprintf("(%.1f,%.1f)", p.Pos.X, p.Pos.Y), p.Speed())
	}
}

// eventCategory groups event kinds into SimLog categories.
func eventCategory(k EventKind) string {
	switch k {
	case EventKick, EventTackle, EventControlSwitch:
		return "action"
	case EventPossession, EventDispossessed, EventWallBounce, EventPostHit, EventGust:
		return "ball"
	case EventCatch, EventParry, EventClear, EventKeeperState:
		return "keeper"
	default:
		return "match"
	}
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Match.Tick()
}

// SimSnapshot captures a lightweight state summary.
type SimSnapshot struct {
	Tick   int
	Phase  Phase
	Score  [2]int
	Ball   BodySnapshot
	Owner  int
	Bodies []BodySnapshot
}

// BodySnapshot is a lightweight copy of a body's state at a tick.
type BodySnapshot struct {
	ID     int
	Label  string
	Pos    Vec2
	Vel    Vec2
	Facing Vec2
	Keeper KeeperState
}

// Snapshot returns the current state of every body.
func (ts *TestSim) Snapshot() SimSnapshot {
	m := ts.Match
	snap := SimSnapshot{
		Tick:  m.Tick(),
		Phase: m.Phase(),
		Score: m.Score(),
		Ball:  BodySnapshot{ID: BallID, Label: BodyLabel(BallID), Pos: m.ball.Pos, Vel: m.ball.Vel},
		Owner: m.ball.Owner,
	}
	for _, p := range m.players {
		snap.Bodies = append(snap.Bodies, BodySnapshot{
			ID:     p.ID,
			Label:  BodyLabel(p.ID),
			Pos:    p.Pos,
			Vel:    p.Vel,
			Facing: p.Facing,
			Keeper: p.KeeperState(),
		})
	}
	return snap
}

// Summary returns a short human-readable summary of the match state.
func (ts *TestSim) Summary() string {
	m := ts.Match
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", m.Tick())
	fmt.Fprintf(&sb, "Phase: %s  half %d  %.1fs left\n", m.Phase(), m.Half(), m.TimeRemaining())
	fmt.Fprintf(&sb, "Score: left=%d  right=%d\n", m.goals.Score[SideLeft], m.goals.Score[SideRight])
	fmt.Fprintf(&sb, "Ball: (%.0f,%.0f) v=%.0f owner=%s\n",
		m.ball.Pos.X, m.ball.Pos.Y, m.ball.Vel.Len(), BodyLabel(m.ball.Owner))
	for _, side := range [2]Side{SideLeft, SideRight} {
		gk := m.Keeper(side)
		fmt.Fprintf(&sb, "%s keeper: %s hold=%.2fs\n", side, gk.KeeperState(), gk.HoldTime())
	}
	return sb.String()
}
