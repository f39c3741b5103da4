package game

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// Phase is the match orchestrator state.
type Phase int

const (
	PhaseKickoff Phase = iota
	PhasePlaying
	PhaseGoalFreeze
	PhaseHalfTimeBreak
	PhaseFullTime
)

func (p Phase) String() string {
	switch p {
	case PhaseKickoff:
		return "kickoff"
	case PhasePlaying:
		return "playing"
	case PhaseGoalFreeze:
		return "goal"
	case PhaseHalfTimeBreak:
		return "half-time"
	case PhaseFullTime:
		return "full-time"
	default:
		return "unknown"
	}
}

// MatchOption configures a Match at construction.
type MatchOption func(*Match)

// WithLogger routes match logging to l. The default is a no-op logger.
func WithLogger(l zerolog.Logger) MatchOption {
	return func(m *Match) { m.log = l }
}

// WithWind starts the match with wind enabled.
func WithWind(on bool) MatchOption {
	return func(m *Match) { m.SetWind(on) }
}

// Match owns every body of one game and steps them in a fixed order.
type Match struct {
	settings Settings

	ball    *Ball
	players [4]*Player // indexed by id-1
	goals   *Goals

	physics    *Physics
	possession *Possession
	dribble    *Dribble
	keepers    *Keepers
	wind       *Wind
	formation  Formation

	phase          Phase
	half           int
	timeRemaining  float64
	stateTimer     float64
	pickupCooldown float64

	tick   int
	events eventBuffer
	log    zerolog.Logger
}

// NewMatch builds a match in its kickoff formation. s is trusted; callers
// that load it from outside run Settings.Validate first.
func NewMatch(s Settings, opts ...MatchOption) *Match {
	m := &Match{
		settings:   s,
		goals:      NewGoals(s.FieldWidth, s.FieldHeight, s.GoalHalfHeight, s.PostRadius),
		physics:    NewPhysics(s.Physics),
		possession: NewPossession(s),
		dribble:    NewDribble(s.Dribble),
		keepers:    NewKeepers(s),
		wind:       NewWind(s.Wind),
		formation:  kickoffFormation(s),
		log:        zerolog.Nop(),
	}
	m.ball = &Ball{
		Body: Body{
			ID:             BallID,
			Kind:           KindBall,
			Radius:         s.Ball.Radius,
			Mass:           s.Ball.Mass,
			Drag:           s.Ball.Drag,
			WallElasticity: s.Ball.WallElasticity,
		},
		Owner:        NoOwner,
		LastKickerID: NoOwner,
	}
	m.players[LeftPlayerID-1] = newPlayer(LeftPlayerID, KindFieldPlayer, SideLeft, s.Player)
	m.players[RightPlayerID-1] = newPlayer(RightPlayerID, KindFieldPlayer, SideRight, s.Player)
	m.players[LeftKeeperID-1] = newPlayer(LeftKeeperID, KindKeeper, SideLeft, s.Keeper)
	m.players[RightKeeperID-1] = newPlayer(RightKeeperID, KindKeeper, SideRight, s.Keeper)
	m.physics.OnContact = m.onContact
	m.SetWind(s.Wind.Enabled)

	for _, o := range opts {
		o(m)
	}

	m.half = 1
	m.timeRemaining = s.Match.HalfSeconds
	m.enterKickoff()
	return m
}

// Settings returns the tuning the match was built with.
func (m *Match) Settings() Settings { return m.settings }

// Ball returns the match ball.
func (m *Match) Ball() *Ball { return m.ball }

// Players returns the four players in tie-break order: left player, right
// player, left keeper, right keeper.
func (m *Match) Players() []*Player { return m.players[:] }

// Player returns the player with body id, or nil.
func (m *Match) Player(id int) *Player {
	if id < LeftPlayerID || id > RightKeeperID {
		return nil
	}
	return m.players[id-1]
}

// FieldPlayer returns side's field player.
func (m *Match) FieldPlayer(side Side) *Player {
	if side == SideLeft {
		return m.players[LeftPlayerID-1]
	}
	return m.players[RightPlayerID-1]
}

// Keeper returns side's goalkeeper.
func (m *Match) Keeper(side Side) *Player {
	if side == SideLeft {
		return m.players[LeftKeeperID-1]
	}
	return m.players[RightKeeperID-1]
}

// Controlled returns the body currently taking side's input.
func (m *Match) Controlled(side Side) *Player {
	if gk := m.Keeper(side); gk.IsControlled {
		return gk
	}
	return m.FieldPlayer(side)
}

// Owner returns the player holding the ball, or nil for a free ball.
func (m *Match) Owner() *Player { return m.Player(m.ball.Owner) }

func (m *Match) Goals() *Goals { return m.goals }
func (m *Match) Score() [2]int { return m.goals.Score }
func (m *Match) Phase() Phase { return m.phase }
func (m *Match) Half() int { return m.half }
func (m *Match) TimeRemaining() float64 { return m.timeRemaining }
func (m *Match) StateTimer() float64 { return m.stateTimer }
func (m *Match) PickupCooldown() float64 { return m.pickupCooldown }
func (m *Match) Tick() int { return m.tick }
func (m *Match) Wind() *Wind { return m.wind }
func (m *Match) BoxDepth() float64 { return m.possession.BoxDepth }
func (m *Match) InBox(s Side, x float64) bool { return m.possession.InBox(s, x) }

// Events returns the events recorded during the last Step. The slice is
// reused by the next Step.
func (m *Match) Events() []Event { return m.events.events }

// SetIntent hands side's input for the next tick to its controlled body.
func (m *Match) SetIntent(side Side, in Intent) {
	m.Controlled(side).In = in
}

// SetWind toggles the external force. Drag of every body is scaled down
// while wind blows and restored when it stops.
func (m *Match) SetWind(on bool) {
	m.wind.Enabled = on
	m.ball.Drag = m.settings.Ball.Drag * m.wind.DragScale(KindBall)
	for _, p := range m.players {
		spec := m.settings.Player
		if p.IsGoalkeeper {
			spec = m.settings.Keeper
		}
		p.Drag = spec.Drag * m.wind.DragScale(p.Kind)
	}
	m.log.Debug().Bool("wind", on).Msg("wind toggled")
}

// Step advances the match by dt seconds. Intents are consumed.
func (m *Match) Step(dt float64) {
	m.tick++
	m.events.reset(m.tick)
	defer m.clearIntents()
	if dt <= 0 {
		return
	}

	switch m.phase {
	case PhaseKickoff:
		m.stateTimer -= dt
		if m.stateTimer <= 0 {
			m.setPhase(PhasePlaying, 0)
		}
	case PhaseGoalFreeze:
		m.stateTimer -= dt
		if m.stateTimer <= 0 {
			if m.timeRemaining <= 0 {
				m.endHalf()
			} else {
				m.enterKickoff()
			}
		}
	case PhaseHalfTimeBreak:
		m.stateTimer -= dt
		if m.stateTimer <= 0 {
			m.half++
			m.timeRemaining = m.settings.Match.HalfSeconds
			m.enterKickoff()
		}
	case PhaseFullTime:
	case PhasePlaying:
		m.timeRemaining = math.Max(0, m.timeRemaining-dt)
		m.simulate(dt)
		// A goal on the last tick still freezes first; the half ends after it.
		if m.phase == PhasePlaying && m.timeRemaining == 0 {
			m.endHalf()
		}
	}
}

func (m *Match) setPhase(p Phase, timer float64) {
	prev := m.phase
	m.phase = p
	m.stateTimer = timer
	m.emit(EventPhase, SideLeft, NoOwner, Vec2{}, 0, fmt.Sprintf("%s -> %s", prev, p))
	m.log.Info().
		Int("tick", m.tick).
		Int("half", m.half).
		Str("from", prev.String()).
		Str("to", p.String()).
		Int("left", m.goals.Score[SideLeft]).
		Int("right", m.goals.Score[SideRight]).
		Msg("phase")
}

func (m *Match) enterKickoff() {
	m.resetPositions()
	m.setPhase(PhaseKickoff, m.settings.Match.KickoffLock)
}

func (m *Match) endHalf() {
	if m.half < m.settings.Match.Halves {
		m.setPhase(PhaseHalfTimeBreak, m.settings.Match.HalfBreak)
		return
	}
	m.setPhase(PhaseFullTime, 0)
}

// resetPositions returns every body to the kickoff formation at rest with a
// free ball. Control returns to the field players.
func (m *Match) resetPositions() {
	s := m.settings
	m.ball.Pos = Vec2{s.FieldWidth / 2, s.FieldHeight / 2}
	m.ball.Vel = Vec2{}
	m.ball.Owner = NoOwner
	m.ball.LastKickerID = NoOwner
	m.ball.JustKicked = 0
	m.pickupCooldown = 0
	for _, p := range m.players {
		slot := m.formation.Player
		if p.IsGoalkeeper {
			slot = m.formation.Keeper
		}
		place(p, slot, s.FieldWidth, s.FieldHeight)
		p.IsControlled = !p.IsGoalkeeper
	}
}

func (m *Match) clearIntents() {
	for _, p := range m.players {
		p.In = Intent{}
	}
}

// simulate runs one Playing tick in its fixed order.
func (m *Match) simulate(dt float64) {
	m.applyInputs(dt)
	if m.wind.Step(dt, m.ball, m.players[:]) {
		m.emit(EventGust, SideLeft, BallID, m.ball.Pos, m.wind.Params.GustPower, "")
	}
	m.resolveActions()
	m.runDribble(dt)
	m.runKeepers(dt)
	m.runPossession(dt)
	m.runPhysics(dt)
	m.detectGoal()
}

func (m *Match) applyInputs(dt float64) {
	for _, p := range m.players {
		if !p.IsGoalkeeper || p.IsControlled {
			p.applyInput(dt)
		} else {
			p.tickCooldowns(dt)
		}
		// A keeper holding the ball stands; it may still turn.
		if p.IsGoalkeeper && m.ball.Owner == p.ID {
			p.Vel = Vec2{}
		}
	}
}

func (m *Match) resolveActions() {
	for _, side := range [2]Side{SideLeft, SideRight} {
		p := m.Controlled(side)
		if p.In.SwitchKeeper {
			m.switchControl(side)
		}
		if p.In.Shoot && !(p.IsGoalkeeper && m.ball.Owner == p.ID) {
			if p.tryShoot(m.ball, m.settings.Kick) {
				if m.pickupCooldown < m.settings.Kick.PickupCooldown {
					m.pickupCooldown = m.settings.Kick.PickupCooldown
				}
				m.emit(EventKick, p.Side, p.ID, m.ball.Pos, m.ball.Vel.Len(), "")
			}
		}
		if p.In.Slide {
			prevOwner := m.ball.Owner
			keeperHolds := m.Owner() != nil && m.Owner().IsGoalkeeper
			started, knocked := p.trySlide(m.ball, m.settings.Tackle, keeperHolds)
			if started {
				m.emit(EventTackle, p.Side, p.ID, p.Pos, p.Speed(), "")
			}
			if knocked && prevOwner != NoOwner && prevOwner != p.ID {
				loser := m.Player(prevOwner)
				m.emit(EventDispossessed, loser.Side, loser.ID, m.ball.Pos, m.ball.Vel.Len(), "tackle")
			}
		}
	}
}

// switchControl swaps input between side's field player and keeper. It is
// ignored while the controlled body has the ball.
func (m *Match) switchControl(side Side) {
	cur := m.Controlled(side)
	if m.ball.Owner == cur.ID {
		return
	}
	fp, gk := m.FieldPlayer(side), m.Keeper(side)
	fp.IsControlled = !fp.IsControlled
	gk.IsControlled = !gk.IsControlled
	now := m.Controlled(side)
	m.emit(EventControlSwitch, side, now.ID, now.Pos, 0, now.Kind.String())
}

func (m *Match) runDribble(dt float64) {
	owner := m.Owner()
	if owner == nil || owner.IsGoalkeeper {
		return
	}
	if !m.dribble.Update(m.ball, owner, dt) {
		m.emit(EventDispossessed, owner.Side, owner.ID, m.ball.Pos, m.ball.Vel.Len(), "tether")
	}
}

func (m *Match) runKeepers(dt float64) {
	for _, side := range [2]Side{SideLeft, SideRight} {
		gk, mate, opp := m.Keeper(side), m.FieldPlayer(side), m.FieldPlayer(side.Opponent())
		prevState := gk.keeper.state
		prevOwner := m.ball.Owner

		// A human-controlled keeper keeps its own motion; the state machine
		// still advances underneath.
		pos, vel, facing := gk.Pos, gk.Vel, gk.Facing
		action := m.keepers.Update(m.ball, gk, mate, opp, dt)
		if gk.IsControlled {
			gk.Pos, gk.Vel, gk.Facing = pos, vel, facing
		}

		switch action {
		case KeeperCaught:
			m.emit(EventCatch, side, gk.ID, m.ball.Pos, m.ball.Vel.Len(), "")
		case KeeperParried:
			// Nobody may gather a parried ball in the tick it left the keeper.
			if m.pickupCooldown < m.settings.Keepers.PickupCooldown {
				m.pickupCooldown = m.settings.Keepers.PickupCooldown
			}
			m.emit(EventParry, side, gk.ID, m.ball.Pos, m.ball.Vel.Len(), "")
			if prevOwner == opp.ID {
				m.emit(EventDispossessed, opp.Side, opp.ID, m.ball.Pos, m.ball.Vel.Len(), "parry")
			}
		}
		m.keeperStateChanged(gk, prevState)
	}
}

func (m *Match) keeperStateChanged(gk *Player, prev KeeperState) {
	now := gk.keeper.state
	if now == prev {
		return
	}
	m.emit(EventKeeperState, gk.Side, gk.ID, gk.Pos, gk.Speed(), fmt.Sprintf("%s -> %s", prev, now))
}

func (m *Match) runPossession(dt float64) {
	if owner := m.Owner(); owner != nil && owner.IsGoalkeeper {
		clear := owner.keeper.wantClear
		if owner.IsControlled {
			clear = owner.In.Shoot
		}
		prev := owner.keeper.state
		if m.possession.KeeperHold(m.ball, owner, clear, dt, &m.pickupCooldown) {
			owner.keeper.enter(KeeperPositioning)
			m.emit(EventClear, owner.Side, owner.ID, m.ball.Pos, m.ball.Vel.Len(), "")
			m.keeperStateChanged(owner, prev)
		}
	}

	winner := m.possession.TryTakeAll(m.ball, m.players[:], &m.pickupCooldown, dt)
	if winner == nil {
		return
	}
	detail := "gather"
	if winner.IsGoalkeeper {
		prev := winner.keeper.state
		winner.keeper.enter(KeeperHolding)
		winner.Vel = Vec2{}
		m.keeperStateChanged(winner, prev)
		detail = "keeper"
	}
	m.emit(EventPossession, winner.Side, winner.ID, m.ball.Pos, m.ball.Vel.Len(), detail)
}

func (m *Match) runPhysics(dt float64) {
	bodies := make([]*Body, 0, 5)
	if m.ball.Free() {
		bodies = append(bodies, &m.ball.Body)
	}
	for _, p := range m.players {
		bodies = append(bodies, &p.Body)
	}
	m.physics.Step(dt, bodies, m.goals, m.settings.FieldWidth, m.settings.FieldHeight)
}

// detectGoal scores a free ball over a goal line. A carried ball never counts.
func (m *Match) detectGoal() {
	if !m.ball.Free() {
		return
	}
	scorer, ok := m.goals.Check(m.ball)
	if !ok {
		return
	}
	m.goals.Score[scorer]++
	m.emit(EventGoal, scorer, m.ball.LastKickerID, m.ball.Pos, m.ball.Vel.Len(),
		fmt.Sprintf("%d-%d", m.goals.Score[SideLeft], m.goals.Score[SideRight]))
	m.ball.Vel = Vec2{}
	for _, p := range m.players {
		p.Vel = Vec2{}
	}
	m.setPhase(PhaseGoalFreeze, m.settings.Match.GoalFreeze)
}

func (m *Match) onContact(kind EventKind, b *Body, speed float64) {
	m.emit(kind, m.sideOf(m.ball.LastKickerID), b.ID, b.Pos, speed, "")
}

// sideOf returns the side of a player id; the ball and NoOwner map to left.
func (m *Match) sideOf(id int) Side {
	if p := m.Player(id); p != nil {
		return p.Side
	}
	return SideLeft
}

// emit records an event and logs it. Goals and phases are logged by their
// callers at Info.
func (m *Match) emit(kind EventKind, side Side, bodyID int, pos Vec2, speed float64, detail string) {
	m.events.emit(kind, side, bodyID, pos, speed, detail)
	switch kind {
	case EventGoal:
		m.log.Info().Int("tick", m.tick).Str("scorer", side.String()).Int("kicker", bodyID).Str("score", detail).Msg("goal")
	case EventPossession, EventDispossessed, EventKeeperState, EventClear, EventParry, EventCatch, EventControlSwitch:
		m.log.Debug().
			Int("tick", m.tick).
			Str("event", kind.String()).
			Str("side", side.String()).
			Int("body", bodyID).
			Float64("speed", speed).
			Str("detail", detail).
			Msg("match")
	}
}
