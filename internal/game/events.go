package game

import "fmt"

// EventKind identifies a discrete happening inside a tick.
type EventKind int

const (
	EventKick EventKind = iota
	EventTackle
	EventPossession   // a body took a free ball
	EventDispossessed // dribble tether snapped or tackle knocked the ball loose
	EventWallBounce
	EventPostHit
	EventCatch
	EventParry
	EventClear
	EventKeeperState
	EventControlSwitch
	EventGust
	EventGoal
	EventPhase
	eventKindCount
)

var eventKindNames = [eventKindCount]string{
	EventKick:          "kick",
	EventTackle:        "tackle",
	EventPossession:    "possession",
	EventDispossessed:  "dispossessed",
	EventWallBounce:    "wall",
	EventPostHit:       "post",
	EventCatch:         "catch",
	EventParry:         "parry",
	EventClear:         "clear",
	EventKeeperState:   "keeper_state",
	EventControlSwitch: "control",
	EventGust:          "gust",
	EventGoal:          "goal",
	EventPhase:         "phase",
}

func (k EventKind) String() string {
	if k < 0 || k >= eventKindCount {
		return "unknown"
	}
	return eventKindNames[k]
}

// Event is one record the presentation layer can poll after a tick.
type Event struct {
	Tick   int
	Kind   EventKind
	Side   Side
	BodyID int // NoOwner when no body is involved
	Pos    Vec2
	Speed  float64
	Detail string
}

func (e Event) String() string {
	return fmt.Sprintf("[T=%05d] %-13s %-5s #%d (%.0f,%.0f) %.0f %s",
		e.Tick, e.Kind, e.Side, e.BodyID, e.Pos.X, e.Pos.Y, e.Speed, e.Detail)
}

// eventBuffer collects the events of the current tick.
type eventBuffer struct {
	tick   int
	events []Event
}

func (b *eventBuffer) reset(tick int) {
	b.tick = tick
	b.events = b.events[:0]
}

func (b *eventBuffer) emit(kind EventKind, side Side, bodyID int, pos Vec2, speed float64, detail string) {
	b.events = append(b.events, Event{
		Tick:   b.tick,
		Kind:   kind,
		Side:   side,
		BodyID: bodyID,
		Pos:    pos,
		Speed:  speed,
		Detail: detail,
	})
}
