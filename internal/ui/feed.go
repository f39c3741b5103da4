package ui

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Kickabout/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 320
	feedMaxEntries = 60
	feedLineHeight = 11
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Label   string // e.g. "LP", "RK"
	Side    game.Side
	Neutral bool // match events carry no side colour
	Message string
}

// Feed is a ring buffer of match events rendered beside the pitch.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewFeed creates a feed with a fixed capacity.
func NewFeed() *Feed {
	return &Feed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry to the feed.
func (f *Feed) Add(e FeedEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// AddEvent records a core event when it is worth showing.
func (f *Feed) AddEvent(e game.Event) {
	msg, ok := describe(e)
	if !ok {
		return
	}
	f.Add(FeedEntry{
		Tick:    e.Tick,
		Label:   game.BodyLabel(e.BodyID),
		Side:    e.Side,
		Neutral: e.Kind == game.EventPhase || e.Kind == game.EventGust,
		Message: msg,
	})
}

// Recent returns entries in chronological order (oldest first).
func (f *Feed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// describe turns an event into a feed line. Wall bounces are too frequent
// to be worth a line.
func describe(e game.Event) (string, bool) {
	switch e.Kind {
	case game.EventKick:
		return fmt.Sprintf("shoots at %.0f px/s", e.Speed), true
	case game.EventTackle:
		return "slides in", true
	case game.EventPossession:
		if e.Detail == "keeper" {
			return "gathers it", true
		}
		return "takes the ball", true
	case game.EventDispossessed:
		return "loses it (" + e.Detail + ")", true
	case game.EventPostHit:
		return "off the post!", true
	case game.EventCatch:
		return "catches", true
	case game.EventParry:
		return fmt.Sprintf("parries at %.0f px/s", e.Speed), true
	case game.EventClear:
		return "clears upfield", true
	case game.EventKeeperState:
		return e.Detail, true
	case game.EventControlSwitch:
		return "now controlled", true
	case game.EventGust:
		return "gust of wind", true
	case game.EventGoal:
		return "GOAL " + e.Detail, true
	case game.EventPhase:
		return e.Detail, true
	default:
		return "", false
	}
}

// sideColor is the kit colour of a side.
func sideColor(s game.Side) color.RGBA {
	if s == game.SideLeft {
		return color.RGBA{R: 210, G: 70, B: 70, A: 255}
	}
	return color.RGBA{R: 70, G: 110, B: 210, A: 255}
}

// Draw renders the feed panel on the right side of the screen.
func (f *Feed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "MATCH FEED", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+feedPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	entries := f.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / feedLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	recent := 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		dot := color.RGBA{R: 200, G: 200, B: 200, A: 255}
		if !e.Neutral {
			dot = sideColor(e.Side)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, dot, false)

		line := fmt.Sprintf("%5d [%s] %s", e.Tick, e.Label, e.Message)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += feedLineHeight
	}
}
