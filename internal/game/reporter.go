package game

import (
	"fmt"
	"strings"
)

// SideStats are the running tallies of one side.
type SideStats struct {
	Possession   float64 // seconds with the ball in Playing
	Shots        int
	OnTarget     int // shots that became goals, catches or parries
	Tackles      int
	TacklesWon   int // tackles that knocked the ball loose
	Dispossessed int
	Catches      int
	Parries      int
	Clears       int
	Charges      int // keeper rushes out
	Goals        int
	PostHits     int
}

// Saves returns catches plus parries.
func (s SideStats) Saves() int { return s.Catches + s.Parries }

// Add sums two tallies.
func (s SideStats) Add(o SideStats) SideStats {
	s.Possession += o.Possession
	s.Shots += o.Shots
	s.OnTarget += o.OnTarget
	s.Tackles += o.Tackles
	s.TacklesWon += o.TacklesWon
	s.Dispossessed += o.Dispossessed
	s.Catches += o.Catches
	s.Parries += o.Parries
	s.Clears += o.Clears
	s.Charges += o.Charges
	s.Goals += o.Goals
	s.PostHits += o.PostHits
	return s
}

// MatchReport is a full summary of a match so far.
type MatchReport struct {
	Ticks     int
	Elapsed   float64 // seconds of Playing
	Half      int
	Phase     Phase
	Sides     [2]SideStats
	WallHits  int
	Gusts     int
	FirstGoal int // tick of the first goal, -1 if none
}

// Reporter tallies a match by polling its events once per tick.
type Reporter struct {
	report      MatchReport
	lastShooter int
}

// NewReporter returns an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{
		report:      MatchReport{FirstGoal: -1},
		lastShooter: NoOwner,
	}
}

// Observe records the last Step of m. Call it once after every Step.
func (r *Reporter) Observe(m *Match, dt float64) {
	rep := &r.report
	rep.Ticks = m.Tick()
	rep.Half = m.Half()
	rep.Phase = m.Phase()
	if m.Phase() == PhasePlaying {
		rep.Elapsed += dt
		if owner := m.Owner(); owner != nil {
			rep.Sides[owner.Side].Possession += dt
		}
	}

	for _, e := range m.Events() {
		st := &rep.Sides[e.Side]
		switch e.Kind {
		case EventKick:
			st.Shots++
			r.lastShooter = e.BodyID
		case EventTackle:
			st.Tackles++
		case EventDispossessed:
			st.Dispossessed++
			if e.Detail == "tackle" {
				rep.Sides[e.Side.Opponent()].TacklesWon++
			}
		case EventCatch, EventParry:
			if e.Kind == EventCatch {
				st.Catches++
			} else {
				st.Parries++
			}
			r.creditShot(e.Side.Opponent())
		case EventClear:
			st.Clears++
		case EventKeeperState:
			if strings.HasSuffix(e.Detail, KeeperCharging.String()) {
				st.Charges++
			}
		case EventGoal:
			st.Goals++
			r.creditShot(e.Side)
			if rep.FirstGoal < 0 {
				rep.FirstGoal = e.Tick
			}
		case EventWallBounce:
			rep.WallHits++
		case EventPostHit:
			st.PostHits++
		case EventGust:
			rep.Gusts++
		}
	}
}

// creditShot counts the pending shot of side as on target.
func (r *Reporter) creditShot(side Side) {
	if r.lastShooter == NoOwner {
		return
	}
	if sideOfID(r.lastShooter) == side {
		r.report.Sides[side].OnTarget++
	}
	r.lastShooter = NoOwner
}

// sideOfID maps a player id to its side; left ids are odd.
func sideOfID(id int) Side {
	if id == LeftPlayerID || id == LeftKeeperID {
		return SideLeft
	}
	return SideRight
}

// Report returns the current tallies.
func (r *Reporter) Report() MatchReport {
	return r.report
}

// Format returns a human-readable multi-line string of the report.
func (rep MatchReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Match Report (T=%d, half %d, %s) ===\n", rep.Ticks, rep.Half, rep.Phase)
	fmt.Fprintf(&sb, "Score: left %d - %d right\n", rep.Sides[SideLeft].Goals, rep.Sides[SideRight].Goals)

	total := rep.Sides[SideLeft].Possession + rep.Sides[SideRight].Possession
	sb.WriteString("\n--- Possession ---\n")
	for _, side := range [2]Side{SideLeft, SideRight} {
		pct := 0.0
		if total > 0 {
			pct = rep.Sides[side].Possession / total * 100
		}
		fmt.Fprintf(&sb, "  %-5s %5.1f%%  (%.1fs of %.1fs played)\n", side, pct, rep.Sides[side].Possession, rep.Elapsed)
	}

	sb.WriteString("\n--- Attack ---\n")
	for _, side := range [2]Side{SideLeft, SideRight} {
		st := rep.Sides[side]
		fmt.Fprintf(&sb, "  %-5s shots=%d on_target=%d goals=%d posts=%d\n",
			side, st.Shots, st.OnTarget, st.Goals, st.PostHits)
	}

	sb.WriteString("\n--- Defence ---\n")
	for _, side := range [2]Side{SideLeft, SideRight} {
		st := rep.Sides[side]
		fmt.Fprintf(&sb, "  %-5s tackles=%d won=%d dispossessed=%d\n",
			side, st.Tackles, st.TacklesWon, st.Dispossessed)
	}

	sb.WriteString("\n--- Keepers ---\n")
	for _, side := range [2]Side{SideLeft, SideRight} {
		st := rep.Sides[side]
		fmt.Fprintf(&sb, "  %-5s saves=%d (catch=%d parry=%d) clears=%d charges=%d\n",
			side, st.Saves(), st.Catches, st.Parries, st.Clears, st.Charges)
	}

	fmt.Fprintf(&sb, "\nwall_hits=%d gusts=%d", rep.WallHits, rep.Gusts)
	if rep.FirstGoal >= 0 {
		fmt.Fprintf(&sb, " first_goal=T%d", rep.FirstGoal)
	}
	sb.WriteByte('\n')
	return sb.String()
}
