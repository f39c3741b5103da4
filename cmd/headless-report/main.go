package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Garsondee/Kickabout/internal/config"
	"github.com/Garsondee/Kickabout/internal/game"
	"github.com/Garsondee/Kickabout/internal/logging"
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
)

type runStats struct {
	runIndex int
	seed     int64
	ticks    int

	report game.MatchReport

	firstKickTick   int
	firstTackleTick int
	firstCatchTick  int
	firstGoalTick   int
	firstGustTick   int

	possessionChanges int
	keeperStates      int
	wallHits          int

	// bodyEvents counts log entries per body, indexed by id-1.
	bodyEvents [4]int
}

type runConfig struct {
	settings game.Settings
	wind     bool
	maxTicks int
	log      zerolog.Logger
}

func main() {
	var runs int
	var seedBase int64
	var seedStep int64
	var halfSeconds float64
	var wind bool
	var copyOut bool
	var configDir string
	var logLevel string

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.Int64Var(&seedBase, "seed-base", 42, "base seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&halfSeconds, "half-seconds", 0, "override half length in seconds (0 keeps config)")
	flag.BoolVar(&wind, "wind", false, "enable wind")
	flag.BoolVar(&copyOut, "copy", false, "copy the report to the clipboard")
	flag.StringVar(&configDir, "config", "", "directory holding "+config.FileName)
	flag.StringVar(&logLevel, "log", "WARN", "log level (TRACE, DEBUG, INFO, WARN, ERROR)")
	flag.Parse()

	log := logging.Setup(logLevel, os.Stderr)

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}

	s := config.Default()
	if configDir != "" {
		loaded, err := config.Load(configDir)
		if err != nil {
			log.Error().Err(err).Str("dir", configDir).Msg("config")
			os.Exit(1)
		}
		s = loaded
	}
	if halfSeconds > 0 {
		s.Match.HalfSeconds = halfSeconds
	}
	if err := s.Validate(); err != nil {
		log.Error().Err(err).Msg("settings")
		os.Exit(1)
	}

	var buf bytes.Buffer
	w := io.MultiWriter(os.Stdout, &buf)

	rc := runConfig{settings: s, wind: wind, maxTicks: maxTicksFor(s), log: log}
	fmt.Fprintf(w, "=== Headless Match Report ===\n")
	fmt.Fprintf(w, "runs=%d halves=%d half_seconds=%.0f wind=%v seed_base=%d seed_step=%d\n\n",
		runs, s.Match.Halves, s.Match.HalfSeconds, wind, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runMatch(i+1, seed, rc)
		all = append(all, rs)
		printRun(w, rs)
	}
	printAggregate(w, all)

	if copyOut {
		if err := clipboard.WriteAll(buf.String()); err != nil {
			log.Warn().Err(err).Msg("clipboard unavailable")
		} else {
			log.Info().Int("bytes", buf.Len()).Msg("report copied")
		}
	}
}

// maxTicksFor bounds a run at the scheduled length of the match plus slack
// for every kickoff and goal freeze.
func maxTicksFor(s game.Settings) int {
	m := s.Match
	secs := float64(m.Halves)*(m.HalfSeconds+m.HalfBreak) + 60*(m.GoalFreeze+m.KickoffLock)
	return int(secs*60) + 600
}

// runMatch plays one autopilot-vs-autopilot match to full time.
func runMatch(runIndex int, seed int64, rc runConfig) runStats {
	ts := game.NewTestSim(
		game.WithSettings(rc.settings),
		game.WithSeed(seed),
		game.WithMatchLogger(rc.log),
	)
	ts.Match.SetWind(rc.wind)

	pilots := [2]*game.Autopilot{
		game.NewAutopilot(game.SideLeft, seed),
		game.NewAutopilot(game.SideRight, seed+1),
	}
	rep := game.NewReporter()
	ticks := 0
	for ts.Match.Phase() != game.PhaseFullTime && ticks < rc.maxTicks {
		for side, ap := range pilots {
			ts.Press(game.Side(side), ap.Intent(ts.Match))
		}
		ts.RunTicks(1)
		rep.Observe(ts.Match, ts.DT)
		ticks++
	}
	if ts.Match.Phase() != game.PhaseFullTime {
		rc.log.Warn().Int("run", runIndex).Int("ticks", ticks).Msg("match did not reach full time")
	}

	entries := ts.SimLog.Entries()
	var bodyEvents [4]int
	for i := range bodyEvents {
		bodyEvents[i] = len(ts.SimLog.FilterBody(game.BodyLabel(i + 1)))
	}
	return runStats{
		runIndex:          runIndex,
		seed:              seed,
		ticks:             ticks,
		report:            rep.Report(),
		firstKickTick:     firstTick(entries, "action", "kick", ""),
		firstTackleTick:   firstTick(entries, "action", "tackle", ""),
		firstCatchTick:    firstTick(entries, "keeper", "catch", ""),
		firstGoalTick:     firstTick(entries, "match", "goal", ""),
		firstGustTick:     firstTick(entries, "ball", "gust", ""),
		possessionChanges: ts.SimLog.CountCategory("ball", "possession"),
		keeperStates:      ts.SimLog.CountCategory("keeper", "keeper_state"),
		wallHits:          ts.SimLog.CountCategory("ball", "wall"),
		bodyEvents:        bodyEvents,
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// detectStalemate flags goalless runs where neither keeper was tested.
func detectStalemate(rs runStats) (bool, string) {
	left, right := rs.report.Sides[game.SideLeft], rs.report.Sides[game.SideRight]
	if left.Goals+right.Goals > 0 {
		return false, "goals_scored"
	}
	onTarget := left.OnTarget + right.OnTarget
	if onTarget >= 2 {
		return false, fmt.Sprintf("goalless_but_on_target=%d", onTarget)
	}
	reasons := []string{"goalless"}
	if onTarget == 0 {
		reasons = append(reasons, "no_shots_on_target")
	} else {
		reasons = append(reasons, "few_shots_on_target")
	}
	if left.Shots+right.Shots == 0 {
		reasons = append(reasons, "no_shots")
	}
	return true, strings.Join(reasons, ",")
}

// outcome names the winner of a run.
func outcome(rep game.MatchReport) string {
	l, r := rep.Sides[game.SideLeft].Goals, rep.Sides[game.SideRight].Goals
	switch {
	case l > r:
		return "left"
	case r > l:
		return "right"
	default:
		return "draw"
	}
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(w, "phase_markers: first_kick=%d first_tackle=%d first_catch=%d first_goal=%d first_gust=%d\n",
		rs.firstKickTick, rs.firstTackleTick, rs.firstCatchTick, rs.firstGoalTick, rs.firstGustTick)
	fmt.Fprintf(w, "event_totals: ticks=%d possession=%d keeper_state=%d wall=%d\n",
		rs.ticks, rs.possessionChanges, rs.keeperStates, rs.wallHits)
	fmt.Fprintf(w, "body_events:")
	for i, n := range rs.bodyEvents {
		fmt.Fprintf(w, " %s=%d", game.BodyLabel(i+1), n)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, rs.report.Format())
	stale, reason := detectStalemate(rs)
	fmt.Fprintf(w, "result=%s stalemate=%v (%s)\n\n", outcome(rs.report), stale, reason)
}

func printAggregate(w io.Writer, all []runStats) {
	var sides [2]game.SideStats
	wins := map[string]int{}
	stalemates := 0
	totalWall := 0
	totalTicks := 0
	goalTicks := make([]int, 0, len(all))
	kickTicks := make([]int, 0, len(all))
	for _, rs := range all {
		for i := range sides {
			sides[i] = sides[i].Add(rs.report.Sides[i])
		}
		wins[outcome(rs.report)]++
		if stale, _ := detectStalemate(rs); stale {
			stalemates++
		}
		totalWall += rs.wallHits
		totalTicks += rs.ticks
		if rs.firstGoalTick >= 0 {
			goalTicks = append(goalTicks, rs.firstGoalTick)
		}
		if rs.firstKickTick >= 0 {
			kickTicks = append(kickTicks, rs.firstKickTick)
		}
	}

	n := len(all)
	fmt.Fprintf(w, "=== Aggregate (%d runs) ===\n", n)
	fmt.Fprintf(w, "results: left=%d right=%d draw=%d stalemates=%d\n", wins["left"], wins["right"], wins["draw"], stalemates)
	fmt.Fprintf(w, "avg_first_tick: kick=%s goal=%s\n", avgTickString(kickTicks), avgTickString(goalTicks))
	fmt.Fprintf(w, "avg_ticks=%.1f avg_wall_hits=%.1f\n", avg(totalTicks, n), avg(totalWall, n))
	for i, st := range sides {
		fmt.Fprintf(w, "%-5s goals=%.2f shots=%.2f on_target=%.2f tackles=%.2f won=%.2f saves=%.2f charges=%.2f possession=%.1fs\n",
			game.Side(i), avg(st.Goals, n), avg(st.Shots, n), avg(st.OnTarget, n), avg(st.Tackles, n),
			avg(st.TacklesWon, n), avg(st.Saves(), n), avg(st.Charges, n), st.Possession/float64(max(n, 1)))
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
