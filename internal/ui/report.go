package ui

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Kickabout/internal/game"
	"github.com/atotto/clipboard"
)

// debugReport is the text copied to the clipboard: match stats, every
// body's state and the recent feed.
func debugReport(m *game.Match, rep *game.Reporter, feed *Feed, selected int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Kickabout debug report ---\n")
	fmt.Fprintf(&b, "tick=%d phase=%s half=%d remaining=%s wind=%v\n\n",
		m.Tick(), m.Phase(), m.Half(), formatClock(m.TimeRemaining()), m.Wind().Enabled)

	b.WriteString(rep.Report().Format())
	b.WriteString("\n")

	ids := []int{game.BallID}
	for _, p := range m.Players() {
		ids = append(ids, p.ID)
	}
	for _, id := range ids {
		mark := ""
		if id == selected {
			mark = " (selected)"
		}
		fmt.Fprintf(&b, "== %s%s ==\n", game.BodyLabel(id), mark)
		for _, line := range inspectLines(m, id, true) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}

	entries := feed.Recent()
	if len(entries) > 0 {
		b.WriteString("\n== feed ==\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "%5d [%s] %s\n", e.Tick, e.Label, e.Message)
		}
	}
	return b.String()
}

// copyReport puts the debug report on the system clipboard.
func (g *Game) copyReport() {
	text := debugReport(g.match, g.reporter, g.feed, g.inspector.selected)
	if err := clipboard.WriteAll(text); err != nil {
		g.log.Warn().Err(err).Msg("clipboard unavailable")
		return
	}
	g.log.Info().Int("bytes", len(text)).Msg("debug report copied")
}
