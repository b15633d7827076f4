package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-arcade/internal/core"
	"github.com/vovakirdan/snake-arcade/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(8)

	alertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))
)

// barWidth is the width of the effect progress bar.
const barWidth = 12

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// viewMenu renders the mode picker with each mode's best score.
func (m Model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("S N A K E   U L T I M A T E", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	var lines []string
	for i, mode := range m.modes {
		cursor := "  "
		nameStyle := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			nameStyle = titleStyle
		}

		best := "-"
		if m.ledger != nil {
			if rec, ok := m.ledger.Best(mode.String()); ok {
				best = fmt.Sprintf("%d", rec.Score)
			}
		}

		line := cursor + nameStyle.Width(13).Render(mode.String()) + dimStyle.Render("best "+best)
		lines = append(lines, line, "    "+dimStyle.Render(mode.Description()))
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(lines, "\n")))
	b.WriteString("\n")

	return b.String()
}

// viewGame renders the board, the sidebar and any overlay for the
// playing, paused and game-over screens.
func (m Model) viewGame(snap session.Snapshot) string {
	drawBoard(m.screen, snap.World)

	var side string
	switch snap.Screen {
	case session.ScreenPaused:
		drawBanner(m.screen, "PAUSED")
		side = lipgloss.JoinVertical(lipgloss.Left, m.viewStats(snap), "", dimStyle.Render("space to resume"))
	case session.ScreenGameOver:
		drawBanner(m.screen, "GAME OVER", snap.Result.Reason)
		side = m.viewGameOver(snap)
	default:
		side = m.viewStats(snap)
	}
	board := panelStyle.Padding(0).Render(RenderScreen(m.screen))

	return lipgloss.JoinHorizontal(lipgloss.Top, board, " ", panelStyle.Render(side))
}

// viewStats renders the live sidebar.
func (m Model) viewStats(snap session.Snapshot) string {
	w := snap.World
	rows := []string{
		titleStyle.Render(snap.Mode.String()),
		"",
		stat("Score", fmt.Sprintf("%d", w.Score)),
		stat("Best", fmt.Sprintf("%d", max(snap.Best, w.Score))),
		stat("Length", fmt.Sprintf("%d", w.Length)),
		stat("Food", fmt.Sprintf("%d", w.FoodEaten)),
		stat("Moves", fmt.Sprintf("%d", w.Moves)),
		stat("Speed", fmt.Sprintf("%dms", w.Interval.Milliseconds())),
	}

	if w.Timed {
		rows = append(rows, stat("Time", formatClock(w.TimeLeft)))
	}

	if w.HasEffect {
		style := colorStyles[effectColors[w.Effect]].Bold(true)
		rows = append(rows, "", style.Render(w.Effect.String()), progressBar(w.EffectFraction, barWidth))
	}

	return strings.Join(rows, "\n")
}

// viewGameOver renders the final stats panel.
func (m Model) viewGameOver(snap session.Snapshot) string {
	res := snap.Result
	rows := []string{
		alertStyle.Render("GAME OVER"),
		dimStyle.Render(res.Reason),
		"",
		stat("Mode", res.Mode.String()),
		stat("Score", fmt.Sprintf("%d", res.Record.Score)),
		stat("Length", fmt.Sprintf("%d", res.Record.Length)),
		stat("Food", fmt.Sprintf("%d", res.Record.Food)),
		stat("Moves", fmt.Sprintf("%d", res.Record.Moves)),
	}

	if res.Rank > 0 {
		rows = append(rows, stat("Rank", fmt.Sprintf("#%d", res.Rank)))
	}
	if res.NewBest {
		rows = append(rows, "", alertStyle.Render("NEW HIGH SCORE!"))
	}
	rows = append(rows, "", dimStyle.Render("r: play again"), dimStyle.Render("esc: menu"))

	return strings.Join(rows, "\n")
}

func stat(label, value string) string {
	return labelStyle.Render(label) + value
}

// formatClock renders a duration as m:ss, rounding up so the clock only
// shows 0:00 once time is actually up.
func formatClock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// progressBar draws frac of width as filled blocks.
func progressBar(frac float64, width int) string {
	filled := core.Clamp(int(frac*float64(width)+0.5), 0, width)
	return strings.Repeat("█", filled) + dimStyle.Render(strings.Repeat("░", width-filled))
}
