package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-arcade/internal/games/snake"
	"github.com/vovakirdan/snake-arcade/internal/ledger"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the mode list sidebar
	sidebarWidth       = 18 // Width of the mode list sidebar
)

// ScoreboardKeyMap defines the key bindings for the high-score screen.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreboard shows one mode's high-score table at a time.
type scoreboard struct {
	ledger  *ledger.Ledger
	modes   []snake.Mode
	cursor  int
	records []ledger.Record
	table   table.Model
	keys    ScoreboardKeyMap
	width   int
	height  int
}

func newScoreboard(l *ledger.Ledger, width, height int) scoreboard {
	sb := scoreboard{
		ledger: l,
		modes:  snake.Modes(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	sb.table = sb.createTable()
	sb.load()
	return sb
}

// showSidebar reports whether the wide layout fits.
func (sb scoreboard) showSidebar() bool {
	return sb.width >= minWidthForSidebar
}

// createTable creates a new table with appropriate columns.
func (sb *scoreboard) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Length", Width: 7},
		{Title: "Food", Width: 5},
		{Title: "Moves", Width: 6},
		{Title: "Date", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, min(ledger.DefaultKeep+1, sb.height-8))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load refreshes the table from the ledger for the selected mode.
func (sb *scoreboard) load() {
	sb.records = nil
	if sb.ledger != nil {
		sb.records = sb.ledger.Top(sb.modes[sb.cursor].String(), 0)
	}

	rows := make([]table.Row, len(sb.records))
	for i, r := range sb.records {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Length),
			fmt.Sprintf("%d", r.Food),
			fmt.Sprintf("%d", r.Moves),
			r.Date,
		}
	}
	sb.table.SetRows(rows)
	sb.table.GotoTop()
}

// selectMode jumps the table to the given mode.
func (sb *scoreboard) selectMode(mode snake.Mode) {
	for i, m := range sb.modes {
		if m == mode {
			sb.cursor = i
		}
	}
	sb.load()
}

func (sb *scoreboard) resize(width, height int) {
	sb.width = width
	sb.height = height
	sb.table = sb.createTable()
	sb.load()
}

// update handles a key press. back is true when the user leaves the screen.
func (sb scoreboard) update(msg tea.KeyMsg) (scoreboard, tea.Cmd, bool) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, sb.keys.Back):
		return sb, nil, true

	case key.Matches(msg, sb.keys.NextMode):
		sb.cursor = (sb.cursor + 1) % len(sb.modes)
		sb.load()

	case key.Matches(msg, sb.keys.PrevMode):
		sb.cursor = (sb.cursor - 1 + len(sb.modes)) % len(sb.modes)
		sb.load()

	case key.Matches(msg, sb.keys.Up), key.Matches(msg, sb.keys.Down):
		sb.table, cmd = sb.table.Update(msg)
	}

	return sb, cmd, false
}

// view renders the scoreboard.
func (sb scoreboard) view() string {
	var b strings.Builder

	title := fmt.Sprintf("HIGH SCORES - %s", sb.modes[sb.cursor])
	b.WriteString(titleStyle.Render(centerText(title, sb.width)))
	b.WriteString("\n\n")

	if sb.showSidebar() {
		b.WriteString(sb.renderWideLayout())
	} else {
		b.WriteString(sb.renderNarrowLayout())
	}

	return b.String()
}

// renderWideLayout renders the table with a sidebar listing the modes.
func (sb scoreboard) renderWideLayout() string {
	sidebarStyle := panelStyle.Width(sidebarWidth)

	var sidebar strings.Builder
	sidebar.WriteString("Modes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, m := range sb.modes {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == sb.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + m.String()))
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		panelStyle.Render(sb.renderTableContent()),
	)
}

// renderNarrowLayout renders mode tabs above the table.
func (sb scoreboard) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(sb.modes))
	for i, m := range sb.modes {
		if i == sb.cursor {
			tabs[i] = activeTabStyle.Render(m.ID())
		} else {
			tabs[i] = tabStyle.Render(" " + m.ID() + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > sb.width-4 {
		// Just show current mode with arrows
		tabLine = fmt.Sprintf("< %s >", sb.modes[sb.cursor])
	}
	b.WriteString(centerText(tabLine, sb.width))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(sb.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (sb scoreboard) renderTableContent() string {
	if len(sb.records) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}

	return sb.table.View()
}
