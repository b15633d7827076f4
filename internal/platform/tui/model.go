package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arcade/internal/core"
	"github.com/vovakirdan/snake-arcade/internal/games/snake"
	"github.com/vovakirdan/snake-arcade/internal/ledger"
	"github.com/vovakirdan/snake-arcade/internal/session"
)

// Model is the Bubble Tea model for the whole application. Game state
// lives in the session machine; the model only owns presentation state.
type Model struct {
	machine    *session.Machine
	sched      *session.ManualScheduler
	ledger     *ledger.Ledger
	logger     *log.Logger
	keys       KeyMap
	help       help.Model
	screen     *core.Screen
	modes      []snake.Mode
	cursor     int
	scores     scoreboard
	showScores bool
	width      int
	height     int
	quitting   bool
}

// NewModel creates the model. The machine must have been built with sched
// as its scheduler so ticks flow through Bubble Tea.
func NewModel(machine *session.Machine, sched *session.ManualScheduler, l *ledger.Ledger, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		machine: machine,
		sched:   sched,
		ledger:  l,
		logger:  logger,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		modes:   snake.Modes(),
		scores:  newScoreboard(l, cfg.ScreenW, cfg.ScreenH),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
	}
}

// Init starts the tick loop if a run is already in progress.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.sched)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scores.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		msg.fire()
		return m, tickCmd(m.sched)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.machine.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.showScores {
		var cmd tea.Cmd
		var back bool
		m.scores, cmd, back = m.scores.update(msg)
		if back {
			m.showScores = false
		}
		return m, cmd
	}

	switch m.machine.Screen() {
	case session.ScreenMenu:
		return m.handleMenuKey(msg)
	case session.ScreenGameOver:
		if key.Matches(msg, m.keys.Scores) {
			m.openScores(m.machine.Snapshot().Mode)
			return m, nil
		}
	}

	m.machine.Handle(m.keys.Action(msg))
	return m, tickCmd(m.sched)
}

// handleMenuKey moves the mode cursor and starts runs.
func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.modes)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Scores):
		m.openScores(m.modes[m.cursor])
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Pause):
		mode := m.modes[m.cursor]
		if err := m.machine.Start(mode); err != nil {
			m.logger.Error("Cannot start run", "mode", mode, "error", err)
			return m, nil
		}
		return m, tickCmd(m.sched)
	}
	return m, nil
}

func (m *Model) openScores(mode snake.Mode) {
	m.scores.selectMode(mode)
	m.showScores = true
}

// saveScreenshot saves the current board to a text file.
func (m *Model) saveScreenshot() {
	snap := m.machine.Snapshot()
	if !snap.HasWorld {
		return
	}
	drawBoard(m.screen, snap.World)
	switch snap.Screen {
	case session.ScreenPaused:
		drawBanner(m.screen, "PAUSED")
	case session.ScreenGameOver:
		drawBanner(m.screen, "GAME OVER", snap.Result.Reason)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("Cannot create screenshot directory", "dir", dir, "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", snap.Mode.ID(), timestamp))
	if err := os.WriteFile(path, []byte(screenText(m.screen)), 0o600); err != nil {
		m.logger.Warn("Cannot save screenshot", "path", path, "error", err)
		return
	}
	m.logger.Info("Screenshot saved", "path", path)
}

// screenText returns the buffer as plain text without trailing blanks.
func screenText(s *core.Screen) string {
	lines := make([]string, s.Height())
	for y := range lines {
		lines[y] = strings.TrimRight(s.Row(y), " ")
	}
	return strings.Join(lines, "\n") + "\n"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.showScores {
		body = m.scores.view() + "\n" + dimStyle.Render(m.help.View(m.scores.keys))
		return body
	}

	snap := m.machine.Snapshot()
	if snap.Screen == session.ScreenMenu {
		body = m.viewMenu()
	} else {
		body = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.viewGame(snap))
	}

	return body + "\n\n" + dimStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(machine *session.Machine, sched *session.ManualScheduler, l *ledger.Ledger, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(machine, sched, l, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
