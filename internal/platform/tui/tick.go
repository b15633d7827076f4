// Package tui is the terminal front end: it renders session snapshots with
// lipgloss and turns key presses into session intents.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arcade/internal/session"
)

// TickMsg carries a scheduled session tick back into the Update loop.
type TickMsg struct {
	fire func()
}

// tickCmd turns the tick armed on sched, if any, into a Bubble Tea command.
// Commands already handed to Bubble Tea cannot be withdrawn; the session
// drops their fires when they arrive late.
func tickCmd(sched *session.ManualScheduler) tea.Cmd {
	after, ok := sched.Pending()
	if !ok {
		return nil
	}
	fire, ok := sched.Take()
	if !ok {
		return nil
	}
	return tea.Tick(after, func(time.Time) tea.Msg {
		return TickMsg{fire: fire}
	})
}
