package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arcade/internal/core"
	"github.com/vovakirdan/snake-arcade/internal/games/snake"
	"github.com/vovakirdan/snake-arcade/internal/session"
)

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"w", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, core.ActionUp},
		{"s", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}, core.ActionDown},
		{"a", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionPause},
		{"p", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"r", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, core.ActionRestart},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit},
		{"unbound", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestDrawBoard(t *testing.T) {
	s := core.NewScreen(1, 1)
	snap := snake.Snapshot{
		Size:      5,
		Snake:     []snake.Point{{X: 2, Y: 2}, {X: 1, Y: 2}},
		Food:      snake.Point{X: 4, Y: 0},
		HasFood:   true,
		Obstacles: []snake.Point{{X: 0, Y: 4}},
		Powerups:  []snake.Powerup{{Pos: snake.Point{X: 3, Y: 3}, Kind: snake.KindScoreMultiplier}},
	}

	drawBoard(s, snap)

	if s.Width() != 10 || s.Height() != 5 {
		t.Fatalf("screen is %dx%d, expected 10x5", s.Width(), s.Height())
	}

	tests := []struct {
		p    snake.Point
		want glyph
	}{
		{snake.Point{X: 2, Y: 2}, glyphHead},
		{snake.Point{X: 1, Y: 2}, glyphBody},
		{snake.Point{X: 4, Y: 0}, glyphFood},
		{snake.Point{X: 0, Y: 4}, glyphObstacle},
		{snake.Point{X: 3, Y: 3}, powerupGlyphs[snake.KindScoreMultiplier]},
		{snake.Point{X: 0, Y: 0}, glyphEmpty},
	}
	for _, tt := range tests {
		cell := s.GetCell(tt.p.X*cellWidth, tt.p.Y)
		if cell.Rune != []rune(tt.want.text)[0] || cell.Color != tt.want.color {
			t.Errorf("cell %v = %q/%v, expected %q/%v", tt.p, cell.Rune, cell.Color, tt.want.text, tt.want.color)
		}
	}
}

func TestDrawBoardInvincible(t *testing.T) {
	s := core.NewScreen(10, 5)
	snap := snake.Snapshot{
		Size:      5,
		Snake:     []snake.Point{{X: 2, Y: 2}, {X: 1, Y: 2}},
		HasEffect: true,
		Effect:    snake.KindInvincible,
	}

	drawBoard(s, snap)
	if c := s.GetCell(1*cellWidth, 2); c.Color != glyphShielded.color {
		t.Errorf("body colour = %v, expected shielded", c.Color)
	}
}

func TestDrawBanner(t *testing.T) {
	s := core.NewScreen(1, 1)
	drawBoard(s, snake.Snapshot{Size: 20, Snake: []snake.Point{{X: 10, Y: 10}}})
	drawBanner(s, "GAME OVER", "hit wall")

	// 13x4 box centred on the 40x20 board
	if got := s.GetCell(14, 8).Rune; got != '┌' {
		t.Errorf("top-left corner = %q, expected '┌'", got)
	}
	if got := s.GetCell(26, 11).Rune; got != '┘' {
		t.Errorf("bottom-right corner = %q, expected '┘'", got)
	}
	if row := s.Row(9); !strings.Contains(row, "GAME OVER") {
		t.Errorf("row 9 = %q, expected the title", row)
	}
	if row := s.Row(10); !strings.Contains(row, "hit wall") {
		t.Errorf("row 10 = %q, expected the reason", row)
	}
	if got := s.GetCell(0, 10).Rune; got != []rune(glyphEmpty.text)[0] {
		t.Errorf("board outside the banner changed: %q", got)
	}
}

func TestScreenText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(2, 1, "cd")

	if got := screenText(s); got != "ab\n  cd\n" {
		t.Errorf("screenText() = %q", got)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorGreen)
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() lost %q: %q", want, out)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{120 * time.Second, "2:00"},
		{119*time.Second + 100*time.Millisecond, "2:00"},
		{61 * time.Second, "1:01"},
		{500 * time.Millisecond, "0:01"},
		{0, "0:00"},
	}

	for _, tt := range tests {
		if got := formatClock(tt.d); got != tt.want {
			t.Errorf("formatClock(%v) = %q, expected %q", tt.d, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	full := progressBar(1, 10)
	if strings.Count(full, "█") != 10 {
		t.Errorf("full bar = %q", full)
	}
	half := progressBar(0.5, 10)
	if strings.Count(half, "█") != 5 || strings.Count(half, "░") != 5 {
		t.Errorf("half bar = %q", half)
	}
	if strings.Count(progressBar(0, 10), "█") != 0 {
		t.Error("empty bar should have no filled blocks")
	}
}

func TestTickCmdTakesPendingTick(t *testing.T) {
	sched := session.NewManualScheduler()
	if tickCmd(sched) != nil {
		t.Error("no command expected without a pending tick")
	}

	fired := false
	sched.Schedule(time.Millisecond, func() { fired = true })

	cmd := tickCmd(sched)
	if cmd == nil {
		t.Fatal("expected a tick command")
	}
	if _, ok := sched.Pending(); ok {
		t.Error("tickCmd should take the pending tick")
	}

	msg, ok := cmd().(TickMsg)
	if !ok {
		t.Fatal("command did not produce a TickMsg")
	}
	msg.fire()
	if !fired {
		t.Error("TickMsg did not carry the scheduled fire")
	}
}
