package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-arcade/internal/core"
	"github.com/vovakirdan/snake-arcade/internal/games/snake"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// cellWidth is how many terminal columns one grid cell takes. Two columns
// make cells roughly square in most fonts.
const cellWidth = 2

// glyph is how one grid cell is drawn.
type glyph struct {
	text  string // Exactly cellWidth runes
	color core.Color
}

var (
	glyphEmpty    = glyph{"· ", core.ColorGray}
	glyphHead     = glyph{"██", core.ColorBrightGreen}
	glyphBody     = glyph{"▓▓", core.ColorGreen}
	glyphShielded = glyph{"▓▓", core.ColorBrightYellow}
	glyphFood     = glyph{"●●", core.ColorBrightRed}
	glyphObstacle = glyph{"▒▒", core.ColorGray}
)

// powerupGlyphs gives each pickup kind its own look.
var powerupGlyphs = map[snake.PowerupKind]glyph{
	snake.KindSpeedBoost:      {">>", core.ColorYellow},
	snake.KindSlowDown:        {"<<", core.ColorCyan},
	snake.KindScoreMultiplier: {"x2", core.ColorMagenta},
	snake.KindInvincible:      {"**", core.ColorBrightWhite},
}

// effectColors colours the sidebar effect line.
var effectColors = map[snake.PowerupKind]core.Color{
	snake.KindSpeedBoost:      core.ColorYellow,
	snake.KindSlowDown:        core.ColorCyan,
	snake.KindScoreMultiplier: core.ColorMagenta,
	snake.KindInvincible:      core.ColorBrightWhite,
}

// drawBoard paints a world snapshot onto s, resizing it to fit the grid.
func drawBoard(s *core.Screen, w snake.Snapshot) {
	if s.Width() != w.Size*cellWidth || s.Height() != w.Size {
		s.Resize(w.Size*cellWidth, w.Size)
	}

	for y := range w.Size {
		for x := range w.Size {
			putGlyph(s, snake.Point{X: x, Y: y}, glyphEmpty)
		}
	}

	for _, p := range w.Obstacles {
		putGlyph(s, p, glyphObstacle)
	}
	for _, pu := range w.Powerups {
		putGlyph(s, pu.Pos, powerupGlyphs[pu.Kind])
	}
	if w.HasFood {
		putGlyph(s, w.Food, glyphFood)
	}

	body := glyphBody
	if w.HasEffect && w.Effect == snake.KindInvincible {
		body = glyphShielded
	}
	// Tail first so the head is drawn on top
	for i := len(w.Snake) - 1; i >= 0; i-- {
		g := body
		if i == 0 {
			g = glyphHead
		}
		putGlyph(s, w.Snake[i], g)
	}
}

// drawBanner boxes a few lines of text in the middle of the board.
func drawBanner(s *core.Screen, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 4
	height := len(lines) + 2

	cx, cy := core.NewRect(0, 0, s.Width(), s.Height()).Center()
	box := core.NewRect(cx-width/2, cy-height/2, width, height)
	s.DrawRect(box, ' ')
	s.DrawBox(box)
	for i, l := range lines {
		s.DrawTextCentered(box.Y+1+i, l)
	}
}

func putGlyph(s *core.Screen, p snake.Point, g glyph) {
	s.DrawTextColored(p.X*cellWidth, p.Y, g.text, g.color)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
