package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/warpsnake/internal/config"
	"github.com/vovakirdan/warpsnake/internal/core"
	"github.com/vovakirdan/warpsnake/internal/games/snake/sim"
)

const (
	hudRows     = 2
	minGridSide = 8
	meterWidth  = 10
)

// layout places the board on the screen.
type layout struct {
	grid     sim.Grid
	cellW    int       // screen columns per grid cell
	board    core.Rect // board including its border
	tooSmall bool
	need     [2]int // minimum screen size when tooSmall
}

// fitLayout shrinks the configured grid to fit the screen. A zero screen
// size means no local display; the configured grid is used as is.
func fitLayout(want config.SnakeGrid, screenW, screenH int) layout {
	if screenW <= 0 || screenH <= 0 {
		g := sim.Grid{Width: want.Width, Height: want.Height}
		return layout{grid: g, cellW: 1, board: core.NewRect(0, 0, g.Width+2, g.Height+2)}
	}

	w := core.Min(want.Width, screenW-2)
	h := core.Min(want.Height, screenH-hudRows-2)
	if w < minGridSide || h < minGridSide {
		return layout{
			grid:     sim.Grid{Width: want.Width, Height: want.Height},
			cellW:    1,
			tooSmall: true,
			need:     [2]int{minGridSide + 2, minGridSide + hudRows + 2},
		}
	}

	cellW := 1
	if 2*w+2 <= screenW {
		cellW = 2
	}
	boardW := w*cellW + 2
	area := core.NewRect(0, hudRows, screenW, screenH-hudRows)
	board := area.Centered(boardW, h+2)
	board.Y = hudRows
	return layout{grid: sim.Grid{Width: w, Height: h}, cellW: cellW, board: board}
}

// Grid returns the playfield size in use.
func (g *Game) Grid() sim.Grid {
	return g.layout.grid
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.layout.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need at least %dx%d", g.layout.need[0], g.layout.need[1]),
			"Resize to continue")
		return
	}

	st := g.engine.State()
	rewinding := g.Rewinding()

	border := core.ColorBorder
	if rewinding {
		border = core.ColorRewindFrame
	}
	dst.DrawBoxColored(g.layout.board, border)
	if rewinding {
		label := " ◀◀ REWIND "
		dst.DrawTextColored(g.layout.board.X+2, g.layout.board.Y, label, core.ColorRewindFrame)
	}

	if st.Food != nil {
		g.drawCell(dst, st.Food.Cell, '●', core.ColorFood)
		if st.Food.HasExit {
			g.drawCell(dst, st.Food.Exit, '◎', core.ColorPortalExit)
		}
	}
	g.renderSnake(dst, st, rewinding)

	if rewinding {
		return
	}
	switch g.engine.Phase() {
	case sim.NotStarted:
		g.renderOverlay(dst, g.variant.Title, g.startHints()...)
	case sim.Crashed:
		if g.variant.Rewind {
			g.renderOverlay(dst, "CRASH!", "Hold SPACE to go back,", "or press R to restart")
		} else {
			g.renderOverlay(dst, "CRASH!", fmt.Sprintf("Score: %d", st.Score), "Press R to restart")
		}
	case sim.Won:
		g.renderOverlay(dst, "BOARD CLEARED!", fmt.Sprintf("Final Score: %d", st.Score), "Press R to play again")
	default:
		if g.paused {
			g.renderOverlay(dst, "Paused", "Press P to continue")
		}
	}
}

func (g *Game) startHints() []string {
	hints := []string{"Arrows / WASD to start"}
	if g.variant.Rewind {
		if g.rewind.Mode() == sim.RewindToggle {
			hints = append(hints, "Tap SPACE to toggle rewind")
		} else {
			hints = append(hints, "Hold SPACE to rewind")
		}
		hints = append(hints, fmt.Sprintf("TPS=%d, history=%ds",
			g.cfg.Gameplay.TicksPerSecond, g.cfg.Gameplay.HistorySeconds))
	} else {
		hints = append(hints, g.variant.Blurb)
	}
	return hints
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	st := g.State()
	hud := fmt.Sprintf(" %s · Score: %d  Best: %d", g.variant.Title, st.Score, st.Best)
	dst.DrawText(0, 0, hud)

	x := len([]rune(hud)) + 2
	switch {
	case g.variant.Rewind:
		dst.DrawTextColored(x, 0, g.rewindMeter(), core.ColorPurple)
	case g.variant.Policy == "gravity":
		dst.DrawTextColored(x, 0, "Gravity "+arrow(g.engine.State().Gravity), core.ColorYellow)
	}

	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// rewindMeter shows how much history is available to rewind.
func (g *Game) rewindMeter() string {
	depth, capacity := g.engine.HistoryLen(), g.engine.HistoryCap()
	filled := 0
	if capacity > 0 {
		filled = depth * meterWidth / capacity
	}
	secs := float64(depth) / float64(g.engine.Config().TicksPerSecond)
	return fmt.Sprintf("[%s%s] %.1fs",
		strings.Repeat("█", filled), strings.Repeat("·", meterWidth-filled), secs)
}

func (g *Game) renderSnake(dst *core.Screen, st sim.State, rewinding bool) {
	head, body := core.ColorSnakeHead, core.ColorSnakeBody
	switch {
	case rewinding:
		head, body = core.ColorRewindHead, core.ColorRewindBody
	case st.Terminal:
		head = core.ColorCrashHead
	}
	for i := len(st.Snake) - 1; i >= 0; i-- {
		color := body
		if i == 0 {
			color = head
		}
		g.drawCell(dst, st.Snake[i], '█', color)
	}
}

// drawCell fills one grid cell. Wide cells repeat block glyphs and pad
// other glyphs with a space.
func (g *Game) drawCell(dst *core.Screen, c sim.Cell, r rune, color core.Color) {
	x := g.layout.board.X + 1 + c.X*g.layout.cellW
	y := g.layout.board.Y + 1 + c.Y
	dst.SetColored(x, y, r, color)
	if g.layout.cellW == 2 && r == '█' {
		dst.SetColored(x+1, y, r, color)
	}
}

// renderOverlay draws a centered box with a title and body lines.
func (g *Game) renderOverlay(dst *core.Screen, title string, lines ...string) {
	width := len([]rune(title))
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 4
	screen := core.NewRect(0, 0, dst.Width(), dst.Height())
	box := screen.Centered(boxW, boxH)

	dst.DrawRect(box.Inset(1), ' ')
	dst.DrawBoxColored(box, core.ColorOverlay)
	dst.DrawTextCenteredColored(box.Y+1, title, core.ColorOverlayText)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+3+i, l)
	}
}

func arrow(d sim.Direction) string {
	switch d {
	case sim.Up:
		return "↑"
	case sim.Right:
		return "→"
	case sim.Down:
		return "↓"
	case sim.Left:
		return "←"
	}
	return "?"
}
