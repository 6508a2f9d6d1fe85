package game

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

const (
	cellHeight = 2 // Height of each cell (including the top border)
	hudHeight  = 3 // Title, score line and target line
)

// tileColors maps tile values to colors; larger values use the last entry.
var tileColors = []struct {
	value int
	color core.Color
}{
	{2, core.ColorWhite},
	{4, core.ColorBrightWhite},
	{8, core.ColorYellow},
	{16, core.ColorOrange},
	{32, core.ColorRed},
	{64, core.ColorBrightRed},
	{128, core.ColorBrightYellow},
	{256, core.ColorGreen},
	{512, core.ColorBrightGreen},
	{1024, core.ColorCyan},
	{2048, core.ColorBrightCyan},
	{4096, core.ColorBlue},
	{8192, core.ColorMagenta},
	{math.MaxInt, core.ColorBrightMagenta},
}

func tileColor(value int) core.Color {
	for _, tc := range tileColors {
		if value <= tc.value {
			return tc.color
		}
	}
	return core.ColorBrightMagenta
}

// cellWidth returns the width of one cell including its left border.
// Wide enough for the variant's win tile, or five digits when endless.
func (g *Game) cellWidth() int {
	digits := 5
	if w := g.variant.Board.WinValue; w > 0 {
		digits = len(strconv.Itoa(w))
	}
	return max(digits, 4) + 3
}

// boardDims returns the board size in screen characters, borders included.
func (g *Game) boardDims() (w, h int) {
	n := g.variant.Board.Size
	return n*g.cellWidth() + 1, n*cellHeight + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.eng == nil {
		return
	}

	boardW, boardH := g.boardDims()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)

	hint := g.Controls()
	dst.DrawTextColor((g.screenW-len(hint))/2, boardY+boardH+1, hint, core.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	y := g.screenH / 2
	dst.DrawText((g.screenW-len(msg))/2, y, msg)

	boardW, boardH := g.boardDims()
	hint := fmt.Sprintf("Need %dx%d", boardW+2, boardH+hudHeight+2)
	dst.DrawText((g.screenW-len(hint))/2, y+1, hint)
}

// renderHUD draws the title, scores and target.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.variant.Title
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	state := g.State()
	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", state.Score))

	bestStr := fmt.Sprintf("Best: %d", state.BestScore)
	bestX := max(boardX+boardW-len(bestStr), boardX)
	dst.DrawText(bestX, 1, bestStr)

	var info string
	if w := g.variant.Board.WinValue; w > 0 {
		info = fmt.Sprintf("Target: %d  Moves: %d", w, g.eng.MoveCount())
	} else {
		info = fmt.Sprintf("Endless  Max: %d  Moves: %d", g.eng.MaxTile(), g.eng.MoveCount())
	}
	dst.DrawTextColor(boardX+(boardW-len(info))/2, 2, info, core.ColorGray)
}

// renderGrid draws the N×N cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	n := g.variant.Board.Size
	cw := g.cellWidth()

	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cw
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColor(px, py, corner, core.ColorGray)

			if x < n {
				for i := 1; i < cw; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTiles draws tiles, following the current animation phase.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	if g.animating && g.animationPhase == PhaseSlide {
		for i := range g.animations {
			a := &g.animations[i]
			fx, fy := a.position()
			g.drawTile(dst, boardX, boardY, fx, fy, strconv.Itoa(a.Value), tileColor(a.Value))
		}
		return
	}

	var pop *TileAnimation
	if g.animating && g.animationPhase == PhasePop && len(g.animations) > 0 {
		pop = &g.animations[0]
	}

	for _, t := range g.eng.Tiles() {
		if t.Ghost {
			continue
		}
		label, color := strconv.Itoa(t.Value), tileColor(t.Value)
		if pop != nil && t.ID == pop.ID {
			label, color = popLabel(pop), core.ColorBrightWhite
		}
		g.drawTile(dst, boardX, boardY, float64(t.Cell.X), float64(t.Cell.Y), label, color)
	}
}

// popLabel grows a spawned tile from a dot to its value.
func popLabel(a *TileAnimation) string {
	if a.Progress < 0.5 {
		return "·"
	}
	return strconv.Itoa(a.Value)
}

// drawTile draws a label centered in the cell at board position (fx, fy).
func (g *Game) drawTile(dst *core.Screen, boardX, boardY int, fx, fy float64, label string, color core.Color) {
	cw := g.cellWidth()
	cellX := boardX + int(math.Round(fx*float64(cw))) + 1
	cellY := boardY + int(math.Round(fy*float64(cellHeight))) + 1

	width := len([]rune(label))
	padLeft := core.Clamp((cw-1-width)/2, 0, cw)
	dst.DrawTextColor(cellX+padLeft, cellY, label, color)
}

// renderOverlays draws pause, win and game over boxes.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX, centerY := core.NewRect(boardX, boardY, boardW, boardH).Center()

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.winPending:
		g.drawOverlay(dst, centerX, centerY, "YOU WIN!",
			fmt.Sprintf("Reached %d", g.variant.Board.WinValue),
			"Enter: keep playing", "R: new game")
	case g.eng.Over():
		g.drawOverlay(dst, centerX, centerY, "GAME OVER",
			fmt.Sprintf("Max tile: %d", g.eng.MaxTile()), "Press R to restart")
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | P: Pause | R: New game | Q: Quit"
}

// BoardText renders the engine's board as plain text rows, one cell per
// column padded to the widest value. Used by the line-oriented transports.
func BoardText(e *engine.Engine) string {
	values := e.Values()
	width := max(len(strconv.Itoa(e.MaxTile())), 1)

	var out []byte
	for y, row := range values {
		if y > 0 {
			out = append(out, '\n')
		}
		for x, v := range row {
			if x > 0 {
				out = append(out, ' ')
			}
			cell := "."
			if v > 0 {
				cell = strconv.Itoa(v)
			}
			out = append(out, fmt.Sprintf("%*s", width, cell)...)
		}
	}
	return string(out)
}
