package t2048

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	minCellWidth = 5 // Width of each cell (including left border)
	cellHeight   = 2 // Height of each cell (including top border)
	hudHeight    = 3
	footerHeight = 2
)

// cellWidth returns the cell width needed to fit the largest tile.
func (g *Game) cellWidth() int {
	widest := max(g.board.MaxTile(), g.currentTarget, 2048)
	return max(minCellWidth, len(strconv.Itoa(widest))+2)
}

// boardSize returns the board footprint on screen.
func (g *Game) boardSize() (w, h int) {
	rows, cols := g.settings.dims()
	if g.board != nil {
		rows, cols = g.board.Rows(), g.board.Cols()
	}
	cw := minCellWidth
	if g.board != nil {
		cw = g.cellWidth()
	}
	return cols*cw + 1, rows*cellHeight + 1
}

// minScreenSize returns the smallest screen that fits HUD, board and footer.
func (g *Game) minScreenSize() (w, h int) {
	boardW, boardH := g.boardSize()
	return max(boardW, 30), hudHeight + 1 + boardH + footerHeight
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.board == nil {
		return
	}

	// Check screen size
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	// Calculate board position (centered)
	boardW, boardH := g.boardSize()
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")

	minW, minH := g.minScreenSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d, please resize", minW, minH))
}

// renderHUD draws the score and level info.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "2048"
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	scoreStr := fmt.Sprintf("Score: %d", g.board.Score())
	dst.DrawText(boardX, 1, scoreStr)

	// Level/Target info (campaign) or Max tile
	var infoStr string
	switch g.mode {
	case ModeCampaign:
		infoStr = fmt.Sprintf("Lv %d/%d  Target: %d", g.levelIndex+1, LevelCount(), g.currentTarget)
	case ModeEndless:
		infoStr = fmt.Sprintf("Max: %d", g.board.MaxTile())
	default:
		infoStr = fmt.Sprintf("Goal: %d", g.currentTarget)
	}
	infoX := max(boardX+boardW-len(infoStr), boardX)
	dst.DrawText(infoX, 1, infoStr)

	modeStr := fmt.Sprintf("%s  Moves: %d", modeLabel(g.mode), g.moves)
	if g.CanUndo() {
		modeStr += "  [undo]"
	}
	dst.DrawText(boardX+(boardW-len(modeStr))/2, 2, modeStr)
}

func modeLabel(m Mode) string {
	switch m {
	case ModeEndless:
		return "Endless"
	case ModeCampaign:
		return "Campaign"
	default:
		return "Classic"
	}
}

// renderBoard draws the grid with tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	rows, cols := g.board.Rows(), g.board.Cols()
	cw := g.cellWidth()

	// Draw grid borders
	for y := range rows + 1 {
		for x := range cols + 1 {
			px := boardX + x*cw
			py := boardY + y*cellHeight
			dst.SetColored(px, py, gridCorner(x, y, cols, rows), core.ColorGray)

			if x < cols {
				for i := 1; i < cw; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < rows {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	// Draw tiles
	for y := range rows {
		for x := range cols {
			val := g.board.Cell(y, x)
			if val == 0 {
				continue
			}

			cellX := boardX + x*cw + 1
			cellY := boardY + y*cellHeight + 1

			valStr := strconv.Itoa(val)
			padLeft := max((cw-1-len(valStr))/2, 0)
			dst.DrawTextColored(cellX+padLeft, cellY, valStr, TileColor(val))
		}
	}
}

// gridCorner picks the box-drawing rune for a grid intersection.
func gridCorner(x, y, cols, rows int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == cols:
		return '┐'
	case y == rows && x == 0:
		return '└'
	case y == rows && x == cols:
		return '┘'
	case y == 0:
		return '┬'
	case y == rows:
		return '┴'
	case x == 0:
		return '├'
	case x == cols:
		return '┤'
	default:
		return '┼'
	}
}

// TileColor maps a tile value to its display color.
func TileColor(v int) core.Color {
	switch {
	case v <= 0:
		return core.ColorDefault
	case v <= 4:
		return core.ColorWhite
	case v <= 16:
		return core.ColorYellow
	case v <= 64:
		return core.ColorOrange
	case v <= 256:
		return core.ColorRed
	case v <= 1024:
		return core.ColorMagenta
	case v <= 2048:
		return core.ColorBrightYellow
	case v <= 8192:
		return core.ColorCyan
	default:
		return core.ColorBrightWhite
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.levelCleared {
		targetStr := fmt.Sprintf("Target %d reached!", g.currentTarget)
		if g.levelIndex >= LevelCount()-1 {
			g.drawOverlay(dst, centerX, centerY, targetStr, "Final level complete!")
		} else {
			g.drawOverlay(dst, centerX, centerY, targetStr, fmt.Sprintf("Next: Level %d", g.levelIndex+2))
		}
		return
	}

	if g.won {
		if g.mode == ModeCampaign {
			g.drawOverlay(dst, centerX, centerY, "CAMPAIGN COMPLETE!", "You are the champion!", "Press R to restart")
		} else {
			g.drawOverlay(dst, centerX, centerY, "YOU WIN!", fmt.Sprintf("Reached %d", g.currentTarget), "Press R to restart")
		}
		return
	}

	if g.gameOver {
		maxStr := fmt.Sprintf("Max tile: %d", g.board.MaxTile())
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", maxStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	if g.undoAllowed() {
		return "Arrows/WASD: Move | U: Undo | P: Pause | R: Restart | Q: Quit"
	}
	return "Arrows/WASD: Move | P: Pause | R: Restart | Q: Quit"
}
