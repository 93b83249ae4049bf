package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// StartTitle heads the start screen.
const StartTitle = "Robrary Games: Snake"

const (
	hudHeight = 2
	cellWidth = 2 // terminal cells are about twice as tall as wide
)

// Glyphs used on the board, one pair per grid cell.
var (
	glyphHead = [cellWidth]rune{'█', '█'}
	glyphBody = [cellWidth]rune{'▓', '▓'}
	glyphFood = [cellWidth]rune{'<', '>'}
)

// BoardSize returns the screen size needed to draw a grid, HUD included.
func BoardSize(g core.Grid) (w, h int) {
	return g.W*cellWidth + 2, g.H + 2 + hudHeight
}

// Render draws snap to dst. prompt is the initials typed so far and is only
// shown while a new high score is being entered.
func Render(dst *core.Screen, snap Snapshot, prompt string) {
	dst.Clear()
	renderHUD(dst, snap)

	needW, needH := BoardSize(snap.Grid)
	if dst.Width() < needW || dst.Height() < needH {
		renderOverlay(dst, core.ColorAlert, "Window too small", fmt.Sprintf("Need %dx%d", needW, needH))
		return
	}

	board := core.NewRect((dst.Width()-needW)/2, hudHeight, needW, needH-hudHeight)
	dst.DrawBox(board, core.ColorBorder)

	if snap.Food != nil {
		drawCell(dst, board, *snap.Food, glyphFood, core.ColorFood)
	}
	// Body first so the head is never hidden.
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			drawCell(dst, board, snap.Snake[i], glyphHead, core.ColorSnakeHead)
		} else {
			drawCell(dst, board, snap.Snake[i], glyphBody, core.ColorSnakeBody)
		}
	}

	switch snap.State {
	case StateStart:
		renderOverlay(dst, core.ColorTitle, StartTitle, "Use W A S D to move", "Press SPACE to start")
	case StateGameOver:
		renderOverlay(dst, core.ColorAlert, "Game Over", fmt.Sprintf("Score: %d", snap.Score), "Press R to restart")
	case StateHighScoreEntry:
		renderOverlay(dst, core.ColorTitle, "New High Score!", "ENTER INITIALS", prompt+"_", "Press ENTER to save")
	case StateGameOverDisplay:
		renderOverlay(dst, core.ColorAlert, "Game Over",
			fmt.Sprintf("High Score: %d (%s)", snap.Best.Score, snap.Best.Initials),
			"Press R to restart")
	}
}

// renderHUD draws the top status bar.
func renderHUD(dst *core.Screen, snap Snapshot) {
	hud := fmt.Sprintf(" Snake  Score: %d  Best: %d", snap.Score, snap.Best.Score)
	if snap.Best.Initials != "" {
		hud += " " + snap.Best.Initials
	}
	hud += fmt.Sprintf("  Speed: %dms", snap.TickIntervalMS)
	dst.DrawTextColored(0, 0, hud, core.ColorHUD)

	// Draw separator
	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorBorder)
	}
}

func drawCell(dst *core.Screen, board core.Rect, c core.Cell, glyph [cellWidth]rune, color core.Color) {
	x := board.X + 1 + c.X*cellWidth
	y := board.Y + 1 + c.Y
	for i, r := range glyph {
		dst.SetColored(x+i, y, r, color)
	}
}

// renderOverlay draws a centered box headed by title.
func renderOverlay(dst *core.Screen, titleColor core.Color, title string, lines ...string) {
	maxLen := len([]rune(title))
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	boxW := maxLen + 4
	boxH := len(lines) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBorder)
	dst.DrawTextCentered(box.Y+1, title, titleColor)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+3+i, l, core.ColorHUD)
	}
}
