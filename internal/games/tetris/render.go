package tetris

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

const (
	hudHeight    = 2 // status line + separator
	panelGap     = 2
	minPanelW    = 14
	previewCells = 4
	blockRune    = '█'
	emptyRune    = '·'
)

// layout is the screen geometry of one frame.
type layout struct {
	well  core.Rect // including the border
	panel core.Rect
	block int
}

// computeLayout centers the well and side panel below the HUD. ok is false
// when the screen cannot hold them.
func (g *Game) computeLayout(w, h int) (layout, bool) {
	block := max(1, g.cfg.Board.BlockSize)
	wellW := g.cfg.Board.Columns*block + 2
	wellH := g.cfg.Board.Rows + 2
	panelW := max(minPanelW, previewCells*block+2)

	total := wellW + panelGap + panelW
	if w < total || h < hudHeight+wellH {
		return layout{}, false
	}

	x := (w - total) / 2
	return layout{
		well:  core.NewRect(x, hudHeight, wellW, wellH),
		panel: core.NewRect(x+wellW+panelGap, hudHeight, panelW, previewCells+2),
		block: block,
	}, true
}

// Render draws the current game state to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Draw HUD
	g.renderHUD(dst)

	if g.session == nil {
		msg := "No game"
		if g.err != nil {
			msg = g.err.Error()
		}
		g.renderOverlay(dst, "Cannot start", msg)
		return
	}

	lay, ok := g.computeLayout(dst.Width(), dst.Height())
	if !ok {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderWell(dst, lay)
	g.renderPanel(dst, lay)

	// Draw overlays
	switch {
	case g.session.Over():
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  R to restart", g.session.Score()))
	case g.finished():
		g.renderOverlay(dst, "Replay finished", "R to watch again")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s | Score: %d  Lines: %d", g.Title(), g.State().Score, g.State().Lines)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderWell draws the border, landed cells and the active piece.
func (g *Game) renderWell(dst *core.Screen, lay layout) {
	dst.DrawBox(lay.well)

	inner := lay.well.Inset(1)
	innerX, innerY := inner.X, inner.Y
	grid := g.session.Playfield().Grid()
	for row, cells := range grid {
		for col, c := range cells {
			x := innerX + col*lay.block
			if c == engine.ColorNone {
				dst.SetColored(x, innerY+row, emptyRune, core.ColorGray)
				continue
			}
			drawBlock(dst, x, innerY+row, lay.block, cellColor(c))
		}
	}

	if g.session.Over() {
		return
	}
	active := g.session.Active()
	for _, p := range active.Cells() {
		x, y := innerX+p.Col*lay.block, innerY+p.Row
		// Cells above the top edge are not drawn
		if !inner.Contains(x, y) {
			continue
		}
		drawBlock(dst, x, y, lay.block, cellColor(active.Color))
	}
}

// renderPanel draws the lookahead box and the counters.
func (g *Game) renderPanel(dst *core.Screen, lay layout) {
	dst.DrawBox(lay.panel)
	dst.DrawText(lay.panel.X+2, lay.panel.Y, " Next ")

	next := g.session.Lookahead()
	offX := lay.panel.X + 1 + (lay.panel.W-2-next.Mask.Width()*lay.block)/2
	offY := lay.panel.Y + 1 + (previewCells-next.Mask.Height())/2
	for y, row := range next.Mask {
		for x, set := range row {
			if set {
				drawBlock(dst, offX+x*lay.block, offY+y, lay.block, cellColor(next.Color))
			}
		}
	}

	y := lay.panel.Bottom() + 1
	dst.DrawText(lay.panel.X, y, fmt.Sprintf("Score  %d", g.session.Score()))
	dst.DrawText(lay.panel.X, y+1, fmt.Sprintf("Lines  %d", g.session.Lines()))
	dst.DrawText(lay.panel.X, y+2, fmt.Sprintf("Ticks  %d", g.session.Ticks()))
	if g.replay != nil {
		dst.DrawTextColored(lay.panel.X, y+4, fmt.Sprintf("Replay %d/%d", g.replayPos, g.replay.Len()), core.ColorCyan)
	}
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := core.Clamp(maxLen+4, 0, dst.Width())
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

// drawBlock paints one cell as a run of width block characters.
func drawBlock(dst *core.Screen, x, y, width int, c core.Color) {
	dst.DrawTextColored(x, y, strings.Repeat(string(blockRune), width), c)
}

// cellColor maps engine colour tags to screen colours.
func cellColor(c engine.Color) core.Color {
	switch c {
	case engine.ColorRed:
		return core.ColorRed
	case engine.ColorGreen:
		return core.ColorGreen
	case engine.ColorBlue:
		return core.ColorBlue
	case engine.ColorYellow:
		return core.ColorYellow
	case engine.ColorCyan:
		return core.ColorCyan
	case engine.ColorMagenta:
		return core.ColorMagenta
	case engine.ColorOrange:
		return core.ColorOrange
	case engine.ColorPurple:
		return core.ColorPurple
	default:
		return core.ColorWhite
	}
}
