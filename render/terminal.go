// Package render draws crawler frames onto a tcell screen.
//
// The simulation works in virtual units; each terminal cell covers a fixed
// CellWidth×CellHeight block of them. Collect and Commit are meant to be wired
// to the simulation's render and frame callbacks, Draw runs on the host's
// event loop.
package render

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/edge-crawler/engine"
	"github.com/lixenwraith/edge-crawler/parameter"
	"github.com/lixenwraith/edge-crawler/status"
)

// Terminal is a double-buffered crawler canvas backed by a tcell screen
type Terminal struct {
	screen  tcell.Screen
	palette *Palette
	cellW   float64
	cellH   float64

	mu    sync.Mutex
	back  []engine.View
	front []engine.View
	tick  uint64
	dirty bool
}

// NewTerminal creates a canvas; non-positive cell sizes use the defaults
func NewTerminal(screen tcell.Screen, cellW, cellH float64) *Terminal {
	if !(cellW > 0) {
		cellW = parameter.DefaultCellWidth
	}
	if !(cellH > 0) {
		cellH = parameter.DefaultCellHeight
	}
	return &Terminal{
		screen:  screen,
		palette: NewPalette(),
		cellW:   cellW,
		cellH:   cellH,
	}
}

// VirtualSize returns the simulation viewport matching the screen, excluding HUD rows
func (t *Terminal) VirtualSize() (w, h float64) {
	cols, rows := t.screen.Size()
	rows = max(0, rows-parameter.HUDRows)
	return float64(cols) * t.cellW, float64(rows) * t.cellH
}

// Cell maps a virtual point to a cell inside the sprite area
func (t *Terminal) Cell(x, y float64) (col, row int) {
	cols, rows := t.screen.Size()
	rows = max(1, rows-parameter.HUDRows)
	col = min(max(0, int(x/t.cellW)), max(0, cols-1))
	row = min(max(0, int(y/t.cellH)), rows-1)
	return col, row
}

// Collect buffers one crawler view; wire to Simulation.OnRender
func (t *Terminal) Collect(v engine.View) {
	t.mu.Lock()
	t.back = append(t.back, v)
	t.mu.Unlock()
}

// Commit publishes the buffered views as the next frame; wire to Simulation.OnFrame
func (t *Terminal) Commit(f engine.Frame) {
	t.mu.Lock()
	t.back, t.front = t.front[:0], t.back
	t.tick = f.Tick
	t.dirty = true
	t.mu.Unlock()
}

// Dirty reports whether a frame was committed since the last Draw
func (t *Terminal) Dirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty
}

// Views returns a copy of the committed frame
func (t *Terminal) Views() []engine.View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]engine.View(nil), t.front...)
}

// Draw renders the committed frame and the HUD, then shows the screen
// A nil registry skips the HUD
func (t *Terminal) Draw(reg *status.Registry, capacity int, paused bool) {
	t.mu.Lock()
	views := append([]engine.View(nil), t.front...)
	t.dirty = false
	t.mu.Unlock()

	t.screen.Clear()
	for i := range views {
		t.drawSprite(&views[i])
	}
	if reg != nil {
		t.drawHUD(HUDLine(reg, capacity), paused)
	}
	t.screen.Show()
}

func (t *Terminal) drawSprite(v *engine.View) {
	col, row := t.Cell(v.X, v.Y)
	bodyStyle := tcell.StyleDefault.Foreground(t.palette.Body(v.Cosmetic.Color, v.Phase))
	t.screen.SetContent(col, row, BodyGlyph(v.Phase, v.Edge, v.Heading.Dir), nil, bodyStyle)

	// Eye sits one cell ahead in the direction of travel
	dx, dy := v.Heading.Dir.Vector()
	ex, ey := col+dx, row+dy
	cols, rows := t.screen.Size()
	if ex < 0 || ey < 0 || ex >= cols || ey >= rows-parameter.HUDRows {
		return
	}
	eyeStyle := tcell.StyleDefault.Foreground(t.palette.Plain(v.Cosmetic.Eye)).Bold(true)
	t.screen.SetContent(ex, ey, EyeGlyph(v.Heading.Dir), nil, eyeStyle)
}

func (t *Terminal) drawHUD(line string, paused bool) {
	cols, rows := t.screen.Size()
	if rows < 1 {
		return
	}
	y := rows - 1
	style := tcell.StyleDefault.Foreground(t.palette.Plain(parameter.HUDForeground))
	x := drawText(t.screen, 0, y, cols, line, style)
	if paused {
		pausedStyle := tcell.StyleDefault.Foreground(t.palette.Plain(parameter.HUDPausedColor)).Bold(true)
		drawText(t.screen, x, y, cols, " PAUSED", pausedStyle)
	}
}

// HUDLine formats the status line from registry counters
func HUDLine(reg *status.Registry, capacity int) string {
	return fmt.Sprintf(" crawlers %d/%d  pass %d  merge %d  split %d (%d rejected)  tick %d",
		reg.Int(engine.MetricLive), capacity,
		reg.Int(engine.MetricPass),
		reg.Int(engine.MetricMerge),
		reg.Int(engine.MetricSplit),
		reg.Int(engine.MetricSplitRejected),
		reg.Int(engine.MetricTicks),
	)
}

// drawText writes text from x until the width runs out and returns the next column
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	for _, r := range text {
		if x >= width {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
