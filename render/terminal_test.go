package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/edge-crawler/config"
	"github.com/lixenwraith/edge-crawler/crawler"
	"github.com/lixenwraith/edge-crawler/engine"
	"github.com/lixenwraith/edge-crawler/parameter"
	"github.com/lixenwraith/edge-crawler/perimeter"
	"github.com/lixenwraith/edge-crawler/status"
)

func newTestScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, row, cols int) string {
	var b strings.Builder
	for x := 0; x < cols; x++ {
		r, _, _, _ := screen.GetContent(x, row)
		b.WriteRune(r)
	}
	return b.String()
}

// TestVirtualSize verifies the viewport excludes the HUD rows
func TestVirtualSize(t *testing.T) {
	canvas := NewTerminal(newTestScreen(t, 100, 31), 0, 0)
	w, h := canvas.VirtualSize()
	if w != 800 || h != 480 {
		t.Errorf("virtual size = %vx%v, want 800x480", w, h)
	}
}

// TestCellMapping verifies virtual points land inside the sprite area
func TestCellMapping(t *testing.T) {
	canvas := NewTerminal(newTestScreen(t, 100, 31), 8, 16)
	tests := []struct {
		x, y     float64
		col, row int
	}{
		{0, 0, 0, 0},
		{15.9, 16, 1, 1},
		{799, 479, 99, 29},
		{800, 480, 99, 29},
		{-5, 1e9, 0, 29},
	}
	for _, tt := range tests {
		col, row := canvas.Cell(tt.x, tt.y)
		if col != tt.col || row != tt.row {
			t.Errorf("Cell(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, col, row, tt.col, tt.row)
		}
	}
}

// TestCommitSwapsBuffers verifies collected views are hidden until committed
func TestCommitSwapsBuffers(t *testing.T) {
	canvas := NewTerminal(newTestScreen(t, 40, 10), 0, 0)
	canvas.Collect(engine.View{ID: 1})
	canvas.Collect(engine.View{ID: 2})
	if len(canvas.Views()) != 0 || canvas.Dirty() {
		t.Fatal("views visible before commit")
	}

	canvas.Commit(engine.Frame{Tick: 1})
	if got := canvas.Views(); len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("committed views = %+v", got)
	}
	if !canvas.Dirty() {
		t.Error("commit did not mark dirty")
	}

	canvas.Commit(engine.Frame{Tick: 2})
	if len(canvas.Views()) != 0 {
		t.Errorf("empty commit kept %d views", len(canvas.Views()))
	}
}

// TestDrawFrame verifies a simulated crawler is drawn with its eye and the HUD
func TestDrawFrame(t *testing.T) {
	screen := newTestScreen(t, 100, 31)
	canvas := NewTerminal(screen, 0, 0)

	opts := config.Default()
	opts.Seed = 1
	w, h := canvas.VirtualSize()
	reg := status.NewRegistry()
	sim := engine.New(opts, w, h, reg)
	sim.OnRender(canvas.Collect)
	sim.OnFrame(canvas.Commit)

	if _, ok := sim.Spawn(engine.SpawnParams{
		Edge:     perimeter.Bottom,
		Position: 100,
		Sense:    perimeter.Clockwise,
		Cosmetic: crawler.Cosmetic{Color: "#E52A2A", Eye: parameter.BootstrapEyeColor},
	}); !ok {
		t.Fatal("spawn rejected")
	}
	sim.Tick(0)
	canvas.Draw(reg, sim.Capacity(), true)

	// Bottom anchor (100, 474) lands in column 12 of the last sprite row
	body, _, _, _ := screen.GetContent(12, 29)
	if body != '●' {
		t.Errorf("body glyph = %q, want '●'", body)
	}
	eye, _, _, _ := screen.GetContent(11, 29)
	if eye != '◂' {
		t.Errorf("eye glyph = %q, want '◂' (clockwise on bottom travels west)", eye)
	}

	hud := rowText(screen, 30, 100)
	if !strings.Contains(hud, "crawlers 1/12") || !strings.Contains(hud, "PAUSED") {
		t.Errorf("hud = %q", hud)
	}
	if canvas.Dirty() {
		t.Error("draw left the canvas dirty")
	}
}

// TestBodyGlyph verifies phase and wall selection of the body character
func TestBodyGlyph(t *testing.T) {
	tests := []struct {
		phase crawler.Phase
		edge  perimeter.Edge
		dir   perimeter.Direction
		want  rune
	}{
		{crawler.Normal, perimeter.Top, perimeter.East, '●'},
		{crawler.Stretch1, perimeter.Top, perimeter.East, '▬'},
		{crawler.Stretch2, perimeter.Left, perimeter.North, '┃'},
		{crawler.Grounded, perimeter.Bottom, perimeter.West, '▄'},
		{crawler.Grounded, perimeter.Top, perimeter.East, '▀'},
		{crawler.Grounded, perimeter.Right, perimeter.South, '▐'},
		{crawler.Grounded, perimeter.Left, perimeter.North, '▌'},
		{crawler.Recoil, perimeter.Right, perimeter.South, '•'},
	}
	for _, tt := range tests {
		if got := BodyGlyph(tt.phase, tt.edge, tt.dir); got != tt.want {
			t.Errorf("BodyGlyph(%v, %v, %v) = %q, want %q", tt.phase, tt.edge, tt.dir, got, tt.want)
		}
	}
	if EyeGlyph(perimeter.North) != '▴' || EyeGlyph(perimeter.East) != '▸' {
		t.Error("eye glyphs do not follow travel direction")
	}
}

// TestShade verifies stretch lightens and grounded darkens in Lab lightness
func TestShade(t *testing.T) {
	base, ok := ParseColor("#1E4FB7")
	if !ok {
		t.Fatal("parse failed")
	}
	l0, _, _ := base.Lab()
	lStretch, _, _ := Shade(base, crawler.Stretch2).Lab()
	lGround, _, _ := Shade(base, crawler.Grounded).Lab()
	if !(lStretch > l0) {
		t.Errorf("stretch lightness %v not above base %v", lStretch, l0)
	}
	if !(lGround < l0) {
		t.Errorf("grounded lightness %v not below base %v", lGround, l0)
	}
	if Shade(base, crawler.Normal) != base {
		t.Error("normal phase altered the color")
	}
}

// TestPaletteFallback verifies unparseable colors use the fallback body color
func TestPaletteFallback(t *testing.T) {
	p := NewPalette()
	if _, ok := ParseColor("not-a-color"); ok {
		t.Fatal("garbage parsed as a color")
	}
	if got, want := p.Body("not-a-color", crawler.Normal), p.Plain(parameter.FallbackBodyColor); got != want {
		t.Errorf("fallback = %v, want %v", got, want)
	}
	r, g, b := p.Plain("#E52A2A").RGB()
	if r != 0xE5 || g != 0x2A || b != 0x2A {
		t.Errorf("rgb = (%d, %d, %d)", r, g, b)
	}
}
