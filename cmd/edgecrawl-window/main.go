// Command edgecrawl-window runs the crawlers around the edges of a desktop window.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/edge-crawler/audio"
	"github.com/lixenwraith/edge-crawler/config"
	"github.com/lixenwraith/edge-crawler/engine"
	"github.com/lixenwraith/edge-crawler/parameter"
	"github.com/lixenwraith/edge-crawler/render"
	"github.com/lixenwraith/edge-crawler/service"
	"github.com/lixenwraith/edge-crawler/status"
	"github.com/lixenwraith/edge-crawler/stream"
)

const ellipseSegments = 32

var (
	configFlag = flag.String("config", "", "TOML options file")
	envFlag    = flag.String("env", ".env", "dotenv file with EDGECRAWL_* overrides")
	debugFlag  = flag.Bool("debug", false, "log to stderr")
	listenFlag = flag.String("listen", "", "serve the frame stream on this address")
	muteFlag   = flag.Bool("mute", false, "disable sound")
	seedFlag   = flag.Uint64("seed", 0, "random seed, 0 for time-based")
)

var background = color.RGBA{R: 0x10, G: 0x12, B: 0x16, A: 0xff}

// Game adapts the simulation to ebiten's update and draw loop
type Game struct {
	sim    *engine.Simulation
	reg    *status.Registry
	paused bool
	width  int
	height int

	palette map[string]color.Color
	white   *ebiten.Image
	verts   []ebiten.Vertex
	indices []uint16
}

func newGame(sim *engine.Simulation, reg *status.Registry, w, h int) *Game {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Game{
		sim:     sim,
		reg:     reg,
		width:   w,
		height:  h,
		palette: make(map[string]color.Color),
		white:   white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// Update advances the simulation by one fixed step per ebiten tick
func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if id, ok := g.sim.SpawnRandom(); ok {
			log.Printf("spawned crawler %d", id)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.sim.RemoveOldest()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.paused = !g.paused
	}

	if !g.paused {
		g.sim.Tick(time.Second / parameter.WindowTPS)
	}
	return nil
}

// Draw renders every crawler body, its eye and the status line
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for _, v := range g.sim.Views() {
		s := layoutSprite(v, parameter.SpriteRadius)
		g.fillEllipse(screen, s, g.bodyColor(v))
		vector.DrawFilledCircle(screen, float32(s.ex), float32(s.ey), float32(s.eyeR), g.color(v.Cosmetic.Eye), true)
	}

	hud := render.HUDLine(g.reg, g.sim.Capacity())
	if g.paused {
		hud += " PAUSED"
	}
	ebitenutil.DebugPrint(screen, hud)
}

// Layout tracks the window size; the viewport follows it
func (g *Game) Layout(outW, outH int) (int, int) {
	if outW != g.width || outH != g.height {
		g.width, g.height = outW, outH
		g.sim.Resize(float64(outW), float64(outH))
	}
	return outW, outH
}

func (g *Game) fillEllipse(screen *ebiten.Image, s sprite, clr color.Color) {
	var path vector.Path
	for i := 0; i < ellipseSegments; i++ {
		theta := 2 * math.Pi * float64(i) / ellipseSegments
		x := float32(s.cx + s.rx*math.Cos(theta))
		y := float32(s.cy + s.ry*math.Sin(theta))
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()

	g.verts, g.indices = path.AppendVerticesAndIndicesForFilling(g.verts[:0], g.indices[:0])
	r, gr, b, a := clr.RGBA()
	for i := range g.verts {
		g.verts[i].SrcX, g.verts[i].SrcY = 1, 1
		g.verts[i].ColorR = float32(r) / 0xffff
		g.verts[i].ColorG = float32(gr) / 0xffff
		g.verts[i].ColorB = float32(b) / 0xffff
		g.verts[i].ColorA = float32(a) / 0xffff
	}
	screen.DrawTriangles(g.verts, g.indices, g.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (g *Game) bodyColor(v engine.View) color.Color {
	base, ok := render.ParseColor(v.Cosmetic.Color)
	if !ok {
		base, _ = render.ParseColor(parameter.FallbackBodyColor)
	}
	return render.Shade(base, v.Phase)
}

func (g *Game) color(hex string) color.Color {
	if c, ok := g.palette[hex]; ok {
		return c
	}
	c, ok := render.ParseColor(hex)
	if !ok {
		c, _ = render.ParseColor(parameter.BootstrapEyeColor)
	}
	g.palette[hex] = c
	return c
}

func main() {
	flag.Parse()

	opts, err := config.Resolve(*configFlag, *envFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "edgecrawl-window: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			opts.Host.Debug = *debugFlag
		case "listen":
			opts.Host.Listen = *listenFlag
		case "mute":
			opts.Host.Mute = *muteFlag
		case "seed":
			opts.Seed = *seedFlag
		}
	})
	opts.Normalize()

	if !opts.Host.Debug {
		log.SetOutput(io.Discard)
	}

	w, h := opts.Host.Width, opts.Host.Height
	if w <= 0 || h <= 0 {
		w, h = parameter.DefaultWindowWidth, parameter.DefaultWindowHeight
	}

	reg := status.NewRegistry()
	sim := engine.New(opts, float64(w), float64(h), reg)
	if _, err := sim.SpawnEntries(opts.Spawn); err != nil {
		fmt.Fprintf(os.Stderr, "edgecrawl-window: bootstrap: %v\n", err)
		os.Exit(1)
	}

	sound := audio.NewSoundManager()
	sim.OnEncounter(sound.OnEncounter)

	server := stream.NewServer(reg, parameter.StreamFrameInterval)
	if opts.Host.Listen != "" {
		sim.OnFrame(server.Publish)
	}

	// Ebiten drives ticks here, so the hub carries no clock
	hub := service.NewHub()
	_ = hub.Register(sound, opts.Host.Mute)
	_ = hub.Register(stream.NewService(server), opts.Host.Listen)
	if err := hub.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "edgecrawl-window: %v\n", err)
		os.Exit(1)
	}
	defer hub.Stop()

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("edge crawlers")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(parameter.WindowTPS)

	if err := ebiten.RunGame(newGame(sim, reg, w, h)); err != nil {
		fmt.Fprintf(os.Stderr, "edgecrawl-window: %v\n", err)
		os.Exit(1)
	}
}
