package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/edge-crawler/audio"
	"github.com/lixenwraith/edge-crawler/config"
	"github.com/lixenwraith/edge-crawler/engine"
	"github.com/lixenwraith/edge-crawler/parameter"
	"github.com/lixenwraith/edge-crawler/render"
	"github.com/lixenwraith/edge-crawler/service"
	"github.com/lixenwraith/edge-crawler/status"
	"github.com/lixenwraith/edge-crawler/stream"
	"github.com/lixenwraith/edge-crawler/toml"
)

func main() {
	flags, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	opts, err := resolveOptions(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "edgecrawl: %v\n", err)
		os.Exit(1)
	}

	if flags.dump {
		data, err := toml.Marshal(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "edgecrawl: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	if logFile := setupLogging(opts.Host.Debug); logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: restore the terminal before printing the trace
	crash := func(r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\n\x1b[31mEDGECRAWL CRASHED: %v\x1b[0m\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()

	if err := run(screen, opts, crash); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "edgecrawl: %v\n", err)
		os.Exit(1)
	}
	screen.Fini()
}

// run owns the screen until the user quits
func run(screen tcell.Screen, opts config.Options, crash func(any)) error {
	screen.HideCursor()
	screen.Clear()

	canvas := render.NewTerminal(screen, opts.Host.CellWidth, opts.Host.CellHeight)
	reg := status.NewRegistry()

	w, h := canvas.VirtualSize()
	sim := engine.New(opts, w, h, reg)
	sim.OnRender(canvas.Collect)
	sim.OnFrame(canvas.Commit)

	sound := audio.NewSoundManager()
	sim.OnEncounter(sound.OnEncounter)

	n, err := sim.SpawnEntries(opts.Spawn)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	log.Printf("bootstrap: %d of %d crawlers on a %.0fx%.0f viewport", n, len(opts.Spawn), w, h)

	clock := engine.NewClock(sim, nil, parameter.FrameUpdateInterval)
	clock.SetCrashHandler(crash)

	server := stream.NewServer(reg, parameter.StreamFrameInterval)
	if opts.Host.Listen != "" {
		sim.OnFrame(server.Publish)
	}

	hub := service.NewHub()
	for _, s := range []struct {
		svc  service.Service
		args []any
	}{
		{sound, []any{opts.Host.Mute}},
		{clock, nil},
		{stream.NewService(server), []any{opts.Host.Listen}},
	} {
		if err := hub.Register(s.svc, s.args...); err != nil {
			return err
		}
	}
	if err := hub.Start(); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	defer func() {
		if err := hub.Stop(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	redraw := time.NewTicker(parameter.FrameUpdateInterval)
	defer redraw.Stop()

	canvas.Draw(reg, sim.Capacity(), clock.IsPaused())
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !handleKey(ev, sim, clock) {
					return nil
				}
				canvas.Draw(reg, sim.Capacity(), clock.IsPaused())
			case *tcell.EventResize:
				screen.Sync()
				w, h := canvas.VirtualSize()
				sim.Resize(w, h)
				log.Printf("resize: %.0fx%.0f", w, h)
				canvas.Draw(reg, sim.Capacity(), clock.IsPaused())
			}
		case <-redraw.C:
			if canvas.Dirty() {
				canvas.Draw(reg, sim.Capacity(), clock.IsPaused())
			}
		}
	}
}

// handleKey applies one key press; false means quit
func handleKey(ev *tcell.EventKey, sim *engine.Simulation, clock *engine.Clock) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 's':
		if id, ok := sim.SpawnRandom(); ok {
			log.Printf("spawned crawler %d", id)
		} else {
			log.Printf("spawn rejected at capacity %d", sim.Capacity())
		}
	case 'r':
		if id, ok := sim.RemoveOldest(); ok {
			log.Printf("removed crawler %d", id)
		}
	case 'p':
		log.Printf("paused: %v", clock.TogglePause())
	}
	return true
}
