// Package config resolves simulation options from defaults, a TOML file and
// EDGECRAWL_* environment keys. Hosts apply their flags last, then call Normalize.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"

	"github.com/lixenwraith/edge-crawler/crawler"
	"github.com/lixenwraith/edge-crawler/parameter"
	"github.com/lixenwraith/edge-crawler/perimeter"
	"github.com/lixenwraith/edge-crawler/toml"
)

// Options is the complete tunable surface of a simulation and its host
// Unknown keys in any source are ignored
type Options struct {
	CollideDistance float64       `toml:"collide_distance"`
	Cooldown        time.Duration `toml:"cooldown"`
	RearmFactor     float64       `toml:"rearm_factor"`
	MaxEntities     int           `toml:"max_entities"`

	StepLevel    int                         `toml:"step_level"`
	TempoLevel   int                         `toml:"tempo_level"`
	Locomotion   string                      `toml:"locomotion"`
	PhaseWeights [crawler.PhaseCount]float64 `toml:"phase_weights"`
	Reverse      bool                        `toml:"reverse"`

	MarginTop    float64 `toml:"margin_top"`
	MarginRight  float64 `toml:"margin_right"`
	MarginBottom float64 `toml:"margin_bottom"`
	MarginLeft   float64 `toml:"margin_left"`

	OutcomePass  float64 `toml:"outcome_pass"`
	OutcomeMerge float64 `toml:"outcome_merge"`
	OutcomeSplit float64 `toml:"outcome_split"`
	PassNudge    float64 `toml:"pass_nudge"`

	// Seed 0 selects a time-based seed
	Seed uint64 `toml:"seed"`

	Spawn []SpawnEntry `toml:"spawn"`
	Host  Host         `toml:"host"`
}

// SpawnEntry is one crawler created at startup
// Zero levels and empty strings fall back to option defaults
type SpawnEntry struct {
	Edge       string  `toml:"edge"`
	Position   float64 `toml:"position"`
	Sense      string  `toml:"sense"`
	StepLevel  int     `toml:"step_level"`
	TempoLevel int     `toml:"tempo_level"`
	Locomotion string  `toml:"locomotion"`
	Color      string  `toml:"color"`
	Eye        string  `toml:"eye"`
}

// Host holds settings consumed by the binaries rather than the simulation
type Host struct {
	Listen     string  `toml:"listen"`
	Mute       bool    `toml:"mute"`
	Debug      bool    `toml:"debug"`
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
	Width      int     `toml:"window_width"`
	Height     int     `toml:"window_height"`
}

// Default returns the stock options with the three-crawler bootstrap
func Default() Options {
	return Options{
		CollideDistance: parameter.DefaultCollideDistance,
		Cooldown:        parameter.DefaultCooldown,
		RearmFactor:     parameter.DefaultRearmFactor,
		MaxEntities:     parameter.DefaultMaxEntities,
		StepLevel:       parameter.DefaultStepLevel,
		TempoLevel:      parameter.DefaultTempoLevel,
		Locomotion:      crawler.LocomotionJump.String(),
		PhaseWeights:    parameter.DefaultPhaseWeights,
		MarginTop:       parameter.DefaultMarginTop,
		MarginRight:     parameter.DefaultMarginRight,
		MarginBottom:    parameter.DefaultMarginBottom,
		MarginLeft:      parameter.DefaultMarginLeft,
		OutcomePass:     parameter.DefaultOutcomePass,
		OutcomeMerge:    parameter.DefaultOutcomeMerge,
		OutcomeSplit:    parameter.DefaultOutcomeSplit,
		PassNudge:       parameter.DefaultPassNudge,
		Spawn:           DefaultSpawn(),
		Host: Host{
			CellWidth:  parameter.DefaultCellWidth,
			CellHeight: parameter.DefaultCellHeight,
			Width:      parameter.DefaultWindowWidth,
			Height:     parameter.DefaultWindowHeight,
		},
	}
}

// DefaultSpawn places three crawlers along the bottom edge
func DefaultSpawn() []SpawnEntry {
	entries := make([]SpawnEntry, len(parameter.BootstrapColors))
	for i, color := range parameter.BootstrapColors {
		entries[i] = SpawnEntry{
			Edge:     perimeter.Bottom.String(),
			Position: parameter.BootstrapFirstPosition + float64(i)*parameter.BootstrapSpacing,
			Color:    color,
			Eye:      parameter.BootstrapEyeColor,
		}
	}
	return entries
}

// Load reads path over the defaults; an empty path returns the defaults
// A [[spawn]] list in the file replaces the bootstrap list
func Load(path string) (Options, error) {
	opts := Default()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := opts.Merge(data); err != nil {
		return opts, fmt.Errorf("parse config %s: %w", path, err)
	}
	return opts, nil
}

// LoadOptional is Load that treats a missing file as no file
func LoadOptional(path string) (Options, error) {
	opts, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return opts, err
}

// Merge overlays TOML source onto o
func (o *Options) Merge(data []byte) error {
	tree, err := toml.NewParser(data).Parse()
	if err != nil {
		return err
	}
	if _, ok := tree["spawn"]; ok {
		o.Spawn = nil
	}
	return toml.Decode(tree, o)
}

// Normalize clamps every option into its valid range
func (o *Options) Normalize() {
	o.CollideDistance = nonNegative(o.CollideDistance, 0)
	o.Cooldown = max(0, o.Cooldown)
	if !(o.RearmFactor >= 1) {
		o.RearmFactor = 1
	}
	o.MaxEntities = max(0, o.MaxEntities)

	o.StepLevel = crawler.ClampLevel(o.StepLevel)
	o.TempoLevel = crawler.ClampLevel(o.TempoLevel)
	if _, ok := crawler.ParseLocomotion(o.Locomotion); !ok {
		o.Locomotion = crawler.LocomotionJump.String()
	}
	for i, w := range o.PhaseWeights {
		o.PhaseWeights[i] = nonNegative(w, 0)
	}

	o.MarginTop = nonNegative(o.MarginTop, parameter.DefaultMarginTop)
	o.MarginRight = nonNegative(o.MarginRight, parameter.DefaultMarginRight)
	o.MarginBottom = nonNegative(o.MarginBottom, parameter.DefaultMarginBottom)
	o.MarginLeft = nonNegative(o.MarginLeft, parameter.DefaultMarginLeft)

	o.OutcomePass = nonNegative(o.OutcomePass, 0)
	o.OutcomeMerge = nonNegative(o.OutcomeMerge, 0)
	o.OutcomeSplit = nonNegative(o.OutcomeSplit, 0)
	if o.OutcomePass+o.OutcomeMerge+o.OutcomeSplit == 0 {
		o.OutcomePass, o.OutcomeMerge, o.OutcomeSplit = 1, 1, 1
	}
	o.PassNudge = nonNegative(o.PassNudge, 0)

	if !(o.Host.CellWidth > 0) {
		o.Host.CellWidth = parameter.DefaultCellWidth
	}
	if !(o.Host.CellHeight > 0) {
		o.Host.CellHeight = parameter.DefaultCellHeight
	}
	if o.Host.Width <= 0 {
		o.Host.Width = parameter.DefaultWindowWidth
	}
	if o.Host.Height <= 0 {
		o.Host.Height = parameter.DefaultWindowHeight
	}
}

// Margins returns the render-only edge offsets
func (o *Options) Margins() perimeter.Margins {
	return perimeter.Margins{Top: o.MarginTop, Right: o.MarginRight, Bottom: o.MarginBottom, Left: o.MarginLeft}
}

// nonNegative replaces negative, NaN and infinite values with fallback
func nonNegative(v, fallback float64) float64 {
	if v >= 0 && !math.IsInf(v, 1) {
		return v
	}
	return fallback
}
