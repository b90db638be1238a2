package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ChirpGenerator sweeps a sine from low to high over its duration
type ChirpGenerator struct {
	sr        beep.SampleRate
	low, high float64
	total     int
	pos       int
	phase     float64
}

// NewChirpGenerator creates a one-shot sweep of length d
func NewChirpGenerator(sr beep.SampleRate, low, high float64, d time.Duration) *ChirpGenerator {
	return &ChirpGenerator{sr: sr, low: low, high: high, total: max(1, sr.N(d))}
}

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		progress := float64(g.pos) / float64(g.total)
		freq := g.low + (g.high-g.low)*progress
		// Accumulate phase so the sweep stays continuous
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		env := math.Sin(progress * math.Pi)
		sample := 0.25 * env * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}

// ThudGenerator is a decaying low tone with a falling pitch and a noise transient
type ThudGenerator struct {
	sr    beep.SampleRate
	freq  float64
	total int
	pos   int
	phase float64
	seed  uint32
}

// NewThudGenerator creates a one-shot thud of length d
func NewThudGenerator(sr beep.SampleRate, freq float64, d time.Duration) *ThudGenerator {
	return &ThudGenerator{sr: sr, freq: freq, total: max(1, sr.N(d)), seed: 0x9e3779b9}
}

func (g *ThudGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)
		progress := float64(g.pos) / float64(g.total)

		g.phase += 2 * math.Pi * g.freq * (1 - 0.4*progress) / float64(g.sr)
		body := 0.4 * math.Sin(g.phase)

		// xorshift noise, audible only in the first milliseconds
		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := (float64(g.seed)/math.MaxUint32*2 - 1) * math.Exp(-t*120)

		sample := math.Exp(-t*14) * (body + 0.2*noise)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ThudGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a harsh low buzz from stacked harmonics
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates an endless buzz; wrap it with beep.Take
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3*math.Sin(2*math.Pi*g.freq*t) +
			0.15*math.Sin(2*math.Pi*g.freq*2*t) +
			0.075*math.Sin(2*math.Pi*g.freq*3*t)

		// 20ms fade-in avoids a click
		sample *= math.Min(t/0.02, 1) * 0.2

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
