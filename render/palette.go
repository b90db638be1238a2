package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/edge-crawler/crawler"
	"github.com/lixenwraith/edge-crawler/parameter"
)

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

// ParseColor parses a #RRGGBB string
func ParseColor(hex string) (colorful.Color, bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// Shade returns the body color for phase p
// Stretching lightens the body and pressing against the wall darkens it
func Shade(c colorful.Color, p crawler.Phase) colorful.Color {
	switch p {
	case crawler.Stretch1:
		return c.BlendLab(white, parameter.StretchLighten/2).Clamped()
	case crawler.Stretch2:
		return c.BlendLab(white, parameter.StretchLighten).Clamped()
	case crawler.Grounded:
		return c.BlendLab(black, parameter.GroundedDarken).Clamped()
	case crawler.Recoil:
		return c.BlendLab(black, parameter.RecoilDarken).Clamped()
	default:
		return c
	}
}

// ToTcell converts a colorful color to a terminal RGB color
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

type shadeKey struct {
	hex   string
	phase crawler.Phase
}

// Palette caches parsed and shaded crawler colors
type Palette struct {
	mu       sync.Mutex
	fallback colorful.Color
	cache    map[shadeKey]tcell.Color
}

// NewPalette creates an empty palette
func NewPalette() *Palette {
	fb, _ := ParseColor(parameter.FallbackBodyColor)
	return &Palette{
		fallback: fb,
		cache:    make(map[shadeKey]tcell.Color),
	}
}

// Body returns the terminal color of a crawler body in phase p
// Unparseable colors use the fallback body color
func (p *Palette) Body(hex string, phase crawler.Phase) tcell.Color {
	key := shadeKey{hex: hex, phase: phase}

	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.cache[key]; ok {
		return c
	}
	base, ok := ParseColor(hex)
	if !ok {
		base = p.fallback
	}
	c := ToTcell(Shade(base, phase))
	p.cache[key] = c
	return c
}

// Plain returns an unshaded color, or fallback when hex does not parse
func (p *Palette) Plain(hex string) tcell.Color {
	return p.Body(hex, crawler.Normal)
}
