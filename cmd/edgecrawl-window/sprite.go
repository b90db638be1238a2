package main

import (
	"math"

	"github.com/lixenwraith/edge-crawler/crawler"
	"github.com/lixenwraith/edge-crawler/engine"
	"github.com/lixenwraith/edge-crawler/parameter"
	"github.com/lixenwraith/edge-crawler/perimeter"
)

// squash is the body half-extent along travel and along the wall normal, in radii
type squash struct {
	along, normal float64
}

var phaseSquash = [crawler.PhaseCount]squash{
	crawler.Normal:   {1.0, 1.0},
	crawler.Stretch1: {1.25, 0.85},
	crawler.Stretch2: {1.5, 0.7},
	crawler.Grounded: {1.2, 0.6},
	crawler.Recoil:   {0.9, 1.1},
}

// sprite is the screen geometry of one crawler body
type sprite struct {
	cx, cy   float64 // body center
	rx, ry   float64 // ellipse radii in screen axes
	ex, ey   float64 // eye center
	eyeR     float64
	clearing float64 // gap between body and the margin line
}

// inward points from edge e toward the viewport interior
func inward(e perimeter.Edge) (float64, float64) {
	switch e {
	case perimeter.Top:
		return 0, 1
	case perimeter.Right:
		return -1, 0
	case perimeter.Bottom:
		return 0, -1
	default:
		return 1, 0
	}
}

// layoutSprite places the body against its wall
// Grounded bodies sit on the margin line, every other phase hovers just off it
func layoutSprite(v engine.View, radius float64) sprite {
	sq := squash{1, 1}
	if v.Phase < crawler.PhaseCount {
		sq = phaseSquash[v.Phase]
	}
	a, b := sq.along*radius, sq.normal*radius

	hover := parameter.SpriteHover
	if v.Phase == crawler.Grounded {
		hover = 0
	}

	nx, ny := inward(v.Edge)
	dxi, dyi := v.Heading.Dir.Vector()
	dx, dy := float64(dxi), float64(dyi)

	s := sprite{
		cx:       v.X + nx*(b+hover),
		cy:       v.Y + ny*(b+hover),
		clearing: hover,
		eyeR:     math.Max(2, radius*0.22),
	}
	if dx != 0 {
		s.rx, s.ry = a, b
	} else {
		s.rx, s.ry = b, a
	}

	// Eye leads toward travel on the side facing away from the wall
	s.ex = s.cx + dx*a*0.5 + nx*b*0.3
	s.ey = s.cy + dy*a*0.5 + ny*b*0.3
	return s
}
