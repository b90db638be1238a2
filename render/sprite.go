package render

import (
	"github.com/lixenwraith/edge-crawler/crawler"
	"github.com/lixenwraith/edge-crawler/perimeter"
)

// Grounded bodies press flat against their wall
var groundedGlyphs = [perimeter.EdgeCount]rune{
	perimeter.Top:    '▀',
	perimeter.Right:  '▐',
	perimeter.Bottom: '▄',
	perimeter.Left:   '▌',
}

var eyeGlyphs = [4]rune{
	perimeter.East:  '▸',
	perimeter.South: '▾',
	perimeter.West:  '◂',
	perimeter.North: '▴',
}

// BodyGlyph returns the body character for a crawler in phase p clinging to e
// and traveling in dir
func BodyGlyph(p crawler.Phase, e perimeter.Edge, dir perimeter.Direction) rune {
	horizontal := dir == perimeter.East || dir == perimeter.West
	switch p {
	case crawler.Stretch1:
		if horizontal {
			return '▬'
		}
		return '▮'
	case crawler.Stretch2:
		if horizontal {
			return '━'
		}
		return '┃'
	case crawler.Grounded:
		if e < perimeter.EdgeCount {
			return groundedGlyphs[e]
		}
		return '▄'
	case crawler.Recoil:
		return '•'
	default:
		return '●'
	}
}

// EyeGlyph returns the eye character pointing in dir
func EyeGlyph(dir perimeter.Direction) rune {
	if dir > perimeter.North {
		return '·'
	}
	return eyeGlyphs[dir]
}
