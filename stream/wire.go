package stream

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/edge-crawler/engine"
)

// WireCrawler is the viewer-facing encoding of one crawler
type WireCrawler struct {
	ID       uint64  `msgpack:"id"`
	Edge     string  `msgpack:"edge"`
	Position float64 `msgpack:"pos"`
	Sense    string  `msgpack:"sense"`
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	Dir      string  `msgpack:"dir"`
	Degrees  float64 `msgpack:"deg"`
	FlipY    bool    `msgpack:"flip_y"`
	Phase    string  `msgpack:"phase"`
	Color    string  `msgpack:"color"`
	Eye      string  `msgpack:"eye"`
}

// WireFrame is one broadcast message
type WireFrame struct {
	Tick     uint64           `msgpack:"tick"`
	NowMs    int64            `msgpack:"now_ms"`
	Width    float64          `msgpack:"w"`
	Height   float64          `msgpack:"h"`
	Capacity int              `msgpack:"cap"`
	Crawlers []WireCrawler    `msgpack:"crawlers"`
	Counters map[string]int64 `msgpack:"counters,omitempty"`
}

// NewWireFrame converts an engine frame; counters may be nil
func NewWireFrame(f engine.Frame, counters map[string]int64) WireFrame {
	wf := WireFrame{
		Tick:     f.Tick,
		NowMs:    f.Now.Milliseconds(),
		Width:    f.Width,
		Height:   f.Height,
		Capacity: f.Capacity,
		Crawlers: make([]WireCrawler, len(f.Views)),
		Counters: counters,
	}
	for i, v := range f.Views {
		wf.Crawlers[i] = WireCrawler{
			ID:       uint64(v.ID),
			Edge:     v.Edge.String(),
			Position: v.Position,
			Sense:    v.Sense.String(),
			X:        v.X,
			Y:        v.Y,
			Dir:      v.Heading.Dir.String(),
			Degrees:  v.Heading.Degrees,
			FlipY:    v.Heading.FlipY,
			Phase:    v.Phase.String(),
			Color:    v.Cosmetic.Color,
			Eye:      v.Cosmetic.Eye,
		}
	}
	return wf
}

// EncodeFrame packs a frame for the wire
func EncodeFrame(f engine.Frame, counters map[string]int64) ([]byte, error) {
	wf := NewWireFrame(f, counters)
	data, err := msgpack.Marshal(&wf)
	if err != nil {
		return nil, fmt.Errorf("encode frame %d: %w", f.Tick, err)
	}
	return data, nil
}

// DecodeFrame unpacks a broadcast message
func DecodeFrame(data []byte) (WireFrame, error) {
	var wf WireFrame
	if err := msgpack.Unmarshal(data, &wf); err != nil {
		return WireFrame{}, fmt.Errorf("decode frame: %w", err)
	}
	return wf, nil
}
