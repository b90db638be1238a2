// Package population owns the live crawler set.
// Spawn and Remove are the only mutation entry points; other components
// receive snapshots and never touch the storage directly.
package population

import (
	"slices"

	"github.com/lixenwraith/edge-crawler/crawler"
	"github.com/lixenwraith/edge-crawler/perimeter"
)

// Population is the bounded set of live crawlers in spawn order
// Not safe for concurrent use; the engine serializes access
type Population struct {
	capacity int
	nextID   crawler.ID
	live     []*crawler.Crawler
	tuning   *crawler.Tuning
}

// New creates an empty population bounded by capacity; negative capacity is treated as 0
func New(capacity int, tuning *crawler.Tuning) *Population {
	if tuning == nil {
		tuning = crawler.DefaultTuning()
	}
	return &Population{
		capacity: max(0, capacity),
		live:     make([]*crawler.Crawler, 0, max(0, capacity)),
		tuning:   tuning,
	}
}

// Spawn creates a crawler on r unless the population is full
// A full population rejects silently with (nil, false)
func (p *Population) Spawn(params crawler.Params, r perimeter.Rect) (*crawler.Crawler, bool) {
	if len(p.live) >= p.capacity {
		return nil, false
	}
	p.nextID++
	c := crawler.New(p.nextID, params, r, p.tuning)
	p.live = append(p.live, c)
	return c, true
}

// Remove deletes the crawler with id; returns false if it was not live
func (p *Population) Remove(id crawler.ID) bool {
	i := p.index(id)
	if i < 0 {
		return false
	}
	p.live = slices.Delete(p.live, i, i+1)
	return true
}

// Get returns the live crawler with id
func (p *Population) Get(id crawler.ID) (*crawler.Crawler, bool) {
	i := p.index(id)
	if i < 0 {
		return nil, false
	}
	return p.live[i], true
}

// Contains reports whether id is live
func (p *Population) Contains(id crawler.ID) bool {
	return p.index(id) >= 0
}

func (p *Population) index(id crawler.ID) int {
	return slices.IndexFunc(p.live, func(c *crawler.Crawler) bool { return c.ID() == id })
}

// Count returns the number of live crawlers
func (p *Population) Count() int {
	return len(p.live)
}

// Capacity returns the population ceiling
func (p *Population) Capacity() int {
	return p.capacity
}

// Full reports whether a spawn would be rejected
func (p *Population) Full() bool {
	return len(p.live) >= p.capacity
}

// Live returns a snapshot of live crawlers in spawn order
// The slice is a copy; the crawlers are shared
func (p *Population) Live() []*crawler.Crawler {
	return slices.Clone(p.live)
}

// Each visits live crawlers in spawn order without allocating
// fn must not spawn or remove
func (p *Population) Each(fn func(c *crawler.Crawler)) {
	for _, c := range p.live {
		fn(c)
	}
}

// Oldest returns the earliest spawned live crawler
func (p *Population) Oldest() (*crawler.Crawler, bool) {
	if len(p.live) == 0 {
		return nil, false
	}
	return p.live[0], true
}
