// Package collision implements the broad-phase point queries over entities
// carrying a Body component.
package collision

import (
	"slices"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/ecs"
)

// Mode selects how record order is maintained between ticks.
type Mode int

const (
	// Legacy sorts once per tick. Records that move during the tick keep
	// their old order, so a query may stop early and miss them.
	Legacy Mode = iota
	// Strict re-sorts before every query.
	Strict
)

// ParseMode maps a config string to a Mode. Unknown values select Legacy.
func ParseMode(s string) Mode {
	if s == "strict" {
		return Strict
	}
	return Legacy
}

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "legacy"
}

// Locator returns the world centre and rotation of an entity.
type Locator func(h ecs.Handle) (centre core.Vec2, rotation core.Fixed)

// Hit is one entity matched by a point query.
type Hit struct {
	Handle ecs.Handle
	Flags  Flags
}

type record struct {
	id   ecs.EntityID
	h    ecs.Handle
	xMin core.Fixed
}

// Index keeps the bodies of an ecs.Index ordered by the left edge of their
// bounds.
type Index struct {
	idx       *ecs.Index
	locate    Locator
	mode      Mode
	threshold core.Fixed
	records   []record
}

// Options configure an Index.
type Options struct {
	Mode Mode
	// Threshold is the bounding width a body must exceed to be indexed.
	Threshold core.Fixed
}

// Attach creates an Index kept in sync with the Body components of idx.
func Attach(idx *ecs.Index, locate Locator, opts Options) *Index {
	ci := &Index{
		idx:       idx,
		locate:    locate,
		mode:      opts.Mode,
		threshold: opts.Threshold,
	}
	ecs.OnAdd(idx, func(h ecs.Handle, b *Body) {
		ci.add(h, b)
	})
	ecs.OnRemove(idx, func(h ecs.Handle, _ *Body) {
		ci.remove(h.ID())
	})
	return ci
}

// Len returns the number of indexed records.
func (ci *Index) Len() int {
	return len(ci.records)
}

func (ci *Index) Mode() Mode {
	return ci.mode
}

func (ci *Index) add(h ecs.Handle, b *Body) {
	if b.BoundingWidth <= ci.threshold {
		return
	}
	c, _ := ci.locate(h)
	ci.records = append(ci.records, record{id: h.ID(), h: h, xMin: c.X.Sub(b.BoundingWidth)})
}

func (ci *Index) remove(id ecs.EntityID) {
	ci.records = slices.DeleteFunc(ci.records, func(r record) bool {
		return r.id == id
	})
}

// BeginTick refreshes every record's left edge and restores sorted order.
func (ci *Index) BeginTick() {
	ci.sort()
}

func (ci *Index) sort() {
	for i := range ci.records {
		r := &ci.records[i]
		b := ecs.Get[Body](ci.idx, r.id)
		if b == nil {
			continue
		}
		c, _ := ci.locate(r.h)
		r.xMin = c.X.Sub(b.BoundingWidth)
	}
	if !insertionSort(ci.records) {
		slices.SortStableFunc(ci.records, func(a, b record) int {
			switch {
			case a.xMin < b.xMin:
				return -1
			case a.xMin > b.xMin:
				return 1
			}
			return 0
		})
	}
}

// maxShifts bounds the insertion sort before falling back to a full sort.
const maxShifts = 256

// insertionSort stably sorts nearly-sorted records in place. It reports false
// and leaves the slice partially sorted when the input needs too many moves.
func insertionSort(rs []record) bool {
	shifts := 0
	for i := 1; i < len(rs); i++ {
		v := rs[i]
		j := i
		for j > 0 && rs[j-1].xMin > v.xMin {
			rs[j] = rs[j-1]
			j--
			shifts++
			if shifts > maxShifts {
				rs[j] = v
				return false
			}
		}
		rs[j] = v
	}
	return true
}

// scan visits candidate records whose bounds contain p until fn returns true.
func (ci *Index) scan(p core.Vec2, mask Flags, fn func(Hit) bool) {
	if ci.mode == Strict {
		ci.sort()
	}
	for _, r := range ci.records {
		b := ecs.Get[Body](ci.idx, r.id)
		if b == nil {
			continue
		}
		c, rot := ci.locate(r.h)
		w := b.BoundingWidth
		if c.X.Sub(w) > p.X {
			break
		}
		if c.X.Add(w) < p.X || c.Y.Add(w) < p.Y || c.Y.Sub(w) > p.Y {
			continue
		}
		if mask != 0 && b.Flags&mask == 0 {
			continue
		}
		if cat, ok := b.CheckPoint(c, rot, p, mask); ok {
			if fn(Hit{Handle: r.h, Flags: cat}) {
				return
			}
		}
	}
}

// PointOverlaps reports whether any indexed shape with category mask contains p.
func (ci *Index) PointOverlaps(p core.Vec2, mask Flags) bool {
	found := false
	ci.scan(p, mask, func(Hit) bool {
		found = true
		return true
	})
	return found
}

// PointMatches returns every indexed entity with a shape of category mask containing p.
func (ci *Index) PointMatches(p core.Vec2, mask Flags) []Hit {
	var hits []Hit
	ci.scan(p, mask, func(h Hit) bool {
		hits = append(hits, h)
		return false
	})
	return hits
}

// EntitiesWithinRadius returns every entity with a Body whose flags intersect
// mask and whose centre lies within radius of p. It ignores the threshold and
// scans all bodies. A zero mask selects every body.
func (ci *Index) EntitiesWithinRadius(p core.Vec2, radius core.Fixed, mask Flags) []ecs.Handle {
	var out []ecs.Handle
	ecs.Iterate(ci.idx, func(h ecs.Handle, b *Body) {
		if mask != 0 && b.Flags&mask == 0 {
			return
		}
		c, _ := ci.locate(h)
		if c.Sub(p).Length() <= radius {
			out = append(out, h)
		}
	}, true)
	return out
}
