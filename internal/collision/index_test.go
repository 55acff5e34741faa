package collision

import (
	"testing"

	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/ecs"
)

type pos struct{ C core.Vec2 }

func newScene(mode Mode) (*ecs.Index, *Index) {
	idx := ecs.NewIndex()
	ci := Attach(idx, func(h ecs.Handle) (core.Vec2, core.Fixed) {
		p := ecs.Get[pos](idx, h.ID())
		if p == nil {
			return core.Vec2{}, 0
		}
		return p.C, 0
	}, Options{Mode: mode, Threshold: core.One})
	return idx, ci
}

func spawn(idx *ecs.Index, x, y int32, width int32, flags Flags) ecs.Handle {
	w := core.FromInt(width)
	return idx.CreateWith(
		ecs.With(pos{C: core.VInt(x, y)}),
		ecs.With(NewBody(w, Box{Placement: Placement{Flags: flags}, Width: w, Height: w})),
	)
}

func TestPointMatchesStaticScene(t *testing.T) {
	idx, ci := newScene(Legacy)
	a := spawn(idx, 10, 10, 4, Vulnerable)
	spawn(idx, 40, 10, 4, Dangerous)
	spawn(idx, 10, 40, 4, Vulnerable|Shield)
	ci.BeginTick()

	tests := []struct {
		name     string
		p        core.Vec2
		mask     Flags
		expected int
	}{
		{"inside vulnerable", core.VInt(11, 9), Vulnerable, 1},
		{"disjoint mask", core.VInt(11, 9), Dangerous, 0},
		{"outside all", core.VInt(25, 25), 0, 0},
		{"shield body", core.VInt(10, 41), Shield, 1},
		{"edge is exclusive", core.VInt(14, 10), Vulnerable, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := ci.PointMatches(tt.p, tt.mask)
			if len(hits) != tt.expected {
				t.Errorf("PointMatches() = %d hits, expected %d", len(hits), tt.expected)
			}
			if got := ci.PointOverlaps(tt.p, tt.mask); got != (tt.expected > 0) {
				t.Errorf("PointOverlaps() = %v, expected %v", got, tt.expected > 0)
			}
		})
	}

	hits := ci.PointMatches(core.VInt(10, 10), Vulnerable)
	if len(hits) != 1 || hits[0].Handle.ID() != a.ID() {
		t.Errorf("PointMatches() = %v, expected entity %d", hits, a.ID())
	}
}

func TestThresholdAndRemoval(t *testing.T) {
	idx, ci := newScene(Legacy)
	spawn(idx, 0, 0, 1, Vulnerable)
	b := spawn(idx, 5, 5, 3, Vulnerable)
	if ci.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", ci.Len())
	}
	b.Destroy()
	if ci.Len() != 0 {
		t.Errorf("Len() after destroy = %d, expected 0", ci.Len())
	}
	ci.BeginTick()
	if ci.PointOverlaps(core.VInt(5, 5), 0) {
		t.Error("destroyed body still overlaps")
	}
}

func TestLegacyStaleOrder(t *testing.T) {
	for _, mode := range []Mode{Legacy, Strict} {
		t.Run(mode.String(), func(t *testing.T) {
			idx, ci := newScene(mode)
			spawn(idx, 20, 0, 2, Dangerous)
			moving := spawn(idx, 30, 0, 2, Vulnerable)
			ci.BeginTick()

			// Moving left of the first record after the sort hides it from
			// a legacy sweep.
			ecs.Get[pos](idx, moving.ID()).C = core.VInt(0, 0)
			got := ci.PointOverlaps(core.VInt(0, 0), Vulnerable)
			expected := mode == Strict
			if got != expected {
				t.Errorf("PointOverlaps() = %v, expected %v", got, expected)
			}
		})
	}
}

func TestEntitiesWithinRadius(t *testing.T) {
	idx, ci := newScene(Legacy)
	spawn(idx, 0, 0, 1, Vulnerable)
	spawn(idx, 3, 3, 2, Vulnerable)
	spawn(idx, 6, 8, 2, Vulnerable)
	spawn(idx, 1, 1, 2, Dangerous)

	got := ci.EntitiesWithinRadius(core.Vec2{}, core.FromInt(5), Vulnerable)
	if len(got) != 2 {
		t.Errorf("EntitiesWithinRadius() = %d entities, expected 2", len(got))
	}
	got = ci.EntitiesWithinRadius(core.Vec2{}, core.FromInt(5), 0)
	if len(got) != 3 {
		t.Errorf("EntitiesWithinRadius(any) = %d entities, expected 3", len(got))
	}
}

func TestShapes(t *testing.T) {
	tests := []struct {
		name     string
		shape    Shape
		p        core.Vec2
		expected bool
	}{
		{"polygon inside", Polygon{Radius: core.FromInt(5), Sides: 6}, core.VInt(3, 3), true},
		{"polygon outside", Polygon{Radius: core.FromInt(5), Sides: 6}, core.VInt(4, 4), false},
		{"line never", Line{A: core.VInt(-5, 0), B: core.VInt(5, 0)}, core.Vec2{}, false},
		{"arc band", PolyArc{Radius: core.FromInt(20), Sides: 4, Segments: 1}, core.VInt(12, 12), true},
		{"arc hole", PolyArc{Radius: core.FromInt(20), Sides: 4, Segments: 1}, core.VInt(2, 2), false},
		{"arc sector", PolyArc{Radius: core.FromInt(20), Sides: 4, Segments: 1}, core.VInt(-12, 12), false},
		{"offset box", Box{Placement: Placement{Centre: core.VInt(10, 0)}, Width: core.One, Height: core.One}, core.VInt(10, 0), true},
		{"compound child", Compound{Children: []Shape{
			Box{Placement: Placement{Centre: core.VInt(5, 0)}, Width: core.One, Height: core.One},
		}}, core.VInt(5, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.CheckPoint(tt.p); got != tt.expected {
				t.Errorf("CheckPoint(%v) = %v, expected %v", tt.p, got, tt.expected)
			}
		})
	}
}
