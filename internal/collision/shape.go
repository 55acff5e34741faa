package collision

import "github.com/vovakirdan/tui-shooter/internal/core"

// Flags classifies what a shape does on contact.
type Flags uint32

const (
	Vulnerable Flags = 1 << iota
	Dangerous
	Shield
	VulnShield
)

func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// Shape is a collision primitive positioned relative to its owner.
// Shapes are values and must not be mutated after being attached to a Body.
type Shape interface {
	// CheckPoint reports whether p, given in the owner's frame, lies inside.
	CheckPoint(p core.Vec2) bool
	Category() Flags
}

// Placement is the local offset, rotation and category shared by every shape.
type Placement struct {
	Centre   core.Vec2
	Rotation core.Fixed
	Flags    Flags
}

func (pl Placement) Category() Flags { return pl.Flags }

func (pl Placement) local(p core.Vec2) core.Vec2 {
	a := p.Sub(pl.Centre)
	// Rotated(0) is not an exact identity; zero skips it.
	if pl.Rotation != 0 {
		a = a.Rotated(pl.Rotation.Neg())
	}
	return a
}

// Box is an axis-aligned rectangle of half-extents Width and Height before rotation.
type Box struct {
	Placement
	Width, Height core.Fixed
}

func (b Box) CheckPoint(p core.Vec2) bool {
	a := b.local(p)
	return a.X.Abs() < b.Width && a.Y.Abs() < b.Height
}

// Polygon collides as a disc of its circumradius.
type Polygon struct {
	Placement
	Radius core.Fixed
	Sides  int
}

func (g Polygon) CheckPoint(p core.Vec2) bool {
	return g.local(p).Length() < g.Radius
}

// polyArcThickness is the depth of the band a PolyArc occupies inside its radius.
var polyArcThickness = core.FromInt(10)

// PolyArc is an open ring covering Segments of Sides equal sectors.
type PolyArc struct {
	Placement
	Radius   core.Fixed
	Sides    int
	Segments int
}

func (a PolyArc) CheckPoint(p core.Vec2) bool {
	if a.Sides <= 0 {
		return false
	}
	v := a.local(p)
	angle := v.Angle()
	span := core.FromInt(2).Mul(core.Pi).Mul(core.FromInt(int32(a.Segments))).Div(core.FromInt(int32(a.Sides)))
	if angle < 0 || angle > span {
		return false
	}
	l := v.Length()
	return l >= a.Radius.Sub(polyArcThickness) && l < a.Radius
}

// Line is decorative and never collides.
type Line struct {
	Placement
	A, B core.Vec2
}

func (Line) CheckPoint(core.Vec2) bool { return false }

// Compound groups child shapes under a shared placement.
type Compound struct {
	Placement
	Children []Shape
}

func (c Compound) CheckPoint(p core.Vec2) bool {
	a := c.local(p)
	for _, child := range c.Children {
		if child.CheckPoint(a) {
			return true
		}
	}
	return false
}

// Body is the collision component of an entity.
type Body struct {
	// BoundingWidth is the half-extent of the entity's square bounds.
	BoundingWidth core.Fixed
	// Flags is the union of categories the body can match.
	Flags  Flags
	Shapes []Shape
}

// NewBody builds a body whose Flags is the union of its shapes' categories.
func NewBody(width core.Fixed, shapes ...Shape) Body {
	var f Flags
	for _, s := range shapes {
		f |= s.Category()
	}
	return Body{BoundingWidth: width, Flags: f, Shapes: shapes}
}

// CheckPoint tests a world point against the shapes whose category contains
// mask. A zero mask matches any categorised shape. It returns the category
// of the first shape hit.
func (b *Body) CheckPoint(centre core.Vec2, rotation core.Fixed, p core.Vec2, mask Flags) (Flags, bool) {
	var (
		a     core.Vec2
		local bool
	)
	for _, s := range b.Shapes {
		cat := s.Category()
		if cat == 0 || (mask != 0 && !cat.Has(mask)) {
			continue
		}
		if !local {
			a = p.Sub(centre)
			if rotation != 0 {
				a = a.Rotated(rotation.Neg())
			}
			local = true
		}
		if s.CheckPoint(a) {
			return cat, true
		}
	}
	return 0, false
}
