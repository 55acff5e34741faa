package core

// Vec2 is a 2D vector of fixed-point coordinates.
type Vec2 struct {
	X, Y Fixed
}

// V creates a vector.
func V(x, y Fixed) Vec2 {
	return Vec2{X: x, Y: y}
}

// VInt creates a vector from integer coordinates.
func VInt(x, y int32) Vec2 {
	return Vec2{X: FromInt(x), Y: FromInt(y)}
}

// FromPolar returns the vector with the given angle and length.
func FromPolar(angle, length Fixed) Vec2 {
	return Vec2{X: angle.Cos().Mul(length), Y: angle.Sin().Mul(length)}
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Neg() Vec2            { return Vec2{v.X.Neg(), v.Y.Neg()} }
func (v Vec2) Scale(f Fixed) Vec2   { return Vec2{v.X.Mul(f), v.Y.Mul(f)} }
func (v Vec2) DivBy(f Fixed) Vec2   { return Vec2{v.X.Div(f), v.Y.Div(f)} }
func (v Vec2) Dot(o Vec2) Fixed     { return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)) }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }
func (v Vec2) LengthSquared() Fixed { return v.Dot(v) }

// Length returns the Euclidean length.
func (v Vec2) Length() Fixed {
	return v.LengthSquared().Sqrt()
}

// Angle returns atan2(y, x).
func (v Vec2) Angle() Fixed {
	return Atan2(v.Y, v.X)
}

// Normalised returns a unit vector, or the zero vector unchanged.
func (v Vec2) Normalised() Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.DivBy(l)
}

// Rotated returns v rotated by angle radians.
func (v Vec2) Rotated(angle Fixed) Vec2 {
	if v.IsZero() {
		return v
	}
	return FromPolar(v.Angle().Add(angle), v.Length())
}

// ClampLength limits the length of v to max.
func (v Vec2) ClampLength(max Fixed) Vec2 {
	if v.LengthSquared() <= max.Mul(max) {
		return v
	}
	return v.Normalised().Scale(max)
}
