package core

import (
	"math"
	"testing"
)

func near(a, b Fixed, tol float64) bool {
	return math.Abs(a.Float64()-b.Float64()) <= tol
}

func TestFixedInternalRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 42, 1 << 32, -(1 << 32), 0x3243f6a88, math.MaxInt64, math.MinInt64}
	for _, v := range values {
		if got := FromInternal(v).ToInternal(); got != v {
			t.Errorf("FromInternal(%d).ToInternal() = %d, expected %d", v, got, v)
		}
	}
}

func TestFixedFromInt(t *testing.T) {
	tests := []struct {
		in   int32
		want int64
	}{
		{0, 0},
		{1, 1 << 32},
		{-1, -(1 << 32)},
		{100, 100 << 32},
	}
	for _, tc := range tests {
		f := FromInt(tc.in)
		if f.ToInternal() != tc.want {
			t.Errorf("FromInt(%d) = %d, expected %d", tc.in, f.ToInternal(), tc.want)
		}
		if f.Int() != tc.in {
			t.Errorf("FromInt(%d).Int() = %d", tc.in, f.Int())
		}
	}
}

func TestFixedMul(t *testing.T) {
	tests := []struct {
		name string
		a, b Fixed
		want Fixed
	}{
		{"integers", FromInt(3), FromInt(4), FromInt(12)},
		{"negative", FromInt(-2), FromInt(3), FromInt(-6)},
		{"both negative", FromInt(-5), FromInt(-5), FromInt(25)},
		{"halves", Half, Half, Quarter},
		{"zero", Zero, FromInt(9), Zero},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Mul(tc.b); got != tc.want {
				t.Errorf("Mul() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestFixedDiv(t *testing.T) {
	if got := FromInt(12).Div(FromInt(4)); got != FromInt(3) {
		t.Errorf("12 / 4 = %v, expected 3", got)
	}
	if got := FromInt(-9).Div(FromInt(3)); got != FromInt(-3) {
		t.Errorf("-9 / 3 = %v, expected -3", got)
	}
	if got := One.Div(FromInt(2)); got != Half {
		t.Errorf("1 / 2 = %v, expected 0.5", got)
	}
	if got := One.Div(FromInt(3)); !near(got, FromInternal(0x55555555), 1e-9) {
		t.Errorf("1 / 3 = %v", got)
	}
	if got := FromInt(7).Div(Zero); got != Zero {
		t.Errorf("7 / 0 = %v, expected 0", got)
	}
}

func TestFixedSqrt(t *testing.T) {
	tests := []struct {
		in   Fixed
		want float64
	}{
		{FromInt(4), 2},
		{FromInt(2), math.Sqrt2},
		{FromInt(10000), 100},
		{Quarter, 0.5},
		{Hundredth, 0.1},
	}
	for _, tc := range tests {
		got := tc.in.Sqrt()
		if math.Abs(got.Float64()-tc.want) > 1e-3 {
			t.Errorf("Sqrt(%v) = %v, expected %v", tc.in, got, tc.want)
		}
	}

	if FromInt(-4).Sqrt() != Zero || Zero.Sqrt() != Zero {
		t.Error("Sqrt of non-positive values should be zero")
	}
}

func TestFixedTrig(t *testing.T) {
	tests := []struct {
		name string
		got  Fixed
		want float64
		tol  float64
	}{
		{"sin 0", Zero.Sin(), 0, 0},
		{"sin pi/2", halfPi.Sin(), 1, 1e-4},
		{"sin -pi/2", halfPi.Neg().Sin(), -1, 1e-4},
		{"sin pi", Pi.Sin(), 0, 1e-2},
		{"sin 5pi/2", FromInt(5).Mul(halfPi).Sin(), 1, 1e-4},
		{"cos 0", Zero.Cos(), 1, 1e-4},
		{"cos pi/2", halfPi.Cos(), 0, 1e-2},
		{"atan2 east", Atan2(Zero, One), 0, 1e-3},
		{"atan2 north", Atan2(One, Zero), math.Pi / 2, 1e-3},
		{"atan2 west", Atan2(Zero, One.Neg()), math.Pi, 1e-3},
		{"atan2 south", Atan2(One.Neg(), Zero), -math.Pi / 2, 1e-3},
		{"atan2 diagonal", Atan2(One, One), math.Pi / 4, 1e-2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if math.Abs(tc.got.Float64()-tc.want) > tc.tol {
				t.Errorf("%s = %v, expected %v", tc.name, tc.got, tc.want)
			}
		})
	}
}

func TestAtan2Origin(t *testing.T) {
	// The origin has no angle; the approximation reports -π/4.
	if got := Atan2(Zero, Zero); got != Pi.Neg().Div(FromInt(4)) {
		t.Errorf("Atan2(0, 0) = %v, expected -π/4", got)
	}
}

func TestFixedString(t *testing.T) {
	tests := []struct {
		in   Fixed
		want string
	}{
		{FromInt(3), "3.000000000"},
		{Half, "0.500000000"},
		{FromInt(-2), "-2.000000000"},
		{Quarter.Neg(), "-0.250000000"},
	}
	for _, tc := range tests {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("String() = %q, expected %q", got, tc.want)
		}
	}
}

func TestVec2(t *testing.T) {
	v := VInt(3, 4)
	if !near(v.Length(), FromInt(5), 1e-3) {
		t.Errorf("Length() = %v, expected 5", v.Length())
	}
	if v.LengthSquared() != FromInt(25) {
		t.Errorf("LengthSquared() = %v, expected 25", v.LengthSquared())
	}
	if n := v.Normalised(); !near(n.Length(), One, 1e-3) {
		t.Errorf("Normalised().Length() = %v, expected 1", n.Length())
	}

	r := VInt(1, 0).Rotated(halfPi)
	if !near(r.X, Zero, 1e-2) || !near(r.Y, One, 1e-2) {
		t.Errorf("Rotated(π/2) = (%v, %v), expected (0, 1)", r.X, r.Y)
	}

	c := VInt(30, 40).ClampLength(FromInt(5))
	if !near(c.Length(), FromInt(5), 1e-2) {
		t.Errorf("ClampLength() length = %v, expected 5", c.Length())
	}
	if VInt(0, 0).Normalised() != (Vec2{}) {
		t.Error("Normalised() of zero vector should stay zero")
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	f.Set(KeyFire)
	f.Set(KeyBomb)

	if !f.Has(KeyFire) || !f.Has(KeyBomb) || f.Has(KeySuper) {
		t.Errorf("Keys = %v, expected fire+bomb", f.Keys)
	}
	if f.Keys.String() != "fire+bomb" {
		t.Errorf("Keys.String() = %q, expected %q", f.Keys.String(), "fire+bomb")
	}

	f.Target = VInt(1, 1)
	f.TargetRelative = true
	if got := f.AimFrom(VInt(10, 10)); got != VInt(11, 11) {
		t.Errorf("AimFrom() = %v, expected (11, 11)", got)
	}
}
