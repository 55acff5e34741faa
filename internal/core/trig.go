package core

import "math/bits"

// Reciprocal factorials for the sine series.
var (
	inv6        = One.Div(FromInt(6))
	inv120      = One.Div(FromInt(120))
	inv5040     = One.Div(FromInt(5040))
	inv362880   = One.Div(FromInt(362880))
	inv39916800 = One.Div(FromInt(39916800))
)

// atan2 cubic fit coefficients.
const (
	atanCubic  Fixed = 0x32400000
	atanLinear Fixed = 0xfb500000
)

// Sqrt returns an approximate square root using Newton iteration.
// Non-positive input yields zero.
func (f Fixed) Sqrt() Fixed {
	if f <= 0 {
		return 0
	}
	if f < One {
		return One.Div(One.Div(f).Sqrt())
	}

	a := f.Div(FromInt(2))
	const bound = One >> 10

	r := Fixed(int64(f) >> ((32 - bits.LeadingZeros64(uint64(f))) / 2))
	for n := 0; r != 0 && n < 8; n++ {
		r = r.Mul(Half).Add(a.Div(r))
		if Fixed(absInt(int64(r.Mul(r)))-int64(f)) < bound {
			break
		}
	}
	return r
}

// Sin approximates sine with an odd Taylor series after reducing into [-π, π].
func (f Fixed) Sin() Fixed {
	angle := Fixed(absInt(int64(f)) % int64(twoPi))
	if angle > Pi {
		angle -= twoPi
	}

	angle2 := angle.Mul(angle)
	out := angle

	angle = angle.Mul(angle2)
	out -= angle.Mul(inv6)
	angle = angle.Mul(angle2)
	out += angle.Mul(inv120)
	angle = angle.Mul(angle2)
	out -= angle.Mul(inv5040)
	angle = angle.Mul(angle2)
	out += angle.Mul(inv362880)
	angle = angle.Mul(angle2)
	out -= angle.Mul(inv39916800)

	if f < 0 {
		return out.Neg()
	}
	return out
}

// Cos is Sin shifted by π/2.
func (f Fixed) Cos() Fixed {
	return f.Add(halfPi).Sin()
}

// Atan2 returns the angle of (x, y) in (-π, π].
func Atan2(y, x Fixed) Fixed {
	ay := y.Abs()
	var angle Fixed

	if x >= 0 {
		if x.Add(ay) == 0 {
			return Pi.Neg().Div(FromInt(4))
		}
		r := x.Sub(ay).Div(x.Add(ay))
		r3 := r.Mul(r).Mul(r)
		angle = atanCubic.Mul(r3).Sub(atanLinear.Mul(r)).Add(quarterPi)
	} else {
		if x.Sub(ay) == 0 {
			return FromInt(-3).Mul(Pi).Div(FromInt(4))
		}
		r := x.Add(ay).Div(ay.Sub(x))
		r3 := r.Mul(r).Mul(r)
		angle = atanCubic.Mul(r3).Sub(atanLinear.Mul(r)).Add(FromInt(3).Mul(Pi).Div(FromInt(4)))
	}

	if y < 0 {
		return angle.Neg()
	}
	return angle
}
