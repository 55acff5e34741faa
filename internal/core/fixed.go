// Package core provides fundamental types for the shooter simulation.
// It contains no external dependencies so that simulation logic stays pure,
// deterministic and testable.
package core

import (
	"math/bits"
	"strconv"
	"strings"
)

// Fixed is a signed Q32.32 fixed-point number.
// All gameplay arithmetic goes through Fixed so results are bit-identical on
// every platform; conversion to float happens only when drawing.
type Fixed int64

const fracBits = 32

// Common constants.
const (
	Zero Fixed = 0
	One  Fixed = 1 << fracBits
	Half Fixed = One >> 1

	Quarter Fixed = One >> 2

	// Pi is the Q32.32 representation of π.
	Pi Fixed = 0x3243f6a88
)

var (
	Tenth     = One.Div(FromInt(10))
	Hundredth = One.Div(FromInt(100))

	twoPi     = FromInt(2).Mul(Pi)
	halfPi    = Pi.Div(FromInt(2))
	quarterPi = Pi.Div(FromInt(4))
)

// FromInt converts an integer to Fixed.
func FromInt(v int32) Fixed {
	return Fixed(int64(v) << fracBits)
}

// FromInternal reinterprets raw Q32.32 bits as a Fixed.
func FromInternal(v int64) Fixed {
	return Fixed(v)
}

// ToInternal returns the raw Q32.32 bits. Used for bit-exact serialization.
func (f Fixed) ToInternal() int64 {
	return int64(f)
}

// Int truncates towards negative infinity.
func (f Fixed) Int() int32 {
	return int32(int64(f) >> fracBits)
}

// Float64 converts to floating point. Render output only.
func (f Fixed) Float64() float64 {
	return float64(f) / (1 << fracBits)
}

func (f Fixed) Add(o Fixed) Fixed { return f + o }
func (f Fixed) Sub(o Fixed) Fixed { return f - o }
func (f Fixed) Neg() Fixed        { return 0 - f }
func (f Fixed) Shl(n uint) Fixed  { return f << n }
func (f Fixed) Shr(n uint) Fixed  { return f >> n }

// Abs returns |f|.
func (f Fixed) Abs() Fixed {
	return Fixed(absInt(int64(f)))
}

// Mul multiplies using 32x32 partial products of the magnitudes.
func (f Fixed) Mul(o Fixed) Fixed {
	sign := fixedSign(int64(f), int64(o))
	l := uint64(absInt(int64(f)))
	r := uint64(absInt(int64(o)))

	const mask = 0xffffffff
	hi := (l >> 32) * (r >> 32)
	lo := (l & mask) * (r & mask)
	lf := (l >> 32) * (r & mask)
	rt := (l & mask) * (r >> 32)

	combine := (hi << 32) + lf + rt + (lo >> 32)
	return Fixed(sign * int64(combine))
}

// Div performs normalising long division. A zero divisor yields zero.
func (f Fixed) Div(o Fixed) Fixed {
	sign := fixedSign(int64(f), int64(o))
	r := uint64(absInt(int64(f)))
	d := uint64(absInt(int64(o)))
	var q uint64

	bit := uint64(33)
	for d&0xf == 0 && bit >= 4 {
		d >>= 4
		bit -= 4
	}
	if d == 0 {
		return 0
	}
	for r != 0 {
		shift := uint64(bits.LeadingZeros64(r))
		if shift > bit {
			shift = bit
		}
		r <<= shift
		bit -= shift

		div := r / d
		r %= d
		q += div << bit

		r <<= 1
		if bit == 0 {
			break
		}
		bit--
	}
	return Fixed(sign * int64(q>>1))
}

// Min returns the smaller of two values.
func (f Fixed) Min(o Fixed) Fixed {
	if o < f {
		return o
	}
	return f
}

// Max returns the larger of two values.
func (f Fixed) Max(o Fixed) Fixed {
	if o > f {
		return o
	}
	return f
}

// Clamp restricts f to [lo, hi].
func (f Fixed) Clamp(lo, hi Fixed) Fixed {
	return f.Max(lo).Min(hi)
}

// String formats the value in decimal with nine fractional digits.
func (f Fixed) String() string {
	var sb strings.Builder
	if f < 0 {
		sb.WriteByte('-')
	}
	v := uint64(absInt(int64(f)))
	sb.WriteString(strconv.FormatUint(v>>fracBits, 10))
	sb.WriteByte('.')

	frac := (v & (1<<fracBits - 1)) * 1_000_000_000 >> fracBits
	s := strconv.FormatUint(frac, 10)
	sb.WriteString(strings.Repeat("0", 9-len(s)))
	sb.WriteString(s)
	return sb.String()
}

func fixedSign(a, b int64) int64 {
	if (a < 0) == (b < 0) {
		return 1
	}
	return -1
}

func absInt(a int64) int64 {
	return (a ^ (a >> 63)) - (a >> 63)
}
