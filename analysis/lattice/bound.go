package lattice

import (
	"strconv"
)

// The analyzed language computes over 32-bit signed integers. Bound
// arithmetic is carried out exactly in int64; the interval operations
// saturate a computed bound that leaves this range to ±∞.
const (
	MinValue int64 = -1 << 31
	MaxValue int64 = 1<<31 - 1
)

// Bound is implemented by all interval bounds, i.e. any FiniteBound value,
// PlusInfinity and MinusInfinity.
type Bound interface {
	String() string

	// IsInfinite checks whether the interval bound is infinite.
	IsInfinite() bool

	// BINARY RELATIONS

	// Eq checks for interval bound equality.
	Eq(Bound) bool
	// Leq computes b1 ≤ b2. The semantics is -∞ ≤ c ≤ ∞, where c ∈ ℤ.
	Leq(Bound) bool
	// Geq computes b1 ≥ b2. The semantics is ∞ ≥ c ≥ -∞, where c ∈ ℤ.
	Geq(Bound) bool
	// Lt computes b1 < b2. The semantics is -∞ < c < ∞, where c ∈ ℤ.
	Lt(Bound) bool
	// Gt computes b1 > b2. The semantics is ∞ > c > -∞, where c ∈ ℤ.
	Gt(Bound) bool

	// BINARY OPERATIONS

	// Plus computes b1 + b2. The semantics of plus is:
	//	.-----------------------------.
	// 	|   b1   |   b2   |  b1 ⨣ b2  |
	// 	|========|========|===========|
	// 	|  ∈  ℤ  |  ∈  ℤ  |  b1 + b2  |
	// 	|--------|--------|-----------|
	// 	|  ∈  ℤ  |    ∞   |     ∞     |
	// 	|--------|--------|-----------|
	// 	|  ∈  ℤ  |   -∞   |    -∞     |
	// 	|--------|--------|-----------|
	// 	|   -∞   |   -∞   |    -∞     |
	// 	|--------|--------|-----------|
	// 	|    ∞   |    ∞   |     ∞     |
	// 	|--------|--------|-----------|
	// 	|    ∞   |   -∞   |   panic   |
	// 	 -----------------------------
	Plus(Bound) Bound

	// Minus computes b1 - b2, where c - ∞ = -∞ and c - (-∞) = ∞ for
	// c ∈ ℤ, and ∞ - (-∞) = ∞. Subtracting equal infinities panics.
	Minus(Bound) Bound

	// Mult computes b1 * b2, where the sign of an infinite operand is
	// multiplied by the sign of the other operand. 0 * (-)∞ panics.
	Mult(Bound) Bound

	// Div computes b1 / b2 (truncated), where c / (-)∞ = 0 for c ∈ ℤ and
	// a division of two infinities yields the infinity carrying the sign
	// of the quotient. Division of a finite bound by zero yields the
	// infinity with the sign of b1; 0 / 0 panics.
	Div(Bound) Bound

	// Max computes max(b1, b2).
	Max(Bound) Bound

	// Min computes min(b1, b2).
	Min(Bound) Bound
}

type (
	// FiniteBound is used to represent finite limits of an interval value.
	FiniteBound int64
	// PlusInfinity represents ∞.
	PlusInfinity struct{}
	// MinusInfinity represents -∞.
	MinusInfinity struct{}
)

// IsInfinite is false for the finite bound.
func (FiniteBound) IsInfinite() bool {
	return false
}

func (b FiniteBound) String() string {
	return colorize.Element(strconv.FormatInt((int64)(b), 10))
}

// Eq compares for equality with another bound. Two finite bounds
// are equal if their underlying values are equal.
func (b1 FiniteBound) Eq(b2 Bound) bool {
	switch b2 := b2.(type) {
	case FiniteBound:
		return b1 == b2
	}
	return false
}

// Leq computes b1 ≤ b2.
func (b1 FiniteBound) Leq(b2 Bound) bool {
	switch b2 := b2.(type) {
	case FiniteBound:
		return b1 <= b2
	case PlusInfinity:
		return true
	case MinusInfinity:
		return false
	}
	return false
}

// Geq computes b1 ≥ b2.
func (b1 FiniteBound) Geq(b2 Bound) bool {
	switch b2 := b2.(type) {
	case FiniteBound:
		return b1 >= b2
	case PlusInfinity:
		return false
	case MinusInfinity:
		return true
	}
	return false
}

// Lt computes b1 < b2.
func (b1 FiniteBound) Lt(b2 Bound) bool {
	switch b2 := b2.(type) {
	case FiniteBound:
		return b1 < b2
	case PlusInfinity:
		return true
	case MinusInfinity:
		return false
	}
	return false
}

// Gt computes b1 > b2.
func (b1 FiniteBound) Gt(b2 Bound) bool {
	switch b2 := b2.(type) {
	case FiniteBound:
		return b1 > b2
	case PlusInfinity:
		return false
	case MinusInfinity:
		return true
	}
	return false
}

// Plus computes b1 + b2. Finite bounds stay within the int64 range, so
// the sum is exact; intervals clamp out-of-range results per side.
func (b1 FiniteBound) Plus(b2 Bound) Bound {
	switch b2 := b2.(type) {
	case FiniteBound:
		return b1 + b2
	case PlusInfinity:
		return PlusInfinity{}
	case MinusInfinity:
		return MinusInfinity{}
	}
	return nil
}

// Minus computes b1 - b2.
func (b1 FiniteBound) Minus(b2 Bound) Bound {
	switch b2 := b2.(type) {
	case FiniteBound:
		return b1 - b2
	case PlusInfinity:
		return MinusInfinity{}
	case MinusInfinity:
		return PlusInfinity{}
	}
	return nil
}

// Mult computes b1 * b2.
func (b1 FiniteBound) Mult(b2 Bound) Bound {
	switch b2 := b2.(type) {
	case FiniteBound:
		// Operands lie within the value range, so the int64 product is exact.
		return b1 * b2
	case PlusInfinity:
		switch {
		case b1 > 0:
			return PlusInfinity{}
		case b1 == 0:
			panic("0 * ∞")
		}
		return MinusInfinity{}
	case MinusInfinity:
		switch {
		case b1 > 0:
			return MinusInfinity{}
		case b1 == 0:
			panic("0 * -∞")
		}
		return PlusInfinity{}
	}
	return nil
}

// Div computes b1 / b2.
func (b1 FiniteBound) Div(b2 Bound) Bound {
	switch b2 := b2.(type) {
	case FiniteBound:
		switch {
		case b2 == 0 && b1 > 0:
			return PlusInfinity{}
		case b2 == 0 && b1 < 0:
			return MinusInfinity{}
		case b1 == 0 && b2 == 0:
			panic("0 / 0")
		}
		return FiniteBound((int64)(b1) / (int64)(b2))
	case PlusInfinity:
		return FiniteBound(0)
	case MinusInfinity:
		return FiniteBound(0)
	}
	return nil
}

// Max computes max(b1, b2).
func (b1 FiniteBound) Max(b2 Bound) Bound {
	switch b2 := b2.(type) {
	case FiniteBound:
		if b1 < b2 {
			return b2
		}
		return b1
	case PlusInfinity:
		return b2
	case MinusInfinity:
		return b1
	}
	return nil
}

// Min computes min(b1, b2).
func (b1 FiniteBound) Min(b2 Bound) Bound {
	switch b2 := b2.(type) {
	case FiniteBound:
		if b1 < b2 {
			return b1
		}
		return b2
	case PlusInfinity:
		return b1
	case MinusInfinity:
		return b2
	}
	return nil
}

// IsInfinite is true for ∞.
func (PlusInfinity) IsInfinite() bool {
	return true
}

func (PlusInfinity) String() string {
	return colorize.Element("∞")
}

// Eq checks for interval bound equality.
func (PlusInfinity) Eq(b2 Bound) bool {
	switch b2.(type) {
	case PlusInfinity:
		return true
	}
	return false
}

// Leq computes ∞ ≤ b.
func (PlusInfinity) Leq(b2 Bound) bool {
	switch b2.(type) {
	case PlusInfinity:
		return true
	}
	return false
}

// Geq computes ∞ ≥ b. It is always true as ∞ is the largest possible bound.
func (PlusInfinity) Geq(Bound) bool {
	return true
}

// Lt computes ∞ < b. It is always false as ∞ is the largest possible bound.
func (PlusInfinity) Lt(Bound) bool {
	return false
}

// Gt computes ∞ > b.
func (PlusInfinity) Gt(b2 Bound) bool {
	switch b2.(type) {
	case PlusInfinity:
		return false
	}
	return true
}

// Plus computes ∞ + b. Panics for b = -∞.
func (PlusInfinity) Plus(b2 Bound) Bound {
	switch b2.(type) {
	case MinusInfinity:
		panic("∞ + (-∞)")
	}
	return PlusInfinity{}
}

// Minus computes ∞ - b. Panics for b = ∞.
func (PlusInfinity) Minus(b2 Bound) Bound {
	switch b2.(type) {
	case PlusInfinity:
		panic("∞ - ∞")
	}
	return PlusInfinity{}
}

// Mult computes ∞ * b, taking the sign of b. Panics for b = 0.
func (PlusInfinity) Mult(b2 Bound) Bound {
	switch b2 := b2.(type) {
	case FiniteBound:
		switch {
		case b2 < 0:
			return MinusInfinity{}
		case b2 == 0:
			panic("∞ * 0")
		}
	case MinusInfinity:
		return MinusInfinity{}
	}
	return PlusInfinity{}
}

// Div computes ∞ / b, taking the sign of the quotient.
func (PlusInfinity) Div(b2 Bound) Bound {
	switch b2 := b2.(type) {
	case FiniteBound:
		if b2 < 0 {
			return MinusInfinity{}
		}
	case MinusInfinity:
		return MinusInfinity{}
	}
	return PlusInfinity{}
}

// Max computes max(∞, b) = ∞.
func (PlusInfinity) Max(Bound) Bound {
	return PlusInfinity{}
}

// Min computes min(∞, b) = b.
func (PlusInfinity) Min(b2 Bound) Bound {
	return b2
}

// IsInfinite is true for -∞.
func (MinusInfinity) IsInfinite() bool {
	return true
}

func (MinusInfinity) String() string {
	return colorize.Element("-∞")
}

// Eq computes -∞ = b.
func (MinusInfinity) Eq(b2 Bound) bool {
	switch b2.(type) {
	case MinusInfinity:
		return true
	}
	return false
}

// Leq computes -∞ ≤ b. It is always true as -∞ is the smallest possible bound.
func (MinusInfinity) Leq(Bound) bool {
	return true
}

// Geq computes -∞ ≥ b.
func (MinusInfinity) Geq(b2 Bound) bool {
	switch b2.(type) {
	case MinusInfinity:
		return true
	}
	return false
}

// Lt computes -∞ < b.
func (MinusInfinity) Lt(b2 Bound) bool {
	switch b2.(type) {
	case MinusInfinity:
		return false
	}
	return true
}

// Gt computes -∞ > b. It is always false as -∞ is the smallest possible bound.
func (MinusInfinity) Gt(Bound) bool {
	return false
}

// Plus computes -∞ + b. Panics for b = ∞.
func (MinusInfinity) Plus(b Bound) Bound {
	switch b.(type) {
	case PlusInfinity:
		panic("-∞ + ∞")
	}
	return MinusInfinity{}
}

// Minus computes -∞ - b. Panics for b = -∞.
func (MinusInfinity) Minus(b Bound) Bound {
	switch b.(type) {
	case MinusInfinity:
		panic("-∞ - (-∞)")
	}
	return MinusInfinity{}
}

// Mult computes -∞ * b, taking the opposite sign of b. Panics for b = 0.
func (MinusInfinity) Mult(b Bound) Bound {
	switch b := b.(type) {
	case FiniteBound:
		switch {
		case b == 0:
			panic("-∞ * 0")
		case b < 0:
			return PlusInfinity{}
		}
	case PlusInfinity:
		return MinusInfinity{}
	case MinusInfinity:
		return PlusInfinity{}
	}
	return MinusInfinity{}
}

// Div computes -∞ / b, taking the sign of the quotient.
func (MinusInfinity) Div(b Bound) Bound {
	switch b := b.(type) {
	case FiniteBound:
		if b < 0 {
			return PlusInfinity{}
		}
	case MinusInfinity:
		return PlusInfinity{}
	}
	return MinusInfinity{}
}

// Max computes max(-∞, b) = b.
func (MinusInfinity) Max(b Bound) Bound {
	return b
}

// Min computes min(-∞, b) = -∞.
func (MinusInfinity) Min(Bound) Bound {
	return MinusInfinity{}
}
