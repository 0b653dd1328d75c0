package lattice

import (
	"fmt"

	"github.com/abs-int/iva/lang"
)

// Interval is an interval and a member of the interval lattice.
// Any interval consists of two interval bounds, `low` and `high`.
// The empty interval ⊥ is canonically represented as [∞, -∞]; every
// constructor collapses an interval with low > high to this element.
type Interval struct {
	low  Bound
	high Bound
}

// Interval creates an interval with possibly infinite bounds.
func (elementFactory) Interval(low Bound, high Bound) Interval {
	return mkInterval(low, high)
}

// IntervalFinite creates an interval with finite bounds.
func (elementFactory) IntervalFinite(low int64, high int64) Interval {
	return mkInterval(FiniteBound(low), FiniteBound(high))
}

// IntervalConst creates the singleton interval [n, n].
func (elementFactory) IntervalConst(n int64) Interval {
	return mkInterval(FiniteBound(n), FiniteBound(n))
}

func mkInterval(low, high Bound) Interval {
	if low.Gt(high) {
		return intervalLattice.Bot()
	}
	return Interval{low: low, high: high}
}

func (e Interval) String() string {
	if e.IsBot() {
		return "⊥"
	}
	return "[" + e.low.String() + ", " + e.high.String() + "]"
}

// IsBot checks that the interval is equal to ⊥ = [∞, -∞].
func (e Interval) IsBot() bool {
	return e == intervalLattice.Bot()
}

// IsTop checks that the interval is equal to ⊤ = [-∞, ∞].
func (e Interval) IsTop() bool {
	return e == intervalLattice.Top()
}

// IsSingleton checks whether the interval denotes exactly one value.
func (e Interval) IsSingleton() bool {
	return !e.low.IsInfinite() && e.low.Eq(e.high)
}

// IsFinite checks that both bounds are finite.
func (e Interval) IsFinite() bool {
	return !e.low.IsInfinite() && !e.high.IsInfinite()
}

// Contains checks whether the concretization includes the given value.
func (e Interval) Contains(v int64) bool {
	return FiniteBound(v).Geq(e.low) && FiniteBound(v).Leq(e.high)
}

// LowBound returns the lower bound.
func (e Interval) LowBound() Bound {
	return e.low
}

// HighBound returns the upper bound.
func (e Interval) HighBound() Bound {
	return e.high
}

// GetFiniteBounds unpacks the interval bounds, if finite, and panics otherwise.
func (e Interval) GetFiniteBounds() (int64, int64) {
	if !e.IsFinite() {
		panic(fmt.Sprintf("Interval %s does not have finite bounds", e))
	}
	return (int64)(e.low.(FiniteBound)), (int64)(e.high.(FiniteBound))
}

// Eq computes i1 = i2.
func (e1 Interval) Eq(e2 Interval) bool {
	return e1.Leq(e2) && e1.Geq(e2)
}

// Leq computes i1 ⊑ i2.
func (e1 Interval) Leq(e2 Interval) bool {
	return e1.low.Geq(e2.low) && e1.high.Leq(e2.high)
}

// Geq computes i1 ⊒ i2.
func (e1 Interval) Geq(e2 Interval) bool {
	return e1.low.Leq(e2.low) && e1.high.Geq(e2.high)
}

// Join computes i1 ⊔ i2. The resulting interval takes the lowest of the
// lower bounds and the highest of the upper bounds; ⊥ is the identity.
func (e1 Interval) Join(e2 Interval) Interval {
	var low, high Bound
	if e1.low.Leq(e2.low) {
		low = e1.low
	} else {
		low = e2.low
	}
	if e1.high.Geq(e2.high) {
		high = e1.high
	} else {
		high = e2.high
	}
	return mkInterval(low, high)
}

// Meet computes i1 ⊓ i2. The resulting interval takes the highest of the
// lower bounds and the lowest of the upper bounds, collapsing to ⊥ when
// they cross.
func (e1 Interval) Meet(e2 Interval) Interval {
	return mkInterval(e1.low.Max(e2.low), e1.high.Min(e2.high))
}

// Widen computes i1 ∇ i2, where the receiver is the previous value at a
// loop head and the argument is the new value. Bounds exceeded by the new
// value jump to the corresponding infinity; ⊥ is the identity on either
// side. Widening is not commutative.
func (e1 Interval) Widen(e2 Interval) Interval {
	if e1.IsBot() {
		return e2
	}
	if e2.IsBot() {
		return e1
	}
	low, high := e1.low, e1.high
	if e2.low.Lt(e1.low) {
		low = MinusInfinity{}
	}
	if e2.high.Gt(e1.high) {
		high = PlusInfinity{}
	}
	return mkInterval(low, high)
}

// ABSTRACT ARITHMETIC
//
// All operations absorb ⊥ and saturate at the value range: a computed
// bound falling outside [MinValue, MaxValue] may have overflowed in the
// concrete 32-bit semantics, so the interval loses that side entirely.

// mkSaturated canonicalizes computed bounds, clamping an out-of-range
// lower bound to -∞ and an out-of-range upper bound to ∞.
func mkSaturated(low, high Bound) Interval {
	if l, ok := low.(FiniteBound); ok && ((int64)(l) < MinValue || (int64)(l) > MaxValue) {
		low = MinusInfinity{}
	}
	if h, ok := high.(FiniteBound); ok && ((int64)(h) < MinValue || (int64)(h) > MaxValue) {
		high = PlusInfinity{}
	}
	return mkInterval(low, high)
}

// Neg computes -[a, b] = [-b, -a].
func (e Interval) Neg() Interval {
	if e.IsBot() {
		return e
	}
	return mkSaturated(negBound(e.high), negBound(e.low))
}

func negBound(b Bound) Bound {
	switch b := b.(type) {
	case FiniteBound:
		return -b
	case PlusInfinity:
		return MinusInfinity{}
	}
	return PlusInfinity{}
}

// Plus computes [a, b] + [c, d] = [a+c, b+d].
func (e1 Interval) Plus(e2 Interval) Interval {
	if e1.IsBot() || e2.IsBot() {
		return intervalLattice.Bot()
	}
	return mkSaturated(e1.low.Plus(e2.low), e1.high.Plus(e2.high))
}

// Minus computes [a, b] - [c, d] = [a-d, b-c].
func (e1 Interval) Minus(e2 Interval) Interval {
	if e1.IsBot() || e2.IsBot() {
		return intervalLattice.Bot()
	}
	return mkSaturated(e1.low.Minus(e2.high), e1.high.Minus(e2.low))
}

// Mult computes [a, b] * [c, d] as the envelope of the pairwise bound
// products.
func (e1 Interval) Mult(e2 Interval) Interval {
	if e1.IsBot() || e2.IsBot() {
		return intervalLattice.Bot()
	}
	candidates := [4]Bound{
		multBound(e1.low, e2.low),
		multBound(e1.low, e2.high),
		multBound(e1.high, e2.low),
		multBound(e1.high, e2.high),
	}
	low, high := candidates[0], candidates[0]
	for _, c := range candidates[1:] {
		low = low.Min(c)
		high = high.Max(c)
	}
	return mkSaturated(low, high)
}

// multBound evaluates a bound product candidate. A zero bound annihilates
// even an infinite partner: the envelope limit of 0 * y is 0.
func multBound(b1, b2 Bound) Bound {
	if b1.Eq(FiniteBound(0)) || b2.Eq(FiniteBound(0)) {
		return FiniteBound(0)
	}
	return b1.Mult(b2)
}

// Div computes [a, b] / [c, d]. Division by the singleton {0} yields ⊥;
// a divisor merely containing 0 yields ⊤ (the caller is responsible for
// reporting the possible division by zero). Otherwise 0 cannot be hit and
// the result is the envelope of the pairwise bound quotients.
func (e1 Interval) Div(e2 Interval) Interval {
	if e1.IsBot() || e2.IsBot() {
		return intervalLattice.Bot()
	}
	if e2.IsSingleton() && e2.Contains(0) {
		return intervalLattice.Bot()
	}
	if e2.Contains(0) {
		return intervalLattice.Top()
	}
	candidates := [4]Bound{
		e1.low.Div(e2.low),
		e1.low.Div(e2.high),
		e1.high.Div(e2.low),
		e1.high.Div(e2.high),
	}
	low, high := candidates[0], candidates[0]
	for _, c := range candidates[1:] {
		low = low.Min(c)
		high = high.Max(c)
	}
	return mkSaturated(low, high)
}

// Filter restricts the receiver by the truth of `e1 op e2`, returning the
// subset of the left operand consistent with the comparison. The result
// collapses to ⊥ when the comparison is infeasible.
func (e1 Interval) Filter(op lang.LogicKind, e2 Interval) Interval {
	if e1.IsBot() || e2.IsBot() {
		return intervalLattice.Bot()
	}
	one := FiniteBound(1)
	switch op {
	case lang.Eq:
		return e1.Meet(e2)
	case lang.Neq:
		if !e2.IsSingleton() {
			// A non-equality against a range is inexpressible in intervals.
			return e1
		}
		switch {
		case e1.IsSingleton() && e1.low.Eq(e2.low):
			return intervalLattice.Bot()
		case e1.low.Eq(e2.low):
			return mkInterval(e1.low.Plus(one), e1.high)
		case e1.high.Eq(e2.high):
			return mkInterval(e1.low, e1.high.Minus(one))
		}
		return e1
	case lang.Lt:
		return mkInterval(e1.low, e1.high.Min(e2.high.Minus(one)))
	case lang.Leq:
		return mkInterval(e1.low, e1.high.Min(e2.high))
	case lang.Gt:
		return mkInterval(e1.low.Max(e2.low.Plus(one)), e1.high)
	case lang.Geq:
		return mkInterval(e1.low.Max(e2.low), e1.high)
	}
	panic(errPatternMatch(op))
}
