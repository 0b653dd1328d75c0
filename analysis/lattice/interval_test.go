package lattice

import (
	"testing"

	"github.com/abs-int/iva/lang"
)

type (
	b = FiniteBound
	P = PlusInfinity
	M = MinusInfinity
)

func TestIntervalJoin(t *testing.T) {
	lat := Create().Lattice().Interval()
	itv := Create().Element().Interval

	tests := []struct {
		a, b, expected Interval
	}{
		{lat.Bot(), lat.Bot(), lat.Bot()},
		{lat.Bot(), lat.Top(), lat.Top()},
		{lat.Top(), lat.Bot(), lat.Top()},
		{lat.Top(), lat.Top(), lat.Top()},
		{lat.Bot(), itv(b(0), b(0)), itv(b(0), b(0))},
		{itv(b(0), b(0)), lat.Bot(), itv(b(0), b(0))},
		{itv(b(0), b(0)), itv(b(1), b(1)), itv(b(0), b(1))},
		{itv(b(1), b(1)), itv(b(0), b(0)), itv(b(0), b(1))},
		{itv(b(1), b(2)), itv(b(3), b(4)), itv(b(1), b(4))},
		{itv(b(-1), b(0)), itv(b(0), b(1)), itv(b(-1), b(1))},
		{itv(b(0), b(1024)), itv(b(0), P{}), itv(b(0), P{})},
		{itv(b(-1024), b(0)), itv(M{}, b(0)), itv(M{}, b(0))},
		{itv(M{}, b(-1024)), itv(b(1024), P{}), lat.Top()},
	}

	for _, test := range tests {
		res := test.a.Join(test.b)
		if !res.Eq(test.expected) {
			t.Errorf("%s ⊔ %s = %s, expected %s\n", test.a, test.b, res, test.expected)
		}
	}
}

func TestIntervalMeet(t *testing.T) {
	lat := Create().Lattice().Interval()
	itv := Create().Element().Interval

	tests := []struct {
		a, b, expected Interval
	}{
		{lat.Bot(), lat.Top(), lat.Bot()},
		{lat.Top(), lat.Top(), lat.Top()},
		{lat.Top(), itv(b(0), b(5)), itv(b(0), b(5))},
		{itv(b(0), b(5)), itv(b(3), b(9)), itv(b(3), b(5))},
		{itv(b(0), b(5)), itv(b(6), b(9)), lat.Bot()},
		{itv(b(0), P{}), itv(M{}, b(10)), itv(b(0), b(10))},
		{itv(b(0), b(0)), itv(b(0), b(0)), itv(b(0), b(0))},
	}

	for _, test := range tests {
		res := test.a.Meet(test.b)
		if !res.Eq(test.expected) {
			t.Errorf("%s ⊓ %s = %s, expected %s\n", test.a, test.b, res, test.expected)
		}
	}
}

// samples is a small universe of intervals exercising every bound shape.
func samples() []Interval {
	lat := Create().Lattice().Interval()
	itv := Create().Element().Interval
	return []Interval{
		lat.Bot(),
		lat.Top(),
		itv(b(0), b(0)),
		itv(b(-1), b(1)),
		itv(b(2), b(7)),
		itv(b(-9), b(-3)),
		itv(b(0), P{}),
		itv(b(5), P{}),
		itv(M{}, b(0)),
		itv(M{}, b(-7)),
	}
}

func TestIntervalLatticeLaws(t *testing.T) {
	lat := Create().Lattice().Interval()
	is := samples()

	for _, i := range is {
		if !i.Join(i).Eq(i) {
			t.Errorf("join not idempotent at %s", i)
		}
		if !i.Meet(i).Eq(i) {
			t.Errorf("meet not idempotent at %s", i)
		}
		if !i.Join(lat.Top()).Eq(lat.Top()) {
			t.Errorf("⊤ not absorbing for join at %s", i)
		}
		if !i.Join(lat.Bot()).Eq(i) {
			t.Errorf("⊥ not identity for join at %s", i)
		}
		if !i.Meet(lat.Top()).Eq(i) {
			t.Errorf("⊤ not identity for meet at %s", i)
		}
		if !i.Meet(lat.Bot()).Eq(lat.Bot()) {
			t.Errorf("⊥ not absorbing for meet at %s", i)
		}
	}

	for _, i := range is {
		for _, j := range is {
			if !i.Join(j).Eq(j.Join(i)) {
				t.Errorf("join not commutative at %s, %s", i, j)
			}
			if !i.Meet(j).Eq(j.Meet(i)) {
				t.Errorf("meet not commutative at %s, %s", i, j)
			}
			for _, k := range is {
				if !i.Join(j).Join(k).Eq(i.Join(j.Join(k))) {
					t.Errorf("join not associative at %s, %s, %s", i, j, k)
				}
				if !i.Meet(j).Meet(k).Eq(i.Meet(j.Meet(k))) {
					t.Errorf("meet not associative at %s, %s, %s", i, j, k)
				}
			}
		}
	}
}

func TestIntervalWiden(t *testing.T) {
	lat := Create().Lattice().Interval()
	itv := Create().Element().Interval

	tests := []struct {
		prev, next, expected Interval
	}{
		{itv(b(0), b(0)), itv(b(0), b(1)), itv(b(0), P{})},
		{itv(b(0), b(1)), itv(b(-1), b(1)), itv(M{}, b(1))},
		{itv(b(0), b(5)), itv(b(0), b(5)), itv(b(0), b(5))},
		{itv(b(0), b(5)), itv(b(1), b(4)), itv(b(0), b(5))},
		{lat.Bot(), itv(b(0), b(1)), itv(b(0), b(1))},
		{itv(b(0), b(1)), lat.Bot(), itv(b(0), b(1))},
	}

	for _, test := range tests {
		res := test.prev.Widen(test.next)
		if !res.Eq(test.expected) {
			t.Errorf("%s ∇ %s = %s, expected %s\n", test.prev, test.next, res, test.expected)
		}
	}

	// Widening is extensive in both arguments.
	for _, i := range samples() {
		for _, j := range samples() {
			w := i.Widen(j)
			if !i.Leq(w) || !j.Leq(w) {
				t.Errorf("widening not extensive: %s ∇ %s = %s", i, j, w)
			}
		}
	}
}

// Any ascending chain must stabilize after finitely many widening steps;
// in the interval lattice two steps per side suffice.
func TestIntervalWidenStabilizes(t *testing.T) {
	itv := Create().Element().Interval

	chain := []Interval{
		itv(b(0), b(0)),
		itv(b(0), b(10)),
		itv(b(-5), b(100)),
		itv(b(-500), b(1000)),
	}
	acc := chain[0]
	for steps := 0; ; steps++ {
		if steps > 2*len(chain) {
			t.Fatalf("widening failed to stabilize, reached %s", acc)
		}
		next := acc
		for _, c := range chain {
			next = next.Join(c)
		}
		widened := acc.Widen(next)
		if widened.Eq(acc) {
			break
		}
		acc = widened
	}
}

func TestIntervalArithmetic(t *testing.T) {
	lat := Create().Lattice().Interval()
	itv := Create().Element().Interval

	add := func(l, r Interval) Interval { return l.Plus(r) }
	sub := func(l, r Interval) Interval { return l.Minus(r) }
	mul := func(l, r Interval) Interval { return l.Mult(r) }
	div := func(l, r Interval) Interval { return l.Div(r) }

	tests := []struct {
		op       func(Interval, Interval) Interval
		name     string
		a, b     Interval
		expected Interval
	}{
		{add, "+", itv(b(1), b(2)), itv(b(3), b(4)), itv(b(4), b(6))},
		{add, "+", itv(b(0), P{}), itv(b(1), b(1)), itv(b(1), P{})},
		{add, "+", lat.Bot(), itv(b(1), b(1)), lat.Bot()},
		{add, "+", itv(b(MaxValue-1), b(MaxValue)), itv(b(1), b(2)), itv(b(MaxValue), P{})},
		{sub, "-", itv(b(1), b(2)), itv(b(3), b(4)), itv(b(-3), b(-1))},
		{sub, "-", itv(b(MinValue), b(0)), itv(b(1), b(1)), itv(M{}, b(-1))},
		{mul, "*", itv(b(2), b(3)), itv(b(4), b(5)), itv(b(8), b(15))},
		{mul, "*", itv(b(-2), b(3)), itv(b(-4), b(5)), itv(b(-12), b(15))},
		{mul, "*", itv(b(0), b(5)), itv(b(0), P{}), itv(b(0), P{})},
		{mul, "*", itv(b(1<<20), b(1<<20)), itv(b(1<<20), b(1<<20)), lat.Top()},
		{div, "/", itv(b(10), b(20)), itv(b(2), b(5)), itv(b(2), b(10))},
		{div, "/", itv(b(10), b(20)), itv(b(-2), b(-1)), itv(b(-20), b(-5))},
		{div, "/", itv(b(10), b(20)), itv(b(0), b(0)), lat.Bot()},
		{div, "/", itv(b(10), b(20)), itv(b(-1), b(1)), lat.Top()},
		{div, "/", itv(b(1), P{}), itv(b(1), P{}), itv(b(0), P{})},
	}

	for _, test := range tests {
		res := test.op(test.a, test.b)
		if !res.Eq(test.expected) {
			t.Errorf("%s %s %s = %s, expected %s\n", test.a, test.name, test.b, res, test.expected)
		}
	}

	neg := itv(b(-3), b(7)).Neg()
	if !neg.Eq(itv(b(-7), b(3))) {
		t.Errorf("-[-3, 7] = %s, expected [-7, 3]", neg)
	}
}

func TestIntervalFilter(t *testing.T) {
	lat := Create().Lattice().Interval()
	itv := Create().Element().Interval

	tests := []struct {
		op       lang.LogicKind
		a, b     Interval
		expected Interval
	}{
		{lang.Eq, itv(b(0), b(10)), itv(b(5), b(5)), itv(b(5), b(5))},
		{lang.Eq, itv(b(1), b(1)), itv(b(0), b(0)), lat.Bot()},
		{lang.Neq, itv(b(5), b(5)), itv(b(5), b(5)), lat.Bot()},
		{lang.Neq, itv(b(0), b(10)), itv(b(0), b(0)), itv(b(1), b(10))},
		{lang.Neq, itv(b(0), b(10)), itv(b(10), b(10)), itv(b(0), b(9))},
		{lang.Neq, itv(b(0), b(10)), itv(b(5), b(5)), itv(b(0), b(10))},
		{lang.Neq, itv(b(0), b(10)), itv(b(3), b(7)), itv(b(0), b(10))},
		{lang.Lt, itv(b(0), b(10)), itv(b(5), b(5)), itv(b(0), b(4))},
		{lang.Lt, itv(b(8), b(10)), itv(b(5), b(5)), lat.Bot()},
		{lang.Lt, itv(b(0), b(0)), itv(b(10), b(10)), itv(b(0), b(0))},
		{lang.Leq, itv(b(0), b(10)), itv(b(5), b(5)), itv(b(0), b(5))},
		{lang.Gt, itv(b(0), b(10)), itv(b(5), b(5)), itv(b(6), b(10))},
		{lang.Gt, itv(b(0), b(4)), itv(b(5), b(5)), lat.Bot()},
		{lang.Geq, itv(b(0), b(10)), itv(b(5), b(5)), itv(b(5), b(10))},
		{lang.Geq, itv(M{}, P{}), itv(b(10), b(10)), itv(b(10), P{})},
		{lang.Lt, itv(b(0), P{}), itv(b(10), P{}), itv(b(0), P{})},
		{lang.Eq, lat.Bot(), itv(b(0), b(0)), lat.Bot()},
	}

	for _, test := range tests {
		res := test.a.Filter(test.op, test.b)
		if !res.Eq(test.expected) {
			t.Errorf("filter(%s, %s, %s) = %s, expected %s\n",
				test.op, test.a, test.b, res, test.expected)
		}
	}
}

// Filter soundness: any concrete pair satisfying the comparison keeps its
// left component in the filtered interval.
func TestIntervalFilterSound(t *testing.T) {
	itv := Create().Element().Interval

	concrete := func(op lang.LogicKind, x, y int64) bool {
		switch op {
		case lang.Eq:
			return x == y
		case lang.Neq:
			return x != y
		case lang.Lt:
			return x < y
		case lang.Leq:
			return x <= y
		case lang.Gt:
			return x > y
		case lang.Geq:
			return x >= y
		}
		return false
	}

	intervals := []Interval{
		itv(b(-3), b(3)), itv(b(0), b(0)), itv(b(-8), b(-2)),
		itv(b(2), b(9)), itv(b(-1), b(6)),
	}
	ops := []lang.LogicKind{lang.Eq, lang.Neq, lang.Lt, lang.Leq, lang.Gt, lang.Geq}

	for _, i := range intervals {
		for _, j := range intervals {
			for _, op := range ops {
				f := i.Filter(op, j)
				il, ih := i.GetFiniteBounds()
				jl, jh := j.GetFiniteBounds()
				for x := il; x <= ih; x++ {
					for y := jl; y <= jh; y++ {
						if concrete(op, x, y) && !f.Contains(x) {
							t.Fatalf("filter(%s, %s, %s) = %s drops %d (witness %d)",
								op, i, j, f, x, y)
						}
					}
				}
			}
		}
	}
}

func TestIntervalPredicates(t *testing.T) {
	lat := Create().Lattice().Interval()
	itv := Create().Element().Interval

	if !lat.Bot().IsBot() || lat.Bot().IsTop() {
		t.Errorf("⊥ misclassified")
	}
	if !lat.Top().IsTop() || lat.Top().IsBot() {
		t.Errorf("⊤ misclassified")
	}
	if !itv(b(3), b(3)).IsSingleton() || itv(b(3), b(4)).IsSingleton() {
		t.Errorf("singleton misclassified")
	}
	if itv(b(5), b(2)) != lat.Bot() {
		t.Errorf("crossing bounds must collapse to the canonical ⊥")
	}
	if !itv(b(-2), b(2)).Contains(0) || itv(b(-2), b(2)).Contains(3) {
		t.Errorf("containment misclassified")
	}
}
