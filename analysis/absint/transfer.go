package absint

import (
	"fmt"

	"github.com/abs-int/iva/analysis/cfg"
	L "github.com/abs-int/iva/analysis/lattice"
	"github.com/abs-int/iva/config"
	"github.com/abs-int/iva/lang"
)

// analysis carries the mutable state of one fixpoint run over a location
// graph.
type analysis struct {
	graph *cfg.Graph
	conf  config.Config

	// evals counts how often each location has been evaluated; loop heads
	// use it to distinguish their first evaluation from widening rounds.
	evals []int

	// Diagnostics are only collected when enabled, i.e. during the
	// verification sweep after stabilization and while checking
	// assertions. This keeps transient states of early iterations from
	// producing warnings that do not hold at the fixpoint.
	collect bool
	seen    map[dedupKey]bool
	report  *Report
}

// Warnings are deduplicated per AST node; infeasible-branch records are
// additionally keyed by location, as the two arms of a conditional share
// their guard node.
type dedupKey struct {
	kind RecordKind
	node int
	loc  int
}

func newAnalysis(g *cfg.Graph, conf config.Config) *analysis {
	return &analysis{
		graph:  g,
		conf:   conf,
		evals:  make([]int, len(g.Locs)),
		seen:   map[dedupKey]bool{},
		report: &Report{},
	}
}

func (a *analysis) store(dep int) L.Store {
	return a.graph.Locs[dep].Store
}

// transfer re-evaluates the location at index i, writing back the new
// store and reporting whether it changed.
func (a *analysis) transfer(i int) (changed bool) {
	l := a.graph.Locs[i]
	a.evals[i]++

	var res L.Store
	switch l.Kind {
	case cfg.Decl:
		res = L.Elements().StoreTop(a.graph.Vars)

	case cfg.Assign:
		p := a.store(l.Deps[0])
		if p.IsBot() {
			res = p
			break
		}
		res = p.Update(l.Target, a.evalArith(l.Expr, p, i))

	case cfg.Precond:
		p := a.store(l.Deps[0])
		if p.IsBot() {
			res = p
			break
		}
		assumed := L.Elements().IntervalFinite(l.Lo, l.Hi)
		res = p.Update(l.Target, p.Get(l.Target).Meet(assumed))

	case cfg.PreIf, cfg.PreElse:
		res = a.filterCond(l, a.store(l.Deps[0]), i)

	case cfg.Merge:
		res = a.store(l.Deps[0]).MonoJoin(a.store(l.Deps[1]))

	case cfg.PreWhile:
		p := a.store(l.Deps[0])
		if a.evals[i] == 1 {
			// On the first visit the back-edge has not produced a state
			// yet; the head behaves like a plain branch entry.
			l.Head = p
			res = a.filterCond(l, p, i)
			break
		}
		joined := p.MonoJoin(a.store(l.Deps[1]))
		widened := joined
		for _, x := range l.WidenVars {
			widened = widened.Update(x, l.Store.Get(x).Widen(joined.Get(x)))
		}
		// Widening alone blows the loop variables to ±∞; filtering by the
		// guard claws back the part the loop condition contradicts.
		l.Head = widened
		res = a.filterCond(l, widened, i)

	case cfg.PostWhile:
		// The exit state refutes the guard against the unfiltered head
		// invariant, which is only authoritative once the head has
		// stabilized.
		res = a.filterCond(l, a.graph.Locs[l.Deps[0]].Head, i)

	default:
		panic(fmt.Sprintf("unknown location kind %s", l.Kind))
	}

	changed = !res.Eq(l.Store)
	l.Store = res
	return changed
}

// filterCond restricts the guard's left-hand variable in the given store
// by the location's comparison. Guards whose left operand is not a
// variable cannot narrow anything.
func (a *analysis) filterCond(l *cfg.Location, p L.Store, i int) L.Store {
	if p.IsBot() || l.CondVar == "" {
		return p
	}
	f := p.Get(l.CondVar).Filter(l.CondOp, a.evalArith(l.CondRHS, p, i))
	res := p.Update(l.CondVar, f)
	if f.IsBot() && (l.Kind == cfg.PreIf || l.Kind == cfg.PreElse) {
		a.warnStore(InfeasibleBranch, i, l.Node, res)
	}
	return res
}

// evalArith evaluates an expression against a store. Saturating results
// and divisors containing zero emit diagnostics tagged with the AST node.
func (a *analysis) evalArith(n *lang.Node, s L.Store, loc int) L.Interval {
	switch n.Kind {
	case lang.Integer:
		return L.Elements().IntervalConst(n.IntVal)
	case lang.Variable:
		return s.Get(n.Name)
	case lang.ArithOp:
		left := a.evalArith(n.Children[0], s, loc)
		right := a.evalArith(n.Children[1], s, loc)

		var res L.Interval
		switch n.Arith {
		case lang.Add:
			res = left.Plus(right)
		case lang.Sub:
			res = left.Minus(right)
		case lang.Mul:
			res = left.Mult(right)
		case lang.Div:
			if !right.IsBot() && right.Contains(0) {
				a.warn(PossibleDivisionByZero, loc, n, right)
			}
			return left.Div(right)
		}
		// A finite operation that produced an infinite bound saturated.
		if left.IsFinite() && right.IsFinite() && !res.IsFinite() && !res.IsBot() {
			a.warn(PossibleOverflow, loc, n, res)
		}
		return res
	}
	panic(fmt.Sprintf("invalid arithmetic expression of kind %s", n.Kind))
}

func (a *analysis) warn(kind RecordKind, loc int, node *lang.Node, i L.Interval) {
	if !a.shouldEmit(kind, node.ID, -1) {
		return
	}
	a.report.Records = append(a.report.Records, Record{
		Kind: kind, Loc: loc, Node: node, Interval: i, HasInterval: true,
	})
}

func (a *analysis) warnStore(kind RecordKind, loc int, node *lang.Node, s L.Store) {
	if !a.shouldEmit(kind, node.ID, loc) {
		return
	}
	a.report.Records = append(a.report.Records, Record{
		Kind: kind, Loc: loc, Node: node, Store: s, HasStore: true,
	})
}

func (a *analysis) shouldEmit(kind RecordKind, node int, loc int) bool {
	if !a.collect || a.conf.Suppressed(kind.Category()) {
		return false
	}
	key := dedupKey{kind, node, loc}
	if a.seen[key] {
		return false
	}
	a.seen[key] = true
	return true
}
