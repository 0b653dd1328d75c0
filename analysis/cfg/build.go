package cfg

import (
	"fmt"

	L "github.com/abs-int/iva/analysis/lattice"
	"github.com/abs-int/iva/lang"
	"golang.org/x/exp/slices"
)

// Build walks a validated program AST once and produces its location
// graph. Every location's dependencies appear at lower indices, except
// for the back-edge into a loop head, which is patched in after the loop
// body has been emitted.
func Build(program *lang.Node) (*Graph, error) {
	if program.Kind != lang.Sequence {
		return nil, fmt.Errorf("program root must be a Sequence, got %s", program.Kind)
	}

	b := &builder{g: &Graph{Vars: lang.Vars(program)}}

	// The single Decl location binds every declared variable of the
	// program; declaration statements emit no location of their own.
	decl := b.emit(&Location{Kind: Decl, Node: program})

	if _, err := b.stmt(program, decl); err != nil {
		return nil, err
	}
	return b.g, nil
}

type builder struct {
	g *Graph
}

// emit appends a location, initializing its store to the unreachable
// store over the program's variables, and returns its index.
func (b *builder) emit(l *Location) int {
	l.Store = L.Elements().StoreBot(b.g.Vars)
	if l.Kind == PreWhile {
		l.Head = L.Elements().StoreBot(b.g.Vars)
	}
	b.g.Locs = append(b.g.Locs, l)
	return len(b.g.Locs) - 1
}

// stmt emits the locations of a statement, threading the index of the
// last location emitted so far, and returns the new last index.
func (b *builder) stmt(n *lang.Node, prev int) (int, error) {
	switch n.Kind {
	case lang.Declaration:
		// Covered by the program-wide Decl location.
		return prev, nil

	case lang.PostCondition:
		// Post-conditions are not locations; they consume the final store.
		b.g.Posts = append(b.g.Posts, n)
		return prev, nil

	case lang.Assignment:
		return b.emit(&Location{
			Kind:   Assign,
			Node:   n,
			Target: n.Children[0].Name,
			Expr:   n.Children[1],
			Deps:   []int{prev},
		}), nil

	case lang.Precondition:
		x, lo, hi := n.Target()
		return b.emit(&Location{
			Kind:   Precond,
			Node:   n,
			Target: x,
			Lo:     lo,
			Hi:     hi,
			Deps:   []int{prev},
		}), nil

	case lang.IfElse:
		guard := n.Guard()
		preIf := b.emit(branchLocation(PreIf, guard, guard.Logic, prev))
		lastThen, err := b.stmt(n.Children[1], preIf)
		if err != nil {
			return 0, err
		}
		preElse := b.emit(branchLocation(PreElse, guard, lang.Negate(guard.Logic), prev))
		lastElse := preElse
		if len(n.Children) == 3 {
			if lastElse, err = b.stmt(n.Children[2], preElse); err != nil {
				return 0, err
			}
		}
		return b.emit(&Location{
			Kind: Merge,
			Node: n,
			Deps: []int{lastThen, lastElse},
		}), nil

	case lang.WhileLoop:
		guard := n.Guard()
		head := branchLocation(PreWhile, guard, guard.Logic, prev)
		head.Deps = append(head.Deps, -1) // patched to the body tail below
		head.WidenVars = widenVars(guard, n.Children[1])
		headIdx := b.emit(head)
		lastBody, err := b.stmt(n.Children[1], headIdx)
		if err != nil {
			return 0, err
		}
		head.Deps[1] = lastBody
		return b.emit(branchLocation(PostWhile, guard, lang.Negate(guard.Logic), headIdx)), nil

	case lang.Sequence:
		var err error
		for _, c := range n.Children {
			if prev, err = b.stmt(c, prev); err != nil {
				return 0, err
			}
		}
		return prev, nil
	}
	return 0, fmt.Errorf("unexpected statement kind %s", n.Kind)
}

// branchLocation constructs a guard-filtering location. When the guard's
// left operand is not a variable the filter cannot narrow anything and
// CondVar stays empty.
func branchLocation(kind LocKind, guard *lang.Node, op lang.LogicKind, prev int) *Location {
	l := &Location{
		Kind:    kind,
		Node:    guard,
		CondOp:  op,
		CondRHS: guard.Children[1],
		Deps:    []int{prev},
	}
	if guard.Children[0].Kind == lang.Variable {
		l.CondVar = guard.Children[0].Name
	}
	return l
}

// widenVars collects the variables subject to widening at a loop head:
// those of the loop condition and the assigned set of the body.
func widenVars(guard, body *lang.Node) []string {
	set := lang.AssignedVars(body)
	var collect func(n *lang.Node)
	collect = func(n *lang.Node) {
		if n.Kind == lang.Variable {
			set[n.Name] = true
		}
		for _, c := range n.Children {
			collect(c)
		}
	}
	collect(guard)
	vars := make([]string, 0, len(set))
	for x := range set {
		vars = append(vars, x)
	}
	slices.Sort(vars)
	return vars
}
