package cfg

import (
	"fmt"
	"strings"

	L "github.com/abs-int/iva/analysis/lattice"
	"github.com/abs-int/iva/lang"
)

// LocKind tags a location with the statement shape it abstracts.
type LocKind uint8

const (
	// Decl binds every declared variable to ⊤. It has no predecessors.
	Decl LocKind = iota
	// Assign overwrites its target with the abstract value of an expression.
	Assign
	// Precond narrows a variable by an assumed constant range.
	Precond
	// PreIf holds the state on entry to a then-branch, with the guard assumed.
	PreIf
	// PreElse holds the state on entry to an else-branch, with the guard refuted.
	PreElse
	// Merge joins the states of two branches.
	Merge
	// PreWhile is a loop head; it joins the entry and back-edge states and
	// is the only location where widening applies.
	PreWhile
	// PostWhile holds the state on loop exit, with the guard refuted
	// against the loop-head invariant.
	PostWhile
)

func (k LocKind) String() string {
	switch k {
	case Decl:
		return "decl"
	case Assign:
		return "assign"
	case Precond:
		return "precond"
	case PreIf:
		return "pre-if"
	case PreElse:
		return "pre-else"
	case Merge:
		return "merge"
	case PreWhile:
		return "pre-while"
	case PostWhile:
		return "post-while"
	}
	return fmt.Sprintf("unknown(%d)", k)
}

// Location is a node of the analysis graph. It carries the abstract store
// after the corresponding program point and back-references (indices into
// the owning graph) to the predecessors its transfer function reads.
//
// The payload fields are populated according to the kind at build time and
// never mutated afterwards; only the stores change, and only through the
// fixpoint engine.
type Location struct {
	Kind LocKind
	// Store is the abstract state after this location. For PreWhile it is
	// the state on entry to the loop body (the filtered head invariant).
	Store L.Store
	// Head is only used by PreWhile locations: the widened loop-head
	// invariant before the guard filter. PostWhile reads it, as the
	// negated guard must be refuted against the unfiltered invariant.
	Head L.Store
	// Deps lists predecessor indices. All entries point backwards except
	// the back-edge of a PreWhile (its second dependency).
	Deps []int

	// Node is the originating AST statement (the guard node for branch
	// and loop locations).
	Node *lang.Node

	// Assign/Precond payload.
	Target string
	Expr   *lang.Node

	// Precond payload.
	Lo, Hi int64

	// Branch and loop payload. CondOp is the comparison actually assumed
	// at this location; for PreElse and PostWhile it is the negation of
	// the guard operator, cached at build time. CondVar is empty when the
	// guard's left operand is not a variable, in which case the filter
	// degenerates to the identity.
	CondVar string
	CondRHS *lang.Node
	CondOp  lang.LogicKind

	// WidenVars is only used by PreWhile locations: the variables subject
	// to widening, i.e. those appearing in the loop condition or assigned
	// in the loop body. Computed at build time.
	WidenVars []string
}

func (l *Location) String() string {
	switch l.Kind {
	case Decl:
		return fmt.Sprintf("[%s] %s", l.Kind, l.Node)
	case Assign:
		return fmt.Sprintf("[%s] %s = %s", l.Kind, l.Target, l.Expr)
	case Precond:
		return fmt.Sprintf("[%s] %d <= %s <= %d", l.Kind, l.Lo, l.Target, l.Hi)
	case PreIf, PreElse, PreWhile, PostWhile:
		return fmt.Sprintf("[%s] %s %s %s", l.Kind, l.CondVar, l.CondOp, l.CondRHS)
	case Merge:
		return fmt.Sprintf("[%s]", l.Kind)
	}
	return l.Kind.String()
}

// Graph is the analyzer's location graph: an owning slice of locations
// whose dependency edges encode the structured control flow of the
// program, plus the post-conditions consuming the final state.
type Graph struct {
	Locs []*Location
	// Posts are the program's post-conditions in source order. They are
	// not locations; the assertion checker evaluates them against the
	// store of the last location.
	Posts []*lang.Node
	// Vars are the program's declared variables in declaration order.
	Vars []string
}

// Last returns the index of the final location.
func (g *Graph) Last() int {
	return len(g.Locs) - 1
}

func (g *Graph) String() string {
	var sb strings.Builder
	for i, l := range g.Locs {
		fmt.Fprintf(&sb, "%3d: %s", i, l)
		if len(l.Deps) > 0 {
			deps := make([]string, len(l.Deps))
			for j, d := range l.Deps {
				deps[j] = fmt.Sprint(d)
			}
			fmt.Fprintf(&sb, "  <- {%s}", strings.Join(deps, ", "))
		}
		fmt.Fprintf(&sb, "  %s\n", l.Store)
	}
	return sb.String()
}
