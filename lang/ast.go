package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags every AST node with its syntactic category.
type Kind uint8

const (
	Integer Kind = iota
	Variable
	ArithOp
	LogicOp
	Declaration
	Assignment
	Precondition
	IfElse
	WhileLoop
	Sequence
	PostCondition
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "Integer"
	case Variable:
		return "Variable"
	case ArithOp:
		return "ArithOp"
	case LogicOp:
		return "LogicOp"
	case Declaration:
		return "Declaration"
	case Assignment:
		return "Assignment"
	case Precondition:
		return "Precondition"
	case IfElse:
		return "IfElse"
	case WhileLoop:
		return "WhileLoop"
	case Sequence:
		return "Sequence"
	case PostCondition:
		return "PostCondition"
	}
	return "Unknown(" + strconv.Itoa(int(k)) + ")"
}

// ArithKind enumerates the binary arithmetic operators.
type ArithKind uint8

const (
	Add ArithKind = iota
	Sub
	Mul
	Div
)

func (op ArithKind) String() string {
	return [...]string{"+", "-", "*", "/"}[op]
}

// LogicKind enumerates the binary comparison operators.
type LogicKind uint8

const (
	Eq LogicKind = iota
	Neq
	Lt
	Leq
	Gt
	Geq
)

func (op LogicKind) String() string {
	return [...]string{"==", "!=", "<", "<=", ">", ">="}[op]
}

// Negate yields the comparison holding exactly when `op` does not.
// The pairing is EQ ↔ NEQ, LT ↔ GEQ, LEQ ↔ GT.
func Negate(op LogicKind) LogicKind {
	switch op {
	case Eq:
		return Neq
	case Neq:
		return Eq
	case Lt:
		return Geq
	case Geq:
		return Lt
	case Leq:
		return Gt
	case Gt:
		return Leq
	}
	panic(fmt.Sprintf("unknown comparison operator: %d", op))
}

// Node is a node of the program AST. The payload fields are populated
// according to the kind tag; Children is ordered. ID is a stable pre-order
// identifier assigned by Validate and is used to key diagnostics.
type Node struct {
	Kind     Kind
	IntVal   int64
	Name     string
	Arith    ArithKind
	Logic    LogicKind
	Children []*Node
	ID       int
}

func NewInt(n int64) *Node {
	return &Node{Kind: Integer, IntVal: n}
}

func NewVar(name string) *Node {
	return &Node{Kind: Variable, Name: name}
}

func NewArith(op ArithKind, lhs, rhs *Node) *Node {
	return &Node{Kind: ArithOp, Arith: op, Children: []*Node{lhs, rhs}}
}

func NewLogic(op LogicKind, lhs, rhs *Node) *Node {
	return &Node{Kind: LogicOp, Logic: op, Children: []*Node{lhs, rhs}}
}

func NewDecl(vars ...*Node) *Node {
	return &Node{Kind: Declaration, Children: vars}
}

func NewAssign(target, expr *Node) *Node {
	return &Node{Kind: Assignment, Children: []*Node{target, expr}}
}

// NewPrecond assumes lo ≤ x ≤ hi for the given variable.
func NewPrecond(x string, lo, hi int64) *Node {
	return &Node{Kind: Precondition, Children: []*Node{
		NewLogic(Geq, NewVar(x), NewInt(lo)),
		NewLogic(Leq, NewVar(x), NewInt(hi)),
	}}
}

// NewIfElse constructs a conditional. The else branch may be nil.
func NewIfElse(guard, then, els *Node) *Node {
	children := []*Node{guard, then}
	if els != nil {
		children = append(children, els)
	}
	return &Node{Kind: IfElse, Children: children}
}

func NewWhile(guard, body *Node) *Node {
	return &Node{Kind: WhileLoop, Children: []*Node{guard, body}}
}

func NewSeq(stmts ...*Node) *Node {
	return &Node{Kind: Sequence, Children: stmts}
}

func NewPost(cond *Node) *Node {
	return &Node{Kind: PostCondition, Children: []*Node{cond}}
}

// Guard returns the comparison node of a conditional or loop.
func (n *Node) Guard() *Node {
	return n.Children[0]
}

// IsExpr reports whether the node may appear in expression position.
func (n *Node) IsExpr() bool {
	switch n.Kind {
	case Integer, Variable, ArithOp:
		return true
	}
	return false
}

// IsStmt reports whether the node may appear in statement position.
func (n *Node) IsStmt() bool {
	switch n.Kind {
	case Declaration, Assignment, Precondition, IfElse, WhileLoop, Sequence, PostCondition:
		return true
	}
	return false
}

func (n *Node) String() string {
	switch n.Kind {
	case Integer:
		return strconv.FormatInt(n.IntVal, 10)
	case Variable:
		return n.Name
	case ArithOp:
		return fmt.Sprintf("(%s %s %s)", n.Children[0], n.Arith, n.Children[1])
	case LogicOp:
		return fmt.Sprintf("%s %s %s", n.Children[0], n.Logic, n.Children[1])
	case Declaration:
		vars := make([]string, len(n.Children))
		for i, c := range n.Children {
			vars[i] = c.Name
		}
		return "int " + strings.Join(vars, ", ")
	case Assignment:
		return fmt.Sprintf("%s = %s", n.Children[0], n.Children[1])
	case Precondition:
		lo := n.Children[0].Children[1]
		hi := n.Children[1].Children[1]
		return fmt.Sprintf("assume %s <= %s <= %s", lo, n.Children[0].Children[0], hi)
	case IfElse:
		return fmt.Sprintf("if (%s) ...", n.Guard())
	case WhileLoop:
		return fmt.Sprintf("while (%s) ...", n.Guard())
	case Sequence:
		return fmt.Sprintf("sequence of %d statements", len(n.Children))
	case PostCondition:
		return fmt.Sprintf("assert(%s)", n.Children[0])
	}
	return n.Kind.String()
}

// Vars collects the names declared anywhere in the subtree, in
// declaration order.
func Vars(root *Node) []string {
	var names []string
	seen := map[string]bool{}
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Kind == Declaration {
			for _, c := range n.Children {
				if !seen[c.Name] {
					seen[c.Name] = true
					names = append(names, c.Name)
				}
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return names
}

// AssignedVars collects the names assigned anywhere in the subtree.
func AssignedVars(root *Node) map[string]bool {
	assigned := map[string]bool{}
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Kind == Assignment {
			assigned[n.Children[0].Name] = true
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return assigned
}
