package testutil

import (
	"testing"

	"github.com/abs-int/iva/lang"
)

// Thin wrappers over the AST constructors, so test programs read close to
// the concrete syntax they abstract.

func Int(n int64) *lang.Node            { return lang.NewInt(n) }
func Var(x string) *lang.Node           { return lang.NewVar(x) }
func Add(l, r *lang.Node) *lang.Node    { return lang.NewArith(lang.Add, l, r) }
func Sub(l, r *lang.Node) *lang.Node    { return lang.NewArith(lang.Sub, l, r) }
func Mul(l, r *lang.Node) *lang.Node    { return lang.NewArith(lang.Mul, l, r) }
func Div(l, r *lang.Node) *lang.Node    { return lang.NewArith(lang.Div, l, r) }
func Cmp(op lang.LogicKind, l, r *lang.Node) *lang.Node {
	return lang.NewLogic(op, l, r)
}

func Decl(vars ...string) *lang.Node {
	nodes := make([]*lang.Node, len(vars))
	for i, x := range vars {
		nodes[i] = lang.NewVar(x)
	}
	return lang.NewDecl(nodes...)
}

func Assign(x string, e *lang.Node) *lang.Node { return lang.NewAssign(lang.NewVar(x), e) }
func Assume(x string, lo, hi int64) *lang.Node { return lang.NewPrecond(x, lo, hi) }
func If(guard, then *lang.Node) *lang.Node     { return lang.NewIfElse(guard, then, nil) }
func IfElse(guard, then, els *lang.Node) *lang.Node {
	return lang.NewIfElse(guard, then, els)
}
func While(guard, body *lang.Node) *lang.Node { return lang.NewWhile(guard, body) }
func Seq(stmts ...*lang.Node) *lang.Node      { return lang.NewSeq(stmts...) }
func Assert(cond *lang.Node) *lang.Node       { return lang.NewPost(cond) }

// Prog builds and validates a program from the given statements, fataling
// the test on a malformed AST.
func Prog(t *testing.T, stmts ...*lang.Node) *lang.Node {
	t.Helper()
	root := lang.NewSeq(stmts...)
	if err := lang.Validate(root); err != nil {
		t.Fatalf("malformed test program: %v", err)
	}
	return root
}
