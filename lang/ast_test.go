package lang

import "testing"

func prog(stmts ...*Node) *Node {
	return NewSeq(stmts...)
}

func TestValidateAssignsIDs(t *testing.T) {
	p := prog(
		NewDecl(NewVar("x")),
		NewAssign(NewVar("x"), NewInt(5)),
	)
	if err := Validate(p); err != nil {
		t.Fatal(err)
	}
	seen := map[int]bool{}
	var walk func(n *Node)
	walk = func(n *Node) {
		if seen[n.ID] {
			t.Errorf("duplicate node ID %d", n.ID)
		}
		seen[n.ID] = true
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(p)
	if p.ID != 0 {
		t.Errorf("root ID = %d, expected 0", p.ID)
	}
}

func TestValidateRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		root *Node
	}{
		{"non-sequence root", NewInt(1)},
		{"assignment to literal", prog(&Node{Kind: Assignment, Children: []*Node{NewInt(1), NewInt(2)}})},
		{"arith with one operand", prog(NewAssign(NewVar("x"), &Node{Kind: ArithOp, Arith: Add, Children: []*Node{NewInt(1)}}))},
		{"statement as operand", prog(NewAssign(NewVar("x"), &Node{Kind: ArithOp, Arith: Add, Children: []*Node{NewInt(1), NewDecl(NewVar("y"))}}))},
		{"empty declaration", prog(&Node{Kind: Declaration})},
		{"guardless if", prog(&Node{Kind: IfElse, Children: []*Node{NewInt(1), NewSeq()}})},
		{"assertion of expression", prog(&Node{Kind: PostCondition, Children: []*Node{NewInt(1)}})},
		{"precondition with mismatched variables", prog(&Node{Kind: Precondition, Children: []*Node{
			NewLogic(Geq, NewVar("x"), NewInt(0)),
			NewLogic(Leq, NewVar("y"), NewInt(10)),
		}})},
		{"literal outside value range", prog(NewAssign(NewVar("x"), NewInt(1<<40)))},
	}

	for _, test := range tests {
		if err := Validate(test.root); err == nil {
			t.Errorf("%s: expected a validation error", test.name)
		}
	}
}

func TestNegate(t *testing.T) {
	pairs := [][2]LogicKind{
		{Eq, Neq}, {Lt, Geq}, {Leq, Gt},
	}
	for _, pair := range pairs {
		if Negate(pair[0]) != pair[1] || Negate(pair[1]) != pair[0] {
			t.Errorf("negation of %s and %s is not an involution", pair[0], pair[1])
		}
	}
}

func TestVarsAndAssignedVars(t *testing.T) {
	p := prog(
		NewDecl(NewVar("x"), NewVar("y")),
		NewAssign(NewVar("x"), NewInt(0)),
		NewWhile(NewLogic(Lt, NewVar("x"), NewInt(10)), NewSeq(
			NewAssign(NewVar("x"), NewArith(Add, NewVar("x"), NewInt(1))),
		)),
	)
	if err := Validate(p); err != nil {
		t.Fatal(err)
	}

	vars := Vars(p)
	if len(vars) != 2 || vars[0] != "x" || vars[1] != "y" {
		t.Errorf("Vars = %v, expected [x y]", vars)
	}

	assigned := AssignedVars(p.Children[2])
	if len(assigned) != 1 || !assigned["x"] {
		t.Errorf("AssignedVars = %v, expected {x}", assigned)
	}
}
