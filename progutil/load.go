package progutil

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abs-int/iva/lang"
)

// jsonNode is the on-disk schema of a program AST: every node carries a
// kind tag, an optional payload and an ordered list of children. The
// payload type depends on the kind: an integer for literals, a string for
// variables, an operator name for ArithOp/LogicOp nodes.
type jsonNode struct {
	Kind     string          `json:"kind"`
	Value    json.RawMessage `json:"value,omitempty"`
	Children []*jsonNode     `json:"children,omitempty"`
}

var kinds = map[string]lang.Kind{
	"Integer":       lang.Integer,
	"Variable":      lang.Variable,
	"ArithOp":       lang.ArithOp,
	"LogicOp":       lang.LogicOp,
	"Declaration":   lang.Declaration,
	"Assignment":    lang.Assignment,
	"Precondition":  lang.Precondition,
	"IfElse":        lang.IfElse,
	"WhileLoop":     lang.WhileLoop,
	"Sequence":      lang.Sequence,
	"PostCondition": lang.PostCondition,
}

var arithOps = map[string]lang.ArithKind{
	"ADD": lang.Add,
	"SUB": lang.Sub,
	"MUL": lang.Mul,
	"DIV": lang.Div,
}

var logicOps = map[string]lang.LogicKind{
	"EQ":  lang.Eq,
	"NEQ": lang.Neq,
	"LT":  lang.Lt,
	"LEQ": lang.Leq,
	"GT":  lang.Gt,
	"GEQ": lang.Geq,
}

// LoadProgram reads, decodes and validates a program AST from a JSON
// file, returning the root sequence.
func LoadProgram(path string) (*lang.Node, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeProgram(b)
}

// DecodeProgram decodes and validates a serialized program AST.
func DecodeProgram(b []byte) (*lang.Node, error) {
	var root jsonNode
	if err := json.Unmarshal(b, &root); err != nil {
		return nil, fmt.Errorf("malformed program AST: %w", err)
	}
	node, err := convert(&root)
	if err != nil {
		return nil, err
	}
	if err := lang.Validate(node); err != nil {
		return nil, err
	}
	return node, nil
}

func convert(jn *jsonNode) (*lang.Node, error) {
	kind, ok := kinds[jn.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown node kind %q", jn.Kind)
	}

	n := &lang.Node{Kind: kind}
	switch kind {
	case lang.Integer:
		if err := json.Unmarshal(jn.Value, &n.IntVal); err != nil {
			return nil, fmt.Errorf("Integer node with non-integer payload: %w", err)
		}
	case lang.Variable:
		if err := json.Unmarshal(jn.Value, &n.Name); err != nil {
			return nil, fmt.Errorf("Variable node with non-string payload: %w", err)
		}
	case lang.ArithOp:
		op, err := opName(jn.Value)
		if err != nil {
			return nil, err
		}
		arith, ok := arithOps[op]
		if !ok {
			return nil, fmt.Errorf("unknown arithmetic operator %q", op)
		}
		n.Arith = arith
	case lang.LogicOp:
		op, err := opName(jn.Value)
		if err != nil {
			return nil, err
		}
		logic, ok := logicOps[op]
		if !ok {
			return nil, fmt.Errorf("unknown comparison operator %q", op)
		}
		n.Logic = logic
	}

	for _, c := range jn.Children {
		child, err := convert(c)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func opName(raw json.RawMessage) (string, error) {
	var op string
	if err := json.Unmarshal(raw, &op); err != nil {
		return "", fmt.Errorf("operator node with non-string payload: %w", err)
	}
	return op, nil
}
