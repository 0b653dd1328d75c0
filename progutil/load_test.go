package progutil

import (
	"testing"

	"github.com/abs-int/iva/lang"
)

const loopProgram = `{
  "kind": "Sequence",
  "children": [
    {"kind": "Declaration", "children": [{"kind": "Variable", "value": "i"}]},
    {"kind": "Assignment", "children": [
      {"kind": "Variable", "value": "i"},
      {"kind": "Integer", "value": 0}
    ]},
    {"kind": "WhileLoop", "children": [
      {"kind": "LogicOp", "value": "LT", "children": [
        {"kind": "Variable", "value": "i"},
        {"kind": "Integer", "value": 10}
      ]},
      {"kind": "Sequence", "children": [
        {"kind": "Assignment", "children": [
          {"kind": "Variable", "value": "i"},
          {"kind": "ArithOp", "value": "ADD", "children": [
            {"kind": "Variable", "value": "i"},
            {"kind": "Integer", "value": 1}
          ]}
        ]}
      ]}
    ]},
    {"kind": "PostCondition", "children": [
      {"kind": "LogicOp", "value": "GEQ", "children": [
        {"kind": "Variable", "value": "i"},
        {"kind": "Integer", "value": 10}
      ]}
    ]}
  ]
}`

func TestDecodeProgram(t *testing.T) {
	root, err := DecodeProgram([]byte(loopProgram))
	if err != nil {
		t.Fatal(err)
	}
	if root.Kind != lang.Sequence || len(root.Children) != 4 {
		t.Fatalf("root %s with %d children, expected a 4-statement sequence",
			root.Kind, len(root.Children))
	}

	loop := root.Children[2]
	if loop.Kind != lang.WhileLoop || loop.Guard().Logic != lang.Lt {
		t.Errorf("third statement %s, expected a while loop guarded by <", loop)
	}
	if vars := lang.Vars(root); len(vars) != 1 || vars[0] != "i" {
		t.Errorf("declared variables %v, expected [i]", vars)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", `{"kind": }`},
		{"unknown kind", `{"kind": "Sequence", "children": [{"kind": "GotoStatement"}]}`},
		{"unknown operator", `{"kind": "Sequence", "children": [
			{"kind": "Assignment", "children": [
				{"kind": "Variable", "value": "x"},
				{"kind": "ArithOp", "value": "MOD", "children": [
					{"kind": "Integer", "value": 1}, {"kind": "Integer", "value": 2}]}]}]}`},
		{"integer payload on variable", `{"kind": "Sequence", "children": [
			{"kind": "Assignment", "children": [
				{"kind": "Variable", "value": 5},
				{"kind": "Integer", "value": 1}]}]}`},
		{"ill-formed shape", `{"kind": "Sequence", "children": [
			{"kind": "Assignment", "children": [{"kind": "Variable", "value": "x"}]}]}`},
	}

	for _, test := range tests {
		if _, err := DecodeProgram([]byte(test.src)); err == nil {
			t.Errorf("%s: expected a decoding error", test.name)
		}
	}
}
