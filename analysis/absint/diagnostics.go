package absint

import (
	"encoding/json"
	"fmt"
	"io"

	L "github.com/abs-int/iva/analysis/lattice"
	"github.com/abs-int/iva/lang"
	"github.com/abs-int/iva/utils"

	"github.com/fatih/color"
)

// RecordKind classifies the records of an analysis report.
type RecordKind uint8

const (
	PossibleOverflow RecordKind = iota
	PossibleDivisionByZero
	InfeasibleBranch
	AssertionVerified
	AssertionPossiblyViolated
	AssertionViolated
)

// Category is the stable kebab-case name of the record kind, used both in
// reports and to match suppressed warning categories in the configuration.
func (k RecordKind) Category() string {
	switch k {
	case PossibleOverflow:
		return "possible-overflow"
	case PossibleDivisionByZero:
		return "possible-division-by-zero"
	case InfeasibleBranch:
		return "infeasible-branch"
	case AssertionVerified:
		return "assertion-verified"
	case AssertionPossiblyViolated:
		return "assertion-possible-violation"
	case AssertionViolated:
		return "assertion-violated"
	}
	return fmt.Sprintf("unknown(%d)", k)
}

func (k RecordKind) String() string {
	col := colorize.Warning
	switch k {
	case AssertionVerified:
		col = colorize.Good
	case AssertionViolated:
		col = colorize.Bad
	}
	return col(k.Category())
}

// Record is one entry of an analysis report: a sound warning or the
// verdict on a post-condition. Every record carries the index of the
// location it was produced at and the AST node it concerns, plus either
// an interval (warnings, counter-examples) or a store snapshot.
type Record struct {
	Kind RecordKind
	Loc  int
	Node *lang.Node

	Interval    L.Interval
	HasInterval bool
	Store       L.Store
	HasStore    bool
}

func (r Record) String() string {
	s := fmt.Sprintf("%s at location %d: %s", r.Kind, r.Loc, r.Node)
	if r.HasInterval {
		s += fmt.Sprintf(", value ∈ %s", r.Interval)
	}
	if r.HasStore {
		s += fmt.Sprintf(", store %s", r.Store)
	}
	return s
}

// Report is the result of one analysis run.
type Report struct {
	Records []Record
	// Iterations is the number of fixpoint sweeps performed, excluding
	// the post-stabilization verification sweep.
	Iterations int
}

// Assertions partitions the report's assertion verdicts into counts of
// verified, possibly violated and violated post-conditions.
func (r *Report) Assertions() (verified, possible, violated int) {
	for _, rec := range r.Records {
		switch rec.Kind {
		case AssertionVerified:
			verified++
		case AssertionPossiblyViolated:
			possible++
		case AssertionViolated:
			violated++
		}
	}
	return
}

// WriteText renders the report as human-readable lines.
func (r *Report) WriteText(w io.Writer) error {
	for _, rec := range r.Records {
		if _, err := fmt.Fprintln(w, rec); err != nil {
			return err
		}
	}
	verified, possible, violated := r.Assertions()
	_, err := fmt.Fprintf(w, "%d assertions: %d verified, %d possible violations, %d violated (%d iterations)\n",
		verified+possible+violated, verified, possible, violated, r.Iterations)
	return err
}

type recordJSON struct {
	Kind     string `json:"kind"`
	Location int    `json:"location"`
	Node     int    `json:"node"`
	Text     string `json:"text"`
	Interval string `json:"interval,omitempty"`
	Store    string `json:"store,omitempty"`
}

// WriteJSON renders the report as a stream of JSON records.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, rec := range r.Records {
		out := recordJSON{
			Kind:     rec.Kind.Category(),
			Location: rec.Loc,
			Node:     rec.Node.ID,
			Text:     rec.Node.String(),
		}
		if rec.HasInterval {
			out.Interval = rec.Interval.String()
		}
		if rec.HasStore {
			out.Store = rec.Store.String()
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}

var colorize = struct {
	Good    func(...interface{}) string
	Bad     func(...interface{}) string
	Warning func(...interface{}) string
}{
	Good: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgGreen).SprintFunc())(is...)
	},
	Bad: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiRed).SprintFunc())(is...)
	},
	Warning: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgYellow).SprintFunc())(is...)
	},
}
