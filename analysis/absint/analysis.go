package absint

import (
	"github.com/abs-int/iva/analysis/cfg"
	"github.com/abs-int/iva/config"
	"github.com/abs-int/iva/lang"
)

// Result bundles the report of an analysis run with the stabilized
// location graph it was computed over.
type Result struct {
	Graph  *cfg.Graph
	Report *Report
}

// Analyze validates a program, builds its location graph, runs the
// fixpoint iteration and checks every post-condition, using the default
// configuration.
func Analyze(program *lang.Node) (*Result, error) {
	return AnalyzeWithConfig(program, config.Default())
}

// AnalyzeWithConfig is Analyze with an explicit configuration.
func AnalyzeWithConfig(program *lang.Node, conf config.Config) (*Result, error) {
	if err := lang.Validate(program); err != nil {
		return nil, err
	}
	g, err := cfg.Build(program)
	if err != nil {
		return nil, err
	}

	a := newAnalysis(g, conf)
	if err := a.solve(); err != nil {
		return nil, err
	}
	a.checkAssertions()

	return &Result{Graph: g, Report: a.report}, nil
}
