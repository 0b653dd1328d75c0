package absint

import "fmt"

// BugError reports a defect in the analyzer itself, as opposed to a
// property of the analyzed program. It is raised when the fixpoint
// iteration exceeds the configured ceiling, i.e. widening fails to
// stabilize an ascending chain, and when the verification sweep after
// stabilization changes a store.
type BugError struct {
	Reason string
}

func (e *BugError) Error() string {
	return "analyzer bug: " + e.Reason
}

// sweep evaluates every location once, in index order, and reports
// whether the pass reached a fixpoint. The ordering is deterministic and
// matches a round-robin chaotic iteration; as every dependency except
// loop back-edges points backwards, straight-line code stabilizes at most
// one sweep after its predecessors.
func (a *analysis) sweep() (stable bool) {
	stable = true
	for i := range a.graph.Locs {
		if a.transfer(i) {
			stable = false
		}
	}
	return stable
}

// solve iterates sweeps until a post-fixpoint is reached, then performs
// one verification sweep with diagnostics enabled. The verification sweep
// must not change any store; if it does, a transfer function is not
// monotone or widening is unsound, and the run is aborted as an analyzer
// bug. Diagnostics are only collected during this final sweep, so
// warnings always describe the stabilized invariants.
func (a *analysis) solve() error {
	for iter := 1; ; iter++ {
		if iter > a.conf.IterationCeiling {
			return &BugError{Reason: fmt.Sprintf(
				"no fixpoint after %d iterations; widening failed to stabilize", a.conf.IterationCeiling)}
		}
		a.report.Iterations = iter
		if a.sweep() {
			break
		}
	}

	a.collect = true
	if !a.sweep() {
		return &BugError{Reason: "post-fixpoint evaluation changed a store"}
	}
	return nil
}
