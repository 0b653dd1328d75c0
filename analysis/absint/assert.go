package absint

// checkAssertions discharges every post-condition against the store of
// the program's final location. A post-condition `e op f` is verified iff
// filtering the abstract value of `e` by the comparison does not narrow
// it, i.e. every concretization satisfies the condition. A filter
// collapsing to ⊥ means no concretization satisfies it.
func (a *analysis) checkAssertions() {
	last := a.graph.Last()
	final := a.store(last)

	for _, post := range a.graph.Posts {
		cond := post.Children[0]
		lhs := a.evalArith(cond.Children[0], final, last)
		rhs := a.evalArith(cond.Children[1], final, last)
		filtered := lhs.Filter(cond.Logic, rhs)

		switch {
		case filtered.Eq(lhs):
			a.warnStore(AssertionVerified, last, post, final)
		case filtered.IsBot():
			a.warnStore(AssertionViolated, last, post, final)
		default:
			// The unfiltered left-hand value is the counter-example: it
			// contains concretizations outside the filtered interval.
			if a.shouldEmit(AssertionPossiblyViolated, post.ID, last) {
				a.report.Records = append(a.report.Records, Record{
					Kind:        AssertionPossiblyViolated,
					Loc:         last,
					Node:        post,
					Interval:    lhs,
					HasInterval: true,
					Store:       final,
					HasStore:    true,
				})
			}
		}
	}
}
