package lattice

import (
	"strings"

	"github.com/benbjohnson/immutable"
	"golang.org/x/exp/slices"
)

// Store is a member of the store lattice: a total mapping from variable
// names to intervals, where any unbound variable is implicitly ⊤. Stores
// are persistent; Update returns a new store sharing structure with the
// receiver.
type Store struct {
	mp *immutable.Map[string, Interval]
}

// Store creates an empty store, i.e. ⊤ on every variable.
func (elementFactory) Store() Store {
	return Store{mp: immutable.NewMap[string, Interval](nil)}
}

// StoreTop creates a store binding every given variable to ⊤.
func (ef elementFactory) StoreTop(vars []string) Store {
	s := ef.Store()
	for _, x := range vars {
		s = s.Update(x, intervalLattice.Top())
	}
	return s
}

// StoreBot creates a store binding every given variable to ⊥,
// representing a program point not yet reached by the analysis.
func (ef elementFactory) StoreBot(vars []string) Store {
	s := ef.Store()
	for _, x := range vars {
		s = s.Update(x, intervalLattice.Bot())
	}
	return s
}

// Get retrieves the interval bound at the given variable, or ⊤ if the
// variable is unbound.
func (e Store) Get(x string) Interval {
	if i, found := e.mp.Get(x); found {
		return i
	}
	return intervalLattice.Top()
}

// Update returns a store with an updated binding for the given variable.
func (e Store) Update(x string, i Interval) Store {
	return Store{mp: e.mp.Set(x, i)}
}

// Keys returns the bound variables in sorted order.
func (e Store) Keys() []string {
	keys := make([]string, 0, e.mp.Len())
	iter := e.mp.Iterator()
	for !iter.Done() {
		k, _, _ := iter.Next()
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// keyUnion returns the sorted union of the bound variables of two stores.
func keyUnion(e1, e2 Store) []string {
	seen := map[string]bool{}
	keys := []string{}
	for _, e := range []Store{e1, e2} {
		iter := e.mp.Iterator()
		for !iter.Done() {
			k, _, _ := iter.Next()
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	slices.Sort(keys)
	return keys
}

// IsBot checks whether the store is unreachable, i.e. some variable is
// bound to ⊥.
func (e Store) IsBot() bool {
	iter := e.mp.Iterator()
	for !iter.Done() {
		_, i, _ := iter.Next()
		if i.IsBot() {
			return true
		}
	}
	return false
}

// Leq computes σ1 ⊑ σ2 point-wise over the union of bound variables.
func (e1 Store) Leq(e2 Store) bool {
	for _, x := range keyUnion(e1, e2) {
		if !e1.Get(x).Leq(e2.Get(x)) {
			return false
		}
	}
	return true
}

// Eq checks store equality after normalization: a variable bound to ⊤ is
// indistinguishable from an unbound one.
func (e1 Store) Eq(e2 Store) bool {
	for _, x := range keyUnion(e1, e2) {
		if !e1.Get(x).Eq(e2.Get(x)) {
			return false
		}
	}
	return true
}

// MonoJoin computes σ1 ⊔ σ2 point-wise over the union of bound variables.
// A variable unbound on either side counts as ⊤, so joins preserve ⊤.
func (e1 Store) MonoJoin(e2 Store) Store {
	res := elFact.Store()
	for _, x := range keyUnion(e1, e2) {
		res = res.Update(x, e1.Get(x).Join(e2.Get(x)))
	}
	return res
}

// MonoMeet computes σ1 ⊓ σ2 point-wise over the union of bound variables.
func (e1 Store) MonoMeet(e2 Store) Store {
	res := elFact.Store()
	for _, x := range keyUnion(e1, e2) {
		res = res.Update(x, e1.Get(x).Meet(e2.Get(x)))
	}
	return res
}

func (e Store) String() string {
	strs := []string{}
	for _, x := range e.Keys() {
		strs = append(strs, colorize.Key(x)+" ↦ "+e.Get(x).String())
	}
	if len(strs) == 0 {
		return "[]"
	}
	return "[ " + strings.Join(strs, ", ") + " ]"
}
