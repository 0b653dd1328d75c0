package lattice

import "testing"

func TestStoreGetUpdate(t *testing.T) {
	lat := Create().Lattice().Interval()
	itv := Create().Element().Interval

	s := Elements().Store()
	if !s.Get("x").Eq(lat.Top()) {
		t.Errorf("unbound variable must read as ⊤, got %s", s.Get("x"))
	}

	s = s.Update("x", itv(b(0), b(5)))
	if !s.Get("x").Eq(itv(b(0), b(5))) {
		t.Errorf("x ↦ %s, expected [0, 5]", s.Get("x"))
	}

	// Persistence: updates do not leak into the original store.
	s2 := s.Update("x", itv(b(7), b(9)))
	if !s.Get("x").Eq(itv(b(0), b(5))) || !s2.Get("x").Eq(itv(b(7), b(9))) {
		t.Errorf("store update is not persistent")
	}
}

func TestStoreEqNormalizes(t *testing.T) {
	lat := Create().Lattice().Interval()
	itv := Create().Element().Interval

	s1 := Elements().Store().Update("x", lat.Top())
	s2 := Elements().Store()
	if !s1.Eq(s2) {
		t.Errorf("a variable bound to ⊤ must equal an unbound one")
	}

	s3 := s2.Update("x", itv(b(0), b(0)))
	if s1.Eq(s3) {
		t.Errorf("%s = %s, expected inequality", s1, s3)
	}
}

func TestStoreJoinMeet(t *testing.T) {
	lat := Create().Lattice().Interval()
	itv := Create().Element().Interval

	s1 := Elements().Store().
		Update("x", itv(b(0), b(5))).
		Update("y", itv(b(1), b(1)))
	s2 := Elements().Store().
		Update("x", itv(b(3), b(9)))

	j := s1.MonoJoin(s2)
	if !j.Get("x").Eq(itv(b(0), b(9))) {
		t.Errorf("join x ↦ %s, expected [0, 9]", j.Get("x"))
	}
	// y is unbound in s2, i.e. ⊤; the join must preserve ⊤.
	if !j.Get("y").Eq(lat.Top()) {
		t.Errorf("join y ↦ %s, expected ⊤", j.Get("y"))
	}

	m := s1.MonoMeet(s2)
	if !m.Get("x").Eq(itv(b(3), b(5))) {
		t.Errorf("meet x ↦ %s, expected [3, 5]", m.Get("x"))
	}
	if !m.Get("y").Eq(itv(b(1), b(1))) {
		t.Errorf("meet y ↦ %s, expected [1, 1]", m.Get("y"))
	}
}

func TestStoreLeqBot(t *testing.T) {
	lat := Create().Lattice().Interval()
	itv := Create().Element().Interval

	s1 := Elements().Store().Update("x", itv(b(1), b(2)))
	s2 := Elements().Store().Update("x", itv(b(0), b(5)))
	if !s1.Leq(s2) || s2.Leq(s1) {
		t.Errorf("store ordering broken for %s and %s", s1, s2)
	}

	bot := Elements().StoreBot([]string{"x", "y"})
	if !bot.IsBot() {
		t.Errorf("%s must be ⊥", bot)
	}
	if !bot.Leq(s1) {
		t.Errorf("⊥ store must be below %s", s1)
	}
	if s1.IsBot() {
		t.Errorf("%s misclassified as ⊥", s1)
	}

	half := s1.Update("y", lat.Bot())
	if !half.IsBot() {
		t.Errorf("a single ⊥ binding must make the store ⊥")
	}
}
