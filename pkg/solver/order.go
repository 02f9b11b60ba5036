package solver

import (
	"cmp"
	"slices"
)

func (s *Solver) inputOrder() []int {
	order := make([]int, s.arena.Size())
	for i := range order {
		order[i] = i
	}
	return order
}

// priorityOrder returns the ids sorted by ascending priority, ties by id.
func (s *Solver) priorityOrder() []int {
	order := s.inputOrder()
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(s.arena.Vertex(a).Priority, s.arena.Vertex(b).Priority)
	})
	return order
}

// incomingOrder returns the ids sorted by descending in-degree, ties by id.
func (s *Solver) incomingOrder() []int {
	order := s.inputOrder()
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(s.arena.Vertex(b).InDegree(), s.arena.Vertex(a).InDegree())
	})
	return order
}

// sweepReturning walks order and starts over from the beginning after every
// change, until it gets through without one.
func (s *Solver) sweepReturning(order []int) {
	for i := 0; i < len(order); {
		v := order[i]
		if !s.measures[v].IsTop() && s.Lift(v) {
			i = 0
			continue
		}
		i++
	}
}

// sweepNonReturning walks all of order per pass until a pass changes nothing.
func (s *Solver) sweepNonReturning(order []int) {
	for s.sweepOnce(order) {
	}
}

func (s *Solver) sweepOnce(order []int) bool {
	changed := false
	for _, v := range order {
		if !s.measures[v].IsTop() && s.Lift(v) {
			changed = true
		}
	}
	return changed
}

// liftRandom picks vertices with replacement. A vertex is finished once it
// was picked without changing; any change unfinishes every vertex.
func (s *Solver) liftRandom() {
	n := s.arena.Size()
	if n == 0 {
		return
	}
	finished := make([]bool, n)
	remaining := n
	for remaining > 0 {
		v := s.rng.Intn(n)
		if !s.measures[v].IsTop() && s.Lift(v) {
			clear(finished)
			remaining = n
			continue
		}
		if !finished[v] {
			finished[v] = true
			remaining--
		}
	}
}

func (s *Solver) liftRandomNonReturning() {
	n := s.arena.Size()
	if n == 0 {
		return
	}
	for s.sweepOnce(s.rng.Perm(n)) {
	}
}
