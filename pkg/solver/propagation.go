package solver

import "github.com/matzehuels/papg/pkg/arena"

// propagate locks every vertex whose measure is settled by a self-loop,
// spreads locks to predecessors and lifts the remaining vertices
// recursively. With hybrid set, every vertex the recursive phase drives to
// Top is locked as well and spreads further locks.
func (s *Solver) propagate(hybrid bool) {
	var queue []int
	for v := range s.arena.Size() {
		if s.settledBySelfLoop(v) {
			s.liftToFixpoint(v)
			s.lock(v)
			queue = append(queue, v)
		}
	}
	s.propagateLocks(queue)
	s.logger.Debug("locking pass finished", "locked", s.stats.Locked, "policy", s.policy)

	unlocked := make([]int, 0, s.arena.Size()-s.stats.Locked)
	for v := range s.arena.Size() {
		if !s.locked[v] {
			unlocked = append(unlocked, v)
		}
	}

	s.hybrid = hybrid
	defer func() { s.hybrid = false }()
	s.liftRecursive(unlocked, 0)
}

// settledBySelfLoop reports whether the self-loop of v alone decides its
// measure: it is the only edge, or the owner can stay forever on a priority
// of its own parity.
func (s *Solver) settledBySelfLoop(v int) bool {
	vert := s.arena.Vertex(v)
	if vert.OutDegree() > 1 && vert.IsOwnerEven() != vert.IsPriorityEven() {
		return false
	}
	return s.arena.HasSelfLoop(v)
}

// propagateLocks visits the predecessors of every queued locked vertex,
// lifting and locking those whose measure can no longer change. Newly locked
// vertices are queued in turn.
func (s *Solver) propagateLocks(queue []int) {
	for i := 0; i < len(queue); i++ {
		v := queue[i]
		top := s.measures[v].IsTop()
		for _, u := range s.arena.Vertex(v).Incoming {
			if s.locked[u] || !s.lockable(u, top) {
				continue
			}
			s.liftToFixpoint(u)
			s.lock(u)
			queue = append(queue, u)
		}
	}
}

// lockable reports whether predecessor u of a locked vertex may be locked
// once lifted. successorTop is the state of that locked vertex.
func (s *Solver) lockable(u int, successorTop bool) bool {
	pred := s.arena.Vertex(u)
	switch {
	case pred.OutDegree() == 1:
		return true
	case pred.Owner == arena.Odd && successorTop:
		return true
	case s.policy == LockEager:
		return pred.Owner == arena.Even && !successorTop
	}
	return s.allSuccessorsLocked(pred)
}

func (s *Solver) allSuccessorsLocked(v *arena.Vertex) bool {
	for _, w := range v.Outgoing {
		if !s.locked[w] {
			return false
		}
	}
	return true
}

func (s *Solver) lock(v int) {
	if !s.locked[v] {
		s.locked[v] = true
		s.stats.Locked++
	}
}
