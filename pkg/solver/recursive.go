package solver

// liftRecursive lifts set until a pass over it changes nothing. When a pass
// changes only some of the set, those vertices are stabilized first by a
// nested call before the next pass over the whole set.
func (s *Solver) liftRecursive(set []int, depth int) {
	s.stats.MaxRecursionDepth = max(s.stats.MaxRecursionDepth, depth)

	changed := make([]int, 0, len(set))
	for {
		changed = changed[:0]
		for _, v := range set {
			if s.locked[v] || s.measures[v].IsTop() {
				continue
			}
			if !s.Lift(v) {
				continue
			}
			changed = append(changed, v)
			if s.hybrid && s.measures[v].IsTop() {
				s.lock(v)
				s.propagateLocks([]int{v})
			}
		}
		if len(changed) == 0 {
			return
		}
		if len(changed) < len(set) {
			s.liftRecursive(changed, depth+1)
		}
	}
}
