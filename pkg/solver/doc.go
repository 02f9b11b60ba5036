// Package solver decides parity games with small progress measures.
//
// A [Solver] keeps one [measure.Measure] per vertex of an [arena.Arena] and
// lifts them towards the least fixpoint of the progress conditions. Once no
// lift changes anything, a vertex whose measure is Top is won by [arena.Odd];
// every other vertex is won by [arena.Even]. Priorities follow the min-parity
// convention: the least priority seen infinitely often decides a play.
//
// # Strategies
//
// The fixpoint does not depend on the order in which vertices are lifted, only
// the amount of work does. [Solver.Solve] accepts any name from [Strategies]:
//
//   - input, random, priority, incoming: sweep the vertices in id order, at
//     random, by ascending priority or by descending in-degree, restarting on
//     every change. The -nonreturning variants finish each sweep and repeat
//     until one sweep changes nothing.
//   - recursive, recursive-priority, recursive-incoming: lift a set until it is
//     stable, recursing into the subset that changed on each pass.
//   - propagation, propagation-hybrid: lock vertices whose final measure is
//     already known, lock their predecessors where that is safe, and solve the
//     rest recursively.
//
// # Usage
//
//	s := solver.New(game, solver.WithSeed(7))
//	winners, err := s.Solve(solver.StrategyRecursive)
//	if err != nil {
//	    return err
//	}
//	stats := s.Stats()
//
// A Solver is not safe for concurrent use. Build one per goroutine; the
// arena itself is only read.
package solver
