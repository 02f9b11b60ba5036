package solver

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/papg/pkg/arena"
	perrors "github.com/matzehuels/papg/pkg/errors"
)

// Strategy names a solving strategy.
type Strategy string

// Available strategies.
const (
	StrategyInput                Strategy = "input"
	StrategyInputNonReturning    Strategy = "input-nonreturning"
	StrategyRandom               Strategy = "random"
	StrategyRandomNonReturning   Strategy = "random-nonreturning"
	StrategyPriority             Strategy = "priority"
	StrategyPriorityNonReturning Strategy = "priority-nonreturning"
	StrategyIncoming             Strategy = "incoming"
	StrategyIncomingNonReturning Strategy = "incoming-nonreturning"
	StrategyRecursive            Strategy = "recursive"
	StrategyRecursivePriority    Strategy = "recursive-priority"
	StrategyRecursiveIncoming    Strategy = "recursive-incoming"
	StrategyPropagation          Strategy = "propagation"
	StrategyPropagationHybrid    Strategy = "propagation-hybrid"
)

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = StrategyRecursive

var strategies = []Strategy{
	StrategyInput,
	StrategyInputNonReturning,
	StrategyRandom,
	StrategyRandomNonReturning,
	StrategyPriority,
	StrategyPriorityNonReturning,
	StrategyIncoming,
	StrategyIncomingNonReturning,
	StrategyRecursive,
	StrategyRecursivePriority,
	StrategyRecursiveIncoming,
	StrategyPropagation,
	StrategyPropagationHybrid,
}

// Strategies returns every strategy name in a stable order.
func Strategies() []Strategy {
	out := make([]Strategy, len(strategies))
	copy(out, strategies)
	return out
}

// IsRandomized reports whether the strategy draws from the solver's
// generator, so that its work varies with the seed.
func (st Strategy) IsRandomized() bool {
	return st == StrategyRandom || st == StrategyRandomNonReturning
}

// ParseStrategy resolves a strategy name. Matching ignores case and
// surrounding whitespace.
func ParseStrategy(name string) (Strategy, error) {
	n := Strategy(strings.ToLower(strings.TrimSpace(name)))
	for _, st := range strategies {
		if st == n {
			return st, nil
		}
	}
	return "", perrors.New(perrors.ErrCodeInvalidStrategy, "unknown strategy %q", name)
}

// LockPolicy controls when the propagation strategies lock a predecessor of
// a locked vertex.
type LockPolicy int

const (
	// LockSafe only locks a predecessor whose final measure is determined:
	// it has a single edge, it is odd-owned with a Top successor, or all of
	// its successors are locked.
	LockSafe LockPolicy = iota

	// LockEager additionally locks even-owned predecessors of a finite
	// locked vertex regardless of their other successors. It locks more
	// vertices but can freeze a measure below its fixpoint.
	LockEager
)

// String returns "safe" or "eager".
func (p LockPolicy) String() string {
	if p == LockEager {
		return "eager"
	}
	return "safe"
}

// ParseLockPolicy resolves "safe" or "eager". An empty name selects
// [LockSafe].
func ParseLockPolicy(name string) (LockPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "safe":
		return LockSafe, nil
	case "eager":
		return LockEager, nil
	}
	return LockSafe, perrors.New(perrors.ErrCodeInvalidConfig, "unknown lock policy %q (want safe or eager)", name)
}

// Solve runs the named strategy from zeroed measures and returns the winner
// of every vertex in id order. Counters are reset before the run.
func (s *Solver) Solve(st Strategy) ([]arena.Player, error) {
	run, ok := s.strategyFunc(st)
	if !ok {
		return nil, perrors.New(perrors.ErrCodeInvalidStrategy, "unknown strategy %q", string(st))
	}
	return s.run(st, run), nil
}

func (s *Solver) strategyFunc(st Strategy) (func(), bool) {
	switch st {
	case StrategyInput:
		return func() { s.sweepReturning(s.inputOrder()) }, true
	case StrategyInputNonReturning:
		return func() { s.sweepNonReturning(s.inputOrder()) }, true
	case StrategyRandom:
		return s.liftRandom, true
	case StrategyRandomNonReturning:
		return s.liftRandomNonReturning, true
	case StrategyPriority:
		return func() { s.sweepReturning(s.priorityOrder()) }, true
	case StrategyPriorityNonReturning:
		return func() { s.sweepNonReturning(s.priorityOrder()) }, true
	case StrategyIncoming:
		return func() { s.sweepReturning(s.incomingOrder()) }, true
	case StrategyIncomingNonReturning:
		return func() { s.sweepNonReturning(s.incomingOrder()) }, true
	case StrategyRecursive:
		return func() { s.liftRecursive(s.inputOrder(), 0) }, true
	case StrategyRecursivePriority:
		return func() { s.liftRecursive(s.priorityOrder(), 0) }, true
	case StrategyRecursiveIncoming:
		return func() { s.liftRecursive(s.incomingOrder(), 0) }, true
	case StrategyPropagation:
		return func() { s.propagate(false) }, true
	case StrategyPropagationHybrid:
		return func() { s.propagate(true) }, true
	}
	return nil, false
}

func (s *Solver) run(st Strategy, fn func()) []arena.Player {
	s.Reset()
	s.ResetStats()
	s.logger.Debug("solve started", "strategy", st, "vertices", s.arena.Size(), "edges", s.arena.EdgeCount())
	start := time.Now()
	fn()
	winners := s.Winners()
	s.logger.Debug("solve finished",
		"strategy", st,
		"lifts", s.stats.Lifts,
		"depth", s.stats.MaxRecursionDepth,
		"locked", s.stats.Locked,
		"elapsed", time.Since(start))
	return winners
}

// SolveInput lifts in id order, restarting on every change.
func (s *Solver) SolveInput() []arena.Player { return s.mustSolve(StrategyInput) }

// SolveInputNonReturning sweeps in id order until a sweep changes nothing.
func (s *Solver) SolveInputNonReturning() []arena.Player {
	return s.mustSolve(StrategyInputNonReturning)
}

// SolveRandom lifts uniformly random vertices until every vertex has been
// seen unchanged since the last change.
func (s *Solver) SolveRandom() []arena.Player { return s.mustSolve(StrategyRandom) }

// SolveRandomNonReturning sweeps a fresh random permutation until a sweep
// changes nothing.
func (s *Solver) SolveRandomNonReturning() []arena.Player {
	return s.mustSolve(StrategyRandomNonReturning)
}

// SolvePriority lifts by ascending priority, restarting on every change.
func (s *Solver) SolvePriority() []arena.Player { return s.mustSolve(StrategyPriority) }

// SolvePriorityNonReturning sweeps by ascending priority.
func (s *Solver) SolvePriorityNonReturning() []arena.Player {
	return s.mustSolve(StrategyPriorityNonReturning)
}

// SolveIncoming lifts by descending in-degree, restarting on every change.
func (s *Solver) SolveIncoming() []arena.Player { return s.mustSolve(StrategyIncoming) }

// SolveIncomingNonReturning sweeps by descending in-degree.
func (s *Solver) SolveIncomingNonReturning() []arena.Player {
	return s.mustSolve(StrategyIncomingNonReturning)
}

// SolveRecursive lifts recursively over the vertices in id order.
func (s *Solver) SolveRecursive() []arena.Player { return s.mustSolve(StrategyRecursive) }

// SolveRecursivePriority lifts recursively starting from priority order.
func (s *Solver) SolveRecursivePriority() []arena.Player {
	return s.mustSolve(StrategyRecursivePriority)
}

// SolveRecursiveIncoming lifts recursively starting from in-degree order.
func (s *Solver) SolveRecursiveIncoming() []arena.Player {
	return s.mustSolve(StrategyRecursiveIncoming)
}

// SolvePropagation locks settled vertices first and solves the rest
// recursively.
func (s *Solver) SolvePropagation() []arena.Player { return s.mustSolve(StrategyPropagation) }

// SolvePropagationHybrid is SolvePropagation that also locks around every
// vertex the recursive phase drives to Top.
func (s *Solver) SolvePropagationHybrid() []arena.Player {
	return s.mustSolve(StrategyPropagationHybrid)
}

func (s *Solver) mustSolve(st Strategy) []arena.Player {
	w, err := s.Solve(st)
	if err != nil {
		panic(fmt.Sprintf("solver: %v", err))
	}
	return w
}
