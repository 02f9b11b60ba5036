package solver

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/papg/pkg/arena"
	"github.com/matzehuels/papg/pkg/measure"
)

// DefaultSeed seeds the random strategies when no generator is supplied.
const DefaultSeed int64 = 1

// Stats holds the instrumentation counters of a solver. They have no
// influence on the computed winners.
type Stats struct {
	Lifts             int `json:"lifts"`
	MaxRecursionDepth int `json:"max_recursion_depth"`
	Locked            int `json:"locked"`
}

// Option configures a [Solver].
type Option func(*Solver)

// WithRand sets the generator used by the random strategies.
func WithRand(r *rand.Rand) Option { return func(s *Solver) { s.rng = r } }

// WithSeed seeds a fresh generator for the random strategies. A zero seed
// selects [DefaultSeed].
func WithSeed(seed int64) Option {
	return func(s *Solver) { s.rng = rand.New(rand.NewSource(normalizeSeed(seed))) }
}

// WithLockPolicy selects how aggressively the propagation strategies lock
// predecessors.
func WithLockPolicy(p LockPolicy) Option { return func(s *Solver) { s.policy = p } }

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option { return func(s *Solver) { s.logger = l } }

// Solver lifts progress measures over one arena.
type Solver struct {
	arena    *arena.Arena
	max      *measure.Measure
	measures []measure.Measure

	// scratch space for Lift
	best measure.Measure
	cand measure.Measure

	locked []bool
	hybrid bool

	rng    *rand.Rand
	policy LockPolicy
	logger *log.Logger
	stats  Stats
}

// New creates a solver for a. The maximum measure is built from the number
// of vertices at each odd priority. The arena must satisfy
// [arena.Arena.Validate] and must not change while the solver is in use.
func New(a *arena.Arena, opts ...Option) *Solver {
	s := &Solver{
		arena:  a,
		max:    measure.NewMaximum(a.PriorityHistogram()),
		policy: LockSafe,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(DefaultSeed))
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.measures = make([]measure.Measure, a.Size())
	for i := range s.measures {
		s.measures[i] = measure.New(s.max)
	}
	s.best = measure.New(s.max)
	s.cand = measure.New(s.max)
	s.locked = make([]bool, a.Size())
	return s
}

// Arena returns the game being solved.
func (s *Solver) Arena() *arena.Arena { return s.arena }

// MaxMeasure returns the shared maximum measure.
func (s *Solver) MaxMeasure() *measure.Measure { return s.max }

// LockPolicy returns the configured lock policy.
func (s *Solver) LockPolicy() LockPolicy { return s.policy }

// Measure returns the current measure of vertex v. The returned pointer
// aliases solver state and changes with further lifts.
func (s *Solver) Measure(v int) *measure.Measure { return &s.measures[v] }

// Measures returns a snapshot of every vertex measure in id order.
func (s *Solver) Measures() []measure.Measure {
	out := make([]measure.Measure, len(s.measures))
	for i := range s.measures {
		out[i] = s.measures[i].Clone()
	}
	return out
}

// Reset zeroes every vertex measure and clears all locks.
func (s *Solver) Reset() {
	for i := range s.measures {
		s.measures[i].Reset()
	}
	clear(s.locked)
}

// Winners classifies the current measures: [arena.Odd] for Top, [arena.Even]
// otherwise.
func (s *Solver) Winners() []arena.Player {
	out := make([]arena.Player, len(s.measures))
	for i := range s.measures {
		if s.measures[i].IsTop() {
			out[i] = arena.Odd
		}
	}
	return out
}

// Stats returns the instrumentation counters.
func (s *Solver) Stats() Stats { return s.stats }

// ResetStats zeroes every counter.
func (s *Solver) ResetStats() { s.stats = Stats{} }

// ResetLiftCount zeroes the lift counter.
func (s *Solver) ResetLiftCount() { s.stats.Lifts = 0 }

// ResetMaxRecursionDepth zeroes the recursion depth counter.
func (s *Solver) ResetMaxRecursionDepth() { s.stats.MaxRecursionDepth = 0 }

// ResetLockedCount zeroes the locked vertex counter.
func (s *Solver) ResetLockedCount() { s.stats.Locked = 0 }

// Prog returns the least measure that vertex from needs to satisfy its edge
// to vertex to, given the current measure of to.
func (s *Solver) Prog(from, to int) measure.Measure {
	m := measure.New(s.max)
	s.progInto(&m, from, to)
	return m
}

func (s *Solver) progInto(dst *measure.Measure, from, to int) {
	p := s.arena.Vertex(from).Priority
	must(dst.MakePartialEqualOf(p, &s.measures[to]))
	if p%2 == 0 || dst.IsTop() {
		return
	}
	ok, err := dst.PartialIncrementIfAble(p)
	must(err)
	if !ok {
		dst.MakeTop()
	}
}

// Lift recomputes the measure of v from its successors and reports whether
// it changed. Even owners take the least successor value, odd owners the
// greatest.
func (s *Solver) Lift(v int) bool {
	s.stats.Lifts++
	vert := s.arena.Vertex(v)
	even := vert.Owner == arena.Even

	best := &s.best
	best.Reset()
	if even {
		best.MakeTop()
	}
	cand := &s.cand
	for _, w := range vert.Outgoing {
		s.progInto(cand, v, w)
		if even && cand.Less(best) || !even && cand.Greater(best) {
			best.CopyFrom(cand)
		}
		if !even && best.IsTop() {
			break
		}
	}

	cur := &s.measures[v]
	if best.Equal(cur) {
		return false
	}
	cur.CopyFrom(best)
	return true
}

// liftToFixpoint lifts v until it stops changing.
func (s *Solver) liftToFixpoint(v int) {
	for s.Lift(v) {
	}
}

func must(err error) {
	if err != nil {
		panic("solver: " + err.Error())
	}
}

func normalizeSeed(seed int64) int64 {
	if seed == 0 {
		return DefaultSeed
	}
	return seed
}
