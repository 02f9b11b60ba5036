// Package measure implements the bounded lattice used by small progress
// measures.
//
// A [Measure] is a vector indexed by priority. Only odd indices carry a value;
// even indices are conceptually always zero and are not stored. Each odd
// component is bounded by the matching component of a shared maximum, which
// the solver builds once from the number of vertices per odd priority. A
// distinguished Top element sits above every finite vector and absorbs every
// comparison it takes part in.
//
// Vectors are ordered lexicographically with the lowest odd index most
// significant. The partial operations ([Measure.PartialGreater],
// [Measure.PartialIncrementIfAble], [Measure.MakePartialEqualOf]) only look at
// the prefix of odd indices up to a boundary, so an edge update costs time
// proportional to its source priority rather than to the whole vector.
//
// Index and boundary arguments outside the vector fail with [ErrOutOfRange].
// Rejected mutations (writing an even index, exceeding a bound) report false
// and leave the measure unchanged.
//
// Measure values share their component storage when copied by assignment;
// use [Measure.Clone] or [Measure.CopyFrom] to duplicate one.
package measure
