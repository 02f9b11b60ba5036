// Package arena provides the graph store for parity games.
//
// # Overview
//
// A parity game is played on an arena: a finite directed graph whose vertices
// are each owned by one of two players ([Even] or [Odd]) and labelled with a
// non-negative priority. The owner of a vertex picks the outgoing edge taken
// when a play reaches it. Plays are infinite, so every vertex must have at
// least one outgoing edge.
//
// Vertices are stored densely and addressed by integer id (0..N-1). Edges are
// plain id references kept on both endpoints: a vertex records the targets of
// its outgoing edges and the sources of its incoming edges. Nothing holds a
// pointer to another vertex, so cyclic games carry no cyclic ownership.
//
// # Basic Usage
//
//	a := arena.New(2)
//	_ = a.SetOwner(0, arena.Even)
//	_ = a.SetPriority(0, 0)
//	_ = a.SetOwner(1, arena.Odd)
//	_ = a.SetPriority(1, 1)
//	_ = a.AddEdge(0, 1)
//	_ = a.AddEdge(1, 0)
//	if err := a.Validate(); err != nil {
//	    // every vertex needs a successor
//	}
//
// # Mutation and Solving
//
// Arenas are mutable while being built (usually by the pkg/io parsers) and
// are treated as read-only once handed to a solver. [Arena.Validate] checks
// the solver's preconditions: dense ids, valid endpoints and at least one
// outgoing edge per vertex.
//
// # Concurrency
//
// Arena instances are not safe for concurrent mutation. Concurrent reads of
// an arena that is no longer modified are safe.
package arena
