// Package pkg provides the libraries behind papg, a parity game solver
// built on Jurdziński's small progress measures.
//
// # Overview
//
// A parity game is played by two players, even and odd, who move a token
// along the edges of a directed graph whose vertices carry priorities.
// Under the min-parity convention a play is won by even when the smallest
// priority seen infinitely often is even. Solving a game means computing
// the winner of every vertex.
//
// # Architecture
//
// The typical data flow:
//
//	PGSolver text / JSON
//	         ↓
//	    [io] package (parse into an arena)
//	         ↓
//	    [arena] package (vertices, owners, priorities, edges)
//	         ↓
//	    [solver] package (lift measures with a strategy)
//	         ↓
//	    [render] package (DOT, SVG, PNG, PDF coloured by winner)
//
// [pipeline] wires these steps together behind a [cache], and [bench] runs
// every strategy over a set of games to compare lift counts.
//
// # Quick Start
//
//	import (
//	    pgio "github.com/matzehuels/papg/pkg/io"
//	    "github.com/matzehuels/papg/pkg/solver"
//	)
//
//	a, err := pgio.ImportFile("games/elevator.gm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s := solver.New(a, solver.WithSeed(1))
//	winners, err := s.Solve(solver.StrategyRecursive)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(winners, s.Stats().Lifts)
//
// # Packages
//
// [arena] - The game graph: vertices with owner, priority and label, and
// the edges between them.
//
// [io] - PGSolver text and JSON readers and writers.
//
// [render] - DOT and SVG output of a solved game, plus PNG and PDF
// conversion.
//
// [measure] - Progress measures: the bounded tuples, their comparison,
// truncation and increment.
//
// [solver] - The lift operator and the thirteen lifting strategies.
//
// [analysis] - Structural summaries using gonum: degree statistics, strongly
// connected components and PageRank hubs.
//
// [observability] - Hooks for load, solve, render, cache and HTTP events.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [buildinfo] - Version information set at link time.
//
// [io]: https://pkg.go.dev/github.com/matzehuels/papg/pkg/io
// [arena]: https://pkg.go.dev/github.com/matzehuels/papg/pkg/arena
// [solver]: https://pkg.go.dev/github.com/matzehuels/papg/pkg/solver
// [render]: https://pkg.go.dev/github.com/matzehuels/papg/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/papg/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/papg/pkg/cache
// [bench]: https://pkg.go.dev/github.com/matzehuels/papg/pkg/bench
// [measure]: https://pkg.go.dev/github.com/matzehuels/papg/pkg/measure
// [analysis]: https://pkg.go.dev/github.com/matzehuels/papg/pkg/analysis
// [observability]: https://pkg.go.dev/github.com/matzehuels/papg/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/papg/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/papg/pkg/buildinfo
package pkg
