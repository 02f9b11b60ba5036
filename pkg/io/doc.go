// Package io reads and writes parity games.
//
// # PGSolver Format
//
// The text format used by PGSolver and most parity game benchmarks:
//
//	parity 3;
//	0 2 0 1,2 "a";
//	1 1 1 0;
//	2 0 0 2;
//	3 3 1 0,3;
//
// The optional header names the largest vertex id. An optional "start <id>;"
// line is accepted and ignored. Each vertex line holds the id, the priority,
// the owner (0 for even, 1 for odd), a comma separated successor list and an
// optional quoted label, terminated by a semicolon. Vertex lines may come in
// any order, but together they must cover every id from 0 to the largest one
// exactly once.
//
// # JSON Format
//
//	{
//	  "vertices": [
//	    {"id": 0, "owner": "even", "priority": 2, "successors": [1, 2], "label": "a"},
//	    {"id": 1, "owner": "odd", "priority": 1, "successors": [0], "winner": "odd"}
//	  ]
//	}
//
// The winner field is written by [WriteJSON] when a solution is supplied and
// ignored on import.
//
// # Import
//
// [ImportFile] picks the format from the file extension (.json, anything
// else is PGSolver text) and transparently decompresses a trailing .gz:
//
//	game, err := io.ImportFile("games/elevator.gm.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Every importer validates the resulting arena with [arena.Arena.Validate],
// so a game with a vertex that has no successor never reaches the solver.
// Errors are wrapped with the line or vertex that caused them; use errors.Is
// with [ErrSyntax], [ErrDuplicateVertex] or [ErrMissingVertex].
//
// # Export
//
// [WritePGSolver] produces canonical text: vertices in id order, one line
// each. Two arenas with the same structure write identical bytes, which the
// solution cache relies on for its keys.
package io
