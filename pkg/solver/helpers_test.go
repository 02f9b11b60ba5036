package solver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/papg/pkg/arena"
)

type vspec struct {
	owner    arena.Player
	priority int
	succ     []int
}

func buildGame(t testing.TB, vs []vspec) *arena.Arena {
	t.Helper()
	a := arena.New(len(vs))
	for id, v := range vs {
		require.NoError(t, a.SetOwner(id, v.owner))
		require.NoError(t, a.SetPriority(id, v.priority))
		for _, w := range v.succ {
			require.NoError(t, a.AddEdge(id, w))
		}
	}
	require.NoError(t, a.Validate())
	return a
}

// randomGame builds a game with n vertices, priorities in 0..maxPriority and
// one to three successors per vertex.
func randomGame(t testing.TB, r *rand.Rand, n, maxPriority int) *arena.Arena {
	t.Helper()
	vs := make([]vspec, n)
	for i := range vs {
		vs[i].owner = arena.Player(r.Intn(2))
		vs[i].priority = r.Intn(maxPriority + 1)
		for range 1 + r.Intn(3) {
			vs[i].succ = append(vs[i].succ, r.Intn(n))
		}
	}
	return buildGame(t, vs)
}

// zielonka solves a under the min-parity condition with the classic
// recursive algorithm. It shares no code with the solver.
func zielonka(a *arena.Arena) []arena.Player {
	all := make([]bool, a.Size())
	for i := range all {
		all[i] = true
	}
	wEven, _ := zielonkaSolve(a, all)
	out := make([]arena.Player, a.Size())
	for i := range out {
		if !wEven[i] {
			out[i] = arena.Odd
		}
	}
	return out
}

func zielonkaSolve(a *arena.Arena, set []bool) (wEven, wOdd []bool) {
	n := len(set)
	wEven, wOdd = make([]bool, n), make([]bool, n)
	minPrio := -1
	for v, in := range set {
		if in && (minPrio < 0 || a.Vertex(v).Priority < minPrio) {
			minPrio = a.Vertex(v).Priority
		}
	}
	if minPrio < 0 {
		return wEven, wOdd
	}
	player := arena.Player(minPrio % 2)

	target := make([]bool, n)
	for v, in := range set {
		target[v] = in && a.Vertex(v).Priority == minPrio
	}
	attr := attractor(a, set, target, player)
	sub0, sub1 := zielonkaSolve(a, minus(set, attr))
	own, opp := sub0, sub1
	if player == arena.Odd {
		own, opp = sub1, sub0
	}

	if isEmpty(opp) {
		if player == arena.Even {
			return set, wOdd
		}
		return wEven, set
	}

	oppAttr := attractor(a, set, opp, player.Opponent())
	sub0, sub1 = zielonkaSolve(a, minus(set, oppAttr))
	own, opp = sub0, sub1
	if player == arena.Odd {
		own, opp = sub1, sub0
	}
	opp = union(opp, oppAttr)
	if player == arena.Even {
		return own, opp
	}
	return opp, own
}

// attractor returns the vertices of set from which p can force a visit to
// target while staying inside set.
func attractor(a *arena.Arena, set, target []bool, p arena.Player) []bool {
	attr := make([]bool, len(set))
	copy(attr, target)
	for grown := true; grown; {
		grown = false
		for v, in := range set {
			if !in || attr[v] {
				continue
			}
			vert := a.Vertex(v)
			some, all := false, true
			for _, w := range vert.Outgoing {
				if !set[w] {
					continue
				}
				if attr[w] {
					some = true
				} else {
					all = false
				}
			}
			if vert.Owner == p && some || vert.Owner != p && all {
				attr[v] = true
				grown = true
			}
		}
	}
	return attr
}

func minus(a, b []bool) []bool {
	out := make([]bool, len(a))
	for i := range a {
		out[i] = a[i] && !b[i]
	}
	return out
}

func union(a, b []bool) []bool {
	out := make([]bool, len(a))
	for i := range a {
		out[i] = a[i] || b[i]
	}
	return out
}

func isEmpty(s []bool) bool {
	for _, in := range s {
		if in {
			return false
		}
	}
	return true
}
