// Package analysis computes structural summaries of parity games.
//
// A [Summary] reports sizes, owner and priority distributions, degree
// statistics, the strongly connected components of the game graph and the
// vertices with the highest PageRank. The graph algorithms come from gonum;
// the arena is converted into a [simple.DirectedGraph] for each call.
//
// Summaries are cheap compared to solving and are shown by "papg info"
// before deciding which strategy to run.
package analysis

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/papg/pkg/arena"
)

const (
	pageRankDamping   = 0.85
	pageRankTolerance = 1e-6
)

// Summary describes the structure of one game.
type Summary struct {
	Vertices    int `json:"vertices"`
	Edges       int `json:"edges"`
	MaxPriority int `json:"max_priority"`
	EvenOwned   int `json:"even_owned"`
	OddOwned    int `json:"odd_owned"`
	SelfLoops   int `json:"self_loops"`

	// PriorityHistogram counts vertices per priority 0..MaxPriority.
	PriorityHistogram []int `json:"priority_histogram"`

	MaxOutDegree  int     `json:"max_out_degree"`
	MaxInDegree   int     `json:"max_in_degree"`
	MeanOutDegree float64 `json:"mean_out_degree"`
	StdOutDegree  float64 `json:"std_out_degree"`

	// SCCs is the number of strongly connected components. A component is
	// nontrivial if it has more than one vertex or a self-loop; only those
	// can host an infinite play.
	SCCs           int `json:"sccs"`
	NontrivialSCCs int `json:"nontrivial_sccs"`
	LargestSCC     int `json:"largest_scc"`

	// Hubs lists up to [Options.Hubs] vertex ids by decreasing PageRank.
	Hubs []int `json:"hubs,omitempty"`
}

// Options configures [Summarize].
type Options struct {
	// Hubs is the number of top PageRank vertices to report. Zero disables
	// the PageRank computation.
	Hubs int
}

// Summarize analyses a.
func Summarize(a *arena.Arena, opts Options) Summary {
	s := Summary{
		Vertices:          a.Size(),
		Edges:             a.EdgeCount(),
		MaxPriority:       a.MaxPriority(),
		EvenOwned:         a.CountOwnedBy(arena.Even),
		OddOwned:          a.CountOwnedBy(arena.Odd),
		PriorityHistogram: a.PriorityHistogram(),
	}
	if a.Size() == 0 {
		return s
	}

	out := make([]float64, a.Size())
	for i, v := range a.Vertices() {
		out[i] = float64(v.OutDegree())
		s.MaxOutDegree = max(s.MaxOutDegree, v.OutDegree())
		s.MaxInDegree = max(s.MaxInDegree, v.InDegree())
		if a.HasSelfLoop(i) {
			s.SelfLoops++
		}
	}
	s.MeanOutDegree, s.StdOutDegree = stat.MeanStdDev(out, nil)
	if a.Size() == 1 {
		s.StdOutDegree = 0
	}

	g := Graph(a)
	sccs := topo.TarjanSCC(g)
	s.SCCs = len(sccs)
	for _, c := range sccs {
		s.LargestSCC = max(s.LargestSCC, len(c))
		if len(c) > 1 || a.HasSelfLoop(int(c[0].ID())) {
			s.NontrivialSCCs++
		}
	}

	if opts.Hubs > 0 {
		s.Hubs = hubs(g, opts.Hubs)
	}
	return s
}

// Components returns the strongly connected components of a as sorted id
// lists, largest first. Ties are broken by the smallest id.
func Components(a *arena.Arena) [][]int {
	sccs := topo.TarjanSCC(Graph(a))
	out := make([][]int, len(sccs))
	for i, c := range sccs {
		ids := make([]int, len(c))
		for j, n := range c {
			ids[j] = int(n.ID())
		}
		slices.Sort(ids)
		out[i] = ids
	}
	slices.SortFunc(out, func(x, y []int) int {
		if c := cmp.Compare(len(y), len(x)); c != 0 {
			return c
		}
		return cmp.Compare(x[0], y[0])
	})
	return out
}

// Graph converts a into a gonum directed graph with one node per vertex id.
// Parallel edges collapse into one and self-loops are left out, since the
// simple graph cannot represent them; use [arena.Arena.HasSelfLoop] instead.
func Graph(a *arena.Arena) *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for i := range a.Size() {
		g.AddNode(simple.Node(i))
	}
	for _, v := range a.Vertices() {
		for _, w := range v.Outgoing {
			if w == v.ID {
				continue
			}
			g.SetEdge(simple.Edge{F: simple.Node(v.ID), T: simple.Node(w)})
		}
	}
	return g
}

func hubs(g graph.Directed, n int) []int {
	rank := network.PageRank(g, pageRankDamping, pageRankTolerance)
	ids := make([]int, 0, len(rank))
	for id := range rank {
		ids = append(ids, int(id))
	}
	slices.SortFunc(ids, func(x, y int) int {
		if c := cmp.Compare(rank[int64(y)], rank[int64(x)]); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	})
	return ids[:min(n, len(ids))]
}
