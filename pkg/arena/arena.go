package arena

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownVertex is returned when an id does not name a vertex of the arena.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrNegativePriority is returned by [Arena.SetPriority] for priorities below zero.
	ErrNegativePriority = errors.New("priority must not be negative")

	// ErrNoSuccessor is returned by [Arena.Validate] when a vertex has no
	// outgoing edge. Plays are infinite, so such a game is malformed.
	ErrNoSuccessor = errors.New("vertex has no outgoing edge")

	// ErrInvalidEdgeEndpoint is returned by [Arena.Validate] when an edge list
	// references a vertex that doesn't exist, or when the outgoing and incoming
	// lists disagree. This indicates arena corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")
)

// Arena is a dense, id-indexed store of parity game vertices.
//
// The zero value is an empty arena; use [New] to preallocate vertices.
type Arena struct {
	vertices    []Vertex
	edges       int
	maxPriority int
}

// New creates an arena with size vertices. Every vertex starts owned by
// [Even] with priority 0 and no edges.
func New(size int) *Arena {
	a := &Arena{}
	a.Resize(size)
	return a
}

// Resize grows the arena to size vertices. New vertices get default values.
// It returns false, leaving the arena unchanged, if size is not larger than
// the current size.
func (a *Arena) Resize(size int) bool {
	if size <= len(a.vertices) {
		return false
	}
	a.vertices = slices.Grow(a.vertices, size-len(a.vertices))
	for id := len(a.vertices); id < size; id++ {
		a.vertices = append(a.vertices, Vertex{ID: id})
	}
	return true
}

// Size returns the number of vertices.
func (a *Arena) Size() int { return len(a.vertices) }

// EdgeCount returns the number of edges, counting duplicates and self-loops.
func (a *Arena) EdgeCount() int { return a.edges }

// MaxPriority returns the highest priority of any vertex (0 for an empty arena).
func (a *Arena) MaxPriority() int { return a.maxPriority }

// Vertex returns the vertex with the given id. The returned value must not be
// modified; use the Set methods instead. It panics if id is out of range, so
// callers holding ids from another source should check [Arena.Has] first.
func (a *Arena) Vertex(id int) *Vertex { return &a.vertices[id] }

// Has reports whether id names a vertex.
func (a *Arena) Has(id int) bool { return id >= 0 && id < len(a.vertices) }

// Vertices returns all vertices in id order. The slice aliases the arena's
// storage and must not be modified.
func (a *Arena) Vertices() []Vertex { return a.vertices }

// SetOwner sets the owner of a vertex.
func (a *Arena) SetOwner(id int, owner Player) error {
	if !a.Has(id) {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, id)
	}
	a.vertices[id].Owner = owner
	return nil
}

// SetPriority sets the priority of a vertex and updates [Arena.MaxPriority].
func (a *Arena) SetPriority(id, priority int) error {
	if !a.Has(id) {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, id)
	}
	if priority < 0 {
		return fmt.Errorf("%w: vertex %d has priority %d", ErrNegativePriority, id, priority)
	}
	old := a.vertices[id].Priority
	a.vertices[id].Priority = priority
	if priority > a.maxPriority {
		a.maxPriority = priority
	} else if old == a.maxPriority && priority < old {
		a.recomputeMaxPriority()
	}
	return nil
}

// SetLabel sets the display label of a vertex.
func (a *Arena) SetLabel(id int, label string) error {
	if !a.Has(id) {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, id)
	}
	a.vertices[id].Label = label
	return nil
}

// AddEdge adds a directed edge from -> to. Duplicate edges are kept; they do
// not change the outcome of a game.
func (a *Arena) AddEdge(from, to int) error {
	if !a.Has(from) {
		return fmt.Errorf("%w: edge source %d", ErrUnknownVertex, from)
	}
	if !a.Has(to) {
		return fmt.Errorf("%w: edge target %d", ErrUnknownVertex, to)
	}
	a.vertices[from].Outgoing = append(a.vertices[from].Outgoing, to)
	a.vertices[to].Incoming = append(a.vertices[to].Incoming, from)
	a.edges++
	return nil
}

// ClearVertex resets a vertex to its default values and removes every edge
// touching it.
func (a *Arena) ClearVertex(id int) error {
	if !a.Has(id) {
		return fmt.Errorf("%w: %d", ErrUnknownVertex, id)
	}
	v := &a.vertices[id]
	for _, to := range v.Outgoing {
		if to != id {
			a.vertices[to].Incoming = removeAll(a.vertices[to].Incoming, id)
		}
	}
	for _, from := range v.Incoming {
		if from != id {
			a.vertices[from].Outgoing = removeAll(a.vertices[from].Outgoing, id)
		}
	}
	a.edges -= len(v.Outgoing) + len(v.Incoming) - v.selfLoops()
	a.vertices[id] = Vertex{ID: id}
	a.recomputeMaxPriority()
	return nil
}

// HasSelfLoop reports whether vertex id has an edge to itself. The shorter of
// the incoming and outgoing lists is searched.
func (a *Arena) HasSelfLoop(id int) bool {
	v := &a.vertices[id]
	if len(v.Incoming) < len(v.Outgoing) {
		return slices.Contains(v.Incoming, id)
	}
	return slices.Contains(v.Outgoing, id)
}

// CountByPriority returns the number of vertices with the given priority.
func (a *Arena) CountByPriority(priority int) int {
	n := 0
	for i := range a.vertices {
		if a.vertices[i].Priority == priority {
			n++
		}
	}
	return n
}

// PriorityHistogram returns the number of vertices per priority, indexed
// 0..MaxPriority. An empty arena yields a single zero bucket.
func (a *Arena) PriorityHistogram() []int {
	hist := make([]int, a.maxPriority+1)
	for i := range a.vertices {
		hist[a.vertices[i].Priority]++
	}
	return hist
}

// CountOwnedBy returns the number of vertices owned by p.
func (a *Arena) CountOwnedBy(p Player) int {
	n := 0
	for i := range a.vertices {
		if a.vertices[i].Owner == p {
			n++
		}
	}
	return n
}

// OwnedBy returns the ids of the vertices owned by p in ascending order.
func (a *Arena) OwnedBy(p Player) []int {
	var ids []int
	for i := range a.vertices {
		if a.vertices[i].Owner == p {
			ids = append(ids, i)
		}
	}
	return ids
}

// Validate checks the preconditions of the solvers: every vertex id matches
// its position, every edge endpoint exists on both sides, and every vertex
// has at least one outgoing edge. The first violation is returned, wrapped
// with the offending vertex id.
func (a *Arena) Validate() error {
	in := make([]int, len(a.vertices))
	for i := range a.vertices {
		v := &a.vertices[i]
		if v.ID != i {
			return fmt.Errorf("vertex %d: %w: stored id %d", i, ErrInvalidEdgeEndpoint, v.ID)
		}
		if len(v.Outgoing) == 0 {
			return fmt.Errorf("vertex %d: %w", i, ErrNoSuccessor)
		}
		for _, to := range v.Outgoing {
			if !a.Has(to) {
				return fmt.Errorf("vertex %d: %w: target %d", i, ErrInvalidEdgeEndpoint, to)
			}
			in[to]++
		}
	}
	for i := range a.vertices {
		v := &a.vertices[i]
		if len(v.Incoming) != in[i] {
			return fmt.Errorf("vertex %d: %w: %d incoming recorded, %d expected", i, ErrInvalidEdgeEndpoint, len(v.Incoming), in[i])
		}
		for _, from := range v.Incoming {
			if !a.Has(from) {
				return fmt.Errorf("vertex %d: %w: source %d", i, ErrInvalidEdgeEndpoint, from)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the arena.
func (a *Arena) Clone() *Arena {
	c := &Arena{
		vertices:    make([]Vertex, len(a.vertices)),
		edges:       a.edges,
		maxPriority: a.maxPriority,
	}
	for i, v := range a.vertices {
		v.Outgoing = slices.Clone(v.Outgoing)
		v.Incoming = slices.Clone(v.Incoming)
		c.vertices[i] = v
	}
	return c
}

func (a *Arena) recomputeMaxPriority() {
	a.maxPriority = 0
	for i := range a.vertices {
		a.maxPriority = max(a.maxPriority, a.vertices[i].Priority)
	}
}

func removeAll(ids []int, id int) []int {
	return slices.DeleteFunc(ids, func(x int) bool { return x == id })
}
