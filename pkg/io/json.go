package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/papg/pkg/arena"
)

type game struct {
	Vertices []vertex `json:"vertices"`
}

type vertex struct {
	ID         int           `json:"id"`
	Owner      arena.Player  `json:"owner"`
	Priority   int           `json:"priority"`
	Successors []int         `json:"successors"`
	Label      string        `json:"label,omitempty"`
	Winner     *arena.Player `json:"winner,omitempty"`
}

// ReadJSON decodes a JSON game from r.
//
// ReadJSON returns an error if the JSON is malformed, an id is defined twice
// or falls outside 0..len(vertices)-1, a successor does not exist, or a
// vertex has no successor. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*arena.Arena, error) {
	var data game
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	a := arena.New(len(data.Vertices))
	seen := make([]bool, len(data.Vertices))
	for _, v := range data.Vertices {
		if !a.Has(v.ID) {
			return nil, fmt.Errorf("vertex %d: %w: ids must be 0..%d", v.ID, ErrMissingVertex, len(data.Vertices)-1)
		}
		if seen[v.ID] {
			return nil, fmt.Errorf("vertex %d: %w", v.ID, ErrDuplicateVertex)
		}
		seen[v.ID] = true
		if err := defineVertex(a, v.ID, v.Owner, v.Priority, v.Label, v.Successors); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", v.ID, err)
		}
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// ImportJSON reads a JSON game file at path.
func ImportJSON(path string) (*arena.Arena, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes a as JSON. When winners is non-nil it must hold one
// entry per vertex, and each vertex carries its winner.
func WriteJSON(a *arena.Arena, winners []arena.Player, w io.Writer) error {
	if winners != nil && len(winners) != a.Size() {
		return fmt.Errorf("winners: got %d entries for %d vertices", len(winners), a.Size())
	}
	out := game{Vertices: make([]vertex, a.Size())}
	for i, v := range a.Vertices() {
		out.Vertices[i] = vertex{
			ID:         v.ID,
			Owner:      v.Owner,
			Priority:   v.Priority,
			Successors: v.Outgoing,
			Label:      v.Label,
		}
		if winners != nil {
			out.Vertices[i].Winner = &winners[i]
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a to a JSON file at path.
func ExportJSON(a *arena.Arena, winners []arena.Player, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(a, winners, f)
}
