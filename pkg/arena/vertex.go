package arena

import (
	"fmt"
	"strings"
)

// Player identifies one of the two players of a parity game.
type Player int

const (
	// Even wins plays whose decisive priority is even.
	Even Player = iota
	// Odd wins plays whose decisive priority is odd.
	Odd
)

// String returns "even" or "odd".
func (p Player) String() string {
	if p == Odd {
		return "odd"
	}
	return "even"
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == Odd {
		return Even
	}
	return Odd
}

// MarshalText encodes the player as "even" or "odd".
func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes "even"/"odd" (or "0"/"1").
func (p *Player) UnmarshalText(text []byte) error {
	v, err := ParsePlayer(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePlayer parses a player name. It accepts "even", "odd" and the
// PGSolver owner digits "0" and "1", case-insensitively.
func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "even", "0":
		return Even, nil
	case "odd", "1":
		return Odd, nil
	}
	return Even, fmt.Errorf("unknown player %q", s)
}

// Vertex is a position of the game.
//
// Outgoing holds the ids of edge targets; Incoming holds the ids of edge
// sources. Both are back-references into the owning [Arena].
type Vertex struct {
	ID       int
	Owner    Player
	Priority int
	Outgoing []int
	Incoming []int
	Label    string
}

// IsPriorityEven reports whether the vertex priority is even.
func (v *Vertex) IsPriorityEven() bool { return v.Priority%2 == 0 }

// IsPriorityOdd reports whether the vertex priority is odd.
func (v *Vertex) IsPriorityOdd() bool { return v.Priority%2 == 1 }

// IsOwnerEven reports whether the vertex is owned by [Even].
func (v *Vertex) IsOwnerEven() bool { return v.Owner == Even }

// IsOwnerOdd reports whether the vertex is owned by [Odd].
func (v *Vertex) IsOwnerOdd() bool { return v.Owner == Odd }

// OutDegree returns the number of outgoing edges.
func (v *Vertex) OutDegree() int { return len(v.Outgoing) }

// InDegree returns the number of incoming edges.
func (v *Vertex) InDegree() int { return len(v.Incoming) }

func (v *Vertex) selfLoops() int {
	n := 0
	for _, to := range v.Outgoing {
		if to == v.ID {
			n++
		}
	}
	return n
}
