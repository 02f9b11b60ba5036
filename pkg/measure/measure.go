package measure

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrOutOfRange is returned when an index or boundary does not fall inside a
// measure. It signals a sizing mismatch between a measure and the priorities
// it is used with.
var ErrOutOfRange = errors.New("measure index out of range")

// Measure is one element of the progress-measure lattice.
type Measure struct {
	odd  []int // odd[k] holds the component at index 2k+1
	size int
	max  *Measure
	top  bool
}

// NewMaximum builds the self-bound maximum measure from per-index bounds.
// Only odd entries of bounds are used; its length becomes the measure size.
func NewMaximum(bounds []int) *Measure {
	m := &Measure{
		odd:  make([]int, len(bounds)/2),
		size: len(bounds),
	}
	for k := range m.odd {
		m.odd[k] = max(bounds[2*k+1], 0)
	}
	m.max = m
	return m
}

// New returns the all-zero measure bound to maximum.
func New(maximum *Measure) Measure {
	return Measure{
		odd:  make([]int, len(maximum.odd)),
		size: maximum.size,
		max:  maximum,
	}
}

// NewTop returns the Top measure bound to maximum.
func NewTop(maximum *Measure) Measure {
	m := New(maximum)
	m.top = true
	return m
}

// Size returns the number of logical indices.
func (m *Measure) Size() int { return m.size }

// Max returns the maximum this measure is bound to.
func (m *Measure) Max() *Measure { return m.max }

// IsTop reports whether m is the Top element.
func (m *Measure) IsTop() bool { return m.top }

// MakeTop turns m into the Top element.
func (m *Measure) MakeTop() { m.top = true }

// Reset turns m into the all-zero vector.
func (m *Measure) Reset() {
	clear(m.odd)
	m.top = false
}

// Value returns the component at index i. Even indices always read as zero.
func (m *Measure) Value(i int) (int, error) {
	if i < 0 || i >= m.size {
		return 0, fmt.Errorf("%w: value index %d, size %d", ErrOutOfRange, i, m.size)
	}
	if i%2 == 0 {
		return 0, nil
	}
	return m.odd[i/2], nil
}

// SetValue sets the component at index i to v. It returns false without
// changing m when i is even or v lies outside 0..bound(i).
func (m *Measure) SetValue(i, v int) (bool, error) {
	if i < 0 || i >= m.size {
		return false, fmt.Errorf("%w: value index %d, size %d", ErrOutOfRange, i, m.size)
	}
	if i%2 == 0 || v < 0 || v > m.max.odd[i/2] {
		return false, nil
	}
	m.odd[i/2] = v
	return true, nil
}

// Components returns a copy of the odd components in index order.
func (m *Measure) Components() []int {
	out := make([]int, len(m.odd))
	copy(out, m.odd)
	return out
}

// CopyFrom makes m equal to other, including its Top state and bound.
func (m *Measure) CopyFrom(other *Measure) {
	if m == other {
		return
	}
	if len(m.odd) != len(other.odd) {
		m.odd = make([]int, len(other.odd))
	}
	copy(m.odd, other.odd)
	m.size = other.size
	m.max = other.max
	m.top = other.top
}

// Clone returns an independent copy of m.
func (m *Measure) Clone() Measure {
	c := Measure{
		odd:  make([]int, len(m.odd)),
		size: m.size,
		max:  m.max,
		top:  m.top,
	}
	copy(c.odd, m.odd)
	return c
}

// Compare returns -1, 0 or +1 when m is less than, equal to or greater than
// other. Top is above every finite vector; finite vectors compare
// lexicographically, lowest odd index first.
func (m *Measure) Compare(other *Measure) int {
	switch {
	case m.top && other.top:
		return 0
	case m.top:
		return 1
	case other.top:
		return -1
	}
	n := min(len(m.odd), len(other.odd))
	for k := 0; k < n; k++ {
		if c := cmp.Compare(m.odd[k], other.odd[k]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(m.odd), len(other.odd))
}

// Equal reports whether m and other denote the same lattice element.
func (m *Measure) Equal(other *Measure) bool {
	if m.top || other.top {
		return m.top == other.top
	}
	if len(m.odd) != len(other.odd) {
		return false
	}
	for k := range m.odd {
		if m.odd[k] != other.odd[k] {
			return false
		}
	}
	return true
}

// Less reports whether m < other.
func (m *Measure) Less(other *Measure) bool { return m.Compare(other) < 0 }

// Greater reports whether m > other.
func (m *Measure) Greater(other *Measure) bool { return m.Compare(other) > 0 }

// PartialGreater reports whether m > other on the odd indices up to and
// including boundary.
func (m *Measure) PartialGreater(boundary int, other *Measure) (bool, error) {
	if err := m.checkBoundary("PartialGreater", boundary, other); err != nil {
		return false, err
	}
	if m.top {
		return true, nil
	}
	if other.top {
		return false, nil
	}
	return m.prefixCompare(boundary, other) > 0, nil
}

// PartialGreaterOrEqual reports whether m >= other on the odd indices up to
// and including boundary.
func (m *Measure) PartialGreaterOrEqual(boundary int, other *Measure) (bool, error) {
	if err := m.checkBoundary("PartialGreaterOrEqual", boundary, other); err != nil {
		return false, err
	}
	if m.top {
		return true, nil
	}
	if other.top {
		return false, nil
	}
	return m.prefixCompare(boundary, other) >= 0, nil
}

// PartialIncrementIfAble advances m to the least vector that is strictly
// greater on the odd indices up to boundary. Scanning from boundary down to
// index 1, the first component below its bound is incremented and the
// components after it inside the prefix, which were all at their bound, wrap
// to zero. Components beyond boundary are not touched.
//
// It returns false without changing m when every component in the prefix is
// at its bound, or when m is Top; the caller then makes m Top.
func (m *Measure) PartialIncrementIfAble(boundary int) (bool, error) {
	if boundary < 0 || boundary >= m.size {
		return false, fmt.Errorf("%w: PartialIncrementIfAble boundary %d, size %d", ErrOutOfRange, boundary, m.size)
	}
	if m.top {
		return false, nil
	}
	last := prefixLen(boundary) - 1
	for k := last; k >= 0; k-- {
		if m.odd[k] < m.max.odd[k] {
			m.odd[k]++
			for j := k + 1; j <= last; j++ {
				m.odd[j] = 0
			}
			return true, nil
		}
	}
	return false, nil
}

// MakePartialEqualOf copies other's odd components up to boundary into m and
// zeroes the components beyond it. If other is Top, m becomes Top instead.
func (m *Measure) MakePartialEqualOf(boundary int, other *Measure) error {
	if err := m.checkBoundary("MakePartialEqualOf", boundary, other); err != nil {
		return err
	}
	if m == other {
		return nil
	}
	if other.top {
		clear(m.odd)
		m.top = true
		return nil
	}
	m.top = false
	n := prefixLen(boundary)
	copy(m.odd[:n], other.odd[:n])
	clear(m.odd[n:])
	return nil
}

// String formats the odd components as "(a,b,c)", or "⊤" for Top.
func (m *Measure) String() string {
	if m.top {
		return "⊤"
	}
	var b strings.Builder
	b.WriteByte('(')
	for k, v := range m.odd {
		if k > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(')')
	return b.String()
}

func (m *Measure) checkBoundary(op string, boundary int, other *Measure) error {
	if boundary < 0 || boundary >= m.size || boundary >= other.size {
		return fmt.Errorf("%w: %s boundary %d, sizes %d and %d", ErrOutOfRange, op, boundary, m.size, other.size)
	}
	return nil
}

func (m *Measure) prefixCompare(boundary int, other *Measure) int {
	for k := 0; k < prefixLen(boundary); k++ {
		if c := cmp.Compare(m.odd[k], other.odd[k]); c != 0 {
			return c
		}
	}
	return 0
}

// prefixLen returns the number of odd indices <= boundary.
func prefixLen(boundary int) int { return (boundary + 1) / 2 }
