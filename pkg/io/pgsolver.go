package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/papg/pkg/arena"
)

var (
	// ErrSyntax is returned for a line that does not follow the format.
	ErrSyntax = errors.New("syntax error")

	// ErrDuplicateVertex is returned when an id is defined twice.
	ErrDuplicateVertex = errors.New("duplicate vertex")

	// ErrMissingVertex is returned when the vertex ids, or the id named by
	// the header, leave a gap.
	ErrMissingVertex = errors.New("missing vertex")
)

const maxLineSize = 16 << 20

type pgLine struct {
	line     int
	id       int
	priority int
	owner    arena.Player
	succ     []int
	label    string
}

// ReadPGSolver parses a game in PGSolver format from r. ReadPGSolver does
// not close r.
func ReadPGSolver(r io.Reader) (*arena.Arena, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		lines    []pgLine
		headerID = -1
		lineNo   = 0
	)
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if rest, ok := cutKeyword(text, "parity"); ok {
			n, err := parseHeaderInt(rest)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: header: %v", lineNo, ErrSyntax, err)
			}
			headerID = n
			continue
		}
		if rest, ok := cutKeyword(text, "start"); ok {
			if _, err := parseHeaderInt(rest); err != nil {
				return nil, fmt.Errorf("line %d: %w: start: %v", lineNo, ErrSyntax, err)
			}
			continue
		}
		l, err := parseVertexLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		l.line = lineNo
		lines = append(lines, l)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	// Ids must cover 0..len(lines)-1 exactly, so an id or header beyond that
	// range implies a gap and is rejected before anything is allocated for it.
	size := len(lines)
	seen := make([]bool, size)
	for _, l := range lines {
		if l.id >= size {
			continue
		}
		if seen[l.id] {
			return nil, fmt.Errorf("line %d: %w: %d", l.line, ErrDuplicateVertex, l.id)
		}
		seen[l.id] = true
	}
	for id, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrMissingVertex, id)
		}
	}
	if headerID >= size {
		return nil, fmt.Errorf("%w: %d (header declares ids up to %d)", ErrMissingVertex, size, headerID)
	}

	a := arena.New(size)
	for _, l := range lines {
		if err := defineVertex(a, l.id, l.owner, l.priority, l.label, l.succ); err != nil {
			return nil, fmt.Errorf("line %d: %w", l.line, err)
		}
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// ImportPGSolver reads a PGSolver file at path.
func ImportPGSolver(path string) (*arena.Arena, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPGSolver(f)
}

// WritePGSolver writes a in canonical PGSolver format.
func WritePGSolver(a *arena.Arena, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if a.Size() > 0 {
		fmt.Fprintf(bw, "parity %d;\n", a.Size()-1)
	}
	for _, v := range a.Vertices() {
		fmt.Fprintf(bw, "%d %d %d ", v.ID, v.Priority, int(v.Owner))
		for i, s := range v.Outgoing {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(strconv.Itoa(s))
		}
		if v.Label != "" {
			bw.WriteByte(' ')
			bw.WriteString(strconv.Quote(v.Label))
		}
		bw.WriteString(";\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportPGSolver writes a to a PGSolver file at path.
func ExportPGSolver(a *arena.Arena, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePGSolver(a, f)
}

func parseVertexLine(text string) (pgLine, error) {
	var l pgLine
	body, ok := strings.CutSuffix(text, ";")
	if !ok {
		return l, fmt.Errorf("%w: missing ';'", ErrSyntax)
	}
	if i := strings.IndexByte(body, '"'); i >= 0 {
		j := strings.LastIndexByte(body, '"')
		if j == i {
			return l, fmt.Errorf("%w: unterminated label", ErrSyntax)
		}
		l.label = unquoteLabel(body[i : j+1])
		body = body[:i]
	}

	fields := strings.Fields(body)
	if len(fields) != 4 {
		return l, fmt.Errorf("%w: want \"<id> <priority> <owner> <successors>\", got %q", ErrSyntax, text)
	}
	var err error
	if l.id, err = parseNonNegative("id", fields[0]); err != nil {
		return l, err
	}
	if l.priority, err = parseNonNegative("priority", fields[1]); err != nil {
		return l, err
	}
	switch fields[2] {
	case "0":
		l.owner = arena.Even
	case "1":
		l.owner = arena.Odd
	default:
		return l, fmt.Errorf("%w: owner must be 0 or 1, got %q", ErrSyntax, fields[2])
	}
	for _, s := range strings.Split(fields[3], ",") {
		id, err := parseNonNegative("successor", s)
		if err != nil {
			return l, err
		}
		l.succ = append(l.succ, id)
	}
	return l, nil
}

func defineVertex(a *arena.Arena, id int, owner arena.Player, priority int, label string, succ []int) error {
	if err := a.SetOwner(id, owner); err != nil {
		return err
	}
	if err := a.SetPriority(id, priority); err != nil {
		return err
	}
	if err := a.SetLabel(id, label); err != nil {
		return err
	}
	for _, s := range succ {
		if err := a.AddEdge(id, s); err != nil {
			return fmt.Errorf("vertex %d: %w", id, err)
		}
	}
	return nil
}

func cutKeyword(text, keyword string) (string, bool) {
	rest, ok := strings.CutPrefix(text, keyword)
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	return rest, true
}

func parseHeaderInt(rest string) (int, error) {
	rest, ok := strings.CutSuffix(strings.TrimSpace(rest), ";")
	if !ok {
		return 0, errors.New("missing ';'")
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid number %q", rest)
	}
	return n, nil
}

func parseNonNegative(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrSyntax, what, s)
	}
	return n, nil
}

func unquoteLabel(quoted string) string {
	if s, err := strconv.Unquote(quoted); err == nil {
		return s
	}
	return quoted[1 : len(quoted)-1]
}
