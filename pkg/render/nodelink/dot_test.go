package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/papg/pkg/arena"
)

// game: 0 (even, p=2) -> 1, 1 (odd, p=1, "trap") -> 1.
func game(t *testing.T) *arena.Arena {
	t.Helper()
	a := arena.New(2)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(a.SetPriority(0, 2))
	must(a.SetOwner(1, arena.Odd))
	must(a.SetPriority(1, 1))
	must(a.SetLabel(1, "trap"))
	must(a.AddEdge(0, 1))
	must(a.AddEdge(0, 0))
	must(a.AddEdge(1, 1))
	return a
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(game(t), Options{})

	for _, want := range []string{
		"digraph G",
		`v0 [label="0\np=2", shape=diamond]`,
		`v1 [label="trap\np=1", shape=box]`,
		"v0 -> v1;",
		"v0 -> v0;",
		"v1 -> v1;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "fillcolor=\"#") {
		t.Error("ToDOT() without winners should not colour vertices")
	}
}

func TestToDOT_Winners(t *testing.T) {
	dot := ToDOT(game(t), Options{Winners: []arena.Player{arena.Even, arena.Odd}})

	if !strings.Contains(dot, `fillcolor="`+ColorEven+`"`) {
		t.Error("ToDOT() missing even fill")
	}
	if !strings.Contains(dot, `fillcolor="`+ColorOdd+`"`) {
		t.Error("ToDOT() missing odd fill")
	}
	if !strings.Contains(dot, "v0 -> v1 [style=dashed, color=grey];") {
		t.Error("ToDOT() edge leaving a region should be dashed")
	}
	if !strings.Contains(dot, "v0 -> v0;") {
		t.Error("ToDOT() edge inside a region should be plain")
	}
}

func TestToDOT_WinnersLengthMismatch(t *testing.T) {
	dot := ToDOT(game(t), Options{Winners: []arena.Player{arena.Odd}})
	if strings.Contains(dot, "fillcolor=\"#") {
		t.Error("ToDOT() should ignore winners of the wrong length")
	}
}

func TestFmtLabel(t *testing.T) {
	a := game(t)
	tests := []struct {
		name string
		v    arena.Vertex
		opts Options
		want string
	}{
		{"id only", *a.Vertex(0), Options{}, "0\np=2"},
		{"named", *a.Vertex(1), Options{}, "trap\np=1"},
		{"detailed", *a.Vertex(1), Options{Detailed: true}, "trap (1)\np=1\nowner: odd"},
		{"measure", *a.Vertex(1), Options{Measures: []string{"(0)", "⊤"}}, "trap\np=1\n⊤"},
		{"short measures", *a.Vertex(1), Options{Measures: []string{"(0)"}}, "trap\np=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtLabel(tt.v, tt.opts); got != tt.want {
				t.Errorf("fmtLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.svg))); got != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(game(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
