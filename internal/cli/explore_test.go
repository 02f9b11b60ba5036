package cli

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/papg/pkg/arena"
	"github.com/matzehuels/papg/pkg/pipeline"
	"github.com/matzehuels/papg/pkg/solver"
)

// exploreModel builds 0 -> 2, 1 -> 0, 2 -> 1 with vertex 1 won by odd.
func exploreModel(t *testing.T) VertexListModel {
	t.Helper()
	a := arena.New(3)
	for _, e := range [][2]int{{0, 2}, {1, 0}, {2, 1}} {
		if err := a.AddEdge(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := a.SetLabel(2, "goal"); err != nil {
		t.Fatal(err)
	}
	res := &pipeline.Result{
		Strategy: solver.StrategyRecursive,
		Winners:  []arena.Player{arena.Even, arena.Odd, arena.Even},
		Measures: []string{"(0)", "⊤", "(1)"},
	}
	return NewVertexListModel("game.gm", a, res)
}

func press(m VertexListModel, keys ...tea.KeyMsg) VertexListModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(VertexListModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestVertexListNavigation(t *testing.T) {
	m := exploreModel(t)

	m = press(m, runes("j"), tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", m.Cursor)
	}
	m = press(m, runes("j"))
	if m.Cursor != 2 {
		t.Errorf("Cursor past the end = %d, want 2", m.Cursor)
	}
	m = press(m, runes("k"), tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
}

func TestVertexListScroll(t *testing.T) {
	m := exploreModel(t)
	m.Height = 2

	m = press(m, runes("G"))
	if m.Cursor != 2 || m.Offset != 1 {
		t.Errorf("Cursor/Offset = %d/%d, want 2/1", m.Cursor, m.Offset)
	}
	m = press(m, runes("g"))
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("Cursor/Offset = %d/%d, want 0/0", m.Cursor, m.Offset)
	}
}

func TestVertexListFilter(t *testing.T) {
	m := exploreModel(t)

	m = press(m, runes("o"))
	if got := m.Visible(); !slices.Equal(got, []int{1}) {
		t.Errorf("odd filter = %v, want [1]", got)
	}
	m = press(m, runes("e"))
	if got := m.Visible(); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("even filter = %v, want [0 2]", got)
	}
	m = press(m, runes("a"))
	if got := m.Visible(); len(got) != 3 {
		t.Errorf("all filter = %v", got)
	}
}

func TestVertexListFollowEdge(t *testing.T) {
	m := exploreModel(t)

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Cursor != 2 {
		t.Errorf("after following 0 -> 2, Cursor = %d", m.Cursor)
	}

	// The successor of 1 is hidden by the odd filter.
	m = press(m, runes("o"), tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.Visible()) != 3 || m.Visible()[m.Cursor] != 0 {
		t.Errorf("hidden successor should reset the filter, visible %v cursor %d", m.Visible(), m.Cursor)
	}
}

func TestVertexListQuit(t *testing.T) {
	m := exploreModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestVertexListView(t *testing.T) {
	view := exploreModel(t).View()
	for _, want := range []string{"game.gm", "recursive", "goal", "odd", "⊤", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestJoinIDs(t *testing.T) {
	if got := joinIDs([]int{1, 2, 3}, 2); got != "1,2,…" {
		t.Errorf("joinIDs() = %q", got)
	}
	if got := joinIDs(nil, 2); got != "" {
		t.Errorf("joinIDs(nil) = %q", got)
	}
}
