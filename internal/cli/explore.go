package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/papg/pkg/arena"
	"github.com/matzehuels/papg/pkg/pipeline"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "explore <game>",
		Short: "Browse the vertices of a solved game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			a, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}
			res, err := runner.Solve(ctx, a, c.solveOptions(cmd, &flags))
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewVertexListModel(args[0], a, res),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// VertexListModel - Interactive vertex browser
// =============================================================================

// vertexFilter restricts the rows of a VertexListModel.
type vertexFilter int

const (
	filterAll vertexFilter = iota
	filterEven
	filterOdd
)

func (f vertexFilter) String() string {
	switch f {
	case filterEven:
		return "won by even"
	case filterOdd:
		return "won by odd"
	}
	return "all"
}

// VertexListModel is the bubbletea model of papg explore.
type VertexListModel struct {
	Title  string
	Arena  *arena.Arena
	Result *pipeline.Result

	Cursor int
	Offset int
	Height int

	filter  vertexFilter
	visible []int
}

// NewVertexListModel creates a model listing every vertex of a.
func NewVertexListModel(title string, a *arena.Arena, res *pipeline.Result) VertexListModel {
	m := VertexListModel{Title: title, Arena: a, Result: res, Height: 15}
	m.applyFilter(filterAll)
	return m
}

// Visible returns the ids of the listed vertices.
func (m VertexListModel) Visible() []int { return m.visible }

func (m *VertexListModel) applyFilter(f vertexFilter) {
	m.filter = f
	m.visible = make([]int, 0, m.Arena.Size())
	for v := range m.Arena.Size() {
		switch {
		case f == filterEven && m.Result.Winners[v] != arena.Even:
		case f == filterOdd && m.Result.Winners[v] != arena.Odd:
		default:
			m.visible = append(m.visible, v)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

func (m VertexListModel) Init() tea.Cmd {
	return nil
}

func (m VertexListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.visible))
		case "end", "G":
			m.move(len(m.visible))
		case "a":
			m.applyFilter(filterAll)
		case "e":
			m.applyFilter(filterEven)
		case "o":
			m.applyFilter(filterOdd)
		case "enter", "l":
			m.jumpToSuccessor()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamping it and scrolling the window.
func (m *VertexListModel) move(delta int) {
	if len(m.visible) == 0 {
		m.Cursor, m.Offset = 0, 0
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.visible)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// jumpToSuccessor moves the cursor to the first successor of the selected
// vertex that is listed, showing all vertices if none is.
func (m *VertexListModel) jumpToSuccessor() {
	if len(m.visible) == 0 {
		return
	}
	succ := m.Arena.Vertex(m.visible[m.Cursor]).Outgoing
	for _, w := range succ {
		for i, v := range m.visible {
			if v == w {
				m.move(i - m.Cursor)
				return
			}
		}
	}
	if m.filter != filterAll && len(succ) > 0 {
		m.applyFilter(filterAll)
		m.move(succ[0])
	}
}

func (m VertexListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s · strategy %s", m.filter, m.Result.Strategy)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ follow edge  a/e/o filter  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.visible))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		v := m.visible[i]
		vert := m.Arena.Vertex(v)
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		label := vert.Label
		if label == "" {
			label = "—"
		}
		measure := ""
		if v < len(m.Result.Measures) {
			measure = m.Result.Measures[v]
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(v),
			label,
			vert.Owner.String(),
			strconv.Itoa(vert.Priority),
			m.Result.Winners[v].String(),
			measure,
			joinIDs(vert.Outgoing, 8),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "id", "label", "owner", "prio", "winner", "measure", "successors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.visible) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 5 {
				if m.Result.Winners[m.visible[idx]] == arena.Odd {
					base = base.Foreground(colorRed)
				} else {
					base = base.Foreground(colorBlue)
				}
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			if col == 7 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.visible) == 0 {
		b.WriteString(listDimStyle.Render("  no vertices"))
	} else {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.visible))))
	}
	return b.String()
}

// joinIDs formats up to limit ids as a comma-separated list.
func joinIDs(ids []int, limit int) string {
	n := min(len(ids), limit)
	parts := make([]string, 0, n+1)
	for _, id := range ids[:n] {
		parts = append(parts, strconv.Itoa(id))
	}
	if n < len(ids) {
		parts = append(parts, "…")
	}
	return strings.Join(parts, ",")
}
