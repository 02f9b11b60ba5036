package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/papg/pkg/arena"
	"github.com/matzehuels/papg/pkg/render"
)

// Fill colours for the winning regions.
const (
	ColorEven = "#cfe3ff"
	ColorOdd  = "#ffd9cc"
)

// Options configures diagram generation.
type Options struct {
	// Winners colours every vertex by its winner. Nil leaves vertices white.
	Winners []arena.Player

	// Measures adds one extra label line per vertex, typically the final
	// progress measure. Nil or short slices are ignored.
	Measures []string

	// Detailed adds the vertex id and owner to labels that have a name.
	Detailed bool
}

// ToDOT converts a game to Graphviz DOT format. The result can be rendered
// with [RenderSVG], [RenderPNG] or [RenderPDF].
func ToDOT(a *arena.Arena, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=white, fontsize=14, margin=\"0.1,0.05\"];\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	colored := len(opts.Winners) == a.Size()
	for _, v := range a.Vertices() {
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(v, opts)),
			"shape=" + shape(v.Owner),
		}
		if colored {
			attrs = append(attrs, "fillcolor="+strconv.Quote(fill(opts.Winners[v.ID])))
		}
		fmt.Fprintf(&buf, "  v%d [%s];\n", v.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, v := range a.Vertices() {
		for _, w := range v.Outgoing {
			if colored && opts.Winners[v.ID] != opts.Winners[w] {
				fmt.Fprintf(&buf, "  v%d -> v%d [style=dashed, color=grey];\n", v.ID, w)
				continue
			}
			fmt.Fprintf(&buf, "  v%d -> v%d;\n", v.ID, w)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(v arena.Vertex, opts Options) string {
	name := v.Label
	if name == "" {
		name = strconv.Itoa(v.ID)
	} else if opts.Detailed {
		name = fmt.Sprintf("%s (%d)", name, v.ID)
	}

	parts := []string{name, fmt.Sprintf("p=%d", v.Priority)}
	if opts.Detailed {
		parts = append(parts, "owner: "+v.Owner.String())
	}
	if v.ID < len(opts.Measures) && opts.Measures[v.ID] != "" {
		parts = append(parts, opts.Measures[v.ID])
	}
	return strings.Join(parts, "\n")
}

func shape(owner arena.Player) string {
	if owner == arena.Odd {
		return "box"
	}
	return "diamond"
}

func fill(winner arena.Player) string {
	if winner == arena.Odd {
		return ColorOdd
	}
	return ColorEven
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderGraphviz(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderGraphviz(ctx, dot, graphviz.PNG)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

func renderGraphviz(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
