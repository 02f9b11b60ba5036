// Package render converts rendered games between image formats.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// When rsvg-convert is not installed the functions fail with
// [ErrConverterMissing].
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage draws a game as a Graphviz diagram, with vertices
// coloured by the player that wins them.
//
// [nodelink]: github.com/matzehuels/papg/pkg/render/nodelink
package render
