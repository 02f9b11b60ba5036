// Package nodelink renders parity games as node-link diagrams.
//
// # Overview
//
// Vertices owned by even are drawn as diamonds and vertices owned by odd as
// boxes, following the usual drawing convention for parity games. Each label
// shows the vertex label (or id) and its priority. When winners are supplied,
// a vertex is filled with the colour of the player that wins it and edges
// that leave a winning region are dashed.
//
// # Usage
//
//	dot := nodelink.ToDOT(game, nodelink.Options{Winners: winners})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PNG output Graphviz renders directly; PDF goes through
// [render.ToPDF]:
//
//	png, err := nodelink.RenderPNG(ctx, dot)
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
// PDF conversion requires librsvg (rsvg-convert).
//
// [render.ToPDF]: github.com/matzehuels/papg/pkg/render.ToPDF
package nodelink
