// Package render turns Graphviz DOT source into image files.
//
// # Overview
//
// Layout and rasterisation are delegated to Graphviz, run in-process through
// [github.com/goccy/go-graphviz]. This package treats the engine as a black
// box: it hands over DOT text and gets bytes back. Engine errors are wrapped
// with an error code and returned unmodified otherwise; nothing is retried.
//
// # Formats
//
//   - png (default), svg, jpg: rendered by Graphviz
//   - pdf: SVG converted with the external rsvg-convert tool (librsvg)
//   - dot: the DOT source itself, no engine involved
//
//	data, err := render.Render(ctx, dot, render.FormatPNG)
//
// # Fail Fast
//
// [Ready] initialises the engine once without rendering anything. Callers run
// it before building diagrams so a broken Graphviz setup fails at startup
// rather than halfway through a batch.
//
// # Structural Checks
//
// [SVGStats] counts the node, edge and cluster groups in Graphviz SVG output.
// Comparing them with the declared counts verifies that every declared
// element was actually drawn.
package render
