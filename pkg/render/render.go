package render

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/razor-app/archdiagram/pkg/errors"
)

// newGraphviz creates an engine instance. Replaced in tests to simulate a
// missing engine.
var newGraphviz = graphviz.New

var engineFormats = map[string]graphviz.Format{
	FormatPNG: graphviz.PNG,
	FormatSVG: graphviz.SVG,
	FormatJPG: graphviz.JPG,
}

// Ready initialises Graphviz and releases it again. A nil return means the
// engine is usable; otherwise the error carries ErrCodeRendererUnavailable.
//
// Only initialisation failures count. Close reports the engine's last parse
// error, which outlives the instance that produced it and says nothing about
// whether the engine can start.
func Ready(ctx context.Context) error {
	gv, err := newGraphviz(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRendererUnavailable, err, "init graphviz")
	}
	_ = gv.Close()
	return nil
}

// Render produces format output for the DOT source.
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatPDF:
		svg, err := RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		return ToPDF(ctx, svg)
	}

	f, ok := engineFormats[format]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
	return renderEngine(ctx, dot, f)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderEngine(ctx, dot, graphviz.SVG)
}

func renderEngine(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := newGraphviz(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRendererUnavailable, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}
	return buf.Bytes(), nil
}
