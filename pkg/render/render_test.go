package render

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-graphviz"

	"github.com/razor-app/archdiagram/pkg/errors"
)

const clusteredDOT = `digraph "T" {
  "user";
  subgraph "cluster_0" {
    graph [label="Frontend"];
    "a"; "b";
  }
  "user" -> "a";
  "a" -> "b" [dir="none"];
}`

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), `digraph G { a -> b; }`)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`)
	if err == nil {
		t.Fatal("RenderSVG() should return error for invalid DOT")
	}
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("RenderSVG() code = %v, want %s", errors.GetCode(err), errors.ErrCodeRenderFailed)
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := Render(context.Background(), `digraph G { a -> b; }`, FormatPNG)
	if err != nil {
		t.Fatalf("Render(png) error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("Render(png) output is not a PNG (prefix %q)", data[:min(8, len(data))])
	}
}

func TestRenderDOTPassthrough(t *testing.T) {
	dot := `digraph G { a -> b; }`
	data, err := Render(context.Background(), dot, FormatDOT)
	if err != nil {
		t.Fatalf("Render(dot) error: %v", err)
	}
	if string(data) != dot {
		t.Errorf("Render(dot) = %q, want input unchanged", data)
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := Render(context.Background(), `digraph G {}`, "gif")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(gif) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestSVGStatsFromEngine(t *testing.T) {
	svg, err := RenderSVG(context.Background(), clusteredDOT)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	got := SVGStats(svg)
	want := Stats{Nodes: 3, Edges: 2, Clusters: 1}
	if got != want {
		t.Errorf("SVGStats() = %+v, want %+v", got, want)
	}
}

func TestSVGStats(t *testing.T) {
	svg := []byte(`<svg><g id="graph0" class="graph"><g id="clust1" class="cluster"></g>` +
		`<g id="node1" class="node"></g><g id="node2" class="node"></g>` +
		`<g id="edge1" class="edge"></g></g></svg>`)
	got := SVGStats(svg)
	if got != (Stats{Nodes: 2, Edges: 1, Clusters: 1}) {
		t.Errorf("SVGStats() = %+v", got)
	}
	if SVGStats(nil) != (Stats{}) {
		t.Error("SVGStats(nil) should be zero")
	}
}

func TestReady(t *testing.T) {
	if err := Ready(context.Background()); err != nil {
		t.Fatalf("Ready() error: %v", err)
	}
}

func TestReadyAfterParseError(t *testing.T) {
	ctx := context.Background()
	if _, err := RenderSVG(ctx, `not valid DOT {{{`); err == nil {
		t.Fatal("RenderSVG() should fail for invalid DOT")
	}

	if err := Ready(ctx); err != nil {
		t.Fatalf("Ready() after a parse error = %v, want nil", err)
	}
	if _, err := RenderSVG(ctx, `digraph G { a -> b; }`); err != nil {
		t.Fatalf("RenderSVG() after a parse error: %v", err)
	}
	if err := Ready(ctx); err != nil {
		t.Errorf("Ready() after recovery = %v, want nil", err)
	}
}

func TestReadyEngineUnavailable(t *testing.T) {
	orig := newGraphviz
	defer func() { newGraphviz = orig }()
	newGraphviz = func(ctx context.Context) (*graphviz.Graphviz, error) {
		return nil, fmt.Errorf("wasm runtime unavailable")
	}

	err := Ready(context.Background())
	if !errors.Is(err, errors.ErrCodeRendererUnavailable) {
		t.Errorf("Ready() error = %v, want %s", err, errors.ErrCodeRendererUnavailable)
	}

	_, err = Render(context.Background(), `digraph G { a; }`, FormatSVG)
	if !errors.Is(err, errors.ErrCodeRendererUnavailable) {
		t.Errorf("Render() error = %v, want %s", err, errors.ErrCodeRendererUnavailable)
	}
}

func TestToPDFMissingConverter(t *testing.T) {
	orig := rsvgBinary
	defer func() { rsvgBinary = orig }()
	rsvgBinary = "archdiagram-no-such-converter"

	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeRendererUnavailable) {
		t.Errorf("ToPDF() error = %v, want %s", err, errors.ErrCodeRendererUnavailable)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"png"}},
		{"  ", []string{"png"}},
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{" SVG , png,svg ", []string{"svg", "png"}},
		{",,", []string{"png"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFormats(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats(Formats); err != nil {
		t.Errorf("ValidateFormats(all) error: %v", err)
	}
	err := ValidateFormats([]string{"png", "bmp"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormats(bmp) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
	if ValidFormat("bmp") || !ValidFormat("jpg") {
		t.Error("ValidFormat() mismatch")
	}
}
