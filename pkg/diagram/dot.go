package diagram

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/razor-app/archdiagram/pkg/errors"
)

// clusterBackgrounds alternate between sibling clusters.
var clusterBackgrounds = []string{"#E5F5FD", "#EBF3E7", "#ECE8F6", "#FDF7E3"}

// defaultGraphAttrs apply before the diagram's own graph attributes.
var defaultGraphAttrs = Attrs{
	"fontname":  "Sans-Serif",
	"fontsize":  "15",
	"labelloc":  "t",
	"splines":   "ortho",
	"nodesep":   "0.60",
	"ranksep":   "0.75",
	"pad":       "2.0",
	"fontcolor": "#2D3436",
}

// ToDOT converts a diagram to Graphviz DOT source.
//
// The output is deterministic: attribute maps are emitted in key order, nodes
// and edges in declaration order, and clusters as subgraphs named cluster_N in
// declaration order. Undirected edges are emitted with dir="none".
func ToDOT(d *Diagram) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", quote(d.Title))
	writeAttrStmt(&buf, "  ", "graph", graphAttrs(d))
	writeAttrStmt(&buf, "  ", "node", d.NodeAttr)
	writeAttrStmt(&buf, "  ", "edge", d.EdgeAttr)

	inCluster := make(map[string]bool)
	for _, c := range d.Clusters {
		for _, id := range c.Nodes {
			inCluster[id] = true
		}
	}

	buf.WriteString("\n")
	for _, n := range d.Nodes {
		if !inCluster[n.ID] {
			writeNode(&buf, "  ", n, d.NodeAttr)
		}
	}

	for i, c := range d.Clusters {
		fmt.Fprintf(&buf, "\n  subgraph %s {\n", quote(fmt.Sprintf("cluster_%d", i)))
		writeAttrStmt(&buf, "    ", "graph", clusterAttrs(c, i))
		for _, id := range c.Nodes {
			if n, ok := d.Node(id); ok {
				writeNode(&buf, "    ", n, d.NodeAttr)
			}
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		fmt.Fprintf(&buf, "  %s -> %s", quote(e.From), quote(e.To))
		if attrs := edgeAttrs(e); len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func graphAttrs(d *Diagram) Attrs {
	attrs := Attrs{}
	merge(attrs, defaultGraphAttrs)
	attrs["label"] = d.Title
	attrs["rankdir"] = string(d.Direction)
	merge(attrs, d.GraphAttr)
	return attrs
}

func clusterAttrs(c Cluster, i int) Attrs {
	return Attrs{
		"label":     c.Label,
		"labeljust": "l",
		"style":     "rounded,filled",
		"pencolor":  "#AEB6BE",
		"bgcolor":   clusterBackgrounds[i%len(clusterBackgrounds)],
		"fontname":  "Sans-Serif",
		"fontsize":  "12",
	}
}

func writeAttrStmt(buf *bytes.Buffer, indent, kind string, attrs Attrs) {
	if len(attrs) == 0 {
		return
	}
	parts := make([]string, 0, len(attrs))
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		parts = append(parts, attrKey(k)+"="+quote(attrs[k]))
	}
	fmt.Fprintf(buf, "%s%s [%s];\n", indent, kind, strings.Join(parts, ", "))
}

// writeNode emits a node statement. The icon category becomes the tooltip
// unless the diagram sets one for all nodes.
func writeNode(buf *bytes.Buffer, indent string, n Node, nodeAttr Attrs) {
	s := iconStyles[n.Icon]
	attrs := []string{
		"label=" + quote(n.Label),
		"shape=" + quote(s.shape),
		"style=" + quote(s.style),
		"fillcolor=" + quote(s.fill),
	}
	if _, ok := nodeAttr["tooltip"]; !ok {
		attrs = append(attrs, "tooltip="+quote(string(n.Icon)))
	}
	fmt.Fprintf(buf, "%s%s [%s];\n", indent, quote(n.ID), strings.Join(attrs, ", "))
}

// attrKey writes plain attribute names bare and quotes anything else, so
// DOT for an unvalidated diagram still parses.
func attrKey(k string) string {
	if errors.ValidateAttrKey(k) == nil {
		return k
	}
	return quote(k)
}

func edgeAttrs(e Edge) []string {
	var attrs []string
	if e.Color != "" {
		attrs = append(attrs, "color="+quote(e.Color))
	}
	if e.Style != "" {
		attrs = append(attrs, "style="+quote(string(e.Style)))
	}
	if e.PenWidth > 0 {
		attrs = append(attrs, "penwidth="+quote(formatWidth(e.PenWidth)))
	}
	if e.Label != "" {
		attrs = append(attrs, "label="+quote(e.Label))
	}
	if !e.Directed {
		attrs = append(attrs, `dir="none"`)
	}
	return attrs
}

// formatWidth keeps one decimal for whole numbers ("2.0") like the
// attribute values hand-written in definition files.
func formatWidth(w float64) string {
	s := strconv.FormatFloat(w, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// quote produces a DOT double-quoted string. Newlines become the \n escape,
// which Graphviz draws as a centred line break.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
