package diagram

import (
	"strings"
)

// Direction is the Graphviz rank direction of a diagram.
type Direction string

const (
	LeftToRight Direction = "LR"
	RightToLeft Direction = "RL"
	TopToBottom Direction = "TB"
	BottomToTop Direction = "BT"
)

// Valid reports whether d is one of the four Graphviz rank directions.
func (d Direction) Valid() bool {
	switch d {
	case LeftToRight, RightToLeft, TopToBottom, BottomToTop:
		return true
	}
	return false
}

// LineStyle is the stroke style of an edge.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineDotted LineStyle = "dotted"
	LineBold   LineStyle = "bold"
)

// Valid reports whether s is a supported line style. The empty style is
// valid and leaves the choice to the edge defaults.
func (s LineStyle) Valid() bool {
	switch s {
	case "", LineSolid, LineDashed, LineDotted, LineBold:
		return true
	}
	return false
}

// Attrs holds raw Graphviz attributes (graph, node or edge defaults).
type Attrs map[string]string

// clone returns a copy of a so diagrams never share attribute maps.
func (a Attrs) clone() Attrs {
	if a == nil {
		return Attrs{}
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Node is a labelled visual element. The ID is only used for references;
// the Label is what gets drawn and may contain newlines.
type Node struct {
	ID    string
	Label string
	Icon  Icon
}

// Cluster groups nodes under a shared, labelled boundary.
type Cluster struct {
	Label string
	Nodes []string // member node IDs in declaration order
}

// EdgeStyle holds the cosmetic attributes of an edge.
type EdgeStyle struct {
	Color    string    // any Graphviz colour, e.g. "#27ae60"
	Style    LineStyle // solid, dashed, dotted, bold
	PenWidth float64   // 0 keeps the engine default
	Label    string    // optional text drawn along the edge
}

// Edge connects two nodes. Directed edges draw an arrowhead at To;
// undirected edges draw none.
type Edge struct {
	From     string
	To       string
	Directed bool
	EdgeStyle
}

// Diagram is a complete, immutable diagram description.
type Diagram struct {
	Title     string
	Direction Direction
	GraphAttr Attrs
	NodeAttr  Attrs
	EdgeAttr  Attrs
	Nodes     []Node
	Clusters  []Cluster
	Edges     []Edge
}

// NodeCount returns the number of declared nodes.
func (d *Diagram) NodeCount() int { return len(d.Nodes) }

// EdgeCount returns the number of declared edges.
func (d *Diagram) EdgeCount() int { return len(d.Edges) }

// ClusterCount returns the number of declared clusters.
func (d *Diagram) ClusterCount() int { return len(d.Clusters) }

// Node looks up a node by ID.
func (d *Diagram) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// ClusterOf returns the index of the cluster containing id, or -1 when the
// node sits at the top level.
func (d *Diagram) ClusterOf(id string) int {
	for i, c := range d.Clusters {
		for _, m := range c.Nodes {
			if m == id {
				return i
			}
		}
	}
	return -1
}

// Filename returns the artifact name for the given format: the title's
// words joined with underscores, lowercased, with format as extension.
//
//	"Razor App Architecture", "png" -> "razor_app_architecture.png"
func (d *Diagram) Filename(format string) string {
	name := strings.ToLower(strings.Join(strings.Fields(d.Title), "_"))
	if format == "" {
		return name
	}
	return name + "." + format
}
