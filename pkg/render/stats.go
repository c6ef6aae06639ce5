package render

import "bytes"

// Stats counts the graphical elements Graphviz drew.
type Stats struct {
	Nodes    int
	Edges    int
	Clusters int
}

var (
	nodeClass    = []byte(`class="node"`)
	edgeClass    = []byte(`class="edge"`)
	clusterClass = []byte(`class="cluster"`)
)

// SVGStats counts node, edge and cluster groups in Graphviz SVG output.
func SVGStats(svg []byte) Stats {
	return Stats{
		Nodes:    bytes.Count(svg, nodeClass),
		Edges:    bytes.Count(svg, edgeClass),
		Clusters: bytes.Count(svg, clusterClass),
	}
}
