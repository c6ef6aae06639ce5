package diagram

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/razor-app/archdiagram/pkg/errors"
)

// file is the TOML shape of a definition file.
type file struct {
	Title     string        `toml:"title"`
	Direction string        `toml:"direction,omitempty"`
	GraphAttr Attrs         `toml:"graph_attr,omitempty"`
	NodeAttr  Attrs         `toml:"node_attr,omitempty"`
	EdgeAttr  Attrs         `toml:"edge_attr,omitempty"`
	Nodes     []fileNode    `toml:"nodes"`
	Clusters  []fileCluster `toml:"clusters,omitempty"`
	Edges     []fileEdge    `toml:"edges,omitempty"`
}

type fileNode struct {
	ID    string `toml:"id"`
	Label string `toml:"label"`
	Icon  string `toml:"icon"`
}

type fileCluster struct {
	Label string   `toml:"label"`
	Nodes []string `toml:"nodes"`
}

type fileEdge struct {
	From       string  `toml:"from"`
	To         string  `toml:"to"`
	Undirected bool    `toml:"undirected,omitempty"`
	Color      string  `toml:"color,omitempty"`
	Style      string  `toml:"style,omitempty"`
	PenWidth   float64 `toml:"penwidth,omitempty"`
	Label      string  `toml:"label,omitempty"`
}

// ReadFile loads and validates a definition file.
func ReadFile(path string) (*Diagram, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition file %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a TOML definition and validates the resulting diagram.
// Unknown keys are rejected so typos do not silently drop styling.
func Decode(r io.Reader) (*Diagram, error) {
	var in file
	md, err := toml.NewDecoder(r).Decode(&in)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "decode definition")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidDiagram, "unknown keys: %s", strings.Join(keys, ", "))
	}

	d := &Diagram{
		Title:     in.Title,
		Direction: Direction(in.Direction),
		GraphAttr: in.GraphAttr.clone(),
		NodeAttr:  in.NodeAttr.clone(),
		EdgeAttr:  in.EdgeAttr.clone(),
	}
	if d.Direction == "" {
		d.Direction = LeftToRight
	}
	for _, n := range in.Nodes {
		d.Nodes = append(d.Nodes, Node{ID: n.ID, Label: n.Label, Icon: Icon(n.Icon)})
	}
	for _, c := range in.Clusters {
		d.Clusters = append(d.Clusters, Cluster{Label: c.Label, Nodes: append([]string(nil), c.Nodes...)})
	}
	for _, e := range in.Edges {
		d.Edges = append(d.Edges, Edge{
			From:     e.From,
			To:       e.To,
			Directed: !e.Undirected,
			EdgeStyle: EdgeStyle{
				Color:    e.Color,
				Style:    LineStyle(e.Style),
				PenWidth: e.PenWidth,
				Label:    e.Label,
			},
		})
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Encode writes d as a TOML definition that [Decode] accepts.
func Encode(w io.Writer, d *Diagram) error {
	out := file{
		Title:     d.Title,
		Direction: string(d.Direction),
		GraphAttr: d.GraphAttr,
		NodeAttr:  d.NodeAttr,
		EdgeAttr:  d.EdgeAttr,
	}
	for _, n := range d.Nodes {
		out.Nodes = append(out.Nodes, fileNode{ID: n.ID, Label: n.Label, Icon: string(n.Icon)})
	}
	for _, c := range d.Clusters {
		out.Clusters = append(out.Clusters, fileCluster{Label: c.Label, Nodes: c.Nodes})
	}
	for _, e := range d.Edges {
		out.Edges = append(out.Edges, fileEdge{
			From:       e.From,
			To:         e.To,
			Undirected: !e.Directed,
			Color:      e.Color,
			Style:      string(e.Style),
			PenWidth:   e.PenWidth,
			Label:      e.Label,
		})
	}
	if err := toml.NewEncoder(w).Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode definition")
	}
	return nil
}
