package diagram

// NodeRef identifies a declared node. It is returned by [Scope.Node] and
// passed to [Scope.Connect] and [Scope.Link].
type NodeRef string

// Option configures a diagram before any node is declared.
type Option func(*Diagram)

// WithDirection sets the rank direction. The default is [LeftToRight].
func WithDirection(dir Direction) Option {
	return func(d *Diagram) { d.Direction = dir }
}

// WithGraphAttr merges graph-level Graphviz attributes.
func WithGraphAttr(a Attrs) Option {
	return func(d *Diagram) { merge(d.GraphAttr, a) }
}

// WithNodeAttr merges default node attributes.
func WithNodeAttr(a Attrs) Option {
	return func(d *Diagram) { merge(d.NodeAttr, a) }
}

// WithEdgeAttr merges default edge attributes.
func WithEdgeAttr(a Attrs) Option {
	return func(d *Diagram) { merge(d.EdgeAttr, a) }
}

func merge(dst, src Attrs) {
	for k, v := range src {
		dst[k] = v
	}
}

// Scope declares nodes and edges either at the top level of a diagram or
// inside one cluster.
type Scope struct {
	d       *Diagram
	cluster int // index into d.Clusters, -1 for the top level
}

// Builder assembles a [Diagram] in declaration order. The zero value is not
// usable; create one with [NewBuilder]. A Builder must not be used after
// [Builder.Build].
type Builder struct {
	Scope
}

// NewBuilder starts a diagram with the given title.
func NewBuilder(title string, opts ...Option) *Builder {
	d := &Diagram{
		Title:     title,
		Direction: LeftToRight,
		GraphAttr: Attrs{},
		NodeAttr:  Attrs{},
		EdgeAttr:  Attrs{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return &Builder{Scope: Scope{d: d, cluster: -1}}
}

// Cluster declares a labelled cluster and runs fn to populate it. Nodes
// declared through the cluster's scope become its members; edges declared
// there are ordinary diagram edges.
func (b *Builder) Cluster(label string, fn func(c *Scope)) {
	b.d.Clusters = append(b.d.Clusters, Cluster{Label: label})
	fn(&Scope{d: b.d, cluster: len(b.d.Clusters) - 1})
}

// Build validates and returns the finished diagram.
func (b *Builder) Build() (*Diagram, error) {
	if err := b.d.Validate(); err != nil {
		return nil, err
	}
	return b.d, nil
}

// Node declares a node in this scope and returns a reference to it.
func (s *Scope) Node(id, label string, icon Icon) NodeRef {
	s.d.Nodes = append(s.d.Nodes, Node{ID: id, Label: label, Icon: icon})
	if s.cluster >= 0 {
		c := &s.d.Clusters[s.cluster]
		c.Nodes = append(c.Nodes, id)
	}
	return NodeRef(id)
}

// Connect declares a directed edge from -> to.
func (s *Scope) Connect(from, to NodeRef, style EdgeStyle) {
	s.d.Edges = append(s.d.Edges, Edge{From: string(from), To: string(to), Directed: true, EdgeStyle: style})
}

// Link declares an undirected edge between a and b.
func (s *Scope) Link(a, b NodeRef, style EdgeStyle) {
	s.d.Edges = append(s.d.Edges, Edge{From: string(a), To: string(b), EdgeStyle: style})
}
