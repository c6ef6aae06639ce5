// Package diagram provides the declarative model for architecture diagrams:
// labelled nodes, named clusters and styled edges.
//
// # Overview
//
// A [Diagram] is a static description. It is built once, in a single linear
// pass, and never mutated afterwards. Rendering is someone else's job: the
// [ToDOT] function turns a diagram into Graphviz DOT source which the render
// package hands to the layout engine.
//
// # Building
//
// Use [NewBuilder] and declare nodes, clusters and edges in order:
//
//	b := diagram.NewBuilder("Razor App Architecture", diagram.WithDirection(diagram.LeftToRight))
//	user := b.Node("user", "User", diagram.IconPerson)
//	var vue diagram.NodeRef
//	b.Cluster("Frontend (Vue.js)", func(c *diagram.Scope) {
//	    vue = c.Node("vue", "App.vue", diagram.IconFramework)
//	})
//	b.Connect(user, vue, diagram.EdgeStyle{Color: "#e67e22", PenWidth: 2})
//	d, err := b.Build()
//
// [Builder.Connect] declares a directed edge, [Builder.Link] an undirected one.
// [Builder.Build] runs [Diagram.Validate], so a returned diagram always
// satisfies the structural invariants:
//
//   - Node identifiers are unique and well-formed
//   - Every edge references nodes declared in the same diagram
//   - Every cluster member exists and belongs to exactly one cluster
//
// # Icons
//
// Each node carries an [Icon] category (person, framework, language runtime,
// database, storage, auth provider, network). The category decides the node's
// shape and fill colour in the DOT output.
//
// # Output Naming
//
// [Diagram.Filename] derives the artifact name from the title: words joined by
// underscores and lowercased, so "Razor App Architecture" becomes
// "razor_app_architecture.png". Re-rendering overwrites the same file.
//
// # Definition Files
//
// Diagrams can also live in TOML files. [ReadFile] and [Decode] parse and
// validate them; [Encode] writes a diagram back out:
//
//	title = "Example"
//	direction = "LR"
//
//	[[nodes]]
//	id = "user"
//	label = "User"
//	icon = "person"
//
//	[[clusters]]
//	label = "Backend"
//	nodes = ["api"]
//
//	[[edges]]
//	from = "user"
//	to = "api"
//	color = "#e67e22"
package diagram
