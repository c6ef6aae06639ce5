// Package pkg provides the libraries behind archdiagram.
//
// # Overview
//
// archdiagram describes software architecture as nodes, clusters and edges
// and renders the description with Graphviz. The pkg directory is organized
// by stage:
//
//  1. [diagram] - The model, a builder, validation, DOT and TOML codecs
//  2. [catalog] - Built-in diagrams, looked up by name
//  3. [render] - Graphviz rendering (PNG, SVG, JPG, PDF, DOT)
//  4. [pipeline] - Orchestration (validate → render → write) with caching
//  5. [cache] - File-backed artifact cache
//
// # Architecture
//
// The typical data flow:
//
//	catalog constructor or TOML definition
//	         ↓
//	    [diagram] package (build + validate)
//	         ↓
//	    DOT source (deterministic)
//	         ↓
//	    [render] package (Graphviz, in process)
//	         ↓
//	    <title_in_snake_case>.<format>
//
// # Quick Start
//
// Build and render a diagram:
//
//	b := diagram.NewBuilder("Tiny Stack")
//	user := b.Node("user", "User", diagram.IconPerson)
//	b.Cluster("Data Layer", func(c *diagram.Scope) {
//	    db := c.Node("db", "Database", diagram.IconDatabase)
//	    c.Connect(user, db, diagram.EdgeStyle{Label: "Query"})
//	})
//	d, _ := b.Build()
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	arts, _ := runner.Generate(ctx, d, pipeline.Options{Formats: []string{"png"}})
//	// arts[0].Path == "tiny_stack.png"
//
// # Supporting Packages
//
// [config] - Layered settings from defaults, archdiagram.toml, ARCHDIAGRAM_*
// environment variables and flags.
//
// [watch] - Re-render definition files when they change.
//
// [observability] - Hooks for render and cache events.
//
// [errors] - Coded errors and input validation.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/diagram/...   # Specific package
//	go test -run Example        # Examples only
//
// [diagram]: https://pkg.go.dev/github.com/razor-app/archdiagram/pkg/diagram
// [catalog]: https://pkg.go.dev/github.com/razor-app/archdiagram/pkg/catalog
// [render]: https://pkg.go.dev/github.com/razor-app/archdiagram/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/razor-app/archdiagram/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/razor-app/archdiagram/pkg/cache
// [config]: https://pkg.go.dev/github.com/razor-app/archdiagram/pkg/config
// [watch]: https://pkg.go.dev/github.com/razor-app/archdiagram/pkg/watch
// [observability]: https://pkg.go.dev/github.com/razor-app/archdiagram/pkg/observability
// [errors]: https://pkg.go.dev/github.com/razor-app/archdiagram/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/razor-app/archdiagram/pkg/buildinfo
package pkg
