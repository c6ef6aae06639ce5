// Package catalog holds the built-in architecture diagrams.
//
// Each entry is a constructor that builds its diagram from literal
// configuration in one straight pass. Entries are looked up by a short,
// stable name:
//
//	d, err := catalog.Get("razor-app")
//
// Use [Names] to enumerate entries in a stable order.
package catalog

import (
	"slices"

	"github.com/razor-app/archdiagram/pkg/diagram"
	"github.com/razor-app/archdiagram/pkg/errors"
)

// entry pairs a catalog name with its constructor and a one-line summary.
type entry struct {
	summary string
	build   func() (*diagram.Diagram, error)
}

var entries = map[string]entry{
	"razor-app": {
		summary: "Vue.js frontend, PHP backend behind a web server, PostgreSQL data layer",
		build:   RazorApp,
	},
	"razor-password-manager": {
		summary: "Vue.js frontend, Node.js backend, Firebase data layer",
		build:   RazorPasswordManager,
	},
}

// Names returns the catalog names in sorted order.
func Names() []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Summary returns the one-line description of a catalog entry.
func Summary(name string) string {
	return entries[name].summary
}

// Has reports whether name is a catalog entry.
func Has(name string) bool {
	_, ok := entries[name]
	return ok
}

// Get builds the named diagram.
func Get(name string) (*diagram.Diagram, error) {
	e, ok := entries[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeDiagramNotFound, "unknown diagram %q (available: %v)", name, Names())
	}
	return e.build()
}

// All builds every catalog diagram in [Names] order.
func All() ([]*diagram.Diagram, error) {
	var out []*diagram.Diagram
	for _, name := range Names() {
		d, err := Get(name)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
