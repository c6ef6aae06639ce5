package diagram

import (
	"maps"
	"slices"

	"github.com/razor-app/archdiagram/pkg/errors"
)

// Validate checks the structural invariants of d:
//
//   - the title is usable as a file name
//   - the direction is a Graphviz rank direction
//   - graph, node and edge attribute names are Graphviz identifiers
//   - node IDs are well-formed and unique, labels non-empty, icons known
//   - cluster labels are non-empty and members exist in at most one cluster
//   - edges reference declared nodes and carry a valid style
//
// It returns the first violation found as a coded *errors.Error.
func (d *Diagram) Validate() error {
	if err := errors.ValidateTitle(d.Title); err != nil {
		return err
	}
	if !d.Direction.Valid() {
		return errors.New(errors.ErrCodeInvalidDiagram, "invalid direction %q (must be LR, RL, TB or BT)", d.Direction)
	}

	for _, attrs := range []Attrs{d.GraphAttr, d.NodeAttr, d.EdgeAttr} {
		for _, k := range slices.Sorted(maps.Keys(attrs)) {
			if err := errors.ValidateAttrKey(k); err != nil {
				return err
			}
		}
	}

	seen := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return err
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeDuplicateNode, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
		if n.Label == "" {
			return errors.New(errors.ErrCodeInvalidDiagram, "node %q has an empty label", n.ID)
		}
		if !n.Icon.Valid() {
			return errors.New(errors.ErrCodeInvalidDiagram, "node %q has unknown icon %q", n.ID, n.Icon)
		}
	}

	member := make(map[string]string)
	for _, c := range d.Clusters {
		if c.Label == "" {
			return errors.New(errors.ErrCodeInvalidDiagram, "cluster label cannot be empty")
		}
		for _, id := range c.Nodes {
			if !seen[id] {
				return errors.New(errors.ErrCodeUnknownNode, "cluster %q references unknown node %q", c.Label, id)
			}
			if prev, ok := member[id]; ok {
				return errors.New(errors.ErrCodeInvalidDiagram, "node %q is in clusters %q and %q", id, prev, c.Label)
			}
			member[id] = c.Label
		}
	}

	for i, e := range d.Edges {
		if !seen[e.From] {
			return errors.New(errors.ErrCodeUnknownNode, "edge %d references unknown node %q", i, e.From)
		}
		if !seen[e.To] {
			return errors.New(errors.ErrCodeUnknownNode, "edge %d references unknown node %q", i, e.To)
		}
		if !e.Style.Valid() {
			return errors.New(errors.ErrCodeInvalidDiagram, "edge %d has unknown line style %q", i, e.Style)
		}
		if e.PenWidth < 0 {
			return errors.New(errors.ErrCodeInvalidDiagram, "edge %d has negative pen width", i)
		}
	}
	return nil
}
