package diagram

import (
	"github.com/razor-app/archdiagram/pkg/errors"
)

// Icon is the visual category of a node.
type Icon string

const (
	IconPerson    Icon = "person"    // human actor
	IconFramework Icon = "framework" // UI or application framework component
	IconLanguage  Icon = "language"  // language runtime or server process
	IconDatabase  Icon = "database"
	IconStorage   Icon = "storage"
	IconAuth      Icon = "auth" // authentication provider
	IconNetwork   Icon = "network"
)

// Icons lists every icon category in a stable order.
var Icons = []Icon{IconPerson, IconFramework, IconLanguage, IconDatabase, IconStorage, IconAuth, IconNetwork}

// iconStyle is how a category is drawn without bitmap icons.
type iconStyle struct {
	shape string
	style string
	fill  string
}

var iconStyles = map[Icon]iconStyle{
	IconPerson:    {shape: "ellipse", style: "filled", fill: "#FDEBD0"},
	IconFramework: {shape: "box", style: "rounded,filled", fill: "#D5F5E3"},
	IconLanguage:  {shape: "box", style: "rounded,filled", fill: "#D6EAF8"},
	IconDatabase:  {shape: "cylinder", style: "filled", fill: "#E8DAEF"},
	IconStorage:   {shape: "folder", style: "filled", fill: "#FCF3CF"},
	IconAuth:      {shape: "hexagon", style: "filled", fill: "#FADBD8"},
	IconNetwork:   {shape: "component", style: "filled", fill: "#D1F2EB"},
}

// Valid reports whether i is a known category.
func (i Icon) Valid() bool {
	_, ok := iconStyles[i]
	return ok
}

// ParseIcon converts a definition-file string into an Icon.
func ParseIcon(s string) (Icon, error) {
	i := Icon(s)
	if !i.Valid() {
		return "", errors.New(errors.ErrCodeInvalidDiagram, "unknown icon %q", s)
	}
	return i, nil
}
