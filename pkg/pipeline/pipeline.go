// Package pipeline turns diagram descriptions into files on disk.
//
// One run walks a diagram through three stages:
//
//  1. Validate: reject dangling edges, duplicate ids and unknown icons
//  2. Render: convert to DOT and lay it out with Graphviz (cached per format)
//  3. Write: store each artifact under the output directory, named after the title
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	arts, err := runner.Generate(ctx, d, pipeline.Options{
//	    OutDir:  ".",
//	    Formats: []string{"png", "svg"},
//	})
//
// Existing files are overwritten, so running twice in the same directory
// always succeeds.
package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/razor-app/archdiagram/pkg/diagram"
	"github.com/razor-app/archdiagram/pkg/errors"
	"github.com/razor-app/archdiagram/pkg/render"
)

// DefaultOutDir is the directory artifacts are written to by default.
const DefaultOutDir = "."

// Options configures one pipeline run.
type Options struct {
	OutDir  string      // destination directory, created if missing
	Formats []string    // output formats, see render.Formats
	NoCache bool        // bypass artifact cache reads and writes
	Verify  bool        // compare declared and rendered element counts (Run only)
	Logger  *log.Logger // optional, defaults to the runner's logger
}

// ValidateAndSetDefaults fills empty fields and checks formats.
func (o *Options) ValidateAndSetDefaults() error {
	if o.OutDir == "" {
		o.OutDir = DefaultOutDir
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{render.DefaultFormat}
	}
	if err := errors.ValidatePath(o.OutDir); err != nil {
		return err
	}
	return render.ValidateFormats(o.Formats)
}

// Artifact is one rendered file.
type Artifact struct {
	Title    string // diagram title
	Format   string // output format
	Path     string // file written
	Size     int    // bytes written
	CacheHit bool   // served from the artifact cache
}

// Job builds one diagram on demand.
type Job func() (*diagram.Diagram, error)

// Result is the outcome of one job.
type Result struct {
	Diagram   *diagram.Diagram
	Artifacts []Artifact
	Stats     *render.Stats // set when verification ran
}
