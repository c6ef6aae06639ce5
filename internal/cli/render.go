package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/razor-app/archdiagram/pkg/catalog"
	"github.com/razor-app/archdiagram/pkg/config"
	"github.com/razor-app/archdiagram/pkg/diagram"
	"github.com/razor-app/archdiagram/pkg/errors"
	"github.com/razor-app/archdiagram/pkg/pipeline"
	"github.com/razor-app/archdiagram/pkg/render"
	"github.com/razor-app/archdiagram/pkg/watch"
)

// target is one diagram named on the command line: a catalog entry or a
// TOML definition file.
type target struct {
	name string
	file bool
}

func (t target) build() (*diagram.Diagram, error) {
	if t.file {
		return diagram.ReadFile(t.name)
	}
	return catalog.Get(t.name)
}

// addRenderFlags registers the flags read by config.Load. Flag names double
// as config keys.
func addRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("output", "o", ".", "output directory")
	f.StringSliceP("formats", "f", []string{render.DefaultFormat}, "output formats ("+strings.Join(render.Formats, ", ")+")")
	f.Bool("no-cache", false, "disable the artifact cache")
	f.String("cache-dir", "", "artifact cache directory (default $XDG_CACHE_HOME/"+appName+")")
	f.Bool("verify", false, "check rendered node, edge and cluster counts against the diagram")
	f.Bool("watch", false, "re-render definition files when they change")

	_ = cmd.RegisterFlagCompletionFunc("formats", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return render.Formats, cobra.ShellCompDirectiveNoFileComp
	})
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [name|file.toml ...]",
		Short: "Render diagrams to image files",
		Long: `Render built-in diagrams or TOML definition files.

Each diagram is written once per format to the output directory, named after
its title: "Razor App Architecture" becomes razor_app_architecture.png.
Existing files are overwritten. Without arguments every built-in is rendered.`,
		Example: `  archdiagram render
  archdiagram render razor-app -f png,svg -o docs/
  archdiagram render stack.toml --watch`,
		ValidArgsFunction: completeTargets,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args)
		},
	}
	addRenderFlags(cmd)
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
	}

	targets, err := resolveTargets(args)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := pipeline.Options{
		OutDir:  cfg.Output,
		Formats: cfg.Formats,
		NoCache: cfg.NoCache,
		Verify:  cfg.Verify,
	}

	ctx := cmd.Context()
	if err := c.renderTargets(ctx, runner, targets, opts); err != nil {
		return err
	}
	if !cfg.Watch {
		return nil
	}
	return c.watchTargets(ctx, runner, targets, opts)
}

// renderTargets renders targets and prints one block per diagram.
func (c *CLI) renderTargets(ctx context.Context, runner *pipeline.Runner, targets []target, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	jobs := make([]pipeline.Job, len(targets))
	for i, t := range targets {
		jobs[i] = t.build
	}

	var spin *Spinner
	if logger.GetLevel() > LogDebug {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d diagram(s)...", len(targets)))
		spin.Start()
	}

	var results []pipeline.Result
	err := runner.Run(ctx, jobs, opts, func(res pipeline.Result) {
		results = append(results, res)
	})
	if spin != nil {
		spin.Stop()
	}

	for _, res := range results {
		printResult(res)
	}
	if err != nil {
		return err
	}
	prog.done("Rendered %d diagram(s)", len(results))
	return nil
}

func printResult(res pipeline.Result) {
	cached := len(res.Artifacts) > 0
	for _, a := range res.Artifacts {
		cached = cached && a.CacheHit
	}

	printSuccess("%s", res.Diagram.Title)
	printStats(res.Diagram.NodeCount(), res.Diagram.EdgeCount(), cached)
	for _, a := range res.Artifacts {
		printFile(a.Path)
	}
	if res.Stats != nil {
		printDetail("verified: %d nodes, %d edges, %d clusters", res.Stats.Nodes, res.Stats.Edges, res.Stats.Clusters)
	}
}

// watchTargets re-renders definition files as they change until ctx ends.
func (c *CLI) watchTargets(ctx context.Context, runner *pipeline.Runner, targets []target, opts pipeline.Options) error {
	byPath := make(map[string]target)
	var files []string
	for _, t := range targets {
		if !t.file {
			continue
		}
		abs, err := filepath.Abs(t.name)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", t.name)
		}
		byPath[abs] = t
		files = append(files, abs)
	}
	if len(files) == 0 {
		printWarning("--watch only follows definition files; nothing to watch")
		return nil
	}

	w, err := watch.New(files, 0, loggerFromContext(ctx))
	if err != nil {
		return err
	}
	printInfo("Watching %d file(s), press Ctrl+C to stop", len(files))

	return w.Run(ctx, func(ctx context.Context, paths []string) {
		changed := make([]target, 0, len(paths))
		for _, p := range paths {
			changed = append(changed, byPath[p])
		}
		if err := c.renderTargets(ctx, runner, changed, opts); err != nil {
			printError("%s", errors.UserMessage(err))
		}
	})
}

// resolveTargets maps arguments to targets without building anything.
// No arguments selects every built-in diagram.
func resolveTargets(args []string) ([]target, error) {
	if len(args) == 0 {
		var out []target
		for _, name := range catalog.Names() {
			out = append(out, target{name: name})
		}
		return out, nil
	}

	out := make([]target, 0, len(args))
	for _, arg := range args {
		t, err := resolveTarget(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func resolveTarget(arg string) (target, error) {
	if isDefinitionFile(arg) {
		if _, err := os.Stat(arg); err != nil {
			return target{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition file %s", arg)
		}
		return target{name: arg, file: true}, nil
	}
	if !catalog.Has(arg) {
		return target{}, errors.New(errors.ErrCodeDiagramNotFound,
			"unknown diagram %q (available: %s)", arg, strings.Join(catalog.Names(), ", "))
	}
	return target{name: arg}, nil
}

func isDefinitionFile(arg string) bool {
	return strings.EqualFold(filepath.Ext(arg), ".toml")
}

// completeTargets offers catalog names and falls back to file completion.
func completeTargets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, name := range catalog.Names() {
		if strings.HasPrefix(name, toComplete) {
			out = append(out, name+"\t"+catalog.Summary(name))
		}
	}
	return out, cobra.ShellCompDirectiveDefault
}
