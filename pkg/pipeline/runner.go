package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/razor-app/archdiagram/pkg/cache"
	"github.com/razor-app/archdiagram/pkg/diagram"
	"github.com/razor-app/archdiagram/pkg/errors"
	"github.com/razor-app/archdiagram/pkg/observability"
	"github.com/razor-app/archdiagram/pkg/render"
)

// Seams replaced in tests.
var (
	engineReady = render.Ready
	renderDOT   = render.Render
	renderStats = render.RenderSVG
)

// Runner executes the pipeline with artifact caching.
//
// The Runner holds no per-run state, so one value can serve several
// diagrams in sequence.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Prepare checks that the renderer can start. Call it before building any
// diagram so a broken installation fails at setup.
func (r *Runner) Prepare(ctx context.Context) error {
	start := time.Now()
	if err := engineReady(ctx); err != nil {
		return err
	}
	r.Logger.Debug("renderer ready", "duration", time.Since(start))
	return nil
}

// Run checks the renderer, then builds and generates each job in order,
// passing every outcome to report. Nothing is built when Graphviz cannot start.
// With opts.Verify set, each diagram is also checked against the counts
// Graphviz draws.
func (r *Runner) Run(ctx context.Context, jobs []Job, opts Options, report func(Result)) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if err := r.Prepare(ctx); err != nil {
		return err
	}

	for _, job := range jobs {
		d, err := job()
		if err != nil {
			return err
		}
		arts, err := r.Generate(ctx, d, opts)
		if err != nil {
			return err
		}
		res := Result{Diagram: d, Artifacts: arts}
		if opts.Verify {
			stats, err := r.Verify(ctx, d)
			if err != nil {
				return err
			}
			res.Stats = &stats
		}
		if report != nil {
			report(res)
		}
	}
	return nil
}

// Generate renders d in every requested format and writes the files.
func (r *Runner) Generate(ctx context.Context, d *diagram.Diagram, opts Options) ([]Artifact, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts).With("run", uuid.NewString(), "diagram", d.Title)

	if err := d.Validate(); err != nil {
		return nil, err
	}
	observability.Pipeline().OnBuild(ctx, d.Title, d.NodeCount(), d.EdgeCount(), d.ClusterCount())
	logger.Debug("validated",
		"nodes", d.NodeCount(),
		"edges", d.EdgeCount(),
		"clusters", d.ClusterCount())

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory %s", opts.OutDir)
	}

	dot := diagram.ToDOT(d)
	dotHash := cache.Hash([]byte(dot))

	arts := make([]Artifact, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return arts, err
		}

		data, hit, err := r.renderCached(ctx, d.Title, dot, dotHash, format, opts.NoCache)
		if err != nil {
			return arts, err
		}

		path := filepath.Join(opts.OutDir, d.Filename(format))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return arts, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		observability.Pipeline().OnWrite(ctx, path, len(data))
		logger.Debug("wrote artifact", "path", path, "bytes", len(data), "cached", hit)

		arts = append(arts, Artifact{
			Title:    d.Title,
			Format:   format,
			Path:     path,
			Size:     len(data),
			CacheHit: hit,
		})
	}
	return arts, nil
}

// Verify renders d to SVG and compares the element counts Graphviz drew
// with the declared ones. The rendered counts are returned either way.
func (r *Runner) Verify(ctx context.Context, d *diagram.Diagram) (render.Stats, error) {
	if err := d.Validate(); err != nil {
		return render.Stats{}, err
	}
	svg, err := renderStats(ctx, diagram.ToDOT(d))
	if err != nil {
		return render.Stats{}, err
	}

	got := render.SVGStats(svg)
	want := render.Stats{Nodes: d.NodeCount(), Edges: d.EdgeCount(), Clusters: d.ClusterCount()}
	if got != want {
		return got, errors.New(errors.ErrCodeRenderFailed,
			"%s: rendered %d nodes, %d edges, %d clusters; declared %d, %d, %d",
			d.Title, got.Nodes, got.Edges, got.Clusters, want.Nodes, want.Edges, want.Clusters)
	}
	r.Logger.Debug("verified", "diagram", d.Title, "nodes", got.Nodes, "edges", got.Edges, "clusters", got.Clusters)
	return got, nil
}

// renderCached returns the artifact for format, consulting the cache first.
func (r *Runner) renderCached(ctx context.Context, title, dot, dotHash, format string, noCache bool) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(dotHash, cache.ArtifactKeyOpts{Format: format})

	if !noCache {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	observability.Pipeline().OnRenderStart(ctx, title, format)
	start := time.Now()
	data, err := renderDOT(ctx, dot, format)
	observability.Pipeline().OnRenderComplete(ctx, title, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if !noCache {
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
