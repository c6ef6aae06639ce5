package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/razor-app/archdiagram/pkg/cache"
	"github.com/razor-app/archdiagram/pkg/catalog"
	"github.com/razor-app/archdiagram/pkg/diagram"
	"github.com/razor-app/archdiagram/pkg/errors"
	"github.com/razor-app/archdiagram/pkg/render"
)

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.New(&bytes.Buffer{}))
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.OutDir != DefaultOutDir {
		t.Errorf("OutDir = %q, want %q", opts.OutDir, DefaultOutDir)
	}
	if !slices.Equal(opts.Formats, []string{render.FormatPNG}) {
		t.Errorf("Formats = %v, want [png]", opts.Formats)
	}

	bad := Options{Formats: []string{"gif"}}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("gif format error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func catalogJobs() []Job {
	var jobs []Job
	for _, name := range catalog.Names() {
		jobs = append(jobs, func() (*diagram.Diagram, error) { return catalog.Get(name) })
	}
	return jobs
}

func TestRunWritesOneFilePerDiagram(t *testing.T) {
	dir := t.TempDir()
	r := quietRunner(nil)

	var arts []Artifact
	err := r.Run(context.Background(), catalogJobs(), Options{OutDir: dir}, func(res Result) {
		arts = append(arts, res.Artifacts...)
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(arts) != 2 {
		t.Fatalf("Run() reported %d artifacts, want 2", len(arts))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"razor_app_architecture.png", "razor_password_manager_architecture.png"}
	if !slices.Equal(names, want) {
		t.Errorf("files = %v, want %v", names, want)
	}

	for _, a := range arts {
		data, err := os.ReadFile(a.Path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG")) {
			t.Errorf("%s is not a PNG", a.Path)
		}
		if len(data) != a.Size {
			t.Errorf("%s: size %d, artifact reports %d", a.Path, len(data), a.Size)
		}
	}
}

func TestGenerateOverwrites(t *testing.T) {
	dir := t.TempDir()
	d, err := catalog.RazorApp()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, d.Filename(render.FormatDOT))
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	r := quietRunner(nil)
	for i := 0; i < 2; i++ {
		if _, err := r.Generate(context.Background(), d, Options{OutDir: dir, Formats: []string{render.FormatDOT}}); err != nil {
			t.Fatalf("run %d: Generate() error: %v", i+1, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != diagram.ToDOT(d) {
		t.Error("existing file was not overwritten with the DOT source")
	}
}

func TestGenerateCreatesOutDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	d, _ := catalog.RazorPasswordManager()

	arts, err := quietRunner(nil).Generate(context.Background(), d, Options{OutDir: dir, Formats: []string{"dot"}})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if want := filepath.Join(dir, "razor_password_manager_architecture.dot"); arts[0].Path != want {
		t.Errorf("Path = %q, want %q", arts[0].Path, want)
	}
}

func TestGenerateUsesCache(t *testing.T) {
	calls := 0
	orig := renderDOT
	renderDOT = func(ctx context.Context, dot, format string) ([]byte, error) {
		calls++
		return []byte("rendered:" + format), nil
	}
	defer func() { renderDOT = orig }()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(c)
	d, _ := catalog.RazorApp()
	opts := Options{OutDir: t.TempDir(), Formats: []string{"png", "svg"}}

	first, err := r.Generate(context.Background(), d, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Generate(context.Background(), d, opts)
	if err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Errorf("render calls = %d, want 2 (second run should hit cache)", calls)
	}
	if first[0].CacheHit || !second[0].CacheHit || !second[1].CacheHit {
		t.Errorf("cache hits = %v/%v, want miss then hit", first[0].CacheHit, second[0].CacheHit)
	}

	opts.NoCache = true
	if _, err := r.Generate(context.Background(), d, opts); err != nil {
		t.Fatal(err)
	}
	if calls != 4 {
		t.Errorf("render calls with NoCache = %d, want 4", calls)
	}
}

func TestGeneratePropagatesRenderError(t *testing.T) {
	orig := renderDOT
	renderDOT = func(ctx context.Context, dot, format string) ([]byte, error) {
		return nil, errors.New(errors.ErrCodeRenderFailed, "boom")
	}
	defer func() { renderDOT = orig }()

	dir := t.TempDir()
	d, _ := catalog.RazorApp()
	_, err := quietRunner(nil).Generate(context.Background(), d, Options{OutDir: dir})
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("Generate() error = %v, want %s", err, errors.ErrCodeRenderFailed)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("no file should be written on render failure, found %d", len(entries))
	}
}

func TestGenerateRejectsInvalidDiagram(t *testing.T) {
	d := &diagram.Diagram{
		Title:     "Broken",
		Direction: diagram.LeftToRight,
		Nodes:     []diagram.Node{{ID: "a", Label: "A", Icon: diagram.IconAuth}},
		Edges:     []diagram.Edge{{From: "a", To: "ghost", Directed: true}},
	}
	_, err := quietRunner(nil).Generate(context.Background(), d, Options{OutDir: t.TempDir()})
	if !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("Generate() error = %v, want %s", err, errors.ErrCodeUnknownNode)
	}
}

func TestRunFailsFastWithoutRenderer(t *testing.T) {
	orig := engineReady
	engineReady = func(context.Context) error {
		return errors.New(errors.ErrCodeRendererUnavailable, "graphviz missing")
	}
	defer func() { engineReady = orig }()

	built := false
	jobs := []Job{func() (*diagram.Diagram, error) {
		built = true
		return catalog.RazorApp()
	}}

	dir := t.TempDir()
	err := quietRunner(nil).Run(context.Background(), jobs, Options{OutDir: dir}, nil)
	if !errors.Is(err, errors.ErrCodeRendererUnavailable) {
		t.Errorf("Run() error = %v, want %s", err, errors.ErrCodeRendererUnavailable)
	}
	if built {
		t.Error("diagram was built even though the renderer is unavailable")
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("found %d files, want none", len(entries))
	}
}

func TestRunVerify(t *testing.T) {
	var results []Result
	err := quietRunner(nil).Run(context.Background(), catalogJobs(),
		Options{OutDir: t.TempDir(), Formats: []string{"dot"}, Verify: true},
		func(res Result) { results = append(results, res) })
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	for _, res := range results {
		if res.Stats == nil {
			t.Fatalf("%s: Stats not set with Verify", res.Diagram.Title)
		}
		if res.Stats.Nodes != res.Diagram.NodeCount() || res.Stats.Edges != res.Diagram.EdgeCount() {
			t.Errorf("%s: stats %+v", res.Diagram.Title, *res.Stats)
		}
	}
}

func TestVerifyCatalog(t *testing.T) {
	tests := []struct {
		name  string
		nodes int
		edges int
	}{
		{"razor-app", 11, 11},
		{"razor-password-manager", 12, 12},
	}

	r := quietRunner(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := catalog.Get(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			stats, err := r.Verify(context.Background(), d)
			if err != nil {
				t.Fatalf("Verify() error: %v", err)
			}
			if stats.Nodes != tt.nodes || stats.Edges != tt.edges || stats.Clusters != 3 {
				t.Errorf("stats = %+v, want %d nodes, %d edges, 3 clusters", stats, tt.nodes, tt.edges)
			}
		})
	}
}

func TestVerifyMismatch(t *testing.T) {
	orig := renderStats
	renderStats = func(ctx context.Context, dot string) ([]byte, error) {
		return []byte(`<g class="node"></g>`), nil
	}
	defer func() { renderStats = orig }()

	d, _ := catalog.RazorApp()
	stats, err := quietRunner(nil).Verify(context.Background(), d)
	if !errors.Is(err, errors.ErrCodeRenderFailed) {
		t.Errorf("Verify() error = %v, want %s", err, errors.ErrCodeRenderFailed)
	}
	if stats.Nodes != 1 {
		t.Errorf("stats.Nodes = %d, want 1", stats.Nodes)
	}
}

func ExampleRunner_Generate() {
	b := diagram.NewBuilder("Hello Stack")
	b.Node("app", "App", diagram.IconFramework)
	d, _ := b.Build()
	r := NewRunner(nil, nil, log.New(&bytes.Buffer{}))
	dir, _ := os.MkdirTemp("", "archdiagram")
	defer os.RemoveAll(dir)

	arts, err := r.Generate(context.Background(), d, Options{OutDir: dir, Formats: []string{"dot"}})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(filepath.Base(arts[0].Path))
	// Output: hello_stack.dot
}
