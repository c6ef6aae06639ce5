package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestRunReportsChangedFile(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	watched := filepath.Join(dir, "app.toml")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{watched, other} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	w, err := New([]string{watched}, 50*time.Millisecond, log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, paths []string) {
			batches <- paths
		})
	}()

	// Give the watcher a moment to settle before touching files.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(other, []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(watched, []byte("title = \"v\""), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case paths := <-batches:
		if !slices.Equal(paths, []string{watched}) {
			t.Errorf("batch = %v, want [%s]", paths, watched)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing", "app.toml")}, 0, nil)
	if err == nil {
		t.Error("New() should fail when the parent directory does not exist")
	}
}
