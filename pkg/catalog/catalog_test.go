package catalog

import (
	"slices"
	"strings"
	"testing"

	"github.com/razor-app/archdiagram/pkg/diagram"
	"github.com/razor-app/archdiagram/pkg/errors"
)

func TestNames(t *testing.T) {
	want := []string{"razor-app", "razor-password-manager"}
	if got := Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	for _, name := range want {
		if !Has(name) {
			t.Errorf("Has(%q) = false", name)
		}
		if Summary(name) == "" {
			t.Errorf("Summary(%q) is empty", name)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("nope")
	if !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		t.Errorf("Get(nope) error = %v, want %s", err, errors.ErrCodeDiagramNotFound)
	}
}

func TestCatalogStructure(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		file     string
		nodes    int
		edges    int
		clusters []string
	}{
		{
			name:     "razor-app",
			title:    "Razor App Architecture",
			file:     "razor_app_architecture.png",
			nodes:    11,
			edges:    11,
			clusters: []string{"Frontend (Vue.js)", "Backend (PHP)", "Data Layer"},
		},
		{
			name:     "razor-password-manager",
			title:    "Razor Password Manager Architecture",
			file:     "razor_password_manager_architecture.png",
			nodes:    12,
			edges:    12,
			clusters: []string{"Frontend (Vue.js)", "Backend (Node.js)", "Data Layer (Firebase)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Get(tt.name)
			if err != nil {
				t.Fatalf("Get() error: %v", err)
			}
			if d.Title != tt.title {
				t.Errorf("Title = %q, want %q", d.Title, tt.title)
			}
			if got := d.Filename("png"); got != tt.file {
				t.Errorf("Filename(png) = %q, want %q", got, tt.file)
			}
			if d.NodeCount() != tt.nodes {
				t.Errorf("NodeCount() = %d, want %d", d.NodeCount(), tt.nodes)
			}
			if d.EdgeCount() != tt.edges {
				t.Errorf("EdgeCount() = %d, want %d", d.EdgeCount(), tt.edges)
			}
			var labels []string
			for _, c := range d.Clusters {
				labels = append(labels, c.Label)
			}
			if !slices.Equal(labels, tt.clusters) {
				t.Errorf("clusters = %v, want %v", labels, tt.clusters)
			}
			if d.ClusterOf("user") != -1 {
				t.Error("user should sit outside every cluster")
			}
			if err := d.Validate(); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}
}

func TestRazorAppEdges(t *testing.T) {
	d, err := RazorApp()
	if err != nil {
		t.Fatal(err)
	}

	var undirected int
	for _, e := range d.Edges {
		if !e.Directed {
			undirected++
		}
	}
	if undirected != 4 {
		t.Errorf("undirected edges = %d, want 4", undirected)
	}

	dot := diagram.ToDOT(d)
	for _, want := range []string{
		`"auth" -> "db" [color="#e74c3c", style="dotted", penwidth="1.5", label="Verify"];`,
		`"pass_mgmt" -> "db" [color="#3498db", penwidth="1.5", label="Store/Retrieve"];`,
		`"encryption" -> "db" [color="#8e44ad", style="dashed", penwidth="1.5", dir="none"];`,
		`"vue" -> "nginx" [color="#27ae60", penwidth="2.0", label="API Requests"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q", want)
		}
	}
}

func TestRazorPasswordManagerEdges(t *testing.T) {
	d, err := RazorPasswordManager()
	if err != nil {
		t.Fatal(err)
	}

	last := d.Edges[len(d.Edges)-1]
	if last.From != "master_key_service" || last.To != "encryption" || last.Directed {
		t.Errorf("last edge = %+v, want undirected master_key_service - encryption", last)
	}
	if n, _ := d.Node("firebase_auth"); n.Icon != diagram.IconAuth {
		t.Errorf("firebase_auth icon = %q, want auth", n.Icon)
	}
}

func TestAll(t *testing.T) {
	all, err := All()
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("All() returned %d diagrams, want 2", len(all))
	}
	if all[0].Title != "Razor App Architecture" {
		t.Errorf("All()[0].Title = %q", all[0].Title)
	}
}

func TestBuildsAreIndependent(t *testing.T) {
	a, _ := RazorApp()
	b, _ := RazorApp()
	a.GraphAttr["bgcolor"] = "black"
	if b.GraphAttr["bgcolor"] != "white" {
		t.Error("diagrams must not share attribute maps")
	}
	if graphAttr["bgcolor"] != "white" {
		t.Error("shared attribute defaults were mutated")
	}
}
