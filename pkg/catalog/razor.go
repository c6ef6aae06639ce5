package catalog

import (
	"github.com/razor-app/archdiagram/pkg/diagram"
)

// Attributes shared by both Razor diagrams.
var (
	graphAttr = diagram.Attrs{
		"fontsize":  "20",
		"bgcolor":   "white",
		"rankdir":   "LR",
		"splines":   "ortho",
		"nodesep":   "0.8",
		"ranksep":   "1.0",
		"fontname":  "Sans-Serif",
		"fontcolor": "#2D3436",
		"pad":       "0.4",
	}
	nodeAttr = diagram.Attrs{
		"fontsize":   "12",
		"fontname":   "Sans-Serif",
		"shape":      "box",
		"style":      "rounded",
		"labelloc":   "b",
		"imagepos":   "tc",
		"width":      "1.6",
		"height":     "1.8",
		"imagescale": "true",
		"fontcolor":  "#2D3436",
		"margin":     "0.2",
	}
	edgeAttr = diagram.Attrs{
		"fontsize":  "11",
		"fontname":  "Sans-Serif",
		"fontcolor": "#2D3436",
	}
)

// Edge styles.
var (
	userFlow   = diagram.EdgeStyle{Color: "#e67e22", PenWidth: 2.0}
	composes   = diagram.EdgeStyle{Color: "#27ae60", Style: diagram.LineSolid, PenWidth: 2.0}
	primary    = diagram.EdgeStyle{Color: "#27ae60", PenWidth: 2.0}
	secondary  = diagram.EdgeStyle{Color: "#2980b9", PenWidth: 1.5}
	apiRequest = diagram.EdgeStyle{Color: "#27ae60", Label: "API Requests", PenWidth: 2.0}
	verify     = diagram.EdgeStyle{Color: "#e74c3c", Style: diagram.LineDotted, Label: "Verify", PenWidth: 1.5}
	storage    = diagram.EdgeStyle{Color: "#3498db", Label: "Store/Retrieve", PenWidth: 1.5}
	encrypts   = diagram.EdgeStyle{Color: "#8e44ad", Style: diagram.LineDashed, PenWidth: 1.5}
)

func newBuilder(title string) *diagram.Builder {
	return diagram.NewBuilder(title,
		diagram.WithDirection(diagram.LeftToRight),
		diagram.WithGraphAttr(graphAttr),
		diagram.WithNodeAttr(nodeAttr),
		diagram.WithEdgeAttr(edgeAttr),
	)
}

// RazorApp builds "Razor App Architecture": a Vue.js frontend talking to a
// PHP backend behind a web server, storing passwords in PostgreSQL.
// 11 nodes, 11 edges, 3 clusters.
func RazorApp() (*diagram.Diagram, error) {
	b := newBuilder("Razor App Architecture")

	user := b.Node("user", "User", diagram.IconPerson)

	var vue diagram.NodeRef
	b.Cluster("Frontend (Vue.js)", func(c *diagram.Scope) {
		vue = c.Node("vue", "App.vue", diagram.IconFramework)
		loginForm := c.Node("login_form", "LoginForm", diagram.IconFramework)
		passwordList := c.Node("password_list", "PasswordList", diagram.IconFramework)
		passwordForm := c.Node("password_form", "PasswordForm", diagram.IconFramework)
		c.Link(vue, loginForm, composes)
		c.Link(vue, passwordList, composes)
		c.Link(vue, passwordForm, composes)
	})

	var nginx, auth, passMgmt diagram.NodeRef
	b.Cluster("Backend (PHP)", func(c *diagram.Scope) {
		nginx = c.Node("nginx", "Web Server", diagram.IconNetwork)
		php := c.Node("php", "index.php", diagram.IconLanguage)
		auth = c.Node("auth", "Authentication", diagram.IconLanguage)
		passMgmt = c.Node("pass_mgmt", "Password\nManagement", diagram.IconLanguage)
		c.Connect(nginx, php, primary)
		c.Connect(php, auth, secondary)
		c.Connect(php, passMgmt, secondary)
	})

	var db diagram.NodeRef
	b.Cluster("Data Layer", func(c *diagram.Scope) {
		db = c.Node("db", "Password\nDatabase", diagram.IconDatabase)
		encryption := c.Node("encryption", "Encryption\nModule", diagram.IconStorage)
		c.Link(encryption, db, encrypts)
	})

	b.Connect(user, vue, userFlow)
	b.Connect(vue, nginx, apiRequest)
	b.Connect(auth, db, verify)
	b.Connect(passMgmt, db, storage)

	return b.Build()
}

// RazorPasswordManager builds "Razor Password Manager Architecture": the
// same Vue.js frontend backed by a Node.js service layer and Firebase.
// 12 nodes, 12 edges, 3 clusters.
func RazorPasswordManager() (*diagram.Diagram, error) {
	b := newBuilder("Razor Password Manager Architecture")

	user := b.Node("user", "User", diagram.IconPerson)

	var vue diagram.NodeRef
	b.Cluster("Frontend (Vue.js)", func(c *diagram.Scope) {
		vue = c.Node("vue", "App.vue", diagram.IconFramework)
		loginView := c.Node("login_view", "LoginView", diagram.IconFramework)
		dashboardView := c.Node("dashboard_view", "DashboardView", diagram.IconFramework)
		setupMasterKey := c.Node("setup_master_key", "SetupMasterKey", diagram.IconFramework)
		c.Link(vue, loginView, composes)
		c.Link(vue, dashboardView, composes)
		c.Link(vue, setupMasterKey, composes)
	})

	var express, authService, passwordService, masterKeyService diagram.NodeRef
	b.Cluster("Backend (Node.js)", func(c *diagram.Scope) {
		express = c.Node("express", "Express Server", diagram.IconLanguage)
		authService = c.Node("auth_service", "Auth Service", diagram.IconLanguage)
		passwordService = c.Node("password_service", "Password Service", diagram.IconLanguage)
		masterKeyService = c.Node("master_key_service", "MasterKey Service", diagram.IconLanguage)
		c.Connect(express, authService, primary)
		c.Connect(express, passwordService, secondary)
		c.Connect(express, masterKeyService, secondary)
	})

	var firebaseAuth, firebaseDB, encryption diagram.NodeRef
	b.Cluster("Data Layer (Firebase)", func(c *diagram.Scope) {
		firebaseAuth = c.Node("firebase_auth", "Firebase\nAuthentication", diagram.IconAuth)
		firebaseDB = c.Node("firebase_db", "Firebase\nRealtime DB", diagram.IconDatabase)
		encryption = c.Node("encryption", "Client-side\nEncryption", diagram.IconStorage)
		c.Link(encryption, firebaseDB, encrypts)
	})

	b.Connect(user, vue, userFlow)
	b.Connect(vue, express, apiRequest)
	b.Connect(authService, firebaseAuth, verify)
	b.Connect(passwordService, firebaseDB, storage)
	b.Link(masterKeyService, encryption, encrypts)

	return b.Build()
}
