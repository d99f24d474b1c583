package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewRegistry(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	reg, err := NewRegistry(dataDir)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	defer reg.Close()

	if reg.dataDir != dataDir {
		t.Errorf("Expected dataDir %s, got %s", dataDir, reg.dataDir)
	}

	// Check if database file was created
	dbFile := filepath.Join(dataDir, "workspaces.db")
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		t.Error("Expected database file to be created")
	}
}

func TestAddAndGetWorkspace(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	reg, err := NewRegistry(dataDir)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	defer reg.Close()

	ws := &Workspace{
		Name:      "test-workspace",
		Path:      filepath.Join(tmpDir, "test-workspace"),
		Type:      TypeDirectory,
		Settings:  map[string]any{"group_by_file": true},
		CreatedAt: time.Now(),
		LastUsed:  time.Now(),
	}

	if err := reg.Add(ws); err != nil {
		t.Fatalf("Failed to add workspace: %v", err)
	}

	retrieved, err := reg.Get("test-workspace")
	if err != nil {
		t.Fatalf("Failed to get workspace: %v", err)
	}

	if retrieved.Name != ws.Name {
		t.Errorf("Expected workspace name %s, got %s", ws.Name, retrieved.Name)
	}

	if retrieved.Type != ws.Type {
		t.Errorf("Expected workspace type %s, got %s", ws.Type, retrieved.Type)
	}

	// Test Get non-existent
	_, err = reg.Get("non-existent")
	if err == nil {
		t.Error("Expected error when getting non-existent workspace")
	}
}

func TestListWorkspaces(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	reg, err := NewRegistry(dataDir)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	defer reg.Close()

	workspaces := []*Workspace{
		{
			Name: "workspace1",
			Path: filepath.Join(tmpDir, "ws1"),
			Type: TypeDirectory,
		},
		{
			Name: "workspace2",
			Path: filepath.Join(tmpDir, "ws2"),
			Type: TypeGitRepo,
		},
	}

	for _, ws := range workspaces {
		if err := reg.Add(ws); err != nil {
			t.Fatalf("Failed to add workspace: %v", err)
		}
	}

	listed, err := reg.List()
	if err != nil {
		t.Fatalf("Failed to list workspaces: %v", err)
	}

	if len(listed) != len(workspaces) {
		t.Errorf("Expected %d workspaces, got %d", len(workspaces), len(listed))
	}
}

func TestRemoveWorkspace(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	reg, err := NewRegistry(dataDir)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	defer reg.Close()

	ws := &Workspace{
		Name: "test-workspace",
		Path: filepath.Join(tmpDir, "test-workspace"),
		Type: TypeDirectory,
	}

	if err := reg.Add(ws); err != nil {
		t.Fatalf("Failed to add workspace: %v", err)
	}

	if err := reg.Remove("test-workspace"); err != nil {
		t.Fatalf("Failed to remove workspace: %v", err)
	}

	_, err = reg.Get("test-workspace")
	if err == nil {
		t.Error("Expected error when getting removed workspace")
	}
}

func TestFindByPath(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	reg, err := NewRegistry(dataDir)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	defer reg.Close()

	parentDir := filepath.Join(tmpDir, "parent")
	childDir := filepath.Join(parentDir, "child")
	if err := os.MkdirAll(childDir, 0755); err != nil {
		t.Fatalf("failed to create test directory: %v", err)
	}

	ws := &Workspace{
		Name: "parent-workspace",
		Path: parentDir,
		Type: TypeDirectory,
	}

	if err := reg.Add(ws); err != nil {
		t.Fatalf("Failed to add workspace: %v", err)
	}

	found, err := reg.FindByPath(childDir)
	if err != nil {
		t.Fatalf("Failed to find workspace by path: %v", err)
	}

	if found.Name != "parent-workspace" {
		t.Errorf("Expected to find parent-workspace, got %s", found.Name)
	}

	found, err = reg.FindByPath(parentDir)
	if err != nil {
		t.Fatalf("Failed to find workspace by exact path: %v", err)
	}

	if found.Name != "parent-workspace" {
		t.Errorf("Expected to find parent-workspace, got %s", found.Name)
	}

	// Non-workspace path resolves to nothing
	found, err = reg.FindByPath(tmpDir)
	if err != nil {
		t.Fatalf("FindByPath returned error: %v", err)
	}
	if found != nil {
		t.Error("Expected nil workspace for non-workspace path")
	}
}

func TestWorkspaceFor(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	reg, err := NewRegistry(dataDir)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	defer reg.Close()

	wsDir := filepath.Join(tmpDir, "ws")
	if err := reg.Add(&Workspace{Name: "ws", Path: wsDir, Type: TypeDirectory}); err != nil {
		t.Fatalf("Failed to add workspace: %v", err)
	}

	root, ok := reg.WorkspaceFor(filepath.Join(wsDir, "src", "Main.java"))
	if !ok {
		t.Fatal("Expected file inside workspace to resolve")
	}
	if root != wsDir {
		t.Errorf("Expected root %s, got %s", wsDir, root)
	}

	if _, ok := reg.WorkspaceFor(filepath.Join(tmpDir, "elsewhere", "Main.java")); ok {
		t.Error("Expected file outside all workspaces not to resolve")
	}
}

func TestNestedWorkspacePrefersMostSpecific(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	reg, err := NewRegistry(dataDir)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	defer reg.Close()

	outer := filepath.Join(tmpDir, "mono")
	inner := filepath.Join(outer, "services", "billing")
	if err := reg.Add(&Workspace{Name: "mono", Path: outer, Type: TypeMonorepo}); err != nil {
		t.Fatalf("Failed to add workspace: %v", err)
	}
	if err := reg.Add(&Workspace{Name: "billing", Path: inner, Type: TypeDirectory}); err != nil {
		t.Fatalf("Failed to add workspace: %v", err)
	}

	root, ok := reg.WorkspaceFor(filepath.Join(inner, "src", "Main.java"))
	if !ok {
		t.Fatal("Expected resolution inside nested workspace")
	}
	if root != inner {
		t.Errorf("Expected most specific root %s, got %s", inner, root)
	}
}
