package workspace

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Registry manages workspace registration and detection
type Registry struct {
	db      *sql.DB
	dataDir string
}

// NewRegistry creates a new workspace registry
func NewRegistry(dataDir string) (*Registry, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "workspaces.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	r := &Registry{
		db:      db,
		dataDir: dataDir,
	}

	if err := r.init(); err != nil {
		return nil, fmt.Errorf("initialize registry: %w", err)
	}

	return r, nil
}

// DB exposes the registry database handle so sibling stores can share it.
func (r *Registry) DB() *sql.DB {
	return r.db
}

// init creates the database schema
func (r *Registry) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workspaces (
		name TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		type TEXT NOT NULL,
		settings TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_used TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_workspaces_path ON workspaces(path);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Add registers a new workspace
func (r *Registry) Add(w *Workspace) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("validate workspace: %w", err)
	}

	settings, err := json.Marshal(w.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO workspaces (name, path, type, settings, created_at, last_used)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	_, err = r.db.Exec(query, w.Name, w.Path, w.Type, settings, now, now)
	return err
}

// Get retrieves a workspace by name
func (r *Registry) Get(name string) (*Workspace, error) {
	query := `
	SELECT name, path, type, settings, created_at, last_used
	FROM workspaces WHERE name = ?
	`

	w := &Workspace{}
	var settings string
	err := r.db.QueryRow(query, name).Scan(
		&w.Name, &w.Path, &w.Type,
		&settings, &w.CreatedAt, &w.LastUsed,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("workspace not found: %s", name)
	}
	if err != nil {
		return nil, err
	}

	if settings != "" {
		if err := json.Unmarshal([]byte(settings), &w.Settings); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	}

	return w, nil
}

// List returns all registered workspaces
func (r *Registry) List() ([]*Workspace, error) {
	query := `
	SELECT name, path, type, settings, created_at, last_used
	FROM workspaces ORDER BY last_used DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []*Workspace
	for rows.Next() {
		w := &Workspace{}
		var settings string
		err := rows.Scan(
			&w.Name, &w.Path, &w.Type,
			&settings, &w.CreatedAt, &w.LastUsed,
		)
		if err != nil {
			return nil, err
		}

		if settings != "" {
			if err := json.Unmarshal([]byte(settings), &w.Settings); err != nil {
				return nil, fmt.Errorf("unmarshal settings: %w", err)
			}
		}

		workspaces = append(workspaces, w)
	}

	return workspaces, nil
}

// FindByPath finds the workspace that contains the given path. When nested
// workspaces match, the most specific (longest) root wins. Returns nil when
// no registered workspace contains the path.
func (r *Registry) FindByPath(path string) (*Workspace, error) {
	workspaces, err := r.List()
	if err != nil {
		return nil, err
	}

	var bestMatch *Workspace
	bestMatchLen := 0

	for _, w := range workspaces {
		if !w.Contains(path) {
			continue
		}
		if len(w.Path) > bestMatchLen {
			bestMatch = w
			bestMatchLen = len(w.Path)
		}
	}

	if bestMatch != nil {
		if err := r.updateLastUsed(bestMatch.Name); err != nil {
			// Detection still succeeded; surface the bookkeeping failure only.
			fmt.Fprintf(os.Stderr, "Warning: failed to update last used: %v\n", err)
		}
		return bestMatch, nil
	}

	return nil, nil
}

// WorkspaceFor resolves the owning workspace root for a file path. It is the
// resolver contract the results tree consumes: a missing root means the file
// is excluded from the tree, not an error.
func (r *Registry) WorkspaceFor(path string) (string, bool) {
	w, err := r.FindByPath(path)
	if err != nil || w == nil {
		return "", false
	}
	return filepath.Clean(w.Path), true
}

// DetectCurrent detects the workspace for the current directory
func (r *Registry) DetectCurrent() (*Workspace, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	// First check registered workspaces
	if w, err := r.FindByPath(cwd); err == nil && w != nil {
		return w, nil
	}

	// Check if we're in a git repo and auto-register
	if gitRoot := findGitRoot(cwd); gitRoot != "" {
		return r.AutoRegister(gitRoot)
	}

	return nil, fmt.Errorf("no workspace registered for %s", cwd)
}

// AutoRegister automatically registers a git repository as a workspace
func (r *Registry) AutoRegister(path string) (*Workspace, error) {
	name := filepath.Base(path)

	// Check if already registered
	if w, err := r.Get(name); err == nil {
		return w, nil
	}

	w := &Workspace{
		Name: name,
		Path: path,
		Type: TypeGitRepo,
		Settings: map[string]any{
			"auto_registered": true,
		},
	}

	if err := r.Add(w); err != nil {
		return nil, fmt.Errorf("auto-register workspace: %w", err)
	}

	return w, nil
}

// Remove removes a workspace from the registry
func (r *Registry) Remove(name string) error {
	_, err := r.db.Exec("DELETE FROM workspaces WHERE name = ?", name)
	return err
}

// updateLastUsed updates the last used timestamp for a workspace
func (r *Registry) updateLastUsed(name string) error {
	_, err := r.db.Exec(
		"UPDATE workspaces SET last_used = ? WHERE name = ?",
		time.Now(), name,
	)
	return err
}

// Close closes the registry database
func (r *Registry) Close() error {
	return r.db.Close()
}

// findGitRoot finds the root of a git repository
func findGitRoot(path string) string {
	current := path
	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return ""
}
