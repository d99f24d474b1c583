package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Type represents the type of workspace
type Type string

const (
	TypeGitRepo   Type = "git-repo"
	TypeMonorepo  Type = "monorepo"
	TypeDirectory Type = "directory"
)

// Workspace represents a registered workspace root. Every analysis finding
// is attributed to the workspace whose path contains the finding's file.
type Workspace struct {
	Name      string         `yaml:"name" json:"name"`
	Path      string         `yaml:"path" json:"path"`
	Type      Type           `yaml:"type" json:"type"`
	Settings  map[string]any `yaml:"settings" json:"settings"`
	CreatedAt time.Time      `yaml:"created_at" json:"created_at"`
	LastUsed  time.Time      `yaml:"last_used" json:"last_used"`
}

// Contains reports whether the given path lives under this workspace root.
// Comparison is case-insensitive to handle filesystem case variations.
func (w *Workspace) Contains(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	wsPath, err := filepath.Abs(w.Path)
	if err != nil {
		return false
	}
	lowerPath := strings.ToLower(absPath)
	lowerWS := strings.ToLower(wsPath)
	return lowerPath == lowerWS || strings.HasPrefix(lowerPath, lowerWS+string(filepath.Separator))
}

// Validate checks if the workspace configuration is valid
func (w *Workspace) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}
	if w.Path == "" {
		return fmt.Errorf("workspace path cannot be empty")
	}

	// Expand home directory
	if strings.HasPrefix(w.Path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		w.Path = filepath.Join(home, w.Path[1:])
	}

	return nil
}
