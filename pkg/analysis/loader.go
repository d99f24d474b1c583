package analysis

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// resultsFile is the on-disk YAML shape of an analysis run.
type resultsFile struct {
	Version         int         `yaml:"version"`
	GeneratedAt     string      `yaml:"generated"`
	Classifications []issueFile `yaml:"classifications"`
	Hints           []issueFile `yaml:"hints"`
}

type issueFile struct {
	ID       string `yaml:"id"`
	File     string `yaml:"file"`
	Title    string `yaml:"title"`
	Rule     string `yaml:"rule"`
	Line     int    `yaml:"line"`
	Severity string `yaml:"severity"`
}

// LoadFile reads an analysis results file. Relative issue paths are resolved
// against the directory containing the results file.
func LoadFile(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}

	var rf resultsFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}

	baseDir := filepath.Dir(path)
	results := &Results{Version: rf.Version}

	if rf.GeneratedAt != "" {
		if ts, err := time.Parse(time.RFC3339, rf.GeneratedAt); err == nil {
			results.GeneratedAt = ts
		}
	}

	for _, raw := range rf.Classifications {
		results.Classifications = append(results.Classifications, raw.toIssue(KindClassification, baseDir))
	}
	for _, raw := range rf.Hints {
		results.Hints = append(results.Hints, raw.toIssue(KindHint, baseDir))
	}

	return results, nil
}

func (f issueFile) toIssue(kind IssueKind, baseDir string) *Issue {
	file := f.File
	if !filepath.IsAbs(file) {
		file = filepath.Join(baseDir, file)
	}
	return &Issue{
		ID:       f.ID,
		Kind:     kind,
		File:     filepath.Clean(file),
		Title:    f.Title,
		Rule:     f.Rule,
		Line:     f.Line,
		Severity: ParseSeverity(f.Severity),
	}
}
