package analysis

import "time"

// IssueKind distinguishes the two kinds of findings an analysis run produces.
type IssueKind string

const (
	KindClassification IssueKind = "classification"
	KindHint           IssueKind = "hint"
)

// Severity ranks how urgently a finding should be addressed.
type Severity int8

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityLow:      "low",
	SeverityMedium:   "medium",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "low"
}

// ParseSeverity maps a severity label to its Severity value. Unknown labels
// fall back to low rather than failing the load.
func ParseSeverity(name string) Severity {
	for sev, n := range severityNames {
		if n == name {
			return sev
		}
	}
	return SeverityLow
}

// Issue is a single analysis finding tied to one source file.
type Issue struct {
	ID       string    `json:"id" yaml:"id"`
	Kind     IssueKind `json:"kind" yaml:"kind"`
	File     string    `json:"file" yaml:"file"`
	Title    string    `json:"title" yaml:"title"`
	Rule     string    `json:"rule,omitempty" yaml:"rule,omitempty"`
	Line     int       `json:"line,omitempty" yaml:"line,omitempty"`
	Severity Severity  `json:"severity" yaml:"-"`
	Complete bool      `json:"complete,omitempty" yaml:"-"`
}

// Results holds one analysis run. Classifications and hints keep the order
// the analyzer emitted them in.
type Results struct {
	Version         int       `json:"version"`
	GeneratedAt     time.Time `json:"generated_at"`
	Classifications []*Issue  `json:"classifications"`
	Hints           []*Issue  `json:"hints"`
}

// Count returns the total number of findings in the run.
func (r *Results) Count() int {
	return len(r.Classifications) + len(r.Hints)
}

// Files returns the set of distinct file paths referenced by the run.
func (r *Results) Files() []string {
	seen := make(map[string]bool)
	var files []string
	for _, iss := range r.Classifications {
		if !seen[iss.File] {
			seen[iss.File] = true
			files = append(files, iss.File)
		}
	}
	for _, iss := range r.Hints {
		if !seen[iss.File] {
			seen[iss.File] = true
			files = append(files, iss.File)
		}
	}
	return files
}

// Remove drops an issue from the run. It is a no-op when the issue is not
// part of the run.
func (r *Results) Remove(issue *Issue) {
	r.Classifications = removeIssue(r.Classifications, issue)
	r.Hints = removeIssue(r.Hints, issue)
}

func removeIssue(issues []*Issue, target *Issue) []*Issue {
	for i, iss := range issues {
		if iss == target {
			return append(issues[:i], issues[i+1:]...)
		}
	}
	return issues
}
