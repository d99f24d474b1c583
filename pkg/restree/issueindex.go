package restree

import (
	"path/filepath"

	"github.com/modlens/modlens/pkg/analysis"
)

// IssueIndex maintains the per-file issue lists in append order plus the
// issue-to-node mapping. A presentation node is created once per issue and
// never recreated for the same issue instance.
type IssueIndex struct {
	files map[string][]*analysis.Issue
	nodes map[*analysis.Issue]*Node
}

// NewIssueIndex creates an empty index.
func NewIssueIndex() *IssueIndex {
	return &IssueIndex{
		files: make(map[string][]*analysis.Issue),
		nodes: make(map[*analysis.Issue]*Node),
	}
}

// Record appends the issue to its file's list and stores its node.
func (ix *IssueIndex) Record(iss *analysis.Issue, node *Node) {
	file := filepath.Clean(iss.File)
	ix.files[file] = append(ix.files[file], iss)
	ix.nodes[iss] = node
}

// Unrecord removes the issue from its file's list and drops the node
// mapping. It reports whether the file now has zero recorded issues, the
// signal for the path tree's delete cascade.
func (ix *IssueIndex) Unrecord(iss *analysis.Issue) bool {
	file := filepath.Clean(iss.File)
	issues := ix.files[file]
	for i, candidate := range issues {
		if candidate == iss {
			issues = append(issues[:i], issues[i+1:]...)
			break
		}
	}
	delete(ix.nodes, iss)

	if len(issues) == 0 {
		delete(ix.files, file)
		return true
	}
	ix.files[file] = issues
	return false
}

// IssuesFor returns the recorded issues for a file in append order. The
// returned slice is empty when nothing is recorded.
func (ix *IssueIndex) IssuesFor(file string) []*analysis.Issue {
	return ix.files[filepath.Clean(file)]
}

// NodeFor returns the presentation node recorded for the issue, or nil.
func (ix *IssueIndex) NodeFor(iss *analysis.Issue) *Node {
	return ix.nodes[iss]
}

// Len returns the number of recorded issues.
func (ix *IssueIndex) Len() int {
	return len(ix.nodes)
}
