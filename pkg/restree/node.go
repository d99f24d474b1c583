package restree

import (
	"path/filepath"

	"github.com/modlens/modlens/pkg/analysis"
)

// Kind categorizes the different kinds of nodes in the results tree.
type Kind int

const (
	KindConfig Kind = iota
	KindResultsRoot
	KindFolder
	KindFile
	KindClassification
	KindHint
	KindClassificationsGroup
	KindHintsGroup
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindResultsRoot:
		return "results-root"
	case KindFolder:
		return "folder"
	case KindFile:
		return "file"
	case KindClassification:
		return "classification"
	case KindHint:
		return "hint"
	case KindClassificationsGroup:
		return "classifications-group"
	case KindHintsGroup:
		return "hints-group"
	}
	return "unknown"
}

// CollapsibleState mirrors the host widget's expansion model.
type CollapsibleState int

const (
	StateNone CollapsibleState = iota
	StateCollapsed
	StateExpanded
)

// Icon is an icon-path pair: a glyph for capable terminals and a theme
// class name for restricted runtimes that only accept styled classes.
type Icon struct {
	Glyph      string
	ThemeClass string
}

var (
	IconLoading = Icon{Glyph: "⟳", ThemeClass: "icon-loading"}
	IconIdle    = Icon{Glyph: "·", ThemeClass: "icon-idle"}
	IconNone    = Icon{}
)

// Node is a single presentation node in the results tree. Resource nodes
// (file/folder) carry a Path; issue nodes carry the Issue they present.
// Parent points at the node's logical parent folder, or at the results root
// for workspace-root folders.
type Node struct {
	Kind        Kind
	Path        string
	Label       string
	Issue       *analysis.Issue
	Parent      *Node
	Collapsible CollapsibleState
	Icon        Icon
}

// IsResource reports whether the node represents a file or folder.
func (n *Node) IsResource() bool {
	return n.Kind == KindFile || n.Kind == KindFolder
}

func newFileNode(path string) *Node {
	return &Node{
		Kind:        KindFile,
		Path:        path,
		Label:       filepath.Base(path),
		Collapsible: StateCollapsed,
	}
}

func newFolderNode(path string) *Node {
	return &Node{
		Kind:        KindFolder,
		Path:        path,
		Label:       filepath.Base(path),
		Collapsible: StateCollapsed,
	}
}

func newIssueNode(iss *analysis.Issue, parent *Node) *Node {
	kind := KindClassification
	if iss.Kind == analysis.KindHint {
		kind = KindHint
	}
	return &Node{
		Kind:   kind,
		Path:   iss.File,
		Label:  iss.Title,
		Issue:  iss,
		Parent: parent,
	}
}
