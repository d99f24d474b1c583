package restree

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/modlens/modlens/pkg/analysis"
)

// Source is the configuration collaborator the orchestrator consumes. It
// owns the loaded results and persists issue mutations; failures from it
// propagate unchanged to the host.
type Source interface {
	Name() string
	Results() *analysis.Results
	DeleteIssue(iss *analysis.Issue) error
	MarkIssueAsComplete(iss *analysis.Issue) error
	Report() string
}

// Host is the tree-view widget surface the orchestrator drives.
type Host interface {
	// Refresh re-renders the subtree rooted at the node.
	Refresh(n *Node)
	// Reveal scrolls the node into view, optionally expanding it.
	Reveal(n *Node, expand bool)
	// NodeCreated fires once per node creation for downstream listeners.
	NodeCreated(n *Node)
}

// ChangeType tags a configuration change record.
type ChangeType string

const (
	ChangeName    ChangeType = "name"
	ChangeResults ChangeType = "results"
)

// Change is a configuration change record delivered by the source.
type Change struct {
	Type ChangeType
	Name string
}

// Options control the display policy of the results tree.
type Options struct {
	// GroupByFile toggles between the file/folder hierarchy and a flat
	// issue listing under the results root.
	GroupByFile bool
	// GroupIssueKinds adds per-file classification/hint group nodes.
	GroupIssueKinds bool
}

// iconDecayDelay is how long the transient loading indicator stays up.
const iconDecayDelay = 2 * time.Second

// ConfigNode orchestrates the path tree and issue index for one
// configuration, answering the host's children queries and reacting to
// configuration-change and results-loaded events. All mutations are driven
// by events the host delivers serially; there is no locking.
type ConfigNode struct {
	source   Source
	resolver Resolver
	host     Host
	log      *logrus.Entry
	opts     Options

	node        *Node
	resultsRoot *Node
	tree        *PathTree
	index       *IssueIndex
	issueOrder  []*Node
	groups      map[string]map[Kind]*Node

	// gen invalidates pending icon-decay callbacks when a newer reload
	// supersedes them.
	gen      int
	schedule func(time.Duration, func())
}

// New creates an orchestrator for the given configuration source.
func New(source Source, resolver Resolver, host Host, opts Options, log *logrus.Logger) *ConfigNode {
	if log == nil {
		log = logrus.New()
	}
	c := &ConfigNode{
		source:   source,
		resolver: resolver,
		host:     host,
		opts:     opts,
		log:      log.WithField("component", "restree"),
		schedule: func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
	c.node = &Node{
		Kind:        KindConfig,
		Label:       source.Name(),
		Collapsible: StateCollapsed,
		Icon:        IconLoading,
	}
	return c
}

// SetScheduler replaces the deferred-callback scheduler. Hosts with their
// own event loop route the callback back onto that loop.
func (c *ConfigNode) SetScheduler(schedule func(time.Duration, func())) {
	c.schedule = schedule
}

// Node returns this configuration's own tree node.
func (c *ConfigNode) Node() *Node {
	return c.node
}

// Options returns the active display policy.
func (c *ConfigNode) Options() Options {
	return c.opts
}

// SetOptions swaps the display policy and refreshes the results root.
func (c *ConfigNode) SetOptions(opts Options) {
	c.opts = opts
	if c.resultsRoot != nil {
		c.host.Refresh(c.resultsRoot)
	}
}

// HandleResultsLoaded re-enters the loaded state, rebuilding every index
// from the source's current results. Absent results clear the model.
func (c *ConfigNode) HandleResultsLoaded() {
	c.gen++
	gen := c.gen

	if c.source.Results() == nil {
		c.clear()
		c.node.Icon = IconLoading
		c.node.Collapsible = StateNone
		c.host.Refresh(c.node)
		c.scheduleIconDecay(gen, IconIdle)
		return
	}

	c.rebuild()
	c.node.Icon = IconLoading
	c.node.Collapsible = StateExpanded
	c.host.Refresh(c.node)
	c.host.Reveal(c.node, true)
	c.scheduleIconDecay(gen, IconNone)
}

// HandleChanged reacts to a configuration change record: name changes are
// a visual refresh, results changes re-enter the loaded state.
func (c *ConfigNode) HandleChanged(change Change) {
	switch change.Type {
	case ChangeName:
		c.node.Label = c.source.Name()
		c.host.Refresh(c.node)
	case ChangeResults:
		c.HandleResultsLoaded()
	}
}

// GetChildren returns the configuration node's own children: none while
// unloaded, the singleton results root once results are present.
func (c *ConfigNode) GetChildren() []*Node {
	if c.resultsRoot == nil {
		return nil
	}
	return []*Node{c.resultsRoot}
}

// HasMoreChildren reports whether results are present.
func (c *ConfigNode) HasMoreChildren() bool {
	return c.resultsRoot != nil
}

// GetChildNodes answers the host's children query for any node in the tree.
func (c *ConfigNode) GetChildNodes(n *Node) []*Node {
	if c.resultsRoot == nil || n == nil {
		return nil
	}

	switch n.Kind {
	case KindConfig:
		return c.GetChildren()

	case KindResultsRoot:
		if !c.opts.GroupByFile {
			// Flat listing in creation order.
			return append([]*Node(nil), c.issueOrder...)
		}
		children := c.tree.RootChildren()
		SortResourceNodes(children)
		return children

	case KindFile:
		if c.opts.GroupIssueKinds {
			return c.kindGroups(n)
		}
		return c.issueNodesFor(n.Path, KindClassification, KindHint)

	case KindClassificationsGroup:
		return c.issueNodesFor(n.Path, KindClassification)

	case KindHintsGroup:
		return c.issueNodesFor(n.Path, KindHint)

	case KindFolder:
		children := c.tree.ChildrenOf(n.Path)
		SortResourceNodes(children)
		return children

	default:
		return nil
	}
}

// GetReport returns the source's rendered report.
func (c *ConfigNode) GetReport() string {
	return c.source.Report()
}

// DeleteIssue removes the issue behind the node: the source persists the
// deletion, the indices forget it, and emptied files cascade-prune their
// ancestor folders.
func (c *ConfigNode) DeleteIssue(n *Node) error {
	iss := n.Issue
	if iss == nil {
		return fmt.Errorf("node %q carries no issue", n.Label)
	}

	if err := c.source.DeleteIssue(iss); err != nil {
		return fmt.Errorf("delete issue %s: %w", iss.ID, err)
	}

	fileNode := c.tree.Node(iss.File)
	empty := c.index.Unrecord(iss)
	c.dropFromOrder(n)

	if !empty {
		if fileNode != nil && fileNode.Parent != nil {
			c.host.Refresh(fileNode.Parent)
		}
		return nil
	}

	delete(c.groups, filepath.Clean(iss.File))
	if target := c.tree.Remove(iss.File); target != nil {
		c.host.Refresh(target)
	}
	return nil
}

// MarkIssueAsComplete delegates completion to the source. The indices stay
// untouched; complete issues remain visible, flagged by the source.
func (c *ConfigNode) MarkIssueAsComplete(n *Node) error {
	iss := n.Issue
	if iss == nil {
		return fmt.Errorf("node %q carries no issue", n.Label)
	}
	if err := c.source.MarkIssueAsComplete(iss); err != nil {
		return fmt.Errorf("mark issue %s complete: %w", iss.ID, err)
	}
	c.host.Refresh(n)
	return nil
}

func (c *ConfigNode) rebuild() {
	c.resultsRoot = &Node{
		Kind:        KindResultsRoot,
		Label:       "Analysis Results",
		Parent:      c.node,
		Collapsible: StateExpanded,
	}
	c.host.NodeCreated(c.resultsRoot)
	c.tree = NewPathTree(c.resolver, c.resultsRoot, c.host.NodeCreated)
	c.index = NewIssueIndex()
	c.issueOrder = nil
	c.groups = make(map[string]map[Kind]*Node)

	results := c.source.Results()

	// Classifications first, hints after: when both exist for a file the
	// classifications keep display precedence in the flat listing.
	for _, iss := range results.Classifications {
		c.addIssue(iss)
	}
	for _, iss := range results.Hints {
		c.addIssue(iss)
	}

	c.log.WithFields(logrus.Fields{
		"configuration": c.source.Name(),
		"issues":        c.index.Len(),
		"paths":         c.tree.Len(),
	}).Debug("rebuilt results tree")
}

func (c *ConfigNode) addIssue(iss *analysis.Issue) {
	fileNode := c.tree.EnsureAncestry(iss.File)
	if fileNode == nil {
		c.log.WithField("file", iss.File).Debug("issue outside registered workspaces, skipped")
		return
	}
	node := newIssueNode(iss, fileNode)
	c.index.Record(iss, node)
	c.issueOrder = append(c.issueOrder, node)
	c.host.NodeCreated(node)
}

func (c *ConfigNode) clear() {
	c.resultsRoot = nil
	c.tree = nil
	c.index = nil
	c.issueOrder = nil
	c.groups = nil
}

func (c *ConfigNode) issueNodesFor(file string, kinds ...Kind) []*Node {
	var nodes []*Node
	for _, iss := range c.index.IssuesFor(file) {
		node := c.index.NodeFor(iss)
		if node == nil {
			continue
		}
		for _, k := range kinds {
			if node.Kind == k {
				nodes = append(nodes, node)
				break
			}
		}
	}
	return nodes
}

// kindGroups returns the per-file classification/hint group nodes, creating
// them lazily and omitting kinds with no recorded issues.
func (c *ConfigNode) kindGroups(fileNode *Node) []*Node {
	key := filepath.Clean(fileNode.Path)
	cached, ok := c.groups[key]
	if !ok {
		cached = make(map[Kind]*Node)
		c.groups[key] = cached
	}

	var groups []*Node
	if len(c.issueNodesFor(fileNode.Path, KindClassification)) > 0 {
		groups = append(groups, c.groupNode(cached, fileNode, KindClassificationsGroup, "Classifications"))
	}
	if len(c.issueNodesFor(fileNode.Path, KindHint)) > 0 {
		groups = append(groups, c.groupNode(cached, fileNode, KindHintsGroup, "Hints"))
	}
	return groups
}

func (c *ConfigNode) groupNode(cache map[Kind]*Node, fileNode *Node, kind Kind, label string) *Node {
	if n, ok := cache[kind]; ok {
		return n
	}
	n := &Node{
		Kind:        kind,
		Path:        fileNode.Path,
		Label:       label,
		Parent:      fileNode,
		Collapsible: StateExpanded,
	}
	cache[kind] = n
	c.host.NodeCreated(n)
	return n
}

func (c *ConfigNode) dropFromOrder(n *Node) {
	for i, candidate := range c.issueOrder {
		if candidate == n {
			c.issueOrder = append(c.issueOrder[:i], c.issueOrder[i+1:]...)
			return
		}
	}
}

func (c *ConfigNode) scheduleIconDecay(gen int, next Icon) {
	c.schedule(iconDecayDelay, func() {
		if gen != c.gen {
			// A newer reload superseded this callback.
			return
		}
		c.node.Icon = next
		c.host.Refresh(c.node)
	})
}
