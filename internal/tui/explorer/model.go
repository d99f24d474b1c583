package explorer

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/modlens/modlens/pkg/restree"
)

// displayNode is a single rendered line in the flattened tree view.
type displayNode struct {
	node  *restree.Node
	depth int
}

// hostBridge implements the results tree's Host contract for the bubbletea
// runtime. Tree callbacks only set flags; the model folds them into its own
// state on the next sync, keeping all mutation on the update loop.
type hostBridge struct {
	refreshNeeded bool
	revealTarget  *restree.Node
	revealExpand  bool
	nodesCreated  int
}

func (h *hostBridge) Refresh(_ *restree.Node) {
	h.refreshNeeded = true
}

func (h *hostBridge) Reveal(n *restree.Node, expand bool) {
	h.revealTarget = n
	h.revealExpand = expand
}

func (h *hostBridge) NodeCreated(_ *restree.Node) {
	h.nodesCreated++
}

// DeferredMsg routes a deferred tree callback back onto the update loop.
type DeferredMsg struct {
	Fn func()
}

// Model is the main model for the results explorer TUI
type Model struct {
	config *restree.ConfigNode
	bridge *hostBridge

	display      []displayNode
	expanded     map[*restree.Node]bool
	cursor       int
	scrollOffset int

	keys   KeyMap
	help   help.Model
	width  int
	height int

	statusMessage    string
	confirmingDelete bool
	showReport       bool
	reportText       string

	// ascii switches rendering to the themed-class fallback for restricted
	// terminals without glyph support.
	ascii bool
}

// New creates the explorer model around a configuration source. The source
// events are wired so reloads delivered while the program runs rebuild the
// view.
func New(source restree.Source, resolver restree.Resolver, opts restree.Options, log *logrus.Logger, ascii bool) *Model {
	bridge := &hostBridge{}
	config := restree.New(source, resolver, bridge, opts, log)

	m := &Model{
		config:   config,
		bridge:   bridge,
		expanded: make(map[*restree.Node]bool),
		keys:     keys,
		help:     help.New(),
		ascii:    ascii,
	}
	return m
}

// Config exposes the orchestrator so the command layer can wire events and
// the deferred-callback scheduler.
func (m *Model) Config() *restree.ConfigNode {
	return m.config
}

// Init initializes the TUI.
func (m *Model) Init() tea.Cmd {
	m.sync()
	return nil
}

// isExpanded returns the effective expansion state for a node: explicit
// toggles win, otherwise the node's collapsible default applies.
func (m *Model) isExpanded(n *restree.Node) bool {
	if state, ok := m.expanded[n]; ok {
		return state
	}
	return n.Collapsible == restree.StateExpanded || n.Kind == restree.KindConfig
}

// sync folds pending host callbacks into the model and rebuilds the
// flattened display list.
func (m *Model) sync() {
	if target := m.bridge.revealTarget; target != nil {
		if m.bridge.revealExpand {
			m.expandTo(target)
		}
		m.bridge.revealTarget = nil
	}
	m.bridge.refreshNeeded = false
	m.rebuildDisplay()

	if m.cursor >= len(m.display) {
		m.cursor = len(m.display) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

func (m *Model) rebuildDisplay() {
	m.display = m.display[:0]
	m.appendNode(m.config.Node(), 0)
}

func (m *Model) appendNode(n *restree.Node, depth int) {
	m.display = append(m.display, displayNode{node: n, depth: depth})
	if !m.isExpanded(n) {
		return
	}
	for _, child := range m.config.GetChildNodes(n) {
		m.appendNode(child, depth+1)
	}
}

// expandTo expands the node and every ancestor so it becomes visible, and
// moves the cursor onto it.
func (m *Model) expandTo(target *restree.Node) {
	m.expanded[target] = true
	for n := target.Parent; n != nil; n = n.Parent {
		m.expanded[n] = true
	}
	m.rebuildDisplay()
	for i, dn := range m.display {
		if dn.node == target {
			m.cursor = i
			return
		}
	}
}

func (m *Model) currentNode() *restree.Node {
	if m.cursor < 0 || m.cursor >= len(m.display) {
		return nil
	}
	return m.display[m.cursor].node
}

func (m *Model) getViewportHeight() int {
	// Header, spacing, and footer take a fixed number of rows.
	h := m.height - 6
	if h < 1 {
		h = 10
	}
	return h
}

func (m *Model) clampScroll() {
	viewportHeight := m.getViewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+viewportHeight {
		m.scrollOffset = m.cursor - viewportHeight + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}
