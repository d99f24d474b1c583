package explorer

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modlens/modlens/pkg/analysis"
	"github.com/modlens/modlens/pkg/project"
	"github.com/modlens/modlens/pkg/restree"
)

type staticResolver struct {
	root string
}

func (r *staticResolver) WorkspaceFor(path string) (string, bool) {
	if strings.HasPrefix(path, r.root+string(filepath.Separator)) {
		return r.root, true
	}
	return "", false
}

func newTestModel(t *testing.T) (*Model, *project.Project) {
	t.Helper()

	p := project.NewProject("legacy-app", nil)
	m := New(p, &staticResolver{root: "/ws"}, restree.Options{GroupByFile: true}, nil, true)
	m.Config().SetScheduler(func(time.Duration, func()) {})
	p.OnResultsLoaded(m.Config().HandleResultsLoaded)
	p.OnChanged(m.Config().HandleChanged)

	require.NoError(t, p.LoadResults(&analysis.Results{
		Classifications: []*analysis.Issue{
			{ID: "cls-1", Kind: analysis.KindClassification, File: "/ws/a/Main.java", Title: "EJB bean"},
		},
		Hints: []*analysis.Issue{
			{ID: "hint-1", Kind: analysis.KindHint, File: "/ws/b/Util.java", Title: "Old API"},
		},
	}))
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m, p
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (m *Model) labels() []string {
	var labels []string
	for _, dn := range m.display {
		labels = append(labels, dn.node.Label)
	}
	return labels
}

func TestInitialDisplayShowsRevealedTree(t *testing.T) {
	m, _ := newTestModel(t)

	labels := m.labels()
	require.NotEmpty(t, labels)
	assert.Equal(t, "legacy-app", labels[0], "configuration node renders first")
	assert.Contains(t, labels, "Analysis Results")
	// The reveal on load expands the config node; workspace roots show up.
	assert.Contains(t, labels, "ws")
}

func TestToggleFoldCollapsesSubtree(t *testing.T) {
	m, _ := newTestModel(t)

	// Collapse the configuration node: only it remains visible.
	m.cursor = 0
	m.Update(keyMsg("enter"))
	assert.Equal(t, []string{"legacy-app"}, m.labels())

	m.Update(keyMsg("enter"))
	assert.Contains(t, m.labels(), "Analysis Results")
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m, _ := newTestModel(t)

	// Expand everything and put the cursor on an issue node.
	m.expandAll()
	issueIdx := -1
	for i, dn := range m.display {
		if dn.node.Issue != nil {
			issueIdx = i
			break
		}
	}
	require.GreaterOrEqual(t, issueIdx, 0)
	m.cursor = issueIdx

	m.Update(keyMsg("d"))
	assert.True(t, m.confirmingDelete)

	m.Update(keyMsg("n"))
	assert.False(t, m.confirmingDelete)
	assert.Equal(t, "Delete cancelled", m.statusMessage)

	before := len(m.display)
	m.Update(keyMsg("d"))
	m.Update(keyMsg("y"))
	assert.Less(t, len(m.display), before, "deleted issue and pruned ancestors disappear")
}

func TestMarkCompleteKeepsNodeVisible(t *testing.T) {
	m, _ := newTestModel(t)

	m.expandAll()
	var issueNode *restree.Node
	for i, dn := range m.display {
		if dn.node.Issue != nil {
			issueNode = dn.node
			m.cursor = i
			break
		}
	}
	require.NotNil(t, issueNode)

	m.Update(keyMsg("c"))
	assert.True(t, issueNode.Issue.Complete)

	found := false
	for _, dn := range m.display {
		if dn.node == issueNode {
			found = true
		}
	}
	assert.True(t, found, "complete issues stay in the tree")
}

func TestToggleGroupingSwitchesRootChildren(t *testing.T) {
	m, _ := newTestModel(t)
	m.expandAll()

	assert.Contains(t, m.labels(), "ws")

	m.Update(keyMsg("f"))
	m.expandAll()
	labels := m.labels()
	assert.NotContains(t, labels, "ws", "flat mode lists issues directly")
	assert.Contains(t, labels, "EJB bean")
	assert.Contains(t, labels, "Old API")
}

func TestReportOverlay(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(keyMsg("R"))
	assert.True(t, m.showReport)
	assert.Contains(t, m.View(), "Analysis Report")

	m.Update(keyMsg("q")) // any key dismisses the overlay, even quit
	assert.False(t, m.showReport)
}

// expandAll expands every currently reachable node until the display is
// stable.
func (m *Model) expandAll() {
	for {
		grew := false
		for _, dn := range m.display {
			if !m.isExpanded(dn.node) && len(m.config.GetChildNodes(dn.node)) > 0 {
				m.expanded[dn.node] = true
				grew = true
			}
		}
		m.rebuildDisplay()
		if !grew {
			return
		}
	}
}
