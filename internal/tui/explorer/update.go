package explorer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/modlens/modlens/pkg/restree"
)

// Update handles all incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampScroll()
		return m, nil

	case DeferredMsg:
		msg.Fn()
		m.sync()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The report overlay swallows everything except its dismissal.
	if m.showReport {
		m.showReport = false
		m.reportText = ""
		return m, nil
	}

	if m.confirmingDelete {
		return m.handleDeleteConfirm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.display)-1 {
			m.cursor++
		}
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.getViewportHeight()
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.getViewportHeight()
		if m.cursor > len(m.display)-1 {
			m.cursor = len(m.display) - 1
		}
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.GoToTop):
		m.cursor = 0
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.GoToBottom):
		m.cursor = len(m.display) - 1
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.ToggleFold):
		if node := m.currentNode(); node != nil {
			m.expanded[node] = !m.isExpanded(node)
			m.sync()
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleGroup):
		opts := m.config.Options()
		opts.GroupByFile = !opts.GroupByFile
		m.config.SetOptions(opts)
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.ToggleKinds):
		opts := m.config.Options()
		opts.GroupIssueKinds = !opts.GroupIssueKinds
		m.config.SetOptions(opts)
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.DeleteIssue):
		node := m.currentNode()
		if node == nil || node.Issue == nil {
			m.statusMessage = "Select an issue to delete"
			return m, nil
		}
		m.confirmingDelete = true
		m.statusMessage = fmt.Sprintf("Delete %q? (y/n)", node.Issue.Title)
		return m, nil

	case key.Matches(msg, m.keys.CompleteIssue):
		node := m.currentNode()
		if node == nil || node.Issue == nil {
			m.statusMessage = "Select an issue to mark complete"
			return m, nil
		}
		if err := m.config.MarkIssueAsComplete(node); err != nil {
			m.statusMessage = err.Error()
			return m, nil
		}
		m.statusMessage = fmt.Sprintf("Marked %q complete", node.Issue.Title)
		m.sync()
		return m, nil

	case key.Matches(msg, m.keys.Report):
		m.reportText = m.config.GetReport()
		m.showReport = true
		return m, nil
	}

	return m, nil
}

func (m *Model) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirmingDelete = false

	switch msg.String() {
	case "y", "Y":
		node := m.currentNode()
		if node == nil || node.Issue == nil {
			m.statusMessage = ""
			return m, nil
		}
		title := node.Issue.Title
		if err := m.config.DeleteIssue(node); err != nil {
			m.statusMessage = err.Error()
			return m, nil
		}
		m.statusMessage = fmt.Sprintf("Deleted %q", title)
		if m.cursor > 0 {
			m.cursor--
		}
		m.sync()
	default:
		m.statusMessage = "Delete cancelled"
	}
	return m, nil
}

// ensure Model satisfies tea.Model
var _ tea.Model = (*Model)(nil)

// ensure the bridge satisfies the tree's host contract
var _ restree.Host = (*hostBridge)(nil)
