package explorer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/modlens/modlens/internal/tui/theme"
	"github.com/modlens/modlens/pkg/restree"
)

func (m *Model) View() string {
	if m.showReport {
		return m.renderReport()
	}

	header := theme.DefaultTheme.Header.Render("Results Explorer")
	if !m.config.HasMoreChildren() {
		header = theme.DefaultTheme.Info.Render("Results Explorer (no results loaded)")
	}

	body := m.renderTree()

	footer := m.help.View(m.keys)
	if m.statusMessage != "" {
		footer = theme.DefaultTheme.Info.Render(m.statusMessage) + "\n" + footer
	}

	fullView := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		body,
		"",
		footer,
	)

	return "\n" + fullView
}

func (m *Model) renderTree() string {
	var b strings.Builder

	viewportHeight := m.getViewportHeight()
	start := m.scrollOffset
	end := m.scrollOffset + viewportHeight
	if end > len(m.display) {
		end = len(m.display)
	}

	for i := start; i < end; i++ {
		dn := m.display[i]
		cursor := "  "
		if i == m.cursor {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
			if m.ascii {
				cursor = theme.DefaultTheme.Highlight.Render("> ")
			}
		}

		indent := strings.Repeat("  ", dn.depth)
		line := fmt.Sprintf("%s%s%s%s", cursor, indent, m.foldIndicator(dn.node), m.renderNode(dn.node))
		if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.display) > viewportHeight {
		b.WriteString("\n")
		b.WriteString(theme.DefaultTheme.Faint.Render(
			fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.display))))
	}

	return b.String()
}

func (m *Model) foldIndicator(n *restree.Node) string {
	if n.Collapsible == restree.StateNone && n.Kind != restree.KindConfig {
		return ""
	}
	if len(m.config.GetChildNodes(n)) == 0 {
		return ""
	}
	expanded, collapsed := "▼ ", "▶ "
	if m.ascii {
		expanded, collapsed = "v ", "> "
	}
	if m.isExpanded(n) {
		return expanded
	}
	return collapsed
}

func (m *Model) renderNode(n *restree.Node) string {
	switch n.Kind {
	case restree.KindConfig:
		label := n.Label
		if icon := m.nodeIcon(n.Icon); icon != "" {
			label = icon + " " + label
		}
		return theme.DefaultTheme.Header.Render(label)

	case restree.KindResultsRoot:
		return theme.DefaultTheme.Info.Render(n.Label)

	case restree.KindFolder:
		marker := "▣"
		if m.ascii {
			marker = "[+]"
		}
		return fmt.Sprintf("%s %s", marker, n.Label)

	case restree.KindFile:
		marker := "▢"
		if m.ascii {
			marker = "[ ]"
		}
		return fmt.Sprintf("%s %s", marker, n.Label)

	case restree.KindClassificationsGroup, restree.KindHintsGroup:
		return theme.DefaultTheme.Faint.Render(n.Label)

	case restree.KindClassification, restree.KindHint:
		return m.renderIssue(n)
	}
	return n.Label
}

func (m *Model) renderIssue(n *restree.Node) string {
	iss := n.Issue
	marker := "◆"
	if n.Kind == restree.KindHint {
		marker = "◇"
	}
	if m.ascii {
		marker = "*"
		if n.Kind == restree.KindHint {
			marker = "-"
		}
	}

	style := lipgloss.NewStyle().Foreground(theme.SeverityColor(iss.Severity.String()))
	label := fmt.Sprintf("%s %s", style.Render(marker), iss.Title)
	if iss.Line > 0 {
		label += theme.DefaultTheme.Faint.Render(fmt.Sprintf(":%d", iss.Line))
	}
	if iss.Complete {
		check := "✓"
		if m.ascii {
			check = "[done]"
		}
		label += " " + theme.DefaultTheme.Complete.Render(check)
	}
	return label
}

func (m *Model) nodeIcon(icon restree.Icon) string {
	if m.ascii {
		switch icon.ThemeClass {
		case "icon-loading":
			return "..."
		case "icon-idle":
			return "."
		default:
			return ""
		}
	}
	return icon.Glyph
}

func (m *Model) renderReport() string {
	title := theme.DefaultTheme.Header.Render("Analysis Report")
	hint := theme.DefaultTheme.Faint.Render("press any key to close")
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, title, "", m.reportText, "", hint)
}
