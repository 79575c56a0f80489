package ui

import (
	"strings"

	"github.com/five82/ledgerdeck/internal/resources"
)

// MenuNode is one sidebar entry. Nodes with a Resource are leaves that open a
// list; the rest are group headings.
type MenuNode struct {
	Label    string
	Resource string
	Children []MenuNode
}

// IsLeaf reports whether the node opens a list.
func (n MenuNode) IsLeaf() bool {
	return n.Resource != ""
}

// BuildMenu groups resources under their Group heading, in first-seen order.
// Resources without a group are listed at the top level.
func BuildMenu(list []resources.Resource) []MenuNode {
	var nodes []MenuNode
	groupIdx := make(map[string]int)
	for _, r := range list {
		leaf := MenuNode{Label: r.Title, Resource: r.Name}
		if leaf.Label == "" {
			leaf.Label = titleCase(r.Name)
		}
		if r.Group == "" {
			nodes = append(nodes, leaf)
			continue
		}
		i, ok := groupIdx[r.Group]
		if !ok {
			i = len(nodes)
			groupIdx[r.Group] = i
			nodes = append(nodes, MenuNode{Label: r.Group})
		}
		nodes[i].Children = append(nodes[i].Children, leaf)
	}
	return nodes
}

// menuLeaves flattens the menu depth-first into the tab order.
func menuLeaves(nodes []MenuNode) []MenuNode {
	var out []MenuNode
	for _, n := range nodes {
		if n.IsLeaf() {
			out = append(out, n)
		}
		out = append(out, menuLeaves(n.Children)...)
	}
	return out
}

type menuLine struct {
	text    string
	heading bool
	active  bool
}

// menuLines renders the tree as indented plain lines.
func menuLines(nodes []MenuNode, active string, depth int) []menuLine {
	var lines []menuLine
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		if n.IsLeaf() {
			marker := "  "
			if n.Resource == active {
				marker = "› "
			}
			lines = append(lines, menuLine{text: indent + marker + n.Label, active: n.Resource == active})
		} else {
			lines = append(lines, menuLine{text: indent + strings.ToUpper(n.Label), heading: true})
		}
		lines = append(lines, menuLines(n.Children, active, depth+1)...)
	}
	return lines
}

// renderMenu renders the sidebar pane.
func (m Model) renderMenu(width, height int) string {
	base := m.theme.Styles()
	styles := base.WithBackground(m.theme.SurfaceAlt)
	inner := width - 2

	plain := menuLines(m.menu, m.active, 0)
	lines := make([]string, len(plain))
	for i, line := range plain {
		text := padRight(truncate(line.text, inner), inner)
		switch {
		case line.active:
			lines[i] = base.Selected.Render(text)
		case line.heading:
			lines[i] = styles.FaintText.Bold(true).Render(text)
		default:
			lines[i] = styles.Text.Render(text)
		}
	}
	return m.renderTitledBox("Lists", strings.Join(lines, "\n"), width, height, false)
}
