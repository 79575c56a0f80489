package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ledgerdeck/internal/tablestate"
)

type tableColumn = tablestate.Column[tablestate.Map]

// columnLayout is one rendered column.
type columnLayout struct {
	index int
	label string
	width int
	right bool
}

// formatCell renders a value according to its column kind.
func formatCell(kind tablestate.Kind, v any, present bool) string {
	if !present || v == nil {
		return "-"
	}
	switch kind {
	case tablestate.KindCurrency:
		if d, ok := tablestate.ParseAmount(v); ok {
			return d.StringFixed(2)
		}
	case tablestate.KindNumber:
		if d, ok := tablestate.ParseAmount(v); ok {
			return d.String()
		}
	case tablestate.KindDate:
		if t, ok := tablestate.ParseDate(v); ok {
			return t.Format("2006-01-02")
		}
	case tablestate.KindBool:
		if b, ok := tablestate.ParseBool(v); ok {
			return ternary(b, "yes", "no")
		}
	}
	s := tablestate.Stringify(v)
	if s == "" {
		return "-"
	}
	return strings.Join(strings.Fields(s), " ")
}

func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

func rightAligned(kind tablestate.Kind) bool {
	return kind == tablestate.KindNumber || kind == tablestate.KindCurrency
}

// sortIndicator returns the arrow for field under spec, or "".
func sortIndicator(spec tablestate.SortSpec, field string) string {
	if spec.Field != field {
		return ""
	}
	if spec.Direction == tablestate.Descending {
		return "▼"
	}
	return "▲"
}

// formatRows renders every cell of rows.
func formatRows(schema tablestate.Schema[tablestate.Map], rows []tablestate.Map) [][]string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		line := make([]string, len(schema.Columns))
		for j, c := range schema.Columns {
			v, ok := schema.Value(r, c.Name)
			line[j] = formatCell(c.Kind, v, ok)
		}
		cells[i] = line
	}
	return cells
}

// layoutColumns picks the columns that fit in width, scrolled so that column
// focus is visible. Each column gets its natural width clamped to
// [minColumnWidth, maxColumnWidth].
func layoutColumns(cols []tableColumn, cells [][]string, width, focus int) []columnLayout {
	if len(cols) == 0 {
		return nil
	}
	natural := make([]int, len(cols))
	for j, c := range cols {
		w := lipgloss.Width(c.DisplayLabel()) + 1
		for _, line := range cells {
			if cw := lipgloss.Width(line[j]); cw > w {
				w = cw
			}
		}
		natural[j] = min(max(w, minColumnWidth), maxColumnWidth)
	}

	avail := width - markerWidth
	fit := func(first int) []columnLayout {
		var out []columnLayout
		used := 0
		for j := first; j < len(cols); j++ {
			w := natural[j]
			if used > 0 {
				if used+columnGap+w > avail {
					break
				}
				used += columnGap
			} else if w > avail {
				w = max(avail, 1)
			}
			used += w
			out = append(out, columnLayout{
				index: j,
				label: cols[j].DisplayLabel(),
				width: w,
				right: rightAligned(cols[j].Kind),
			})
		}
		return out
	}

	focus = min(max(focus, 0), len(cols)-1)
	for first := 0; first <= focus; first++ {
		out := fit(first)
		if last := out[len(out)-1].index; last >= focus {
			return out
		}
	}
	return fit(focus)
}

func alignCell(text string, col columnLayout) string {
	text = truncate(text, col.width)
	if col.right {
		return padLeft(text, col.width)
	}
	return padRight(text, col.width)
}

// renderTable renders the active list's heading and rows.
func (m Model) renderTable(rv *resourceView, width, height int) string {
	bgColor := m.theme.FocusBg
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	schema := rv.table.Schema()

	rows := rv.view.Rows
	cells := formatRows(schema, rows)
	layout := layoutColumns(schema.Columns, cells, width, rv.column)

	var lines []string

	// Heading
	heading := bg.Spaces(markerWidth)
	for i, col := range layout {
		if i > 0 {
			heading += bg.Spaces(columnGap)
		}
		label := col.label
		if arrow := sortIndicator(rv.view.Sort, schema.Columns[col.index].Name); arrow != "" {
			label = truncate(label, col.width-1) + arrow
		}
		style := styles.MutedText.Bold(true)
		if col.index == rv.column {
			style = styles.AccentText.Bold(true).Underline(true)
		}
		heading += style.Render(alignCell(label, col))
	}
	lines = append(lines, bg.FillLine(heading, width))

	if len(rows) == 0 {
		lines = append(lines, bg.FillLine(bg.Render(m.emptyMessage(), styles.MutedText), width))
		return strings.Join(lines, "\n")
	}

	for i, line := range cells {
		if len(lines) >= height {
			break
		}
		id := ""
		if i < len(rv.view.IDs) {
			id = rv.view.IDs[i]
		}
		selected := id != "" && rv.table.IsSelected(id)

		var parts []string
		marker := ternary(selected, "● ", "  ")
		for _, col := range layout {
			parts = append(parts, alignCell(line[col.index], col))
		}
		text := padRight(marker+strings.Join(parts, strings.Repeat(" ", columnGap)), width)

		switch {
		case i == rv.cursor:
			lines = append(lines, m.theme.Styles().Selected.Render(text))
		case selected:
			lines = append(lines, styles.Marked.Render(text))
		default:
			lines = append(lines, m.renderRow(schema, rows[i], marker, line, layout, width, bgColor))
		}
	}
	return strings.Join(lines, "\n")
}

// renderRow renders an unselected row, coloring status cells.
func (m Model) renderRow(schema tablestate.Schema[tablestate.Map], rec tablestate.Map, marker string, line []string, layout []columnLayout, width int, bgColor string) string {
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	out := bg.Render(marker, styles.Text)
	for i, col := range layout {
		if i > 0 {
			out += bg.Spaces(columnGap)
		}
		style := styles.Text
		if schema.Columns[col.index].Name == "status" {
			status := line[col.index]
			style = lipgloss.NewStyle().
				Foreground(lipgloss.Color(styles.StatusColor(status))).
				Background(lipgloss.Color(bgColor))
		}
		out += style.Render(alignCell(line[col.index], col))
	}
	return bg.FillLine(out, width)
}

func (m Model) emptyMessage() string {
	switch {
	case m.snapshot.Loading && !m.snapshot.HasData:
		return "Loading…"
	case m.snapshot.LastError != nil && !m.snapshot.HasData:
		return "Unable to load records"
	default:
		return "No matching records"
	}
}

// renderTitledBox renders content in a box with the title embedded in the top
// border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr, bgColorStr := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColorStr, bgColorStr = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))
	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}
	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}

// renderFooter summarizes the active list's paging, sort, filters and
// selection.
func (m Model) renderFooter(rv *resourceView) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	v := rv.view

	pages := max(v.TotalPages, 1)
	parts := []string{
		bg.Render(fmt.Sprintf("Page %d/%d", v.Page.Number, pages), styles.Text),
		bg.Render(fmt.Sprintf("%d rows", v.TotalItems), styles.MutedText),
		bg.Render(fmt.Sprintf("%d per page", v.Page.Size), styles.FaintText),
	}
	if n := len(v.Selection); n > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d selected", n), styles.WarningText))
	}
	if !v.Sort.IsZero() {
		label := v.Sort.Field
		if c, ok := rv.table.Schema().Column(v.Sort.Field); ok {
			label = c.DisplayLabel()
		}
		parts = append(parts, bg.Render("sort "+label+" "+sortIndicator(v.Sort, v.Sort.Field), styles.AccentText))
	}
	if f := describeFilters(v.Filters); f != "" {
		parts = append(parts, bg.Render(f, styles.InfoText))
	}
	if v.Search != "" {
		parts = append(parts, bg.Render(fmt.Sprintf("/%s", truncate(v.Search, 24)), styles.AccentText))
	}
	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// describeFilters renders filters as "field=a|b" pairs in field order.
func describeFilters(filters map[string][]string) string {
	if len(filters) == 0 {
		return ""
	}
	fields := make([]string, 0, len(filters))
	for f := range filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + "=" + strings.Join(filters[f], "|")
	}
	return strings.Join(parts, " ")
}
