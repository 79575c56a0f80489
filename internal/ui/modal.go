package ui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ledgerdeck/internal/logtail"
	"github.com/five82/ledgerdeck/internal/tablestate"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// filterAppliedMsg replaces the allowed values of one field.
type filterAppliedMsg struct {
	field  string
	values []string
}

// filterPicker lets the user choose the allowed values of one column.
type filterPicker struct {
	field   string
	label   string
	options []string
	chosen  map[string]bool
	cursor  int
}

func newFilterPicker(field, label string, options, current []string) *filterPicker {
	opts := slices.Clone(options)
	for _, v := range current {
		if !slices.Contains(opts, v) {
			opts = append(opts, v)
		}
	}
	sort.Strings(opts)
	chosen := make(map[string]bool, len(current))
	for _, v := range current {
		chosen[v] = true
	}
	return &filterPicker{field: field, label: label, options: opts, chosen: chosen}
}

// values returns the chosen values in option order.
func (p *filterPicker) values() []string {
	var out []string
	for _, o := range p.options {
		if p.chosen[o] {
			out = append(out, o)
		}
	}
	return out
}

func (p *filterPicker) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, false
	}
	switch {
	case key.Matches(km, keys.Escape):
		return p, nil, true
	case key.Matches(km, keys.Confirm):
		applied := filterAppliedMsg{field: p.field, values: p.values()}
		return p, func() tea.Msg { return applied }, true
	case key.Matches(km, keys.Down):
		if p.cursor < len(p.options)-1 {
			p.cursor++
		}
	case key.Matches(km, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(km, keys.Toggle):
		if p.cursor < len(p.options) {
			o := p.options[p.cursor]
			p.chosen[o] = !p.chosen[o]
		}
	case key.Matches(km, keys.SelectAll):
		for _, o := range p.options {
			p.chosen[o] = true
		}
	case key.Matches(km, keys.ClearSelect), key.Matches(km, keys.ClearFilters):
		clear(p.chosen)
	}
	return p, nil, false
}

func (p *filterPicker) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Filter " + p.label))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("space toggle · a all · A none · enter apply"))
	b.WriteString("\n\n")

	if len(p.options) == 0 {
		b.WriteString(styles.MutedText.Render("No values to filter on"))
	}
	visible := max(height-12, 5)
	start := 0
	if p.cursor >= visible {
		start = p.cursor - visible + 1
	}
	for i := start; i < len(p.options) && i < start+visible; i++ {
		o := p.options[i]
		box := ternary(p.chosen[o], "[x] ", "[ ] ")
		line := box + truncate(o, 36)
		if i == p.cursor {
			b.WriteString(styles.Selected.Render(padRight(line, 40)))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		if i < len(p.options)-1 {
			b.WriteString("\n")
		}
	}
	return renderModalBox(theme, b.String(), width, height)
}

// confirmModal asks before running a destructive action. onConfirm is
// delivered as a message when the user accepts.
type confirmModal struct {
	prompt    string
	detail    string
	onConfirm tea.Msg
}

func newConfirmModal(prompt, detail string, onConfirm tea.Msg) *confirmModal {
	return &confirmModal{prompt: prompt, detail: detail, onConfirm: onConfirm}
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(km, keys.Confirm):
		accepted := c.onConfirm
		return c, func() tea.Msg { return accepted }, true
	case key.Matches(km, keys.Escape), key.Matches(km, keys.Quit):
		return c, nil, true
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.DangerText.Bold(true).Render(c.prompt))
	if c.detail != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(truncate(c.detail, 56)))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter confirm · esc cancel"))
	return renderModalBox(theme, b.String(), width, height)
}

// recordModal shows every field of one record. It opens with the list row and
// is replaced by the full record once loaded.
type recordModal struct {
	title    string
	resource string
	id       string
	fields   []string
	values   []string
	offset   int
	loading  bool
	note     string
}

func newRecordModal(title string, rec tablestate.Map) *recordModal {
	r := &recordModal{title: title}
	r.setRecord(rec)
	return r
}

func (r *recordModal) setRecord(rec tablestate.Map) {
	fields := make([]string, 0, len(rec))
	for k := range rec {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = formatDetailValue(rec[f])
	}
	r.fields, r.values = fields, values
	r.offset = min(r.offset, max(len(fields)-1, 0))
}

// loaded applies a finished fetch of the full record.
func (r *recordModal) loaded(msg recordMsg) {
	r.loading = false
	if msg.err != nil {
		r.note = "showing list row: " + msg.err.Error()
		return
	}
	r.note = ""
	r.setRecord(msg.record)
}

func formatDetailValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case []any:
		return fmt.Sprintf("%d items", len(t))
	case map[string]any:
		return fmt.Sprintf("{%d fields}", len(t))
	}
	return tablestate.Stringify(v)
}

func (r *recordModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil, false
	}
	switch {
	case key.Matches(km, keys.Escape), key.Matches(km, keys.Confirm), key.Matches(km, keys.Quit):
		return r, nil, true
	case key.Matches(km, keys.Down):
		if r.offset < len(r.fields)-1 {
			r.offset++
		}
	case key.Matches(km, keys.Up):
		if r.offset > 0 {
			r.offset--
		}
	}
	return r, nil, false
}

func (r *recordModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning)).Width(16)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(r.title))
	switch {
	case r.loading:
		b.WriteString("  ")
		b.WriteString(styles.FaintText.Render("loading…"))
	case r.note != "":
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render(truncate(r.note, 56)))
	}
	b.WriteString("\n\n")
	visible := max(height-10, 5)
	for i := r.offset; i < len(r.fields) && i < r.offset+visible; i++ {
		b.WriteString(keyStyle.Render(truncate(r.fields[i], 15)))
		b.WriteString(styles.Text.Render(truncate(r.values[i], 40)))
		b.WriteString("\n")
	}
	return renderModalBox(theme, strings.TrimRight(b.String(), "\n"), width, height)
}

// activityModal shows the tail of ledgerdeck's log, newest last. back counts
// how many entries the view is scrolled up from the newest.
type activityModal struct {
	path    string
	entries []logtail.Entry
	back    int
}

func newActivityModal(path string, entries []logtail.Entry) *activityModal {
	return &activityModal{path: path, entries: entries}
}

func (a *activityModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil, false
	}
	last := max(len(a.entries)-1, 0)
	switch {
	case key.Matches(km, keys.Escape), key.Matches(km, keys.Activity), key.Matches(km, keys.Quit):
		return a, nil, true
	case key.Matches(km, keys.Up):
		a.back = min(a.back+1, last)
	case key.Matches(km, keys.Down):
		a.back = max(a.back-1, 0)
	case key.Matches(km, keys.Top):
		a.back = last
	case key.Matches(km, keys.Bottom):
		a.back = 0
	}
	return a, nil, false
}

// window returns the entry range shown in visible lines.
func (a *activityModal) window(visible int) (start, end int) {
	end = len(a.entries) - a.back
	start = max(end-visible, 0)
	return start, end
}

func (a *activityModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Activity"))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render(truncate(a.path, 48)))
	b.WriteString("\n\n")

	if len(a.entries) == 0 {
		b.WriteString(styles.MutedText.Render("Nothing logged yet"))
		return renderModalBox(theme, b.String(), width, height)
	}

	start, end := a.window(max(height-10, 5))
	for i := start; i < end; i++ {
		e := a.entries[i]
		if e.Time != "" {
			b.WriteString(styles.FaintText.Render(e.Time))
			b.WriteString(" ")
		}
		if e.Level != "" {
			b.WriteString(levelStyle(styles, e.Level).Render(strings.ToUpper(e.Level)))
			b.WriteString(" ")
		}
		b.WriteString(styles.Text.Render(truncate(e.Message, 40)))
		if f := e.FieldString(); f != "" {
			b.WriteString(" ")
			b.WriteString(styles.MutedText.Render(truncate(f, 40)))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return renderModalBox(theme, b.String(), width, height)
}

func levelStyle(styles Styles, level string) lipgloss.Style {
	switch level {
	case "error", "fatal":
		return styles.DangerText
	case "warn", "warning":
		return styles.WarningText
	case "debug":
		return styles.InfoText
	default:
		return styles.SuccessText
	}
}

func renderModalBox(theme Theme, content string, width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(min(64, max(width-4, 20)))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
