package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	NextView   key.Binding
	PrevView   key.Binding
	Escape     key.Binding
	Confirm    key.Binding
	Reload     key.Binding
	Activity   key.Binding

	// Navigation
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	ColumnLeft  key.Binding
	ColumnRight key.Binding

	// Paging
	NextPage   key.Binding
	PrevPage   key.Binding
	GrowPage   key.Binding
	ShrinkPage key.Binding

	// Table state
	Sort         key.Binding
	ClearSort    key.Binding
	Search       key.Binding
	Filter       key.Binding
	ClearFilters key.Binding
	Toggle       key.Binding
	SelectAll    key.Binding
	ClearSelect  key.Binding

	// Records
	Delete     key.Binding
	NextStatus key.Binding
	Duplicate  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next list"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous list"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open record"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
		Activity: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Activity log"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First row"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last row"),
		),
		ColumnLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Previous column"),
		),
		ColumnRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Next column"),
		),

		// Paging
		NextPage: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "pgup"),
			key.WithHelp("p", "Previous page"),
		),
		GrowPage: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Larger pages"),
		),
		ShrinkPage: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Smaller pages"),
		),

		// Table state
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort by column"),
		),
		ClearSort: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Clear sort"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filter column"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Clear filters"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "Select row"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Select page"),
		),
		ClearSelect: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Clear selection"),
		),

		// Records
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete selected"),
		),
		NextStatus: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Next status"),
		),
		Duplicate: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Duplicate record"),
		),
	}
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sort, k.Filter, k.Search, k.Toggle, k.NextPage, k.PrevPage, k.NextView, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.NextView, k.PrevView, k.Up, k.Down, k.Top, k.Bottom, k.ColumnLeft, k.ColumnRight},
		// Paging
		{k.NextPage, k.PrevPage, k.GrowPage, k.ShrinkPage},
		// Table
		{k.Sort, k.ClearSort, k.Search, k.Filter, k.ClearFilters},
		// Selection
		{k.Toggle, k.SelectAll, k.ClearSelect, k.Confirm, k.Delete, k.NextStatus, k.Duplicate},
		// General
		{k.Reload, k.Activity, k.CycleTheme, k.Help, k.Quit},
	}
}
