package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ledgerdeck/internal/config"
	"github.com/five82/ledgerdeck/internal/ledger"
	"github.com/five82/ledgerdeck/internal/logging"
	"github.com/five82/ledgerdeck/internal/logtail"
	"github.com/five82/ledgerdeck/internal/prefs"
	"github.com/five82/ledgerdeck/internal/resources"
	"github.com/five82/ledgerdeck/internal/source"
	"github.com/five82/ledgerdeck/internal/state"
	"github.com/five82/ledgerdeck/internal/tablestate"
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Store   *state.Store
	Sources map[string]source.Source
	// Records serves single-record reads and writes. Nil makes lists read-only.
	Records ledger.RecordStore
	// Resources defaults to resources.All().
	Resources []resources.Resource
	Config    *config.Config
	Logger    logging.Logger
	Prefs     prefs.Prefs
	PrefsPath string
	PollTick  time.Duration
}

// resourceView is the per-list state. Each list owns its TableState, so
// switching lists keeps sort, filters, search, page and selection.
type resourceView struct {
	res    resources.Resource
	src    source.Source
	table  *tablestate.TableState[tablestate.Map]
	view   tablestate.View[tablestate.Map]
	cursor int
	column int
	seq    uint64
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	records   ledger.RecordStore
	config    *config.Config
	logger    logging.Logger
	prefs     prefs.Prefs
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal
	errorMsg string

	// Lists
	menu   []MenuNode
	order  []string
	views  map[string]*resourceView
	active string

	// Snapshot of the active list
	snapshot state.Snapshot

	// Search input
	search    textinput.Model
	searching bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	list := opts.Resources
	if len(list) == 0 {
		list = resources.All()
	}

	pageSize := tablestate.DefaultPageSize
	if opts.Config != nil && opts.Config.PageSize > 0 {
		pageSize = opts.Config.PageSize
	}
	if opts.Prefs.PageSize > 0 {
		pageSize = opts.Prefs.PageSize
	}

	views := make(map[string]*resourceView, len(list))
	for _, r := range list {
		src, ok := opts.Sources[r.Name]
		if !ok {
			continue
		}
		views[r.Name] = &resourceView{
			res:   r,
			src:   src,
			table: tablestate.New(r.Schema, pageSize),
		}
	}

	var available []resources.Resource
	for _, r := range list {
		if _, ok := views[r.Name]; ok {
			available = append(available, r)
		}
	}
	menu := BuildMenu(available)
	var order []string
	for _, leaf := range menuLeaves(menu) {
		order = append(order, leaf.Resource)
	}

	active := ""
	if len(order) > 0 {
		active = order[0]
	}
	if _, ok := views[opts.Prefs.LastResource]; ok {
		active = opts.Prefs.LastResource
	}

	themeName := opts.Prefs.Theme
	if themeName == "" {
		themeName = DefaultThemeName
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"
	search.CharLimit = 64

	return Model{
		ctx:       ctx,
		store:     opts.Store,
		records:   opts.Records,
		config:    opts.Config,
		logger:    logger,
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		menu:      menu,
		order:     order,
		views:     views,
		active:    active,
		search:    search,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.pollTick), m.fetch())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		m.sync(false)
		return m, tickCmd(m.pollTick)

	case pageMsg:
		if !msg.applied {
			// A newer fetch for this list began; its result wins.
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("list fetch failed", "resource", msg.resource, "error", msg.err)
		}
		if msg.resource == m.active {
			m.sync(true)
		}
		return m, nil

	case activityMsg:
		if msg.err != nil {
			m.errorMsg = "log unavailable"
			m.logger.Warn("read log failed", "error", msg.err)
			return m, nil
		}
		m.modal = newActivityModal(msg.path, msg.entries)
		return m, nil

	case recordMsg:
		if rm, ok := m.modal.(*recordModal); ok && rm.resource == msg.resource && rm.id == msg.id {
			rm.loaded(msg)
		}
		if msg.err != nil {
			m.logger.Warn("record fetch failed", "resource", msg.resource, "id", msg.id, "error", msg.err)
		}
		return m, nil

	case deleteRequestMsg:
		return m, m.deleteRecords(msg)

	case deletedMsg:
		cmd := m.applyDeleted(msg)
		return m, cmd

	case savedMsg:
		rv := m.views[msg.resource]
		if msg.err != nil {
			m.errorMsg = "save failed: " + msg.err.Error()
			m.logger.Warn(msg.action+" failed", "resource", msg.resource, "id", msg.id, "error", msg.err)
			return m, nil
		}
		m.logger.Info(msg.action, "resource", msg.resource, "id", msg.id, "status", msg.status)
		if rv == nil {
			return m, nil
		}
		rv.src.Invalidate()
		if msg.resource == m.active {
			return m, m.fetch()
		}
		return m, nil

	case filterAppliedMsg:
		if rv := m.current(); rv != nil {
			rv.table.ApplyFilter(msg.field, msg.values)
			rv.cursor = 0
			m.logger.Debug("filter applied", "resource", rv.res.Name, "field", msg.field, "values", msg.values)
			return m, m.fetch()
		}
		return m, nil
	}

	if m.searching {
		return m.updateSearch(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// current returns the active list, or nil when no list is configured.
func (m Model) current() *resourceView {
	return m.views[m.active]
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		next, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	if m.searching {
		return m.updateSearch(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.NextView):
		cmd := m.switchList(1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevView):
		cmd := m.switchList(-1)
		return m, cmd
	case key.Matches(msg, m.keys.Escape):
		m.errorMsg = ""
		return m, nil
	case key.Matches(msg, m.keys.Activity):
		return m, m.loadActivity()
	}

	rv := m.current()
	if rv == nil {
		return m, nil
	}
	return m.handleListKey(rv, msg)
}

// handleListKey applies table-state keys to the active list.
func (m Model) handleListKey(rv *resourceView, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := len(rv.view.Rows)
	cols := len(rv.table.Schema().Columns)

	switch {
	// Cursor movement stays within the loaded page.
	case key.Matches(msg, m.keys.Down):
		if rv.cursor < rows-1 {
			rv.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if rv.cursor > 0 {
			rv.cursor--
		}
	case key.Matches(msg, m.keys.Top):
		rv.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		rv.cursor = max(rows-1, 0)
	case key.Matches(msg, m.keys.ColumnLeft):
		if rv.column > 0 {
			rv.column--
		}
	case key.Matches(msg, m.keys.ColumnRight):
		if rv.column < cols-1 {
			rv.column++
		}

	case key.Matches(msg, m.keys.Toggle):
		if id := rv.cursorID(); id != "" {
			rv.table.ToggleSelection(id)
			rv.view.Selection = rv.table.Selected()
		}
	case key.Matches(msg, m.keys.SelectAll):
		rv.table.SelectAllVisible(rv.view.IDs)
		rv.view.Selection = rv.table.Selected()
	case key.Matches(msg, m.keys.ClearSelect):
		rv.table.ClearSelection()
		rv.view.Selection = nil

	case key.Matches(msg, m.keys.Confirm):
		if rv.cursor < rows {
			cmd := m.openRecord(rv)
			return m, cmd
		}
	case key.Matches(msg, m.keys.Delete):
		m.confirmDelete(rv)
	case key.Matches(msg, m.keys.NextStatus):
		cmd := m.cycleStatus(rv)
		return m, cmd
	case key.Matches(msg, m.keys.Duplicate):
		cmd := m.duplicate(rv)
		return m, cmd

	// Everything below changes the query and refetches.
	case key.Matches(msg, m.keys.Sort):
		if col, ok := rv.focusedColumn(); ok {
			rv.table.RequestSort(col.Name)
			return m, m.refetch(rv)
		}
	case key.Matches(msg, m.keys.ClearSort):
		rv.table.ClearSort()
		return m, m.refetch(rv)
	case key.Matches(msg, m.keys.NextPage):
		before := rv.table.Page().Number
		rv.table.NextPage()
		if rv.table.Page().Number != before {
			return m, m.refetch(rv)
		}
	case key.Matches(msg, m.keys.PrevPage):
		before := rv.table.Page().Number
		rv.table.PrevPage()
		if rv.table.Page().Number != before {
			return m, m.refetch(rv)
		}
	case key.Matches(msg, m.keys.GrowPage), key.Matches(msg, m.keys.ShrinkPage):
		size := nextPageSize(rv.table.Page().Size, key.Matches(msg, m.keys.GrowPage))
		if size != rv.table.Page().Size {
			rv.table.SetPageSize(size)
			m.prefs.PageSize = size
			m.savePrefs()
			return m, m.refetch(rv)
		}
	case key.Matches(msg, m.keys.Filter):
		m.openFilter(rv)
	case key.Matches(msg, m.keys.ClearFilters):
		if len(rv.table.Filters()) > 0 {
			rv.table.ClearFilters()
			return m, m.refetch(rv)
		}
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(rv.table.SearchTerm())
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Reload):
		rv.src.Invalidate()
		return m, m.fetch()
	}
	return m, nil
}

// updateSearch feeds input to the search box. The term is applied on every
// edit; enter keeps it and esc clears it.
func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	rv := m.current()
	if km, ok := msg.(tea.KeyMsg); ok && rv != nil {
		switch {
		case key.Matches(km, m.keys.Confirm):
			m.searching = false
			m.search.Blur()
			return m, nil
		case key.Matches(km, m.keys.Escape):
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			if rv.table.SearchTerm() != "" {
				rv.table.SetSearchTerm("")
				return m, m.refetch(rv)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if rv == nil {
		return m, cmd
	}
	term := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if term == rv.table.SearchTerm() {
		return m, cmd
	}
	rv.table.SetSearchTerm(term)
	return m, tea.Batch(cmd, m.refetch(rv))
}

// openRecord shows the row under the cursor and loads the full record.
func (m *Model) openRecord(rv *resourceView) tea.Cmd {
	id := rv.cursorID()
	title := rv.res.Title
	if id != "" {
		title += " " + id
	}
	rm := newRecordModal(title, rv.view.Rows[rv.cursor])
	rm.resource, rm.id = rv.res.Name, id
	m.modal = rm
	if m.records == nil || id == "" {
		return nil
	}
	rm.loading = true

	ctx, records, name := m.ctx, m.records, rv.res.Name
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
		defer cancel()
		rec, err := records.Get(ctx, name, id)
		return recordMsg{resource: name, id: id, record: rec, err: err}
	}
}

// targetIDs returns the selection, or the row under the cursor when nothing
// is selected.
func (rv *resourceView) targetIDs() []string {
	if ids := rv.table.Selected(); len(ids) > 0 {
		return ids
	}
	if id := rv.cursorID(); id != "" {
		return []string{id}
	}
	return nil
}

// confirmDelete asks before deleting the target rows.
func (m *Model) confirmDelete(rv *resourceView) {
	if m.records == nil {
		m.errorMsg = rv.res.Title + " is read-only"
		return
	}
	ids := rv.targetIDs()
	if len(ids) == 0 {
		return
	}
	noun := strings.ToLower(rv.res.Title)
	prompt := fmt.Sprintf("Delete %d %s?", len(ids), noun)
	if len(ids) == 1 {
		prompt = fmt.Sprintf("Delete %s %s?", noun, ids[0])
	}
	m.modal = newConfirmModal(prompt, strings.Join(ids, ", "), deleteRequestMsg{resource: rv.res.Name, ids: ids})
}

func (m Model) deleteRecords(req deleteRequestMsg) tea.Cmd {
	rv := m.views[req.resource]
	if rv == nil || m.records == nil {
		return nil
	}
	ctx, records, res := m.ctx, m.records, rv.res
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
		defer cancel()
		deleted, err := res.DeleteAll(ctx, records, req.ids)
		return deletedMsg{resource: res.Name, ids: deleted, err: err}
	}
}

// applyDeleted drops deleted ids from the selection and reloads the list.
func (m *Model) applyDeleted(msg deletedMsg) tea.Cmd {
	if msg.err != nil {
		m.errorMsg = "delete failed: " + msg.err.Error()
		m.logger.Warn("delete failed", "resource", msg.resource, "deleted", len(msg.ids), "error", msg.err)
	} else {
		m.logger.Info("records deleted", "resource", msg.resource, "count", len(msg.ids))
	}
	rv := m.views[msg.resource]
	if rv == nil || len(msg.ids) == 0 {
		return nil
	}
	for _, id := range msg.ids {
		if rv.table.IsSelected(id) {
			rv.table.ToggleSelection(id)
		}
	}
	rv.view.Selection = rv.table.Selected()
	rv.src.Invalidate()
	if msg.resource != m.active {
		return nil
	}
	return m.fetch()
}

// cycleStatus moves the row under the cursor to its next status.
func (m *Model) cycleStatus(rv *resourceView) tea.Cmd {
	if m.records == nil {
		m.errorMsg = rv.res.Title + " is read-only"
		return nil
	}
	if len(rv.res.Statuses) == 0 {
		m.errorMsg = rv.res.Title + " has no status"
		return nil
	}
	id := rv.cursorID()
	if id == "" {
		return nil
	}
	ctx, records, res := m.ctx, m.records, rv.res
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
		defer cancel()
		saved, err := res.CycleStatus(ctx, records, id)
		return savedMsg{action: "status changed", resource: res.Name, id: id, status: tablestate.Stringify(saved[resources.StatusField]), err: err}
	}
}

// duplicate copies the row under the cursor into a new record.
func (m *Model) duplicate(rv *resourceView) tea.Cmd {
	if m.records == nil {
		m.errorMsg = rv.res.Title + " is read-only"
		return nil
	}
	if !rv.res.Copyable {
		m.errorMsg = rv.res.Title + " cannot be duplicated"
		return nil
	}
	id := rv.cursorID()
	if id == "" {
		return nil
	}
	ctx, records, res := m.ctx, m.records, rv.res
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
		defer cancel()
		saved, err := res.Duplicate(ctx, records, id)
		return savedMsg{action: "record duplicated", resource: res.Name, id: id, status: tablestate.Stringify(saved[resources.StatusField]), err: err}
	}
}

// openFilter opens the value picker for the focused column, or the first
// filterable column when the focused one is not filterable.
func (m *Model) openFilter(rv *resourceView) {
	col, ok := rv.focusedColumn()
	if !ok || !col.Filterable {
		ok = false
		if names := rv.res.Filterable(); len(names) > 0 {
			col, ok = rv.table.Schema().Column(names[0])
		}
	}
	if !ok {
		m.errorMsg = rv.res.Title + " has no filterable columns"
		return
	}

	records := rv.view.Rows
	if local, isLocal := rv.src.(interface{ Records() []tablestate.Map }); isLocal {
		if all := local.Records(); len(all) > 0 {
			records = all
		}
	}
	options := tablestate.DistinctValues(rv.table.Schema(), records, col.Name)
	m.modal = newFilterPicker(col.Name, col.DisplayLabel(), options, rv.table.Filters().Values(col.Name))
}

// switchList activates the list delta steps away in menu order.
func (m *Model) switchList(delta int) tea.Cmd {
	if len(m.order) == 0 {
		return nil
	}
	idx := 0
	for i, name := range m.order {
		if name == m.active {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(m.order)) % len(m.order)
	m.active = m.order[idx]
	m.prefs.LastResource = m.active
	m.savePrefs()
	m.sync(true)
	return m.fetch()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
		m.errorMsg = "prefs not saved"
	}
}

// refetch moves the cursor to the top and fetches rv's current query.
func (m *Model) refetch(rv *resourceView) tea.Cmd {
	rv.cursor = 0
	rv.view.Page = rv.table.Page()
	return m.fetch()
}

// fetch publishes the active list's query as the focus and returns a command
// that loads it. Begin runs here, before the command, so the sequence order
// matches the order of user actions.
func (m Model) fetch() tea.Cmd {
	rv := m.current()
	if rv == nil || m.store == nil {
		return nil
	}
	name := rv.res.Name
	q := rv.table.Query()
	m.store.SetFocus(name, q)
	seq := m.store.Begin(name)

	ctx, src, store := m.ctx, rv.src, m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
		defer cancel()
		page, err := src.List(ctx, q)
		applied := store.Update(name, seq, page, err)
		return pageMsg{resource: name, seq: seq, applied: applied, err: err}
	}
}

// sync refreshes the active list from the store. Unless force is set it only
// rebuilds the view when the store holds a newer result.
func (m *Model) sync(force bool) {
	rv := m.current()
	if rv == nil || m.store == nil {
		return
	}
	snap := m.store.Snapshot(rv.res.Name)
	m.snapshot = snap
	if !force && snap.Seq == rv.seq {
		return
	}
	rv.seq = snap.Seq
	rv.view = rv.table.ServerView(snap.Rows, snap.Total)
	if rv.cursor >= len(rv.view.Rows) {
		rv.cursor = max(len(rv.view.Rows)-1, 0)
	}
}

func (rv *resourceView) cursorID() string {
	if rv.cursor < 0 || rv.cursor >= len(rv.view.IDs) {
		return ""
	}
	return rv.view.IDs[rv.cursor]
}

func (rv *resourceView) focusedColumn() (tableColumn, bool) {
	cols := rv.table.Schema().Columns
	if rv.column < 0 || rv.column >= len(cols) {
		return tableColumn{}, false
	}
	return cols[rv.column], true
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// renderContent renders the sidebar and the active list.
func (m Model) renderContent() string {
	styles := m.theme.Styles()
	contentHeight := max(m.height-chromeHeight-1, 3)

	rv := m.current()
	if rv == nil {
		msg := styles.MutedText.Render("No lists configured")
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, msg)
	}

	listWidth := m.width
	var menu string
	if m.width >= LayoutCompactWidth {
		listWidth = m.width - LayoutMenuWidth
		menu = m.renderMenu(LayoutMenuWidth, contentHeight)
	}

	title := fmt.Sprintf("%s (%d)", rv.res.Title, rv.view.TotalItems)
	rowsHeight := max(contentHeight-paneChromeHeight+1, 1)
	table := m.renderTable(rv, listWidth-2, rowsHeight)
	pane := m.renderTitledBox(title, table, listWidth, contentHeight, true)

	body := pane
	if menu != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, menu, pane)
	}
	return body + "\n" + m.renderFooter(rv)
}

// Messages

type tickMsg time.Time

// pageMsg reports a finished fetch. applied is false when a newer fetch for
// the same list had begun and the result was dropped.
type pageMsg struct {
	resource string
	seq      uint64
	applied  bool
	err      error
}

// recordMsg carries a single record loaded for the detail view.
type recordMsg struct {
	resource string
	id       string
	record   tablestate.Map
	err      error
}

// deleteRequestMsg is sent when the user confirms a delete.
type deleteRequestMsg struct {
	resource string
	ids      []string
}

// deletedMsg reports which ids are gone after a delete.
type deletedMsg struct {
	resource string
	ids      []string
	err      error
}

// savedMsg reports a finished write made from a list.
type savedMsg struct {
	action   string
	resource string
	id       string
	status   string
	err      error
}

// activityMsg carries the tail of the log file.
type activityMsg struct {
	path    string
	entries []logtail.Entry
	err     error
}

// Commands

// loadActivity reads the log tail off the UI goroutine.
func (m Model) loadActivity() tea.Cmd {
	if m.config == nil || m.config.LogPath() == "" {
		return nil
	}
	path := m.config.LogPath()
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return activityMsg{path: path, entries: logtail.ParseLines(lines), err: err}
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
