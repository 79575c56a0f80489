package tablestate

import (
	"cmp"
	"slices"
	"strings"
)

// Direction is the order of a sort.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts "asc"/"desc" in any case; anything else is ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Descending
	}
	return Ascending
}

// SortSpec is the single active sort. A zero Field means unsorted.
type SortSpec struct {
	Field     string
	Direction Direction
}

// IsZero reports whether no sort is active.
func (s SortSpec) IsZero() bool {
	return s.Field == ""
}

// View is the derived state handed to a renderer.
type View[R any] struct {
	Rows       []R
	IDs        []string
	TotalItems int
	TotalPages int
	Page       PageSpec
	Sort       SortSpec
	Filters    map[string][]string
	Search     string
	Selection  []string
}

// TableState holds sort, filter, search, page and selection state for one
// list view. It is not safe for concurrent use; each view owns its own.
type TableState[R any] struct {
	schema     Schema[R]
	sort       SortSpec
	filters    FilterSet
	search     string
	page       PageSpec
	selection  map[string]struct{}
	totalItems int
	memo       sortMemo[R]
}

type sortMemo[R any] struct {
	valid bool
	spec  SortSpec
	data  *R
	n     int
	order []int
}

// New creates a TableState over schema. A non-positive pageSize uses
// DefaultPageSize.
func New[R any](schema Schema[R], pageSize int) *TableState[R] {
	return &TableState[R]{
		schema:    schema,
		filters:   make(FilterSet),
		page:      normalizePage(PageSpec{Number: 1, Size: pageSize}),
		selection: make(map[string]struct{}),
	}
}

// Schema returns the schema the state was built with.
func (s *TableState[R]) Schema() Schema[R] {
	return s.schema
}

// RequestSort flips the direction when field is already the sort field and
// otherwise sorts ascending by field.
func (s *TableState[R]) RequestSort(field string) {
	if field != "" && field == s.sort.Field {
		if s.sort.Direction == Ascending {
			s.sort.Direction = Descending
		} else {
			s.sort.Direction = Ascending
		}
	} else {
		s.sort = SortSpec{Field: field, Direction: Ascending}
	}
	s.Invalidate()
}

// ClearSort returns to the original record order.
func (s *TableState[R]) ClearSort() {
	s.sort = SortSpec{}
	s.Invalidate()
}

// Sort returns the active sort.
func (s *TableState[R]) Sort() SortSpec {
	return s.sort
}

// ApplyFilter replaces the allowed values for field and returns to page 1.
// No values clears the field's filter.
func (s *TableState[R]) ApplyFilter(field string, values []string) {
	s.filters.Set(field, values)
	s.page.Number = 1
}

// ClearFilters drops every filter and returns to page 1.
func (s *TableState[R]) ClearFilters() {
	clear(s.filters)
	s.page.Number = 1
}

// Filters returns a copy of the active filters.
func (s *TableState[R]) Filters() FilterSet {
	return s.filters.Clone()
}

// SetSearchTerm stores the trimmed, lower-cased term and returns to page 1.
func (s *TableState[R]) SetSearchTerm(term string) {
	s.search = strings.ToLower(strings.TrimSpace(term))
	s.page.Number = 1
}

// SearchTerm returns the normalized search term.
func (s *TableState[R]) SearchTerm() string {
	return s.search
}

// SetPage moves to pageNumber when it lies within [1, TotalPages()].
func (s *TableState[R]) SetPage(pageNumber int) {
	if pageNumber < 1 || pageNumber > s.TotalPages() {
		return
	}
	s.page.Number = pageNumber
}

// NextPage advances one page if possible.
func (s *TableState[R]) NextPage() {
	s.SetPage(s.page.Number + 1)
}

// PrevPage goes back one page if possible.
func (s *TableState[R]) PrevPage() {
	s.SetPage(s.page.Number - 1)
}

// SetPageSize changes the page size and returns to page 1. Non-positive sizes
// are ignored.
func (s *TableState[R]) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	s.page.Size = size
	s.page.Number = 1
}

// Page returns the current page spec.
func (s *TableState[R]) Page() PageSpec {
	return s.page
}

// TotalItems returns the post-filter count from the most recent view.
func (s *TableState[R]) TotalItems() int {
	return s.totalItems
}

// TotalPages returns the page count from the most recent view.
func (s *TableState[R]) TotalPages() int {
	return TotalPages(s.totalItems, s.page.Size)
}

// Invalidate drops the memoized sort order. The memo is keyed on the slice's
// first element address and length, so call it after mutating records in
// place or refilling the same backing array with new records. Passing a
// slice with a different backing array or length invalidates automatically.
func (s *TableState[R]) Invalidate() {
	s.memo = sortMemo[R]{}
}

// VisibleRows applies the search term, the filters and the sort to records
// and returns the current page window. Records are never modified.
//
// The sort order is reused while records has the same backing array and
// length; after rewriting its contents in place call Invalidate.
func (s *TableState[R]) VisibleRows(records []R) View[R] {
	// Filtering a stable sort's output keeps the same relative order as
	// sorting the filtered rows, so the full-collection order can be reused.
	order := s.sortedOrder(records)
	m := newMatcher(s.schema, s.filters, s.search)

	matched := make([]R, 0, len(records))
	for _, i := range order {
		if m.match(records[i]) {
			matched = append(matched, records[i])
		}
	}

	s.totalItems = len(matched)
	start, end := s.page.Window(len(matched))
	return s.view(matched[start:end:end], len(matched))
}

// ServerView wraps a page the server already searched, filtered, sorted and
// sliced. total is the server's post-filter count.
func (s *TableState[R]) ServerView(rows []R, total int) View[R] {
	if total < len(rows) {
		total = len(rows)
	}
	s.totalItems = total
	return s.view(rows, total)
}

func (s *TableState[R]) view(rows []R, total int) View[R] {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = s.schema.id(r)
	}
	return View[R]{
		Rows:       rows,
		IDs:        ids,
		TotalItems: total,
		TotalPages: TotalPages(total, s.page.Size),
		Page:       s.page,
		Sort:       s.sort,
		Filters:    s.filters.Lists(),
		Search:     s.search,
		Selection:  s.Selected(),
	}
}

// Comparator returns the ordering the active sort applies, with the column
// kind inferred from records when it is KindAuto. It returns nil when no sort
// is active. Ties compare equal; callers needing stability must break them.
func (s *TableState[R]) Comparator(records []R) func(a, b R) int {
	if s.sort.IsZero() {
		return nil
	}
	acc := s.schema.accessor(s.sort.Field)
	kind := resolveKind(acc, records)
	desc := s.sort.Direction == Descending
	return func(a, b R) int {
		va, okA := acc.get(a)
		vb, okB := acc.get(b)
		c := compareKeys(kind, keyFor(kind, va, okA), keyFor(kind, vb, okB))
		if desc {
			return -c
		}
		return c
	}
}

func (s *TableState[R]) sortedOrder(records []R) []int {
	n := len(records)
	if s.sort.IsZero() || n == 0 {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		return order
	}
	if s.memo.valid && s.memo.spec == s.sort && s.memo.n == n && s.memo.data == &records[0] {
		return s.memo.order
	}

	acc := s.schema.accessor(s.sort.Field)
	kind := resolveKind(acc, records)
	keys := make([]sortKey, n)
	order := make([]int, n)
	for i, r := range records {
		v, ok := acc.get(r)
		keys[i] = keyFor(kind, v, ok)
		order[i] = i
	}
	desc := s.sort.Direction == Descending
	slices.SortFunc(order, func(a, b int) int {
		c := compareKeys(kind, keys[a], keys[b])
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	s.memo = sortMemo[R]{valid: true, spec: s.sort, data: &records[0], n: n, order: order}
	return order
}

func resolveKind[R any](acc accessor[R], records []R) Kind {
	if acc.kind != KindAuto {
		return acc.kind
	}
	values := make([]any, 0, len(records))
	for _, r := range records {
		if v, ok := acc.get(r); ok {
			values = append(values, v)
		}
	}
	return inferKind(values)
}
