package tablestate

import "slices"

// ToggleSelection adds id to the selection if absent and removes it otherwise.
func (s *TableState[R]) ToggleSelection(id string) {
	if _, ok := s.selection[id]; ok {
		delete(s.selection, id)
		return
	}
	s.selection[id] = struct{}{}
}

// SelectAllVisible adds every id to the selection. Ids selected earlier stay
// selected.
func (s *TableState[R]) SelectAllVisible(ids []string) {
	for _, id := range ids {
		s.selection[id] = struct{}{}
	}
}

// SelectRows adds the ids of rows to the selection.
func (s *TableState[R]) SelectRows(rows []R) {
	for _, r := range rows {
		s.selection[s.schema.id(r)] = struct{}{}
	}
}

// ClearSelection empties the selection.
func (s *TableState[R]) ClearSelection() {
	clear(s.selection)
}

// IsSelected reports whether id is selected.
func (s *TableState[R]) IsSelected(id string) bool {
	_, ok := s.selection[id]
	return ok
}

// IsRowSelected reports whether the record is selected.
func (s *TableState[R]) IsRowSelected(r R) bool {
	return s.IsSelected(s.schema.id(r))
}

// Selected returns the selected ids in sorted order.
func (s *TableState[R]) Selected() []string {
	out := make([]string, 0, len(s.selection))
	for id := range s.selection {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// SelectionCount returns the number of selected ids.
func (s *TableState[R]) SelectionCount() int {
	return len(s.selection)
}
