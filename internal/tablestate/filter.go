package tablestate

import (
	"slices"
	"strings"
)

// FilterSet maps a field to the values it may take. A field with no entry, or
// an empty entry, is unconstrained. Fields AND together; values within one
// field OR together.
type FilterSet map[string]map[string]struct{}

// Set replaces the allowed values for field. An empty list removes the
// constraint.
func (f FilterSet) Set(field string, values []string) {
	if len(values) == 0 {
		delete(f, field)
		return
	}
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	f[field] = allowed
}

// Values returns the allowed values for field in sorted order.
func (f FilterSet) Values(field string) []string {
	allowed := f[field]
	if len(allowed) == 0 {
		return nil
	}
	out := make([]string, 0, len(allowed))
	for v := range allowed {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Fields returns the constrained fields in sorted order.
func (f FilterSet) Fields() []string {
	out := make([]string, 0, len(f))
	for field, allowed := range f {
		if len(allowed) > 0 {
			out = append(out, field)
		}
	}
	slices.Sort(out)
	return out
}

// Lists renders the set as field -> sorted values.
func (f FilterSet) Lists() map[string][]string {
	out := make(map[string][]string, len(f))
	for _, field := range f.Fields() {
		out[field] = f.Values(field)
	}
	return out
}

// Clone returns a deep copy.
func (f FilterSet) Clone() FilterSet {
	out := make(FilterSet, len(f))
	for field, allowed := range f {
		if len(allowed) == 0 {
			continue
		}
		dup := make(map[string]struct{}, len(allowed))
		for v := range allowed {
			dup[v] = struct{}{}
		}
		out[field] = dup
	}
	return out
}

// filterFromLists is the inverse of Lists.
func filterFromLists(lists map[string][]string) FilterSet {
	f := make(FilterSet, len(lists))
	for field, values := range lists {
		f.Set(field, values)
	}
	return f
}

// matcher evaluates search and filters against records of one schema.
type matcher[R any] struct {
	term     string
	searched []accessor[R]
	filters  []fieldFilter[R]
}

type fieldFilter[R any] struct {
	acc     accessor[R]
	allowed map[string]struct{}
}

func newMatcher[R any](schema Schema[R], filters FilterSet, term string) matcher[R] {
	m := matcher[R]{term: term}
	if term != "" {
		for _, c := range schema.searchable() {
			m.searched = append(m.searched, schema.accessor(c.Name))
		}
	}
	for _, field := range filters.Fields() {
		m.filters = append(m.filters, fieldFilter[R]{
			acc:     schema.accessor(field),
			allowed: filters[field],
		})
	}
	return m
}

func (m matcher[R]) match(r R) bool {
	return m.matchSearch(r) && m.matchFilters(r)
}

func (m matcher[R]) matchSearch(r R) bool {
	if m.term == "" {
		return true
	}
	for _, acc := range m.searched {
		v, ok := acc.get(r)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(Stringify(v)), m.term) {
			return true
		}
	}
	return false
}

func (m matcher[R]) matchFilters(r R) bool {
	for _, ff := range m.filters {
		v, ok := ff.acc.get(r)
		if !ok {
			return false
		}
		if _, allowed := ff.allowed[Stringify(v)]; !allowed {
			return false
		}
	}
	return true
}

// DistinctValues returns the sorted distinct string values of field across
// records, for building filter pickers.
func DistinctValues[R any](schema Schema[R], records []R, field string) []string {
	acc := schema.accessor(field)
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		v, ok := acc.get(r)
		if !ok {
			continue
		}
		s := Stringify(v)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
