package tablestate

// Kind tells the comparator how to interpret a column's values.
type Kind int

const (
	// KindAuto infers the kind from the column's values at sort time.
	KindAuto Kind = iota
	KindText
	KindNumber
	// KindCurrency compares like KindNumber after stripping currency symbols
	// and thousands separators.
	KindCurrency
	KindDate
	KindBool
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindCurrency:
		return "currency"
	case KindDate:
		return "date"
	case KindBool:
		return "bool"
	default:
		return "auto"
	}
}

// Column describes one field of a record type.
type Column[R any] struct {
	Name       string
	Label      string
	Kind       Kind
	Searchable bool
	Filterable bool
	// Get returns the field value and whether the record has the field.
	Get func(R) (any, bool)
}

// Col builds a column whose accessor always reports the field as present. A
// nil get leaves the accessor for MapSchema to fill in.
func Col[R any](name string, kind Kind, get func(R) any) Column[R] {
	c := Column[R]{Name: name, Kind: kind}
	if get != nil {
		c.Get = func(r R) (any, bool) {
			return get(r), true
		}
	}
	return c
}

// Searched marks the column as part of the free-text search.
func (c Column[R]) Searched() Column[R] {
	c.Searchable = true
	return c
}

// Filtered marks the column as offering a value filter.
func (c Column[R]) Filtered() Column[R] {
	c.Filterable = true
	return c
}

// DisplayLabel returns Label, falling back to Name.
func (c Column[R]) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

// Schema binds a record type to its id and field accessors.
type Schema[R any] struct {
	ID      func(R) string
	Columns []Column[R]
	// Fallback resolves fields that have no column. When nil such fields are
	// treated as absent on every record.
	Fallback func(r R, field string) (any, bool)
}

// Column returns the column named name.
func (s Schema[R]) Column(name string) (Column[R], bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column[R]{}, false
}

// searchable returns the columns used by the free-text search. When no column
// opts in, every column is searched.
func (s Schema[R]) searchable() []Column[R] {
	var cols []Column[R]
	for _, c := range s.Columns {
		if c.Searchable {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return s.Columns
	}
	return cols
}

type accessor[R any] struct {
	kind Kind
	get  func(R) (any, bool)
}

func (s Schema[R]) accessor(field string) accessor[R] {
	kind := KindAuto
	if c, ok := s.Column(field); ok {
		if c.Get != nil {
			return accessor[R]{kind: c.Kind, get: c.Get}
		}
		kind = c.Kind
	}
	if s.Fallback != nil {
		fb := s.Fallback
		return accessor[R]{kind: kind, get: func(r R) (any, bool) { return fb(r, field) }}
	}
	return accessor[R]{kind: kind, get: func(R) (any, bool) { return nil, false }}
}

// Value reads field from r the way sorting and filtering do.
func (s Schema[R]) Value(r R, field string) (any, bool) {
	return s.accessor(field).get(r)
}

// RowID returns the record's selection id.
func (s Schema[R]) RowID(r R) string {
	return s.id(r)
}

func (s Schema[R]) id(r R) string {
	if s.ID == nil {
		return ""
	}
	return s.ID(r)
}

// Map is an opaque record keyed by field name, as decoded from JSON.
type Map map[string]any

// MapSchema builds a schema over Map records. Columns without an accessor read
// the key matching their name, and fields without a column fall back to a
// plain key lookup.
func MapSchema(idField string, cols ...Column[Map]) Schema[Map] {
	resolved := make([]Column[Map], len(cols))
	for i, c := range cols {
		if c.Get == nil {
			name := c.Name
			c.Get = func(m Map) (any, bool) {
				v, ok := m[name]
				return v, ok
			}
		}
		resolved[i] = c
	}
	return Schema[Map]{
		ID: func(m Map) string {
			return Stringify(m[idField])
		},
		Columns: resolved,
		Fallback: func(m Map, field string) (any, bool) {
			v, ok := m[field]
			return v, ok
		},
	}
}
