package tablestate

import (
	"net/url"
	"strconv"
	"strings"
)

// ListQuery is the state a server-driven list needs to fetch one page.
type ListQuery struct {
	Filters  map[string][]string
	Sort     SortSpec
	Page     int
	PageSize int
	Search   string
}

// Query projects the current state onto a ListQuery.
func (s *TableState[R]) Query() ListQuery {
	return ListQuery{
		Filters:  s.filters.Lists(),
		Sort:     s.sort,
		Page:     s.page.Number,
		PageSize: s.page.Size,
		Search:   s.search,
	}
}

// FromQuery builds a TableState that reproduces q, for answering a ListQuery
// over an in-memory collection.
func FromQuery[R any](schema Schema[R], q ListQuery) *TableState[R] {
	s := New(schema, q.PageSize)
	s.filters = filterFromLists(q.Filters)
	s.sort = q.Sort
	s.search = strings.ToLower(strings.TrimSpace(q.Search))
	if q.Page > 1 {
		s.page.Number = q.Page
	}
	return s
}

// Values encodes the query as URL parameters: page, pageSize, search, sortBy,
// sortDir and one filter[<field>] per constrained field.
func (q ListQuery) Values() url.Values {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if !q.Sort.IsZero() {
		values.Set("sortBy", q.Sort.Field)
		values.Set("sortDir", q.Sort.Direction.String())
	}
	for field, allowed := range q.Filters {
		for _, v := range allowed {
			values.Add("filter["+field+"]", v)
		}
	}
	return values
}

// Key is a canonical string for q, stable across map iteration order.
func (q ListQuery) Key() string {
	return q.Values().Encode()
}
