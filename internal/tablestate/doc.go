// Package tablestate manages the sort, filter, search, page and selection
// state of one tabular list view.
//
// # Overview
//
// A TableState is created per list view over a Schema that names the record
// id and the field accessors. Mutation methods record user intent
// (RequestSort, ApplyFilter, SetSearchTerm, SetPage, SetPageSize, selection
// toggles) and VisibleRows derives the rows to render:
//
//	records ──search──filter──stable sort──page window──→ View
//
// The same state can instead drive a server query: Query projects it onto a
// ListQuery and ServerView wraps the page the server answers with.
//
// # Sorting
//
// A single column sorts at a time. Comparison depends on the column Kind:
//
//   - KindDate: values parse via DateLayouts, day/month/year first
//   - KindNumber, KindCurrency: currency symbols and thousands separators
//     are stripped before a decimal comparison
//   - KindText: byte-wise string comparison
//   - KindAuto: the kind is inferred from all of the column's values
//
// Values that fail to parse sort after every parsed value. Ties keep the
// records' original order, so toggling direction on tied data is
// reproducible. Descending reverses ascending exactly for distinct values.
//
// # Filtering
//
// A FilterSet maps fields to allowed values, compared against Stringify of
// the record's value. Fields AND together, values within a field OR. The
// search term is a case-insensitive substring match over the searchable
// columns. A field unknown to the schema never matches.
//
// # Paging and selection
//
// Pages are 1-based. Changing the page size, a filter or the search term
// returns to page 1. SetPage ignores pages outside [1, TotalPages]. The
// selection is a set of record ids that survives paging, sorting and
// filtering until cleared.
package tablestate
