// Package ui provides the Bubble Tea terminal interface for ledgerdeck.
//
// # Layout
//
//   - Header: logo, active list, connection state, last refresh, errors
//   - Command bar: key hints rendered with bubbles/help, or the search prompt
//   - Sidebar: lists grouped by section (hidden below LayoutCompactWidth)
//   - Table: the active list's page with sort arrows and selection markers
//   - Footer: page, row count, page size, selection, sort, filters, search
//
// # State
//
// Each list owns a tablestate.TableState, so sort, filters, search, page and
// selection survive switching between lists. Keys mutate the TableState and
// then fetch its Query through the list's source.Source.
//
// # Fetching
//
// fetch publishes the query as the store's focus and calls Store.Begin on the
// UI goroutine before returning the command that performs the request. The
// command records its result with Store.Update, which ignores results from a
// fetch that a newer one superseded; the resulting pageMsg carries applied so
// the model can drop it too. A one-second tick re-reads the store and picks up
// refreshes made by the background poller.
//
// Server-paged and locally paged lists render the same way: both sources
// return one finished page, shown through TableState.ServerView.
//
// # Modals
//
//   - filterPicker: choose allowed values for one filterable column
//   - recordModal: the record under the cursor, refreshed with a single-record
//     fetch once it arrives
//   - confirmModal: confirms deleting the selected rows
//   - activityModal: the tail of ledgerdeck.log
//
// # Edits
//
// With Options.Records set, d deletes the selection (or the row under the
// cursor), e moves the row to its next status and c duplicates a row of a
// copyable list. Writes go through resources.Resource, which validates records
// before any request is sent. Afterwards the list's source is invalidated and
// the page reloaded.
//
// # Preferences
//
// Theme, page size and the last open list are written to prefs.toml whenever
// they change.
package ui
