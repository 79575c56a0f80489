// Package state provides thread-safe sharing of fetched pages between the
// background fetchers and the UI.
//
// # Overview
//
// Every list fetch (a page turn, a new search term, a poll tick) runs off the
// UI goroutine. Fetches can overlap: typing "acme" quickly may start four
// requests that complete in any order. The Store keeps exactly one Snapshot
// per resource and applies results last-write-wins by request order, not by
// arrival order:
//
//	seq := store.Begin("customers")   // on the UI goroutine
//	go func() {
//		page, err := src.List(ctx, query)
//		store.Update("customers", seq, page, err)  // ignored if stale
//	}()
//
// # Update Semantics
//
//	// Success: replace rows, clear the error, reset failures
//	store.Update(res, seq, page, nil)
//
//	// Error: keep old rows, record the error, count the failure
//	store.Update(res, seq, source.Page{}, err)
//
//	// Stale: a newer Begin happened for res; nothing changes
//	store.Update(res, olderSeq, page, nil) == false
//
// After two consecutive failures Snapshot.IsOffline reports true and the UI
// shows the last good rows with an offline banner.
//
// # Concurrency Model
//
// Store uses a sync.RWMutex. The zero value is ready to use. Snapshots are
// returned by value with the row slice and error cloned, so the UI can hold
// them without further locking. Records themselves are shared and must be
// treated as read-only.
package state
