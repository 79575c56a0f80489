// Package app provides the orchestration layer for ledgerdeck.
//
// # Overview
//
// This package wires together configuration, logging, the REST client, the
// per-resource data sources, the shared state.Store and the UI. It is the
// composition root where all dependencies are initialized and connected.
//
// # Startup
//
//  1. Load ~/.config/ledgerdeck/config.toml (flags override poll and log level)
//  2. Open the log file under log_dir
//  3. Load prefs; a saved page size wins over the config value
//  4. Build the ledger client and one source.Source per resource
//  5. Start the poller when poll_seconds > 0
//  6. Run the TUI until the user quits or the context is cancelled
//
// # Poller
//
// The UI publishes its focused resource and query with store.SetFocus. The
// poller refetches exactly that, dropping cached pages first, and writes the
// result through the same Begin/Update sequence the UI uses, so a poll never
// overwrites a newer user-driven fetch.
//
// While fetches fail, the delay doubles from the base interval up to 30s and
// resets on the first success.
package app
