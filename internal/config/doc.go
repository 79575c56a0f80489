// Package config loads ledgerdeck's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/ledgerdeck/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Fields
//
//	api_url      = "http://127.0.0.1:8080"   # host:port or full URL
//	api_token    = ""                        # sent as a bearer token
//	page_size    = 10                        # initial rows per page, max 500
//	poll_seconds = 0                         # 0 disables auto refresh
//	log_dir      = "~/.local/state/ledgerdeck"
//	log_level    = "info"                    # debug, info, warn, error
//	cache_size   = 64                        # server pages kept per resource
//
// Negative page_size or poll_seconds are rejected. Paths support ~ expansion
// and are made absolute.
//
// # Error Handling
//
// Missing files are not an error. Unreadable files and invalid TOML are,
// wrapped as "open config: ...", "read config: ..." or "parse config: ...".
//
// The prefs package stores user-changed settings (theme, page size)
// separately so this file is never rewritten.
package config
