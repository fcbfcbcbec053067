// Package config loads slotboard's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/slotboard/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. SLOTBOARD_* environment variables override whatever the file says
//
// # Default Values
//
//   - Config file: ~/.config/slotboard/config.toml
//   - api_url: empty (auto-detect from page_url)
//   - page_url: http://localhost
//   - days: Mon,Tue,Wed,Thu,Fri
//   - probe_timeout: 4s
//   - log_level: info
//   - log_file: ~/.local/state/slotboard/slotboard.log
//
// # TOML Format
//
//	api_url = "http://127.0.0.1:8000"
//	page_url = "http://localhost"
//	days = "Mon,Tue,Wed,Thu,Fri"
//	probe_timeout = "4s"
//	log_level = "info"
//	log_file = "~/.local/state/slotboard/slotboard.log"
//
// # Environment Overrides
//
// Each key can be overridden by upper-casing it and adding the SLOTBOARD_
// prefix, for example SLOTBOARD_API_URL or SLOTBOARD_PROBE_TIMEOUT.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than a
// missing file, TOML syntax errors, and an unparsable or non-positive
// probe_timeout. A missing file is not an error.
package config
