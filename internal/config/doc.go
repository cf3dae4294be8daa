// Package config loads the knowledgehub client configuration.
//
// # Resolution
//
//  1. If a path is given, read it; otherwise ~/.config/knowledgehub/config.toml
//  2. A missing file is not an error: built-in defaults are used
//  3. Fields present in the file replace defaults (strings are trimmed)
//  4. KNOWLEDGEHUB_* environment variables override the file
//  5. Trigger settings are validated
//
// # TOML Format
//
//	api_url = "https://autoblog-x3m1.onrender.com"
//	site_url = "https://autoblog-1-tyoa.onrender.com"
//	admin_secret = ""
//	log_file = "~/.local/state/knowledgehub/knowledgehub.log"
//	theme = "Nightfox"
//
//	[trigger]
//	enabled = true
//	hour = 23
//	minute = 0
//	utc_offset = "+05:30"
//	interval = "1m"
//
// # Admin Secret
//
// There is no default secret. Without one the admin panel stays locked and
// the scheduled trigger is not started. The secret is a shared key sent in
// the X-Admin-Key header; anything holding this file can read it, so keep
// it out of version control.
//
// LoadFS takes an afero.Fs so tests can use an in-memory filesystem.
package config
