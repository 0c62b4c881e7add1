// Package config loads mksite project configuration.
//
// The file is TOML (mksite.toml) or YAML (.yaml/.yml). Loading expands
// environment references, fills in default directories, resolves every
// directory and ignore path to an absolute path against the working
// directory, and validates the result. A loaded Config is read-only for the
// rest of the process.
package config
