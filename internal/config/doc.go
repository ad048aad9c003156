// Package config loads and validates vizcast configuration.
//
// Configuration is read from a TOML file, defaulting to
// ~/.config/vizcast/config.toml with a project-local vizcast.toml
// fallback. Missing files are not an error: defaults cover every
// setting, so the tool works with no configuration at all.
package config
