// Package config loads, normalizes, and validates larder configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the LARDER_DB environment
// override. The Config type centralizes the database location, log settings,
// and default output format so the CLI resolves them in one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical format names, and clear validation errors.
package config
