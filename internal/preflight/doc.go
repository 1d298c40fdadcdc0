// Package preflight provides the readiness checks behind "larder doctor".
//
// Each check returns a Result instead of an error so the CLI can report every
// problem at once: the database opens (which also proves no other process
// holds the lock) and passes SQLite's integrity check, the data directory is
// writable, the filesystem has room to grow, and the log file location is
// usable when one is configured.
package preflight
