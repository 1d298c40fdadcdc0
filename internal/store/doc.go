// Package store persists recipes, grocery items and the staples checklist in
// a local SQLite file. It also remembers which recipes were saved to the
// current grocery list.
//
// A Store owns the database connection and an exclusive lock file next to
// it, so only one larder process touches the catalog at a time. Every
// mutation runs inside a single transaction: either all of its rows change or
// none do. Errors carry the catalog sentinels (ErrNotFound, ErrConflict,
// ErrInvalidInput, ErrStorageIO) so callers classify them with errors.Is.
//
// Quantities are stored as decimal text and nulls stay NULL, so a value read
// back is exactly the value written.
package store
