package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"larder/internal/catalog"
	"larder/internal/config"
	"larder/internal/logging"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger
	now    func() time.Time
}

// Open initializes or connects to the catalog database named by
// cfg.Paths.Database. It fails with ErrStorageIO when another process holds
// the database lock.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, catalog.Wrap(catalog.ErrStorageIO, "open store", "config is required", nil)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, catalog.Wrap(catalog.ErrStorageIO, "open store", "ensure directories", err)
	}
	logger = logging.NewComponentLogger(logger, "store")

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, catalog.Wrap(catalog.ErrStorageIO, "open store", "acquire lock "+cfg.LockPath(), err)
	}
	if !locked {
		return nil, catalog.Wrap(catalog.ErrStorageIO, "open store",
			fmt.Sprintf("database %s is in use by another larder process", cfg.Paths.Database), nil)
	}

	dbPath := cfg.Paths.Database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, catalog.Wrap(catalog.ErrStorageIO, "open store", "open sqlite db", err)
	}
	// One connection keeps the per-connection pragmas in force for every query.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, catalog.Wrap(catalog.ErrStorageIO, "open store", fmt.Sprintf("apply pragma %q", pragma), execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock, logger: logger, now: time.Now}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, classify("open store", err)
	}

	logger.Debug("store opened", logging.String("path", dbPath))
	return store, nil
}

// Close closes the underlying database connection and releases the lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	if err != nil {
		return catalog.Wrap(catalog.ErrStorageIO, "close store", "", err)
	}
	s.logger.Debug("store closed", logging.String("path", s.path))
	return nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// SetClock overrides the timestamp source, for tests.
func (s *Store) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

// withTx runs fn inside one transaction. Errors fn returns that are not yet
// classified are reported as storage failures.
func (s *Store) withTx(ctx context.Context, operation string, fn func(tx *sql.Tx) error) error {
	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return catalog.Wrap(catalog.ErrStorageIO, operation, "begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return classify(operation, err)
	}
	if err := tx.Commit(); err != nil {
		return catalog.Wrap(catalog.ErrStorageIO, operation, "commit", err)
	}
	return nil
}

func classify(operation string, err error) error {
	if catalog.Kind(err) != "" {
		return err
	}
	return catalog.Wrap(catalog.ErrStorageIO, operation, "", err)
}

func notFound(operation, kind string, id int64) error {
	return catalog.Wrap(catalog.ErrNotFound, operation, fmt.Sprintf("%s %d", kind, id), nil)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
