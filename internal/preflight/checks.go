package preflight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"larder/internal/catalog"
	"larder/internal/config"
	"larder/internal/store"
)

// CheckDatabase opens the store, verifies its schema and integrity, and
// reports row counts.
func CheckDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) Result {
	const name = "Database"

	st, err := store.Open(cfg, logger)
	if err != nil {
		if errors.Is(err, store.ErrSchemaMismatch) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: schema mismatch)", cfg.Paths.Database)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.Paths.Database, err)}
	}
	defer st.Close()

	stats, err := st.Stats(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (%s: %v)", cfg.Paths.Database, catalog.Kind(err), err)}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%s (%d recipes, %d grocery items, integrity ok)", cfg.Paths.Database, stats.Recipes, stats.Items),
	}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies the filesystem holding path has at least minBytes
// available to unprivileged users.
func CheckFreeSpace(name, path string, minBytes uint64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	available := stat.Bavail * uint64(stat.Bsize)
	detail := fmt.Sprintf("%s (%s available)", path, humanize.IBytes(available))
	if available < minBytes {
		return Result{Name: name, Detail: detail + fmt.Sprintf(", need %s", humanize.IBytes(minBytes))}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}
