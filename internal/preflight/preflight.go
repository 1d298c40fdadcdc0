package preflight

import (
	"context"
	"log/slog"
	"path/filepath"

	"larder/internal/config"
)

// minFreeBytes is the free space below which the data directory check warns.
const minFreeBytes = 16 << 20

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
// The database check runs first because opening the store creates missing
// directories.
func RunAll(ctx context.Context, cfg *config.Config, logger *slog.Logger) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDatabase(ctx, cfg, logger))
	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckFreeSpace("Free space", filepath.Dir(cfg.Paths.Database), minFreeBytes))

	if cfg.Logging.File != "" {
		results = append(results, CheckDirectoryAccess("Log directory", filepath.Dir(cfg.Logging.File)))
	}

	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
