package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"larder/internal/catalog"
)

func main() {
	cmd, closeCmd := newRootCommand()
	err := cmd.Execute()
	_ = closeCmd()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "larder:", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps error classes to distinct process exit statuses.
func exitCode(err error) int {
	switch catalog.Kind(err) {
	case "invalid_input":
		return 2
	case "not_found":
		return 3
	case "conflict":
		return 4
	case "storage":
		return 5
	default:
		return 1
	}
}
