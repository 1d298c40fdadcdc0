package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"larder/internal/preflight"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

const statusLabelWidth = 16

var errChecksFailed = errors.New("one or more checks failed")

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the database, data directory, and free space",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ctx.outputFormat()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg, ctx.loggerValue())

			out := cmd.OutOrStdout()
			if format == formatJSON {
				if err := writeJSON(out, results); err != nil {
					return err
				}
			} else {
				colorize := isTerminal(out)
				for _, r := range results {
					fmt.Fprintln(out, renderStatusLine(r, colorize))
				}
			}
			if preflight.Failed(results) {
				return errChecksFailed
			}
			return nil
		},
	}
}

func renderStatusLine(r preflight.Result, colorize bool) string {
	label, color := "OK", ansiGreen
	if !r.Passed {
		label, color = "FAIL", ansiRed
	}
	line := fmt.Sprintf("  %-*s [%s] %s", statusLabelWidth, r.Name+":", label, r.Detail)
	if colorize {
		return color + line + ansiReset
	}
	return line
}
