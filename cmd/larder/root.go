package main

import (
	"github.com/spf13/cobra"
)

// newRootCommand builds the command tree. The returned function closes
// resources the invocation opened and must be called after Execute.
func newRootCommand() (*cobra.Command, func() error) {
	var configFlag string
	var dbFlag string
	var formatFlag string

	ctx := newCommandContext(&configFlag, &dbFlag, &formatFlag)

	rootCmd := &cobra.Command{
		Use:           "larder",
		Short:         "Recipe catalog and shopping list",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			cmd.SetContext(ctx.annotate(cmd.Context()))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Database file (overrides config and LARDER_DB)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "Output format: plain, table, json, markdown")

	rootCmd.AddCommand(newRecipeCommand(ctx))
	rootCmd.AddCommand(newItemCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newChecklistCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))

	return rootCmd, ctx.close
}
