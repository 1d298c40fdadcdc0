package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"larder/internal/catalog"
	"larder/internal/store"
)

func newChecklistCommand(ctx *commandContext) *cobra.Command {
	checklistCmd := &cobra.Command{
		Use:   "checklist",
		Short: "Staples to check at home before shopping",
	}

	checklistCmd.AddCommand(&cobra.Command{
		Use:   "add NAME...",
		Short: "Add staples to the checklist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				for _, name := range args {
					item, err := st.AddChecklistItem(cmd.Context(), name)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "On checklist: %s\n", item.Name)
				}
				return nil
			})
		},
	})

	checklistCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ctx.outputFormat()
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				items, err := st.ListChecklist(cmd.Context())
				if err != nil {
					return err
				}
				return renderChecklist(cmd.OutOrStdout(), format, items)
			})
		},
	})

	checklistCmd.AddCommand(&cobra.Command{
		Use:     "rm NAME...",
		Aliases: []string{"remove"},
		Short:   "Remove staples from the checklist",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				for _, name := range args {
					if err := st.DeleteChecklistItem(cmd.Context(), name); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Removed from checklist: %s\n", strings.TrimSpace(name))
				}
				return nil
			})
		},
	})

	return checklistCmd
}

func renderChecklist(w io.Writer, format string, items []catalog.ChecklistItem) error {
	switch format {
	case formatJSON:
		if items == nil {
			items = []catalog.ChecklistItem{}
		}
		return writeJSON(w, items)
	case formatTable:
		rows := make([]table.Row, 0, len(items))
		for _, item := range items {
			rows = append(rows, table.Row{item.ID, item.Name})
		}
		return writeTable(w, checklistColumns, rows)
	case formatMarkdown:
		var b strings.Builder
		b.WriteString("# Checklist\n\n")
		for _, item := range items {
			fmt.Fprintf(&b, "- [ ] %s\n", item.Name)
		}
		return writeMarkdown(w, b.String())
	default:
		var b strings.Builder
		for _, item := range items {
			b.WriteString(item.Name)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
}
