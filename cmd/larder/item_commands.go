package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"larder/internal/catalog"
	"larder/internal/store"
)

func newItemCommand(ctx *commandContext) *cobra.Command {
	itemCmd := &cobra.Command{
		Use:     "item",
		Aliases: []string{"items"},
		Short:   "Manage the grocery list",
	}

	itemCmd.AddCommand(newItemAddCommand(ctx))
	itemCmd.AddCommand(newItemListCommand(ctx))
	itemCmd.AddCommand(newItemEditCommand(ctx))
	itemCmd.AddCommand(newItemMarkCommand(ctx, "check", "Mark items as acquired", true))
	itemCmd.AddCommand(newItemMarkCommand(ctx, "uncheck", "Mark items as still needed", false))
	itemCmd.AddCommand(newItemRemoveCommand(ctx))
	itemCmd.AddCommand(newItemClearCommand(ctx))

	return itemCmd
}

func newItemAddCommand(ctx *commandContext) *cobra.Command {
	var quantity string
	var unit string
	var section string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an item to the grocery list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuantityFlag(quantity)
			if err != nil {
				return err
			}
			item := catalog.GroceryItem{
				Name:     strings.Join(args, " "),
				Quantity: q,
				Section:  section,
			}
			if strings.TrimSpace(unit) != "" {
				item.Unit = &unit
			}
			return ctx.withStore(func(st *store.Store) error {
				created, err := st.CreateGroceryItem(cmd.Context(), item)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added item %d: %s\n", created.ID, created.String())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&quantity, "quantity", "q", "", `Quantity, e.g. "2" or "1 1/2"`)
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "Unit, e.g. g, cup, can")
	cmd.Flags().StringVar(&section, "section", "", "Store section, e.g. dairy")
	return cmd
}

func newItemListCommand(ctx *commandContext) *cobra.Command {
	var pending bool
	var acquired bool
	var section string
	var nameFilter string
	var sortFlag string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the grocery list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pending && acquired {
				return catalog.Invalid("item list", "--pending and --acquired are mutually exclusive")
			}
			format, err := ctx.outputFormat()
			if err != nil {
				return err
			}
			order, err := store.ParseSort(sortFlag)
			if err != nil {
				return err
			}
			opts := store.ItemListOptions{
				ListOptions: store.ListOptions{NameContains: nameFilter, Sort: order},
				Section:     section,
			}
			if pending || acquired {
				opts.Acquired = &acquired
			}
			return ctx.withStore(func(st *store.Store) error {
				items, err := st.ListGroceryItems(cmd.Context(), opts)
				if err != nil {
					return err
				}
				if len(items) == 0 && format == formatPlain {
					fmt.Fprintln(cmd.OutOrStdout(), "Grocery list is empty")
					return nil
				}
				return renderItems(cmd.OutOrStdout(), format, "Grocery list", items)
			})
		},
	}

	cmd.Flags().BoolVar(&pending, "pending", false, "Only items not yet acquired")
	cmd.Flags().BoolVar(&acquired, "acquired", false, "Only acquired items")
	cmd.Flags().StringVar(&section, "section", "", "Only items in this section")
	cmd.Flags().StringVar(&nameFilter, "name", "", "Only items whose name contains this text")
	cmd.Flags().StringVar(&sortFlag, "sort", "insertion", "Sort order: insertion, name, id")
	return cmd
}

func newItemEditCommand(ctx *commandContext) *cobra.Command {
	var (
		name          string
		quantity      string
		unit          string
		section       string
		clearQuantity bool
		clearUnit     bool
	)

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a grocery item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			patch := catalog.GroceryItemPatch{ClearQuantity: clearQuantity, ClearUnit: clearUnit}
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("quantity") {
				q, err := parseQuantityFlag(quantity)
				if err != nil {
					return err
				}
				if q == nil {
					patch.ClearQuantity = true
				}
				patch.Quantity = q
			}
			if flags.Changed("unit") {
				patch.Unit = &unit
			}
			if flags.Changed("section") {
				patch.Section = &section
			}
			return ctx.withStore(func(st *store.Store) error {
				updated, err := st.UpdateGroceryItem(cmd.Context(), id, patch)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated item %d: %s\n", updated.ID, updated.String())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&quantity, "quantity", "q", "", "New quantity")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "New unit (empty clears it)")
	cmd.Flags().StringVar(&section, "section", "", "New section (empty clears it)")
	cmd.Flags().BoolVar(&clearQuantity, "clear-quantity", false, "Forget the quantity")
	cmd.Flags().BoolVar(&clearUnit, "clear-unit", false, "Forget the unit")
	return cmd
}

func newItemMarkCommand(ctx *commandContext, use, short string, acquired bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				for _, id := range ids {
					item, err := st.UpdateGroceryItem(cmd.Context(), id, catalog.GroceryItemPatch{Acquired: &acquired})
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%d [%s] %s\n", item.ID, checkMark(item.Acquired), item.String())
				}
				return nil
			})
		},
	}
}

func newItemRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID...",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete grocery items",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				for _, id := range ids {
					if err := st.DeleteGroceryItem(cmd.Context(), id); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Removed item %d\n", id)
				}
				return nil
			})
		},
	}
}

func newItemClearCommand(ctx *commandContext) *cobra.Command {
	var acquiredOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the grocery list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				removed, err := st.ClearGroceryItems(cmd.Context(), acquiredOnly)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", plural(int(removed), "item"))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&acquiredOnly, "acquired", false, "Only remove items already acquired")
	return cmd
}
