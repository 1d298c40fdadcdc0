package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"larder/internal/catalog"
	"larder/internal/store"
)

func newRecipeCommand(ctx *commandContext) *cobra.Command {
	recipeCmd := &cobra.Command{
		Use:     "recipe",
		Aliases: []string{"recipes"},
		Short:   "Manage stored recipes",
	}

	recipeCmd.AddCommand(newRecipeAddCommand(ctx))
	recipeCmd.AddCommand(newRecipeListCommand(ctx))
	recipeCmd.AddCommand(newRecipeShowCommand(ctx))
	recipeCmd.AddCommand(newRecipeEditCommand(ctx))
	recipeCmd.AddCommand(newRecipeRemoveCommand(ctx))

	return recipeCmd
}

func parseIngredients(raw []string) ([]catalog.IngredientLine, error) {
	lines := make([]catalog.IngredientLine, 0, len(raw))
	for _, value := range raw {
		line, err := parseIngredient(value)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func newRecipeAddCommand(ctx *commandContext) *cobra.Command {
	var ingredients []string
	var id int64

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Store a new recipe",
		Example: `  larder recipe add Pancakes -i "2 cups flour" -i "1 1/2 tbsp sugar" -i "some salt"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ctx.outputFormat()
			if err != nil {
				return err
			}
			lines, err := parseIngredients(ingredients)
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				r, err := st.CreateRecipe(cmd.Context(), catalog.Recipe{
					ID:    id,
					Name:  strings.Join(args, " "),
					Lines: lines,
				})
				if err != nil {
					return err
				}
				if format == formatPlain {
					fmt.Fprintf(cmd.OutOrStdout(), "Added recipe %d: %s (%s)\n", r.ID, r.Name, plural(len(r.Lines), "ingredient"))
					return nil
				}
				return renderRecipe(cmd.OutOrStdout(), format, r)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&ingredients, "ingredient", "i", nil, `Ingredient as "[QTY] [UNIT] NAME" (repeatable)`)
	cmd.Flags().Int64Var(&id, "id", 0, "Explicit recipe id (default: assigned)")
	return cmd
}

func newRecipeListCommand(ctx *commandContext) *cobra.Command {
	var nameFilter string
	var sortFlag string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ctx.outputFormat()
			if err != nil {
				return err
			}
			order, err := store.ParseSort(sortFlag)
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				recipes, err := st.ListRecipes(cmd.Context(), store.ListOptions{NameContains: nameFilter, Sort: order})
				if err != nil {
					return err
				}
				if len(recipes) == 0 && format == formatPlain {
					fmt.Fprintln(cmd.OutOrStdout(), "No recipes stored")
					return nil
				}
				return renderRecipeList(cmd.OutOrStdout(), format, recipes)
			})
		},
	}

	cmd.Flags().StringVar(&nameFilter, "name", "", "Only recipes whose name contains this text")
	cmd.Flags().StringVar(&sortFlag, "sort", "insertion", "Sort order: insertion, name, id")
	return cmd
}

func newRecipeShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID|NAME",
		Short: "Show a recipe and its ingredients",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ctx.outputFormat()
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				r, err := resolveRecipe(cmd.Context(), st, strings.Join(args, " "))
				if err != nil {
					return err
				}
				return renderRecipe(cmd.OutOrStdout(), format, r)
			})
		},
	}
}

func newRecipeEditCommand(ctx *commandContext) *cobra.Command {
	var name string
	var ingredients []string
	var clearLines bool

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Rename a recipe or replace its ingredients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var patch catalog.RecipePatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if len(ingredients) > 0 || clearLines {
				lines, err := parseIngredients(ingredients)
				if err != nil {
					return err
				}
				patch.Lines = &lines
			}
			if patch.Name == nil && patch.Lines == nil {
				return catalog.Invalid("recipe edit", "nothing to change (use --name, --ingredient, or --clear)")
			}
			return ctx.withStore(func(st *store.Store) error {
				r, err := st.UpdateRecipe(cmd.Context(), id, patch)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated recipe %d: %s (%s)\n", r.ID, r.Name, plural(len(r.Lines), "ingredient"))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New recipe name")
	cmd.Flags().StringArrayVarP(&ingredients, "ingredient", "i", nil, "Replacement ingredient (repeatable; replaces all lines)")
	cmd.Flags().BoolVar(&clearLines, "clear", false, "Remove every ingredient")
	return cmd
}

func newRecipeRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID...",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete recipes (grocery items are kept)",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				for _, id := range ids {
					if err := st.DeleteRecipe(cmd.Context(), id); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Removed recipe %d\n", id)
				}
				return nil
			})
		},
	}
}
