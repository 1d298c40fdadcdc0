package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"larder/internal/catalog"
	"larder/internal/shoplist"
	"larder/internal/store"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Build a shopping list from recipes",
	}

	listCmd.AddCommand(newListPreviewCommand(ctx))
	listCmd.AddCommand(newListSaveCommand(ctx))
	listCmd.AddCommand(newListRecipesCommand(ctx))

	return listCmd
}

// recipeIDs resolves each argument as an id or, failing that, a recipe name.
func recipeIDs(ctx context.Context, st *store.Store, args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		r, err := resolveRecipe(ctx, st, arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func newListPreviewCommand(ctx *commandContext) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "preview RECIPE...",
		Short: "Show the consolidated list without saving it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ctx.outputFormat()
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				ids, err := recipeIDs(cmd.Context(), st, args)
				if err != nil {
					return err
				}
				svc := shoplist.NewService(st, ctx.loggerValue())
				build, err := svc.Preview(cmd.Context(), ids)
				if err != nil {
					return err
				}
				if explain {
					return renderPlan(cmd.OutOrStdout(), format, build.Recipes, build.Groups)
				}
				return renderItems(cmd.OutOrStdout(), format, listTitle(build.Recipes), build.Items())
			})
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "Show which recipe lines produced each item")
	return cmd
}

func newListSaveCommand(ctx *commandContext) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "save RECIPE...",
		Short: "Add the consolidated list to the grocery list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ctx.outputFormat()
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				ids, err := recipeIDs(cmd.Context(), st, args)
				if err != nil {
					return err
				}
				svc := shoplist.NewService(st, ctx.loggerValue())
				saved, err := svc.Save(cmd.Context(), ids, shoplist.SaveOptions{Replace: replace})
				if err != nil {
					return err
				}
				if format == formatPlain {
					fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to the grocery list\n", plural(len(saved), "item"))
				}
				return renderItems(cmd.OutOrStdout(), format, "Grocery list", saved)
			})
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace items not yet acquired")
	return cmd
}

func newListRecipesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "recipes",
		Short: "Show the recipes saved to the grocery list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ctx.outputFormat()
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				recipes, err := st.ListedRecipes(cmd.Context())
				if err != nil {
					return err
				}
				if len(recipes) == 0 && format == formatPlain {
					fmt.Fprintln(cmd.OutOrStdout(), "No recipes on the grocery list")
					return nil
				}
				return renderRecipeList(cmd.OutOrStdout(), format, recipes)
			})
		},
	}
}

func listTitle(recipes []catalog.Recipe) string {
	names := make([]string, 0, len(recipes))
	for _, r := range recipes {
		names = append(names, r.Name)
	}
	return "Shopping list: " + strings.Join(names, ", ")
}
