package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottocart/internal/catalog"
	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/page"
	"github.com/hammamikhairi/ottocart/internal/workflow"
)

func newRecipesCmd(e *env) *cobra.Command {
	var (
		batch        bool
		byIngredient bool
		query        string
	)

	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Browse recipe cards and save them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v := recipesVariant(batch, byIngredient)

			summaries, err := catalog.NewMemory(e.log.Named("catalog")).Search(ctx, query)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				return fmt.Errorf("no recipes match %q", query)
			}
			rows := make([]page.Attrs, len(summaries))
			for i, s := range summaries {
				rows[i] = page.RecipeCard(s)
			}

			title := "Recipes"
			location := "/recipes"
			if byIngredient {
				title = "Recipes by ingredient"
				location = "/recipes-by-ingredient"
			}
			if query != "" {
				title = fmt.Sprintf("%s matching %q", title, query)
			}
			return e.runPage(ctx, pageDef{
				variant:  v,
				title:    title,
				location: location,
				rows:     rows,
			})
		},
	}

	cmd.Flags().BoolVar(&batch, "batch", false, "check several recipes and save them in one request")
	cmd.Flags().BoolVar(&byIngredient, "by-ingredient", false, "save through the recipe-id endpoint used by ingredient search")
	cmd.Flags().StringVar(&query, "query", "", "only show recipes matching every word")
	return cmd
}

// recipesVariant picks the workflow behind the recipes page.
func recipesVariant(batch, byIngredient bool) workflow.Variant {
	switch {
	case batch && byIngredient:
		return workflow.VariantIngredientBatchAdd
	case batch:
		return workflow.VariantRecipeBatchAdd
	case byIngredient:
		return workflow.VariantIngredientAdd
	default:
		return workflow.VariantRecipeAdd
	}
}

func newCookCmd(e *env) *cobra.Command {
	var redirect string

	cmd := &cobra.Command{
		Use:   "cook <recipe-id>",
		Short: "Check the pantry has every ingredient of a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := catalog.NewMemory(e.log.Named("catalog")).Get(ctx, args[0])
			if err != nil {
				return err
			}
			return e.runPage(ctx, pageDef{
				variant:  workflow.VariantVerifyRecipe,
				title:    r.Name,
				location: "/recipe/" + r.ID,
				rows:     []page.Attrs{page.RecipeCard(domain.RecipeSummary{ID: r.ID, Name: r.Name})},
				redirect: redirect,
				details:  ingredientLines(r.Ingredients),
			})
		},
	}
	cmd.Flags().StringVar(&redirect, "redirect", "", "where to go when the pantry check passes (default from config)")
	return cmd
}

func newConfirmCmd(e *env) *cobra.Command {
	var redirect string

	cmd := &cobra.Command{
		Use:   "confirm <list-id>",
		Short: "Confirm which ingredients of a shopping list you have",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			list, err := catalog.NewMemory(e.log.Named("catalog")).ShoppingList(ctx, args[0])
			if err != nil {
				return err
			}
			listID, err := page.ShoppingListID(page.ShoppingListForm(*list))
			if err != nil {
				return err
			}
			rows := make([]page.Attrs, len(list.Ingredients))
			for i, ing := range list.Ingredients {
				rows[i] = page.IngredientRow(ing)
			}
			return e.runPage(ctx, pageDef{
				variant:  workflow.VariantInventory,
				title:    list.Name,
				location: "/shopping_list",
				rows:     rows,
				redirect: redirect,
				listID:   listID,
			})
		},
	}
	cmd.Flags().StringVar(&redirect, "redirect", "", "where to go after the inventory is saved: /main or /search (default from config)")
	return cmd
}

func ingredientLines(ings []domain.Ingredient) []string {
	out := make([]string, len(ings))
	for i, ing := range ings {
		out[i] = strings.Join(strings.Fields(ing.Quantity+" "+ing.Unit+" "+ing.Name), " ")
	}
	return out
}

// contextOrBackground guards against commands run without a context.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
