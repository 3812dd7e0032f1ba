package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/ottocart/internal/catalog"
	"github.com/hammamikhairi/ottocart/internal/domain"
)

func newCatalogCmd(e *env) *cobra.Command {
	var (
		query  string
		listID string
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the recipes and shopping lists pages are built from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := catalog.NewMemory(e.log.Named("catalog"))

			if listID != "" {
				list, err := c.ShoppingList(ctx, listID)
				if err != nil {
					return err
				}
				printShoppingList(color.Output, list)
				return nil
			}

			summaries, err := c.Search(ctx, query)
			if err != nil {
				return err
			}
			printRecipes(color.Output, summaries)
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "only show recipes matching every word")
	cmd.Flags().StringVar(&listID, "list", "", "show a shopping list instead of recipes")
	return cmd
}

func printRecipes(w io.Writer, recipes []domain.RecipeSummary) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Recipe"), bold.Sprint("Tags"))
	for _, r := range recipes {
		tbl.AddRow(r.ID, r.Name, faint.Sprint(strings.Join(r.Tags, ", ")))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}

func printShoppingList(w io.Writer, list *domain.ShoppingList) {
	bold := color.New(color.Bold)

	_, _ = fmt.Fprintln(w, bold.Sprint(list.Name))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Ingredient"), bold.Sprint("Qty"), bold.Sprint("Unit"))
	for _, ing := range list.Ingredients {
		tbl.AddRow(ing.ID, ing.Name, ing.Quantity, ing.Unit)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}
