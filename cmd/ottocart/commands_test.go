package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/workflow"
)

func TestRecipesVariant(t *testing.T) {
	tests := []struct {
		batch, byIngredient bool
		want                workflow.Variant
	}{
		{false, false, workflow.VariantRecipeAdd},
		{true, false, workflow.VariantRecipeBatchAdd},
		{false, true, workflow.VariantIngredientAdd},
		{true, true, workflow.VariantIngredientBatchAdd},
	}
	for _, tt := range tests {
		if got := recipesVariant(tt.batch, tt.byIngredient); got != tt.want {
			t.Errorf("recipesVariant(%v, %v) = %s, want %s", tt.batch, tt.byIngredient, got, tt.want)
		}
	}
}

func TestIngredientLines(t *testing.T) {
	got := ingredientLines([]domain.Ingredient{
		{Name: "flour", Quantity: "2", Unit: "cup"},
		{Name: "eggs", Quantity: "2"},
		{Name: "salt"},
	})
	want := []string{"2 cup flour", "2 eggs", "salt"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPrintCatalog(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printRecipes(&buf, []domain.RecipeSummary{
		{ID: "42", Name: "Buttermilk Pancakes", Tags: []string{"breakfast", "sweet"}},
	})
	out := buf.String()
	for _, want := range []string{"ID", "Recipe", "42", "Buttermilk Pancakes", "breakfast, sweet"} {
		if !strings.Contains(out, want) {
			t.Errorf("recipes table missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	printShoppingList(&buf, &domain.ShoppingList{
		ID:   "5",
		Name: "Weekend groceries",
		Ingredients: []domain.Ingredient{
			{ID: "7", Name: "flour", Quantity: "2", Unit: "cup"},
		},
	})
	out = buf.String()
	for _, want := range []string{"Weekend groceries", "Ingredient", "flour", "cup"} {
		if !strings.Contains(out, want) {
			t.Errorf("list table missing %q:\n%s", want, out)
		}
	}
}

func TestJoinIDs(t *testing.T) {
	if got := joinIDs([]domain.ItemID{"7", "9"}); got != "7, 9" {
		t.Fatalf("joinIDs = %q", got)
	}
	if got := orDash(""); got != "-" {
		t.Fatalf("orDash(\"\") = %q", got)
	}
}
