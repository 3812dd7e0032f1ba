// Package domain defines the core types and interfaces for the shopping
// list workflows. All other packages depend on domain; domain depends on
// nothing.
package domain

// Recipe is a catalog entry the user can save.
type Recipe struct {
	ID          string
	Name        string
	Description string
	Tags        []string
	Ingredients []Ingredient
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID          string
	Name        string
	Description string
	Tags        []string
}

// Ingredient is a single ingredient line. Quantity is kept as entered
// ("2", "1/2") because it is echoed back to the backend verbatim.
type Ingredient struct {
	ID       string
	Name     string
	Quantity string
	Unit     string // "cup", "g", "tablespoons", ""
}

// ShoppingList is a list of ingredients the user still has to reconcile
// against what is already in the pantry.
type ShoppingList struct {
	ID          string
	Name        string
	Ingredients []Ingredient
}
