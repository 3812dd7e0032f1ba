package page

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/ottocart/internal/domain"
)

// Data attributes of the rendered page. Every value read from them is
// untrusted and may be missing.
const (
	AttrRecipeID        = "data-recipe-id"
	AttrCardRecipeID    = "data-card-recipe-id"
	AttrIngredientID    = "data-ingredient-id"
	AttrIngredientName  = "data-ingredient-name"
	AttrDefaultQuantity = "data-default-quantity"
	AttrDefaultUnit     = "data-default-unit"
	AttrShoppingListID  = "data-shopping-list-id"
	AttrTitle           = "title"
)

// Attrs is the attribute set of one rendered element.
type Attrs map[string]string

func (a Attrs) get(key string) string { return strings.TrimSpace(a[key]) }

// RecipeCard renders the attributes of a recipe card and its add button.
func RecipeCard(r domain.RecipeSummary) Attrs {
	return Attrs{
		AttrCardRecipeID: r.ID,
		AttrRecipeID:     r.ID,
		AttrTitle:        r.Name,
	}
}

// IngredientRow renders the attributes of an ingredient checkbox row.
func IngredientRow(ing domain.Ingredient) Attrs {
	a := Attrs{
		AttrIngredientID:   ing.ID,
		AttrIngredientName: ing.Name,
	}
	if ing.Quantity != "" {
		a[AttrDefaultQuantity] = ing.Quantity
	}
	if ing.Unit != "" {
		a[AttrDefaultUnit] = ing.Unit
	}
	return a
}

// ShoppingListForm renders the attributes of the inventory form.
func ShoppingListForm(list domain.ShoppingList) Attrs {
	return Attrs{AttrShoppingListID: list.ID, AttrTitle: list.Name}
}

// QuantityField and UnitField name the inputs that belong to a row.
func QuantityField(id domain.ItemID) domain.FieldRef { return domain.FieldRef("qty-" + string(id)) }
func UnitField(id domain.ItemID) domain.FieldRef     { return domain.FieldRef("unit-" + string(id)) }

// ParseItem reads one element. Ingredient rows get explicit quantity and
// unit field references; recipe cards have none.
func ParseItem(a Attrs) (domain.Item, error) {
	if raw, ok := a[AttrIngredientID]; ok {
		id, err := domain.ParseItemID(raw)
		if err != nil {
			return domain.Item{}, fmt.Errorf("%s: %w", AttrIngredientID, err)
		}
		name := a.get(AttrIngredientName)
		if name == "" {
			name = string(id)
		}
		return domain.Item{
			ID:   id,
			Kind: domain.KindIngredient,
			Meta: domain.Metadata{
				Name:            name,
				DefaultQuantity: a.get(AttrDefaultQuantity),
				Unit:            a.get(AttrDefaultUnit),
			},
			Quantity: QuantityField(id),
			Unit:     UnitField(id),
		}, nil
	}

	raw := a.get(AttrRecipeID)
	card := a.get(AttrCardRecipeID)
	switch {
	case raw == "" && card == "":
		return domain.Item{}, fmt.Errorf("element has no item id: %w", domain.ErrInvalidItemID)
	case raw == "":
		raw = card
	case card != "" && card != raw:
		return domain.Item{}, fmt.Errorf("card id %q does not match recipe id %q: %w", card, raw, domain.ErrInvalidItemID)
	}
	id, err := domain.ParseItemID(raw)
	if err != nil {
		return domain.Item{}, fmt.Errorf("%s: %w", AttrRecipeID, err)
	}
	name := a.get(AttrTitle)
	if name == "" {
		name = string(id)
	}
	return domain.Item{ID: id, Kind: domain.KindRecipe, Meta: domain.Metadata{Name: name}}, nil
}

// ParseItems reads a rendered collection. Malformed and duplicate
// elements are skipped and reported.
func ParseItems(rows []Attrs) ([]domain.Item, []error) {
	var (
		items []domain.Item
		errs  []error
		seen  = make(map[domain.ItemID]bool, len(rows))
	)
	for i, a := range rows {
		it, err := ParseItem(a)
		if err != nil {
			errs = append(errs, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		if seen[it.ID] {
			errs = append(errs, fmt.Errorf("element %d: duplicate id %s", i, it.ID))
			continue
		}
		seen[it.ID] = true
		items = append(items, it)
	}
	return items, errs
}

// ShoppingListID reads the list id off the inventory form.
func ShoppingListID(form Attrs) (string, error) {
	id, err := domain.ParseItemID(form[AttrShoppingListID])
	if err != nil {
		return "", fmt.Errorf("%s: %w", AttrShoppingListID, err)
	}
	return string(id), nil
}
