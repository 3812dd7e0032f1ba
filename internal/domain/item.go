package domain

import (
	"fmt"
	"strings"
)

// ItemID is the stable identifier of a togglable item. Ids come from data
// attributes on the rendered page, so they are kept as strings even when
// the backend treats them as integers.
type ItemID string

// ParseItemID validates an untrusted attribute value.
func ParseItemID(raw string) (ItemID, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidItemID)
	}
	if strings.ContainsAny(id, " \t\r\n") {
		return "", fmt.Errorf("%w: %q", ErrInvalidItemID, raw)
	}
	return ItemID(id), nil
}

// ItemKind says what a row on the page represents.
type ItemKind int

const (
	KindRecipe ItemKind = iota
	KindIngredient
)

// String returns a human-readable item kind.
func (k ItemKind) String() string {
	switch k {
	case KindRecipe:
		return "recipe"
	case KindIngredient:
		return "ingredient"
	default:
		return "unknown"
	}
}

// Metadata is attached to an item when the page is rendered and never
// changes afterwards.
type Metadata struct {
	Name            string
	DefaultQuantity string
	Unit            string
}

// FieldRef names an input field that belongs to an item. The zero value
// means the item has no such field.
type FieldRef string

// Item is a unit the user can toggle: a recipe card or an ingredient row.
type Item struct {
	ID       ItemID
	Kind     ItemKind
	Meta     Metadata
	Quantity FieldRef
	Unit     FieldRef
}

// HasDefaultQuantity reports whether the item declares a default quantity.
func (i Item) HasDefaultQuantity() bool {
	return strings.TrimSpace(i.Meta.DefaultQuantity) != ""
}

// Field identifies one of an item's dependent inputs.
type Field int

const (
	FieldQuantity Field = iota
	FieldUnit
)

// String returns a human-readable field name.
func (f Field) String() string {
	switch f {
	case FieldQuantity:
		return "quantity"
	case FieldUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// FieldFromString maps "qty"/"quantity" and "unit" to a Field.
func FieldFromString(name string) (Field, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "qty", "quantity":
		return FieldQuantity, true
	case "unit":
		return FieldUnit, true
	}
	return 0, false
}
