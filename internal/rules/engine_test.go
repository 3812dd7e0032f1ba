package rules

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

func testItems() []domain.Item {
	return []domain.Item{
		{ID: "7", Kind: domain.KindIngredient, Meta: domain.Metadata{Name: "flour", DefaultQuantity: "2", Unit: "cup"}, Quantity: "qty-7", Unit: "unit-7"},
		{ID: "9", Kind: domain.KindIngredient, Meta: domain.Metadata{Name: "salt"}, Quantity: "qty-9", Unit: "unit-9"},
		{ID: "42", Kind: domain.KindRecipe, Meta: domain.Metadata{Name: "Pancakes"}},
	}
}

func setupEngine(t *testing.T) *Engine {
	t.Helper()
	return New(testItems(), logger.New(logger.LevelOff, nil))
}

func TestOnSelectionChangedSeedsDefaults(t *testing.T) {
	e := setupEngine(t)

	tests := []struct {
		name string
		id   domain.ItemID
		want domain.DerivedState
	}{
		{
			name: "default quantity and unit",
			id:   "7",
			want: domain.DerivedState{
				Quantity: domain.FieldState{Required: true, Value: "2"},
				Unit:     domain.FieldState{Required: true, Value: "cup"},
			},
		},
		{
			name: "no defaults still required",
			id:   "9",
			want: domain.DerivedState{
				Quantity: domain.FieldState{Required: true},
				Unit:     domain.FieldState{Required: true},
			},
		},
		{
			name: "recipe card has no fields",
			id:   "42",
			want: domain.DerivedState{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.OnSelectionChanged(tt.id, true)
			if got == nil {
				t.Fatal("expected derived state, got nil")
			}
			if *got != tt.want {
				t.Fatalf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestDeselectDropsState(t *testing.T) {
	e := setupEngine(t)

	e.OnSelectionChanged("9", true)
	if got := e.Missing(); !reflect.DeepEqual(got, []domain.ItemID{"9"}) {
		t.Fatalf("expected 9 to block submission, got %v", got)
	}

	if st := e.OnSelectionChanged("9", false); st != nil {
		t.Fatalf("expected nil state on deselect, got %+v", st)
	}
	if _, ok := e.State("9"); ok {
		t.Fatal("derived state survived deselect")
	}
	if got := e.Missing(); len(got) != 0 {
		t.Fatalf("deselected row still blocks submission: %v", got)
	}
}

func TestDoubleToggleIsNoOp(t *testing.T) {
	e := setupEngine(t)
	before := e.States()

	e.OnSelectionChanged("7", true)
	e.OnSelectionChanged("7", false)

	if after := e.States(); !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed after select+deselect: %v -> %v", before, after)
	}
}

func TestReselectKeepsEdits(t *testing.T) {
	e := setupEngine(t)
	e.OnSelectionChanged("7", true)

	if err := e.SetValue("7", domain.FieldQuantity, "5"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	st := e.OnSelectionChanged("7", true)
	if st.Quantity.Value != "5" {
		t.Fatalf("repeated select reseeded quantity: %q", st.Quantity.Value)
	}
}

func TestSetValue(t *testing.T) {
	e := setupEngine(t)
	e.OnSelectionChanged("7", true)
	e.OnSelectionChanged("42", true)

	tests := []struct {
		name    string
		id      domain.ItemID
		field   domain.Field
		wantErr error
	}{
		{"selected row", "7", domain.FieldUnit, nil},
		{"unselected row", "9", domain.FieldQuantity, domain.ErrNotSelected},
		{"unknown row", "100", domain.FieldQuantity, domain.ErrUnknownItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.SetValue(tt.id, tt.field, "g")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if err := e.SetValue("42", domain.FieldQuantity, "1"); err == nil {
		t.Fatal("expected error setting quantity on a recipe card")
	}
}

func TestMissingAfterClearingValue(t *testing.T) {
	e := setupEngine(t)
	e.OnSelectionChanged("7", true)
	if len(e.Missing()) != 0 {
		t.Fatalf("seeded row should not be missing: %v", e.Missing())
	}
	if err := e.SetValue("7", domain.FieldQuantity, ""); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if got := e.Missing(); !reflect.DeepEqual(got, []domain.ItemID{"7"}) {
		t.Fatalf("Missing() = %v, want [7]", got)
	}
}
