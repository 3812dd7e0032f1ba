package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

func setup(t *testing.T) *Memory {
	t.Helper()
	return NewMemory(logger.New(logger.LevelOff, nil))
}

func TestMemoryList(t *testing.T) {
	c := setup(t)

	recipes, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recipes) != 4 {
		t.Fatalf("expected 4 recipes, got %d", len(recipes))
	}
	for i := 1; i < len(recipes); i++ {
		if !byID(recipes[i-1].ID, recipes[i].ID) {
			t.Fatalf("recipes not in id order: %s before %s", recipes[i-1].ID, recipes[i].ID)
		}
	}
}

func TestMemoryGet(t *testing.T) {
	c := setup(t)

	tests := []struct {
		id      string
		wantErr error
	}{
		{"42", nil},
		{" 43 ", nil},
		{"nonexistent", domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			r, err := c.Get(context.Background(), tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(r.Ingredients) == 0 {
				t.Fatal("recipe has no ingredients")
			}
		})
	}
}

func TestMemorySearch(t *testing.T) {
	c := setup(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"42", "43", "44", "45"}},
		{"garlic", []string{"44", "45"}},
		{"Dinner PASTA", []string{"43"}},
		{"rice butter", []string{"45"}},
		{"tofu", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := c.Search(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("search %q = %d results, want %d", tt.query, len(got), len(tt.want))
			}
			for i, r := range got {
				if r.ID != tt.want[i] {
					t.Errorf("result %d = %s, want %s", i, r.ID, tt.want[i])
				}
			}
		})
	}
}

func TestMemoryShoppingList(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	l, err := c.ShoppingList(ctx, "5")
	if err != nil {
		t.Fatalf("shopping list: %v", err)
	}
	if len(l.Ingredients) == 0 {
		t.Fatal("list 5 has no ingredients")
	}

	if _, err := c.ShoppingList(ctx, "6"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	c.AddShoppingList(&domain.ShoppingList{ID: "6", Name: "Empty"})
	if _, err := c.ShoppingList(ctx, "6"); err != nil {
		t.Fatalf("added list: %v", err)
	}
}
