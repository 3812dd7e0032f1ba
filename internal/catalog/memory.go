// Package catalog provides the recipes and shopping lists a page renders.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

// Compile-time interface check.
var _ domain.Catalog = (*Memory)(nil)

// Memory holds the catalog in memory. Safe for concurrent reads.
type Memory struct {
	mu      sync.RWMutex
	recipes map[string]*domain.Recipe
	lists   map[string]*domain.ShoppingList
	log     *logger.Logger
}

// NewMemory creates a catalog preloaded with built-in recipes and lists.
func NewMemory(log *logger.Logger) *Memory {
	c := &Memory{
		recipes: make(map[string]*domain.Recipe),
		lists:   make(map[string]*domain.ShoppingList),
		log:     log,
	}
	c.seed()
	return c
}

func summarize(r *domain.Recipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Tags:        r.Tags,
	}
}

// byID orders numeric ids numerically and everything else lexically.
func byID(a, b string) bool {
	x, errX := strconv.Atoi(a)
	y, errY := strconv.Atoi(b)
	if errX == nil && errY == nil {
		return x < y
	}
	return a < b
}

// List returns summaries of all recipes in id order.
func (c *Memory) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.log.Debug("listing all recipes, count=%d", len(c.recipes))

	out := make([]domain.RecipeSummary, 0, len(c.recipes))
	for _, r := range c.recipes {
		out = append(out, summarize(r))
	}
	sort.Slice(out, func(i, j int) bool { return byID(out[i].ID, out[j].ID) })
	return out, nil
}

// Get returns a recipe by id.
func (c *Memory) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.recipes[strings.TrimSpace(id)]
	if !ok {
		c.log.Debug("recipe not found: %s", id)
		return nil, fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}
	return r, nil
}

// Search returns recipes whose name, tags or ingredients contain every
// word of query. An empty query matches everything.
func (c *Memory) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return c.List(ctx)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []domain.RecipeSummary
	for _, r := range c.recipes {
		if matches(r, words) {
			out = append(out, summarize(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return byID(out[i].ID, out[j].ID) })
	c.log.Debug("search %q: %d recipes", query, len(out))
	return out, nil
}

func matches(r *domain.Recipe, words []string) bool {
	var b strings.Builder
	b.WriteString(strings.ToLower(r.Name))
	for _, t := range r.Tags {
		b.WriteString(" " + strings.ToLower(t))
	}
	for _, ing := range r.Ingredients {
		b.WriteString(" " + strings.ToLower(ing.Name))
	}
	hay := b.String()
	for _, w := range words {
		if !strings.Contains(hay, w) {
			return false
		}
	}
	return true
}

// ShoppingList returns a list by id.
func (c *Memory) ShoppingList(ctx context.Context, id string) (*domain.ShoppingList, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	l, ok := c.lists[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("shopping list %s: %w", id, domain.ErrNotFound)
	}
	return l, nil
}

// AddShoppingList stores a list, replacing one with the same id.
func (c *Memory) AddShoppingList(l *domain.ShoppingList) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[l.ID] = l
	c.log.Debug("shopping list stored: %s (%d ingredients)", l.ID, len(l.Ingredients))
}

func (c *Memory) seed() {
	for _, r := range []*domain.Recipe{
		{
			ID: "42", Name: "Buttermilk Pancakes",
			Description: "Fluffy weekend pancakes.",
			Tags:        []string{"breakfast", "sweet"},
			Ingredients: []domain.Ingredient{
				{ID: "7", Name: "flour", Quantity: "2", Unit: "cup"},
				{ID: "9", Name: "sugar", Quantity: "2", Unit: "tablespoons"},
				{ID: "11", Name: "eggs", Quantity: "2"},
				{ID: "12", Name: "buttermilk", Quantity: "2", Unit: "cup"},
			},
		},
		{
			ID: "43", Name: "Chicken Alfredo",
			Description: "Creamy fettuccine with seared chicken.",
			Tags:        []string{"dinner", "pasta"},
			Ingredients: []domain.Ingredient{
				{ID: "20", Name: "fettuccine", Quantity: "400", Unit: "g"},
				{ID: "21", Name: "chicken breast", Quantity: "2"},
				{ID: "22", Name: "heavy cream", Quantity: "1", Unit: "cup"},
				{ID: "23", Name: "parmesan", Quantity: "100", Unit: "g"},
				{ID: "24", Name: "butter", Quantity: "3", Unit: "tablespoons"},
			},
		},
		{
			ID: "44", Name: "Vegetable Stir Fry",
			Description: "Quick high-heat vegetables in a soy glaze.",
			Tags:        []string{"dinner", "vegetarian"},
			Ingredients: []domain.Ingredient{
				{ID: "30", Name: "broccoli", Quantity: "1", Unit: "head"},
				{ID: "31", Name: "bell pepper", Quantity: "1"},
				{ID: "32", Name: "soy sauce", Quantity: "3", Unit: "tablespoons"},
				{ID: "33", Name: "garlic", Quantity: "3", Unit: "cloves"},
				{ID: "34", Name: "rice", Quantity: "1", Unit: "cup"},
			},
		},
		{
			ID: "45", Name: "Garlic Butter Rice",
			Description: "Toasted rice cooked in garlic butter.",
			Tags:        []string{"side"},
			Ingredients: []domain.Ingredient{
				{ID: "34", Name: "rice", Quantity: "2", Unit: "cup"},
				{ID: "33", Name: "garlic", Quantity: "4", Unit: "cloves"},
				{ID: "24", Name: "butter", Quantity: "2", Unit: "tablespoons"},
			},
		},
	} {
		c.recipes[r.ID] = r
	}

	c.lists["5"] = &domain.ShoppingList{
		ID:   "5",
		Name: "Weekend groceries",
		Ingredients: []domain.Ingredient{
			{ID: "7", Name: "flour", Quantity: "2", Unit: "cup"},
			{ID: "9", Name: "sugar"},
			{ID: "12", Name: "buttermilk", Quantity: "2", Unit: "cup"},
			{ID: "22", Name: "heavy cream", Quantity: "1", Unit: "cup"},
			{ID: "24", Name: "butter", Quantity: "5", Unit: "tablespoons"},
		},
	}
}
