package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
	"github.com/hammamikhairi/ottocart/internal/router"
	"github.com/hammamikhairi/ottocart/internal/rules"
	"github.com/hammamikhairi/ottocart/internal/selection"
	"github.com/hammamikhairi/ottocart/internal/submit"
)

// Variant names a built-in workflow.
type Variant string

const (
	VariantRecipeAdd          Variant = "recipe-add"
	VariantRecipeBatchAdd     Variant = "recipe-batch-add"
	VariantIngredientAdd      Variant = "ingredient-add"
	VariantIngredientBatchAdd Variant = "ingredient-batch-add"
	VariantVerifyRecipe       Variant = "verify-recipe"
	VariantInventory          Variant = "inventory"
)

// DefaultRedirect is where navigating workflows go unless configured.
const DefaultRedirect = "/main"

// Variants lists every built-in workflow.
func Variants() []Variant {
	return []Variant{
		VariantRecipeAdd,
		VariantRecipeBatchAdd,
		VariantIngredientAdd,
		VariantIngredientBatchAdd,
		VariantVerifyRecipe,
		VariantInventory,
	}
}

// ParseVariant looks a variant up by name.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range Variants() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown workflow %q", s)
}

// Shape returns how the variant submits.
func (v Variant) Shape() Shape {
	switch v {
	case VariantRecipeBatchAdd, VariantIngredientBatchAdd:
		return ShapeBatch
	case VariantInventory:
		return ShapeConfirmRedirect
	default:
		return ShapeImmediate
	}
}

// Deps are the collaborators shared by every workflow on a page.
type Deps struct {
	Poster    domain.Poster
	View      domain.View
	Scheduler domain.Scheduler
	Log       *logger.Logger
}

type settings struct {
	policy      submit.Policy
	redirect    string
	listID      string
	noticeDelay time.Duration
}

// Option configures a workflow built with New.
type Option func(*settings)

// WithPolicy sets the submission policy.
func WithPolicy(p submit.Policy) Option {
	return func(s *settings) { s.policy = p }
}

// WithRedirect sets the navigation target of verify and inventory.
func WithRedirect(target string) Option {
	return func(s *settings) {
		if target != "" {
			s.redirect = target
		}
	}
}

// WithListID sets the shopping list the inventory belongs to.
func WithListID(id string) Option {
	return func(s *settings) { s.listID = id }
}

// WithNoticeDelay sets how long single-save notices stay visible.
func WithNoticeDelay(d time.Duration) Option {
	return func(s *settings) { s.noticeDelay = d }
}

func defaultTrigger(v Variant) domain.ControlID {
	switch v {
	case VariantVerifyRecipe:
		return domain.ControlCook
	case VariantRecipeBatchAdd, VariantIngredientBatchAdd, VariantInventory:
		return domain.ControlSubmit
	}
	return ""
}

// DependentControl is the control a successful save enables on the
// variant's page. Pages render it disabled until then.
func DependentControl(v Variant) domain.ControlID {
	switch v {
	case VariantIngredientAdd, VariantIngredientBatchAdd:
		return domain.ControlCreateList
	case VariantRecipeAdd, VariantRecipeBatchAdd:
		return domain.ControlGenerateList
	}
	return ""
}

// savedNotice is the region single saves are confirmed in.
func savedNotice(v Variant) domain.NoticeID {
	if v == VariantIngredientAdd {
		return domain.NoticeAnotherSaved
	}
	return domain.NoticeSaved
}

func schemaFor(v Variant, s settings) (submit.Schema, error) {
	switch v {
	case VariantRecipeAdd:
		return singleAdd{name: string(v), endpoint: EndpointUserRecipes}, nil
	case VariantIngredientAdd:
		return singleAdd{name: string(v), endpoint: EndpointRecipeIDs}, nil
	case VariantRecipeBatchAdd:
		return batchAdd{name: string(v), endpoint: EndpointUserRecipes, form: func(ids []string) any {
			return recipeBatchForm{RecipeIDs: ids}
		}}, nil
	case VariantIngredientBatchAdd:
		return batchAdd{name: string(v), endpoint: EndpointRecipeIDs, form: func(ids []string) any {
			return ingredientBatchForm{RecipeIDs: ids}
		}}, nil
	case VariantVerifyRecipe:
		return verifySchema{target: s.redirect}, nil
	case VariantInventory:
		if s.listID == "" {
			return nil, fmt.Errorf("%s workflow needs a shopping list id", v)
		}
		return redirectOnSave{Schema: inventorySchema{listID: s.listID}, target: s.redirect}, nil
	}
	return nil, fmt.Errorf("unknown workflow %q", v)
}

// New builds a workflow instance for a built-in variant over items.
func New(v Variant, items []domain.Item, deps Deps, opts ...Option) (*Controller, error) {
	s := settings{redirect: DefaultRedirect}
	for _, opt := range opts {
		opt(&s)
	}

	schema, err := schemaFor(v, s)
	if err != nil {
		return nil, err
	}

	log := deps.Log.Named(string(v))
	ids := make([]domain.ItemID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	routerOpts := []router.Option{
		router.WithDependentControl(DependentControl(v)),
		router.WithSavedNotice(savedNotice(v)),
	}
	if s.noticeDelay > 0 {
		routerOpts = append(routerOpts, router.WithNoticeDelay(s.noticeDelay))
	}

	cfg := Config{
		Name:      string(v),
		Shape:     v.Shape(),
		Trigger:   defaultTrigger(v),
		Dependent: DependentControl(v),
		Redirect:  s.redirect,
	}
	return NewController(
		cfg,
		deps.View,
		selection.NewStore(ids),
		rules.New(items, log),
		submit.New(deps.Poster, deps.View, schema, log, submit.WithPolicy(s.policy)),
		router.New(deps.View, deps.Scheduler, log, routerOpts...),
		log,
	), nil
}
