// Package workflow binds a selection store, a rules engine, a submission
// coordinator and a response router into one workflow instance.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
	"github.com/hammamikhairi/ottocart/internal/router"
	"github.com/hammamikhairi/ottocart/internal/rules"
	"github.com/hammamikhairi/ottocart/internal/selection"
	"github.com/hammamikhairi/ottocart/internal/submit"
)

// Shape is how a workflow submits.
type Shape int

const (
	// ShapeImmediate submits one item as soon as its control is used.
	ShapeImmediate Shape = iota
	// ShapeBatch submits every checked item from one form-level control.
	ShapeBatch
	// ShapeConfirmRedirect is a batch whose success always navigates.
	ShapeConfirmRedirect
)

// String returns a human-readable shape.
func (s Shape) String() string {
	switch s {
	case ShapeImmediate:
		return "immediate"
	case ShapeBatch:
		return "batch"
	case ShapeConfirmRedirect:
		return "confirm-redirect"
	default:
		return "unknown"
	}
}

// Config describes one workflow instance.
type Config struct {
	Name  string
	Shape Shape
	// Trigger is the control disabled while a request is in flight. An
	// immediate workflow with no trigger uses the card control of the
	// activated item.
	Trigger domain.ControlID
	// Dependent is the control enabled once something has been saved.
	// Empty for workflows that gate nothing.
	Dependent domain.ControlID
	// Redirect is where a successful navigation goes.
	Redirect string
}

// Status is a copy of the workflow state for display.
type Status struct {
	Name     string
	Shape    Shape
	Selected int
	Total    int
	Missing  []domain.ItemID
	Request  domain.RequestState
	Locked   bool
}

// Controller is driven by a single event loop. It is not safe for
// concurrent use; network calls hand their Completion back to that loop.
type Controller struct {
	cfg    Config
	store  *selection.Store
	rules  *rules.Engine
	coord  *submit.Coordinator
	router *router.Router
	view   domain.View
	log    *logger.Logger
}

// NewController wires explicitly constructed parts into a workflow.
func NewController(cfg Config, view domain.View, store *selection.Store, rules *rules.Engine, coord *submit.Coordinator, rt *router.Router, log *logger.Logger) *Controller {
	return &Controller{
		cfg:    cfg,
		store:  store,
		rules:  rules,
		coord:  coord,
		router: rt,
		view:   view,
		log:    log,
	}
}

// Config returns the workflow configuration.
func (c *Controller) Config() Config { return c.cfg }

// Toggle flips the selection of id, recomputes its derived state and
// returns the new selection.
func (c *Controller) Toggle(id domain.ItemID) (bool, error) {
	if c.view.Detached() {
		return false, domain.ErrViewDetached
	}
	selected, ok := c.store.Toggle(id)
	if !ok {
		return false, fmt.Errorf("toggle %s: %w", id, domain.ErrUnknownItem)
	}
	c.rules.OnSelectionChanged(id, selected)
	c.log.Debug("%s: %s selected=%v", c.cfg.Name, id, selected)
	return selected, nil
}

// SelectAll selects every item, seeding defaults on those that were not
// already selected. Edits on already selected items are kept.
func (c *Controller) SelectAll() ([]domain.ItemID, error) {
	if c.view.Detached() {
		return nil, domain.ErrViewDetached
	}
	changed := c.store.SelectAll()
	for _, id := range changed {
		c.rules.OnSelectionChanged(id, true)
	}
	return changed, nil
}

// SetField edits a derived field of a selected item.
func (c *Controller) SetField(id domain.ItemID, f domain.Field, value string) error {
	if c.view.Detached() {
		return domain.ErrViewDetached
	}
	return c.rules.SetValue(id, f, value)
}

// Activate runs the immediate action on one item, selecting it first if
// needed. The returned Call performs the request.
func (c *Controller) Activate(ctx context.Context, id domain.ItemID, ev domain.Event) (submit.Call, error) {
	if c.cfg.Shape != ShapeImmediate {
		return nil, fmt.Errorf("activate on %s workflow: %w", c.cfg.Shape, domain.ErrUnsupported)
	}
	if c.view.Detached() {
		return nil, domain.ErrViewDetached
	}
	if !c.store.Known(id) {
		return nil, fmt.Errorf("activate %s: %w", id, domain.ErrUnknownItem)
	}
	if !c.view.ElementVisible(id) {
		return nil, fmt.Errorf("activate %s: %w", id, domain.ErrNotFound)
	}

	if c.coord.Locked() {
		if ev != nil {
			ev.PreventDefault()
		}
		return nil, domain.ErrSubmissionLocked
	}

	trigger := c.cfg.Trigger
	if trigger == "" {
		trigger = domain.CardControl(id)
	}
	picked := !c.store.IsSelected(id)
	if picked {
		c.store.Toggle(id)
		c.rules.OnSelectionChanged(id, true)
	}
	call, err := c.coord.Submit(ctx, submit.Trigger{Control: trigger, Event: ev}, c.source(id))
	if err != nil && picked {
		// A refused activation leaves the selection as it was.
		c.store.Toggle(id)
		c.rules.OnSelectionChanged(id, false)
	}
	return call, err
}

// Submit sends every selected item from the workflow's trigger control.
func (c *Controller) Submit(ctx context.Context, ev domain.Event) (submit.Call, error) {
	if c.cfg.Shape == ShapeImmediate {
		return nil, fmt.Errorf("submit on %s workflow: %w", c.cfg.Shape, domain.ErrUnsupported)
	}
	if c.view.Detached() {
		return nil, domain.ErrViewDetached
	}
	return c.coord.Submit(ctx, submit.Trigger{Control: c.cfg.Trigger, Event: ev}, c.source(""))
}

// Complete records a finished request and routes its outcome. Each
// accepted submit is routed exactly once.
func (c *Controller) Complete(comp submit.Completion) (domain.Outcome, error) {
	out, err := c.coord.Complete(comp)
	if err != nil {
		c.log.Warn("%s: dropping completion %s: %v", c.cfg.Name, comp.RequestID, err)
		return domain.Outcome{}, err
	}
	c.router.Route(out)
	return out, nil
}

// Release drops a lock held after a rejection.
func (c *Controller) Release() error { return c.coord.Release() }

// Items returns every item in render order.
func (c *Controller) Items() []domain.Item {
	ids := c.store.IDs()
	out := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		if it, ok := c.rules.Item(id); ok {
			out = append(out, it)
		}
	}
	return out
}

// Selected returns the selected ids in render order.
func (c *Controller) Selected() []domain.ItemID { return c.store.SelectedIDs() }

// IsSelected reports whether id is selected.
func (c *Controller) IsSelected(id domain.ItemID) bool { return c.store.IsSelected(id) }

// State returns the derived state of a selected item.
func (c *Controller) State(id domain.ItemID) (domain.DerivedState, bool) { return c.rules.State(id) }

// Status returns a copy of the workflow state.
func (c *Controller) Status() Status {
	return Status{
		Name:     c.cfg.Name,
		Shape:    c.cfg.Shape,
		Selected: c.store.Count(),
		Total:    c.store.Len(),
		Missing:  c.rules.Missing(),
		Request:  c.coord.State(),
		Locked:   c.coord.Locked(),
	}
}

func (c *Controller) source(only domain.ItemID) *source {
	return &source{store: c.store, rules: c.rules, only: only, now: time.Now}
}

// source adapts the live selection to submit.Source. When only is set the
// source is narrowed to that one item.
type source struct {
	store *selection.Store
	rules *rules.Engine
	only  domain.ItemID
	now   func() time.Time
}

var _ submit.Source = (*source)(nil)

func (s *source) ids() []domain.ItemID {
	if s.only != "" {
		return []domain.ItemID{s.only}
	}
	return s.store.SelectedIDs()
}

func (s *source) Count() int { return len(s.ids()) }

func (s *source) Missing() []domain.ItemID {
	missing := s.rules.Missing()
	if s.only == "" {
		return missing
	}
	for _, id := range missing {
		if id == s.only {
			return []domain.ItemID{id}
		}
	}
	return nil
}

func (s *source) Snapshot() domain.Snapshot {
	ids := s.ids()
	snap := domain.Snapshot{
		IDs:     ids,
		Meta:    make(map[domain.ItemID]domain.Metadata, len(ids)),
		Fields:  make(map[domain.ItemID]domain.DerivedState, len(ids)),
		TakenAt: s.now(),
	}
	for _, id := range ids {
		if it, ok := s.rules.Item(id); ok {
			snap.Meta[id] = it.Meta
		}
		if st, ok := s.rules.State(id); ok {
			snap.Fields[id] = st
		}
	}
	return snap
}
