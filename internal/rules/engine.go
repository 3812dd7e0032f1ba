// Package rules derives the dependent field state of selected items from
// their static metadata.
package rules

import (
	"fmt"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

// Engine keeps derived state for selected items only. State for an item
// is created when it becomes selected and discarded when it is deselected.
type Engine struct {
	items  map[domain.ItemID]domain.Item
	order  []domain.ItemID
	states map[domain.ItemID]*domain.DerivedState
	log    *logger.Logger
}

// New creates an engine over the rendered items.
func New(items []domain.Item, log *logger.Logger) *Engine {
	e := &Engine{
		items:  make(map[domain.ItemID]domain.Item, len(items)),
		states: make(map[domain.ItemID]*domain.DerivedState),
		log:    log,
	}
	for _, it := range items {
		if _, dup := e.items[it.ID]; dup {
			continue
		}
		e.items[it.ID] = it
		e.order = append(e.order, it.ID)
	}
	return e
}

// OnSelectionChanged applies the rules for one transition and returns the
// resulting state, or nil when the item is deselected or unknown.
// Applying the same transition twice has no further effect.
func (e *Engine) OnSelectionChanged(id domain.ItemID, selected bool) *domain.DerivedState {
	it, ok := e.items[id]
	if !ok {
		return nil
	}

	if !selected {
		if _, had := e.states[id]; had {
			delete(e.states, id)
			e.log.Debug("dropped derived state for %s", id)
		}
		return nil
	}

	if st, had := e.states[id]; had {
		cp := *st
		return &cp
	}

	st := seed(it)
	e.states[id] = &st
	e.log.Debug("seeded %s: qty=%q unit=%q", id, st.Quantity.Value, st.Unit.Value)
	cp := st
	return &cp
}

// seed builds the initial state of a newly selected item.
func seed(it domain.Item) domain.DerivedState {
	var st domain.DerivedState
	if it.Quantity != "" {
		st.Quantity.Required = true
		if it.HasDefaultQuantity() {
			st.Quantity.Value = it.Meta.DefaultQuantity
		}
	}
	if it.Unit != "" {
		st.Unit.Required = true
		st.Unit.Value = it.Meta.Unit
	}
	return st
}

// State returns the derived state of a selected item.
func (e *Engine) State(id domain.ItemID) (domain.DerivedState, bool) {
	st, ok := e.states[id]
	if !ok {
		return domain.DerivedState{}, false
	}
	return *st, true
}

// SetValue records a user edit of one field. Only selected items have
// editable derived state.
func (e *Engine) SetValue(id domain.ItemID, f domain.Field, value string) error {
	it, ok := e.items[id]
	if !ok {
		return fmt.Errorf("set %s of %s: %w", f, id, domain.ErrUnknownItem)
	}
	st, ok := e.states[id]
	if !ok {
		return fmt.Errorf("set %s of %s: %w", f, id, domain.ErrNotSelected)
	}
	switch f {
	case domain.FieldQuantity:
		if it.Quantity == "" {
			return fmt.Errorf("item %s has no quantity field", id)
		}
		st.Quantity.Value = value
	case domain.FieldUnit:
		if it.Unit == "" {
			return fmt.Errorf("item %s has no unit field", id)
		}
		st.Unit.Value = value
	}
	return nil
}

// Missing returns selected items with a required field left empty, in
// render order.
func (e *Engine) Missing() []domain.ItemID {
	var out []domain.ItemID
	for _, id := range e.order {
		if st, ok := e.states[id]; ok && st.Missing() {
			out = append(out, id)
		}
	}
	return out
}

// States returns a copy of all derived state.
func (e *Engine) States() map[domain.ItemID]domain.DerivedState {
	out := make(map[domain.ItemID]domain.DerivedState, len(e.states))
	for id, st := range e.states {
		out[id] = *st
	}
	return out
}

// Item returns the rendered item for id.
func (e *Engine) Item(id domain.ItemID) (domain.Item, bool) {
	it, ok := e.items[id]
	return it, ok
}
