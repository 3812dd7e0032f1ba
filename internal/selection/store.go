// Package selection tracks which items of a rendered collection are
// currently chosen. It is pure state: no network, no view.
package selection

import "github.com/hammamikhairi/ottocart/internal/domain"

// Store holds the selection for one rendered view. It is owned by a single
// workflow instance and mutated only from that instance's event loop.
type Store struct {
	order    []domain.ItemID
	selected map[domain.ItemID]bool
}

// NewStore creates a store over the known collection. Duplicate ids are
// collapsed; render order is kept.
func NewStore(ids []domain.ItemID) *Store {
	s := &Store{selected: make(map[domain.ItemID]bool, len(ids))}
	for _, id := range ids {
		if _, dup := s.selected[id]; dup {
			continue
		}
		s.order = append(s.order, id)
		s.selected[id] = false
	}
	return s
}

// Known reports whether id belongs to the rendered collection.
func (s *Store) Known(id domain.ItemID) bool {
	_, ok := s.selected[id]
	return ok
}

// Len returns the size of the known collection.
func (s *Store) Len() int { return len(s.order) }

// IDs returns the known ids in render order.
func (s *Store) IDs() []domain.ItemID {
	out := make([]domain.ItemID, len(s.order))
	copy(out, s.order)
	return out
}

// Toggle flips membership of id and returns the new membership. ok is
// false for unknown ids, which are ignored.
func (s *Store) Toggle(id domain.ItemID) (selected, ok bool) {
	cur, ok := s.selected[id]
	if !ok {
		return false, false
	}
	s.selected[id] = !cur
	return !cur, true
}

// IsSelected reports whether id is currently chosen.
func (s *Store) IsSelected(id domain.ItemID) bool {
	return s.selected[id]
}

// SelectedIDs returns the chosen ids in render order.
func (s *Store) SelectedIDs() []domain.ItemID {
	var out []domain.ItemID
	for _, id := range s.order {
		if s.selected[id] {
			out = append(out, id)
		}
	}
	return out
}

// Count returns how many items are chosen.
func (s *Store) Count() int {
	n := 0
	for _, v := range s.selected {
		if v {
			n++
		}
	}
	return n
}

// SelectAll marks the given ids as chosen, or every known id when none are
// given. Unknown ids are skipped. It returns the ids that were not
// selected before the call, in the order they were processed.
func (s *Store) SelectAll(ids ...domain.ItemID) []domain.ItemID {
	if len(ids) == 0 {
		ids = s.order
	}
	var changed []domain.ItemID
	for _, id := range ids {
		cur, ok := s.selected[id]
		if !ok || cur {
			continue
		}
		s.selected[id] = true
		changed = append(changed, id)
	}
	return changed
}
