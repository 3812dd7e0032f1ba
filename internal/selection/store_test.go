package selection

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/hammamikhairi/ottocart/internal/domain"
)

func ids(v ...string) []domain.ItemID {
	out := make([]domain.ItemID, len(v))
	for i, s := range v {
		out[i] = domain.ItemID(s)
	}
	return out
}

func TestToggle(t *testing.T) {
	s := NewStore(ids("7", "9", "42"))

	tests := []struct {
		name   string
		id     domain.ItemID
		wantOK bool
		want   bool
	}{
		{"select known", "7", true, true},
		{"deselect known", "7", true, false},
		{"unknown id", "100", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, ok := s.Toggle(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("Toggle(%s) ok = %v, want %v", tt.id, ok, tt.wantOK)
			}
			if selected != tt.want {
				t.Fatalf("Toggle(%s) = %v, want %v", tt.id, selected, tt.want)
			}
			if got := s.IsSelected(tt.id); got != tt.want {
				t.Fatalf("IsSelected(%s) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}

	if s.Known("100") {
		t.Fatal("unknown id became known after toggle")
	}
}

func TestToggleParity(t *testing.T) {
	all := ids("1", "2", "3", "4", "5")
	s := NewStore(all)
	counts := make(map[domain.ItemID]int)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		id := all[r.Intn(len(all))]
		s.Toggle(id)
		counts[id]++
	}

	for _, id := range all {
		want := counts[id]%2 == 1
		if got := s.IsSelected(id); got != want {
			t.Fatalf("id %s toggled %d times: selected=%v, want %v", id, counts[id], got, want)
		}
	}
}

func TestSelectedIDsRenderOrder(t *testing.T) {
	s := NewStore(ids("c", "a", "b", "a"))
	if s.Len() != 3 {
		t.Fatalf("expected duplicates collapsed to 3 ids, got %d", s.Len())
	}
	s.Toggle("b")
	s.Toggle("c")

	if got, want := s.SelectedIDs(), ids("c", "b"); !reflect.DeepEqual(got, want) {
		t.Fatalf("SelectedIDs() = %v, want %v", got, want)
	}
	if s.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Count())
	}
}

func TestSelectAll(t *testing.T) {
	s := NewStore(ids("1", "2", "3"))
	s.Toggle("2")

	changed := s.SelectAll()
	if want := ids("1", "3"); !reflect.DeepEqual(changed, want) {
		t.Fatalf("SelectAll() changed = %v, want %v", changed, want)
	}
	for _, id := range s.IDs() {
		if !s.IsSelected(id) {
			t.Fatalf("expected %s selected after SelectAll", id)
		}
	}

	// Deselecting one item afterwards leaves the rest selected.
	s.Toggle("2")
	if want := ids("1", "3"); !reflect.DeepEqual(s.SelectedIDs(), want) {
		t.Fatalf("SelectedIDs() = %v, want %v", s.SelectedIDs(), want)
	}

	if changed := s.SelectAll("3", "nope"); len(changed) != 0 {
		t.Fatalf("expected no change for already-selected and unknown ids, got %v", changed)
	}
}
