package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

func TestMemoryStoreRecordAndGet(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemoryStore(log)
	ctx := context.Background()

	sub := &domain.Submission{
		RequestID: "req-1",
		Workflow:  "recipe-add",
		IDs:       []domain.ItemID{"42"},
		Outcome:   domain.Saved("42"),
	}

	if err := store.Record(ctx, sub); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := store.Get(ctx, "req-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Workflow != "recipe-add" || got.Outcome.ItemID != "42" {
		t.Errorf("got %+v", got)
	}

	if err := store.Record(ctx, sub); err == nil {
		t.Fatal("recording the same request twice should fail")
	}
	if err := store.Record(ctx, &domain.Submission{}); err == nil {
		t.Fatal("recording without a request id should fail")
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreRecent(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemoryStore(log, WithCapacity(3))
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := store.Record(ctx, &domain.Submission{RequestID: fmt.Sprintf("req-%d", i)}); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	tests := []struct {
		n    int
		want []string
	}{
		{0, []string{"req-5", "req-4", "req-3"}},
		{2, []string{"req-5", "req-4"}},
		{10, []string{"req-5", "req-4", "req-3"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.n), func(t *testing.T) {
			got, err := store.Recent(ctx, tt.n)
			if err != nil {
				t.Fatalf("recent: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d submissions, want %d", len(got), len(tt.want))
			}
			for i, s := range got {
				if s.RequestID != tt.want[i] {
					t.Errorf("recent[%d] = %s, want %s", i, s.RequestID, tt.want[i])
				}
			}
		})
	}

	if _, err := store.Get(ctx, "req-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatal("req-1 should have been evicted")
	}
}
