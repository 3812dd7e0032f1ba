package conversation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hammamikhairi/ottocart/internal/logger"
)

func TestCLINotifier(t *testing.T) {
	var lines []string
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), func(format string, a ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, a...))
	})
	ctx := context.Background()

	if err := n.Notify(ctx, "Recipe has been saved."); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := n.NotifyUrgent(ctx, "out of flour"); err != nil {
		t.Fatalf("notify urgent: %v", err)
	}
	if err := n.NotifyUrgent(ctx, "out of eggs"); err != nil {
		t.Fatalf("notify urgent: %v", err)
	}

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "Recipe has been saved.") || strings.Contains(lines[0], red) {
		t.Errorf("notice line = %q", lines[0])
	}
	if !strings.Contains(lines[1], red) || !strings.Contains(lines[1], "! out of flour") {
		t.Errorf("alert line = %q", lines[1])
	}

	if got := n.Acknowledge(); got != 2 {
		t.Fatalf("Acknowledge = %d, want 2", got)
	}
	if got := n.Acknowledge(); got != 0 {
		t.Fatalf("second Acknowledge = %d, want 0", got)
	}
}
