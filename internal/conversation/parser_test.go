package conversation

import (
	"context"
	"testing"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input      string
		wantType   domain.IntentType
		wantTarget string
		wantField  domain.Field
		wantValue  string
	}{
		// Bare ids toggle.
		{"42", domain.IntentToggle, "42", 0, ""},
		{"toggle 7", domain.IntentToggle, "7", 0, ""},
		{"x abc-1", domain.IntentToggle, "abc-1", 0, ""},

		{"all", domain.IntentSelectAll, "", 0, ""},
		{"Select All", domain.IntentSelectAll, "", 0, ""},

		{"qty 7 2", domain.IntentSetField, "7", domain.FieldQuantity, "2"},
		{"quantity 9 1/2", domain.IntentSetField, "9", domain.FieldQuantity, "1/2"},
		{"unit 9 table spoons", domain.IntentSetField, "9", domain.FieldUnit, "table spoons"},

		{"submit", domain.IntentSubmit, "", 0, ""},
		{"confirm", domain.IntentSubmit, "", 0, ""},

		{"add 42", domain.IntentActivate, "42", 0, ""},
		{"cook 43", domain.IntentActivate, "43", 0, ""},

		{"ok", domain.IntentRelease, "", 0, ""},
		{"new list", domain.IntentGenerateList, "", 0, ""},

		{"list", domain.IntentList, "", 0, ""},
		{"status", domain.IntentStatus, "", 0, ""},
		{"help", domain.IntentHelp, "", 0, ""},
		{"?", domain.IntentHelp, "", 0, ""},
		{"quit", domain.IntentQuit, "", 0, ""},
		{"q", domain.IntentQuit, "", 0, ""},

		{"", domain.IntentUnknown, "", 0, ""},
		{"make me a sandwich", domain.IntentUnknown, "", 0, "make me a sandwich"},
		{"qty 7", domain.IntentUnknown, "", 0, "qty 7"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent, err := parser.Parse(ctx, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if intent.Type != tt.wantType {
				t.Errorf("Parse(%q).Type = %s, want %s", tt.input, intent.Type, tt.wantType)
			}
			if intent.Target != tt.wantTarget {
				t.Errorf("Parse(%q).Target = %q, want %q", tt.input, intent.Target, tt.wantTarget)
			}
			if intent.Field != tt.wantField {
				t.Errorf("Parse(%q).Field = %s, want %s", tt.input, intent.Field, tt.wantField)
			}
			if intent.Value != tt.wantValue {
				t.Errorf("Parse(%q).Value = %q, want %q", tt.input, intent.Value, tt.wantValue)
			}
		})
	}
}
