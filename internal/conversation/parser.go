// Package conversation provides intent parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
	commands []commandRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// commandRule matches "<verb> <args>" and builds the intent from the
// submatches.
type commandRule struct {
	regex *regexp.Regexp
	build func(m []string) *domain.Intent
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(list|ls|show|items)$`), domain.IntentList},
		{regexp.MustCompile(`(?i)^(all|select all|check all|a)$`), domain.IntentSelectAll},
		{regexp.MustCompile(`(?i)^(submit|send|save|confirm)$`), domain.IntentSubmit},
		{regexp.MustCompile(`(?i)^(ok|dismiss|retry|got it)$`), domain.IntentRelease},
		{regexp.MustCompile(`(?i)^(new list|new-list|generate list|make list)$`), domain.IntentGenerateList},
		{regexp.MustCompile(`(?i)^(status|where|info)$`), domain.IntentStatus},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), domain.IntentQuit},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
	}
	p.commands = []commandRule{
		{
			regexp.MustCompile(`(?i)^(?:toggle|check|uncheck|t|x)\s+(\S+)$`),
			func(m []string) *domain.Intent { return &domain.Intent{Type: domain.IntentToggle, Target: m[1]} },
		},
		{
			regexp.MustCompile(`(?i)^(?:add|cook|verify)\s+(\S+)$`),
			func(m []string) *domain.Intent { return &domain.Intent{Type: domain.IntentActivate, Target: m[1]} },
		},
		{
			regexp.MustCompile(`(?i)^(qty|quantity|unit)\s+(\S+)\s+(.+)$`),
			func(m []string) *domain.Intent {
				f, _ := domain.FieldFromString(m[1])
				return &domain.Intent{Type: domain.IntentSetField, Target: m[2], Field: f, Value: strings.TrimSpace(m[3])}
			},
		},
	}
	return p
}

// Parse converts user input into an intent.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	// A bare id toggles that row.
	if isDigits(trimmed) {
		return &domain.Intent{Type: domain.IntentToggle, Target: trimmed}, nil
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched intent: %s", rule.intent)
			return &domain.Intent{Type: rule.intent}, nil
		}
	}

	for _, rule := range p.commands {
		if m := rule.regex.FindStringSubmatch(trimmed); m != nil {
			in := rule.build(m)
			p.log.Debug("matched intent: %s target=%s", in.Type, in.Target)
			return in, nil
		}
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Value: trimmed}, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
