package domain

import "fmt"

// OutcomeKind classifies the result of one submission cycle.
type OutcomeKind int

const (
	OutcomeSaved OutcomeKind = iota
	OutcomeRejected
	OutcomeRedirect
	OutcomeFailed
)

// String returns a human-readable outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSaved:
		return "saved"
	case OutcomeRejected:
		return "rejected"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is produced once per submission cycle and consumed once by the
// router. Only the field matching Kind is meaningful.
type Outcome struct {
	Kind   OutcomeKind
	ItemID ItemID // Saved; empty for a batch save
	Reason string // Rejected
	Target string // Redirect
	Err    error  // Failed
}

// Saved is a single-item save.
func Saved(id ItemID) Outcome { return Outcome{Kind: OutcomeSaved, ItemID: id} }

// SavedBatch is a save of many items at once.
func SavedBatch() Outcome { return Outcome{Kind: OutcomeSaved} }

// Rejected is a semantic refusal by the server.
func Rejected(reason string) Outcome { return Outcome{Kind: OutcomeRejected, Reason: reason} }

// Redirect asks for a hard navigation.
func Redirect(target string) Outcome { return Outcome{Kind: OutcomeRedirect, Target: target} }

// Failed wraps a transport failure.
func Failed(err error) Outcome { return Outcome{Kind: OutcomeFailed, Err: err} }

// Batch reports whether a Saved outcome covers many items.
func (o Outcome) Batch() bool { return o.Kind == OutcomeSaved && o.ItemID == "" }

// String renders the outcome for logs.
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeSaved:
		if o.ItemID == "" {
			return "saved(batch)"
		}
		return fmt.Sprintf("saved(%s)", o.ItemID)
	case OutcomeRejected:
		return fmt.Sprintf("rejected(%q)", o.Reason)
	case OutcomeRedirect:
		return fmt.Sprintf("redirect(%s)", o.Target)
	case OutcomeFailed:
		return fmt.Sprintf("failed(%v)", o.Err)
	default:
		return "unknown"
	}
}
