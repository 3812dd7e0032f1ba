package domain

import (
	"context"
	"time"
)

// Submission is the record of one finished submission cycle.
type Submission struct {
	RequestID  string
	Workflow   string
	IDs        []ItemID
	Outcome    Outcome
	AcceptedAt time.Time
	FinishedAt time.Time
}

// HistoryStore keeps finished submissions.
type HistoryStore interface {
	Record(ctx context.Context, s *Submission) error
	Get(ctx context.Context, requestID string) (*Submission, error)
	Recent(ctx context.Context, n int) ([]*Submission, error)
}
