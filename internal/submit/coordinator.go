// Package submit turns the current selection into exactly one network
// request per submission cycle and guards against overlapping submits.
package submit

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

// Schema shapes a snapshot into a workflow's wire payload and interprets
// the server's reply.
type Schema interface {
	Name() string
	Endpoint() string
	Encode(snap domain.Snapshot) (url.Values, error)
	Decode(snap domain.Snapshot, body []byte) domain.Outcome
}

// Source is what the coordinator snapshots. Missing lists selected items
// whose required fields are empty.
type Source interface {
	Count() int
	Missing() []domain.ItemID
	Snapshot() domain.Snapshot
}

// EmptyPolicy decides what happens when the selection is empty at submit.
type EmptyPolicy int

const (
	// EmptySend posts the empty payload and lets the server decide.
	EmptySend EmptyPolicy = iota
	// EmptySkip refuses the submit without any network call.
	EmptySkip
)

// String returns the config spelling of the policy.
func (p EmptyPolicy) String() string {
	if p == EmptySkip {
		return "skip"
	}
	return "send"
}

// ParseEmptyPolicy accepts "send" or "skip".
func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "send":
		return EmptySend, nil
	case "skip":
		return EmptySkip, nil
	}
	return EmptySend, fmt.Errorf("unknown empty-selection policy %q (want send or skip)", s)
}

// Policy is the per-workflow submission configuration.
type Policy struct {
	Empty EmptyPolicy
	// HoldOnReject keeps the lock (and the trigger disabled) after a
	// semantic rejection until the caller calls Release.
	HoldOnReject bool
}

// Trigger is the control and event that started a submit.
type Trigger struct {
	Control domain.ControlID
	Event   domain.Event
}

// Completion carries the result of a Call back to the event loop.
type Completion struct {
	RequestID string
	Snapshot  domain.Snapshot
	Outcome   domain.Outcome
}

// Call performs the network request of one accepted submit. It may be run
// on any goroutine; calling it again returns the first result without
// issuing another request.
type Call func() Completion

// Option configures the coordinator.
type Option func(*Coordinator)

// WithPolicy sets the submission policy.
func WithPolicy(p Policy) Option {
	return func(c *Coordinator) { c.policy = p }
}

// WithRequestIDs overrides how request ids are generated.
func WithRequestIDs(fn func() string) Option {
	return func(c *Coordinator) { c.newID = fn }
}

// Coordinator owns the Submission Lock of one workflow instance.
type Coordinator struct {
	poster domain.Poster
	view   domain.View
	schema Schema
	policy Policy
	log    *logger.Logger
	newID  func() string

	mu      sync.Mutex
	locked  bool
	state   domain.RequestState
	trigger domain.ControlID
}

// New creates a coordinator for one workflow instance.
func New(poster domain.Poster, view domain.View, schema Schema, log *logger.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		poster: poster,
		view:   view,
		schema: schema,
		log:    log,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the active policy.
func (c *Coordinator) Policy() Policy { return c.policy }

// Submit accepts or refuses a submit. When accepted the lock is held and
// the trigger control disabled before Submit returns; the returned Call
// performs the single network request.
func (c *Coordinator) Submit(ctx context.Context, trg Trigger, src Source) (Call, error) {
	if trg.Event != nil {
		trg.Event.PreventDefault()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.locked {
		c.log.Debug("%s: submit ignored, %s", c.schema.Name(), c.state)
		return nil, domain.ErrSubmissionLocked
	}
	if missing := src.Missing(); len(missing) > 0 {
		return nil, &domain.ValidationError{Missing: missing}
	}
	if src.Count() == 0 && c.policy.Empty == EmptySkip {
		c.log.Debug("%s: empty selection skipped", c.schema.Name())
		return nil, domain.ErrEmptySelection
	}

	id := c.newID()
	c.locked = true
	c.state = domain.RequestState{Status: domain.RequestInFlight, ID: id}
	c.trigger = trg.Control
	if trg.Control != "" {
		c.view.SetControlEnabled(trg.Control, false)
	}

	snap := src.Snapshot()
	form, err := c.schema.Encode(snap)
	if err != nil {
		c.state = domain.RequestState{Status: domain.RequestFailed, ID: id, Reason: err.Error()}
		c.unlock()
		return nil, fmt.Errorf("encoding %s payload: %w", c.schema.Name(), err)
	}

	endpoint := c.schema.Endpoint()
	c.log.Info("%s: request %s accepted (%d items)", c.schema.Name(), id, len(snap.IDs))

	var (
		once sync.Once
		done Completion
	)
	call := func() Completion {
		once.Do(func() {
			done = Completion{RequestID: id, Snapshot: snap}
			body, err := c.poster.PostForm(domain.WithRequestID(ctx, id), endpoint, form)
			if err != nil {
				done.Outcome = domain.Failed(err)
				return
			}
			done.Outcome = c.schema.Decode(snap, body)
		})
		return done
	}
	return call, nil
}

// Complete records the terminal result of the in-flight request and
// returns the outcome for the router. Completions that do not belong to
// the in-flight request are refused.
func (c *Coordinator) Complete(comp Completion) (domain.Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.locked || c.state.Status != domain.RequestInFlight {
		return domain.Outcome{}, domain.ErrNotInFlight
	}
	if comp.RequestID != c.state.ID {
		return domain.Outcome{}, fmt.Errorf("%w: got %s, in flight %s", domain.ErrStaleCompletion, comp.RequestID, c.state.ID)
	}

	out := comp.Outcome
	switch out.Kind {
	case domain.OutcomeFailed:
		c.state = domain.RequestState{Status: domain.RequestFailed, ID: comp.RequestID, Reason: fmt.Sprint(out.Err)}
		c.log.Warn("%s: request %s failed: %v", c.schema.Name(), comp.RequestID, out.Err)
	case domain.OutcomeRejected:
		c.state = domain.RequestState{Status: domain.RequestFailed, ID: comp.RequestID, Reason: out.Reason}
		c.log.Info("%s: request %s rejected: %s", c.schema.Name(), comp.RequestID, out.Reason)
	default:
		c.state = domain.RequestState{Status: domain.RequestSucceeded, ID: comp.RequestID}
		c.log.Info("%s: request %s -> %s", c.schema.Name(), comp.RequestID, out)
	}

	if out.Kind == domain.OutcomeRejected && c.policy.HoldOnReject {
		c.log.Debug("%s: holding lock after rejection", c.schema.Name())
		return out, nil
	}

	// A single save hides the element the trigger lives on and a redirect
	// tears the view down; leave their trigger alone.
	reenable := !(out.Kind == domain.OutcomeRedirect || (out.Kind == domain.OutcomeSaved && !out.Batch()))
	c.locked = false
	if reenable {
		c.enableTrigger()
	}
	return out, nil
}

// Release drops a lock held after a rejection and re-enables the trigger.
// An in-flight request cannot be released.
func (c *Coordinator) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.locked {
		return nil
	}
	if c.state.Status == domain.RequestInFlight {
		return domain.ErrSubmissionLocked
	}
	c.unlock()
	return nil
}

// Locked reports whether the Submission Lock is held.
func (c *Coordinator) Locked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// State returns the request state.
func (c *Coordinator) State() domain.RequestState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// unlock must be called with mu held.
func (c *Coordinator) unlock() {
	c.locked = false
	c.enableTrigger()
}

func (c *Coordinator) enableTrigger() {
	if c.trigger == "" || c.view.Detached() {
		return
	}
	c.view.SetControlEnabled(c.trigger, true)
}
