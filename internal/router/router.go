// Package router turns a submission outcome into a view transition.
// It never touches the Submission Lock.
package router

import (
	"fmt"
	"time"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

// Default notice texts and timing.
const (
	DefaultNoticeDelay    = 2000 * time.Millisecond
	DefaultSavedText      = "Recipe has been saved."
	DefaultBatchSavedText = "Your recipes have been saved."
)

// Option configures the router.
type Option func(*Router)

// WithNoticeDelay sets how long a single-save notice stays visible.
func WithNoticeDelay(d time.Duration) Option {
	return func(r *Router) { r.noticeDelay = d }
}

// WithSavedNotice sets the region the single-save notice is shown in.
func WithSavedNotice(id domain.NoticeID) Option {
	return func(r *Router) { r.savedNotice = id }
}

// WithDependentControl sets the control that is gated on having at least
// one saved item.
func WithDependentControl(id domain.ControlID) Option {
	return func(r *Router) { r.dependent = id }
}

// Router dispatches outcomes to the view.
type Router struct {
	view           domain.View
	sched          domain.Scheduler
	log            *logger.Logger
	noticeDelay    time.Duration
	savedNotice    domain.NoticeID
	savedText      string
	batchSavedText string
	dependent      domain.ControlID
}

// New creates a router acting on view. Auto-hide timers go through sched.
func New(view domain.View, sched domain.Scheduler, log *logger.Logger, opts ...Option) *Router {
	r := &Router{
		view:           view,
		sched:          sched,
		log:            log,
		noticeDelay:    DefaultNoticeDelay,
		savedNotice:    domain.NoticeSaved,
		savedText:      DefaultSavedText,
		batchSavedText: DefaultBatchSavedText,
		dependent:      domain.ControlGenerateList,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route applies the transition for one outcome.
func (r *Router) Route(out domain.Outcome) {
	if r.view.Detached() {
		r.log.Debug("view detached, dropping %s", out)
		return
	}
	r.log.Debug("routing %s", out)

	switch out.Kind {
	case domain.OutcomeSaved:
		if out.Batch() {
			r.savedBatch()
			return
		}
		r.saved(out.ItemID)
	case domain.OutcomeRejected:
		r.view.Alert(out.Reason)
	case domain.OutcomeRedirect:
		r.view.Navigate(out.Target)
	case domain.OutcomeFailed:
		r.view.Alert(fmt.Sprintf("Something went wrong, please try again. (%v)", out.Err))
	default:
		r.log.Warn("unroutable outcome %s", out)
	}
}

func (r *Router) saved(id domain.ItemID) {
	r.view.ShowNotice(domain.Notice{ID: r.savedNotice, Text: r.savedText})
	r.view.HideElement(id)
	if r.dependent != "" {
		r.view.SetControlEnabled(r.dependent, true)
	}

	r.sched.AfterFunc(r.noticeDelay, func() {
		// The view may be gone by the time this fires.
		if r.view.Detached() || !r.view.NoticeVisible(r.savedNotice) {
			return
		}
		r.view.HideNotice(r.savedNotice)
	})
}

func (r *Router) savedBatch() {
	r.view.ShowNotice(domain.Notice{ID: domain.NoticeBatchSaved, Text: r.batchSavedText, Persistent: true})
	if r.dependent != "" {
		r.view.SetControlEnabled(r.dependent, true)
	}
}
