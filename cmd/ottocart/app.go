package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hammamikhairi/ottocart/internal/conversation"
	"github.com/hammamikhairi/ottocart/internal/display"
	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
	"github.com/hammamikhairi/ottocart/internal/page"
	"github.com/hammamikhairi/ottocart/internal/submit"
	"github.com/hammamikhairi/ottocart/internal/timer"
	"github.com/hammamikhairi/ottocart/internal/workflow"
)

// generateListTarget is where the generate-list control leads.
const generateListTarget = "/shopping_list"

type acceptance struct {
	at  time.Time
	ids []domain.ItemID
}

// cliApp is the single event loop. Every workflow, page and timer
// callback runs on it; requests run on their own goroutine and hand the
// Completion back through completions.
type cliApp struct {
	ctl         *workflow.Controller
	page        *page.Page
	parser      domain.IntentParser
	notifier    *conversation.CLINotifier
	history     domain.HistoryStore
	timers      *timer.Dispatcher
	ui          *display.UI
	log         *logger.Logger
	status      *atomic.Pointer[display.Status]
	completions chan submit.Completion
	accepted    map[string]acceptance
	inFlight    int
	details     []string
	shownNotice map[domain.NoticeID]bool
}

func (a *cliApp) run(ctx context.Context) {
	a.publish()
	a.showPage()

	uiCh := a.ui.InputChan()

	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-uiCh:
			if !ok {
				return
			}
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			intent, err := a.parser.Parse(ctx, input)
			if err != nil {
				a.log.Error("parsing input: %v", err)
				continue
			}
			a.log.Debug("intent: %s (target=%q)", intent.Type, intent.Target)
			if quit := a.handleIntent(ctx, intent); quit {
				return
			}
		case comp := <-a.completions:
			a.complete(ctx, comp)
		case fn := <-a.timers.C():
			fn()
		}

		a.publish()

		if a.page.Detached() && a.inFlight == 0 {
			a.ui.PrintHint("navigating to " + a.page.Location())
			return
		}
	}
}

func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentList:
		a.showPage()
	case domain.IntentToggle:
		a.toggle(intent.Target)
	case domain.IntentSelectAll:
		a.selectAll()
	case domain.IntentSetField:
		a.setField(intent.Target, intent.Field, intent.Value)
	case domain.IntentSubmit:
		a.submit(ctx)
	case domain.IntentActivate:
		a.activate(ctx, intent.Target)
	case domain.IntentRelease:
		a.release()
	case domain.IntentGenerateList:
		a.generateList()
	case domain.IntentStatus:
		a.showStatus(ctx)
	case domain.IntentQuit:
		if a.inFlight > 0 {
			a.ui.PrintHint("a request is still in flight; its result will be discarded")
		}
		return true
	case domain.IntentUnknown:
		a.ui.PrintHint(fmt.Sprintf("Didn't catch %q. Type 'help' for commands.", intent.Value))
	}
	return false
}

// ── Selection ────────────────────────────────────────────────────

func (a *cliApp) toggle(target string) {
	id, err := domain.ParseItemID(target)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	selected, err := a.ctl.Toggle(id)
	if err != nil {
		a.reportErr(err)
		return
	}
	if !selected {
		a.ui.PrintHint(fmt.Sprintf("unchecked %s", id))
		return
	}
	a.ui.PrintItem(a.row(id))
}

func (a *cliApp) selectAll() {
	changed, err := a.ctl.SelectAll()
	if err != nil {
		a.reportErr(err)
		return
	}
	a.ui.PrintHint(fmt.Sprintf("checked %d more", len(changed)))
	a.showPage()
}

func (a *cliApp) setField(target string, f domain.Field, value string) {
	id, err := domain.ParseItemID(target)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	if err := a.ctl.SetField(id, f, value); err != nil {
		a.reportErr(err)
		return
	}
	a.ui.PrintItem(a.row(id))
}

// ── Submission ───────────────────────────────────────────────────

func (a *cliApp) submit(ctx context.Context) {
	call, err := a.ctl.Submit(ctx, page.FormSubmit(a.ctl.Config().Name))
	if err != nil {
		a.reportErr(err)
		return
	}
	a.launch(call, a.ctl.Selected())
}

func (a *cliApp) activate(ctx context.Context, target string) {
	id, err := domain.ParseItemID(target)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	control := a.ctl.Config().Trigger
	if control == "" {
		control = domain.CardControl(id)
	}
	call, err := a.ctl.Activate(ctx, id, page.Click(control))
	if err != nil {
		a.reportErr(err)
		return
	}
	a.launch(call, []domain.ItemID{id})
}

// launch runs an accepted request off the loop.
func (a *cliApp) launch(call submit.Call, ids []domain.ItemID) {
	reqID := a.ctl.Status().Request.ID
	a.accepted[reqID] = acceptance{at: time.Now(), ids: ids}
	a.inFlight++
	a.ui.PrintHint("sending...")

	go func() {
		a.completions <- call()
	}()
}

func (a *cliApp) complete(ctx context.Context, comp submit.Completion) {
	a.inFlight--
	acc := a.accepted[comp.RequestID]
	delete(a.accepted, comp.RequestID)

	out, err := a.ctl.Complete(comp)
	if err != nil {
		a.log.Warn("completion %s: %v", comp.RequestID, err)
		return
	}

	if err := a.history.Record(ctx, &domain.Submission{
		RequestID:  comp.RequestID,
		Workflow:   a.ctl.Config().Name,
		IDs:        comp.Snapshot.IDs,
		Outcome:    out,
		AcceptedAt: acc.at,
		FinishedAt: time.Now(),
	}); err != nil {
		a.log.Error("history: %v", err)
	}

	if out.Kind == domain.OutcomeRejected && a.ctl.Status().Locked {
		a.ui.PrintHint("type 'ok' to dismiss and try again")
	}
}

func (a *cliApp) release() {
	a.notifier.Acknowledge()
	if err := a.ctl.Release(); err != nil {
		a.reportErr(err)
	}
}

func (a *cliApp) generateList() {
	dep := a.ctl.Config().Dependent
	if dep == "" {
		a.ui.PrintHint("there is no list to generate from this page")
		return
	}
	if !a.page.ControlEnabled(dep) {
		a.ui.PrintHint("save at least one recipe first")
		return
	}
	a.page.Navigate(generateListTarget)
}

// reportErr turns workflow refusals into prompt lines.
func (a *cliApp) reportErr(err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		a.ui.PrintUrgent("Please fill in quantity and unit for: " + joinIDs(verr.Missing))
	case errors.Is(err, domain.ErrSubmissionLocked):
		a.ui.PrintHint("still sending, hold on")
	case errors.Is(err, domain.ErrEmptySelection):
		a.ui.PrintHint("nothing checked")
	case errors.Is(err, domain.ErrViewDetached):
		a.ui.PrintHint("this page is gone")
	case errors.Is(err, domain.ErrUnsupported):
		if a.ctl.Config().Shape == workflow.ShapeImmediate {
			a.ui.PrintHint("use 'add <id>' on this page")
		} else {
			a.ui.PrintHint("check items, then 'submit'")
		}
	case errors.Is(err, domain.ErrUnknownItem), errors.Is(err, domain.ErrNotFound):
		a.ui.PrintHint("no such item on this page")
	case errors.Is(err, domain.ErrNotSelected):
		a.ui.PrintHint("check the item first")
	default:
		a.ui.PrintUrgent(err.Error())
	}
}

// ── Output ───────────────────────────────────────────────────────

func (a *cliApp) showPage() {
	st := a.page.State()
	a.ui.PrintHeader(st.Title)
	for _, line := range a.details {
		a.ui.PrintHint(line)
	}
	for _, el := range a.page.Elements() {
		if el.Visible {
			a.ui.PrintItem(a.row(el.Item.ID))
		}
	}
}

func (a *cliApp) row(id domain.ItemID) string {
	var it domain.Item
	for _, x := range a.ctl.Items() {
		if x.ID == id {
			it = x
			break
		}
	}
	box := "[ ]"
	if a.ctl.IsSelected(id) {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %-4s %s", box, id, it.Meta.Name)
	if st, ok := a.ctl.State(id); ok && it.Kind == domain.KindIngredient {
		line += fmt.Sprintf("  qty=%s unit=%s", orDash(st.Quantity.Value), orDash(st.Unit.Value))
		if st.Missing() {
			line += "  (required)"
		}
	}
	return line
}

// pageChanged runs on the loop after every visible page change.
func (a *cliApp) pageChanged() {
	a.showNotices()
	a.publish()
}

// showNotices prints notices the first time they appear.
func (a *cliApp) showNotices() {
	visible := make(map[domain.NoticeID]bool)
	for _, n := range a.page.State().Notices {
		visible[n.ID] = true
		if !a.shownNotice[n.ID] {
			a.ui.PrintNotice(n.Text)
		}
	}
	a.shownNotice = visible
}

func (a *cliApp) showStatus(ctx context.Context) {
	st := a.ctl.Status()
	a.ui.PrintHeader(fmt.Sprintf("%s (%s)", st.Name, st.Shape))
	a.ui.PrintItem(fmt.Sprintf("%d of %d checked, request %s", st.Selected, st.Total, st.Request))
	if len(st.Missing) > 0 {
		a.ui.PrintUrgent("missing fields: " + joinIDs(st.Missing))
	}

	recent, err := a.history.Recent(ctx, 5)
	if err != nil {
		a.log.Error("history: %v", err)
		return
	}
	for _, s := range recent {
		a.ui.PrintHint(fmt.Sprintf("%s  %s  %d items  %s  (%s)",
			s.FinishedAt.Format("15:04:05"), s.RequestID, len(s.IDs), s.Outcome,
			s.FinishedAt.Sub(s.AcceptedAt).Round(time.Millisecond)))
	}
}

func (a *cliApp) showHelp() {
	shape := a.ctl.Config().Shape
	a.ui.PrintHeader("Commands")
	a.ui.PrintHint("  list                  show the page")
	a.ui.PrintHint("  <id> | toggle <id>    check or uncheck a row")
	a.ui.PrintHint("  all                   check every row")
	a.ui.PrintHint("  qty <id> <value>      set the quantity of a checked row")
	a.ui.PrintHint("  unit <id> <value>     set the unit of a checked row")
	if shape == workflow.ShapeImmediate {
		a.ui.PrintHint("  add <id>              send this row now")
	} else {
		a.ui.PrintHint("  submit                send every checked row")
	}
	a.ui.PrintHint("  ok                    dismiss an alert")
	a.ui.PrintHint("  new list              generate a shopping list from saved recipes")
	a.ui.PrintHint("  status                workflow state and recent requests")
	a.ui.PrintHint("  quit                  exit")
}

// publish hands the display a fresh status copy.
func (a *cliApp) publish() {
	st := a.ctl.Status()
	ps := a.page.State()
	ds := display.Status{
		Workflow: st.Name,
		Selected: st.Selected,
		Total:    st.Total,
		Request:  st.Request.String(),
		Busy:     st.Request.Status == domain.RequestInFlight,
		Failed:   st.Request.Status == domain.RequestFailed,
		Location: ps.Location,
	}
	if len(ps.Notices) > 0 {
		ds.Notice = ps.Notices[0].Text
	}
	a.status.Store(&ds)
}

func joinIDs(ids []domain.ItemID) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = string(id)
	}
	return strings.Join(s, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
