// Package page models the rendered view a workflow acts on: elements
// addressed by item id, enable-able controls, inline notices, blocking
// alerts and the current location.
package page

import (
	"context"
	"sort"
	"sync"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

// Compile-time interface check.
var _ domain.View = (*Page)(nil)

// Option configures a page.
type Option func(*Page)

// WithControl registers a control with its initial enabled flag.
func WithControl(id domain.ControlID, enabled bool) Option {
	return func(p *Page) { p.controls[id] = enabled }
}

// WithOnChange registers a hook called after every visible change.
func WithOnChange(fn func()) Option {
	return func(p *Page) { p.onChange = fn }
}

// Element is one rendered item.
type Element struct {
	Item    domain.Item
	Visible bool
}

// State is a copy of the page for rendering.
type State struct {
	Title    string
	Location string
	Detached bool
	Notices  []domain.Notice
	Visible  int
	Total    int
}

// Page is safe for concurrent use; the display reads it while the event
// loop writes it.
type Page struct {
	mu       sync.RWMutex
	title    string
	location string
	detached bool
	order    []domain.ItemID
	elements map[domain.ItemID]*Element
	controls map[domain.ControlID]bool
	notices  map[domain.NoticeID]domain.Notice
	alerts   []string

	notifier domain.Notifier
	log      *logger.Logger
	onChange func()
}

// New creates a page at location showing items.
func New(title, location string, items []domain.Item, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Page {
	p := &Page{
		title:    title,
		location: location,
		elements: make(map[domain.ItemID]*Element, len(items)),
		controls: make(map[domain.ControlID]bool),
		notices:  make(map[domain.NoticeID]domain.Notice),
		notifier: notifier,
		log:      log,
	}
	for _, it := range items {
		if _, dup := p.elements[it.ID]; dup {
			continue
		}
		p.order = append(p.order, it.ID)
		p.elements[it.ID] = &Element{Item: it, Visible: true}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Page) changed() {
	if p.onChange != nil {
		p.onChange()
	}
}

// ShowNotice displays an inline notice, replacing one with the same id.
func (p *Page) ShowNotice(n domain.Notice) {
	p.mu.Lock()
	p.notices[n.ID] = n
	p.mu.Unlock()
	p.log.Debug("notice %s shown: %s", n.ID, n.Text)
	p.changed()
}

// HideNotice hides a notice. Hiding a hidden notice is a no-op.
func (p *Page) HideNotice(id domain.NoticeID) {
	p.mu.Lock()
	_, ok := p.notices[id]
	delete(p.notices, id)
	p.mu.Unlock()
	if ok {
		p.log.Debug("notice %s hidden", id)
		p.changed()
	}
}

// NoticeVisible reports whether a notice is showing.
func (p *Page) NoticeVisible(id domain.NoticeID) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.notices[id]
	return ok
}

// HideElement hides the element tagged with id. Unknown ids are ignored.
func (p *Page) HideElement(id domain.ItemID) {
	p.mu.Lock()
	el, ok := p.elements[id]
	if ok {
		el.Visible = false
	}
	p.mu.Unlock()
	if !ok {
		p.log.Warn("hide: no element tagged %s", id)
		return
	}
	p.changed()
}

// ElementVisible reports whether the element tagged with id is showing.
func (p *Page) ElementVisible(id domain.ItemID) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	el, ok := p.elements[id]
	return ok && el.Visible
}

// SetControlEnabled enables or disables a control, registering it if new.
func (p *Page) SetControlEnabled(id domain.ControlID, enabled bool) {
	p.mu.Lock()
	p.controls[id] = enabled
	p.mu.Unlock()
	p.changed()
}

// ControlEnabled reports whether a control can be used. Controls that were
// never registered are enabled.
func (p *Page) ControlEnabled(id domain.ControlID) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	enabled, ok := p.controls[id]
	return !ok || enabled
}

// Alert shows a blocking message through the urgent notifier.
func (p *Page) Alert(message string) {
	p.mu.Lock()
	p.alerts = append(p.alerts, message)
	p.mu.Unlock()
	if p.notifier != nil {
		if err := p.notifier.NotifyUrgent(context.Background(), message); err != nil {
			p.log.Error("alert: %v", err)
		}
	}
}

// Alerts returns every alert shown so far.
func (p *Page) Alerts() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.alerts))
	copy(out, p.alerts)
	return out
}

// Navigate moves to target and detaches the page. Later view updates are
// meaningless but harmless.
func (p *Page) Navigate(target string) {
	p.mu.Lock()
	p.location = target
	p.detached = true
	p.mu.Unlock()
	p.log.Info("navigating to %s", target)
	p.changed()
}

// Detached reports whether the page has navigated away.
func (p *Page) Detached() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.detached
}

// Location returns the current location.
func (p *Page) Location() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.location
}

// Elements returns the visible elements in render order.
func (p *Page) Elements() []Element {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []Element
	for _, id := range p.order {
		if el := p.elements[id]; el.Visible {
			out = append(out, *el)
		}
	}
	return out
}

// State returns a copy of the page for rendering.
func (p *Page) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	st := State{
		Title:    p.title,
		Location: p.location,
		Detached: p.detached,
		Total:    len(p.order),
	}
	for _, el := range p.elements {
		if el.Visible {
			st.Visible++
		}
	}
	for _, n := range p.notices {
		st.Notices = append(st.Notices, n)
	}
	sort.Slice(st.Notices, func(i, j int) bool { return st.Notices[i].ID < st.Notices[j].ID })
	return st
}

// Event is a page-level user action. PreventDefault is recorded so tests
// and callers can see the workflow took ownership of it.
type Event struct {
	Name      string
	prevented bool
}

// Click returns an event for a button press.
func Click(control domain.ControlID) *Event { return &Event{Name: "click:" + string(control)} }

// FormSubmit returns an event for a form submission.
func FormSubmit(form string) *Event { return &Event{Name: "submit:" + form} }

// PreventDefault marks the event as handled by the workflow.
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.prevented }
