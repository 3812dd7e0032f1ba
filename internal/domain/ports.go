package domain

import (
	"context"
	"net/url"
	"time"
)

// Catalog provides recipes and shopping lists to render.
type Catalog interface {
	List(ctx context.Context) ([]RecipeSummary, error)
	Get(ctx context.Context, id string) (*Recipe, error)
	Search(ctx context.Context, query string) ([]RecipeSummary, error)
	ShoppingList(ctx context.Context, id string) (*ShoppingList, error)
}

// Poster sends one form-encoded POST and returns the response body.
type Poster interface {
	PostForm(ctx context.Context, path string, form url.Values) ([]byte, error)
}

// View is the rendered page as seen by the workflow: elements addressed by
// item id, controls, inline notices, blocking alerts and the location.
type View interface {
	ShowNotice(n Notice)
	HideNotice(id NoticeID)
	NoticeVisible(id NoticeID) bool
	HideElement(id ItemID)
	ElementVisible(id ItemID) bool
	SetControlEnabled(id ControlID, enabled bool)
	ControlEnabled(id ControlID) bool
	Alert(message string)
	Navigate(target string)
	// Detached reports whether the view has navigated away.
	Detached() bool
}

// Scheduler runs fn once after d on the same loop that handles UI events.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Event is the user action that triggered a submit.
type Event interface {
	PreventDefault()
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Notifier delivers messages to the user. Urgent messages are the
// terminal stand-in for a blocking alert.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
