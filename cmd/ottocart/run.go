package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/hammamikhairi/ottocart/internal/backend"
	"github.com/hammamikhairi/ottocart/internal/conversation"
	"github.com/hammamikhairi/ottocart/internal/display"
	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/page"
	"github.com/hammamikhairi/ottocart/internal/storage"
	"github.com/hammamikhairi/ottocart/internal/submit"
	"github.com/hammamikhairi/ottocart/internal/timer"
	"github.com/hammamikhairi/ottocart/internal/workflow"
)

// pageDef is one rendered page and the workflow bound to it.
type pageDef struct {
	variant  workflow.Variant
	title    string
	location string
	rows     []page.Attrs
	redirect string
	listID   string
	details  []string
}

func (e *env) runPage(ctx context.Context, pd pageDef) error {
	ctx, cancel := context.WithCancel(contextOrBackground(ctx))
	defer cancel()

	log := e.log
	items, errs := page.ParseItems(pd.rows)
	for _, err := range errs {
		log.Warn("skipping element: %v", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("%s: nothing to show", pd.title)
	}

	client, err := backend.NewClient(e.cfg.BaseURL, log.Named("backend"),
		backend.WithHTTPTimeout(e.cfg.HTTPTimeout),
	)
	if err != nil {
		return err
	}

	var status atomic.Pointer[display.Status]
	status.Store(&display.Status{})
	ui := display.NewUI(func() display.Status { return *status.Load() })

	notifier := conversation.NewCLINotifier(log, ui.Printf)

	// app is assigned before the loop starts; the page only changes on it.
	var app *cliApp
	pageOpts := []page.Option{page.WithOnChange(func() { app.pageChanged() })}
	if dep := workflow.DependentControl(pd.variant); dep != "" {
		pageOpts = append(pageOpts, page.WithControl(dep, false))
	}
	view := page.New(pd.title, pd.location, items, notifier, log.Named("page"), pageOpts...)

	dispatcher := timer.New(log.Named("timer"))
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	redirect := pd.redirect
	if redirect == "" {
		redirect = e.cfg.RedirectFor(pd.variant)
	}
	listID := pd.listID
	if listID == "" {
		listID = e.cfg.ListID
	}

	ctl, err := workflow.New(pd.variant, items, workflow.Deps{
		Poster:    client,
		View:      view,
		Scheduler: dispatcher,
		Log:       log,
	},
		workflow.WithPolicy(e.cfg.Policy(pd.variant)),
		workflow.WithRedirect(redirect),
		workflow.WithListID(listID),
		workflow.WithNoticeDelay(e.cfg.NoticeDelay),
	)
	if err != nil {
		return err
	}

	app = &cliApp{
		ctl:         ctl,
		page:        view,
		parser:      conversation.NewKeywordParser(log),
		notifier:    notifier,
		history:     storage.NewMemoryStore(log.Named("history")),
		timers:      dispatcher,
		ui:          ui,
		log:         log,
		status:      &status,
		completions: make(chan submit.Completion, 1),
		accepted:    make(map[string]acceptance),
		details:     pd.details,
		shownNotice: make(map[domain.NoticeID]bool),
	}

	fmt.Println(display.RenderBanner(string(pd.variant) + " @ " + client.BaseURL()))
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal; blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
		return err
	}
	cancel()

	if view.Detached() {
		fmt.Printf("navigated to %s%s\n", client.BaseURL(), view.Location())
	}
	return nil
}
