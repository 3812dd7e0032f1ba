package conversation

import (
	"context"
	"fmt"
	"sync"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// ANSI escape codes for terminal formatting.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	red   = "\033[31m"
	cyan  = "\033[36m"
)

// PrintFunc is a function used to print formatted output.
// Matches the signature of both fmt.Printf and display.UI.Printf.
type PrintFunc func(format string, a ...interface{})

// CLINotifier writes notices and alerts to the terminal. Alerts stand in
// for a blocking dialog: they are printed in bold red and counted until
// acknowledged.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc

	mu      sync.Mutex
	pending int
}

// NewCLINotifier creates a stdout-based notifier.
// If printFn is nil, fmt.Printf is used.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &CLINotifier{log: log, printFn: printFn}
}

// Notify prints a normal notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.printFn("%s%s%s%s", cyan, bold, message, reset)
	return nil
}

// NotifyUrgent prints an alert in bold red.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("alert: %s", message)
	n.mu.Lock()
	n.pending++
	n.mu.Unlock()
	n.printFn("%s%s! %s%s", red, bold, message, reset)
	return nil
}

// Acknowledge clears pending alerts and returns how many there were.
func (n *CLINotifier) Acknowledge() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := n.pending
	n.pending = 0
	return c
}
