package crosscheck

import (
	"sync"

	"github.com/rinkstats/crosscheck/pkg/reconcile"
)

// ReportHook is called with every finished game report. Hooks run on the
// goroutine that finished the game; a slow hook slows that game's
// completion, nothing else.
type ReportHook func(report *reconcile.ReconciliationReport)

// SeasonHook is called once with a finished season summary.
type SeasonHook func(summary *reconcile.SeasonSummary)

// hooks manages registered callbacks.
type hooks struct {
	mu       sync.RWMutex
	onReport []ReportHook
	onSeason []SeasonHook
}

// newHooks creates a new hooks instance.
func newHooks() *hooks {
	return &hooks{}
}

// OnReport registers a callback for finished game reports.
func (h *hooks) OnReport(fn ReportHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReport = append(h.onReport, fn)
}

// OnSeason registers a callback for finished season summaries.
func (h *hooks) OnSeason(fn SeasonHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSeason = append(h.onSeason, fn)
}

// triggerReport invokes every report hook in registration order.
func (h *hooks) triggerReport(report *reconcile.ReconciliationReport) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onReport {
		fn(report)
	}
}

// triggerSeason invokes every season hook in registration order.
func (h *hooks) triggerSeason(summary *reconcile.SeasonSummary) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onSeason {
		fn(summary)
	}
}
