// Package engine drives the discover/summarize/publish cycle.
//
// The engine is a single sequential loop: outlets, sections, and candidates
// are processed one at a time, which bounds outbound request concurrency to
// one by design. Each cycle ends in exactly one atomic snapshot publish.
package engine

import (
	"context"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/nayeemjb/intelgrid/internal/intel"
	"github.com/nayeemjb/intelgrid/internal/metrics"
	"github.com/nayeemjb/intelgrid/internal/oplog"
)

// Interval bounds for the cycle wait.
const (
	DefaultInterval = 5 * time.Minute
	MinInterval     = 1 * time.Minute
)

// CycleRecorder persists completed cycle stats. Recording failures are the
// recorder's problem; the engine never checks them.
type CycleRecorder interface {
	RecordCycle(ctx context.Context, started, finished time.Time, items int)
}

// Engine owns snapshot writes. It loops IDLE -> RUNNING -> WAITING until the
// context is cancelled.
type Engine struct {
	registry  intel.Registry
	discover  intel.Discoverer
	summarize intel.Summarizer
	store     intel.SnapshotStore
	clock     intel.Clock
	recorder  CycleRecorder
	ops       *oplog.Log
	logger    *zap.Logger

	mu       sync.Mutex
	interval time.Duration

	// trigger collapses any number of ForceSync calls between two wakes
	// into a single extra cycle.
	trigger chan struct{}
}

// New builds an Engine. recorder may be nil.
func New(
	registry intel.Registry,
	discover intel.Discoverer,
	summarize intel.Summarizer,
	store intel.SnapshotStore,
	clock intel.Clock,
	recorder CycleRecorder,
	ops *oplog.Log,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		registry:  registry,
		discover:  discover,
		summarize: summarize,
		store:     store,
		clock:     clock,
		recorder:  recorder,
		ops:       ops,
		logger:    logger,
		interval:  DefaultInterval,
		trigger:   make(chan struct{}, 1),
	}
}

// Interval returns the current cycle interval.
func (e *Engine) Interval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interval
}

// SetInterval updates the cycle interval, clamped to the one-minute floor.
// It takes effect on the next WAITING entry, not retroactively.
func (e *Engine) SetInterval(minutes int) {
	d := time.Duration(minutes) * time.Minute
	if d < MinInterval {
		d = MinInterval
	}
	e.mu.Lock()
	e.interval = d
	e.mu.Unlock()
	e.note("sync interval set to %d mins.", int(d.Minutes()))
}

// ForceSync cancels the remaining WAITING time so the next cycle starts
// immediately. An in-flight cycle is never interrupted. The call is
// idempotent: repeated fires before the next wake collapse to one.
func (e *Engine) ForceSync() {
	e.note("manual sync override activated.")
	select {
	case e.trigger <- struct{}{}:
	default:
	}
}

// Run blocks, alternating RUNNING cycles and bounded WAITING periods until
// ctx is cancelled.
func (e *Engine) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		e.runCycle(ctx)
		if !e.wait(ctx) {
			return
		}
	}
}

// wait blocks until the interval elapses or a manual trigger fires,
// whichever comes first. Receiving from the trigger channel is what clears
// it, so a consumed trigger cannot immediately re-fire.
func (e *Engine) wait(ctx context.Context) bool {
	timer := time.NewTimer(e.Interval())
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	case <-e.trigger:
		return true
	}
}

// runCycle processes a point-in-time copy of the registry and publishes the
// result. Per-item failures degrade to sentinels or empty sections; only
// context cancellation abandons the buffer unpublished.
func (e *Engine) runCycle(ctx context.Context) {
	started := e.clock.Now()
	e.note("sync engine: probing outlet grid...")

	outlets := e.registry.List()
	var buf []intel.Item

	for _, outlet := range outlets {
		for _, sector := range sectionOrder(outlet) {
			if ctx.Err() != nil {
				e.logger.Info("cycle abandoned", zap.Error(ctx.Err()))
				return
			}
			url := outlet.Sections[sector]
			e.note("intercepting: %s -> %s", outlet.Name, sector)

			candidates := e.discover.Discover(ctx, url, outlet.Name)
			top := candidates
			if len(top) > intel.SummarizeCap {
				top = top[:intel.SummarizeCap]
			}
			for _, cand := range top {
				e.note("synthesizing: %s...", truncate(cand.Title, 40))
				buf = append(buf, intel.Item{
					Title:        cand.Title,
					Link:         cand.Link,
					Source:       outlet.Name,
					Sector:       sector,
					Type:         outlet.Type,
					Summary:      e.summarize.Summarize(ctx, cand.Link),
					DiscoveredAt: e.clock.Now(),
				})
			}
		}
	}

	e.store.Replace(buf)
	finished := e.clock.Now()
	e.note("sync engine: cache refreshed. %d packets ready.", len(buf))
	metrics.ObserveCycle(finished.Sub(started), len(buf))
	if e.recorder != nil {
		e.recorder.RecordCycle(ctx, started, finished, len(buf))
	}
}

// sectionOrder yields an outlet's sectors in a stable order: the known
// national sectors first, anything else alphabetically after.
func sectionOrder(o intel.Outlet) []string {
	var order []string
	seen := make(map[string]bool)
	for _, sector := range intel.NationalSectors {
		if _, ok := o.Sections[sector]; ok {
			order = append(order, sector)
			seen[sector] = true
		}
	}
	var rest []string
	for sector := range o.Sections {
		if !seen[sector] {
			rest = append(rest, sector)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func (e *Engine) note(format string, args ...any) {
	if e.ops != nil {
		e.ops.Append(format, args...)
	}
}
