package intel

import (
	"context"
	"time"
)

// Discoverer returns headline candidates for one outlet section. It is a
// best-effort signal source: failures surface as an empty slice, never as an
// error, so one unreachable outlet cannot halt a sync cycle.
type Discoverer interface {
	Discover(ctx context.Context, url, outletName string) []Candidate
}

// Summarizer produces a bounded summary for an article link, or a fixed
// sentinel string when a precondition (model readiness, enough text) is not
// met. It never returns an error past this boundary.
type Summarizer interface {
	Summarize(ctx context.Context, link string) string
}

// Registry exposes the outlet grid to the sync engine. List returns a
// point-in-time deep copy; the engine must never iterate live state.
type Registry interface {
	List() []Outlet
}

// SnapshotStore holds the published snapshot. Replace is atomic and has
// exactly one writer (the sync engine); Current may be called concurrently.
type SnapshotStore interface {
	Current() []Item
	Replace(items []Item)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
