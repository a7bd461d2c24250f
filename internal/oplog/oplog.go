// Package oplog keeps a bounded ring of human-readable trace lines for the
// operations view. Every subsystem appends here; the only ordering guarantee
// is append order, and the oldest line is evicted once capacity is reached.
package oplog

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultCapacity bounds the ring when no capacity is given.
const DefaultCapacity = 30

// Log is a fixed-capacity append-only ring of timestamped lines. Appends are
// mirrored to the structured logger so operators get both views.
type Log struct {
	mu     sync.Mutex
	lines  []string
	cap    int
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Log with the given capacity (DefaultCapacity if <= 0).
func New(capacity int, logger *zap.Logger) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{
		cap:    capacity,
		logger: logger,
		now:    time.Now,
	}
}

// Append formats a line, stamps it, and records it, evicting the oldest line
// when the ring is full.
func (l *Log) Append(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	entry := fmt.Sprintf("[%s] %s", l.now().Format("15:04:05"), msg)
	l.lines = append(l.lines, entry)
	if len(l.lines) > l.cap {
		l.lines = l.lines[1:]
	}
	l.mu.Unlock()
	l.logger.Info(msg)
}

// Lines returns a copy of the current ring contents in append order.
func (l *Log) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
