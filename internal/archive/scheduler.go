// Package archive periodically exports the published snapshot to a dossier
// file. It ticks independently of the sync engine and is reconfigurable at
// runtime.
package archive

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nayeemjb/intelgrid/internal/intel"
	"github.com/nayeemjb/intelgrid/internal/metrics"
	"github.com/nayeemjb/intelgrid/internal/oplog"
	"github.com/nayeemjb/intelgrid/internal/report"
)

// Interval bounds for the export timer.
const (
	DefaultInterval = 15 * time.Minute
	MinInterval     = 1 * time.Minute
)

// ExportRecorder persists export records; failures are the recorder's
// problem.
type ExportRecorder interface {
	RecordExport(ctx context.Context, at time.Time, path string, items int)
}

// Scheduler reads the current snapshot on every tick and writes it to disk.
// An empty snapshot is skipped, not an error.
type Scheduler struct {
	store    intel.SnapshotStore
	clock    intel.Clock
	recorder ExportRecorder
	ops      *oplog.Log
	logger   *zap.Logger
	dir      string

	mu       sync.Mutex
	interval time.Duration
	reset    chan struct{}

	// writeFile is swappable in tests to avoid touching disk.
	writeFile func(path string, items []intel.Item) error
}

// New builds a Scheduler that writes archives into dir. recorder may be nil.
func New(store intel.SnapshotStore, clock intel.Clock, recorder ExportRecorder, dir string, ops *oplog.Log, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		store:     store,
		clock:     clock,
		recorder:  recorder,
		ops:       ops,
		logger:    logger,
		dir:       dir,
		interval:  DefaultInterval,
		reset:     make(chan struct{}, 1),
		writeFile: report.WriteArchive,
	}
}

// Interval returns the current export interval.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// SetInterval reconfigures the timer, clamped to the one-minute floor. The
// running ticker is reset so the new interval is effective immediately.
func (s *Scheduler) SetInterval(minutes int) {
	d := time.Duration(minutes) * time.Minute
	if d < MinInterval {
		d = MinInterval
	}
	s.mu.Lock()
	s.interval = d
	s.mu.Unlock()
	select {
	case s.reset <- struct{}{}:
	default:
	}
	s.note("archive interval set to %d mins.", int(d.Minutes()))
}

// Run blocks, exporting on every tick until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.reset:
			ticker.Reset(s.Interval())
		case <-ticker.C:
			s.exportOnce(ctx)
		}
	}
}

// exportOnce writes the current snapshot to a dated file; empty snapshots
// are skipped.
func (s *Scheduler) exportOnce(ctx context.Context) {
	items := s.store.Current()
	if len(items) == 0 {
		metrics.CountArchive(false)
		return
	}
	now := s.clock.Now()
	path := filepath.Join(s.dir, report.ArchiveFilename(now))
	s.note("archiver: auto-generating periodic dossier...")
	if err := s.writeFile(path, items); err != nil {
		s.logger.Error("archive export failed", zap.String("path", path), zap.Error(err))
		return
	}
	metrics.CountArchive(true)
	if s.recorder != nil {
		s.recorder.RecordExport(ctx, now, path, len(items))
	}
}

func (s *Scheduler) note(format string, args ...any) {
	if s.ops != nil {
		s.ops.Append(format, args...)
	}
}
