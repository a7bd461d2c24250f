package archive

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayeemjb/intelgrid/internal/intel"
	"github.com/nayeemjb/intelgrid/internal/snapshot"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type recordingRecorder struct {
	mu      sync.Mutex
	exports []string
}

func (r *recordingRecorder) RecordExport(_ context.Context, _ time.Time, path string, _ int) {
	r.mu.Lock()
	r.exports = append(r.exports, path)
	r.mu.Unlock()
}

func newTestScheduler(store intel.SnapshotStore) (*Scheduler, *recordingRecorder, *[]string) {
	rec := &recordingRecorder{}
	clock := fixedClock{t: time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)}
	s := New(store, clock, rec, "/tmp/archives", nil, nil)
	var written []string
	s.writeFile = func(path string, items []intel.Item) error {
		written = append(written, path)
		return nil
	}
	return s, rec, &written
}

func TestExportSkipsEmptySnapshot(t *testing.T) {
	store := snapshot.New()
	s, rec, written := newTestScheduler(store)

	s.exportOnce(context.Background())

	assert.Empty(t, *written, "empty snapshot must not produce a file")
	assert.Empty(t, rec.exports)
}

func TestExportWritesDatedFile(t *testing.T) {
	store := snapshot.New()
	store.Replace([]intel.Item{{Title: "headline", Summary: "summary"}})
	s, rec, written := newTestScheduler(store)

	s.exportOnce(context.Background())

	require.Len(t, *written, 1)
	assert.Equal(t, "/tmp/archives/ARCHIVE_20260831_1430.docx", (*written)[0])
	require.Len(t, rec.exports, 1)
	assert.Equal(t, (*written)[0], rec.exports[0])
}

func TestSetIntervalClampsAndResets(t *testing.T) {
	s, _, _ := newTestScheduler(snapshot.New())

	s.SetInterval(0)
	assert.Equal(t, MinInterval, s.Interval())

	s.SetInterval(45)
	assert.Equal(t, 45*time.Minute, s.Interval())

	select {
	case <-s.reset:
	default:
		t.Fatal("SetInterval must queue a ticker reset")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _, _ := newTestScheduler(snapshot.New())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}
