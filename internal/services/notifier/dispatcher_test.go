package notifier_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamhive/honeypot-service/internal/domain/models"
	"github.com/scamhive/honeypot-service/internal/services/notifier"
)

// fakeSink records delivered reports.
type fakeSink struct {
	mu        sync.Mutex
	delivered []*models.SessionReport
	err       error
}

func (f *fakeSink) Deliver(_ context.Context, report *models.SessionReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.delivered = append(f.delivered, report)
	return nil
}

func (f *fakeSink) Ping(context.Context) error { return nil }
func (f *fakeSink) Close() error               { return nil }

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.delivered)
}

type countingRecorder struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (r *countingRecorder) RecordDelivery(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = make(map[string]int)
	}
	r.outcomes[outcome]++
}

func (r *countingRecorder) get(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomes[outcome]
}

func report(sessionID string, messageCount int) *models.SessionReport {
	return &models.SessionReport{
		ReportID:     "r-" + sessionID,
		SessionID:    sessionID,
		MessageCount: messageCount,
	}
}

func TestDispatcher_DeliversReports(t *testing.T) {
	sink := &fakeSink{}
	rec := &countingRecorder{}

	d := notifier.NewDispatcher(notifier.Config{
		Sink:        sink,
		Workers:     1,
		BufferSize:  8,
		MinMessages: 3,
		Recorder:    rec,
		Logger:      zerolog.Nop(),
	})
	d.Start()

	d.Enqueue(report("s1", 5))
	d.Enqueue(report("s2", 10))
	d.Stop()

	require.Equal(t, 2, sink.count())
	assert.Equal(t, 2, rec.get("delivered"))
}

func TestDispatcher_SkipsShortSessions(t *testing.T) {
	sink := &fakeSink{}
	rec := &countingRecorder{}

	d := notifier.NewDispatcher(notifier.Config{
		Sink:        sink,
		Workers:     1,
		BufferSize:  8,
		MinMessages: 3,
		Recorder:    rec,
		Logger:      zerolog.Nop(),
	})
	d.Start()

	d.Enqueue(report("short", 2))
	d.Stop()

	assert.Equal(t, 0, sink.count())
	assert.Equal(t, 1, rec.get("skipped"))
}

func TestDispatcher_FailuresAreIsolated(t *testing.T) {
	sink := &fakeSink{err: errors.New("collector down")}
	rec := &countingRecorder{}

	d := notifier.NewDispatcher(notifier.Config{
		Sink:        sink,
		Workers:     1,
		BufferSize:  8,
		MinMessages: 0,
		Recorder:    rec,
		Logger:      zerolog.Nop(),
	})
	d.Start()

	// Enqueue never blocks or errors, whatever the sink does.
	d.Enqueue(report("s1", 5))
	d.Stop()

	assert.Equal(t, 0, sink.count())
	assert.Equal(t, 1, rec.get("failed"))
}

func TestDispatcher_EnqueueAfterStopDropsWithoutPanic(t *testing.T) {
	sink := &fakeSink{}
	rec := &countingRecorder{}

	d := notifier.NewDispatcher(notifier.Config{
		Sink:        sink,
		Workers:     1,
		BufferSize:  8,
		MinMessages: 0,
		Recorder:    rec,
		Logger:      zerolog.Nop(),
	})
	d.Start()
	d.Stop()

	d.Enqueue(report("late", 5))

	assert.Equal(t, 0, sink.count())
	assert.Equal(t, 1, rec.get("dropped"))
}

func TestDispatcher_EnqueueNonBlockingWhenFull(t *testing.T) {
	sink := &fakeSink{}
	rec := &countingRecorder{}

	// Not started: nothing drains the queue.
	d := notifier.NewDispatcher(notifier.Config{
		Sink:        sink,
		Workers:     1,
		BufferSize:  1,
		MinMessages: 0,
		Recorder:    rec,
		Logger:      zerolog.Nop(),
	})

	done := make(chan struct{})
	go func() {
		d.Enqueue(report("s1", 5))
		d.Enqueue(report("s2", 5))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	assert.Equal(t, 1, d.QueueSize())
	assert.Equal(t, 1, rec.get("dropped"))
}
