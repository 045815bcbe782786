// Package notifier dispatches terminated-session reports to the collector
// sink without ever blocking the request path.
package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/scamhive/honeypot-service/internal/core/collector"
	"github.com/scamhive/honeypot-service/internal/domain/models"
)

// DeliveryRecorder observes delivery outcomes. *metrics.Metrics satisfies it.
type DeliveryRecorder interface {
	RecordDelivery(outcome string)
}

// Config holds the dispatcher configuration.
type Config struct {
	Sink       collector.Sink
	Workers    int
	BufferSize int
	// MinMessages is the minimum scammer-message count for a report to be
	// worth delivering. Shorter sessions are logged and skipped.
	MinMessages int
	Recorder    DeliveryRecorder
	Logger      zerolog.Logger
}

// Dispatcher is a buffered fire-and-forget queue in front of the collector
// sink. Enqueue never blocks; delivery failures are logged and counted but
// never propagated.
type Dispatcher struct {
	sink        collector.Sink
	reports     chan *models.SessionReport
	minMessages int
	recorder    DeliveryRecorder
	logger      zerolog.Logger
	workers     int

	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	stopped bool
	mu      sync.Mutex
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(cfg Config) *Dispatcher {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 2
	}
	buffer := cfg.BufferSize
	if buffer <= 0 {
		buffer = 64
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		sink:        cfg.Sink,
		reports:     make(chan *models.SessionReport, buffer),
		minMessages: cfg.MinMessages,
		recorder:    cfg.Recorder,
		logger:      cfg.Logger.With().Str("component", "notifier").Logger(),
		workers:     workers,
		ctx:         ctx,
		cancel:      cancel,
	}
	return d
}

// Start launches the worker goroutines. Calling Start twice is a no-op.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started {
		return
	}
	d.started = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Enqueue schedules a report for delivery and returns immediately. When the
// queue is full, or the dispatcher has been stopped, the report is dropped
// and counted; the caller is never blocked or failed.
func (d *Dispatcher) Enqueue(report *models.SessionReport) {
	if report.MessageCount < d.minMessages {
		d.logger.Debug().
			Str("session_id", report.SessionID).
			Int("message_count", report.MessageCount).
			Msg("report below callback threshold, skipping delivery")
		d.record("skipped")
		return
	}

	// The stopped check and the send share the mutex with Stop, so a send can
	// never race the channel close. The send is non-blocking, so holding the
	// lock across it is cheap.
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		d.logger.Warn().
			Str("session_id", report.SessionID).
			Msg("notifier stopped, dropping report")
		d.record("dropped")
		return
	}

	select {
	case d.reports <- report:
	default:
		d.logger.Warn().
			Str("session_id", report.SessionID).
			Msg("notifier queue full, dropping report")
		d.record("dropped")
	}
}

// Stop drains the queue and waits for in-flight deliveries. Calling Stop
// twice, or before Start, is a no-op. After Stop, Enqueue drops instead of
// delivering.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.started || d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	close(d.reports)
	d.wg.Wait()
	d.cancel()
}

// QueueSize returns the number of undelivered reports in the buffer.
func (d *Dispatcher) QueueSize() int {
	return len(d.reports)
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for report := range d.reports {
		ctx, cancel := context.WithTimeout(d.ctx, 30*time.Second)
		err := d.sink.Deliver(ctx, report)
		cancel()

		if err != nil {
			d.logger.Error().
				Err(err).
				Str("report_id", report.ReportID).
				Str("session_id", report.SessionID).
				Msg("report delivery failed")
			d.record("failed")
			continue
		}

		d.logger.Info().
			Str("report_id", report.ReportID).
			Str("session_id", report.SessionID).
			Str("termination_reason", string(report.TerminationReason)).
			Msg("report delivered")
		d.record("delivered")
	}
}

func (d *Dispatcher) record(outcome string) {
	if d.recorder != nil {
		d.recorder.RecordDelivery(outcome)
	}
}
