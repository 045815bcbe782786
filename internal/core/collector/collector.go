// Package collector defines the terminated-session collector sink interface.
package collector

import (
	"context"

	"github.com/scamhive/honeypot-service/internal/domain/models"
)

// Sink delivers terminated-session reports to an external collector. The
// engine never depends on delivery succeeding; sink errors are observed and
// dropped by the notifier.
type Sink interface {
	// Deliver hands a session report to the collector.
	Deliver(ctx context.Context, report *models.SessionReport) error

	// Ping checks whether the collector backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the sink.
	Close() error
}
