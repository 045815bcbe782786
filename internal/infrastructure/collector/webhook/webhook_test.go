package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamhive/honeypot-service/internal/domain/models"
	"github.com/scamhive/honeypot-service/internal/pkg/retry"
)

func fastRetry() retry.Config {
	return retry.Config{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	}
}

func sampleReport() *models.SessionReport {
	return &models.SessionReport{
		ReportID:          "r-1",
		SessionID:         "s-1",
		TerminationReason: models.ReasonMaxMessages,
		MessageCount:      20,
	}
}

func TestNewSink_RequiresURL(t *testing.T) {
	_, err := NewSink(Config{})
	assert.Error(t, err)
}

func TestDeliver_PostsReport(t *testing.T) {
	var gotDeliveryID atomic.Value
	var gotBody atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDeliveryID.Store(r.Header.Get("X-Delivery-ID"))

		var report models.SessionReport
		require.NoError(t, json.NewDecoder(r.Body).Decode(&report))
		gotBody.Store(report)

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink, err := NewSink(Config{URL: srv.URL, Retry: fastRetry()})
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Deliver(context.Background(), sampleReport()))

	assert.Equal(t, "r-1", gotDeliveryID.Load())
	report := gotBody.Load().(models.SessionReport)
	assert.Equal(t, "s-1", report.SessionID)
	assert.Equal(t, models.ReasonMaxMessages, report.TerminationReason)
}

func TestDeliver_RetriesUntilSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink, err := NewSink(Config{URL: srv.URL, Retry: fastRetry()})
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Deliver(context.Background(), sampleReport()))
	assert.Equal(t, int32(3), calls.Load())
}

func TestDeliver_FailsAfterExhaustedRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink, err := NewSink(Config{URL: srv.URL, Retry: fastRetry()})
	require.NoError(t, err)
	defer sink.Close()

	err = sink.Deliver(context.Background(), sampleReport())
	assert.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Even an error status means the collector is reachable.
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))

	sink, err := NewSink(Config{URL: srv.URL, Retry: fastRetry()})
	require.NoError(t, err)
	defer sink.Close()

	assert.NoError(t, sink.Ping(context.Background()))

	srv.Close()
	assert.Error(t, sink.Ping(context.Background()))
}
