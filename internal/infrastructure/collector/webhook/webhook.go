// Package webhook provides the HTTP POST collector sink.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/scamhive/honeypot-service/internal/domain/models"
	"github.com/scamhive/honeypot-service/internal/pkg/retry"
)

// Config holds webhook sink configuration.
type Config struct {
	URL     string
	Timeout time.Duration
	Retry   retry.Config
}

// Sink delivers session reports by POSTing JSON to a collector URL.
type Sink struct {
	url        string
	httpClient *http.Client
	retryCfg   retry.Config
}

// NewSink creates a new webhook sink.
func NewSink(cfg Config) (*Sink, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("webhook URL is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	retryCfg := cfg.Retry
	if retryCfg.MaxAttempts == 0 {
		retryCfg = retry.DefaultConfig()
	}

	return &Sink{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: timeout},
		retryCfg:   retryCfg,
	}, nil
}

// Deliver POSTs the report to the collector URL with exponential backoff.
func (s *Sink) Deliver(ctx context.Context, report *models.SessionReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	return retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Delivery-ID", report.ReportID)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to deliver report: %w", err)
		}
		defer func() {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}()

		if resp.StatusCode >= http.StatusMultipleChoices {
			return fmt.Errorf("collector returned status %d", resp.StatusCode)
		}
		return nil
	})
}

// Ping checks whether the collector URL is reachable. Any HTTP response
// counts as reachable; only transport errors fail the check.
func (s *Sink) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.url, nil)
	if err != nil {
		return err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("collector unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}

// Close releases sink resources.
func (s *Sink) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}
