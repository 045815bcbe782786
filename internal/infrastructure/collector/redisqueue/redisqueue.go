// Package redisqueue provides the Redis list collector sink.
package redisqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scamhive/honeypot-service/internal/domain/models"
)

// Config holds Redis connection configuration for the queue sink.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
	// QueueKey is the list the collector drains.
	QueueKey string
	// MaxLength caps the list; oldest reports are trimmed first. Zero means
	// unbounded.
	MaxLength int64
}

// Sink pushes session reports onto a Redis list for the external collector
// to drain.
type Sink struct {
	client    *redis.Client
	queueKey  string
	maxLength int64
}

// NewSink creates a new Redis queue sink and verifies the connection.
func NewSink(cfg Config) (*Sink, error) {
	if cfg.QueueKey == "" {
		return nil, fmt.Errorf("queue key is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Sink{
		client:    client,
		queueKey:  cfg.QueueKey,
		maxLength: cfg.MaxLength,
	}, nil
}

// Deliver RPUSHes the report as JSON and trims the list to its cap.
func (s *Sink) Deliver(ctx context.Context, report *models.SessionReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.queueKey, payload)
	if s.maxLength > 0 {
		pipe.LTrim(ctx, s.queueKey, -s.maxLength, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to enqueue report: %w", err)
	}
	return nil
}

// Ping checks if the Redis connection is alive.
func (s *Sink) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *Sink) Close() error {
	return s.client.Close()
}

// QueueLength returns the number of undelivered reports on the queue.
func (s *Sink) QueueLength(ctx context.Context) (int64, error) {
	return s.client.LLen(ctx, s.queueKey).Result()
}
