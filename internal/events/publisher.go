package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/net2mulu/signature-gym/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisPublisher appends events to Redis streams
type RedisPublisher struct {
	client *redis.Client
	maxLen int64
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client, maxLen: 10000}
}

func (p *RedisPublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			"type":  eventType,
			"event": eventJSON,
		},
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// LogPublisher writes events to the application log
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	p.log.WithFields(map[string]interface{}{
		"stream": stream,
		"event":  eventType,
		"data":   data,
	}).Info("Event published")
	return nil
}
