package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/talentloop/internal/config"
	"github.com/abhisek/talentloop/internal/lifecycle"
)

// Publisher is the subset of *redis.Client used by RedisSink.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisSink publishes events as JSON on "<channel>:<kind>" so subscribers
// can follow one record kind or pattern-subscribe to all of them.
type RedisSink struct {
	client  Publisher
	channel string
}

// NewRedisSink creates a sink publishing through client under channel.
func NewRedisSink(client Publisher, channel string) *RedisSink {
	return &RedisSink{client: client, channel: channel}
}

// NewRedisClient creates a client from cfg.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Channel returns the channel events of kind are published on.
func (s *RedisSink) Channel(kind lifecycle.Kind) string {
	return fmt.Sprintf("%s:%s", s.channel, kind)
}

// Publish sends ev to Redis.
func (s *RedisSink) Publish(ctx context.Context, ev lifecycle.Event) error {
	payload, err := json.Marshal(NewMessage(ev))
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	channel := s.Channel(ev.Kind)
	if err := s.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	return nil
}
