package invalidation

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel stale-view hints are published on.
const DefaultChannel = "socially:views:stale"

// RedisSink publishes each event as a JSON message on a pub/sub channel.
type RedisSink struct {
	client  *redis.Client
	channel string
}

func NewRedisSink(client *redis.Client, channel string) *RedisSink {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisSink{client: client, channel: channel}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Send(ctx context.Context, events []Event) error {
	pipe := s.client.Pipeline()
	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		pipe.Publish(ctx, s.channel, payload)
	}
	_, err := pipe.Exec(ctx)
	return err
}
