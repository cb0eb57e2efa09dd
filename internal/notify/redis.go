package notify

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisSender publishes alerts on a pub/sub channel so other services can
// react to them.
type RedisSender struct {
	client  *redis.Client
	channel string
}

func NewRedisSender(client *redis.Client, channel string) *RedisSender {
	return &RedisSender{client: client, channel: channel}
}

func (s *RedisSender) Send(ctx context.Context, msg Message) (string, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return "", deliveryError("encode alert: %v", err)
	}
	receivers, err := s.client.Publish(ctx, s.channel, payload).Result()
	if err != nil {
		return "", deliveryError("redis publish: %v", err)
	}
	return fmt.Sprintf("published to %s (%d receivers)", s.channel, receivers), nil
}
