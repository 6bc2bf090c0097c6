package queue

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/soltixdb/revenue/internal/utils"
)

// RedisPublisher appends messages to Redis Streams, one stream per subject
// named "<stream>:<subject>".
type RedisPublisher struct {
	client *redis.Client
	stream string
}

// NewRedisPublisher connects to url and verifies the connection
func NewRedisPublisher(url, stream string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		opts = &redis.Options{Addr: url}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), utils.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newRedisPublisherWithClient(client, stream), nil
}

func newRedisPublisherWithClient(client *redis.Client, stream string) *RedisPublisher {
	if stream == "" {
		stream = "revenue"
	}
	return &RedisPublisher{client: client, stream: stream}
}

func (p *RedisPublisher) streamName(subject string) string {
	return fmt.Sprintf("%s:%s", p.stream, subject)
}

// Publish adds a stream entry with the payload under the "data" field
func (p *RedisPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.streamName(subject),
		Values: map[string]interface{}{"data": data},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish to stream %s: %w", p.streamName(subject), err)
	}
	return nil
}

// Close closes the connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
