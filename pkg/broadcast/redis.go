package broadcast

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisTransport adapts a Redis Pub/Sub channel to the Transport interface,
// connecting contexts across processes and hosts.
//
// Redis Pub/Sub is fire-and-forget: subscribers that are offline at publish
// time never see the frame, which matches the Transport contract. Unlike the
// in-process backend, Redis delivers published frames back to the publisher's
// own subscription; consumers must suppress echoes by origin.
type RedisTransport struct {
	client  redis.UniversalClient
	channel string
	pubsub  *redis.PubSub
	recv    chan []byte

	closeOnce sync.Once
	closeErr  error
}

// NewRedis subscribes to the named Redis Pub/Sub channel and returns a
// transport over it. The subscription is confirmed before returning, so
// frames sent by siblings after NewRedis returns will be received.
//
// Example:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	tr, err := broadcast.NewRedis(ctx, client, "app-events")
func NewRedis(ctx context.Context, client redis.UniversalClient, channel string, opts ...MemoryOption) (*RedisTransport, error) {
	o := memoryOptions{bufferSize: DefaultReceiveBuffer}
	for _, opt := range opts {
		opt(&o)
	}

	pubsub := client.Subscribe(ctx, channel)

	// Wait for the subscription confirmation so no frames are missed
	// between construction and the first Receive.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%w: %w", ErrChannelUnavailable, err)
	}

	t := &RedisTransport{
		client:  client,
		channel: channel,
		pubsub:  pubsub,
		recv:    make(chan []byte, o.bufferSize),
	}

	go t.forward()

	return t, nil
}

// forward pumps Redis messages into the receive channel until the
// subscription is closed. Frames are dropped when the buffer is full.
func (t *RedisTransport) forward() {
	defer close(t.recv)

	for msg := range t.pubsub.Channel() {
		select {
		case t.recv <- []byte(msg.Payload):
		default:
		}
	}
}

// Send publishes the frame on the Redis channel.
func (t *RedisTransport) Send(ctx context.Context, frame []byte) error {
	if err := t.client.Publish(ctx, t.channel, frame).Err(); err != nil {
		return fmt.Errorf("broadcast: redis publish failed: %w", err)
	}
	return nil
}

// Receive returns the channel of inbound frames.
func (t *RedisTransport) Receive() <-chan []byte {
	return t.recv
}

// Close unsubscribes and stops the forwarding goroutine. The Redis client
// itself is owned by the caller and is not closed.
func (t *RedisTransport) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.pubsub.Close()
	})
	return t.closeErr
}
