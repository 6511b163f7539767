package bus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	goredis "github.com/redis/go-redis/v9"
)

type redisBus struct {
	log     *slog.Logger
	rdb     *goredis.Client
	channel string

	mu   sync.Mutex
	subs []*goredis.PubSub
}

// NewRedisBus creates a bus on a Redis pub/sub channel. The caller owns rdb:
// Close ends the bus subscriptions but leaves the client open.
func NewRedisBus(logger *slog.Logger, rdb *goredis.Client, channel string) (Bus, error) {
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if channel == "" {
		return nil, fmt.Errorf("redis channel required")
	}
	return &redisBus{
		log:     logger.With("component", "redis_bus"),
		rdb:     rdb,
		channel: channel,
	}, nil
}

func (b *redisBus) Publish(ctx context.Context, payload []byte) error {
	return b.rdb.Publish(ctx, b.channel, payload).Err()
}

func (b *redisBus) StartForwarder(ctx context.Context, onMsg func(payload []byte)) error {
	if onMsg == nil {
		return errNoCallback
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				onMsg([]byte(m.Payload))
			}
		}
	}()

	b.log.Info("forwarder started", slog.String("channel", b.channel))
	return nil
}

func (b *redisBus) Close() error {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	for _, sub := range subs {
		// Fails harmlessly if the forwarder already closed it.
		_ = sub.Close()
	}
	return nil
}
