package bus

import (
	"context"
	"sync"
)

// LocalBus delivers payloads to forwarders in the same process.
type LocalBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func([]byte)
	closed bool
}

// NewLocalBus creates an in-process bus.
func NewLocalBus() *LocalBus {
	return &LocalBus{subs: make(map[int]func([]byte))}
}

func (b *LocalBus) Publish(_ context.Context, payload []byte) error {
	b.mu.RLock()
	fns := make([]func([]byte), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(payload)
	}
	return nil
}

// StartForwarder registers onMsg until ctx is done or the bus is closed.
func (b *LocalBus) StartForwarder(ctx context.Context, onMsg func(payload []byte)) error {
	if onMsg == nil {
		return errNoCallback
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.nextID++
	id := b.nextID
	b.subs[id] = onMsg
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}()
	return nil
}

func (b *LocalBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	clear(b.subs)
	return nil
}
