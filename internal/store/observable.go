package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Publisher forwards encoded changes to other instances.
type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// Observable wraps a Backend and notifies subscribers after every
// successful mutation. Local subscribers are notified synchronously, before
// Write or Delete returns; the change is then published for other instances.
type Observable struct {
	backend Backend
	pub     Publisher
	origin  string
	log     *slog.Logger
	now     func() time.Time

	mu     sync.RWMutex
	nextID uint64
	subs   map[uuid.UUID]map[uint64]func(Change)
}

// NewObservable creates an Observable. pub may be nil for a single instance.
// origin identifies this instance; changes received back with the same
// origin are ignored.
func NewObservable(logger *slog.Logger, backend Backend, pub Publisher, origin string) *Observable {
	return &Observable{
		backend: backend,
		pub:     pub,
		origin:  origin,
		log:     logger.With("component", "store"),
		now:     time.Now,
		subs:    make(map[uuid.UUID]map[uint64]func(Change)),
	}
}

// Origin returns the instance ID stamped on published changes.
func (o *Observable) Origin() string { return o.origin }

func (o *Observable) Read(ctx context.Context, profileID uuid.UUID, key string) (string, error) {
	return o.backend.Read(ctx, profileID, key)
}

func (o *Observable) Snapshot(ctx context.Context, profileID uuid.UUID) (map[string]string, error) {
	return o.backend.Snapshot(ctx, profileID)
}

func (o *Observable) Ping(ctx context.Context) error {
	return o.backend.Ping(ctx)
}

func (o *Observable) Write(ctx context.Context, profileID uuid.UUID, key, value string) error {
	return o.mutate(ctx, profileID, key, OpWrite, func() error {
		return o.backend.Write(ctx, profileID, key, value)
	})
}

func (o *Observable) Delete(ctx context.Context, profileID uuid.UUID, key string) error {
	return o.mutate(ctx, profileID, key, OpDelete, func() error {
		return o.backend.Delete(ctx, profileID, key)
	})
}

func (o *Observable) mutate(ctx context.Context, profileID uuid.UUID, key string, op Op, apply func() error) error {
	if err := apply(); err != nil {
		return err
	}

	ch := Change{ProfileID: profileID, Key: key, Op: op, Origin: o.origin, At: o.now()}

	if d, ok := ctx.Value(deferKey{}).(*deferred); ok {
		d.add(ch)
		return nil
	}

	o.emit(ctx, ch)
	return nil
}

func (o *Observable) emit(ctx context.Context, ch Change) {
	o.notify(ch)

	if o.pub == nil {
		return
	}
	payload, err := json.Marshal(ch)
	if err != nil {
		o.log.Error("encode change", slog.String("error", err.Error()))
		return
	}
	// Best effort: the write itself has already succeeded.
	if err := o.pub.Publish(context.WithoutCancel(ctx), payload); err != nil {
		o.log.Warn("publish change",
			slog.String("profile_id", ch.ProfileID.String()),
			slog.String("key", ch.Key),
			slog.String("error", err.Error()),
		)
	}
}

// Subscribe registers fn for changes of profileID. fn runs on the writer's
// goroutine and must not block. The returned func unsubscribes and is safe
// to call more than once.
func (o *Observable) Subscribe(profileID uuid.UUID, fn func(Change)) func() {
	o.mu.Lock()
	o.nextID++
	id := o.nextID
	if o.subs[profileID] == nil {
		o.subs[profileID] = make(map[uint64]func(Change))
	}
	o.subs[profileID][id] = fn
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.subs[profileID], id)
			if len(o.subs[profileID]) == 0 {
				delete(o.subs, profileID)
			}
		})
	}
}

// Receive handles a change published by another instance.
func (o *Observable) Receive(payload []byte) {
	var ch Change
	if err := json.Unmarshal(payload, &ch); err != nil {
		o.log.Warn("bad change payload", slog.String("error", err.Error()))
		return
	}
	if ch.Origin == o.origin {
		return
	}
	o.notify(ch)
}

func (o *Observable) notify(ch Change) {
	o.mu.RLock()
	fns := make([]func(Change), 0, len(o.subs[ch.ProfileID]))
	for _, fn := range o.subs[ch.ProfileID] {
		fns = append(fns, fn)
	}
	o.mu.RUnlock()

	for _, fn := range fns {
		fn(ch)
	}
}

type deferKey struct{}

type deferred struct {
	mu      sync.Mutex
	changes []Change
}

func (d *deferred) add(ch Change) {
	d.mu.Lock()
	d.changes = append(d.changes, ch)
	d.mu.Unlock()
}

// Defer returns a context under which mutations are recorded instead of
// emitted, and a flush func that emits them. Use it around a transaction so
// watchers only observe committed state.
func (o *Observable) Defer(ctx context.Context) (context.Context, func()) {
	d := &deferred{}
	flush := func() {
		d.mu.Lock()
		changes := d.changes
		d.changes = nil
		d.mu.Unlock()
		for _, ch := range changes {
			o.emit(ctx, ch)
		}
	}
	return context.WithValue(ctx, deferKey{}, d), flush
}
