// Package bus carries encoded session store changes between service
// instances.
package bus

import (
	"context"
	"errors"
)

// Bus publishes payloads to every instance and forwards received payloads
// to onMsg. Delivery is at-most-once.
type Bus interface {
	Publish(ctx context.Context, payload []byte) error
	StartForwarder(ctx context.Context, onMsg func(payload []byte)) error
	Close() error
}

var errNoCallback = errors.New("onMsg callback required")
