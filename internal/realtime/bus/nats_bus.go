package bus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

type natsBus struct {
	log     *slog.Logger
	nc      *nats.Conn
	subject string
}

// NewNATSBus connects to NATS and returns a bus on a core (non-JetStream)
// subject.
func NewNATSBus(logger *slog.Logger, url, subject string) (Bus, error) {
	log := logger.With("component", "nats_bus")

	nc, err := nats.Connect(url,
		nats.Name("mirrorme-backend"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &natsBus{log: log, nc: nc, subject: subject}, nil
}

func (b *natsBus) Publish(_ context.Context, payload []byte) error {
	if err := b.nc.Publish(b.subject, payload); err != nil {
		return fmt.Errorf("nats publish: %w", err)
	}
	return nil
}

func (b *natsBus) StartForwarder(ctx context.Context, onMsg func(payload []byte)) error {
	if onMsg == nil {
		return errNoCallback
	}

	sub, err := b.nc.Subscribe(b.subject, func(m *nats.Msg) {
		onMsg(m.Data)
	})
	if err != nil {
		return fmt.Errorf("nats subscribe %s: %w", b.subject, err)
	}
	if err := b.nc.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return fmt.Errorf("nats flush: %w", err)
	}

	go func() {
		<-ctx.Done()
		if err := sub.Unsubscribe(); err != nil && !b.nc.IsClosed() {
			b.log.Warn("nats unsubscribe", slog.String("error", err.Error()))
		}
	}()

	b.log.Info("forwarder started", slog.String("subject", b.subject))
	return nil
}

func (b *natsBus) Close() error {
	if err := b.nc.Drain(); err != nil {
		b.nc.Close()
		return fmt.Errorf("nats drain: %w", err)
	}
	return nil
}
