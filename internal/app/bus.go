package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/mirrorme-backend/internal/config"
	"github.com/heartmarshall/mirrorme-backend/internal/realtime/bus"
)

// openBus connects the broadcast bus selected by bus.driver.
func (r *resources) openBus(ctx context.Context) (bus.Bus, error) {
	var (
		b   bus.Bus
		err error
	)

	switch r.cfg.Bus.Driver {
	case config.BusLocal:
		b = bus.NewLocalBus()
	case config.BusRedis:
		rdb, rerr := r.redis(ctx)
		if rerr != nil {
			return nil, fmt.Errorf("open redis bus: %w", rerr)
		}
		b, err = bus.NewRedisBus(r.log, rdb, r.cfg.Redis.Channel)
	case config.BusNATS:
		b, err = bus.NewNATSBus(r.log, r.cfg.NATS.URL, r.cfg.NATS.Subject)
	default:
		return nil, fmt.Errorf("unknown bus driver %q", r.cfg.Bus.Driver)
	}
	if err != nil {
		return nil, err
	}

	r.onClose(func() {
		if err := b.Close(); err != nil {
			r.log.Warn("close bus", slog.String("error", err.Error()))
		}
	})
	return b, nil
}
