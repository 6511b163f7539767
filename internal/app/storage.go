package app

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/mirrorme-backend/internal/adapter/memory"
	"github.com/heartmarshall/mirrorme-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mirrorme-backend/internal/adapter/postgres/entries"
	redisadapter "github.com/heartmarshall/mirrorme-backend/internal/adapter/redis"
	"github.com/heartmarshall/mirrorme-backend/internal/config"
	"github.com/heartmarshall/mirrorme-backend/internal/store"
)

// Storage is the opened session store backend.
type Storage struct {
	Backend store.Backend
	Tx      store.TxManager
	Driver  string
}

// resources owns the external connections opened during start-up and
// closes them in reverse order.
type resources struct {
	cfg     *config.Config
	log     *slog.Logger
	rdb     *goredis.Client
	closers []func()
}

func (r *resources) onClose(fn func()) {
	r.closers = append(r.closers, fn)
}

func (r *resources) close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

// redis returns the shared Redis client, connecting on first use.
func (r *resources) redis(ctx context.Context) (*goredis.Client, error) {
	if r.rdb != nil {
		return r.rdb, nil
	}
	rdb, err := redisadapter.NewClient(ctx, r.cfg.Redis)
	if err != nil {
		return nil, err
	}
	r.useRedis(rdb)
	r.log.Info("connected to redis", slog.String("addr", r.cfg.Redis.Addr))
	return rdb, nil
}

// useRedis makes rdb the shared client. resources is its only owner: the
// store and the bus borrow it, and it is closed after both are released.
func (r *resources) useRedis(rdb *goredis.Client) {
	r.rdb = rdb
	r.onClose(func() {
		if err := rdb.Close(); err != nil {
			r.log.Warn("close redis", slog.String("error", err.Error()))
		}
	})
}

// openStorage connects the backend selected by storage.driver. The
// postgres driver applies pending migrations before returning.
func (r *resources) openStorage(ctx context.Context) (*Storage, error) {
	driver := r.cfg.Storage.Driver

	switch driver {
	case config.DriverMemory:
		return &Storage{Backend: memory.New(), Tx: store.NopTx{}, Driver: driver}, nil

	case config.DriverRedis:
		rdb, err := r.redis(ctx)
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		return &Storage{
			Backend: redisadapter.NewStore(rdb, r.cfg.Storage.RedisNamespace),
			Tx:      store.NopTx{},
			Driver:  driver,
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, r.cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open postgres storage: %w", err)
		}
		r.onClose(pool.Close)

		if err := postgres.Migrate(ctx, pool, r.log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		r.log.Info("connected to postgres")
		return &Storage{
			Backend: entries.New(pool),
			Tx:      postgres.NewTxManager(pool),
			Driver:  driver,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// OpenStorage opens the configured backend outside the server. The
// returned func releases its connections.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storage, func(), error) {
	res := &resources{cfg: cfg, log: logger}
	st, err := res.openStorage(ctx)
	if err != nil {
		res.close()
		return nil, nil, err
	}
	return st, res.close, nil
}
