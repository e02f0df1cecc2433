package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/registry"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// SnapshotStore persists the whole registry. Store followed by Load yields
// the same entities with the same ids and id sequences.
type SnapshotStore interface {
	Load(ctx context.Context) (registry.Snapshot, error)
	Store(ctx context.Context, snap registry.Snapshot) error
}

// Open builds the store selected by cfg.Storage.Driver. The returned func
// releases its connections.
func Open(ctx context.Context, cfg *config.Config) (SnapshotStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := NewPGSnapshotStore(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return NewRedisSnapshotStore(client, cfg.Storage.RedisKey), func() { _ = client.Close() }, nil
	case config.StorageFile, "":
		return NewFileSnapshotStore(cfg.Storage.DataDir), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// LoadRegistry restores the registry held by store.
func LoadRegistry(ctx context.Context, store SnapshotStore) (*registry.Registry, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	reg, err := registry.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("restore snapshot: %w", err)
	}
	return reg, nil
}
