package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/registry"
	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of *redis.Client the store uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisSnapshotStore keeps the whole snapshot as one JSON document under a key.
type RedisSnapshotStore struct {
	client RedisClient
	key    string
}

func NewRedisSnapshotStore(client RedisClient, key string) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, key: key}
}

// airlineDoc carries the password, which domain.Airline keeps out of JSON.
type airlineDoc struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type snapshotDoc struct {
	Airlines  []airlineDoc       `json:"airlines"`
	Planes    []domain.Plane     `json:"planes"`
	Flights   []domain.Flight    `json:"flights"`
	Customers []domain.Customer  `json:"customers"`
	Bookings  []domain.Booking   `json:"bookings"`
	Sequences registry.Sequences `json:"sequences"`
}

func (s *RedisSnapshotStore) Store(ctx context.Context, snap registry.Snapshot) error {
	doc := snapshotDoc{
		Airlines:  make([]airlineDoc, 0, len(snap.Airlines)),
		Planes:    snap.Planes,
		Flights:   snap.Flights,
		Customers: snap.Customers,
		Bookings:  snap.Bookings,
		Sequences: snap.Sequences,
	}
	for _, a := range snap.Airlines {
		doc.Airlines = append(doc.Airlines, airlineDoc(a))
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return s.client.Set(ctx, s.key, payload, 0).Err()
}

func (s *RedisSnapshotStore) Load(ctx context.Context) (registry.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return registry.Snapshot{}, nil
		}
		return registry.Snapshot{}, err
	}

	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return registry.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	snap := registry.Snapshot{
		Airlines:  make([]domain.Airline, 0, len(doc.Airlines)),
		Planes:    doc.Planes,
		Flights:   doc.Flights,
		Customers: doc.Customers,
		Bookings:  doc.Bookings,
		Sequences: doc.Sequences,
	}
	for _, a := range doc.Airlines {
		snap.Airlines = append(snap.Airlines, domain.Airline(a))
	}
	return snap, nil
}

var _ SnapshotStore = (*RedisSnapshotStore)(nil)
var _ RedisClient = (*redis.Client)(nil)
