package repository

import (
	"context"
	"os"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/registry"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPGStore connects to FLIGHTBOOKING_TEST_DSN and skips when it is unset.
// The tables it touches are truncated on every Store.
func newPGStore(t *testing.T) *PGSnapshotStore {
	t.Helper()
	dsn := os.Getenv("FLIGHTBOOKING_TEST_DSN")
	if dsn == "" {
		t.Skip("FLIGHTBOOKING_TEST_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(ctx))

	store := NewPGSnapshotStore(pool)
	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestPGSnapshotStore_RoundTrip(t *testing.T) {
	store := newPGStore(t)
	ctx := context.Background()
	want := sampleRegistry(t).Snapshot()

	require.NoError(t, store.Store(ctx, want))
	got, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, want.Sequences, got.Sequences)

	restored, err := registry.Restore(got)
	require.NoError(t, err)
	assert.Equal(t, int64(2), restored.Sequences().Customer)
	assert.Equal(t, int64(3), restored.Sequences().Booking)
}

func TestPGSnapshotStore_StoreReplacesContent(t *testing.T) {
	store := newPGStore(t)
	ctx := context.Background()
	require.NoError(t, store.Store(ctx, sampleRegistry(t).Snapshot()))

	r := registry.New()
	_, err := r.AddAirline("Other Air", "ops@other.test", "pw")
	require.NoError(t, err)
	require.NoError(t, store.Store(ctx, r.Snapshot()))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Airlines, 1)
	assert.Equal(t, "Other Air", got.Airlines[0].Name)
	assert.Empty(t, got.Planes)
	assert.Empty(t, got.Flights)
	assert.Empty(t, got.Customers)
	assert.Empty(t, got.Bookings)
	assert.Equal(t, registry.Sequences{Airline: 1}, got.Sequences)
}
