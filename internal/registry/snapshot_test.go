package registry

import (
	"errors"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RestoreRoundTrip(t *testing.T) {
	r, f := seeded(t, 5, 10)
	c1 := addCustomer(t, r, "1")
	c2 := addCustomer(t, r, "2")
	_, err := r.Book(c1.ID, f.ID, today)
	require.NoError(t, err)
	_, err = r.Book(c2.ID, f.ID, today)
	require.NoError(t, err)
	_, err = r.Cancel(c2.ID, f.ID, today)
	require.NoError(t, err)
	_, err = r.RemoveCustomer(c2.ID)
	require.NoError(t, err)

	snap := r.Snapshot()
	restored, err := Restore(snap)
	require.NoError(t, err)

	assert.Equal(t, snap, restored.Snapshot())
	assert.Equal(t, int64(2), restored.Sequences().Booking)

	passengers, err := restored.Passengers(f.ID)
	require.NoError(t, err)
	require.Len(t, passengers, 1)
	assert.Equal(t, c1.ID, passengers[0].ID)

	remaining, err := restored.RemainingCapacity(f.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, remaining)

	// The cancelled booking id stays retired after a restore.
	c3 := addCustomer(t, restored, "3")
	b, err := restored.Book(c3.ID, f.ID, today)
	require.NoError(t, err)
	assert.Equal(t, int64(3), b.ID)
}

func TestRestore_EmptySnapshot(t *testing.T) {
	r, err := Restore(Snapshot{})
	require.NoError(t, err)
	assert.Empty(t, r.Airlines())
	assert.Equal(t, Sequences{}, r.Sequences())
}

func TestRestore_DanglingReference(t *testing.T) {
	snap := Snapshot{
		Airlines: []domain.Airline{{ID: 1, Name: "A", Email: "a@test", Password: "pw"}},
		Planes:   []domain.Plane{{ID: 1, Model: "B737", Capacity: 10, AirlineID: 7}},
	}

	_, err := Restore(snap)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "restore plane #1")
}

func TestRestore_DuplicateID(t *testing.T) {
	snap := Snapshot{
		Airlines: []domain.Airline{
			{ID: 1, Name: "A", Email: "a@test", Password: "pw"},
			{ID: 1, Name: "B", Email: "b@test", Password: "pw"},
		},
	}

	_, err := Restore(snap)
	assert.True(t, errors.Is(err, domain.ErrIDCollision))
}

func TestRestore_DuplicateBookingPair(t *testing.T) {
	r, f := seeded(t, 5, 10)
	c := addCustomer(t, r, "1")
	b, err := r.Book(c.ID, f.ID, today)
	require.NoError(t, err)

	snap := r.Snapshot()
	dup := b
	dup.ID = 2
	snap.Bookings = append(snap.Bookings, dup)

	_, err = Restore(snap)
	assert.True(t, domain.HasReason(err, domain.ReasonDuplicateBooking))
}

func TestRestore_OverbookedFlight(t *testing.T) {
	r, f := seeded(t, 2, 10)
	for _, phone := range []string{"1", "2"} {
		c := addCustomer(t, r, phone)
		_, err := r.Book(c.ID, f.ID, today)
		require.NoError(t, err)
	}

	snap := r.Snapshot()
	snap.Planes[0].Capacity = 1

	_, err := Restore(snap)
	require.Error(t, err)
	assert.True(t, domain.HasReason(err, domain.ReasonFlightFull))
	assert.Contains(t, err.Error(), "restore booking #2")
}

func TestRestore_SequencesNeverMoveBackwards(t *testing.T) {
	snap := Snapshot{
		Airlines:  []domain.Airline{{ID: 3, Name: "A", Email: "a@test", Password: "pw"}},
		Sequences: Sequences{Airline: 1, Booking: 9},
	}

	r, err := Restore(snap)
	require.NoError(t, err)
	assert.Equal(t, int64(3), r.Sequences().Airline)
	assert.Equal(t, int64(9), r.Sequences().Booking)

	a, err := r.AddAirline("B", "b@test", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(4), a.ID)
}
