package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/clock"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*FlightService, *registry.Registry, int64) {
	t.Helper()
	reg := registry.New()
	a, err := reg.AddAirline("Sky Lines", "ops@sky.test", "secret")
	require.NoError(t, err)
	p, err := reg.AddPlane("A320", 2, a.ID)
	require.NoError(t, err)
	return NewFlightService(reg, clock.Fixed(today)), reg, p.ID
}

func TestFlightService_AddFlight(t *testing.T) {
	service, _, planeID := newService(t)
	ctx := context.Background()

	v, err := service.AddFlight(ctx, AddFlightInput{
		FlightNumber:   "SL100",
		Origin:         "London",
		Destination:    "Paris",
		BasePriceCents: 10000,
		PlaneID:        planeID,
		DepartureDate:  today.AddDate(0, 0, 5),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), v.ID)
	assert.Equal(t, int64(14000), v.CurrentPriceCents)
	assert.Equal(t, 2, v.Capacity)
	assert.Equal(t, 2, v.RemainingCapacity)

	_, err = service.AddFlight(ctx, AddFlightInput{FlightNumber: "SL100", PlaneID: planeID, DepartureDate: today.AddDate(0, 0, 5)})
	assert.True(t, domain.HasReason(err, domain.ReasonDuplicateFlight))

	_, err = service.AddFlight(ctx, AddFlightInput{FlightNumber: "SL101", PlaneID: 9, DepartureDate: today})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestFlightService_ListActiveOnly(t *testing.T) {
	service, reg, planeID := newService(t)
	ctx := context.Background()

	for i, days := range []int{40, 0, 3} {
		_, err := reg.AddFlight(registry.NewFlight{
			FlightNumber:   []string{"F1", "F2", "F3"}[i],
			BasePriceCents: 10000,
			PlaneID:        planeID,
			DepartureDate:  today.AddDate(0, 0, days),
		})
		require.NoError(t, err)
	}
	_, err := service.RemoveFlight(ctx, 3)
	require.NoError(t, err)

	all, err := service.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, int64(10000), all[0].CurrentPriceCents)
	assert.Equal(t, int64(17000), all[1].CurrentPriceCents)

	active, err := service.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "F1", active[0].FlightNumber)
}

func TestFlightService_GetByIDAndDetails(t *testing.T) {
	service, reg, planeID := newService(t)
	ctx := context.Background()

	f, err := reg.AddFlight(registry.NewFlight{FlightNumber: "SL100", BasePriceCents: 10000, PlaneID: planeID, DepartureDate: today.AddDate(0, 0, 10)})
	require.NoError(t, err)
	c, err := reg.AddCustomer(registry.NewCustomer{Name: "Jane", Phone: "555", Email: "jane@mail.test"})
	require.NoError(t, err)
	_, err = reg.Book(c.ID, f.ID, today)
	require.NoError(t, err)

	v, err := service.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(11000), v.CurrentPriceCents)
	assert.Equal(t, 1, v.RemainingCapacity)

	d, err := service.Details(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(11000), d.CurrentPriceCents)
	assert.Equal(t, "Sky Lines", d.Airline.Name)
	require.Len(t, d.Passengers, 1)
	assert.Equal(t, "Jane", d.Passengers[0].Customer.Name)

	_, err = service.GetByID(ctx, 42)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = service.Details(ctx, 42)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
