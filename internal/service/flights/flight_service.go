package flights

import (
	"context"
	"time"

	"github.com/Domenick1991/flightbooking/internal/clock"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/registry"
)

type FlightUseCase interface {
	AddFlight(ctx context.Context, input AddFlightInput) (*FlightView, error)
	RemoveFlight(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context, activeOnly bool) ([]FlightView, error)
	GetByID(ctx context.Context, id int64) (*FlightView, error)
	Details(ctx context.Context, id int64) (*FlightDetails, error)
}

type Registry interface {
	AddFlight(in registry.NewFlight) (domain.Flight, error)
	RemoveFlight(id int64) (domain.Flight, error)
	Flight(id int64) (domain.Flight, error)
	Flights(opts registry.ListOptions) []domain.Flight
	Capacity(flightID int64) (int, error)
	RemainingCapacity(flightID int64) (int, error)
	FlightDetails(id int64) (registry.FlightDetails, error)
}

type AddFlightInput struct {
	FlightNumber   string    `json:"flight_number"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	BasePriceCents int64     `json:"base_price_cents"`
	PlaneID        int64     `json:"plane_id"`
	DepartureDate  time.Time `json:"departure_date"`
}

// FlightView is a flight as quoted today.
type FlightView struct {
	domain.Flight
	CurrentPriceCents int64 `json:"current_price_cents"`
	Capacity          int   `json:"capacity"`
	RemainingCapacity int   `json:"remaining_capacity"`
}

type FlightDetails struct {
	registry.FlightDetails
	CurrentPriceCents int64 `json:"current_price_cents"`
}

type FlightService struct {
	registry Registry
	clock    clock.Clock
}

func NewFlightService(reg Registry, clk clock.Clock) *FlightService {
	if clk == nil {
		clk = clock.System{}
	}
	return &FlightService{registry: reg, clock: clk}
}

func (s *FlightService) AddFlight(ctx context.Context, input AddFlightInput) (*FlightView, error) {
	f, err := s.registry.AddFlight(registry.NewFlight{
		FlightNumber:   input.FlightNumber,
		Origin:         input.Origin,
		Destination:    input.Destination,
		BasePriceCents: input.BasePriceCents,
		PlaneID:        input.PlaneID,
		DepartureDate:  input.DepartureDate,
	})
	if err != nil {
		return nil, err
	}
	return s.view(f, s.clock.Now())
}

func (s *FlightService) RemoveFlight(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := s.registry.RemoveFlight(id)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// List quotes every flight on today's date. With activeOnly, removed flights
// and flights not departing after today are left out.
func (s *FlightService) List(ctx context.Context, activeOnly bool) ([]FlightView, error) {
	now := s.clock.Now()
	flights := s.registry.Flights(registry.ListOptions{ActiveOnly: activeOnly, Today: now})

	views := make([]FlightView, 0, len(flights))
	for _, f := range flights {
		v, err := s.view(f, now)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*FlightView, error) {
	f, err := s.registry.Flight(id)
	if err != nil {
		return nil, err
	}
	return s.view(f, s.clock.Now())
}

func (s *FlightService) Details(ctx context.Context, id int64) (*FlightDetails, error) {
	d, err := s.registry.FlightDetails(id)
	if err != nil {
		return nil, err
	}
	return &FlightDetails{FlightDetails: d, CurrentPriceCents: d.Flight.PriceOn(s.clock.Now())}, nil
}

func (s *FlightService) view(f domain.Flight, now time.Time) (*FlightView, error) {
	capacity, err := s.registry.Capacity(f.ID)
	if err != nil {
		return nil, err
	}
	remaining, err := s.registry.RemainingCapacity(f.ID)
	if err != nil {
		return nil, err
	}
	return &FlightView{
		Flight:            f,
		CurrentPriceCents: f.PriceOn(now),
		Capacity:          capacity,
		RemainingCapacity: remaining,
	}, nil
}

var _ FlightUseCase = (*FlightService)(nil)
var _ Registry = (*registry.Registry)(nil)
