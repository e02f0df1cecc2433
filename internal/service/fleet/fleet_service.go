// Package fleet manages airlines and the planes they own.
package fleet

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/registry"
)

type FleetUseCase interface {
	AddAirline(ctx context.Context, input AddAirlineInput) (*domain.Airline, error)
	ListAirlines(ctx context.Context) ([]domain.Airline, error)
	GetAirline(ctx context.Context, id int64) (*domain.Airline, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Airline, error)
	AddPlane(ctx context.Context, input AddPlaneInput) (*domain.Plane, error)
	ListPlanes(ctx context.Context) ([]domain.Plane, error)
	GetPlane(ctx context.Context, id int64) (*domain.Plane, error)
	SetPlaneCapacity(ctx context.Context, id int64, capacity int) (*domain.Plane, error)
}

type Registry interface {
	AddAirline(name, email, password string) (domain.Airline, error)
	Airlines() []domain.Airline
	Airline(id int64) (domain.Airline, error)
	AuthenticateAirline(email, password string) (domain.Airline, error)
	AddPlane(model string, capacity int, airlineID int64) (domain.Plane, error)
	Planes() []domain.Plane
	Plane(id int64) (domain.Plane, error)
	SetPlaneCapacity(id int64, capacity int) (domain.Plane, error)
}

type AddAirlineInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddPlaneInput struct {
	Model     string `json:"model"`
	Capacity  int    `json:"capacity"`
	AirlineID int64  `json:"airline_id"`
}

type FleetService struct {
	registry Registry
}

func NewFleetService(reg Registry) *FleetService {
	return &FleetService{registry: reg}
}

func (s *FleetService) AddAirline(ctx context.Context, input AddAirlineInput) (*domain.Airline, error) {
	a, err := s.registry.AddAirline(input.Name, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *FleetService) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	return s.registry.Airlines(), nil
}

func (s *FleetService) GetAirline(ctx context.Context, id int64) (*domain.Airline, error) {
	a, err := s.registry.Airline(id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *FleetService) Authenticate(ctx context.Context, email, password string) (*domain.Airline, error) {
	a, err := s.registry.AuthenticateAirline(email, password)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *FleetService) AddPlane(ctx context.Context, input AddPlaneInput) (*domain.Plane, error) {
	p, err := s.registry.AddPlane(input.Model, input.Capacity, input.AirlineID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *FleetService) ListPlanes(ctx context.Context) ([]domain.Plane, error) {
	return s.registry.Planes(), nil
}

func (s *FleetService) GetPlane(ctx context.Context, id int64) (*domain.Plane, error) {
	p, err := s.registry.Plane(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetPlaneCapacity resizes a plane. It is rejected when a flight of the
// plane already holds more bookings than the new capacity.
func (s *FleetService) SetPlaneCapacity(ctx context.Context, id int64, capacity int) (*domain.Plane, error) {
	p, err := s.registry.SetPlaneCapacity(id, capacity)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ FleetUseCase = (*FleetService)(nil)
var _ Registry = (*registry.Registry)(nil)
