package registry

import (
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

type NewFlight struct {
	FlightNumber   string
	Origin         string
	Destination    string
	BasePriceCents int64
	PlaneID        int64
	DepartureDate  time.Time
}

// Passenger is a customer on a flight together with what they paid.
type Passenger struct {
	Customer   domain.Customer `json:"customer"`
	BookingID  int64           `json:"booking_id"`
	PriceCents int64           `json:"price_cents"`
}

type FlightDetails struct {
	Flight            domain.Flight  `json:"flight"`
	Plane             domain.Plane   `json:"plane"`
	Airline           domain.Airline `json:"airline"`
	Capacity          int            `json:"capacity"`
	RemainingCapacity int            `json:"remaining_capacity"`
	Passengers        []Passenger    `json:"passengers"`
}

func (r *Registry) AddFlight(in NewFlight) (domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.plane(in.PlaneID); err != nil {
		return domain.Flight{}, err
	}
	f := domain.Flight{
		ID:             r.seq.Flight + 1,
		FlightNumber:   strings.TrimSpace(in.FlightNumber),
		Origin:         strings.TrimSpace(in.Origin),
		Destination:    strings.TrimSpace(in.Destination),
		BasePriceCents: in.BasePriceCents,
		PlaneID:        in.PlaneID,
		DepartureDate:  domain.DateOf(in.DepartureDate),
	}
	if f.FlightNumber == "" {
		return domain.Flight{}, domain.Reject(domain.ReasonInvalidInput, "flight number is required")
	}
	if in.DepartureDate.IsZero() {
		return domain.Flight{}, domain.Reject(domain.ReasonInvalidInput, "departure date is required")
	}
	if err := r.insertFlight(f); err != nil {
		return domain.Flight{}, err
	}
	return f, nil
}

func (r *Registry) insertFlight(f domain.Flight) error {
	if _, ok := r.flights[f.ID]; ok || f.ID <= 0 {
		return fmt.Errorf("flight #%d: %w", f.ID, domain.ErrIDCollision)
	}
	if f.BasePriceCents < 0 {
		return domain.Reject(domain.ReasonInvalidInput, "flight price must not be negative")
	}
	if _, ok := r.planes[f.PlaneID]; !ok {
		return domain.NotFound("plane", f.PlaneID)
	}
	// Removed flights still hold their number and date.
	key := flightKeyOf(f)
	if _, ok := r.flightKeys[key]; ok {
		return domain.Reject(domain.ReasonDuplicateFlight, "there is a flight with the same number and departure date in the system")
	}
	r.flights[f.ID] = &f
	r.flightKeys[key] = f.ID
	bump(&r.seq.Flight, f.ID)
	return nil
}

func flightKeyOf(f domain.Flight) flightKey {
	return flightKey{number: f.FlightNumber, date: f.DepartureDate.Format(time.DateOnly)}
}

func (r *Registry) Flight(id int64) (domain.Flight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, err := r.flight(id)
	if err != nil {
		return domain.Flight{}, err
	}
	return *f, nil
}

func (r *Registry) flight(id int64) (*domain.Flight, error) {
	f, ok := r.flights[id]
	if !ok {
		return nil, domain.NotFound("flight", id)
	}
	return f, nil
}

func (r *Registry) Flights(opts ListOptions) []domain.Flight {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Flight, 0, len(r.flights))
	for _, id := range sortedIDs(r.flights) {
		f := r.flights[id]
		if opts.ActiveOnly && !f.ActiveOn(opts.Today) {
			continue
		}
		out = append(out, *f)
	}
	return out
}

// RemoveFlight soft-deletes a flight. Its bookings stay in place.
func (r *Registry) RemoveFlight(id int64) (domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.flight(id)
	if err != nil {
		return domain.Flight{}, err
	}
	f.Removed = true
	return *f, nil
}

func (r *Registry) Capacity(flightID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, err := r.flight(flightID)
	if err != nil {
		return 0, err
	}
	return r.planes[f.PlaneID].Capacity, nil
}

// RemainingCapacity is the plane capacity minus the current passenger count.
func (r *Registry) RemainingCapacity(flightID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, err := r.flight(flightID)
	if err != nil {
		return 0, err
	}
	return r.remaining(f), nil
}

func (r *Registry) remaining(f *domain.Flight) int {
	return r.planes[f.PlaneID].Capacity - len(r.bookingsByFlight[f.ID])
}

// Passengers lists the distinct customers booked on a flight in ascending id order.
func (r *Registry) Passengers(flightID int64) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, err := r.flight(flightID); err != nil {
		return nil, err
	}
	byCustomer := r.bookingsByFlight[flightID]
	out := make([]domain.Customer, 0, len(byCustomer))
	for _, cid := range sortedIDs(byCustomer) {
		out = append(out, *r.customers[cid])
	}
	return out, nil
}

func (r *Registry) FlightDetails(id int64) (FlightDetails, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, err := r.flight(id)
	if err != nil {
		return FlightDetails{}, err
	}
	p := r.planes[f.PlaneID]
	details := FlightDetails{
		Flight:            *f,
		Plane:             *p,
		Airline:           *r.airlines[p.AirlineID],
		Capacity:          p.Capacity,
		RemainingCapacity: r.remaining(f),
		Passengers:        make([]Passenger, 0, len(r.bookingsByFlight[id])),
	}
	byCustomer := r.bookingsByFlight[id]
	for _, cid := range sortedIDs(byCustomer) {
		b := r.bookings[byCustomer[cid]]
		details.Passengers = append(details.Passengers, Passenger{
			Customer:   *r.customers[cid],
			BookingID:  b.ID,
			PriceCents: b.PriceCents,
		})
	}
	return details, nil
}
