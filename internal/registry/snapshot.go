package registry

import (
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

// Snapshot is the persistable state of a registry. Collections are in
// ascending id order.
type Snapshot struct {
	Airlines  []domain.Airline  `json:"airlines"`
	Planes    []domain.Plane    `json:"planes"`
	Flights   []domain.Flight   `json:"flights"`
	Customers []domain.Customer `json:"customers"`
	Bookings  []domain.Booking  `json:"bookings"`
	Sequences Sequences         `json:"sequences"`
}

func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Snapshot{
		Airlines:  make([]domain.Airline, 0, len(r.airlines)),
		Planes:    make([]domain.Plane, 0, len(r.planes)),
		Flights:   make([]domain.Flight, 0, len(r.flights)),
		Customers: make([]domain.Customer, 0, len(r.customers)),
		Bookings:  make([]domain.Booking, 0, len(r.bookings)),
		Sequences: r.seq,
	}
	for _, id := range sortedIDs(r.airlines) {
		s.Airlines = append(s.Airlines, *r.airlines[id])
	}
	for _, id := range sortedIDs(r.planes) {
		s.Planes = append(s.Planes, *r.planes[id])
	}
	for _, id := range sortedIDs(r.flights) {
		s.Flights = append(s.Flights, *r.flights[id])
	}
	for _, id := range sortedIDs(r.customers) {
		s.Customers = append(s.Customers, *r.customers[id])
	}
	for _, id := range sortedIDs(r.bookings) {
		s.Bookings = append(s.Bookings, *r.bookings[id])
	}
	return s
}

// Restore rebuilds a registry from a snapshot, inserting airlines, planes,
// flights, customers and bookings in that order so every reference resolves.
// The same uniqueness rules as the add operations apply.
func Restore(s Snapshot) (*Registry, error) {
	r := New()

	for _, a := range s.Airlines {
		if err := r.insertAirline(a); err != nil {
			return nil, fmt.Errorf("restore airline #%d: %w", a.ID, err)
		}
	}
	for _, p := range s.Planes {
		if err := r.insertPlane(p); err != nil {
			return nil, fmt.Errorf("restore plane #%d: %w", p.ID, err)
		}
	}
	for _, f := range s.Flights {
		f.DepartureDate = domain.DateOf(f.DepartureDate)
		if err := r.insertFlight(f); err != nil {
			return nil, fmt.Errorf("restore flight #%d: %w", f.ID, err)
		}
	}
	for _, c := range s.Customers {
		if err := r.insertCustomer(c); err != nil {
			return nil, fmt.Errorf("restore customer #%d: %w", c.ID, err)
		}
	}
	for _, b := range s.Bookings {
		b.BookingDate = domain.DateOf(b.BookingDate)
		if err := r.insertBooking(b); err != nil {
			return nil, fmt.Errorf("restore booking #%d: %w", b.ID, err)
		}
	}

	bump(&r.seq.Airline, s.Sequences.Airline)
	bump(&r.seq.Plane, s.Sequences.Plane)
	bump(&r.seq.Flight, s.Sequences.Flight)
	bump(&r.seq.Customer, s.Sequences.Customer)
	bump(&r.seq.Booking, s.Sequences.Booking)
	return r, nil
}
