package registry

import (
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

// Cancellation describes a removed booking and the fee charged for it.
type Cancellation struct {
	Booking  domain.Booking `json:"booking"`
	FeeCents int64          `json:"fee_cents"`
}

// Book creates a booking of the customer on the flight, priced on today.
// Rules are checked in a fixed order and the first failure is returned.
func (r *Registry) Book(customerID, flightID int64, today time.Time) (domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.customer(customerID)
	if err != nil {
		return domain.Booking{}, err
	}
	f, err := r.flight(flightID)
	if err != nil {
		return domain.Booking{}, err
	}
	if c.Removed || f.Removed {
		return domain.Booking{}, domain.Reject(domain.ReasonAccountRemoved, "can't book a flight because the account is already removed")
	}
	if _, ok := r.bookingsByFlight[f.ID][c.ID]; ok {
		return domain.Booking{}, domain.Reject(domain.ReasonDuplicateBooking, "customer #%d already has a booking on flight #%d", c.ID, f.ID)
	}
	if f.Departed(today) {
		return domain.Booking{}, domain.Reject(domain.ReasonFlightExpired, "couldn't book flight #%d, it has already expired", f.ID)
	}
	if r.remaining(f) <= 0 {
		return domain.Booking{}, domain.Reject(domain.ReasonFlightFull, "flight #%d is already full and cannot be booked", f.ID)
	}

	b := domain.Booking{
		ID:          r.seq.Booking + 1,
		CustomerID:  c.ID,
		FlightID:    f.ID,
		BookingDate: domain.DateOf(today),
		PriceCents:  f.PriceOn(today),
	}
	if err := r.insertBooking(b); err != nil {
		return domain.Booking{}, err
	}
	return b, nil
}

// Cancel drops the customer's booking on the flight. The fee is the dynamic
// markup over the base price as quoted on today, independent of what the
// booking originally cost.
func (r *Registry) Cancel(customerID, flightID int64, today time.Time) (Cancellation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.customer(customerID)
	if err != nil {
		return Cancellation{}, err
	}
	f, err := r.flight(flightID)
	if err != nil {
		return Cancellation{}, err
	}
	if c.Removed || f.Removed {
		return Cancellation{}, domain.Reject(domain.ReasonAccountRemoved, "can't cancel a flight because the account is already removed")
	}
	bookingID, ok := r.bookingsByFlight[f.ID][c.ID]
	if !ok {
		return Cancellation{}, domain.Reject(domain.ReasonNoBooking, "no booking found for customer #%d on flight #%d", c.ID, f.ID)
	}

	b := *r.bookings[bookingID]
	r.unindexBooking(b)
	delete(r.bookings, b.ID)

	return Cancellation{Booking: b, FeeCents: f.PriceOn(today) - f.BasePriceCents}, nil
}

// Rebook moves a booking onto another flight, reprices it and resets its
// booking date. The customer may not already hold a booking on the target
// flight, and the target flight must have a free seat.
func (r *Registry) Rebook(bookingID, flightID int64, today time.Time) (domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := r.booking(bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	f, err := r.flight(flightID)
	if err != nil {
		return domain.Booking{}, err
	}
	if f.ID != b.FlightID {
		if _, ok := r.bookingsByFlight[f.ID][b.CustomerID]; ok {
			return domain.Booking{}, domain.Reject(domain.ReasonDuplicateBooking, "customer #%d already has a booking on flight #%d", b.CustomerID, f.ID)
		}
		if r.remaining(f) <= 0 {
			return domain.Booking{}, domain.Reject(domain.ReasonFlightFull, "flight #%d is already full and cannot be booked", f.ID)
		}
	}

	r.unindexBooking(*b)
	b.FlightID = f.ID
	b.PriceCents = f.PriceOn(today)
	b.BookingDate = domain.DateOf(today)
	r.indexBooking(*b)
	return *b, nil
}

func (r *Registry) insertBooking(b domain.Booking) error {
	if _, ok := r.bookings[b.ID]; ok || b.ID <= 0 {
		return fmt.Errorf("booking #%d: %w", b.ID, domain.ErrIDCollision)
	}
	if _, ok := r.customers[b.CustomerID]; !ok {
		return domain.NotFound("customer", b.CustomerID)
	}
	f, ok := r.flights[b.FlightID]
	if !ok {
		return domain.NotFound("flight", b.FlightID)
	}
	if _, ok := r.bookingsByFlight[b.FlightID][b.CustomerID]; ok {
		return domain.Reject(domain.ReasonDuplicateBooking, "customer #%d already has a booking on flight #%d", b.CustomerID, b.FlightID)
	}
	if r.remaining(f) <= 0 {
		return domain.Reject(domain.ReasonFlightFull, "flight #%d is already full and cannot be booked", f.ID)
	}
	r.bookings[b.ID] = &b
	r.indexBooking(b)
	bump(&r.seq.Booking, b.ID)
	return nil
}

func (r *Registry) indexBooking(b domain.Booking) {
	if r.bookingsByCustomer[b.CustomerID] == nil {
		r.bookingsByCustomer[b.CustomerID] = make(map[int64]struct{})
	}
	r.bookingsByCustomer[b.CustomerID][b.ID] = struct{}{}

	if r.bookingsByFlight[b.FlightID] == nil {
		r.bookingsByFlight[b.FlightID] = make(map[int64]int64)
	}
	r.bookingsByFlight[b.FlightID][b.CustomerID] = b.ID
}

func (r *Registry) unindexBooking(b domain.Booking) {
	delete(r.bookingsByCustomer[b.CustomerID], b.ID)
	if len(r.bookingsByCustomer[b.CustomerID]) == 0 {
		delete(r.bookingsByCustomer, b.CustomerID)
	}
	delete(r.bookingsByFlight[b.FlightID], b.CustomerID)
	if len(r.bookingsByFlight[b.FlightID]) == 0 {
		delete(r.bookingsByFlight, b.FlightID)
	}
}

func (r *Registry) Booking(id int64) (domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, err := r.booking(id)
	if err != nil {
		return domain.Booking{}, err
	}
	return *b, nil
}

func (r *Registry) booking(id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.NotFound("booking", id)
	}
	return b, nil
}

func (r *Registry) Bookings() []domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Booking, 0, len(r.bookings))
	for _, id := range sortedIDs(r.bookings) {
		out = append(out, *r.bookings[id])
	}
	return out
}
