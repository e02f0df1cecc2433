package registry

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

type NewCustomer struct {
	Name  string
	Age   int
	Phone string
	Email string
}

// CustomerBooking pairs a booking with the flight it currently points at.
type CustomerBooking struct {
	Booking domain.Booking `json:"booking"`
	Flight  domain.Flight  `json:"flight"`
}

type CustomerDetails struct {
	Customer domain.Customer   `json:"customer"`
	Bookings []CustomerBooking `json:"bookings"`
}

func (r *Registry) AddCustomer(in NewCustomer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := domain.Customer{
		ID:    r.seq.Customer + 1,
		Name:  strings.TrimSpace(in.Name),
		Age:   in.Age,
		Phone: strings.TrimSpace(in.Phone),
		Email: strings.TrimSpace(in.Email),
	}
	if c.Name == "" || c.Phone == "" || c.Email == "" {
		return domain.Customer{}, domain.Reject(domain.ReasonInvalidInput, "customer name, phone and email are required")
	}
	if err := r.insertCustomer(c); err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

func (r *Registry) insertCustomer(c domain.Customer) error {
	if _, ok := r.customers[c.ID]; ok || c.ID <= 0 {
		return fmt.Errorf("customer #%d: %w", c.ID, domain.ErrIDCollision)
	}
	if c.Age < 0 {
		return domain.Reject(domain.ReasonInvalidInput, "customer age must not be negative")
	}
	key := customerKey{phone: c.Phone, email: c.Email}
	if _, ok := r.customerKeys[key]; ok {
		return domain.Reject(domain.ReasonDuplicateCustomer, "there is a customer with the same phone and email in the system")
	}
	r.customers[c.ID] = &c
	r.customerKeys[key] = c.ID
	bump(&r.seq.Customer, c.ID)
	return nil
}

func (r *Registry) Customer(id int64) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, err := r.customer(id)
	if err != nil {
		return domain.Customer{}, err
	}
	return *c, nil
}

func (r *Registry) customer(id int64) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.NotFound("customer", id)
	}
	return c, nil
}

// CustomerByPhone returns the lowest-id customer registered with the phone number.
func (r *Registry) CustomerByPhone(phone string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	phone = strings.TrimSpace(phone)
	for _, id := range sortedIDs(r.customers) {
		if c := r.customers[id]; c.Phone == phone {
			return *c, nil
		}
	}
	return domain.Customer{}, fmt.Errorf("customer with phone %q: %w", phone, domain.ErrNotFound)
}

func (r *Registry) Customers(opts ListOptions) []domain.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Customer, 0, len(r.customers))
	for _, id := range sortedIDs(r.customers) {
		c := r.customers[id]
		if opts.ActiveOnly && c.Removed {
			continue
		}
		out = append(out, *c)
	}
	return out
}

// RemoveCustomer soft-deletes a customer. Their bookings are not purged.
func (r *Registry) RemoveCustomer(id int64) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.customer(id)
	if err != nil {
		return domain.Customer{}, err
	}
	c.Removed = true
	return *c, nil
}

// CustomerBookings returns the customer's bookings in the order they were made.
func (r *Registry) CustomerBookings(customerID int64) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, err := r.customer(customerID); err != nil {
		return nil, err
	}
	ids := sortedIDs(r.bookingsByCustomer[customerID])
	out := make([]domain.Booking, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.bookings[id])
	}
	return out, nil
}

func (r *Registry) CustomerDetails(id int64) (CustomerDetails, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, err := r.customer(id)
	if err != nil {
		return CustomerDetails{}, err
	}
	ids := sortedIDs(r.bookingsByCustomer[id])
	details := CustomerDetails{Customer: *c, Bookings: make([]CustomerBooking, 0, len(ids))}
	for _, bid := range ids {
		b := r.bookings[bid]
		details.Bookings = append(details.Bookings, CustomerBooking{Booking: *b, Flight: *r.flights[b.FlightID]})
	}
	return details, nil
}
