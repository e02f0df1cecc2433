package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/flightbooking/internal/clock"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/registry"
	"github.com/Domenick1991/flightbooking/pkg/currency"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	AddBooking(ctx context.Context, input AddBookingInput) (*BookingResult, error)
	CancelBooking(ctx context.Context, input CancelBookingInput) (*CancelResult, error)
	EditBooking(ctx context.Context, input EditBookingInput) (*BookingResult, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
}

// Registry is the part of *registry.Registry the booking service needs.
type Registry interface {
	Book(customerID, flightID int64, today time.Time) (domain.Booking, error)
	Cancel(customerID, flightID int64, today time.Time) (registry.Cancellation, error)
	Rebook(bookingID, flightID int64, today time.Time) (domain.Booking, error)
	Booking(id int64) (domain.Booking, error)
	Bookings() []domain.Booking
	Customer(id int64) (domain.Customer, error)
	Flight(id int64) (domain.Flight, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	registry           Registry
	clock              clock.Clock
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type AddBookingInput struct {
	CustomerID int64 `json:"customer_id"`
	FlightID   int64 `json:"flight_id"`
}

type CancelBookingInput struct {
	CustomerID int64 `json:"customer_id"`
	FlightID   int64 `json:"flight_id"`
}

type EditBookingInput struct {
	BookingID int64 `json:"booking_id"`
	FlightID  int64 `json:"flight_id"`
}

type BookingResult struct {
	Booking domain.Booking `json:"booking"`
	Message string         `json:"message"`
}

type CancelResult struct {
	Booking  domain.Booking `json:"booking"`
	FeeCents int64          `json:"fee_cents"`
	Message  string         `json:"message"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// NewBookingService wires the service. A nil producer disables events.
func NewBookingService(reg Registry, clk clock.Clock, producer Producer, bookingTopic string, opts ...BookingServiceOption) *BookingService {
	if clk == nil {
		clk = clock.System{}
	}
	service := &BookingService{
		registry:     reg,
		clock:        clk,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) AddBooking(ctx context.Context, input AddBookingInput) (*BookingResult, error) {
	b, err := s.registry.Book(input.CustomerID, input.FlightID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	customer, flight, err := s.parties(b)
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, kafka.EventBookingCreated, b, customer, flight, 0); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %d: %v", kafka.EventBookingCreated, b.ID, err)
	}
	return &BookingResult{
		Booking: b,
		Message: fmt.Sprintf("Booking success #%d - %s Flight No#%d, price %s", customer.ID, customer.Name, flight.ID, currency.FormatCents(b.PriceCents)),
	}, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, input CancelBookingInput) (*CancelResult, error) {
	c, err := s.registry.Cancel(input.CustomerID, input.FlightID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	customer, flight, err := s.parties(c.Booking)
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, kafka.EventBookingCancelled, c.Booking, customer, flight, c.FeeCents); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %d: %v", kafka.EventBookingCancelled, c.Booking.ID, err)
	}
	msg := fmt.Sprintf("Successfully canceled booking #%d for Customer #%d on Flight #%d Cancellation Fee: %s",
		c.Booking.ID, customer.ID, flight.ID, currency.FormatCents(c.FeeCents))
	return &CancelResult{Booking: c.Booking, FeeCents: c.FeeCents, Message: msg}, nil
}

func (s *BookingService) EditBooking(ctx context.Context, input EditBookingInput) (*BookingResult, error) {
	b, err := s.registry.Rebook(input.BookingID, input.FlightID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	customer, flight, err := s.parties(b)
	if err != nil {
		return nil, err
	}

	if err := s.publish(ctx, kafka.EventBookingUpdated, b, customer, flight, 0); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %d: %v", kafka.EventBookingUpdated, b.ID, err)
	}
	return &BookingResult{
		Booking: b,
		Message: fmt.Sprintf("Booking successfully updated #%d Flight No#%d New Flight: %s to %s", b.ID, flight.ID, flight.Origin, flight.Destination),
	}, nil
}

func (s *BookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.registry.Booking(id)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.registry.Bookings(), nil
}

// parties resolves the customer and flight of a booking that was just written.
// A miss here means the registry lost a reference.
func (s *BookingService) parties(b domain.Booking) (domain.Customer, domain.Flight, error) {
	customer, err := s.registry.Customer(b.CustomerID)
	if err != nil {
		return domain.Customer{}, domain.Flight{}, fmt.Errorf("booking #%d: %w", b.ID, err)
	}
	flight, err := s.registry.Flight(b.FlightID)
	if err != nil {
		return domain.Customer{}, domain.Flight{}, fmt.Errorf("booking #%d: %w", b.ID, err)
	}
	return customer, flight, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, b domain.Booking, customer domain.Customer, flight domain.Flight, feeCents int64) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		ID:           uuid.NewString(),
		Type:         eventType,
		BookingID:    b.ID,
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Email:        customer.Email,
		FlightID:     flight.ID,
		FlightNumber: flight.FlightNumber,
		PriceCents:   b.PriceCents,
		FeeCents:     feeCents,
		OccurredAt:   s.clock.Now(),
	}
	key := fmt.Sprintf("%d", b.ID)
	var errs []error
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		errs = append(errs, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ BookingUseCase = (*BookingService)(nil)
var _ Registry = (*registry.Registry)(nil)
