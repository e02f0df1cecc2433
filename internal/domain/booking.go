package domain

import "time"

type Booking struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id"`
	FlightID    int64     `json:"flight_id"`
	BookingDate time.Time `json:"booking_date"`
	PriceCents  int64     `json:"price_cents"`
}
