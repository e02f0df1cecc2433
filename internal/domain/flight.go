package domain

import "time"

type Flight struct {
	ID             int64     `json:"id"`
	FlightNumber   string    `json:"flight_number"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	BasePriceCents int64     `json:"base_price_cents"`
	PlaneID        int64     `json:"plane_id"`
	DepartureDate  time.Time `json:"departure_date"`
	Removed        bool      `json:"removed"`
}

// PriceOn returns the dynamic price of the flight quoted on the given day.
func (f Flight) PriceOn(today time.Time) int64 {
	return DynamicPrice(f.BasePriceCents, f.DepartureDate, today)
}

// Departed reports whether the departure date lies strictly before today.
func (f Flight) Departed(today time.Time) bool {
	return DaysBetween(today, f.DepartureDate) < 0
}

// ActiveOn reports whether the flight belongs in an active listing:
// not removed and departing after today.
func (f Flight) ActiveOn(today time.Time) bool {
	return !f.Removed && DaysBetween(today, f.DepartureDate) > 0
}
