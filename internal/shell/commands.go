package shell

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/customers"
	"github.com/Domenick1991/flightbooking/internal/service/fleet"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/pkg/currency"
)

func (s *Shell) listFlights(ctx context.Context) error {
	views, err := s.svc.Flights.List(ctx, true)
	if err != nil {
		return err
	}
	for _, v := range views {
		plane, airline := s.owner(ctx, v.PlaneID)
		s.println(fmt.Sprintf("Flight #%d - %s - %s to %s on %s - Price: %s - Plane: %s - Airline: %s",
			v.ID, v.FlightNumber, v.Origin, v.Destination, v.DepartureDate.Format("02/01/2006"),
			currency.FormatCents(v.CurrentPriceCents), plane, airline))
	}
	s.println(fmt.Sprintf("%d flight(s)", len(views)))
	return nil
}

// owner names the plane and airline behind a flight. Lookups that fail
// print as "?" rather than hiding the flight.
func (s *Shell) owner(ctx context.Context, planeID int64) (string, string) {
	plane, err := s.svc.Fleet.GetPlane(ctx, planeID)
	if err != nil {
		return "?", "?"
	}
	airline, err := s.svc.Fleet.GetAirline(ctx, plane.AirlineID)
	if err != nil {
		return plane.Model, "?"
	}
	return plane.Model, airline.Name
}

func (s *Shell) listCustomers(ctx context.Context) error {
	list, err := s.svc.Customers.List(ctx, true)
	if err != nil {
		return err
	}
	for _, c := range list {
		s.println(fmt.Sprintf("Customer ID #%d, Name - %s, Phone - %s, Age - %d", c.ID, c.Name, c.Phone, c.Age))
	}
	s.println(fmt.Sprintf("%d customer(s)", len(list)))
	return nil
}

func (s *Shell) listPlanes(ctx context.Context) error {
	planes, err := s.svc.Fleet.ListPlanes(ctx)
	if err != nil {
		return err
	}
	for _, p := range planes {
		airline := "?"
		if a, err := s.svc.Fleet.GetAirline(ctx, p.AirlineID); err == nil {
			airline = a.Name
		}
		s.println(fmt.Sprintf("Plane #%d - Model: %s - Airline: %s - Capacity: %d", p.ID, p.Model, airline, p.Capacity))
	}
	s.println(fmt.Sprintf("%d plane(s)", len(planes)))
	return nil
}

func (s *Shell) listAirlines(ctx context.Context) error {
	airlines, err := s.svc.Fleet.ListAirlines(ctx)
	if err != nil {
		return err
	}
	for _, a := range airlines {
		s.println(fmt.Sprintf("Airline #%d - %s - %s", a.ID, a.Name, a.Email))
	}
	s.println(fmt.Sprintf("%d airline(s)", len(airlines)))
	return nil
}

func (s *Shell) addFlight(ctx context.Context) error {
	if err := s.require(auth.RoleAirline); err != nil {
		return err
	}

	in := flights.AddFlightInput{}
	var err error
	if in.FlightNumber, err = s.prompt("Flight Number: "); err != nil {
		return err
	}
	if in.Origin, err = s.prompt("Origin: "); err != nil {
		return err
	}
	if in.Destination, err = s.prompt("Destination: "); err != nil {
		return err
	}
	price, err := s.prompt("Price: ")
	if err != nil {
		return err
	}
	if in.BasePriceCents, err = currency.ParseCents(price); err != nil {
		return ErrInvalidNumber
	}
	if in.PlaneID, err = s.promptInt("Plane ID: "); err != nil {
		return err
	}
	if in.DepartureDate, err = s.promptDeparture(); err != nil {
		return err
	}

	f, err := s.svc.Flights.AddFlight(ctx, in)
	if err != nil {
		return err
	}
	s.println("The flight price is = " + currency.FormatCents(f.CurrentPriceCents))
	s.println(fmt.Sprintf("Flight #%d added.", f.ID))
	return nil
}

// promptDeparture allows a few attempts at a date that is today or later.
func (s *Shell) promptDeparture() (time.Time, error) {
	today := domain.DateOf(s.clock.Now())
	for left := dateAttempts - 1; left >= 0; left-- {
		answer, err := s.prompt(`Departure Date ("YYYY-MM-DD" format): `)
		if err != nil {
			return time.Time{}, err
		}
		date, err := time.Parse(time.DateOnly, answer)
		if err != nil {
			s.println(fmt.Sprintf("Date must be in YYYY-MM-DD format. %d attempts remaining...", left))
			continue
		}
		if date.Before(today) {
			s.println(fmt.Sprintf("Date should be after %s. %d attempts remaining...", today.Format(time.DateOnly), left))
			continue
		}
		return date, nil
	}
	return time.Time{}, ErrBadDeparture
}

func (s *Shell) addCustomer(ctx context.Context) error {
	if err := s.require(auth.RoleCustomer); err != nil {
		return err
	}

	in := customers.AddCustomerInput{}
	var err error
	if in.Name, err = s.prompt("Customer Name: "); err != nil {
		return err
	}
	age, err := s.promptInt("Customer Age: ")
	if err != nil {
		return err
	}
	in.Age = int(age)
	if in.Phone, err = s.prompt("Phone: "); err != nil {
		return err
	}
	if in.Email, err = s.prompt("Email: "); err != nil {
		return err
	}

	c, err := s.svc.Customers.AddCustomer(ctx, in)
	if err != nil {
		return err
	}
	s.println(fmt.Sprintf("Customer #%d %s added.", c.ID, c.Name))
	return nil
}

func (s *Shell) addPlane(ctx context.Context) error {
	if err := s.require(auth.RoleAirline); err != nil {
		return err
	}

	in := fleet.AddPlaneInput{}
	var err error
	if in.Model, err = s.prompt("Plane Model Name: "); err != nil {
		return err
	}
	capacity, err := s.promptInt("Capacity: ")
	if err != nil {
		return err
	}
	in.Capacity = int(capacity)
	if in.AirlineID, err = s.promptInt("Airline ID: "); err != nil {
		return err
	}

	p, err := s.svc.Fleet.AddPlane(ctx, in)
	if err != nil {
		return err
	}
	s.println(fmt.Sprintf("Plane #%d %s added.", p.ID, p.Model))
	return nil
}

func (s *Shell) addAirline(ctx context.Context) error {
	if err := s.require(auth.RoleAdmin); err != nil {
		return err
	}

	in := fleet.AddAirlineInput{}
	var err error
	if in.Name, err = s.prompt("Airline Name: "); err != nil {
		return err
	}
	if in.Email, err = s.prompt("Email: "); err != nil {
		return err
	}
	if in.Password, err = s.prompt("Password: "); err != nil {
		return err
	}

	a, err := s.svc.Fleet.AddAirline(ctx, in)
	if err != nil {
		return err
	}
	s.println(fmt.Sprintf("Airline #%d %s added.", a.ID, a.Name))
	return nil
}

func (s *Shell) showFlight(ctx context.Context, id int64) error {
	d, err := s.svc.Flights.Details(ctx, id)
	if err != nil {
		return err
	}
	f := d.Flight
	if f.Removed {
		s.println(fmt.Sprintf("The flight with ID %d has been removed.", id))
		return nil
	}
	if f.Departed(s.clock.Now()) {
		s.println(fmt.Sprintf("The flight with ID %d has already departed.", id))
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Flight #%d\nFlight No: %s\nOrigin: %s\nDestination: %s\n", f.ID, f.FlightNumber, f.Origin, f.Destination)
	fmt.Fprintf(&b, "Base Price: %s\nCurrent Price: %s\n", currency.FormatCents(f.BasePriceCents), currency.FormatCents(d.CurrentPriceCents))
	fmt.Fprintf(&b, "Capacity: %d\nRemaining Capacity: %d\n", d.Capacity, d.RemainingCapacity)
	fmt.Fprintf(&b, "Departure Date: %s\nPlane Model: %s\nAirline: %s\n", f.DepartureDate.Format(time.DateOnly), d.Plane.Model, d.Airline.Name)
	b.WriteString("-------------\nPassengers:")
	if len(d.Passengers) == 0 {
		b.WriteString("\n No passengers booked on this flight")
	}
	for _, p := range d.Passengers {
		fmt.Fprintf(&b, "\n* Id: %d - %s - %s - %s", p.Customer.ID, p.Customer.Name, p.Customer.Phone, currency.FormatCents(p.PriceCents))
	}
	if len(d.Passengers) > 0 {
		fmt.Fprintf(&b, "\n%d passenger(s)", len(d.Passengers))
	}
	s.println(b.String())
	return nil
}

func (s *Shell) showCustomer(ctx context.Context, id int64) error {
	d, err := s.svc.Customers.Details(ctx, id)
	if err != nil {
		return err
	}
	c := d.Customer

	var b strings.Builder
	fmt.Fprintf(&b, "Customer ID #%d\nName: %s\nEmail: %s\nPhone: %s\n", c.ID, c.Name, c.Email, c.Phone)
	b.WriteString("-----------------\nBookings:")
	if len(d.Bookings) == 0 {
		b.WriteString("\n No Booking has been made by this customer")
	}
	for _, cb := range d.Bookings {
		fmt.Fprintf(&b, "\n* Booking date: %s for Flight #%d - %s - %s to %s on %s. Price: %s",
			cb.Booking.BookingDate.Format(time.DateOnly), cb.Flight.ID, cb.Flight.FlightNumber,
			cb.Flight.Origin, cb.Flight.Destination, cb.Flight.DepartureDate.Format(time.DateOnly),
			currency.FormatCents(cb.Booking.PriceCents))
	}
	if len(d.Bookings) > 0 {
		fmt.Fprintf(&b, "\n%d booking(s)", len(d.Bookings))
	}
	s.println(b.String())
	return nil
}

func (s *Shell) removeFlight(ctx context.Context, id int64) error {
	if err := s.require(auth.RoleAirline); err != nil {
		return err
	}
	f, err := s.svc.Flights.RemoveFlight(ctx, id)
	if err != nil {
		return err
	}
	s.println(fmt.Sprintf("Flight #%d removed.", f.ID))
	return nil
}

func (s *Shell) removeCustomer(ctx context.Context, id int64) error {
	if err := s.require(auth.RoleCustomer); err != nil {
		return err
	}
	c, err := s.svc.Customers.RemoveCustomer(ctx, id)
	if err != nil {
		return err
	}
	s.println(fmt.Sprintf("Customer #%d removed.", c.ID))
	return nil
}

func (s *Shell) addBooking(ctx context.Context, customerID, flightID int64) error {
	if err := s.require(auth.RoleCustomer); err != nil {
		return err
	}
	res, err := s.svc.Bookings.AddBooking(ctx, booking.AddBookingInput{CustomerID: customerID, FlightID: flightID})
	if err != nil {
		return err
	}
	s.println(res.Message)
	return nil
}

func (s *Shell) cancelBooking(ctx context.Context, customerID, flightID int64) error {
	if err := s.require(auth.RoleCustomer); err != nil {
		return err
	}
	res, err := s.svc.Bookings.CancelBooking(ctx, booking.CancelBookingInput{CustomerID: customerID, FlightID: flightID})
	if err != nil {
		return err
	}
	s.println(res.Message)
	return nil
}

func (s *Shell) editBooking(ctx context.Context, bookingID, flightID int64) error {
	if err := s.require(auth.RoleCustomer); err != nil {
		return err
	}
	res, err := s.svc.Bookings.EditBooking(ctx, booking.EditBookingInput{BookingID: bookingID, FlightID: flightID})
	if err != nil {
		return err
	}
	s.println(res.Message)
	return nil
}

func helpText(role auth.Role) string {
	var lines []string
	switch role {
	case auth.RoleAdmin:
		lines = []string{
			"listflights                               print all flights",
			"listcustomers                             print all customers",
			"listplanes                                print all planes",
			"listairlines                              print all airlines",
			"addflight                                 add a new flight",
			"addcustomer                               add a new customer",
			"addplane                                  add a new plane",
			"addairline                                add a new airline",
			"showflight [flight id]                    show flight details",
			"showcustomer [customer id]                show customer details",
			"removeflight [flight id]                  remove a flight",
			"removecustomer [customer id]              remove a customer",
			"addbooking [customer id] [flight id]      add a new booking",
			"cancelbooking [customer id] [flight id]   cancel a booking",
			"editbooking [booking id] [flight id]      update a booking",
		}
	case auth.RoleAirline:
		lines = []string{
			"listflights                               print all flights",
			"listplanes                                print all planes",
			"addflight                                 add a new flight",
			"addplane                                  add a new plane",
			"showflight [flight id]                    show flight details",
			"removeflight [flight id]                  remove a flight",
		}
	case auth.RoleCustomer:
		lines = []string{
			"listflights                               print all flights",
			"addcustomer                               add a new customer",
			"showflight [flight id]                    show flight details",
			"showcustomer [customer id]                show customer details",
			"removecustomer [customer id]              remove a customer",
			"addbooking [customer id] [flight id]      add a new booking",
			"cancelbooking [customer id] [flight id]   cancel a booking",
			"editbooking [booking id] [flight id]      update a booking",
		}
	default:
		return "Invalid role."
	}
	lines = append(lines,
		"help                                      prints this help message",
		"exit                                      exits the program",
	)
	return "Commands:\n\t" + strings.Join(lines, "\n\t")
}
