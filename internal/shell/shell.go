// Package shell is the interactive console for the booking system. A user
// picks a role once, then runs one command per line until exit.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/clock"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/customers"
	"github.com/Domenick1991/flightbooking/internal/service/fleet"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
)

var (
	ErrInvalidCommand = errors.New("Invalid command.")
	ErrInvalidNumber  = errors.New("Invalid number format.")
	ErrBadDeparture   = errors.New("Incorrect departure date provided. Cannot create flight.")
)

const dateAttempts = 3

// mutating lists the commands that change state and so trigger a save.
var mutating = map[string]bool{
	"addflight":      true,
	"addcustomer":    true,
	"addplane":       true,
	"addairline":     true,
	"removeflight":   true,
	"removecustomer": true,
	"addbooking":     true,
	"cancelbooking":  true,
	"editbooking":    true,
}

type Services struct {
	Fleet     fleet.FleetUseCase
	Flights   flights.FlightUseCase
	Customers customers.CustomerUseCase
	Bookings  booking.BookingUseCase
	Verifier  *auth.Verifier
}

// SaveFunc persists the current state after a successful command that
// changed it.
type SaveFunc func(ctx context.Context) error

type Shell struct {
	svc   Services
	in    *bufio.Scanner
	out   io.Writer
	save  SaveFunc
	clock clock.Clock
	role  auth.Role
}

type Option func(*Shell)

func WithClock(clk clock.Clock) Option {
	return func(s *Shell) {
		s.clock = clk
	}
}

func New(svc Services, in io.Reader, out io.Writer, save SaveFunc, opts ...Option) *Shell {
	s := &Shell{
		svc:   svc,
		in:    bufio.NewScanner(in),
		out:   out,
		save:  save,
		clock: clock.System{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run logs the user in and serves commands until exit or end of input.
func (s *Shell) Run(ctx context.Context) error {
	role, err := s.Login(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	s.role = role

	s.println("Flight Booking System")
	s.println("Enter 'help' to see a list of available commands.")

	for {
		line, err := s.prompt("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if err := s.Execute(ctx, line); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.println(err.Error())
			continue
		}
		if s.save != nil && mutating[strings.Fields(line)[0]] {
			if err := s.save(ctx); err != nil {
				log.Printf("WARNING: failed to store data: %v", err)
				s.println("Could not save data: " + err.Error())
			}
		}
	}
}

// Login asks for a role until the user proves one.
func (s *Shell) Login(ctx context.Context) (auth.Role, error) {
	for {
		answer, err := s.prompt("Who are you? (admin, airline, customer): ")
		if err != nil {
			return "", err
		}
		role, err := auth.ParseRole(answer)
		if err != nil {
			s.println(err.Error())
			continue
		}

		creds := auth.Credentials{Role: role}
		switch role {
		case auth.RoleAdmin:
			if creds.Username, err = s.prompt("Username: "); err != nil {
				return "", err
			}
			if creds.Password, err = s.prompt("Password: "); err != nil {
				return "", err
			}
		case auth.RoleAirline:
			if creds.Username, err = s.prompt("Email: "); err != nil {
				return "", err
			}
			if creds.Password, err = s.prompt("Password: "); err != nil {
				return "", err
			}
		}

		if _, err := s.svc.Verifier.Verify(ctx, creds); err != nil {
			s.println(err.Error())
			continue
		}
		return role, nil
	}
}

// Execute runs one command line as the logged-in role.
func (s *Shell) Execute(ctx context.Context, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return ErrInvalidCommand
	}
	cmd, args := parts[0], parts[1:]

	switch {
	case cmd == "help" && len(args) == 0:
		s.println(helpText(s.role))
		return nil
	case cmd == "listflights" && len(args) == 0:
		return s.listFlights(ctx)
	case cmd == "listcustomers" && len(args) == 0:
		return s.listCustomers(ctx)
	case cmd == "listplanes" && len(args) == 0:
		return s.listPlanes(ctx)
	case cmd == "listairlines" && len(args) == 0:
		return s.listAirlines(ctx)
	case cmd == "addflight" && len(args) == 0:
		return s.addFlight(ctx)
	case cmd == "addcustomer" && len(args) == 0:
		return s.addCustomer(ctx)
	case cmd == "addplane" && len(args) == 0:
		return s.addPlane(ctx)
	case cmd == "addairline" && len(args) == 0:
		return s.addAirline(ctx)
	}

	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	switch {
	case cmd == "showflight" && len(ids) == 1:
		return s.showFlight(ctx, ids[0])
	case cmd == "showcustomer" && len(ids) == 1:
		return s.showCustomer(ctx, ids[0])
	case cmd == "removeflight" && len(ids) == 1:
		return s.removeFlight(ctx, ids[0])
	case cmd == "removecustomer" && len(ids) == 1:
		return s.removeCustomer(ctx, ids[0])
	case cmd == "addbooking" && len(ids) == 2:
		return s.addBooking(ctx, ids[0], ids[1])
	case cmd == "cancelbooking" && len(ids) == 2:
		return s.cancelBooking(ctx, ids[0], ids[1])
	case cmd == "editbooking" && len(ids) == 2:
		return s.editBooking(ctx, ids[0], ids[1])
	}
	return ErrInvalidCommand
}

func (s *Shell) require(role auth.Role) error {
	return auth.CheckPermission(s.role, role)
}

func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) promptInt(label string) (int64, error) {
	answer, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(answer, 10, 64)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return n, nil
}

func (s *Shell) println(msg string) {
	fmt.Fprintln(s.out, msg)
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, ErrInvalidNumber
		}
		ids = append(ids, id)
	}
	return ids, nil
}
