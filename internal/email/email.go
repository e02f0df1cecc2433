package email

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/pkg/currency"
)

// Sender renders customer notifications. There is no mail transport; the
// rendered message is written to out.
type Sender struct {
	out io.Writer
}

func NewSender(out io.Writer) *Sender {
	if out == nil {
		out = os.Stdout
	}
	return &Sender{out: out}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		return nil
	}
	_, err := fmt.Fprintf(s.out, "send email to %s: %s\n", event.Email, Subject(event))
	return err
}

// Subject is the one-line summary of a booking event.
func Subject(event kafka.BookingEvent) string {
	switch event.Type {
	case kafka.EventBookingCreated:
		return fmt.Sprintf("booking #%d on flight %s confirmed for %s", event.BookingID, event.FlightNumber, currency.FormatCents(event.PriceCents))
	case kafka.EventBookingCancelled:
		return fmt.Sprintf("booking #%d on flight %s cancelled, fee %s", event.BookingID, event.FlightNumber, currency.FormatCents(event.FeeCents))
	case kafka.EventBookingUpdated:
		return fmt.Sprintf("booking #%d moved to flight %s, new price %s", event.BookingID, event.FlightNumber, currency.FormatCents(event.PriceCents))
	default:
		return fmt.Sprintf("%s for booking #%d", event.Type, event.BookingID)
	}
}
