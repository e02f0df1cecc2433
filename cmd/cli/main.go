package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/customers"
	"github.com/Domenick1991/flightbooking/internal/service/fleet"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/shell"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer closeStore()

	reg, err := repository.LoadRegistry(ctx, store)
	if err != nil {
		log.Fatalf("load data: %v", err)
	}

	var producer booking.Producer
	if cfg.Kafka.Enabled() {
		p := kafka.NewProducer(cfg.Kafka.Brokers)
		defer p.Close()
		producer = p
	}

	fleetService := fleet.NewFleetService(reg)
	bookingService := booking.NewBookingService(
		reg,
		nil,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	services := shell.Services{
		Fleet:     fleetService,
		Flights:   flights.NewFlightService(reg, nil),
		Customers: customers.NewCustomerService(reg),
		Bookings:  bookingService,
		Verifier:  auth.NewVerifier(cfg.Auth.AdminUser, cfg.Auth.AdminPassword, fleetService),
	}
	save := func(ctx context.Context) error {
		return store.Store(ctx, reg.Snapshot())
	}

	sh := shell.New(services, os.Stdin, os.Stdout, save)
	if err := sh.Run(ctx); err != nil {
		log.Fatalf("shell: %v", err)
	}
}
