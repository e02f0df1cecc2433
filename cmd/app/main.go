package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/customers"
	"github.com/Domenick1991/flightbooking/internal/service/fleet"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
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

		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := p.CheckConnection(checkCtx); err != nil {
			log.Printf("WARNING: kafka is not reachable, events may be lost: %v", err)
		}
		cancel()
		producer = p
	}

	fleetService := fleet.NewFleetService(reg)
	flightService := flights.NewFlightService(reg, nil)
	customerService := customers.NewCustomerService(reg)
	bookingService := booking.NewBookingService(
		reg,
		nil,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	deps := bootstrap.Deps{
		Registry:  reg,
		Store:     store,
		Flights:   flightService,
		Bookings:  bookingService,
		Customers: customerService,
		Fleet:     fleetService,
		Verifier:  auth.NewVerifier(cfg.Auth.AdminUser, cfg.Auth.AdminPassword, fleetService),
		Tokens:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), nil),
	}

	if err := bootstrap.Run(ctx, cfg, deps); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
