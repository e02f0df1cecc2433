package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/registry"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS airlines (
	id       BIGINT PRIMARY KEY,
	name     TEXT NOT NULL,
	email    TEXT NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS planes (
	id         BIGINT PRIMARY KEY,
	model      TEXT NOT NULL,
	capacity   INT NOT NULL,
	airline_id BIGINT NOT NULL REFERENCES airlines(id)
);
CREATE TABLE IF NOT EXISTS flights (
	id               BIGINT PRIMARY KEY,
	flight_number    TEXT NOT NULL,
	origin           TEXT NOT NULL,
	destination      TEXT NOT NULL,
	base_price_cents BIGINT NOT NULL,
	plane_id         BIGINT NOT NULL REFERENCES planes(id),
	departure_date   DATE NOT NULL,
	removed          BOOLEAN NOT NULL DEFAULT false
);
CREATE TABLE IF NOT EXISTS customers (
	id      BIGINT PRIMARY KEY,
	name    TEXT NOT NULL,
	age     INT NOT NULL,
	phone   TEXT NOT NULL,
	email   TEXT NOT NULL,
	removed BOOLEAN NOT NULL DEFAULT false
);
CREATE TABLE IF NOT EXISTS bookings (
	id           BIGINT PRIMARY KEY,
	customer_id  BIGINT NOT NULL REFERENCES customers(id),
	flight_id    BIGINT NOT NULL REFERENCES flights(id),
	booking_date DATE NOT NULL,
	price_cents  BIGINT NOT NULL
);
CREATE TABLE IF NOT EXISTS id_sequences (
	collection TEXT PRIMARY KEY,
	last_id    BIGINT NOT NULL
);`

// PGSnapshotStore replaces the content of its tables in one transaction on
// every Store.
type PGSnapshotStore struct {
	db *pgxpool.Pool
}

func NewPGSnapshotStore(db *pgxpool.Pool) *PGSnapshotStore {
	return &PGSnapshotStore{db: db}
}

func (r *PGSnapshotStore) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (r *PGSnapshotStore) Store(ctx context.Context, snap registry.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE bookings, customers, flights, planes, airlines, id_sequences`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	copies := []struct {
		table   string
		columns []string
		rows    [][]any
	}{
		{"airlines", []string{"id", "name", "email", "password"}, airlineValues(snap.Airlines)},
		{"planes", []string{"id", "model", "capacity", "airline_id"}, planeValues(snap.Planes)},
		{"flights", []string{"id", "flight_number", "origin", "destination", "base_price_cents", "plane_id", "departure_date", "removed"}, flightValues(snap.Flights)},
		{"customers", []string{"id", "name", "age", "phone", "email", "removed"}, customerValues(snap.Customers)},
		{"bookings", []string{"id", "customer_id", "flight_id", "booking_date", "price_cents"}, bookingValues(snap.Bookings)},
		{"id_sequences", []string{"collection", "last_id"}, sequenceValues(snap.Sequences)},
	}
	for _, c := range copies {
		if len(c.rows) == 0 {
			continue
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromRows(c.rows)); err != nil {
			return fmt.Errorf("copy %s: %w", c.table, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PGSnapshotStore) Load(ctx context.Context) (registry.Snapshot, error) {
	var snap registry.Snapshot
	var err error

	snap.Airlines, err = queryAll(ctx, r.db, `SELECT id, name, email, password FROM airlines ORDER BY id`, func(row pgx.Rows) (domain.Airline, error) {
		var a domain.Airline
		err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Password)
		return a, err
	})
	if err != nil {
		return registry.Snapshot{}, fmt.Errorf("load airlines: %w", err)
	}

	snap.Planes, err = queryAll(ctx, r.db, `SELECT id, model, capacity, airline_id FROM planes ORDER BY id`, func(row pgx.Rows) (domain.Plane, error) {
		var p domain.Plane
		err := row.Scan(&p.ID, &p.Model, &p.Capacity, &p.AirlineID)
		return p, err
	})
	if err != nil {
		return registry.Snapshot{}, fmt.Errorf("load planes: %w", err)
	}

	snap.Flights, err = queryAll(ctx, r.db, `SELECT id, flight_number, origin, destination, base_price_cents, plane_id, departure_date, removed FROM flights ORDER BY id`, func(row pgx.Rows) (domain.Flight, error) {
		var f domain.Flight
		err := row.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.BasePriceCents, &f.PlaneID, &f.DepartureDate, &f.Removed)
		return f, err
	})
	if err != nil {
		return registry.Snapshot{}, fmt.Errorf("load flights: %w", err)
	}

	snap.Customers, err = queryAll(ctx, r.db, `SELECT id, name, age, phone, email, removed FROM customers ORDER BY id`, func(row pgx.Rows) (domain.Customer, error) {
		var c domain.Customer
		err := row.Scan(&c.ID, &c.Name, &c.Age, &c.Phone, &c.Email, &c.Removed)
		return c, err
	})
	if err != nil {
		return registry.Snapshot{}, fmt.Errorf("load customers: %w", err)
	}

	snap.Bookings, err = queryAll(ctx, r.db, `SELECT id, customer_id, flight_id, booking_date, price_cents FROM bookings ORDER BY id`, func(row pgx.Rows) (domain.Booking, error) {
		var b domain.Booking
		err := row.Scan(&b.ID, &b.CustomerID, &b.FlightID, &b.BookingDate, &b.PriceCents)
		return b, err
	})
	if err != nil {
		return registry.Snapshot{}, fmt.Errorf("load bookings: %w", err)
	}

	type seq struct {
		name string
		last int64
	}
	seqs, err := queryAll(ctx, r.db, `SELECT collection, last_id FROM id_sequences`, func(row pgx.Rows) (seq, error) {
		var s seq
		err := row.Scan(&s.name, &s.last)
		return s, err
	})
	if err != nil {
		return registry.Snapshot{}, fmt.Errorf("load sequences: %w", err)
	}
	for _, s := range seqs {
		switch s.name {
		case "airline":
			snap.Sequences.Airline = s.last
		case "plane":
			snap.Sequences.Plane = s.last
		case "flight":
			snap.Sequences.Flight = s.last
		case "customer":
			snap.Sequences.Customer = s.last
		case "booking":
			snap.Sequences.Booking = s.last
		}
	}

	return snap, nil
}

func queryAll[T any](ctx context.Context, db *pgxpool.Pool, sql string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func airlineValues(in []domain.Airline) [][]any {
	rows := make([][]any, 0, len(in))
	for _, a := range in {
		rows = append(rows, []any{a.ID, a.Name, a.Email, a.Password})
	}
	return rows
}

func planeValues(in []domain.Plane) [][]any {
	rows := make([][]any, 0, len(in))
	for _, p := range in {
		rows = append(rows, []any{p.ID, p.Model, int32(p.Capacity), p.AirlineID})
	}
	return rows
}

func flightValues(in []domain.Flight) [][]any {
	rows := make([][]any, 0, len(in))
	for _, f := range in {
		rows = append(rows, []any{f.ID, f.FlightNumber, f.Origin, f.Destination, f.BasePriceCents, f.PlaneID, f.DepartureDate, f.Removed})
	}
	return rows
}

func customerValues(in []domain.Customer) [][]any {
	rows := make([][]any, 0, len(in))
	for _, c := range in {
		rows = append(rows, []any{c.ID, c.Name, int32(c.Age), c.Phone, c.Email, c.Removed})
	}
	return rows
}

func bookingValues(in []domain.Booking) [][]any {
	rows := make([][]any, 0, len(in))
	for _, b := range in {
		rows = append(rows, []any{b.ID, b.CustomerID, b.FlightID, b.BookingDate, b.PriceCents})
	}
	return rows
}

func sequenceValues(s registry.Sequences) [][]any {
	return [][]any{
		{"airline", s.Airline},
		{"plane", s.Plane},
		{"flight", s.Flight},
		{"customer", s.Customer},
		{"booking", s.Booking},
	}
}

var _ SnapshotStore = (*PGSnapshotStore)(nil)
