package repository

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/registry"
)

// separator ends every field, including the last one on a line.
const separator = "::"

const (
	airlinesFile  = "airlines.txt"
	planesFile    = "planes.txt"
	flightsFile   = "flights.txt"
	customersFile = "customers.txt"
	bookingsFile  = "bookings.txt"
	sequencesFile = "sequences.txt"
)

var ErrMalformedRecord = errors.New("malformed record")

// FileSnapshotStore keeps one text file per collection in a directory.
// Missing files load as empty collections.
type FileSnapshotStore struct {
	dir string
}

func NewFileSnapshotStore(dir string) *FileSnapshotStore {
	return &FileSnapshotStore{dir: dir}
}

type fileTable struct {
	name string
	rows [][]string
}

func (s *FileSnapshotStore) Store(ctx context.Context, snap registry.Snapshot) error {
	tables := []fileTable{
		{airlinesFile, airlineRows(snap.Airlines)},
		{planesFile, planeRows(snap.Planes)},
		{flightsFile, flightRows(snap.Flights)},
		{customersFile, customerRows(snap.Customers)},
		{bookingsFile, bookingRows(snap.Bookings)},
		{sequencesFile, [][]string{sequenceRow(snap.Sequences)}},
	}

	// A field may not hold the separator, end in ':' or span lines. Nothing
	// is written unless every field passes.
	for _, t := range tables {
		for _, row := range t.rows {
			for _, field := range row {
				if strings.Contains(field, separator) || strings.HasSuffix(field, ":") || strings.ContainsAny(field, "\r\n") {
					return fmt.Errorf("%s: field %q: %w", t.name, field, ErrMalformedRecord)
				}
			}
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.writeFile(t); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileSnapshotStore) writeFile(t fileTable) error {
	path := filepath.Join(s.dir, t.name)
	tmp, err := os.CreateTemp(s.dir, t.name+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", t.name, err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, row := range t.rows {
		for _, field := range row {
			w.WriteString(field)
			w.WriteString(separator)
		}
		w.WriteString("\n")
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", t.name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", t.name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", t.name, err)
	}
	return nil
}

func (s *FileSnapshotStore) Load(ctx context.Context) (registry.Snapshot, error) {
	var snap registry.Snapshot
	var err error

	if snap.Airlines, err = loadFile(s.path(airlinesFile), 4, parseAirline); err != nil {
		return registry.Snapshot{}, err
	}
	if snap.Planes, err = loadFile(s.path(planesFile), 4, parsePlane); err != nil {
		return registry.Snapshot{}, err
	}
	if snap.Flights, err = loadFile(s.path(flightsFile), 8, parseFlight); err != nil {
		return registry.Snapshot{}, err
	}
	if snap.Customers, err = loadFile(s.path(customersFile), 6, parseCustomer); err != nil {
		return registry.Snapshot{}, err
	}
	if snap.Bookings, err = loadFile(s.path(bookingsFile), 5, parseBooking); err != nil {
		return registry.Snapshot{}, err
	}
	seqs, err := loadFile(s.path(sequencesFile), 5, parseSequences)
	if err != nil {
		return registry.Snapshot{}, err
	}
	if len(seqs) > 0 {
		snap.Sequences = seqs[len(seqs)-1]
	}
	return snap, ctx.Err()
}

func (s *FileSnapshotStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func loadFile[T any](path string, width int, parse func(*fieldReader) T) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var out []T
	sc := bufio.NewScanner(f)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(strings.TrimSuffix(line, separator), separator)
		if len(fields) != width {
			return nil, fmt.Errorf("%s line %d: expected %d fields, got %d: %w", filepath.Base(path), lineNo, width, len(fields), ErrMalformedRecord)
		}
		r := &fieldReader{fields: fields}
		rec := parse(r)
		if r.err != nil {
			return nil, fmt.Errorf("%s line %d: %w", filepath.Base(path), lineNo, r.err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// fieldReader hands out fields left to right and keeps the first parse error.
type fieldReader struct {
	fields []string
	pos    int
	err    error
}

func (r *fieldReader) next() string {
	f := r.fields[r.pos]
	r.pos++
	return f
}

func (r *fieldReader) fail(field string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("field %d (%q): %v: %w", r.pos, field, err, ErrMalformedRecord)
	}
}

func (r *fieldReader) str() string {
	return r.next()
}

func (r *fieldReader) int64() int64 {
	f := r.next()
	v, err := strconv.ParseInt(f, 10, 64)
	if err != nil {
		r.fail(f, err)
	}
	return v
}

func (r *fieldReader) int() int {
	return int(r.int64())
}

func (r *fieldReader) bool() bool {
	f := r.next()
	v, err := strconv.ParseBool(f)
	if err != nil {
		r.fail(f, err)
	}
	return v
}

func (r *fieldReader) date() time.Time {
	f := r.next()
	v, err := time.Parse(time.DateOnly, f)
	if err != nil {
		r.fail(f, err)
	}
	return v
}

func parseAirline(r *fieldReader) domain.Airline {
	return domain.Airline{ID: r.int64(), Name: r.str(), Email: r.str(), Password: r.str()}
}

func parsePlane(r *fieldReader) domain.Plane {
	return domain.Plane{ID: r.int64(), Model: r.str(), Capacity: r.int(), AirlineID: r.int64()}
}

func parseFlight(r *fieldReader) domain.Flight {
	return domain.Flight{
		ID:             r.int64(),
		FlightNumber:   r.str(),
		Origin:         r.str(),
		Destination:    r.str(),
		BasePriceCents: r.int64(),
		PlaneID:        r.int64(),
		DepartureDate:  r.date(),
		Removed:        r.bool(),
	}
}

func parseCustomer(r *fieldReader) domain.Customer {
	return domain.Customer{ID: r.int64(), Name: r.str(), Age: r.int(), Phone: r.str(), Email: r.str(), Removed: r.bool()}
}

func parseBooking(r *fieldReader) domain.Booking {
	return domain.Booking{ID: r.int64(), CustomerID: r.int64(), FlightID: r.int64(), BookingDate: r.date(), PriceCents: r.int64()}
}

func parseSequences(r *fieldReader) registry.Sequences {
	return registry.Sequences{Airline: r.int64(), Plane: r.int64(), Flight: r.int64(), Customer: r.int64(), Booking: r.int64()}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func airlineRows(in []domain.Airline) [][]string {
	rows := make([][]string, 0, len(in))
	for _, a := range in {
		rows = append(rows, []string{itoa(a.ID), a.Name, a.Email, a.Password})
	}
	return rows
}

func planeRows(in []domain.Plane) [][]string {
	rows := make([][]string, 0, len(in))
	for _, p := range in {
		rows = append(rows, []string{itoa(p.ID), p.Model, strconv.Itoa(p.Capacity), itoa(p.AirlineID)})
	}
	return rows
}

func flightRows(in []domain.Flight) [][]string {
	rows := make([][]string, 0, len(in))
	for _, f := range in {
		rows = append(rows, []string{
			itoa(f.ID), f.FlightNumber, f.Origin, f.Destination, itoa(f.BasePriceCents),
			itoa(f.PlaneID), f.DepartureDate.Format(time.DateOnly), strconv.FormatBool(f.Removed),
		})
	}
	return rows
}

func customerRows(in []domain.Customer) [][]string {
	rows := make([][]string, 0, len(in))
	for _, c := range in {
		rows = append(rows, []string{itoa(c.ID), c.Name, strconv.Itoa(c.Age), c.Phone, c.Email, strconv.FormatBool(c.Removed)})
	}
	return rows
}

func bookingRows(in []domain.Booking) [][]string {
	rows := make([][]string, 0, len(in))
	for _, b := range in {
		rows = append(rows, []string{itoa(b.ID), itoa(b.CustomerID), itoa(b.FlightID), b.BookingDate.Format(time.DateOnly), itoa(b.PriceCents)})
	}
	return rows
}

func sequenceRow(s registry.Sequences) []string {
	return []string{itoa(s.Airline), itoa(s.Plane), itoa(s.Flight), itoa(s.Customer), itoa(s.Booking)}
}

var _ SnapshotStore = (*FileSnapshotStore)(nil)
