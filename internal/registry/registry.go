// Package registry holds the in-memory aggregate that owns every airline,
// plane, flight, customer and booking, and enforces the rules that span them.
package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

// Sequences records the highest id ever assigned per collection. New ids are
// sequence+1, so ids of cancelled bookings are never handed out again.
type Sequences struct {
	Airline  int64 `json:"airline"`
	Plane    int64 `json:"plane"`
	Flight   int64 `json:"flight"`
	Customer int64 `json:"customer"`
	Booking  int64 `json:"booking"`
}

// ListOptions filters collection listings.
type ListOptions struct {
	// ActiveOnly drops removed entities and, for flights, those not departing after Today.
	ActiveOnly bool
	Today      time.Time
}

type airlineKey struct{ email, password string }

type planeKey struct {
	model    string
	capacity int
}

type flightKey struct{ number, date string }

type customerKey struct{ phone, email string }

// Registry is safe for concurrent use. Every mutating operation runs under a
// single lock because it touches several collections at once.
type Registry struct {
	mu sync.RWMutex

	airlines  map[int64]*domain.Airline
	planes    map[int64]*domain.Plane
	flights   map[int64]*domain.Flight
	customers map[int64]*domain.Customer
	bookings  map[int64]*domain.Booking

	seq Sequences

	// customer id -> set of booking ids
	bookingsByCustomer map[int64]map[int64]struct{}
	// flight id -> customer id -> booking id
	bookingsByFlight map[int64]map[int64]int64

	airlineKeys  map[airlineKey]int64
	planeKeys    map[planeKey]int64
	flightKeys   map[flightKey]int64
	customerKeys map[customerKey]int64
}

func New() *Registry {
	return &Registry{
		airlines:           make(map[int64]*domain.Airline),
		planes:             make(map[int64]*domain.Plane),
		flights:            make(map[int64]*domain.Flight),
		customers:          make(map[int64]*domain.Customer),
		bookings:           make(map[int64]*domain.Booking),
		bookingsByCustomer: make(map[int64]map[int64]struct{}),
		bookingsByFlight:   make(map[int64]map[int64]int64),
		airlineKeys:        make(map[airlineKey]int64),
		planeKeys:          make(map[planeKey]int64),
		flightKeys:         make(map[flightKey]int64),
		customerKeys:       make(map[customerKey]int64),
	}
}

// Sequences returns the current id high-water marks.
func (r *Registry) Sequences() Sequences {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.seq
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func bump(seq *int64, id int64) {
	if id > *seq {
		*seq = id
	}
}
